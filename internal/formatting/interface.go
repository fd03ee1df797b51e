// Package formatting renders supervisor status, controls and alerts for the
// terminal, either as rich tables or as JSON/YAML for scripting.
package formatting

import (
	"fmt"

	"minkafka/internal/events"
	"minkafka/internal/orchestrator"
)

// OutputFormat represents the desired output format
type OutputFormat string

const (
	FormatTable OutputFormat = "table" // Rich table output
	FormatJSON  OutputFormat = "json"  // JSON output
	FormatYAML  OutputFormat = "yaml"  // YAML output
)

// ParseOutputFormat validates a user supplied format name. Empty means table.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case "", FormatTable:
		return FormatTable, nil
	case FormatJSON, FormatYAML:
		return OutputFormat(s), nil
	default:
		return "", fmt.Errorf("unsupported output format %q (use table, json or yaml)", s)
	}
}

// Options configures the formatter behavior
type Options struct {
	Format OutputFormat
	Color  bool // Enable colored output
}

// Formatter renders supervisor data.
type Formatter interface {
	FormatStatus(status orchestrator.Status) (string, error)
	FormatControls(controls orchestrator.ControlsSnapshot) (string, error)
	FormatAlert(alert events.Alert) string
}

// NewFormatter returns the formatter for options.Format.
func NewFormatter(options Options) Formatter {
	switch options.Format {
	case FormatJSON:
		return &JSONFormatter{options: options}
	case FormatYAML:
		return &YAMLFormatter{options: options}
	default:
		return NewTableFormatter(options)
	}
}
