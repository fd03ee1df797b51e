package formatting

import (
	"minkafka/internal/events"
	"minkafka/internal/orchestrator"
)

// JSONFormatter provides JSON output formatting
type JSONFormatter struct {
	options Options
}

// FormatStatus formats the status snapshot as indented JSON.
func (f *JSONFormatter) FormatStatus(status orchestrator.Status) (string, error) {
	return PrettyJSON(status) + "\n", nil
}

// FormatControls formats the controls snapshot as indented JSON.
func (f *JSONFormatter) FormatControls(controls orchestrator.ControlsSnapshot) (string, error) {
	return PrettyJSON(controls) + "\n", nil
}

// FormatAlert formats an alert as a single JSON line.
func (f *JSONFormatter) FormatAlert(alert events.Alert) string {
	return CompactJSON(alert)
}
