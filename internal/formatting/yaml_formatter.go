package formatting

import (
	"fmt"

	"sigs.k8s.io/yaml"

	"minkafka/internal/events"
	"minkafka/internal/orchestrator"
)

// YAMLFormatter provides YAML output formatting. Field names follow the
// json tags so both machine formats agree.
type YAMLFormatter struct {
	options Options
}

// FormatStatus formats the status snapshot as YAML.
func (f *YAMLFormatter) FormatStatus(status orchestrator.Status) (string, error) {
	return f.marshal(status)
}

// FormatControls formats the controls snapshot as YAML.
func (f *YAMLFormatter) FormatControls(controls orchestrator.ControlsSnapshot) (string, error) {
	return f.marshal(controls)
}

// FormatAlert formats an alert as a YAML document.
func (f *YAMLFormatter) FormatAlert(alert events.Alert) string {
	out, err := f.marshal(alert)
	if err != nil {
		return fmt.Sprintf("error: %q\n", err.Error())
	}
	return "---\n" + out
}

// marshal converts data to YAML string
func (f *YAMLFormatter) marshal(data interface{}) (string, error) {
	yamlBytes, err := yaml.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to format YAML: %w", err)
	}
	return string(yamlBytes), nil
}
