package template

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// Engine renders command argument templates. Templates use Go template
// syntax with the sprig function library, for example
// `--override log.dirs={{ .InstallDir }}/logs` or `{{ env "KAFKA_HEAP" | default "-Xmx1G" }}`.
type Engine struct {
	funcs template.FuncMap
}

// New creates a new template engine.
func New() *Engine {
	return &Engine{funcs: sprig.TxtFuncMap()}
}

// Render renders a single template against data. Strings without template
// delimiters are returned unchanged. A reference to a missing key is an error.
func (e *Engine) Render(name, text string, data map[string]interface{}) (string, error) {
	if !strings.Contains(text, "{{") {
		return text, nil
	}

	tmpl, err := template.New(name).Funcs(e.funcs).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %q: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template %q: %w", name, err)
	}
	return buf.String(), nil
}

// RenderAll renders every entry of args in order. Entries that render to an
// empty string are dropped so a template can make an argument optional.
func (e *Engine) RenderAll(prefix string, args []string, data map[string]interface{}) ([]string, error) {
	out := make([]string, 0, len(args))
	for i, arg := range args {
		rendered, err := e.Render(fmt.Sprintf("%s[%d]", prefix, i), arg, data)
		if err != nil {
			return nil, err
		}
		if rendered == "" {
			continue
		}
		out = append(out, rendered)
	}
	return out, nil
}
