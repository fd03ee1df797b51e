package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	e := New()
	data := map[string]interface{}{
		"InstallDir": "/opt/kafka",
		"Service":    "Kafka",
	}

	tests := []struct {
		name    string
		text    string
		want    string
		wantErr bool
	}{
		{name: "plain", text: "--daemon", want: "--daemon"},
		{name: "variable", text: "log.dirs={{ .InstallDir }}/logs", want: "log.dirs=/opt/kafka/logs"},
		{name: "sprig function", text: "{{ .Service | lower }}", want: "kafka"},
		{name: "sprig default", text: `{{ "" | default "fallback" }}`, want: "fallback"},
		{name: "missing key", text: "{{ .Nope }}", wantErr: true},
		{name: "parse error", text: "{{ .InstallDir ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Render(tt.name, tt.text, data)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderAll(t *testing.T) {
	e := New()
	data := map[string]interface{}{"Enabled": false, "Port": 2181}

	got, err := e.RenderAll("args", []string{
		"--override",
		"clientPort={{ .Port }}",
		`{{ if .Enabled }}--extra{{ end }}`,
	}, data)
	require.NoError(t, err)
	assert.Equal(t, []string{"--override", "clientPort=2181"}, got)

	_, err = e.RenderAll("args", []string{"{{ .Missing }}"}, data)
	assert.ErrorContains(t, err, "args[0]")
}

func TestMergeContexts(t *testing.T) {
	merged := MergeContexts(
		map[string]interface{}{"a": 1, "b": 2},
		map[string]interface{}{"b": 3},
		nil,
	)
	assert.Equal(t, map[string]interface{}{"a": 1, "b": 3}, merged)
}
