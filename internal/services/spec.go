package services

import (
	"fmt"
	"time"

	"minkafka/internal/config"
	"minkafka/internal/template"
)

// ServiceSpec is the immutable launch descriptor of one service. It is
// built once when the supervisor is assembled.
type ServiceSpec struct {
	ID             string
	Name           string
	StartCommand   string
	StopCommand    string
	PropertiesPath string
	Window         time.Duration
	DependsOn      []string

	args []string
}

// NewServiceSpec builds a spec from configuration. Extra arguments are
// rendered once with the template engine; data is available to every
// template together with InstallDir, Properties and Service.
func NewServiceSpec(id string, svc config.ServiceConfig, cfg *config.MinkafkaConfig, window time.Duration, dependsOn []string, engine *template.Engine, data map[string]interface{}) (ServiceSpec, error) {
	props := cfg.PropertiesPath(svc)
	ctx := template.MergeContexts(data, map[string]interface{}{
		"InstallDir": cfg.InstallDir,
		"Properties": props,
		"Service":    svc.Name,
	})

	args, err := engine.RenderAll(id+".args", svc.Args, ctx)
	if err != nil {
		return ServiceSpec{}, fmt.Errorf("failed to render arguments for %s: %w", svc.Name, err)
	}

	return ServiceSpec{
		ID:             id,
		Name:           svc.Name,
		StartCommand:   svc.StartCommand,
		StopCommand:    svc.StopCommand,
		PropertiesPath: props,
		Window:         window,
		DependsOn:      append([]string(nil), dependsOn...),
		args:           args,
	}, nil
}

// Args returns the rendered extra arguments.
func (s ServiceSpec) Args() []string {
	return append([]string(nil), s.args...)
}

// StartArgs is the properties file followed by the extra arguments.
func (s ServiceSpec) StartArgs() []string {
	return append([]string{s.PropertiesPath}, s.args...)
}

// StopArgs is the properties file alone.
func (s ServiceSpec) StopArgs() []string {
	return []string{s.PropertiesPath}
}
