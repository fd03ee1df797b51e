package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("field '%s': %s", ve.Field, ve.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for multiple validation errors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}

	var messages []string
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// HasErrors returns true if there are any validation errors
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// Add adds a new validation error
func (ve *ValidationErrors) Add(field, message string, value ...interface{}) {
	var val interface{}
	if len(value) > 0 {
		val = value[0]
	}
	*ve = append(*ve, ValidationError{
		Field:   field,
		Value:   val,
		Message: message,
	})
}

func (ve *ValidationErrors) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		ve.Add(field, "is required", value)
	}
}

// Validate checks the configuration for values the supervisor cannot work with.
func (c *MinkafkaConfig) Validate() error {
	var errs ValidationErrors

	switch c.Platform {
	case "", PlatformAuto, PlatformWindows, PlatformUnix:
	default:
		errs.Add("platform", "must be one of auto, windows, unix", c.Platform)
	}

	validateService(&errs, "coordination", c.Coordination)
	validateService(&errs, "broker", c.Broker.ServiceConfig)
	if c.Coordination.Name != "" && c.Coordination.Name == c.Broker.Name {
		errs.Add("broker.name", "must differ from coordination.name", c.Broker.Name)
	}
	errs.required("broker.bootstrapServer", c.Broker.BootstrapServer)
	errs.required("topics.command", c.Topics.Command)
	if c.Topics.Partitions < 0 {
		errs.Add("topics.partitions", "must not be negative", c.Topics.Partitions)
	}
	if c.Topics.ReplicationFactor < 0 {
		errs.Add("topics.replicationFactor", "must not be negative", c.Topics.ReplicationFactor)
	}

	if c.Timing.CoordinationWindow < 0 {
		errs.Add("timing.coordinationWindow", "must not be negative", c.Timing.CoordinationWindow)
	}
	if c.Timing.BrokerWindow < 0 {
		errs.Add("timing.brokerWindow", "must not be negative", c.Timing.BrokerWindow)
	}
	if c.Timing.StopSettle < 0 {
		errs.Add("timing.stopSettle", "must not be negative", c.Timing.StopSettle)
	}
	if c.Timing.PublishTimeout <= 0 {
		errs.Add("timing.publishTimeout", "must be positive", c.Timing.PublishTimeout)
	}

	if c.Metrics.Enabled {
		errs.required("metrics.listen", c.Metrics.Listen)
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func validateService(errs *ValidationErrors, prefix string, svc ServiceConfig) {
	errs.required(prefix+".name", svc.Name)
	errs.required(prefix+".startCommand", svc.StartCommand)
	errs.required(prefix+".stopCommand", svc.StopCommand)
	errs.required(prefix+".properties", svc.Properties)
	for _, field := range []struct{ name, value string }{
		{"startCommand", svc.StartCommand},
		{"stopCommand", svc.StopCommand},
		{"properties", svc.Properties},
	} {
		if strings.ContainsAny(field.value, `/\`) {
			errs.Add(prefix+"."+field.name, "must be a bare name without directories", field.value)
		}
	}
}
