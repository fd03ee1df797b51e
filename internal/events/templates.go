package events

import (
	"fmt"
	"strings"
)

// MessageTemplateEngine produces the alert text for each reason.
type MessageTemplateEngine struct {
	templates map[EventReason]string
}

// NewMessageTemplateEngine creates a new message template engine with default templates.
func NewMessageTemplateEngine() *MessageTemplateEngine {
	engine := &MessageTemplateEngine{
		templates: make(map[EventReason]string),
	}
	engine.loadDefaultTemplates()
	return engine
}

func (e *MessageTemplateEngine) loadDefaultTemplates() {
	e.templates[ReasonServiceStartFailed] = "Error starting {{.Service}}.\n{{.Error}}"
	e.templates[ReasonServiceStopFailed] = "Error stopping {{.Service}}.\n{{.Error}}"
	e.templates[ReasonServiceExited] = "{{.Service}} exited unexpectedly.{{if .Error}}\n{{.Error}}{{end}}"
	e.templates[ReasonPropertiesChanged] = "{{.Service}} configuration changed; restart to apply"

	e.templates[ReasonTopicNameInvalid] = "A valid topic name must be specified"
	e.templates[ReasonTopicCreated] = "Topic created"
	e.templates[ReasonTopicCreateFailed] = "Error creating topic.\n{{.Error}}"
	e.templates[ReasonMessageSent] = "Message sent"
	e.templates[ReasonMessageSendFailed] = "Error sending message"
}

// Render generates a message for the given event reason and data.
func (e *MessageTemplateEngine) Render(reason EventReason, data EventData) string {
	template, exists := e.templates[reason]
	if !exists {
		return fmt.Sprintf("Event: %s for %s", string(reason), data.Service)
	}

	return e.renderTemplate(template, data)
}

// SetTemplate allows customizing the message template for a specific event reason.
func (e *MessageTemplateEngine) SetTemplate(reason EventReason, template string) {
	e.templates[reason] = template
}

// GetTemplate returns the template for a specific event reason.
func (e *MessageTemplateEngine) GetTemplate(reason EventReason) (string, bool) {
	template, exists := e.templates[reason]
	return template, exists
}

// renderTemplate substitutes EventData fields. Captured error output is
// inserted verbatim, so it is substituted last and never re-scanned.
func (e *MessageTemplateEngine) renderTemplate(template string, data EventData) string {
	result := e.renderConditional(template, "{{if .Error}}", "{{end}}", data.Error != "")

	result = strings.ReplaceAll(result, "{{.Service}}", data.Service)
	result = strings.ReplaceAll(result, "{{.Topic}}", data.Topic)
	result = strings.ReplaceAll(result, "{{.Error}}", data.Error)

	return result
}

// renderConditional handles a single {{if .Field}}content{{end}} block.
func (e *MessageTemplateEngine) renderConditional(template, startMarker, endMarker string, condition bool) string {
	startIndex := strings.Index(template, startMarker)
	if startIndex == -1 {
		return template
	}

	endIndex := strings.Index(template[startIndex:], endMarker)
	if endIndex == -1 {
		return template
	}
	endIndex += startIndex

	before := template[:startIndex]
	after := template[endIndex+len(endMarker):]
	if !condition {
		return before + after
	}
	content := template[startIndex+len(startMarker) : endIndex]
	return before + content + after
}
