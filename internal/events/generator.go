package events

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"minkafka/pkg/logging"
)

// Emitter turns reasons into alerts and hands them to the single registered
// handler. It is safe for concurrent use as long as the handler is.
type Emitter struct {
	handler   AlertHandler
	templates *MessageTemplateEngine
	now       func() time.Time
}

// NewEmitter creates an emitter that delivers to handler. A nil handler
// means alerts are only logged.
func NewEmitter(handler AlertHandler) *Emitter {
	return &Emitter{
		handler:   handler,
		templates: NewMessageTemplateEngine(),
		now:       time.Now,
	}
}

// Emit renders and delivers one alert and returns it.
func (e *Emitter) Emit(reason EventReason, data EventData) Alert {
	data.Error = strings.TrimRight(data.Error, "\r\n")
	alert := Alert{
		ID:      uuid.NewString(),
		Time:    e.now(),
		Type:    getEventType(reason),
		Reason:  reason,
		Service: data.Service,
		Message: e.templates.Render(reason, data),
	}

	if alert.Type == EventTypeWarning {
		logging.Warn("Alert", "%s: %s", reason, alert.Message)
	} else {
		logging.Info("Alert", "%s: %s", reason, alert.Message)
	}

	if e.handler != nil {
		e.handler(alert)
	}
	return alert
}

// SetTemplate allows customizing the message template for a specific event reason.
func (e *Emitter) SetTemplate(reason EventReason, template string) {
	e.templates.SetTemplate(reason, template)
}

// GetTemplate returns the template for a specific event reason.
func (e *Emitter) GetTemplate(reason EventReason) (string, bool) {
	return e.templates.GetTemplate(reason)
}
