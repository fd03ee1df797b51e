package events

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageTemplateEngine_Render(t *testing.T) {
	engine := NewMessageTemplateEngine()

	tests := []struct {
		name   string
		reason EventReason
		data   EventData
		want   string
	}{
		{
			name:   "start failed",
			reason: ReasonServiceStartFailed,
			data:   EventData{Service: "Zookeeper", Error: "port in use"},
			want:   "Error starting Zookeeper.\nport in use",
		},
		{
			name:   "stop failed",
			reason: ReasonServiceStopFailed,
			data:   EventData{Service: "Kafka", Error: "No kafka server to stop"},
			want:   "Error stopping Kafka.\nNo kafka server to stop",
		},
		{
			name:   "exited with stderr",
			reason: ReasonServiceExited,
			data:   EventData{Service: "Kafka", Error: "OOM"},
			want:   "Kafka exited unexpectedly.\nOOM",
		},
		{
			name:   "exited without stderr",
			reason: ReasonServiceExited,
			data:   EventData{Service: "Kafka"},
			want:   "Kafka exited unexpectedly.",
		},
		{
			name:   "error text containing template markers is kept verbatim",
			reason: ReasonTopicCreateFailed,
			data:   EventData{Error: "bad {{.Service}}"},
			want:   "Error creating topic.\nbad {{.Service}}",
		},
		{name: "invalid topic", reason: ReasonTopicNameInvalid, want: "A valid topic name must be specified"},
		{name: "topic created", reason: ReasonTopicCreated, want: "Topic created"},
		{name: "message sent", reason: ReasonMessageSent, want: "Message sent"},
		{name: "message failed", reason: ReasonMessageSendFailed, want: "Error sending message"},
		{
			name:   "properties changed",
			reason: ReasonPropertiesChanged,
			data:   EventData{Service: "Kafka"},
			want:   "Kafka configuration changed; restart to apply",
		},
		{
			name:   "unknown reason",
			reason: EventReason("Other"),
			data:   EventData{Service: "Kafka"},
			want:   "Event: Other for Kafka",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, engine.Render(tt.reason, tt.data))
		})
	}
}

func TestEmitter_Emit(t *testing.T) {
	var mu sync.Mutex
	var got []Alert
	emitter := NewEmitter(func(a Alert) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, a)
	})
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	emitter.now = func() time.Time { return fixed }

	alert := emitter.Emit(ReasonServiceStartFailed, EventData{Service: "Zookeeper", Error: "boom\r\n"})

	require.Len(t, got, 1)
	assert.Equal(t, alert, got[0])
	assert.NotEmpty(t, alert.ID)
	assert.Equal(t, fixed, alert.Time)
	assert.Equal(t, EventTypeWarning, alert.Type)
	assert.Equal(t, "Zookeeper", alert.Service)
	assert.Equal(t, "Error starting Zookeeper.\nboom", alert.Message)

	second := emitter.Emit(ReasonTopicCreated, EventData{Topic: "orders"})
	assert.Equal(t, EventTypeNormal, second.Type)
	assert.NotEqual(t, alert.ID, second.ID)
}

func TestEmitter_NilHandler(t *testing.T) {
	emitter := NewEmitter(nil)
	alert := emitter.Emit(ReasonMessageSent, EventData{Topic: "t"})
	assert.Equal(t, "Message sent", alert.Message)
}

func TestEmitter_SetTemplate(t *testing.T) {
	emitter := NewEmitter(nil)
	emitter.SetTemplate(ReasonTopicCreated, "Topic {{.Topic}} created")

	tmpl, ok := emitter.GetTemplate(ReasonTopicCreated)
	require.True(t, ok)
	assert.Equal(t, "Topic {{.Topic}} created", tmpl)
	assert.Equal(t, "Topic orders created", emitter.Emit(ReasonTopicCreated, EventData{Topic: "orders"}).Message)
}
