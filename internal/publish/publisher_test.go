package publish

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minkafka/internal/events"
	"minkafka/internal/topics"
)

type alertRecorder struct {
	mu     sync.Mutex
	alerts []events.Alert
}

func (r *alertRecorder) handle(a events.Alert) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, a)
}

func (r *alertRecorder) messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, a := range r.alerts {
		out = append(out, a.Message)
	}
	return out
}

type flagRecorder struct {
	mu     sync.Mutex
	values []bool
}

func (f *flagRecorder) Set(enabled bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = append(f.values, enabled)
}

func (f *flagRecorder) get() []bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]bool(nil), f.values...)
}

type fakeSession struct {
	mu      sync.Mutex
	closed  int
	topic   string
	value   string
	publish func(ctx context.Context) (Status, error)
}

func (s *fakeSession) Publish(ctx context.Context, topic string, value []byte) (Status, error) {
	s.mu.Lock()
	s.topic = topic
	s.value = string(value)
	s.mu.Unlock()
	return s.publish(ctx)
}

func (s *fakeSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed++
	return nil
}

func (s *fakeSession) closeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

type fixture struct {
	alerts    *alertRecorder
	flag      *flagRecorder
	opened    int
	publisher *Publisher
}

func newFixture(session *fakeSession, openErr error, timeout time.Duration) *fixture {
	f := &fixture{alerts: &alertRecorder{}, flag: &flagRecorder{}}
	factory := func(bootstrapServer string) (Session, error) {
		f.opened++
		if openErr != nil {
			return nil, openErr
		}
		return session, nil
	}
	f.publisher = NewPublisher(factory, events.NewEmitter(f.alerts.handle), f.flag, nil, Options{
		BootstrapServer: "localhost:9092",
		Timeout:         timeout,
	})
	return f
}

func TestSend_Persisted(t *testing.T) {
	session := &fakeSession{publish: func(ctx context.Context) (Status, error) {
		return StatusPersisted, nil
	}}
	f := newFixture(session, nil, time.Second)

	res := f.publisher.Send(context.Background(), "orders", "hello")

	assert.True(t, res.Sent)
	assert.NoError(t, res.Err)
	assert.Equal(t, StatusPersisted, res.Status)
	assert.Equal(t, []string{"Message sent"}, f.alerts.messages())
	assert.Equal(t, "orders", session.topic)
	assert.Equal(t, "hello", session.value)
	assert.Equal(t, 1, session.closeCount())
	assert.Equal(t, []bool{false, true}, f.flag.get())
}

func TestSend_PossiblyPersistedCountsAsSent(t *testing.T) {
	session := &fakeSession{publish: func(ctx context.Context) (Status, error) {
		return StatusPossiblyPersisted, nil
	}}
	f := newFixture(session, nil, time.Second)

	res := f.publisher.Send(context.Background(), "orders", "hello")

	assert.True(t, res.Sent)
	assert.Equal(t, []string{"Message sent"}, f.alerts.messages())
}

func TestSend_NotPersisted(t *testing.T) {
	session := &fakeSession{publish: func(ctx context.Context) (Status, error) {
		return StatusNotPersisted, nil
	}}
	f := newFixture(session, nil, time.Second)

	res := f.publisher.Send(context.Background(), "orders", "hello")

	assert.False(t, res.Sent)
	var notPersisted *NotPersistedError
	require.ErrorAs(t, res.Err, &notPersisted)
	assert.Equal(t, StatusNotPersisted, notPersisted.Status)
	assert.Equal(t, []string{"Error sending message"}, f.alerts.messages())
	assert.Equal(t, 1, session.closeCount())
	assert.Equal(t, []bool{false, true}, f.flag.get())
}

func TestSend_PublishError(t *testing.T) {
	boom := errors.New("broker transport failure")
	session := &fakeSession{publish: func(ctx context.Context) (Status, error) {
		return StatusNotPersisted, boom
	}}
	f := newFixture(session, nil, time.Second)

	res := f.publisher.Send(context.Background(), "orders", "hello")

	assert.False(t, res.Sent)
	assert.ErrorIs(t, res.Err, boom)
	assert.Equal(t, []string{"Error sending message"}, f.alerts.messages())
	assert.Equal(t, 1, session.closeCount())
}

func TestSend_HangingSessionHonoursDeadline(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	session := &fakeSession{publish: func(ctx context.Context) (Status, error) {
		<-release
		return StatusPersisted, nil
	}}
	f := newFixture(session, nil, 100*time.Millisecond)

	started := time.Now()
	res := f.publisher.Send(context.Background(), "orders", "hello")
	elapsed := time.Since(started)

	assert.False(t, res.Sent)
	var timeoutErr *TimeoutError
	require.ErrorAs(t, res.Err, &timeoutErr)
	assert.Equal(t, 100*time.Millisecond, timeoutErr.Timeout)
	assert.Less(t, elapsed, 2*time.Second)
	assert.Equal(t, []string{"Error sending message"}, f.alerts.messages())
	assert.Equal(t, 1, session.closeCount())
	assert.Equal(t, []bool{false, true}, f.flag.get())
}

func TestSend_ContextAwareSessionTimesOut(t *testing.T) {
	session := &fakeSession{publish: func(ctx context.Context) (Status, error) {
		<-ctx.Done()
		return StatusNotPersisted, ctx.Err()
	}}
	f := newFixture(session, nil, 50*time.Millisecond)

	res := f.publisher.Send(context.Background(), "orders", "hello")

	var timeoutErr *TimeoutError
	assert.ErrorAs(t, res.Err, &timeoutErr)
	assert.Equal(t, 1, session.closeCount())
}

func TestSend_PanickingSessionIsContained(t *testing.T) {
	session := &fakeSession{publish: func(ctx context.Context) (Status, error) {
		panic("driver exploded")
	}}
	f := newFixture(session, nil, time.Second)

	var res Result
	assert.NotPanics(t, func() {
		res = f.publisher.Send(context.Background(), "orders", "hello")
	})
	assert.False(t, res.Sent)
	assert.ErrorContains(t, res.Err, "driver exploded")
	assert.Equal(t, []string{"Error sending message"}, f.alerts.messages())
	assert.Equal(t, 1, session.closeCount())
}

func TestSend_OpenFailure(t *testing.T) {
	f := newFixture(nil, errors.New("no brokers"), time.Second)

	res := f.publisher.Send(context.Background(), "orders", "hello")

	assert.False(t, res.Sent)
	assert.ErrorContains(t, res.Err, "no brokers")
	assert.Equal(t, []string{"Error sending message"}, f.alerts.messages())
	assert.Equal(t, []bool{false, true}, f.flag.get())
}

func TestSend_InvalidTopic(t *testing.T) {
	session := &fakeSession{publish: func(ctx context.Context) (Status, error) {
		return StatusPersisted, nil
	}}
	f := newFixture(session, nil, time.Second)

	for _, name := range []string{"", "has space", "bad/slash"} {
		res := f.publisher.Send(context.Background(), name, "hello")
		var invalid *topics.ValidationError
		assert.ErrorAs(t, res.Err, &invalid, name)
	}

	assert.Equal(t, 0, f.opened)
	assert.Equal(t, 0, session.closeCount())
	assert.Equal(t, []string{
		"A valid topic name must be specified",
		"A valid topic name must be specified",
		"A valid topic name must be specified",
	}, f.alerts.messages())
	assert.Equal(t, []bool{false, true, false, true, false, true}, f.flag.get())
}

func TestNewPublisher_DefaultTimeout(t *testing.T) {
	p := NewPublisher(nil, events.NewEmitter(nil), nil, nil, Options{})
	assert.Equal(t, DefaultTimeout, p.opts.Timeout)
	assert.NotNil(t, p.factory)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "Persisted", StatusPersisted.String())
	assert.Equal(t, "PossiblyPersisted", StatusPossiblyPersisted.String())
	assert.Equal(t, "NotPersisted", StatusNotPersisted.String())
}
