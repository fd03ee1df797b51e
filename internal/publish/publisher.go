package publish

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"minkafka/internal/events"
	"minkafka/internal/metrics"
	"minkafka/internal/topics"
	"minkafka/pkg/logging"
)

// DefaultTimeout bounds one publish attempt.
const DefaultTimeout = 5 * time.Second

// Toggle is the caller-facing flag this operation owns.
type Toggle interface {
	Set(enabled bool)
}

// Options configures the publisher.
type Options struct {
	BootstrapServer string
	Timeout         time.Duration
}

// Result is the outcome of one Send call. Err is nil exactly when Sent.
type Result struct {
	Sent     bool
	Status   Status
	Duration time.Duration
	Err      error
}

// Publisher sends single messages to the broker.
type Publisher struct {
	factory SessionFactory
	alerts  *events.Emitter
	flag    Toggle
	metrics metrics.Collector
	opts    Options

	mu       sync.Mutex
	inFlight int
}

// NewPublisher creates a publisher. A nil factory means NewKafkaSession.
// flag and collector may be nil.
func NewPublisher(factory SessionFactory, emitter *events.Emitter, flag Toggle, collector metrics.Collector, opts Options) *Publisher {
	if factory == nil {
		factory = NewKafkaSession
	}
	if collector == nil {
		collector = metrics.NewNoopCollector()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Publisher{
		factory: factory,
		alerts:  emitter,
		flag:    flag,
		metrics: collector,
		opts:    opts,
	}
}

// Send validates topic and publishes content under the configured deadline.
// It raises "Message sent" when the broker reports the message persisted and
// "Error sending message" otherwise. Errors never escape as panics; they are
// reported in the Result. The send control is disabled while any call is in
// flight.
func (p *Publisher) Send(ctx context.Context, topic, content string) Result {
	p.acquire()
	defer p.release()

	if err := topics.ValidateName(topic); err != nil {
		logging.Warn("Publish", "Rejected topic name %q", topic)
		p.alerts.Emit(events.ReasonTopicNameInvalid, events.EventData{Topic: topic})
		p.metrics.MessagePublished(metrics.OutcomeInvalid, 0)
		return Result{Err: err}
	}

	req := Request{Topic: topic, Content: content, Timeout: p.opts.Timeout}
	started := time.Now()
	status, err := p.publish(ctx, req)
	res := Result{Status: status, Duration: time.Since(started)}

	switch {
	case err == nil && status != StatusNotPersisted:
		res.Sent = true
		logging.Info("Publish", "Message sent to %s (%s) in %s", topic, status, res.Duration.Round(time.Millisecond))
		p.alerts.Emit(events.ReasonMessageSent, events.EventData{Topic: topic})
		p.metrics.MessagePublished(metrics.OutcomeSuccess, res.Duration)
		return res

	case err == nil:
		err = &NotPersistedError{Topic: topic, Status: status}
	}

	res.Err = err
	outcome := metrics.OutcomeFailed
	var timeoutErr *TimeoutError
	if errors.As(err, &timeoutErr) {
		outcome = metrics.OutcomeTimeout
	}
	logging.Warn("Publish", "Sending to %s failed: %v", topic, err)
	p.alerts.Emit(events.ReasonMessageSendFailed, events.EventData{Topic: topic, Error: err.Error()})
	p.metrics.MessagePublished(outcome, res.Duration)
	return res
}

// publish opens a session, publishes under the deadline and closes the
// session on every path. A session that ignores its context still cannot
// hold the call past the deadline.
func (p *Publisher) publish(ctx context.Context, req Request) (Status, error) {
	session, err := p.factory(p.opts.BootstrapServer)
	if err != nil {
		return StatusNotPersisted, &NotPersistedError{Topic: req.Topic, Err: fmt.Errorf("failed to open session: %w", err)}
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			logging.Warn("Publish", "Closing session: %v", cerr)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, req.Timeout)
	defer cancel()

	type outcome struct {
		status Status
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{StatusNotPersisted, fmt.Errorf("publish panicked: %v", r)}
			}
		}()
		st, err := session.Publish(ctx, req.Topic, []byte(req.Content))
		done <- outcome{st, err}
	}()

	select {
	case o := <-done:
		if o.err != nil {
			if errors.Is(o.err, context.DeadlineExceeded) {
				return StatusNotPersisted, &TimeoutError{Topic: req.Topic, Timeout: req.Timeout}
			}
			return StatusNotPersisted, &NotPersistedError{Topic: req.Topic, Status: o.status, Err: o.err}
		}
		return o.status, nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return StatusNotPersisted, &TimeoutError{Topic: req.Topic, Timeout: req.Timeout}
		}
		return StatusNotPersisted, &NotPersistedError{Topic: req.Topic, Err: ctx.Err()}
	}
}

func (p *Publisher) acquire() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.inFlight++
	if p.inFlight == 1 && p.flag != nil {
		p.flag.Set(false)
	}
}

func (p *Publisher) release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.inFlight--
	if p.inFlight == 0 && p.flag != nil {
		p.flag.Set(true)
	}
}
