// Package publisher announces new chain tips to external systems.
//
// Announcements are best-effort: the chain file is the source of truth and a
// slow or failing sink never blocks an append. Entries queue in a bounded
// buffer, one worker fans each entry out to every sink, and each sink sits
// behind its own circuit breaker.
package publisher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"auditarmor/internal/chain"
	"auditarmor/pkg/platform/circuit"
)

const (
	defaultBuffer         = 256
	defaultPublishTimeout = 5 * time.Second
)

// Sink receives announcements for appended entries.
type Sink interface {
	// Name labels the sink in logs and metrics. It is read once, when the
	// publisher is created.
	Name() string
	Publish(ctx context.Context, entry chain.Entry) error
}

type sink struct {
	Sink
	name    string
	breaker *circuit.Breaker
}

// Publisher implements chain.Notifier.
type Publisher struct {
	sinks   []*sink
	inbox   chan chain.Entry
	logger  *slog.Logger
	metrics *Metrics
	timeout time.Duration

	breakerThreshold int
	breakerCooldown  time.Duration

	mu        sync.RWMutex
	closed    bool
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithBuffer sets how many announcements may wait for the worker.
func WithBuffer(n int) Option {
	return func(p *Publisher) {
		if n > 0 {
			p.inbox = make(chan chain.Entry, n)
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		if logger != nil {
			p.logger = logger
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(p *Publisher) {
		p.metrics = m
	}
}

// WithPublishTimeout bounds a single fan-out across all sinks.
func WithPublishTimeout(d time.Duration) Option {
	return func(p *Publisher) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithBreaker configures the per-sink circuit breakers.
func WithBreaker(threshold int, cooldown time.Duration) Option {
	return func(p *Publisher) {
		p.breakerThreshold = threshold
		p.breakerCooldown = cooldown
	}
}

// New starts a publisher delivering to sinks. Call Close to drain it.
func New(sinks []Sink, opts ...Option) *Publisher {
	p := &Publisher{
		inbox:            make(chan chain.Entry, defaultBuffer),
		logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
		timeout:          defaultPublishTimeout,
		breakerThreshold: 5,
		breakerCooldown:  time.Minute,
	}
	for _, opt := range opts {
		opt(p)
	}
	for _, s := range sinks {
		name := s.Name()
		p.sinks = append(p.sinks, &sink{
			Sink: s,
			name: name,
			breaker: circuit.New(name,
				circuit.WithFailureThreshold(p.breakerThreshold),
				circuit.WithCooldown(p.breakerCooldown),
			),
		})
	}

	p.wg.Add(1)
	go p.run()
	return p
}

// Notify queues entry for delivery. It never blocks: when the buffer is full
// or the publisher is closed the announcement is dropped.
func (p *Publisher) Notify(ctx context.Context, entry chain.Entry) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		p.drop(ctx, entry, "closed")
		return
	}
	select {
	case p.inbox <- entry:
	default:
		p.drop(ctx, entry, "buffer full")
	}
}

func (p *Publisher) drop(ctx context.Context, entry chain.Entry, reason string) {
	p.metrics.IncDropped()
	p.logger.WarnContext(ctx, "chain announcement dropped",
		"hash", entry.Hash,
		"reason", reason,
	)
}

// Close stops accepting announcements, delivers everything already queued,
// and closes sinks that implement io.Closer.
func (p *Publisher) Close() error {
	var err error
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.inbox)
		p.mu.Unlock()

		p.wg.Wait()

		for _, s := range p.sinks {
			if c, ok := s.Sink.(io.Closer); ok {
				if cerr := c.Close(); cerr != nil && err == nil {
					err = fmt.Errorf("close sink %s: %w", s.name, cerr)
				}
			}
		}
	})
	return err
}

func (p *Publisher) run() {
	defer p.wg.Done()
	for entry := range p.inbox {
		p.publish(entry)
	}
}

// publish fans entry out to every sink. Sinks are independent: one failing
// does not cancel the others.
func (p *Publisher) publish(entry chain.Entry) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	var g errgroup.Group
	for _, s := range p.sinks {
		g.Go(func() error {
			return p.publishTo(ctx, s, entry)
		})
	}
	if err := g.Wait(); err != nil {
		p.logger.Warn("chain announcement failed", "hash", entry.Hash, "error", err)
	}
}

func (p *Publisher) publishTo(ctx context.Context, s *sink, entry chain.Entry) error {
	if !s.breaker.Allow() {
		p.metrics.IncPublished(s.name, "skipped")
		return nil
	}

	if err := s.Publish(ctx, entry); err != nil {
		p.metrics.IncPublished(s.name, "error")
		if _, change := s.breaker.RecordFailure(); change.Opened {
			p.metrics.SetBreakerState(s.name, true)
			p.logger.Warn("sink circuit opened", "sink", s.name)
		}
		return fmt.Errorf("sink %s: %w", s.name, err)
	}

	p.metrics.IncPublished(s.name, "ok")
	if _, change := s.breaker.RecordSuccess(); change.Closed {
		p.metrics.SetBreakerState(s.name, false)
		p.logger.Info("sink circuit closed", "sink", s.name)
	}
	return nil
}
