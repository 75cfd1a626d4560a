package chain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"auditarmor/internal/chain/metrics"
)

// Notifier is told about every entry after it has been durably appended. It
// runs inside the write lock, so calls arrive in chain order; it must not block.
type Notifier interface {
	Notify(ctx context.Context, entry Entry)
}

// Log is a hash-chained append-only log stored in one file.
type Log struct {
	path     string
	lockPath string

	// mu serializes appends against each other and against readers in this
	// process; fileLock extends that to other processes.
	mu       sync.RWMutex
	fileLock bool

	clock    func() time.Time
	logger   *slog.Logger
	metrics  *metrics.Metrics
	tracer   trace.Tracer
	notifier Notifier
}

// Option configures a Log.
type Option func(*Log)

// WithClock overrides the source of entry timestamps.
func WithClock(clock func() time.Time) Option {
	return func(l *Log) {
		if clock != nil {
			l.clock = clock
		}
	}
}

// WithLogger sets the logger used for append failures and lock release errors.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Log) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Log) {
		l.metrics = m
	}
}

// WithTracer overrides the tracer taken from the global otel provider.
func WithTracer(tracer trace.Tracer) Option {
	return func(l *Log) {
		if tracer != nil {
			l.tracer = tracer
		}
	}
}

// WithFileLock guards every operation with an advisory lock on a sibling
// lock file, for deployments where several processes share the data directory.
func WithFileLock(enabled bool) Option {
	return func(l *Log) {
		l.fileLock = enabled
	}
}

// WithNotifier registers a callback for appended entries.
func WithNotifier(n Notifier) Option {
	return func(l *Log) {
		l.notifier = n
	}
}

// New opens the log in dataDir, creating the directory if needed. The log
// file itself is created by the first append.
func New(dataDir string, opts ...Option) (*Log, error) {
	if strings.TrimSpace(dataDir) == "" {
		return nil, fmt.Errorf("%w: data directory is required", ErrStorage)
	}
	if err := os.MkdirAll(dataDir, 0o750); err != nil {
		return nil, storageError("create data directory", err)
	}
	path := filepath.Join(dataDir, FileName)
	l := &Log{
		path:     path,
		lockPath: path + ".lock",
		clock:    time.Now,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer:   otel.Tracer("auditarmor/chain"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Path returns the location of the log file.
func (l *Log) Path() string {
	return l.path
}

// Append records event with payload as the new chain tip and returns the
// stored entry, hash included.
func (l *Log) Append(ctx context.Context, event string, payload Payload) (Entry, error) {
	ctx, span := l.tracer.Start(ctx, "chain.Append", trace.WithAttributes(
		attribute.String("chain.event", event),
	))
	defer span.End()

	start := time.Now()
	entry, err := l.append(ctx, event, payload)
	l.metrics.ObserveAppend(event, err, time.Since(start))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		l.logger.ErrorContext(ctx, "chain append failed",
			"event", event,
			"path", l.path,
			"error", err,
		)
		return Entry{}, err
	}
	span.SetAttributes(attribute.String("chain.hash", entry.Hash))
	return entry, nil
}

func (l *Log) append(ctx context.Context, event string, payload Payload) (Entry, error) {
	if strings.TrimSpace(event) == "" {
		return Entry{}, ErrInvalidEvent
	}
	if err := payload.Validate(); err != nil {
		return Entry{}, err
	}

	unlock, err := l.acquire(ctx, true)
	if err != nil {
		return Entry{}, err
	}
	defer unlock()

	prev := GenesisHash
	tip, ok, err := readTip(l.path)
	if err != nil {
		return Entry{}, err
	}
	if ok {
		prev = tip.Hash
	}

	entry := Entry{
		Timestamp:    l.clock().UTC(),
		Event:        event,
		Payload:      payload.Clone(),
		PreviousHash: prev,
	}
	if entry.Hash, err = ComputeHash(entry); err != nil {
		return Entry{}, err
	}
	record, err := encodeRecord(entry)
	if err != nil {
		return Entry{}, fmt.Errorf("encode record: %w", err)
	}
	if err := appendRecord(l.path, record); err != nil {
		return Entry{}, err
	}
	if l.notifier != nil {
		l.notifier.Notify(ctx, entry)
	}
	return entry, nil
}

// Length returns the number of persisted entries, 0 if nothing was appended yet.
func (l *Log) Length(ctx context.Context) (int, error) {
	unlock, err := l.acquire(ctx, false)
	if err != nil {
		return 0, err
	}
	defer unlock()
	return countRecords(l.path)
}

// Tip returns the most recent entry. ok is false for an empty log.
func (l *Log) Tip(ctx context.Context) (entry Entry, ok bool, err error) {
	unlock, err := l.acquire(ctx, false)
	if err != nil {
		return Entry{}, false, err
	}
	defer unlock()
	return readTip(l.path)
}

// Entries returns every persisted entry in append order.
func (l *Log) Entries(ctx context.Context) ([]Entry, error) {
	unlock, err := l.acquire(ctx, false)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var entries []Entry
	err = scanRecords(l.path, func(_ int, e Entry) error {
		entries = append(entries, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Summary is the length and tip of the chain read under one lock.
type Summary struct {
	Length int
	Tip    Entry
	HasTip bool
}

// Summary returns the length and the tip as of the same instant.
func (l *Log) Summary(ctx context.Context) (Summary, error) {
	unlock, err := l.acquire(ctx, false)
	if err != nil {
		return Summary{}, err
	}
	defer unlock()

	length, err := countRecords(l.path)
	if err != nil {
		return Summary{}, err
	}
	tip, ok, err := readTip(l.path)
	if err != nil {
		return Summary{}, err
	}
	return Summary{Length: length, Tip: tip, HasTip: ok}, nil
}

// Tail returns at most n of the newest entries in append order together with
// the total length. Only the end of the file is decoded.
func (l *Log) Tail(ctx context.Context, n int) (entries []Entry, total int, err error) {
	unlock, err := l.acquire(ctx, false)
	if err != nil {
		return nil, 0, err
	}
	defer unlock()

	total, err = countRecords(l.path)
	if err != nil {
		return nil, 0, err
	}
	if n <= 0 || total == 0 {
		return nil, total, nil
	}
	entries, err = readTail(l.path, min(n, total), total)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// Verify walks the persisted chain recomputing every hash and link. It
// returns true with a nil error only when every entry checks out. A broken
// link is reported as an *IntegrityError; unreadable storage as ErrStorage.
func (l *Log) Verify(ctx context.Context) (bool, error) {
	valid, _, err := l.VerifyLength(ctx)
	return valid, err
}

// VerifyLength is Verify that also reports how many entries the run checked.
func (l *Log) VerifyLength(ctx context.Context) (valid bool, length int, err error) {
	ctx, span := l.tracer.Start(ctx, "chain.Verify")
	defer span.End()

	length, err = l.verify(ctx)
	switch {
	case err == nil:
		l.metrics.IncrementVerification("valid")
		span.SetAttributes(attribute.Int("chain.length", length))
		return true, length, nil
	case errors.Is(err, ErrIntegrity):
		l.metrics.IncrementVerification("tampered")
		l.logger.WarnContext(ctx, "chain integrity violation", "path", l.path, "error", err)
	default:
		l.metrics.IncrementVerification("error")
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return false, 0, err
}

func (l *Log) verify(ctx context.Context) (int, error) {
	unlock, err := l.acquire(ctx, false)
	if err != nil {
		return 0, err
	}
	defer unlock()

	v := newVerifier()
	checked := 0
	err = scanRecords(l.path, func(n int, e Entry) error {
		checked = n
		return v.next(e)
	})
	if err != nil {
		return 0, err
	}
	return checked, nil
}

// acquire takes the in-process lock and, when enabled, the file lock. The
// returned func releases both.
func (l *Log) acquire(ctx context.Context, exclusive bool) (func(), error) {
	if exclusive {
		l.mu.Lock()
	} else {
		l.mu.RLock()
	}
	release := func() {
		if exclusive {
			l.mu.Unlock()
		} else {
			l.mu.RUnlock()
		}
	}
	if !l.fileLock {
		return release, nil
	}

	unlockFile, err := acquireFileLock(ctx, l.lockPath, exclusive)
	if err != nil {
		release()
		return nil, err
	}
	return func() {
		if err := unlockFile(); err != nil {
			l.logger.Error("release chain file lock", "path", l.lockPath, "error", err)
		}
		release()
	}, nil
}
