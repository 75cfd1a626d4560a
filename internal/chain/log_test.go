package chain

import (
	"bytes"
	"context"
	"encoding/hex"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"auditarmor/internal/chain/metrics"
)

type LogSuite struct {
	suite.Suite
	ctx context.Context
	dir string
	log *Log
}

func TestLogSuite(t *testing.T) {
	suite.Run(t, new(LogSuite))
}

func (s *LogSuite) SetupTest() {
	s.ctx = context.Background()
	s.dir = s.T().TempDir()
	l, err := New(s.dir)
	s.Require().NoError(err)
	s.log = l
}

func (s *LogSuite) appendN(n int) []Entry {
	entries := make([]Entry, 0, n)
	for i := range n {
		e, err := s.log.Append(s.ctx, "EVIDENCE_UPLOAD", Payload{
			"filename": String("file.pdf"),
			"index":    Int(int64(i)),
		})
		s.Require().NoError(err)
		entries = append(entries, e)
	}
	return entries
}

// rewrite replaces the log file with the given entries, hashes untouched.
func (s *LogSuite) rewrite(entries []Entry) {
	var buf bytes.Buffer
	for _, e := range entries {
		rec, err := encodeRecord(e)
		s.Require().NoError(err)
		buf.Write(rec)
	}
	s.Require().NoError(os.WriteFile(s.log.Path(), buf.Bytes(), 0o640))
}

func (s *LogSuite) TestNew() {
	s.Run("creates missing data directory", func() {
		dir := filepath.Join(s.T().TempDir(), "nested", "data")
		l, err := New(dir)
		s.Require().NoError(err)
		s.Equal(filepath.Join(dir, FileName), l.Path())

		info, err := os.Stat(dir)
		s.Require().NoError(err)
		s.True(info.IsDir())
	})

	s.Run("does not create the log file eagerly", func() {
		_, err := os.Stat(s.log.Path())
		s.True(os.IsNotExist(err))
	})

	s.Run("empty directory is rejected", func() {
		_, err := New("  ")
		s.ErrorIs(err, ErrStorage)
	})

	s.Run("uncreatable directory is a storage error", func() {
		blocker := filepath.Join(s.T().TempDir(), "file")
		s.Require().NoError(os.WriteFile(blocker, []byte("x"), 0o600))
		_, err := New(filepath.Join(blocker, "data"))
		s.ErrorIs(err, ErrStorage)
	})
}

func (s *LogSuite) TestAppend() {
	s.Run("first entry references genesis", func() {
		entries := s.appendN(1)
		s.Equal(GenesisHash, entries[0].PreviousHash)
		s.True(entries[0].IsGenesis())
	})

	s.Run("each entry references its predecessor", func() {
		entries := s.appendN(5)
		all, err := s.log.Entries(s.ctx)
		s.Require().NoError(err)
		s.Require().Len(all, 6)
		for i := 1; i < len(all); i++ {
			s.Equal(all[i-1].Hash, all[i].PreviousHash, "entry %d", i)
		}
		s.Equal(entries[4].Hash, all[5].Hash)
	})

	s.Run("stored hashes match recomputed digests", func() {
		all, err := s.log.Entries(s.ctx)
		s.Require().NoError(err)
		for _, e := range all {
			h, err := ComputeHash(e)
			s.Require().NoError(err)
			s.Equal(e.Hash, h)
		}
	})

	s.Run("empty event is rejected", func() {
		_, err := s.log.Append(s.ctx, " ", nil)
		s.ErrorIs(err, ErrInvalidEvent)
	})

	s.Run("invalid payload is rejected before touching storage", func() {
		before, err := s.log.Length(s.ctx)
		s.Require().NoError(err)

		_, err = s.log.Append(s.ctx, "EVIDENCE_UPLOAD", Payload{"bad": {}})
		s.ErrorIs(err, ErrInvalidPayload)

		after, err := s.log.Length(s.ctx)
		s.Require().NoError(err)
		s.Equal(before, after)
	})

	s.Run("empty payload is accepted", func() {
		e, err := s.log.Append(s.ctx, "HEARTBEAT", nil)
		s.Require().NoError(err)
		s.NotNil(e.Payload)
		s.Empty(e.Payload)
	})

	s.Run("caller payload is not aliased", func() {
		p := Payload{"filename": String("a.pdf")}
		e, err := s.log.Append(s.ctx, "EVIDENCE_UPLOAD", p)
		s.Require().NoError(err)
		p["filename"] = String("b.pdf")
		got, _ := e.Payload["filename"].AsString()
		s.Equal("a.pdf", got)
	})
}

func (s *LogSuite) TestExampleScenario() {
	first, err := s.log.Append(s.ctx, "EVIDENCE_UPLOAD", Payload{
		"filename": String("report.pdf"),
		"sha256":   String("abc123"),
		"size":     Int(4096),
	})
	s.Require().NoError(err)
	s.Equal(GenesisHash, first.PreviousHash)
	s.Equal("EVIDENCE_UPLOAD", first.Event)
	s.Len(first.Hash, 64)
	_, err = hex.DecodeString(first.Hash)
	s.NoError(err)

	second, err := s.log.Append(s.ctx, "EVIDENCE_UPLOAD", Payload{
		"filename": String("minutes.docx"),
		"sha256":   String("def456"),
		"size":     Int(1024),
	})
	s.Require().NoError(err)
	s.Equal(first.Hash, second.PreviousHash)
	s.NotEqual(first.Hash, second.Hash)
}

func (s *LogSuite) TestTimestampsComeFromClock() {
	at := time.Date(2026, 1, 17, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	l, err := New(s.dir, WithClock(func() time.Time { return at }))
	s.Require().NoError(err)

	e, err := l.Append(s.ctx, "EVIDENCE_UPLOAD", nil)
	s.Require().NoError(err)
	s.Equal(time.UTC, e.Timestamp.Location())
	s.True(at.Equal(e.Timestamp))

	tip, ok, err := l.Tip(s.ctx)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(e, tip)
}

func (s *LogSuite) TestLength() {
	s.Run("zero before any append", func() {
		n, err := s.log.Length(s.ctx)
		s.Require().NoError(err)
		s.Equal(0, n)
	})

	s.Run("matches number of appends", func() {
		s.appendN(7)
		n, err := s.log.Length(s.ctx)
		s.Require().NoError(err)
		s.Equal(7, n)
	})

	s.Run("survives reopening the directory", func() {
		reopened, err := New(s.dir)
		s.Require().NoError(err)
		n, err := reopened.Length(s.ctx)
		s.Require().NoError(err)
		s.Equal(7, n)

		e, err := reopened.Append(s.ctx, "EVIDENCE_UPLOAD", nil)
		s.Require().NoError(err)
		tip, _, err := s.log.Tip(s.ctx)
		s.Require().NoError(err)
		s.Equal(e.Hash, tip.Hash)
	})
}

func (s *LogSuite) TestTip() {
	_, ok, err := s.log.Tip(s.ctx)
	s.Require().NoError(err)
	s.False(ok)

	entries := s.appendN(3)
	tip, ok, err := s.log.Tip(s.ctx)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(entries[2].Hash, tip.Hash)
}

func (s *LogSuite) TestTipOfLargeRecords() {
	big := string(bytes.Repeat([]byte("x"), 3*tailChunk))
	_, err := s.log.Append(s.ctx, "EVIDENCE_UPLOAD", Payload{"blob": String(big)})
	s.Require().NoError(err)
	second, err := s.log.Append(s.ctx, "EVIDENCE_UPLOAD", Payload{"blob": String(big + "y")})
	s.Require().NoError(err)

	tip, ok, err := s.log.Tip(s.ctx)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(second.Hash, tip.Hash)

	valid, err := s.log.Verify(s.ctx)
	s.Require().NoError(err)
	s.True(valid)
}

func (s *LogSuite) TestSummary() {
	summary, err := s.log.Summary(s.ctx)
	s.Require().NoError(err)
	s.Equal(Summary{}, summary)

	entries := s.appendN(4)
	summary, err = s.log.Summary(s.ctx)
	s.Require().NoError(err)
	s.Equal(4, summary.Length)
	s.True(summary.HasTip)
	s.Equal(entries[3].Hash, summary.Tip.Hash)
}

func (s *LogSuite) TestTail() {
	s.Run("empty log", func() {
		entries, total, err := s.log.Tail(s.ctx, 10)
		s.Require().NoError(err)
		s.Zero(total)
		s.Empty(entries)
	})

	appended := s.appendN(6)

	cases := []struct {
		name string
		n    int
		want []Entry
	}{
		{"newest few", 2, appended[4:]},
		{"exactly the length", 6, appended},
		{"more than the length", 50, appended},
		{"non-positive", 0, nil},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			entries, total, err := s.log.Tail(s.ctx, tc.n)
			s.Require().NoError(err)
			s.Equal(6, total)
			s.Require().Len(entries, len(tc.want))
			for i := range tc.want {
				s.Equal(tc.want[i].Hash, entries[i].Hash)
			}
		})
	}
}

func (s *LogSuite) TestTailAcrossChunks() {
	big := string(bytes.Repeat([]byte("x"), tailChunk+17))
	var appended []Entry
	for i := range 5 {
		e, err := s.log.Append(s.ctx, "EVIDENCE_UPLOAD", Payload{"blob": String(big), "index": Int(int64(i))})
		s.Require().NoError(err)
		appended = append(appended, e)
	}

	entries, total, err := s.log.Tail(s.ctx, 3)
	s.Require().NoError(err)
	s.Equal(5, total)
	s.Require().Len(entries, 3)
	s.Equal(appended[2].Hash, entries[0].Hash)
	s.Equal(appended[4].Hash, entries[2].Hash)
}

func (s *LogSuite) TestTailReportsCorruptLine() {
	s.appendN(3)
	raw, err := os.ReadFile(s.log.Path())
	s.Require().NoError(err)
	lines := bytes.SplitAfter(raw, []byte("\n"))
	lines[1] = []byte("not json\n")
	s.Require().NoError(os.WriteFile(s.log.Path(), bytes.Join(lines, nil), 0o640))

	_, _, err = s.log.Tail(s.ctx, 1)
	s.Require().NoError(err)
	_, _, err = s.log.Tail(s.ctx, 2)
	s.Require().ErrorIs(err, ErrCorruptRecord)
	s.Contains(err.Error(), "line 2")
}

func (s *LogSuite) TestVerifyLength() {
	s.appendN(5)
	valid, length, err := s.log.VerifyLength(s.ctx)
	s.Require().NoError(err)
	s.True(valid)
	s.Equal(5, length)
}

func (s *LogSuite) TestVerify() {
	s.Run("missing log is valid", func() {
		valid, err := s.log.Verify(s.ctx)
		s.Require().NoError(err)
		s.True(valid)
	})

	s.Run("untouched log is valid", func() {
		s.appendN(4)
		valid, err := s.log.Verify(s.ctx)
		s.Require().NoError(err)
		s.True(valid)
	})

	s.Run("negative zero payload stays valid", func() {
		_, err := s.log.Append(s.ctx, "FLEET_ADJUSTMENT", Payload{"delta": Float(math.Copysign(0, -1))})
		s.Require().NoError(err)
		s.appendN(1)

		valid, err := s.log.Verify(s.ctx)
		s.Require().NoError(err)
		s.True(valid)
	})
}

func (s *LogSuite) TestVerifyDetectsTampering() {
	cases := map[string]func(entries []Entry) []Entry{
		"payload value": func(entries []Entry) []Entry {
			entries[1].Payload["filename"] = String("forged.pdf")
			return entries
		},
		"event": func(entries []Entry) []Entry {
			entries[1].Event = "EVIDENCE_DELETE"
			return entries
		},
		"timestamp": func(entries []Entry) []Entry {
			entries[1].Timestamp = entries[1].Timestamp.Add(-time.Hour)
			return entries
		},
		"stored hash": func(entries []Entry) []Entry {
			entries[1].Hash = GenesisHash
			return entries
		},
		"previous hash rehashed": func(entries []Entry) []Entry {
			entries[1].PreviousHash = GenesisHash
			entries[1].Hash, _ = ComputeHash(entries[1])
			return entries
		},
		"entry removed": func(entries []Entry) []Entry {
			return append(entries[:1], entries[2:]...)
		},
	}

	for name, tamper := range cases {
		s.Run(name, func() {
			s.SetupTest()
			s.rewrite(tamper(s.appendN(4)))

			valid, err := s.log.Verify(s.ctx)
			s.False(valid)
			s.Require().ErrorIs(err, ErrIntegrity)
			var ie *IntegrityError
			s.Require().ErrorAs(err, &ie)
			s.Equal(2, ie.Line)
		})
	}
}

func (s *LogSuite) TestCorruptRecords() {
	s.Run("partial final record fails append", func() {
		s.SetupTest()
		s.appendN(2)
		f, err := os.OpenFile(s.log.Path(), os.O_APPEND|os.O_WRONLY, 0o640)
		s.Require().NoError(err)
		_, err = f.WriteString(`{"timestamp":"2026-01-17T10:00:00Z","ev`)
		s.Require().NoError(err)
		s.Require().NoError(f.Close())

		_, err = s.log.Append(s.ctx, "EVIDENCE_UPLOAD", nil)
		s.ErrorIs(err, ErrCorruptRecord)
		s.ErrorIs(err, ErrStorage)

		_, err = s.log.Length(s.ctx)
		s.ErrorIs(err, ErrCorruptRecord)

		valid, err := s.log.Verify(s.ctx)
		s.False(valid)
		s.ErrorIs(err, ErrStorage)
	})

	s.Run("unparseable final line fails append", func() {
		s.SetupTest()
		s.appendN(1)
		f, err := os.OpenFile(s.log.Path(), os.O_APPEND|os.O_WRONLY, 0o640)
		s.Require().NoError(err)
		_, err = f.WriteString("not json\n")
		s.Require().NoError(err)
		s.Require().NoError(f.Close())

		_, err = s.log.Append(s.ctx, "EVIDENCE_UPLOAD", nil)
		s.ErrorIs(err, ErrCorruptRecord)

		_, err = s.log.Entries(s.ctx)
		s.ErrorIs(err, ErrCorruptRecord)
	})
}

func (s *LogSuite) TestConcurrentAppends() {
	const writers = 32
	var wg sync.WaitGroup
	results := make([]Entry, writers)
	errs := make([]error, writers)
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = s.log.Append(s.ctx, "EVIDENCE_UPLOAD", Payload{"writer": Int(int64(i))})
		}()
	}
	wg.Wait()

	seen := make(map[string]bool, writers)
	for i, err := range errs {
		s.Require().NoError(err, "writer %d", i)
		s.False(seen[results[i].Hash], "duplicate entry hash")
		seen[results[i].Hash] = true
	}
	s.assertNoForks(writers)
}

func (s *LogSuite) TestConcurrentLogsWithFileLock() {
	const (
		instances = 4
		perLog    = 10
	)
	var wg sync.WaitGroup
	for range instances {
		l, err := New(s.dir, WithFileLock(true))
		s.Require().NoError(err)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perLog {
				_, err := l.Append(s.ctx, "EVIDENCE_UPLOAD", nil)
				assert.NoError(s.T(), err)
			}
		}()
	}
	wg.Wait()
	s.assertNoForks(instances * perLog)
}

func (s *LogSuite) TestFileLockHonorsContext() {
	l, err := New(s.dir, WithFileLock(true))
	s.Require().NoError(err)

	holder, err := acquireFileLock(s.ctx, filepath.Join(s.dir, FileName+".lock"), true)
	s.Require().NoError(err)
	defer func() { s.NoError(holder()) }()

	ctx, cancel := context.WithTimeout(s.ctx, 50*time.Millisecond)
	defer cancel()
	_, err = l.Append(ctx, "EVIDENCE_UPLOAD", nil)
	s.ErrorIs(err, ErrStorage)
	s.ErrorIs(err, context.DeadlineExceeded)
}

func (s *LogSuite) assertNoForks(want int) {
	all, err := s.log.Entries(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, want)

	predecessors := make(map[string]int, len(all))
	for _, e := range all {
		predecessors[e.PreviousHash]++
	}
	for prev, n := range predecessors {
		s.Equal(1, n, "hash %s is claimed as predecessor %d times", prev, n)
	}
	valid, err := s.log.Verify(s.ctx)
	s.Require().NoError(err)
	s.True(valid)
}

type recordingNotifier struct {
	mu      sync.Mutex
	entries []Entry
}

func (n *recordingNotifier) Notify(_ context.Context, e Entry) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.entries = append(n.entries, e)
}

func TestLogNotifiesAfterAppend(t *testing.T) {
	n := &recordingNotifier{}
	l, err := New(t.TempDir(), WithNotifier(n))
	require.NoError(t, err)

	e, err := l.Append(context.Background(), "EVIDENCE_UPLOAD", nil)
	require.NoError(t, err)
	_, err = l.Append(context.Background(), "", nil)
	require.Error(t, err)

	require.Len(t, n.entries, 1)
	assert.Equal(t, e.Hash, n.entries[0].Hash)
}

func TestLogNotifiesInChainOrder(t *testing.T) {
	n := &recordingNotifier{}
	l, err := New(t.TempDir(), WithNotifier(n))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := l.Append(context.Background(), "EVIDENCE_UPLOAD", Payload{"index": Int(int64(i))})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	entries, err := l.Entries(context.Background())
	require.NoError(t, err)
	require.Len(t, n.entries, len(entries))
	for i, e := range entries {
		assert.Equal(t, e.Hash, n.entries[i].Hash, "notification %d", i)
	}
}

func TestLogMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	l, err := New(t.TempDir(), WithMetrics(m))
	require.NoError(t, err)
	ctx := context.Background()

	_, err = l.Append(ctx, "EVIDENCE_UPLOAD", nil)
	require.NoError(t, err)
	_, err = l.Append(ctx, "", nil)
	require.Error(t, err)
	_, err = l.Verify(ctx)
	require.NoError(t, err)

	assert.InDelta(t, 1, testutil.ToFloat64(m.Appends.WithLabelValues("EVIDENCE_UPLOAD", "ok")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Appends.WithLabelValues("", "error")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Verifications.WithLabelValues("valid")), 0)
}
