package bucket

import (
	"context"
	"strconv"
	"sync/atomic"
	"testing"
	"time"
)

const uploadWindow = time.Minute

func uploadKey(i int64) string {
	return "upload:ip:198.51." + strconv.FormatInt((i>>8)&0xff, 10) + "." + strconv.FormatInt(i&0xff, 10)
}

// One client hammering the upload route, mostly denied once the window fills.
func BenchmarkAllowSingleClient(b *testing.B) {
	store := NewInMemoryBucketStore()
	ctx := context.Background()

	for b.Loop() {
		_, _ = store.Allow(ctx, "upload:ip:203.0.113.7", 20, uploadWindow)
	}
}

func BenchmarkAllowSingleClientParallel(b *testing.B) {
	store := NewInMemoryBucketStore()
	ctx := context.Background()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = store.Allow(ctx, "upload:ip:203.0.113.7", 20, uploadWindow)
		}
	})
}

func BenchmarkAllowManyClientsParallel(b *testing.B) {
	store := NewInMemoryBucketStore()
	ctx := context.Background()
	var next atomic.Int64

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = store.Allow(ctx, uploadKey(next.Add(1)), 20, uploadWindow)
		}
	})
}

// Sweep over a store where every window has gone idle.
func BenchmarkSweepIdleClients(b *testing.B) {
	ctx := context.Background()
	now := time.Date(2026, 1, 17, 10, 0, 0, 0, time.UTC)

	for range b.N {
		b.StopTimer()
		store := NewInMemoryBucketStore(WithMemoryClock(func() time.Time { return now }))
		for i := range int64(4096) {
			_, _ = store.Allow(ctx, uploadKey(i), 20, uploadWindow)
		}
		now = now.Add(2 * uploadWindow)
		b.StartTimer()

		store.Sweep(uploadWindow)
	}
}
