package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/bookvault/bookstore-api/internal/core/domain"
	"github.com/bookvault/bookstore-api/internal/core/ports"
)

type collectingService struct {
	mu      sync.Mutex
	entries []ports.AuditEntryInput
	failOn  domain.AuditAction
	done    chan struct{} // closed once want entries have arrived
	want    int
}

func newCollectingService(want int) *collectingService {
	return &collectingService{want: want, done: make(chan struct{})}
}

func (s *collectingService) Record(_ context.Context, in ports.AuditEntryInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, in)
	if len(s.entries) == s.want {
		close(s.done)
	}
	if s.failOn != "" && in.Action == s.failOn {
		return errors.New("insert failed")
	}
	return nil
}

func (s *collectingService) wait(t *testing.T) []ports.AuditEntryInput {
	t.Helper()
	select {
	case <-s.done:
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for audit entries")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ports.AuditEntryInput, len(s.entries))
	copy(out, s.entries)
	return out
}

func TestDispatcher_PreservesOrderPerISBN(t *testing.T) {
	const n = 20
	svc := newCollectingService(n)
	d := NewDispatcher(4, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		d.Enqueue(ports.AuditEntryInput{
			ISBN:      "9780134190440",
			Action:    domain.AuditBookUpdated,
			Timestamp: base.Add(time.Duration(i) * time.Second),
		})
	}

	entries := svc.wait(t)
	if len(entries) != n {
		t.Fatalf("expected %d entries, got %d", n, len(entries))
	}
	// Same ISBN always hashes to the same worker, so arrival order is
	// enqueue order.
	for i := 1; i < len(entries); i++ {
		if !entries[i].Timestamp.After(entries[i-1].Timestamp) {
			t.Fatalf("entries out of order at %d: %v !> %v", i, entries[i].Timestamp, entries[i-1].Timestamp)
		}
	}
}

func TestDispatcher_FailureDoesNotStopWorker(t *testing.T) {
	svc := newCollectingService(2)
	svc.failOn = domain.AuditBookCreated
	d := NewDispatcher(1, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(ports.AuditEntryInput{ISBN: "9780134190440", Action: domain.AuditBookCreated})
	d.Enqueue(ports.AuditEntryInput{ISBN: "9780134190440", Action: domain.AuditBookDeleted})

	entries := svc.wait(t)
	if len(entries) != 2 {
		t.Fatalf("expected the worker to survive a failed insert, got %d entries", len(entries))
	}
	if entries[1].Action != domain.AuditBookDeleted {
		t.Fatalf("second entry not processed: %+v", entries[1])
	}
}

func TestDispatcher_ShardIsDeterministic(t *testing.T) {
	d := NewDispatcher(8, newCollectingService(0), zerolog.Nop())

	first := d.shardIndex("9780134190440")
	for i := 0; i < 100; i++ {
		if d.shardIndex("9780134190440") != first {
			t.Fatalf("shard index not deterministic")
		}
	}
	if first < 0 || first >= 8 {
		t.Fatalf("shard index out of range: %d", first)
	}
}
