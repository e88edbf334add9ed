package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/fintrust/auth-service/internal/core/domain"
	"github.com/fintrust/auth-service/internal/core/ports"
)

type captureService struct {
	mu     sync.Mutex
	events []ports.AuditEventInput
	done   chan struct{}
	want   int
}

func newCaptureService(want int) *captureService {
	return &captureService{done: make(chan struct{}), want: want}
}

func (s *captureService) Process(_ context.Context, event ports.AuditEventInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	if len(s.events) == s.want {
		close(s.done)
	}
	return nil
}

func (s *captureService) wait(t *testing.T) []ports.AuditEventInput {
	t.Helper()
	select {
	case <-s.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %d events", s.want)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ports.AuditEventInput, len(s.events))
	copy(out, s.events)
	return out
}

func TestDispatcher_DeliversEvents(t *testing.T) {
	svc := newCaptureService(3)
	d := NewDispatcher(2, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for _, email := range []string{"a@test.com", "b@test.com", "c@test.com"} {
		d.Record(ports.AuditEventInput{
			Email:     email,
			Action:    domain.AuditActionLogin,
			Outcome:   domain.AuditOutcomeSuccess,
			Timestamp: time.Now(),
		})
	}

	events := svc.wait(t)
	seen := map[string]bool{}
	for _, e := range events {
		seen[e.Email] = true
	}
	if len(seen) != 3 {
		t.Fatalf("expected 3 distinct emails, got %v", seen)
	}
}

func TestDispatcher_SameEmailSameShard(t *testing.T) {
	d := NewDispatcher(8, nil, zerolog.Nop())

	first := d.shardIndex("ana@test.com")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("ana@test.com"); got != first {
			t.Fatalf("shard index not stable: %d vs %d", got, first)
		}
	}
}

func TestDispatcher_PreservesPerEmailOrder(t *testing.T) {
	svc := newCaptureService(5)
	d := NewDispatcher(4, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	reasons := []string{"one", "two", "three", "four", "five"}
	for _, r := range reasons {
		d.Record(ports.AuditEventInput{Email: "ana@test.com", Reason: r})
	}

	events := svc.wait(t)
	for i, e := range events {
		if e.Reason != reasons[i] {
			t.Fatalf("events reordered at %d: got %q, want %q", i, e.Reason, reasons[i])
		}
	}
}

func TestDispatcher_RecordNeverBlocks(t *testing.T) {
	// No workers started: every shard buffer fills and further events
	// must be dropped instead of blocking the caller.
	d := NewDispatcher(1, nil, zerolog.Nop())

	finished := make(chan struct{})
	go func() {
		for i := 0; i < channelBuffer*2; i++ {
			d.Record(ports.AuditEventInput{Email: "ana@test.com"})
		}
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("Record blocked on a full shard buffer")
	}
}

func TestDispatcher_DefaultWorkerCount(t *testing.T) {
	d := NewDispatcher(0, nil, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}
