package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

// The genai client pulls in opencensus, which starts a stats worker at init.
var ignoreStatsWorker = goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start")

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, ignoreStatsWorker)
}

type fakeComposer struct {
	mu   sync.Mutex
	got  []Submission
	err  error
	done chan struct{}
}

func (f *fakeComposer) Compose(ctx context.Context, sub Submission) (*ComposeResult, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	f.mu.Lock()
	f.got = append(f.got, sub)
	n := len(f.got)
	f.mu.Unlock()
	if f.done != nil && n == cap(f.done) {
		close(f.done)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &ComposeResult{Type: sub.Type}, nil
}

func (f *fakeComposer) ids() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []string
	for _, s := range f.got {
		ids = append(ids, s.ID)
	}
	return strings.Join(ids, ",")
}

func cancelledContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}

func TestProcessor_ProcessesInOrder(t *testing.T) {
	fc := &fakeComposer{done: make(chan struct{}, 3)}
	p := NewProcessor(fc, 4, zaptest.NewLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- p.Run(ctx) }()

	for _, id := range []string{"a", "b", "c"} {
		if err := p.Submit(Submission{ID: id, Type: "journal"}); err != nil {
			t.Fatalf("Submit(%s) returned unexpected error: %v", id, err)
		}
	}

	select {
	case <-fc.done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for submissions to be processed")
	}
	cancel()
	if err := <-errc; err != nil {
		t.Errorf("Run() returned unexpected error: %v", err)
	}

	if got := fc.ids(); got != "a,b,c" {
		t.Errorf("processed %q, expected a,b,c", got)
	}
}

func TestProcessor_QueueFull(t *testing.T) {
	p := NewProcessor(&fakeComposer{}, 2, zaptest.NewLogger(t))

	for i := 0; i < 2; i++ {
		if err := p.Submit(Submission{}); err != nil {
			t.Fatalf("Submit() returned unexpected error: %v", err)
		}
	}
	if err := p.Submit(Submission{}); !errors.Is(err, ErrQueueFull) {
		t.Errorf("expected ErrQueueFull, got %v", err)
	}
	if p.Pending() != 2 {
		t.Errorf("Pending() = %d, expected 2", p.Pending())
	}
}

func TestProcessor_DrainsOnShutdown(t *testing.T) {
	fc := &fakeComposer{}
	p := NewProcessor(fc, 4, zaptest.NewLogger(t))

	for _, id := range []string{"a", "b", "c"} {
		if err := p.Submit(Submission{ID: id}); err != nil {
			t.Fatalf("Submit() returned unexpected error: %v", err)
		}
	}

	// queued work survives cancellation and is composed with a live context
	if err := p.Run(cancelledContext()); err != nil {
		t.Fatalf("Run() returned unexpected error: %v", err)
	}
	if got := fc.ids(); got != "a,b,c" {
		t.Errorf("processed %q, expected a,b,c", got)
	}
	if p.Pending() != 0 {
		t.Errorf("Pending() = %d after drain", p.Pending())
	}
	if err := p.Submit(Submission{ID: "late"}); !errors.Is(err, ErrProcessorStopped) {
		t.Errorf("expected ErrProcessorStopped, got %v", err)
	}
}

func TestProcessor_ComposeErrorDoesNotStopWorker(t *testing.T) {
	fc := &fakeComposer{err: errors.New("disk full")}
	p := NewProcessor(fc, 2, zaptest.NewLogger(t))

	_ = p.Submit(Submission{ID: "a"})
	_ = p.Submit(Submission{ID: "b"})

	if err := p.Run(cancelledContext()); err != nil {
		t.Fatalf("Run() returned unexpected error: %v", err)
	}
	if got := fc.ids(); got != "a,b" {
		t.Errorf("processed %q, expected a,b", got)
	}
}

func TestProcessor_WithJournalService(t *testing.T) {
	svc, store := newTestJournal(t, nil, nil)
	p := NewProcessor(svc, 1, zaptest.NewLogger(t))

	sub, err := svc.NewSubmission("", "queued entry")
	if err != nil {
		t.Fatalf("NewSubmission() returned unexpected error: %v", err)
	}
	if err := p.Submit(sub); err != nil {
		t.Fatalf("Submit() returned unexpected error: %v", err)
	}
	if err := p.Run(cancelledContext()); err != nil {
		t.Fatalf("Run() returned unexpected error: %v", err)
	}

	if got := readJournal(t, store, "journal"); !strings.Contains(got, "** Raw Input\nqueued entry") {
		t.Errorf("journal = %q", got)
	}
}

func TestNewProcessor_MinimumSize(t *testing.T) {
	p := NewProcessor(&fakeComposer{}, 0, nil)
	if err := p.Submit(Submission{}); err != nil {
		t.Errorf("Submit() returned unexpected error: %v", err)
	}
	if err := p.Submit(Submission{}); !errors.Is(err, ErrQueueFull) {
		t.Errorf("expected ErrQueueFull, got %v", err)
	}
}
