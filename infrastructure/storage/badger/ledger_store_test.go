package badger

import (
	"context"
	"testing"

	"github.com/felixgeelhaar/goap-go/domain/agent"
	"github.com/felixgeelhaar/goap-go/domain/ledger"
)

func newTestStore(t *testing.T) *LedgerStore {
	t.Helper()

	cfg := DefaultConfig()
	cfg.GCInterval = 0 // No background GC in tests

	s, err := NewLedgerStore(cfg, WithInMemory())
	if err != nil {
		t.Fatalf("NewLedgerStore() error = %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return s
}

func TestLedgerStoreAppendAndList(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	entries := []ledger.Entry{
		{Type: ledger.EntryRunStarted, RunID: "run-1", State: agent.StateSense},
		{Type: ledger.EntryGoalSelected, RunID: "run-1", State: agent.StatePlan},
		{Type: ledger.EntryPlanComputed, RunID: "run-1", State: agent.StatePlan},
	}

	if err := s.Append(ctx, entries...); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	got, err := s.List(ctx, "run-1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("List() len = %d, want 3", len(got))
	}

	wantTypes := []ledger.EntryType{
		ledger.EntryRunStarted,
		ledger.EntryGoalSelected,
		ledger.EntryPlanComputed,
	}
	for i, want := range wantTypes {
		if got[i].Type != want {
			t.Errorf("List()[%d].Type = %q, want %q", i, got[i].Type, want)
		}
		if got[i].ID == "" {
			t.Errorf("List()[%d].ID is empty, want assigned", i)
		}
		if got[i].Timestamp.IsZero() {
			t.Errorf("List()[%d].Timestamp is zero, want assigned", i)
		}
	}
}

func TestLedgerStoreAppendOrderAcrossBatches(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if err := s.Append(ctx, ledger.Entry{Type: ledger.EntryRunStarted, RunID: "run-1"}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := s.Append(ctx, ledger.Entry{Type: ledger.EntryRunCompleted, RunID: "run-1"}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	got, err := s.List(ctx, "run-1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("List() len = %d, want 2", len(got))
	}
	if got[0].Type != ledger.EntryRunStarted || got[1].Type != ledger.EntryRunCompleted {
		t.Errorf("List() types = [%s %s], want append order", got[0].Type, got[1].Type)
	}
}

func TestLedgerStoreRunIsolation(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	err := s.Append(ctx,
		ledger.Entry{Type: ledger.EntryRunStarted, RunID: "run-a"},
		ledger.Entry{Type: ledger.EntryRunStarted, RunID: "run-b"},
		ledger.Entry{Type: ledger.EntryRunCompleted, RunID: "run-a"},
	)
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	gotA, err := s.List(ctx, "run-a")
	if err != nil {
		t.Fatalf("List(run-a) error = %v", err)
	}
	if len(gotA) != 2 {
		t.Errorf("List(run-a) len = %d, want 2", len(gotA))
	}

	gotB, err := s.List(ctx, "run-b")
	if err != nil {
		t.Fatalf("List(run-b) error = %v", err)
	}
	if len(gotB) != 1 {
		t.Errorf("List(run-b) len = %d, want 1", len(gotB))
	}

	runs, err := s.Runs(ctx)
	if err != nil {
		t.Fatalf("Runs() error = %v", err)
	}
	if len(runs) != 2 || runs[0] != "run-a" || runs[1] != "run-b" {
		t.Errorf("Runs() = %v, want [run-a run-b]", runs)
	}
}

func TestLedgerStoreSaveLedger(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	l := ledger.New("run-1")
	l.RecordRunStarted()
	l.RecordRunCompleted("has_shelter")

	if err := s.SaveLedger(ctx, l); err != nil {
		t.Fatalf("SaveLedger() error = %v", err)
	}

	got, err := s.List(ctx, "run-1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("List() len = %d, want 2", len(got))
	}
	if got[0].Type != ledger.EntryRunStarted {
		t.Errorf("List()[0].Type = %q, want run_started", got[0].Type)
	}
}

func TestLedgerStoreEmptyAppendAndUnknownRun(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if err := s.Append(ctx); err != nil {
		t.Errorf("Append() with no entries error = %v, want nil", err)
	}

	got, err := s.List(ctx, "unknown")
	if err != nil {
		t.Fatalf("List(unknown) error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("List(unknown) len = %d, want 0", len(got))
	}
}
