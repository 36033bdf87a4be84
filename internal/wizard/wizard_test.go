package wizard

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	"invdesk/internal/validation"
)

type testDraft struct {
	Supplier string
	Notes    string
	Loads    int
}

func testSteps(commitErr *error, committed *int) (func() *testDraft, CommitFunc[*testDraft], []Step[*testDraft]) {
	newDraft := func() *testDraft { return &testDraft{} }
	commit := func(ctx context.Context, d *testDraft) (string, error) {
		if commitErr != nil && *commitErr != nil {
			return "", *commitErr
		}
		if committed != nil {
			*committed++
		}
		return "PO-001", nil
	}
	steps := []Step[*testDraft]{
		{
			ID: "select",
			Load: func(ctx context.Context, d *testDraft) error {
				d.Loads++
				return nil
			},
			Validate: func(d *testDraft) *validation.ValidationErrors {
				ve := &validation.ValidationErrors{}
				validation.RequireField(ve, "supplier", d.Supplier)
				return ve
			},
		},
		{ID: "details"},
		{ID: "confirm"},
	}
	return newDraft, commit, steps
}

func newTestController(t *testing.T, commitErr *error, committed *int) *Controller[*testDraft] {
	t.Helper()
	newDraft, commit, steps := testSteps(commitErr, committed)
	ctrl, err := New(newDraft, commit, steps...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return ctrl
}

func mustNext(t *testing.T, ctrl *Controller[*testDraft]) {
	t.Helper()
	ve, err := ctrl.Next(context.Background())
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if ve.HasErrors() {
		t.Fatalf("Unexpected validation errors: %v", ve)
	}
}

func TestNew_AssignsSessionID(t *testing.T) {
	a := newTestController(t, nil, nil)
	b := newTestController(t, nil, nil)

	if a.ID() == uuid.Nil {
		t.Fatal("Expected a non-nil session id")
	}
	if a.ID() == b.ID() {
		t.Errorf("Sessions must get distinct ids, both %s", a.ID())
	}
}

func TestNext_ValidationGate(t *testing.T) {
	ctrl := newTestController(t, nil, nil)

	ve, err := ctrl.Next(context.Background())
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if !ve.HasErrors() {
		t.Fatal("Expected validation errors for missing supplier")
	}
	if fields := ve.Fields(); len(fields) != 1 || fields[0] != "supplier" {
		t.Errorf("Expected exactly [supplier], got %v", fields)
	}
	if ctrl.Current() != "select" {
		t.Errorf("State must not change on validation failure, got %q", ctrl.Current())
	}
}

func TestBack_NonDestructive(t *testing.T) {
	ctrl := newTestController(t, nil, nil)
	ctrl.Draft().Supplier = "SUP-1"
	mustNext(t, ctrl)

	// Enter data on step 2, go back, come forward again.
	ctrl.Draft().Notes = "urgent"
	if err := ctrl.Back(); err != nil {
		t.Fatalf("Back failed: %v", err)
	}
	if ctrl.Current() != "select" {
		t.Fatalf("Expected select, got %q", ctrl.Current())
	}
	mustNext(t, ctrl)

	if got := ctrl.Draft().Notes; got != "urgent" {
		t.Errorf("Back/Next round trip lost draft data, notes=%q", got)
	}
}

func TestBack_FromInitialStep(t *testing.T) {
	ctrl := newTestController(t, nil, nil)
	if err := ctrl.Back(); !errors.Is(err, ErrAtStart) {
		t.Errorf("Expected ErrAtStart, got %v", err)
	}
}

func TestLoad_RunsOncePerSession(t *testing.T) {
	ctrl := newTestController(t, nil, nil)
	ctx := context.Background()

	if err := ctrl.Enter(ctx); err != nil {
		t.Fatalf("Enter failed: %v", err)
	}
	ctrl.Draft().Supplier = "SUP-1"
	mustNext(t, ctrl)
	if err := ctrl.Back(); err != nil {
		t.Fatalf("Back failed: %v", err)
	}
	mustNext(t, ctrl)

	if loads := ctrl.Draft().Loads; loads != 1 {
		t.Errorf("Step loader must not re-run on re-entry, ran %d times", loads)
	}
}

func TestSubmit_OnlyFromTerminalStep(t *testing.T) {
	ctrl := newTestController(t, nil, nil)
	if _, err := ctrl.Submit(context.Background()); !errors.Is(err, ErrNotTerminal) {
		t.Errorf("Expected ErrNotTerminal, got %v", err)
	}
}

func TestSubmit_FailureKeepsDraftAndAllowsRetry(t *testing.T) {
	commitErr := errors.New("Server error")
	committed := 0
	ctrl := newTestController(t, &commitErr, &committed)

	ctrl.Draft().Supplier = "SUP-1"
	ctrl.Draft().Notes = "keep me"
	mustNext(t, ctrl)
	mustNext(t, ctrl)

	if !ctrl.AtTerminal() {
		t.Fatal("Expected terminal step")
	}

	_, err := ctrl.Submit(context.Background())
	if err == nil || err.Error() != "Server error" {
		t.Fatalf("Expected verbatim server error, got %v", err)
	}
	if ctrl.Current() != "confirm" {
		t.Errorf("Failed submit must stay on terminal step, got %q", ctrl.Current())
	}
	if ctrl.Draft().Notes != "keep me" {
		t.Errorf("Failed submit must keep draft intact, notes=%q", ctrl.Draft().Notes)
	}
	if ctrl.Done() {
		t.Error("Session must not be done after failed submit")
	}

	// Retry after the backend recovers.
	commitErr = nil
	result, err := ctrl.Submit(context.Background())
	if err != nil {
		t.Fatalf("Retry failed: %v", err)
	}
	if result.EntityID != "PO-001" {
		t.Errorf("Expected PO-001, got %q", result.EntityID)
	}
	if committed != 1 {
		t.Errorf("Expected exactly one commit, got %d", committed)
	}
	if !ctrl.Done() {
		t.Error("Session must be done after successful submit")
	}
}

func TestSubmit_SingleFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	commits := 0

	ctrl, err := New(
		func() *testDraft { return &testDraft{Supplier: "SUP-1"} },
		func(ctx context.Context, d *testDraft) (string, error) {
			close(started)
			<-release
			commits++
			return "PO-001", nil
		},
		Step[*testDraft]{ID: "only"},
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := ctrl.Submit(context.Background()); err != nil {
			t.Errorf("First submit failed: %v", err)
		}
	}()

	<-started
	if _, err := ctrl.Submit(context.Background()); !errors.Is(err, ErrSubmitInFlight) {
		t.Errorf("Expected ErrSubmitInFlight, got %v", err)
	}
	close(release)
	wg.Wait()

	if commits != 1 {
		t.Errorf("Expected one commit, got %d", commits)
	}
}

func TestSubmit_AfterDone(t *testing.T) {
	ctrl := newTestController(t, nil, nil)
	ctrl.Draft().Supplier = "SUP-1"
	mustNext(t, ctrl)
	mustNext(t, ctrl)
	if _, err := ctrl.Submit(context.Background()); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if _, err := ctrl.Submit(context.Background()); !errors.Is(err, ErrDone) {
		t.Errorf("Expected ErrDone, got %v", err)
	}
}

func TestCancel_DiscardsDraftAndResets(t *testing.T) {
	ctrl := newTestController(t, nil, nil)
	ctrl.Draft().Supplier = "SUP-1"
	ctrl.Draft().Notes = "scrap this"
	mustNext(t, ctrl)

	ctrl.Cancel()

	if ctrl.Current() != "select" {
		t.Errorf("Cancel must reset to initial step, got %q", ctrl.Current())
	}
	if d := ctrl.Draft(); d.Supplier != "" || d.Notes != "" {
		t.Errorf("Cancel must discard the draft, got %+v", d)
	}
}

func TestNext_FromTerminalStep(t *testing.T) {
	ctrl := newTestController(t, nil, nil)
	ctrl.Draft().Supplier = "SUP-1"
	mustNext(t, ctrl)
	mustNext(t, ctrl)

	if _, err := ctrl.Next(context.Background()); !errors.Is(err, ErrAtTerminal) {
		t.Errorf("Expected ErrAtTerminal, got %v", err)
	}
}
