// Package wizard drives linear multi-step creation flows: a draft object
// accumulates field values across ordered steps, each gated by
// validation, and is committed with a single backend call from the
// terminal step.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"invdesk/internal/validation"

	"github.com/google/uuid"
)

var (
	// ErrAtStart is returned by Back from the initial step.
	ErrAtStart = errors.New("wizard: already at first step")
	// ErrAtTerminal is returned by Next from the terminal step.
	ErrAtTerminal = errors.New("wizard: at terminal step, use Submit")
	// ErrNotTerminal is returned by Submit before the terminal step.
	ErrNotTerminal = errors.New("wizard: not at terminal step")
	// ErrSubmitInFlight is returned while a submission is pending.
	ErrSubmitInFlight = errors.New("wizard: submit already in flight")
	// ErrDone is returned once the wizard session has committed.
	ErrDone = errors.New("wizard: session already committed")
)

// Step describes one state of a flow. Steps are strictly ordered; Branch
// may skip forward to a named step (the upload/manual fork), but never
// backward.
type Step[D any] struct {
	ID string
	// Validate gates leaving this step via Next or Submit. A nil func or
	// an empty result passes.
	Validate func(D) *validation.ValidationErrors
	// Branch picks the next step id from the draft. When nil the
	// following step in declaration order is used.
	Branch func(D) string
	// Load runs when the step is first entered, for data the step needs
	// (e.g. supplier choices). It is never re-run on re-entry, so
	// navigating Back and forward cannot duplicate fetches.
	Load func(context.Context, D) error
}

// CommitFunc performs the single terminal network mutation and returns
// the identifier of the created entity.
type CommitFunc[D any] func(context.Context, D) (string, error)

// CommitResult reports a successful submission.
type CommitResult struct {
	EntityID string
}

// Controller is the finite-state machine for one wizard session. It is
// safe for use from a single goroutine per session plus a concurrent
// Submit guard.
type Controller[D any] struct {
	id       uuid.UUID
	steps    []Step[D]
	index    map[string]int
	newDraft func() D
	commit   CommitFunc[D]

	mu       sync.Mutex
	draft    D
	current  int
	history  []int
	loaded   map[string]bool
	inFlight bool
	done     bool
}

// New builds a controller positioned at the first step with a fresh
// draft. newDraft is also used by Cancel to discard entered data.
func New[D any](newDraft func() D, commit CommitFunc[D], steps ...Step[D]) (*Controller[D], error) {
	if len(steps) == 0 {
		return nil, errors.New("wizard: at least one step required")
	}
	index := make(map[string]int, len(steps))
	for i, s := range steps {
		if s.ID == "" {
			return nil, fmt.Errorf("wizard: step %d has no id", i)
		}
		if _, dup := index[s.ID]; dup {
			return nil, fmt.Errorf("wizard: duplicate step id %q", s.ID)
		}
		index[s.ID] = i
	}
	return &Controller[D]{
		id:       uuid.New(),
		steps:    steps,
		index:    index,
		newDraft: newDraft,
		commit:   commit,
		draft:    newDraft(),
		loaded:   make(map[string]bool),
	}, nil
}

// ID is the session identifier.
func (c *Controller[D]) ID() uuid.UUID { return c.id }

// Current returns the id of the current step.
func (c *Controller[D]) Current() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.steps[c.current].ID
}

// Draft returns the in-progress draft for the caller to edit.
func (c *Controller[D]) Draft() D {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// AtTerminal reports whether the session is on the last step.
func (c *Controller[D]) AtTerminal() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current == len(c.steps)-1
}

// Done reports whether the session has committed.
func (c *Controller[D]) Done() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

// Enter runs the initial step's loader, if any. Call once after New.
func (c *Controller[D]) Enter(ctx context.Context) error {
	c.mu.Lock()
	step := c.steps[c.current]
	draft := c.draft
	c.mu.Unlock()
	return c.runLoad(ctx, step, draft)
}

// Next validates the current step and advances. On validation failure
// the state does not change and the offending fields are returned.
func (c *Controller[D]) Next(ctx context.Context) (*validation.ValidationErrors, error) {
	c.mu.Lock()
	if c.done {
		c.mu.Unlock()
		return nil, ErrDone
	}
	step := c.steps[c.current]
	if step.Validate != nil {
		if ve := step.Validate(c.draft); ve.HasErrors() {
			c.mu.Unlock()
			return ve, nil
		}
	}
	if c.current == len(c.steps)-1 {
		c.mu.Unlock()
		return nil, ErrAtTerminal
	}

	next := c.current + 1
	if step.Branch != nil {
		id := step.Branch(c.draft)
		i, ok := c.index[id]
		if !ok {
			c.mu.Unlock()
			return nil, fmt.Errorf("wizard: branch to unknown step %q", id)
		}
		if i <= c.current {
			c.mu.Unlock()
			return nil, fmt.Errorf("wizard: branch to %q would go backward", id)
		}
		next = i
	}

	c.history = append(c.history, c.current)
	c.current = next
	entered := c.steps[next]
	draft := c.draft
	c.mu.Unlock()

	if err := c.runLoad(ctx, entered, draft); err != nil {
		// Entering failed; fall back so the user can retry Next.
		c.mu.Lock()
		c.current = c.history[len(c.history)-1]
		c.history = c.history[:len(c.history)-1]
		c.mu.Unlock()
		return nil, err
	}
	return nil, nil
}

// Back returns to the previously visited step. The draft is untouched:
// fields entered on later steps survive a round trip.
func (c *Controller[D]) Back() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done {
		return ErrDone
	}
	if len(c.history) == 0 {
		return ErrAtStart
	}
	c.current = c.history[len(c.history)-1]
	c.history = c.history[:len(c.history)-1]
	return nil
}

// Cancel discards the draft and resets to the initial step. Allowed from
// any state.
func (c *Controller[D]) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = c.newDraft()
	c.current = 0
	c.history = nil
	c.loaded = make(map[string]bool)
	c.done = false
}

// Submit commits the draft from the terminal step. On failure the
// session stays on the terminal step with the draft intact, so the user
// can retry without re-entering data. Only one submission may be in
// flight at a time.
func (c *Controller[D]) Submit(ctx context.Context) (CommitResult, error) {
	c.mu.Lock()
	if c.done {
		c.mu.Unlock()
		return CommitResult{}, ErrDone
	}
	if c.inFlight {
		c.mu.Unlock()
		return CommitResult{}, ErrSubmitInFlight
	}
	if c.current != len(c.steps)-1 {
		c.mu.Unlock()
		return CommitResult{}, ErrNotTerminal
	}
	step := c.steps[c.current]
	if step.Validate != nil {
		if ve := step.Validate(c.draft); ve.HasErrors() {
			c.mu.Unlock()
			return CommitResult{}, ve
		}
	}
	c.inFlight = true
	draft := c.draft
	c.mu.Unlock()

	id, err := c.commit(ctx, draft)

	c.mu.Lock()
	c.inFlight = false
	if err == nil {
		c.done = true
	}
	c.mu.Unlock()

	if err != nil {
		return CommitResult{}, err
	}
	return CommitResult{EntityID: id}, nil
}

func (c *Controller[D]) runLoad(ctx context.Context, step Step[D], draft D) error {
	if step.Load == nil {
		return nil
	}
	c.mu.Lock()
	already := c.loaded[step.ID]
	c.mu.Unlock()
	if already {
		return nil
	}
	if err := step.Load(ctx, draft); err != nil {
		return err
	}
	c.mu.Lock()
	c.loaded[step.ID] = true
	c.mu.Unlock()
	return nil
}
