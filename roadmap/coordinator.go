// Package roadmap keeps the local copy of the learning roadmap in sync with
// the service while giving the user instantaneous checklist feedback.
// Toggles are applied locally first and confirmed in the background; a
// failed confirmation is corrected by refetching the whole profile rather
// than inverting the single mutation, because multiple toggles may be in
// flight and the coordinator does not track enough history to unwind one
// safely.
package roadmap

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ascentlabs/ascent/client"
)

// API is the slice of the service client the coordinator needs.
type API interface {
	ToggleRoadmapItem(ctx context.Context, phaseIndex, itemIndex int, completed bool) error
	Me(ctx context.Context) (*client.Profile, error)
}

type ErrInvalidIndex struct {
	PhaseIndex int
	ItemIndex  int
}

func (e *ErrInvalidIndex) Error() string {
	return fmt.Sprintf("no roadmap item at phase %d, item %d", e.PhaseIndex, e.ItemIndex)
}

// Coordinator owns the local roadmap state. All callbacks fire on the
// goroutine that triggered them: change notifications for local applies run
// on the caller's goroutine, resync notifications run on the confirmation
// goroutine. Consumers that need single-threaded delivery (the board UI)
// funnel both through their own event loop.
type Coordinator struct {
	mu       sync.Mutex
	api      API
	phases   []client.RoadmapPhase
	closed   bool
	inflight sync.WaitGroup

	onChange    func(phases []client.RoadmapPhase)
	onCelebrate func(task string)
	onError     func(err error)
}

type Option func(*Coordinator)

// WithChangeListener is invoked after every local apply and after every
// resync, with a copy of the current phases.
func WithChangeListener(fn func(phases []client.RoadmapPhase)) Option {
	return func(c *Coordinator) {
		c.onChange = fn
	}
}

// WithCelebration fires on every completion transition (unchecked to
// checked). Unchecking never celebrates. The hook must not block; it is a
// UX affordance and runs before the confirmation request is issued.
func WithCelebration(fn func(task string)) Option {
	return func(c *Coordinator) {
		c.onCelebrate = fn
	}
}

// WithErrorListener receives resync failures, i.e. the profile refetch after
// a failed confirmation also failed. Local state is left as is in that case.
func WithErrorListener(fn func(err error)) Option {
	return func(c *Coordinator) {
		c.onError = fn
	}
}

func NewCoordinator(api API, phases []client.RoadmapPhase, options ...Option) *Coordinator {
	coordinator := &Coordinator{
		api:    api,
		phases: clonePhases(phases),
	}

	for _, option := range options {
		option(coordinator)
	}
	return coordinator
}

// Phases returns a copy of the current local roadmap.
func (c *Coordinator) Phases() []client.RoadmapPhase {
	c.mu.Lock()
	defer c.mu.Unlock()

	return clonePhases(c.phases)
}

// Toggle flips the addressed item locally and immediately, then confirms the
// new value with the service in the background. Multiple toggles may be in
// flight at once; no ordering is enforced between them. If any confirmation
// fails the whole roadmap is replaced by the server's authoritative copy.
func (c *Coordinator) Toggle(ctx context.Context, phaseIndex, itemIndex int) error {
	c.mu.Lock()

	if phaseIndex < 0 || phaseIndex >= len(c.phases) || itemIndex < 0 || itemIndex >= len(c.phases[phaseIndex].ActionItems) {
		c.mu.Unlock()
		return &ErrInvalidIndex{PhaseIndex: phaseIndex, ItemIndex: itemIndex}
	}

	item := &c.phases[phaseIndex].ActionItems[itemIndex]
	item.Completed = !item.Completed
	completed := item.Completed
	task := item.Task
	snapshot := clonePhases(c.phases)
	c.mu.Unlock()

	c.notifyChange(snapshot)
	if completed && c.onCelebrate != nil {
		c.onCelebrate(task)
	}

	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		c.confirm(ctx, phaseIndex, itemIndex, completed)
	}()

	return nil
}

func (c *Coordinator) confirm(ctx context.Context, phaseIndex, itemIndex int, completed bool) {
	err := c.api.ToggleRoadmapItem(ctx, phaseIndex, itemIndex, completed)
	if err == nil {
		return
	}

	slog.Warn("roadmap toggle confirmation failed, resyncing",
		"phase", phaseIndex, "item", itemIndex, "error", err)
	c.Resync(ctx)
}

// Resync replaces local state with the server's authoritative roadmap. Any
// optimistic change that was not confirmed is discarded in the process.
func (c *Coordinator) Resync(ctx context.Context) {
	profile, err := c.api.Me(ctx)

	c.mu.Lock()
	if c.closed {
		// Nobody is consuming this state anymore; drop the result.
		c.mu.Unlock()
		return
	}
	if err != nil {
		c.mu.Unlock()
		slog.Error("roadmap resync failed", "error", err)
		if c.onError != nil {
			c.onError(err)
		}
		return
	}

	if profile.Analysis != nil {
		c.phases = clonePhases(profile.Analysis.Roadmap)
	} else {
		c.phases = nil
	}
	snapshot := clonePhases(c.phases)
	c.mu.Unlock()

	c.notifyChange(snapshot)
}

func (c *Coordinator) notifyChange(phases []client.RoadmapPhase) {
	if c.onChange != nil {
		c.onChange(phases)
	}
}

// Close marks the coordinator unmounted. In-flight confirmations still run
// to completion against the service, but their resync results are dropped
// instead of mutating state nobody consumes.
func (c *Coordinator) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

// Wait blocks until all in-flight confirmations have settled.
func (c *Coordinator) Wait() {
	c.inflight.Wait()
}

func clonePhases(phases []client.RoadmapPhase) []client.RoadmapPhase {
	if phases == nil {
		return nil
	}

	cloned := make([]client.RoadmapPhase, len(phases))
	for i, phase := range phases {
		cloned[i] = phase
		cloned[i].Topics = append([]string(nil), phase.Topics...)
		cloned[i].ActionItems = append([]client.ActionItem(nil), phase.ActionItems...)
	}
	return cloned
}
