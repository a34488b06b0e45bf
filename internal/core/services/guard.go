package services

import (
	"sync/atomic"

	"github.com/custodia-labs/pdfshelf/internal/core/domain"
)

// GuardState is the state of a Guard.
type GuardState int32

const (
	// GuardIdle accepts a new operation.
	GuardIdle GuardState = iota
	// GuardInFlight rejects new operations until End is called.
	GuardInFlight
)

// String returns the string representation of the state.
func (s GuardState) String() string {
	if s == GuardInFlight {
		return "in-flight"
	}
	return "idle"
}

// Guard is an idle -> in-flight -> idle state machine around a user-triggered
// operation. Re-entry while in flight is rejected, never queued.
// The zero value is idle and ready to use.
type Guard struct {
	state atomic.Int32
}

// Begin moves idle -> in-flight. It returns false if already in flight.
func (g *Guard) Begin() bool {
	return g.state.CompareAndSwap(int32(GuardIdle), int32(GuardInFlight))
}

// End moves back to idle.
func (g *Guard) End() {
	g.state.Store(int32(GuardIdle))
}

// State returns the current state.
func (g *Guard) State() GuardState {
	return GuardState(g.state.Load())
}

// Run executes fn while in flight, or returns domain.ErrBusy.
func (g *Guard) Run(fn func() error) error {
	if !g.Begin() {
		return domain.ErrBusy
	}
	defer g.End()
	return fn()
}
