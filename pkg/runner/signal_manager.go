package runner

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// DefaultSignalGrace is how long Interrupted waits for a signal that
// trails an input error.
const DefaultSignalGrace = 100 * time.Millisecond

// SignalManager cancels the play loop on SIGINT or SIGTERM.
//
// On some terminals Ctrl+C closes stdin a moment before the signal is
// delivered, so the loop sees EOF first. Interrupted absorbs that gap.
type SignalManager struct {
	ctx    context.Context
	cancel context.CancelFunc
	grace  time.Duration
}

// NewSignalManager starts listening for signals immediately.
func NewSignalManager() *SignalManager {
	return newSignalManager(context.Background(), DefaultSignalGrace)
}

func newSignalManager(parent context.Context, grace time.Duration) *SignalManager {
	ctx, cancel := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	return &SignalManager{ctx: ctx, cancel: cancel, grace: grace}
}

// Context is canceled when a signal arrives or Stop is called.
func (sm *SignalManager) Context() context.Context {
	return sm.ctx
}

// Stop releases the signal listener.
func (sm *SignalManager) Stop() {
	sm.cancel()
}

// Interrupted reports whether a signal ended the session, waiting up to
// the grace period for one that has not been delivered yet.
func (sm *SignalManager) Interrupted() bool {
	if sm.ctx.Err() != nil {
		return true
	}
	timer := time.NewTimer(sm.grace)
	defer timer.Stop()

	select {
	case <-sm.ctx.Done():
		return true
	case <-timer.C:
		return false
	}
}
