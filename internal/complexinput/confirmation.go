package complexinput

import (
	"context"
	"sync"

	"github.com/renato0307/dynform/internal/domain"
)

// Confirmation is a pending yes/no decision. Exactly one of Confirm,
// Decline or Cancel takes effect; later calls are ignored. A confirmation
// nobody resolves stays pending and leaves the form untouched.
type Confirmation struct {
	done      chan struct{}
	mu        sync.Mutex
	onConfirm func()
	outcome   domain.Outcome
	observers []func(domain.Outcome)
}

// NewConfirmation creates a pending confirmation running onConfirm when confirmed
func NewConfirmation(onConfirm func()) *Confirmation {
	return &Confirmation{
		done:      make(chan struct{}),
		onConfirm: onConfirm,
		outcome:   domain.OutcomePending,
	}
}

// Confirm approves the step. Returns false if already resolved.
func (c *Confirmation) Confirm() bool {
	return c.resolve(domain.OutcomeConfirmed)
}

// Decline rejects the step. Returns false if already resolved.
func (c *Confirmation) Decline() bool {
	return c.resolve(domain.OutcomeDeclined)
}

// Cancel abandons the decision. Returns false if already resolved.
func (c *Confirmation) Cancel() bool {
	return c.resolve(domain.OutcomeCancelled)
}

// Outcome returns the resolution, or OutcomePending
func (c *Confirmation) Outcome() domain.Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.outcome
}

// Done is closed once the confirmation resolves
func (c *Confirmation) Done() <-chan struct{} {
	return c.done
}

// OnResolve registers fn to run with the outcome. If already resolved, fn runs now.
func (c *Confirmation) OnResolve(fn func(domain.Outcome)) {
	c.mu.Lock()
	if c.outcome == domain.OutcomePending {
		c.observers = append(c.observers, fn)
		c.mu.Unlock()
		return
	}
	outcome := c.outcome
	c.mu.Unlock()
	fn(outcome)
}

// Wait blocks until the confirmation resolves or ctx ends. When ctx ends
// first the confirmation is cancelled.
func (c *Confirmation) Wait(ctx context.Context) domain.Outcome {
	select {
	case <-c.done:
	case <-ctx.Done():
		c.Cancel()
	}
	return c.Outcome()
}

func (c *Confirmation) resolve(outcome domain.Outcome) bool {
	c.mu.Lock()
	if c.outcome != domain.OutcomePending {
		c.mu.Unlock()
		return false
	}
	c.outcome = outcome
	observers := c.observers
	c.observers = nil
	close(c.done)
	c.mu.Unlock()

	if outcome == domain.OutcomeConfirmed && c.onConfirm != nil {
		c.onConfirm()
	}
	for _, fn := range observers {
		fn(outcome)
	}
	return true
}
