// Package actions dispatches the rule actions of a finished or evaluated
// form to host-registered handlers. The engine only selects actions; what an
// alert or webhook actually does is the host's business.
package actions

import (
	"context"
	"fmt"
	"sync"

	"github.com/mbarros/inquira/pkg/domain"
	"github.com/mbarros/inquira/pkg/forms"
)

// Handler executes one rule action.
type Handler func(ctx context.Context, action forms.RuleAction) error

// Dispatcher routes rule actions to handlers by action kind.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[domain.ActionKind]Handler
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		handlers: make(map[domain.ActionKind]Handler),
	}
}

// Register adds a handler for an action kind.
// A handler registered for the same kind is overwritten.
func (d *Dispatcher) Register(kind domain.ActionKind, fn Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[kind] = fn
}

// Dispatch runs every action through its registered handler, in order.
// Actions without a handler are skipped; the first handler error stops the
// dispatch and is returned.
func (d *Dispatcher) Dispatch(ctx context.Context, actions []forms.RuleAction) error {
	for _, action := range actions {
		d.mu.RLock()
		fn, ok := d.handlers[action.Type]
		d.mu.RUnlock()
		if !ok {
			continue
		}
		if err := fn(ctx, action); err != nil {
			return fmt.Errorf("dispatch %s: %w", action.Type, err)
		}
	}
	return nil
}
