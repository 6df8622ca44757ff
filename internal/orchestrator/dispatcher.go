package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
)

var (
	ErrUnknownForm       = errors.New("no handler registered for form")
	ErrHandlerRegistered = errors.New("handler already registered for form")
)

type SubmitHandler func(ctx context.Context, fields url.Values) error

// Dispatcher routes form submissions to the handlers explicitly registered
// for each form id.
type Dispatcher struct {
	mutex    sync.RWMutex
	handlers map[string]SubmitHandler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string]SubmitHandler),
	}
}

func (d *Dispatcher) OnSubmit(formID string, handler SubmitHandler) error {
	if handler == nil {
		return fmt.Errorf("nil handler for form %s", formID)
	}

	d.mutex.Lock()
	defer d.mutex.Unlock()

	if _, ok := d.handlers[formID]; ok {
		return fmt.Errorf("%w: %s", ErrHandlerRegistered, formID)
	}
	d.handlers[formID] = handler
	return nil
}

func (d *Dispatcher) Dispatch(ctx context.Context, formID string, fields url.Values) error {
	d.mutex.RLock()
	handler, ok := d.handlers[formID]
	d.mutex.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownForm, formID)
	}
	return handler(ctx, fields)
}

func (d *Dispatcher) FormIDs() []string {
	d.mutex.RLock()
	defer d.mutex.RUnlock()

	ids := make([]string, 0, len(d.handlers))
	for id := range d.handlers {
		ids = append(ids, id)
	}
	return ids
}
