package analytics

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/beaconkit/go-sdk/pkg/value"
)

// MultiHandler fans every event out to several backends concurrently. It is
// how an application reports to more than one vendor at once.
type MultiHandler struct {
	ParameterStore
	handlers []Handler
}

// NewMultiHandler creates a fan-out handler over the given backends.
func NewMultiHandler(handlers ...Handler) *MultiHandler {
	copied := make([]Handler, len(handlers))
	copy(copied, handlers)
	return &MultiHandler{handlers: copied}
}

// Handlers returns the wrapped backends.
func (h *MultiHandler) Handlers() []Handler {
	out := make([]Handler, len(h.handlers))
	copy(out, h.handlers)
	return out
}

// SetParameters stores the parameters and propagates them to every wrapped
// backend.
func (h *MultiHandler) SetParameters(params map[string]value.Value) {
	h.ParameterStore.SetParameters(params)
	for _, child := range h.handlers {
		child.SetParameters(params)
	}
}

// Send delivers the event to every backend concurrently and returns the
// first error, if any. One failing backend does not stop the others.
func (h *MultiHandler) Send(ctx context.Context, event Event, source SourceMetadata) error {
	var g errgroup.Group
	for _, child := range h.handlers {
		child := child
		g.Go(func() error {
			if err := child.Send(ctx, event, source); err != nil {
				return fmt.Errorf("handler %T: %w", child, err)
			}
			return nil
		})
	}
	return g.Wait()
}
