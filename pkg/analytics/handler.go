package analytics

import (
	"context"
	"runtime"
	"sync"

	"github.com/beaconkit/go-sdk/pkg/value"
)

// Handler is the pluggable analytics backend. Implementations carry their own
// ambient parameter set and receive each event together with the source
// metadata of the emitting call site.
//
// Send may be called concurrently; implementations are responsible for their
// own synchronization.
type Handler interface {
	// Parameters returns the handler's ambient parameters.
	Parameters() map[string]value.Value

	// SetParameters replaces the handler's ambient parameters.
	SetParameters(params map[string]value.Value)

	// Send delivers an event to the backend.
	Send(ctx context.Context, event Event, source SourceMetadata) error
}

// SourceMetadata identifies the call site that emitted an event.
type SourceMetadata struct {
	File     string
	Line     int
	Function string
}

// callerMetadata captures the call site skip frames above this function.
func callerMetadata(skip int) SourceMetadata {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return SourceMetadata{}
	}
	meta := SourceMetadata{File: file, Line: line}
	if fn := runtime.FuncForPC(pc); fn != nil {
		meta.Function = fn.Name()
	}
	return meta
}

// ParameterStore is a thread-safe ambient parameter set for embedding in
// Handler implementations.
type ParameterStore struct {
	mu     sync.RWMutex
	params map[string]value.Value
}

// Parameters returns a copy of the stored parameters.
func (p *ParameterStore) Parameters() map[string]value.Value {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return copyParams(p.params)
}

// SetParameters replaces the stored parameters with a copy of params.
func (p *ParameterStore) SetParameters(params map[string]value.Value) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.params = copyParams(params)
}

// NoopHandler discards every event. It is the default backend of a Client
// constructed without WithHandler.
type NoopHandler struct {
	ParameterStore
}

// NewNoopHandler creates a discarding handler.
func NewNoopHandler() *NoopHandler {
	return &NoopHandler{}
}

// Send discards the event.
func (h *NoopHandler) Send(ctx context.Context, event Event, source SourceMetadata) error {
	return nil
}
