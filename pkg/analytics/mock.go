package analytics

import (
	"context"
	"sync"
)

// SentEvent records one delivery to a MockHandler.
type SentEvent struct {
	Event  Event
	Source SourceMetadata
}

// MockHandler records every event it receives. It is intended for tests.
type MockHandler struct {
	ParameterStore

	mu   sync.Mutex
	sent []SentEvent

	// SendErr, when set, is returned from every Send call.
	SendErr error
}

// NewMockHandler creates an empty recording handler.
func NewMockHandler() *MockHandler {
	return &MockHandler{}
}

// Send records the event.
func (h *MockHandler) Send(ctx context.Context, event Event, source SourceMetadata) error {
	if h.SendErr != nil {
		return h.SendErr
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sent = append(h.sent, SentEvent{Event: event, Source: source})
	return nil
}

// Events returns a copy of everything recorded so far.
func (h *MockHandler) Events() []SentEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]SentEvent, len(h.sent))
	copy(out, h.sent)
	return out
}

// LastEvent returns the most recently recorded event.
func (h *MockHandler) LastEvent() (SentEvent, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.sent) == 0 {
		return SentEvent{}, false
	}
	return h.sent[len(h.sent)-1], true
}

// Reset discards all recorded events.
func (h *MockHandler) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sent = nil
}
