package analytics

import (
	"context"
	"sync"

	"github.com/beaconkit/go-sdk/pkg/value"
)

// The process-wide default client. Most applications should construct their
// own Client at the composition root and pass it down; the default exists
// for integrators that genuinely need a process-wide instance.
var (
	defaultMu     sync.RWMutex
	defaultClient *Client
)

// Use installs c as the process-wide default client. It may be called more
// than once; later calls replace the default.
func Use(c *Client) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultClient = c
}

// Default returns the process-wide default client, creating a discarding one
// on first use if none was installed.
func Default() *Client {
	defaultMu.RLock()
	c := defaultClient
	defaultMu.RUnlock()
	if c != nil {
		return c
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultClient == nil {
		defaultClient = NewClient()
	}
	return defaultClient
}

// Track emits an event through the default client.
func Track(ctx context.Context, name string, params map[string]value.Value) error {
	return Default().Track(ctx, name, params)
}
