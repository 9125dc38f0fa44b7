package analytics

import (
	"context"
	"fmt"
	"io"
	"sync"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/beaconkit/go-sdk/pkg/encoding"
	"github.com/beaconkit/go-sdk/pkg/value"
)

// SessionParameterKey is the ambient parameter carrying the client's session
// identifier.
const SessionParameterKey = "session_id"

// Client is the composition root of the facade: it owns the handler, the
// ambient parameters merged into every event, and a per-instance session
// identifier. A Client is safe for concurrent use.
type Client struct {
	handler   Handler
	logger    logrus.FieldLogger
	encoder   *encoding.Encoder
	sessionID string

	mu     sync.RWMutex
	params map[string]value.Value
}

// ClientOption configures a Client at construction.
type ClientOption func(*Client)

// WithHandler sets the backend handler. The default is a NoopHandler.
func WithHandler(h Handler) ClientOption {
	return func(c *Client) { c.handler = h }
}

// WithLogger sets the structured logger used for delivery diagnostics.
func WithLogger(logger logrus.FieldLogger) ClientOption {
	return func(c *Client) { c.logger = logger }
}

// WithEncoder sets the encoder used by TrackRecord.
func WithEncoder(enc *encoding.Encoder) ClientOption {
	return func(c *Client) { c.encoder = enc }
}

// WithInitialParameters seeds the ambient parameter set.
func WithInitialParameters(params map[string]value.Value) ClientOption {
	return func(c *Client) { c.params = copyParams(params) }
}

// NewClient creates a client. Without options it discards events quietly.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		handler:   NewNoopHandler(),
		encoder:   encoding.NewEncoder(),
		sessionID: uuid.NewString(),
		params:    make(map[string]value.Value),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		quiet := logrus.New()
		quiet.SetOutput(io.Discard)
		c.logger = quiet
	}
	return c
}

// SessionID returns the client's session identifier.
func (c *Client) SessionID() string {
	return c.sessionID
}

// Handler returns the configured backend handler.
func (c *Client) Handler() Handler {
	return c.handler
}

// Parameters returns a copy of the ambient parameter set.
func (c *Client) Parameters() map[string]value.Value {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return copyParams(c.params)
}

// SetParameter sets one ambient parameter.
func (c *Client) SetParameter(key string, v value.Value) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.params[key] = v
}

// SetParameters replaces the ambient parameter set.
func (c *Client) SetParameters(params map[string]value.Value) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.params = copyParams(params)
}

// PatchParameters applies an RFC 7386 JSON Merge Patch document to the
// ambient parameter set. A null member removes the key, matching the model's
// treatment of absence.
func (c *Client) PatchParameters(mergePatch []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	current := []byte(value.Map(c.params).ToJSON(false))
	patched, err := jsonpatch.MergePatch(current, mergePatch)
	if err != nil {
		return fmt.Errorf("apply parameter patch: %w", err)
	}
	v, err := value.ParseJSON(patched)
	if err != nil {
		return fmt.Errorf("apply parameter patch: %w", err)
	}
	params, ok := v.MapVal()
	if !ok {
		return fmt.Errorf("apply parameter patch: patched document is %s, want map", v.Kind())
	}
	c.params = params
	return nil
}

// Track emits a named event with the given parameters. Ambient parameters
// and the session identifier are merged in; event parameters win on
// conflict.
func (c *Client) Track(ctx context.Context, name string, params map[string]value.Value) error {
	return c.send(ctx, NewEvent(name, params), callerMetadata(1))
}

// TrackRecord emits a named event whose parameters come from encoding rec
// with the client's encoder.
func (c *Client) TrackRecord(ctx context.Context, name string, rec encoding.Marshaler) error {
	event, err := NewEventRecord(name, rec, c.encoder)
	if err != nil {
		return err
	}
	return c.send(ctx, event, callerMetadata(1))
}

// SendEvent emits an already-constructed event.
func (c *Client) SendEvent(ctx context.Context, event Event) error {
	return c.send(ctx, event, callerMetadata(1))
}

func (c *Client) send(ctx context.Context, event Event, source SourceMetadata) error {
	if err := event.Validate(); err != nil {
		return err
	}

	ambient := c.Parameters()
	ambient[SessionParameterKey] = value.String(c.sessionID)
	merged := NewEvent(event.Name, ambient).WithParameters(event.Parameters)

	c.logger.WithFields(logrus.Fields{
		"event":   merged.Name,
		"params":  len(merged.Parameters),
		"session": c.sessionID,
	}).Debug("sending analytics event")

	if err := c.handler.Send(ctx, merged, source); err != nil {
		c.logger.WithError(err).WithField("event", merged.Name).Warn("analytics delivery failed")
		return fmt.Errorf("send event %q: %w", merged.Name, err)
	}
	return nil
}
