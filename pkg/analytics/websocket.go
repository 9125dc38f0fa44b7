package analytics

import (
	"context"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/beaconkit/go-sdk/pkg/value"
)

// WebsocketHandler forwards events over a WebSocket connection as the
// library's JSON rendering. It is a sample concrete backend; the core facade
// itself performs no network I/O.
type WebsocketHandler struct {
	ParameterStore

	// writeMu serializes writes: a gorilla connection supports at most one
	// concurrent writer.
	writeMu sync.Mutex
	conn    *websocket.Conn
}

// NewWebsocketHandler wraps an established connection.
func NewWebsocketHandler(conn *websocket.Conn) *WebsocketHandler {
	return &WebsocketHandler{conn: conn}
}

// DialWebsocketHandler connects to url and wraps the connection.
func DialWebsocketHandler(ctx context.Context, url string) (*WebsocketHandler, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial analytics endpoint: %w", err)
	}
	return NewWebsocketHandler(conn), nil
}

// Send writes the event as a text frame. The handler's own ambient
// parameters are merged in first; event parameters win on conflict.
func (h *WebsocketHandler) Send(ctx context.Context, event Event, source SourceMetadata) error {
	merged := NewEvent(event.Name, h.Parameters()).WithParameters(event.Parameters)

	payload := value.Map(map[string]value.Value{
		"name":       value.String(merged.Name),
		"parameters": merged.ParametersValue(),
		"source": value.Map(map[string]value.Value{
			"file":     value.String(source.File),
			"line":     value.Integer(int64(source.Line)),
			"function": value.String(source.Function),
		}),
	})

	h.writeMu.Lock()
	defer h.writeMu.Unlock()
	if deadline, ok := ctx.Deadline(); ok {
		if err := h.conn.SetWriteDeadline(deadline); err != nil {
			return fmt.Errorf("set write deadline: %w", err)
		}
	}
	if err := h.conn.WriteMessage(websocket.TextMessage, []byte(payload.ToJSON(false))); err != nil {
		return fmt.Errorf("forward event %q: %w", event.Name, err)
	}
	return nil
}

// Close closes the underlying connection.
func (h *WebsocketHandler) Close() error {
	return h.conn.Close()
}
