package analytics_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beaconkit/go-sdk/pkg/analytics"
	"github.com/beaconkit/go-sdk/pkg/value"
)

// startEchoServer upgrades one connection and forwards received text frames
// to the returned channel.
func startEchoServer(t *testing.T) (string, <-chan string) {
	t.Helper()
	frames := make(chan string, 8)
	upgrader := websocket.Upgrader{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			frames <- string(data)
		}
	}))
	t.Cleanup(server.Close)

	return "ws" + strings.TrimPrefix(server.URL, "http"), frames
}

func TestWebsocketHandlerForwardsEvents(t *testing.T) {
	url, frames := startEchoServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	handler, err := analytics.DialWebsocketHandler(ctx, url)
	require.NoError(t, err)
	defer handler.Close()

	handler.SetParameters(map[string]value.Value{"env": value.String("test")})

	event := analytics.NewEvent("signup", map[string]value.Value{"plan": value.String("pro")})
	source := analytics.SourceMetadata{File: "main.go", Line: 7, Function: "main.main"}
	require.NoError(t, handler.Send(ctx, event, source))

	select {
	case frame := <-frames:
		v, err := value.ParseJSON([]byte(frame))
		require.NoError(t, err)

		fields, ok := v.MapVal()
		require.True(t, ok)
		assert.True(t, fields["name"].Equal(value.String("signup")))

		params, ok := fields["parameters"].MapVal()
		require.True(t, ok)
		assert.True(t, params["plan"].Equal(value.String("pro")))
		assert.True(t, params["env"].Equal(value.String("test")))

		src, ok := fields["source"].MapVal()
		require.True(t, ok)
		assert.True(t, src["line"].Equal(value.Integer(7)))
	case <-time.After(5 * time.Second):
		t.Fatal("no frame received")
	}
}

func TestWebsocketHandlerDialFailure(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := analytics.DialWebsocketHandler(ctx, "ws://127.0.0.1:1/nope")
	assert.Error(t, err)
}
