package analytics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beaconkit/go-sdk/pkg/analytics"
	"github.com/beaconkit/go-sdk/pkg/value"
)

func TestMultiHandlerFansOut(t *testing.T) {
	first := analytics.NewMockHandler()
	second := analytics.NewMockHandler()
	multi := analytics.NewMultiHandler(first, second)

	event := analytics.NewEvent("signup", map[string]value.Value{"plan": value.String("pro")})
	require.NoError(t, multi.Send(context.Background(), event, analytics.SourceMetadata{}))

	for _, mock := range []*analytics.MockHandler{first, second} {
		sent, ok := mock.LastEvent()
		require.True(t, ok)
		assert.Equal(t, "signup", sent.Event.Name)
	}
}

func TestMultiHandlerReturnsFirstError(t *testing.T) {
	boom := errors.New("vendor outage")
	failing := analytics.NewMockHandler()
	failing.SendErr = boom
	healthy := analytics.NewMockHandler()
	multi := analytics.NewMultiHandler(failing, healthy)

	err := multi.Send(context.Background(), analytics.NewEvent("signup", nil), analytics.SourceMetadata{})
	assert.ErrorIs(t, err, boom)

	// The healthy backend still received the event.
	_, ok := healthy.LastEvent()
	assert.True(t, ok)
}

func TestMultiHandlerPropagatesParameters(t *testing.T) {
	first := analytics.NewMockHandler()
	second := analytics.NewMockHandler()
	multi := analytics.NewMultiHandler(first, second)

	params := map[string]value.Value{"env": value.String("prod")}
	multi.SetParameters(params)

	assert.True(t, multi.Parameters()["env"].Equal(value.String("prod")))
	assert.True(t, first.Parameters()["env"].Equal(value.String("prod")))
	assert.True(t, second.Parameters()["env"].Equal(value.String("prod")))
}

func TestMultiHandlerConcurrentSends(t *testing.T) {
	mock := analytics.NewMockHandler()
	multi := analytics.NewMultiHandler(mock)
	client := analytics.NewClient(analytics.WithHandler(multi))

	const sends = 50
	done := make(chan error, sends)
	for i := 0; i < sends; i++ {
		go func() {
			done <- client.Track(context.Background(), "tick", nil)
		}()
	}
	for i := 0; i < sends; i++ {
		require.NoError(t, <-done)
	}
	assert.Len(t, mock.Events(), sends)
}
