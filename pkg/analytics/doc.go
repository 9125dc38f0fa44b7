// Package analytics provides a vendor-neutral event facade: application code
// emits named events with structured parameters, and a pluggable Handler
// decides where those events go — a real analytics backend, a test double, or
// nowhere at all.
//
// A Client is the composition-root configuration object. It owns a handler,
// an ambient parameter set merged into every event, and a per-instance
// session identifier. Tests construct their own Client; a process-wide
// default exists for integrators that genuinely need one, behind Use and
// Default.
//
// Example usage:
//
//	import "github.com/beaconkit/go-sdk/pkg/analytics"
//
//	mock := analytics.NewMockHandler()
//	client := analytics.NewClient(analytics.WithHandler(mock))
//
//	err := client.Track(ctx, "signup_completed", map[string]value.Value{
//		"plan": value.String("pro"),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Handlers receive the event together with source metadata for the call site
// that emitted it. The Event and value.Value types are the wire contract
// across the handler boundary; this package ships a no-op handler, a
// recording mock, a structured-logging handler, a fan-out multiplexer, and a
// sample WebSocket-forwarding handler.
package analytics
