package analytics

import (
	"fmt"

	"github.com/beaconkit/go-sdk/pkg/encoding"
	"github.com/beaconkit/go-sdk/pkg/value"
)

// Event is a named analytics event carrying a structured parameter map. An
// Event is constructed immutably at the call site and never mutated after
// being sent; merges return new events.
type Event struct {
	Name       string
	Parameters map[string]value.Value
}

// NewEvent creates an event with the given name and parameters. The
// parameter map is copied.
func NewEvent(name string, params map[string]value.Value) Event {
	return Event{Name: name, Parameters: copyParams(params)}
}

// NewEventRecord creates an event whose parameters come from encoding rec
// with enc. A nil enc uses a default encoder.
func NewEventRecord(name string, rec encoding.Marshaler, enc *encoding.Encoder) (Event, error) {
	if enc == nil {
		enc = encoding.NewEncoder()
	}
	v, err := enc.Encode(rec)
	if err != nil {
		return Event{}, fmt.Errorf("encode event %q parameters: %w", name, err)
	}
	params, ok := v.MapVal()
	if !ok {
		return Event{}, fmt.Errorf("encode event %q parameters: record encoded to %s, want map", name, v.Kind())
	}
	return Event{Name: name, Parameters: params}, nil
}

// Validate checks the event structure.
func (e Event) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("event validation failed: name is required")
	}
	return nil
}

// Equal reports event identity, which is the name alone.
func (e Event) Equal(o Event) bool {
	return e.Name == o.Name
}

// WithParameters returns a copy of the event with params merged in. Keys in
// params win over the event's own. The receiver is unchanged.
func (e Event) WithParameters(params map[string]value.Value) Event {
	merged := copyParams(e.Parameters)
	for k, v := range params {
		merged[k] = v
	}
	return Event{Name: e.Name, Parameters: merged}
}

// ParametersValue returns the parameter map as a structured value.
func (e Event) ParametersValue() value.Value {
	return value.Map(e.Parameters)
}

// ToJSON renders the event as deterministic JSON text.
func (e Event) ToJSON(pretty bool) string {
	return value.Map(map[string]value.Value{
		"name":       value.String(e.Name),
		"parameters": e.ParametersValue(),
	}).ToJSON(pretty)
}

func copyParams(params map[string]value.Value) map[string]value.Value {
	copied := make(map[string]value.Value, len(params))
	for k, v := range params {
		copied[k] = v
	}
	return copied
}
