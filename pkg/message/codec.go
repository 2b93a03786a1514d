package message

import (
	"encoding/json"
	"fmt"

	"github.com/m0rjc/buttplug-go/internal/wire"
)

// EncodeBatch serializes one or more outgoing messages into the wire's
// array-of-single-key-objects framing, e.g. [{"Ping":{"Id":1}}]. Field names
// are converted from the struct's internal snake_case tags to the wire's
// PascalCase at every nesting level.
func EncodeBatch(msgs ...Outgoing) ([]byte, error) {
	frames := make([]map[string]interface{}, 0, len(msgs))
	for _, m := range msgs {
		frame, err := encodeFrame(m)
		if err != nil {
			return nil, err
		}
		frames = append(frames, frame)
	}
	return json.Marshal(frames)
}

func encodeFrame(m Outgoing) (map[string]interface{}, error) {
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("message: encode %s: %w", m.WireName(), err)
	}

	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("message: encode %s: %w", m.WireName(), err)
	}

	return map[string]interface{}{
		m.WireName(): toWireKeys(generic),
	}, nil
}

// toWireKeys recursively converts every map key in v from snake_case to
// PascalCase, leaving slice elements and scalar leaves untouched except for
// nested maps.
func toWireKeys(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[wire.ToPascal(k)] = toWireKeys(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = toWireKeys(val)
		}
		return out
	default:
		return t
	}
}

// fromWireKeys recursively converts every map key in v from PascalCase to
// snake_case, the inverse of toWireKeys, run on a message received from the
// wire before it is unmarshaled into a typed struct.
func fromWireKeys(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[wire.ToSnake(k)] = fromWireKeys(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = fromWireKeys(val)
		}
		return out
	default:
		return t
	}
}

// Frame is one {MessageName: payload} entry from an incoming array, with the
// payload already re-keyed to snake_case and ready to unmarshal into
// whatever concrete type the catalog resolves for Name.
type Frame struct {
	Name    string
	Payload []byte
}

// Unmarshal decodes the frame's payload into dst, which must be a pointer to
// an Incoming implementation.
func (f Frame) Unmarshal(dst Incoming) error {
	if err := json.Unmarshal(f.Payload, dst); err != nil {
		return fmt.Errorf("message: decode %s: %w", f.Name, err)
	}
	return nil
}

// SplitFrames parses the top-level JSON array the server sends and returns
// one Frame per element, each holding exactly one message name and its
// snake_cased payload. Resolving the name to a concrete Go type and
// version-fallback decoding it is the catalog's responsibility.
func SplitFrames(data []byte) ([]Frame, error) {
	var envelope []map[string]interface{}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("message: decode envelope: %w", err)
	}

	frames := make([]Frame, 0, len(envelope))
	for _, obj := range envelope {
		if len(obj) != 1 {
			return nil, fmt.Errorf("message: decode envelope: expected exactly one message name per frame, got %d", len(obj))
		}
		for name, payload := range obj {
			converted := fromWireKeys(payload)
			raw, err := json.Marshal(converted)
			if err != nil {
				return nil, fmt.Errorf("message: decode %s: %w", name, err)
			}
			frames = append(frames, Frame{Name: name, Payload: raw})
		}
	}
	return frames, nil
}
