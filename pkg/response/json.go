package response

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownKind is returned when a response carries an unsupported type tag.
var ErrUnknownKind = errors.New("unknown response type")

type wireStructured struct {
	Type    Kind            `json:"type"`
	Content json.RawMessage `json:"content"`
}

// MarshalJSON encodes the response as {"type": kind, "content": payload}.
func (s Structured) MarshalJSON() ([]byte, error) {
	if s.Content == nil {
		return nil, fmt.Errorf("response %q has no content", s.Kind)
	}
	content, err := json.Marshal(s.Content)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wireStructured{Type: s.Kind, Content: content})
}

// UnmarshalJSON decodes the tagged form, choosing the payload type from the tag.
func (s *Structured) UnmarshalJSON(data []byte) error {
	var wire wireStructured
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if len(wire.Content) == 0 || string(wire.Content) == "null" {
		return fmt.Errorf("response %q has no content", wire.Type)
	}

	payload, err := decodePayload(wire.Type, wire.Content)
	if err != nil {
		return err
	}
	s.Kind = wire.Type
	s.Content = payload
	return nil
}

func decodePayload(kind Kind, raw json.RawMessage) (Payload, error) {
	switch kind {
	case KindText:
		return decodeInto[Text](raw)
	case KindTextWithLinks:
		return decodeInto[TextWithLinks](raw)
	case KindTable:
		return decodeInto[Table](raw)
	case KindReport:
		return decodeInto[Report](raw)
	case KindAlert:
		return decodeInto[Alert](raw)
	case KindDashboard:
		return decodeInto[Dashboard](raw)
	case KindMetrics:
		return decodeInto[Metrics](raw)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

func decodeInto[T Payload](raw json.RawMessage) (Payload, error) {
	var p T
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode %s content: %w", p.Kind(), err)
	}
	return p, nil
}

// Parse decodes and validates a structured response.
func Parse(data []byte) (Structured, error) {
	var s Structured
	if err := json.Unmarshal(data, &s); err != nil {
		return Structured{}, err
	}
	if err := Validate(s); err != nil {
		return Structured{}, err
	}
	return s, nil
}
