// Package mood validates motivational content at the upload boundary.
// The admin bulk-upload accepts a JSON array whose elements may be plain
// strings, objects, or nested arrays; each element is narrowed into a
// tagged variant here before anything touches storage.
package mood

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Kind tags the shape of an uploaded message.
type Kind int

const (
	Text Kind = iota
	Object
	Array
)

func (k Kind) String() string {
	switch k {
	case Object:
		return "object"
	case Array:
		return "array"
	default:
		return "text"
	}
}

// Message is one validated upload element. Exactly one of the payload
// fields is set, matching Kind.
type Message struct {
	Kind   Kind
	Text   string
	Object map[string]json.RawMessage
	Array  []json.RawMessage
}

// Encode returns the canonical JSON payload stored for this message.
func (m Message) Encode() (string, error) {
	var v any
	switch m.Kind {
	case Text:
		v = m.Text
	case Object:
		v = m.Object
	case Array:
		v = m.Array
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s message: %w", m.Kind, err)
	}
	return string(b), nil
}

// ParseMessages decodes a bulk-upload body: a JSON array whose elements
// become tagged messages. Numbers, booleans and nulls are rejected;
// blank strings are rejected too, since an empty motivational message
// helps nobody.
func ParseMessages(data []byte) ([]Message, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw []json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("upload must be a JSON array: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("upload contains no messages")
	}

	messages := make([]Message, 0, len(raw))
	for i, r := range raw {
		msg, err := parseOne(r)
		if err != nil {
			return nil, fmt.Errorf("message %d: %w", i, err)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

func parseOne(r json.RawMessage) (Message, error) {
	trimmed := bytes.TrimSpace(r)
	if len(trimmed) == 0 {
		return Message{}, fmt.Errorf("empty element")
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return Message{}, fmt.Errorf("invalid string: %w", err)
		}
		if strings.TrimSpace(s) == "" {
			return Message{}, fmt.Errorf("blank text message")
		}
		return Message{Kind: Text, Text: s}, nil
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return Message{}, fmt.Errorf("invalid object: %w", err)
		}
		return Message{Kind: Object, Object: obj}, nil
	case '[':
		var arr []json.RawMessage
		if err := json.Unmarshal(trimmed, &arr); err != nil {
			return Message{}, fmt.Errorf("invalid array: %w", err)
		}
		return Message{Kind: Array, Array: arr}, nil
	default:
		return Message{}, fmt.Errorf("unsupported shape %q: only strings, objects and arrays are accepted", previewOf(trimmed))
	}
}

func previewOf(b []byte) string {
	const max = 20
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}

// EncodeAll validates nothing further; it just canonicalizes each
// message for storage.
func EncodeAll(messages []Message) ([]string, error) {
	payloads := make([]string, 0, len(messages))
	for _, m := range messages {
		p, err := m.Encode()
		if err != nil {
			return nil, err
		}
		payloads = append(payloads, p)
	}
	return payloads, nil
}

// DisplayText renders a stored payload for the motivation corner. Text
// payloads come back verbatim; structured payloads fall back to a
// "message" or "text" field when present, else their JSON.
func DisplayText(payload string) string {
	var s string
	if err := json.Unmarshal([]byte(payload), &s); err == nil {
		return s
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(payload), &obj); err == nil {
		for _, field := range []string{"message", "text"} {
			if v, ok := obj[field]; ok {
				var inner string
				if err := json.Unmarshal(v, &inner); err == nil {
					return inner
				}
			}
		}
	}
	return payload
}
