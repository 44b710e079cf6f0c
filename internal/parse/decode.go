package parse

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var ErrNotArray = errors.New("conversations: top-level value is not an array")

// DecodeError reports a conversations.json that could not be decoded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("decode conversations: %v", e.Err)
	}
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// DecodeConversations streams a top-level JSON array of conversations.
// A malformed entry fails the whole decode.
func DecodeConversations(r io.Reader) ([]Conversation, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return nil, &DecodeError{Err: ErrNotArray}
	}

	var convs []Conversation
	for dec.More() {
		var c Conversation
		if err := dec.Decode(&c); err != nil {
			return nil, &DecodeError{Err: fmt.Errorf("entry %d: %w", len(convs), err)}
		}
		convs = append(convs, c)
	}
	if _, err := dec.Token(); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, &DecodeError{Err: errors.New("trailing data after array")}
	}
	return convs, nil
}
