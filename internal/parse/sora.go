package parse

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"
)

// SoraExport is the content of sora.json.
type SoraExport struct {
	Tasks []SoraTask `json:"tasks"`
}

type SoraTask struct {
	ID        string          `json:"id,omitempty"`
	CreatedAt json.RawMessage `json:"created_at,omitempty"`
}

// Created parses created_at as an ISO-8601 string or epoch seconds.
// ok is false when the field is absent or unparseable.
func (t SoraTask) Created(loc *time.Location) (time.Time, bool) {
	raw := bytes.TrimSpace(t.CreatedAt)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return time.Time{}, false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		ts := ParseTimestamp(s, loc)
		return ts, !ts.IsZero()
	}

	if sec, err := strconv.ParseFloat(string(raw), 64); err == nil {
		return EpochTime(sec, loc), true
	}
	return time.Time{}, false
}

func DecodeSora(r io.Reader) (*SoraExport, error) {
	var exp SoraExport
	if err := json.NewDecoder(r).Decode(&exp); err != nil {
		return nil, fmt.Errorf("decode sora.json: %w", err)
	}
	return &exp, nil
}
