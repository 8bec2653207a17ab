package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// decodeID reads a record id written either as a string or as a number.
// Older exports used millisecond timestamps and small integers as ids.
func decodeID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		err := json.Unmarshal(raw, &s)
		return s, err
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("id must be a string or a number: %w", err)
	}
	return n.String(), nil
}

func (p *Project) UnmarshalJSON(data []byte) error {
	type fields Project
	var v struct {
		fields
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	id, err := decodeID(v.ID)
	if err != nil {
		return err
	}
	*p = Project(v.fields)
	p.ID = id
	return nil
}

func (s *Skill) UnmarshalJSON(data []byte) error {
	type fields Skill
	var v struct {
		fields
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	id, err := decodeID(v.ID)
	if err != nil {
		return err
	}
	*s = Skill(v.fields)
	s.ID = id
	return nil
}
