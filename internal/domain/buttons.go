package domain

import (
	"bytes"
	"encoding/json"
	"slices"
)

// ButtonMessages is the registry of registration button message ids. It is
// persisted as null, a single id, or a list of ids; a single id is promoted to
// a list on the first append and ids are never removed by appends.
type ButtonMessages struct {
	IDs  []int64
	List bool
}

// Set replaces the registry with a single id.
func (b *ButtonMessages) Set(id int64) {
	b.IDs = []int64{id}
	b.List = false
}

// Append promotes the registry to a list and adds id unless already present.
func (b *ButtonMessages) Append(id int64) {
	if !b.List {
		b.List = true
		b.IDs = append([]int64{}, b.IDs...)
	}
	if !slices.Contains(b.IDs, id) {
		b.IDs = append(b.IDs, id)
	}
}

// Clone returns a copy with its own backing array.
func (b ButtonMessages) Clone() ButtonMessages {
	if b.IDs != nil {
		b.IDs = append([]int64{}, b.IDs...)
	}
	return b
}

// MarshalJSON writes the persisted shape.
func (b ButtonMessages) MarshalJSON() ([]byte, error) {
	switch {
	case b.List:
		ids := b.IDs
		if ids == nil {
			ids = []int64{}
		}
		return json.Marshal(ids)
	case len(b.IDs) == 0:
		return []byte("null"), nil
	default:
		return json.Marshal(b.IDs[0])
	}
}

// UnmarshalJSON reads any of the persisted shapes.
func (b *ButtonMessages) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*b = ButtonMessages{}
	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")):
		return nil
	case data[0] == '[':
		ids := []int64{}
		if err := json.Unmarshal(data, &ids); err != nil {
			return err
		}
		b.IDs, b.List = ids, true
		return nil
	default:
		var id int64
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		// zero was the "unset" value in some deployments
		if id != 0 {
			b.IDs = []int64{id}
		}
		return nil
	}
}
