package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
)

// RoleGrant is the realized ticket grant for one role a participant held at
// calculation time. It is decoupled from the BonusRole config: removing the
// role config later does not touch recorded grants.
type RoleGrant struct {
	Quantity     int    `json:"quantity"`
	Abbreviation string `json:"abbreviation"`
}

// UnmarshalJSON accepts grants written by older deployments: a missing
// quantity counts as one ticket and the misspelled "abreviation" key is used
// when "abbreviation" is absent.
func (g *RoleGrant) UnmarshalJSON(data []byte) error {
	var raw struct {
		Quantity     *int    `json:"quantity"`
		Abbreviation *string `json:"abbreviation"`
		Misspelled   *string `json:"abreviation"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	g.Quantity = 1
	if raw.Quantity != nil {
		g.Quantity = *raw.Quantity
	}
	g.Abbreviation = ""
	switch {
	case raw.Abbreviation != nil:
		g.Abbreviation = *raw.Abbreviation
	case raw.Misspelled != nil:
		g.Abbreviation = *raw.Misspelled
	}
	return nil
}

// TicketBreakdown records where a participant's tickets come from.
//
// Fields:
//   - Roles: grants keyed by stringified role id (only roles actually held).
//   - Tag: automatic tag tickets.
//   - TagText: the tag text in force when Tag was computed.
//   - ManualTag: moderator-granted tag tickets (signed adjustments).
//   - Base: flat ticket count carried over from records that stored tickets
//     as a bare number; zero for every record written by this code.
type TicketBreakdown struct {
	Roles     map[string]RoleGrant `json:"roles"`
	Tag       int                  `json:"tag"`
	TagText   string               `json:"tag_text"`
	ManualTag int                  `json:"manual_tag"`
	Base      int                  `json:"base,omitempty"`
}

// Total is the participant's ticket count: every role grant plus automatic
// and manual tag tickets (plus any legacy base count).
func (b TicketBreakdown) Total() int {
	total := b.Base + b.Tag + b.ManualTag
	for _, g := range b.Roles {
		total += g.Quantity
	}
	return total
}

// TagTickets is the combined automatic and manual tag contribution.
func (b TicketBreakdown) TagTickets() int {
	return b.Tag + b.ManualTag
}

// Clone returns a copy with its own Roles map.
func (b TicketBreakdown) Clone() TicketBreakdown {
	out := b
	out.Roles = maps.Clone(b.Roles)
	if out.Roles == nil {
		out.Roles = map[string]RoleGrant{}
	}
	return out
}

// UnmarshalJSON decodes either persisted ticket shape through
// DecodeTicketRecord.
func (b *TicketBreakdown) UnmarshalJSON(data []byte) error {
	rec, err := DecodeTicketRecord(data)
	if err != nil {
		return err
	}
	*b = rec.Breakdown()
	return nil
}

// TicketRecord is the persisted form of a participant's tickets. Early
// deployments stored a bare integer; later ones store a breakdown object.
type TicketRecord interface {
	Breakdown() TicketBreakdown
}

// LegacyScalarTicket is a ticket count stored as a bare number.
type LegacyScalarTicket int

// Breakdown moves the scalar count into Base.
func (t LegacyScalarTicket) Breakdown() TicketBreakdown {
	return TicketBreakdown{Roles: map[string]RoleGrant{}, Base: int(t)}
}

// StructuredTicket is a ticket breakdown stored as an object.
type StructuredTicket TicketBreakdown

// Breakdown returns the breakdown with a non-nil Roles map.
func (t StructuredTicket) Breakdown() TicketBreakdown {
	b := TicketBreakdown(t)
	if b.Roles == nil {
		b.Roles = map[string]RoleGrant{}
	}
	return b
}

// DecodeTicketRecord identifies which ticket shape data holds and decodes it.
// null decodes to an empty structured breakdown.
func DecodeTicketRecord(data []byte) (TicketRecord, error) {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")):
		return StructuredTicket{}, nil
	case data[0] == '{':
		// StructuredTicket has no UnmarshalJSON of its own, so this does not recurse.
		var v StructuredTicket
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("decode ticket breakdown: %w", err)
		}
		return v, nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, fmt.Errorf("decode scalar tickets: %w", err)
		}
		if i, err := n.Int64(); err == nil {
			return LegacyScalarTicket(i), nil
		}
		f, err := n.Float64()
		if err != nil {
			return nil, fmt.Errorf("decode scalar tickets: %w", err)
		}
		return LegacyScalarTicket(int(f)), nil
	}
}
