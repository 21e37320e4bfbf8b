package domain

import "encoding/json"

// BonusRole maps a platform role to the tickets it grants. Quantity is taken
// as stored; it is never defaulted when computing tickets.
type BonusRole struct {
	Quantity     int    `json:"quantity"`
	Abbreviation string `json:"abbreviation"`
}

// UnmarshalJSON falls back to the misspelled "abreviation" key used by older
// deployments.
func (r *BonusRole) UnmarshalJSON(data []byte) error {
	var raw struct {
		Quantity     int     `json:"quantity"`
		Abbreviation *string `json:"abbreviation"`
		Misspelled   *string `json:"abreviation"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Quantity = raw.Quantity
	r.Abbreviation = ""
	switch {
	case raw.Abbreviation != nil:
		r.Abbreviation = *raw.Abbreviation
	case raw.Misspelled != nil:
		r.Abbreviation = *raw.Misspelled
	}
	return nil
}

// TagConfig governs the automatic name-tag bonus.
type TagConfig struct {
	Enabled  bool   `json:"enabled"`
	Text     string `json:"text"`
	Quantity int    `json:"quantity"`
}

// DefaultTag is the tag config of a fresh ledger.
func DefaultTag() TagConfig {
	return TagConfig{Enabled: false, Text: "", Quantity: 1}
}

// TagPatch lists the tag fields to change; nil fields are left untouched.
type TagPatch struct {
	Enabled  *bool
	Text     *string
	Quantity *int
}

// Apply merges p onto t. Empty text and non-positive quantities are ignored
// so the config never loses its match text or drops below one ticket.
func (t TagConfig) Apply(p TagPatch) TagConfig {
	if p.Enabled != nil {
		t.Enabled = *p.Enabled
	}
	if p.Text != nil && *p.Text != "" {
		t.Text = *p.Text
	}
	if p.Quantity != nil && *p.Quantity > 0 {
		t.Quantity = *p.Quantity
	}
	return t
}

// HashtagConfig gates whether registrations require a hashtag. Value is nil
// when no hashtag is configured.
type HashtagConfig struct {
	Value  *string `json:"value"`
	Locked bool    `json:"locked"`
}

// HashtagPatch lists the hashtag fields to change.
type HashtagPatch struct {
	Value  *string
	Locked *bool
}

// Apply merges p onto h.
func (h HashtagConfig) Apply(p HashtagPatch) HashtagConfig {
	h = h.Clone()
	if p.Value != nil {
		v := *p.Value
		h.Value = &v
	}
	if p.Locked != nil {
		h.Locked = *p.Locked
	}
	return h
}

// Clone returns a copy that does not share the value pointer.
func (h HashtagConfig) Clone() HashtagConfig {
	if h.Value != nil {
		v := *h.Value
		h.Value = &v
	}
	return h
}

// ChatLock restricts chatting in a channel while a giveaway runs.
type ChatLock struct {
	Enabled   bool   `json:"enabled"`
	ChannelID *int64 `json:"channel_id"`
}

// ChatLockPatch lists the chat lock fields to change.
type ChatLockPatch struct {
	Enabled   *bool
	ChannelID *int64
}

// Apply merges p onto c.
func (c ChatLock) Apply(p ChatLockPatch) ChatLock {
	c = c.Clone()
	if p.Enabled != nil {
		c.Enabled = *p.Enabled
	}
	if p.ChannelID != nil {
		c.ChannelID = cloneID(p.ChannelID)
	}
	return c
}

// Clone returns a copy that does not share the channel pointer.
func (c ChatLock) Clone() ChatLock {
	c.ChannelID = cloneID(c.ChannelID)
	return c
}
