package domain

import (
	"bytes"
	"encoding/json"
	"time"
)

// Participant is a registered giveaway entrant, stored under its stringified
// platform user id.
//
// Fields:
//   - FirstName / LastName: real name given at registration; the pair is
//     unique case-insensitively (checked by callers, not storage).
//   - Tickets: where the participant's tickets come from.
//   - MessageID: id of the message that carried the registration.
//   - Timestamp: registration time (UTC).
type Participant struct {
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Tickets   TicketBreakdown `json:"tickets"`
	MessageID int64           `json:"message_id"`
	Timestamp Timestamp       `json:"timestamp"`
}

// FullName joins first and last name with a single space.
func (p Participant) FullName() string {
	return p.FirstName + " " + p.LastName
}

// BlacklistEntry records why and by whom a user was banned from registering.
type BlacklistEntry struct {
	Reason    string    `json:"reason"`
	BannedBy  int64     `json:"banned_by"`
	Timestamp Timestamp `json:"timestamp"`
}

// Timestamp is a UTC instant persisted as RFC 3339. Decoding also accepts the
// zone-less ISO 8601 form written by older deployments, which is read as UTC.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t converted to UTC.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC()}
}

var legacyLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// MarshalJSON writes null for the zero time.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}

// UnmarshalJSON leaves t zero for null, empty, or unparseable values.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	t.Time = time.Time{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil || s == "" {
		return nil
	}
	for _, layout := range legacyLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return nil
}
