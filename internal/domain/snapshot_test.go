package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func ptr[T any](v T) *T { return &v }

func TestDefault_IsEmptyAndNonNil(t *testing.T) {
	s := Default()
	if s.Participants == nil || s.BonusRoles == nil || s.Blacklist == nil || s.Moderators == nil {
		t.Fatalf("default has nil collections: %+v", s)
	}
	if s.Tag != (TagConfig{Quantity: 1}) || s.Hashtag.Value != nil || s.InscricaoChannel != nil {
		t.Fatalf("default config unexpected: %+v", s)
	}
}

func TestSnapshot_FillReplacesNils(t *testing.T) {
	s := Snapshot{Participants: map[string]Participant{"1": {FirstName: "A"}}}
	s.Fill()
	if s.BonusRoles == nil || s.Blacklist == nil || s.Moderators == nil {
		t.Fatalf("Fill left nil collections")
	}
	if s.Participants["1"].Tickets.Roles == nil {
		t.Fatalf("Fill left nil participant roles")
	}
}

func TestSnapshot_CloneIsDeep(t *testing.T) {
	s := Default()
	s.Participants["1"] = Participant{Tickets: TicketBreakdown{Roles: map[string]RoleGrant{"9": {Quantity: 1}}}}
	s.Hashtag = HashtagConfig{Value: ptr("#a")}
	s.InscricaoChannel = ptr(int64(3))
	s.ChatLock.ChannelID = ptr(int64(4))
	s.ButtonMessageID.Append(1)
	s.Moderators = append(s.Moderators, 7)

	c := s.Clone()
	c.Participants["1"].Tickets.Roles["10"] = RoleGrant{}
	c.Participants["2"] = Participant{}
	*c.Hashtag.Value = "#b"
	*c.InscricaoChannel = 30
	*c.ChatLock.ChannelID = 40
	c.ButtonMessageID.IDs[0] = 100
	c.Moderators[0] = 70
	c.BonusRoles["x"] = BonusRole{}

	if len(s.Participants) != 1 || len(s.Participants["1"].Tickets.Roles) != 1 {
		t.Fatalf("participants shared with clone")
	}
	if *s.Hashtag.Value != "#a" || *s.InscricaoChannel != 3 || *s.ChatLock.ChannelID != 4 {
		t.Fatalf("pointers shared with clone")
	}
	if s.ButtonMessageID.IDs[0] != 1 || s.Moderators[0] != 7 || len(s.BonusRoles) != 0 {
		t.Fatalf("slices or maps shared with clone")
	}
}

func TestTagConfig_Apply(t *testing.T) {
	tag := DefaultTag().Apply(TagPatch{Enabled: ptr(true), Text: ptr("vip"), Quantity: ptr(5)})
	if tag != (TagConfig{Enabled: true, Text: "vip", Quantity: 5}) {
		t.Fatalf("tag = %+v", tag)
	}
	tag = tag.Apply(TagPatch{Text: ptr(""), Quantity: ptr(0)})
	if tag.Text != "vip" || tag.Quantity != 5 {
		t.Fatalf("empty text or zero quantity must be ignored, got %+v", tag)
	}
	tag = tag.Apply(TagPatch{Enabled: ptr(false)})
	if tag.Enabled || tag.Text != "vip" {
		t.Fatalf("partial patch touched other fields: %+v", tag)
	}
}

func TestHashtagAndChatLock_Apply(t *testing.T) {
	h := HashtagConfig{}.Apply(HashtagPatch{Value: ptr("#x")})
	h = h.Apply(HashtagPatch{Locked: ptr(true)})
	if h.Value == nil || *h.Value != "#x" || !h.Locked {
		t.Fatalf("hashtag = %+v", h)
	}

	c := ChatLock{}.Apply(ChatLockPatch{ChannelID: ptr(int64(8))})
	c = c.Apply(ChatLockPatch{Enabled: ptr(true)})
	if !c.Enabled || c.ChannelID == nil || *c.ChannelID != 8 {
		t.Fatalf("chat lock = %+v", c)
	}
}

func TestTimestamp_JSON(t *testing.T) {
	var ts Timestamp
	for _, in := range []string{`"2024-05-01T12:00:00.5"`, `"2024-05-01 12:00:00.5"`, `"2024-05-01T12:00:00.5Z"`, `"2024-05-01T09:00:00.5-03:00"`} {
		if err := json.Unmarshal([]byte(in), &ts); err != nil {
			t.Fatalf("Unmarshal(%s): %v", in, err)
		}
		want := time.Date(2024, 5, 1, 12, 0, 0, 500000000, time.UTC)
		if !ts.Equal(want) || ts.Location() != time.UTC {
			t.Fatalf("Unmarshal(%s) = %v; want %v UTC", in, ts.Time, want)
		}
	}

	for _, in := range []string{`null`, `""`, `"yesterday"`, `12`} {
		if err := json.Unmarshal([]byte(in), &ts); err != nil || !ts.IsZero() {
			t.Fatalf("Unmarshal(%s) = %v, %v; want zero and no error", in, ts.Time, err)
		}
	}

	out, _ := json.Marshal(NewTimestamp(time.Date(2024, 5, 1, 9, 0, 0, 0, time.FixedZone("BRT", -3*3600))))
	if string(out) != `"2024-05-01T12:00:00Z"` {
		t.Fatalf("Marshal = %s", out)
	}
	out, _ = json.Marshal(Timestamp{})
	if string(out) != "null" {
		t.Fatalf("zero Marshal = %s; want null", out)
	}
}

func TestSnapshotRecord_TableName(t *testing.T) {
	if (SnapshotRecord{}).TableName() != "ledger_snapshots" {
		t.Fatalf("TableName = %q", (SnapshotRecord{}).TableName())
	}
}
