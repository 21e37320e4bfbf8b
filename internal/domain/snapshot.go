// Package domain defines the persisted state of the giveaway ledger. The whole
// state is a single Snapshot document that is loaded once at startup, mutated
// in memory, and written back in full after every change.
//
// JSON field names are the on-disk (and on-wire) names shared by every storage
// backend. Map keys holding platform ids are stringified integers.
package domain

import "maps"

// Snapshot is the root document holding every piece of ledger state.
//
// Fields:
//   - Participants: registered users keyed by stringified user id.
//   - BonusRoles: role → ticket grant config keyed by stringified role id.
//   - Hashtag: hashtag gate for registrations.
//   - Tag: automatic name-tag bonus config.
//   - InscricaoChannel: channel where registrations happen (nullable).
//   - ButtonMessageID: ids of the registration button messages.
//   - InscricoesClosed: whether registrations are closed.
//   - Blacklist: banned users keyed by stringified user id.
//   - ChatLock: chat lock config.
//   - Moderators: user ids with moderator rights (set semantics).
type Snapshot struct {
	Participants     map[string]Participant    `json:"participants"`
	BonusRoles       map[string]BonusRole      `json:"bonus_roles"`
	Hashtag          HashtagConfig             `json:"hashtag"`
	Tag              TagConfig                 `json:"tag"`
	InscricaoChannel *int64                    `json:"inscricao_channel"`
	ButtonMessageID  ButtonMessages            `json:"button_message_id"`
	InscricoesClosed bool                      `json:"inscricoes_closed"`
	Blacklist        map[string]BlacklistEntry `json:"blacklist"`
	ChatLock         ChatLock                  `json:"chat_lock"`
	Moderators       []int64                   `json:"moderators"`
}

// Default returns the empty snapshot used on first run, after ClearAll, and
// whenever persisted data cannot be recovered.
func Default() Snapshot {
	return Snapshot{
		Participants: map[string]Participant{},
		BonusRoles:   map[string]BonusRole{},
		Hashtag:      HashtagConfig{},
		Tag:          DefaultTag(),
		Blacklist:    map[string]BlacklistEntry{},
		ChatLock:     ChatLock{},
		Moderators:   []int64{},
	}
}

// Fill replaces nil maps and slices with empty ones so that callers can
// mutate the snapshot without nil checks.
func (s *Snapshot) Fill() {
	if s.Participants == nil {
		s.Participants = map[string]Participant{}
	}
	for id, p := range s.Participants {
		if p.Tickets.Roles == nil {
			p.Tickets.Roles = map[string]RoleGrant{}
			s.Participants[id] = p
		}
	}
	if s.BonusRoles == nil {
		s.BonusRoles = map[string]BonusRole{}
	}
	if s.Blacklist == nil {
		s.Blacklist = map[string]BlacklistEntry{}
	}
	if s.Moderators == nil {
		s.Moderators = []int64{}
	}
}

// Clone returns a deep copy that shares no mutable state with s.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Participants = make(map[string]Participant, len(s.Participants))
	for id, p := range s.Participants {
		p.Tickets = p.Tickets.Clone()
		out.Participants[id] = p
	}
	out.BonusRoles = maps.Clone(s.BonusRoles)
	if out.BonusRoles == nil {
		out.BonusRoles = map[string]BonusRole{}
	}
	out.Blacklist = maps.Clone(s.Blacklist)
	if out.Blacklist == nil {
		out.Blacklist = map[string]BlacklistEntry{}
	}
	out.Moderators = append([]int64{}, s.Moderators...)
	out.Hashtag = s.Hashtag.Clone()
	out.ChatLock = s.ChatLock.Clone()
	out.InscricaoChannel = cloneID(s.InscricaoChannel)
	out.ButtonMessageID = s.ButtonMessageID.Clone()
	return out
}

func cloneID(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
