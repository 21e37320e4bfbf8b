package ledger

import "github.com/tbourn/giveaway-ledger/internal/domain"

// AddBonusRole configures roleID to grant qty tickets, replacing any
// existing config for it. Recorded breakdowns are not touched.
func (s *Store) AddBonusRole(roleID int64, qty int, abbreviation string) {
	s.mutate("AddBonusRole", func(snap *domain.Snapshot) bool {
		snap.BonusRoles[key(roleID)] = domain.BonusRole{Quantity: qty, Abbreviation: abbreviation}
		return true
	})
}

// RemoveBonusRole drops roleID's config and reports whether it existed.
// Recorded breakdowns are not touched.
func (s *Store) RemoveBonusRole(roleID int64) bool {
	return s.mutate("RemoveBonusRole", func(snap *domain.Snapshot) bool {
		if _, ok := snap.BonusRoles[key(roleID)]; !ok {
			return false
		}
		delete(snap.BonusRoles, key(roleID))
		return true
	})
}

// BonusRoles returns the configured bonus roles keyed by role id. Stored
// keys that are not integers are skipped.
func (s *Store) BonusRoles() map[int64]domain.BonusRole {
	var out map[int64]domain.BonusRole
	s.view(func(snap *domain.Snapshot) { out = parseKeys(snap.BonusRoles, same) })
	return out
}

// SetButtonMessageID replaces the registration button registry with id.
func (s *Store) SetButtonMessageID(id int64) {
	s.mutate("SetButtonMessageID", func(snap *domain.Snapshot) bool {
		snap.ButtonMessageID.Set(id)
		return true
	})
}

// AddButtonMessageID appends id to the registry, promoting a single id to a
// list. Ids already present are not added twice.
func (s *Store) AddButtonMessageID(id int64) {
	s.mutate("AddButtonMessageID", func(snap *domain.Snapshot) bool {
		snap.ButtonMessageID.Append(id)
		return true
	})
}

// ButtonMessageIDs returns a copy of the registry.
func (s *Store) ButtonMessageIDs() domain.ButtonMessages {
	var out domain.ButtonMessages
	s.view(func(snap *domain.Snapshot) { out = snap.ButtonMessageID.Clone() })
	return out
}

// SetChatLock merges p onto the chat lock config.
func (s *Store) SetChatLock(p domain.ChatLockPatch) {
	s.mutate("SetChatLock", func(snap *domain.Snapshot) bool {
		snap.ChatLock = snap.ChatLock.Apply(p)
		return true
	})
}

// ChatLock returns the chat lock config.
func (s *Store) ChatLock() domain.ChatLock {
	var out domain.ChatLock
	s.view(func(snap *domain.Snapshot) { out = snap.ChatLock.Clone() })
	return out
}

// SetHashtag sets the registration hashtag, keeping the lock flag.
func (s *Store) SetHashtag(value string) {
	s.UpdateHashtag(domain.HashtagPatch{Value: &value})
}

// Hashtag returns the configured hashtag, if any.
func (s *Store) Hashtag() (string, bool) {
	var (
		v  string
		ok bool
	)
	s.view(func(snap *domain.Snapshot) {
		if snap.Hashtag.Value != nil {
			v, ok = *snap.Hashtag.Value, true
		}
	})
	return v, ok
}

// LockHashtag marks the hashtag as locked.
func (s *Store) LockHashtag() {
	locked := true
	s.UpdateHashtag(domain.HashtagPatch{Locked: &locked})
}

// UnlockHashtag clears the hashtag lock.
func (s *Store) UnlockHashtag() {
	locked := false
	s.UpdateHashtag(domain.HashtagPatch{Locked: &locked})
}

// IsHashtagLocked reports the stored lock flag.
func (s *Store) IsHashtagLocked() bool {
	var locked bool
	s.view(func(snap *domain.Snapshot) { locked = snap.Hashtag.Locked })
	return locked
}

// UpdateHashtag merges p onto the hashtag config.
func (s *Store) UpdateHashtag(p domain.HashtagPatch) {
	s.mutate("UpdateHashtag", func(snap *domain.Snapshot) bool {
		snap.Hashtag = snap.Hashtag.Apply(p)
		return true
	})
}

// SetTag merges p onto the tag config. Empty text and non-positive
// quantities in p are ignored.
func (s *Store) SetTag(p domain.TagPatch) {
	s.mutate("SetTag", func(snap *domain.Snapshot) bool {
		snap.Tag = snap.Tag.Apply(p)
		return true
	})
}

// Tag returns the tag config.
func (s *Store) Tag() domain.TagConfig {
	var out domain.TagConfig
	s.view(func(snap *domain.Snapshot) { out = snap.Tag })
	return out
}

// SetInscricaoChannel sets the registration channel.
func (s *Store) SetInscricaoChannel(id int64) {
	s.mutate("SetInscricaoChannel", func(snap *domain.Snapshot) bool {
		snap.InscricaoChannel = &id
		return true
	})
}

// InscricaoChannel returns the registration channel, if set.
func (s *Store) InscricaoChannel() (int64, bool) {
	var (
		id int64
		ok bool
	)
	s.view(func(snap *domain.Snapshot) {
		if snap.InscricaoChannel != nil {
			id, ok = *snap.InscricaoChannel, true
		}
	})
	return id, ok
}

// SetInscricoesClosed opens or closes registrations.
func (s *Store) SetInscricoesClosed(closed bool) {
	s.mutate("SetInscricoesClosed", func(snap *domain.Snapshot) bool {
		snap.InscricoesClosed = closed
		return true
	})
}

// InscricoesClosed reports whether registrations are closed.
func (s *Store) InscricoesClosed() bool {
	var closed bool
	s.view(func(snap *domain.Snapshot) { closed = snap.InscricoesClosed })
	return closed
}
