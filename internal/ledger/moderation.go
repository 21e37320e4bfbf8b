package ledger

import (
	"slices"

	"github.com/tbourn/giveaway-ledger/internal/domain"
)

// AddToBlacklist bans id, replacing any earlier entry.
func (s *Store) AddToBlacklist(id int64, reason string, bannedBy int64) {
	s.mutate("AddToBlacklist", func(snap *domain.Snapshot) bool {
		snap.Blacklist[key(id)] = domain.BlacklistEntry{
			Reason:    reason,
			BannedBy:  bannedBy,
			Timestamp: domain.NewTimestamp(s.now()),
		}
		return true
	})
}

// RemoveFromBlacklist lifts the ban on id and reports whether there was one.
func (s *Store) RemoveFromBlacklist(id int64) bool {
	return s.mutate("RemoveFromBlacklist", func(snap *domain.Snapshot) bool {
		if _, ok := snap.Blacklist[key(id)]; !ok {
			return false
		}
		delete(snap.Blacklist, key(id))
		return true
	})
}

// IsBlacklisted reports whether id is banned.
func (s *Store) IsBlacklisted(id int64) bool {
	var ok bool
	s.view(func(snap *domain.Snapshot) { _, ok = snap.Blacklist[key(id)] })
	return ok
}

// Blacklist returns a copy of every ban keyed by user id.
func (s *Store) Blacklist() map[int64]domain.BlacklistEntry {
	var out map[int64]domain.BlacklistEntry
	s.view(func(snap *domain.Snapshot) { out = parseKeys(snap.Blacklist, same) })
	return out
}

// AddModerator adds id to the moderator set.
func (s *Store) AddModerator(id int64) {
	s.mutate("AddModerator", func(snap *domain.Snapshot) bool {
		if slices.Contains(snap.Moderators, id) {
			return false
		}
		snap.Moderators = append(snap.Moderators, id)
		return true
	})
}

// RemoveModerator removes id and reports whether it was a moderator.
func (s *Store) RemoveModerator(id int64) bool {
	return s.mutate("RemoveModerator", func(snap *domain.Snapshot) bool {
		i := slices.Index(snap.Moderators, id)
		if i < 0 {
			return false
		}
		snap.Moderators = slices.Delete(snap.Moderators, i, i+1)
		return true
	})
}

// IsModerator reports whether id is in the moderator set.
func (s *Store) IsModerator(id int64) bool {
	var ok bool
	s.view(func(snap *domain.Snapshot) { ok = slices.Contains(snap.Moderators, id) })
	return ok
}

// Moderators returns the moderator ids in insertion order.
func (s *Store) Moderators() []int64 {
	var out []int64
	s.view(func(snap *domain.Snapshot) { out = slices.Clone(snap.Moderators) })
	return out
}
