package ledger

import (
	"golang.org/x/text/cases"

	"github.com/tbourn/giveaway-ledger/internal/domain"
	"github.com/tbourn/giveaway-ledger/internal/stats"
	"github.com/tbourn/giveaway-ledger/internal/tickets"
)

// AddParticipant registers id, replacing any existing record for it. The
// registration time is now (UTC).
func (s *Store) AddParticipant(id int64, first, last string, b domain.TicketBreakdown, messageID int64) {
	s.mutate("AddParticipant", func(snap *domain.Snapshot) bool {
		snap.Participants[key(id)] = domain.Participant{
			FirstName: first,
			LastName:  last,
			Tickets:   b.Clone(),
			MessageID: messageID,
			Timestamp: domain.NewTimestamp(s.now()),
		}
		return true
	})
}

// Participant returns a copy of the participant registered under id.
func (s *Store) Participant(id int64) (domain.Participant, bool) {
	var (
		p  domain.Participant
		ok bool
	)
	s.view(func(snap *domain.Snapshot) {
		p, ok = snap.Participants[key(id)]
		p.Tickets = p.Tickets.Clone()
	})
	return p, ok
}

// Participants returns a copy of every participant keyed by user id.
func (s *Store) Participants() map[int64]domain.Participant {
	var out map[int64]domain.Participant
	s.view(func(snap *domain.Snapshot) {
		out = parseKeys(snap.Participants, func(p domain.Participant) domain.Participant {
			p.Tickets = p.Tickets.Clone()
			return p
		})
	})
	return out
}

// IsRegistered reports whether id has a participant record.
func (s *Store) IsRegistered(id int64) bool {
	var ok bool
	s.view(func(snap *domain.Snapshot) { _, ok = snap.Participants[key(id)] })
	return ok
}

// RemoveParticipant deletes id's record and reports whether it existed.
func (s *Store) RemoveParticipant(id int64) bool {
	return s.mutate("RemoveParticipant", func(snap *domain.Snapshot) bool {
		if _, ok := snap.Participants[key(id)]; !ok {
			return false
		}
		delete(snap.Participants, key(id))
		return true
	})
}

// IsNameTaken reports whether any participant is registered under the same
// first and last name, compared case-insensitively.
func (s *Store) IsNameTaken(first, last string) bool {
	fold := cases.Fold()
	want := fold.String(first + " " + last)
	taken := false
	s.view(func(snap *domain.Snapshot) {
		for _, p := range snap.Participants {
			if fold.String(p.FirstName+" "+p.LastName) == want {
				taken = true
				return
			}
		}
	})
	return taken
}

// UpdateTickets replaces the breakdown of an existing participant. It is a
// no-op returning false when id is not registered.
func (s *Store) UpdateTickets(id int64, b domain.TicketBreakdown) bool {
	return s.mutate("UpdateTickets", func(snap *domain.Snapshot) bool {
		p, ok := snap.Participants[key(id)]
		if !ok {
			return false
		}
		p.Tickets = b.Clone()
		snap.Participants[key(id)] = p
		return true
	})
}

// AddManualTag adds delta (which may be negative) to the participant's
// manual tag tickets. It returns false when id is not registered.
func (s *Store) AddManualTag(id int64, delta int) bool {
	return s.mutate("AddManualTag", func(snap *domain.Snapshot) bool {
		p, ok := snap.Participants[key(id)]
		if !ok {
			return false
		}
		p.Tickets = p.Tickets.Clone()
		p.Tickets.ManualTag += delta
		snap.Participants[key(id)] = p
		return true
	})
}

// RecalculateTickets recomputes the role and tag tickets of a registered
// participant from m and the current config. Manual tag tickets are kept;
// a legacy base count is dropped. It returns the new breakdown and false
// when id is not registered.
func (s *Store) RecalculateTickets(id int64, m tickets.Member) (domain.TicketBreakdown, bool) {
	var out domain.TicketBreakdown
	ok := s.mutate("RecalculateTickets", func(snap *domain.Snapshot) bool {
		p, ok := snap.Participants[key(id)]
		if !ok {
			return false
		}
		b := tickets.Calculate(m, parseKeys(snap.BonusRoles, same), snap.Tag)
		b.ManualTag = p.Tickets.ManualTag
		p.Tickets = b
		snap.Participants[key(id)] = p
		out = b.Clone()
		return true
	})
	return out, ok
}

// Statistics summarizes the current participants.
func (s *Store) Statistics() stats.Statistics {
	var st stats.Statistics
	s.view(func(snap *domain.Snapshot) { st = stats.Compute(*snap) })
	return st
}
