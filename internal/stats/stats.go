// Package stats folds the ledger snapshot into summary statistics.
package stats

import "github.com/tbourn/giveaway-ledger/internal/domain"

// UnknownRole is the abbreviation shown for roles that appear in recorded
// breakdowns but are no longer configured as bonus roles.
const UnknownRole = "?"

// RoleStats summarizes one role across all participants.
type RoleStats struct {
	Count        int    `json:"count"`
	TotalTickets int    `json:"total_tickets"`
	Abbreviation string `json:"abbreviation"`
}

// Statistics is the ledger summary shown to moderators.
type Statistics struct {
	TotalParticipants   int                  `json:"total_participants"`
	TotalTickets        int                  `json:"total_tickets"`
	ParticipantsWithTag int                  `json:"participants_with_tag"`
	TicketsByRole       map[string]RoleStats `json:"tickets_by_role"`
	BlacklistCount      int                  `json:"blacklist_count"`
}

// Compute folds every participant of s. Role abbreviations come from the
// current bonus role config; roles missing from it still count toward the
// totals under UnknownRole.
func Compute(s domain.Snapshot) Statistics {
	st := Statistics{
		TotalParticipants: len(s.Participants),
		TicketsByRole:     make(map[string]RoleStats),
		BlacklistCount:    len(s.Blacklist),
	}

	for _, p := range s.Participants {
		b := p.Tickets
		st.TotalTickets += b.Total()
		if b.TagTickets() > 0 {
			st.ParticipantsWithTag++
		}
		for roleID, grant := range b.Roles {
			rs, ok := st.TicketsByRole[roleID]
			if !ok {
				rs.Abbreviation = UnknownRole
				if role, configured := s.BonusRoles[roleID]; configured {
					rs.Abbreviation = role.Abbreviation
				}
			}
			rs.Count++
			rs.TotalTickets += grant.Quantity
			st.TicketsByRole[roleID] = rs
		}
	}
	return st
}
