package stats

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tbourn/giveaway-ledger/internal/domain"
)

func TestCompute_ZeroParticipants(t *testing.T) {
	got := Compute(domain.Default())
	want := Statistics{TicketsByRole: map[string]RoleStats{}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("stats (-want +got):\n%s", diff)
	}
}

func TestCompute_FoldsParticipants(t *testing.T) {
	s := domain.Default()
	s.BonusRoles["1"] = domain.BonusRole{Quantity: 2, Abbreviation: "S.B"}
	s.Participants["10"] = domain.Participant{Tickets: domain.TicketBreakdown{
		Roles: map[string]domain.RoleGrant{
			"1": {Quantity: 2, Abbreviation: "old"},
			"2": {Quantity: 1, Abbreviation: "gone"},
		},
		Tag: 5,
	}}
	s.Participants["11"] = domain.Participant{Tickets: domain.TicketBreakdown{
		Roles:     map[string]domain.RoleGrant{"1": {Quantity: 2}},
		ManualTag: -1,
	}}
	s.Participants["12"] = domain.Participant{Tickets: domain.TicketBreakdown{
		Roles: map[string]domain.RoleGrant{},
		Base:  3,
	}}
	s.Blacklist["99"] = domain.BlacklistEntry{Reason: "spam"}

	got := Compute(s)
	want := Statistics{
		TotalParticipants:   3,
		TotalTickets:        (2 + 1 + 5) + (2 - 1) + 3,
		ParticipantsWithTag: 1,
		TicketsByRole: map[string]RoleStats{
			"1": {Count: 2, TotalTickets: 4, Abbreviation: "S.B"},
			"2": {Count: 1, TotalTickets: 1, Abbreviation: UnknownRole},
		},
		BlacklistCount: 1,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("stats (-want +got):\n%s", diff)
	}
}
