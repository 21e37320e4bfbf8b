package tickets

import (
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tbourn/giveaway-ledger/internal/domain"
)

// MinNameRunes is the minimum length of each registration name part.
const MinNameRunes = 2

// Member is what the chat platform reports about a guild member at
// calculation time. Any name may be empty.
type Member struct {
	RoleIDs     []int64
	DisplayName string
	Nick        string
	GlobalName  string
	Name        string // account name
}

// HasRole reports whether the member currently holds roleID.
func (m Member) HasRole(roleID int64) bool {
	return slices.Contains(m.RoleIDs, roleID)
}

// names lists the name fields in the order they are matched against the tag.
func (m Member) names() []string {
	return []string{m.DisplayName, m.Nick, m.GlobalName, m.Name}
}

// Calculate returns the ticket breakdown for m under the given bonus roles
// and tag config. ManualTag is always zero; callers recomputing an existing
// participant carry it over themselves.
//
// Every held bonus role appears in Roles with its configured quantity, zero
// included. Roles the member does not hold are omitted. When the tag is
// enabled with non-empty text, the first name field containing the text
// (case-insensitively) grants Tag = tag.Quantity.
func Calculate(m Member, roles map[int64]domain.BonusRole, tag domain.TagConfig) domain.TicketBreakdown {
	b := domain.TicketBreakdown{
		Roles:   make(map[string]domain.RoleGrant),
		TagText: tag.Text,
	}

	for roleID, role := range roles {
		if !m.HasRole(roleID) {
			continue
		}
		b.Roles[strconv.FormatInt(roleID, 10)] = domain.RoleGrant{
			Quantity:     role.Quantity,
			Abbreviation: strings.TrimSpace(role.Abbreviation),
		}
	}

	if tag.Enabled && strings.TrimSpace(tag.Text) != "" && matchesTag(m, tag.Text) {
		b.Tag = tag.Quantity
	}
	return b
}

func matchesTag(m Member, text string) bool {
	lower := cases.Lower(language.Und)
	needle := lower.String(strings.TrimSpace(text))
	for _, name := range m.names() {
		if name == "" {
			continue
		}
		if strings.Contains(lower.String(strings.TrimSpace(name)), needle) {
			return true
		}
	}
	return false
}

// ValidateFullName checks the registration name pair. Surrounding spaces are
// ignored and each part needs at least MinNameRunes characters.
func ValidateFullName(first, last string) error {
	first, last = strings.TrimSpace(first), strings.TrimSpace(last)
	switch {
	case first == "":
		return ErrFirstNameRequired
	case last == "":
		return ErrLastNameRequired
	case utf8.RuneCountInString(first) < MinNameRunes:
		return ErrFirstNameTooShort
	case utf8.RuneCountInString(last) < MinNameRunes:
		return ErrLastNameTooShort
	}
	return nil
}
