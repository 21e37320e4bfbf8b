package tickets

import (
	"sort"
	"strconv"
	"strings"

	"github.com/tbourn/giveaway-ledger/internal/domain"
)

const (
	// RolePlaceholder labels role entries whose abbreviation is blank.
	RolePlaceholder = "Cargo"
	// TagPlaceholder labels tag entries whose tag text is blank.
	TagPlaceholder = "TAG"
)

// Entries renders the draw list for one participant: the full name once, then
// one line per ticket. Role tickets carry the role abbreviation, tag and
// manual tag tickets carry the tag text, and legacy base tickets repeat the
// bare name. Roles are listed in ascending role id order. Negative counts
// contribute no lines.
func Entries(first, last string, b domain.TicketBreakdown) []string {
	full := strings.TrimSpace(first + " " + last)
	lines := []string{full}

	for range b.Base {
		lines = append(lines, full)
	}

	for _, id := range sortedRoleIDs(b.Roles) {
		g := b.Roles[id]
		abbr := strings.TrimSpace(g.Abbreviation)
		if abbr == "" {
			abbr = RolePlaceholder
		}
		for range g.Quantity {
			lines = append(lines, full+" "+abbr)
		}
	}

	tagText := strings.TrimSpace(b.TagText)
	if tagText == "" {
		tagText = TagPlaceholder
	}
	for range b.Tag {
		lines = append(lines, full+" "+tagText)
	}
	for range b.ManualTag {
		lines = append(lines, full+" "+tagText)
	}
	return lines
}

// sortedRoleIDs orders role ids numerically, falling back to string order for
// keys that are not integers.
func sortedRoleIDs(roles map[string]domain.RoleGrant) []string {
	ids := make([]string, 0, len(roles))
	for id := range roles {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, errA := strconv.ParseInt(ids[i], 10, 64)
		b, errB := strconv.ParseInt(ids[j], 10, 64)
		if errA == nil && errB == nil {
			return a < b
		}
		if (errA == nil) != (errB == nil) {
			return errA == nil
		}
		return ids[i] < ids[j]
	})
	return ids
}
