// Package utils provides small helpers for the admin HTTP layer that carry
// no ledger semantics of their own.
package utils

import "strconv"

// Participant listing bounds.
const (
	DefaultPage     = 1
	DefaultPageSize = 50
	MaxPageSize     = 500
)

// Page is a resolved window over an ordered list of Total items. Offset and
// End are always valid slice bounds for a list of that length.
type Page struct {
	Number     int
	Size       int
	Offset     int
	End        int
	Total      int
	TotalPages int
}

// HasNext reports whether a later page holds items.
func (p Page) HasNext() bool { return p.Number < p.TotalPages }

// ParsePage resolves the raw page and page_size query values against a list
// of total items. Unparsable values fall back to the defaults, size is
// clamped to [1, MaxPageSize], and a page past the end is reported as the
// first empty page after the last one.
func ParsePage(page, size string, total int) Page {
	total = max(total, 0)
	p := Page{
		Number: max(atoiDefault(page, DefaultPage), 1),
		Size:   min(max(atoiDefault(size, DefaultPageSize), 1), MaxPageSize),
		Total:  total,
	}
	p.TotalPages = (total + p.Size - 1) / p.Size
	p.Number = min(p.Number, p.TotalPages+1)
	p.Offset = min((p.Number-1)*p.Size, total)
	p.End = min(p.Offset+p.Size, total)
	return p
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}
