// Package blocklist loads forbidden domains and queries for domaincheck:
// comma-separated flag values, blocklist files and the count-prefixed
// input stream.
package blocklist

import (
	"fmt"

	"github.com/p4th0r/domaincheck/internal/domain"
)

// Entry is a single blocklist name together with where it came from.
type Entry struct {
	Raw    string        // name as provided by the user
	Domain domain.Domain // canonical form
	Source string        // "flag", a file path, or "input"
	Line   int           // 1-based line in Source (0 for flag values)
}

// String returns a human-readable representation of the entry.
func (e Entry) String() string {
	if e.Line > 0 {
		return fmt.Sprintf("domain   %-30s %s:%d", e.Domain, e.Source, e.Line)
	}
	return fmt.Sprintf("domain   %-30s %s", e.Domain, e.Source)
}

// Domains returns the canonical domain of every entry, preserving order.
func Domains(entries []Entry) []domain.Domain {
	out := make([]domain.Domain, len(entries))
	for i, e := range entries {
		out[i] = e.Domain
	}
	return out
}

// Summary returns a short description such as "5 domains".
func Summary(entries []Entry) string {
	switch len(entries) {
	case 0:
		return "0 entries"
	case 1:
		return "1 domain"
	default:
		return fmt.Sprintf("%d domains", len(entries))
	}
}
