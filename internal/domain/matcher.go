package domain

import "fmt"

// Index kinds accepted by NewMatcher.
const (
	IndexSorted = "sorted" // binary search over the collapsed, sorted set
	IndexRadix  = "radix"  // radix tree walk over canonical names
)

// Matcher decides whether a domain is forbidden. Implementations are
// immutable after construction and safe for concurrent use.
type Matcher interface {
	// Match returns the forbidden root that d equals or descends from.
	Match(d Domain) (Domain, bool)
	IsForbidden(d Domain) bool
	// Roots returns the indexed forbidden roots in sorted order.
	Roots() []Domain
	Len() int
}

// NewMatcher builds the index named by kind over domains. The radix index is
// built from the collapsed roots so both kinds report the same Len and roots.
func NewMatcher(kind string, domains []Domain) (Matcher, error) {
	switch kind {
	case IndexSorted, "":
		return NewChecker(domains), nil
	case IndexRadix:
		return NewRadixIndex(NewChecker(domains).Get()), nil
	default:
		return nil, fmt.Errorf("unknown index %q (want %s or %s)", kind, IndexSorted, IndexRadix)
	}
}
