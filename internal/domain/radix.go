package domain

import (
	"slices"

	"github.com/armon/go-radix"
)

// RadixIndex answers the same questions as Checker from a radix tree keyed
// by canonical name. A query walks only the keys that prefix its own
// canonical name, so no ordering argument is involved.
type RadixIndex struct {
	tree *radix.Tree
}

var _ Matcher = (*RadixIndex)(nil)

// NewRadixIndex inserts every domain into a new tree. Entries that are
// subdomains of other entries are kept; the walk stops at the shortest match.
func NewRadixIndex(domains []Domain) *RadixIndex {
	tree := radix.New()
	for _, d := range domains {
		tree.Insert(d.name, d)
	}
	return &RadixIndex{tree: tree}
}

// Len returns the number of distinct domains in the index.
func (x *RadixIndex) Len() int {
	return x.tree.Len()
}

// Roots returns every indexed domain in sorted order.
func (x *RadixIndex) Roots() []Domain {
	roots := make([]Domain, 0, x.tree.Len())
	x.tree.Walk(func(_ string, v interface{}) bool {
		roots = append(roots, v.(Domain))
		return false
	})
	slices.SortFunc(roots, Compare)
	return roots
}

// IsForbidden reports whether d equals or is a subdomain of an indexed domain.
func (x *RadixIndex) IsForbidden(d Domain) bool {
	_, ok := x.Match(d)
	return ok
}

// Match returns the shortest indexed domain that d equals or descends from.
func (x *RadixIndex) Match(d Domain) (Domain, bool) {
	var (
		root  Domain
		found bool
	)
	x.tree.WalkPath(d.name, func(_ string, v interface{}) bool {
		candidate := v.(Domain)
		if d.Equal(candidate) || d.IsSubdomain(candidate) {
			root, found = candidate, true
			return true
		}
		return false
	})
	return root, found
}
