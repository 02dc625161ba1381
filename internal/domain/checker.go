package domain

import (
	"slices"
	"strings"
)

// Checker holds a sorted set of forbidden domains in which no entry is equal
// to or a subdomain of another. It is read-only once built and safe for
// concurrent use.
type Checker struct {
	forbidden []Domain
	// set when a retained entry has an empty label; see Match
	emptyLabels bool
}

var _ Matcher = (*Checker)(nil)

// NewChecker sorts a copy of domains and collapses it to its roots: an entry
// is dropped when it equals, or is a subdomain of, a retained entry.
// Without empty labels the order puts every subdomain right after its
// ancestor, so comparing against the last retained entry is enough.
func NewChecker(domains []Domain) *Checker {
	sorted := slices.Clone(domains)
	slices.SortFunc(sorted, Compare)

	c := &Checker{}
	forbidden := sorted[:0]
	for _, d := range sorted {
		if n := len(forbidden); n > 0 {
			last := forbidden[n-1]
			if d.Equal(last) || d.IsSubdomain(last) {
				continue
			}
			if c.emptyLabels {
				if _, ok := findAncestor(forbidden, d); ok {
					continue
				}
			}
		}
		forbidden = append(forbidden, d)
		if hasEmptyLabel(d.name) {
			c.emptyLabels = true
		}
	}

	c.forbidden = slices.Clip(forbidden)
	return c
}

// Get returns a copy of the retained forbidden roots in sorted order.
func (c *Checker) Get() []Domain {
	return slices.Clone(c.forbidden)
}

// Roots is Get, to satisfy Matcher.
func (c *Checker) Roots() []Domain {
	return c.Get()
}

// Len returns the number of retained forbidden roots.
func (c *Checker) Len() int {
	return len(c.forbidden)
}

// IsForbidden reports whether d equals or is a subdomain of a forbidden root.
func (c *Checker) IsForbidden(d Domain) bool {
	_, ok := c.Match(d)
	return ok
}

// Match binary-searches the forbidden set and returns the root that d equals
// or descends from.
//
// When no retained root has an empty label, a root that d descends from is
// d's immediate predecessor in the sorted set (anything in between would
// itself be a subdomain of the root, and those were collapsed), so the
// search always compares against it. An entry such as "x..gdz.ru" is not a
// subdomain of "gdz.ru" yet sorts between it and "m.gdz.ru"; for such sets a
// miss falls back to an exact search for every ancestor name of d.
func (c *Checker) Match(d Domain) (Domain, bool) {
	l, r := 0, len(c.forbidden)-1
	for l <= r {
		mid := int(uint(l+r) >> 1)
		pivot := c.forbidden[mid]
		if d.Equal(pivot) || d.IsSubdomain(pivot) {
			return pivot, true
		}
		if d.Less(pivot) {
			r = mid - 1
		} else {
			l = mid + 1
		}
	}
	if c.emptyLabels {
		return findAncestor(c.forbidden, d)
	}
	return Domain{}, false
}

// findAncestor looks up, shortest first, every name that d equals or is a
// subdomain of in sorted.
func findAncestor(sorted []Domain, d Domain) (Domain, bool) {
	name := d.name
	for i := 0; i+1 < len(name); i++ {
		if name[i] != '.' || name[i+1] == '.' {
			continue
		}
		if root, ok := find(sorted, name[:i]); ok {
			return root, true
		}
	}
	return find(sorted, name)
}

func find(sorted []Domain, name string) (Domain, bool) {
	i, ok := slices.BinarySearchFunc(sorted, Domain{name: name}, Compare)
	if !ok {
		return Domain{}, false
	}
	return sorted[i], true
}

func hasEmptyLabel(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".") || strings.Contains(name, "..")
}
