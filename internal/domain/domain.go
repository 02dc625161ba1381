// Package domain provides the canonical domain name value and the forbidden
// set lookups built on top of it.
package domain

import "strings"

// Domain is a domain name in canonical form: lowercased and reversed
// character by character, so "maps.me" is stored as "em.spam". A parent's
// canonical name is then a prefix of every subdomain's canonical name.
//
// The zero value is the empty domain. Domain values are immutable and
// comparable with ==.
type Domain struct {
	name string
}

// New builds a Domain from a raw name. No validation is performed: any
// string, including the empty one, yields a deterministic canonical form.
func New(raw string) Domain {
	b := []byte(strings.ToLower(raw))
	reverse(b)
	return Domain{name: string(b)}
}

// FromNames builds a Domain for every raw name, preserving order.
func FromNames(names []string) []Domain {
	out := make([]Domain, len(names))
	for i, n := range names {
		out[i] = New(n)
	}
	return out
}

// Name returns the canonical (reversed) name.
func (d Domain) Name() string {
	return d.name
}

// String returns the lowercased name in its usual left-to-right form.
func (d Domain) String() string {
	b := []byte(d.name)
	reverse(b)
	return string(b)
}

// Equal reports whether both domains have the same canonical name.
func (d Domain) Equal(other Domain) bool {
	return d.name == other.name
}

// Less reports whether d sorts before other.
func (d Domain) Less(other Domain) bool {
	return Compare(d, other) < 0
}

// IsSubdomain reports whether d is a strict subdomain of other, i.e. d is
// one or more labels, a dot, and then the whole of other.
func (d Domain) IsSubdomain(other Domain) bool {
	m, n := len(other.name), len(d.name)
	// at least a separating dot plus one character
	if n < m+2 {
		return false
	}
	return d.name[:m] == other.name &&
		d.name[m] == '.' &&
		d.name[m+1] != '.'
}

// Compare orders domains lexicographically by canonical name, with the
// label separator '.' ranked below every other byte. That keeps an ancestor
// directly followed by all of its subdomains: with plain byte order
// "ur.zdg-x" (x-gdz.ru) would land between "ur.zdg" and "ur.zdg.m".
//
// Compare returns -1, 0 or +1 and can be passed to slices.SortFunc.
func Compare(a, b Domain) int {
	x, y := a.name, b.name
	n := min(len(x), len(y))
	for i := 0; i < n; i++ {
		if x[i] == y[i] {
			continue
		}
		if sortKey(x[i]) < sortKey(y[i]) {
			return -1
		}
		return 1
	}
	switch {
	case len(x) < len(y):
		return -1
	case len(x) > len(y):
		return 1
	}
	return 0
}

func sortKey(c byte) int {
	if c == '.' {
		return -1
	}
	return int(c)
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
