package domain

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	d := New("aBc.dE")
	assert.Equal(t, "ed.cba", d.Name())
	assert.Equal(t, "abc.de", d.String())
	assert.True(t, d.Equal(New("ABC.DE")))
	assert.True(t, d.Less(New("XYZ.de")))
	assert.Equal(t, d, New("abc.de"), "domains must be comparable with ==")
}

func TestNew_Empty(t *testing.T) {
	d := New("")
	assert.Equal(t, "", d.Name())
	assert.True(t, d.Equal(Domain{}))
	assert.False(t, d.IsSubdomain(Domain{}))
}

func TestNew_CaseFolding(t *testing.T) {
	for _, s := range []string{"gdz.ru", "Maps.Me", "QW123.xy.ABC.de", "a-b.c", ".lead", "trail.", ""} {
		t.Run(s, func(t *testing.T) {
			assert.True(t, New(s).Equal(New(strings.ToUpper(s))))
			assert.Equal(t, strings.ToLower(s), New(s).String())
		})
	}
}

func TestFromNames(t *testing.T) {
	got := FromNames([]string{"B.com", "a.org"})
	require.Len(t, got, 2)
	assert.Equal(t, "moc.b", got[0].Name())
	assert.Equal(t, "gro.a", got[1].Name())
}

func TestDomain_IsSubdomain(t *testing.T) {
	tests := []struct {
		name   string
		child  string
		parent string
		want   assert.BoolAssertionFunc
	}{
		{name: "direct subdomain", child: "m.gdz.ru", parent: "gdz.ru", want: assert.True},
		{name: "deep subdomain", child: "qw123.xy.abc.de", parent: "aBc.dE", want: assert.True},
		{name: "single char label", child: "a.root", parent: "root", want: assert.True},
		{name: "case insensitive", child: "WWW.Example.COM", parent: "example.com", want: assert.True},
		{name: "tld parent", child: "gdz.com", parent: "com", want: assert.True},
		{name: "itself", child: "gdz.ru", parent: "gdz.ru", want: assert.False},
		{name: "parent of", child: "abc.de", parent: "qw123.xy.abc.de", want: assert.False},
		{name: "missing dot", child: "xgdz.ru", parent: "gdz.ru", want: assert.False},
		{name: "hyphen instead of dot", child: "x-gdz.ru", parent: "gdz.ru", want: assert.False},
		{name: "only a dot longer", child: ".gdz.ru", parent: "gdz.ru", want: assert.False},
		{name: "leading dot", child: ".x.root", parent: "root", want: assert.False},
		{name: "leading double dot", child: "..x.root", parent: "root", want: assert.False},
		{name: "unrelated", child: "maps.ru", parent: "gdz.ru", want: assert.False},
		{name: "same suffix other tld", child: "gdz.ua", parent: "gdz.ru", want: assert.False},
		{name: "empty parent", child: "ru", parent: "", want: assert.False},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.want(t, New(tt.child).IsSubdomain(New(tt.parent)))
		})
	}
}

func TestDomain_IsSubdomain_NeverSelf(t *testing.T) {
	for _, s := range []string{"", ".", "..", "com", "gdz.ru", "a.b.c.d", ".x.root"} {
		assert.False(t, New(s).IsSubdomain(New(s)), s)
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{name: "equal", a: "gdz.ru", b: "GDZ.RU", want: 0},
		{name: "by top level label", a: "abc.de", b: "gdz.ru", want: -1},
		{name: "ancestor first", a: "gdz.ru", b: "m.gdz.ru", want: -1},
		{name: "descendant after ancestor", a: "m.gdz.ru", b: "gdz.ru", want: 1},
		{name: "dot before hyphen", a: "m.gdz.ru", b: "x-gdz.ru", want: -1},
		{name: "dot before letter", a: "m.gdz.ru", b: "agdz.ru", want: -1},
		{name: "empty first", a: "", b: "com", want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compare(New(tt.a), New(tt.b)))
			assert.Equal(t, -tt.want, Compare(New(tt.b), New(tt.a)))
		})
	}
}

func TestCompare_SubdomainsContiguous(t *testing.T) {
	names := []string{"x-gdz.ru", "m.gdz.ru", "gdz.ru", "agdz.ru", "a.m.gdz.ru", "gdz-x.ru", "z.gdz.ru"}
	domains := FromNames(names)
	slices.SortFunc(domains, Compare)

	root := New("gdz.ru")
	start := slices.IndexFunc(domains, root.Equal)
	require.GreaterOrEqual(t, start, 0)

	// root, then exactly its three subdomains, then everything else
	for i, d := range domains {
		inBlock := i > start && i <= start+3
		assert.Equal(t, inBlock, d.IsSubdomain(root), "position %d: %s", i, d)
	}
}

func FuzzNew(f *testing.F) {
	for _, s := range []string{"gdz.ru", "Maps.Me", ".x.root", "..", "a-b.c-d.E"} {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, s string) {
		for i := 0; i < len(s); i++ {
			if s[i] >= 0x80 {
				t.Skip("ascii only")
			}
		}
		d := New(s)
		if !d.Equal(New(strings.ToUpper(s))) {
			t.Errorf("New(%q) differs from its upper-case form", s)
		}
		if d.String() != strings.ToLower(s) {
			t.Errorf("New(%q).String() = %q", s, d.String())
		}
		if d.IsSubdomain(d) {
			t.Errorf("New(%q) is its own subdomain", s)
		}
		if Compare(d, d) != 0 {
			t.Errorf("Compare(%q, %q) != 0", s, s)
		}
	})
}
