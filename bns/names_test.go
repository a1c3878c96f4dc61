package bns

import (
	"testing"
)

func TestCanonicalCompare(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{".", ".", 0},
		{".", "com.", -1},
		{"com.", "a.com.", -1},
		{"a.com.", "b.com.", -1},
		{"z.com.", "net.", -1},
		{"A.com.", "a.com.", 0},
		{"b.com.", "a.com.", 1},
		{"example.com.", "example.net.", -1},
	}
	for _, c := range cases {
		if got := CanonicalCompare(c.a, c.b); got != c.want {
			t.Errorf("CanonicalCompare(%q, %q) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestNameSuffix(t *testing.T) {
	cases := []struct {
		name  string
		count int
		want  string
	}{
		{".", 0, "."},
		{"com.", 0, ""},
		{"com.", 1, "com."},
		{"a.example.", 1, "example."},
		{"a.example.", 2, "a.example."},
		{"a.example.", 5, "a.example."},
		{"example.invalid.", 1, "invalid."},
	}
	for _, c := range cases {
		if got := NameSuffix(c.name, c.count); got != c.want {
			t.Errorf("NameSuffix(%q, %d) = %q, want %q", c.name, c.count, got, c.want)
		}
	}
}

func TestWildcardMatches(t *testing.T) {
	cases := []struct {
		owner, qname string
		want         bool
	}{
		{"*.example.", "foo.example.", true},
		{"*.example.", "bar.foo.example.", true},
		{"*.example.", "example.", false},
		{"*.example.", "foo.other.", false},
		{"*.", "anything.", true},
		{"*.", ".", false},
	}
	for _, c := range cases {
		if got := wildcardMatches(c.owner, c.qname); got != c.want {
			t.Errorf("wildcardMatches(%q, %q) = %v, want %v", c.owner, c.qname, got, c.want)
		}
	}
}

func TestIsWildcard(t *testing.T) {
	if !IsWildcard("*.example.") {
		t.Error("*.example. should be a wildcard owner")
	}
	if !IsWildcard("*.") {
		t.Error("*. should be a wildcard owner")
	}
	if IsWildcard("star.example.") {
		t.Error("star.example. is not a wildcard owner")
	}
}
