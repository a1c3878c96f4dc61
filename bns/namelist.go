/*
 * Copyright (c) 2024 Johan Stenstam, johani@johani.org
 */
package bns

import (
	"sort"

	"github.com/miekg/dns"
)

// Insert adds name to the list, keeping it sorted in canonical order.
// Inserting a name that is already present is a no-op.
func (nl *NameList) Insert(name string) {
	name = dns.CanonicalName(name)
	i := sort.Search(len(nl.names), func(i int) bool {
		return CanonicalCompare(nl.names[i], name) >= 0
	})
	if i < len(nl.names) && nl.names[i] == name {
		return
	}
	nl.names = append(nl.names, "")
	copy(nl.names[i+1:], nl.names[i:])
	nl.names[i] = name
}

// Lower returns the greatest stored name strictly less than name under
// canonical order. If name is itself present the caller has misused the
// denial-proof machinery and ErrNotAnNxDomain is returned. If nothing
// is less than name, the empty string is returned.
func (nl *NameList) Lower(name string) (string, error) {
	name = dns.CanonicalName(name)
	i := sort.Search(len(nl.names), func(i int) bool {
		return CanonicalCompare(nl.names[i], name) >= 0
	})
	if i < len(nl.names) && nl.names[i] == name {
		return "", ErrNotAnNxDomain
	}
	if i == 0 {
		return "", nil
	}
	return nl.names[i-1], nil
}

// Contains reports whether name is present in the list.
func (nl *NameList) Contains(name string) bool {
	name = dns.CanonicalName(name)
	i := sort.Search(len(nl.names), func(i int) bool {
		return CanonicalCompare(nl.names[i], name) >= 0
	})
	return i < len(nl.names) && nl.names[i] == name
}

func (nl *NameList) Len() int {
	return len(nl.names)
}

// Names returns the stored names in canonical order.
func (nl *NameList) Names() []string {
	out := make([]string, len(nl.names))
	copy(out, nl.names)
	return out
}

func (nl *NameList) Clear() {
	nl.names = nl.names[:0]
}
