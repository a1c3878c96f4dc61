/*
 * Copyright (c) 2024 Johan Stenstam, johani@johani.org
 */
package bns

import (
	"github.com/miekg/dns"
)

// CanonicalCompare orders two domain names in DNS canonical order:
// labels are compared right to left, bytewise on the lowercased bytes
// within a label, and a name that is a proper suffix of another sorts
// first. Returns -1, 0 or 1.
func CanonicalCompare(a, b string) int {
	a = dns.CanonicalName(a)
	b = dns.CanonicalName(b)
	la := dns.SplitDomainName(a)
	lb := dns.SplitDomainName(b)

	n := len(la)
	if len(lb) < n {
		n = len(lb)
	}
	for i := 1; i <= n; i++ {
		x := la[len(la)-i]
		y := lb[len(lb)-i]
		if x != y {
			if x < y {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(la) < len(lb):
		return -1
	case len(la) > len(lb):
		return 1
	}
	return 0
}

// NameSuffix returns the suffix of name consisting of its rightmost
// count labels. A count covering the whole name (or more) returns the
// name itself; count zero on a non-root name returns the empty string,
// which never compares equal to any origin.
func NameSuffix(name string, count int) string {
	idx := dns.Split(name) // nil for the root name
	offset := len(idx) - count
	if offset <= 0 {
		return name
	}
	if offset == len(idx) {
		return ""
	}
	return name[idx[offset]:]
}

// IsWildcard reports whether the leftmost label of name is the single
// byte '*'.
func IsWildcard(name string) bool {
	return name == "*." || len(name) > 2 && name[0] == '*' && name[1] == '.'
}

// wildcardBase returns the parent name T of a wildcard owner *.T.
func wildcardBase(owner string) string {
	if owner == "*." {
		return "."
	}
	return owner[2:]
}

// wildcardMatches reports whether the wildcard owner matches qname:
// qname must sit strictly below the wildcard's parent name, so that at
// least one label is consumed by the '*'.
func wildcardMatches(owner, qname string) bool {
	base := wildcardBase(owner)
	return dns.IsSubDomain(base, qname) && dns.CountLabel(qname) > dns.CountLabel(base)
}

// canonicalizeRR lowercases the owner name and the domain names
// embedded in the rdata of the record types listed below; rdata of
// other types is left as it is. Records are canonicalized once, at
// insertion.
func canonicalizeRR(rr dns.RR) {
	h := rr.Header()
	h.Name = dns.CanonicalName(h.Name)

	switch v := rr.(type) {
	case *dns.CNAME:
		v.Target = dns.CanonicalName(v.Target)
	case *dns.DNAME:
		v.Target = dns.CanonicalName(v.Target)
	case *dns.NS:
		v.Ns = dns.CanonicalName(v.Ns)
	case *dns.SOA:
		v.Ns = dns.CanonicalName(v.Ns)
		v.Mbox = dns.CanonicalName(v.Mbox)
	case *dns.MX:
		v.Mx = dns.CanonicalName(v.Mx)
	case *dns.SRV:
		v.Target = dns.CanonicalName(v.Target)
	case *dns.PTR:
		v.Ptr = dns.CanonicalName(v.Ptr)
	case *dns.NSEC:
		v.NextDomain = dns.CanonicalName(v.NextDomain)
	case *dns.RRSIG:
		v.SignerName = dns.CanonicalName(v.SignerName)
	}
}
