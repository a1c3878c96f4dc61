/*
 * Copyright (c) 2024 Johan Stenstam, johani@johani.org
 */
package bns

import (
	"fmt"
	"log"

	"github.com/miekg/dns"
	cmap "github.com/orcaman/concurrent-map/v2"
)

// NewZone creates an empty zone for the given origin.
func NewZone(origin string) (*Zone, error) {
	zd := &Zone{
		names:  cmap.New[*RecordMap](),
		Logger: log.Default(),
	}
	zd.wild = NewRecordMap(zd)
	if err := zd.SetOrigin(origin); err != nil {
		return nil, err
	}
	return zd, nil
}

// SetOrigin normalizes origin to a lowercase FQDN and recomputes the
// label count. Records already inserted are not migrated; this is meant
// for empty-zone construction.
func (zd *Zone) SetOrigin(origin string) error {
	origin = dns.Fqdn(origin)
	if _, ok := dns.IsDomainName(origin); !ok {
		return fmt.Errorf("SetOrigin: %w: %q", ErrNotFqdn, origin)
	}
	zd.Origin = dns.CanonicalName(origin)
	zd.count = dns.CountLabel(zd.Origin)
	return nil
}

// Insert adds a record to the zone. The record is deep-copied and
// canonicalized; the caller's copy is never retained. Owners must be
// subdomains of the origin, except for A/AAAA records which may be
// out-of-zone glue. NSEC owners are also filed into the name list used
// for denial proofs.
func (zd *Zone) Insert(rr dns.RR) error {
	if rr == nil {
		return fmt.Errorf("Insert: nil record")
	}
	if !dns.IsFqdn(rr.Header().Name) {
		return fmt.Errorf("Insert: %w: %q", ErrNotFqdn, rr.Header().Name)
	}

	clone := dns.Copy(rr)
	canonicalizeRR(clone)
	owner := clone.Header().Name
	rrtype := clone.Header().Rrtype

	if !dns.IsSubDomain(zd.Origin, owner) &&
		rrtype != dns.TypeA && rrtype != dns.TypeAAAA {
		return fmt.Errorf("Insert: %w: %s is not below %s", ErrOutOfZone, owner, zd.Origin)
	}

	if IsWildcard(owner) {
		zd.wild.Insert(clone)
	} else {
		rm, ok := zd.names.Get(owner)
		if !ok {
			rm = NewRecordMap(zd)
			zd.names.Set(owner, rm)
		}
		rm.Insert(clone)
	}

	if rrtype == dns.TypeNSEC {
		zd.nsec.Insert(owner)
	}
	return nil
}

// Push appends the RRs answering (qname, qtype) to out. An exact owner
// shadows any wildcard: the wildcard table is only consulted when the
// exact table has no entry for qname at all.
func (zd *Zone) Push(qname string, qtype uint16, out *[]dns.RR) {
	qname = dns.CanonicalName(qname)
	if rm, ok := zd.names.Get(qname); ok {
		rm.Push(qname, qtype, out)
		return
	}
	zd.wild.Push(qname, qtype, out)
}

// Get returns the RRs answering (qname, qtype).
func (zd *Zone) Get(qname string, qtype uint16) []dns.RR {
	var out []dns.RR
	zd.Push(qname, qtype, &out)
	return out
}

// Has reports whether the zone stores RRs of the given type at qname,
// either exactly or via a matching wildcard.
func (zd *Zone) Has(qname string, qtype uint16) bool {
	qname = dns.CanonicalName(qname)
	if rm, ok := zd.names.Get(qname); ok {
		return len(rm.rrs[qtype]) > 0
	}
	return len(filterMatches(qname, zd.wild.rrs[qtype])) > 0
}

// NameExists reports whether qname has an entry in the exact-owner table.
func (zd *Zone) NameExists(qname string) bool {
	_, ok := zd.names.Get(dns.CanonicalName(qname))
	return ok
}

// OwnerNames returns the exact owner names currently stored.
func (zd *Zone) OwnerNames() []string {
	return zd.names.Keys()
}

// Glue appends records for a referenced owner. With qtype zero both A
// and AAAA are appended. If nothing could be appended and authority is
// non-nil, the zone's SOA is pushed there instead: an unresolved target
// turns into an authoritative no-data assertion (RFC 1034 4.3.2 3c).
func (zd *Zone) Glue(name string, qtype uint16, out *[]dns.RR, authority *[]dns.RR) {
	before := len(*out)
	if qtype == 0 {
		zd.Push(name, dns.TypeA, out)
		zd.Push(name, dns.TypeAAAA, out)
	} else {
		zd.Push(name, qtype, out)
	}
	if len(*out) == before && authority != nil {
		zd.Push(zd.Origin, dns.TypeSOA, authority)
	}
}

// Find is the local answer pass: retrieve (name, qtype) and chase the
// referenced owners of whatever came back. CNAME and DNAME targets are
// chased under the original qtype into the answer itself, so chains are
// emitted in order; NS, SOA, MX and SRV targets pull address glue into
// the additional section. The seen set keeps malformed looping chains
// finite.
func (zd *Zone) Find(name string, qtype uint16) (answer, additional, authority []dns.RR) {
	answer = zd.Get(name, qtype)
	seen := map[string]bool{}
	for i := 0; i < len(answer); i++ {
		switch v := answer[i].(type) {
		case *dns.CNAME:
			if seen[v.Target] {
				continue
			}
			seen[v.Target] = true
			zd.Glue(v.Target, qtype, &answer, &authority)
		case *dns.DNAME:
			if seen[v.Target] {
				continue
			}
			seen[v.Target] = true
			zd.Glue(v.Target, qtype, &answer, &authority)
		case *dns.NS:
			zd.Glue(v.Ns, 0, &additional, nil)
		case *dns.SOA:
			zd.Glue(v.Ns, 0, &additional, nil)
		case *dns.MX:
			zd.Glue(v.Mx, 0, &additional, nil)
		case *dns.SRV:
			zd.Glue(v.Target, 0, &additional, nil)
		}
	}
	return answer, additional, authority
}

// Query is the authoritative resolution state machine. It returns the
// three response sections plus the authoritative-answer flag and ok,
// which is false exactly when the response denies existence (no-data or
// no such name).
func (zd *Zone) Query(qname string, qtype uint16) (answer, authority, additional []dns.RR, aa bool, ok bool) {
	zone := NameSuffix(qname, zd.count)
	auth := zone == zd.Origin

	ans, addl, extra := zd.Find(qname, qtype)
	if len(ans) > 0 {
		if !auth {
			// The name sits at or below a delegation point this zone
			// also carries records for (DS, NSEC). Such data belongs in
			// the authority section of a non-authoritative response.
			if qtype == dns.TypeNS {
				ans = append(ans, zd.Get(qname, dns.TypeDS)...)
			}
			return nil, ans, addl, false, true
		}
		return ans, extra, addl, true, true
	}

	if auth {
		// Authoritative for the name, nothing of this type: no-data.
		var authy []dns.RR
		zd.Push(zd.Origin, dns.TypeSOA, &authy)
		zd.proveNoData(&authy)
		return nil, authy, nil, true, false
	}

	// One label below the origin: either a referral or a name error.
	child := NameSuffix(qname, zd.count+1)
	cans, caddl, _ := zd.Find(child, dns.TypeNS)
	for _, rr := range cans {
		if rr.Header().Rrtype == dns.TypeNS {
			cans = append(cans, zd.Get(child, dns.TypeDS)...)
			return nil, cans, caddl, false, true
		}
	}

	if zd.Origin == "." {
		var authy []dns.RR
		zd.Push(zd.Origin, dns.TypeSOA, &authy)
		zd.proveNameError(child, &authy)
		return nil, authy, nil, false, false
	}
	// Non-root zones answer the name error with an empty authority
	// section to keep the response minimal.
	return nil, nil, nil, false, false
}

// Resolve is the public query entry point. ANY is answered as NS to
// discourage amplification. The response code is NXDOMAIN exactly when
// the query was neither answered nor answerable authoritatively.
func (zd *Zone) Resolve(qname string, qtype uint16) *dns.Msg {
	qname = dns.CanonicalName(qname)
	if qtype == dns.TypeANY {
		qtype = dns.TypeNS
	}
	answer, authority, additional, aa, ok := zd.Query(qname, qtype)

	m := new(dns.Msg)
	m.MsgHdr.Response = true
	m.MsgHdr.Authoritative = aa
	if !aa && !ok {
		m.MsgHdr.Rcode = dns.RcodeNameError
	} else {
		m.MsgHdr.Rcode = dns.RcodeSuccess
	}
	m.Answer = append(m.Answer, answer...)
	m.Ns = append(m.Ns, authority...)
	m.Extra = append(m.Extra, additional...)
	return m
}

// proveNoData appends the origin's NSEC, proving the queried type is
// absent at an existing name.
func (zd *Zone) proveNoData(authority *[]dns.RR) {
	zd.Push(zd.Origin, dns.TypeNSEC, authority)
}

// proveNameError appends the NSEC of qname's canonical predecessor and
// the origin NSEC, together proving no such name exists.
func (zd *Zone) proveNameError(qname string, authority *[]dns.RR) {
	lower, err := zd.nsec.Lower(qname)
	if err != nil {
		zd.Logger.Printf("proveNameError: %s: %v", qname, err)
	} else if lower != "" {
		zd.Push(lower, dns.TypeNSEC, authority)
	}
	zd.Push(zd.Origin, dns.TypeNSEC, authority)
}

// ClearRecords drops all record data but keeps origin and signing key.
func (zd *Zone) ClearRecords() {
	zd.names.Clear()
	zd.wild = NewRecordMap(zd)
	zd.nsec.Clear()
}

// Clear resets the zone to its freshly constructed state.
func (zd *Zone) Clear() {
	zd.ClearRecords()
	zd.zsk = nil
}
