/*
 * Copyright (c) 2024 Johan Stenstam, johani@johani.org
 */
package bns

import (
	"log"

	"github.com/miekg/dns"
)

func NewRecordMap(z *Zone) *RecordMap {
	return &RecordMap{
		zone: z,
		rrs:  map[uint16][]dns.RR{},
		sigs: map[uint16][]dns.RR{},
	}
}

// Insert files rr under its type. RRSIGs are additionally filed under
// the type they cover. Re-inserting a duplicate record is a no-op, so
// ingest is idempotent.
func (rm *RecordMap) Insert(rr dns.RR) {
	rrtype := rr.Header().Rrtype
	for _, old := range rm.rrs[rrtype] {
		if dns.IsDuplicate(old, rr) {
			return
		}
	}
	rm.rrs[rrtype] = append(rm.rrs[rrtype], rr)
	if sig, ok := rr.(*dns.RRSIG); ok {
		rm.sigs[sig.TypeCovered] = append(rm.sigs[sig.TypeCovered], rr)
	}
}

// Push appends the RRs answering (qname, qtype) to out. Any CNAME at
// the owner takes precedence over the queried type (RFC 1912 2.4), so
// the CNAME RRset is consulted first unless CNAME itself was asked for.
// Covering RRSIGs are attached when stored; when none are stored and
// the zone holds a ZSK, one is synthesized over the emitted set.
func (rm *RecordMap) Push(qname string, qtype uint16, out *[]dns.RR) {
	if qtype != dns.TypeCNAME {
		if rm.emit(qname, dns.TypeCNAME, out) {
			return
		}
	}
	rm.emit(qname, qtype, out)
}

func (rm *RecordMap) emit(qname string, rrtype uint16, out *[]dns.RR) bool {
	matched := filterMatches(qname, rm.rrs[rrtype])
	if len(matched) == 0 {
		return false
	}
	*out = append(*out, matched...)

	covering := filterMatches(qname, rm.sigs[rrtype])
	if len(covering) > 0 {
		*out = append(*out, covering...)
		return true
	}
	if rm.zone != nil && rm.zone.zsk != nil {
		rrsig, err := rm.zone.SignRRs(matched)
		if err != nil {
			log.Printf("emit: failed to sign %s %s: %v", qname, dns.TypeToString[rrtype], err)
			return true
		}
		*out = append(*out, rrsig)
	}
	return true
}

// Get runs Push into a fresh list and returns it.
func (rm *RecordMap) Get(qname string, qtype uint16) []dns.RR {
	var out []dns.RR
	rm.Push(qname, qtype, &out)
	return out
}

// filterMatches keeps the candidate RRs whose owner matches qname. A
// non-wildcard owner is accepted as-is: exact owners only ever arrive
// here via the exact-name table, where the owner already equals qname.
// A wildcard owner must match qname label-wise from the right; matched
// wildcard RRs are cloned with the owner rewritten to qname so that
// downstream encoding carries the queried name.
func filterMatches(qname string, rrs []dns.RR) []dns.RR {
	var out []dns.RR
	for _, rr := range rrs {
		owner := rr.Header().Name
		if !IsWildcard(owner) {
			out = append(out, rr)
			continue
		}
		if wildcardMatches(owner, qname) {
			newrr := dns.Copy(rr)
			newrr.Header().Name = qname
			out = append(out, newrr)
		}
	}
	return out
}
