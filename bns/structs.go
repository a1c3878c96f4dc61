/*
 * Copyright (c) 2024 Johan Stenstam, johani@johani.org
 */
package bns

import (
	"crypto"
	"log"
	"time"

	"github.com/miekg/dns"
	cmap "github.com/orcaman/concurrent-map/v2"
)

// Zone holds the authoritative data for a single zone of authority.
// Exact owner names live in names; wildcard owners are kept apart in
// wild and only consulted when the exact table misses.
type Zone struct {
	Origin  string // canonical lowercase FQDN
	count   int    // label count of Origin
	names   cmap.ConcurrentMap[string, *RecordMap]
	wild    *RecordMap
	nsec    NameList
	zsk     *ZskCache
	Logger  *log.Logger
	Verbose bool
	Debug   bool
}

// RecordMap indexes the RRsets at one owner name by RR type. RRSIGs are
// additionally filed under the type they cover, so retrieval can attach
// the covering signatures without scanning. The zone back-reference is
// non-owning and only used to reach the signing key.
type RecordMap struct {
	zone *Zone
	rrs  map[uint16][]dns.RR
	sigs map[uint16][]dns.RR // keyed by RRSIG TypeCovered
}

// NameList is a canonically ordered set of owner names. It tracks the
// owners that carry an NSEC record and answers strict-predecessor
// queries for denial-of-existence proofs.
type NameList struct {
	names []string
}

// ZskCache carries the zone signing key: the public DNSKEY RR plus the
// parsed private material ready for signing.
type ZskCache struct {
	K         crypto.PrivateKey
	CS        crypto.Signer
	Algorithm uint8
	KeyId     uint16
	DnskeyRR  dns.DNSKEY
}

// ZoneConf represents the external config for a zone; it contains no zone data.
type ZoneConf struct {
	Name     string `validate:"required"`
	Zonefile string `validate:"required"`
	Options  []string
}

type ZoneListResponse struct {
	Time  time.Time
	Zones []string
}

type ZoneQueryResponse struct {
	Time       time.Time
	Zone       string
	Qname      string
	Qtype      string
	Rcode      string
	Aa         bool
	Answer     []string
	Authority  []string
	Additional []string
	Error      bool
	ErrorMsg   string
}

type HintsResponse struct {
	Time  time.Time
	NS    []string
	Addrs []string
}
