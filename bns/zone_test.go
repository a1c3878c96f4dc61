package bns

import (
	"errors"
	"testing"

	"github.com/miekg/dns"
)

const rootZoneData = `
.			86400	IN	SOA	a.root-servers.net. nstld.verisign-grs.com. 2024010101 1800 900 604800 86400
.			518400	IN	NS	a.root-servers.net.
a.root-servers.net.	518400	IN	A	198.41.0.4
com.			172800	IN	NS	a.gtld-servers.net.
com.			86400	IN	DS	30909 8 2 E2D3C916F6DEEAC73294E8268FB5885044A833FC5459588F4A9184CFC41A5766
a.gtld-servers.net.	172800	IN	A	192.5.6.30
.			86400	IN	NSEC	com. NS SOA RRSIG NSEC
com.			86400	IN	NSEC	. NS DS RRSIG NSEC
`

const exampleZoneData = `
example.	3600	IN	SOA	ns1.example. hostmaster.example. 1 1800 900 604800 86400
example.	3600	IN	NS	ns1.example.
ns1.example.	3600	IN	A	192.0.2.1
a.example.	3600	IN	CNAME	b.example.
b.example.	3600	IN	A	192.0.2.2
c.example.	3600	IN	CNAME	nx.other.
`

func rootZone(t *testing.T) *Zone {
	t.Helper()
	zd, err := ZoneFromString(".", rootZoneData)
	if err != nil {
		t.Fatalf("ZoneFromString(.): %v", err)
	}
	return zd
}

func exampleZone(t *testing.T) *Zone {
	t.Helper()
	zd, err := ZoneFromString("example.", exampleZoneData)
	if err != nil {
		t.Fatalf("ZoneFromString(example.): %v", err)
	}
	return zd
}

func typesOf(rrs []dns.RR) []uint16 {
	var out []uint16
	for _, rr := range rrs {
		out = append(out, rr.Header().Rrtype)
	}
	return out
}

func TestReferralAtDelegationPoint(t *testing.T) {
	zd := rootZone(t)

	m := zd.Resolve("com.", dns.TypeNS)
	if m.MsgHdr.Authoritative {
		t.Error("referral must not be authoritative")
	}
	if m.MsgHdr.Rcode != dns.RcodeSuccess {
		t.Errorf("rcode = %s, want NOERROR", dns.RcodeToString[m.MsgHdr.Rcode])
	}
	if len(m.Answer) != 0 {
		t.Errorf("answer section not empty: %v", m.Answer)
	}
	if len(m.Ns) != 2 {
		t.Fatalf("authority = %v, want NS + DS", typesOf(m.Ns))
	}
	if m.Ns[0].Header().Rrtype != dns.TypeNS || m.Ns[1].Header().Rrtype != dns.TypeDS {
		t.Errorf("authority types = %v, want [NS DS]", typesOf(m.Ns))
	}
	if len(m.Extra) != 1 || m.Extra[0].Header().Name != "a.gtld-servers.net." {
		t.Errorf("additional = %v, want glue for a.gtld-servers.net.", m.Extra)
	}
}

func TestReferralBelowDelegation(t *testing.T) {
	zd := rootZone(t)

	m := zd.Resolve("www.com.", dns.TypeA)
	if m.MsgHdr.Authoritative {
		t.Error("referral must not be authoritative")
	}
	if m.MsgHdr.Rcode != dns.RcodeSuccess {
		t.Errorf("rcode = %s, want NOERROR", dns.RcodeToString[m.MsgHdr.Rcode])
	}
	if len(m.Answer) != 0 {
		t.Errorf("answer section not empty: %v", m.Answer)
	}
	if len(m.Ns) != 2 || m.Ns[0].Header().Rrtype != dns.TypeNS || m.Ns[1].Header().Rrtype != dns.TypeDS {
		t.Errorf("authority types = %v, want [NS DS]", typesOf(m.Ns))
	}
	if len(m.Extra) != 1 {
		t.Errorf("additional = %v, want one glue RR", m.Extra)
	}
}

func TestNxDomainAtRoot(t *testing.T) {
	zd := rootZone(t)

	m := zd.Resolve("example.invalid.", dns.TypeA)
	if m.MsgHdr.Rcode != dns.RcodeNameError {
		t.Fatalf("rcode = %s, want NXDOMAIN", dns.RcodeToString[m.MsgHdr.Rcode])
	}
	if m.MsgHdr.Authoritative {
		t.Error("aa must be false on the root name error")
	}
	if len(m.Ns) != 3 {
		t.Fatalf("authority = %v, want SOA + two NSECs", typesOf(m.Ns))
	}
	if m.Ns[0].Header().Rrtype != dns.TypeSOA {
		t.Errorf("authority[0] is %s, want SOA", dns.TypeToString[m.Ns[0].Header().Rrtype])
	}
	if m.Ns[1].Header().Rrtype != dns.TypeNSEC || m.Ns[1].Header().Name != "com." {
		t.Errorf("authority[1] = %v, want NSEC at com.", m.Ns[1])
	}
	if m.Ns[2].Header().Rrtype != dns.TypeNSEC || m.Ns[2].Header().Name != "." {
		t.Errorf("authority[2] = %v, want NSEC at .", m.Ns[2])
	}
}

func TestNxDomainNonRootStaysQuiet(t *testing.T) {
	zd := exampleZone(t)

	m := zd.Resolve("foo.other.", dns.TypeA)
	if m.MsgHdr.Rcode != dns.RcodeNameError {
		t.Fatalf("rcode = %s, want NXDOMAIN", dns.RcodeToString[m.MsgHdr.Rcode])
	}
	if len(m.Answer) != 0 || len(m.Ns) != 0 || len(m.Extra) != 0 {
		t.Errorf("non-root name error must have empty sections: %v %v %v",
			m.Answer, m.Ns, m.Extra)
	}
}

func TestApexSoaQuery(t *testing.T) {
	zd := rootZone(t)

	m := zd.Resolve(".", dns.TypeSOA)
	if !m.MsgHdr.Authoritative {
		t.Error("apex SOA answer must be authoritative")
	}
	if m.MsgHdr.Rcode != dns.RcodeSuccess {
		t.Errorf("rcode = %s, want NOERROR", dns.RcodeToString[m.MsgHdr.Rcode])
	}
	if len(m.Answer) != 1 || m.Answer[0].Header().Rrtype != dns.TypeSOA {
		t.Fatalf("answer = %v, want the SOA", typesOf(m.Answer))
	}
	// glue for the SOA MNAME
	if len(m.Extra) != 1 || m.Extra[0].Header().Name != "a.root-servers.net." {
		t.Errorf("additional = %v, want glue for the MNAME", m.Extra)
	}
}

func TestAuthoritativeNoData(t *testing.T) {
	zd := rootZone(t)

	m := zd.Resolve(".", dns.TypeTXT)
	if !m.MsgHdr.Authoritative {
		t.Error("no-data answer must be authoritative")
	}
	if m.MsgHdr.Rcode != dns.RcodeSuccess {
		t.Errorf("rcode = %s, want NOERROR", dns.RcodeToString[m.MsgHdr.Rcode])
	}
	if len(m.Answer) != 0 {
		t.Errorf("answer section not empty: %v", m.Answer)
	}
	if len(m.Ns) != 2 || m.Ns[0].Header().Rrtype != dns.TypeSOA || m.Ns[1].Header().Rrtype != dns.TypeNSEC {
		t.Errorf("authority types = %v, want [SOA NSEC]", typesOf(m.Ns))
	}
	if len(m.Ns) == 2 && m.Ns[1].Header().Name != "." {
		t.Errorf("NSEC owner = %q, want the origin", m.Ns[1].Header().Name)
	}
}

func TestCnameChainWithLocalTarget(t *testing.T) {
	zd := exampleZone(t)

	m := zd.Resolve("a.example.", dns.TypeA)
	if !m.MsgHdr.Authoritative {
		t.Error("expected an authoritative answer")
	}
	if len(m.Answer) != 2 {
		t.Fatalf("answer = %v, want CNAME then A", typesOf(m.Answer))
	}
	if m.Answer[0].Header().Rrtype != dns.TypeCNAME || m.Answer[1].Header().Rrtype != dns.TypeA {
		t.Errorf("answer types = %v, want [CNAME A]", typesOf(m.Answer))
	}
	if m.Answer[1].Header().Name != "b.example." {
		t.Errorf("chased A owner = %q, want b.example.", m.Answer[1].Header().Name)
	}
}

func TestCnameChainUnresolvedTarget(t *testing.T) {
	zd := exampleZone(t)

	m := zd.Resolve("c.example.", dns.TypeA)
	if !m.MsgHdr.Authoritative {
		t.Error("expected an authoritative answer")
	}
	if m.MsgHdr.Rcode != dns.RcodeSuccess {
		t.Errorf("rcode = %s, want NOERROR", dns.RcodeToString[m.MsgHdr.Rcode])
	}
	if len(m.Answer) != 1 || m.Answer[0].Header().Rrtype != dns.TypeCNAME {
		t.Fatalf("answer = %v, want the CNAME only", typesOf(m.Answer))
	}
	if len(m.Ns) != 1 || m.Ns[0].Header().Rrtype != dns.TypeSOA {
		t.Errorf("authority = %v, want the SOA fallback", typesOf(m.Ns))
	}
}

func TestCnameExclusivity(t *testing.T) {
	zd := exampleZone(t)
	if err := zd.Insert(mustRR(t, `a.example. 3600 IN TXT "smuggled"`)); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	m := zd.Resolve("a.example.", dns.TypeTXT)
	for _, rr := range m.Answer {
		if rr.Header().Rrtype == dns.TypeTXT {
			t.Errorf("TXT leaked past the CNAME: %v", rr)
		}
	}
	if len(m.Answer) == 0 || m.Answer[0].Header().Rrtype != dns.TypeCNAME {
		t.Errorf("answer = %v, want the CNAME", typesOf(m.Answer))
	}
}

func TestWildcardExpansion(t *testing.T) {
	zd := exampleZone(t)
	if err := zd.Insert(mustRR(t, "*.example. 3600 IN A 192.0.2.7")); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	m := zd.Resolve("foo.example.", dns.TypeA)
	if !m.MsgHdr.Authoritative {
		t.Error("wildcard answer must be authoritative")
	}
	if len(m.Answer) != 1 || m.Answer[0].Header().Name != "foo.example." {
		t.Fatalf("answer = %v, want one A with owner foo.example.", m.Answer)
	}

	// an exact owner shadows the wildcard
	if err := zd.Insert(mustRR(t, `bar.example. 3600 IN TXT "exact"`)); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if got := zd.Get("bar.example.", dns.TypeA); len(got) != 0 {
		t.Errorf("wildcard leaked past exact owner bar.example.: %v", got)
	}

	// deeper names still expand
	if got := zd.Get("x.y.example.", dns.TypeA); len(got) != 1 || got[0].Header().Name != "x.y.example." {
		t.Errorf("deep wildcard expansion broken: %v", got)
	}
}

func TestInsertCanonicalizes(t *testing.T) {
	zd := exampleZone(t)
	if err := zd.Insert(mustRR(t, "UPPER.Example. 3600 IN A 192.0.2.9")); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	got := zd.Get("upper.example.", dns.TypeA)
	if len(got) != 1 {
		t.Fatalf("canonicalized owner not retrievable: %v", got)
	}
	if got[0].Header().Name != "upper.example." {
		t.Errorf("stored owner = %q, want lowercase", got[0].Header().Name)
	}

	// queries are folded as well
	m := zd.Resolve("UPPER.EXAMPLE.", dns.TypeA)
	if len(m.Answer) != 1 {
		t.Errorf("case-folded query failed: %v", m.Answer)
	}
}

func TestInsertOutOfZone(t *testing.T) {
	zd := exampleZone(t)

	err := zd.Insert(mustRR(t, "other. 3600 IN NS ns.other."))
	if !errors.Is(err, ErrOutOfZone) {
		t.Errorf("out-of-zone NS insert: err = %v, want ErrOutOfZone", err)
	}

	// address glue may live out of zone
	if err := zd.Insert(mustRR(t, "ns.other. 3600 IN A 192.0.2.53")); err != nil {
		t.Errorf("out-of-zone A glue rejected: %v", err)
	}
}

func TestIdempotentIngest(t *testing.T) {
	zd := exampleZone(t)
	rr := mustRR(t, "b.example. 3600 IN A 192.0.2.2") // already in the zone
	if err := zd.Insert(rr); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if got := zd.Get("b.example.", dns.TypeA); len(got) != 1 {
		t.Errorf("duplicate insert changed retrieval: %v", got)
	}

	nsec := mustRR(t, "b.example. 3600 IN NSEC c.example. A NSEC")
	if err := zd.Insert(nsec); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := zd.Insert(nsec); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	count := 0
	for _, name := range zd.NsecNames() {
		if name == "b.example." {
			count++
		}
	}
	if count != 1 {
		t.Errorf("NSEC owner filed %d times in the name list, want 1", count)
	}
}

func TestAnyMapsToNS(t *testing.T) {
	zd := rootZone(t)
	m := zd.Resolve("com.", dns.TypeANY)
	// same shape as an explicit NS referral
	if len(m.Answer) != 0 || len(m.Ns) != 2 {
		t.Errorf("ANY answer = %v / %v, want the NS referral shape", typesOf(m.Answer), typesOf(m.Ns))
	}
}

func TestMxAndSrvChasing(t *testing.T) {
	zd := exampleZone(t)
	if err := zd.Insert(mustRR(t, "example. 3600 IN MX 10 b.example.")); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := zd.Insert(mustRR(t, "_sip._tcp.example. 3600 IN SRV 0 5 5060 ns1.example.")); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	m := zd.Resolve("example.", dns.TypeMX)
	if len(m.Answer) != 1 || m.Answer[0].Header().Rrtype != dns.TypeMX {
		t.Fatalf("answer = %v, want the MX", typesOf(m.Answer))
	}
	if len(m.Extra) != 1 || m.Extra[0].Header().Name != "b.example." {
		t.Errorf("additional = %v, want glue for the exchanger", m.Extra)
	}

	m = zd.Resolve("_sip._tcp.example.", dns.TypeSRV)
	if len(m.Answer) != 1 || m.Answer[0].Header().Rrtype != dns.TypeSRV {
		t.Fatalf("answer = %v, want the SRV", typesOf(m.Answer))
	}
	if len(m.Extra) != 1 || m.Extra[0].Header().Name != "ns1.example." {
		t.Errorf("additional = %v, want glue for the target", m.Extra)
	}
}

func TestCnameLoopTerminates(t *testing.T) {
	zd := exampleZone(t)
	if err := zd.Insert(mustRR(t, "loop1.example. 3600 IN CNAME loop2.example.")); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := zd.Insert(mustRR(t, "loop2.example. 3600 IN CNAME loop1.example.")); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	m := zd.Resolve("loop1.example.", dns.TypeA)
	if len(m.Answer) > 4 {
		t.Errorf("looping chain emitted %d RRs", len(m.Answer))
	}
}

func TestClear(t *testing.T) {
	zd := exampleZone(t)
	zd.Clear()
	if got := zd.Get("b.example.", dns.TypeA); len(got) != 0 {
		t.Errorf("records survived Clear: %v", got)
	}
	if zd.NameExists("example.") {
		t.Error("owner table survived Clear")
	}
	if len(zd.NsecNames()) != 0 {
		t.Error("nsec name list survived Clear")
	}
}

func TestHasAndNameExists(t *testing.T) {
	zd := exampleZone(t)
	if !zd.Has("b.example.", dns.TypeA) {
		t.Error("Has(b.example., A) = false")
	}
	if zd.Has("b.example.", dns.TypeMX) {
		t.Error("Has(b.example., MX) = true")
	}
	if !zd.NameExists("b.example.") {
		t.Error("NameExists(b.example.) = false")
	}
	if zd.NameExists("zz.example.") {
		t.Error("NameExists(zz.example.) = true")
	}
}
