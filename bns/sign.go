/*
 * Copyright (c) 2024 Johan Stenstam, johani@johani.org
 */
package bns

import (
	"fmt"
	"time"

	"github.com/miekg/dns"
	"golang.org/x/exp/rand"
)

func sigLifetime(t time.Time, lifetime uint32) (uint32, uint32) {
	sigJitter := time.Duration(rand.Intn(61)) * time.Second
	sigValidity := time.Duration(lifetime) * time.Second
	if lifetime == 0 {
		sigValidity = 5 * time.Minute
	}
	incep := uint32(t.Add(-sigJitter).Unix())
	expir := uint32(t.Add(sigValidity).Add(sigJitter).Unix())
	return incep, expir
}

// SignRRs produces one RRSIG over rrs with the zone's ZSK. The RRs must
// all belong to a single RRset. This is the on-the-fly path used for
// RRsets that cannot carry precomputed signatures, wildcard-expanded
// answers in particular.
func (zd *Zone) SignRRs(rrs []dns.RR) (dns.RR, error) {
	if zd.zsk == nil {
		return nil, ErrNoSigningKey
	}
	if len(rrs) == 0 {
		return nil, fmt.Errorf("SignRRs: rrset has no RRs")
	}

	rrsig := new(dns.RRSIG)
	rrsig.Hdr = dns.RR_Header{
		Name:   rrs[0].Header().Name,
		Rrtype: dns.TypeRRSIG,
		Class:  dns.ClassINET,
		Ttl:    rrs[0].Header().Ttl,
	}
	rrsig.KeyTag = zd.zsk.DnskeyRR.KeyTag()
	rrsig.Algorithm = zd.zsk.DnskeyRR.Algorithm
	rrsig.Inception, rrsig.Expiration = sigLifetime(time.Now().UTC(), 3600*24*30)
	rrsig.SignerName = zd.Origin

	err := rrsig.Sign(zd.zsk.CS, rrs)
	if err != nil {
		return nil, fmt.Errorf("SignRRs: error from rrsig.Sign(%s): %v", zd.Origin, err)
	}
	return rrsig, nil
}
