/*
 * Copyright (c) 2024 Johan Stenstam, johani@johani.org
 */
package bns

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/miekg/dns"
	"gopkg.in/yaml.v3"
)

type BindPrivateKey struct {
	Private_Key_Format string `yaml:"Private-key-format"`
	Algorithm          string `yaml:"Algorithm"`
	PrivateKey         string `yaml:"PrivateKey"`
}

// SetZSKFromString installs a zone signing key from a private key blob
// in BIND Private-key-format 1.3. The public DNSKEY is derived from the
// private material, which works for ED25519 and the ECDSA algorithms.
// For RSA keys the public half cannot be recovered that way; use SetZSK
// with an explicit DNSKEY RR instead.
func (zd *Zone) SetZSKFromString(privkey string) error {
	var bpk BindPrivateKey
	err := yaml.Unmarshal([]byte(privkey), &bpk)
	if err != nil {
		return fmt.Errorf("SetZSKFromString: error from yaml.Unmarshal(): %v", err)
	}

	algfields := strings.Fields(bpk.Algorithm)
	if len(algfields) == 0 {
		return fmt.Errorf("SetZSKFromString: private key has no Algorithm field")
	}
	algnum, err := strconv.Atoi(algfields[0])
	if err != nil {
		return fmt.Errorf("SetZSKFromString: bad algorithm %q: %v", bpk.Algorithm, err)
	}
	alg := uint8(algnum)

	dnskey := &dns.DNSKEY{
		Hdr: dns.RR_Header{
			Name:   zd.Origin,
			Rrtype: dns.TypeDNSKEY,
			Class:  dns.ClassINET,
			Ttl:    3600,
		},
		Flags:     256, // ZONE
		Protocol:  3,
		Algorithm: alg,
	}

	k, err := dnskey.NewPrivateKey(privkey)
	if err != nil {
		return fmt.Errorf("SetZSKFromString: error parsing private key: %v", err)
	}

	var cs crypto.Signer
	switch alg {
	case dns.ED25519:
		priv := k.(ed25519.PrivateKey)
		dnskey.PublicKey = base64.StdEncoding.EncodeToString(priv.Public().(ed25519.PublicKey))
		cs = priv
	case dns.ECDSAP256SHA256, dns.ECDSAP384SHA384:
		priv := k.(*ecdsa.PrivateKey)
		size := (priv.Curve.Params().BitSize + 7) / 8
		pub := make([]byte, 2*size)
		priv.PublicKey.X.FillBytes(pub[:size])
		priv.PublicKey.Y.FillBytes(pub[size:])
		dnskey.PublicKey = base64.StdEncoding.EncodeToString(pub)
		cs = priv
	default:
		return fmt.Errorf("SetZSKFromString: cannot derive a public key for algorithm %s; use SetZSK",
			dns.AlgorithmToString[alg])
	}

	zd.zsk = &ZskCache{
		K:         k,
		CS:        cs,
		Algorithm: alg,
		KeyId:     dnskey.KeyTag(),
		DnskeyRR:  *dnskey,
	}
	return zd.Insert(dnskey)
}

// SetZSK installs a zone signing key from a DNSKEY RR in presentation
// format plus the matching private key in BIND Private-key-format 1.3.
func (zd *Zone) SetZSK(dnskeystr, privkey string) error {
	rr, err := dns.NewRR(dnskeystr)
	if err != nil {
		return fmt.Errorf("SetZSK: error parsing public key '%s': %v", dnskeystr, err)
	}
	rrk, ok := rr.(*dns.DNSKEY)
	if !ok {
		return fmt.Errorf("SetZSK: %q is not a DNSKEY record", dnskeystr)
	}
	canonicalizeRR(rrk)

	k, err := rrk.NewPrivateKey(privkey)
	if err != nil {
		return fmt.Errorf("SetZSK: error parsing private key: %v", err)
	}

	var cs crypto.Signer
	switch rrk.Algorithm {
	case dns.RSASHA256, dns.RSASHA512:
		cs = k.(*rsa.PrivateKey)
	case dns.ED25519:
		cs = k.(ed25519.PrivateKey)
	case dns.ECDSAP256SHA256, dns.ECDSAP384SHA384:
		cs = k.(*ecdsa.PrivateKey)
	default:
		return fmt.Errorf("SetZSK: no support for algorithm %s yet", dns.AlgorithmToString[rrk.Algorithm])
	}

	zd.zsk = &ZskCache{
		K:         k,
		CS:        cs,
		Algorithm: rrk.Algorithm,
		KeyId:     rrk.KeyTag(),
		DnskeyRR:  *rrk,
	}
	return zd.Insert(rrk)
}

// HasZSK reports whether signing material is installed.
func (zd *Zone) HasZSK() bool {
	return zd.zsk != nil
}
