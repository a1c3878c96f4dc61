/*
 * Copyright (c) 2024 Johan Stenstam, johani@johani.org
 */
package bns

import (
	"strings"

	"github.com/miekg/dns"
	cmap "github.com/orcaman/concurrent-map/v2"
)

// Zones is the process-wide registry of zones being served.
var Zones = cmap.New[*Zone]()

type GlobalStuff struct {
	AppName    string
	AppVersion string
	Verbose    bool
	Debug      bool
}

var Globals = GlobalStuff{
	AppName:    "bns",
	AppVersion: "unknown",
}

// FindZone returns the closest enclosing zone in the registry that has
// qname at or below it, or nil if no registered zone encloses qname.
func FindZone(qname string) *Zone {
	qname = dns.CanonicalName(qname)
	labels := dns.SplitDomainName(qname)
	for i := 0; i <= len(labels); i++ {
		tzone := dns.Fqdn(strings.Join(labels[i:], "."))
		if zd, ok := Zones.Get(tzone); ok {
			return zd
		}
	}
	return nil
}
