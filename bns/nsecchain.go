/*
 * Copyright (c) 2024 Johan Stenstam, johani@johani.org
 */
package bns

import (
	"fmt"
	"sort"
	"strings"

	"github.com/miekg/dns"
	"github.com/twotwotwo/sorts"
)

type canonicalNames []string

func (c canonicalNames) Len() int      { return len(c) }
func (c canonicalNames) Swap(i, j int) { c[i], c[j] = c[j], c[i] }
func (c canonicalNames) Less(i, j int) bool {
	return CanonicalCompare(c[i], c[j]) < 0
}

func quickSort(sortable sort.Interface) {
	sorts.Quicksort(sortable)
}

// GenerateNsecChain computes an NSEC record for every in-zone owner
// name, linking each to its canonical successor with the last one
// wrapping around to the first. Out-of-zone glue owners are skipped;
// they are not authoritative data. The generated records go through
// Insert, so the denial-proof name list stays consistent.
func (zd *Zone) GenerateNsecChain() error {
	var names []string
	for _, name := range zd.names.Keys() {
		if dns.IsSubDomain(zd.Origin, name) {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return fmt.Errorf("GenerateNsecChain: zone %s has no owner names", zd.Origin)
	}
	quickSort(canonicalNames(names))

	for idx, name := range names {
		nextidx := idx + 1
		if nextidx == len(names) {
			nextidx = 0
		}
		nextname := names[nextidx]

		rm, _ := zd.names.Get(name)
		var tmap = []int{int(dns.TypeNSEC)}
		for rrt := range rm.rrs {
			if rrt != dns.TypeNSEC && rrt != dns.TypeRRSIG {
				tmap = append(tmap, int(rrt))
			}
		}
		if len(rm.sigs) > 0 || zd.zsk != nil {
			tmap = append(tmap, int(dns.TypeRRSIG))
		}
		sort.Ints(tmap) // the NSEC type bitmap must be in order

		var rrts = make([]string, len(tmap))
		for i, t := range tmap {
			rrts[i] = dns.TypeToString[uint16(t)]
		}

		items := []string{name, "3600", "NSEC", nextname}
		items = append(items, rrts...)
		nsecrr, err := dns.NewRR(strings.Join(items, " "))
		if err != nil {
			return fmt.Errorf("GenerateNsecChain: zone %s: %v", zd.Origin, err)
		}
		if err := zd.Insert(nsecrr); err != nil {
			return err
		}
	}
	return nil
}

// ShowNsecChain returns the NSEC records of the zone in canonical
// owner order.
func (zd *Zone) ShowNsecChain() ([]string, error) {
	var nsecrrs []string
	for _, name := range zd.nsec.Names() {
		rm, ok := zd.names.Get(name)
		if !ok {
			continue
		}
		for _, rr := range rm.rrs[dns.TypeNSEC] {
			nsecrrs = append(nsecrrs, rr.String())
		}
	}
	return nsecrrs, nil
}

// NsecNames returns the owner names carrying an NSEC record, in
// canonical order.
func (zd *Zone) NsecNames() []string {
	return zd.nsec.Names()
}
