/*
 * Copyright (c) 2024 Johan Stenstam, johani@johani.org
 */
package bns

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/miekg/dns"
)

// ZoneFromString builds a zone from master-file text.
func ZoneFromString(origin, text string) (*Zone, error) {
	return zoneFromReader(origin, strings.NewReader(text), "")
}

// ZoneFromFile builds a zone from a master file on disk.
func ZoneFromFile(origin, filename string) (*Zone, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("ZoneFromFile: Error: failed to read %s: %v", filename, err)
	}
	defer f.Close()
	return zoneFromReader(origin, bufio.NewReader(f), filename)
}

func zoneFromReader(origin string, r io.Reader, filename string) (*Zone, error) {
	zd, err := NewZone(origin)
	if err != nil {
		return nil, err
	}
	if err := zd.ReadZoneData(r, filename); err != nil {
		return nil, err
	}
	return zd, nil
}

// ReadZoneData parses master-file data and inserts every record,
// aborting on the first record the zone rejects.
func (zd *Zone) ReadZoneData(r io.Reader, filename string) error {
	zp := dns.NewZoneParser(r, zd.Origin, filename)
	zp.SetIncludeAllowed(true)

	for rr, ok := zp.Next(); ok; rr, ok = zp.Next() {
		if err := zd.Insert(rr); err != nil {
			return fmt.Errorf("ReadZoneData: zone %s: %v", zd.Origin, err)
		}
	}
	if err := zp.Err(); err != nil {
		return fmt.Errorf("ReadZoneData: Error from ZoneParser(%s): %v", zd.Origin, err)
	}
	return nil
}
