/*
 * Copyright (c) 2024 Johan Stenstam, johani@johani.org
 */
package bns

import "errors"

var (
	// ErrNotFqdn is returned when a name that must be fully qualified is not.
	ErrNotFqdn = errors.New("name is not fully qualified")

	// ErrOutOfZone is returned when a non-address record is inserted with an
	// owner outside the zone of authority.
	ErrOutOfZone = errors.New("owner name is out of zone")

	// ErrNotAnNxDomain is returned by NameList.Lower when the argument is
	// itself present in the list. The caller should have taken the no-data
	// path instead of asking for an NXDOMAIN predecessor.
	ErrNotAnNxDomain = errors.New("name exists in the nsec chain")

	// ErrNoSigningKey is returned when signing is requested but the zone
	// holds no ZSK.
	ErrNoSigningKey = errors.New("zone has no signing key")
)
