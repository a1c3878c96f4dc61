/*
 * Copyright (c) 2024 Johan Stenstam, johani@johani.org
 */
package bns

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// KeyDB is the persistent store for zone signing keys. Zone data itself
// is never persisted; only key material lives here.
type KeyDB struct {
	DB *sql.DB
	mu sync.Mutex
}

const createZskStoreSql = `
CREATE TABLE IF NOT EXISTS ZskStore (
id		  INTEGER PRIMARY KEY,
zonename	  TEXT,
state		  TEXT,
keyrr		  TEXT,
privatekey	  TEXT,
comment		  TEXT,
UNIQUE (zonename, keyrr)
)`

func NewKeyDB(dbfile string) (*KeyDB, error) {
	if dbfile == "" {
		return nil, fmt.Errorf("NewKeyDB: keystore file not specified")
	}
	db, err := sql.Open("sqlite3", dbfile)
	if err != nil {
		return nil, fmt.Errorf("NewKeyDB: error from sql.Open(%s): %v", dbfile, err)
	}
	if _, err := db.Exec(createZskStoreSql); err != nil {
		return nil, fmt.Errorf("NewKeyDB: error creating ZskStore: %v", err)
	}
	return &KeyDB{DB: db}, nil
}

func (kdb *KeyDB) Close() error {
	return kdb.DB.Close()
}

// AddZsk stores a key pair for a zone under the given state. Only a key
// whose state is "active" is returned by GetActiveZsk.
func (kdb *KeyDB) AddZsk(zonename, keyrr, privatekey, state string) error {
	const addZskSql = `
INSERT OR REPLACE INTO ZskStore (zonename, state, keyrr, privatekey) VALUES (?, ?, ?, ?)`

	kdb.mu.Lock()
	defer kdb.mu.Unlock()

	_, err := kdb.DB.Exec(addZskSql, zonename, state, keyrr, privatekey)
	if err != nil {
		return fmt.Errorf("AddZsk: error from kdb.Exec(): %v", err)
	}
	return nil
}

// GetActiveZsk returns the active key pair for a zone as the DNSKEY RR
// string plus the private key blob.
func (kdb *KeyDB) GetActiveZsk(zonename string) (string, string, error) {
	const fetchZskSql = `
SELECT keyrr, privatekey FROM ZskStore WHERE zonename=? AND state='active'`

	kdb.mu.Lock()
	defer kdb.mu.Unlock()

	row := kdb.DB.QueryRow(fetchZskSql, zonename)

	var keyrr, privatekey string
	err := row.Scan(&keyrr, &privatekey)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", "", fmt.Errorf("GetActiveZsk: no active key found for zone %s", zonename)
		}
		return "", "", fmt.Errorf("GetActiveZsk: error from row.Scan(): %v", err)
	}
	return keyrr, privatekey, nil
}

// SetZskState changes the lifecycle state of all keys for a zone.
func (kdb *KeyDB) SetZskState(zonename, state string) error {
	const setStateSql = `UPDATE ZskStore SET state=? WHERE zonename=?`

	kdb.mu.Lock()
	defer kdb.mu.Unlock()

	res, err := kdb.DB.Exec(setStateSql, state, zonename)
	if err != nil {
		return fmt.Errorf("SetZskState: error from kdb.Exec(): %v", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		log.Printf("SetZskState: no keys stored for zone %s", zonename)
	}
	return nil
}

// LoadZSK fetches the zone's active signing key from the keystore and
// installs it.
func (zd *Zone) LoadZSK(kdb *KeyDB) error {
	keyrr, privatekey, err := kdb.GetActiveZsk(zd.Origin)
	if err != nil {
		return err
	}
	return zd.SetZSK(keyrr, privatekey)
}
