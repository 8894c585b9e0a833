// Package nodestore keeps an optional, append-only on-disk record of
// per-node key status changes, for operator diagnostics after a daemon
// restart (SPEC_FULL.md "nodestore"). It is never consulted by the
// protocol itself — spec.md §6 ("Persisted state: none") still holds for
// the key-exchange core; this is purely a debugging aid layered on top,
// grounded on how database/db.go in the teacher repo opens and writes to
// a goleveldb instance.
package nodestore

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/drep-project/meshlink/meshnode"
)

// Record is one snapshot of a node's key status, keyed by name+timestamp.
type Record struct {
	Name        string    `json:"name"`
	Timestamp   time.Time `json:"timestamp"`
	ValidKey    bool      `json:"valid_key"`
	CipherID    int       `json:"cipher_id"`
	DigestID    int       `json:"digest_id"`
	Compression int       `json:"compression"`
}

// Store is a goleveldb-backed append-only log of Records.
type Store struct {
	db *leveldb.DB
}

// Open creates or reopens a snapshot store at path.
func Open(path string) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record writes a snapshot of node's current key status. Write failures
// are deliberately not propagated to protocol callers — diagnostics must
// never be able to turn a successful key exchange into a failure.
func (s *Store) Record(node *meshnode.Node) {
	rec := Record{
		Name:        node.Name,
		Timestamp:   time.Now(),
		ValidKey:    node.Status.ValidKey,
		CipherID:    node.CipherID,
		DigestID:    node.DigestID,
		Compression: node.Compression,
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		return
	}
	key := []byte(fmt.Sprintf("%s/%d", rec.Name, rec.Timestamp.UnixNano()))
	_ = s.db.Put(key, payload, nil)
}

// History returns every recorded snapshot for name, oldest first.
func (s *Store) History(name string) ([]Record, error) {
	iter := s.db.NewIterator(nil, nil)
	defer iter.Release()
	var out []Record
	prefix := name + "/"
	for iter.Next() {
		k := string(iter.Key())
		if len(k) < len(prefix) || k[:len(prefix)] != prefix {
			continue
		}
		var rec Record
		if err := json.Unmarshal(iter.Value(), &rec); err != nil {
			continue
		}
		out = append(out, rec)
	}
	return out, iter.Error()
}
