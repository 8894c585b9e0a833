package nodestore

import (
	"os"
	"testing"

	"github.com/drep-project/meshlink/meshnode"
)

func TestRecordAndHistory(t *testing.T) {
	dir, err := os.MkdirTemp("", "nodestore-test")
	if err != nil {
		t.Fatalf("MkdirTemp: %v", err)
	}
	defer os.RemoveAll(dir)

	store, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	n := &meshnode.Node{Name: "bob", CipherID: 1, DigestID: 1, Compression: 0}
	n.Status.ValidKey = true
	store.Record(n)

	n.Status.ValidKey = false
	store.Record(n)

	history, err := store.History("bob")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("len(history) = %d, want 2", len(history))
	}
}

func TestHistoryEmptyForUnknownNode(t *testing.T) {
	dir, err := os.MkdirTemp("", "nodestore-test")
	if err != nil {
		t.Fatalf("MkdirTemp: %v", err)
	}
	defer os.RemoveAll(dir)

	store, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	history, err := store.History("ghost")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("len(history) = %d, want 0", len(history))
	}
}
