package router

import (
	"testing"

	"github.com/drep-project/meshlink/meshconn"
	"github.com/drep-project/meshlink/meshnode"
)

func newTestRegistry() *meshnode.Registry {
	return meshnode.NewRegistry("self", "localhost", []byte("k"), 0)
}

func TestSeenAlreadyDedups(t *testing.T) {
	r := New(newTestRegistry(), nil)
	if r.SeenAlready("10 abc origin") {
		t.Fatal("first sighting reported as already seen")
	}
	if !r.SeenAlready("10 abc origin") {
		t.Fatal("second sighting of identical line not deduped")
	}
	if r.SeenAlready("10 abc other") {
		t.Fatal("distinct line reported as already seen")
	}
}

func TestForwardSkipsOrigin(t *testing.T) {
	r := New(newTestRegistry(), nil)
	a := meshconn.NewFake("a", "host-a")
	b := meshconn.NewFake("b", "host-b")
	c := meshconn.NewFake("c", "host-c")
	r.AddDirectPeer("a", a)
	r.AddDirectPeer("b", b)
	r.AddDirectPeer("c", c)

	r.Forward("a", "10 abc origin")

	if len(a.Sent) != 0 {
		t.Fatal("origin peer should not receive its own flood back")
	}
	if b.Last() != "10 abc origin" || c.Last() != "10 abc origin" {
		t.Fatal("non-origin peers did not receive the flood")
	}
}

func TestForwardContinuesPastSendFailure(t *testing.T) {
	r := New(newTestRegistry(), nil)
	a := meshconn.NewFake("a", "host-a")
	a.FailWith = errTestSend
	b := meshconn.NewFake("b", "host-b")
	r.AddDirectPeer("a", a)
	r.AddDirectPeer("b", b)

	r.Forward("origin", "10 abc origin")

	if b.Last() != "10 abc origin" {
		t.Fatal("peer after a failing peer did not receive the flood")
	}
}

func TestNextHopConnectionMissing(t *testing.T) {
	registry := newTestRegistry()
	r := New(registry, nil)
	bob := &meshnode.Node{Name: "bob"}
	bob.NextHop = bob
	registry.Put(bob)

	if _, err := r.NextHopConnection(bob); err != ErrNoNextHop {
		t.Fatalf("err = %v, want ErrNoNextHop", err)
	}
}

var errTestSend = testSendError("send failed")

type testSendError string

func (e testSendError) Error() string { return string(e) }
