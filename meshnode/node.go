// Package meshnode holds the registry of known mesh participants and the
// per-node packet-key state that the key-exchange core reads and mutates.
package meshnode

// KeyStatus mirrors a Node's status bits from the key-state machine.
type KeyStatus struct {
	ValidKey      bool
	WaitingForKey bool
}

// Node represents one participant in the mesh, direct peer or not.
//
// All mutation of a Node happens on the single daemon loop (see package
// daemon); Node carries no mutex of its own.
type Node struct {
	Name     string
	Hostname string

	// NextHop is the neighbor toward which traffic for this node is
	// forwarded. For a direct peer, NextHop is the Node itself.
	NextHop *Node

	// Connection is non-nil only when Node is a direct meta-peer.
	Connection Connection

	Key         []byte
	KeyLength   int
	CipherID    int
	DigestID    int
	MACLength   int
	Compression int

	Status KeyStatus

	ReceivedSeqno uint32
	SentSeqno     uint32
	Late          [32]bool

	// PacketCtx is opaque state installed by the crypto layer once Status.ValidKey
	// is set; the data plane reads it after observing ValidKey true.
	PacketCtx interface{}
}

// Connection is the minimal contract this core needs from a meta-connection.
// Real TCP/TLS/authentication plumbing is out of scope (see spec.md §1).
// Close tears down the meta-connection; the caller invokes it on a
// MalformedPeer condition (spec.md §4.4/§7 "caller tears down the
// meta-connection").
type Connection interface {
	Send(line string) error
	Name() string
	Hostname() string
	Close() error
}

// IsSelf reports whether n is the registry's local node.
func (n *Node) IsSelf(selfName string) bool {
	return n != nil && n.Name == selfName
}

// ResetAntiReplay clears received_seqno and the late bitmap, as required
// whenever the upstream key is replaced (spec.md §4.3.4 item 3).
func (n *Node) ResetAntiReplay() {
	n.ReceivedSeqno = 0
	for i := range n.Late {
		n.Late[i] = false
	}
}

// ClearKey invalidates a node's key bits without touching the key bytes
// themselves (spec.md §4.3.2 item 4: KEY_CHANGED only flips the status bits;
// the stale key material is overwritten later by the next ANS_KEY).
func (n *Node) ClearKey() {
	n.Status.ValidKey = false
	n.Status.WaitingForKey = false
}

// InstallKey sets the key material/parameters and marks the node valid for
// use by the data plane. Callers must install Key/PacketCtx before flipping
// ValidKey (spec.md §5 "writers must install key, packet_ctx, and set
// valid_key in that order").
func (n *Node) InstallKey(key []byte, cipherID, digestID, macLength, compression int, ctx interface{}) {
	n.Key = key
	n.KeyLength = len(key)
	n.CipherID = cipherID
	n.DigestID = digestID
	n.MACLength = macLength
	n.Compression = compression
	n.PacketCtx = ctx
	n.Status.ValidKey = true
	n.Status.WaitingForKey = false
	n.SentSeqno = 0
}
