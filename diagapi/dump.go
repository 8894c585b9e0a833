// Package diagapi builds a read-only, protobuf-encoded snapshot of the
// node registry for an operator admin tool (SPEC_FULL.md "diagapi"),
// grounded on how network/network.go in the teacher repo proto.Marshals
// a payload before writing it to a peer. Nothing here feeds back into the
// key-exchange core: spec.md never defines an admin surface, and this
// stays strictly downstream of it.
package diagapi

import (
	"github.com/golang/protobuf/proto"

	"github.com/drep-project/meshlink/meshnode"
)

// Snapshot returns a RegistrySnapshot covering each node in names that
// registry currently knows about, in the order given; names the registry
// does not know are skipped.
func Snapshot(registry *meshnode.Registry, names []string) *RegistrySnapshot {
	snap := &RegistrySnapshot{SelfName: registry.SelfName()}
	for _, name := range names {
		n, ok := registry.Lookup(name)
		if !ok {
			continue
		}
		snap.Nodes = append(snap.Nodes, &NodeSnapshot{
			Name:          n.Name,
			Hostname:      n.Hostname,
			ValidKey:      n.Status.ValidKey,
			WaitingForKey: n.Status.WaitingForKey,
			CipherId:      int32(n.CipherID),
			DigestId:      int32(n.DigestID),
			MacLength:     int32(n.MACLength),
			Compression:   int32(n.Compression),
		})
	}
	return snap
}

// Marshal encodes a snapshot to the wire format an admin client decodes.
func Marshal(snap *RegistrySnapshot) ([]byte, error) {
	return proto.Marshal(snap)
}

// Unmarshal decodes bytes produced by Marshal, for the admin client side.
func Unmarshal(data []byte) (*RegistrySnapshot, error) {
	snap := &RegistrySnapshot{}
	if err := proto.Unmarshal(data, snap); err != nil {
		return nil, err
	}
	return snap, nil
}
