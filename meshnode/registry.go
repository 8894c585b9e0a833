package meshnode

import "fmt"

// Registry is the mapping from node name to Node record (spec.md §2,
// component 1). It is owned by the surrounding daemon loop and mutated
// without locking, consistent with the single-threaded cooperative model
// in spec.md §5.
type Registry struct {
	selfName string
	nodes    map[string]*Node

	// myKeyUsed is true iff any remote node has ever requested the local
	// packet key since startup (spec.md §3, process-wide flag).
	myKeyUsed bool
}

// NewRegistry builds a registry whose "self" node is pre-populated with a
// valid key, per spec.md §3 ("The self Node has valid_key = true from
// startup").
func NewRegistry(selfName, selfHostname string, selfKey []byte, cipherID int) *Registry {
	r := &Registry{
		selfName: selfName,
		nodes:    make(map[string]*Node),
	}
	self := &Node{
		Name:      selfName,
		Hostname:  selfHostname,
		Key:       selfKey,
		KeyLength: len(selfKey),
		CipherID:  cipherID,
	}
	self.NextHop = self
	self.Status.ValidKey = true
	r.nodes[selfName] = self
	return r
}

// Self returns the local node record.
func (r *Registry) Self() *Node {
	return r.nodes[r.selfName]
}

// SelfName returns the name this registry treats as "self".
func (r *Registry) SelfName() string {
	return r.selfName
}

// Lookup resolves a name to a registered Node (spec.md §4.2).
func (r *Registry) Lookup(name string) (*Node, bool) {
	n, ok := r.nodes[name]
	return n, ok
}

// Put registers or replaces a Node record. The out-of-scope routing layer
// is the owner of Node lifecycle (spec.md §3 "Lifecycle"); this core only
// ever mutates fields on an existing record.
func (r *Registry) Put(n *Node) {
	r.nodes[n.Name] = n
}

// Remove drops a Node record, mirroring routing-layer-driven destruction.
func (r *Registry) Remove(name string) {
	delete(r.nodes, name)
}

// MyKeyUsed reports the process-wide flag gating KEY_CHANGED about self.
func (r *Registry) MyKeyUsed() bool {
	return r.myKeyUsed
}

// MarkMyKeyUsed sets the flag once any peer has requested our key.
func (r *Registry) MarkMyKeyUsed() {
	r.myKeyUsed = true
}

// String renders the registry's size for logging contexts.
func (r *Registry) String() string {
	return fmt.Sprintf("registry(self=%s, nodes=%d)", r.selfName, len(r.nodes))
}
