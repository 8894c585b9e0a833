// Package router implements the request-router contract consumed by the
// key-exchange core (spec.md §4.2): resolving a destination Node's next
// hop, and flooding a request line to every meta-peer except its origin
// with duplicate suppression.
package router

import (
	"crypto/sha256"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/drep-project/meshlink/meshnode"
)

// ErrNoNextHop is returned when a destination Node has no usable next-hop
// connection — e.g. it has no NextHop, or no direct-peer connection is
// registered under its next hop's name, which should not happen for a
// reachable node (spec.md §4.2 "undefined ... when node
// = self" covers the self case explicitly; this covers the routing-layer
// inconsistency case defensively).
var ErrNoNextHop = errors.New("router: node has no next-hop connection")

// seenWindow bounds how long a flood fingerprint is remembered. The
// surrounding protocol governs the real window (spec.md §4.2); this is a
// generous default sized the way yggdrasil's sessions.cleanup() treats its
// lastCleanup threshold.
const seenWindow = time.Minute

// Router fans requests out to direct meta-peers and tracks which ones have
// already been seen, to terminate KEY_CHANGED floods (spec.md §8, I5).
type Router struct {
	registry *meshnode.Registry
	conns    map[string]meshnode.Connection // by peer node name, direct peers only

	seen        map[[32]byte]time.Time
	lastCleanup time.Time

	log *logrus.Entry
}

// New builds a Router over registry. log may be nil.
func New(registry *meshnode.Registry, log *logrus.Entry) *Router {
	if log == nil {
		log = logrus.NewEntry(logrus.New())
	}
	return &Router{
		registry:    registry,
		conns:       make(map[string]meshnode.Connection),
		seen:        make(map[[32]byte]time.Time),
		lastCleanup: time.Now(),
		log:         log.WithField("component", "router"),
	}
}

// AddDirectPeer registers conn as the meta-connection for a direct peer
// named name. Direct peers are their own next hop (spec.md §3).
func (r *Router) AddDirectPeer(name string, conn meshnode.Connection) {
	r.conns[name] = conn
}

// RemoveDirectPeer drops a direct peer's connection, e.g. after it
// disconnects. Any Node left pointing at it through NextHop will simply
// fail to route until the out-of-scope routing layer updates NextHop
// (spec.md §5 "Cancellation").
func (r *Router) RemoveDirectPeer(name string) {
	delete(r.conns, name)
}

// Lookup resolves a name to a registered Node (spec.md §4.2).
func (r *Router) Lookup(name string) (*meshnode.Node, bool) {
	return r.registry.Lookup(name)
}

// NextHopConnection returns the meta-connection toward node. Must not be
// called with node == registry.Self() (spec.md §4.2).
func (r *Router) NextHopConnection(node *meshnode.Node) (meshnode.Connection, error) {
	if node.NextHop == nil {
		return nil, ErrNoNextHop
	}
	conn, ok := r.conns[node.NextHop.Name]
	if !ok || conn == nil {
		return nil, ErrNoNextHop
	}
	return conn, nil
}

// fingerprint hashes a raw line to a fixed-size flood-dedup key. A fixed
// digest is used instead of storing full line copies, the way a
// production flood cache would bound its own memory; spec.md leaves the
// fingerprint's concrete construction to the surrounding protocol and only
// specifies the boolean seen_already(raw_line) contract (spec.md §4.2).
func fingerprint(rawLine string) [32]byte {
	return sha256.Sum256([]byte(rawLine))
}

// SeenAlready reports whether rawLine has already been flooded, and
// records it as seen for future calls if not (spec.md §4.2
// "seen_already(raw_line)"). It also performs lazy cleanup of old
// fingerprints: at most once per seenWindow, the call that finds the
// window elapsed rebuilds the cache without the expired entries, so the
// cost of a full sweep is paid once per window rather than on every call —
// the same amortized-cleanup shape as yggdrasil's sessions.cleanup().
func (r *Router) SeenAlready(rawLine string) bool {
	now := time.Now()
	r.lazyCleanup(now)
	fp := fingerprint(rawLine)
	if _, ok := r.seen[fp]; ok {
		return true
	}
	r.seen[fp] = now
	return false
}

// Sweep runs the dedup cache's expiry check, for callers (package
// daemon) that want a periodic tick rather than relying solely on
// SeenAlready's amortized cleanup. It is subject to the same gate: the
// cache is rebuilt only if at least seenWindow has passed since the last
// cleanup.
func (r *Router) Sweep() {
	r.lazyCleanup(time.Now())
}

func (r *Router) lazyCleanup(now time.Time) {
	if now.Sub(r.lastCleanup) < seenWindow {
		return
	}
	fresh := make(map[[32]byte]time.Time, len(r.seen))
	for fp, t := range r.seen {
		if now.Sub(t) < seenWindow {
			fresh[fp] = t
		}
	}
	r.seen = fresh
	r.lastCleanup = now
}

// Forward delivers rawLine to every direct meta-peer except origin
// (identified by name), per spec.md §4.2. A send failure on one peer is
// logged and does not stop delivery to the others — per spec.md §4.4, the
// key subsystem does not retry and relies on the routing layer to react
// when a meta-connection dies.
func (r *Router) Forward(originName, rawLine string) {
	for name, conn := range r.conns {
		if name == originName {
			continue
		}
		if err := conn.Send(rawLine); err != nil {
			r.log.WithField("peer", name).WithField("err", err).Warn("flood forward failed")
		}
	}
}
