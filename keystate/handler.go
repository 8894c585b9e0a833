// Package keystate implements the per-node packet-key state machine:
// sending and handling KEY_CHANGED, REQ_KEY and ANS_KEY (spec.md §4.3).
// This is the heart of the module; everything else exists to support it.
package keystate

import (
	"github.com/sirupsen/logrus"

	"github.com/drep-project/meshlink/cipherset"
	"github.com/drep-project/meshlink/meshnode"
	"github.com/drep-project/meshlink/router"
	"github.com/drep-project/meshlink/wire"
)

// Queue is the data-plane packet buffer's contract (spec.md §6
// "flush_queue(node)"): drain packets that were buffered awaiting from's
// key once it becomes valid.
type Queue interface {
	Flush(node *meshnode.Node)
}

// Snapshotter optionally records a node's key status for operator
// diagnostics (package nodestore implements this); it is never consulted
// to make protocol decisions.
type Snapshotter interface {
	Record(node *meshnode.Node)
}

// Handler owns the registry and router and implements the six operations
// of spec.md §6.
type Handler struct {
	Registry *meshnode.Registry
	Router   *router.Router
	Suite    cipherset.Suite
	Queue    Queue

	Nonce NonceSource
	Snap  Snapshotter
	log   *logrus.Entry
}

// New builds a Handler. queue may be nil, in which case OnAnsKey flushes
// nothing; Snap starts nil and may be set by the caller afterwards.
func New(registry *meshnode.Registry, rtr *router.Router, suite cipherset.Suite, queue Queue, log *logrus.Entry) *Handler {
	if log == nil {
		log = logrus.NewEntry(logrus.New())
	}
	return &Handler{
		Registry: registry,
		Router:   rtr,
		Suite:    suite,
		Queue:    queue,
		Nonce:    DefaultNonceSource(),
		log:      log.WithField("component", "keystate"),
	}
}

func (h *Handler) record(n *meshnode.Node) {
	if h.Snap != nil {
		h.Snap.Record(n)
	}
}

// ---- KEY_CHANGED ------------------------------------------------------

// SendKeyChanged emits a KEY_CHANGED announcement for node on conn
// (spec.md §4.3.1). If node is the local node and no peer has ever
// requested our key, the send is a silent no-op.
func (h *Handler) SendKeyChanged(conn meshnode.Connection, node *meshnode.Node) error {
	if node.Name == h.Registry.SelfName() && !h.Registry.MyKeyUsed() {
		return nil
	}
	line := wire.BuildKeyChanged(h.Nonce.Next(), node.Name)
	if err := conn.Send(line); err != nil {
		return &TransportError{Peer: conn.Name(), Err: err}
	}
	return nil
}

// OnKeyChanged handles an inbound KEY_CHANGED line (spec.md §4.3.2).
func (h *Handler) OnKeyChanged(origin meshnode.Connection, rawLine string) error {
	msg, err := parseKeyChanged(rawLine)
	if err != nil {
		return h.malformed("KEY_CHANGED", origin, "", err)
	}
	if h.Router.SeenAlready(rawLine) {
		return nil
	}
	n, ok := h.Registry.Lookup(msg.Origin)
	if !ok {
		return h.malformed("KEY_CHANGED", origin, msg.Origin, errUnknownNode)
	}
	n.ClearKey()
	h.record(n)
	h.Router.Forward(origin.Name(), rawLine)
	return nil
}

// ---- REQ_KEY -----------------------------------------------------------

// SendReqKey emits a REQ_KEY for to's key on conn and marks to as
// WaitingForKey, per the contract spelled out in spec.md §4.3.3. (tinc's
// original C function left the bit to the data plane to set beforehand;
// this core's contract sets it here so every caller gets the NO_KEY ->
// WAITING transition for free — see DESIGN.md's Open Question resolution.)
func (h *Handler) SendReqKey(conn meshnode.Connection, from, to *meshnode.Node) error {
	to.Status.WaitingForKey = true
	line := wire.BuildReqKey(from.Name, to.Name)
	if err := conn.Send(line); err != nil {
		return &TransportError{Peer: conn.Name(), Err: err}
	}
	return nil
}

// OnReqKey handles an inbound REQ_KEY line (spec.md §4.3.4).
func (h *Handler) OnReqKey(origin meshnode.Connection, rawLine string) error {
	msg, err := parseReqKey(rawLine)
	if err != nil {
		return h.malformed("REQ_KEY", origin, "", err)
	}
	from, ok := h.Registry.Lookup(msg.From)
	if !ok {
		return h.malformed("REQ_KEY", origin, msg.From, errUnknownNode)
	}
	to, ok := h.Registry.Lookup(msg.To)
	if !ok {
		return h.malformed("REQ_KEY", origin, msg.To, errUnknownNode)
	}

	if to.Name == h.Registry.SelfName() {
		h.Registry.MarkMyKeyUsed()
		from.ResetAntiReplay()
		return h.SendAnsKey(origin, to, from)
	}

	nextConn, nhErr := h.Router.NextHopConnection(to)
	if nhErr != nil {
		return &TransportError{Peer: to.Name, Err: nhErr}
	}
	line := wire.BuildReqKey(from.Name, to.Name)
	if err := nextConn.Send(line); err != nil {
		return &TransportError{Peer: nextConn.Name(), Err: err}
	}
	return nil
}

// ---- ANS_KEY ------------------------------------------------------------

// SendAnsKey emits an ANS_KEY for from's current key, destined for to, on
// conn (spec.md §4.3.5's reply path and spec.md §6).
func (h *Handler) SendAnsKey(conn meshnode.Connection, from, to *meshnode.Node) error {
	line := wire.BuildAnsKey(from.Name, to.Name, from.Key, from.CipherID, from.DigestID, from.MACLength, from.Compression)
	if err := conn.Send(line); err != nil {
		return &TransportError{Peer: conn.Name(), Err: err}
	}
	return nil
}

// OnAnsKey handles an inbound ANS_KEY line (spec.md §4.3.5).
func (h *Handler) OnAnsKey(origin meshnode.Connection, rawLine string) error {
	msg, err := parseAnsKey(rawLine)
	if err != nil {
		return h.malformed("ANS_KEY", origin, "", err)
	}
	from, ok := h.Registry.Lookup(msg.From)
	if !ok {
		return h.malformed("ANS_KEY", origin, msg.From, errUnknownNode)
	}
	to, ok := h.Registry.Lookup(msg.To)
	if !ok {
		return h.malformed("ANS_KEY", origin, msg.To, errUnknownNode)
	}

	if to.Name != h.Registry.SelfName() {
		// Forward the verbatim bytes received; never re-serialize (spec.md §9).
		nextConn, nhErr := h.Router.NextHopConnection(to)
		if nhErr != nil {
			return &TransportError{Peer: to.Name, Err: nhErr}
		}
		if err := nextConn.Send(rawLine); err != nil {
			return &TransportError{Peer: nextConn.Name(), Err: err}
		}
		return nil
	}

	cipherSpec, err := h.Suite.CipherByID(msg.CipherID)
	if err != nil {
		return h.malformed("ANS_KEY", origin, from.Name, errUnknownCipher)
	}
	if cipherSpec.ID != cipherset.CipherNone {
		if len(msg.Key) != cipherSpec.KeyLen+cipherSpec.IVLen {
			return h.malformed("ANS_KEY", origin, from.Name, errWrongKeyLength)
		}
	}

	digestSpec, err := h.Suite.DigestByID(msg.DigestID)
	if err != nil {
		return h.malformed("ANS_KEY", origin, from.Name, errUnknownDigest)
	}
	if digestSpec.ID != cipherset.DigestNone {
		if msg.MACLength > digestSpec.OutputSize || msg.MACLength < 0 {
			return h.malformed("ANS_KEY", origin, from.Name, errBogusMACLength)
		}
	}

	var ctx *cipherset.EncryptContext
	if cipherSpec.ID != cipherset.CipherNone {
		ctx, err = h.Suite.InitEncryptContext(cipherSpec, msg.Key)
		if err != nil {
			return h.malformed("ANS_KEY", origin, from.Name, err)
		}
	}

	from.InstallKey(msg.Key, msg.CipherID, msg.DigestID, msg.MACLength, msg.Compression, ctx)
	h.record(from)

	if h.Queue != nil {
		h.Queue.Flush(from)
	}
	return nil
}

func (h *Handler) malformed(request string, origin meshnode.Connection, detail string, err error) error {
	mp := &MalformedPeer{
		Request:  request,
		Peer:     origin.Name(),
		Hostname: origin.Hostname(),
		Detail:   detail,
		Err:      err,
	}
	h.log.WithFields(logrus.Fields{
		"request":  request,
		"peer":     origin.Name(),
		"hostname": origin.Hostname(),
		"detail":   detail,
	}).WithError(err).Error("malformed peer request")
	return mp
}
