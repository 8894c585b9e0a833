// Package daemon wires meshnode, router, keystate, cipherset and the
// optional nodestore snapshot log into a single-threaded event loop, the
// way the teacher's TraceService.Process goroutine drains its subscribed
// channels with one select loop and a readyToQuit handshake (spec.md §5:
// "a single-threaded, cooperative concurrency model ... all state
// mutation happens on the processing of one event at a time").
package daemon

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/drep-project/meshlink/cipherset"
	"github.com/drep-project/meshlink/keystate"
	"github.com/drep-project/meshlink/meshnode"
	"github.com/drep-project/meshlink/nodestore"
	"github.com/drep-project/meshlink/router"
	"github.com/drep-project/meshlink/wire"
)

// InboundLine is one request line read off a meta-connection, tagged with
// the connection it arrived on. The transport that fills this channel
// (framing, TLS, authentication) is out of scope (spec.md §1).
type InboundLine struct {
	Origin meshnode.Connection
	Raw    string
}

// ReqKeyTrigger is emitted by the data plane when it needs a packet key
// for to and does not yet have one (spec.md §6 "on demand, when the data
// plane needs a packet key for node and does not have one").
type ReqKeyTrigger struct {
	Conn     meshnode.Connection
	From, To *meshnode.Node
}

// Service is the daemon's top-level lifecycle object, matching the
// Init/Start/Stop triad the teacher's services implement.
type Service struct {
	cfg      *Config
	registry *meshnode.Registry
	router   *router.Router
	handler  *keystate.Handler
	store    *nodestore.Store
	log      *logrus.Entry

	Inbound chan InboundLine
	ReqKeys chan ReqKeyTrigger

	quit     chan struct{}
	quitDone chan struct{}
}

// New constructs a Service around an already-built registry/router/queue.
// queue may be nil if the surrounding process has no data-plane buffer to
// flush on ANS_KEY.
func New(cfg *Config, registry *meshnode.Registry, rtr *router.Router, queue keystate.Queue, log *logrus.Entry) *Service {
	if log == nil {
		log = logrus.NewEntry(logrus.New())
	}
	log = log.WithField("component", "daemon")

	s := &Service{
		cfg:      cfg,
		registry: registry,
		router:   rtr,
		log:      log,
		Inbound:  make(chan InboundLine, 256),
		ReqKeys:  make(chan ReqKeyTrigger, 256),
		quit:     make(chan struct{}),
		quitDone: make(chan struct{}),
	}
	s.handler = keystate.New(registry, rtr, cipherset.Default{}, queue, log)
	return s
}

// Init opens the optional snapshot store. Safe to call with an empty
// SnapshotDir, which disables diagnostics entirely (SPEC_FULL.md
// "nodestore" is a debugging aid, never load-bearing).
func (s *Service) Init() error {
	if s.cfg.SnapshotDir == "" {
		return nil
	}
	store, err := nodestore.Open(s.cfg.SnapshotDir)
	if err != nil {
		return err
	}
	s.store = store
	s.handler.Snap = store
	return nil
}

// Start launches the event loop goroutine and returns immediately.
func (s *Service) Start() error {
	go s.run()
	return nil
}

// Stop signals the event loop to drain and exit, then closes the
// snapshot store, mirroring the teacher's two-message readyToQuit
// handshake (close quit to request, block until the loop acks by closing
// quitDone).
func (s *Service) Stop() error {
	close(s.quit)
	<-s.quitDone
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}

// run is the single goroutine that ever mutates registry/router/node
// state (spec.md §5). Every event — an inbound wire line, a data-plane
// REQ_KEY trigger, or a sweep tick — is handled to completion before the
// next is read off its channel.
func (s *Service) run() {
	sweep := time.NewTicker(s.cfg.SweepEvery)
	defer sweep.Stop()
	defer close(s.quitDone)

	for {
		select {
		case line := <-s.Inbound:
			s.handleInbound(line)
		case trig := <-s.ReqKeys:
			if err := s.handler.SendReqKey(trig.Conn, trig.From, trig.To); err != nil {
				s.log.WithError(err).Warn("send req_key failed")
			}
		case <-sweep.C:
			s.router.Sweep()
		case <-s.quit:
			return
		}
	}
}

func (s *Service) handleInbound(line InboundLine) {
	opField, _, err := wire.SplitLine(line.Raw)
	if err != nil {
		s.log.WithError(err).WithField("peer", line.Origin.Name()).Warn("unparsable meta-connection line")
		s.closeConnection(line.Origin)
		return
	}
	op, err := wire.ParseOpcode(opField)
	if err != nil {
		s.log.WithError(err).WithField("peer", line.Origin.Name()).Warn("unparsable meta-connection opcode")
		s.closeConnection(line.Origin)
		return
	}

	var dispatchErr error
	switch op {
	case wire.KeyChanged:
		dispatchErr = s.handler.OnKeyChanged(line.Origin, line.Raw)
	case wire.ReqKey:
		dispatchErr = s.handler.OnReqKey(line.Origin, line.Raw)
	case wire.AnsKey:
		dispatchErr = s.handler.OnAnsKey(line.Origin, line.Raw)
	default:
		s.log.WithField("peer", line.Origin.Name()).WithField("opcode", op).Warn("unknown meta-connection opcode")
		s.closeConnection(line.Origin)
		return
	}
	if dispatchErr == nil {
		return
	}

	s.log.WithError(dispatchErr).WithField("peer", line.Origin.Name()).Warn("key-state request failed")
	// A MalformedPeer condition is fatal for the connection it arrived on
	// (spec.md §4.4/§7); a TransportError is propagated but non-fatal —
	// the key subsystem does not retry, and the connection may still be
	// good for other traffic.
	if _, malformed := dispatchErr.(*keystate.MalformedPeer); malformed {
		s.closeConnection(line.Origin)
	}
}

// closeConnection tears down a peer's meta-connection after a protocol
// violation, per spec.md §8 scenario 6 ("A's connection to B is closed
// by the caller").
func (s *Service) closeConnection(conn meshnode.Connection) {
	if err := conn.Close(); err != nil {
		s.log.WithError(err).WithField("peer", conn.Name()).Warn("error closing meta-connection")
	}
}
