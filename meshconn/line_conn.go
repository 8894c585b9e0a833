// Package meshconn provides concrete implementations of the
// meshnode.Connection contract. TCP dialing, TLS and the authentication
// handshake are out of scope for this core (spec.md §1); LineConn only
// knows how to write one newline-delimited request per Send call, the
// way tinc treats the meta-connection's line delimiter.
package meshconn

import (
	"bufio"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

// LineConn adapts an already-established, already-authenticated transport
// (an io.Writer, typically a net.Conn) into a meshnode.Connection.
type LineConn struct {
	name     string
	hostname string

	mu  sync.Mutex
	w   *bufio.Writer
	c   io.Closer // non-nil when the wrapped writer also implements io.Closer
	log *logrus.Entry
}

// NewLineConn wraps w for the named peer. log may be nil, in which case a
// default logrus logger is used.
func NewLineConn(name, hostname string, w io.Writer, log *logrus.Entry) *LineConn {
	if log == nil {
		log = logrus.NewEntry(logrus.New())
	}
	closer, _ := w.(io.Closer)
	return &LineConn{
		name:     name,
		hostname: hostname,
		w:        bufio.NewWriter(w),
		c:        closer,
		log:      log.WithField("peer", name),
	}
}

func (c *LineConn) Name() string     { return c.name }
func (c *LineConn) Hostname() string { return c.hostname }

// Close tears down the underlying transport, if it is closeable. Called by
// the daemon loop when this connection's peer sends a malformed request
// (spec.md §4.4/§7).
func (c *LineConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.c == nil {
		return nil
	}
	return c.c.Close()
}

// Send writes line followed by a newline and flushes immediately — per
// spec.md §5, the transport treats this as non-blocking with an outbound
// buffer; this implementation keeps that contract by never waiting on a
// remote ack.
func (c *LineConn) Send(line string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := c.w.WriteString(line); err != nil {
		c.log.WithField("err", err).Warn("meta-connection write failed")
		return err
	}
	if err := c.w.WriteByte('\n'); err != nil {
		c.log.WithField("err", err).Warn("meta-connection write failed")
		return err
	}
	if err := c.w.Flush(); err != nil {
		c.log.WithField("err", err).Warn("meta-connection flush failed")
		return err
	}
	return nil
}
