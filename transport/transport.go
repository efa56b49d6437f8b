package transport

import (
	"errors"
	"net"
	"time"
)

// ErrTimeout indicates that no datagram arrived within the configured
// receive window. It is distinct from transport I/O failures so callers can
// tell "nothing arrived" from "something broke".
var ErrTimeout = errors.New("receive timed out")

// DatagramConn is the transport seam consumed by the protocol core.
// Implementations carry whole datagrams: a write transmits the entire
// buffer or fails, and a read returns exactly one datagram.
type DatagramConn interface {
	// WriteDatagram transmits one datagram in full.
	WriteDatagram(p []byte) error

	// ReadDatagram blocks until one datagram is received into buf,
	// returning its length. A timeout of zero blocks indefinitely;
	// otherwise expiry is reported as ErrTimeout.
	ReadDatagram(buf []byte, timeout time.Duration) (int, error)

	// Close releases the underlying socket.
	Close() error

	// LocalAddr returns the local address the transport is bound to.
	LocalAddr() net.Addr
}
