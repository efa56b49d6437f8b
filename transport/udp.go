package transport

import (
	"fmt"
	"net"
	"time"

	"github.com/sirupsen/logrus"
)

// UDPConn implements DatagramConn over a UDP socket. It satisfies the
// DatagramConn interface for both sending endpoints (dialed, connected to
// one peer) and receiving endpoints (bound, reading from any source).
type UDPConn struct {
	conn *net.UDPConn
}

// DialUDP creates a sending-side transport connected to remoteAddr
// (for example "192.168.0.10:9876").
func DialUDP(remoteAddr string) (*UDPConn, error) {
	addr, err := net.ResolveUDPAddr("udp", remoteAddr)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", remoteAddr, err)
	}

	conn, err := net.DialUDP("udp", nil, addr)
	if err != nil {
		return nil, fmt.Errorf("dial udp %q: %w", remoteAddr, err)
	}

	logrus.WithFields(logrus.Fields{
		"function":    "DialUDP",
		"remote_addr": addr.String(),
		"local_addr":  conn.LocalAddr().String(),
	}).Info("UDP transport connected")

	return &UDPConn{conn: conn}, nil
}

// ListenUDP creates a receiving-side transport bound to bindAddr. An empty
// host (":9876") binds to all interfaces; port 0 picks an ephemeral port.
func ListenUDP(bindAddr string) (*UDPConn, error) {
	addr, err := net.ResolveUDPAddr("udp", bindAddr)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", bindAddr, err)
	}

	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen udp %q: %w", bindAddr, err)
	}

	logrus.WithFields(logrus.Fields{
		"function":   "ListenUDP",
		"local_addr": conn.LocalAddr().String(),
	}).Info("UDP transport bound")

	return &UDPConn{conn: conn}, nil
}

// WriteDatagram transmits p as a single datagram. UDP writes are
// all-or-nothing, so a short write is reported as an error rather than
// retried; retrying a partial datagram would corrupt the packet stream.
func (c *UDPConn) WriteDatagram(p []byte) error {
	n, err := c.conn.Write(p)
	if err != nil {
		return fmt.Errorf("write datagram: %w", err)
	}
	if n != len(p) {
		return fmt.Errorf("write datagram: short write %d of %d bytes", n, len(p))
	}
	return nil
}

// ReadDatagram receives one datagram into buf. Deadline expiry is mapped
// to ErrTimeout; all other failures are returned as transport errors.
func (c *UDPConn) ReadDatagram(buf []byte, timeout time.Duration) (int, error) {
	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}
	if err := c.conn.SetReadDeadline(deadline); err != nil {
		return 0, fmt.Errorf("set read deadline: %w", err)
	}

	n, _, err := c.conn.ReadFromUDP(buf)
	if err != nil {
		if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
			return 0, ErrTimeout
		}
		return 0, fmt.Errorf("read datagram: %w", err)
	}
	return n, nil
}

// Close releases the socket.
func (c *UDPConn) Close() error {
	return c.conn.Close()
}

// LocalAddr returns the local address of the socket.
func (c *UDPConn) LocalAddr() net.Addr {
	return c.conn.LocalAddr()
}
