package framecast

import (
	"net"
	"time"

	"github.com/opd-ai/framecast/transport"
)

// mockConn is an in-memory DatagramConn. Writes are captured in sent;
// reads are served from queue, and once the queue drains reads report
// drainErr (transport.ErrTimeout unless overridden).
type mockConn struct {
	sent  [][]byte
	queue [][]byte

	drainErr      error
	writeErr      error
	writeErrAfter int // fail the write once this many datagrams were sent; -1 disables
	closed        bool
}

func newMockConn() *mockConn {
	return &mockConn{writeErrAfter: -1}
}

func (m *mockConn) WriteDatagram(p []byte) error {
	if m.writeErrAfter >= 0 && len(m.sent) >= m.writeErrAfter {
		return m.writeErr
	}
	// Callers reuse their scratch buffer, so keep a copy.
	m.sent = append(m.sent, append([]byte(nil), p...))
	return nil
}

func (m *mockConn) ReadDatagram(buf []byte, timeout time.Duration) (int, error) {
	if len(m.queue) == 0 {
		if m.drainErr != nil {
			return 0, m.drainErr
		}
		return 0, transport.ErrTimeout
	}
	datagram := m.queue[0]
	m.queue = m.queue[1:]
	return copy(buf, datagram), nil
}

func (m *mockConn) Close() error {
	m.closed = true
	return nil
}

func (m *mockConn) LocalAddr() net.Addr {
	addr, _ := net.ResolveUDPAddr("udp", "127.0.0.1:9876")
	return addr
}

func (m *mockConn) enqueue(datagrams ...[]byte) {
	m.queue = append(m.queue, datagrams...)
}
