package framecast

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/framecast/assembly"
	"github.com/opd-ai/framecast/transport"
	"github.com/opd-ai/framecast/wire"
)

// Stats holds the receiver's diagnostic counters. All counters are
// cumulative over the receiver's lifetime.
type Stats struct {
	FramesDelivered    uint64
	FramesAbandoned    uint64
	PacketsStored      uint64
	PacketsMalformed   uint64
	PacketsStale       uint64
	PacketsDuplicate   uint64
	PacketsOutOfBounds uint64
}

// Receiver is the receiving endpoint. It consumes datagrams from its
// transport, reassembles subframes, and yields complete frames. A Receiver
// is not safe for concurrent use; it is designed for a single owning
// goroutine.
type Receiver struct {
	id      uuid.UUID
	conn    transport.DatagramConn
	timeout time.Duration

	slots       []assembly.Subframe
	complete    []bool
	frameNumber uint16
	collecting  bool // false until the first accepted packet establishes a frame

	scratch []byte
	stats   Stats
}

// NewReceiver creates a receiving endpoint bound to bindAddr.
func NewReceiver(bindAddr string, opts Options) (*Receiver, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	conn, err := transport.ListenUDP(bindAddr)
	if err != nil {
		return nil, err
	}
	return NewReceiverConn(conn, opts)
}

// NewReceiverConn creates a receiving endpoint over an existing transport.
// The Receiver takes ownership of conn and closes it with Close.
func NewReceiverConn(conn transport.DatagramConn, opts Options) (*Receiver, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	r := &Receiver{
		id:       uuid.New(),
		conn:     conn,
		timeout:  opts.Timeout,
		slots:    make([]assembly.Subframe, opts.SubframeCount),
		complete: make([]bool, opts.SubframeCount),
		scratch:  make([]byte, wire.MaxDatagramSize),
	}

	logrus.WithFields(logrus.Fields{
		"function":       "NewReceiverConn",
		"endpoint_id":    r.id,
		"subframe_count": opts.SubframeCount,
		"timeout":        opts.Timeout,
	}).Info("Receiver endpoint created")

	return r, nil
}

// ReceiveFrame blocks until a complete frame is assembled, the configured
// timeout expires on an underlying read, or the transport fails.
//
// Timeout expiry returns ErrTimeout and is non-fatal; the caller may call
// ReceiveFrame again and collection resumes where it left off. Transport
// failures abort the call but leave the endpoint usable.
//
// Malformed, stale, duplicate, and out-of-bounds packets are discarded
// inside the loop and never surface as errors.
//
// The returned Frame borrows the receiver's buffers and is invalidated by
// the next ReceiveFrame call.
func (r *Receiver) ReceiveFrame() (*Frame, error) {
	for {
		n, err := r.conn.ReadDatagram(r.scratch, r.timeout)
		if err != nil {
			if errors.Is(err, transport.ErrTimeout) {
				return nil, ErrTimeout
			}
			return nil, fmt.Errorf("receive frame: %w", err)
		}

		if frame, ok := r.consume(r.scratch[:n]); ok {
			return frame, nil
		}
	}
}

// consume runs one datagram through the reassembly state machine and
// reports whether it completed the current frame.
func (r *Receiver) consume(datagram []byte) (*Frame, bool) {
	header, payload, err := wire.ParseDatagram(datagram, uint8(len(r.slots)))
	if err != nil {
		r.stats.PacketsMalformed++
		logrus.WithFields(logrus.Fields{
			"function":    "consume",
			"endpoint_id": r.id,
			"length":      len(datagram),
			"error":       err.Error(),
		}).Debug("Discarding malformed datagram")
		return nil, false
	}

	switch {
	case !r.collecting:
		r.switchFrame(header.FrameNumber)
	case header.FrameNumber == r.frameNumber:
		// current frame, fall through to collection
	case wire.FrameNewer(header.FrameNumber, r.frameNumber):
		r.switchFrame(header.FrameNumber)
	default:
		r.stats.PacketsStale++
		logrus.WithFields(logrus.Fields{
			"function":     "consume",
			"endpoint_id":  r.id,
			"frame_number": header.FrameNumber,
			"current":      r.frameNumber,
		}).Debug("Discarding stale packet")
		return nil, false
	}

	slot := &r.slots[header.SubframeIndex]
	if !slot.Tracks(header.PacketCount) {
		// First packet for this subframe in the current frame, or its
		// fragmentation changed; either way previous contents are void.
		slot.Prepare(header.PacketCount)
		r.complete[header.SubframeIndex] = false
	}

	if err := slot.Store(header.PacketIndex, payload); err != nil {
		r.recordStoreRejection(header, err)
		return nil, false
	}
	r.stats.PacketsStored++

	if slot.Complete() && !r.complete[header.SubframeIndex] {
		r.complete[header.SubframeIndex] = true
		if r.allComplete() {
			r.stats.FramesDelivered++
			return r.frameView(), true
		}
	}
	return nil, false
}

// switchFrame abandons whatever is in flight and starts tracking newNumber.
// Abandonment of incomplete subframes is diagnostic, not an error; dropping
// unfinished frames the instant a newer one appears is what bounds latency.
func (r *Receiver) switchFrame(newNumber uint16) {
	if r.collecting {
		abandoned := false
		for i := range r.slots {
			if r.complete[i] {
				continue
			}
			abandoned = true
			logrus.WithFields(logrus.Fields{
				"function":     "switchFrame",
				"endpoint_id":  r.id,
				"frame_number": r.frameNumber,
				"subframe":     i,
				"collected":    r.slots[i].Collected(),
				"packets":      r.slots[i].Packets(),
				"new_frame":    newNumber,
			}).Debug("Abandoning incomplete subframe")
		}
		if abandoned {
			r.stats.FramesAbandoned++
		}
	}

	for i := range r.slots {
		r.slots[i].Reset()
		r.complete[i] = false
	}
	r.frameNumber = newNumber
	r.collecting = true
}

func (r *Receiver) recordStoreRejection(header wire.Header, err error) {
	fields := logrus.Fields{
		"function":     "consume",
		"endpoint_id":  r.id,
		"frame_number": header.FrameNumber,
		"subframe":     header.SubframeIndex,
		"packet":       header.PacketIndex,
	}
	switch {
	case errors.Is(err, assembly.ErrDuplicatePacket):
		r.stats.PacketsDuplicate++
		logrus.WithFields(fields).Debug("Discarding duplicate packet")
	case errors.Is(err, assembly.ErrPacketBeyondCapacity):
		r.stats.PacketsOutOfBounds++
		fields["error"] = err.Error()
		logrus.WithFields(fields).Warn("Discarding packet outside prepared buffer")
	default:
		fields["error"] = err.Error()
		logrus.WithFields(fields).Warn("Discarding packet")
	}
}

func (r *Receiver) allComplete() bool {
	for _, done := range r.complete {
		if !done {
			return false
		}
	}
	return true
}

func (r *Receiver) frameView() *Frame {
	subframes := make([][]byte, len(r.slots))
	for i := range r.slots {
		subframes[i] = r.slots[i].Bytes()
	}
	return &Frame{number: r.frameNumber, subframes: subframes}
}

// LocalAddr returns the address the endpoint's transport is bound to.
func (r *Receiver) LocalAddr() net.Addr {
	return r.conn.LocalAddr()
}

// Stats returns a snapshot of the receiver's diagnostic counters.
func (r *Receiver) Stats() Stats {
	return r.stats
}

// Close releases the endpoint's transport. Collection buffers are owned by
// the garbage collector and need no explicit teardown.
func (r *Receiver) Close() error {
	logrus.WithFields(logrus.Fields{
		"function":    "Close",
		"endpoint_id": r.id,
	}).Info("Receiver endpoint closed")
	return r.conn.Close()
}
