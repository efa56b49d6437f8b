package assembly

import (
	"errors"
	"fmt"

	"github.com/opd-ai/framecast/wire"
)

// PaddingMargin is extra capacity reserved past the payload region so that
// downstream consumers reading in fixed-width chunks can safely over-read
// the end of an assembled subframe.
const PaddingMargin = 64

// ErrDuplicatePacket indicates a packet index that was already stored for
// the current subframe.
var ErrDuplicatePacket = errors.New("duplicate packet")

// ErrPacketBeyondCapacity indicates a store that would fall outside the
// prepared buffer region.
var ErrPacketBeyondCapacity = errors.New("packet beyond prepared capacity")

// Subframe accumulates the packets of one subframe slot. The zero value is
// an empty, untracked slot; Prepare must be called before Store.
type Subframe struct {
	buf       []byte
	received  []bool
	packets   uint16
	collected uint16
	size      int
}

// Tracks reports whether the slot is currently prepared for exactly
// packetCount packets. A reset or fresh slot tracks nothing.
func (s *Subframe) Tracks(packetCount uint16) bool {
	return s.packets != 0 && s.packets == packetCount
}

// Prepare readies the slot for a subframe fragmented into packetCount
// packets, discarding any previously collected data. The payload buffer and
// receipt bitmap grow only when the required capacity exceeds what is
// already reserved; otherwise the existing allocations are reused.
func (s *Subframe) Prepare(packetCount uint16) {
	need := int(packetCount) * wire.MaxPayload
	if need+PaddingMargin > cap(s.buf) {
		s.buf = make([]byte, need, need+PaddingMargin)
	} else {
		s.buf = s.buf[:need]
	}
	if int(packetCount) > cap(s.received) {
		s.received = make([]bool, packetCount)
	} else {
		s.received = s.received[:packetCount]
		for i := range s.received {
			s.received[i] = false
		}
	}
	s.packets = packetCount
	s.collected = 0
	s.size = 0
}

// Store copies payload into the slot at the offset implied by packetIndex
// and marks it received. Duplicate indices and stores outside the prepared
// region are rejected without modifying the slot.
func (s *Subframe) Store(packetIndex uint16, payload []byte) error {
	if int(packetIndex) >= len(s.received) {
		return fmt.Errorf("%w: index %d, prepared for %d packets", ErrPacketBeyondCapacity, packetIndex, s.packets)
	}
	offset := int(packetIndex) * wire.MaxPayload
	if offset+len(payload) > len(s.buf) {
		return fmt.Errorf("%w: offset %d + %d bytes, buffer %d", ErrPacketBeyondCapacity, offset, len(payload), len(s.buf))
	}
	if s.received[packetIndex] {
		return fmt.Errorf("%w: index %d", ErrDuplicatePacket, packetIndex)
	}

	copy(s.buf[offset:], payload)
	s.received[packetIndex] = true
	s.collected++
	s.size += len(payload)
	return nil
}

// Complete reports whether every expected packet has been stored. An
// untracked slot is never complete.
func (s *Subframe) Complete() bool {
	return s.packets != 0 && s.collected == s.packets
}

// Collected returns how many packets have been stored so far.
func (s *Subframe) Collected() uint16 { return s.collected }

// Packets returns the expected packet count the slot is prepared for.
func (s *Subframe) Packets() uint16 { return s.packets }

// Size returns the accumulated payload byte total.
func (s *Subframe) Size() int { return s.size }

// Bytes returns the assembled payload. The slice aliases the slot's
// internal buffer and is only contiguous and meaningful once Complete
// reports true; it is invalidated by the next Prepare or Reset.
func (s *Subframe) Bytes() []byte {
	return s.buf[:s.size]
}

// Reset returns the slot to the untracked state without releasing its
// allocations. It never reallocates.
func (s *Subframe) Reset() {
	s.received = s.received[:0]
	s.packets = 0
	s.collected = 0
	s.size = 0
}
