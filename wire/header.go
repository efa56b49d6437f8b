package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	// HeaderSize is the fixed size of the packet header in bytes.
	HeaderSize = 8

	// MaxPayload is the maximum payload bytes per packet (1400), chosen
	// to keep each datagram under a typical path MTU and avoid IP
	// fragmentation.
	MaxPayload = 1400

	// MaxDatagramSize is the largest datagram the protocol produces or
	// accepts: header plus a full payload.
	MaxDatagramSize = HeaderSize + MaxPayload

	// MaxSubframes is the upper bound on subframes per frame that an
	// endpoint may be configured with.
	MaxSubframes = 8
)

// ErrDatagramTooShort indicates a datagram smaller than the fixed header.
var ErrDatagramTooShort = errors.New("datagram too short")

// ErrPayloadTooLarge indicates a datagram whose payload exceeds MaxPayload.
var ErrPayloadTooLarge = errors.New("payload too large")

// ErrSubframeOutOfRange indicates a subframe index or count inconsistent
// with the header itself or with the endpoint's configured subframe count.
var ErrSubframeOutOfRange = errors.New("subframe out of range")

// ErrPacketIndexOutOfRange indicates a packet index not below the declared
// packet count.
var ErrPacketIndexOutOfRange = errors.New("packet index out of range")

// Header is the decoded form of the 8-byte packet header.
type Header struct {
	FrameNumber   uint16
	SubframeCount uint8
	SubframeIndex uint8
	PacketCount   uint16
	PacketIndex   uint16
}

// AppendTo appends the encoded header to dst and returns the extended slice.
func (h Header) AppendTo(dst []byte) []byte {
	dst = binary.BigEndian.AppendUint16(dst, h.FrameNumber)
	dst = append(dst, h.SubframeCount, h.SubframeIndex)
	dst = binary.BigEndian.AppendUint16(dst, h.PacketCount)
	dst = binary.BigEndian.AppendUint16(dst, h.PacketIndex)
	return dst
}

// ParseDatagram decodes and validates the header of a received datagram.
// sessionSubframes is the receiving endpoint's configured subframe count;
// packets that disagree with it are rejected. On success the returned
// payload slice aliases data, no copy is made.
func ParseDatagram(data []byte, sessionSubframes uint8) (Header, []byte, error) {
	if len(data) < HeaderSize {
		return Header{}, nil, fmt.Errorf("%w: %d bytes, need %d", ErrDatagramTooShort, len(data), HeaderSize)
	}
	if len(data)-HeaderSize > MaxPayload {
		return Header{}, nil, fmt.Errorf("%w: %d bytes exceeds %d", ErrPayloadTooLarge, len(data)-HeaderSize, MaxPayload)
	}

	h := Header{
		FrameNumber:   binary.BigEndian.Uint16(data[0:2]),
		SubframeCount: data[2],
		SubframeIndex: data[3],
		PacketCount:   binary.BigEndian.Uint16(data[4:6]),
		PacketIndex:   binary.BigEndian.Uint16(data[6:8]),
	}

	if h.SubframeIndex >= h.SubframeCount {
		return Header{}, nil, fmt.Errorf("%w: index %d, count %d", ErrSubframeOutOfRange, h.SubframeIndex, h.SubframeCount)
	}
	if h.SubframeCount > sessionSubframes || h.SubframeIndex >= sessionSubframes {
		return Header{}, nil, fmt.Errorf("%w: header %d/%d, session configured for %d",
			ErrSubframeOutOfRange, h.SubframeIndex, h.SubframeCount, sessionSubframes)
	}
	if h.PacketIndex >= h.PacketCount {
		return Header{}, nil, fmt.Errorf("%w: index %d, count %d", ErrPacketIndexOutOfRange, h.PacketIndex, h.PacketCount)
	}

	return h, data[HeaderSize:], nil
}

// FrameNewer reports whether frame number a is newer than b under
// wraparound-aware serial comparison: a is newer when the forward distance
// from b to a, modulo 2^16, is below half the number space. This keeps
// staleness detection correct when a long-running stream wraps the 16-bit
// counter.
func FrameNewer(a, b uint16) bool {
	return a != b && a-b < 0x8000
}
