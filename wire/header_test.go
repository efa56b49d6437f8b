package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		header Header
	}{
		{
			name:   "Zero values except counts",
			header: Header{FrameNumber: 0, SubframeCount: 1, SubframeIndex: 0, PacketCount: 1, PacketIndex: 0},
		},
		{
			name:   "Mid-stream packet",
			header: Header{FrameNumber: 7, SubframeCount: 3, SubframeIndex: 1, PacketCount: 3, PacketIndex: 2},
		},
		{
			name:   "Maximum field values",
			header: Header{FrameNumber: 65535, SubframeCount: 8, SubframeIndex: 7, PacketCount: 65535, PacketIndex: 65534},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := []byte{0xde, 0xad, 0xbe, 0xef}
			datagram := tt.header.AppendTo(nil)
			require.Len(t, datagram, HeaderSize)
			datagram = append(datagram, payload...)

			decoded, got, err := ParseDatagram(datagram, MaxSubframes)
			require.NoError(t, err)
			assert.Equal(t, tt.header, decoded)
			assert.Equal(t, payload, got)
		})
	}
}

func TestHeaderEncodingIsBigEndian(t *testing.T) {
	h := Header{FrameNumber: 0x0102, SubframeCount: 3, SubframeIndex: 2, PacketCount: 0x0304, PacketIndex: 0x0203}
	encoded := h.AppendTo(nil)
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x02, 0x03, 0x04, 0x02, 0x03}, encoded)
}

func TestParseDatagramRejections(t *testing.T) {
	valid := Header{FrameNumber: 1, SubframeCount: 2, SubframeIndex: 1, PacketCount: 4, PacketIndex: 3}

	tests := []struct {
		name             string
		datagram         []byte
		sessionSubframes uint8
		wantErr          error
	}{
		{
			name:             "Truncated header",
			datagram:         []byte{1, 2, 3},
			sessionSubframes: 3,
			wantErr:          ErrDatagramTooShort,
		},
		{
			name:             "Empty datagram",
			datagram:         nil,
			sessionSubframes: 3,
			wantErr:          ErrDatagramTooShort,
		},
		{
			name:             "Subframe index not below count",
			datagram:         Header{SubframeCount: 2, SubframeIndex: 2, PacketCount: 1}.AppendTo(nil),
			sessionSubframes: 3,
			wantErr:          ErrSubframeOutOfRange,
		},
		{
			name:             "Subframe count above session configuration",
			datagram:         Header{SubframeCount: 4, SubframeIndex: 0, PacketCount: 1}.AppendTo(nil),
			sessionSubframes: 3,
			wantErr:          ErrSubframeOutOfRange,
		},
		{
			name:             "Subframe index above session configuration",
			datagram:         Header{SubframeCount: 3, SubframeIndex: 2, PacketCount: 1}.AppendTo(nil),
			sessionSubframes: 2,
			wantErr:          ErrSubframeOutOfRange,
		},
		{
			name:             "Packet index not below packet count",
			datagram:         Header{SubframeCount: 2, SubframeIndex: 0, PacketCount: 3, PacketIndex: 3}.AppendTo(nil),
			sessionSubframes: 3,
			wantErr:          ErrPacketIndexOutOfRange,
		},
		{
			name:             "Zero packet count rejects any index",
			datagram:         Header{SubframeCount: 1, SubframeIndex: 0, PacketCount: 0, PacketIndex: 0}.AppendTo(nil),
			sessionSubframes: 1,
			wantErr:          ErrPacketIndexOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseDatagram(tt.datagram, tt.sessionSubframes)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("Oversized payload", func(t *testing.T) {
		datagram := valid.AppendTo(nil)
		datagram = append(datagram, make([]byte, MaxPayload+1)...)
		_, _, err := ParseDatagram(datagram, 3)
		assert.ErrorIs(t, err, ErrPayloadTooLarge)
	})

	t.Run("Full payload accepted", func(t *testing.T) {
		datagram := valid.AppendTo(nil)
		datagram = append(datagram, make([]byte, MaxPayload)...)
		h, payload, err := ParseDatagram(datagram, 3)
		require.NoError(t, err)
		assert.Equal(t, valid, h)
		assert.Len(t, payload, MaxPayload)
	})
}

func TestFrameNewer(t *testing.T) {
	tests := []struct {
		name string
		a, b uint16
		want bool
	}{
		{name: "Successor is newer", a: 1, b: 0, want: true},
		{name: "Predecessor is not newer", a: 0, b: 1, want: false},
		{name: "Equal is not newer", a: 42, b: 42, want: false},
		{name: "Large forward jump within half range", a: 30000, b: 1, want: true},
		{name: "Wraparound successor is newer", a: 0, b: 65535, want: true},
		{name: "Wraparound predecessor is not newer", a: 65535, b: 0, want: false},
		{name: "Forward across wrap boundary", a: 5, b: 65530, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FrameNewer(tt.a, tt.b))
		})
	}
}
