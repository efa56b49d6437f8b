package framecast

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/framecast/transport"
	"github.com/opd-ai/framecast/wire"
)

// Sender is the transmitting endpoint. It fragments frames into packets
// and writes them to its transport in subframe order, then packet order.
// A Sender is not safe for concurrent use.
type Sender struct {
	id            uuid.UUID
	conn          transport.DatagramConn
	subframeCount int
	scratch       []byte // reused outbound datagram buffer, one packet at a time
}

// NewSender creates a sending endpoint connected to remoteAddr.
// subframeCount is the fixed number of subframes per frame, agreed with the
// receiver out of band.
func NewSender(remoteAddr string, subframeCount int) (*Sender, error) {
	if err := validateSubframeCount(subframeCount); err != nil {
		return nil, err
	}
	conn, err := transport.DialUDP(remoteAddr)
	if err != nil {
		return nil, err
	}
	return NewSenderConn(conn, subframeCount)
}

// NewSenderConn creates a sending endpoint over an existing transport. The
// Sender takes ownership of conn and closes it with Close.
func NewSenderConn(conn transport.DatagramConn, subframeCount int) (*Sender, error) {
	if err := validateSubframeCount(subframeCount); err != nil {
		return nil, err
	}

	s := &Sender{
		id:            uuid.New(),
		conn:          conn,
		subframeCount: subframeCount,
		scratch:       make([]byte, 0, wire.MaxDatagramSize),
	}

	logrus.WithFields(logrus.Fields{
		"function":       "NewSenderConn",
		"endpoint_id":    s.id,
		"subframe_count": subframeCount,
	}).Info("Sender endpoint created")

	return s, nil
}

// SendFrame fragments and transmits one frame. subframes must contain
// exactly the configured number of byte spans; spans may alias caller
// memory and are not retained.
//
// A zero-size subframe emits no packets at all, so the receiver cannot
// distinguish "intentionally empty this frame" from "never sent". This
// ambiguity is part of the wire contract; a frame containing an empty
// subframe is never reported complete by the receiver and is abandoned on
// the next frame switch.
//
// The first transport failure aborts the remaining packets of the frame.
// Packets already written may reach the receiver; being best-effort, the
// protocol accepts the resulting partial frame, which the receiver will
// discard.
func (s *Sender) SendFrame(frameNumber uint16, subframes [][]byte) error {
	if len(subframes) != s.subframeCount {
		return fmt.Errorf("%w: got %d spans, endpoint configured for %d",
			ErrSubframeCountMismatch, len(subframes), s.subframeCount)
	}

	for index, data := range subframes {
		if err := s.sendSubframe(frameNumber, uint8(index), data); err != nil {
			logrus.WithFields(logrus.Fields{
				"function":     "SendFrame",
				"endpoint_id":  s.id,
				"frame_number": frameNumber,
				"subframe":     index,
				"error":        err.Error(),
			}).Error("Aborting frame after send failure")
			return err
		}
	}

	logrus.WithFields(logrus.Fields{
		"function":     "SendFrame",
		"endpoint_id":  s.id,
		"frame_number": frameNumber,
	}).Debug("Frame sent")

	return nil
}

// sendSubframe emits the packet sequence for one subframe. A zero-size
// subframe emits nothing.
func (s *Sender) sendSubframe(frameNumber uint16, index uint8, data []byte) error {
	size := len(data)
	packets := size / wire.MaxPayload
	if size%wire.MaxPayload != 0 {
		packets++
	}
	if packets > math.MaxUint16 {
		return fmt.Errorf("%w: %d bytes needs %d packets", ErrSubframeTooLarge, size, packets)
	}

	for p := 0; p < packets; p++ {
		payload := data[p*wire.MaxPayload:]
		if len(payload) > wire.MaxPayload {
			payload = payload[:wire.MaxPayload]
		}

		header := wire.Header{
			FrameNumber:   frameNumber,
			SubframeCount: uint8(s.subframeCount),
			SubframeIndex: index,
			PacketCount:   uint16(packets),
			PacketIndex:   uint16(p),
		}
		datagram := header.AppendTo(s.scratch[:0])
		datagram = append(datagram, payload...)

		if err := s.conn.WriteDatagram(datagram); err != nil {
			return fmt.Errorf("frame %d subframe %d packet %d/%d: %w",
				frameNumber, index, p, packets, err)
		}
	}
	return nil
}

// Close releases the endpoint's transport.
func (s *Sender) Close() error {
	logrus.WithFields(logrus.Fields{
		"function":    "Close",
		"endpoint_id": s.id,
	}).Info("Sender endpoint closed")
	return s.conn.Close()
}
