// Package framecast implements a minimal-latency, best-effort framing
// protocol over UDP for large application payloads such as video pictures.
//
// A frame is an ordered set of independently-sized subframes sharing one
// frame number. The sender fragments each subframe into MTU-sized packets;
// the receiver reassembles them and hands back a zero-copy view of the
// frame once every subframe is complete. There are no acknowledgments and
// no retransmission: the moment a packet from a newer frame arrives, any
// incomplete frame is abandoned, bounding latency at the cost of
// completeness.
//
// Sending side:
//
//	sender, err := framecast.NewSender("192.168.0.10:9876", 3)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer sender.Close()
//
//	err = sender.SendFrame(frameNumber, [][]byte{video, audio, meta})
//
// Receiving side:
//
//	receiver, err := framecast.NewReceiver(":9876", framecast.Options{
//	    SubframeCount: 3,
//	    Timeout:       500 * time.Millisecond,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer receiver.Close()
//
//	frame, err := receiver.ReceiveFrame()
//	if errors.Is(err, framecast.ErrTimeout) {
//	    // nothing arrived, retry
//	}
//
// The view returned by ReceiveFrame borrows the receiver's internal
// buffers and is invalidated by the next ReceiveFrame call on the same
// receiver; callers that need the data afterwards must copy it out first.
package framecast
