package framecast

// Frame is a zero-copy view of one fully reassembled frame. Its subframe
// spans borrow the receiver's internal buffers: the view is valid only
// until the next ReceiveFrame call on the same receiver, which may reuse
// those buffers for the next frame. Callers needing the data beyond that
// must copy it out. This is deliberate; copying every frame would defeat
// the protocol's latency goal.
type Frame struct {
	number    uint16
	subframes [][]byte
}

// Number returns the frame number.
func (f *Frame) Number() uint16 { return f.number }

// SubframeCount returns the endpoint's configured subframe count.
func (f *Frame) SubframeCount() int { return len(f.subframes) }

// Subframe returns the payload span of subframe i. A zero-length span
// means the subframe completed with no payload bytes.
func (f *Frame) Subframe(i int) []byte { return f.subframes[i] }

// Size returns the payload length of subframe i.
func (f *Frame) Size(i int) int { return len(f.subframes[i]) }
