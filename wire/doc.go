// Package wire defines the framecast wire format: the fixed 8-byte packet
// header, the protocol size limits, and the validation rules applied to
// every incoming datagram.
//
// A framecast packet is one UDP datagram carrying a header followed by up
// to MaxPayload bytes of a single subframe's data:
//
//	frame number   uint16  (big-endian)
//	subframe count uint8
//	subframe index uint8
//	packet count   uint16  (big-endian)
//	packet index   uint16  (big-endian)
//	payload        0..1400 bytes
//
// All multi-byte fields use network byte order on the wire so that
// endpoints on different architectures interoperate.
package wire
