// Package transport provides the datagram primitives the framecast codec
// is built on.
//
// The core protocol only needs two operations: send one datagram in full,
// and receive one datagram within a timeout. DatagramConn captures exactly
// that, so the reassembly state machine can run over real UDP sockets or
// over in-memory test transports interchangeably.
//
// Example:
//
//	conn, err := transport.DialUDP("192.168.0.10:9876")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conn.Close()
//
//	err = conn.WriteDatagram(datagram)
package transport
