package framecast

import (
	"errors"
	"fmt"
	"time"

	"github.com/opd-ai/framecast/transport"
	"github.com/opd-ai/framecast/wire"
)

// ErrTimeout is returned by ReceiveFrame when no datagram arrives within
// the receiver's configured window. It is the transport timeout sentinel,
// re-exported so callers only need this package for classification.
var ErrTimeout = transport.ErrTimeout

// ErrSubframeCountOutOfRange indicates an endpoint configuration outside
// 1..wire.MaxSubframes.
var ErrSubframeCountOutOfRange = errors.New("subframe count out of range")

// ErrSubframeCountMismatch indicates a SendFrame call whose number of
// subframe spans differs from the sender's configured count.
var ErrSubframeCountMismatch = errors.New("subframe count mismatch")

// ErrSubframeTooLarge indicates a subframe that cannot be described by the
// 16-bit packet count field.
var ErrSubframeTooLarge = errors.New("subframe too large")

// Options configures a receiving endpoint.
type Options struct {
	// SubframeCount is the fixed number of subframes per frame for this
	// endpoint, agreed with the sender out of band. Must be within
	// 1..wire.MaxSubframes.
	SubframeCount int

	// Timeout bounds each ReceiveFrame call's underlying socket reads.
	// Zero blocks indefinitely.
	Timeout time.Duration
}

func (o Options) validate() error {
	if err := validateSubframeCount(o.SubframeCount); err != nil {
		return err
	}
	if o.Timeout < 0 {
		return fmt.Errorf("negative timeout %v", o.Timeout)
	}
	return nil
}

func validateSubframeCount(count int) error {
	if count < 1 || count > wire.MaxSubframes {
		return fmt.Errorf("%w: %d, want 1..%d", ErrSubframeCountOutOfRange, count, wire.MaxSubframes)
	}
	return nil
}
