// Package assembly provides the receiver-side collection buffers used to
// reassemble fragmented subframes.
//
// Each Subframe owns a growable payload buffer and a parallel receipt
// bitmap. Buffers grow on demand and never shrink; between frames they are
// only logically reset, so a steady-state stream reassembles without
// allocating.
package assembly
