// Package errors provides the structured error taxonomy shared by every
// subsystem: Trap, LinkError, ValidationError, EncodingError, OutOfBounds,
// and HostError, each tagged with the Phase (subsystem) that raised it.
//
// Use the Builder for structured construction:
//
//	err := errors.New(errors.PhaseHeap, errors.KindTrap).
//		Detail("dereference of null reference").
//		Build()
//
// or one of the convenience constructors for common patterns:
//
//	err := errors.OutOfBounds(errors.PhaseHeap, "heap address", addr, 1, length)
//
// All errors implement the standard error interface and support errors.Is.
package errors
