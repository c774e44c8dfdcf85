// Package canon implements the Canonical ABI's scalar and string
// lift/lower rules (spec §4.3, §4.4): converting values between their flat
// core Wasm representation (i32/i64/f32/f64, or a linear-memory byte range
// for strings) and their component-model Go values.
//
// Scalars round-trip through LiftScalar/LowerScalar with a Kind tag
// selecting the target type; the flat core type a Kind decomposes to is
// fixed (FlatTypeOf) and lift rejects a claimed source flat type that
// doesn't match it. Strings travel through a gcwasm.Memory: UTF-8 lift
// and lower both copy (lift does not alias the backing bytes), and the
// UTF-16 variants
// transcode with explicit surrogate-pair handling, mirroring the
// Component Model's two supported string encodings.
package canon
