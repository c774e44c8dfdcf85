// Package subtype implements heap-type matching for ref.test/ref.cast
// (spec §4.2): abstract sentinel types (any, eq, i31, struct, array, func,
// none, extern and their "no-" bottoms) and concrete module type indices,
// with single-inheritance subtyping over a module's type table.
//
// Matching a runtime value against a target type is split in two: the
// caller classifies the value (null, i31, funcref, or a GC object of a
// given kind and concrete type — something only the heap and the static
// type of the operand can determine), and Matches applies the spec's
// match table to that classification. Concrete-to-concrete matching walks
// the first-supertype-only chain via a TypeTable the caller supplies,
// since type tables are owned per module (types across instances are
// nominally distinct even when structurally identical).
package subtype
