// Package store implements the runtime Store: a flat, process-wide
// registry of functions (Wasm or host), memories, tables, globals,
// element/data segments, and the import/export bindings that let one
// module's exports satisfy another's imports (spec §4.5).
//
// Every entity a Store holds is addressed by a stable integer handle
// (its index in the owning slice); Store never reshuffles or compacts
// these slices, so a handle captured once remains valid for the Store's
// lifetime. Instance (package instance) is the only thing that adds
// entities to a Store in practice — a Store by itself is just the
// registry and the lookup/dispatch machinery over it.
package store
