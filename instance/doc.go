// Package instance binds a decoded wasm.Module to a store.Store: it
// resolves imports against the Store's binding table, allocates the
// module's own memories/tables/globals/functions into the Store, applies
// active data and element segments, runs the start function if any, and
// registers the module's exports so other modules (or the embedder) can
// look them up by name (spec §4.5, §9 "Module/Store back-references").
//
// It has no binary decoder of its own; it assumes the caller already holds
// a *wasm.Module, consistent with the decoder being treated as external
// (spec §1).
package instance
