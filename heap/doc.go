// Package heap implements the GC object heap: allocation of struct and
// array objects, a tracing mark-sweep collector, and LIFO free-list slot
// reuse (spec §4.1).
//
// A Heap is a flat, append-only slice of slots. A slot either holds an
// object (a struct or array, tagged by kind) or is free and linked into
// an intrusive free list. Heap addresses are stable integer indices, not
// pointers: the collector never compacts, so a value.Word encoding a live
// address remains valid for the object's entire lifetime.
//
// Collection is triggered by the embedder, never implicitly: Heap tracks
// an alloc_since_gc counter and exposes ShouldCollect so that a caller —
// typically the interpreter, right before it would allocate — can decide
// whether to run Collect first. Collect itself is a classic four-phase
// mark-sweep: clear marks, mark roots, drain a breadth-first work queue,
// sweep unmarked slots into the free list.
package heap
