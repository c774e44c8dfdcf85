// Package wit tokenizes a narrow subset of WIT interface text — function
// signatures of the form `func name(param: type, ...) -> type` — into the
// flat parameter/result type information canon and store.ExposeHostFunction
// callers need to pick the right lift/lower path. It is not a WIT resolver:
// worlds, interfaces, records, variants, and cross-file imports are out of
// scope (spec §6 treats this purely as a collaborator feeding type info to
// the Canonical ABI layer).
package wit
