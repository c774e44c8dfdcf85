// Package interp implements the minimal interpreter needed to execute the
// GC instructions (struct.new/struct.new_default/struct.get/struct.set/
// array.new/array.get/ref.test/ref.cast/ref.i31/i31.get_s) plus the
// narrow control and local-variable core that drives them: local.get,
// local.set, local.tee, i32.const, ref.null, and return/end (spec §1 explicitly places general
// arithmetic opcode dispatch out of scope).
//
// A Frame owns one call's operand stack and locals; Interpreter dispatches
// one Frame at a time per Store, consistent with the single-threaded
// cooperative model (spec §5). Interpreter implements store.VM so host
// functions can reach the heap, memories, tables, and globals of the Store
// that invoked them; they receive arguments and return results as word
// slices and have no access to the operand stack.
package interp
