// Package value defines the 64-bit operand-stack word encoding shared by the
// GC heap, the interpreter, and the subtype checker (spec §3):
//
//	null reference    word == 0
//	i31 reference     bit 63 set,  low 31 bits hold the payload
//	GC heap reference bit 63 clear, bit 32 set, low 32 bits hold addr+1
//	funcref/externref/raw integer   bit 63 clear, bit 32 clear
//
// A word is never simultaneously i31-tagged and GC-tagged, and zero always
// denotes null. This package only encodes/decodes the tag bits; it knows
// nothing about the heap itself (see package heap for that).
package value
