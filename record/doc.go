// Package record defines the record under inspection and its field tables.
//
// The record has four fields in fixed declaration order: two 16-bit unsigned
// integers followed by two C int sized signed integers. It exists in two Go
// forms:
//
//	Record        naturally aligned, the compiler may pad before field_c
//	PackedRecord  byte-array fields with alignment 1, never padded
//
// plus a third, computed view: the Canonical ABI (wasm32) layout of the same
// record described as a WIT record.
//
// Field tables are built once from unsafe.Offsetof, unsafe.Sizeof and
// unsafe.Alignof on the concrete types, so every offset comes from the
// compiler and a reference to a field that does not exist fails to build.
package record
