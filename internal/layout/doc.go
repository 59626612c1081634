// Package layout computes Canonical ABI layouts for WIT types.
//
// This package computes size, alignment and field offsets per the Component
// Model specification, which is how a record is represented in wasm32 linear
// memory.
//
// # Layout Rules
//
//   - Primitives: size equals alignment (u8=1, u16=2, u32=4, u64=8)
//   - Records and tuples: members laid out in order, each aligned to its own
//     alignment; the total is rounded up to the widest member alignment
//
// # Usage
//
//	info := layout.NewCalculator().Calculate(typedef)
//	// info.Size, info.Align, info.Fields available
//
// This package is internal to structlayout.
package layout
