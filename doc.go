// Package structlayout makes field alignment and padding visible.
//
// It reports the byte offset and size of each field of one fixed record, in
// declaration order, followed by the record's total size as the compiler lays
// it out. The record exists in a packed and a naturally aligned form, and is
// also described as a WIT record to show its Canonical ABI placement.
//
// # Architecture Overview
//
//	structlayout/
//	├── record/          Record types and their compiler-derived field tables
//	├── report/          Plain and trace reporters, accumulator policies
//	├── probe/           Stores records into wazero linear memory
//	├── errors/          Structured error types
//	├── internal/abi     Alignment arithmetic
//	├── internal/layout  Canonical ABI layout of WIT types
//	└── cmd/
//	    ├── offset        packed record, plain report
//	    ├── offset-trace  natural record, trace report
//	    └── inspect       all layouts, table or TUI, optional probe
//
// # Quick Start
//
//	acc, err := report.Run(report.NewPlain(os.Stdout), record.Packed())
//
// prints
//
//	OFFSET OF field_a: 0
//	SIZE AFTER field_a: 2 (+2)
//	...
//	FINAL SIZE OF PackedRecord: 12
package structlayout
