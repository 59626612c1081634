// Package report prints field offsets and record sizes.
//
// A Reporter receives each field of a layout in declaration order, together
// with the running accumulator, and returns the next accumulator value. After
// the last field it reports the compiler's size for the whole record, which is
// a cross-check against the accumulator: the two differ when the record has
// trailing padding.
//
// Two accumulation policies exist:
//
//	PolicySum        acc + size     bytes consumed if there were no padding
//	PolicyOffsetEnd  offset + size  where the field really ends
//
// Plain uses the sum policy and prints two lines per field. Trace uses the
// offset-end policy and prints one structured line per field:
//
//	[TRACE] O -> OFFSET COMPUTED    [OFFSET: 0x04] | [SIZE: 4] field_c
//
// The accumulator is passed in and returned, never stored, so a Reporter can
// be run any number of times and always starts from zero in Run.
package report
