// Package probe stores records into WebAssembly linear memory.
//
// A Probe hosts a single page of linear memory inside a wazero runtime and
// writes each field of a record at the offset its layout reports, little
// endian, the way a wasm32 guest would see it. Reading the fields back
// confirms that the offsets are disjoint and in bounds, and a snapshot of the
// packed layout must equal the packed record's own bytes.
//
//	p, err := probe.New(ctx)
//	if err != nil {
//	    return err
//	}
//	defer p.Close(ctx)
//
//	err = p.Verify(record.Packed(), record.Values(record.Sample()))
package probe
