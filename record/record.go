package record

import (
	"encoding/binary"
	"structs"
	"unsafe"
)

// Field names, in declaration order.
const (
	NameA = "field_a"
	NameB = "field_b"
	NameC = "field_c"
	NameD = "field_d"
)

// Record is the naturally aligned variant.
type Record struct {
	_      structs.HostLayout
	FieldA uint16
	FieldB uint16
	FieldC int32
	FieldD int32
}

// PackedRecord is the packed variant. Fields are little-endian byte arrays,
// so the struct has alignment 1 and no padding.
type PackedRecord struct {
	FieldA [2]byte
	FieldB [2]byte
	FieldC [4]byte
	FieldD [4]byte
}

// Pack encodes r into its packed form.
func Pack(r Record) PackedRecord {
	var p PackedRecord
	binary.LittleEndian.PutUint16(p.FieldA[:], r.FieldA)
	binary.LittleEndian.PutUint16(p.FieldB[:], r.FieldB)
	binary.LittleEndian.PutUint32(p.FieldC[:], uint32(r.FieldC))
	binary.LittleEndian.PutUint32(p.FieldD[:], uint32(r.FieldD))
	return p
}

// Unpack decodes p back into a Record.
func (p PackedRecord) Unpack() Record {
	return Record{
		FieldA: binary.LittleEndian.Uint16(p.FieldA[:]),
		FieldB: binary.LittleEndian.Uint16(p.FieldB[:]),
		FieldC: int32(binary.LittleEndian.Uint32(p.FieldC[:])),
		FieldD: int32(binary.LittleEndian.Uint32(p.FieldD[:])),
	}
}

// Bytes returns the packed record as one contiguous byte slice.
func (p PackedRecord) Bytes() []byte {
	out := make([]byte, 0, unsafe.Sizeof(p))
	out = append(out, p.FieldA[:]...)
	out = append(out, p.FieldB[:]...)
	out = append(out, p.FieldC[:]...)
	out = append(out, p.FieldD[:]...)
	return out
}

// Values returns the raw bit pattern of each field of r in declaration order.
func Values(r Record) []uint64 {
	return []uint64{
		uint64(r.FieldA),
		uint64(r.FieldB),
		uint64(uint32(r.FieldC)),
		uint64(uint32(r.FieldD)),
	}
}

// Sample is a record whose bytes are all distinct, so a misplaced field
// shows up in a dump.
func Sample() Record {
	return Record{
		FieldA: 0xA1A2,
		FieldB: 0xB1B2,
		FieldC: 0x0C1C2C3C,
		FieldD: -0x2D3D4D5E,
	}
}
