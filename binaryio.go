package coil

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
)

// VerboseMode gates trace output from GrowBuffer.Commit. Seeded from
// COIL_VERBOSE by LoadConfig in config.go; also settable directly.
var VerboseMode bool

// Endianness selects byte order for the primitive read/write helpers. The
// object header itself is always little-endian in this implementation
// regardless of its own big-endian flag bit — see header.go for why.
type Endianness int

const (
	LittleEndian Endianness = iota
	BigEndian
)

func (e Endianness) order() binary.ByteOrder {
	if e == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// GrowBuffer is an append-only, lifecycle-guarded byte buffer: once Commit
// is called no further writes are permitted. Exposes a pre-sized
// constructor and a Reserve(n) hook so encoders that know their final size
// up front can avoid incremental reallocation.
type GrowBuffer struct {
	buf       []byte
	committed bool
	name      string
}

// NewGrowBuffer creates an empty buffer. name is used only in panic messages
// and verbose trace output.
func NewGrowBuffer(name string) *GrowBuffer {
	return &GrowBuffer{name: name}
}

// NewGrowBufferSize creates a buffer pre-sized to n bytes' capacity, for
// encoders (such as Object.Encode) that can compute the final size up front.
func NewGrowBufferSize(name string, n int) *GrowBuffer {
	return &GrowBuffer{name: name, buf: make([]byte, 0, n)}
}

// Reserve grows the buffer's capacity to at least n bytes without changing
// its length.
func (b *GrowBuffer) Reserve(n int) {
	if cap(b.buf) >= n {
		return
	}
	grown := make([]byte, len(b.buf), n)
	copy(grown, b.buf)
	b.buf = grown
}

// Write appends p to the buffer. Panics if the buffer has been committed:
// writing to a committed buffer is a programming error, not a recoverable
// I/O failure.
func (b *GrowBuffer) Write(p []byte) {
	if b.committed {
		panic(fmt.Sprintf("GrowBuffer(%s): write to committed buffer", b.name))
	}
	b.buf = append(b.buf, p...)
}

// WriteByte appends a single byte.
func (b *GrowBuffer) WriteByte(v byte) { b.Write([]byte{v}) }

// Bytes returns the buffer's contents. Safe to call before or after commit.
func (b *GrowBuffer) Bytes() []byte { return b.buf }

// Len returns the current buffer length.
func (b *GrowBuffer) Len() int { return len(b.buf) }

// Commit marks the buffer read-only.
func (b *GrowBuffer) Commit() {
	if VerboseMode {
		fmt.Fprintf(os.Stderr, "GrowBuffer(%s): committed with %d bytes\n", b.name, len(b.buf))
	}
	b.committed = true
}

// IsCommitted reports whether Commit has been called.
func (b *GrowBuffer) IsCommitted() bool { return b.committed }

// --- Endian-aware scalar primitives, appended to a GrowBuffer ---

func PutU8(b *GrowBuffer, v uint8) { b.WriteByte(v) }
func PutI8(b *GrowBuffer, v int8)  { b.WriteByte(byte(v)) }

func PutU16(b *GrowBuffer, v uint16, e Endianness) {
	var tmp [2]byte
	e.order().PutUint16(tmp[:], v)
	b.Write(tmp[:])
}

func PutI16(b *GrowBuffer, v int16, e Endianness) { PutU16(b, uint16(v), e) }

func PutU32(b *GrowBuffer, v uint32, e Endianness) {
	var tmp [4]byte
	e.order().PutUint32(tmp[:], v)
	b.Write(tmp[:])
}

func PutI32(b *GrowBuffer, v int32, e Endianness) { PutU32(b, uint32(v), e) }

func PutU64(b *GrowBuffer, v uint64, e Endianness) {
	var tmp [8]byte
	e.order().PutUint64(tmp[:], v)
	b.Write(tmp[:])
}

func PutI64(b *GrowBuffer, v int64, e Endianness) { PutU64(b, uint64(v), e) }

// PutF32 writes v's bits verbatim (no rounding).
func PutF32(b *GrowBuffer, v float32, e Endianness) {
	PutU32(b, math.Float32bits(v), e)
}

// PutF64 writes v's bits verbatim (no rounding).
func PutF64(b *GrowBuffer, v float64, e Endianness) {
	PutU64(b, math.Float64bits(v), e)
}

// PutLengthPrefixedString writes a u16 length followed by the raw bytes of
// s, matching Symbol's name_length/name wire pair.
func PutLengthPrefixedString(b *GrowBuffer, s string, e Endianness) {
	PutU16(b, uint16(len(s)), e)
	b.Write([]byte(s))
}

// --- Decoding from a read-only byte slice at a cursor offset ---

// ErrShortBuffer is returned by the Read* helpers when fewer than the
// required number of bytes remain in the source slice.
var ErrShortBuffer = &CoilError{Kind: ErrKindInvalidFormat, Message: "buffer exhausted before expected field"}

func ReadU8(data []byte, offset int) (uint8, int, error) {
	if offset+1 > len(data) {
		return 0, offset, ErrShortBuffer
	}
	return data[offset], offset + 1, nil
}

func ReadU16(data []byte, offset int, e Endianness) (uint16, int, error) {
	if offset+2 > len(data) {
		return 0, offset, ErrShortBuffer
	}
	return e.order().Uint16(data[offset : offset+2]), offset + 2, nil
}

func ReadI16(data []byte, offset int, e Endianness) (int16, int, error) {
	v, next, err := ReadU16(data, offset, e)
	return int16(v), next, err
}

func ReadU32(data []byte, offset int, e Endianness) (uint32, int, error) {
	if offset+4 > len(data) {
		return 0, offset, ErrShortBuffer
	}
	return e.order().Uint32(data[offset : offset+4]), offset + 4, nil
}

func ReadI32(data []byte, offset int, e Endianness) (int32, int, error) {
	v, next, err := ReadU32(data, offset, e)
	return int32(v), next, err
}

func ReadU64(data []byte, offset int, e Endianness) (uint64, int, error) {
	if offset+8 > len(data) {
		return 0, offset, ErrShortBuffer
	}
	return e.order().Uint64(data[offset : offset+8]), offset + 8, nil
}

func ReadI64(data []byte, offset int, e Endianness) (int64, int, error) {
	v, next, err := ReadU64(data, offset, e)
	return int64(v), next, err
}

func ReadF32(data []byte, offset int, e Endianness) (float32, int, error) {
	bits, next, err := ReadU32(data, offset, e)
	if err != nil {
		return 0, offset, err
	}
	return math.Float32frombits(bits), next, nil
}

func ReadF64(data []byte, offset int, e Endianness) (float64, int, error) {
	bits, next, err := ReadU64(data, offset, e)
	if err != nil {
		return 0, offset, err
	}
	return math.Float64frombits(bits), next, nil
}

// ReadLengthPrefixedString reads a u16 length followed by that many raw
// bytes, returning them as a freshly allocated string: decoding always
// copies into owned storage, never borrowing the source slice.
func ReadLengthPrefixedString(data []byte, offset int, e Endianness) (string, int, error) {
	n, next, err := ReadU16(data, offset, e)
	if err != nil {
		return "", offset, err
	}
	if next+int(n) > len(data) {
		return "", offset, ErrShortBuffer
	}
	s := string(append([]byte(nil), data[next:next+int(n)]...))
	return s, next + int(n), nil
}

// ReadBytes copies n bytes starting at offset into owned storage.
func ReadBytes(data []byte, offset, n int) ([]byte, int, error) {
	if offset+n > len(data) {
		return nil, offset, ErrShortBuffer
	}
	out := make([]byte, n)
	copy(out, data[offset:offset+n])
	return out, offset + n, nil
}

// SwapU16 reverses the byte order of v.
func SwapU16(v uint16) uint16 { return v<<8 | v>>8 }

// SwapU32 reverses the byte order of v.
func SwapU32(v uint32) uint32 {
	return v<<24 | (v&0xFF00)<<8 | (v&0xFF0000)>>8 | v>>24
}

// SwapU64 reverses the byte order of v.
func SwapU64(v uint64) uint64 {
	return v<<56 | (v&0xFF00)<<40 | (v&0xFF0000)<<24 | (v&0xFF000000)<<8 |
		(v&0xFF00000000)>>8 | (v&0xFF0000000000)>>24 | (v&0xFF000000000000)>>40 | v>>56
}
