package coil

import "testing"

func TestGrowBufferWriteAndCommit(t *testing.T) {
	b := NewGrowBuffer("test")
	PutU32(b, 0xDEADBEEF, LittleEndian)
	if b.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", b.Len())
	}
	b.Commit()
	if !b.IsCommitted() {
		t.Fatal("IsCommitted() should be true after Commit()")
	}
}

func TestGrowBufferPanicsAfterCommit(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Write after Commit should panic")
		}
	}()
	b := NewGrowBuffer("test")
	b.Commit()
	b.WriteByte(1)
}

func TestPutGetRoundTripLittleEndian(t *testing.T) {
	b := NewGrowBuffer("rt")
	PutU16(b, 0x1234, LittleEndian)
	PutU32(b, 0xAABBCCDD, LittleEndian)
	PutU64(b, 0x0102030405060708, LittleEndian)
	data := b.Bytes()

	u16, next, err := ReadU16(data, 0, LittleEndian)
	if err != nil || u16 != 0x1234 {
		t.Fatalf("ReadU16 = %04X, %v, want 1234, nil", u16, err)
	}
	u32, next, err := ReadU32(data, next, LittleEndian)
	if err != nil || u32 != 0xAABBCCDD {
		t.Fatalf("ReadU32 = %08X, %v, want AABBCCDD, nil", u32, err)
	}
	u64, _, err := ReadU64(data, next, LittleEndian)
	if err != nil || u64 != 0x0102030405060708 {
		t.Fatalf("ReadU64 = %016X, %v, want 0102030405060708, nil", u64, err)
	}
}

func TestPutGetRoundTripBigEndian(t *testing.T) {
	b := NewGrowBuffer("rt")
	PutU32(b, 0x01020304, BigEndian)
	data := b.Bytes()
	if data[0] != 0x01 || data[3] != 0x04 {
		t.Fatalf("big-endian encoding wrong: % X", data)
	}
	v, _, err := ReadU32(data, 0, BigEndian)
	if err != nil || v != 0x01020304 {
		t.Fatalf("ReadU32(BigEndian) = %08X, %v", v, err)
	}
}

func TestFloatRoundTrip(t *testing.T) {
	b := NewGrowBuffer("f")
	PutF32(b, 3.5, LittleEndian)
	PutF64(b, -2.25, LittleEndian)
	data := b.Bytes()

	f32, next, err := ReadF32(data, 0, LittleEndian)
	if err != nil || f32 != 3.5 {
		t.Fatalf("ReadF32 = %v, %v, want 3.5, nil", f32, err)
	}
	f64, _, err := ReadF64(data, next, LittleEndian)
	if err != nil || f64 != -2.25 {
		t.Fatalf("ReadF64 = %v, %v, want -2.25, nil", f64, err)
	}
}

func TestLengthPrefixedStringRoundTrip(t *testing.T) {
	b := NewGrowBuffer("s")
	PutLengthPrefixedString(b, "hello", LittleEndian)
	data := b.Bytes()
	s, next, err := ReadLengthPrefixedString(data, 0, LittleEndian)
	if err != nil {
		t.Fatalf("ReadLengthPrefixedString: %v", err)
	}
	if s != "hello" {
		t.Fatalf("s = %q, want %q", s, "hello")
	}
	if next != len(data) {
		t.Fatalf("next = %d, want %d", next, len(data))
	}
}

func TestReadShortBuffer(t *testing.T) {
	_, _, err := ReadU32([]byte{1, 2}, 0, LittleEndian)
	if err == nil {
		t.Fatal("ReadU32 on a 2-byte buffer should fail")
	}
}

func TestSwapRoundTrip(t *testing.T) {
	if SwapU16(SwapU16(0x1234)) != 0x1234 {
		t.Fatal("SwapU16 should be its own inverse")
	}
	if SwapU32(SwapU32(0xAABBCCDD)) != 0xAABBCCDD {
		t.Fatal("SwapU32 should be its own inverse")
	}
	if SwapU64(SwapU64(0x0102030405060708)) != 0x0102030405060708 {
		t.Fatal("SwapU64 should be its own inverse")
	}
}
