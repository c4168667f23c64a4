package coil

import "fmt"

// Operand is a tagged instruction argument: a 16-bit type word plus a
// variable-length payload whose size is dictated by the type's main
// category. It is held in this wire form only: there is no separate
// per-kind (Variable/Symbol/Register/Immediate/Memory) representation, so
// callers branch on Type and read the payload through ID or Memory.
type Operand struct {
	Type    Type
	Payload []byte
}

// NewVariableOperand creates an operand referencing variable id.
func NewVariableOperand(id uint16) Operand {
	return Operand{Type: VarType, Payload: u16le(id)}
}

// NewSymbolOperand creates an operand referencing symbol id.
func NewSymbolOperand(id uint16) Operand {
	return Operand{Type: SymType, Payload: u16le(id)}
}

// NewRegisterOperand creates an operand referencing register id in the
// given register class (RGP/RFP/RV, with any extension bits already
// folded into registerClass).
func NewRegisterOperand(id uint16, registerClass Type) Operand {
	return Operand{Type: registerClass, Payload: u16le(id)}
}

// NewImmediateInt32 creates an immediate operand carrying a 32-bit value of
// valueType (IMM is OR'd into the type automatically).
func NewImmediateInt32(value int32, valueType Type) Operand {
	b := NewGrowBuffer("imm32")
	PutI32(b, value, LittleEndian)
	return Operand{Type: valueType.WithExtensions(ExtImm), Payload: b.Bytes()}
}

// NewImmediateInt64 creates an immediate operand carrying a 64-bit value of
// valueType (IMM is OR'd into the type automatically).
func NewImmediateInt64(value int64, valueType Type) Operand {
	b := NewGrowBuffer("imm64")
	PutI64(b, value, LittleEndian)
	return Operand{Type: valueType.WithExtensions(ExtImm), Payload: b.Bytes()}
}

// NewImmediateFloat32 creates an F32+IMM operand.
func NewImmediateFloat32(value float32) Operand {
	b := NewGrowBuffer("immf32")
	PutF32(b, value, LittleEndian)
	return Operand{Type: F32.WithExtensions(ExtImm), Payload: b.Bytes()}
}

// NewImmediateFloat64 creates an F64+IMM operand.
func NewImmediateFloat64(value float64) Operand {
	b := NewGrowBuffer("immf64")
	PutF64(b, value, LittleEndian)
	return Operand{Type: F64.WithExtensions(ExtImm), Payload: b.Bytes()}
}

// NewMemoryOperand creates a PTR operand: base(u16) + index(u16) + scale(u8)
// + displacement(i32), 9 bytes total.
func NewMemoryOperand(base, index uint16, scale uint8, disp int32) Operand {
	b := NewGrowBuffer("mem")
	PutU16(b, base, LittleEndian)
	PutU16(b, index, LittleEndian)
	PutU8(b, scale)
	PutI32(b, disp, LittleEndian)
	return Operand{Type: PtrType, Payload: b.Bytes()}
}

func u16le(v uint16) []byte {
	b := NewGrowBuffer("id")
	PutU16(b, v, LittleEndian)
	return b.Bytes()
}

// ID interprets a Variable/Symbol/Register operand's payload as a 16-bit id.
// Panics if Payload is not exactly 2 bytes: calling this on the wrong
// operand kind is a programming error.
func (o Operand) ID() uint16 {
	if len(o.Payload) != 2 {
		panic(fmt.Sprintf("Operand.ID: payload is %d bytes, want 2", len(o.Payload)))
	}
	v, _, _ := ReadU16(o.Payload, 0, LittleEndian)
	return v
}

// Memory interprets a PTR operand's payload as base/index/scale/disp.
// Panics if Payload is not exactly 9 bytes.
func (o Operand) Memory() (base, index uint16, scale uint8, disp int32) {
	if len(o.Payload) != 9 {
		panic(fmt.Sprintf("Operand.Memory: payload is %d bytes, want 9", len(o.Payload)))
	}
	base, _, _ = ReadU16(o.Payload, 0, LittleEndian)
	index, _, _ = ReadU16(o.Payload, 2, LittleEndian)
	scale, _, _ = ReadU8(o.Payload, 4)
	disp, _, _ = ReadI32(o.Payload, 5, LittleEndian)
	return
}

// Encode appends the wire form of o to b: a little-endian u16 type word
// followed by the raw payload bytes.
func (o Operand) Encode(b *GrowBuffer) {
	PutU16(b, uint16(o.Type), LittleEndian)
	b.Write(o.Payload)
}

// EncodeBytes returns the standalone wire form of o.
func (o Operand) EncodeBytes() []byte {
	b := NewGrowBuffer("operand")
	o.Encode(b)
	return b.Bytes()
}

// DecodeOperand reads one operand from data starting at offset, returning
// the operand and the offset immediately past it. Payload length is
// inferred from the type word: VAR/SYM and register-class types take 2
// bytes; an IMM-flagged type takes size_of(type without IMM) bytes; PTR
// takes 9 bytes; anything else defaults to 4 bytes.
func DecodeOperand(data []byte, offset int) (Operand, int, error) {
	typeWord, next, err := ReadU16(data, offset, LittleEndian)
	if err != nil {
		return Operand{}, offset, wrapErr(ErrKindInvalidFormat, err, "decoding operand type word")
	}
	t := Type(typeWord)
	main := t.MainType()

	var valueSize int
	switch {
	case t == VarType || t == SymType:
		valueSize = 2
	case main == TypeRGP || main == TypeRFP || main == TypeRV:
		valueSize = 2
	case t.Extensions()&ExtImm != 0:
		valueSize = int(t.WithoutExtensions().Size())
	case main == TypePtr:
		valueSize = 9
	default:
		valueSize = 4
	}

	payload, next2, err := ReadBytes(data, next, valueSize)
	if err != nil {
		return Operand{}, offset, wrapErr(ErrKindInvalidFormat, err, "decoding operand payload (%d bytes)", valueSize)
	}
	return Operand{Type: t, Payload: payload}, next2, nil
}
