package coil

import "fmt"

// Type is a 16-bit encoded type word: the high byte is the main category,
// the low byte carries extension bitflags.
type Type uint16

// Main type categories (high byte values).
const (
	TypeI8  uint8 = 0x01
	TypeI16 uint8 = 0x02
	TypeI32 uint8 = 0x03
	TypeI64 uint8 = 0x04

	TypeU8  uint8 = 0x10
	TypeU16 uint8 = 0x11
	TypeU32 uint8 = 0x13
	TypeU64 uint8 = 0x14

	TypeF16  uint8 = 0x23
	TypeF32  uint8 = 0x25
	TypeF64  uint8 = 0x26
	TypeF128 uint8 = 0x28

	TypeV128 uint8 = 0x30
	TypeV256 uint8 = 0x31
	TypeV512 uint8 = 0x32

	TypeBit  uint8 = 0x40
	TypeVoid uint8 = 0xFF

	TypePlatformInt uint8 = 0xA0
	TypePlatformUnt uint8 = 0xA1
	TypePlatformFP  uint8 = 0xA2
	TypePtr         uint8 = 0xA6

	TypeVar uint8 = 0x90
	TypeSym uint8 = 0x91
	TypeRGP uint8 = 0x92 // general-purpose register
	TypeRFP uint8 = 0x93 // floating-point register
	TypeRV  uint8 = 0x94 // vector register

	TypeStruct uint8 = 0xD0
	TypePack   uint8 = 0xD1
	TypeUnion  uint8 = 0xD2
	TypeArray  uint8 = 0xD3

	TypeParam4 uint8 = 0xFA
	TypeParam3 uint8 = 0xFB
	TypeParam2 uint8 = 0xFC
	TypeParam1 uint8 = 0xFD
	TypeParam0 uint8 = 0xFE
)

// Extension bitflags (low byte), non-exclusive.
const (
	ExtConst    uint8 = 0x01
	ExtVolatile uint8 = 0x02
	ExtImm      uint8 = 0x20 // immediate value follows
	ExtVarID    uint8 = 0x40
	ExtSymID    uint8 = 0x80
)

// Ready-made 16-bit words for the main categories with no extensions.
const (
	I8  Type = Type(uint16(TypeI8) << 8)
	I16 Type = Type(uint16(TypeI16) << 8)
	I32 Type = Type(uint16(TypeI32) << 8)
	I64 Type = Type(uint16(TypeI64) << 8)

	U8  Type = Type(uint16(TypeU8) << 8)
	U16 Type = Type(uint16(TypeU16) << 8)
	U32 Type = Type(uint16(TypeU32) << 8)
	U64 Type = Type(uint16(TypeU64) << 8)

	F16  Type = Type(uint16(TypeF16) << 8)
	F32  Type = Type(uint16(TypeF32) << 8)
	F64  Type = Type(uint16(TypeF64) << 8)
	F128 Type = Type(uint16(TypeF128) << 8)

	V128 Type = Type(uint16(TypeV128) << 8)
	V256 Type = Type(uint16(TypeV256) << 8)
	V512 Type = Type(uint16(TypeV512) << 8)

	BitType Type = Type(uint16(TypeBit) << 8)
	Void    Type = Type(uint16(TypeVoid) << 8)

	PlatformInt Type = Type(uint16(TypePlatformInt) << 8)
	PlatformUnt Type = Type(uint16(TypePlatformUnt) << 8)
	PlatformFP  Type = Type(uint16(TypePlatformFP) << 8)
	PtrType     Type = Type(uint16(TypePtr) << 8)

	VarType Type = Type(uint16(TypeVar) << 8)
	SymType Type = Type(uint16(TypeSym) << 8)
	RGPType Type = Type(uint16(TypeRGP) << 8)
	RFPType Type = Type(uint16(TypeRFP) << 8)
	RVType  Type = Type(uint16(TypeRV) << 8)

	StructType Type = Type(uint16(TypeStruct) << 8)
	PackType   Type = Type(uint16(TypePack) << 8)
	UnionType  Type = Type(uint16(TypeUnion) << 8)
	ArrayType  Type = Type(uint16(TypeArray) << 8)

	Param0 Type = Type(uint16(TypeParam0) << 8)
	Param1 Type = Type(uint16(TypeParam1) << 8)
	Param2 Type = Type(uint16(TypeParam2) << 8)
	Param3 Type = Type(uint16(TypeParam3) << 8)
	Param4 Type = Type(uint16(TypeParam4) << 8)
)

// ComposeType combines a main category byte with extension flags into a
// 16-bit type word.
func ComposeType(mainType, extensions uint8) Type {
	return Type(uint16(mainType)<<8 | uint16(extensions))
}

// MainType returns the high byte (category) of a type word.
func (t Type) MainType() uint8 { return uint8(t >> 8) }

// Extensions returns the low byte (extension flags) of a type word.
func (t Type) Extensions() uint8 { return uint8(t & 0xFF) }

// WithExtensions returns a copy of t with the given extension bits set.
func (t Type) WithExtensions(ext uint8) Type {
	return ComposeType(t.MainType(), t.Extensions()|ext)
}

// WithoutExtensions returns a copy of t with all extension bits cleared.
func (t Type) WithoutExtensions() Type {
	return ComposeType(t.MainType(), 0)
}

// IsInteger reports whether t is a signed or unsigned integer type,
// including the platform-dependent INT/UNT categories.
func (t Type) IsInteger() bool {
	m := t.MainType()
	return (m >= TypeI8 && m <= TypeU64) || m == TypePlatformInt || m == TypePlatformUnt
}

// IsSignedInteger reports whether t is a fixed-width or platform signed
// integer type.
func (t Type) IsSignedInteger() bool {
	m := t.MainType()
	return (m >= TypeI8 && m <= TypeI64) || m == TypePlatformInt
}

// IsUnsignedInteger reports whether t is a fixed-width or platform unsigned
// integer type.
func (t Type) IsUnsignedInteger() bool {
	m := t.MainType()
	return (m >= TypeU8 && m <= TypeU64) || m == TypePlatformUnt
}

// IsFloat reports whether t is a fixed-width or platform floating point type.
func (t Type) IsFloat() bool {
	m := t.MainType()
	return (m >= TypeF16 && m <= TypeF128) || m == TypePlatformFP
}

// IsVector reports whether t is one of the fixed-width vector types.
func (t Type) IsVector() bool {
	m := t.MainType()
	return m >= TypeV128 && m <= TypeV512
}

// IsPointer reports whether t is the platform pointer type.
func (t Type) IsPointer() bool { return t.MainType() == TypePtr }

// IsReference reports whether t is one of VAR/SYM/RGP/RFP/RV.
func (t Type) IsReference() bool {
	m := t.MainType()
	return m >= TypeVar && m <= TypeRV
}

// IsComposite reports whether t is one of STRUCT/PACK/UNION/ARRAY.
func (t Type) IsComposite() bool {
	m := t.MainType()
	return m >= TypeStruct && m <= TypeArray
}

// IsParameter reports whether t is one of the PARAM0..PARAM4 placeholders.
// The placeholders are ordered PARAM4 < PARAM3 < ... < PARAM0 in byte value.
func (t Type) IsParameter() bool {
	m := t.MainType()
	return m >= TypeParam4 && m <= TypeParam0
}

// Size returns the size in bytes of a value of type t. Composite types and
// VOID return 0; composite sizes must be resolved via a TypeRegistry.
func (t Type) Size() uint32 {
	switch t.MainType() {
	case TypeI8, TypeU8:
		return 1
	case TypeI16, TypeU16, TypeF16:
		return 2
	case TypeI32, TypeU32, TypeF32:
		return 4
	case TypeI64, TypeU64, TypeF64:
		return 8
	case TypeF128, TypeV128:
		return 16
	case TypeV256:
		return 32
	case TypeV512:
		return 64
	case TypeBit:
		return 1
	case TypeVoid:
		return 0
	case TypePlatformInt, TypePlatformUnt, TypePlatformFP:
		// Fixed 32-bit word-size mapping; Config.WordSize does not change it.
		return 4
	case TypePtr:
		return 8
	case TypeVar, TypeSym, TypeRGP, TypeRFP, TypeRV:
		return 8
	case TypeStruct, TypePack, TypeUnion, TypeArray:
		return 0 // depends on the registered composite
	default:
		return 0
	}
}

// Name returns the canonical textual form of t, e.g. "I32+CONST", for use in
// diagnostics only.
func (t Type) Name() string {
	var result string
	switch t.MainType() {
	case TypeI8:
		result = "I8"
	case TypeI16:
		result = "I16"
	case TypeI32:
		result = "I32"
	case TypeI64:
		result = "I64"
	case TypeU8:
		result = "U8"
	case TypeU16:
		result = "U16"
	case TypeU32:
		result = "U32"
	case TypeU64:
		result = "U64"
	case TypeF16:
		result = "F16"
	case TypeF32:
		result = "F32"
	case TypeF64:
		result = "F64"
	case TypeF128:
		result = "F128"
	case TypeV128:
		result = "V128"
	case TypeV256:
		result = "V256"
	case TypeV512:
		result = "V512"
	case TypeBit:
		result = "BIT"
	case TypeVoid:
		result = "VOID"
	case TypePlatformInt:
		result = "INT"
	case TypePlatformUnt:
		result = "UNT"
	case TypePlatformFP:
		result = "FP"
	case TypePtr:
		result = "PTR"
	case TypeVar:
		result = "VAR"
	case TypeSym:
		result = "SYM"
	case TypeRGP:
		result = "RGP"
	case TypeRFP:
		result = "RFP"
	case TypeRV:
		result = "RV"
	case TypeStruct:
		result = "STRUCT"
	case TypePack:
		result = "PACK"
	case TypeUnion:
		result = "UNION"
	case TypeArray:
		result = "ARRAY"
	default:
		result = fmt.Sprintf("UNKNOWN(0x%02X)", t.MainType())
	}

	ext := t.Extensions()
	if ext&ExtConst != 0 {
		result += "+CONST"
	}
	if ext&ExtVolatile != 0 {
		result += "+VOLATILE"
	}
	if ext&ExtImm != 0 {
		result += "+IMM"
	}
	if ext&ExtVarID != 0 {
		result += "+VAR_ID"
	}
	if ext&ExtSymID != 0 {
		result += "+SYM_ID"
	}
	return result
}
