package coil

// Instruction is opcode:u8 + operand_count:u8 followed by the concatenated
// encodings of its operands.
type Instruction struct {
	Opcode   Opcode
	Operands []Operand
}

// NewInstruction builds an Instruction from an opcode and its operands.
func NewInstruction(op Opcode, operands ...Operand) Instruction {
	return Instruction{Opcode: op, Operands: operands}
}

// Encode appends the wire form of i to b.
func (i Instruction) Encode(b *GrowBuffer) {
	PutU8(b, uint8(i.Opcode))
	PutU8(b, uint8(len(i.Operands)))
	for _, op := range i.Operands {
		op.Encode(b)
	}
}

// EncodeBytes returns the standalone wire form of i.
func (i Instruction) EncodeBytes() []byte {
	b := NewGrowBuffer("instruction")
	i.Encode(b)
	return b.Bytes()
}

// EncodedSize returns the wire size of i without re-encoding it, useful for
// pre-sizing a GrowBuffer via Reserve before appending many instructions.
func (i Instruction) EncodedSize() int {
	size := 2 // opcode + operand_count
	for _, op := range i.Operands {
		size += 2 + len(op.Payload) // type word + payload
	}
	return size
}

// DecodeInstruction reads one instruction from data starting at offset,
// returning the instruction and the offset immediately past it. Fails with
// ErrKindInvalidFormat if the buffer is exhausted mid-operand.
func DecodeInstruction(data []byte, offset int) (Instruction, int, error) {
	opcodeByte, next, err := ReadU8(data, offset)
	if err != nil {
		return Instruction{}, offset, wrapErr(ErrKindInvalidFormat, err, "decoding instruction opcode")
	}
	count, next2, err := ReadU8(data, next)
	if err != nil {
		return Instruction{}, offset, wrapErr(ErrKindInvalidFormat, err, "decoding instruction operand count")
	}

	operands := make([]Operand, 0, count)
	cursor := next2
	for n := 0; n < int(count); n++ {
		op, next3, err := DecodeOperand(data, cursor)
		if err != nil {
			return Instruction{}, offset, err
		}
		operands = append(operands, op)
		cursor = next3
	}

	return Instruction{Opcode: Opcode(opcodeByte), Operands: operands}, cursor, nil
}

// Validate checks i against the opcode table: the opcode must be known,
// and (for fixed-arity opcodes) the operand count must match the tabulated
// expectation. CALL, RET and SWITCH are exempt from the arity check; VAR
// is exempt from the tabulated count but still requires its own shape (a
// destination, a type-word immediate, and an optional initializer).
func (i Instruction) Validate() error {
	if !IsValidOpcode(i.Opcode) {
		return &CoilError{Kind: ErrKindInvalidArg, Message: "unknown opcode"}
	}
	if i.Opcode == OpVAR {
		if len(i.Operands) < 2 || len(i.Operands) > 3 {
			return &CoilError{Kind: ErrKindInvalidArg, Message: "VAR requires 2 or 3 operands"}
		}
		if i.Operands[1].Type.Extensions()&ExtImm == 0 {
			return &CoilError{Kind: ErrKindInvalidArg, Message: "VAR's 2nd operand must be an immediate type-word payload"}
		}
		return nil
	}
	if i.Opcode.IsVariableArity() {
		return nil
	}
	expected, ok := ExpectedOperandCount(i.Opcode)
	if ok && expected != len(i.Operands) {
		return &CoilError{Kind: ErrKindInvalidArg, Message: "operand count does not match expected arity"}
	}
	return nil
}
