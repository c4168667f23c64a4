package coil

import "testing"

func TestInstructionEncodeDecodeRoundTrip(t *testing.T) {
	instr := NewInstruction(OpADD,
		NewRegisterOperand(1, RGPType),
		NewRegisterOperand(2, RGPType),
		NewRegisterOperand(3, RGPType),
	)
	raw := instr.EncodeBytes()
	decoded, next, err := DecodeInstruction(raw, 0)
	if err != nil {
		t.Fatalf("DecodeInstruction: %v", err)
	}
	if next != len(raw) {
		t.Fatalf("next = %d, want %d", next, len(raw))
	}
	if decoded.Opcode != OpADD {
		t.Fatalf("Opcode = 0x%02X, want OpADD", decoded.Opcode)
	}
	if len(decoded.Operands) != 3 {
		t.Fatalf("len(Operands) = %d, want 3", len(decoded.Operands))
	}
}

func TestInstructionEncodedSizeMatchesEncode(t *testing.T) {
	instr := NewInstruction(OpMOV, NewRegisterOperand(1, RGPType), NewImmediateInt32(5, I32))
	if got, want := instr.EncodedSize(), len(instr.EncodeBytes()); got != want {
		t.Fatalf("EncodedSize() = %d, want %d", got, want)
	}
}

func TestInstructionValidateOpcode(t *testing.T) {
	bad := Instruction{Opcode: Opcode(0xEE)}
	if err := bad.Validate(); err == nil {
		t.Fatal("an unknown opcode should fail validation")
	}
}

func TestInstructionValidateArity(t *testing.T) {
	tooFew := NewInstruction(OpADD, NewRegisterOperand(1, RGPType))
	if err := tooFew.Validate(); err == nil {
		t.Fatal("OpADD with one operand should fail arity validation")
	}

	ok := NewInstruction(OpADD, NewRegisterOperand(1, RGPType), NewRegisterOperand(2, RGPType), NewRegisterOperand(3, RGPType))
	if err := ok.Validate(); err != nil {
		t.Fatalf("OpADD with three operands should validate: %v", err)
	}
}

func TestInstructionValidateExemptsVariableArity(t *testing.T) {
	call := NewInstruction(OpCALL, NewSymbolOperand(1), NewRegisterOperand(1, RGPType), NewRegisterOperand(2, RGPType))
	if err := call.Validate(); err != nil {
		t.Fatalf("OpCALL with extra operands should not fail arity validation: %v", err)
	}
}

func TestDecodeInstructionFailsOnTruncatedBuffer(t *testing.T) {
	instr := NewInstruction(OpADD, NewRegisterOperand(1, RGPType), NewRegisterOperand(2, RGPType), NewRegisterOperand(3, RGPType))
	raw := instr.EncodeBytes()
	_, _, err := DecodeInstruction(raw[:len(raw)-1], 0)
	if err == nil {
		t.Fatal("decoding a truncated instruction should fail")
	}
}
