package coil

import "strings"

// Opcode identifies a COIL instruction. The opcode space is partitioned by
// range: 0x00 NOP; 0x01-0x0F control flow; 0x10-0x2F memory and scope;
// 0x50-0x5F bit operations; 0x60-0x8F arithmetic; 0x90-0x9F vector;
// 0xA0-0xAF type operations; 0xB0-0xBF directives.
type Opcode uint8

const (
	OpNOP Opcode = 0x00

	// Control flow (0x01-0x0F)
	OpSYM    Opcode = 0x01
	OpBR     Opcode = 0x02
	OpCALL   Opcode = 0x03
	OpRET    Opcode = 0x04
	OpCMP    Opcode = 0x05
	OpSWITCH Opcode = 0x09

	// Memory operations (0x10-0x2F)
	OpMOV    Opcode = 0x10
	OpPUSH   Opcode = 0x11
	OpPOP    Opcode = 0x12
	OpLEA    Opcode = 0x13
	OpSCOPEE Opcode = 0x14
	OpSCOPEL Opcode = 0x15
	OpVAR    Opcode = 0x16
	OpMEMCPY Opcode = 0x17
	OpMEMSET Opcode = 0x18
	OpMEMCMP Opcode = 0x19
	OpXCHG   Opcode = 0x1A
	OpCAS    Opcode = 0x1B

	// Bit manipulation (0x50-0x5F)
	OpAND Opcode = 0x50
	OpOR  Opcode = 0x51
	OpXOR Opcode = 0x52
	OpNOT Opcode = 0x53
	OpSHL Opcode = 0x54
	OpSHR Opcode = 0x55
	OpSAR Opcode = 0x56

	// Arithmetic (0x60-0x8F)
	OpADD   Opcode = 0x60
	OpSUB   Opcode = 0x61
	OpMUL   Opcode = 0x62
	OpDIV   Opcode = 0x63
	OpMOD   Opcode = 0x64
	OpINC   Opcode = 0x65
	OpDEC   Opcode = 0x66
	OpNEG   Opcode = 0x67
	OpABS   Opcode = 0x68
	OpSQRT  Opcode = 0x69
	OpCEIL  Opcode = 0x6B
	OpFLOOR Opcode = 0x6C
	OpROUND Opcode = 0x6D

	// Vector/array (0x90-0x9F)
	OpVLOAD    Opcode = 0x90
	OpVSTORE   Opcode = 0x91
	OpVEXTRACT Opcode = 0x96
	OpVINSERT  Opcode = 0x97
	OpVDOT     Opcode = 0x9C

	// Type operations (0xA0-0xAF)
	OpTYPEOF  Opcode = 0xA0
	OpSIZEOF  Opcode = 0xA1
	OpCONVERT Opcode = 0xA3
	OpCAST    Opcode = 0xA4
	OpGET     Opcode = 0xA6
	OpSET     Opcode = 0xA7
	OpINDEX   Opcode = 0xA8
	OpUPDT    Opcode = 0xA9

	// Directives (0xB0-0xBF)
	OpARCH    Opcode = 0xB0
	OpPROC    Opcode = 0xB1
	OpMODE    Opcode = 0xB2
	OpALIGN   Opcode = 0xB3
	OpSECTION Opcode = 0xB4
	OpDATA    Opcode = 0xB5
	OpIF      Opcode = 0xB6
	OpELIF    Opcode = 0xB7
	OpELSE    Opcode = 0xB8
	OpENDIF   Opcode = 0xB9
	OpABI     Opcode = 0xBA
	OpEXTERN  Opcode = 0xBB
	OpGLOBAL  Opcode = 0xBC
	OpINCLUDE Opcode = 0xBD
	OpVERSION Opcode = 0xBE
)

// expectedOperandCount tabulates the arity every opcode is expected to
// carry. Opcodes absent from this table are unknown / invalid.
var expectedOperandCount = map[Opcode]int{
	OpSYM: 1, OpBR: 1, OpCALL: 1, OpRET: 0, OpCMP: 2, OpSWITCH: 3,

	OpMOV: 2, OpPUSH: 1, OpPOP: 1, OpLEA: 2, OpSCOPEE: 0, OpSCOPEL: 0,
	OpVAR: 2, OpMEMCPY: 3, OpMEMSET: 3, OpMEMCMP: 4, OpXCHG: 2, OpCAS: 3,

	OpAND: 3, OpOR: 3, OpXOR: 3, OpNOT: 2, OpSHL: 3, OpSHR: 3, OpSAR: 3,

	OpADD: 3, OpSUB: 3, OpMUL: 3, OpDIV: 3, OpMOD: 3, OpINC: 1, OpDEC: 1,
	OpNEG: 2, OpABS: 2, OpSQRT: 2, OpCEIL: 2, OpFLOOR: 2, OpROUND: 2,

	OpVLOAD: 2, OpVSTORE: 2, OpVEXTRACT: 3, OpVINSERT: 4, OpVDOT: 3,

	OpTYPEOF: 2, OpSIZEOF: 2, OpCONVERT: 2, OpCAST: 2, OpGET: 3, OpSET: 3,
	OpINDEX: 3, OpUPDT: 3,

	OpARCH: 1, OpPROC: 1, OpMODE: 1, OpALIGN: 1, OpSECTION: 2, OpDATA: 2,
	OpIF: 1, OpELIF: 1, OpELSE: 0, OpENDIF: 0, OpABI: 1, OpEXTERN: 1,
	OpGLOBAL: 1, OpINCLUDE: 1, OpVERSION: 3,

	OpNOP: 0,
}

// variableArityOpcodes is the set of opcodes whose operand count is not
// checked against expectedOperandCount: their arity legitimately varies
// (e.g. with calling convention or switch-case count).
var variableArityOpcodes = map[Opcode]bool{
	OpCALL: true, OpRET: true, OpVAR: true, OpSWITCH: true,
}

// IsVariableArity reports whether op's operand count is exempt from the
// expected-arity check.
func (op Opcode) IsVariableArity() bool {
	return variableArityOpcodes[op]
}

// ExpectedOperandCount returns the tabulated operand count for op. The
// second return value is false if op is not a known opcode.
func ExpectedOperandCount(op Opcode) (int, bool) {
	n, ok := expectedOperandCount[op]
	return n, ok
}

// IsValidOpcode reports whether op appears in the known opcode table.
func IsValidOpcode(op Opcode) bool {
	_, ok := opcodeNames[op]
	return ok
}

var opcodeNames = map[Opcode]string{
	OpSYM: "SYM", OpBR: "BR", OpCALL: "CALL", OpRET: "RET", OpCMP: "CMP", OpSWITCH: "SWITCH",

	OpMOV: "MOV", OpPUSH: "PUSH", OpPOP: "POP", OpLEA: "LEA",
	OpSCOPEE: "SCOPEE", OpSCOPEL: "SCOPEL", OpVAR: "VAR", OpMEMCPY: "MEMCPY",
	OpMEMSET: "MEMSET", OpMEMCMP: "MEMCMP", OpXCHG: "XCHG", OpCAS: "CAS",

	OpAND: "AND", OpOR: "OR", OpXOR: "XOR", OpNOT: "NOT", OpSHL: "SHL",
	OpSHR: "SHR", OpSAR: "SAR",

	OpADD: "ADD", OpSUB: "SUB", OpMUL: "MUL", OpDIV: "DIV", OpMOD: "MOD",
	OpINC: "INC", OpDEC: "DEC", OpNEG: "NEG", OpABS: "ABS", OpSQRT: "SQRT",
	OpCEIL: "CEIL", OpFLOOR: "FLOOR", OpROUND: "ROUND",

	OpVLOAD: "VLOAD", OpVSTORE: "VSTORE", OpVEXTRACT: "VEXTRACT",
	OpVINSERT: "VINSERT", OpVDOT: "VDOT",

	OpTYPEOF: "TYPEOF", OpSIZEOF: "SIZEOF", OpCONVERT: "CONVERT",
	OpCAST: "CAST", OpGET: "GET", OpSET: "SET", OpINDEX: "INDEX", OpUPDT: "UPDT",

	OpARCH: "ARCH", OpPROC: "PROC", OpMODE: "MODE", OpALIGN: "ALIGN",
	OpSECTION: "SECTION", OpDATA: "DATA", OpIF: "IF", OpELIF: "ELIF",
	OpELSE: "ELSE", OpENDIF: "ENDIF", OpABI: "ABI", OpEXTERN: "EXTERN",
	OpGLOBAL: "GLOBAL", OpINCLUDE: "INCLUDE", OpVERSION: "VERSION",

	OpNOP: "NOP",
}

var namesToOpcode = func() map[string]Opcode {
	m := make(map[string]Opcode, len(opcodeNames))
	for op, name := range opcodeNames {
		m[name] = op
	}
	return m
}()

// OpcodeName returns the mnemonic for op, or "UNKNOWN" if op is not a known
// opcode.
func OpcodeName(op Opcode) string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return "UNKNOWN"
}

// OpcodeFromName looks up the opcode for a mnemonic, case-insensitively. The
// second return value is false if no opcode has that name.
func OpcodeFromName(name string) (Opcode, bool) {
	op, ok := namesToOpcode[strings.ToUpper(name)]
	return op, ok
}
