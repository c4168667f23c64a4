package coil

import (
	"regexp"

	"github.com/xyproto/coil/internal/engine"
)

var identifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
var sectionNamePattern = regexp.MustCompile(`^\.[a-zA-Z_][a-zA-Z0-9_.]*$`)

// IsValidIdentifier reports whether identifier matches [a-zA-Z_][a-zA-Z0-9_]*.
func IsValidIdentifier(identifier string) bool {
	return identifierPattern.MatchString(identifier)
}

// IsValidSectionName reports whether name looks like a conventional section
// name (a leading period followed by identifier characters, e.g. ".text").
func IsValidSectionName(name string) bool {
	return sectionNamePattern.MatchString(name)
}

// IsValidMemoryAccess reports whether an access of size bytes at address
// stays within [0, boundaries).
func IsValidMemoryAccess(address, size, boundaries uint32) bool {
	return address+size <= boundaries
}

// Validate runs every structural check over o and returns the collected
// findings: duplicate/invalid symbols, bad section metadata, out-of-range
// relocations, and (for executable sections) instruction decode/arity
// errors. An empty result means o is structurally sound; callers decide
// whether any WARNING-severity findings are acceptable.
func Validate(o *Object) []ErrorInfo {
	var findings []ErrorInfo
	findings = append(findings, validateSymbolTable(o)...)
	findings = append(findings, validateSectionTable(o)...)
	findings = append(findings, validateRelocations(o)...)
	for i := range o.Sections {
		findings = append(findings, validateSectionData(o, uint16(i))...)
	}
	return findings
}

func validateSymbolTable(o *Object) []ErrorInfo {
	var findings []ErrorInfo
	seen := make(map[string]bool, len(o.Symbols))

	for i, sym := range o.Symbols {
		if sym.Name != "" {
			if seen[sym.Name] {
				findings = append(findings, ErrorInfo{
					Code:        ErrDuplicateSymbolName,
					Message:     "duplicate symbol name: " + sym.Name,
					Severity:    SeverityError,
					SymbolIndex: uint16(i),
				})
			} else {
				seen[sym.Name] = true
			}
		}

		if sym.SectionIndex != 0xFFFF && int(sym.SectionIndex) >= len(o.Sections) {
			findings = append(findings, ErrorInfo{
				Code:        ErrSymbolBadSection,
				Message:     "symbol references invalid section index",
				Severity:    SeverityError,
				SymbolIndex: uint16(i),
			})
		}

		if sym.Name != "" && !IsValidIdentifier(sym.Name) {
			findings = append(findings, ErrorInfo{
				Code:        ErrSymbolBadIdentifier,
				Message:     "invalid symbol name: " + sym.Name,
				Severity:    SeverityWarning,
				SymbolIndex: uint16(i),
			})
		}
	}
	return findings
}

func validateSectionTable(o *Object) []ErrorInfo {
	var findings []ErrorInfo
	for i, sec := range o.Sections {
		if int(sec.NameIndex) >= len(o.Symbols) {
			findings = append(findings, ErrorInfo{
				Code:         ErrSectionBadNameIndex,
				Message:      "section references invalid name index",
				Severity:     SeverityError,
				SectionIndex: uint16(i),
			})
		}

		if !sec.IsAligned() {
			findings = append(findings, ErrorInfo{
				Code:         ErrSectionBadAlignment,
				Message:      "section alignment is not a power of two",
				Severity:     SeverityWarning,
				SectionIndex: uint16(i),
			})
		}

		if sec.Size != uint32(len(sec.Data)) {
			findings = append(findings, ErrorInfo{
				Code:         ErrSectionSizeMismatch,
				Message:      "section size does not match its data length",
				Severity:     SeverityError,
				SectionIndex: uint16(i),
			})
		}
	}
	return findings
}

func validateSectionData(o *Object, sectionIndex uint16) []ErrorInfo {
	var findings []ErrorInfo
	sec := o.Sections[sectionIndex]
	if sec.Attributes&SectionExecutable == 0 {
		return nil
	}

	offset := 0
	for offset < len(sec.Data) {
		instr, next, err := DecodeInstruction(sec.Data, offset)
		if err != nil {
			findings = append(findings, ErrorInfo{
				Code:         ErrInstructionDecode,
				Message:      "error decoding instruction",
				Severity:     SeverityError,
				Location:     uint32(offset),
				SectionIndex: sectionIndex,
			})
			offset++ // resynchronize by advancing one byte
			continue
		}
		findings = append(findings, validateInstruction(instr, sectionIndex, offset)...)
		offset = next
	}
	return findings
}

func validateInstruction(instr Instruction, sectionIndex uint16, location int) []ErrorInfo {
	if !IsValidOpcode(instr.Opcode) {
		return []ErrorInfo{{
			Code:         ErrInvalidOpcode,
			Message:      "invalid opcode",
			Severity:     SeverityError,
			Location:     uint32(location),
			SectionIndex: sectionIndex,
		}}
	}

	if instr.Opcode == OpVAR {
		return validateVarShape(instr, sectionIndex, location)
	}

	expected, ok := ExpectedOperandCount(instr.Opcode)
	if ok && expected != len(instr.Operands) && !instr.Opcode.IsVariableArity() {
		return []ErrorInfo{{
			Code:         ErrBadOperandCount,
			Message:      "invalid operand count for instruction " + OpcodeName(instr.Opcode),
			Severity:     SeverityError,
			Location:     uint32(location),
			SectionIndex: sectionIndex,
		}}
	}
	return nil
}

// validateVarShape checks the operand shape specific to VAR: 2 or 3
// operands, the 2nd being a type-word immediate (the optional 3rd carries
// the initializer). The kind of the 1st operand is not checked.
func validateVarShape(instr Instruction, sectionIndex uint16, location int) []ErrorInfo {
	if len(instr.Operands) < 2 || len(instr.Operands) > 3 {
		return []ErrorInfo{{
			Code:         ErrBadOperandCount,
			Message:      "VAR requires 2 or 3 operands (destination, type immediate, optional initializer)",
			Severity:     SeverityError,
			Location:     uint32(location),
			SectionIndex: sectionIndex,
		}}
	}
	if instr.Operands[1].Type.Extensions()&ExtImm == 0 {
		return []ErrorInfo{{
			Code:         ErrIncompatibleTypes,
			Message:      "VAR's 2nd operand must be an immediate type-word payload",
			Severity:     SeverityError,
			Location:     uint32(location),
			SectionIndex: sectionIndex,
		}}
	}
	return nil
}

func validateRelocations(o *Object) []ErrorInfo {
	var findings []ErrorInfo
	for i, r := range o.Relocations {
		_ = i
		if int(r.SymbolIndex) >= len(o.Symbols) {
			findings = append(findings, ErrorInfo{
				Code:         ErrRelocationBadSymbol,
				Message:      "relocation references invalid symbol index",
				Severity:     SeverityError,
				SymbolIndex:  r.SymbolIndex,
				SectionIndex: r.SectionIndex,
			})
		}

		if int(r.SectionIndex) >= len(o.Sections) {
			findings = append(findings, ErrorInfo{
				Code:         ErrRelocationBadSection,
				Message:      "relocation references invalid section index",
				Severity:     SeverityError,
				SymbolIndex:  r.SymbolIndex,
				SectionIndex: r.SectionIndex,
			})
		} else if sec := o.Sections[r.SectionIndex]; r.Offset >= sec.Size {
			findings = append(findings, ErrorInfo{
				Code:         ErrRelocationOutOfBounds,
				Message:      "relocation offset is outside section bounds",
				Severity:     SeverityError,
				Location:     r.Offset,
				SymbolIndex:  r.SymbolIndex,
				SectionIndex: r.SectionIndex,
			})
		}

		if !r.Type.Valid() {
			findings = append(findings, ErrorInfo{
				Code:         ErrRelocationBadType,
				Message:      "invalid relocation type",
				Severity:     SeverityError,
				SymbolIndex:  r.SymbolIndex,
				SectionIndex: r.SectionIndex,
			})
		}

		if !r.SizeValid() {
			findings = append(findings, ErrorInfo{
				Code:         ErrRelocationBadSize,
				Message:      "invalid relocation size",
				Severity:     SeverityError,
				SymbolIndex:  r.SymbolIndex,
				SectionIndex: r.SectionIndex,
			})
		}
	}
	return findings
}

// SuggestSymbolNames returns up to maxSuggestions symbol names in o close
// to name by edit distance, for a "did you mean" hint when FindSymbol
// fails to locate a reference.
func SuggestSymbolNames(o *Object, name string, maxSuggestions int) []string {
	candidates := make([]string, 0, len(o.Symbols))
	for _, s := range o.Symbols {
		if s.Name != "" {
			candidates = append(candidates, s.Name)
		}
	}
	return engine.SuggestSimilar(name, candidates, maxSuggestions)
}

// ValidateTypeCompatibility reports whether src is Compatible with dst,
// returning an ErrIncompatibleTypes finding if not.
func ValidateTypeCompatibility(src, dst Type) (bool, *ErrorInfo) {
	if !Compatible(src, dst) {
		return false, &ErrorInfo{
			Code:     ErrIncompatibleTypes,
			Message:  "incompatible types: " + src.Name() + " and " + dst.Name(),
			Severity: SeverityError,
		}
	}
	return true, nil
}

// ValidateMemoryAlignment reports whether address is aligned to t's
// natural size, returning an ErrMisalignedAccess finding if not.
func ValidateMemoryAlignment(address uint32, t Type) (bool, *ErrorInfo) {
	alignment := t.Size()
	if alignment == 0 {
		alignment = 1
	}
	if address%alignment != 0 {
		return false, &ErrorInfo{
			Code:     ErrMisalignedAccess,
			Message:  "misaligned memory access for type " + t.Name(),
			Severity: SeverityError,
			Location: address,
		}
	}
	return true, nil
}
