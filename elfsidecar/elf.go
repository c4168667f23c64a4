// Package elfsidecar writes a minimal ELF64 relocatable object file from a
// coil.Object's section table, and reads one back into raw section bytes.
// It is a collaborator, not a core component: the object model's
// correctness does not depend on it, and it implements only as much of the
// ELF64 format as is needed to make a COIL object's sections visible to a
// standard linker/objdump as an SHT_PROGBITS section each.
package elfsidecar

import (
	"encoding/binary"
	"fmt"

	"github.com/xyproto/coil"
)

const (
	elfHeaderSize        = 64 // ELF64 header size
	sectionHeaderEntSize = 64 // ELF64 section header entry size

	etRel     = 1 // object file type: relocatable
	emX86_64  = 62
	evCurrent = 1

	shtNull     = 0
	shtProgbits = 1
	shtStrtab   = 3

	shfWrite     = 0x1
	shfAlloc     = 0x2
	shfExecinstr = 0x4
)

// WriteObject encodes o's sections as a minimal ELF64 relocatable object:
// a null section, one SHT_PROGBITS section per coil.Section carrying its
// data verbatim, and a trailing SHT_STRTAB holding the section names
// (".coil0", ".coil1", ... since coil.Section does not itself own a
// string table — see DESIGN.md's Open Question decision on symbol/section
// naming).
func WriteObject(o *coil.Object) []byte {
	names := make([]string, len(o.Sections))
	for i := range o.Sections {
		names[i] = fmt.Sprintf(".coil%d", i)
	}

	strtab := buildStringTable(names)

	shnum := uint16(len(o.Sections) + 2) // null + sections + strtab
	shstrndx := uint16(len(o.Sections) + 1)

	var sectionData [][]byte
	var sectionOffsets []uint64
	cursor := uint64(elfHeaderSize)
	for _, sec := range o.Sections {
		sectionOffsets = append(sectionOffsets, cursor)
		sectionData = append(sectionData, sec.Data)
		cursor += uint64(len(sec.Data))
	}
	strtabOffset := cursor
	cursor += uint64(len(strtab))

	shoff := alignUp(cursor, 8)

	buf := make([]byte, shoff+uint64(shnum)*sectionHeaderEntSize)

	writeIdent(buf)
	binary.LittleEndian.PutUint16(buf[16:18], etRel)
	binary.LittleEndian.PutUint16(buf[18:20], emX86_64)
	binary.LittleEndian.PutUint32(buf[20:24], evCurrent)
	// e_entry, e_phoff are zero for a relocatable object.
	binary.LittleEndian.PutUint64(buf[40:48], shoff)
	binary.LittleEndian.PutUint16(buf[52:54], elfHeaderSize)
	// e_phentsize/e_phnum are zero; no program headers in a .o file.
	binary.LittleEndian.PutUint16(buf[58:60], sectionHeaderEntSize)
	binary.LittleEndian.PutUint16(buf[60:62], shnum)
	binary.LittleEndian.PutUint16(buf[62:64], shstrndx)

	for i := range o.Sections {
		copy(buf[sectionOffsets[i]:], sectionData[i])
	}
	copy(buf[strtabOffset:], strtab)

	nameOff := uint32(1) // strtab[0] is the empty name
	sh := shoff
	writeSectionHeader(buf[sh:sh+sectionHeaderEntSize], 0, shtNull, 0, 0, 0)
	sh += sectionHeaderEntSize

	for i, sec := range o.Sections {
		flags := uint64(0)
		if sec.Attributes&coil.SectionWritable != 0 {
			flags |= shfWrite
		}
		if sec.Attributes&coil.SectionExecutable != 0 {
			flags |= shfExecinstr
		}
		if sec.Attributes&coil.SectionInitialized != 0 {
			flags |= shfAlloc
		}
		writeSectionHeader(buf[sh:sh+sectionHeaderEntSize], nameOff, shtProgbits, flags, sectionOffsets[i], uint64(len(sec.Data)))
		nameOff += uint32(len(names[i])) + 1
		sh += sectionHeaderEntSize
	}

	writeSectionHeader(buf[sh:sh+sectionHeaderEntSize], nameOff, shtStrtab, 0, strtabOffset, uint64(len(strtab)))

	return buf
}

func writeIdent(buf []byte) {
	copy(buf[0:4], []byte{0x7F, 'E', 'L', 'F'})
	buf[4] = 2 // ELFCLASS64
	buf[5] = 1 // ELFDATA2LSB
	buf[6] = 1 // EI_VERSION
	buf[7] = 0 // ELFOSABI_SYSV
}

func writeSectionHeader(b []byte, nameOff uint32, shType uint32, flags, offset, size uint64) {
	binary.LittleEndian.PutUint32(b[0:4], nameOff)
	binary.LittleEndian.PutUint32(b[4:8], shType)
	binary.LittleEndian.PutUint64(b[8:16], flags)
	// sh_addr left at zero: relocatable object, not yet placed.
	binary.LittleEndian.PutUint64(b[24:32], offset)
	binary.LittleEndian.PutUint64(b[32:40], size)
}

func buildStringTable(names []string) []byte {
	out := []byte{0}
	for _, n := range names {
		out = append(out, []byte(n)...)
		out = append(out, 0)
	}
	return out
}

func alignUp(v uint64, align uint64) uint64 {
	return (v + align - 1) &^ (align - 1)
}

// ReadSections parses an ELF64 object written by WriteObject (or one with
// an equivalent SHT_PROGBITS-per-section layout) back into raw section
// byte slices, in section header order, skipping the null and strtab
// entries.
func ReadSections(data []byte) ([][]byte, error) {
	if len(data) < elfHeaderSize {
		return nil, fmt.Errorf("elfsidecar: file too short for an ELF64 header")
	}
	if data[0] != 0x7F || data[1] != 'E' || data[2] != 'L' || data[3] != 'F' {
		return nil, fmt.Errorf("elfsidecar: bad ELF magic")
	}
	shoff := binary.LittleEndian.Uint64(data[40:48])
	shnum := binary.LittleEndian.Uint16(data[60:62])

	var sections [][]byte
	for i := uint16(0); i < shnum; i++ {
		off := shoff + uint64(i)*sectionHeaderEntSize
		if off+sectionHeaderEntSize > uint64(len(data)) {
			return nil, fmt.Errorf("elfsidecar: section header %d out of range", i)
		}
		h := data[off : off+sectionHeaderEntSize]
		shType := binary.LittleEndian.Uint32(h[4:8])
		if shType != shtProgbits {
			continue
		}
		secOffset := binary.LittleEndian.Uint64(h[24:32])
		secSize := binary.LittleEndian.Uint64(h[32:40])
		if secOffset+secSize > uint64(len(data)) {
			return nil, fmt.Errorf("elfsidecar: section %d data out of range", i)
		}
		sections = append(sections, append([]byte(nil), data[secOffset:secOffset+secSize]...))
	}
	return sections, nil
}
