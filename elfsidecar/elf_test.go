package elfsidecar

import (
	"testing"

	"github.com/xyproto/coil"
)

func TestWriteObjectReadSectionsRoundTrip(t *testing.T) {
	obj := coil.NewObject(coil.ObjectFile)
	obj.AddSection(coil.Section{Attributes: coil.SectionExecutable, Data: []byte{0xDE, 0xAD, 0xBE, 0xEF}})
	obj.AddSection(coil.Section{Attributes: coil.SectionWritable | coil.SectionInitialized, Data: []byte{1, 2, 3}})

	data := WriteObject(obj)
	if string(data[0:4]) != "\x7FELF" {
		t.Fatalf("magic = % X, want ELF magic", data[0:4])
	}

	sections, err := ReadSections(data)
	if err != nil {
		t.Fatalf("ReadSections: %v", err)
	}
	if len(sections) != 2 {
		t.Fatalf("len(sections) = %d, want 2", len(sections))
	}
	if string(sections[0]) != "\xDE\xAD\xBE\xEF" {
		t.Fatalf("sections[0] = % X, want DE AD BE EF", sections[0])
	}
	if string(sections[1]) != "\x01\x02\x03" {
		t.Fatalf("sections[1] = % X, want 01 02 03", sections[1])
	}
}

func TestWriteObjectEmptyObject(t *testing.T) {
	obj := coil.NewObject(coil.ObjectFile)
	data := WriteObject(obj)
	sections, err := ReadSections(data)
	if err != nil {
		t.Fatalf("ReadSections: %v", err)
	}
	if len(sections) != 0 {
		t.Fatalf("len(sections) = %d, want 0", len(sections))
	}
}

func TestReadSectionsRejectsBadMagic(t *testing.T) {
	if _, err := ReadSections([]byte("not an elf file at all, just junk bytes here")); err == nil {
		t.Fatal("ReadSections should reject a buffer without the ELF magic")
	}
}

func TestReadSectionsRejectsShortBuffer(t *testing.T) {
	if _, err := ReadSections([]byte{0x7F, 'E', 'L'}); err == nil {
		t.Fatal("ReadSections should reject a buffer shorter than an ELF64 header")
	}
}
