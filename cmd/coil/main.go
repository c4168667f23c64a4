// Command coil inspects, validates, and creates COIL object files.
//
// Usage:
//
//	coil dump <file.coil>        print header, symbols, sections, relocations
//	coil validate <file.coil>    run structural validation and report findings
//	coil new <file.coil>         write an empty object
package main

import (
	"fmt"
	"os"

	"github.com/xyproto/coil"
)

const versionString = "coil version 0.1.0"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "coil:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg := coil.LoadConfig()

	if len(args) == 0 {
		return cmdHelp()
	}

	switch args[0] {
	case "dump":
		if len(args) < 2 {
			return fmt.Errorf("usage: coil dump <file.coil>")
		}
		return cmdDump(args[1])
	case "validate":
		if len(args) < 2 {
			return fmt.Errorf("usage: coil validate <file.coil>")
		}
		return cmdValidate(args[1], cfg)
	case "new":
		if len(args) < 2 {
			return fmt.Errorf("usage: coil new <file.coil>")
		}
		return cmdNew(args[1])
	case "help", "--help", "-h":
		return cmdHelp()
	case "version", "--version", "-V":
		fmt.Println(versionString)
		return nil
	default:
		return fmt.Errorf("unknown command: %s\n\nrun 'coil help' for usage information", args[0])
	}
}

func cmdHelp() error {
	fmt.Println(versionString)
	fmt.Println(`
Usage:
  coil dump <file.coil>        print header, symbols, sections, relocations
  coil validate <file.coil>    run structural validation and report findings
  coil new <file.coil>         write an empty object

Environment:
  COIL_WORD_SIZE    platform word size in bytes (default 4)
  COIL_VERBOSE      enable trace logging (default false)
  COIL_MAX_ERRORS   validation error cap (default 10)`)
	return nil
}

func cmdDump(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	obj, err := coil.DecodeObject(data)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}

	kind := "COIL object"
	if obj.Kind == coil.OutputObject {
		kind = "CILO output object"
	}
	fmt.Printf("%s: %d bytes\n", kind, len(data))
	fmt.Printf("symbols: %d\n", obj.SymbolCount())
	for i, s := range obj.Symbols {
		fmt.Printf("  [%d] %q attrs=0x%04x value=0x%x section=%d\n", i, s.Name, s.Attributes, s.Value, s.SectionIndex)
	}
	fmt.Printf("sections: %d\n", obj.SectionCount())
	for i, s := range obj.Sections {
		fmt.Printf("  [%d] attrs=0x%02x size=%d addr=0x%x align=%d\n", i, s.Attributes, s.Size, s.Address, s.Alignment)
	}
	fmt.Printf("relocations: %d\n", obj.RelocationCount())
	for i, r := range obj.Relocations {
		fmt.Printf("  [%d] offset=0x%x symbol=%d section=%d type=%d size=%d\n", i, r.Offset, r.SymbolIndex, r.SectionIndex, r.Type, r.Size)
	}
	return nil
}

func cmdValidate(path string, cfg coil.Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	obj, err := coil.DecodeObject(data)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}

	collector := coil.NewErrorCollector(cfg.MaxErrors)
	for _, f := range coil.Validate(obj) {
		collector.Add(f)
	}

	report := collector.Report(true)
	if report != "" {
		fmt.Print(report)
	}
	if collector.HasErrors() {
		os.Exit(1)
	}
	fmt.Println("ok")
	return nil
}

func cmdNew(path string) error {
	obj := coil.NewObject(coil.ObjectFile)
	return os.WriteFile(path, obj.Encode(), 0o644)
}
