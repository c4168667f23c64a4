package main

import (
	"path/filepath"
	"testing"
)

func TestRunNewThenDump(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.coil")
	if err := run([]string{"new", path}); err != nil {
		t.Fatalf("run(new): %v", err)
	}
	if err := run([]string{"dump", path}); err != nil {
		t.Fatalf("run(dump): %v", err)
	}
}

func TestRunValidateOnFreshObject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.coil")
	if err := run([]string{"new", path}); err != nil {
		t.Fatalf("run(new): %v", err)
	}
	if err := run([]string{"validate", path}); err != nil {
		t.Fatalf("run(validate) on a freshly created object should report no errors: %v", err)
	}
}

func TestRunUnknownCommand(t *testing.T) {
	if err := run([]string{"frobnicate"}); err == nil {
		t.Fatal("run with an unknown command should return an error")
	}
}

func TestRunMissingArgument(t *testing.T) {
	if err := run([]string{"dump"}); err == nil {
		t.Fatal("run(dump) with no path should return a usage error")
	}
}

func TestRunHelp(t *testing.T) {
	if err := run([]string{"help"}); err != nil {
		t.Fatalf("run(help): %v", err)
	}
	if err := run(nil); err != nil {
		t.Fatalf("run() with no args should behave like help: %v", err)
	}
}

func TestRunDumpRejectsMissingFile(t *testing.T) {
	if err := run([]string{"dump", filepath.Join(t.TempDir(), "nonexistent.coil")}); err == nil {
		t.Fatal("run(dump) on a nonexistent file should return an error")
	}
}
