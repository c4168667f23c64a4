package coil

import "testing"

func TestMakeErrorCodeRoundTrip(t *testing.T) {
	code := MakeErrorCode(CategoryValidation, LinkingRelocation, 0x0003)
	if ErrorCategoryOf(code) != CategoryValidation {
		t.Fatalf("ErrorCategoryOf = 0x%02X, want 0x%02X", ErrorCategoryOf(code), CategoryValidation)
	}
	if ErrorSubcategoryOf(code) != LinkingRelocation {
		t.Fatalf("ErrorSubcategoryOf = 0x%02X, want 0x%02X", ErrorSubcategoryOf(code), LinkingRelocation)
	}
	if SpecificError(code) != 0x0003 {
		t.Fatalf("SpecificError = 0x%04X, want 0x0003", SpecificError(code))
	}
	if code != ErrRelocationOutOfBounds {
		t.Fatalf("code = 0x%08X, want ErrRelocationOutOfBounds (0x%08X)", code, ErrRelocationOutOfBounds)
	}
}

func TestStandardMessageKnownCode(t *testing.T) {
	msg := StandardMessage(ErrDuplicateSymbolName)
	if msg != "duplicate symbol name" {
		t.Fatalf("StandardMessage(ErrDuplicateSymbolName) = %q", msg)
	}
}

func TestStandardMessageUnknownCodeFallsBack(t *testing.T) {
	unknown := MakeErrorCode(CategoryCompilation, CompilationSyntax, 0xBEEF)
	if msg := StandardMessage(unknown); msg != "unclassified error" {
		t.Fatalf("StandardMessage(unknown) = %q, want fallback", msg)
	}
}
