package coil

import (
	"fmt"
	"strings"
)

// ErrorSeverity classifies the severity of a diagnostic.
type ErrorSeverity int

const (
	SeverityError ErrorSeverity = iota
	SeverityWarning
	SeverityNote
)

func (s ErrorSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityNote:
		return "note"
	default:
		return "unknown"
	}
}

// ErrorInfo is a single structured diagnostic finding.
type ErrorInfo struct {
	Code         uint32
	Location     uint32
	FileID       uint32
	Line         uint32
	Column       uint32
	SymbolIndex  uint16
	SectionIndex uint16
	Message      string
	Severity     ErrorSeverity
}

// Error implements the error interface so ErrorInfo can be returned directly
// from functions that fail with a single diagnostic.
func (e ErrorInfo) Error() string {
	return fmt.Sprintf("%s: %s (code=0x%08X)", e.Severity, e.Message, e.Code)
}

// NewErrorInfo builds an ErrorInfo for code, falling back to its standard
// message when msg is empty.
func NewErrorInfo(code uint32, msg string, severity ErrorSeverity) ErrorInfo {
	if msg == "" {
		msg = StandardMessage(code)
	}
	return ErrorInfo{Code: code, Message: msg, Severity: severity}
}

// Format renders e as a one-line, optionally colored diagnostic, in the same
// "severity: message --> location" register as a compiler front-end.
func (e ErrorInfo) Format(useColor bool) string {
	var sb strings.Builder
	if useColor {
		sb.WriteString(colorFor(e.Severity))
	}
	sb.WriteString(e.Severity.String())
	sb.WriteString(": ")
	if useColor {
		sb.WriteString("\033[0m")
	}
	sb.WriteString(e.Message)
	sb.WriteString(fmt.Sprintf(" [0x%08X]", e.Code))

	if e.SectionIndex != 0 || e.SymbolIndex != 0 || e.Location != 0 {
		sb.WriteString("\n  --> ")
		wrote := false
		if e.SectionIndex != 0 {
			sb.WriteString(fmt.Sprintf("section[%d]", e.SectionIndex))
			wrote = true
		}
		if e.SymbolIndex != 0 {
			if wrote {
				sb.WriteString(", ")
			}
			sb.WriteString(fmt.Sprintf("symbol[%d]", e.SymbolIndex))
			wrote = true
		}
		if e.Location != 0 {
			if wrote {
				sb.WriteString(", ")
			}
			sb.WriteString(fmt.Sprintf("offset 0x%X", e.Location))
		}
	}
	return sb.String()
}

func colorFor(s ErrorSeverity) string {
	switch s {
	case SeverityError:
		return "\033[1;31m"
	case SeverityWarning:
		return "\033[1;33m"
	case SeverityNote:
		return "\033[1;36m"
	default:
		return ""
	}
}

// ErrorCollector accumulates diagnostics during validation or construction,
// never short-circuiting on the first finding.
type ErrorCollector struct {
	findings  []ErrorInfo
	maxErrors int
}

// NewErrorCollector creates a collector that stops accepting new
// ERROR-severity findings once maxErrors have been recorded. maxErrors <= 0
// defaults to 10.
func NewErrorCollector(maxErrors int) *ErrorCollector {
	if maxErrors <= 0 {
		maxErrors = 10
	}
	return &ErrorCollector{maxErrors: maxErrors}
}

// Add appends a diagnostic of any severity. Once maxErrors ERROR-severity
// diagnostics are held, further ERROR-severity ones are dropped; warnings
// and notes are always kept.
func (ec *ErrorCollector) Add(e ErrorInfo) {
	if e.Severity == SeverityError && ec.ErrorCount() >= ec.maxErrors {
		return
	}
	ec.findings = append(ec.findings, e)
}

// AddError is a convenience wrapper for Add with SeverityError.
func (ec *ErrorCollector) AddError(code uint32, msg string) {
	ec.Add(NewErrorInfo(code, msg, SeverityError))
}

// AddWarning is a convenience wrapper for Add with SeverityWarning.
func (ec *ErrorCollector) AddWarning(code uint32, msg string) {
	ec.Add(NewErrorInfo(code, msg, SeverityWarning))
}

// HasErrors reports whether any ERROR-severity diagnostic was recorded.
func (ec *ErrorCollector) HasErrors() bool {
	for _, f := range ec.findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ErrorCount returns the number of ERROR-severity diagnostics.
func (ec *ErrorCollector) ErrorCount() int {
	n := 0
	for _, f := range ec.findings {
		if f.Severity == SeverityError {
			n++
		}
	}
	return n
}

// ShouldStop reports whether the ERROR-severity count has reached the
// configured maximum; callers performing iterative validation may use this
// to bail out early, though Validate itself never stops on the first error.
func (ec *ErrorCollector) ShouldStop() bool {
	return ec.ErrorCount() >= ec.maxErrors
}

// Findings returns all recorded diagnostics, in insertion order.
func (ec *ErrorCollector) Findings() []ErrorInfo {
	return ec.findings
}

// Report formats every recorded diagnostic followed by a one-line summary.
func (ec *ErrorCollector) Report(useColor bool) string {
	var sb strings.Builder
	for i, f := range ec.findings {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(f.Format(useColor))
		sb.WriteString("\n")
	}
	if len(ec.findings) > 0 {
		errs, warns := ec.ErrorCount(), len(ec.findings)-ec.ErrorCount()
		sb.WriteString(fmt.Sprintf("\n%d error(s), %d warning(s)/note(s) found\n", errs, warns))
	}
	return sb.String()
}

// Clear resets the collector to empty.
func (ec *ErrorCollector) Clear() {
	ec.findings = nil
}
