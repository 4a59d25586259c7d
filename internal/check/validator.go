// Package check validates a parsed Document against the TLDR compliance
// rules. Validation is a pure function: issues are accumulated across the
// whole command set and never short-circuit.
package check

import (
	"fmt"

	"github.com/aidanlsb/tldrgen/internal/tldr"
)

// IssueLevel distinguishes compliance-breaking errors from advisory
// warnings.
type IssueLevel int

const (
	LevelError IssueLevel = iota
	LevelWarning
)

func (l IssueLevel) String() string {
	if l == LevelWarning {
		return "warning"
	}
	return "error"
}

// Issue is one validation finding. Command is empty for document-level
// issues.
type Issue struct {
	Level   IssueLevel `json:"level"`
	Command string     `json:"command,omitempty"`
	Message string     `json:"message"`
}

// Report is the accumulated result of validating one Document.
type Report struct {
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

// Compliant reports whether the Document passed: zero errors. Unreachable
// fan-out commands are already surfaced as errors, so this also covers the
// "every declared command reachable" rule for the ASCII format.
func (r *Report) Compliant() bool {
	return len(r.Errors) == 0
}

func (r *Report) addError(command, format string, args ...any) {
	r.Errors = append(r.Errors, Issue{Level: LevelError, Command: command, Message: fmt.Sprintf(format, args...)})
}

func (r *Report) addWarning(command, format string, args ...any) {
	r.Warnings = append(r.Warnings, Issue{Level: LevelWarning, Command: command, Message: fmt.Sprintf(format, args...)})
}

// Validate checks doc against the compliance rules of its format version and
// returns every error and warning found. The Document is not mutated.
func Validate(doc *tldr.Document) *Report {
	report := &Report{}

	if doc.ToolName == "" {
		report.addError("", "missing tool name")
	}
	if doc.Version == "" {
		report.addError("", "missing version")
	}
	if len(doc.Commands) == 0 {
		report.addError("", "no commands declared")
	}
	if doc.Format == tldr.FormatNDJSON && len(doc.Keymap) == 0 {
		report.addError("", "missing or empty keymap")
	}

	for _, command := range doc.Unreachable {
		report.addError(command, "command is not accessible")
	}

	seen := make(map[string]bool, len(doc.Commands))
	for _, rec := range doc.Commands {
		validateCommand(doc.Format, rec, report)

		if rec.Name == "" {
			continue
		}
		if seen[rec.Name] {
			report.addWarning(rec.Name, "duplicate command name %q", rec.Name)
		}
		seen[rec.Name] = true
	}

	return report
}

func validateCommand(format tldr.Format, rec *tldr.CommandRecord, report *Report) {
	name := rec.Name
	if name == "" {
		name = rec.FetchedAs
	}

	if rec.Name == "" {
		report.addError(name, "missing CMD field")
	}

	// The NDJSON spec lists cmd and p as the only hard-required fields; the
	// ASCII contract requires PURPOSE outright.
	if rec.Purpose == "" {
		if format == tldr.FormatNDJSON {
			report.addWarning(name, "missing purpose")
		} else {
			report.addError(name, "missing PURPOSE field")
		}
	}

	if rec.FetchedAs != "" && rec.Name != "" && rec.Name != rec.FetchedAs {
		report.addWarning(name, "CMD field mismatch: expected %q, got %q", rec.FetchedAs, rec.Name)
	}

	if len(rec.Examples) == 0 {
		report.addWarning(name, "no examples provided")
	}

	for _, entry := range rec.DroppedFlags {
		report.addWarning(name, "malformed flag entry dropped: %q", entry)
	}
}
