package diagnostic

import (
	"strings"

	"jscard/internal/common"
)

// Severity ranks a diagnostic. Infos note degradations, warnings note data
// that left the structured form, errors are violations.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// Diagnostic is one note about a contact record.
type Diagnostic struct {
	Severity Severity
	Code     string
	Message  string
	// Record is the uid of the card.
	Record string
	// FieldPath is an extension path ("ietf.org/rfc6350/TEL/1/TYPE") or a
	// card path ("localizations/de/name/full").
	FieldPath string
}

// String renders "uid path: message (code)", leaving out what is empty.
func (d Diagnostic) String() string {
	var b strings.Builder

	where := strings.TrimSpace(d.Record + " " + d.FieldPath)
	if where != "" {
		b.WriteString(where)
		b.WriteString(": ")
	}

	b.WriteString(d.Message)

	if d.Code != "" {
		b.WriteString(" (")
		b.WriteString(d.Code)
		b.WriteByte(')')
	}

	return b.String()
}

// Violation builds an error-severity diagnostic.
func Violation(code, message, record, fieldPath string) Diagnostic {
	return Diagnostic{Severity: SeverityError, Code: code, Message: message, Record: record, FieldPath: fieldPath}
}

// Diagnostics collects the diagnostics of one conversion by severity.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

func (d *Diagnostics) AddError(code, message, record, fieldPath string) {
	d.Add(Violation(code, message, record, fieldPath))
}

func (d *Diagnostics) AddWarning(code, message, record, fieldPath string) {
	d.Add(Diagnostic{Severity: SeverityWarning, Code: code, Message: message, Record: record, FieldPath: fieldPath})
}

func (d *Diagnostics) AddInfo(code, message, record, fieldPath string) {
	d.Add(Diagnostic{Severity: SeverityInfo, Code: code, Message: message, Record: record, FieldPath: fieldPath})
}

// Add files diag under its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Severity {
	case SeverityError:
		d.Errors = append(d.Errors, diag)
	case SeverityWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// All returns errors, then warnings, then infos.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)

	return append(all, d.Infos...)
}
