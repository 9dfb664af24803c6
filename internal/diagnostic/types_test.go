package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics_All(t *testing.T) {
	var d Diagnostics

	d.AddInfo("unmapped_parameter", "parameter X-FOO kept as extension", "urn:uuid:1", "ietf.org/rfc6350/TEL/1/X-FOO")
	d.AddWarning("altid_member_dropped", "ALTID \"1\" member without a distinct language", "urn:uuid:1", "ietf.org/rfc6350/FN/2")
	d.AddError("shape_mismatch", "array vs scalar", "urn:uuid:1", "localizations/de/name/full")

	all := d.All()
	require.Len(t, all, 3)
	assert.Equal(t, SeverityError, all[0].Severity)
	assert.Equal(t, SeverityWarning, all[1].Severity)
	assert.Equal(t, SeverityInfo, all[2].Severity)
}

func TestDiagnostics_AddBySeverity(t *testing.T) {
	var d Diagnostics

	d.Add(Violation("dup", "duplicate", "", ""))
	d.Add(Diagnostic{Severity: SeverityWarning, Message: "w"})
	d.Add(Diagnostic{Message: "i"})

	assert.Len(t, d.Errors, 1)
	assert.Len(t, d.Warnings, 1)
	assert.Len(t, d.Infos, 1)
}

func TestDiagnostic_String(t *testing.T) {
	tests := []struct {
		name string
		in   Diagnostic
		want string
	}{
		{
			name: "record and path",
			in:   Violation("shape_mismatch", "array vs scalar", "urn:uuid:1", "localizations/de/name/full"),
			want: "urn:uuid:1 localizations/de/name/full: array vs scalar (shape_mismatch)",
		},
		{
			name: "record only",
			in:   Diagnostic{Code: "kind_reclassified", Message: "group without members", Record: "urn:uuid:g"},
			want: "urn:uuid:g: group without members (kind_reclassified)",
		},
		{
			name: "path only",
			in:   Diagnostic{Message: "kept", FieldPath: "ietf.org/rfc6350/X-FOO/1"},
			want: "ietf.org/rfc6350/X-FOO/1: kept",
		},
		{
			name: "bare",
			in:   Diagnostic{Message: "duplicate"},
			want: "duplicate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.String())
		})
	}
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "info", SeverityInfo.String())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "unknown", Severity(42).String())
}
