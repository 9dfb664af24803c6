// Package diagnostic provides structured notes, warnings, and violations
// collected while converting contact records.
//
// Key capabilities:
//   - Degradation notes (values routed to the extension namespace)
//   - Warnings for dropped alternate representations
//   - Localization and vocabulary violations
//
// Violations are accumulated and never short-circuit a conversion; callers
// decide whether to treat them as fatal.
package diagnostic
