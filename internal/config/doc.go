// Package config defines the conversion options and loads them from YAML
// files and JSCARD_* environment variables.
//
// Example configuration:
//
//	extensionNamespacePrefix: ietf.org/rfc6350
//	applyIdentifierProfile: propid
//	synthesizeFullAddress: true
//	treatUnknownTypeAsError: false
//	altidConflict: first-wins
//	defaultLanguage: en
//	workers: 4
//	tolerateRecordErrors: false
package config
