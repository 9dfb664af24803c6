package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"jscard/internal/altid"
	"jscard/internal/pathcodec"
)

// DefaultNamespace prefixes extension paths for vCard properties.
const DefaultNamespace = "ietf.org/rfc6350"

// IdentifierProfile selects how entity map keys are generated.
type IdentifierProfile string

const (
	// ProfileCounter produces keys like "ADR-1", "TEL-2".
	ProfileCounter IdentifierProfile = "counter"
	// ProfilePropID uses the PROP-ID parameter when present.
	ProfilePropID IdentifierProfile = "propid"
	// ProfileUUID derives name-based UUIDs from the card uid.
	ProfileUUID IdentifierProfile = "uuid"
)

// IsValid returns true if the profile is a recognized value.
func (p IdentifierProfile) IsValid() bool {
	return p == ProfileCounter || p == ProfilePropID || p == ProfileUUID
}

// Config holds the conversion options.
type Config struct {
	// ExtensionNamespace prefixes every extension path.
	ExtensionNamespace string `yaml:"extensionNamespacePrefix,omitempty"`
	// IdentifierProfile selects the id generator.
	IdentifierProfile IdentifierProfile `yaml:"applyIdentifierProfile,omitempty"`
	// SynthesizeFullAddress joins address components into the full address
	// when no LABEL is given.
	SynthesizeFullAddress bool `yaml:"synthesizeFullAddress"`
	// TreatUnknownTypeAsError fails on unknown TYPE and KIND tokens instead
	// of keeping them as extensions.
	TreatUnknownTypeAsError bool `yaml:"treatUnknownTypeAsError"`
	// AltIDConflict decides what happens to ALTID members that cannot be
	// filed as overlays.
	AltIDConflict altid.ConflictPolicy `yaml:"altidConflict,omitempty"`
	// DefaultLanguage is preferred as primary when every member of an ALTID
	// group carries a language.
	DefaultLanguage string `yaml:"defaultLanguage,omitempty"`
	// Workers bounds batch parallelism. Zero means one per record.
	Workers int `yaml:"workers,omitempty"`
	// TolerateRecordErrors skips failed records in a batch instead of
	// failing it.
	TolerateRecordErrors bool `yaml:"tolerateRecordErrors"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		ExtensionNamespace:    DefaultNamespace,
		IdentifierProfile:     ProfileCounter,
		SynthesizeFullAddress: true,
		AltIDConflict:         altid.ConflictFirstWins,
	}
}

// LoadFile loads and parses a YAML configuration file from the given path.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data on top of the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	cfg.applyDefaults()

	return cfg, nil
}

// Marshal serializes the configuration to YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// applyDefaults fills in values left empty by an explicit YAML null or "".
func (c *Config) applyDefaults() {
	if c.ExtensionNamespace == "" {
		c.ExtensionNamespace = DefaultNamespace
	}

	if c.IdentifierProfile == "" {
		c.IdentifierProfile = ProfileCounter
	}

	if c.AltIDConflict == "" {
		c.AltIDConflict = altid.ConflictFirstWins
	}

	c.ExtensionNamespace = strings.TrimSuffix(c.ExtensionNamespace, pathcodec.Separator)
}

// Validate checks the configuration for unusable values.
func (c Config) Validate() error {
	var errs []error

	if !c.IdentifierProfile.IsValid() {
		errs = append(errs, fmt.Errorf("unknown identifier profile %q", c.IdentifierProfile))
	}

	if !c.AltIDConflict.IsValid() {
		errs = append(errs, fmt.Errorf("unknown altid conflict policy %q", c.AltIDConflict))
	}

	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}

	if err := pathcodec.Validate(c.ExtensionNamespace); err != nil {
		errs = append(errs, fmt.Errorf("invalid extension namespace: %w", err))
	}

	if c.DefaultLanguage != "" {
		if _, err := language.Parse(c.DefaultLanguage); err != nil {
			errs = append(errs, fmt.Errorf("invalid default language %q: %w", c.DefaultLanguage, err))
		}
	}

	return errors.Join(errs...)
}
