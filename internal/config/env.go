package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"jscard/internal/altid"
)

// Environment variables read by ApplyEnv.
const (
	EnvNamespace       = "JSCARD_NAMESPACE"
	EnvIDProfile       = "JSCARD_ID_PROFILE"
	EnvSynthesize      = "JSCARD_SYNTHESIZE_FULL_ADDRESS"
	EnvUnknownAsError  = "JSCARD_UNKNOWN_TYPE_AS_ERROR"
	EnvAltIDConflict   = "JSCARD_ALTID_CONFLICT"
	EnvDefaultLanguage = "JSCARD_DEFAULT_LANGUAGE"
	EnvWorkers         = "JSCARD_WORKERS"
	EnvTolerate        = "JSCARD_TOLERATE_RECORD_ERRORS"
)

// LoadDotEnv loads the given .env files into the process environment.
// Missing files are ignored; variables already set are kept.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		err := godotenv.Load(f)
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			continue
		}

		return fmt.Errorf("failed to load %s: %w", f, err)
	}

	return nil
}

// ApplyEnv overrides fields from JSCARD_* environment variables.
func (c *Config) ApplyEnv() error {
	if v, ok := lookup(EnvNamespace); ok {
		c.ExtensionNamespace = v
	}

	if v, ok := lookup(EnvIDProfile); ok {
		c.IdentifierProfile = IdentifierProfile(strings.ToLower(v))
	}

	if v, ok := lookup(EnvAltIDConflict); ok {
		c.AltIDConflict = altid.ConflictPolicy(strings.ToLower(v))
	}

	if v, ok := lookup(EnvDefaultLanguage); ok {
		c.DefaultLanguage = v
	}

	var errs []error

	for name, dst := range map[string]*bool{
		EnvSynthesize:     &c.SynthesizeFullAddress,
		EnvUnknownAsError: &c.TreatUnknownTypeAsError,
		EnvTolerate:       &c.TolerateRecordErrors,
	} {
		v, ok := lookup(name)
		if !ok {
			continue
		}

		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}

		*dst = b
	}

	if v, ok := lookup(EnvWorkers); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvWorkers, err))
		} else {
			c.Workers = n
		}
	}

	c.applyDefaults()

	return errors.Join(errs...)
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return "", false
	}

	v = strings.TrimSpace(v)

	return v, v != ""
}
