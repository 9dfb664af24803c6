package convert

import (
	"fmt"

	logging "github.com/ipfs/go-log/v2"

	"jscard/internal/config"
	"jscard/internal/diagnostic"
	"jscard/internal/jscontact"
	"jscard/internal/localize"
	"jscard/internal/pathcodec"
	"jscard/internal/wire"
)

var log = logging.Logger("jscard/convert")

// FieldValidator checks scalar formats of a finished card (URIs, language
// tags, numeric ranges) that the mappers do not validate themselves.
type FieldValidator interface {
	Validate(v any) []diagnostic.Diagnostic
}

// Option configures a Converter.
type Option func(*Converter)

// WithFieldValidator runs v on every converted card.
func WithFieldValidator(v FieldValidator) Option {
	return func(c *Converter) {
		c.validator = v
	}
}

// Converter converts between vCard records and JSContact cards. It holds no
// mutable state and is safe for concurrent use.
type Converter struct {
	cfg       config.Config
	codec     pathcodec.Codec
	validator FieldValidator
}

// Result is a converted card with the diagnostics collected on the way.
type Result struct {
	Card        *jscontact.Card
	Diagnostics diagnostic.Diagnostics
}

// New returns a Converter for a validated configuration.
func New(cfg config.Config, opts ...Option) (*Converter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	c := &Converter{
		cfg:   cfg,
		codec: pathcodec.New(cfg.ExtensionNamespace),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Config returns the configuration the converter was built with.
func (c *Converter) Config() config.Config {
	return c.cfg
}

// Codec returns the extension path codec.
func (c *Converter) Codec() pathcodec.Codec {
	return c.codec
}

// ToCard converts one vCard record. Structural problems are returned as a
// *ConversionError; localization violations and degradations are reported
// in the result diagnostics.
func (c *Converter) ToCard(rec wire.Record) (Result, error) {
	buckets, _ := rec.ByName()

	uid := recordUID(rec)
	if p, ok := rec.First("UID"); ok && p.Text() != "" {
		uid = p.Text()
	}

	card := jscontact.NewCard(uid)
	s := &state{
		cfg:    c.cfg,
		codec:  c.codec,
		card:   card,
		ids:    newIDGenerator(c.cfg.IdentifierProfile, uid),
		ext:    pathcodec.ExtensionMap{},
		counts: make(map[string]int, len(buckets)),
	}

	if s.cfg.DefaultLanguage != "" {
		s.cfg.DefaultLanguage = s.canonicalLanguage(s.cfg.DefaultLanguage, "")
	}

	if _, ok := buckets["FN"]; !ok {
		return Result{}, &ConversionError{Record: uid, Property: "FN", Err: ErrMissingProperty}
	}

	byCategory := make([]map[string][]indexed, numCategories)

	for name, props := range buckets {
		s.counts[name] = len(props)

		cat := CategoryOf(name)
		if byCategory[cat] == nil {
			byCategory[cat] = make(map[string][]indexed)
		}

		byCategory[cat][name] = props
	}

	for cat, props := range byCategory {
		if props == nil {
			continue
		}

		if err := mappers[cat](s, props); err != nil {
			return Result{}, err
		}

		log.Debugf("record %s: mapped %s (%d property names)", uid, Category(cat), len(props))
	}

	for _, path := range s.ext.Keys() {
		card.SetExtension(path, s.ext[path])
	}

	if len(s.sources) > 0 {
		card.SetExtension(SourcesKey, s.sources)
	}

	res := Result{Card: card, Diagnostics: s.diags}

	for _, v := range localize.Validate(card) {
		res.Diagnostics.Add(v)
	}

	if c.validator != nil {
		for _, v := range c.validator.Validate(card) {
			res.Diagnostics.Add(v)
		}
	}

	return res, nil
}
