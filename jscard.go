// Package jscard converts contact records between vCard (RFC 6350, RFC 9554)
// and JSContact (RFC 9553, RFC 9555).
//
// Conversion is lossless in both directions: everything without a
// structured home is kept as an extension entry keyed by a namespaced path
// and is replayed when the card is written back to vCard.
package jscard

import (
	"context"
	"errors"
	"fmt"
	"io"

	"jscard/internal/config"
	"jscard/internal/convert"
	"jscard/internal/diagnostic"
	"jscard/internal/group"
	"jscard/internal/jscontact"
	"jscard/internal/localize"
	"jscard/internal/wire"
)

// Convert converts one vCard record and returns the card together with the
// diagnostics collected on the way.
func Convert(rec wire.Record, cfg config.Config) (convert.Result, error) {
	c, err := convert.New(cfg)
	if err != nil {
		return convert.Result{}, err
	}

	return c.ToCard(rec)
}

// ToStructured converts one vCard record to a card.
func ToStructured(rec wire.Record, cfg config.Config) (*jscontact.Card, error) {
	res, err := Convert(rec, cfg)
	if err != nil {
		return nil, err
	}

	return res.Card, nil
}

// BatchOption configures ToStructuredBatch.
type BatchOption func(*batchOptions)

type batchOptions struct {
	onResult func(convert.Result)
}

// WithResults calls fn for every converted record, in input order, before
// groups are resolved. Records that failed under TolerateRecordErrors are
// not passed.
func WithResults(fn func(convert.Result)) BatchOption {
	return func(o *batchOptions) {
		o.onResult = fn
	}
}

// ToStructuredBatch converts records in parallel and resolves groups across
// the batch. Cards that are members of a group only appear inside it.
//
// With TolerateRecordErrors a *convert.BatchError is returned together with
// the entries of the records that converted.
func ToStructuredBatch(ctx context.Context, recs []wire.Record, cfg config.Config, opts ...BatchOption) ([]group.Entry, error) {
	var o batchOptions
	for _, opt := range opts {
		opt(&o)
	}

	c, err := convert.New(cfg)
	if err != nil {
		return nil, err
	}

	results, err := c.ToCards(ctx, recs)

	var batchErr *convert.BatchError
	if err != nil && !errors.As(err, &batchErr) {
		return nil, err
	}

	cards := make([]*jscontact.Card, len(results))
	for i, res := range results {
		cards[i] = res.Card

		if o.onResult != nil {
			o.onResult(res)
		}
	}

	entries, rerr := group.Resolve(cards)
	if rerr != nil {
		return nil, fmt.Errorf("failed to resolve groups: %w", rerr)
	}

	if batchErr != nil {
		return entries, batchErr
	}

	return entries, nil
}

// ToWire converts a card back to a vCard record.
func ToWire(card *jscontact.Card, cfg config.Config) (wire.Record, error) {
	c, err := convert.New(cfg)
	if err != nil {
		return wire.Record{}, err
	}

	return c.ToRecord(card)
}

// ValidateLocalizations checks every localization patch of card against the
// shape of the node it replaces.
func ValidateLocalizations(card *jscontact.Card) []diagnostic.Diagnostic {
	return localize.Validate(card)
}

// DecodeVCF reads every vCard in r and converts it as one batch.
func DecodeVCF(ctx context.Context, r io.Reader, cfg config.Config) ([]group.Entry, error) {
	recs, err := wire.Decode(r)
	if err != nil {
		return nil, err
	}

	return ToStructuredBatch(ctx, recs, cfg)
}

// EncodeVCF writes cards as vCard to w.
func EncodeVCF(w io.Writer, cards []*jscontact.Card, cfg config.Config) error {
	c, err := convert.New(cfg)
	if err != nil {
		return err
	}

	recs := make([]wire.Record, 0, len(cards))

	for _, card := range cards {
		rec, err := c.ToRecord(card)
		if err != nil {
			return err
		}

		recs = append(recs, rec)
	}

	return wire.Encode(w, recs)
}
