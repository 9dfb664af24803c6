package convert

import (
	"context"

	"golang.org/x/sync/errgroup"

	"jscard/internal/wire"
)

// ToCards converts records in parallel, bounded by the configured worker
// count, and returns the results in input order.
//
// By default the first structural error fails the batch. With
// TolerateRecordErrors the failed records are skipped and reported in a
// *BatchError returned alongside the remaining results.
func (c *Converter) ToCards(ctx context.Context, recs []wire.Record) ([]Result, error) {
	results := make([]Result, len(recs))
	errs := make([]error, len(recs))

	g, gctx := errgroup.WithContext(ctx)

	workers := c.cfg.Workers
	if workers <= 0 {
		workers = len(recs)
	}

	g.SetLimit(max(workers, 1))

	for i, rec := range recs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			res, err := c.ToCard(rec)
			if err == nil {
				results[i] = res
				return nil
			}

			if !c.cfg.TolerateRecordErrors {
				return err
			}

			log.Warnf("record #%d skipped: %v", i+1, err)
			errs[i] = err

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]Result, 0, len(recs))
	batchErr := &BatchError{}

	for i, res := range results {
		if errs[i] != nil {
			batchErr.Failed = append(batchErr.Failed, i)
			batchErr.Errs = append(batchErr.Errs, errs[i])

			continue
		}

		out = append(out, res)
	}

	if len(batchErr.Errs) > 0 {
		return out, batchErr
	}

	return out, nil
}
