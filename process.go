package fmstats

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Options configure a Process run. Zero values are replaced by defaults.
type Options struct {
	Threshold  decimal.Decimal // DefaultThreshold if zero
	Rates      Rates           // DefaultRates if empty
	Lenient    bool            // skip history entries in unknown currencies instead of failing
	DateParser DateParser      // FuzzyDates if nil, must be safe for concurrent use
	Logger     *zap.Logger     // no logs if nil
	Workers    int             // parsing goroutines, GOMAXPROCS if zero
}

func (o Options) withDefaults() Options {
	if o.Threshold.IsZero() {
		o.Threshold = DefaultThreshold
	}
	if len(o.Rates.Weights) == 0 {
		o.Rates = DefaultRates()
	}
	if o.DateParser == nil {
		o.DateParser = FuzzyDates
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	return o
}

// parsed is the outcome of parsing one row.
type parsed struct {
	manifest *Manifest
	err      error
}

// parseAll parses every record with up to 'workers' goroutines. Results keep the
// order of 'records'.
func parseAll(parser *Parser, records []RawRecord, workers int) []parsed {
	results := make([]parsed, len(records))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, raw := range records {
		g.Go(func() error {
			m, err := parser.Parse(raw)
			results[i] = parsed{manifest: m, err: err}
			return nil
		})
	}
	g.Wait()
	return results
}

// Process computes the statistics and the ranking of a ledger in a single pass.
//
// Rows are parsed concurrently, then folded in input order. Inactive rows and rows
// with malformed JSON are counted and skipped. Any other fault aborts the run: the
// returned error identifies the first faulty row.
func Process(records []RawRecord, opts Options) (*Report, error) {
	opts = opts.withDefaults()
	if err := opts.Rates.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rates: %w", err)
	}
	log := opts.Logger

	stats := NewStats(opts.Threshold, opts.Rates)
	var current string // row being processed, for skip logs
	stats.History().Lenient = opts.Lenient
	stats.History().OnSkip = func(h HistoryEntry, err error) {
		log.Warn("skipping history entry", zap.String("row", current), zap.Int("year", h.Year), zap.String("currency", h.Currency), zap.Error(err))
	}
	parser := &Parser{Dates: opts.DateParser}

	results := parseAll(parser, records, opts.Workers)

	manifests := make([]*Manifest, 0, len(records))
	for i, raw := range records {
		stats.Row()
		current = raw.ID
		m, err := results[i].manifest, results[i].err
		var malformed *MalformedJSONError
		switch {
		case errors.Is(err, ErrDisabled):
			stats.Disable()
			continue
		case errors.As(err, &malformed):
			log.Warn("malformed manifest JSON", zap.String("row", raw.ID), zap.Error(malformed.Err))
			stats.Fail(raw.ID, malformed.Err)
			continue
		case err != nil:
			return nil, err
		}

		if err := stats.Fold(m); err != nil {
			return nil, &RowError{RowID: raw.ID, Field: "funding.history", Err: err}
		}
		manifests = append(manifests, m)
	}
	stats.Freeze()

	log.Debug("ledger processed",
		zap.Int("rows", stats.Rows),
		zap.Int("processed", stats.Processed),
		zap.Int("disabled", stats.Disabled),
		zap.Int("errors", stats.Errors),
		zap.Int("meets_threshold", stats.MeetsThreshold),
	)

	return &Report{
		Reference: opts.Rates.Reference,
		Threshold: opts.Threshold,
		Rates:     opts.Rates,
		Stats:     stats,
		Ranking:   Assemble(manifests, stats.MeetsThreshold),
	}, nil
}
