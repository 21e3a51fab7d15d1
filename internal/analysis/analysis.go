// Package analysis wires ingest, scrub and aggregate into the monthly
// consumption series the chart and exports are built from.
package analysis

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"energy_consumption/internal/aggregate"
	"energy_consumption/internal/ingest"
	"energy_consumption/internal/model"
	"energy_consumption/internal/scrub"
	"energy_consumption/internal/store"
)

// ErrNoData is returned when nothing is left to chart after filtering.
var ErrNoData = errors.New("no data for scope")

// Stats counts rows surviving each stage.
type Stats struct {
	Loaded        int
	Scrubbed      int
	Records       int
	Uncategorized int
	Points        int
	Incomplete    int
}

// Result holds the monthly series, indexed in Store, and its yearly totals.
type Result struct {
	Scope  model.Scope
	Store  *store.Store
	Totals []aggregate.YearTotal
	Stats  Stats
}

// Run loads the CSV from r with parser and reduces it to the monthly series for scope.
func Run(parser ingest.Parser, r io.Reader, scope model.Scope, logger *zap.Logger) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var stats Stats

	df, err := parser.Load(r)
	if err != nil {
		return nil, fmt.Errorf("loading energy data: %w", err)
	}
	stats.Loaded = df.Nrow()
	logger.Debug("Loaded rows", zap.Int("rows", stats.Loaded), zap.Strings("columns", df.Names()))

	df, err = scrub.Apply(df, scope)
	if err != nil {
		return nil, fmt.Errorf("scrubbing energy data: %w", err)
	}
	stats.Scrubbed = df.Nrow()
	logger.Debug("Scrubbed rows",
		zap.String("country", scope.Country),
		zap.Int("from", scope.StartYear),
		zap.Int("to", scope.EndYear),
		zap.Int("rows", stats.Scrubbed))

	records := ingest.Records(df)
	stats.Records = len(records)

	tagged, dropped := aggregate.Categorize(records)
	stats.Uncategorized = dropped
	if dropped > 0 {
		logger.Debug("Dropped uncategorised products", zap.Int("rows", dropped))
	}

	points := aggregate.Monthly(tagged)
	aggregate.CumulativeYearToDate(points)
	before := len(points)
	points = aggregate.DropIncomplete(points)
	stats.Incomplete = before - len(points)
	stats.Points = len(points)

	if len(points) == 0 {
		return nil, fmt.Errorf("%s %d-%d: %w", scope.Country, scope.StartYear, scope.EndYear, ErrNoData)
	}

	s := store.New()
	s.AddPoints(points)

	for _, c := range s.Categories() {
		tr, _ := s.TimeRange(c)
		logger.Debug("Category series",
			zap.String("category", string(c)),
			zap.Int("points", s.PointCount(c)),
			zap.Time("from", tr.Start),
			zap.Time("to", tr.End))
	}

	span, _ := s.GlobalTimeRange()
	logger.Info("Monthly series ready",
		zap.Int("points", stats.Points),
		zap.Int("incomplete", stats.Incomplete),
		zap.Int("categories", len(s.Categories())),
		zap.Time("from", span.Start),
		zap.Time("to", span.End))

	return &Result{
		Scope:  scope,
		Store:  s,
		Totals: aggregate.YearlyTotals(points),
		Stats:  stats,
	}, nil
}
