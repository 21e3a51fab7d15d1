// Package scrub narrows the raw energy dataframe down to the rows and columns
// the analysis needs. Every function returns a new frame; frame errors are
// surfaced as Go errors.
package scrub

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"energy_consumption/internal/ingest"
	"energy_consumption/internal/model"
)

// ForCountry keeps rows whose COUNTRY matches exactly.
func ForCountry(df dataframe.DataFrame, country string) (dataframe.DataFrame, error) {
	out := df.Filter(dataframe.F{
		Colname:    ingest.ColCountry,
		Comparator: series.Eq,
		Comparando: country,
	})
	if out.Err != nil {
		return out, fmt.Errorf("filtering country %q: %w", country, out.Err)
	}
	return out, nil
}

// YearRange keeps rows with from <= YEAR <= to. Rows without a year drop out.
func YearRange(df dataframe.DataFrame, from, to int) (dataframe.DataFrame, error) {
	out := df.FilterAggregation(dataframe.And,
		dataframe.F{Colname: ingest.ColYear, Comparator: series.GreaterEq, Comparando: from},
		dataframe.F{Colname: ingest.ColYear, Comparator: series.LessEq, Comparando: to},
	)
	if out.Err != nil {
		return out, fmt.Errorf("filtering years %d-%d: %w", from, to, out.Err)
	}
	return out, nil
}

// DropColumns removes the named columns. Names the frame does not carry are ignored.
func DropColumns(df dataframe.DataFrame, names ...string) (dataframe.DataFrame, error) {
	present := make(map[string]bool)
	for _, n := range df.Names() {
		present[n] = true
	}
	var drop []string
	for _, n := range names {
		if present[n] {
			drop = append(drop, n)
		}
	}
	if len(drop) == 0 {
		return df, nil
	}

	out := df.Drop(drop)
	if out.Err != nil {
		return out, fmt.Errorf("dropping columns %v: %w", drop, out.Err)
	}
	return out, nil
}

// ExcludeProducts removes rows whose PRODUCT is one of products.
func ExcludeProducts(df dataframe.DataFrame, products []string) (dataframe.DataFrame, error) {
	if len(products) == 0 {
		return df, nil
	}
	excluded := make(map[string]bool, len(products))
	for _, p := range products {
		excluded[p] = true
	}

	out := df.Filter(dataframe.F{
		Colname:    ingest.ColProduct,
		Comparator: series.CompFunc,
		Comparando: func(el series.Element) bool {
			return !excluded[el.String()]
		},
	})
	if out.Err != nil {
		return out, fmt.Errorf("excluding products: %w", out.Err)
	}
	return out, nil
}

// Apply runs the full scrub for a scope: country, then years, then unused
// columns, then excluded products. It stops early once no rows remain.
func Apply(df dataframe.DataFrame, scope model.Scope) (dataframe.DataFrame, error) {
	df, err := ForCountry(df, scope.Country)
	if err != nil || df.Nrow() == 0 {
		return df, err
	}
	df, err = YearRange(df, scope.StartYear, scope.EndYear)
	if err != nil || df.Nrow() == 0 {
		return df, err
	}
	df, err = DropColumns(df, model.DroppedColumns...)
	if err != nil {
		return df, err
	}
	return ExcludeProducts(df, model.ExcludedProducts)
}
