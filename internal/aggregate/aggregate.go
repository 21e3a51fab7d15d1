// Package aggregate turns scrubbed energy records into a monthly series per
// category: product → category mapping, group-by with sum/last/sum rules,
// and a year-to-date running sum.
package aggregate

import (
	"math"
	"sort"

	"energy_consumption/internal/model"
)

// Categorize assigns each record its aggregate category. Records whose
// product has no category are dropped; dropped reports how many.
func Categorize(records []model.Record) (tagged []model.TaggedRecord, dropped int) {
	tagged = make([]model.TaggedRecord, 0, len(records))
	for _, r := range records {
		c, ok := model.CategoryFor(r.Product)
		if !ok {
			dropped++
			continue
		}
		tagged = append(tagged, model.TaggedRecord{Record: r, Category: c})
	}
	return tagged, dropped
}

type groupKey struct {
	year      int
	month     int
	monthName string
	category  model.Category
}

// Monthly groups tagged records by (year, month, month name, category).
// VALUE and previousYearToDate are summed, yearToDate keeps the last value
// seen in input order. NaN inputs are skipped; a group with no yearToDate
// value keeps NaN. The result is sorted by the group key.
func Monthly(tagged []model.TaggedRecord) []model.MonthlyPoint {
	type accum struct {
		value   float64
		ytd     float64
		prevYTD float64
	}
	groups := make(map[groupKey]*accum)

	for _, r := range tagged {
		k := groupKey{r.Year, r.Month, r.MonthName, r.Category}
		a, ok := groups[k]
		if !ok {
			a = &accum{ytd: math.NaN()}
			groups[k] = a
		}
		a.value = addSkipNaN(a.value, r.Value)
		a.prevYTD = addSkipNaN(a.prevYTD, r.PreviousYearToDate)
		if !math.IsNaN(r.YearToDate) {
			a.ytd = r.YearToDate
		}
	}

	points := make([]model.MonthlyPoint, 0, len(groups))
	for k, a := range groups {
		points = append(points, model.MonthlyPoint{
			Year:               k.year,
			Month:              k.month,
			MonthName:          k.monthName,
			Category:           k.category,
			Value:              a.value,
			YearToDate:         a.ytd,
			PreviousYearToDate: a.prevYTD,
		})
	}
	SortPoints(points)
	return points
}

// SortPoints orders points by year, month, month name, then category.
func SortPoints(points []model.MonthlyPoint) {
	sort.Slice(points, func(i, j int) bool {
		a, b := points[i], points[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Month != b.Month {
			return a.Month < b.Month
		}
		if a.MonthName != b.MonthName {
			return a.MonthName < b.MonthName
		}
		return a.Category < b.Category
	})
}

// CumulativeYearToDate overwrites YearToDate with the running sum of Value
// within each (year, category), following the order of points. Points must
// already be sorted with SortPoints.
func CumulativeYearToDate(points []model.MonthlyPoint) {
	type yearKey struct {
		year     int
		category model.Category
	}
	running := make(map[yearKey]float64)
	for i := range points {
		k := yearKey{points[i].Year, points[i].Category}
		running[k] = addSkipNaN(running[k], points[i].Value)
		points[i].YearToDate = running[k]
	}
}

// DropIncomplete removes points carrying a NaN in any numeric field.
func DropIncomplete(points []model.MonthlyPoint) []model.MonthlyPoint {
	out := points[:0]
	for _, p := range points {
		if math.IsNaN(p.Value) || math.IsNaN(p.YearToDate) || math.IsNaN(p.PreviousYearToDate) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// YearTotal is the consumption of every category over one year.
type YearTotal struct {
	Year   int
	Totals map[model.Category]float64
}

// Total is the consumption of all categories together.
func (y YearTotal) Total() float64 {
	var sum float64
	for _, v := range y.Totals {
		sum += v
	}
	return sum
}

// RenewableShare is the renewables fraction of the year's total, 0 when
// nothing was consumed.
func (y YearTotal) RenewableShare() float64 {
	return safeDivide(y.Totals[model.CategoryRenewables], y.Total())
}

// YearlyTotals sums point values per year and category, years ascending.
func YearlyTotals(points []model.MonthlyPoint) []YearTotal {
	byYear := make(map[int]*YearTotal)
	for _, p := range points {
		yt, ok := byYear[p.Year]
		if !ok {
			yt = &YearTotal{Year: p.Year, Totals: make(map[model.Category]float64)}
			byYear[p.Year] = yt
		}
		yt.Totals[p.Category] = addSkipNaN(yt.Totals[p.Category], p.Value)
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	totals := make([]YearTotal, 0, len(years))
	for _, y := range years {
		totals = append(totals, *byYear[y])
	}
	return totals
}

func addSkipNaN(sum, v float64) float64 {
	if math.IsNaN(v) {
		return sum
	}
	return sum + v
}

func safeDivide(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
