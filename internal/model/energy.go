package model

import (
	"fmt"
	"time"
)

type Category string

const (
	CategoryRenewables  Category = "Renewables"
	CategoryFossilFuels Category = "Fossil Fuels"
)

// CategoryOrder is the order in which categories are plotted and tabulated.
var CategoryOrder = []Category{CategoryFossilFuels, CategoryRenewables}

// ProductCategory maps source PRODUCT values onto the two aggregate categories.
// Products missing from this map have no category and are dropped when grouping.
var ProductCategory = map[string]Category{
	"Hydro":                       CategoryRenewables,
	"Wind":                        CategoryRenewables,
	"Solar":                       CategoryRenewables,
	"Geothermal":                  CategoryRenewables,
	"Combustible renewables":      CategoryRenewables,
	"Other renewables aggregated": CategoryRenewables,
	"Coal":                        CategoryFossilFuels,
	"Oil":                         CategoryFossilFuels,
	"Natural Gas":                 CategoryFossilFuels,
}

// ExcludedProducts are stored, lost or produced energy rows, vague buckets,
// and totals that duplicate one of the two categories.
var ExcludedProducts = []string{
	"Distribution losses",
	"Used for pumped storage",
	"Electricity supplied",
	"Net electricity production",
	"Total combustible fuels",
	"Final consumption",
	"Others",
	"Low carbon",
	"Non-renewables",
}

// DroppedColumns are source columns that play no part in the analysis.
var DroppedColumns = []string{"DISPLAY_ORDER", "CODE_TIME", "TIME", "share", "COUNTRY"}

var excludedSet map[string]bool

func init() {
	excludedSet = make(map[string]bool, len(ExcludedProducts))
	for _, p := range ExcludedProducts {
		excludedSet[p] = true
	}
}

// CategoryFor returns the aggregate category of a product.
func CategoryFor(product string) (Category, bool) {
	c, ok := ProductCategory[product]
	return c, ok
}

func IsExcluded(product string) bool {
	return excludedSet[product]
}

// Record is one row of the monthly electricity statistics CSV.
type Record struct {
	Country            string
	CodeTime           string
	Time               string
	Year               int
	Month              int
	MonthName          string
	Product            string
	Value              float64
	DisplayOrder       float64
	YearToDate         float64
	PreviousYearToDate float64
	Share              float64
}

// TaggedRecord is a Record that has been assigned a category.
type TaggedRecord struct {
	Record
	Category Category
}

// MonthlyPoint is the aggregated consumption of one category in one month.
type MonthlyPoint struct {
	Year               int
	Month              int
	MonthName          string
	Category           Category
	Value              float64
	YearToDate         float64
	PreviousYearToDate float64
}

// Time returns the first instant of the point's month in UTC.
func (p MonthlyPoint) Time() time.Time {
	return time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
}

// Scope is the country and inclusive year range under analysis.
type Scope struct {
	Country   string
	StartYear int
	EndYear   int
}

// DefaultScope is the fixed decade the chart covers.
var DefaultScope = Scope{
	Country:   "Australia",
	StartYear: 2011,
	EndYear:   2021,
}

func (s Scope) Contains(year int) bool {
	return year >= s.StartYear && year <= s.EndYear
}

// Title is the chart heading for the scope.
func (s Scope) Title() string {
	return fmt.Sprintf("%s Energy Consumption between %d to %d", s.Country, s.StartYear, s.EndYear)
}

type TimeRange struct {
	Start time.Time
	End   time.Time
}
