package ingest

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"energy_consumption/internal/model"
)

// Column names of the monthly electricity statistics export.
const (
	ColCountry            = "COUNTRY"
	ColCodeTime           = "CODE_TIME"
	ColTime               = "TIME"
	ColYear               = "YEAR"
	ColMonth              = "MONTH"
	ColMonthName          = "MONTH_NAME"
	ColProduct            = "PRODUCT"
	ColValue              = "VALUE"
	ColDisplayOrder       = "DISPLAY_ORDER"
	ColYearToDate         = "yearToDate"
	ColPreviousYearToDate = "previousYearToDate"
	ColShare              = "share"
)

// RequiredColumns must be present in every input file.
var RequiredColumns = []string{ColCountry, ColYear, ColMonth, ColMonthName, ColProduct, ColValue}

var columnTypes = map[string]series.Type{
	ColCountry:            series.String,
	ColCodeTime:           series.String,
	ColTime:               series.String,
	ColYear:               series.Int,
	ColMonth:              series.Int,
	ColMonthName:          series.String,
	ColProduct:            series.String,
	ColValue:              series.Float,
	ColDisplayOrder:       series.Float,
	ColYearToDate:         series.Float,
	ColPreviousYearToDate: series.Float,
	ColShare:              series.Float,
}

// EnergyParser parses monthly electricity statistics CSV exports.
//
// Expected format:
//
//	COUNTRY,CODE_TIME,TIME,YEAR,MONTH,MONTH_NAME,PRODUCT,VALUE,DISPLAY_ORDER,yearToDate,previousYearToDate,share
//	Australia,JAN2011,January 2011,2011,1,January,Coal,14887.2,1,14887.2,15367.4,0.73
type EnergyParser struct{}

func NewEnergyParser() *EnergyParser {
	return &EnergyParser{}
}

// Load reads the CSV into a typed dataframe.
func (p *EnergyParser) Load(r io.Reader) (dataframe.DataFrame, error) {
	df := dataframe.ReadCSV(r, dataframe.WithTypes(columnTypes))
	if df.Err != nil {
		return df, fmt.Errorf("reading CSV: %w", df.Err)
	}
	if err := validateColumns(df.Names()); err != nil {
		return df, err
	}
	return df, nil
}

func (p *EnergyParser) Parse(r io.Reader) ([]model.Record, error) {
	df, err := p.Load(r)
	if err != nil {
		return nil, err
	}
	return Records(df), nil
}

func validateColumns(names []string) error {
	present := make(map[string]bool, len(names))
	for _, n := range names {
		present[n] = true
	}
	for _, col := range RequiredColumns {
		if !present[col] {
			return fmt.Errorf("missing required column %q", col)
		}
	}
	return nil
}

// Records converts a dataframe into records. Rows without a usable YEAR,
// MONTH (1-12) or MONTH_NAME are skipped. Missing numeric values become NaN; columns the frame
// does not carry are left at their zero value.
func Records(df dataframe.DataFrame) []model.Record {
	n := df.Nrow()
	if n == 0 {
		return nil
	}

	has := make(map[string]bool)
	for _, name := range df.Names() {
		has[name] = true
	}
	label := func(col string) func(int) (string, bool) {
		if !has[col] {
			return func(int) (string, bool) { return "", false }
		}
		s := df.Col(col)
		return func(i int) (string, bool) {
			e := s.Elem(i)
			if e.IsNA() {
				return "", false
			}
			v := e.String()
			return v, strings.TrimSpace(v) != ""
		}
	}
	str := func(col string) func(int) string {
		if !has[col] {
			return func(int) string { return "" }
		}
		s := df.Col(col)
		return func(i int) string { return s.Elem(i).String() }
	}
	num := func(col string) func(int) float64 {
		if !has[col] {
			return func(int) float64 { return 0 }
		}
		s := df.Col(col)
		return func(i int) float64 {
			e := s.Elem(i)
			if e.IsNA() {
				return math.NaN()
			}
			return e.Float()
		}
	}

	years := df.Col(ColYear)
	months := df.Col(ColMonth)
	country := str(ColCountry)
	codeTime := str(ColCodeTime)
	timeLabel := str(ColTime)
	monthName := label(ColMonthName)
	product := str(ColProduct)
	value := num(ColValue)
	displayOrder := num(ColDisplayOrder)
	ytd := num(ColYearToDate)
	prevYTD := num(ColPreviousYearToDate)
	share := num(ColShare)

	records := make([]model.Record, 0, n)
	for i := 0; i < n; i++ {
		year, err := years.Elem(i).Int()
		if err != nil {
			continue
		}
		month, err := months.Elem(i).Int()
		if err != nil || month < 1 || month > 12 {
			continue
		}
		name, ok := monthName(i)
		if !ok {
			continue
		}

		records = append(records, model.Record{
			Country:            country(i),
			CodeTime:           codeTime(i),
			Time:               timeLabel(i),
			Year:               year,
			Month:              month,
			MonthName:          name,
			Product:            product(i),
			Value:              value(i),
			DisplayOrder:       displayOrder(i),
			YearToDate:         ytd(i),
			PreviousYearToDate: prevYTD(i),
			Share:              share(i),
		})
	}
	return records
}
