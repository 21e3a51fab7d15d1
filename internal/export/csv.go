package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"energy_consumption/internal/model"
)

// SeriesHeader is the column layout of exported monthly series.
var SeriesHeader = []string{"YEAR", "MONTH", "MONTH_NAME", "TYPE", "VALUE", "yearToDate", "previousYearToDate"}

// WriteCSV writes the monthly series with a header row.
func WriteCSV(w io.Writer, points []model.MonthlyPoint) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SeriesHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, p := range points {
		row := []string{
			strconv.Itoa(p.Year),
			strconv.Itoa(p.Month),
			p.MonthName,
			string(p.Category),
			formatFloat(p.Value),
			formatFloat(p.YearToDate),
			formatFloat(p.PreviousYearToDate),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
