package report

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"energy_consumption/internal/aggregate"
	"energy_consumption/internal/model"
)

// YearlyTable prints per-year consumption for each category and the
// renewables share.
func YearlyTable(w io.Writer, totals []aggregate.YearTotal) {
	table := tablewriter.NewWriter(w)

	header := []string{"Year"}
	for _, c := range model.CategoryOrder {
		header = append(header, string(c)+" (GWh)")
	}
	header = append(header, "Renewables")
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	sums := make(map[model.Category]float64)
	for _, yt := range totals {
		row := []string{fmt.Sprintf("%d", yt.Year)}
		for _, c := range model.CategoryOrder {
			row = append(row, formatGWh(yt.Totals[c]))
			sums[c] += yt.Totals[c]
		}
		row = append(row, formatShare(yt.RenewableShare()))
		table.Append(row)
	}

	if len(totals) > 1 {
		all := aggregate.YearTotal{Totals: sums}
		footer := []string{"Total"}
		for _, c := range model.CategoryOrder {
			footer = append(footer, formatGWh(sums[c]))
		}
		footer = append(footer, formatShare(all.RenewableShare()))
		table.SetFooter(footer)
	}

	table.Render()
}

func formatGWh(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

func formatShare(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}
