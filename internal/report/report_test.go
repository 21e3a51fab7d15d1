package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"energy_consumption/internal/aggregate"
	"energy_consumption/internal/model"
)

func TestYearlyTable(t *testing.T) {
	totals := []aggregate.YearTotal{
		{Year: 2011, Totals: map[model.Category]float64{
			model.CategoryFossilFuels: 31350,
			model.CategoryRenewables:  4220,
		}},
		{Year: 2021, Totals: map[model.Category]float64{
			model.CategoryFossilFuels: 11500,
			model.CategoryRenewables:  5500,
		}},
	}

	var buf bytes.Buffer
	YearlyTable(&buf, totals)
	out := buf.String()

	assert.Contains(t, out, "Fossil Fuels (GWh)")
	assert.Contains(t, out, "2011")
	assert.Contains(t, out, "31350.0")
	assert.Contains(t, out, "11.9%")
	assert.Contains(t, out, "32.4%")
	assert.Contains(t, out, "42850.0") // fossil total
	assert.Contains(t, out, "9720.0")  // renewables total
}

func TestYearlyTable_SingleYearHasNoFooter(t *testing.T) {
	totals := []aggregate.YearTotal{
		{Year: 2015, Totals: map[model.Category]float64{model.CategoryRenewables: 10}},
	}

	var buf bytes.Buffer
	YearlyTable(&buf, totals)

	assert.Contains(t, buf.String(), "100.0%")
	assert.NotContains(t, buf.String(), "Total")
}

func TestFormatShare(t *testing.T) {
	assert.Equal(t, "0.0%", formatShare(0))
	assert.Equal(t, "25.0%", formatShare(0.25))
}
