package analysis

import (
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"energy_consumption/internal/ingest"
	"energy_consumption/internal/model"
)

func runSample(t *testing.T) *Result {
	t.Helper()
	f, err := os.Open("../../testdata/energy_sample.csv")
	require.NoError(t, err)
	defer f.Close()

	res, err := Run(ingest.NewEnergyParser(), f, model.DefaultScope, zap.NewNop())
	require.NoError(t, err)
	return res
}

func TestRun_SampleFile(t *testing.T) {
	res := runSample(t)

	assert.Equal(t, Stats{
		Loaded:        24,
		Scrubbed:      18,
		Records:       18,
		Uncategorized: 1,
		Points:        6,
		Incomplete:    0,
	}, res.Stats)

	points := res.Store.All()
	require.Len(t, points, 6)
	expected := []struct {
		year     int
		month    int
		category model.Category
		value    float64
		ytd      float64
		prevYTD  float64
	}{
		{2011, 1, model.CategoryFossilFuels, 16300, 16300, 16720},
		{2011, 1, model.CategoryRenewables, 2100, 2100, 1930},
		{2011, 2, model.CategoryFossilFuels, 15050, 31350, 15460},
		{2011, 2, model.CategoryRenewables, 2120, 4220, 1940},
		{2021, 12, model.CategoryFossilFuels, 11500, 11500, 155000},
		{2021, 12, model.CategoryRenewables, 5500, 5500, 51000},
	}
	for i, e := range expected {
		p := points[i]
		assert.Equal(t, e.year, p.Year, "point %d", i)
		assert.Equal(t, e.month, p.Month, "point %d", i)
		assert.Equal(t, e.category, p.Category, "point %d", i)
		assert.InDelta(t, e.value, p.Value, 0.001, "point %d", i)
		assert.InDelta(t, e.ytd, p.YearToDate, 0.001, "point %d", i)
		assert.InDelta(t, e.prevYTD, p.PreviousYearToDate, 0.001, "point %d", i)
	}
}

func TestRun_Store(t *testing.T) {
	res := runSample(t)

	assert.Equal(t, []model.Category{model.CategoryFossilFuels, model.CategoryRenewables}, res.Store.Categories())
	assert.Equal(t, []int{2011, 2021}, res.Store.Years(model.CategoryRenewables))
	assert.Len(t, res.Store.PointsInYear(model.CategoryFossilFuels, 2011), 2)
}

func TestRun_Totals(t *testing.T) {
	res := runSample(t)

	require.Len(t, res.Totals, 2)
	assert.Equal(t, 2011, res.Totals[0].Year)
	assert.InDelta(t, 31350.0, res.Totals[0].Totals[model.CategoryFossilFuels], 0.001)
	assert.InDelta(t, 4220.0, res.Totals[0].Totals[model.CategoryRenewables], 0.001)
	assert.Equal(t, 2021, res.Totals[1].Year)
}

func TestRun_NoData(t *testing.T) {
	input := "COUNTRY,YEAR,MONTH,MONTH_NAME,PRODUCT,VALUE\n" +
		"Australia,2005,1,January,Coal,100.0\n" +
		"Australia,2006,1,January,Coal,100.0\n"

	_, err := Run(ingest.NewEnergyParser(), strings.NewReader(input), model.DefaultScope, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestRun_OnlyExcludedProducts(t *testing.T) {
	input := "COUNTRY,YEAR,MONTH,MONTH_NAME,PRODUCT,VALUE\n" +
		"Australia,2015,1,January,Low carbon,100.0\n" +
		"Australia,2015,1,January,Nuclear,100.0\n"

	_, err := Run(ingest.NewEnergyParser(), strings.NewReader(input), model.DefaultScope, zap.NewNop())

	assert.ErrorIs(t, err, ErrNoData)
}

func TestRun_InvalidInput(t *testing.T) {
	_, err := Run(ingest.NewEnergyParser(), strings.NewReader("COUNTRY,YEAR\nAustralia,2015\n"), model.DefaultScope, zap.NewNop())

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoData)
	assert.Contains(t, err.Error(), "loading energy data")
}

func TestRun_SkipsRowsWithoutMonthName(t *testing.T) {
	input := "COUNTRY,YEAR,MONTH,MONTH_NAME,PRODUCT,VALUE\n" +
		"Australia,2011,1,January,Coal,100.0\n" +
		"Australia,2011,1,,Coal,7.0\n"

	res, err := Run(ingest.NewEnergyParser(), strings.NewReader(input), model.DefaultScope, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 1, res.Stats.Records)
	points := res.Store.All()
	require.Len(t, points, 1)
	assert.Equal(t, "January", points[0].MonthName)
	assert.InDelta(t, 100.0, points[0].Value, 0.001)
	assert.InDelta(t, 100.0, points[0].YearToDate, 0.001)
	assert.Len(t, res.Store.PointsInYear(model.CategoryFossilFuels, 2011), 1)
}

func TestRun_SkipsMonthOutOfRange(t *testing.T) {
	input := "COUNTRY,YEAR,MONTH,MONTH_NAME,PRODUCT,VALUE\n" +
		"Australia,2011,1,January,Coal,100.0\n" +
		"Australia,2011,13,Thirteenth,Coal,50.0\n" +
		"Australia,2012,1,January,Coal,80.0\n"

	res, err := Run(ingest.NewEnergyParser(), strings.NewReader(input), model.DefaultScope, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, []int{2011, 2012}, res.Store.Years(model.CategoryFossilFuels))
	assert.Len(t, res.Store.PointsInYear(model.CategoryFossilFuels, 2011), 1)
	assert.Len(t, res.Store.PointsInYear(model.CategoryFossilFuels, 2012), 1)
}

type countingParser struct {
	ingest.Parser
	loads int
}

func (p *countingParser) Load(r io.Reader) (dataframe.DataFrame, error) {
	p.loads++
	return p.Parser.Load(r)
}

type failingParser struct{}

func (failingParser) Load(io.Reader) (dataframe.DataFrame, error) {
	return dataframe.DataFrame{}, errors.New("source unavailable")
}

func TestRun_UsesGivenParser(t *testing.T) {
	p := &countingParser{Parser: ingest.NewEnergyParser()}
	input := "COUNTRY,YEAR,MONTH,MONTH_NAME,PRODUCT,VALUE\n" +
		"Australia,2015,6,June,Wind,42.0\n"

	res, err := Run(p, strings.NewReader(input), model.DefaultScope, zap.NewNop())

	require.NoError(t, err)
	assert.Equal(t, 1, p.loads)
	assert.Equal(t, 1, res.Store.PointCount(model.CategoryRenewables))
}

func TestRun_ParserError(t *testing.T) {
	_, err := Run(failingParser{}, strings.NewReader(""), model.DefaultScope, zap.NewNop())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading energy data")
	assert.Contains(t, err.Error(), "source unavailable")
}

func TestRun_StoreTimeRange(t *testing.T) {
	res := runSample(t)

	tr, ok := res.Store.GlobalTimeRange()
	require.True(t, ok)
	assert.Equal(t, 2011, tr.Start.Year())
	assert.Equal(t, 2021, tr.End.Year())
	assert.Equal(t, 3, res.Store.PointCount(model.CategoryRenewables))
}
