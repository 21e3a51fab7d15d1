package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"energy_consumption/internal/aggregate"
	"energy_consumption/internal/model"
)

const (
	SheetMonthly = "Monthly"
	SheetYearly  = "Yearly"
)

// Workbook builds an XLSX file with the monthly series and the yearly totals.
func Workbook(points []model.MonthlyPoint, totals []aggregate.YearTotal) ([]byte, error) {
	xlsx := excelize.NewFile()
	defer xlsx.Close()

	_ = xlsx.SetAppProps(&excelize.AppProperties{
		Application: "energy_consumption",
		DocSecurity: 2,
	})

	sheet := xlsx.GetSheetName(xlsx.GetActiveSheetIndex())
	if err := xlsx.SetSheetName(sheet, SheetMonthly); err != nil {
		return nil, err
	}
	if err := writeMonthly(xlsx, points); err != nil {
		return nil, fmt.Errorf("writing %s sheet: %w", SheetMonthly, err)
	}

	if _, err := xlsx.NewSheet(SheetYearly); err != nil {
		return nil, err
	}
	if err := writeYearly(xlsx, totals); err != nil {
		return nil, fmt.Errorf("writing %s sheet: %w", SheetYearly, err)
	}

	xlsx.SetActiveSheet(0)

	buf, err := xlsx.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeMonthly(xlsx *excelize.File, points []model.MonthlyPoint) error {
	header := make([]interface{}, len(SeriesHeader))
	for i, h := range SeriesHeader {
		header[i] = h
	}
	if err := xlsx.SetSheetRow(SheetMonthly, "A1", &header); err != nil {
		return err
	}

	for i, p := range points {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{p.Year, p.Month, p.MonthName, string(p.Category), p.Value, p.YearToDate, p.PreviousYearToDate}
		if err := xlsx.SetSheetRow(SheetMonthly, cell, &row); err != nil {
			return err
		}
	}
	return xlsx.SetPanes(SheetMonthly, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func writeYearly(xlsx *excelize.File, totals []aggregate.YearTotal) error {
	header := []interface{}{"Year"}
	for _, c := range model.CategoryOrder {
		header = append(header, string(c))
	}
	header = append(header, "Renewables share")
	if err := xlsx.SetSheetRow(SheetYearly, "A1", &header); err != nil {
		return err
	}

	pct, err := xlsx.NewStyle(&excelize.Style{NumFmt: 10}) // 0.00%
	if err != nil {
		return err
	}
	shareCol := len(header)

	for i, yt := range totals {
		rowNum := i + 2
		row := []interface{}{yt.Year}
		for _, c := range model.CategoryOrder {
			row = append(row, yt.Totals[c])
		}
		row = append(row, yt.RenewableShare())

		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		if err := xlsx.SetSheetRow(SheetYearly, cell, &row); err != nil {
			return err
		}
		shareCell, err := excelize.CoordinatesToCellName(shareCol, rowNum)
		if err != nil {
			return err
		}
		if err := xlsx.SetCellStyle(SheetYearly, shareCell, shareCell, pct); err != nil {
			return err
		}
	}
	return nil
}
