package export

import (
	"fmt"
	"strconv"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/attendance"
	"github.com/xuri/excelize/v2"
)

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// MonthlyAttendanceXLSX renders the monthly matrix as one sheet with the
// columns Name, 1..daysInMonth, Total Present.
func MonthlyAttendanceXLSX(sheetName string, daysInMonth int, rows []attendance.MonthlyRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if sheetName != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return nil, fmt.Errorf("delete default sheet: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	centerStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create cell style: %w", err)
	}

	totalCol := daysInMonth + 2

	headers := make([]any, 0, totalCol)
	headers = append(headers, "Name")
	for d := 1; d <= daysInMonth; d++ {
		headers = append(headers, strconv.Itoa(d))
	}
	headers = append(headers, "Total Present")
	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(totalCol, 1)
	if err := f.SetCellStyle(sheetName, "A1", lastHeader, headerStyle); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	for i, row := range rows {
		r := i + 2
		values := make([]any, 0, totalCol)
		values = append(values, row.Name)
		for d := 0; d < daysInMonth; d++ {
			code := ""
			if d < len(row.Codes) {
				code = string(row.Codes[d])
			}
			values = append(values, code)
		}
		values = append(values, row.TotalPresent)

		start, _ := excelize.CoordinatesToCellName(1, r)
		if err := f.SetSheetRow(sheetName, start, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", r, err)
		}
		from, _ := excelize.CoordinatesToCellName(2, r)
		to, _ := excelize.CoordinatesToCellName(totalCol, r)
		if err := f.SetCellStyle(sheetName, from, to, centerStyle); err != nil {
			return nil, fmt.Errorf("style row %d: %w", r, err)
		}
	}

	lastDayCol, _ := excelize.ColumnNumberToName(daysInMonth + 1)
	totalColName, _ := excelize.ColumnNumberToName(totalCol)
	_ = f.SetColWidth(sheetName, "A", "A", 28)
	_ = f.SetColWidth(sheetName, "B", lastDayCol, 4)
	_ = f.SetColWidth(sheetName, totalColName, totalColName, 14)
	_ = f.SetPanes(sheetName, &excelize.Panes{Freeze: true, XSplit: 1, YSplit: 1, TopLeftCell: "B2", ActivePane: "bottomRight"})

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
