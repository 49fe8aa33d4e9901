package export

import (
	"bytes"
	"testing"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestMonthlyAttendanceXLSX_Layout(t *testing.T) {
	rows := []attendance.MonthlyRow{
		{
			EmployeeID:   "e1",
			Name:         "Asha",
			Codes:        []attendance.StatusCode{"P", "H", "F", "A"},
			TotalPresent: 1,
		},
		{
			EmployeeID:   "e2",
			Name:         "Ravi",
			Codes:        []attendance.StatusCode{"A", "H", "F", ""},
			TotalPresent: 0,
		},
	}

	data, err := MonthlyAttendanceXLSX("March 2025", 4, rows)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"March 2025"}, f.GetSheetList())

	got, err := f.GetRows("March 2025")
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, []string{"Name", "1", "2", "3", "4", "Total Present"}, got[0])
	assert.Equal(t, []string{"Asha", "P", "H", "F", "A", "1"}, got[1])

	v, err := f.GetCellValue("March 2025", "F3")
	require.NoError(t, err)
	assert.Equal(t, "0", v)
	blank, err := f.GetCellValue("March 2025", "E3")
	require.NoError(t, err)
	assert.Equal(t, "", blank)
}
