package attendance

import (
	"time"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/holiday"
)

// DaysInMonth returns the length of the month (day 0 of the next month).
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthDays enumerates every calendar day of the month at midnight in loc.
func MonthDays(year int, month time.Month, loc *time.Location) []time.Time {
	n := DaysInMonth(year, month)
	days := make([]time.Time, 0, n)
	for d := 1; d <= n; d++ {
		days = append(days, time.Date(year, month, d, 0, 0, 0, 0, loc))
	}
	return days
}

// RangeDays enumerates count consecutive days starting at start.
func RangeDays(start time.Time, count int) []time.Time {
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	days := make([]time.Time, 0, count)
	for i := 0; i < count; i++ {
		days = append(days, start.AddDate(0, 0, i))
	}
	return days
}

// ResolveCode applies the fixed priority: future day, declared holiday,
// present record, Sunday, absent.
func ResolveCode(day time.Time, rec attendance.Record, exists bool, holidays holiday.Set, today time.Time) attendance.StatusCode {
	if dayNumber(day) > dayNumber(today) {
		return attendance.CodeBlank
	}
	if holidays.Contains(attendance.DateKey(day)) {
		return attendance.CodeFestive
	}
	if exists && rec.IsPresent() {
		return attendance.CodePresent
	}
	if day.Weekday() == time.Sunday {
		return attendance.CodeHoliday
	}
	return attendance.CodeAbsent
}

// BuildRow resolves one employee over the given days. A missing document
// resolves like a day without status.
func BuildRow(e employee.Employee, doc attendance.Document, holidays holiday.Set, days []time.Time, today time.Time) attendance.MonthlyRow {
	row := attendance.MonthlyRow{
		EmployeeID: e.ID,
		Name:       e.Name,
		Role:       e.Role,
		Codes:      make([]attendance.StatusCode, len(days)),
	}
	for i, day := range days {
		rec, exists := doc.Day(attendance.DateKey(day))
		code := ResolveCode(day, rec, exists, holidays, today)
		row.Codes[i] = code
		if code == attendance.CodePresent {
			row.TotalPresent++
		}
	}
	return row
}

// BuildRange builds rows for an arbitrary range of days, keeping every
// employee even when nobody was present.
func BuildRange(roster []employee.Employee, docs map[string]attendance.Document, holidays holiday.Set, days []time.Time, today time.Time) []attendance.MonthlyRow {
	rows := make([]attendance.MonthlyRow, 0, len(roster))
	for _, e := range roster {
		rows = append(rows, BuildRow(e, docs[e.ID], holidays, days, today))
	}
	return rows
}

// BuildMonthlyMatrix builds one row per roster employee for the month.
// When no employee has a single present day the result is empty, which
// callers render as "no data available".
func BuildMonthlyMatrix(roster []employee.Employee, docs map[string]attendance.Document, holidays holiday.Set, year int, month time.Month, today time.Time) []attendance.MonthlyRow {
	days := MonthDays(year, month, today.Location())
	rows := BuildRange(roster, docs, holidays, days, today)

	for _, row := range rows {
		if row.TotalPresent > 0 {
			return rows
		}
	}
	return []attendance.MonthlyRow{}
}

// dayNumber orders calendar dates independent of time of day.
func dayNumber(t time.Time) int {
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}
