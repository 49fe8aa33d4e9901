// Package codec maps domain entities to the field layout shared by every
// document store (Firestore, MongoDB and the PostgreSQL JSONB columns).
// Amounts are stored as decimal strings.
package codec

import (
	"fmt"
	"strconv"
	"time"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/leave"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/payslip"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// Employee

func EmployeeFromMap(id string, m map[string]any) employee.Employee {
	e := employee.Employee{
		ID:        id,
		Name:      String(m["name"]),
		Email:     String(m["email"]),
		Role:      String(m["role"]),
		ManagerID: String(m["managerId"]),
	}
	if loc, ok := m["location"].(map[string]any); ok {
		lat, latOK := Float(loc["latitude"])
		lng, lngOK := Float(loc["longitude"])
		if latOK && lngOK {
			e.Location = &employee.Location{Latitude: lat, Longitude: lng}
		}
	}
	if d, ok := Decimal(m["baseSalary"]); ok {
		e.BaseSalary = &d
	}
	return e
}

func EmployeeToMap(e employee.Employee) map[string]any {
	m := map[string]any{
		"name":      e.Name,
		"email":     e.Email,
		"role":      e.Role,
		"managerId": e.ManagerID,
	}
	if e.Location != nil {
		m["location"] = map[string]any{
			"latitude":  e.Location.Latitude,
			"longitude": e.Location.Longitude,
		}
	}
	if e.BaseSalary != nil {
		m["baseSalary"] = e.BaseSalary.String()
	}
	return m
}

// Holiday

func HolidayToMap(h holiday.Holiday) map[string]any {
	return map[string]any{
		"date":  h.Date,
		"label": h.Label,
	}
}

// HolidayFromMap falls back to the document key when the date field is missing.
func HolidayFromMap(key string, m map[string]any, loc *time.Location) holiday.Holiday {
	h := holiday.Holiday{Label: String(m["label"])}
	if d, ok := DateIn(m["date"], loc); ok {
		h.Date = d
	} else if t, err := time.ParseInLocation(holiday.DateKeyLayout, key, loc); err == nil {
		h.Date = t
	}
	return h
}

// Leave

func LeaveToMap(l leave.LeaveRequest) map[string]any {
	return map[string]any{
		"id":          l.ID,
		"type":        l.LeaveType,
		"fromDate":    l.FromDate,
		"toDate":      l.ToDate,
		"description": l.Description,
		"status":      string(l.Status),
		"submittedAt": l.SubmittedAt,
	}
}

// LeaveFromMap reads the leave dates as calendar days in loc.
func LeaveFromMap(m map[string]any, loc *time.Location) leave.LeaveRequest {
	l := leave.LeaveRequest{
		ID:          String(m["id"]),
		LeaveType:   String(m["type"]),
		Description: String(m["description"]),
		Status:      leave.LeaveRequestStatus(String(m["status"])),
	}
	l.FromDate, _ = DateIn(m["fromDate"], loc)
	l.ToDate, _ = DateIn(m["toDate"], loc)
	l.SubmittedAt, _ = Time(m["submittedAt"])
	return l
}

func LeavesToSlice(list []leave.LeaveRequest) []any {
	out := make([]any, 0, len(list))
	for _, l := range list {
		out = append(out, LeaveToMap(l))
	}
	return out
}

// LeavesFromAny decodes a stored applications array. Entries that are not
// maps are skipped.
func LeavesFromAny(v any, loc *time.Location) []leave.LeaveRequest {
	items, _ := v.([]any)
	out := make([]leave.LeaveRequest, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, LeaveFromMap(m, loc))
		}
	}
	return out
}

// Payslip

func PayslipToMap(p payslip.Payslip) map[string]any {
	return map[string]any{
		"employeeId":      p.EmployeeID,
		"employeeName":    p.EmployeeName,
		"employeeRole":    p.EmployeeRole,
		"month":           p.Month,
		"basicSalary":     p.BasicSalary.String(),
		"allowances":      componentsToSlice(p.Allowances),
		"totalAllowances": p.TotalAllowances.String(),
		"deductions":      componentsToSlice(p.Deductions),
		"totalDeductions": p.TotalDeductions.String(),
		"daysInMonth":     int64(p.DaysInMonth),
		"lopDays":         int64(p.LOPDays),
		"lopAmount":       p.LOPAmount.String(),
		"grossPay":        p.GrossPay.String(),
		"netPay":          p.NetPay.String(),
		"documentPath":    p.DocumentPath,
		"documentUrl":     p.DocumentURL,
		"generatedAt":     p.GeneratedAt,
		"generatedBy":     p.GeneratedBy,
	}
}

func PayslipFromMap(m map[string]any) payslip.Payslip {
	p := payslip.Payslip{
		EmployeeID:   String(m["employeeId"]),
		EmployeeName: String(m["employeeName"]),
		EmployeeRole: String(m["employeeRole"]),
		Month:        String(m["month"]),
		Allowances:   componentsFromAny(m["allowances"], payslip.ComponentTypeAllowance),
		Deductions:   componentsFromAny(m["deductions"], payslip.ComponentTypeDeduction),
		DaysInMonth:  Int(m["daysInMonth"]),
		LOPDays:      Int(m["lopDays"]),
		DocumentPath: String(m["documentPath"]),
		DocumentURL:  String(m["documentUrl"]),
		GeneratedBy:  String(m["generatedBy"]),
	}
	p.BasicSalary, _ = Decimal(m["basicSalary"])
	p.TotalAllowances, _ = Decimal(m["totalAllowances"])
	p.TotalDeductions, _ = Decimal(m["totalDeductions"])
	p.LOPAmount, _ = Decimal(m["lopAmount"])
	p.GrossPay, _ = Decimal(m["grossPay"])
	p.NetPay, _ = Decimal(m["netPay"])
	p.GeneratedAt, _ = Time(m["generatedAt"])
	return p
}

func componentsToSlice(cs []payslip.Component) []any {
	out := make([]any, 0, len(cs))
	for _, c := range cs {
		out = append(out, map[string]any{"name": c.Name, "amount": c.Amount.String()})
	}
	return out
}

func componentsFromAny(v any, t payslip.ComponentType) []payslip.Component {
	items, _ := v.([]any)
	out := make([]payslip.Component, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		amount, _ := Decimal(m["amount"])
		out = append(out, payslip.Component{Name: String(m["name"]), Type: t, Amount: amount})
	}
	return out
}

// Scalars

func String(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}

func Float(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case int:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}

func Int(v any) int {
	f, _ := Float(v)
	return int(f)
}

func Decimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case string:
		d, err := decimal.NewFromString(n)
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	case float64:
		return decimal.NewFromFloat(n), true
	case int64:
		return decimal.NewFromInt(n), true
	case int32:
		return decimal.NewFromInt32(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	}
	return decimal.Zero, false
}

// DateIn returns midnight in loc of the calendar day a stored value names.
// Stores hand timestamps back in UTC, so the day is read after converting
// to loc. YYYY-MM-DD strings are parsed in loc directly.
func DateIn(v any, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}
	if s, ok := v.(string); ok {
		if d, err := time.ParseInLocation(dateLayout, s, loc); err == nil {
			return d, true
		}
	}
	t, ok := Time(v)
	if !ok {
		return time.Time{}, false
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), true
}

// Time accepts time.Time, RFC3339 strings and epoch milliseconds.
func Time(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		return parsed, err == nil
	case int64:
		return time.UnixMilli(t), true
	case float64:
		return time.UnixMilli(int64(t)), true
	}
	return time.Time{}, false
}
