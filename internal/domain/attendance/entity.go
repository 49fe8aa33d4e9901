package attendance

import (
	"fmt"
	"strconv"
	"time"
)

// DateKeyLayout is the DD-MM-YYYY key under which a day is stored.
const DateKeyLayout = "02-01-2006"

// Stored field names of a daily record.
const (
	FieldCheckIn         = "checkIn"
	FieldCheckInAddress  = "checkInAddress"
	FieldCheckOut        = "checkOut"
	FieldCheckOutAddress = "checkOutAddress"
	FieldDuration        = "duration"
	FieldStatus          = "status"

	// legacy spelling still present in older documents
	FieldStatusLegacy = "statuses"
)

const StatusPresent = "Present"

// Record is one employee's attendance for one calendar day.
type Record struct {
	CheckIn         *time.Time
	CheckInAddress  string
	CheckOut        *time.Time
	CheckOutAddress string
	DurationMs      *int64
	Status          string
}

// Document maps a date key to that day's record for one employee.
type Document map[string]Record

func (r Record) HasCheckIn() bool  { return r.CheckIn != nil }
func (r Record) HasCheckOut() bool { return r.CheckOut != nil }
func (r Record) IsPresent() bool   { return r.Status == StatusPresent }

// Day returns the record for key and whether it exists.
func (d Document) Day(key string) (Record, bool) {
	if d == nil {
		return Record{}, false
	}
	r, ok := d[key]
	return r, ok
}

// DateKey formats t in the location it carries.
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// ParseDateKey parses a DD-MM-YYYY key in loc.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateKeyLayout, key, loc)
}

// GateState is the per-employee per-day check-in/out state.
type GateState string

const (
	StateNotCheckedIn GateState = "not_checked_in"
	StateCheckedIn    GateState = "checked_in"
	StateCheckedOut   GateState = "checked_out"
)

// StateOf derives the gate state from today's persisted record.
func StateOf(r Record, exists bool) GateState {
	switch {
	case !exists || !r.HasCheckIn():
		return StateNotCheckedIn
	case r.HasCheckOut():
		return StateCheckedOut
	default:
		return StateCheckedIn
	}
}

// StatusCode is the single-letter code shown in attendance grids.
type StatusCode string

const (
	CodeBlank   StatusCode = ""
	CodePresent StatusCode = "P"
	CodeAbsent  StatusCode = "A"
	CodeHoliday StatusCode = "H" // weekly off (Sunday)
	CodeFestive StatusCode = "F" // declared holiday
)

// MonthlyRow is one employee's row of the monthly matrix.
type MonthlyRow struct {
	EmployeeID   string
	Name         string
	Role         string
	Codes        []StatusCode
	TotalPresent int
}

// RecordFromMap decodes a stored day map. Timestamps may arrive as
// time.Time, RFC3339 strings or epoch milliseconds depending on the store.
// The canonical status field is "status"; "statuses" is read when it is absent.
func RecordFromMap(m map[string]any) Record {
	var r Record
	if m == nil {
		return r
	}
	r.CheckIn = toTime(m[FieldCheckIn])
	r.CheckOut = toTime(m[FieldCheckOut])
	r.CheckInAddress = toString(m[FieldCheckInAddress])
	r.CheckOutAddress = toString(m[FieldCheckOutAddress])
	r.DurationMs = toInt64(m[FieldDuration])

	if s, ok := m[FieldStatus]; ok && toString(s) != "" {
		r.Status = toString(s)
	} else {
		r.Status = toString(m[FieldStatusLegacy])
	}
	return r
}

// ToMap encodes the non-empty fields of r for a store write.
func (r Record) ToMap() map[string]any {
	m := map[string]any{}
	if r.CheckIn != nil {
		m[FieldCheckIn] = *r.CheckIn
	}
	if r.CheckInAddress != "" {
		m[FieldCheckInAddress] = r.CheckInAddress
	}
	if r.CheckOut != nil {
		m[FieldCheckOut] = *r.CheckOut
	}
	if r.CheckOutAddress != "" {
		m[FieldCheckOutAddress] = r.CheckOutAddress
	}
	if r.DurationMs != nil {
		m[FieldDuration] = *r.DurationMs
	}
	if r.Status != "" {
		m[FieldStatus] = r.Status
	}
	return m
}

// Apply merges a partial field map into r, as a store merge would.
func (r Record) Apply(fields map[string]any) Record {
	merged := r.ToMap()
	for k, v := range fields {
		merged[k] = v
	}
	return RecordFromMap(merged)
}

// DocumentFromMap decodes a full attendance document keyed by date.
func DocumentFromMap(m map[string]any) Document {
	doc := make(Document, len(m))
	for key, raw := range m {
		day, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		doc[key] = RecordFromMap(day)
	}
	return doc
}

func toTime(v any) *time.Time {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return nil
		}
		return &t
	case *time.Time:
		return t
	case string:
		if t == "" {
			return nil
		}
		parsed, err := time.Parse(time.RFC3339Nano, t)
		if err != nil {
			return nil
		}
		return &parsed
	case int64:
		tm := time.UnixMilli(t)
		return &tm
	case float64:
		tm := time.UnixMilli(int64(t))
		return &tm
	}
	return nil
}

func toString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}

func toInt64(v any) *int64 {
	var n int64
	switch x := v.(type) {
	case int64:
		n = x
	case int:
		n = int64(x)
	case int32:
		n = int64(x)
	case float64:
		n = int64(x)
	case string:
		parsed, err := strconv.ParseInt(x, 10, 64)
		if err != nil {
			return nil
		}
		n = parsed
	default:
		return nil
	}
	return &n
}
