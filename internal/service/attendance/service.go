package attendance

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/export"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/utils"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/validator"
	"golang.org/x/sync/errgroup"
)

const noDataMessage = "No data available"

type AttendanceServiceImpl struct {
	employeeService employee.EmployeeService
	employeeRepo    employee.EmployeeRepository
	attendanceRepo  attendance.AttendanceRepository
	holidayRepo     holiday.HolidayRepository
	loc             *time.Location
	now             func() time.Time
}

func NewAttendanceService(
	employeeService employee.EmployeeService,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	holidayRepo holiday.HolidayRepository,
	loc *time.Location,
	now func() time.Time,
) attendance.AttendanceService {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &AttendanceServiceImpl{
		employeeService: employeeService,
		employeeRepo:    employeeRepo,
		attendanceRepo:  attendanceRepo,
		holidayRepo:     holidayRepo,
		loc:             loc,
		now:             now,
	}
}

func (s *AttendanceServiceImpl) today() time.Time {
	return s.now().In(s.loc)
}

// snapshot is everything a grid needs, fetched once per request.
type snapshot struct {
	roster   []employee.Employee
	docs     map[string]attendance.Document
	holidays holiday.Set
}

// load fetches the roster and holiday list concurrently, then the roster's
// attendance documents. Rendering only starts after every fetch completed.
func (s *AttendanceServiceImpl) load(ctx context.Context, session user.Session, role string) (snapshot, error) {
	var snap snapshot

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		roster, err := s.employeeService.Roster(gCtx, session, role)
		if err != nil {
			return err
		}
		snap.roster = roster
		return nil
	})

	g.Go(func() error {
		list, err := s.holidayRepo.List(gCtx)
		if err != nil {
			return fmt.Errorf("failed to list holidays: %w", err)
		}
		snap.holidays = holiday.NewSet(list)
		return nil
	})

	if err := g.Wait(); err != nil {
		return snapshot{}, err
	}

	ids := make([]string, 0, len(snap.roster))
	for _, e := range snap.roster {
		ids = append(ids, e.ID)
	}
	docs, err := s.attendanceRepo.GetDocuments(ctx, ids)
	if err != nil {
		return snapshot{}, fmt.Errorf("failed to load attendance: %w", err)
	}
	snap.docs = docs
	return snap, nil
}

// Daily implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Daily(ctx context.Context, session user.Session, filter attendance.DailyFilter) (attendance.ListDailyResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListDailyResponse{}, err
	}

	today := s.today()
	day := today
	if filter.Date != "" {
		parsed, _ := time.ParseInLocation(validator.DateLayout, filter.Date, s.loc)
		day = parsed
	}

	snap, err := s.load(ctx, session, filter.Role)
	if err != nil {
		return attendance.ListDailyResponse{}, err
	}

	key := attendance.DateKey(day)
	needle := strings.ToLower(filter.Search)

	rows := make([]attendance.DailyRowResponse, 0, len(snap.roster))
	var present, absent int
	for _, e := range snap.roster {
		if needle != "" && !strings.Contains(strings.ToLower(e.Name), needle) {
			continue
		}
		rec, exists := snap.docs[e.ID].Day(key)
		code := ResolveCode(day, rec, exists, snap.holidays, today)
		switch code {
		case attendance.CodePresent:
			present++
		case attendance.CodeAbsent:
			absent++
		}

		row := attendance.DailyRowResponse{
			EmployeeID: e.ID,
			Name:       e.Name,
			Role:       e.Role,
			Code:       code,
		}
		if exists {
			r := attendance.ToRecordResponse(key, rec)
			row.Record = &r
		}
		rows = append(rows, row)
	}

	total := int64(len(rows))
	start, end := utils.PageBounds(filter.Page, filter.Limit, len(rows))

	return attendance.ListDailyResponse{
		Date:         day.Format(validator.DateLayout),
		PresentCount: present,
		AbsentCount:  absent,
		TotalCount:   total,
		Page:         filter.Page,
		Limit:        filter.Limit,
		TotalPages:   utils.TotalPages(total, filter.Limit),
		Showing:      utils.Showing(filter.Page, filter.Limit, total),
		Rows:         rows[start:end],
	}, nil
}

// Weekly implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Weekly(ctx context.Context, session user.Session, req attendance.WeeklyRequest) (attendance.WeeklyResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.WeeklyResponse{}, err
	}

	today := s.today()
	start := weekStart(today)
	if req.WeekStart != "" {
		start, _ = time.ParseInLocation(validator.DateLayout, req.WeekStart, s.loc)
	}

	snap, err := s.load(ctx, session, req.Role)
	if err != nil {
		return attendance.WeeklyResponse{}, err
	}

	days := RangeDays(start, 7)
	labels := make([]string, len(days))
	for i, d := range days {
		labels[i] = d.Format(validator.DateLayout)
	}

	rows := make([]attendance.WeeklyRowResponse, 0, len(snap.roster))
	for _, row := range BuildRange(snap.roster, snap.docs, snap.holidays, days, today) {
		var totalMs int64
		doc := snap.docs[row.EmployeeID]
		for _, d := range days {
			if rec, ok := doc.Day(attendance.DateKey(d)); ok && rec.DurationMs != nil {
				totalMs += *rec.DurationMs
			}
		}
		rows = append(rows, attendance.WeeklyRowResponse{
			EmployeeID:      row.EmployeeID,
			Name:            row.Name,
			Role:            row.Role,
			Codes:           row.Codes,
			TotalPresent:    row.TotalPresent,
			TotalDurationMs: totalMs,
			TotalDuration:   attendance.FormatDuration(totalMs),
		})
	}

	return attendance.WeeklyResponse{
		WeekStart: start.Format(validator.DateLayout),
		Days:      labels,
		Rows:      rows,
	}, nil
}

// Monthly implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Monthly(ctx context.Context, session user.Session, req attendance.MonthlyRequest) (attendance.MonthlyResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.MonthlyResponse{}, err
	}

	year, month := s.resolveMonth(req.Month)
	rows, err := s.matrix(ctx, session, req.Role, year, month)
	if err != nil {
		return attendance.MonthlyResponse{}, err
	}

	resp := attendance.MonthlyResponse{
		Month:       fmt.Sprintf("%04d-%02d", year, int(month)),
		DaysInMonth: DaysInMonth(year, month),
		HasData:     len(rows) > 0,
		Rows:        make([]attendance.MonthlyRowResponse, 0, len(rows)),
	}
	if !resp.HasData {
		resp.Message = noDataMessage
	}
	for _, row := range rows {
		resp.Rows = append(resp.Rows, attendance.MonthlyRowResponse{
			EmployeeID:   row.EmployeeID,
			Name:         row.Name,
			Role:         row.Role,
			Codes:        row.Codes,
			TotalPresent: row.TotalPresent,
		})
	}
	return resp, nil
}

// ExportMonthly implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ExportMonthly(ctx context.Context, session user.Session, req attendance.MonthlyRequest) (attendance.ExportFile, error) {
	if err := req.Validate(); err != nil {
		return attendance.ExportFile{}, err
	}

	year, month := s.resolveMonth(req.Month)
	rows, err := s.matrix(ctx, session, req.Role, year, month)
	if err != nil {
		return attendance.ExportFile{}, err
	}
	if len(rows) == 0 {
		return attendance.ExportFile{}, attendance.ErrNoAttendanceData
	}

	sheet := time.Date(year, month, 1, 0, 0, 0, 0, s.loc).Format("Jan 2006")
	content, err := export.MonthlyAttendanceXLSX(sheet, DaysInMonth(year, month), rows)
	if err != nil {
		return attendance.ExportFile{}, fmt.Errorf("failed to render attendance export: %w", err)
	}

	return attendance.ExportFile{
		Filename:    fmt.Sprintf("attendance-%04d-%02d.xlsx", year, int(month)),
		ContentType: export.XLSXContentType,
		Content:     content,
	}, nil
}

// History implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) History(ctx context.Context, session user.Session, employeeID string, filter attendance.HistoryFilter) (attendance.HistoryResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.HistoryResponse{}, err
	}

	if session.SubjectID() != employeeID {
		if _, err := s.employeeService.Authorize(ctx, session, employeeID); err != nil {
			return attendance.HistoryResponse{}, err
		}
	}

	today := s.today()
	from := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, s.loc)
	to := today
	if filter.From != "" {
		from, _ = time.ParseInLocation(validator.DateLayout, filter.From, s.loc)
	}
	if filter.To != "" {
		to, _ = time.ParseInLocation(validator.DateLayout, filter.To, s.loc)
	}
	if dayNumber(to) < dayNumber(from) {
		return attendance.HistoryResponse{}, attendance.ErrInvalidDateRange
	}

	doc, err := s.attendanceRepo.GetDocument(ctx, employeeID)
	if err != nil {
		return attendance.HistoryResponse{}, fmt.Errorf("failed to load attendance: %w", err)
	}

	type dated struct {
		day time.Time
		rec attendance.Record
	}
	var found []dated
	for key, rec := range doc {
		day, err := attendance.ParseDateKey(key, s.loc)
		if err != nil {
			continue
		}
		if dayNumber(day) < dayNumber(from) || dayNumber(day) > dayNumber(to) {
			continue
		}
		found = append(found, dated{day: day, rec: rec})
	}
	sort.Slice(found, func(i, j int) bool { return found[i].day.Before(found[j].day) })

	records := make([]attendance.RecordResponse, 0, len(found))
	for _, f := range found {
		records = append(records, attendance.ToRecordResponse(attendance.DateKey(f.day), f.rec))
	}

	return attendance.HistoryResponse{
		EmployeeID: employeeID,
		From:       from.Format(validator.DateLayout),
		To:         to.Format(validator.DateLayout),
		Records:    records,
	}, nil
}

// MonthRow implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MonthRow(ctx context.Context, employeeID string, year int, month int) (attendance.MonthlyRow, error) {
	e, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.MonthlyRow{}, err
	}

	var (
		doc      attendance.Document
		holidays holiday.Set
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d, err := s.attendanceRepo.GetDocument(gCtx, employeeID)
		if err != nil {
			return fmt.Errorf("failed to load attendance: %w", err)
		}
		doc = d
		return nil
	})
	g.Go(func() error {
		list, err := s.holidayRepo.List(gCtx)
		if err != nil {
			return fmt.Errorf("failed to list holidays: %w", err)
		}
		holidays = holiday.NewSet(list)
		return nil
	})
	if err := g.Wait(); err != nil {
		return attendance.MonthlyRow{}, err
	}

	days := MonthDays(year, time.Month(month), s.loc)
	return BuildRow(e, doc, holidays, days, s.today()), nil
}

func (s *AttendanceServiceImpl) matrix(ctx context.Context, session user.Session, role string, year int, month time.Month) ([]attendance.MonthlyRow, error) {
	snap, err := s.load(ctx, session, role)
	if err != nil {
		return nil, err
	}
	return BuildMonthlyMatrix(snap.roster, snap.docs, snap.holidays, year, month, s.today()), nil
}

func (s *AttendanceServiceImpl) resolveMonth(value string) (int, time.Month) {
	if m, ok := validator.IsValidMonth(value); ok {
		return m.Year(), m.Month()
	}
	today := s.today()
	return today.Year(), today.Month()
}

// weekStart returns the Monday on or before t.
func weekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	d := t.AddDate(0, 0, -offset)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, t.Location())
}
