package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/geocode"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/lock"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/utils"
)

type GateConfig struct {
	RadiusKm       float64
	GeocodeTimeout time.Duration
	LockTTL        time.Duration
	Location       *time.Location
	Now            func() time.Time
}

type GateServiceImpl struct {
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	geocoder       geocode.Geocoder
	locker         lock.Locker

	radiusKm       float64
	geocodeTimeout time.Duration
	lockTTL        time.Duration
	loc            *time.Location
	now            func() time.Time
}

func NewGateService(
	cfg GateConfig,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	geocoder geocode.Geocoder,
	locker lock.Locker,
) attendance.GateService {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.GeocodeTimeout <= 0 {
		cfg.GeocodeTimeout = 10 * time.Second
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = 30 * time.Second
	}
	return &GateServiceImpl{
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		geocoder:       geocoder,
		locker:         locker,
		radiusKm:       cfg.RadiusKm,
		geocodeTimeout: cfg.GeocodeTimeout,
		lockTTL:        cfg.LockTTL,
		loc:            cfg.Location,
		now:            cfg.Now,
	}
}

// clock returns the current local time at millisecond precision, the
// precision every store keeps.
func (s *GateServiceImpl) clock() time.Time {
	return s.now().In(s.loc).Truncate(time.Millisecond)
}

// Today implements attendance.GateService.
func (s *GateServiceImpl) Today(ctx context.Context, session user.Session) (attendance.TodayResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, session.SubjectID())
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	key := attendance.DateKey(s.clock())
	rec, exists, err := s.today(ctx, emp.ID, key)
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	resp := attendance.TodayResponse{
		Date:        key,
		State:       attendance.StateOf(rec, exists),
		HasLocation: emp.HasLocation(),
	}
	if exists {
		r := attendance.ToRecordResponse(key, rec)
		resp.Record = &r
	}
	return resp, nil
}

// Evaluate implements attendance.GateService.
func (s *GateServiceImpl) Evaluate(ctx context.Context, session user.Session, req attendance.GateRequest) (attendance.GateResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.GateResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, session.SubjectID())
	if err != nil {
		return attendance.GateResponse{}, err
	}

	key := attendance.DateKey(s.clock())
	rec, exists, err := s.today(ctx, emp.ID, key)
	if err != nil {
		return attendance.GateResponse{}, err
	}

	resp := attendance.GateResponse{
		Date:     key,
		State:    attendance.StateOf(rec, exists),
		RadiusKm: s.radiusKm,
	}
	if !emp.HasLocation() {
		resp.Message = attendance.ErrLocationNotAssigned.Error()
		return resp, nil
	}

	resp.DistanceKm = s.distance(emp, req)
	resp.WithinRadius = resp.DistanceKm <= s.radiusKm
	if !resp.WithinRadius {
		resp.Message = s.outsideRadius(resp.DistanceKm).Error()
		return resp, nil
	}
	if resp.State == attendance.StateCheckedOut {
		resp.Message = attendance.ErrAlreadyCheckedOut.Error()
		return resp, nil
	}

	address, err := s.resolveAddress(ctx, req)
	if err != nil {
		resp.Message = err.Error()
		return resp, nil
	}
	resp.Address = address
	resp.CanCheckIn = resp.State == attendance.StateNotCheckedIn
	resp.CanCheckOut = resp.State == attendance.StateCheckedIn
	return resp, nil
}

// CheckIn implements attendance.GateService.
func (s *GateServiceImpl) CheckIn(ctx context.Context, session user.Session, req attendance.GateRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, session.SubjectID())
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if !emp.HasLocation() {
		return attendance.RecordResponse{}, attendance.ErrLocationNotAssigned
	}

	now := s.clock()
	key := attendance.DateKey(now)

	release, err := s.acquire(ctx, "check-in", emp.ID, key)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	defer release()

	rec, exists, err := s.today(ctx, emp.ID, key)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	switch attendance.StateOf(rec, exists) {
	case attendance.StateCheckedIn:
		return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedIn
	case attendance.StateCheckedOut:
		return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedOut
	}

	if d := s.distance(emp, req); d > s.radiusKm {
		return attendance.RecordResponse{}, s.outsideRadius(d)
	}

	address, err := s.resolveAddress(ctx, req)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	fields := map[string]any{
		attendance.FieldCheckIn:        now,
		attendance.FieldCheckInAddress: address,
		attendance.FieldStatus:         attendance.StatusPresent,
	}
	if err := s.attendanceRepo.MergeDay(ctx, emp.ID, key, fields); err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to record check-in: %w", err)
	}

	slog.Info("Employee checked in", "employee_id", emp.ID, "date", key)
	return attendance.ToRecordResponse(key, rec.Apply(fields)), nil
}

// CheckOut implements attendance.GateService.
func (s *GateServiceImpl) CheckOut(ctx context.Context, session user.Session, req attendance.GateRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, session.SubjectID())
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if !emp.HasLocation() {
		return attendance.RecordResponse{}, attendance.ErrLocationNotAssigned
	}

	now := s.clock()
	key := attendance.DateKey(now)

	release, err := s.acquire(ctx, "check-out", emp.ID, key)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	defer release()

	// Always re-read: another device may have checked in or out already.
	rec, exists, err := s.today(ctx, emp.ID, key)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	switch attendance.StateOf(rec, exists) {
	case attendance.StateNotCheckedIn:
		return attendance.RecordResponse{}, attendance.ErrNotCheckedIn
	case attendance.StateCheckedOut:
		return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedOut
	}

	if d := s.distance(emp, req); d > s.radiusKm {
		return attendance.RecordResponse{}, s.outsideRadius(d)
	}

	address, err := s.resolveAddress(ctx, req)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	fields := map[string]any{
		attendance.FieldCheckOut:        now,
		attendance.FieldCheckOutAddress: address,
		attendance.FieldDuration:        now.UnixMilli() - rec.CheckIn.UnixMilli(),
		attendance.FieldStatus:          attendance.StatusPresent,
	}
	if err := s.attendanceRepo.UpdateDay(ctx, emp.ID, key, fields); err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.RecordResponse{}, attendance.ErrNotCheckedIn
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to record check-out: %w", err)
	}

	slog.Info("Employee checked out", "employee_id", emp.ID, "date", key)
	return attendance.ToRecordResponse(key, rec.Apply(fields)), nil
}

func (s *GateServiceImpl) today(ctx context.Context, employeeID, key string) (attendance.Record, bool, error) {
	doc, err := s.attendanceRepo.GetDocument(ctx, employeeID)
	if err != nil {
		return attendance.Record{}, false, fmt.Errorf("failed to load attendance: %w", err)
	}
	rec, exists := doc.Day(key)
	return rec, exists, nil
}

func (s *GateServiceImpl) acquire(ctx context.Context, action, employeeID, key string) (func(), error) {
	release, err := s.locker.Acquire(ctx, "attendance:"+action+":"+employeeID+":"+key, s.lockTTL)
	if err != nil {
		if errors.Is(err, lock.ErrLocked) {
			return nil, attendance.ErrRequestInFlight
		}
		return nil, fmt.Errorf("failed to acquire attendance lock: %w", err)
	}
	return release, nil
}

func (s *GateServiceImpl) distance(emp employee.Employee, req attendance.GateRequest) float64 {
	return utils.CalculateHaversineDistance(
		req.Latitude, req.Longitude,
		emp.Location.Latitude, emp.Location.Longitude,
	)
}

func (s *GateServiceImpl) outsideRadius(distanceKm float64) error {
	return fmt.Errorf("%w: you must be within %s km of your assigned location (currently %.2f km away)",
		attendance.ErrOutsideAllowedRadius, formatKm(s.radiusKm), distanceKm)
}

// resolveAddress fails closed: no address, no write.
func (s *GateServiceImpl) resolveAddress(ctx context.Context, req attendance.GateRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.geocodeTimeout)
	defer cancel()

	address, err := s.geocoder.Reverse(ctx, req.Latitude, req.Longitude)
	if err != nil || strings.TrimSpace(address) == "" {
		slog.Warn("Reverse geocoding failed", "latitude", req.Latitude, "longitude", req.Longitude, "error", err)
		return "", attendance.ErrAddressUnavailable
	}
	return address, nil
}

func formatKm(km float64) string {
	return strconv.FormatFloat(km, 'f', -1, 64)
}
