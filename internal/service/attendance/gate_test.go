package attendance

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/lock"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGeocoder struct {
	mu      sync.Mutex
	address string
	err     error
	calls   int
}

func (g *stubGeocoder) Reverse(ctx context.Context, lat, lng float64) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	return g.address, g.err
}

type gateFixture struct {
	svc        attendance.GateService
	attendance *memory.AttendanceRepository
	geocoder   *stubGeocoder
	locker     *lock.MemoryLocker
	now        time.Time
}

var employeeSession = user.Session{UserID: "u1", EmployeeID: "e1", Role: user.RoleEmployee}

func newGateFixture(t *testing.T) *gateFixture {
	t.Helper()
	f := &gateFixture{
		attendance: memory.NewAttendanceRepository(),
		geocoder:   &stubGeocoder{address: "MG Road, Bengaluru"},
		locker:     lock.NewMemoryLocker(),
		now:        time.Date(2025, 3, 3, 9, 15, 30, 123456789, time.UTC),
	}
	employees := memory.NewEmployeeRepository(
		employee.Employee{ID: "e1", Name: "Asha", ManagerID: "m1", Location: &employee.Location{Latitude: 12.90, Longitude: 77.59}},
		employee.Employee{ID: "e2", Name: "Bala", ManagerID: "m1"},
	)
	f.svc = NewGateService(GateConfig{
		RadiusKm: 5,
		Location: time.UTC,
		Now:      func() time.Time { return f.now },
	}, employees, f.attendance, f.geocoder, f.locker)
	return f
}

var atOffice = attendance.GateRequest{Latitude: 12.90, Longitude: 77.59}

func TestGateService_CheckIn_IdenticalCoordinates(t *testing.T) {
	// Arrange
	f := newGateFixture(t)

	// Act
	resp, err := f.svc.CheckIn(context.Background(), employeeSession, atOffice)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "03-03-2025", resp.Date)
	assert.Equal(t, "MG Road, Bengaluru", resp.CheckInAddress)
	assert.Equal(t, attendance.StatusPresent, resp.Status)
	require.NotNil(t, resp.CheckIn)
	assert.Nil(t, resp.CheckOut)

	doc, err := f.attendance.GetDocument(context.Background(), "e1")
	require.NoError(t, err)
	rec, ok := doc.Day("03-03-2025")
	require.True(t, ok)
	assert.Equal(t, attendance.StateCheckedIn, attendance.StateOf(rec, ok))
}

func TestGateService_CheckIn_OutsideRadius(t *testing.T) {
	f := newGateFixture(t)

	// roughly 11 km north
	_, err := f.svc.CheckIn(context.Background(), employeeSession, attendance.GateRequest{Latitude: 13.00, Longitude: 77.59})

	require.Error(t, err)
	assert.ErrorIs(t, err, attendance.ErrOutsideAllowedRadius)
	assert.Contains(t, err.Error(), "within 5 km")
	assert.Equal(t, 0, f.geocoder.calls)

	doc, _ := f.attendance.GetDocument(context.Background(), "e1")
	assert.Empty(t, doc)
}

func TestGateService_CheckIn_AddressUnavailable(t *testing.T) {
	f := newGateFixture(t)
	f.geocoder.err = errors.New("upstream timeout")

	_, err := f.svc.CheckIn(context.Background(), employeeSession, atOffice)

	assert.ErrorIs(t, err, attendance.ErrAddressUnavailable)
	doc, _ := f.attendance.GetDocument(context.Background(), "e1")
	assert.Empty(t, doc)
}

func TestGateService_CheckIn_BlankAddressFailsClosed(t *testing.T) {
	f := newGateFixture(t)
	f.geocoder.address = "  "

	_, err := f.svc.CheckIn(context.Background(), employeeSession, atOffice)

	assert.ErrorIs(t, err, attendance.ErrAddressUnavailable)
}

func TestGateService_CheckIn_Twice(t *testing.T) {
	f := newGateFixture(t)

	_, err := f.svc.CheckIn(context.Background(), employeeSession, atOffice)
	require.NoError(t, err)

	_, err = f.svc.CheckIn(context.Background(), employeeSession, atOffice)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestGateService_CheckIn_NoAssignedLocation(t *testing.T) {
	f := newGateFixture(t)
	session := user.Session{UserID: "u2", EmployeeID: "e2", Role: user.RoleEmployee}

	_, err := f.svc.CheckIn(context.Background(), session, atOffice)

	assert.ErrorIs(t, err, attendance.ErrLocationNotAssigned)
}

func TestGateService_CheckIn_InvalidCoordinates(t *testing.T) {
	f := newGateFixture(t)

	_, err := f.svc.CheckIn(context.Background(), employeeSession, attendance.GateRequest{Latitude: 91, Longitude: 77.59})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "latitude")
}

func TestGateService_CheckIn_RequestInFlight(t *testing.T) {
	// Arrange
	f := newGateFixture(t)
	release, err := f.locker.Acquire(context.Background(), "attendance:check-in:e1:03-03-2025", time.Minute)
	require.NoError(t, err)

	// Act
	_, err = f.svc.CheckIn(context.Background(), employeeSession, atOffice)

	// Assert
	assert.ErrorIs(t, err, attendance.ErrRequestInFlight)

	release()
	_, err = f.svc.CheckIn(context.Background(), employeeSession, atOffice)
	assert.NoError(t, err)
}

func TestGateService_CheckOut_WithoutCheckIn(t *testing.T) {
	f := newGateFixture(t)

	_, err := f.svc.CheckOut(context.Background(), employeeSession, atOffice)

	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
	assert.Equal(t, "please check in first", err.Error())
}

func TestGateService_CheckOut_ExactDuration(t *testing.T) {
	// Arrange
	f := newGateFixture(t)
	_, err := f.svc.CheckIn(context.Background(), employeeSession, atOffice)
	require.NoError(t, err)
	checkedIn := f.now.Truncate(time.Millisecond)

	f.now = f.now.Add(8*time.Hour + 5*time.Minute + 250*time.Millisecond)
	f.geocoder.address = "Brigade Road, Bengaluru"

	// Act
	resp, err := f.svc.CheckOut(context.Background(), employeeSession, atOffice)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, resp.CheckOut)
	require.NotNil(t, resp.DurationMs)
	assert.Equal(t, resp.CheckOut.UnixMilli()-checkedIn.UnixMilli(), *resp.DurationMs)
	assert.Equal(t, "8h 5m", resp.Duration)
	assert.Equal(t, "MG Road, Bengaluru", resp.CheckInAddress)
	assert.Equal(t, "Brigade Road, Bengaluru", resp.CheckOutAddress)

	doc, _ := f.attendance.GetDocument(context.Background(), "e1")
	rec, _ := doc.Day("03-03-2025")
	require.NotNil(t, rec.DurationMs)
	assert.Equal(t, rec.CheckOut.UnixMilli()-rec.CheckIn.UnixMilli(), *rec.DurationMs)

	_, err = f.svc.CheckOut(context.Background(), employeeSession, atOffice)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
	_, err = f.svc.CheckIn(context.Background(), employeeSession, atOffice)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestGateService_CheckIn_LeavesOtherDatesUntouched(t *testing.T) {
	f := newGateFixture(t)
	f.attendance.SeedDay("e1", "28-02-2025", map[string]any{
		attendance.FieldStatus:         attendance.StatusPresent,
		attendance.FieldCheckInAddress: "Old Office",
	})

	_, err := f.svc.CheckIn(context.Background(), employeeSession, atOffice)
	require.NoError(t, err)

	doc, _ := f.attendance.GetDocument(context.Background(), "e1")
	assert.Len(t, doc, 2)
	old, ok := doc.Day("28-02-2025")
	require.True(t, ok)
	assert.Equal(t, "Old Office", old.CheckInAddress)
}

func TestGateService_Evaluate(t *testing.T) {
	f := newGateFixture(t)

	resp, err := f.svc.Evaluate(context.Background(), employeeSession, atOffice)
	require.NoError(t, err)
	assert.True(t, resp.WithinRadius)
	assert.InDelta(t, 0.0, resp.DistanceKm, 1e-9)
	assert.True(t, resp.CanCheckIn)
	assert.False(t, resp.CanCheckOut)

	f.geocoder.err = errors.New("down")
	resp, err = f.svc.Evaluate(context.Background(), employeeSession, atOffice)
	require.NoError(t, err)
	assert.False(t, resp.CanCheckIn)
	assert.Equal(t, attendance.ErrAddressUnavailable.Error(), resp.Message)

	resp, err = f.svc.Evaluate(context.Background(), employeeSession, attendance.GateRequest{Latitude: 13.2, Longitude: 77.59})
	require.NoError(t, err)
	assert.False(t, resp.WithinRadius)
	assert.False(t, resp.CanCheckIn)
}

func TestGateService_Today(t *testing.T) {
	f := newGateFixture(t)

	resp, err := f.svc.Today(context.Background(), employeeSession)
	require.NoError(t, err)
	assert.Equal(t, attendance.StateNotCheckedIn, resp.State)
	assert.True(t, resp.HasLocation)
	assert.Nil(t, resp.Record)

	_, err = f.svc.CheckIn(context.Background(), employeeSession, atOffice)
	require.NoError(t, err)

	resp, err = f.svc.Today(context.Background(), employeeSession)
	require.NoError(t, err)
	assert.Equal(t, attendance.StateCheckedIn, resp.State)
	require.NotNil(t, resp.Record)
}

// utcAttendance hands stored timestamps back in UTC, as Firestore and
// MongoDB do.
type utcAttendance struct {
	*memory.AttendanceRepository
}

func (r utcAttendance) GetDocument(ctx context.Context, employeeID string) (attendance.Document, error) {
	doc, err := r.AttendanceRepository.GetDocument(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	for key, rec := range doc {
		if rec.CheckIn != nil {
			t := rec.CheckIn.UTC()
			rec.CheckIn = &t
		}
		if rec.CheckOut != nil {
			t := rec.CheckOut.UTC()
			rec.CheckOut = &t
		}
		doc[key] = rec
	}
	return doc, nil
}

func TestGateService_BusinessTimezoneWithUTCStore(t *testing.T) {
	// Arrange
	ist, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	store := memory.NewAttendanceRepository()
	employees := memory.NewEmployeeRepository(
		employee.Employee{ID: "e1", Name: "Asha", ManagerID: "m1", Location: &employee.Location{Latitude: 12.90, Longitude: 77.59}},
	)
	// 00:30 IST on 03-03 is still 02-03 in UTC
	now := time.Date(2025, 3, 3, 0, 30, 0, 0, ist)
	svc := NewGateService(GateConfig{
		RadiusKm: 5,
		Location: ist,
		Now:      func() time.Time { return now.UTC() },
	}, employees, utcAttendance{store}, &stubGeocoder{address: "MG Road, Bengaluru"}, lock.NewMemoryLocker())
	ctx := context.Background()

	// Act
	in, err := svc.CheckIn(ctx, employeeSession, atOffice)
	require.NoError(t, err)

	now = time.Date(2025, 3, 3, 18, 45, 0, 0, ist)
	today, err := svc.Today(ctx, employeeSession)
	require.NoError(t, err)

	out, err := svc.CheckOut(ctx, employeeSession, atOffice)
	require.NoError(t, err)

	now = time.Date(2025, 3, 4, 0, 10, 0, 0, ist)
	nextDay, err := svc.Today(ctx, employeeSession)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, "03-03-2025", in.Date)
	assert.Equal(t, "03-03-2025", today.Date)
	assert.Equal(t, attendance.StateCheckedIn, today.State)
	assert.Equal(t, "03-03-2025", out.Date)
	require.NotNil(t, out.DurationMs)
	assert.Equal(t, (18*time.Hour + 15*time.Minute).Milliseconds(), *out.DurationMs)
	assert.Equal(t, "18h 15m", out.Duration)

	assert.Equal(t, "04-03-2025", nextDay.Date)
	assert.Equal(t, attendance.StateNotCheckedIn, nextDay.State)

	doc, err := store.GetDocument(ctx, "e1")
	require.NoError(t, err)
	_, onUTCDay := doc.Day("02-03-2025")
	assert.False(t, onUTCDay)
}
