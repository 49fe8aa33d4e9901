package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/leave"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/validator"
	"github.com/google/uuid"
)

type LeaveServiceImpl struct {
	employeeService employee.EmployeeService
	leaveRepo       leave.LeaveRepository
	loc             *time.Location
	now             func() time.Time
}

func NewLeaveService(employeeService employee.EmployeeService, leaveRepo leave.LeaveRepository, loc *time.Location) leave.LeaveService {
	if loc == nil {
		loc = time.UTC
	}
	return &LeaveServiceImpl{
		employeeService: employeeService,
		leaveRepo:       leaveRepo,
		loc:             loc,
		now:             time.Now,
	}
}

// Apply implements leave.LeaveService.
func (s *LeaveServiceImpl) Apply(ctx context.Context, session user.Session, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	from, _ := time.ParseInLocation(validator.DateLayout, req.FromDate, s.loc)
	to, _ := time.ParseInLocation(validator.DateLayout, req.ToDate, s.loc)

	employeeID := session.SubjectID()
	existing, err := s.leaveRepo.Get(ctx, employeeID)
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to get leave requests: %w", err)
	}

	request := leave.LeaveRequest{
		ID:          uuid.NewString(),
		LeaveType:   req.LeaveType,
		FromDate:    from,
		ToDate:      to,
		Description: req.Description,
		Status:      leave.LeaveRequestStatusPending,
		SubmittedAt: s.now().UTC(),
	}
	if err := s.leaveRepo.Append(ctx, employeeID, request); err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to submit leave request: %w", err)
	}

	slog.Info("Leave request submitted", "employee_id", employeeID, "type", request.LeaveType, "days", request.TotalDays())
	return leave.ToResponse(len(existing), request), nil
}

// ListMine implements leave.LeaveService.
func (s *LeaveServiceImpl) ListMine(ctx context.Context, session user.Session) ([]leave.LeaveResponse, error) {
	return s.list(ctx, session.SubjectID())
}

// List implements leave.LeaveService.
func (s *LeaveServiceImpl) List(ctx context.Context, session user.Session, employeeID string) ([]leave.LeaveResponse, error) {
	if session.SubjectID() != employeeID {
		if _, err := s.employeeService.Authorize(ctx, session, employeeID); err != nil {
			return nil, err
		}
	}
	return s.list(ctx, employeeID)
}

func (s *LeaveServiceImpl) list(ctx context.Context, employeeID string) ([]leave.LeaveResponse, error) {
	requests, err := s.leaveRepo.Get(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get leave requests: %w", err)
	}
	responses := make([]leave.LeaveResponse, 0, len(requests))
	for i, r := range requests {
		responses = append(responses, leave.ToResponse(i, r))
	}
	return responses, nil
}

// Pending implements leave.LeaveService.
func (s *LeaveServiceImpl) Pending(ctx context.Context, session user.Session) ([]leave.EmployeeLeaveResponse, error) {
	roster, err := s.employeeService.Roster(ctx, session, "")
	if err != nil {
		return nil, err
	}

	var pending []leave.EmployeeLeaveResponse
	for _, e := range roster {
		requests, err := s.leaveRepo.Get(ctx, e.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get leave requests for %s: %w", e.ID, err)
		}
		for i, r := range requests {
			if r.Status != leave.LeaveRequestStatusPending {
				continue
			}
			pending = append(pending, leave.EmployeeLeaveResponse{
				EmployeeID:   e.ID,
				EmployeeName: e.Name,
				Leave:        leave.ToResponse(i, r),
			})
		}
	}
	if pending == nil {
		pending = []leave.EmployeeLeaveResponse{}
	}
	return pending, nil
}

// UpdateStatus implements leave.LeaveService.
func (s *LeaveServiceImpl) UpdateStatus(ctx context.Context, session user.Session, employeeID string, index int, req leave.UpdateLeaveStatusRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}
	if _, err := s.employeeService.Authorize(ctx, session, employeeID); err != nil {
		return leave.LeaveResponse{}, err
	}

	requests, err := s.leaveRepo.Get(ctx, employeeID)
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to get leave requests: %w", err)
	}
	if index < 0 || index >= len(requests) {
		return leave.LeaveResponse{}, leave.ErrLeaveRequestNotFound
	}

	requests[index].Status = leave.LeaveRequestStatus(req.Status)
	if err := s.leaveRepo.Replace(ctx, employeeID, requests); err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to update leave request: %w", err)
	}

	slog.Info("Leave request status updated", "employee_id", employeeID, "index", index, "status", req.Status, "by", session.UserID)
	return leave.ToResponse(index, requests[index]), nil
}

// Delete implements leave.LeaveService. The owner may withdraw a pending
// request; managers may remove any entry of their roster.
func (s *LeaveServiceImpl) Delete(ctx context.Context, session user.Session, employeeID string, index int) error {
	own := session.SubjectID() == employeeID
	if !own {
		if _, err := s.employeeService.Authorize(ctx, session, employeeID); err != nil {
			return err
		}
	}

	requests, err := s.leaveRepo.Get(ctx, employeeID)
	if err != nil {
		return fmt.Errorf("failed to get leave requests: %w", err)
	}
	if index < 0 || index >= len(requests) {
		return leave.ErrLeaveRequestNotFound
	}
	if own && !session.IsManager() && requests[index].Status != leave.LeaveRequestStatusPending {
		return employee.ErrUnauthorized
	}

	requests = append(requests[:index], requests[index+1:]...)
	if err := s.leaveRepo.Replace(ctx, employeeID, requests); err != nil {
		return fmt.Errorf("failed to delete leave request: %w", err)
	}
	return nil
}

// Approved implements leave.LeaveService.
func (s *LeaveServiceImpl) Approved(ctx context.Context, employeeID string, year int, month int) ([]leave.LeaveRequest, error) {
	requests, err := s.leaveRepo.Get(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get leave requests: %w", err)
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, s.loc)
	last := first.AddDate(0, 1, -1)

	var approved []leave.LeaveRequest
	for _, r := range requests {
		if r.Status != leave.LeaveRequestStatusApproved {
			continue
		}
		if r.ToDate.Before(first) || r.FromDate.After(last) {
			continue
		}
		approved = append(approved, r)
	}
	return approved, nil
}
