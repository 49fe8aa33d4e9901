package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	Daily(w http.ResponseWriter, r *http.Request)
	Weekly(w http.ResponseWriter, r *http.Request)
	Monthly(w http.ResponseWriter, r *http.Request)
	ExportMonthly(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	MyHistory(w http.ResponseWriter, r *http.Request)

	Today(w http.ResponseWriter, r *http.Request)
	Evaluate(w http.ResponseWriter, r *http.Request)
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	gateService       attendance.GateService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, gateService attendance.GateService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		gateService:       gateService,
	}
}

// Daily implements AttendanceHandler.
func (h *attendanceHandlerImpl) Daily(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionOrFail(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	filter := attendance.DailyFilter{
		Date:   query.Get("date"),
		Role:   query.Get("role"),
		Search: query.Get("search"),
		Page:   queryInt(r, "page"),
		Limit:  queryInt(r, "limit"),
	}

	result, err := h.attendanceService.Daily(r.Context(), session, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Weekly implements AttendanceHandler.
func (h *attendanceHandlerImpl) Weekly(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionOrFail(w, r)
	if !ok {
		return
	}

	req := attendance.WeeklyRequest{
		WeekStart: r.URL.Query().Get("week_start"),
		Role:      r.URL.Query().Get("role"),
	}

	result, err := h.attendanceService.Weekly(r.Context(), session, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func monthlyRequest(r *http.Request) attendance.MonthlyRequest {
	return attendance.MonthlyRequest{
		Month: r.URL.Query().Get("month"),
		Role:  r.URL.Query().Get("role"),
	}
}

// Monthly implements AttendanceHandler.
func (h *attendanceHandlerImpl) Monthly(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionOrFail(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.Monthly(r.Context(), session, monthlyRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if !result.HasData {
		response.SuccessWithMessage(w, result.Message, result)
		return
	}
	response.Success(w, result)
}

// ExportMonthly implements AttendanceHandler.
func (h *attendanceHandlerImpl) ExportMonthly(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionOrFail(w, r)
	if !ok {
		return
	}

	file, err := h.attendanceService.ExportMonthly(r.Context(), session, monthlyRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, file.Filename, file.ContentType, file.Content)
}

// History implements AttendanceHandler.
func (h *attendanceHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionOrFail(w, r)
	if !ok {
		return
	}

	filter := attendance.HistoryFilter{
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	}

	result, err := h.attendanceService.History(r.Context(), session, chi.URLParam(r, "id"), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MyHistory implements AttendanceHandler.
func (h *attendanceHandlerImpl) MyHistory(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionOrFail(w, r)
	if !ok {
		return
	}

	filter := attendance.HistoryFilter{
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	}

	result, err := h.attendanceService.History(r.Context(), session, session.SubjectID(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Today implements AttendanceHandler.
func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionOrFail(w, r)
	if !ok {
		return
	}

	result, err := h.gateService.Today(r.Context(), session)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func decodeGateRequest(w http.ResponseWriter, r *http.Request) (attendance.GateRequest, bool) {
	var req attendance.GateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return req, false
	}
	return req, true
}

// Evaluate implements AttendanceHandler.
func (h *attendanceHandlerImpl) Evaluate(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionOrFail(w, r)
	if !ok {
		return
	}
	req, ok := decodeGateRequest(w, r)
	if !ok {
		return
	}

	result, err := h.gateService.Evaluate(r.Context(), session, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionOrFail(w, r)
	if !ok {
		return
	}
	req, ok := decodeGateRequest(w, r)
	if !ok {
		return
	}

	result, err := h.gateService.CheckIn(r.Context(), session, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Check in successful", result)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionOrFail(w, r)
	if !ok {
		return
	}
	req, ok := decodeGateRequest(w, r)
	if !ok {
		return
	}

	result, err := h.gateService.CheckOut(r.Context(), session, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Check out successful", result)
}
