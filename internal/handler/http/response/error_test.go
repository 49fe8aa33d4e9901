package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/payslip"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", validator.ValidationErrors{{Field: "month", Message: "required"}}, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"outside radius wrapped", fmt.Errorf("%w: within 5 km", attendance.ErrOutsideAllowedRadius), http.StatusBadRequest, "OUTSIDE_ALLOWED_RADIUS"},
		{"in flight", attendance.ErrRequestInFlight, http.StatusConflict, "REQUEST_IN_FLIGHT"},
		{"duplicate payslip", payslip.ErrPayslipAlreadyExists, http.StatusConflict, "PAYSLIP_ALREADY_EXISTS"},
		{"no data", attendance.ErrNoAttendanceData, http.StatusNotFound, "NO_ATTENDANCE_DATA"},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			HandleError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantCode, body.Error.Code)
		})
	}
}

func TestHandleError_KeepsDistanceInMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	err := fmt.Errorf("%w: you must be within 5 km of your assigned location (currently 11.12 km away)", attendance.ErrOutsideAllowedRadius)

	HandleError(rec, err)

	assert.Contains(t, rec.Body.String(), "currently 11.12 km away")
}
