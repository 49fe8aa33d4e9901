package payslip

import (
	"testing"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/payslip"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name       string
		basic      string
		allowances []string
		deductions []string
		days       int
		lopDays    int
		wantGross  string
		wantLOP    string
		wantNet    string
		wantErr    error
	}{
		{
			name:       "no loss of pay",
			basic:      "50000",
			allowances: []string{"5000", "2500.50"},
			deductions: []string{"1800", "200"},
			days:       30,
			wantGross:  "57500.50",
			wantLOP:    "0.00",
			wantNet:    "55500.50",
		},
		{
			name:       "loss of pay rounded to cents",
			basic:      "31000",
			allowances: []string{"2000"},
			deductions: []string{"1500"},
			days:       31,
			lopDays:    1,
			wantGross:  "33000.00",
			wantLOP:    "1064.52",
			wantNet:    "30435.48",
		},
		{
			name:       "deductions exceed gross",
			basic:      "1000",
			deductions: []string{"1000.01"},
			days:       28,
			wantErr:    payslip.ErrNegativeNetPay,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Calculate(decimal.RequireFromString(tt.basic), components(tt.allowances), components(tt.deductions), tt.days, tt.lopDays)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantGross, got.GrossPay.StringFixed(2))
			assert.Equal(t, tt.wantLOP, got.LOPAmount.StringFixed(2))
			assert.Equal(t, tt.wantNet, got.NetPay.StringFixed(2))
		})
	}
}

func components(amounts []string) []payslip.Component {
	out := make([]payslip.Component, 0, len(amounts))
	for _, a := range amounts {
		out = append(out, payslip.Component{Name: "c" + a, Amount: decimal.RequireFromString(a)})
	}
	return out
}
