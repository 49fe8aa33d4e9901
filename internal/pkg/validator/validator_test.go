package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsNumeric(t *testing.T) {
	valid := []string{"123", "0", "9876543210"}
	invalid := []string{"abc", "123a", "", "-123"}
	for _, s := range valid {
		if !IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = true, want false", s)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", ""}
	for _, s := range valid {
		if _, ok := IsValidDate(s); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidDateKey(t *testing.T) {
	valid := []string{"01-03-2025", "29-02-2024", "31-12-1999"}
	invalid := []string{"2025-03-01", "29-02-2025", "32-01-2025", "1-3-2025", ""}
	for _, s := range valid {
		if _, ok := IsValidDateKey(s); !ok {
			t.Errorf("IsValidDateKey(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDateKey(s); ok {
			t.Errorf("IsValidDateKey(%q) = true, want false", s)
		}
	}
}

func TestIsValidMonth(t *testing.T) {
	m, ok := IsValidMonth("2025-03")
	require.True(t, ok)
	assert.Equal(t, 2025, m.Year())
	assert.Equal(t, 3, int(m.Month()))

	_, ok = IsValidMonth("03-2025")
	assert.False(t, ok)
	_, ok = IsValidMonth("2025-13")
	assert.False(t, ok)
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"a", "b", "c"}
	if !IsInSlice("a", slice) {
		t.Errorf("IsInSlice('a') = false, want true")
	}
	if IsInSlice("d", slice) {
		t.Errorf("IsInSlice('d') = true, want false")
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "latitude", Message: "invalid"},
		{Field: "month", Message: "required"},
	}
	assert.Equal(t, "latitude: invalid; month: required", errs.Error())
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "latitude", Message: "invalid"},
		{Field: "month", Message: "required"},
	}
	assert.Equal(t, map[string]string{"latitude": "invalid", "month": "required"}, errs.ToMap())
}

type coordinates struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
	Label     string  `json:"label" validate:"required,max=10"`
}

func TestValidateStruct_Valid(t *testing.T) {
	err := ValidateStruct(coordinates{Latitude: 12.90, Longitude: 77.59, Label: "office"})
	assert.NoError(t, err)
}

func TestValidateStruct_ReportsJSONFieldNames(t *testing.T) {
	err := ValidateStruct(coordinates{Latitude: 91, Longitude: 181})
	require.Error(t, err)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	m := verrs.ToMap()
	assert.Equal(t, "latitude must be between -90 and 90", m["latitude"])
	assert.Equal(t, "longitude must be between -180 and 180", m["longitude"])
	assert.Equal(t, "label is required", m["label"])
}
