package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	p, l := NormalizePage(0, 0)
	assert.Equal(t, 1, p)
	assert.Equal(t, DefaultPageLimit, l)

	p, l = NormalizePage(3, 500)
	assert.Equal(t, 3, p)
	assert.Equal(t, MaxPageLimit, l)
}

func TestShowing(t *testing.T) {
	assert.Equal(t, "0 of 0", Showing(1, 20, 0))
	assert.Equal(t, "1-20 of 45", Showing(1, 20, 45))
	assert.Equal(t, "41-45 of 45", Showing(3, 20, 45))
	assert.Equal(t, "0 of 45", Showing(9, 20, 45))
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 3, TotalPages(45, 20))
	assert.Equal(t, 0, TotalPages(0, 20))
	assert.Equal(t, 1, TotalPages(20, 20))
}

func TestPageBounds(t *testing.T) {
	s, e := PageBounds(2, 10, 15)
	assert.Equal(t, 10, s)
	assert.Equal(t, 15, e)

	s, e = PageBounds(5, 10, 15)
	assert.Equal(t, 15, s)
	assert.Equal(t, 15, e)
}
