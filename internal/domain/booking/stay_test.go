package booking

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lodgeworks/service-rentals/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustStay(t *testing.T, checkIn, checkOut time.Time) Stay {
	t.Helper()
	s, err := NewStay(checkIn, checkOut)
	require.NoError(t, err)
	return s
}

func TestNewStay_NormalizesToMidnightUTC(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	in := time.Date(2026, 6, 1, 15, 30, 0, 0, loc)
	out := time.Date(2026, 6, 5, 9, 0, 0, 0, loc)

	s, err := NewStay(in, out)
	require.NoError(t, err)

	assert.Equal(t, date(2026, 6, 1), s.CheckIn())
	assert.Equal(t, date(2026, 6, 5), s.CheckOut())
}

func TestNewStay_RejectsNonPositiveLength(t *testing.T) {
	var valErr *domain.ValidationError

	_, err := NewStay(date(2026, 6, 5), date(2026, 6, 5))
	require.Error(t, err)
	assert.True(t, errors.As(err, &valErr), "same-day stay should be a validation error")

	_, err = NewStay(date(2026, 6, 5), date(2026, 6, 1))
	require.Error(t, err)
	assert.True(t, errors.As(err, &valErr), "inverted stay should be a validation error")
}

func TestParseStay(t *testing.T) {
	s, err := ParseStay("2026-06-01", "2026-06-05")
	require.NoError(t, err)
	assert.Equal(t, date(2026, 6, 1), s.CheckIn())
	assert.Equal(t, 4, s.Nights())

	_, err = ParseStay("06/01/2026", "2026-06-05")
	require.Error(t, err)

	_, err = ParseStay("2026-06-01", "not-a-date")
	require.Error(t, err)
}

func TestStay_Nights(t *testing.T) {
	assert.Equal(t, 1, mustStay(t, date(2026, 6, 1), date(2026, 6, 2)).Nights())
	assert.Equal(t, 7, mustStay(t, date(2026, 6, 1), date(2026, 6, 8)).Nights())
}

func TestStay_Overlaps(t *testing.T) {
	base := mustStay(t, date(2026, 6, 1), date(2026, 6, 5))

	tests := []struct {
		name    string
		other   Stay
		overlap bool
	}{
		{"identical", mustStay(t, date(2026, 6, 1), date(2026, 6, 5)), true},
		{"contained", mustStay(t, date(2026, 6, 2), date(2026, 6, 4)), true},
		{"straddles start", mustStay(t, date(2026, 5, 30), date(2026, 6, 2)), true},
		{"straddles end", mustStay(t, date(2026, 6, 4), date(2026, 6, 10)), true},
		{"back to back after", mustStay(t, date(2026, 6, 5), date(2026, 6, 8)), false},
		{"back to back before", mustStay(t, date(2026, 5, 28), date(2026, 6, 1)), false},
		{"disjoint", mustStay(t, date(2026, 7, 1), date(2026, 7, 5)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlap, base.Overlaps(tt.other))
			assert.Equal(t, tt.overlap, tt.other.Overlaps(base), "overlap should be symmetric")
		})
	}
}

func TestStay_ElapsedAt(t *testing.T) {
	s := mustStay(t, date(2026, 6, 1), date(2026, 6, 5))

	assert.False(t, s.ElapsedAt(date(2026, 5, 30)))
	assert.False(t, s.ElapsedAt(date(2026, 6, 3)))
	assert.False(t, s.ElapsedAt(s.CheckOut().Add(-time.Second)))
	assert.True(t, s.ElapsedAt(s.CheckOut()), "stay is elapsed exactly at check-out")
	assert.True(t, s.ElapsedAt(date(2026, 6, 10)))
}
