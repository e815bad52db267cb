package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd(t *testing.T) {
	tests := []struct {
		name string
		date DateKey
		unit DateUnit
		n    int
		want DateKey
	}{
		{"one day", "2024-01-01", Days, 1, "2024-01-02"},
		{"day across month", "2024-01-31", Days, 1, "2024-02-01"},
		{"day across year", "2023-12-31", Days, 1, "2024-01-01"},
		{"one week", "2024-01-01", Weeks, 1, "2024-01-08"},
		{"four weeks", "2024-01-01", Weeks, 4, "2024-01-29"},
		{"one month", "2024-03-15", Months, 1, "2024-04-15"},
		{"month clamps to leap february", "2024-01-31", Months, 1, "2024-02-29"},
		{"month clamps to february", "2023-01-31", Months, 1, "2023-02-28"},
		{"month clamps to thirty days", "2024-03-31", Months, 1, "2024-04-30"},
		{"month across year", "2023-11-30", Months, 2, "2024-01-30"},
		{"one year", "2024-05-10", Years, 1, "2025-05-10"},
		{"year clamps leap day", "2024-02-29", Years, 1, "2025-02-28"},
		{"negative day", "2024-03-01", Days, -1, "2024-02-29"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.date.Add(tt.unit, tt.n))
		})
	}
}

func TestParseDisplay(t *testing.T) {
	date, err := ParseDisplay("01/15/2024")
	require.NoError(t, err)
	assert.Equal(t, DateKey("2024-01-15"), date)

	for _, input := range []string{"", "hello", "15/01/2024", "02/30/2024", "2024-01-15", "1/2"} {
		_, err := ParseDisplay(input)
		assert.ErrorIs(t, err, ErrInvalidDate, "input %q", input)
	}
}

func TestParseDateKey(t *testing.T) {
	date, err := ParseDateKey("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, DateKey("2024-02-29"), date)

	_, err = ParseDateKey("2023-02-29")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestOrdering(t *testing.T) {
	a := DateKey("2024-01-05")
	b := DateKey("2024-01-06")

	assert.True(t, b.SameOrAfter(a))
	assert.True(t, a.SameOrAfter(a))
	assert.False(t, a.SameOrAfter(b))
	assert.True(t, a.Before(b))
}

func TestDisplay(t *testing.T) {
	d := DateKey("2024-01-05")
	assert.Equal(t, "01/05/2024", d.Display())
	assert.Equal(t, "01/05/24", d.DisplayShort())
}

func TestAt(t *testing.T) {
	d := DateKey("2024-01-05")
	got := d.At(9, time.UTC)
	assert.Equal(t, time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC), got)
}
