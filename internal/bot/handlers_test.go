package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demetrisperdikos/CalendarApp/internal/clients/caldav"
	"github.com/demetrisperdikos/CalendarApp/internal/clients/weather"
	"github.com/demetrisperdikos/CalendarApp/internal/domain"
)

func TestParseAddCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    string
		want    addCommand
		wantErr string
	}{
		{
			name: "plain note",
			args: "01/15/2024 Dentist appointment",
			want: addCommand{date: "2024-01-15", text: "Dentist appointment", color: domain.ColorWhite, recurrence: domain.RecurrenceNone},
		},
		{
			name: "all options",
			args: "2024-01-15 color=red repeat=weekly notify Gym",
			want: addCommand{date: "2024-01-15", text: "Gym", color: domain.ColorRed, recurrence: domain.RecurrenceWeekly, notify: true},
		},
		{
			name: "options in any order",
			args: "01/15/2024 notify color=blue Pay rent",
			want: addCommand{date: "2024-01-15", text: "Pay rent", color: domain.ColorBlue, recurrence: domain.RecurrenceNone, notify: true},
		},
		{
			name: "option-like token inside text stays text",
			args: "01/15/2024 Buy color=red paint",
			want: addCommand{date: "2024-01-15", text: "Buy color=red paint", color: domain.ColorWhite, recurrence: domain.RecurrenceNone},
		},
		{
			name:    "too few arguments",
			args:    "01/15/2024",
			wantErr: "Usage:",
		},
		{
			name:    "bad date",
			args:    "13/45/2024 Dentist",
			wantErr: "Invalid date",
		},
		{
			name:    "unknown color",
			args:    "01/15/2024 color=mauve Dentist",
			wantErr: "Unknown color",
		},
		{
			name:    "unknown recurrence",
			args:    "01/15/2024 repeat=fortnightly Dentist",
			wantErr: "Unknown recurrence",
		},
		{
			name:    "options without text",
			args:    "01/15/2024 color=red notify",
			wantErr: "text is missing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := parseAddCommand(tt.args)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cmd)
		})
	}
}

func TestFormatCalendars(t *testing.T) {
	assert.Equal(t, "No calendars found", formatCalendars(nil))

	out := formatCalendars([]caldav.Calendar{
		{Path: "/calendars/user/personal/", DisplayName: "Personal"},
		{Path: "/calendars/user/work/"},
	})
	assert.Contains(t, out, "Personal (/calendars/user/personal/)")
	assert.Contains(t, out, "/calendars/user/work/ (/calendars/user/work/)")
	assert.Contains(t, out, "CALDAV_CALENDAR")
}

func TestParseDateAcceptsBothForms(t *testing.T) {
	date, err := parseDate("01/15/2024")
	require.NoError(t, err)
	assert.Equal(t, domain.DateKey("2024-01-15"), date)

	date, err = parseDate("2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, domain.DateKey("2024-01-15"), date)

	_, err = parseDate("not a date")
	assert.Error(t, err)
}

func TestParseColor(t *testing.T) {
	c, ok := parseColor("Red")
	require.True(t, ok)
	assert.Equal(t, domain.ColorRed, c)

	_, ok = parseColor("mauve")
	assert.False(t, ok)
}

func TestParseRecurrence(t *testing.T) {
	r, ok := parseRecurrence("weekly")
	require.True(t, ok)
	assert.Equal(t, domain.RecurrenceWeekly, r)

	_, ok = parseRecurrence("fortnightly")
	assert.False(t, ok)
}

func TestFormatForecast(t *testing.T) {
	out := formatForecast(&weather.ForecastResponse{
		City: weather.City{Name: "New York"},
		List: []weather.Forecast{
			{DtTxt: "2024-01-10 12:00:00", Main: weather.Main{Temp: 280.15}, Weather: []weather.Condition{{Description: "clear sky"}}},
		},
	})

	assert.Contains(t, out, "New York")
	assert.Contains(t, out, "01/10/24 12:00 PM")
	assert.Contains(t, out, "45°F")
	assert.Contains(t, out, "clear sky")
}
