package caldav

import (
	"fmt"
	"time"

	"github.com/emersion/go-ical"

	"github.com/demetrisperdikos/CalendarApp/internal/domain"
)

// Calendar is a CalDAV calendar collection.
type Calendar struct {
	Path        string
	DisplayName string
}

// eventUID is stable per date, so a republished note overwrites its previous
// published form.
func eventUID(date domain.DateKey) string {
	return fmt.Sprintf("calendarapp-%s", date)
}

// eventToICS converts an upcoming event to an all-day iCalendar event.
func eventToICS(ev domain.UpcomingEvent) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//CalendarApp//CalDAV//EN")

	vevent := ical.NewEvent()
	vevent.Props.SetText(ical.PropUID, eventUID(ev.Date))
	vevent.Props.SetText(ical.PropSummary, ev.Text)

	start := ev.Date.Time()
	vevent.Props.SetDate(ical.PropDateTimeStart, start)
	vevent.Props.SetDate(ical.PropDateTimeEnd, start.AddDate(0, 0, 1))
	vevent.Props.SetDateTime(ical.PropDateTimeStamp, time.Now().UTC())

	cal.Children = append(cal.Children, vevent.Component)
	return cal
}
