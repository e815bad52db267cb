package notes

import (
	"sort"

	"github.com/demetrisperdikos/CalendarApp/internal/domain"
)

// Upcoming derives the upcoming-events projection from a store snapshot:
// entries dated today or later, projected to {date, text, notify} and sorted
// ascending by date. Pure function of its inputs; the result is never
// persisted.
func Upcoming(snapshot map[domain.DateKey]domain.NoteEntry, today domain.DateKey) []domain.UpcomingEvent {
	var events []domain.UpcomingEvent
	for date, entry := range snapshot {
		if date.SameOrAfter(today) {
			events = append(events, domain.UpcomingEvent{
				Date:   date,
				Text:   entry.Text,
				Notify: entry.Notify,
			})
		}
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].Date < events[j].Date
	})
	return events
}

// SortedDates returns the snapshot's keys in ascending date order, for
// deterministic traversal.
func SortedDates(snapshot map[domain.DateKey]domain.NoteEntry) []domain.DateKey {
	dates := make([]domain.DateKey, 0, len(snapshot))
	for date := range snapshot {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i] < dates[j] })
	return dates
}
