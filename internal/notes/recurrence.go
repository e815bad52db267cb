package notes

import "github.com/demetrisperdikos/CalendarApp/internal/domain"

// Recurrence horizons: how far each rule is expanded past its anchor. The
// counts are fixed, not user-configurable.
var horizons = map[domain.RecurrenceRule]struct {
	unit  domain.DateUnit
	count int
}{
	domain.RecurrenceDaily:   {domain.Days, 30},
	domain.RecurrenceWeekly:  {domain.Weeks, 4},
	domain.RecurrenceMonthly: {domain.Months, 12},
	domain.RecurrenceYearly:  {domain.Years, 5},
}

// Occurrence is one derived (date, entry) pair produced by expansion.
type Occurrence struct {
	Date  domain.DateKey
	Entry domain.NoteEntry
}

// Expand produces the derived occurrences for a recurring template, one per
// period starting one period after the anchor. The anchor itself is not
// included; the caller writes it. Each occurrence carries an independent copy
// of the template with NotificationScheduled cleared, so later edits to one
// expanded entry cannot leak into its siblings. No series identifier is kept:
// series membership is re-derived at delete time by exact text match.
func Expand(anchor domain.DateKey, template domain.NoteEntry) []Occurrence {
	h, ok := horizons[template.Recurrence]
	if !ok {
		return nil
	}

	occurrences := make([]Occurrence, 0, h.count)
	date := anchor
	for i := 0; i < h.count; i++ {
		date = date.Add(h.unit, 1)
		entry := template
		entry.NotificationScheduled = false
		occurrences = append(occurrences, Occurrence{Date: date, Entry: entry})
	}
	return occurrences
}
