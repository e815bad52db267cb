package domain

import "time"

// ColorTag is a note category color. The values are the color strings the
// calendar UI renders, so they round-trip through the snapshot as-is.
type ColorTag string

const (
	ColorWhite  ColorTag = "white"
	ColorRed    ColorTag = "#fa7a7a"
	ColorGreen  ColorTag = "green"
	ColorBlue   ColorTag = "#7acffa"
	ColorYellow ColorTag = "yellow"
	ColorPurple ColorTag = "#bf78f5"
	ColorOrange ColorTag = "orange"
	ColorPink   ColorTag = "pink"
)

type RecurrenceRule string

const (
	RecurrenceNone    RecurrenceRule = "none"
	RecurrenceDaily   RecurrenceRule = "daily"
	RecurrenceWeekly  RecurrenceRule = "weekly"
	RecurrenceMonthly RecurrenceRule = "monthly"
	RecurrenceYearly  RecurrenceRule = "yearly"
)

// NoteEntry is the note attached to a single calendar date.
//
// NotificationScheduled flips to true exactly once, when a notification has
// been dispatched for this entry. Edits never reset it; only deleting and
// recreating the entry does.
type NoteEntry struct {
	Text                  string         `json:"text"`
	Color                 ColorTag       `json:"color"`
	Recurrence            RecurrenceRule `json:"recurrence"`
	Notify                bool           `json:"notify"`
	NotificationScheduled bool           `json:"notificationScheduled,omitempty"`
}

// Preview returns the first 20 runes of the note text, as shown on the
// calendar grid.
func (e NoteEntry) Preview() string {
	r := []rune(e.Text)
	if len(r) > 20 {
		r = r[:20]
	}
	return string(r)
}

// ImageRef is an image attached to a date, stored separately from the note.
type ImageRef struct {
	URI   string   `json:"uri"`
	Color ColorTag `json:"color"`
}

// UpcomingEvent is the derived projection of a future-or-today note. It is
// recomputed from the store and never persisted.
type UpcomingEvent struct {
	Date   DateKey
	Text   string
	Notify bool
}

// Notification is the payload handed to the notification dispatcher. Date
// identifies the originating entry for correlation.
type Notification struct {
	Title  string
	Body   string
	FireAt time.Time
	Date   DateKey
}
