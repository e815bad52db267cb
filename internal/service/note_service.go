package service

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/demetrisperdikos/CalendarApp/internal/domain"
	"github.com/demetrisperdikos/CalendarApp/internal/notes"
)

// EventPublisher retracts published calendar events when the underlying note
// goes away. Satisfied by the CalDAV client.
type EventPublisher interface {
	IsConfigured() bool
	RemoveEvent(date domain.DateKey) error
}

// NoteService is the application surface over the note store: saving,
// deleting, searching and formatting notes for display.
type NoteService struct {
	store     *notes.Store
	timezone  *time.Location
	publisher EventPublisher
}

func NewNoteService(store *notes.Store, tz *time.Location) *NoteService {
	if tz == nil {
		tz = time.Local
	}
	return &NoteService{store: store, timezone: tz}
}

// SetPublisher wires an optional publisher whose events are retracted when
// notes are deleted.
func (s *NoteService) SetPublisher(p EventPublisher) {
	s.publisher = p
}

// Save writes a note at date. Empty color and recurrence fall back to their
// defaults. Text is stored verbatim: series deletion matches on exact text,
// so normalizing it here would detach the note from its series.
// Recurrence expansion happens inside the store.
func (s *NoteService) Save(date domain.DateKey, text string, color domain.ColorTag, recurrence domain.RecurrenceRule, notify bool) {
	if color == "" {
		color = domain.ColorWhite
	}
	if recurrence == "" {
		recurrence = domain.RecurrenceNone
	}
	s.store.Upsert(date, domain.NoteEntry{
		Text:       text,
		Color:      color,
		Recurrence: recurrence,
		Notify:     notify,
	})
}

func (s *NoteService) Get(date domain.DateKey) (domain.NoteEntry, bool) {
	return s.store.Get(date)
}

// Delete removes the note and image at date and retracts its published
// calendar event, if any.
func (s *NoteService) Delete(date domain.DateKey) {
	s.store.DeleteAt(date)
	s.retract(date)
}

// DeleteSeries removes every note sharing the text of the entry at date and
// retracts the published calendar event of each removed date.
func (s *NoteService) DeleteSeries(date domain.DateKey) {
	for _, removed := range s.store.DeleteSeries(date) {
		s.retract(removed)
	}
}

func (s *NoteService) retract(date domain.DateKey) {
	if s.publisher == nil || !s.publisher.IsConfigured() {
		return
	}
	if err := s.publisher.RemoveEvent(date); err != nil {
		log.Printf("Error retracting published event for %s: %v", date, err)
	}
}

func (s *NoteService) AttachImage(date domain.DateKey, uri string) {
	color := domain.ColorWhite
	if entry, ok := s.store.Get(date); ok {
		color = entry.Color
	}
	s.store.SetImage(date, domain.ImageRef{URI: uri, Color: color})
}

// Search resolves a query to a date. A query that parses as MM/DD/YYYY
// answers with that date whether or not a note exists there; anything else is
// matched as a substring of note text, first match in date order winning.
// Malformed dates simply fall through to the text search, so they surface as
// "no results" rather than an error.
func (s *NoteService) Search(query string) (domain.DateKey, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", false
	}

	if date, err := domain.ParseDisplay(query); err == nil {
		return date, true
	}

	snapshot := s.store.Snapshot()
	for _, date := range notes.SortedDates(snapshot) {
		if strings.Contains(snapshot[date].Text, query) {
			return date, true
		}
	}
	return "", false
}

// Upcoming derives the projection of future-or-today notes.
func (s *NoteService) Upcoming() []domain.UpcomingEvent {
	return notes.Upcoming(s.store.Snapshot(), domain.Today(s.timezone))
}

func (s *NoteService) FormatUpcoming(events []domain.UpcomingEvent) string {
	if len(events) == 0 {
		return "No upcoming events"
	}

	var sb strings.Builder
	sb.WriteString("📅 Upcoming Events\n\n")
	for _, ev := range events {
		marker := ""
		if ev.Notify {
			marker = " 🔔"
		}
		sb.WriteString(fmt.Sprintf("%s: %s%s\n", ev.Date.DisplayShort(), ev.Text, marker))
	}
	return sb.String()
}

func (s *NoteService) FormatDay(date domain.DateKey) string {
	entry, ok := s.store.Get(date)
	image, hasImage := s.store.Image(date)
	if !ok && !hasImage {
		return fmt.Sprintf("Nothing on %s", date.Display())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Date: %s\n", date.DisplayShort()))
	if ok {
		sb.WriteString(fmt.Sprintf("Note: %s\n", entry.Preview()))
		sb.WriteString(fmt.Sprintf("Color: %s\n", entry.Color))
		if entry.Recurrence != domain.RecurrenceNone {
			sb.WriteString(fmt.Sprintf("Repeats: %s\n", entry.Recurrence))
		}
		if entry.Notify {
			sb.WriteString("Notifications: on\n")
		}
	}
	if hasImage {
		sb.WriteString(fmt.Sprintf("Image: %s\n", image.URI))
	}
	return sb.String()
}
