package notes

import (
	"log"
	"sync"

	"github.com/demetrisperdikos/CalendarApp/internal/domain"
)

// Snapshot keys in the persistence layer.
const (
	notesKey  = "@notes"
	imagesKey = "@images"
)

// Persistence stores and loads full JSON snapshots under string keys.
// Loading an absent key must leave out untouched and return nil.
type Persistence interface {
	Save(key string, value any) error
	Load(key string, out any) error
}

// Store is the date-keyed note store. All mutations go through its methods,
// persist a full snapshot, and then notify subscribers. Persistence failures
// are logged and otherwise ignored: in-memory state stays authoritative for
// the session and the next mutation writes a fresh snapshot.
//
// None of the operations return errors to the caller; absent keys degrade to
// no-ops or empty results.
type Store struct {
	mu          sync.Mutex
	persistence Persistence
	notes       map[domain.DateKey]domain.NoteEntry
	images      map[domain.DateKey]domain.ImageRef
	subscribers []func()
}

func NewStore(p Persistence) *Store {
	return &Store{
		persistence: p,
		notes:       make(map[domain.DateKey]domain.NoteEntry),
		images:      make(map[domain.DateKey]domain.ImageRef),
	}
}

// Load restores both snapshots from persistence. Absent or unreadable
// snapshots leave the store empty.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persistence.Load(notesKey, &s.notes); err != nil {
		log.Printf("Error loading notes snapshot: %v", err)
	}
	if err := s.persistence.Load(imagesKey, &s.images); err != nil {
		log.Printf("Error loading images snapshot: %v", err)
	}
	if s.notes == nil {
		s.notes = make(map[domain.DateKey]domain.NoteEntry)
	}
	if s.images == nil {
		s.images = make(map[domain.DateKey]domain.ImageRef)
	}
}

// Subscribe registers a callback invoked after every mutation. Callbacks run
// synchronously on the mutating call, outside the store lock.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Upsert writes the entry at date. A recurring entry is additionally expanded
// over its horizon and every derived entry written at its derived date,
// overwriting whatever was there (last write wins, no merge).
func (s *Store) Upsert(date domain.DateKey, entry domain.NoteEntry) {
	s.mu.Lock()
	s.notes[date] = entry
	if entry.Recurrence != domain.RecurrenceNone {
		for _, occ := range Expand(date, entry) {
			s.notes[occ.Date] = occ.Entry
		}
	}
	s.persistNotes()
	s.mu.Unlock()

	s.notifySubscribers()
}

// Get returns the entry at date, if any.
func (s *Store) Get(date domain.DateKey) (domain.NoteEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.notes[date]
	return entry, ok
}

// Snapshot returns a copy of the full note mapping.
func (s *Store) Snapshot() map[domain.DateKey]domain.NoteEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make(map[domain.DateKey]domain.NoteEntry, len(s.notes))
	for date, entry := range s.notes {
		snapshot[date] = entry
	}
	return snapshot
}

// DeleteAt removes the note and any image at date only.
func (s *Store) DeleteAt(date domain.DateKey) {
	s.mu.Lock()
	delete(s.notes, date)
	delete(s.images, date)
	s.persistNotes()
	s.persistImages()
	s.mu.Unlock()

	s.notifySubscribers()
}

// DeleteSeries removes every entry whose text exactly equals the text of the
// entry at date, regardless of date or recurrence value, and returns the
// removed dates. This is how a recurring series is torn down: membership is
// inferred by text match, so two unrelated notes with identical text are
// deleted together. No-op when nothing exists at date.
func (s *Store) DeleteSeries(date domain.DateKey) []domain.DateKey {
	s.mu.Lock()
	entry, ok := s.notes[date]
	if !ok {
		s.mu.Unlock()
		return nil
	}
	var removed []domain.DateKey
	for d, e := range s.notes {
		if e.Text == entry.Text {
			delete(s.notes, d)
			removed = append(removed, d)
		}
	}
	s.persistNotes()
	s.mu.Unlock()

	s.notifySubscribers()
	return removed
}

// MarkNotificationScheduled flips the scheduled flag on the entry at date.
// This is a targeted write: it never re-expands recurrence.
func (s *Store) MarkNotificationScheduled(date domain.DateKey) {
	s.mu.Lock()
	entry, ok := s.notes[date]
	if !ok {
		s.mu.Unlock()
		return
	}
	entry.NotificationScheduled = true
	s.notes[date] = entry
	s.persistNotes()
	s.mu.Unlock()

	s.notifySubscribers()
}

// SetImage attaches an image to date.
func (s *Store) SetImage(date domain.DateKey, ref domain.ImageRef) {
	s.mu.Lock()
	s.images[date] = ref
	s.persistImages()
	s.mu.Unlock()

	s.notifySubscribers()
}

// Image returns the image at date, if any.
func (s *Store) Image(date domain.DateKey) (domain.ImageRef, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ref, ok := s.images[date]
	return ref, ok
}

// Images returns a copy of the full image mapping.
func (s *Store) Images() map[domain.DateKey]domain.ImageRef {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make(map[domain.DateKey]domain.ImageRef, len(s.images))
	for date, ref := range s.images {
		snapshot[date] = ref
	}
	return snapshot
}

// persistNotes and persistImages are called with the lock held.

func (s *Store) persistNotes() {
	if err := s.persistence.Save(notesKey, s.notes); err != nil {
		log.Printf("Error saving notes snapshot: %v", err)
	}
}

func (s *Store) persistImages() {
	if err := s.persistence.Save(imagesKey, s.images); err != nil {
		log.Printf("Error saving images snapshot: %v", err)
	}
}

func (s *Store) notifySubscribers() {
	s.mu.Lock()
	subscribers := make([]func(), len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn()
	}
}
