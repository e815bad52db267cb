package scheduler

import (
	"context"
	"fmt"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/demetrisperdikos/CalendarApp/internal/domain"
	"github.com/demetrisperdikos/CalendarApp/internal/notes"
)

// Notifications fire the day before the event, at this local hour.
const notifyHour = 9

// Dispatcher accepts scheduled notifications and delivers the due ones.
type Dispatcher interface {
	Schedule(n domain.Notification) error
	DeliverDue(now time.Time) int
}

// Scheduler watches the upcoming-events projection and schedules at most one
// notification per pass. A pass runs whenever the note store changes and once
// per midnight rollover; a pass whose projection is structurally identical to
// the previous one is a no-op.
type Scheduler struct {
	store      *notes.Store
	dispatcher Dispatcher
	timezone   *time.Location
	now        func() time.Time
	cron       *cron.Cron

	mu   sync.Mutex
	prev []domain.UpcomingEvent
}

func New(store *notes.Store, dispatcher Dispatcher, tz *time.Location) *Scheduler {
	if tz == nil {
		tz = time.Local
	}
	s := &Scheduler{
		store:      store,
		dispatcher: dispatcher,
		timezone:   tz,
		now:        time.Now,
		cron:       cron.New(cron.WithLocation(tz)),
	}
	store.Subscribe(s.Recalculate)
	return s
}

func (s *Scheduler) Start(ctx context.Context) error {
	// Deliver due notifications every minute
	if _, err := s.cron.AddFunc("* * * * *", s.deliverDue); err != nil {
		return fmt.Errorf("add delivery tick: %w", err)
	}

	// Date rollover changes the projection without a store write
	if _, err := s.cron.AddFunc("0 0 * * *", s.Recalculate); err != nil {
		return fmt.Errorf("add midnight recalc: %w", err)
	}

	s.cron.Start()
	log.Printf("Scheduler started (TZ: %s)", s.timezone)

	s.Recalculate()

	<-ctx.Done()
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Scheduler stopped")
}

func (s *Scheduler) deliverDue() {
	if n := s.dispatcher.DeliverDue(s.now().In(s.timezone)); n > 0 {
		log.Printf("Delivered %d notification(s)", n)
	}
}

// Recalculate re-derives the projection and, if it changed, runs a
// scheduling pass over it.
func (s *Scheduler) Recalculate() {
	today := domain.NewDateKey(s.now().In(s.timezone))
	events := notes.Upcoming(s.store.Snapshot(), today)

	s.mu.Lock()
	if slices.Equal(events, s.prev) {
		s.mu.Unlock()
		return
	}
	s.prev = events
	s.mu.Unlock()

	s.schedulePass(events)
}

// schedulePass selects the earliest event with notify set whose entry has no
// notification scheduled yet, dispatches for it, and marks the entry. At most
// one notification is scheduled per pass; later eligible events wait until
// the store changes again.
func (s *Scheduler) schedulePass(events []domain.UpcomingEvent) {
	for _, ev := range events {
		if !ev.Notify {
			continue
		}
		entry, ok := s.store.Get(ev.Date)
		if !ok || entry.NotificationScheduled {
			continue
		}

		n := domain.Notification{
			Title:  "Upcoming Event: ",
			Body:   ev.Text,
			FireAt: s.fireTime(ev.Date),
			Date:   ev.Date,
		}
		if err := s.dispatcher.Schedule(n); err != nil {
			// Entry stays unmarked and eligible for a future pass
			log.Printf("Error scheduling notification for %s: %v", ev.Date, err)
			return
		}

		// Targeted flag write; does not re-expand recurrence. The resulting
		// change notification re-enters Recalculate, where the unchanged
		// projection ends the recursion.
		s.store.MarkNotificationScheduled(ev.Date)
		return
	}
}

// fireTime is the day before the event at the local notify hour, or now+1s
// when that has already passed, so near-term events still surface.
func (s *Scheduler) fireTime(date domain.DateKey) time.Time {
	fireAt := date.Add(domain.Days, -1).At(notifyHour, s.timezone)
	if now := s.now().In(s.timezone); !fireAt.After(now) {
		return now.Add(time.Second)
	}
	return fireAt
}
