package notify

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/demetrisperdikos/CalendarApp/internal/domain"
)

// Sender delivers a notification message to the user.
type Sender interface {
	SendMessage(text string) error
}

// Queue holds scheduled notifications until their fire time. Delivery is
// driven externally (a periodic tick calls DeliverDue), so Schedule is a
// fire-and-forget hand-off from the caller's perspective.
type Queue struct {
	mu      sync.Mutex
	sender  Sender
	pending []domain.Notification
}

func NewQueue(sender Sender) *Queue {
	return &Queue{sender: sender}
}

// Schedule accepts a notification for delivery at or after n.FireAt.
func (q *Queue) Schedule(n domain.Notification) error {
	q.mu.Lock()
	q.pending = append(q.pending, n)
	q.mu.Unlock()

	log.Printf("Notification scheduled for %s (event %s)", n.FireAt.Format(time.RFC3339), n.Date)
	return nil
}

// Pending returns the number of undelivered notifications.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// DeliverDue sends every notification whose fire time has passed and returns
// the number delivered. A failed send is logged and kept pending for the
// next tick, so each notification is delivered at most once and at or after
// its fire time.
func (q *Queue) DeliverDue(now time.Time) int {
	q.mu.Lock()
	var due, rest []domain.Notification
	for _, n := range q.pending {
		if n.FireAt.After(now) {
			rest = append(rest, n)
		} else {
			due = append(due, n)
		}
	}
	q.pending = rest
	q.mu.Unlock()

	delivered := 0
	for _, n := range due {
		text := fmt.Sprintf("🔔 %s\n\n%s\n\n%s", n.Title, n.Body, n.Date.Display())
		if err := q.sender.SendMessage(text); err != nil {
			log.Printf("Error delivering notification for %s: %v", n.Date, err)
			q.mu.Lock()
			q.pending = append(q.pending, n)
			q.mu.Unlock()
			continue
		}
		delivered++
	}
	return delivered
}

// LogSender writes notifications to the log. Used when no delivery channel
// is configured.
type LogSender struct{}

func (LogSender) SendMessage(text string) error {
	log.Printf("Notification: %s", text)
	return nil
}
