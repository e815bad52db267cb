package notify

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demetrisperdikos/CalendarApp/internal/domain"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (s *fakeSender) SendMessage(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, text)
	return nil
}

func TestDeliverDueOnlyFiresDueNotifications(t *testing.T) {
	sender := &fakeSender{}
	queue := NewQueue(sender)

	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

	require.NoError(t, queue.Schedule(domain.Notification{
		Title: "Upcoming Event: ", Body: "Dentist", FireAt: now.Add(-time.Minute), Date: "2024-01-11",
	}))
	require.NoError(t, queue.Schedule(domain.Notification{
		Title: "Upcoming Event: ", Body: "Gym", FireAt: now.Add(time.Hour), Date: "2024-02-01",
	}))

	delivered := queue.DeliverDue(now)

	assert.Equal(t, 1, delivered)
	assert.Equal(t, 1, queue.Pending())
	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0], "Dentist")
	assert.Contains(t, sender.sent[0], "01/11/2024")
}

func TestDeliverDueAtExactFireTime(t *testing.T) {
	sender := &fakeSender{}
	queue := NewQueue(sender)

	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, queue.Schedule(domain.Notification{Body: "On time", FireAt: now, Date: "2024-01-11"}))

	assert.Equal(t, 1, queue.DeliverDue(now))
	assert.Zero(t, queue.Pending())
}

func TestFailedDeliveryStaysPending(t *testing.T) {
	sender := &fakeSender{err: errors.New("network down")}
	queue := NewQueue(sender)

	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	require.NoError(t, queue.Schedule(domain.Notification{Body: "Dentist", FireAt: now.Add(-time.Minute), Date: "2024-01-11"}))

	assert.Equal(t, 0, queue.DeliverDue(now))
	assert.Equal(t, 1, queue.Pending())

	sender.mu.Lock()
	sender.err = nil
	sender.mu.Unlock()

	assert.Equal(t, 1, queue.DeliverDue(now))
	assert.Zero(t, queue.Pending())
	assert.Len(t, sender.sent, 1)
}

func TestLogSender(t *testing.T) {
	assert.NoError(t, LogSender{}.SendMessage("hello"))
}
