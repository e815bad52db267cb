package caldav

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/emersion/go-webdav/caldav"

	"github.com/demetrisperdikos/CalendarApp/internal/domain"
)

// Client publishes calendar notes to a CalDAV collection as all-day events,
// so the upcoming projection shows up in a regular calendar app.
type Client struct {
	baseURL      string
	username     string
	password     string
	calendarPath string
	client       *caldav.Client
}

func NewClient(baseURL, username, password, calendarPath string) *Client {
	return &Client{
		baseURL:      baseURL,
		username:     username,
		password:     password,
		calendarPath: calendarPath,
	}
}

// IsConfigured returns true if the client has an endpoint and credentials.
func (c *Client) IsConfigured() bool {
	return c.baseURL != "" && c.username != "" && c.password != ""
}

func (c *Client) connect() (*caldav.Client, error) {
	if c.client != nil {
		return c.client, nil
	}

	httpClient := &http.Client{
		Transport: &basicAuthTransport{
			username: c.username,
			password: c.password,
		},
		Timeout: 30 * time.Second,
	}

	client, err := caldav.NewClient(httpClient, c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to CalDAV: %w", err)
	}

	c.client = client
	return client, nil
}

type basicAuthTransport struct {
	username string
	password string
}

func (t *basicAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.SetBasicAuth(t.username, t.password)
	return http.DefaultTransport.RoundTrip(req)
}

// DiscoverCalendars returns all calendar collections for the user.
func (c *Client) DiscoverCalendars() ([]Calendar, error) {
	client, err := c.connect()
	if err != nil {
		return nil, err
	}

	ctx := context.Background()

	principal, err := client.FindCurrentUserPrincipal(ctx)
	if err != nil {
		return nil, fmt.Errorf("find principal: %w", err)
	}

	homeSet, err := client.FindCalendarHomeSet(ctx, principal)
	if err != nil {
		return nil, fmt.Errorf("find home set: %w", err)
	}

	cals, err := client.FindCalendars(ctx, homeSet)
	if err != nil {
		return nil, fmt.Errorf("find calendars: %w", err)
	}

	var result []Calendar
	for _, cal := range cals {
		result = append(result, Calendar{
			Path:        cal.Path,
			DisplayName: cal.Name,
		})
	}
	return result, nil
}

// PublishEvents writes each upcoming event as an all-day VEVENT. PUT replaces
// by UID, so republishing the same date updates in place.
func (c *Client) PublishEvents(events []domain.UpcomingEvent) error {
	client, err := c.connect()
	if err != nil {
		return err
	}

	if c.calendarPath == "" {
		return fmt.Errorf("calendar path not specified")
	}

	base := c.calendarPath
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}

	for _, ev := range events {
		cal := eventToICS(ev)
		path := base + eventUID(ev.Date) + ".ics"
		if _, err := client.PutCalendarObject(context.Background(), path, cal); err != nil {
			return fmt.Errorf("publish %s: %w", ev.Date, err)
		}
	}
	return nil
}

// RemoveEvent deletes a previously published event by date.
func (c *Client) RemoveEvent(date domain.DateKey) error {
	client, err := c.connect()
	if err != nil {
		return err
	}

	base := c.calendarPath
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}

	if err := client.RemoveAll(context.Background(), base+eventUID(date)+".ics"); err != nil {
		return fmt.Errorf("remove event: %w", err)
	}
	return nil
}
