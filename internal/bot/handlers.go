package bot

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/demetrisperdikos/CalendarApp/internal/clients/caldav"
	"github.com/demetrisperdikos/CalendarApp/internal/clients/weather"
	"github.com/demetrisperdikos/CalendarApp/internal/domain"
)

const helpText = `Commands:
/add DATE [color=NAME] [repeat=RULE] [notify] TEXT — save a note
/note DATE — show the note on a date
/image DATE URI — attach an image
/del DATE — delete the note and image on a date
/delseries DATE — delete every note with the same text
/upcoming — list upcoming events
/search QUERY — find by date (MM/DD/YYYY) or text
/weather — 5-day forecast
/publish — push upcoming events to CalDAV
/calendars — list CalDAV calendars

DATE is MM/DD/YYYY or YYYY-MM-DD.
Colors: white red green blue yellow purple orange pink.
Repeat: daily weekly monthly yearly.`

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	if update.Message == nil {
		return
	}
	b.handleMessage(update.Message)
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if chatID != b.cfg.TelegramChatID {
		b.reply(chatID, "⛔ Access denied")
		return
	}

	if !msg.IsCommand() {
		return
	}

	args := strings.TrimSpace(msg.CommandArguments())

	switch msg.Command() {
	case "start", "help":
		b.reply(chatID, helpText)
	case "add":
		b.handleAdd(chatID, args)
	case "note":
		b.handleNote(chatID, args)
	case "image":
		b.handleImage(chatID, args)
	case "del":
		b.handleDelete(chatID, args)
	case "delseries":
		b.handleDeleteSeries(chatID, args)
	case "upcoming":
		b.reply(chatID, b.noteService.FormatUpcoming(b.noteService.Upcoming()))
	case "search":
		b.handleSearch(chatID, args)
	case "weather":
		b.handleWeather(chatID)
	case "publish":
		b.handlePublish(chatID)
	case "calendars":
		b.handleCalendars(chatID)
	default:
		b.reply(chatID, "Unknown command. /help")
	}
}

// addCommand is the parsed form of /add arguments.
type addCommand struct {
	date       domain.DateKey
	text       string
	color      domain.ColorTag
	recurrence domain.RecurrenceRule
	notify     bool
}

// parseAddCommand parses "/add DATE [color=NAME] [repeat=RULE] [notify] TEXT".
// Options may appear in any order; the first token that is not an option
// starts the note text, and everything after it is text verbatim. Errors
// carry the user-facing message.
func parseAddCommand(args string) (addCommand, error) {
	fields := strings.Fields(args)
	if len(fields) < 2 {
		return addCommand{}, errors.New("Usage: /add DATE [color=NAME] [repeat=RULE] [notify] TEXT")
	}

	date, err := parseDate(fields[0])
	if err != nil {
		return addCommand{}, errors.New("Invalid date: " + fields[0])
	}

	cmd := addCommand{
		date:       date,
		color:      domain.ColorWhite,
		recurrence: domain.RecurrenceNone,
	}

	rest := fields[1:]
	for len(rest) > 0 {
		switch {
		case strings.HasPrefix(rest[0], "color="):
			c, ok := parseColor(strings.TrimPrefix(rest[0], "color="))
			if !ok {
				return addCommand{}, errors.New("Unknown color: " + rest[0])
			}
			cmd.color = c
		case strings.HasPrefix(rest[0], "repeat="):
			r, ok := parseRecurrence(strings.TrimPrefix(rest[0], "repeat="))
			if !ok {
				return addCommand{}, errors.New("Unknown recurrence: " + rest[0])
			}
			cmd.recurrence = r
		case rest[0] == "notify":
			cmd.notify = true
		default:
			// First non-option token starts the note text
			cmd.text = strings.Join(rest, " ")
			return cmd, nil
		}
		rest = rest[1:]
	}

	return addCommand{}, errors.New("Note text is missing")
}

func (b *Bot) handleAdd(chatID int64, args string) {
	cmd, err := parseAddCommand(args)
	if err != nil {
		b.reply(chatID, err.Error())
		return
	}

	b.noteService.Save(cmd.date, cmd.text, cmd.color, cmd.recurrence, cmd.notify)
	b.reply(chatID, "Saved note for "+cmd.date.Display())
}

func (b *Bot) handleNote(chatID int64, args string) {
	date, err := parseDate(args)
	if err != nil {
		b.reply(chatID, "Invalid date: "+args)
		return
	}
	b.reply(chatID, b.noteService.FormatDay(date))
}

func (b *Bot) handleImage(chatID int64, args string) {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		b.reply(chatID, "Usage: /image DATE URI")
		return
	}
	date, err := parseDate(fields[0])
	if err != nil {
		b.reply(chatID, "Invalid date: "+fields[0])
		return
	}
	b.noteService.AttachImage(date, fields[1])
	b.reply(chatID, "Image attached to "+date.Display())
}

func (b *Bot) handleDelete(chatID int64, args string) {
	date, err := parseDate(args)
	if err != nil {
		b.reply(chatID, "Invalid date: "+args)
		return
	}
	b.noteService.Delete(date)
	b.reply(chatID, "Deleted note for "+date.Display())
}

func (b *Bot) handleDeleteSeries(chatID int64, args string) {
	date, err := parseDate(args)
	if err != nil {
		b.reply(chatID, "Invalid date: "+args)
		return
	}
	b.noteService.DeleteSeries(date)
	b.reply(chatID, "Deleted recurring event at "+date.Display())
}

func (b *Bot) handleSearch(chatID int64, args string) {
	if args == "" {
		b.reply(chatID, "Usage: /search QUERY")
		return
	}
	date, found := b.noteService.Search(args)
	if !found {
		b.reply(chatID, "No events found for this date or event")
		return
	}
	b.reply(chatID, b.noteService.FormatDay(date))
}

func (b *Bot) handleWeather(chatID int64) {
	if b.weatherClient == nil || !b.weatherClient.IsConfigured() {
		b.reply(chatID, "Weather is not configured")
		return
	}

	forecast, err := b.weatherClient.LocalForecast()
	if err != nil {
		log.Printf("Error fetching weather: %v", err)
		b.reply(chatID, "Could not fetch the forecast")
		return
	}

	b.reply(chatID, formatForecast(forecast))
}

func (b *Bot) handlePublish(chatID int64) {
	if b.caldavClient == nil || !b.caldavClient.IsConfigured() {
		b.reply(chatID, "CalDAV is not configured")
		return
	}

	events := b.noteService.Upcoming()
	if err := b.caldavClient.PublishEvents(events); err != nil {
		log.Printf("Error publishing to CalDAV: %v", err)
		b.reply(chatID, "Publish failed")
		return
	}
	b.reply(chatID, fmt.Sprintf("Published %d event(s)", len(events)))
}

func (b *Bot) handleCalendars(chatID int64) {
	if b.caldavClient == nil || !b.caldavClient.IsConfigured() {
		b.reply(chatID, "CalDAV is not configured")
		return
	}

	cals, err := b.caldavClient.DiscoverCalendars()
	if err != nil {
		log.Printf("Error discovering calendars: %v", err)
		b.reply(chatID, "Could not list calendars")
		return
	}
	b.reply(chatID, formatCalendars(cals))
}

func formatCalendars(cals []caldav.Calendar) string {
	if len(cals) == 0 {
		return "No calendars found"
	}

	var sb strings.Builder
	sb.WriteString("📆 Calendars\n\n")
	for _, cal := range cals {
		name := cal.DisplayName
		if name == "" {
			name = cal.Path
		}
		sb.WriteString(fmt.Sprintf("%s (%s)\n", name, cal.Path))
	}
	sb.WriteString("\nSet CALDAV_CALENDAR to one of these paths.")
	return sb.String()
}

// parseDate accepts display (MM/DD/YYYY) and normalized (YYYY-MM-DD) input.
func parseDate(s string) (domain.DateKey, error) {
	if date, err := domain.ParseDisplay(s); err == nil {
		return date, nil
	}
	return domain.ParseDateKey(s)
}

var colorNames = map[string]domain.ColorTag{
	"white":  domain.ColorWhite,
	"red":    domain.ColorRed,
	"green":  domain.ColorGreen,
	"blue":   domain.ColorBlue,
	"yellow": domain.ColorYellow,
	"purple": domain.ColorPurple,
	"orange": domain.ColorOrange,
	"pink":   domain.ColorPink,
}

func parseColor(s string) (domain.ColorTag, bool) {
	c, ok := colorNames[strings.ToLower(s)]
	return c, ok
}

func parseRecurrence(s string) (domain.RecurrenceRule, bool) {
	switch r := domain.RecurrenceRule(strings.ToLower(s)); r {
	case domain.RecurrenceNone, domain.RecurrenceDaily, domain.RecurrenceWeekly,
		domain.RecurrenceMonthly, domain.RecurrenceYearly:
		return r, true
	}
	return "", false
}

func formatForecast(f *weather.ForecastResponse) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🌤 Weather Forecast for %s\n\n", f.City.Name))

	list := f.List
	if len(list) > 5 {
		list = list[:5]
	}
	for _, fc := range list {
		sb.WriteString(fmt.Sprintf("%s  %d°F  %s\n", formatForecastTime(fc.DtTxt), fc.TempF(), fc.Description()))
	}
	return sb.String()
}

// dtTxtLayout is the timestamp format in OpenWeatherMap forecast entries.
const dtTxtLayout = "2006-01-02 15:04:05"

func formatForecastTime(dtTxt string) string {
	t, err := time.Parse(dtTxtLayout, dtTxt)
	if err != nil {
		return dtTxt
	}
	return t.Format("01/02/06 03:04 PM")
}
