// Package integrations defines the calendar, mail and task-list capabilities
// the assistant may consult once intent routing exists. Only mock
// implementations are provided and nothing in the message flow calls them.
package integrations

import (
	"context"
	"time"

	"github.com/alekspetrov/tgassistant/internal/logging"
)

// CalendarEvent is an upcoming calendar entry.
type CalendarEvent struct {
	Summary string
	Start   time.Time
}

// Email is a summary of an inbox message.
type Email struct {
	Sender  string
	Subject string
	Snippet string
}

// Task is an open item on a task list.
type Task struct {
	Title string
	Due   time.Time
}

// Calendar lists upcoming events.
type Calendar interface {
	UpcomingEvents(ctx context.Context) ([]CalendarEvent, error)
}

// Mailbox lists recent emails.
type Mailbox interface {
	RecentEmails(ctx context.Context) ([]Email, error)
}

// TaskList lists open tasks.
type TaskList interface {
	OpenTasks(ctx context.Context) ([]Task, error)
}

// MockCalendar returns two fixed events.
type MockCalendar struct{}

// UpcomingEvents implements Calendar.
func (MockCalendar) UpcomingEvents(ctx context.Context) ([]CalendarEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logging.WithComponent("integrations").Info("[Mock Google Calendar] Returning 2 sample events.")
	return []CalendarEvent{
		{Summary: "Team meeting", Start: time.Date(2025, time.October, 25, 10, 0, 0, 0, time.Local)},
		{Summary: "Lunch with client", Start: time.Date(2025, time.October, 25, 13, 0, 0, 0, time.Local)},
	}, nil
}

// MockMailbox returns two fixed emails.
type MockMailbox struct{}

// RecentEmails implements Mailbox.
func (MockMailbox) RecentEmails(ctx context.Context) ([]Email, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logging.WithComponent("integrations").Info("[Mock Gmail] Returning 2 sample emails.")
	return []Email{
		{Sender: "alice@example.com", Subject: "Meeting follow-up", Snippet: "Thanks for your time today..."},
		{Sender: "bob@example.com", Subject: "New project", Snippet: "Please see attached proposal..."},
	}, nil
}

// MockTaskList returns a single fixed task.
type MockTaskList struct{}

// OpenTasks implements TaskList.
func (MockTaskList) OpenTasks(ctx context.Context) ([]Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []Task{
		{Title: "Finish report", Due: time.Date(2025, time.October, 26, 0, 0, 0, 0, time.Local)},
	}, nil
}

// Set bundles the capabilities. Fields are independent and may be nil.
type Set struct {
	Calendar Calendar
	Mailbox  Mailbox
	Tasks    TaskList
}

// Mocks returns a Set backed entirely by mock implementations.
func Mocks() Set {
	return Set{
		Calendar: MockCalendar{},
		Mailbox:  MockMailbox{},
		Tasks:    MockTaskList{},
	}
}
