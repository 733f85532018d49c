// Package scheduler turns a confirmed meeting draft into a calendar event,
// a persistence record, and an optional confirmation email.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rajatverma/meetwise/internal/database"
	"github.com/rajatverma/meetwise/internal/gcal"
	"github.com/rajatverma/meetwise/internal/meeting"
)

// ErrMissingCredentials is returned when the calendar collaborator is not
// configured or not authenticated. The draft should be retained for retry.
var ErrMissingCredentials = errors.New("google calendar credentials missing or invalid")

// Calendar creates events; satisfied by *gcal.Client.
type Calendar interface {
	IsAuthenticated() bool
	CreateEvent(calendarID string, input gcal.EventInput) (string, error)
}

// Store persists meeting records; satisfied by *database.DB.
type Store interface {
	InsertMeeting(m *database.MeetingRecord) (*database.MeetingRecord, error)
}

// Notifier sends scheduling confirmations; satisfied by *notify.ResendNotifier.
type Notifier interface {
	IsConfigured() bool
	MeetingScheduled(ctx context.Context, m *database.MeetingRecord) error
}

// Outcome reports a successful scheduling action. Persisted is false when the
// calendar event was created but the record store rejected the insert.
type Outcome struct {
	EventID   string
	Persisted bool
}

type Service struct {
	calendar Calendar
	store    Store
	notifier Notifier
}

// New creates a scheduling service. calendar and store may be nil when not
// configured; notifier is optional.
func New(calendar Calendar, store Store, notifier Notifier) *Service {
	return &Service{
		calendar: calendar,
		store:    store,
		notifier: notifier,
	}
}

// Schedule creates the calendar event for the draft and stores a meeting
// record. Persistence failure is non-fatal: the event already exists, so the
// outcome reports Persisted=false instead of an error.
func (s *Service) Schedule(ctx context.Context, draft meeting.Draft) (Outcome, error) {
	if s.calendar == nil || !s.calendar.IsAuthenticated() {
		return Outcome{}, ErrMissingCredentials
	}

	// The agenda travels inside the event description, matching what
	// attendees see in their calendar invitation.
	description := draft.Description
	if draft.Agenda != "" {
		if description != "" {
			description = fmt.Sprintf("%s\n\nAgenda: %s", description, draft.Agenda)
		} else {
			description = fmt.Sprintf("Agenda: %s", draft.Agenda)
		}
	}

	eventID, err := s.calendar.CreateEvent("primary", gcal.EventInput{
		Summary:     draft.Title,
		Description: description,
		StartTime:   draft.StartTime,
		EndTime:     draft.EndTime(),
		Timezone:    draft.Timezone,
		Attendees:   draft.Attendees,
	})
	if err != nil {
		if errors.Is(err, gcal.ErrNotAuthenticated) {
			return Outcome{}, ErrMissingCredentials
		}
		return Outcome{}, fmt.Errorf("failed to schedule meeting: %w", err)
	}

	record := &database.MeetingRecord{
		EventID:     eventID,
		Title:       draft.Title,
		StartTime:   draft.StartTime.Format(time.RFC3339),
		Timezone:    draft.Timezone,
		Description: description,
		Agenda:      draft.Agenda,
		Attendees:   draft.Attendees,
	}

	outcome := Outcome{EventID: eventID, Persisted: true}
	if s.store != nil {
		if _, err := s.store.InsertMeeting(record); err != nil {
			fmt.Printf("Warning: failed to store meeting record: %v\n", err)
			outcome.Persisted = false
		}
	}

	if s.notifier != nil && s.notifier.IsConfigured() {
		if err := s.notifier.MeetingScheduled(ctx, record); err != nil {
			fmt.Printf("Warning: confirmation email failed: %v\n", err)
		}
	}

	return outcome, nil
}
