package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajatverma/meetwise/internal/database"
	"github.com/rajatverma/meetwise/internal/gcal"
	"github.com/rajatverma/meetwise/internal/meeting"
)

type stubCalendar struct {
	authenticated bool
	eventID       string
	err           error
	lastInput     gcal.EventInput
	lastCalendar  string
}

func (c *stubCalendar) IsAuthenticated() bool { return c.authenticated }

func (c *stubCalendar) CreateEvent(calendarID string, input gcal.EventInput) (string, error) {
	c.lastCalendar = calendarID
	c.lastInput = input
	if c.err != nil {
		return "", c.err
	}
	return c.eventID, nil
}

type stubStore struct {
	err  error
	last *database.MeetingRecord
}

func (s *stubStore) InsertMeeting(m *database.MeetingRecord) (*database.MeetingRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.last = m
	return m, nil
}

type stubNotifier struct {
	sent []*database.MeetingRecord
}

func (n *stubNotifier) IsConfigured() bool { return true }

func (n *stubNotifier) MeetingScheduled(ctx context.Context, m *database.MeetingRecord) error {
	n.sent = append(n.sent, m)
	return nil
}

func testDraft(t *testing.T) meeting.Draft {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	return meeting.Draft{
		Title:       "Standup",
		Description: "Daily sync",
		Agenda:      "1. Updates",
		StartTime:   time.Date(2025, 5, 19, 9, 0, 0, 0, loc),
		Timezone:    "Asia/Kolkata",
		Attendees:   []string{"alice@example.com"},
	}
}

func TestSchedule_Success(t *testing.T) {
	calendar := &stubCalendar{authenticated: true, eventID: "evt_1"}
	store := &stubStore{}
	notifier := &stubNotifier{}
	svc := New(calendar, store, notifier)

	outcome, err := svc.Schedule(context.Background(), testDraft(t))

	require.NoError(t, err)
	assert.Equal(t, "evt_1", outcome.EventID)
	assert.True(t, outcome.Persisted)

	assert.Equal(t, "primary", calendar.lastCalendar)
	assert.Equal(t, "Standup", calendar.lastInput.Summary)
	assert.Equal(t, "Asia/Kolkata", calendar.lastInput.Timezone)
	assert.Equal(t, []string{"alice@example.com"}, calendar.lastInput.Attendees)
	// Fixed 60-minute duration.
	assert.Equal(t, time.Hour, calendar.lastInput.EndTime.Sub(calendar.lastInput.StartTime))
	// Agenda folded into the description attendees see.
	assert.Equal(t, "Daily sync\n\nAgenda: 1. Updates", calendar.lastInput.Description)

	require.NotNil(t, store.last)
	assert.Equal(t, "evt_1", store.last.EventID)
	assert.Equal(t, "2025-05-19T09:00:00+05:30", store.last.StartTime)
	assert.Equal(t, "1. Updates", store.last.Agenda)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "evt_1", notifier.sent[0].EventID)
}

func TestSchedule_AgendaOnlyDescription(t *testing.T) {
	calendar := &stubCalendar{authenticated: true, eventID: "evt_2"}
	svc := New(calendar, &stubStore{}, nil)

	draft := testDraft(t)
	draft.Description = ""

	_, err := svc.Schedule(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, "Agenda: 1. Updates", calendar.lastInput.Description)
}

func TestSchedule_MissingCredentials(t *testing.T) {
	t.Run("nil calendar", func(t *testing.T) {
		svc := New(nil, &stubStore{}, nil)

		_, err := svc.Schedule(context.Background(), testDraft(t))
		assert.ErrorIs(t, err, ErrMissingCredentials)
	})

	t.Run("unauthenticated calendar", func(t *testing.T) {
		svc := New(&stubCalendar{authenticated: false}, &stubStore{}, nil)

		_, err := svc.Schedule(context.Background(), testDraft(t))
		assert.ErrorIs(t, err, ErrMissingCredentials)
	})

	t.Run("create returns not authenticated", func(t *testing.T) {
		svc := New(&stubCalendar{authenticated: true, err: gcal.ErrNotAuthenticated}, &stubStore{}, nil)

		_, err := svc.Schedule(context.Background(), testDraft(t))
		assert.ErrorIs(t, err, ErrMissingCredentials)
	})
}

func TestSchedule_CalendarFailure(t *testing.T) {
	calendar := &stubCalendar{authenticated: true, err: errors.New("quota exceeded")}
	store := &stubStore{}
	svc := New(calendar, store, nil)

	_, err := svc.Schedule(context.Background(), testDraft(t))

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMissingCredentials)
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Nil(t, store.last)
}

func TestSchedule_PersistenceFailureIsNonFatal(t *testing.T) {
	calendar := &stubCalendar{authenticated: true, eventID: "evt_3"}
	store := &stubStore{err: errors.New("disk full")}
	svc := New(calendar, store, nil)

	outcome, err := svc.Schedule(context.Background(), testDraft(t))

	require.NoError(t, err)
	assert.Equal(t, "evt_3", outcome.EventID)
	assert.False(t, outcome.Persisted)
}
