package meeting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testZone = "Asia/Kolkata"

var testAnchor = time.Date(2025, 5, 18, 0, 0, 0, 0, time.UTC)

func fullDraft(t *testing.T) Draft {
	t.Helper()
	loc, err := time.LoadLocation(testZone)
	require.NoError(t, err)

	return Draft{
		Title:       "Standup",
		Description: "Daily sync",
		Agenda:      "1. Updates\n2. Blockers",
		StartTime:   time.Date(2025, 5, 19, 9, 0, 0, 0, loc),
		Timezone:    testZone,
		Attendees:   []string{"alice@example.com", "bob@example.com"},
	}
}

func TestMerge_IdempotentUnderEmptyExtraction(t *testing.T) {
	draft := fullDraft(t)

	merged := Merge(draft, Fields{}, testAnchor, testZone)

	assert.Equal(t, draft, merged)
	assert.True(t, merged.StartTime.Equal(draft.StartTime))
}

func TestMerge_FieldRetention(t *testing.T) {
	draft := fullDraft(t)

	tests := []struct {
		name   string
		fields Fields
		check  func(t *testing.T, merged Draft)
	}{
		{
			name:   "title retained when extraction omits it",
			fields: Fields{Description: "New description"},
			check: func(t *testing.T, merged Draft) {
				assert.Equal(t, draft.Title, merged.Title)
				assert.Equal(t, "New description", merged.Description)
			},
		},
		{
			name:   "description retained",
			fields: Fields{Title: "Planning"},
			check: func(t *testing.T, merged Draft) {
				assert.Equal(t, draft.Description, merged.Description)
				assert.Equal(t, "Planning", merged.Title)
			},
		},
		{
			name:   "agenda retained",
			fields: Fields{Title: "Planning"},
			check: func(t *testing.T, merged Draft) {
				assert.Equal(t, draft.Agenda, merged.Agenda)
			},
		},
		{
			name:   "timezone retained when extraction invalid",
			fields: Fields{Timezone: "Not/AZone"},
			check: func(t *testing.T, merged Draft) {
				assert.Equal(t, testZone, merged.Timezone)
			},
		},
		{
			name:   "attendees retained when extraction empty",
			fields: Fields{Attendees: []string{}},
			check: func(t *testing.T, merged Draft) {
				assert.Equal(t, draft.Attendees, merged.Attendees)
			},
		},
		{
			name:   "start time retained when date and time omitted",
			fields: Fields{Title: "Planning"},
			check: func(t *testing.T, merged Draft) {
				assert.True(t, merged.StartTime.Equal(draft.StartTime))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged := Merge(draft, tt.fields, testAnchor, testZone)
			tt.check(t, merged)
		})
	}
}

func TestMerge_AttendeesOverwriteNotAppend(t *testing.T) {
	draft := Draft{Attendees: []string{"a@example.com", "b@example.com"}}

	merged := Merge(draft, Fields{Attendees: []string{"c@example.com"}}, testAnchor, testZone)

	assert.Equal(t, []string{"c@example.com"}, merged.Attendees)
}

func TestMerge_AttendeesCopied(t *testing.T) {
	extracted := []string{"c@example.com"}
	merged := Merge(Draft{}, Fields{Attendees: extracted}, testAnchor, testZone)

	extracted[0] = "mutated@example.com"
	assert.Equal(t, []string{"c@example.com"}, merged.Attendees)
}

func TestMerge_TitleFallbackChain(t *testing.T) {
	t.Run("no prior title defaults to Meeting", func(t *testing.T) {
		merged := Merge(Draft{}, Fields{}, testAnchor, testZone)
		assert.Equal(t, DefaultTitle, merged.Title)
	})

	t.Run("whitespace extraction falls back to prior", func(t *testing.T) {
		merged := Merge(Draft{Title: "Standup"}, Fields{Title: "   "}, testAnchor, testZone)
		assert.Equal(t, "Standup", merged.Title)
	})

	t.Run("extracted title wins", func(t *testing.T) {
		merged := Merge(Draft{Title: "Standup"}, Fields{Title: "Retro"}, testAnchor, testZone)
		assert.Equal(t, "Retro", merged.Title)
	})
}

func TestMerge_DateTimeDefaults(t *testing.T) {
	loc, err := time.LoadLocation(testZone)
	require.NoError(t, err)

	t.Run("no prior and no extraction uses anchor date at 09:00", func(t *testing.T) {
		merged := Merge(Draft{}, Fields{}, testAnchor, testZone)
		assert.True(t, merged.StartTime.Equal(time.Date(2025, 5, 18, 9, 0, 0, 0, loc)))
	})

	t.Run("new time keeps prior date", func(t *testing.T) {
		draft := fullDraft(t)
		merged := Merge(draft, Fields{Time: "14:30"}, testAnchor, testZone)
		assert.True(t, merged.StartTime.Equal(time.Date(2025, 5, 19, 14, 30, 0, 0, loc)))
	})

	t.Run("new date keeps prior time", func(t *testing.T) {
		draft := fullDraft(t)
		merged := Merge(draft, Fields{Date: "2025-05-22"}, testAnchor, testZone)
		assert.True(t, merged.StartTime.Equal(time.Date(2025, 5, 22, 9, 0, 0, 0, loc)))
	})

	t.Run("explicit date before anchor is clamped to anchor", func(t *testing.T) {
		merged := Merge(Draft{}, Fields{Date: "2025-05-10", Time: "10:00"}, testAnchor, testZone)
		assert.True(t, merged.StartTime.Equal(time.Date(2025, 5, 18, 10, 0, 0, 0, loc)))
	})

	t.Run("twelve hour time is accepted", func(t *testing.T) {
		merged := Merge(Draft{}, Fields{Date: "2025-05-19", Time: "9:00 am"}, testAnchor, testZone)
		assert.True(t, merged.StartTime.Equal(time.Date(2025, 5, 19, 9, 0, 0, 0, loc)))
	})
}

func TestMerge_TimezoneResolution(t *testing.T) {
	t.Run("extracted valid zone wins", func(t *testing.T) {
		draft := fullDraft(t)
		merged := Merge(draft, Fields{Timezone: "America/New_York"}, testAnchor, testZone)
		assert.Equal(t, "America/New_York", merged.Timezone)
	})

	t.Run("no prior and no extraction uses default zone", func(t *testing.T) {
		merged := Merge(Draft{}, Fields{}, testAnchor, "Europe/London")
		assert.Equal(t, "Europe/London", merged.Timezone)
	})

	t.Run("start time carries the resolved zone offset", func(t *testing.T) {
		merged := Merge(Draft{}, Fields{Date: "2025-05-19", Time: "09:00", Timezone: "America/New_York"}, testAnchor, testZone)
		assert.Equal(t, "America/New_York", merged.StartTime.Location().String())
	})
}

func TestMerge_Deterministic(t *testing.T) {
	draft := fullDraft(t)
	fields := Fields{Title: "Retro", Date: "2025-05-22", Time: "15:00", Attendees: []string{"c@example.com"}}

	first := Merge(draft, fields, testAnchor, testZone)
	second := Merge(draft, fields, testAnchor, testZone)

	assert.Equal(t, first, second)
}
