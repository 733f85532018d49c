package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const standupPayload = `{"title":"Standup","date":"2025-05-19","time":"09:00","timezone":"Asia/Kolkata","description":"","agenda":"","attendees":[]}`

func TestClassify_Schedule(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"bare token", "SCHEDULE"},
		{"token with whitespace", "  SCHEDULE\n"},
		{"token in fence", "```\nSCHEDULE\n```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Classify(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, KindSchedule, result.Kind)
		})
	}
}

func TestClassify_Clarify(t *testing.T) {
	result, err := Classify("CLARIFY: need more info")
	require.NoError(t, err)

	assert.Equal(t, KindClarify, result.Kind)
	// The prefix stays in the message: it is relayed verbatim.
	assert.Equal(t, "CLARIFY: need more info", result.Message)
}

func TestClassify_FieldsFromFencedJSON(t *testing.T) {
	raw := "```json\n" + standupPayload + "\n```"

	result, err := Classify(raw)
	require.NoError(t, err)

	assert.Equal(t, KindFields, result.Kind)
	assert.Equal(t, "Standup", result.Fields.Title)
	assert.Equal(t, "2025-05-19", result.Fields.Date)
	assert.Equal(t, "09:00", result.Fields.Time)
	assert.Equal(t, "Asia/Kolkata", result.Fields.Timezone)
	assert.Empty(t, result.Overlay)
}

func TestClassify_FieldsWithSurroundingProse(t *testing.T) {
	raw := "Sure, here are the details:\n" + standupPayload + "\nI assumed the usual timezone."

	result, err := Classify(raw)
	require.NoError(t, err)

	assert.Equal(t, KindFields, result.Kind)
	assert.Equal(t, "Standup", result.Fields.Title)
	assert.Contains(t, result.Overlay, "Sure, here are the details:")
	assert.Contains(t, result.Overlay, "I assumed the usual timezone.")
}

func TestClassify_FieldsNestedBraces(t *testing.T) {
	raw := `{"title":"Review {Q2}","date":"2025-05-20","time":"10:00","timezone":"UTC","description":"","agenda":"","attendees":["a@example.com"]}`

	result, err := Classify(raw)
	require.NoError(t, err)
	assert.Equal(t, "Review {Q2}", result.Fields.Title)
	assert.Equal(t, []string{"a@example.com"}, result.Fields.Attendees)
}

func TestClassify_MalformedJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"prose only", "I think we should meet sometime"},
		{"truncated object", `{"title":"Standup","date":`},
		{"empty reply", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Classify(tt.raw)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestClassify_MissingRequiredKeys(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"no date", `{"title":"Standup","time":"09:00","timezone":"UTC"}`},
		{"no time", `{"title":"Standup","date":"2025-05-19","timezone":"UTC"}`},
		{"no timezone", `{"title":"Standup","date":"2025-05-19","time":"09:00"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Classify(tt.raw)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestFindJSONEnd(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		start    int
		expected int
	}{
		{"simple object", `{"key": "value"}`, 0, 15},
		{"nested objects", `{"outer": {"inner": {}}}`, 0, 23},
		{"with trailing text", `{"key": "value"} extra`, 0, 15},
		{"unmatched braces", `{"key": "value"`, 0, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, findJSONEnd(tt.input, tt.start))
		})
	}
}
