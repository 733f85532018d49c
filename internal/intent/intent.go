// Package intent classifies raw language-model replies into the three shapes
// the assistant understands: schedule now, ask for clarification, or a
// structured field update. Sentinel strings are decoded here at the boundary
// and never travel further as raw text.
package intent

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rajatverma/meetwise/internal/meeting"
)

// ErrMalformed is returned when the reply is neither the SCHEDULE token, a
// CLARIFY message, nor a complete well-formed field payload.
var ErrMalformed = errors.New("malformed extraction payload")

type Kind int

const (
	KindSchedule Kind = iota
	KindClarify
	KindFields
)

// Intent is the classified purpose of one model reply.
type Intent struct {
	Kind    Kind
	Message string         // clarification message, prefix included, relayed verbatim
	Fields  meeting.Fields // populated for KindFields
	Overlay string         // conversational text the model wrapped around the JSON, if any
}

const (
	scheduleToken = "SCHEDULE"
	clarifyPrefix = "CLARIFY"
)

// Classify parses a raw model reply. Markdown code fences are stripped first;
// the field payload may be surrounded by conversational prose, which is
// captured as the overlay.
func Classify(raw string) (Intent, error) {
	cleaned := stripFences(raw)

	if cleaned == scheduleToken {
		return Intent{Kind: KindSchedule}, nil
	}
	if strings.HasPrefix(cleaned, clarifyPrefix) {
		return Intent{Kind: KindClarify, Message: cleaned}, nil
	}

	jsonStr := cleaned
	overlay := ""
	if start := findJSONStart(cleaned); start >= 0 {
		if end := findJSONEnd(cleaned, start); end >= 0 {
			jsonStr = cleaned[start : end+1]
			overlay = strings.TrimSpace(strings.TrimSpace(cleaned[:start]) + " " + strings.TrimSpace(cleaned[end+1:]))
		}
	}

	var fields meeting.Fields
	if err := json.Unmarshal([]byte(jsonStr), &fields); err != nil {
		return Intent{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	// Date construction downstream needs all three; a payload without them is
	// as unusable as unparseable JSON.
	if fields.Date == "" || fields.Time == "" || fields.Timezone == "" {
		return Intent{}, fmt.Errorf("%w: payload missing date, time, or timezone", ErrMalformed)
	}

	return Intent{Kind: KindFields, Fields: fields, Overlay: overlay}, nil
}

// stripFences removes Markdown code-fence markers and surrounding whitespace.
func stripFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

func findJSONStart(text string) int {
	for i := 0; i < len(text); i++ {
		if text[i] == '{' {
			return i
		}
	}
	return -1
}

// findJSONEnd returns the index of the brace balancing the one at start.
func findJSONEnd(text string, start int) int {
	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
