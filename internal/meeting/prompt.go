package meeting

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// BuildPrompt renders the instruction text for one extraction turn. It embeds
// the anchor date, the prior draft snapshot, and the field rules the merger
// relies on, and pins the model to the three allowed response shapes.
func BuildPrompt(userText string, prior Draft, anchor time.Time, defaultZone string) string {
	var prompt bytes.Buffer

	prompt.WriteString("You're a warm, friendly meeting scheduler assistant, like a helpful colleague.\n\n")
	prompt.WriteString(fmt.Sprintf("The user said: %q\n\n", userText))
	prompt.WriteString(fmt.Sprintf("Current date is %s.\n", anchor.Format("January 2, 2006")))
	prompt.WriteString(fmt.Sprintf("Previous meeting details (if any): %s\n\n", priorSnapshot(prior)))

	prompt.WriteString("Validate and correct the meeting details (title, date, time, timezone, description, agenda, attendees) from the user's message. Follow these rules:\n")
	prompt.WriteString("- If the input modifies an existing meeting (e.g., \"title as [new title]\", \"add attendee\"), update only the specified fields and retain other prior details unless explicitly changed.\n")
	prompt.WriteString(fmt.Sprintf("- Extract the title if specified; default to %q if not specified or unclear. Use the prior title if the input only updates other fields.\n", DefaultTitle))
	prompt.WriteString(fmt.Sprintf("- Parse the date (e.g., \"tomorrow\", \"22 May\") as YYYY-MM-DD; it must be on or after %s; use the prior date if not specified; default to %s only if there is no prior date and the input is unclear.\n",
		anchor.Format("2006-01-02"), anchor.Format("2006-01-02")))
	prompt.WriteString(fmt.Sprintf("- Parse the time in 12-hour (e.g., \"9:00 a.m.\") or 24-hour format as HH:MM; use the prior time if not specified; default to %02d:%02d if unclear.\n", DefaultHour, DefaultMinute))
	prompt.WriteString(fmt.Sprintf("- Default the timezone to %s if not specified or invalid; retain the prior timezone if available.\n", defaultZone))
	prompt.WriteString("- Extract the description if provided; use the prior description if not specified; set to an empty string if none.\n")
	prompt.WriteString("- If the user requests \"points\" or an agenda, or the title implies a topic, generate a short numbered agenda based on the title; otherwise use the prior agenda or set to an empty string.\n")
	prompt.WriteString("- Parse attendees as email addresses. For names without emails (e.g., \"Ramesh\"), assign placeholder emails of the form name@example.com and note in your message that emails were assumed. Retain prior attendees unless explicitly changed or removed.\n\n")

	prompt.WriteString("Respond in exactly one of three shapes:\n")
	prompt.WriteString("1. A single JSON object with all fields:\n")
	prompt.WriteString("{\"title\": \"...\", \"date\": \"YYYY-MM-DD\", \"time\": \"HH:MM\", \"timezone\": \"...\", \"description\": \"...\", \"agenda\": \"...\", \"attendees\": [\"...\"]}\n")
	prompt.WriteString("2. The literal word SCHEDULE if the user confirms (e.g., \"confirm\", \"schedule it\", \"set the meeting\").\n")
	prompt.WriteString("3. CLARIFY:<message> if the input is unclear or lacks sufficient details.\n\n")
	prompt.WriteString("Respond with only the JSON object, SCHEDULE, or the CLARIFY message. Do not include any other surrounding text.")

	return prompt.String()
}

func priorSnapshot(prior Draft) string {
	if prior.IsEmpty() {
		return "None"
	}
	data, err := json.Marshal(prior)
	if err != nil {
		return "None"
	}
	return string(data)
}
