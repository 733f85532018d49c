package meeting

import "time"

// DefaultTitle is used when neither the extraction nor the prior draft has a title.
const DefaultTitle = "Meeting"

// Default clock time applied when no time was extracted and there is no prior start.
const (
	DefaultHour   = 9
	DefaultMinute = 0
)

// Duration is fixed for every meeting; end time is always start + Duration.
const Duration = 60 * time.Minute

// Draft is the accumulating, possibly incomplete meeting specification for one
// conversation. A zero-value Draft means nothing has been extracted yet.
type Draft struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Agenda      string    `json:"agenda"`
	StartTime   time.Time `json:"start_time"`
	Timezone    string    `json:"timezone"`
	Attendees   []string  `json:"attendees"`
}

// IsEmpty reports whether no field has been extracted yet.
func (d Draft) IsEmpty() bool {
	return d.Title == "" &&
		d.Description == "" &&
		d.Agenda == "" &&
		d.StartTime.IsZero() &&
		d.Timezone == "" &&
		len(d.Attendees) == 0
}

// EndTime returns the fixed-duration end of the meeting.
func (d Draft) EndTime() time.Time {
	return d.StartTime.Add(Duration)
}

// Fields is the model's structured field extraction for a single turn. Every
// field is optional; an empty value means the model did not supply it.
type Fields struct {
	Title       string   `json:"title"`
	Date        string   `json:"date"`     // YYYY-MM-DD
	Time        string   `json:"time"`     // HH:MM, 24-hour
	Timezone    string   `json:"timezone"` // IANA zone name
	Description string   `json:"description"`
	Agenda      string   `json:"agenda"`
	Attendees   []string `json:"attendees"`
}
