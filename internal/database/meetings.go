package database

import (
	"encoding/json"
	"fmt"
	"time"
)

// MeetingRecord is the persistence record for a scheduled meeting. StartTime
// is stored as ISO-8601 text so the offset the user chose survives round trips.
type MeetingRecord struct {
	ID          int64     `json:"id"`
	EventID     string    `json:"event_id"`
	Title       string    `json:"title"`
	StartTime   string    `json:"start_time"` // ISO-8601 with offset
	Timezone    string    `json:"timezone"`
	Description string    `json:"description"`
	Agenda      string    `json:"agenda"`
	Attendees   []string  `json:"attendees"`
	CreatedAt   time.Time `json:"created_at"`
}

// InsertMeeting stores the record for a calendar event that was just created.
func (d *DB) InsertMeeting(m *MeetingRecord) (*MeetingRecord, error) {
	attendees, err := json.Marshal(m.Attendees)
	if err != nil {
		return nil, fmt.Errorf("failed to encode attendees: %w", err)
	}

	result, err := d.Exec(`
		INSERT INTO meetings (event_id, title, start_time, timezone, description, agenda, attendees)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		m.EventID, m.Title, m.StartTime, m.Timezone, m.Description, m.Agenda, string(attendees),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert meeting: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get meeting id: %w", err)
	}

	m.ID = id
	m.CreatedAt = time.Now()

	return m, nil
}

// GetMeetingByEventID retrieves a meeting record by its calendar event id.
func (d *DB) GetMeetingByEventID(eventID string) (*MeetingRecord, error) {
	var m MeetingRecord
	var attendees string

	err := d.QueryRow(`
		SELECT id, event_id, title, start_time, timezone, description, agenda, attendees, created_at
		FROM meetings
		WHERE event_id = ?
	`, eventID).Scan(
		&m.ID, &m.EventID, &m.Title, &m.StartTime, &m.Timezone,
		&m.Description, &m.Agenda, &attendees, &m.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}

	if err := json.Unmarshal([]byte(attendees), &m.Attendees); err != nil {
		return nil, fmt.Errorf("failed to decode attendees: %w", err)
	}

	return &m, nil
}

// ListMeetings returns all stored meeting records, most recently created first.
func (d *DB) ListMeetings() ([]*MeetingRecord, error) {
	rows, err := d.Query(`
		SELECT id, event_id, title, start_time, timezone, description, agenda, attendees, created_at
		FROM meetings
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}
	defer rows.Close()

	var meetings []*MeetingRecord
	for rows.Next() {
		var m MeetingRecord
		var attendees string

		if err := rows.Scan(
			&m.ID, &m.EventID, &m.Title, &m.StartTime, &m.Timezone,
			&m.Description, &m.Agenda, &attendees, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan meeting: %w", err)
		}

		if err := json.Unmarshal([]byte(attendees), &m.Attendees); err != nil {
			return nil, fmt.Errorf("failed to decode attendees: %w", err)
		}

		meetings = append(meetings, &m)
	}

	return meetings, rows.Err()
}
