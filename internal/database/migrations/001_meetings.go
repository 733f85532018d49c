package migrations

import "database/sql"

func init() {
	Register(Migration{
		Version: 1,
		Name:    "meetings",
		Up:      upMeetings,
	})
}

func upMeetings(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS meetings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			event_id TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			start_time TEXT NOT NULL,
			timezone TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			agenda TEXT NOT NULL DEFAULT '',
			attendees TEXT NOT NULL DEFAULT '[]',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_meetings_start_time ON meetings(start_time);
	`)
	return err
}
