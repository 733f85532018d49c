// Package main provides a test server for exercising the conversation flow
// end to end. It runs with in-memory SQLite and the real Gemini API; the
// Google Calendar client is replaced by a fake that mints event IDs, so no
// credentials.json is needed.
//
// Usage:
//
//	GEMINI_API_KEY=... go run cmd/testserver/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/rajatverma/meetwise/internal/config"
	"github.com/rajatverma/meetwise/internal/database"
	"github.com/rajatverma/meetwise/internal/gcal"
	"github.com/rajatverma/meetwise/internal/gemini"
	"github.com/rajatverma/meetwise/internal/scheduler"
	"github.com/rajatverma/meetwise/internal/server"
	"github.com/rajatverma/meetwise/internal/timeutil"
)

// fakeCalendar records events locally instead of calling Google Calendar.
type fakeCalendar struct {
	counter int64
}

func (f *fakeCalendar) IsAuthenticated() bool { return true }

func (f *fakeCalendar) CreateEvent(calendarID string, input gcal.EventInput) (string, error) {
	id := atomic.AddInt64(&f.counter, 1)
	fmt.Printf("Fake calendar event %d: %q at %s (%s), attendees %v\n",
		id, input.Summary, input.StartTime.Format(time.RFC3339), input.Timezone, input.Attendees)
	return fmt.Sprintf("test-event-%d", id), nil
}

func main() {
	fmt.Println("Starting meetwise test server...")
	fmt.Println("This server uses in-memory SQLite, the real Gemini API, and a fake calendar.")

	cfg := config.LoadFromEnv()

	if cfg.GeminiAPIKey == "" {
		fmt.Println("Warning: GEMINI_API_KEY not set. Conversation turns will not work.")
	}

	db, err := database.New(":memory:")
	if err != nil {
		fmt.Printf("Failed to create database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()
	fmt.Println("In-memory database initialized")

	generator := gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiTemperature)
	sched := scheduler.New(&fakeCalendar{}, db, nil)

	loc, _ := timeutil.ResolveLocation(cfg.DefaultTimezone)
	anchor := timeutil.DayStart(time.Now().In(loc), loc)
	if cfg.AnchorDate != "" {
		if pinned, err := timeutil.ParseDate(cfg.AnchorDate, loc); err == nil {
			anchor = pinned
		}
	}

	srv := server.New(server.Config{
		DB:          db,
		Generator:   generator,
		Scheduler:   sched,
		Anchor:      anchor,
		DefaultZone: cfg.DefaultTimezone,
		Port:        cfg.HTTPPort,
	})

	go func() {
		fmt.Printf("\nTest server running on http://localhost:%d\n", cfg.HTTPPort)
		fmt.Println("Try: curl -X POST localhost:8080/transcribe -d '{\"input\":\"standup tomorrow at 9 with alice@example.com\"}'")
		fmt.Println("Press Ctrl+C to stop")

		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down test server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		fmt.Printf("Shutdown error: %v\n", err)
	}

	fmt.Println("Test server stopped")
}
