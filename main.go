package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rajatverma/meetwise/internal/config"
	"github.com/rajatverma/meetwise/internal/database"
	"github.com/rajatverma/meetwise/internal/gcal"
	"github.com/rajatverma/meetwise/internal/gemini"
	"github.com/rajatverma/meetwise/internal/notify"
	"github.com/rajatverma/meetwise/internal/scheduler"
	"github.com/rajatverma/meetwise/internal/server"
	"github.com/rajatverma/meetwise/internal/timeutil"
)

func main() {
	cfg := config.LoadFromEnv()

	db, err := database.New(cfg.DBPath)
	if err != nil {
		fatal("creating database", err)
	}
	defer db.Close()

	gcalClient := initGCal(cfg)
	generator := initGemini(cfg)
	notifier := initNotifier(cfg)

	var calendar scheduler.Calendar
	if gcalClient != nil {
		calendar = gcalClient
	}
	var mailer scheduler.Notifier
	if notifier != nil {
		mailer = notifier
	}
	sched := scheduler.New(calendar, db, mailer)

	srv := server.New(server.Config{
		DB:          db,
		GCalClient:  gcalClient,
		Generator:   generator,
		Scheduler:   sched,
		Anchor:      resolveAnchor(cfg),
		DefaultZone: cfg.DefaultTimezone,
		Port:        cfg.HTTPPort,
	})
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "HTTP server error: %v\n", err)
		}
	}()

	waitForShutdown(srv)
}

func initGCal(cfg *config.Config) *gcal.Client {
	client, err := gcal.NewClient(cfg.GoogleCredentialsFile, cfg.GoogleTokenFile)
	if err != nil {
		fmt.Printf("Warning: Google Calendar not configured: %v\n", err)
		return nil
	}

	if client.IsAuthenticated() {
		fmt.Println("Google Calendar client initialized")
	} else {
		fmt.Println("Google Calendar: not authenticated, use /api/gcal/connect to authorize")
	}
	return client
}

func initGemini(cfg *config.Config) *gemini.Client {
	if cfg.GeminiAPIKey == "" {
		fmt.Println("Warning: GEMINI_API_KEY not set, conversation turns will fail")
	}
	return gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiTemperature)
}

func initNotifier(cfg *config.Config) *notify.ResendNotifier {
	notifier := notify.NewResendNotifier(cfg.ResendAPIKey, cfg.EmailFrom, cfg.OrganizerEmail)
	if notifier != nil && notifier.IsConfigured() {
		fmt.Println("Email confirmation service configured (Resend)")
	}
	return notifier
}

// resolveAnchor returns the date all relative expressions are interpreted
// against: today, unless pinned via MEETWISE_ANCHOR_DATE.
func resolveAnchor(cfg *config.Config) time.Time {
	loc, _ := timeutil.ResolveLocation(cfg.DefaultTimezone)
	if cfg.AnchorDate != "" {
		if anchor, err := timeutil.ParseDate(cfg.AnchorDate, loc); err == nil {
			return anchor
		}
		fmt.Printf("Warning: invalid MEETWISE_ANCHOR_DATE %q, using today\n", cfg.AnchorDate)
	}
	return timeutil.DayStart(time.Now().In(loc), loc)
}

func fatal(context string, err error) {
	fmt.Fprintf(os.Stderr, "Error %s: %v\n", context, err)
	os.Exit(1)
}

func waitForShutdown(srv *server.Server) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	fmt.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	srv.Shutdown(ctx)
}
