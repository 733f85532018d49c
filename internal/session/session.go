// Package session holds the per-conversation dialogue state machine: the
// accumulating meeting draft, the chat history, and the transitions between
// idle, drafting, and scheduling. Every path out of a turn produces an
// assistant reply; failures become conversational messages, never bare errors.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rajatverma/meetwise/internal/intent"
	"github.com/rajatverma/meetwise/internal/meeting"
	"github.com/rajatverma/meetwise/internal/scheduler"
)

// Generator produces a raw model reply for a prompt; satisfied by *gemini.Client.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Scheduler executes a confirmed draft; satisfied by *scheduler.Service.
type Scheduler interface {
	Schedule(ctx context.Context, draft meeting.Draft) (scheduler.Outcome, error)
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatTurn is one entry in the conversation transcript.
type ChatTurn struct {
	Role    Role   `json:"role"`
	Message string `json:"message"`
}

// Reply is what the assistant hands back after a turn: the message, the event
// ID when a meeting was just scheduled, and the full transcript so far.
type Reply struct {
	Message     string     `json:"message"`
	EventID     *string    `json:"event_id"`
	ChatHistory []ChatTurn `json:"chat_history"`
}

type State int

const (
	StateIdle State = iota
	StateDrafting
	StateScheduling
)

const (
	msgModelUnavailable   = "Sorry, I couldn't reach the language model just now. Please try again in a moment."
	msgMalformed          = "Oops, I had trouble understanding your meeting details. Could you clarify the title, date, or attendees?"
	msgNothingToSchedule  = "Hmm, I don't have any meeting details to schedule yet. Try sharing some details first!"
	msgMissingCredentials = "Looks like your Google Calendar credentials are missing or invalid. Please make sure credentials.json is present and re-authenticate."

	fmtScheduled = "All done! Your meeting's scheduled with Event ID: %s. Check your Google Calendar and email for the details!"
	fmtDegraded  = "Your meeting's scheduled with Event ID: %s, but I couldn't store a record of it."
	fmtFailure   = "Oops, I couldn't schedule the meeting: %v. Please check your Google Calendar access and try again."
)

// Session is the dialogue state for one conversation. Not safe for concurrent
// use; callers serialize access per conversation.
type Session struct {
	generator   Generator
	scheduler   Scheduler
	anchor      time.Time
	defaultZone string

	draft   meeting.Draft
	history []ChatTurn
	state   State
}

func New(generator Generator, sched Scheduler, anchor time.Time, defaultZone string) *Session {
	return &Session{
		generator:   generator,
		scheduler:   sched,
		anchor:      anchor,
		defaultZone: defaultZone,
		state:       StateIdle,
	}
}

func (s *Session) State() State { return s.state }

// Draft returns the current accumulated draft.
func (s *Session) Draft() meeting.Draft { return s.draft }

// SubmitInput runs one conversational turn: the user's text goes to the model
// alongside the prior draft, and the classified reply either updates the
// draft, relays a clarification, or triggers scheduling.
func (s *Session) SubmitInput(ctx context.Context, text string) Reply {
	s.history = append(s.history, ChatTurn{Role: RoleUser, Message: text})

	prompt := meeting.BuildPrompt(text, s.draft, s.anchor, s.defaultZone)
	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		fmt.Printf("Model request failed: %v\n", err)
		return s.assistantReply(msgModelUnavailable, nil)
	}

	result, err := intent.Classify(raw)
	if err != nil {
		fmt.Printf("Failed to classify model reply: %v\n", err)
		if errors.Is(err, intent.ErrMalformed) {
			return s.assistantReply(msgMalformed, nil)
		}
		return s.assistantReply(fmt.Sprintf("Hmm, something went wrong while processing your request: %v. Could you try again with the details?", err), nil)
	}

	switch result.Kind {
	case intent.KindSchedule:
		return s.schedule(ctx)
	case intent.KindClarify:
		return s.assistantReply(result.Message, nil)
	}

	s.draft = meeting.Merge(s.draft, result.Fields, s.anchor, s.defaultZone)
	s.state = StateDrafting

	message := s.draftSummary()
	if result.Overlay != "" {
		message = result.Overlay
	}
	return s.assistantReply(message, nil)
}

// ConfirmSchedule schedules the current draft without another model round trip.
func (s *Session) ConfirmSchedule(ctx context.Context) Reply {
	return s.schedule(ctx)
}

func (s *Session) schedule(ctx context.Context) Reply {
	if s.draft.IsEmpty() {
		return s.assistantReply(msgNothingToSchedule, nil)
	}

	s.state = StateScheduling
	outcome, err := s.scheduler.Schedule(ctx, s.draft)
	if err != nil {
		// The draft survives so the user can fix credentials or retry.
		s.state = StateDrafting
		if errors.Is(err, scheduler.ErrMissingCredentials) {
			return s.assistantReply(msgMissingCredentials, nil)
		}
		return s.assistantReply(fmt.Sprintf(fmtFailure, err), nil)
	}

	s.draft = meeting.Draft{}
	s.state = StateIdle

	message := fmt.Sprintf(fmtScheduled, outcome.EventID)
	if !outcome.Persisted {
		message = fmt.Sprintf(fmtDegraded, outcome.EventID)
	}
	eventID := outcome.EventID
	return s.assistantReply(message, &eventID)
}

// draftSummary restates the full draft so the user can review before confirming.
func (s *Session) draftSummary() string {
	attendees := "no attendees"
	if len(s.draft.Attendees) > 0 {
		attendees = strings.Join(s.draft.Attendees, ", ")
	}
	description := s.draft.Description
	if description == "" {
		description = "none"
	}
	agenda := s.draft.Agenda
	if agenda == "" {
		agenda = "none"
	}

	return fmt.Sprintf(
		"I've got your %s set for %s %s with %s. Description: %s. Agenda: %s. Just say 'Confirm the meeting' to lock it in!",
		s.draft.Title,
		s.draft.StartTime.Format("2006-01-02 15:04"),
		s.draft.Timezone,
		attendees,
		description,
		agenda,
	)
}

func (s *Session) assistantReply(message string, eventID *string) Reply {
	s.history = append(s.history, ChatTurn{Role: RoleAssistant, Message: message})

	history := make([]ChatTurn, len(s.history))
	copy(history, s.history)
	return Reply{Message: message, EventID: eventID, ChatHistory: history}
}
