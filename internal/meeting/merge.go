package meeting

import (
	"strings"
	"time"

	"github.com/rajatverma/meetwise/internal/timeutil"
)

// Merge folds one turn's extracted fields into the prior draft and returns the
// fully-populated result. Each field independently follows the chain
// extracted value -> prior value -> default. The function is pure: identical
// inputs always produce identical output, and neither input is mutated.
//
// anchor is the conversation's "today"; a date the model supplies that falls
// before the anchor's calendar day is clamped to it. defaultZone is used when
// neither the extraction nor the prior draft carries a recognized timezone.
func Merge(prior Draft, f Fields, anchor time.Time, defaultZone string) Draft {
	merged := Draft{
		Title:       mergeText(f.Title, prior.Title, DefaultTitle),
		Description: mergeText(f.Description, prior.Description, ""),
		Agenda:      mergeText(f.Agenda, prior.Agenda, ""),
	}

	switch {
	case timeutil.ValidZone(f.Timezone):
		merged.Timezone = f.Timezone
	case prior.Timezone != "":
		merged.Timezone = prior.Timezone
	default:
		merged.Timezone = defaultZone
	}

	merged.StartTime = mergeStartTime(prior, f, anchor, merged.Timezone)

	// Extracted attendees fully replace the prior list; an absent or empty
	// extraction retains it.
	if len(f.Attendees) > 0 {
		merged.Attendees = append([]string(nil), f.Attendees...)
	} else if len(prior.Attendees) > 0 {
		merged.Attendees = append([]string(nil), prior.Attendees...)
	}

	return merged
}

func mergeText(extracted, prior, fallback string) string {
	if strings.TrimSpace(extracted) != "" {
		return strings.TrimSpace(extracted)
	}
	if strings.TrimSpace(prior) != "" {
		return prior
	}
	return fallback
}

// mergeStartTime combines the date and time slots into a timestamp carrying
// the resolved timezone's offset. Missing components fall back to the prior
// start time, then to anchor date / 09:00.
func mergeStartTime(prior Draft, f Fields, anchor time.Time, timezone string) time.Time {
	loc, _ := timeutil.ResolveLocation(timezone)
	anchorDay := timeutil.DayStart(anchor, loc)

	day := anchorDay
	if d, err := timeutil.ParseDate(f.Date, loc); err == nil {
		day = d
		// Explicitly supplied dates are never allowed before the anchor.
		if day.Before(anchorDay) {
			day = anchorDay
		}
	} else if !prior.StartTime.IsZero() {
		day = timeutil.DayStart(prior.StartTime.In(loc), loc)
	}

	hour, minute := DefaultHour, DefaultMinute
	if h, m, err := timeutil.ParseClock(f.Time); err == nil {
		hour, minute = h, m
	} else if !prior.StartTime.IsZero() {
		pt := prior.StartTime.In(loc)
		hour, minute = pt.Hour(), pt.Minute()
	}

	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc)
}
