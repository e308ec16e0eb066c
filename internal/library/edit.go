package library

import (
	"fmt"
	"math"
	"time"

	"libraryapi/internal/apperr"
)

var (
	ErrInvalidRating       = fmt.Errorf("%w: rating must be between 0 and 5", apperr.ErrInvalidArgument)
	ErrInvalidTag          = fmt.Errorf("%w: unknown tag", apperr.ErrInvalidArgument)
	ErrInvalidReadingState = fmt.Errorf("%w: unknown reading state", apperr.ErrInvalidArgument)
	ErrInvalidDates        = fmt.Errorf("%w: final date precedes initial date", apperr.ErrInvalidArgument)
)

// EditCommand is a user edit of one library entry. Nil fields keep the
// stored value; a date pointing at the zero time clears it. The title is
// not editable.
type EditCommand struct {
	BookID       string
	Rating       float64
	Tag          *Tag
	ReadingState *ReadingState
	InitialDate  *time.Time
	FinalDate    *time.Time
}

// Apply returns a copy of e with cmd applied. e itself is never modified, so
// a rejected edit leaves the stored entry untouched.
//
// Dates are truncated to the day and dates after today become today. An
// unread book has no dates; a finished date without a start date starts
// today.
func (e Entry) Apply(cmd EditCommand, today time.Time) (Entry, error) {
	if math.IsNaN(cmd.Rating) || cmd.Rating < 0 || cmd.Rating > 5 {
		return e, ErrInvalidRating
	}
	if cmd.Tag != nil && !cmd.Tag.Valid() {
		return e, ErrInvalidTag
	}
	if cmd.ReadingState != nil && !cmd.ReadingState.Valid() {
		return e, ErrInvalidReadingState
	}

	today = Day(today)
	out := e
	out.Rating = cmd.Rating
	if cmd.Tag != nil {
		out.Tag = *cmd.Tag
	}
	if cmd.ReadingState != nil {
		out.ReadingState = *cmd.ReadingState
	}
	if cmd.InitialDate != nil {
		out.InitialDate = *cmd.InitialDate
	}
	if cmd.FinalDate != nil {
		out.FinalDate = *cmd.FinalDate
	}
	out.InitialDate = clampDay(out.InitialDate, today)
	out.FinalDate = clampDay(out.FinalDate, today)

	if out.ReadingState == StateNotRead {
		out.InitialDate = time.Time{}
		out.FinalDate = time.Time{}
		return out, nil
	}
	if !out.FinalDate.IsZero() && out.InitialDate.IsZero() {
		out.InitialDate = today
	}
	if !out.FinalDate.IsZero() && out.FinalDate.Before(out.InitialDate) {
		return e, ErrInvalidDates
	}
	return out, nil
}

// Day truncates t to midnight UTC of its calendar day. The zero time stays zero.
func Day(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func clampDay(t, today time.Time) time.Time {
	t = Day(t)
	if t.After(today) {
		return today
	}
	return t
}
