package recurrence

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Frequency determines how a financial aid schedule repeats.
type Frequency string

const (
	OneTime  Frequency = "one_time"
	Weekly   Frequency = "weekly"
	Monthly  Frequency = "monthly"
	Annually Frequency = "annually"
)

var (
	ErrUnknownFrequency = errors.New("unknown frequency")
	ErrMissingAnchor    = errors.New("missing anchor field for frequency")
	ErrInvalidAnchor    = errors.New("anchor field out of range")
	ErrEndBeforeStart   = errors.New("end_date is before start_date")
)

// Rule holds the recurrence parameters of a schedule. StartDate and EndDate
// are calendar dates; EndDate nil means open-ended.
type Rule struct {
	Frequency   Frequency
	DayOfWeek   *time.Weekday // weekly
	DayOfMonth  *int          // monthly, 1-31, clamped to short months
	MonthOfYear *time.Month   // annually
	StartDate   time.Time
	EndDate     *time.Time
}

// ParseFrequency converts a wire value into a Frequency.
func ParseFrequency(s string) (Frequency, error) {
	switch Frequency(strings.ToLower(strings.TrimSpace(s))) {
	case OneTime:
		return OneTime, nil
	case Weekly:
		return Weekly, nil
	case Monthly:
		return Monthly, nil
	case Annually:
		return Annually, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFrequency, s)
}

// ParseWeekday converts a lowercase day name ("monday") into a time.Weekday.
func ParseWeekday(s string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sunday":
		return time.Sunday, nil
	case "monday":
		return time.Monday, nil
	case "tuesday":
		return time.Tuesday, nil
	case "wednesday":
		return time.Wednesday, nil
	case "thursday":
		return time.Thursday, nil
	case "friday":
		return time.Friday, nil
	case "saturday":
		return time.Saturday, nil
	}
	return 0, fmt.Errorf("%w: invalid day_of_week %q", ErrInvalidAnchor, s)
}

// Validate checks that the anchor fields required by the frequency are
// present and in range. It never clamps; bad parameters are rejected before
// anything is persisted.
func (r Rule) Validate() error {
	if r.StartDate.IsZero() {
		return fmt.Errorf("%w: start_date is required", ErrMissingAnchor)
	}
	if r.EndDate != nil && r.EndDate.Before(DateOnly(r.StartDate)) {
		return ErrEndBeforeStart
	}

	switch r.Frequency {
	case OneTime:
		return nil
	case Weekly:
		if r.DayOfWeek == nil {
			return fmt.Errorf("%w: weekly requires day_of_week", ErrMissingAnchor)
		}
	case Monthly:
		if r.DayOfMonth == nil {
			return fmt.Errorf("%w: monthly requires day_of_month", ErrMissingAnchor)
		}
		if *r.DayOfMonth < 1 || *r.DayOfMonth > 31 {
			return fmt.Errorf("%w: day_of_month must be 1-31, got %d", ErrInvalidAnchor, *r.DayOfMonth)
		}
	case Annually:
		if r.MonthOfYear == nil {
			return fmt.Errorf("%w: annually requires month_of_year", ErrMissingAnchor)
		}
		if *r.MonthOfYear < time.January || *r.MonthOfYear > time.December {
			return fmt.Errorf("%w: month_of_year must be 1-12, got %d", ErrInvalidAnchor, int(*r.MonthOfYear))
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFrequency, r.Frequency)
	}
	return nil
}

// DateSet tracks calendar dates that are already resolved (ignored or
// distributed) and must be skipped by Next.
type DateSet map[string]struct{}

// NewDateSet builds a DateSet from calendar dates, ignoring time-of-day.
func NewDateSet(dates ...time.Time) DateSet {
	s := make(DateSet, len(dates))
	for _, d := range dates {
		s.Add(d)
	}
	return s
}

func (s DateSet) Add(d time.Time) {
	s[DateOnly(d).Format("2006-01-02")] = struct{}{}
}

func (s DateSet) Contains(d time.Time) bool {
	_, ok := s[DateOnly(d).Format("2006-01-02")]
	return ok
}

// DateOnly truncates a time to its calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Next computes the earliest occurrence on or after cursor that matches the
// rule and is not in the excluded set. The cursor is clamped up to StartDate.
// It returns false when no further occurrence exists, either because the
// candidate would pass EndDate or because the rule is one_time and its single
// date is already resolved or behind the cursor.
func (r Rule) Next(cursor time.Time, excluded DateSet) (time.Time, bool) {
	cursor = DateOnly(cursor)
	start := DateOnly(r.StartDate)
	if cursor.Before(start) {
		cursor = start
	}

	switch r.Frequency {
	case OneTime:
		if cursor.After(start) || excluded.Contains(start) {
			return time.Time{}, false
		}
		return start, true

	case Weekly:
		candidate := cursor
		offset := (int(*r.DayOfWeek) - int(candidate.Weekday()) + 7) % 7
		candidate = candidate.AddDate(0, 0, offset)
		for {
			if r.pastEnd(candidate) {
				return time.Time{}, false
			}
			if !excluded.Contains(candidate) {
				return candidate, true
			}
			candidate = candidate.AddDate(0, 0, 7)
		}

	case Monthly:
		year, month := cursor.Year(), cursor.Month()
		for {
			day := *r.DayOfMonth
			if max := DaysInMonth(year, month); day > max {
				day = max
			}
			candidate := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
			if !candidate.Before(cursor) {
				if r.pastEnd(candidate) {
					return time.Time{}, false
				}
				if !excluded.Contains(candidate) {
					return candidate, true
				}
			}
			year, month = nextMonth(year, month)
		}

	case Annually:
		// Annual schedules anchor to the first of the configured month.
		year := cursor.Year()
		for {
			candidate := time.Date(year, *r.MonthOfYear, 1, 0, 0, 0, 0, time.UTC)
			if !candidate.Before(cursor) {
				if r.pastEnd(candidate) {
					return time.Time{}, false
				}
				if !excluded.Contains(candidate) {
					return candidate, true
				}
			}
			year++
		}
	}

	return time.Time{}, false
}

func (r Rule) pastEnd(candidate time.Time) bool {
	return r.EndDate != nil && candidate.After(DateOnly(*r.EndDate))
}

func nextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}
