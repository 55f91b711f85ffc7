package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func weekdayPtr(d time.Weekday) *time.Weekday { return &d }
func intPtr(i int) *int                       { return &i }
func monthPtr(m time.Month) *time.Month       { return &m }
func timePtr(t time.Time) *time.Time          { return &t }

func TestValidate_RequiresAnchors(t *testing.T) {
	cases := []struct {
		name string
		rule Rule
	}{
		{"weekly without day_of_week", Rule{Frequency: Weekly, StartDate: date(2025, 1, 1)}},
		{"monthly without day_of_month", Rule{Frequency: Monthly, StartDate: date(2025, 1, 1)}},
		{"annually without month_of_year", Rule{Frequency: Annually, StartDate: date(2025, 1, 1)}},
		{"missing start_date", Rule{Frequency: Weekly, DayOfWeek: weekdayPtr(time.Monday)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.rule.Validate(), ErrMissingAnchor)
		})
	}
}

func TestValidate_RejectsOutOfRangeAnchors(t *testing.T) {
	rule := Rule{Frequency: Monthly, DayOfMonth: intPtr(32), StartDate: date(2025, 1, 1)}
	assert.ErrorIs(t, rule.Validate(), ErrInvalidAnchor)

	rule = Rule{Frequency: Monthly, DayOfMonth: intPtr(0), StartDate: date(2025, 1, 1)}
	assert.ErrorIs(t, rule.Validate(), ErrInvalidAnchor)

	month := time.Month(13)
	rule = Rule{Frequency: Annually, MonthOfYear: &month, StartDate: date(2025, 1, 1)}
	assert.ErrorIs(t, rule.Validate(), ErrInvalidAnchor)
}

func TestValidate_EndBeforeStart(t *testing.T) {
	rule := Rule{
		Frequency: Weekly,
		DayOfWeek: weekdayPtr(time.Monday),
		StartDate: date(2025, 6, 1),
		EndDate:   timePtr(date(2025, 5, 1)),
	}
	assert.ErrorIs(t, rule.Validate(), ErrEndBeforeStart)
}

func TestValidate_UnknownFrequency(t *testing.T) {
	rule := Rule{Frequency: "fortnightly", StartDate: date(2025, 1, 1)}
	assert.ErrorIs(t, rule.Validate(), ErrUnknownFrequency)
}

func TestNext_WeeklyFromMidweek(t *testing.T) {
	// Created on a Wednesday with day_of_week=monday: next occurrence is the
	// following Monday.
	rule := Rule{Frequency: Weekly, DayOfWeek: weekdayPtr(time.Monday), StartDate: date(2025, 3, 5)}
	wednesday := date(2025, 3, 5)
	require.Equal(t, time.Wednesday, wednesday.Weekday())

	next, ok := rule.Next(wednesday, NewDateSet())
	require.True(t, ok)
	assert.Equal(t, date(2025, 3, 10), next)
	assert.Equal(t, time.Monday, next.Weekday())
}

func TestNext_WeeklyCursorOnAnchorDay(t *testing.T) {
	rule := Rule{Frequency: Weekly, DayOfWeek: weekdayPtr(time.Monday), StartDate: date(2025, 3, 3)}
	monday := date(2025, 3, 10)

	// Cursor itself counts when not already resolved.
	next, ok := rule.Next(monday, NewDateSet())
	require.True(t, ok)
	assert.Equal(t, monday, next)

	// Once resolved today, advance a full week.
	next, ok = rule.Next(monday, NewDateSet(monday))
	require.True(t, ok)
	assert.Equal(t, date(2025, 3, 17), next)
}

func TestNext_MonthlyClampsToShortMonth(t *testing.T) {
	// day_of_month=31 in February lands on the 28th (29th in leap years).
	rule := Rule{Frequency: Monthly, DayOfMonth: intPtr(31), StartDate: date(2025, 1, 1)}

	next, ok := rule.Next(date(2025, 2, 1), NewDateSet())
	require.True(t, ok)
	assert.Equal(t, date(2025, 2, 28), next)

	leapRule := Rule{Frequency: Monthly, DayOfMonth: intPtr(31), StartDate: date(2024, 1, 1)}
	next, ok = leapRule.Next(date(2024, 2, 1), NewDateSet())
	require.True(t, ok)
	assert.Equal(t, date(2024, 2, 29), next)
}

func TestNext_CursorBeforeStartClampsUp(t *testing.T) {
	// A cursor behind start_date never yields an occurrence before the
	// schedule begins.
	rule := Rule{Frequency: Monthly, DayOfMonth: intPtr(31), StartDate: date(2025, 1, 1)}

	next, ok := rule.Next(date(2024, 2, 1), NewDateSet())
	require.True(t, ok)
	assert.Equal(t, date(2025, 1, 31), next)
}

func TestNext_MonthlyDayProperty(t *testing.T) {
	// next_occurrence.day == min(day_of_month, days_in_month).
	for day := 28; day <= 31; day++ {
		rule := Rule{Frequency: Monthly, DayOfMonth: intPtr(day), StartDate: date(2025, 1, 1)}
		cursor := date(2025, 1, 1)
		for i := 0; i < 12; i++ {
			next, ok := rule.Next(cursor, NewDateSet())
			require.True(t, ok)
			want := day
			if max := DaysInMonth(next.Year(), next.Month()); want > max {
				want = max
			}
			assert.Equal(t, want, next.Day())
			cursor = next.AddDate(0, 0, 1)
		}
	}
}

func TestNext_MonthlyAdvancesPastCursor(t *testing.T) {
	rule := Rule{Frequency: Monthly, DayOfMonth: intPtr(10), StartDate: date(2025, 1, 1)}

	next, ok := rule.Next(date(2025, 3, 15), NewDateSet())
	require.True(t, ok)
	assert.Equal(t, date(2025, 4, 10), next)
}

func TestNext_SkipsIgnoredDates(t *testing.T) {
	rule := Rule{Frequency: Monthly, DayOfMonth: intPtr(5), StartDate: date(2025, 1, 1)}
	ignored := NewDateSet(date(2025, 1, 5), date(2025, 2, 5))

	next, ok := rule.Next(date(2025, 1, 1), ignored)
	require.True(t, ok)
	assert.Equal(t, date(2025, 3, 5), next)
	assert.False(t, ignored.Contains(next))
}

func TestNext_EndDateExhausts(t *testing.T) {
	rule := Rule{
		Frequency:  Monthly,
		DayOfMonth: intPtr(15),
		StartDate:  date(2025, 1, 1),
		EndDate:    timePtr(date(2025, 3, 31)),
	}

	next, ok := rule.Next(date(2025, 3, 1), NewDateSet())
	require.True(t, ok)
	assert.Equal(t, date(2025, 3, 15), next)

	// Past the end there are no further occurrences, never an out-of-range date.
	_, ok = rule.Next(date(2025, 3, 16), NewDateSet())
	assert.False(t, ok)
}

func TestNext_CursorClampedToStartDate(t *testing.T) {
	rule := Rule{Frequency: Weekly, DayOfWeek: weekdayPtr(time.Friday), StartDate: date(2025, 6, 1)}

	next, ok := rule.Next(date(2025, 1, 1), NewDateSet())
	require.True(t, ok)
	assert.Equal(t, date(2025, 6, 6), next)
}

func TestNext_AnnuallyFirstOfMonth(t *testing.T) {
	rule := Rule{Frequency: Annually, MonthOfYear: monthPtr(time.September), StartDate: date(2024, 1, 1)}

	next, ok := rule.Next(date(2025, 3, 1), NewDateSet())
	require.True(t, ok)
	assert.Equal(t, date(2025, 9, 1), next)

	// Already passed this year: roll to next year.
	next, ok = rule.Next(date(2025, 10, 1), NewDateSet())
	require.True(t, ok)
	assert.Equal(t, date(2026, 9, 1), next)
}

func TestNext_OneTime(t *testing.T) {
	rule := Rule{Frequency: OneTime, StartDate: date(2025, 3, 10)}

	next, ok := rule.Next(date(2025, 3, 1), NewDateSet())
	require.True(t, ok)
	assert.Equal(t, date(2025, 3, 10), next)

	// No further occurrence after the single date has passed or is resolved.
	_, ok = rule.Next(date(2025, 3, 11), NewDateSet())
	assert.False(t, ok)
	_, ok = rule.Next(date(2025, 3, 1), NewDateSet(date(2025, 3, 10)))
	assert.False(t, ok)
}

func TestNext_Idempotent(t *testing.T) {
	rule := Rule{Frequency: Weekly, DayOfWeek: weekdayPtr(time.Sunday), StartDate: date(2025, 1, 1)}
	excluded := NewDateSet(date(2025, 1, 5))

	first, ok1 := rule.Next(date(2025, 1, 2), excluded)
	second, ok2 := rule.Next(date(2025, 1, 2), excluded)
	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, first, second)
}

func TestNext_UnignoreResurfacesDate(t *testing.T) {
	// Ignoring a date advances past it; removing it from the ignored set and
	// recomputing from the start makes it the next candidate again.
	rule := Rule{Frequency: Monthly, DayOfMonth: intPtr(5), StartDate: date(2025, 1, 1)}
	jan := date(2025, 1, 5)

	ignored := NewDateSet(jan)
	next, ok := rule.Next(date(2025, 1, 1), ignored)
	require.True(t, ok)
	assert.Equal(t, date(2025, 2, 5), next)

	next, ok = rule.Next(date(2025, 1, 1), NewDateSet())
	require.True(t, ok)
	assert.Equal(t, jan, next)
}

func TestParseWeekday(t *testing.T) {
	d, err := ParseWeekday("monday")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, d)

	d, err = ParseWeekday("Sunday")
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, d)

	_, err = ParseWeekday("someday")
	assert.ErrorIs(t, err, ErrInvalidAnchor)
}

func TestParseFrequency(t *testing.T) {
	f, err := ParseFrequency("monthly")
	require.NoError(t, err)
	assert.Equal(t, Monthly, f)

	_, err = ParseFrequency("daily")
	assert.ErrorIs(t, err, ErrUnknownFrequency)
}
