package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/blackshrub/FaithTracker-Church-Pastoral-Care-System-sub000/internal/models"
	"github.com/blackshrub/FaithTracker-Church-Pastoral-Care-System-sub000/internal/recurrence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// queryer is satisfied by both *pgxpool.Pool and pgx.Tx so schedule helpers
// can run inside or outside a transaction.
type queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type queryExecer interface {
	queryer
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func isNoRows(err error) bool {
	return err != nil && err.Error() == "no rows in result set"
}

const scheduleColumns = `
	id, member_id, campus_id, title, aid_type, aid_amount, frequency,
	day_of_week, day_of_month, month_of_year, start_date, end_date,
	next_occurrence, is_active, ignored, notes, created_by, created_at, updated_at
`

func scanSchedule(row pgx.Row) (*models.AidSchedule, error) {
	var s models.AidSchedule
	err := row.Scan(
		&s.ID, &s.MemberID, &s.CampusID, &s.Title, &s.AidType, &s.AidAmount,
		&s.Frequency, &s.DayOfWeek, &s.DayOfMonth, &s.MonthOfYear,
		&s.StartDate, &s.EndDate, &s.NextOccurrence, &s.IsActive, &s.Ignored,
		&s.Notes, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// scheduleRule rebuilds the recurrence rule from a stored schedule row.
func scheduleRule(s *models.AidSchedule) (recurrence.Rule, error) {
	freq, err := recurrence.ParseFrequency(s.Frequency)
	if err != nil {
		return recurrence.Rule{}, err
	}

	rule := recurrence.Rule{
		Frequency: freq,
		StartDate: s.StartDate,
		EndDate:   s.EndDate,
	}
	if s.DayOfWeek != nil {
		day, err := recurrence.ParseWeekday(*s.DayOfWeek)
		if err != nil {
			return recurrence.Rule{}, err
		}
		rule.DayOfWeek = &day
	}
	if s.DayOfMonth != nil {
		rule.DayOfMonth = s.DayOfMonth
	}
	if s.MonthOfYear != nil {
		month := time.Month(*s.MonthOfYear)
		rule.MonthOfYear = &month
	}
	return rule, nil
}

// ignoredOccurrences returns the ordered ignored-date history of a schedule.
func ignoredOccurrences(ctx context.Context, q queryer, scheduleID uuid.UUID) ([]time.Time, error) {
	rows, err := q.Query(ctx, `
		SELECT occurred_on FROM schedule_ignored_occurrences
		WHERE schedule_id = $1
		ORDER BY occurred_on ASC
	`, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("query ignored occurrences: %w", err)
	}
	defer rows.Close()

	dates := []time.Time{}
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan ignored occurrence: %w", err)
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

// resolvedDates builds the excluded set for the resolver: every ignored
// occurrence plus every date already distributed as a care event from this
// schedule. An occurrence must never resolve twice.
func resolvedDates(ctx context.Context, q queryer, scheduleID uuid.UUID) (recurrence.DateSet, error) {
	excluded := recurrence.NewDateSet()

	ignored, err := ignoredOccurrences(ctx, q, scheduleID)
	if err != nil {
		return nil, err
	}
	for _, d := range ignored {
		excluded.Add(d)
	}

	rows, err := q.Query(ctx, `
		SELECT event_date FROM care_events WHERE source_schedule_id = $1
	`, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("query distributed occurrences: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan distributed occurrence: %w", err)
		}
		excluded.Add(d)
	}
	return excluded, rows.Err()
}
