package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/blackshrub/FaithTracker-Church-Pastoral-Care-System-sub000/internal/ledger"
	"github.com/blackshrub/FaithTracker-Church-Pastoral-Care-System-sub000/internal/middleware"
	"github.com/blackshrub/FaithTracker-Church-Pastoral-Care-System-sub000/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// aidEntries loads the financial-aid snapshot the ledger package aggregates.
// memberID nil loads the whole congregation.
func aidEntries(c *gin.Context, db queryer, memberID *uuid.UUID) ([]ledger.Entry, error) {
	query := `
		SELECT id, member_id, COALESCE(aid_type, 'other'), COALESCE(aid_amount, 0),
			event_date, completed, ignored
		FROM care_events
		WHERE event_type = 'financial_aid'
	`
	params := []interface{}{}
	if memberID != nil {
		query += " AND member_id = $1"
		params = append(params, *memberID)
	}

	rows, err := db.Query(c.Request.Context(), query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []ledger.Entry{}
	for rows.Next() {
		var e ledger.Entry
		if err := rows.Scan(&e.EventID, &e.MemberID, &e.AidType, &e.Amount, &e.GivenOn, &e.Completed, &e.Ignored); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetFinancialAidSummary returns the reconciled ledger: totals and per-type
// breakdowns over settled aid only. Scheduled future payments are
// commitments, not disbursements, and never appear here.
func GetFinancialAidSummary(c *gin.Context) {
	db, ok := middleware.GetDB(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection not found"})
		return
	}

	entries, err := aidEntries(c, db, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query aid ledger", "details": err.Error()})
		return
	}

	// Optional date-range filter for the analytics page.
	var from, to time.Time
	if s := c.Query("start_date"); s != "" {
		d, err := parseDate(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start_date format. Use YYYY-MM-DD"})
			return
		}
		from = d
	}
	if s := c.Query("end_date"); s != "" {
		d, err := parseDate(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end_date format. Use YYYY-MM-DD"})
			return
		}
		to = d
	}
	if !from.IsZero() || !to.IsZero() {
		entries = ledger.FilterRange(entries, from, to)
	}

	c.JSON(http.StatusOK, ledger.Summarize(entries))
}

// GetMemberAidSummary returns the reconciled ledger for one member
func GetMemberAidSummary(c *gin.Context) {
	db, ok := middleware.GetDB(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection not found"})
		return
	}

	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member ID format"})
		return
	}

	entries, err := aidEntries(c, db, &memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query aid ledger", "details": err.Error()})
		return
	}

	summary := ledger.Summarize(entries)
	c.JSON(http.StatusOK, gin.H{
		"member_id":    memberID,
		"total_amount": summary.TotalAmount,
		"total_count":  summary.TotalCount,
		"by_type":      summary.ByType,
	})
}

// GetDashboardSummary returns the aggregate counts for the dashboard page
func GetDashboardSummary(c *gin.Context) {
	db, ok := middleware.GetDB(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection not found"})
		return
	}

	ctx := c.Request.Context()
	var summary models.DashboardSummary

	err := db.QueryRow(ctx, `SELECT COUNT(*) FROM members WHERE is_active = true`).Scan(&summary.TotalMembers)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count members", "details": err.Error()})
		return
	}

	err = db.QueryRow(ctx, `
		SELECT COUNT(*) FROM aid_schedules
		WHERE is_active = true AND next_occurrence IS NOT NULL
	`).Scan(&summary.ActiveSchedules)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count schedules", "details": err.Error()})
		return
	}

	err = db.QueryRow(ctx, `
		SELECT COUNT(*) FROM care_events
		WHERE completed = false AND ignored = false
	`).Scan(&summary.PendingCareEvents)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count pending events", "details": err.Error()})
		return
	}

	entries, err := aidEntries(c, db, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query aid ledger", "details": err.Error()})
		return
	}
	summary.TotalAidGiven = ledger.TotalGiven(entries)

	birthdays, err := upcomingBirthdays(ctx, db, 14)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query birthdays", "details": err.Error()})
		return
	}
	summary.UpcomingBirthdays = birthdays

	c.JSON(http.StatusOK, summary)
}

// upcomingBirthdays finds members whose birthday falls within the next
// windowDays days, comparing month and day only.
func upcomingBirthdays(ctx context.Context, db queryer, windowDays int) ([]models.UpcomingBirthday, error) {
	rows, err := db.Query(ctx, `
		SELECT id, name, birthdate
		FROM members
		WHERE is_active = true AND birthdate IS NOT NULL
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	today := time.Date(time.Now().Year(), time.Now().Month(), time.Now().Day(), 0, 0, 0, 0, time.UTC)
	birthdays := []models.UpcomingBirthday{}

	for rows.Next() {
		var id uuid.UUID
		var name string
		var birthdate time.Time
		if err := rows.Scan(&id, &name, &birthdate); err != nil {
			return nil, err
		}

		next := time.Date(today.Year(), birthdate.Month(), birthdate.Day(), 0, 0, 0, 0, time.UTC)
		if next.Before(today) {
			next = next.AddDate(1, 0, 0)
		}
		daysAway := int(next.Sub(today).Hours() / 24)
		if daysAway > windowDays {
			continue
		}

		birthdays = append(birthdays, models.UpcomingBirthday{
			MemberID:  id.String(),
			Name:      name,
			Birthdate: birthdate.Format("2006-01-02"),
			NextDate:  next.Format("2006-01-02"),
			DaysAway:  daysAway,
		})
	}
	return birthdays, rows.Err()
}
