package handlers

import (
	"net/http"
	"time"

	"github.com/blackshrub/FaithTracker-Church-Pastoral-Care-System-sub000/internal/middleware"
	"github.com/blackshrub/FaithTracker-Church-Pastoral-Care-System-sub000/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MarkDistributed resolves the pending occurrence as given: it records a
// settled financial_aid care event and advances next_occurrence. The two
// writes happen in one transaction so an occurrence can never be half
// resolved.
func MarkDistributed(c *gin.Context) {
	db, ok := middleware.GetDB(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection not found"})
		return
	}

	scheduleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid schedule ID format"})
		return
	}

	createdBy, _ := middleware.GetAuthUserID(c)

	tx, err := db.Begin(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}
	defer tx.Rollback(c.Request.Context())

	row := tx.QueryRow(c.Request.Context(), `
		SELECT `+scheduleColumns+` FROM aid_schedules WHERE id = $1 FOR UPDATE
	`, scheduleID)
	schedule, err := scanSchedule(row)
	if err != nil {
		if isNoRows(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Schedule not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query schedule", "details": err.Error()})
		}
		return
	}

	if !schedule.IsActive {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Schedule has been stopped"})
		return
	}
	if schedule.NextOccurrence == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Schedule has no further occurrences"})
		return
	}

	occurrence := *schedule.NextOccurrence

	var eventID uuid.UUID
	err = tx.QueryRow(c.Request.Context(), `
		INSERT INTO care_events (
			member_id, campus_id, event_type, event_date, title, description,
			aid_type, aid_amount, source_schedule_id, completed, created_by
		)
		VALUES ($1, $2, 'financial_aid', $3, $4, $5, $6, $7, $8, true, $9)
		RETURNING id
	`, schedule.MemberID, schedule.CampusID, occurrence, schedule.Title,
		schedule.Notes, schedule.AidType, schedule.AidAmount, schedule.ID,
		createdBy,
	).Scan(&eventID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record distribution", "details": err.Error()})
		return
	}

	next, err := advanceSchedule(c, tx, schedule, occurrence.AddDate(0, 0, 1))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to advance schedule", "details": err.Error()})
		return
	}

	if err = tx.Commit(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Occurrence marked distributed",
		"care_event_id":   eventID,
		"distributed_on":  occurrence.Format("2006-01-02"),
		"next_occurrence": formatDatePtr(next),
	})
}

// IgnoreOccurrence skips the pending occurrence without disbursement. The
// date goes into the ignored-occurrence history and next_occurrence advances;
// no care event is produced.
func IgnoreOccurrence(c *gin.Context) {
	db, ok := middleware.GetDB(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection not found"})
		return
	}

	scheduleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid schedule ID format"})
		return
	}

	tx, err := db.Begin(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}
	defer tx.Rollback(c.Request.Context())

	row := tx.QueryRow(c.Request.Context(), `
		SELECT `+scheduleColumns+` FROM aid_schedules WHERE id = $1 FOR UPDATE
	`, scheduleID)
	schedule, err := scanSchedule(row)
	if err != nil {
		if isNoRows(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Schedule not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query schedule", "details": err.Error()})
		}
		return
	}

	if !schedule.IsActive {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Schedule has been stopped"})
		return
	}
	if schedule.NextOccurrence == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Schedule has no further occurrences"})
		return
	}

	occurrence := *schedule.NextOccurrence

	_, err = tx.Exec(c.Request.Context(), `
		INSERT INTO schedule_ignored_occurrences (schedule_id, occurred_on)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, schedule.ID, occurrence)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record ignored occurrence", "details": err.Error()})
		return
	}

	next, err := advanceSchedule(c, tx, schedule, occurrence.AddDate(0, 0, 1))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to advance schedule", "details": err.Error()})
		return
	}

	if err = tx.Commit(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Occurrence ignored",
		"ignored_on":      occurrence.Format("2006-01-02"),
		"next_occurrence": formatDatePtr(next),
	})
}

// RemoveIgnoredOccurrence un-ignores one date, reinstating it as a pending
// candidate. This is the single action that lets a past resolved occurrence
// re-enter the pending set, so next_occurrence is recomputed from the
// schedule start.
func RemoveIgnoredOccurrence(c *gin.Context) {
	db, ok := middleware.GetDB(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection not found"})
		return
	}

	scheduleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid schedule ID format"})
		return
	}
	date, err := parseDate(c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	tx, err := db.Begin(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}
	defer tx.Rollback(c.Request.Context())

	row := tx.QueryRow(c.Request.Context(), `
		SELECT `+scheduleColumns+` FROM aid_schedules WHERE id = $1 FOR UPDATE
	`, scheduleID)
	schedule, err := scanSchedule(row)
	if err != nil {
		if isNoRows(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Schedule not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query schedule", "details": err.Error()})
		}
		return
	}

	tag, err := tx.Exec(c.Request.Context(), `
		DELETE FROM schedule_ignored_occurrences
		WHERE schedule_id = $1 AND occurred_on = $2
	`, schedule.ID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove ignored occurrence", "details": err.Error()})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ignored occurrence not found"})
		return
	}

	// Recompute from the start so the reinstated date can surface again.
	next, err := advanceSchedule(c, tx, schedule, schedule.StartDate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to recompute schedule", "details": err.Error()})
		return
	}

	if err = tx.Commit(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Ignored occurrence removed",
		"reinstated":      date.Format("2006-01-02"),
		"next_occurrence": formatDatePtr(next),
	})
}

// StopSchedule pauses a schedule permanently. History is preserved and no
// further occurrences resolve; there is no resume.
func StopSchedule(c *gin.Context) {
	db, ok := middleware.GetDB(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection not found"})
		return
	}

	scheduleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid schedule ID format"})
		return
	}

	var req models.StopScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Body is optional.
		req = models.StopScheduleRequest{}
	}

	tag, err := db.Exec(c.Request.Context(), `
		UPDATE aid_schedules
		SET is_active = false,
			ignored = $2,
			updated_at = NOW()
		WHERE id = $1
	`, scheduleID, req.Ignored)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to stop schedule", "details": err.Error()})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Schedule not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Schedule stopped",
		"is_active": false,
		"ignored":   req.Ignored,
	})
}

// DeleteSchedule hard-deletes a schedule. Distributed care events and the
// ignored-occurrence history cascade away with it.
func DeleteSchedule(c *gin.Context) {
	db, ok := middleware.GetDB(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection not found"})
		return
	}

	scheduleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid schedule ID format"})
		return
	}

	tag, err := db.Exec(c.Request.Context(), `
		DELETE FROM aid_schedules WHERE id = $1
	`, scheduleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete schedule", "details": err.Error()})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Schedule not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Schedule deleted"})
}

// advanceSchedule recomputes and stores next_occurrence starting from cursor,
// excluding every already-resolved date. Returns nil when the schedule is
// exhausted.
func advanceSchedule(c *gin.Context, tx queryExecer, schedule *models.AidSchedule, cursor time.Time) (*time.Time, error) {
	rule, err := scheduleRule(schedule)
	if err != nil {
		return nil, err
	}

	excluded, err := resolvedDates(c.Request.Context(), tx, schedule.ID)
	if err != nil {
		return nil, err
	}

	var next *time.Time
	if n, ok := rule.Next(cursor, excluded); ok {
		next = &n
	}

	_, err = tx.Exec(c.Request.Context(), `
		UPDATE aid_schedules SET next_occurrence = $2, updated_at = NOW() WHERE id = $1
	`, schedule.ID, next)
	if err != nil {
		return nil, err
	}
	return next, nil
}

func formatDatePtr(d *time.Time) *string {
	if d == nil {
		return nil
	}
	s := d.Format("2006-01-02")
	return &s
}
