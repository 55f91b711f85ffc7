package handlers

import (
	"net/http"
	"time"

	"github.com/blackshrub/FaithTracker-Church-Pastoral-Care-System-sub000/internal/middleware"
	"github.com/blackshrub/FaithTracker-Church-Pastoral-Care-System-sub000/internal/models"
	"github.com/blackshrub/FaithTracker-Church-Pastoral-Care-System-sub000/internal/recurrence"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateSchedule creates a recurring financial aid schedule. A one_time
// frequency records a settled financial_aid care event directly instead;
// one-time aid never produces a schedule.
func CreateSchedule(c *gin.Context) {
	db, ok := middleware.GetDB(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection not found"})
		return
	}

	var req models.ScheduleCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if req.AidAmount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "aid_amount must be positive"})
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start_date format. Use YYYY-MM-DD"})
		return
	}
	var endDate *time.Time
	if req.EndDate != nil && *req.EndDate != "" {
		d, err := parseDate(*req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end_date format. Use YYYY-MM-DD"})
			return
		}
		endDate = &d
	}

	freq, err := recurrence.ParseFrequency(req.Frequency)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid frequency", "details": err.Error()})
		return
	}

	rule := recurrence.Rule{Frequency: freq, StartDate: startDate, EndDate: endDate}
	if req.DayOfWeek != nil {
		day, err := recurrence.ParseWeekday(*req.DayOfWeek)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid day_of_week", "details": err.Error()})
			return
		}
		rule.DayOfWeek = &day
	}
	if req.DayOfMonth != nil {
		rule.DayOfMonth = req.DayOfMonth
	}
	if req.MonthOfYear != nil {
		month := time.Month(*req.MonthOfYear)
		rule.MonthOfYear = &month
	}

	// Validate before anything is persisted.
	if err := rule.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid schedule parameters", "details": err.Error()})
		return
	}

	createdBy, _ := middleware.GetAuthUserID(c)

	// One-time aid is a settled ledger transaction, not a schedule.
	if freq == recurrence.OneTime {
		var event models.CareEvent
		err := db.QueryRow(c.Request.Context(), `
			INSERT INTO care_events (
				member_id, campus_id, event_type, event_date, title, description,
				aid_type, aid_amount, completed, created_by
			)
			VALUES ($1, $2, 'financial_aid', $3, $4, $5, $6, $7, true, $8)
			RETURNING id, member_id, campus_id, event_type, event_date, title,
				description, grief_relationship, hospital_name, aid_type, aid_amount,
				source_schedule_id, completed, ignored, created_by, created_at, updated_at
		`, req.MemberID, req.CampusID, startDate, req.Title, req.Notes,
			req.AidType, req.AidAmount, createdBy,
		).Scan(
			&event.ID, &event.MemberID, &event.CampusID, &event.EventType,
			&event.EventDate, &event.Title, &event.Description,
			&event.GriefRelationship, &event.HospitalName, &event.AidType,
			&event.AidAmount, &event.SourceScheduleID, &event.Completed,
			&event.Ignored, &event.CreatedBy, &event.CreatedAt, &event.UpdatedAt,
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record one-time aid", "details": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"schedule":   nil,
			"care_event": event.ToResponse(),
		})
		return
	}

	next, hasNext := rule.Next(recurrence.DateOnly(time.Now()), recurrence.NewDateSet())
	var nextOccurrence *time.Time
	if hasNext {
		nextOccurrence = &next
	}

	row := db.QueryRow(c.Request.Context(), `
		INSERT INTO aid_schedules (
			member_id, campus_id, title, aid_type, aid_amount, frequency,
			day_of_week, day_of_month, month_of_year, start_date, end_date,
			next_occurrence, created_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING `+scheduleColumns,
		req.MemberID, req.CampusID, req.Title, req.AidType, req.AidAmount,
		string(freq), req.DayOfWeek, req.DayOfMonth, req.MonthOfYear,
		startDate, endDate, nextOccurrence, createdBy,
	)

	schedule, err := scanSchedule(row)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create schedule", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, schedule.ToResponse(nil))
}

// ListMemberSchedules returns all schedules for a member
func ListMemberSchedules(c *gin.Context) {
	db, ok := middleware.GetDB(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection not found"})
		return
	}

	memberIDParam := c.Param("id")
	memberID, err := uuid.Parse(memberIDParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member ID format"})
		return
	}

	rows, err := db.Query(c.Request.Context(), `
		SELECT `+scheduleColumns+`
		FROM aid_schedules
		WHERE member_id = $1
		ORDER BY created_at DESC
	`, memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query schedules", "details": err.Error()})
		return
	}
	defer rows.Close()

	var scheduleRows []*models.AidSchedule
	for rows.Next() {
		var s models.AidSchedule
		err := rows.Scan(
			&s.ID, &s.MemberID, &s.CampusID, &s.Title, &s.AidType, &s.AidAmount,
			&s.Frequency, &s.DayOfWeek, &s.DayOfMonth, &s.MonthOfYear,
			&s.StartDate, &s.EndDate, &s.NextOccurrence, &s.IsActive, &s.Ignored,
			&s.Notes, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt,
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse schedule data", "details": err.Error()})
			return
		}
		scheduleRows = append(scheduleRows, &s)
	}

	schedules := []models.ScheduleResponse{}
	for _, s := range scheduleRows {
		ignored, err := ignoredOccurrences(c.Request.Context(), db, s.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query ignored occurrences", "details": err.Error()})
			return
		}
		schedules = append(schedules, s.ToResponse(ignored))
	}

	c.JSON(http.StatusOK, gin.H{
		"schedules": schedules,
		"count":     len(schedules),
	})
}

// GetSchedule returns one schedule with its ignored-occurrence audit list
func GetSchedule(c *gin.Context) {
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

	row := db.QueryRow(c.Request.Context(), `
		SELECT `+scheduleColumns+` FROM aid_schedules WHERE id = $1
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

	ignored, err := ignoredOccurrences(c.Request.Context(), db, schedule.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query ignored occurrences", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, schedule.ToResponse(ignored))
}
