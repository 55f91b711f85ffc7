package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/blackshrub/FaithTracker-Church-Pastoral-Care-System-sub000/internal/middleware"
	"github.com/blackshrub/FaithTracker-Church-Pastoral-Care-System-sub000/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const careEventColumns = `
	id, member_id, campus_id, event_type, event_date, title, description,
	grief_relationship, hospital_name, aid_type, aid_amount, source_schedule_id,
	completed, ignored, created_by, created_at, updated_at
`

func scanCareEvent(row pgx.Row) (*models.CareEvent, error) {
	var e models.CareEvent
	err := row.Scan(
		&e.ID, &e.MemberID, &e.CampusID, &e.EventType, &e.EventDate, &e.Title,
		&e.Description, &e.GriefRelationship, &e.HospitalName, &e.AidType,
		&e.AidAmount, &e.SourceScheduleID, &e.Completed, &e.Ignored,
		&e.CreatedBy, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ListCareEvents returns care events with optional type and date-range filters
func ListCareEvents(c *gin.Context) {
	db, ok := middleware.GetDB(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection not found"})
		return
	}

	query := `SELECT ` + careEventColumns + ` FROM care_events WHERE 1=1`
	params := []interface{}{}
	paramCount := 0

	if eventType := c.Query("type"); eventType != "" {
		if _, err := models.ParseEventType(eventType); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event type", "details": err.Error()})
			return
		}
		paramCount++
		query += fmt.Sprintf(" AND event_type = $%d", paramCount)
		params = append(params, eventType)
	}
	if startDate := c.Query("start_date"); startDate != "" {
		if _, err := parseDate(startDate); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start_date format. Use YYYY-MM-DD"})
			return
		}
		paramCount++
		query += fmt.Sprintf(" AND event_date >= $%d", paramCount)
		params = append(params, startDate)
	}
	if endDate := c.Query("end_date"); endDate != "" {
		if _, err := parseDate(endDate); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end_date format. Use YYYY-MM-DD"})
			return
		}
		paramCount++
		query += fmt.Sprintf(" AND event_date <= $%d", paramCount)
		params = append(params, endDate)
	}

	query += " ORDER BY event_date DESC, created_at DESC"

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit. Must be a positive integer"})
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid offset. Must be a non-negative integer"})
		return
	}

	paramCount++
	query += fmt.Sprintf(" LIMIT $%d", paramCount)
	params = append(params, limit)

	paramCount++
	query += fmt.Sprintf(" OFFSET $%d", paramCount)
	params = append(params, offset)

	rows, err := db.Query(c.Request.Context(), query, params...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query care events", "details": err.Error()})
		return
	}
	defer rows.Close()

	events := []models.CareEventResponse{}
	for rows.Next() {
		event, err := scanCareEvent(rows)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse care event data", "details": err.Error()})
			return
		}
		events = append(events, event.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"care_events": events,
		"count":       len(events),
	})
}

// GetCareEvent returns a single care event
func GetCareEvent(c *gin.Context) {
	db, ok := middleware.GetDB(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection not found"})
		return
	}

	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid care event ID format"})
		return
	}

	row := db.QueryRow(c.Request.Context(), `
		SELECT `+careEventColumns+` FROM care_events WHERE id = $1
	`, eventID)

	event, err := scanCareEvent(row)
	if err != nil {
		if isNoRows(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Care event not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query care event", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, event.ToResponse())
}

// CreateCareEvent records a new care event. Grief and accident events also
// get their follow-up stage timeline generated in the same transaction.
func CreateCareEvent(c *gin.Context) {
	db, ok := middleware.GetDB(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection not found"})
		return
	}

	var req models.CareEventCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	eventType, err := models.ParseEventType(req.EventType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event type", "details": err.Error()})
		return
	}
	if err := req.ValidateTypeFields(eventType); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid care event", "details": err.Error()})
		return
	}

	eventDate, err := parseDate(req.EventDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event_date format. Use YYYY-MM-DD"})
		return
	}

	// Direct financial aid entry is aid already given: settled by default.
	completed := eventType == models.EventFinancialAid
	if req.Completed != nil {
		completed = *req.Completed
	}

	createdBy, _ := middleware.GetAuthUserID(c)

	tx, err := db.Begin(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}
	defer tx.Rollback(c.Request.Context())

	row := tx.QueryRow(c.Request.Context(), `
		INSERT INTO care_events (
			member_id, campus_id, event_type, event_date, title, description,
			grief_relationship, hospital_name, aid_type, aid_amount, completed,
			created_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+careEventColumns,
		req.MemberID, req.CampusID, string(eventType), eventDate, req.Title,
		req.Description, req.GriefRelationship, req.HospitalName, req.AidType,
		req.AidAmount, completed, createdBy,
	)

	event, err := scanCareEvent(row)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create care event", "details": err.Error()})
		return
	}

	// Generate the follow-up timeline for grief and accident events.
	switch eventType {
	case models.EventGriefLoss:
		err = insertStages(c, tx, "grief_support_stages", event.ID, eventDate, models.GriefStageOffsets)
	case models.EventAccidentIllness:
		err = insertStages(c, tx, "accident_followup_stages", event.ID, eventDate, models.AccidentStageOffsets)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate follow-up stages", "details": err.Error()})
		return
	}

	if err = tx.Commit(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	c.JSON(http.StatusCreated, event.ToResponse())
}

func insertStages(c *gin.Context, tx queryExecer, table string, eventID uuid.UUID, eventDate time.Time, offsets []struct {
	Stage string
	Days  int
}) error {
	for _, offset := range offsets {
		_, err := tx.Exec(c.Request.Context(),
			`INSERT INTO `+table+` (care_event_id, stage, scheduled_date) VALUES ($1, $2, $3)`,
			eventID, offset.Stage, eventDate.AddDate(0, 0, offset.Days),
		)
		if err != nil {
			return err
		}
	}
	return nil
}
