package handlers

import (
	"net/http"

	"github.com/blackshrub/FaithTracker-Church-Pastoral-Care-System-sub000/internal/middleware"
	"github.com/blackshrub/FaithTracker-Church-Pastoral-Care-System-sub000/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Follow-up stages share the care-event disposition idiom: complete XOR
// ignore, undo clears both. Grief and accident stages live in separate
// tables with identical shapes.

// ListCareEventStages returns the follow-up timeline of a grief or accident event
func ListCareEventStages(c *gin.Context) {
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

	var eventType models.EventType
	err = db.QueryRow(c.Request.Context(),
		`SELECT event_type FROM care_events WHERE id = $1`, eventID,
	).Scan(&eventType)
	if err != nil {
		if isNoRows(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Care event not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query care event", "details": err.Error()})
		}
		return
	}

	var table string
	switch eventType {
	case models.EventGriefLoss:
		table = "grief_support_stages"
	case models.EventAccidentIllness:
		table = "accident_followup_stages"
	default:
		c.JSON(http.StatusOK, gin.H{"stages": []models.FollowupStageResponse{}, "count": 0})
		return
	}

	rows, err := db.Query(c.Request.Context(), `
		SELECT id, care_event_id, stage, scheduled_date, completed, ignored, created_at, updated_at
		FROM `+table+`
		WHERE care_event_id = $1
		ORDER BY scheduled_date ASC
	`, eventID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query stages", "details": err.Error()})
		return
	}
	defer rows.Close()

	stages := []models.FollowupStageResponse{}
	for rows.Next() {
		var s models.FollowupStage
		err := rows.Scan(
			&s.ID, &s.CareEventID, &s.Stage, &s.ScheduledDate,
			&s.Completed, &s.Ignored, &s.CreatedAt, &s.UpdatedAt,
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse stage data", "details": err.Error()})
			return
		}
		stages = append(stages, s.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"stages": stages,
		"count":  len(stages),
	})
}

// CompleteGriefStage marks a grief-support stage as completed
func CompleteGriefStage(c *gin.Context) {
	setStageDisposition(c, "grief_support_stages", true, false)
}

// IgnoreGriefStage marks a grief-support stage as ignored
func IgnoreGriefStage(c *gin.Context) {
	setStageDisposition(c, "grief_support_stages", false, true)
}

// UndoGriefStage returns a grief-support stage to pending
func UndoGriefStage(c *gin.Context) {
	setStageDisposition(c, "grief_support_stages", false, false)
}

// CompleteAccidentStage marks an accident follow-up stage as completed
func CompleteAccidentStage(c *gin.Context) {
	setStageDisposition(c, "accident_followup_stages", true, false)
}

// IgnoreAccidentStage marks an accident follow-up stage as ignored
func IgnoreAccidentStage(c *gin.Context) {
	setStageDisposition(c, "accident_followup_stages", false, true)
}

// UndoAccidentStage returns an accident follow-up stage to pending
func UndoAccidentStage(c *gin.Context) {
	setStageDisposition(c, "accident_followup_stages", false, false)
}

func setStageDisposition(c *gin.Context, table string, completed, ignored bool) {
	db, ok := middleware.GetDB(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection not found"})
		return
	}

	stageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stage ID format"})
		return
	}

	tag, err := db.Exec(c.Request.Context(), `
		UPDATE `+table+`
		SET completed = $2,
			ignored = $3,
			updated_at = NOW()
		WHERE id = $1
	`, stageID, completed, ignored)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stage", "details": err.Error()})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Stage not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stage_id":  stageID,
		"completed": completed,
		"ignored":   ignored,
	})
}
