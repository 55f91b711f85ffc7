package handlers

import (
	"net/http"

	"github.com/blackshrub/FaithTracker-Church-Pastoral-Care-System-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Care events are immutable once created; only their disposition flags flip.
// A completed event cannot also be ignored and vice versa, so each flip
// clears the opposite flag.

// CompleteCareEvent marks a care event as completed
func CompleteCareEvent(c *gin.Context) {
	setCareEventDisposition(c, "completed")
}

// IgnoreCareEvent marks a care event as ignored
func IgnoreCareEvent(c *gin.Context) {
	setCareEventDisposition(c, "ignored")
}

// UndoCareEvent clears both disposition flags, returning the event to pending
func UndoCareEvent(c *gin.Context) {
	setCareEventDisposition(c, "pending")
}

func setCareEventDisposition(c *gin.Context, disposition string) {
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

	var completed, ignored bool
	switch disposition {
	case "completed":
		completed = true
	case "ignored":
		ignored = true
	}

	tag, err := db.Exec(c.Request.Context(), `
		UPDATE care_events
		SET completed = $2,
			ignored = $3,
			updated_at = NOW()
		WHERE id = $1
	`, eventID, completed, ignored)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update care event", "details": err.Error()})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Care event not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"event_id":  eventID,
		"completed": completed,
		"ignored":   ignored,
	})
}

// DeleteCareEvent hard-deletes an event; follow-up stage records cascade
func DeleteCareEvent(c *gin.Context) {
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

	tag, err := db.Exec(c.Request.Context(), `
		DELETE FROM care_events WHERE id = $1
	`, eventID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete care event", "details": err.Error()})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Care event not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Care event deleted"})
}
