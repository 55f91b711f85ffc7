package handlers

import (
	"net/http"
	"time"

	"github.com/blackshrub/FaithTracker-Church-Pastoral-Care-System-sub000/internal/middleware"
	"github.com/blackshrub/FaithTracker-Church-Pastoral-Care-System-sub000/internal/models"
	"github.com/gin-gonic/gin"
)

// GetMemberDemographics returns the roster breakdown for the stats page
func GetMemberDemographics(c *gin.Context) {
	db, ok := middleware.GetDB(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection not found"})
		return
	}

	rows, err := db.Query(c.Request.Context(), `
		SELECT gender, marital_status, birthdate, is_active
		FROM members
	`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query members", "details": err.Error()})
		return
	}
	defer rows.Close()

	resp := models.DemographicsResponse{
		ByGender:  map[string]int{},
		ByAgeBand: map[string]int{},
		ByMarital: map[string]int{},
	}

	now := time.Now()
	for rows.Next() {
		var gender, marital *string
		var birthdate *time.Time
		var isActive bool
		if err := rows.Scan(&gender, &marital, &birthdate, &isActive); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse member data", "details": err.Error()})
			return
		}

		resp.TotalMembers++
		if isActive {
			resp.ActiveMembers++
		}
		if gender != nil && *gender != "" {
			resp.ByGender[*gender]++
		}
		if marital != nil && *marital != "" {
			resp.ByMarital[*marital]++
		}
		if birthdate != nil {
			resp.ByAgeBand[ageBand(*birthdate, now)]++
		}
	}

	c.JSON(http.StatusOK, resp)
}

func ageBand(birthdate, now time.Time) string {
	age := now.Year() - birthdate.Year()
	if now.Month() < birthdate.Month() ||
		(now.Month() == birthdate.Month() && now.Day() < birthdate.Day()) {
		age--
	}

	switch {
	case age < 20:
		return "under_20"
	case age < 40:
		return "20s_30s"
	case age < 60:
		return "40s_50s"
	case age < 80:
		return "60s_70s"
	default:
		return "80_plus"
	}
}
