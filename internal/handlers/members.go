package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/blackshrub/FaithTracker-Church-Pastoral-Care-System-sub000/internal/ledger"
	"github.com/blackshrub/FaithTracker-Church-Pastoral-Care-System-sub000/internal/middleware"
	"github.com/blackshrub/FaithTracker-Church-Pastoral-Care-System-sub000/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ListMembers returns the member roster with optional campus and search filters
func ListMembers(c *gin.Context) {
	db, ok := middleware.GetDB(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection not found"})
		return
	}

	query := `
		SELECT id, campus_id, name, phone_number, birthdate, gender, is_active
		FROM members
		WHERE is_active = true
	`
	params := []interface{}{}
	paramCount := 0

	if campusID := c.Query("campus_id"); campusID != "" {
		if _, err := uuid.Parse(campusID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid campus_id format"})
			return
		}
		paramCount++
		query += fmt.Sprintf(" AND campus_id = $%d", paramCount)
		params = append(params, campusID)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		paramCount++
		query += fmt.Sprintf(" AND name ILIKE $%d", paramCount)
		params = append(params, "%"+search+"%")
	}

	query += " ORDER BY name ASC"

	rows, err := db.Query(c.Request.Context(), query, params...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query members", "details": err.Error()})
		return
	}
	defer rows.Close()

	members := []models.MemberListResponse{}
	for rows.Next() {
		var m models.MemberListResponse
		var birthdate *time.Time
		err := rows.Scan(&m.ID, &m.CampusID, &m.Name, &m.PhoneNumber, &birthdate, &m.Gender, &m.IsActive)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse member data", "details": err.Error()})
			return
		}
		if birthdate != nil {
			formatted := birthdate.Format("2006-01-02")
			m.Birthdate = &formatted
		}
		members = append(members, m)
	}

	c.JSON(http.StatusOK, gin.H{
		"members": members,
		"count":   len(members),
	})
}

// GetMember returns a member with their settled aid total and care event count
func GetMember(c *gin.Context) {
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

	var detail models.MemberDetailResponse
	err = db.QueryRow(c.Request.Context(), `
		SELECT id, campus_id, name, email, phone_number, address, birthdate,
			gender, marital_status, joined_at, notes, is_active, created_at, updated_at
		FROM members
		WHERE id = $1
	`, memberID).Scan(
		&detail.ID, &detail.CampusID, &detail.Name, &detail.Email,
		&detail.PhoneNumber, &detail.Address, &detail.Birthdate, &detail.Gender,
		&detail.MaritalStatus, &detail.JoinedAt, &detail.Notes, &detail.IsActive,
		&detail.CreatedAt, &detail.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query member", "details": err.Error()})
		}
		return
	}

	entries, err := aidEntries(c, db, &memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query aid history", "details": err.Error()})
		return
	}
	detail.TotalAidGiven = ledger.TotalGiven(entries)

	err = db.QueryRow(c.Request.Context(),
		`SELECT COUNT(*) FROM care_events WHERE member_id = $1`, memberID,
	).Scan(&detail.CareEventCount)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count care events", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, detail)
}

// CreateMember adds a member to the roster
func CreateMember(c *gin.Context) {
	db, ok := middleware.GetDB(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection not found"})
		return
	}

	var req models.MemberCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	birthdate, err := parseDatePtr(req.Birthdate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid birthdate format. Use YYYY-MM-DD"})
		return
	}
	joinedAt, err := parseDatePtr(req.JoinedAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid joined_at format. Use YYYY-MM-DD"})
		return
	}

	var member models.Member
	err = db.QueryRow(c.Request.Context(), `
		INSERT INTO members (
			campus_id, name, email, phone_number, address, birthdate, gender,
			marital_status, joined_at, notes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, campus_id, name, email, phone_number, address, birthdate,
			gender, marital_status, joined_at, notes, is_active, created_at, updated_at
	`, req.CampusID, req.Name, req.Email, req.PhoneNumber, req.Address,
		birthdate, req.Gender, req.MaritalStatus, joinedAt, req.Notes,
	).Scan(
		&member.ID, &member.CampusID, &member.Name, &member.Email,
		&member.PhoneNumber, &member.Address, &member.Birthdate, &member.Gender,
		&member.MaritalStatus, &member.JoinedAt, &member.Notes, &member.IsActive,
		&member.CreatedAt, &member.UpdatedAt,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create member", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, member)
}

// UpdateMember updates roster fields on a member
func UpdateMember(c *gin.Context) {
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

	var req models.MemberUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	setClauses := []string{"updated_at = NOW()"}
	params := []interface{}{memberID}
	paramCount := 1

	addSet := func(column string, value interface{}) {
		paramCount++
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, paramCount))
		params = append(params, value)
	}

	if req.CampusID != nil {
		addSet("campus_id", *req.CampusID)
	}
	if req.Name != nil {
		addSet("name", *req.Name)
	}
	if req.Email != nil {
		addSet("email", *req.Email)
	}
	if req.PhoneNumber != nil {
		addSet("phone_number", *req.PhoneNumber)
	}
	if req.Address != nil {
		addSet("address", *req.Address)
	}
	if req.Birthdate != nil {
		d, err := parseDate(*req.Birthdate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid birthdate format. Use YYYY-MM-DD"})
			return
		}
		addSet("birthdate", d)
	}
	if req.Gender != nil {
		addSet("gender", *req.Gender)
	}
	if req.MaritalStatus != nil {
		addSet("marital_status", *req.MaritalStatus)
	}
	if req.JoinedAt != nil {
		d, err := parseDate(*req.JoinedAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid joined_at format. Use YYYY-MM-DD"})
			return
		}
		addSet("joined_at", d)
	}
	if req.Notes != nil {
		addSet("notes", *req.Notes)
	}
	if req.IsActive != nil {
		addSet("is_active", *req.IsActive)
	}

	query := fmt.Sprintf("UPDATE members SET %s WHERE id = $1", strings.Join(setClauses, ", "))
	tag, err := db.Exec(c.Request.Context(), query, params...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update member", "details": err.Error()})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member updated"})
}

// DeleteMember soft-deletes a member, keeping care history intact
func DeleteMember(c *gin.Context) {
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

	tag, err := db.Exec(c.Request.Context(), `
		UPDATE members SET is_active = false, updated_at = NOW() WHERE id = $1
	`, memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete member", "details": err.Error()})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member deactivated"})
}

// ListMemberCareEvents returns the care history of one member
func ListMemberCareEvents(c *gin.Context) {
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

	rows, err := db.Query(c.Request.Context(), `
		SELECT `+careEventColumns+`
		FROM care_events
		WHERE member_id = $1
		ORDER BY event_date DESC, created_at DESC
	`, memberID)
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
		"member_id":   memberID,
		"care_events": events,
		"count":       len(events),
	})
}

func parseDatePtr(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	d, err := parseDate(*s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
