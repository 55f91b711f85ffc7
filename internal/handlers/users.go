package handlers

import (
	"net/http"
	"strings"

	"github.com/blackshrub/FaithTracker-Church-Pastoral-Care-System-sub000/internal/middleware"
	"github.com/blackshrub/FaithTracker-Church-Pastoral-Care-System-sub000/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// ListUsers returns all active staff accounts
func ListUsers(c *gin.Context) {
	db, ok := middleware.GetDB(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection not found"})
		return
	}

	rows, err := db.Query(c.Request.Context(), `
		SELECT id, username, display_name, is_admin, is_active
		FROM users
		WHERE is_active = true
		ORDER BY is_admin DESC, display_name ASC
	`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query users"})
		return
	}
	defer rows.Close()

	users := []models.UserListResponse{}
	for rows.Next() {
		var user models.UserListResponse
		err := rows.Scan(&user.ID, &user.Username, &user.DisplayName, &user.IsAdmin, &user.IsActive)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse user data"})
			return
		}
		users = append(users, user)
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"count": len(users),
	})
}

// CreateUser adds a staff account (admin only)
func CreateUser(c *gin.Context) {
	db, ok := middleware.GetDB(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection not found"})
		return
	}

	var req models.UserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	var user models.User
	err = db.QueryRow(c.Request.Context(), `
		INSERT INTO users (username, display_name, password_hash, is_admin)
		VALUES ($1, $2, $3, $4)
		RETURNING id, username, display_name, is_admin, login_enabled, is_active,
			last_login, created_at, updated_at
	`, username, req.DisplayName, string(hash), req.IsAdmin).Scan(
		&user.ID, &user.Username, &user.DisplayName, &user.IsAdmin,
		&user.LoginEnabled, &user.IsActive, &user.LastLogin,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			c.JSON(http.StatusConflict, gin.H{"error": "Username already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, user.ToListResponse())
}
