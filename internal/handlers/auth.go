package handlers

import (
	"net/http"
	"strings"

	"github.com/blackshrub/FaithTracker-Church-Pastoral-Care-System-sub000/internal/auth"
	"github.com/blackshrub/FaithTracker-Church-Pastoral-Care-System-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token       string    `json:"token"`
	UserID      uuid.UUID `json:"user_id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	IsAdmin     bool      `json:"is_admin"`
}

// Login authenticates a staff user and returns a JWT token
func Login(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		db, ok := middleware.GetDB(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection not found"})
			return
		}

		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		// Normalize username to lowercase
		username := strings.ToLower(strings.TrimSpace(req.Username))

		query := `
			SELECT id, username, display_name, password_hash, is_admin, login_enabled
			FROM users
			WHERE LOWER(username) = $1 AND is_active = true
		`

		var userID uuid.UUID
		var dbUsername string
		var displayName string
		var passwordHash *string
		var isAdmin bool
		var loginEnabled bool

		err := db.QueryRow(c.Request.Context(), query, username).Scan(
			&userID, &dbUsername, &displayName, &passwordHash, &isAdmin, &loginEnabled,
		)

		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}

		// Check if login is enabled
		if !loginEnabled {
			c.JSON(http.StatusForbidden, gin.H{"error": "Login is disabled for this user"})
			return
		}

		// Check if password_hash exists
		if passwordHash == nil || *passwordHash == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Password authentication not configured for this user"})
			return
		}

		// Verify password
		err = bcrypt.CompareHashAndPassword([]byte(*passwordHash), []byte(req.Password))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}

		// Generate JWT token
		token, err := jwtService.GenerateToken(userID, dbUsername, isAdmin)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}

		_, _ = db.Exec(c.Request.Context(),
			`UPDATE users SET last_login = NOW() WHERE id = $1`, userID)

		c.JSON(http.StatusOK, LoginResponse{
			Token:       token,
			UserID:      userID,
			Username:    dbUsername,
			DisplayName: displayName,
			IsAdmin:     isAdmin,
		})
	}
}
