package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dbKey = "db"

// WithDB attaches the application connection pool to the request context so
// handlers can retrieve it with GetDB.
func WithDB(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(dbKey, pool)
		c.Next()
	}
}

// GetDB retrieves the connection pool from the request context
func GetDB(c *gin.Context) (*pgxpool.Pool, bool) {
	value, exists := c.Get(dbKey)
	if !exists {
		return nil, false
	}
	pool, ok := value.(*pgxpool.Pool)
	return pool, ok
}
