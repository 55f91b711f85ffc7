package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/blackshrub/FaithTracker-Church-Pastoral-Care-System-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

// listRequest runs ListCareEvents against the given query string. The pool is
// a typed nil so GetDB succeeds; every case here must reject before any query
// runs.
func listRequest(t *testing.T, rawQuery string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/care-events?"+rawQuery, nil)
	middleware.WithDB((*pgxpool.Pool)(nil))(c)

	ListCareEvents(c)
	return w
}

func TestListCareEventsRejectsBadPagination(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, listRequest(t, "limit=abc").Code)
	assert.Equal(t, http.StatusBadRequest, listRequest(t, "limit=0").Code)
	assert.Equal(t, http.StatusBadRequest, listRequest(t, "offset=-1").Code)
	assert.Equal(t, http.StatusBadRequest, listRequest(t, "offset=abc").Code)
}

func TestListCareEventsRejectsBadFilters(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, listRequest(t, "type=wedding").Code)
	assert.Equal(t, http.StatusBadRequest, listRequest(t, "start_date=03-05-2025").Code)
	assert.Equal(t, http.StatusBadRequest, listRequest(t, "end_date=notadate").Code)
}
