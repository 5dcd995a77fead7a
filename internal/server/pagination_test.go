package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPaginationRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", func(c *gin.Context) {
		page, pageSize, ok := paginationParams(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"page": page, "page_size": pageSize})
	})
	return r
}

func TestPaginationDefaults(t *testing.T) {
	r := newPaginationRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]int
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body["page"])
	assert.Equal(t, 20, body["page_size"])
}

func TestPaginationParsed(t *testing.T) {
	r := newPaginationRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/?page=3&page_size=50", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]int
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 3, body["page"])
	assert.Equal(t, 50, body["page_size"])
}

func TestPaginationRejectsNonNumeric(t *testing.T) {
	r := newPaginationRouter()

	for _, query := range []string{"?page=abc", "?page_size=abc", "?page=1.5"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/"+query, nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "query %s", query)
	}
}
