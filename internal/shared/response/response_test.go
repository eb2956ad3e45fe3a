package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func perform(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/", handler)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSuccessEnvelope(t *testing.T) {
	rec := perform(func(c *gin.Context) {
		Success(c, http.StatusOK, gin.H{"id": 1})
	})

	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.NotNil(t, body["data"])
	assert.NotContains(t, body, "count")
	assert.NotContains(t, body, "error")
}

func TestSuccessWithCountKeepsZero(t *testing.T) {
	rec := perform(func(c *gin.Context) {
		SuccessWithCount(c, http.StatusOK, []string{}, 0)
	})

	body := decode(t, rec)
	// count must serialize even when zero, hence the pointer field.
	require.Contains(t, body, "count")
	assert.Equal(t, float64(0), body["count"])
}

func TestErrorEnvelope(t *testing.T) {
	prev := Development
	Development = false
	defer func() { Development = prev }()

	rec := perform(func(c *gin.Context) {
		Error(c, http.StatusNotFound, "Book not found")
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Book not found", body["error"])
	assert.NotContains(t, body, "stack")
}

func TestErrorEnvelopeIncludesStackInDevelopment(t *testing.T) {
	prev := Development
	Development = true
	defer func() { Development = prev }()

	rec := perform(func(c *gin.Context) {
		Error(c, http.StatusInternalServerError, "boom")
	})

	body := decode(t, rec)
	assert.Contains(t, body, "stack")
	assert.NotEmpty(t, body["stack"])
}
