package apperror

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestKindStatus(t *testing.T) {
	tests := map[Kind]int{
		KindValidation:         http.StatusBadRequest,
		KindConflict:           http.StatusBadRequest,
		KindUnauthenticated:    http.StatusUnauthorized,
		KindInvalidCredentials: http.StatusUnauthorized,
		KindInvalidToken:       http.StatusForbidden,
		KindForbidden:          http.StatusForbidden,
		KindNotFound:           http.StatusNotFound,
		KindInternal:           http.StatusInternalServerError,
	}
	for kind, status := range tests {
		assert.Equal(t, status, kind.Status(), kind.String())
	}
}

func TestErrorsIsMatchesKind(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NotFound("Order"))
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrConflict))
}

func TestFromDB(t *testing.T) {
	assert.Nil(t, FromDB("Product", nil))
	assert.ErrorIs(t, FromDB("Product", gorm.ErrRecordNotFound), ErrNotFound)
	assert.ErrorIs(t, FromDB("Category", gorm.ErrDuplicatedKey), ErrConflict)
	assert.ErrorIs(t, FromDB("Product", errors.New("boom")), ErrInternal)
}

func TestFromBinding_PerFieldMessages(t *testing.T) {
	gin.SetMode(gin.TestMode)
	type input struct {
		Name  string `json:"name" binding:"required,min=2"`
		Email string `json:"email" binding:"required,email"`
	}

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a","email":"nope"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	var in input
	err := c.ShouldBindJSON(&in)
	require.Error(t, err)

	appErr := FromBinding(err)
	assert.Equal(t, KindValidation, appErr.Kind)
	assert.Contains(t, appErr.Fields, "name")
	assert.Contains(t, appErr.Fields, "email")
	assert.Equal(t, "must be a valid email address", appErr.Fields["email"])
}

func TestRespond(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

	Respond(c, Validation("Invalid input", map[string]string{"price": "must be greater than or equal to 0"}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Invalid input", body["error"])
	assert.NotNil(t, body["fields"])
	assert.True(t, c.IsAborted())
}

func TestRespond_UnknownErrorIsGeneric(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

	Respond(c, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "pq:")
}
