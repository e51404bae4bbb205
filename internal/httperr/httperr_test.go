package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestHandleMapsKindsToStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err    error
		status int
		code   string
	}{
		{ErrNotFound("worker_not_found"), http.StatusNotFound, "worker_not_found"},
		{ErrConflict("already_clocked_in"), http.StatusConflict, "already_clocked_in"},
		{ErrUnauthorized("invalid_credentials"), http.StatusUnauthorized, "invalid_credentials"},
		{ErrValidation("invalid_date"), http.StatusBadRequest, "invalid_date"},
		{ErrBusiness("invalid_state"), http.StatusBadRequest, "invalid_state"},
		{fmt.Errorf("wrapped: %w", ErrNotFound("job_not_found")), http.StatusNotFound, "job_not_found"},
		{errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		Handle(c, tc.err)

		assert.Equal(t, tc.status, w.Code, tc.code)
		var body HTTPError
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, tc.code, body.Code)
		assert.NotEmpty(t, body.Message)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(nil))
}

func TestIsKind(t *testing.T) {
	assert.True(t, IsKind(ErrConflict("x"), KindConflict))
	assert.False(t, IsKind(ErrConflict("x"), KindNotFound))
	assert.True(t, IsBusiness(ErrNotFound("job_not_found"), "job_not_found"))
	assert.True(t, IsRecordNotFound(fmt.Errorf("get: %w", gorm.ErrRecordNotFound)))
}
