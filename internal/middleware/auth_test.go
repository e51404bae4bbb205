package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ldagroup/timetracking/internal/auth"
	"github.com/ldagroup/timetracking/internal/httperr"
)

type staticVerifier struct{}

func (staticVerifier) Verify(_ context.Context, username, password string) (auth.Principal, error) {
	if username == "boss" && password == "pw" {
		return auth.Principal{ID: "1", Username: "boss", Name: "Boss"}, nil
	}
	return auth.Principal{}, httperr.ErrUnauthorized("invalid_credentials")
}

func newRouter(tokens *auth.TokenManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AdminMiddleware(tokens, staticVerifier{}))
	r.GET("/who", func(c *gin.Context) {
		c.String(http.StatusOK, Actor(c))
	})
	return r
}

func TestAdminMiddleware(t *testing.T) {
	tokens := auth.NewTokenManager("secret", "test", time.Hour)
	r := newRouter(tokens)

	token, _, err := tokens.Generate(auth.Principal{ID: "1", Username: "boss"})
	require.NoError(t, err)

	cases := []struct {
		name   string
		setup  func(*http.Request)
		status int
		body   string
	}{
		{"no header", func(*http.Request) {}, http.StatusUnauthorized, ""},
		{"bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }, http.StatusOK, "boss"},
		{"bad bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer junk") }, http.StatusUnauthorized, ""},
		{"basic", func(r *http.Request) { r.SetBasicAuth("boss", "pw") }, http.StatusOK, "boss"},
		{"bad basic", func(r *http.Request) { r.SetBasicAuth("boss", "nope") }, http.StatusUnauthorized, ""},
		{"unknown scheme", func(r *http.Request) { r.Header.Set("Authorization", "Digest abc") }, http.StatusUnauthorized, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/who", nil)
			tc.setup(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			if tc.body != "" {
				assert.Equal(t, tc.body, w.Body.String())
			}
		})
	}
}

func TestActorDefaultsToPublic(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, "public", Actor(c))

	_, ok := CurrentPrincipal(c)
	assert.False(t, ok)
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name    string
		allowed []string
		origin  string
		echoed  bool
	}{
		{"open", nil, "https://app.example.com", true},
		{"listed", []string{"https://app.example.com"}, "https://app.example.com", true},
		{"unlisted", []string{"https://app.example.com"}, "https://evil.example.com", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.Use(CORSMiddleware(tc.allowed))
			r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(http.MethodOptions, "/x", nil)
			req.Header.Set("Origin", tc.origin)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusNoContent, w.Code)
			if tc.echoed {
				assert.Equal(t, tc.origin, w.Header().Get("Access-Control-Allow-Origin"))
				assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition")
			} else {
				assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}
