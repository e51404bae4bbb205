package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ldagroup/timetracking/internal/auth"
	"github.com/ldagroup/timetracking/internal/httperr"
)

const (
	ContextPrincipal = "principal"
)

// AdminMiddleware accepts a Bearer token issued by /api/admin/login or
// HTTP Basic admin credentials.
func AdminMiddleware(tokens *auth.TokenManager, verifier auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Header("WWW-Authenticate", `Basic realm="admin"`)
			httperr.Unauthorized(c, "missing_authorization_header", "Authentication required.")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 {
			httperr.Unauthorized(c, "invalid_authorization_header", "Invalid authorization header.")
			c.Abort()
			return
		}

		var (
			principal auth.Principal
			err       error
		)

		switch {
		case strings.EqualFold(parts[0], "Bearer"):
			principal, err = tokens.Parse(strings.TrimSpace(parts[1]))
			if err != nil {
				httperr.Unauthorized(c, "invalid_token", "Invalid or expired token.")
				c.Abort()
				return
			}

		case strings.EqualFold(parts[0], "Basic"):
			username, password, ok := c.Request.BasicAuth()
			if !ok {
				httperr.Unauthorized(c, "invalid_authorization_header", "Invalid authorization header.")
				c.Abort()
				return
			}
			principal, err = verifier.Verify(c.Request.Context(), username, password)
			if err != nil {
				c.Header("WWW-Authenticate", `Basic realm="admin"`)
				httperr.Handle(c, err)
				c.Abort()
				return
			}

		default:
			httperr.Unauthorized(c, "invalid_authorization_header", "Invalid authorization header.")
			c.Abort()
			return
		}

		c.Set(ContextPrincipal, principal)
		c.Next()
	}
}

// Actor names the caller for audit records. Unauthenticated routes get
// "public".
func Actor(c *gin.Context) string {
	if v, ok := c.Get(ContextPrincipal); ok {
		if p, ok := v.(auth.Principal); ok && p.Username != "" {
			return p.Username
		}
	}
	return "public"
}

// CurrentPrincipal returns the authenticated admin, if any.
func CurrentPrincipal(c *gin.Context) (auth.Principal, bool) {
	v, ok := c.Get(ContextPrincipal)
	if !ok {
		return auth.Principal{}, false
	}
	p, ok := v.(auth.Principal)
	return p, ok
}
