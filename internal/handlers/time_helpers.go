package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ldagroup/timetracking/internal/httperr"
	"github.com/ldagroup/timetracking/internal/timezone"
)

// optionalInstant parses a query parameter as an instant. Missing or blank
// values give nil.
func optionalInstant(c *gin.Context, zone *timezone.Zone, key string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	t, err := zone.ParseInstant(raw)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date")
	}
	return &t, nil
}

// instantRange reads start_date and end_date.
func instantRange(c *gin.Context, zone *timezone.Zone) (*time.Time, *time.Time, error) {
	from, err := optionalInstant(c, zone, "start_date")
	if err != nil {
		return nil, nil, err
	}
	to, err := optionalInstant(c, zone, "end_date")
	if err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

// boolQuery reads a true/false query parameter with a default.
func boolQuery(c *gin.Context, key string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(c.Query(key))) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	default:
		return def
	}
}
