package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ldagroup/timetracking/internal/audit"
	"github.com/ldagroup/timetracking/internal/middleware"
)

func writeAudit(
	d *audit.Dispatcher,
	c *gin.Context,
	action string,
	entity string,
	entityID string,
	meta any,
) {
	d.Dispatch(audit.Event{
		Actor:    middleware.Actor(c),
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Metadata: meta,
	})
}
