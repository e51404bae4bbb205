package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ldagroup/timetracking/internal/httperr"
	"github.com/ldagroup/timetracking/internal/models"
	"github.com/ldagroup/timetracking/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db   *gorm.DB
	zone *timezone.Zone
}

func NewAuditLogsHandler(db *gorm.DB, zone *timezone.Zone) *AuditLogsHandler {
	return &AuditLogsHandler{db: db, zone: zone}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	action := strings.TrimSpace(c.Query("action"))
	entity := strings.TrimSpace(c.Query("entity"))
	entityID := strings.TrimSpace(c.Query("entity_id"))
	fromStr := strings.TrimSpace(c.Query("from"))
	toStr := strings.TrimSpace(c.Query("to"))

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	offset := (page - 1) * limit

	q := h.db.WithContext(c.Request.Context()).Model(&models.AuditLog{})

	// --------------------------------------------------
	// Filters
	// --------------------------------------------------

	if action != "" {
		q = q.Where("action = ?", action)
	}
	if entity != "" {
		q = q.Where("entity = ?", entity)
	}
	if entityID != "" {
		q = q.Where("entity_id = ?", entityID)
	}

	// from and to are local calendar days, to inclusive
	if fromStr != "" {
		from, err := h.zone.ParseDate(fromStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Invalid from date.")
			return
		}
		q = q.Where("created_at >= ?", from.UTC())
	}
	if toStr != "" {
		to, err := h.zone.ParseDate(toStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Invalid to date.")
			return
		}
		q = q.Where("created_at < ?", to.AddDate(0, 0, 1).UTC())
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		httperr.Internal(c, "audit_count_failed", "Failed to count audit logs.")
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {

		httperr.Internal(c, "audit_list_failed", "Failed to list audit logs.")
		return
	}

	c.JSON(200, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
