package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ldagroup/timetracking/internal/audit"
	"github.com/ldagroup/timetracking/internal/httperr"
	"github.com/ldagroup/timetracking/internal/httpresp"
	"github.com/ldagroup/timetracking/internal/models"
	"github.com/ldagroup/timetracking/internal/timezone"
)

type MaterialHandler struct {
	db    *gorm.DB
	zone  *timezone.Zone
	clock timezone.Clock
	audit *audit.Dispatcher
}

func NewMaterialHandler(db *gorm.DB, zone *timezone.Zone, clock timezone.Clock, audit *audit.Dispatcher) *MaterialHandler {
	return &MaterialHandler{db: db, zone: zone, clock: clock, audit: audit}
}

// --------- Requests ---------

type CreateMaterialRequest struct {
	JobID        string  `json:"job_id" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	Cost         float64 `json:"cost" binding:"min=0"`
	Quantity     int     `json:"quantity" binding:"omitempty,min=1"`
	Supplier     string  `json:"supplier"`
	Reference    string  `json:"reference"`
	PurchaseDate string  `json:"purchase_date"`
	Notes        string  `json:"notes"`
}

type UpdateMaterialRequest struct {
	Name         *string  `json:"name,omitempty"`
	Cost         *float64 `json:"cost,omitempty" binding:"omitempty,min=0"`
	Quantity     *int     `json:"quantity,omitempty" binding:"omitempty,min=1"`
	Supplier     *string  `json:"supplier,omitempty"`
	Reference    *string  `json:"reference,omitempty"`
	PurchaseDate *string  `json:"purchase_date,omitempty"`
	Notes        *string  `json:"notes,omitempty"`
}

// --------- Helpers ---------

func (h *MaterialHandler) purchaseDate(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return h.clock.Now().UTC(), nil
	}
	t, err := h.zone.ParseInstant(raw)
	if err != nil {
		return time.Time{}, httperr.ErrValidation("invalid_date")
	}
	return t.UTC(), nil
}

func (h *MaterialHandler) find(c *gin.Context) (*models.Material, bool) {
	var m models.Material
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ?", c.Param("id")).
		First(&m).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Handle(c, httperr.ErrNotFound("material_not_found"))
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_material", "Failed to load material.")
		return nil, false
	}
	return &m, true
}

// --------- Handlers ---------

func (h *MaterialHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).Model(&models.Material{})

	if jobID := strings.TrimSpace(c.Query("job_id")); jobID != "" {
		q = q.Where("job_id = ?", jobID)
	}
	if !boolQuery(c, "include_archived", true) {
		q = q.Where("archived = ?", false)
	}

	var materials []models.Material
	if err := q.Order("purchase_date DESC").Find(&materials).Error; err != nil {
		httperr.Internal(c, "failed_to_list_materials", "Failed to list materials.")
		return
	}

	httpresp.OK(c, materials)
}

func (h *MaterialHandler) Create(c *gin.Context) {
	var req CreateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var jobs int64
	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.Job{}).
		Where("id = ?", req.JobID).
		Count(&jobs).Error; err != nil {
		httperr.Internal(c, "failed_to_get_job", "Failed to load job.")
		return
	}
	if jobs == 0 {
		httperr.Handle(c, httperr.ErrNotFound("job_not_found"))
		return
	}

	bought, err := h.purchaseDate(req.PurchaseDate)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	m := models.Material{
		JobID:        req.JobID,
		Name:         strings.TrimSpace(req.Name),
		Cost:         req.Cost,
		Quantity:     req.Quantity,
		Supplier:     strings.TrimSpace(req.Supplier),
		Reference:    strings.TrimSpace(req.Reference),
		PurchaseDate: bought,
		Notes:        req.Notes,
	}
	if m.Quantity == 0 {
		m.Quantity = 1
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&m).Error; err != nil {
		httperr.Internal(c, "failed_to_create_material", "Failed to create material.")
		return
	}

	writeAudit(h.audit, c, "material.created", "material", m.ID, map[string]any{"job_id": m.JobID, "cost": m.Cost})
	httpresp.Created(c, m)
}

func (h *MaterialHandler) Update(c *gin.Context) {
	m, ok := h.find(c)
	if !ok {
		return
	}

	var req UpdateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil {
		m.Name = strings.TrimSpace(*req.Name)
	}
	if req.Cost != nil {
		m.Cost = *req.Cost
	}
	if req.Quantity != nil {
		m.Quantity = *req.Quantity
	}
	if req.Supplier != nil {
		m.Supplier = strings.TrimSpace(*req.Supplier)
	}
	if req.Reference != nil {
		m.Reference = strings.TrimSpace(*req.Reference)
	}
	if req.PurchaseDate != nil && strings.TrimSpace(*req.PurchaseDate) != "" {
		bought, err := h.purchaseDate(*req.PurchaseDate)
		if err != nil {
			httperr.Handle(c, err)
			return
		}
		m.PurchaseDate = bought
	}
	if req.Notes != nil {
		m.Notes = *req.Notes
	}

	if err := h.db.WithContext(c.Request.Context()).Save(m).Error; err != nil {
		httperr.Internal(c, "failed_to_update_material", "Failed to update material.")
		return
	}

	writeAudit(h.audit, c, "material.updated", "material", m.ID, nil)
	httpresp.OK(c, m)
}

func (h *MaterialHandler) Delete(c *gin.Context) {
	res := h.db.WithContext(c.Request.Context()).
		Where("id = ?", c.Param("id")).
		Delete(&models.Material{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_material", "Failed to delete material.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.Handle(c, httperr.ErrNotFound("material_not_found"))
		return
	}

	writeAudit(h.audit, c, "material.deleted", "material", c.Param("id"), nil)
	httpresp.Message(c, "Material deleted successfully")
}

func (h *MaterialHandler) Archive(c *gin.Context) {
	h.setArchived(c, true)
}

func (h *MaterialHandler) Unarchive(c *gin.Context) {
	h.setArchived(c, false)
}

func (h *MaterialHandler) setArchived(c *gin.Context, archived bool) {
	res := h.db.WithContext(c.Request.Context()).
		Model(&models.Material{}).
		Where("id = ?", c.Param("id")).
		Update("archived", archived)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_archive_material", "Failed to update material.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.Handle(c, httperr.ErrNotFound("material_not_found"))
		return
	}

	if archived {
		writeAudit(h.audit, c, "material.archived", "material", c.Param("id"), nil)
		httpresp.Message(c, "Material archived successfully")
		return
	}
	writeAudit(h.audit, c, "material.unarchived", "material", c.Param("id"), nil)
	httpresp.Message(c, "Material unarchived successfully")
}
