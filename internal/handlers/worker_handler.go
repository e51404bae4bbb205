package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ldagroup/timetracking/internal/audit"
	"github.com/ldagroup/timetracking/internal/auth"
	"github.com/ldagroup/timetracking/internal/httperr"
	"github.com/ldagroup/timetracking/internal/httpresp"
	"github.com/ldagroup/timetracking/internal/models"
	"github.com/ldagroup/timetracking/internal/validators"
)

type WorkerHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher

	// checkDomain, when set, is run on new and changed email addresses.
	checkDomain func(string) bool
}

func NewWorkerHandler(db *gorm.DB, audit *audit.Dispatcher, checkDomain func(string) bool) *WorkerHandler {
	return &WorkerHandler{db: db, audit: audit, checkDomain: checkDomain}
}

// --------- Requests ---------

type CreateWorkerRequest struct {
	Name       string   `json:"name" binding:"required"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Role       string   `json:"role" binding:"omitempty,oneof=worker admin supervisor"`
	HourlyRate *float64 `json:"hourly_rate" binding:"omitempty,min=0"`
	Password   string   `json:"password"`
}

type UpdateWorkerRequest struct {
	Name       *string  `json:"name,omitempty"`
	Email      *string  `json:"email,omitempty"`
	Phone      *string  `json:"phone,omitempty"`
	Role       *string  `json:"role,omitempty" binding:"omitempty,oneof=worker admin supervisor"`
	HourlyRate *float64 `json:"hourly_rate,omitempty" binding:"omitempty,min=0"`
	Password   *string  `json:"password,omitempty"`
	Active     *bool    `json:"active,omitempty"`
	Archived   *bool    `json:"archived,omitempty"`
}

// --------- Helpers ---------

func (h *WorkerHandler) normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", nil
	}
	if !validators.IsEmailFormatValid(email) {
		return "", httperr.ErrValidation("invalid_email")
	}
	if h.checkDomain != nil && !h.checkDomain(email) {
		return "", httperr.ErrValidation("invalid_email")
	}
	return email, nil
}

func (h *WorkerHandler) find(c *gin.Context) (*models.Worker, bool) {
	var w models.Worker
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ?", c.Param("id")).
		First(&w).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Handle(c, httperr.ErrNotFound("worker_not_found"))
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_worker", "Failed to load worker.")
		return nil, false
	}
	return &w, true
}

// --------- Handlers ---------

func (h *WorkerHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).Model(&models.Worker{})

	if boolQuery(c, "active_only", true) {
		q = q.Where("active = ?", true)
	}
	if !boolQuery(c, "include_archived", false) {
		q = q.Where("archived = ?", false)
	}

	var workers []models.Worker
	if err := q.Order("name ASC").Find(&workers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_workers", "Failed to list workers.")
		return
	}

	httpresp.OK(c, workers)
}

func (h *WorkerHandler) Get(c *gin.Context) {
	w, ok := h.find(c)
	if !ok {
		return
	}
	httpresp.OK(c, w)
}

func (h *WorkerHandler) Create(c *gin.Context) {
	var req CreateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email, err := h.normalizeEmail(req.Email)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	w := models.Worker{
		Name:       strings.TrimSpace(req.Name),
		Email:      email,
		Phone:      strings.TrimSpace(req.Phone),
		Role:       req.Role,
		HourlyRate: models.DefaultHourlyRate,
		Active:     true,
	}
	if w.Role == "" {
		w.Role = models.RoleWorker
	}
	if req.HourlyRate != nil {
		w.HourlyRate = *req.HourlyRate
	}
	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			httperr.Internal(c, "failed_to_hash_password", "Failed to store password.")
			return
		}
		w.PasswordHash = hash
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&w).Error; err != nil {
		httperr.Internal(c, "failed_to_create_worker", "Failed to create worker.")
		return
	}

	writeAudit(h.audit, c, "worker.created", "worker", w.ID, map[string]any{"name": w.Name, "role": w.Role})
	httpresp.Created(c, w)
}

func (h *WorkerHandler) Update(c *gin.Context) {
	w, ok := h.find(c)
	if !ok {
		return
	}

	var req UpdateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil {
		w.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		email, err := h.normalizeEmail(*req.Email)
		if err != nil {
			httperr.Handle(c, err)
			return
		}
		w.Email = email
	}
	if req.Phone != nil {
		w.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Role != nil {
		w.Role = *req.Role
	}
	if req.HourlyRate != nil {
		w.HourlyRate = *req.HourlyRate
	}
	if req.Password != nil {
		if *req.Password == "" {
			w.PasswordHash = ""
		} else {
			hash, err := auth.HashPassword(*req.Password)
			if err != nil {
				httperr.Internal(c, "failed_to_hash_password", "Failed to store password.")
				return
			}
			w.PasswordHash = hash
		}
	}
	if req.Active != nil {
		w.Active = *req.Active
	}
	if req.Archived != nil {
		w.Archived = *req.Archived
	}

	if err := h.db.WithContext(c.Request.Context()).Save(w).Error; err != nil {
		httperr.Internal(c, "failed_to_update_worker", "Failed to update worker.")
		return
	}

	writeAudit(h.audit, c, "worker.updated", "worker", w.ID, nil)
	httpresp.OK(c, w)
}

func (h *WorkerHandler) Delete(c *gin.Context) {
	res := h.db.WithContext(c.Request.Context()).
		Where("id = ?", c.Param("id")).
		Delete(&models.Worker{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_worker", "Failed to delete worker.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.Handle(c, httperr.ErrNotFound("worker_not_found"))
		return
	}

	writeAudit(h.audit, c, "worker.deleted", "worker", c.Param("id"), nil)
	httpresp.Message(c, "Worker deleted successfully")
}

func (h *WorkerHandler) Archive(c *gin.Context) {
	res := h.db.WithContext(c.Request.Context()).
		Model(&models.Worker{}).
		Where("id = ?", c.Param("id")).
		Update("archived", true)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_archive_worker", "Failed to archive worker.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.Handle(c, httperr.ErrNotFound("worker_not_found"))
		return
	}

	writeAudit(h.audit, c, "worker.archived", "worker", c.Param("id"), nil)
	httpresp.Message(c, "Worker archived successfully")
}
