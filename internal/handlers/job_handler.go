package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ldagroup/timetracking/internal/audit"
	"github.com/ldagroup/timetracking/internal/httperr"
	"github.com/ldagroup/timetracking/internal/httpresp"
	"github.com/ldagroup/timetracking/internal/models"
)

type JobHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewJobHandler(db *gorm.DB, audit *audit.Dispatcher) *JobHandler {
	return &JobHandler{db: db, audit: audit}
}

// --------- Requests ---------

type CreateJobRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	Client      string  `json:"client"`
	QuotedCost  float64 `json:"quoted_cost" binding:"min=0"`
}

type UpdateJobRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Location    *string  `json:"location,omitempty"`
	Client      *string  `json:"client,omitempty"`
	QuotedCost  *float64 `json:"quoted_cost,omitempty" binding:"omitempty,min=0"`
	Status      *string  `json:"status,omitempty" binding:"omitempty,oneof=active completed cancelled"`
	Archived    *bool    `json:"archived,omitempty"`
}

// --------- Handlers ---------

func (h *JobHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).Model(&models.Job{})

	switch {
	case boolQuery(c, "active_only", false):
		q = q.Where("status <> ? AND archived = ?", models.JobStatusCancelled, false)
	case !boolQuery(c, "include_archived", false):
		q = q.Where("archived = ?", false)
	}

	var jobs []models.Job
	if err := q.Order("created_at DESC").Find(&jobs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_jobs", "Failed to list jobs.")
		return
	}

	httpresp.OK(c, jobs)
}

func (h *JobHandler) find(c *gin.Context) (*models.Job, bool) {
	var job models.Job
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ?", c.Param("id")).
		First(&job).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Handle(c, httperr.ErrNotFound("job_not_found"))
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_job", "Failed to load job.")
		return nil, false
	}
	return &job, true
}

func (h *JobHandler) Get(c *gin.Context) {
	job, ok := h.find(c)
	if !ok {
		return
	}
	httpresp.OK(c, job)
}

func (h *JobHandler) Create(c *gin.Context) {
	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	job := models.Job{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Location:    req.Location,
		Client:      req.Client,
		QuotedCost:  req.QuotedCost,
		Status:      models.JobStatusActive,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&job).Error; err != nil {
		httperr.Internal(c, "failed_to_create_job", "Failed to create job.")
		return
	}

	writeAudit(h.audit, c, "job.created", "job", job.ID, map[string]any{"name": job.Name})
	httpresp.Created(c, job)
}

func (h *JobHandler) Update(c *gin.Context) {
	job, ok := h.find(c)
	if !ok {
		return
	}

	var req UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil {
		job.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.Location != nil {
		job.Location = *req.Location
	}
	if req.Client != nil {
		job.Client = *req.Client
	}
	if req.QuotedCost != nil {
		job.QuotedCost = *req.QuotedCost
	}
	if req.Status != nil {
		job.Status = *req.Status
	}
	if req.Archived != nil {
		job.Archived = *req.Archived
	}

	if err := h.db.WithContext(c.Request.Context()).Save(job).Error; err != nil {
		httperr.Internal(c, "failed_to_update_job", "Failed to update job.")
		return
	}

	writeAudit(h.audit, c, "job.updated", "job", job.ID, nil)
	httpresp.OK(c, job)
}

func (h *JobHandler) Delete(c *gin.Context) {
	res := h.db.WithContext(c.Request.Context()).
		Where("id = ?", c.Param("id")).
		Delete(&models.Job{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_job", "Failed to delete job.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.Handle(c, httperr.ErrNotFound("job_not_found"))
		return
	}

	writeAudit(h.audit, c, "job.deleted", "job", c.Param("id"), nil)
	httpresp.Message(c, "Job deleted successfully")
}

func (h *JobHandler) Archive(c *gin.Context) {
	h.setArchived(c, true)
}

func (h *JobHandler) Unarchive(c *gin.Context) {
	h.setArchived(c, false)
}

func (h *JobHandler) setArchived(c *gin.Context, archived bool) {
	res := h.db.WithContext(c.Request.Context()).
		Model(&models.Job{}).
		Where("id = ?", c.Param("id")).
		Update("archived", archived)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_archive_job", "Failed to update job.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.Handle(c, httperr.ErrNotFound("job_not_found"))
		return
	}

	if archived {
		writeAudit(h.audit, c, "job.archived", "job", c.Param("id"), nil)
		httpresp.Message(c, "Job archived successfully")
		return
	}
	writeAudit(h.audit, c, "job.unarchived", "job", c.Param("id"), nil)
	httpresp.Message(c, "Job unarchived successfully")
}
