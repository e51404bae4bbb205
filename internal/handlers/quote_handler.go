package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/ldagroup/timetracking/internal/httperr"
	"github.com/ldagroup/timetracking/internal/httpresp"
	"github.com/ldagroup/timetracking/internal/middleware"
	"github.com/ldagroup/timetracking/internal/models"
	"github.com/ldagroup/timetracking/internal/timezone"
	ucQuote "github.com/ldagroup/timetracking/internal/usecase/quote"
)

// ======================================================
// HANDLER
// ======================================================

type QuoteHandler struct {
	create  *ucQuote.CreateQuote
	update  *ucQuote.UpdateQuote
	list    *ucQuote.ListQuotes
	get     *ucQuote.GetQuote
	remove  *ucQuote.DeleteQuote
	send    *ucQuote.SendQuote
	respond *ucQuote.RespondQuote
	convert *ucQuote.ConvertQuote

	uploadPhoto *ucQuote.UploadPhoto
	deletePhoto *ucQuote.DeletePhoto

	zone *timezone.Zone
}

// QuoteUseCases groups what the quote routes need.
type QuoteUseCases struct {
	Create  *ucQuote.CreateQuote
	Update  *ucQuote.UpdateQuote
	List    *ucQuote.ListQuotes
	Get     *ucQuote.GetQuote
	Delete  *ucQuote.DeleteQuote
	Send    *ucQuote.SendQuote
	Respond *ucQuote.RespondQuote
	Convert *ucQuote.ConvertQuote

	UploadPhoto *ucQuote.UploadPhoto
	DeletePhoto *ucQuote.DeletePhoto
}

func NewQuoteHandler(uc QuoteUseCases, zone *timezone.Zone) *QuoteHandler {
	return &QuoteHandler{
		create:      uc.Create,
		update:      uc.Update,
		list:        uc.List,
		get:         uc.Get,
		remove:      uc.Delete,
		send:        uc.Send,
		respond:     uc.Respond,
		convert:     uc.Convert,
		uploadPhoto: uc.UploadPhoto,
		deletePhoto: uc.DeletePhoto,
		zone:        zone,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateQuoteRequest struct {
	SurveyorID   string `json:"surveyor_id"`
	SurveyorName string `json:"surveyor_name"`

	Client models.QuoteClient `json:"client"`

	JobDescription string           `json:"job_description"`
	EstimatedHours decimal.Decimal  `json:"estimated_hours"`
	HourlyRate     *decimal.Decimal `json:"hourly_rate"`

	Materials  []models.QuoteItem `json:"materials"`
	LaborItems []models.QuoteItem `json:"labor_items"`

	ValidUntil      string `json:"valid_until"`
	Notes           string `json:"notes"`
	TermsConditions string `json:"terms_conditions"`
}

type UpdateQuoteRequest struct {
	Client         *models.QuoteClient `json:"client"`
	JobDescription *string             `json:"job_description"`
	EstimatedHours *decimal.Decimal    `json:"estimated_hours"`
	HourlyRate     *decimal.Decimal    `json:"hourly_rate"`

	Materials  []models.QuoteItem `json:"materials"`
	LaborItems []models.QuoteItem `json:"labor_items"`

	ValidUntil      *string `json:"valid_until"`
	Notes           *string `json:"notes"`
	TermsConditions *string `json:"terms_conditions"`
}

type RespondQuoteRequest struct {
	Response string `json:"response" binding:"required"`
	Comments string `json:"comments"`
}

// ======================================================
// HELPERS
// ======================================================

func (h *QuoteHandler) validUntil(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if d, err := h.zone.ParseDate(raw); err == nil {
		return &d, nil
	}
	t, err := h.zone.ParseInstant(raw)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date")
	}
	return &t, nil
}

// ======================================================
// CRUD
// ======================================================

func (h *QuoteHandler) Create(c *gin.Context) {
	var req CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	validUntil, err := h.validUntil(req.ValidUntil)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	in := ucQuote.CreateQuoteInput{
		SurveyorID:      req.SurveyorID,
		SurveyorName:    req.SurveyorName,
		Client:          req.Client,
		JobDescription:  req.JobDescription,
		EstimatedHours:  req.EstimatedHours,
		HourlyRate:      req.HourlyRate,
		Materials:       req.Materials,
		LaborItems:      req.LaborItems,
		ValidUntil:      validUntil,
		Notes:           req.Notes,
		TermsConditions: req.TermsConditions,
	}
	if p, ok := middleware.CurrentPrincipal(c); ok {
		if in.SurveyorID == "" {
			in.SurveyorID = p.ID
		}
		if in.SurveyorName == "" {
			in.SurveyorName = p.Name
		}
	}

	q, err := h.create.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.Created(c, q)
}

func (h *QuoteHandler) List(c *gin.Context) {
	quotes, err := h.list.Execute(c.Request.Context(), strings.TrimSpace(c.Query("status")))
	if err != nil {
		httperr.Handle(c, err)
		return
	}
	httpresp.List(c, quotes)
}

func (h *QuoteHandler) Get(c *gin.Context) {
	q, err := h.get.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Handle(c, err)
		return
	}
	httpresp.OK(c, q)
}

func (h *QuoteHandler) Update(c *gin.Context) {
	var req UpdateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	in := ucQuote.UpdateQuoteInput{
		Client:         req.Client,
		JobDescription: req.JobDescription,
		EstimatedHours: req.EstimatedHours,
		HourlyRate:     req.HourlyRate,
		Materials:      req.Materials,
		LaborItems:     req.LaborItems,
		Notes:          req.Notes,
		Terms:          req.TermsConditions,
	}
	if req.ValidUntil != nil {
		validUntil, err := h.validUntil(*req.ValidUntil)
		if err != nil {
			httperr.Handle(c, err)
			return
		}
		in.ValidUntil = validUntil
	}

	q, err := h.update.Execute(c.Request.Context(), middleware.Actor(c), c.Param("id"), in)
	if err != nil {
		httperr.Handle(c, err)
		return
	}
	httpresp.OK(c, q)
}

func (h *QuoteHandler) Delete(c *gin.Context) {
	if err := h.remove.Execute(c.Request.Context(), middleware.Actor(c), c.Param("id")); err != nil {
		httperr.Handle(c, err)
		return
	}
	httpresp.Message(c, "Quote deleted successfully")
}

// ======================================================
// LIFECYCLE
// ======================================================

func (h *QuoteHandler) Send(c *gin.Context) {
	q, err := h.send.Execute(c.Request.Context(), middleware.Actor(c), c.Param("id"))
	if err != nil {
		httperr.Handle(c, err)
		return
	}
	httpresp.OK(c, q)
}

// Respond is called from the link sent to the client; it is not behind
// admin auth.
func (h *QuoteHandler) Respond(c *gin.Context) {
	var req RespondQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	q, err := h.respond.Execute(c.Request.Context(), c.Param("id"), strings.ToLower(strings.TrimSpace(req.Response)), req.Comments)
	if err != nil {
		httperr.Handle(c, err)
		return
	}
	httpresp.OK(c, q)
}

func (h *QuoteHandler) Convert(c *gin.Context) {
	job, err := h.convert.Execute(c.Request.Context(), middleware.Actor(c), c.Param("id"))
	if err != nil {
		httperr.Handle(c, err)
		return
	}
	httpresp.Created(c, gin.H{
		"message": "Quote converted to job successfully",
		"job":     job,
	})
}

// ======================================================
// PHOTOS
// ======================================================

func (h *QuoteHandler) UploadPhoto(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, ucQuote.MaxPhotoBytes+1<<20)

	fh, err := c.FormFile("photo")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httperr.Handle(c, httperr.ErrValidation("photo_too_large"))
			return
		}
		httperr.Handle(c, httperr.ErrValidation("photo_required"))
		return
	}
	if fh.Size > ucQuote.MaxPhotoBytes {
		httperr.Handle(c, httperr.ErrValidation("photo_too_large"))
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_photo", "Failed to read upload.")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		httperr.Internal(c, "failed_to_read_photo", "Failed to read upload.")
		return
	}

	photo, err := h.uploadPhoto.Execute(c.Request.Context(), middleware.Actor(c), ucQuote.UploadPhotoInput{
		QuoteID:  c.Param("id"),
		Filename: fh.Filename,
		Data:     data,
	})
	if err != nil {
		httperr.Handle(c, err)
		return
	}
	httpresp.Created(c, photo)
}

func (h *QuoteHandler) DeletePhoto(c *gin.Context) {
	if err := h.deletePhoto.Execute(c.Request.Context(), middleware.Actor(c), c.Param("id"), c.Param("photoId")); err != nil {
		httperr.Handle(c, err)
		return
	}
	httpresp.Message(c, "Photo deleted successfully")
}
