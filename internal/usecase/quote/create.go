package quote

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ldagroup/timetracking/internal/audit"
	domain "github.com/ldagroup/timetracking/internal/domain/quote"
	"github.com/ldagroup/timetracking/internal/httperr"
	"github.com/ldagroup/timetracking/internal/models"
	"github.com/ldagroup/timetracking/internal/timezone"
)

const validityDays = 30

// ======================================================
// INPUT
// ======================================================

type CreateQuoteInput struct {
	SurveyorID   string
	SurveyorName string
	Client       models.QuoteClient

	JobDescription string
	EstimatedHours decimal.Decimal
	HourlyRate     *decimal.Decimal

	Materials  []models.QuoteItem
	LaborItems []models.QuoteItem

	ValidUntil      *time.Time
	Notes           string
	TermsConditions string
}

// ======================================================
// USE CASE
// ======================================================

type CreateQuote struct {
	repo  domain.Repository
	clock timezone.Clock
	audit *audit.Dispatcher
}

func NewCreateQuote(repo domain.Repository, clock timezone.Clock, audit *audit.Dispatcher) *CreateQuote {
	return &CreateQuote{repo: repo, clock: clock, audit: audit}
}

func (uc *CreateQuote) Execute(ctx context.Context, in CreateQuoteInput) (*models.Quote, error) {
	if strings.TrimSpace(in.Client.Name) == "" {
		return nil, httperr.ErrValidation("client_name_required")
	}
	if !in.EstimatedHours.IsPositive() {
		return nil, httperr.ErrValidation("invalid_estimated_hours")
	}

	materials, err := domain.NormalizeItems(in.Materials)
	if err != nil {
		return nil, err
	}
	labor, err := domain.NormalizeItems(in.LaborItems)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()

	rate := domain.DefaultHourlyRate
	if in.HourlyRate != nil {
		if in.HourlyRate.IsNegative() {
			return nil, httperr.ErrValidation("invalid_hourly_rate")
		}
		rate = *in.HourlyRate
	}

	validUntil := now.AddDate(0, 0, validityDays)
	if in.ValidUntil != nil {
		validUntil = in.ValidUntil.UTC()
	}

	terms := in.TermsConditions
	if terms == "" {
		terms = domain.DefaultTerms
	}

	q := &models.Quote{
		QuoteNumber:     domain.NewNumber(now),
		SurveyorID:      in.SurveyorID,
		SurveyorName:    in.SurveyorName,
		Client:          in.Client,
		JobDescription:  in.JobDescription,
		EstimatedHours:  in.EstimatedHours,
		HourlyRate:      rate,
		Materials:       materials,
		LaborItems:      labor,
		Status:          models.QuoteStatusDraft,
		ValidUntil:      validUntil,
		Notes:           in.Notes,
		TermsConditions: terms,
	}
	domain.CalculateTotals(q)

	if err := uc.repo.CreateQuote(ctx, q); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    in.SurveyorID,
		Action:   "quote_created",
		Entity:   "quote",
		EntityID: q.ID,
	})

	return q, nil
}
