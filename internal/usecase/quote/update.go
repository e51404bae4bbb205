package quote

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ldagroup/timetracking/internal/audit"
	domain "github.com/ldagroup/timetracking/internal/domain/quote"
	"github.com/ldagroup/timetracking/internal/httperr"
	"github.com/ldagroup/timetracking/internal/models"
)

// UpdateQuoteInput is a partial update; nil fields are left alone.
type UpdateQuoteInput struct {
	Client         *models.QuoteClient
	JobDescription *string
	EstimatedHours *decimal.Decimal
	HourlyRate     *decimal.Decimal
	Materials      []models.QuoteItem
	LaborItems     []models.QuoteItem
	ValidUntil     *time.Time
	Notes          *string
	Terms          *string
}

type UpdateQuote struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateQuote(repo domain.Repository, audit *audit.Dispatcher) *UpdateQuote {
	return &UpdateQuote{repo: repo, audit: audit}
}

func (uc *UpdateQuote) Execute(ctx context.Context, actor, id string, in UpdateQuoteInput) (*models.Quote, error) {
	q, err := uc.repo.GetQuote(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.CanEdit(q); err != nil {
		return nil, err
	}

	if in.Client != nil {
		q.Client = *in.Client
	}
	if in.JobDescription != nil {
		q.JobDescription = *in.JobDescription
	}
	if in.EstimatedHours != nil {
		if !in.EstimatedHours.IsPositive() {
			return nil, httperr.ErrValidation("invalid_estimated_hours")
		}
		q.EstimatedHours = *in.EstimatedHours
	}
	if in.HourlyRate != nil {
		if in.HourlyRate.IsNegative() {
			return nil, httperr.ErrValidation("invalid_hourly_rate")
		}
		q.HourlyRate = *in.HourlyRate
	}
	if in.Materials != nil {
		items, err := domain.NormalizeItems(in.Materials)
		if err != nil {
			return nil, err
		}
		q.Materials = items
	}
	if in.LaborItems != nil {
		items, err := domain.NormalizeItems(in.LaborItems)
		if err != nil {
			return nil, err
		}
		q.LaborItems = items
	}
	if in.ValidUntil != nil {
		q.ValidUntil = in.ValidUntil.UTC()
	}
	if in.Notes != nil {
		q.Notes = *in.Notes
	}
	if in.Terms != nil {
		q.TermsConditions = *in.Terms
	}

	domain.CalculateTotals(q)

	if err := uc.repo.SaveQuote(ctx, q); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    actor,
		Action:   "quote_updated",
		Entity:   "quote",
		EntityID: q.ID,
	})

	return q, nil
}
