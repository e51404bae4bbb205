package quote

import (
	"context"

	"github.com/ldagroup/timetracking/internal/audit"
	domain "github.com/ldagroup/timetracking/internal/domain/quote"
	"github.com/ldagroup/timetracking/internal/httperr"
	"github.com/ldagroup/timetracking/internal/models"
)

var statuses = map[string]bool{
	models.QuoteStatusDraft:     true,
	models.QuoteStatusSent:      true,
	models.QuoteStatusAccepted:  true,
	models.QuoteStatusDeclined:  true,
	models.QuoteStatusExpired:   true,
	models.QuoteStatusConverted: true,
}

type ListQuotes struct {
	repo domain.Repository
}

func NewListQuotes(repo domain.Repository) *ListQuotes {
	return &ListQuotes{repo: repo}
}

func (uc *ListQuotes) Execute(ctx context.Context, status string) ([]models.Quote, error) {
	if status != "" && !statuses[status] {
		return nil, httperr.ErrValidation("invalid_status")
	}
	return uc.repo.ListQuotes(ctx, status)
}

type GetQuote struct {
	repo domain.Repository
}

func NewGetQuote(repo domain.Repository) *GetQuote {
	return &GetQuote{repo: repo}
}

func (uc *GetQuote) Execute(ctx context.Context, id string) (*models.Quote, error) {
	return uc.repo.GetQuote(ctx, id)
}

// DeleteQuote removes the quote and its stored photos. Photo removal
// failures are not fatal.
type DeleteQuote struct {
	repo   domain.Repository
	photos domain.PhotoStore
	audit  *audit.Dispatcher
}

func NewDeleteQuote(repo domain.Repository, photos domain.PhotoStore, audit *audit.Dispatcher) *DeleteQuote {
	return &DeleteQuote{repo: repo, photos: photos, audit: audit}
}

func (uc *DeleteQuote) Execute(ctx context.Context, actor, id string) error {
	q, err := uc.repo.GetQuote(ctx, id)
	if err != nil {
		return err
	}

	ok, err := uc.repo.DeleteQuote(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return httperr.ErrNotFound("quote_not_found")
	}

	for _, p := range q.Photos {
		removePhoto(ctx, uc.photos, p.StorageKey)
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    actor,
		Action:   "quote_deleted",
		Entity:   "quote",
		EntityID: id,
	})
	return nil
}
