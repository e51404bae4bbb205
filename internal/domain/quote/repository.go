package quote

import (
	"context"

	"github.com/ldagroup/timetracking/internal/models"
)

type Repository interface {
	CreateQuote(ctx context.Context, q *models.Quote) error
	GetQuote(ctx context.Context, id string) (*models.Quote, error)
	ListQuotes(ctx context.Context, status string) ([]models.Quote, error)
	SaveQuote(ctx context.Context, q *models.Quote) error
	DeleteQuote(ctx context.Context, id string) (bool, error)

	// ConvertQuote stores the new job and the converted quote together.
	ConvertQuote(ctx context.Context, q *models.Quote, job *models.Job) error

	AddPhoto(ctx context.Context, p *models.QuotePhoto) error
	GetPhoto(ctx context.Context, quoteID, photoID string) (*models.QuotePhoto, error)
	DeletePhoto(ctx context.Context, photoID string) error
}

// Notifier tells the company inbox about client responses.
type Notifier interface {
	QuoteResponded(ctx context.Context, q *models.Quote) error
}

// PhotoStore keeps quote photos. Put returns the public URL of the object.
type PhotoStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, key string) error
}
