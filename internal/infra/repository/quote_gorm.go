package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/ldagroup/timetracking/internal/domain/quote"
	"github.com/ldagroup/timetracking/internal/httperr"
	"github.com/ldagroup/timetracking/internal/models"
)

type QuoteGormRepository struct {
	db *gorm.DB
}

func NewQuoteGormRepository(db *gorm.DB) *QuoteGormRepository {
	return &QuoteGormRepository{db: db}
}

func (r *QuoteGormRepository) CreateQuote(ctx context.Context, q *models.Quote) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(q).Error
	if httperr.IsUniqueViolation(err) {
		return httperr.ErrConflict("quote_number_taken")
	}
	return err
}

func (r *QuoteGormRepository) GetQuote(ctx context.Context, id string) (*models.Quote, error) {
	var q models.Quote
	err := r.db.WithContext(ctx).
		Preload("Photos", func(db *gorm.DB) *gorm.DB { return db.Order("uploaded_at ASC") }).
		First(&q, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, "quote_not_found")
	}
	return &q, nil
}

func (r *QuoteGormRepository) ListQuotes(ctx context.Context, status string) ([]models.Quote, error) {
	q := r.db.WithContext(ctx).Preload("Photos")
	if status != "" {
		q = q.Where("status = ?", status)
	}

	quotes := []models.Quote{}
	err := q.Order("created_at DESC").Find(&quotes).Error
	return quotes, err
}

func (r *QuoteGormRepository) SaveQuote(ctx context.Context, q *models.Quote) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(q).Error
}

func (r *QuoteGormRepository) DeleteQuote(ctx context.Context, id string) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quote_id = ?", id).Delete(&models.QuotePhoto{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Quote{}, "id = ?", id)
		deleted = res.RowsAffected > 0
		return res.Error
	})
	return deleted, err
}

func (r *QuoteGormRepository) ConvertQuote(ctx context.Context, q *models.Quote, job *models.Job) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(job).Error; err != nil {
			return err
		}
		q.ConvertedJobID = job.ID
		return tx.Omit(clause.Associations).Save(q).Error
	})
}

// --------------------------------------------------
// Photos
// --------------------------------------------------

func (r *QuoteGormRepository) AddPhoto(ctx context.Context, p *models.QuotePhoto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *QuoteGormRepository) GetPhoto(ctx context.Context, quoteID, photoID string) (*models.QuotePhoto, error) {
	var p models.QuotePhoto
	err := r.db.WithContext(ctx).
		Where("id = ? AND quote_id = ?", photoID, quoteID).
		First(&p).Error
	if err != nil {
		return nil, notFound(err, "photo_not_found")
	}
	return &p, nil
}

func (r *QuoteGormRepository) DeletePhoto(ctx context.Context, photoID string) error {
	return r.db.WithContext(ctx).Delete(&models.QuotePhoto{}, "id = ?", photoID).Error
}

// Compile-time check
var _ domain.Repository = (*QuoteGormRepository)(nil)
