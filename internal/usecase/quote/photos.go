package quote

import (
	"context"
	"log"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/ldagroup/timetracking/internal/audit"
	domain "github.com/ldagroup/timetracking/internal/domain/quote"
	"github.com/ldagroup/timetracking/internal/httperr"
	"github.com/ldagroup/timetracking/internal/models"
)

const MaxPhotoBytes = 10 << 20

// ImageNormalizer converts an uploaded image to the stored format.
type ImageNormalizer interface {
	Normalize(data []byte) (out []byte, contentType string, err error)
}

type UploadPhotoInput struct {
	QuoteID  string
	Filename string
	Data     []byte
}

type UploadPhoto struct {
	repo       domain.Repository
	store      domain.PhotoStore
	normalizer ImageNormalizer
	audit      *audit.Dispatcher
}

func NewUploadPhoto(
	repo domain.Repository,
	store domain.PhotoStore,
	normalizer ImageNormalizer,
	audit *audit.Dispatcher,
) *UploadPhoto {
	return &UploadPhoto{repo: repo, store: store, normalizer: normalizer, audit: audit}
}

func (uc *UploadPhoto) Execute(ctx context.Context, actor string, in UploadPhotoInput) (*models.QuotePhoto, error) {
	if len(in.Data) == 0 {
		return nil, httperr.ErrValidation("photo_required")
	}
	if len(in.Data) > MaxPhotoBytes {
		return nil, httperr.ErrValidation("photo_too_large")
	}

	if _, err := uc.repo.GetQuote(ctx, in.QuoteID); err != nil {
		return nil, err
	}

	data, contentType, err := uc.normalizer.Normalize(in.Data)
	if err != nil {
		return nil, httperr.ErrValidation("unsupported_image")
	}

	key := "quotes/" + in.QuoteID + "/" + uuid.New().String() + ".webp"
	url, err := uc.store.Put(ctx, key, contentType, data)
	if err != nil {
		return nil, err
	}

	photo := &models.QuotePhoto{
		QuoteID:     in.QuoteID,
		Filename:    baseName(in.Filename),
		ContentType: contentType,
		Size:        int64(len(data)),
		StorageKey:  key,
		URL:         url,
	}
	if err := uc.repo.AddPhoto(ctx, photo); err != nil {
		removePhoto(ctx, uc.store, key)
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    actor,
		Action:   "quote_photo_uploaded",
		Entity:   "quote",
		EntityID: in.QuoteID,
		Metadata: map[string]string{"photo_id": photo.ID},
	})
	return photo, nil
}

type DeletePhoto struct {
	repo  domain.Repository
	store domain.PhotoStore
	audit *audit.Dispatcher
}

func NewDeletePhoto(repo domain.Repository, store domain.PhotoStore, audit *audit.Dispatcher) *DeletePhoto {
	return &DeletePhoto{repo: repo, store: store, audit: audit}
}

func (uc *DeletePhoto) Execute(ctx context.Context, actor, quoteID, photoID string) error {
	photo, err := uc.repo.GetPhoto(ctx, quoteID, photoID)
	if err != nil {
		return err
	}
	if err := uc.repo.DeletePhoto(ctx, photo.ID); err != nil {
		return err
	}
	removePhoto(ctx, uc.store, photo.StorageKey)

	uc.audit.Dispatch(audit.Event{
		Actor:    actor,
		Action:   "quote_photo_deleted",
		Entity:   "quote",
		EntityID: quoteID,
		Metadata: map[string]string{"photo_id": photoID},
	})
	return nil
}

func removePhoto(ctx context.Context, store domain.PhotoStore, key string) {
	if key == "" {
		return
	}
	if err := store.Delete(ctx, key); err != nil {
		log.Printf("photo %s: delete failed: %v", key, err)
	}
}

func baseName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" {
		return "photo"
	}
	return name
}
