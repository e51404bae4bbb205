package quote

import (
	"context"
	"log"

	"github.com/ldagroup/timetracking/internal/audit"
	domain "github.com/ldagroup/timetracking/internal/domain/quote"
	"github.com/ldagroup/timetracking/internal/models"
	"github.com/ldagroup/timetracking/internal/timezone"
)

// ======================================================
// SEND
// ======================================================

type SendQuote struct {
	repo  domain.Repository
	clock timezone.Clock
	audit *audit.Dispatcher
}

func NewSendQuote(repo domain.Repository, clock timezone.Clock, audit *audit.Dispatcher) *SendQuote {
	return &SendQuote{repo: repo, clock: clock, audit: audit}
}

func (uc *SendQuote) Execute(ctx context.Context, actor, id string) (*models.Quote, error) {
	q, err := uc.repo.GetQuote(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.Send(q, uc.clock.Now()); err != nil {
		return nil, err
	}
	if err := uc.repo.SaveQuote(ctx, q); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{Actor: actor, Action: "quote_sent", Entity: "quote", EntityID: q.ID})
	return q, nil
}

// ======================================================
// RESPOND
// ======================================================

type RespondQuote struct {
	repo     domain.Repository
	notifier domain.Notifier
	clock    timezone.Clock
	zone     *timezone.Zone
	audit    *audit.Dispatcher
}

func NewRespondQuote(
	repo domain.Repository,
	notifier domain.Notifier,
	clock timezone.Clock,
	zone *timezone.Zone,
	audit *audit.Dispatcher,
) *RespondQuote {
	return &RespondQuote{repo: repo, notifier: notifier, clock: clock, zone: zone, audit: audit}
}

// Execute records the client's answer. A quote found expired is saved in
// that state before the error is returned.
func (uc *RespondQuote) Execute(ctx context.Context, id, response, comments string) (*models.Quote, error) {
	q, err := uc.repo.GetQuote(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := domain.Respond(q, response, comments, uc.clock.Now(), uc.zone); err != nil {
		if q.Status == models.QuoteStatusExpired {
			if saveErr := uc.repo.SaveQuote(ctx, q); saveErr != nil {
				log.Printf("quote %s: failed to mark expired: %v", q.ID, saveErr)
			}
		}
		return nil, err
	}

	if err := uc.repo.SaveQuote(ctx, q); err != nil {
		return nil, err
	}

	if err := uc.notifier.QuoteResponded(ctx, q); err != nil {
		log.Printf("quote %s: response notification failed: %v", q.QuoteNumber, err)
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    q.Client.Email,
		Action:   "quote_" + response,
		Entity:   "quote",
		EntityID: q.ID,
	})
	return q, nil
}

// ======================================================
// CONVERT
// ======================================================

type ConvertQuote struct {
	repo  domain.Repository
	clock timezone.Clock
	audit *audit.Dispatcher
}

func NewConvertQuote(repo domain.Repository, clock timezone.Clock, audit *audit.Dispatcher) *ConvertQuote {
	return &ConvertQuote{repo: repo, clock: clock, audit: audit}
}

func (uc *ConvertQuote) Execute(ctx context.Context, actor, id string) (*models.Job, error) {
	q, err := uc.repo.GetQuote(ctx, id)
	if err != nil {
		return nil, err
	}

	job := domain.JobFromQuote(q)
	if err := domain.Convert(q, "", uc.clock.Now()); err != nil {
		return nil, err
	}

	// The store assigns the job id and links it to the quote in one
	// transaction.
	if err := uc.repo.ConvertQuote(ctx, q, job); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    actor,
		Action:   "quote_converted",
		Entity:   "quote",
		EntityID: q.ID,
		Metadata: map[string]string{"job_id": job.ID},
	})
	return job, nil
}
