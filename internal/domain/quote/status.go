package quote

import (
	"time"

	"github.com/ldagroup/timetracking/internal/httperr"
	"github.com/ldagroup/timetracking/internal/models"
	"github.com/ldagroup/timetracking/internal/timezone"
)

// ===============================
// Validations
// ===============================

func CanEdit(q *models.Quote) error {
	if q.Status != models.QuoteStatusDraft && q.Status != models.QuoteStatusSent {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// ===============================
// Domain Actions
// ===============================

func Send(q *models.Quote, now time.Time) error {
	if q.Status != models.QuoteStatusDraft {
		return httperr.ErrBusiness("invalid_state")
	}
	q.Status = models.QuoteStatusSent
	q.SentAt = &now
	return nil
}

// Respond records the client's answer. A quote past its validity date is
// marked expired instead. The validity date runs to the end of that day in zone.
func Respond(q *models.Quote, response, comments string, now time.Time, zone *timezone.Zone) error {
	if response != models.QuoteStatusAccepted && response != models.QuoteStatusDeclined {
		return httperr.ErrValidation("invalid_response")
	}
	if q.Status != models.QuoteStatusSent {
		return httperr.ErrBusiness("invalid_state")
	}
	if !q.ValidUntil.IsZero() && !now.Before(ExpiresAt(q.ValidUntil, zone)) {
		q.Status = models.QuoteStatusExpired
		return httperr.ErrBusiness("quote_expired")
	}

	q.Status = response
	q.ClientResponse = response
	q.ClientComments = comments
	q.RespondedAt = &now
	return nil
}

func Convert(q *models.Quote, jobID string, now time.Time) error {
	if q.Status != models.QuoteStatusAccepted {
		return httperr.ErrBusiness("invalid_state")
	}
	q.Status = models.QuoteStatusConverted
	q.ConvertedJobID = jobID
	q.ConvertedAt = &now
	return nil
}

// JobFromQuote is the job created when an accepted quote is converted.
func JobFromQuote(q *models.Quote) *models.Job {
	name := q.Client.Name
	if q.Client.Company != "" {
		name = q.Client.Company
	}

	quoted, _ := q.TotalAmount.Float64()
	return &models.Job{
		Name:        q.QuoteNumber + " - " + name,
		Description: q.JobDescription,
		Location:    q.Client.Address,
		Client:      name,
		QuotedCost:  quoted,
		Status:      models.JobStatusActive,
	}
}

// ExpiresAt is the first instant a quote valid until validUntil can no
// longer be answered: local midnight after that day.
func ExpiresAt(validUntil time.Time, zone *timezone.Zone) time.Time {
	return zone.StartOfDay(validUntil).AddDate(0, 0, 1)
}
