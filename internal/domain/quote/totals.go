package quote

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ldagroup/timetracking/internal/httperr"
	"github.com/ldagroup/timetracking/internal/models"
)

var (
	DefaultHourlyRate = decimal.RequireFromString("25.00")
	DefaultTaxRate    = decimal.RequireFromString("0.20")
)

const DefaultTerms = "Quote valid for 30 days. Payment terms: Net 30 days."

// NormalizeItems fills ids and line totals and validates quantities.
func NormalizeItems(items []models.QuoteItem) ([]models.QuoteItem, error) {
	out := make([]models.QuoteItem, 0, len(items))
	for _, it := range items {
		if !it.Quantity.IsPositive() {
			return nil, httperr.ErrValidation("invalid_item_quantity")
		}
		if it.UnitPrice.IsNegative() {
			return nil, httperr.ErrValidation("invalid_item_price")
		}
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
		if it.Total.IsZero() {
			it.Total = it.Quantity.Mul(it.UnitPrice)
		}
		it.Total = it.Total.Round(2)
		out = append(out, it)
	}
	return out, nil
}

func sum(items []models.QuoteItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Total)
	}
	return total
}

// CalculateTotals recomputes every derived amount on q.
func CalculateTotals(q *models.Quote) {
	if q.TaxRate.IsZero() {
		q.TaxRate = DefaultTaxRate
	}

	q.MaterialsTotal = sum(q.Materials).Round(2)

	labor := q.EstimatedHours.Mul(q.HourlyRate)
	q.LaborTotal = labor.Add(sum(q.LaborItems)).Round(2)

	q.Subtotal = q.MaterialsTotal.Add(q.LaborTotal)
	q.TaxAmount = q.Subtotal.Mul(q.TaxRate).Round(2)
	q.TotalAmount = q.Subtotal.Add(q.TaxAmount)
}
