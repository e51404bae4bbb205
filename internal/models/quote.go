package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	QuoteStatusDraft     = "draft"
	QuoteStatusSent      = "sent"
	QuoteStatusAccepted  = "accepted"
	QuoteStatusDeclined  = "declined"
	QuoteStatusExpired   = "expired"
	QuoteStatusConverted = "converted"
)

type QuoteItem struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

type QuoteClient struct {
	Name    string `gorm:"size:150" json:"name"`
	Email   string `gorm:"size:150" json:"email"`
	Phone   string `gorm:"size:30" json:"phone"`
	Address string `gorm:"size:255" json:"address"`
	Company string `gorm:"size:150" json:"company,omitempty"`
}

type Quote struct {
	ID           string `gorm:"primaryKey;size:36" json:"id"`
	QuoteNumber  string `gorm:"size:40;uniqueIndex" json:"quote_number"`
	SurveyorID   string `gorm:"size:36" json:"surveyor_id"`
	SurveyorName string `gorm:"size:100" json:"surveyor_name"`

	Client QuoteClient `gorm:"embedded;embeddedPrefix:client_" json:"client"`

	JobDescription string          `gorm:"type:text" json:"job_description"`
	EstimatedHours decimal.Decimal `gorm:"type:numeric(10,2)" json:"estimated_hours"`
	HourlyRate     decimal.Decimal `gorm:"type:numeric(10,2)" json:"hourly_rate"`

	Materials  datatypes.JSONSlice[QuoteItem] `json:"materials"`
	LaborItems datatypes.JSONSlice[QuoteItem] `json:"labor_items"`

	Photos []QuotePhoto `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE" json:"photos"`

	Status      string     `gorm:"size:20;default:'draft';index" json:"status"`
	SentAt      *time.Time `json:"sent_at"`
	RespondedAt *time.Time `json:"responded_at"`
	ValidUntil  time.Time  `json:"valid_until"`

	ClientResponse string `gorm:"size:20" json:"client_response,omitempty"`
	ClientComments string `gorm:"type:text" json:"client_comments,omitempty"`

	MaterialsTotal decimal.Decimal `gorm:"type:numeric(12,2)" json:"materials_total"`
	LaborTotal     decimal.Decimal `gorm:"type:numeric(12,2)" json:"labor_total"`
	Subtotal       decimal.Decimal `gorm:"type:numeric(12,2)" json:"subtotal"`
	TaxRate        decimal.Decimal `gorm:"type:numeric(5,4)" json:"tax_rate"`
	TaxAmount      decimal.Decimal `gorm:"type:numeric(12,2)" json:"tax_amount"`
	TotalAmount    decimal.Decimal `gorm:"type:numeric(12,2)" json:"total_amount"`

	ConvertedJobID string     `gorm:"size:36" json:"converted_job_id,omitempty"`
	ConvertedAt    *time.Time `json:"converted_at"`

	Notes           string `gorm:"type:text" json:"notes,omitempty"`
	TermsConditions string `gorm:"type:text" json:"terms_conditions"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type QuotePhoto struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	QuoteID     string `gorm:"size:36;index;not null" json:"quote_id"`
	Filename    string `gorm:"size:255" json:"filename"`
	ContentType string `gorm:"size:100" json:"content_type"`
	Size        int64  `json:"size"`
	StorageKey  string `gorm:"size:255" json:"storage_key"`
	URL         string `gorm:"size:500" json:"url"`

	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}
