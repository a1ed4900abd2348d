package entities

import (
	"time"

	"github.com/google/uuid"

	"course-agent/constant"
)

// PaymentIntent is one checkout attempt. The client only ever creates
// it and re-fetches its status; all real transitions happen backend
// side.
type PaymentIntent struct {
	ID           string                 `json:"id"`
	CourseID     uuid.UUID              `json:"course_id"`
	Amount       float64                `json:"amount"`
	Currency     string                 `json:"currency"`
	Method       constant.PaymentMethod `json:"method"`
	Status       constant.PaymentStatus `json:"status"`
	Reference    string                 `json:"reference,omitempty"`
	Instructions string                 `json:"instructions,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

// CryptoPayment carries the deposit details for a crypto checkout.
type CryptoPayment struct {
	PaymentID string    `json:"payment_id"`
	Address   string    `json:"address"`
	Amount    string    `json:"amount"`
	Currency  string    `json:"currency"`
	Network   string    `json:"network,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}
