package domain

import (
	"time"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
)

type Order struct {
	ID         string
	Email      string
	PaymentRef string
	Total      Money
	Items      string // JSON snapshot of the purchased cart items
	Status     OrderStatus
	CreatedAt  time.Time
}

// PaymentLink is the collaborator's answer to a payment-link request.
type PaymentLink struct {
	ID  string `json:"paymentId"`
	URL string `json:"paymentLink"`
}
