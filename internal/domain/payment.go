package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method"`
}

type Transaction struct {
	ID        string          `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Status    string          `json:"status"`
	Method    string          `json:"method"`
	Timestamp time.Time       `json:"timestamp"`
}
