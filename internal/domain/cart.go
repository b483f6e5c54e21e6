package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type CartLine struct {
	ItemData
	Quantity int       `json:"quantity"`
	AddedAt  time.Time `json:"addedAt"`
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Decimal().Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type CartSummary struct {
	Items     []CartLine      `json:"items"`
	ItemCount int             `json:"itemCount"`
	Total     decimal.Decimal `json:"total"`
}

func SummarizeCart(lines []CartLine) CartSummary {
	summary := CartSummary{Items: lines, Total: decimal.Zero}
	if summary.Items == nil {
		summary.Items = []CartLine{}
	}
	for _, l := range lines {
		summary.ItemCount += l.Quantity
		summary.Total = summary.Total.Add(l.Subtotal())
	}
	return summary
}
