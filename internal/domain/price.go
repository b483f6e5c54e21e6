package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Price is a catalog price. It is accepted either as a raw number or as a
// display string such as "₹8,500" and normalised to a decimal on ingestion.
type Price struct {
	amount decimal.Decimal
}

func NewPrice(amount decimal.Decimal) Price {
	return Price{amount: amount}
}

func PriceFromFloat(v float64) Price {
	return Price{amount: decimal.NewFromFloat(v)}
}

// ParsePrice strips everything except digits and dots from a formatted price
// and reads the leading number. Leading dots ("Rs. 100") are skipped.
func ParsePrice(s string) (Price, error) {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, s)
	cleaned = numericPrefix(strings.TrimLeft(cleaned, "."))
	if cleaned == "" {
		return Price{}, fmt.Errorf("%w: price %q has no digits", ErrInvalidInput, s)
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return Price{}, fmt.Errorf("%w: price %q: %v", ErrInvalidInput, s, err)
	}
	return Price{amount: d}, nil
}

// numericPrefix keeps digits up to the second dot, so "1.2.3" reads as 1.2.
func numericPrefix(s string) string {
	if first := strings.IndexByte(s, '.'); first >= 0 {
		if second := strings.IndexByte(s[first+1:], '.'); second >= 0 {
			s = s[:first+1+second]
		}
	}
	return strings.TrimRight(s, ".")
}

func MustParsePrice(s string) Price {
	p, err := ParsePrice(s)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Price) Decimal() decimal.Decimal { return p.amount }

func (p Price) IsZero() bool { return p.amount.IsZero() }

func (p Price) String() string { return p.amount.String() }

func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(p.amount.String()), nil
}

func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		p.amount = decimal.Zero
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := ParsePrice(s)
		if err != nil {
			return err
		}
		*p = parsed
		return nil
	}

	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return fmt.Errorf("%w: price %s: %v", ErrInvalidInput, data, err)
	}
	p.amount = d
	return nil
}
