package compensation

import "github.com/shopspring/decimal"

// Item is a reusable benefit or deduction template. Assigning it to an
// employee happens elsewhere.
type Item struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	AmountType AmountType      `json:"amount_type"`
	Kind       Kind            `json:"kind"`
}

type AmountType string

const (
	AmountFixed      AmountType = "fixed"
	AmountPercentage AmountType = "percentage"
)

type Kind string

const (
	KindBenefit   Kind = "benefit"
	KindDeduction Kind = "deduction"
)

// ParseKind reads a catalog name from a URL segment.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "benefit", "benefits":
		return KindBenefit, true
	case "deduction", "deductions":
		return KindDeduction, true
	}
	return "", false
}
