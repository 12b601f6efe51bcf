package compensation

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/hris-web-go/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/listquery"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/validator"
)

type ItemRequest struct {
	Name       string `json:"name"`
	Amount     string `json:"amount"`
	AmountType string `json:"amount_type"`
}

func (r *ItemRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Name = strings.TrimSpace(r.Name)
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if r.AmountType == "" {
		r.AmountType = string(AmountFixed)
	}
	if !validator.IsInSlice(r.AmountType, []string{string(AmountFixed), string(AmountPercentage)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "amount_type",
			Message: "amount_type must be fixed or percentage",
		})
	}

	amount, ok := validator.ParsePositiveDecimal(r.Amount)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "amount",
			Message: "amount must be a number greater than 0",
		})
	} else if AmountType(r.AmountType) == AmountPercentage && !validator.IsPercentage(amount) {
		errs = append(errs, validator.ValidationError{
			Field:   "amount",
			Message: "percentage amount must not exceed 100",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Body is the upstream write shape of a validated request. The catalog
// endpoints expect camelCase amountType.
func (r ItemRequest) Body() ItemBody {
	amount, _ := decimal.NewFromString(strings.TrimSpace(r.Amount))
	return ItemBody{Name: r.Name, Amount: amount, AmountType: r.AmountType}
}

type ItemBody struct {
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	AmountType string          `json:"amountType"`
}

// ItemPayload reads amountType or amount_type.
type ItemPayload struct {
	ID              apiclient.ID    `json:"id"`
	Name            string          `json:"name"`
	Amount          apiclient.Float `json:"amount"`
	AmountType      string          `json:"amountType"`
	AmountTypeSnake string          `json:"amount_type"`
}

func (p ItemPayload) ToItem(kind Kind) Item {
	amountType := p.AmountType
	if amountType == "" {
		amountType = p.AmountTypeSnake
	}
	if amountType == "" {
		amountType = string(AmountFixed)
	}
	return Item{
		ID:         string(p.ID),
		Name:       p.Name,
		Amount:     decimal.NewFromFloat(float64(p.Amount)),
		AmountType: AmountType(strings.ToLower(amountType)),
		Kind:       kind,
	}
}

var ListConfig = listquery.Config[Item]{
	SearchFields: []func(Item) string{
		func(i Item) string { return i.Name },
	},
	SortKeys: map[string]func(a, b Item) int{
		"amount": func(a, b Item) int { return a.Amount.Cmp(b.Amount) },
	},
	DefaultSort: listquery.By(func(i Item) string { return i.Name }),
}
