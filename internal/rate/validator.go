package rate

import (
	"errors"
	"maps"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrBaseRequired      = errors.New("base currency is required")
	ErrFromRequired      = errors.New("source currency is required")
	ErrToRequired        = errors.New("target currency is required")
	ErrInvalidCode       = errors.New("currency code must be 3 letters")
	ErrAmountNotPositive = errors.New("amount must be greater than zero")
)

// ValidateCode checks that code looks like an ISO 4217 code. It does not check
// whether the upstream knows the currency.
func ValidateCode(code string) error {
	if len(code) != 3 {
		return ErrInvalidCode
	}
	for _, r := range code {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return ErrInvalidCode
		}
	}
	return nil
}

func ValidateConversion(from, to string, amount decimal.Decimal) error {
	if from == "" {
		return ErrFromRequired
	}
	if to == "" {
		return ErrToRequired
	}
	if err := ValidateCode(from); err != nil {
		return err
	}
	if err := ValidateCode(to); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return ErrAmountNotPositive
	}
	return nil
}

// CurrencyDenylist holds currency codes the service refuses to convert.
type CurrencyDenylist struct {
	codesSet map[string]struct{} // read only copy, upper-cased
	codesLst []string            // read only copy
}

// Contains is a case-insensitive exact match.
func (d *CurrencyDenylist) Contains(code string) bool {
	_, ok := d.codesSet[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}

func (d *CurrencyDenylist) Codes() []string {
	return slices.Clone(d.codesLst)
}

func NewCurrencyDenylist(codes []string) *CurrencyDenylist {
	codesSet := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c != "" {
			codesSet[c] = struct{}{}
		}
	}
	codesLst := slices.Collect(maps.Keys(codesSet))
	slices.Sort(codesLst)

	return &CurrencyDenylist{
		codesSet: codesSet,
		codesLst: codesLst,
	}
}
