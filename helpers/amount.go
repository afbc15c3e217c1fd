// Package helpers provides convenience functions for common marketplace
// client tasks.
package helpers

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/gear-dapps/nft-marketplace/types"
)

// DenominationInfo describes a token denomination.
type DenominationInfo struct {
	// Symbol is the token symbol.
	Symbol string `json:"symbol" yaml:"symbol"`
	// Decimals is the number of decimal places the token uses.
	Decimals uint8 `json:"decimals" yaml:"decimals"`
}

// ParseAmount parses a decimal amount string into base units of the given
// denomination. Fractional digits beyond the denomination's precision are
// truncated.
func ParseAmount(di *DenominationInfo, amount string) (*types.Quantity, error) {
	v, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, err
	}

	// Multiply to get the number of base units.
	var q types.Quantity
	baseUnits := v.Mul(decimal.New(1, int32(di.Decimals)))
	if err := q.FromBigInt(baseUnits.BigInt()); err != nil {
		return nil, err
	}
	return &q, nil
}

// FormatAmount formats the given base unit amount with the denomination's
// symbol.
func FormatAmount(di *DenominationInfo, amount types.Quantity) string {
	v := decimal.NewFromBigInt(amount.ToBigInt(), -int32(di.Decimals))
	s := v.String()
	if !strings.Contains(s, ".") {
		s = v.StringFixed(1)
	}
	return fmt.Sprintf("%s %s", s, di.Symbol)
}
