package booking

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PricingStrategy defines the interface for quoting a stay.
type PricingStrategy interface {
	// Quote returns the total price for the stay at the given nightly rate.
	Quote(stay Stay, nightlyPrice decimal.Decimal) (decimal.Decimal, error)
}

// StandardPricingStrategy prices a stay as nights times the nightly rate.
type StandardPricingStrategy struct{}

// NewStandardPricingStrategy creates a new StandardPricingStrategy.
func NewStandardPricingStrategy() *StandardPricingStrategy {
	return &StandardPricingStrategy{}
}

// Quote computes nights * nightlyPrice, rounded to two decimal places.
func (s *StandardPricingStrategy) Quote(stay Stay, nightlyPrice decimal.Decimal) (decimal.Decimal, error) {
	nights := stay.Nights()
	if nights <= 0 {
		return decimal.Zero, fmt.Errorf("stay must cover at least one night")
	}
	if !nightlyPrice.IsPositive() {
		return decimal.Zero, fmt.Errorf("nightly price must be positive")
	}
	return nightlyPrice.Mul(decimal.NewFromInt(int64(nights))).Round(2), nil
}
