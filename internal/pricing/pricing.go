package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// DiscountPercent returns the whole-percent discount implied by an original
// and a current price. It is 0 whenever original is non-positive or not
// strictly greater than price, so it can never go negative.
func DiscountPercent(original, price decimal.Decimal) int64 {
	if original.Sign() <= 0 || original.Cmp(price) <= 0 {
		return 0
	}
	pct := original.Sub(price).Div(original).Mul(hundred)
	return pct.Round(0).IntPart()
}

// DiscountedPrice applies a percent discount to original, rounded to two
// decimal places. Non-positive percentages leave the price untouched.
func DiscountedPrice(original decimal.Decimal, percent int64) decimal.Decimal {
	if percent <= 0 {
		return original
	}
	factor := decimal.NewFromInt(100 - percent).Div(hundred)
	return original.Mul(factor).Round(2)
}

// OptionFinalPrice resolves the unit price of a product option. The modifier
// may be negative.
func OptionFinalPrice(base, modifier decimal.Decimal) decimal.Decimal {
	return base.Add(modifier)
}

// ParseAmount parses a price that may arrive as a bare number or a numeric
// string. Empty or unparsable input is treated as zero.
func ParseAmount(raw string) decimal.Decimal {
	s := strings.TrimSpace(strings.Trim(strings.TrimSpace(raw), `"`))
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
