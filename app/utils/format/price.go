package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var cny = accounting.Accounting{Symbol: "¥", Precision: 2}

// Price renders a product price for display, e.g. "¥1,299.00". A nil price
// (price on request) renders as an empty string.
func Price(p *decimal.Decimal) string {
	if p == nil {
		return ""
	}
	return cny.FormatMoneyDecimal(*p)
}
