package token

import (
	"github.com/AlexZinkM/coinmaker/internal/model"

	"github.com/shopspring/decimal"
)

var (
	baseFee          = decimal.RequireFromString("0.1")
	modifyCreatorFee = decimal.RequireFromString("0.1")
	customAddressFee = decimal.RequireFromString("0.2")
	revokeFee        = decimal.RequireFromString("0.1")
)

// EstimateCost returns the SOL total shown to the user for d.
// Display only: the backend decides what is actually charged.
func EstimateCost(d model.TokenDraft) decimal.Decimal {
	total := baseFee
	if d.ModifyCreator {
		total = total.Add(modifyCreatorFee)
	}
	if d.CustomAddress {
		total = total.Add(customAddressFee)
	}
	for _, revoke := range []bool{d.RevokeFreeze, d.RevokeMint, d.RevokeUpdate} {
		if revoke {
			total = total.Add(revokeFee)
		}
	}
	return total
}
