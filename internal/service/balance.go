package service

import (
	"budgetbook/internal/models"

	"github.com/shopspring/decimal"
)

// MaxAmount is the largest value a single transaction may carry.
var MaxAmount = decimal.RequireFromString("9999999999999999.99")

// AccountBalance folds a transaction history into the account's current
// balance. For an asset account the balance is credits minus debits,
// for a liability account debits minus credits. An empty history yields
// zero. The fold is pure and uses decimal arithmetic throughout, so no
// rounding drift can accumulate.
func AccountBalance(isAsset bool, txs []models.Transaction) decimal.Decimal {
	debits := decimal.Zero
	credits := decimal.Zero
	for i := range txs {
		if txs[i].IsDebit {
			debits = debits.Add(txs[i].Amount)
		} else {
			credits = credits.Add(txs[i].Amount)
		}
	}
	if isAsset {
		return credits.Sub(debits)
	}
	return debits.Sub(credits)
}
