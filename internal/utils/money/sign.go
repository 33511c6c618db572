package money

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/easyshop/ledger/internal/core/domain"
)

// SignedAmount applies the cash-movement sign convention to a ledger entry:
// income adds to the drawer it touches, expense removes from it. Transfers and
// adjustments carry their own sign in the amount the caller supplies.
// This is used by both the recorder and the reconciliation report so the two
// can never disagree on direction.
func SignedAmount(txType domain.TransactionType, amount decimal.Decimal) (decimal.Decimal, error) {
	switch txType {
	case domain.Income:
		return amount, nil
	case domain.Expense:
		return amount.Neg(), nil
	case domain.Transfer, domain.Adjustment:
		return amount, nil
	default:
		return decimal.Zero, fmt.Errorf("unknown transaction type %q", txType)
	}
}

// Round truncates an amount to a currency's decimal precision using banker's-
// friendly half-up rounding, matching how amounts are persisted.
func Round(amount decimal.Decimal, decimalPlaces int32) decimal.Decimal {
	return amount.Round(decimalPlaces)
}
