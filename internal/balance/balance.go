// Package balance computes net creditor/debtor positions from the raw
// expense ledger of one colocation.
package balance

// Share is one user's portion of an expense, reduced to what the
// balance calculation needs.
type Share struct {
	UserID string
	Amount float64
}

// Expense is a bill reduced to what the balance calculation needs.
type Expense struct {
	PayerID     string
	TotalAmount float64
	Shares      []Share
}

// Calculate computes the net balance per user across the given expenses.
//
// Algorithm:
//   - Each payer is credited the full expense amount.
//   - Each share participant is debited the share amount, paid or not:
//     the payer's upfront payment and the sharer's obligation are two
//     separate ledgers that net out.
//   - net = total_paid - total_owed. Positive means the user is a net
//     creditor; negative a net debtor. Summed over all users the result
//     is zero whenever every expense is fully apportioned.
//
// Users appearing on only one side still get an entry; the missing side
// counts as zero. No expenses yields an empty map.
func Calculate(expenses []Expense) map[string]float64 {
	paid := make(map[string]float64)
	owed := make(map[string]float64)

	for _, expense := range expenses {
		paid[expense.PayerID] += expense.TotalAmount
		for _, share := range expense.Shares {
			owed[share.UserID] += share.Amount
		}
	}

	balances := make(map[string]float64, len(paid)+len(owed))
	for user, amount := range paid {
		balances[user] = amount - owed[user]
	}
	for user, amount := range owed {
		if _, ok := paid[user]; !ok {
			balances[user] = -amount
		}
	}
	return balances
}
