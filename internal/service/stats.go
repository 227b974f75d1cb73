package service

import (
	"context"
	"time"

	"github.com/colocmate/backend/internal/models"
)

// UserExpenseSummary is the result of filtering a user's shares by paid
// status, plus the total still owed when filtering on unpaid.
type UserExpenseSummary struct {
	Expenses          []*models.Expense `json:"expenses"`
	TotalUnpaidAmount float64           `json:"totalUnpaidAmount"`
}

// ExpenseStats is an expense enriched with paid/unpaid share totals.
type ExpenseStats struct {
	ID                string     `json:"id"`
	Label             string     `json:"label"`
	TotalAmount       float64    `json:"totalAmount"`
	DueDate           time.Time  `json:"dueDate"`
	DatePaid          *time.Time `json:"datePaid,omitempty"`
	PaidByUserEmail   string     `json:"paidByUserEmail"`
	ColocationID      string     `json:"colocationId"`
	TotalPaidShares   float64    `json:"totalPaidShares"`
	TotalUnpaidShares float64    `json:"totalUnpaidShares"`
	ShareCount        int        `json:"shareCount"`
}

// ColocationStats aggregates a user's position within one colocation.
type ColocationStats struct {
	ColocationID string  `json:"colocationId"`
	TotalSpent   float64 `json:"totalSpent"`
	TotalOwed    float64 `json:"totalOwed"`
}

// UserSummary returns the expenses where the user holds at least one
// share matching the paid filter. When filtering on unpaid shares the
// summary also carries the user's total outstanding amount.
func (s *ExpenseService) UserSummary(ctx context.Context, userID string, paid bool) (*UserExpenseSummary, error) {
	expenses, err := s.store.ListExpensesByShareUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &UserExpenseSummary{Expenses: []*models.Expense{}}
	for _, expense := range expenses {
		matched := false
		for _, sh := range expense.Shares {
			if sh.UserID != userID || sh.Paid != paid {
				continue
			}
			matched = true
			if !paid {
				summary.TotalUnpaidAmount += sh.Amount
			}
		}
		if matched {
			summary.Expenses = append(summary.Expenses, expense)
		}
	}
	return summary, nil
}

// StatsByEmail returns, for every expense the user appears in (as payer
// or as share participant, matched by email), the paid and unpaid share
// totals of that expense.
func (s *ExpenseService) StatsByEmail(ctx context.Context, userEmail string) ([]ExpenseStats, error) {
	expenses, err := s.store.ListExpenses(ctx)
	if err != nil {
		return nil, err
	}

	stats := []ExpenseStats{}
	for _, expense := range expenses {
		if !involvesEmail(expense, userEmail) {
			continue
		}

		st := ExpenseStats{
			ID:              expense.ID,
			Label:           expense.Label,
			TotalAmount:     expense.TotalAmount,
			DueDate:         expense.DueDate,
			DatePaid:        expense.DatePaid,
			PaidByUserEmail: expense.PaidByUserEmail,
			ColocationID:    expense.ColocationID,
			ShareCount:      len(expense.Shares),
		}
		for _, sh := range expense.Shares {
			if sh.Paid {
				st.TotalPaidShares += sh.Amount
			} else {
				st.TotalUnpaidShares += sh.Amount
			}
		}
		stats = append(stats, st)
	}
	return stats, nil
}

// ColocationStatsByEmail groups the user's expenses by colocation and
// totals what they spent as payer and what they owe as share participant.
func (s *ExpenseService) ColocationStatsByEmail(ctx context.Context, userEmail string) ([]ColocationStats, error) {
	expenses, err := s.store.ListExpenses(ctx)
	if err != nil {
		return nil, err
	}

	byColocation := make(map[string]*ColocationStats)
	order := []string{}
	for _, expense := range expenses {
		if !involvesEmail(expense, userEmail) {
			continue
		}

		st, ok := byColocation[expense.ColocationID]
		if !ok {
			st = &ColocationStats{ColocationID: expense.ColocationID}
			byColocation[expense.ColocationID] = st
			order = append(order, expense.ColocationID)
		}

		if expense.PaidByUserEmail == userEmail {
			st.TotalSpent += expense.TotalAmount
		}
		for _, sh := range expense.Shares {
			if sh.UserEmail == userEmail {
				st.TotalOwed += sh.Amount
			}
		}
	}

	stats := make([]ColocationStats, 0, len(order))
	for _, id := range order {
		stats = append(stats, *byColocation[id])
	}
	return stats, nil
}

func involvesEmail(expense *models.Expense, userEmail string) bool {
	if expense.PaidByUserEmail == userEmail {
		return true
	}
	for _, sh := range expense.Shares {
		if sh.UserEmail == userEmail {
			return true
		}
	}
	return false
}
