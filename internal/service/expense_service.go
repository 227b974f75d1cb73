// Package service implements the expense lifecycle manager: it owns every
// mutation of expenses and shares and keeps the derived payment dates
// consistent after each one.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/colocmate/backend/internal/balance"
	"github.com/colocmate/backend/internal/models"
	"github.com/colocmate/backend/internal/storage"
)

// ShareInput is one share entry of a create or update request.
type ShareInput struct {
	UserID    string  `json:"userId"`
	UserEmail string  `json:"userEmail"`
	Amount    float64 `json:"amount"`
	Paid      bool    `json:"paid"`
}

// ExpenseInput carries the caller-settable fields of an expense.
type ExpenseInput struct {
	Label           string       `json:"label"`
	TotalAmount     float64      `json:"totalAmount"`
	DueDate         time.Time    `json:"dueDate"`
	ColocationID    string       `json:"colocationId"`
	PaidByUserID    string       `json:"paidByUserId"`
	PaidByUserEmail string       `json:"paidByUserEmail"`
	Shares          []ShareInput `json:"shares"`
}

// ExpenseService creates, updates and deletes expenses and their shares.
type ExpenseService struct {
	store storage.Store
	now   func() time.Time
}

// NewExpenseService creates an ExpenseService backed by the given store.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store, now: time.Now}
}

func validateInput(in *ExpenseInput) error {
	if in.TotalAmount < 0 {
		return fmt.Errorf("%w: totalAmount must not be negative", ErrInvalidInput)
	}
	return validateShares(in.Shares)
}

func validateShares(shares []ShareInput) error {
	for _, sh := range shares {
		if sh.UserID == "" {
			return fmt.Errorf("%w: share userId required", ErrInvalidInput)
		}
		if sh.Amount < 0 {
			return fmt.Errorf("%w: share amount must not be negative", ErrInvalidInput)
		}
	}
	return nil
}

// Create persists a new expense with its initial share list. The
// colocation must resolve. Shares created already marked paid get their
// payment date stamped immediately.
func (s *ExpenseService) Create(ctx context.Context, in *ExpenseInput) (*models.Expense, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if _, err := s.store.GetColocation(ctx, in.ColocationID); err != nil {
		return nil, err
	}

	now := s.now()
	expense := &models.Expense{
		Label:           in.Label,
		TotalAmount:     in.TotalAmount,
		DueDate:         in.DueDate,
		ColocationID:    in.ColocationID,
		PaidByUserID:    in.PaidByUserID,
		PaidByUserEmail: in.PaidByUserEmail,
	}
	for _, sh := range in.Shares {
		share := models.ExpenseShare{
			UserID:    sh.UserID,
			UserEmail: sh.UserEmail,
			Amount:    sh.Amount,
		}
		share.ApplyPaidFlag(sh.Paid, now)
		expense.Shares = append(expense.Shares, share)
	}
	expense.RecomputeDatePaid(now)

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, err
	}

	slog.Info("Expense created",
		"expense_id", expense.ID,
		"colocation_id", expense.ColocationID,
		"total", expense.TotalAmount,
		"shares", len(expense.Shares),
	)
	return expense, nil
}

// Update applies new expense fields and upserts the given shares by
// userId. Shares on the expense but absent from the input are left
// untouched; there is no deletion by omission. The expense payment date
// is recomputed after all share changes.
func (s *ExpenseService) Update(ctx context.Context, expenseID string, in *ExpenseInput) (*models.Expense, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.GetColocation(ctx, in.ColocationID); err != nil {
		return nil, err
	}

	expense.Label = in.Label
	expense.TotalAmount = in.TotalAmount
	expense.DueDate = in.DueDate
	expense.ColocationID = in.ColocationID
	expense.PaidByUserID = in.PaidByUserID
	expense.PaidByUserEmail = in.PaidByUserEmail

	now := s.now()
	s.upsertShares(expense, in.Shares, now)
	expense.RecomputeDatePaid(now)

	if err := s.store.UpdateExpense(ctx, expense); err != nil {
		return nil, err
	}

	slog.Info("Expense updated", "expense_id", expense.ID, "shares", len(expense.Shares))
	return expense, nil
}

// UpdateShares upserts shares by userId without touching any expense
// field, then recomputes the expense payment date.
func (s *ExpenseService) UpdateShares(ctx context.Context, expenseID string, shares []ShareInput) (*models.Expense, error) {
	if err := validateShares(shares); err != nil {
		return nil, err
	}

	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	s.upsertShares(expense, shares, now)
	expense.RecomputeDatePaid(now)

	if err := s.store.UpdateExpense(ctx, expense); err != nil {
		return nil, err
	}

	slog.Info("Expense shares updated", "expense_id", expense.ID, "shares", len(expense.Shares))
	return expense, nil
}

// upsertShares merges the incoming share entries into the aggregate:
// an entry matching an existing share's userId updates it in place,
// anything else is appended as a new share.
func (s *ExpenseService) upsertShares(expense *models.Expense, shares []ShareInput, now time.Time) {
	for _, in := range shares {
		if existing := expense.ShareByUser(in.UserID); existing != nil {
			existing.UserEmail = in.UserEmail
			existing.Amount = in.Amount
			existing.ApplyPaidFlag(in.Paid, now)
			continue
		}
		share := models.ExpenseShare{
			ExpenseID: expense.ID,
			UserID:    in.UserID,
			UserEmail: in.UserEmail,
			Amount:    in.Amount,
		}
		share.ApplyPaidFlag(in.Paid, now)
		expense.Shares = append(expense.Shares, share)
	}
}

// Delete removes an expense and all its shares. Only the user who paid
// the bill upfront may delete it.
func (s *ExpenseService) Delete(ctx context.Context, expenseID, requestingUserID string) error {
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return err
	}
	if expense.PaidByUserID != requestingUserID {
		return fmt.Errorf("%w: only the payer may delete this expense", ErrForbidden)
	}

	if err := s.store.DeleteExpense(ctx, expenseID); err != nil {
		return err
	}

	slog.Info("Expense deleted", "expense_id", expenseID, "user_id", requestingUserID)
	return nil
}

// Get retrieves one expense with its shares.
func (s *ExpenseService) Get(ctx context.Context, expenseID string) (*models.Expense, error) {
	return s.store.GetExpense(ctx, expenseID)
}

// ForColocation returns the expenses of one colocation.
func (s *ExpenseService) ForColocation(ctx context.Context, colocationID string) ([]*models.Expense, error) {
	return s.store.ListExpensesByColocation(ctx, colocationID)
}

// VisibleToUser returns the expenses the user may see. With a colocation
// id the store resolves visibility (publisher or share participant); without
// one it is the union of expenses the user paid and expenses the user
// participates in, deduplicated.
func (s *ExpenseService) VisibleToUser(ctx context.Context, colocationID, userID string) ([]*models.Expense, error) {
	if colocationID != "" {
		return s.store.ListExpensesVisibleToUser(ctx, colocationID, userID)
	}

	asPayer, err := s.store.ListExpensesByPayer(ctx, userID)
	if err != nil {
		return nil, err
	}
	asShare, err := s.store.ListExpensesByShareUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(asPayer))
	merged := make([]*models.Expense, 0, len(asPayer)+len(asShare))
	for _, e := range asPayer {
		seen[e.ID] = true
		merged = append(merged, e)
	}
	for _, e := range asShare {
		if !seen[e.ID] {
			merged = append(merged, e)
		}
	}
	return merged, nil
}

// ForUser returns the expenses where the user appears as a share
// participant (asParticipant) or as the upfront payer.
func (s *ExpenseService) ForUser(ctx context.Context, userID string, asParticipant bool) ([]*models.Expense, error) {
	if asParticipant {
		return s.store.ListExpensesByShareUser(ctx, userID)
	}
	return s.store.ListExpensesByPayer(ctx, userID)
}

// Balances computes the net position of every user appearing in the
// colocation's expenses. Positive means the user is owed money.
func (s *ExpenseService) Balances(ctx context.Context, colocationID string) (map[string]float64, error) {
	expenses, err := s.store.ListExpensesByColocation(ctx, colocationID)
	if err != nil {
		return nil, err
	}

	entries := make([]balance.Expense, 0, len(expenses))
	for _, e := range expenses {
		entry := balance.Expense{
			PayerID:     e.PaidByUserID,
			TotalAmount: e.TotalAmount,
		}
		for _, sh := range e.Shares {
			entry.Shares = append(entry.Shares, balance.Share{
				UserID: sh.UserID,
				Amount: sh.Amount,
			})
		}
		entries = append(entries, entry)
	}

	return balance.Calculate(entries), nil
}
