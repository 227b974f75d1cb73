package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/colocmate/backend/internal/storage"
)

// ShareService mutates individual shares on behalf of their owner.
// Both operations resolve the share by (id, userId), so a user can only
// touch a share that belongs to them, and both finish by recomputing the
// parent expense's payment date.
type ShareService struct {
	store storage.Store
	now   func() time.Time
}

// NewShareService creates a ShareService backed by the given store.
func NewShareService(store storage.Store) *ShareService {
	return &ShareService{store: store, now: time.Now}
}

// Delete removes the share owned by requestingUserID, then recomputes
// the parent expense. A share owned by someone else surfaces as not
// found, never as forbidden.
func (s *ShareService) Delete(ctx context.Context, shareID, requestingUserID string) error {
	share, err := s.store.GetShareForUser(ctx, shareID, requestingUserID)
	if err != nil {
		return err
	}

	if err := s.store.DeleteShare(ctx, shareID); err != nil {
		return err
	}

	if err := s.recomputeExpense(ctx, share.ExpenseID); err != nil {
		return err
	}

	slog.Info("Share deleted", "share_id", shareID, "expense_id", share.ExpenseID, "user_id", requestingUserID)
	return nil
}

// SetPaid flips the paid flag of the share owned by requestingUserID,
// keeps the share's payment date consistent, then recomputes the parent
// expense.
func (s *ShareService) SetPaid(ctx context.Context, shareID, requestingUserID string, paid bool) error {
	share, err := s.store.GetShareForUser(ctx, shareID, requestingUserID)
	if err != nil {
		return err
	}

	share.ApplyPaidFlag(paid, s.now())
	if err := s.store.UpdateShare(ctx, share); err != nil {
		return err
	}

	if err := s.recomputeExpense(ctx, share.ExpenseID); err != nil {
		return err
	}

	slog.Info("Share paid status updated", "share_id", shareID, "paid", paid, "user_id", requestingUserID)
	return nil
}

// recomputeExpense reloads the parent aggregate and persists the derived
// payment date so it reflects the share change just committed.
func (s *ShareService) recomputeExpense(ctx context.Context, expenseID string) error {
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return err
	}
	expense.RecomputeDatePaid(s.now())
	return s.store.UpdateExpense(ctx, expense)
}
