package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/colocmate/backend/internal/models"
	"github.com/colocmate/backend/internal/storage"
)

// GetShareForUser resolves a share by (id, userId). A share owned by a
// different user comes back as ErrNotFound, same as a missing one, so
// callers cannot probe for the existence of other users' shares.
func (s *SQLiteStore) GetShareForUser(ctx context.Context, shareID, userID string) (*models.ExpenseShare, error) {
	share := &models.ExpenseShare{}
	var datePaid sql.NullInt64

	err := s.db.QueryRowContext(ctx,
		"SELECT id, expense_id, user_id, user_email, amount, paid, date_paid FROM expense_shares WHERE id = ? AND user_id = ?",
		shareID, userID,
	).Scan(&share.ID, &share.ExpenseID, &share.UserID, &share.UserEmail, &share.Amount, &share.Paid, &datePaid)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("share %s: %w", shareID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get share: %w", err)
	}

	share.DatePaid = timeOrNil(datePaid)
	return share, nil
}

// UpdateShare rewrites a single share row.
func (s *SQLiteStore) UpdateShare(ctx context.Context, share *models.ExpenseShare) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE expense_shares SET user_email = ?, amount = ?, paid = ?, date_paid = ? WHERE id = ?",
		share.UserEmail, share.Amount, share.Paid, unixOrNil(share.DatePaid), share.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update share: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("share %s: %w", share.ID, storage.ErrNotFound)
	}
	return nil
}

// DeleteShare removes a single share row.
func (s *SQLiteStore) DeleteShare(ctx context.Context, shareID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expense_shares WHERE id = ?", shareID)
	if err != nil {
		return fmt.Errorf("failed to delete share: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("share %s: %w", shareID, storage.ErrNotFound)
	}
	return nil
}
