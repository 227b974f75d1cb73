package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/colocmate/backend/internal/models"
	"github.com/colocmate/backend/internal/storage"
)

const expenseColumns = "id, label, total_amount, due_date, date_paid, colocation_id, paid_by_user_id, paid_by_user_email, created_at"

// CreateExpense persists a new expense and its shares in one transaction.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	// Generate IDs if not set
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO expenses ("+expenseColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		expense.ID, expense.Label, expense.TotalAmount, expense.DueDate.Unix(), unixOrNil(expense.DatePaid),
		nullIfEmpty(expense.ColocationID), expense.PaidByUserID, expense.PaidByUserEmail, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i := range expense.Shares {
		share := &expense.Shares[i]
		if share.ID == "" {
			share.ID = uuid.New().String()
		}
		share.ExpenseID = expense.ID

		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_shares (id, expense_id, user_id, user_email, amount, paid, date_paid) VALUES (?, ?, ?, ?, ?, ?, ?)",
			share.ID, share.ExpenseID, share.UserID, share.UserEmail, share.Amount, share.Paid, unixOrNil(share.DatePaid),
		)
		if err != nil {
			return fmt.Errorf("failed to insert share: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetExpense retrieves an expense by ID, including all its shares.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE id = ?", expenseID)

	expense, err := scanExpense(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	if err := s.loadShares(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// UpdateExpense rewrites the expense row and upserts every share in the
// aggregate in one transaction. Shares absent from the slice stay untouched.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE expenses
		 SET label = ?, total_amount = ?, due_date = ?, date_paid = ?, colocation_id = ?, paid_by_user_id = ?, paid_by_user_email = ?
		 WHERE id = ?`,
		expense.Label, expense.TotalAmount, expense.DueDate.Unix(), unixOrNil(expense.DatePaid),
		nullIfEmpty(expense.ColocationID), expense.PaidByUserID, expense.PaidByUserEmail, expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("expense %s: %w", expense.ID, storage.ErrNotFound)
	}

	for i := range expense.Shares {
		share := &expense.Shares[i]
		if share.ID == "" {
			share.ID = uuid.New().String()
		}
		share.ExpenseID = expense.ID

		_, err = tx.ExecContext(ctx,
			`INSERT INTO expense_shares (id, expense_id, user_id, user_email, amount, paid, date_paid)
			 VALUES (?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET
			   user_email = excluded.user_email,
			   amount = excluded.amount,
			   paid = excluded.paid,
			   date_paid = excluded.date_paid`,
			share.ID, share.ExpenseID, share.UserID, share.UserEmail, share.Amount, share.Paid, unixOrNil(share.DatePaid),
		)
		if err != nil {
			return fmt.Errorf("failed to upsert share: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// DeleteExpense removes an expense; its shares cascade.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	return nil
}

// ListExpenses returns every expense with shares, newest first.
func (s *SQLiteStore) ListExpenses(ctx context.Context) ([]*models.Expense, error) {
	return s.listExpenses(ctx,
		"SELECT "+expenseColumns+" FROM expenses ORDER BY created_at DESC")
}

// ListExpensesByColocation returns the expenses of one colocation.
func (s *SQLiteStore) ListExpensesByColocation(ctx context.Context, colocationID string) ([]*models.Expense, error) {
	return s.listExpenses(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE colocation_id = ? ORDER BY created_at DESC",
		colocationID)
}

// ListExpensesVisibleToUser returns the colocation's expenses visible to
// the user: all of them for the colocation publisher, otherwise the ones
// where the user holds a share.
func (s *SQLiteStore) ListExpensesVisibleToUser(ctx context.Context, colocationID, userID string) ([]*models.Expense, error) {
	return s.listExpenses(ctx,
		`SELECT DISTINCT e.id, e.label, e.total_amount, e.due_date, e.date_paid, e.colocation_id, e.paid_by_user_id, e.paid_by_user_email, e.created_at
		 FROM expenses e
		 LEFT JOIN colocations c ON c.id = e.colocation_id
		 LEFT JOIN expense_shares sh ON sh.expense_id = e.id
		 WHERE e.colocation_id = ? AND (c.publisher_id = ? OR sh.user_id = ?)
		 ORDER BY e.created_at DESC`,
		colocationID, userID, userID)
}

// ListExpensesByPayer returns expenses paid upfront by the user.
func (s *SQLiteStore) ListExpensesByPayer(ctx context.Context, userID string) ([]*models.Expense, error) {
	return s.listExpenses(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE paid_by_user_id = ? ORDER BY created_at DESC",
		userID)
}

// ListExpensesByShareUser returns expenses where the user holds a share.
func (s *SQLiteStore) ListExpensesByShareUser(ctx context.Context, userID string) ([]*models.Expense, error) {
	return s.listExpenses(ctx,
		`SELECT DISTINCT e.id, e.label, e.total_amount, e.due_date, e.date_paid, e.colocation_id, e.paid_by_user_id, e.paid_by_user_email, e.created_at
		 FROM expenses e
		 JOIN expense_shares sh ON sh.expense_id = e.id
		 WHERE sh.user_id = ?
		 ORDER BY e.created_at DESC`,
		userID)
}

// listExpenses runs an expense query and loads the shares of every row.
func (s *SQLiteStore) listExpenses(ctx context.Context, query string, args ...interface{}) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for _, expense := range expenses {
		if err := s.loadShares(ctx, expense); err != nil {
			return nil, err
		}
	}
	return expenses, nil
}

// loadShares fills in the share list of an expense.
func (s *SQLiteStore) loadShares(ctx context.Context, expense *models.Expense) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, expense_id, user_id, user_email, amount, paid, date_paid FROM expense_shares WHERE expense_id = ?",
		expense.ID)
	if err != nil {
		return fmt.Errorf("failed to get shares: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var share models.ExpenseShare
		var datePaid sql.NullInt64
		if err := rows.Scan(&share.ID, &share.ExpenseID, &share.UserID, &share.UserEmail,
			&share.Amount, &share.Paid, &datePaid); err != nil {
			return fmt.Errorf("failed to scan share: %w", err)
		}
		share.DatePaid = timeOrNil(datePaid)
		expense.Shares = append(expense.Shares, share)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate shares: %w", err)
	}
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanExpense(row rowScanner) (*models.Expense, error) {
	expense := &models.Expense{}
	var dueDate int64
	var datePaid sql.NullInt64
	var colocationID sql.NullString

	err := row.Scan(&expense.ID, &expense.Label, &expense.TotalAmount, &dueDate, &datePaid,
		&colocationID, &expense.PaidByUserID, &expense.PaidByUserEmail, &expense.CreatedAt)
	if err != nil {
		return nil, err
	}

	expense.DueDate = time.Unix(dueDate, 0).UTC()
	expense.DatePaid = timeOrNil(datePaid)
	if colocationID.Valid {
		expense.ColocationID = colocationID.String
	}
	return expense, nil
}

// nullIfEmpty maps a detached colocation to NULL so the foreign key
// stays satisfied.
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func unixOrNil(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Unix()
}

func timeOrNil(n sql.NullInt64) *time.Time {
	if !n.Valid {
		return nil
	}
	t := time.Unix(n.Int64, 0).UTC()
	return &t
}
