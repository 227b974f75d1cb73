// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/colocmate/backend/internal/models"
)

// ErrNotFound is wrapped by every store method when the referenced row
// does not exist (or, for GetShareForUser, is not owned by the caller).
var ErrNotFound = errors.New("not found")

// Store defines the interface for ledger storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateExpense persists a new expense together with its shares in
	// one transaction. Missing IDs and CreatedAt are populated.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense and its full share list.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// UpdateExpense rewrites the expense row and upserts every share in
	// the aggregate in one transaction. Shares missing from the slice
	// are left untouched in the database.
	UpdateExpense(ctx context.Context, expense *models.Expense) error

	// DeleteExpense removes the expense; shares cascade.
	DeleteExpense(ctx context.Context, expenseID string) error

	// ListExpenses returns every expense with shares, newest first.
	ListExpenses(ctx context.Context) ([]*models.Expense, error)

	// ListExpensesByColocation returns the expenses of one colocation.
	ListExpensesByColocation(ctx context.Context, colocationID string) ([]*models.Expense, error)

	// ListExpensesVisibleToUser returns the colocation's expenses the
	// user may see: all of them if the user published the colocation,
	// otherwise those where the user holds a share.
	ListExpensesVisibleToUser(ctx context.Context, colocationID, userID string) ([]*models.Expense, error)

	// ListExpensesByPayer returns expenses paid upfront by the user.
	ListExpensesByPayer(ctx context.Context, userID string) ([]*models.Expense, error)

	// ListExpensesByShareUser returns expenses where the user holds a share.
	ListExpensesByShareUser(ctx context.Context, userID string) ([]*models.Expense, error)

	// GetShareForUser resolves a share by (id, userId). A share that
	// exists but belongs to someone else is reported as ErrNotFound,
	// deliberately indistinguishable from a missing one.
	GetShareForUser(ctx context.Context, shareID, userID string) (*models.ExpenseShare, error)

	// UpdateShare rewrites a single share row.
	UpdateShare(ctx context.Context, share *models.ExpenseShare) error

	// DeleteShare removes a single share row.
	DeleteShare(ctx context.Context, shareID string) error

	// CreateColocation persists a new colocation listing.
	CreateColocation(ctx context.Context, coloc *models.Colocation) error

	// GetColocation retrieves a colocation by ID.
	GetColocation(ctx context.Context, colocationID string) (*models.Colocation, error)

	// ListColocations returns every colocation, newest first.
	ListColocations(ctx context.Context) ([]*models.Colocation, error)

	// UpdateColocation rewrites a colocation row.
	UpdateColocation(ctx context.Context, coloc *models.Colocation) error

	// DeleteColocation removes a colocation. Expenses referencing it are
	// detached, not deleted.
	DeleteColocation(ctx context.Context, colocationID string) error

	// Close releases any resources held by the store.
	Close() error
}
