package models

import "time"

// Expense represents a shared bill: one roommate paid the full amount
// upfront, the others owe their shares.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// Label is the human-readable name of the bill (e.g. "Electricity", "Groceries").
	Label string `json:"label"`

	// TotalAmount is the full bill amount. Never negative.
	TotalAmount float64 `json:"totalAmount"`

	// DueDate is the day the bill must be settled by. Only the calendar
	// date is meaningful; the time-of-day component is ignored.
	DueDate time.Time `json:"dueDate"`

	// DatePaid is set when every share is paid and cleared otherwise.
	// Derived, never user-set: see RecomputeDatePaid.
	DatePaid *time.Time `json:"datePaid,omitempty"`

	// ColocationID is the colocation this expense belongs to.
	ColocationID string `json:"colocationId"`

	// PaidByUserID identifies the roommate who paid the bill upfront.
	// Only this user may delete the expense.
	PaidByUserID string `json:"paidByUserId"`

	// PaidByUserEmail is the payer's email, denormalized for display.
	PaidByUserEmail string `json:"paidByUserEmail"`

	// Shares is the per-roommate breakdown of the bill.
	Shares []ExpenseShare `json:"shares"`

	// CreatedAt is the Unix timestamp when the expense was created.
	CreatedAt int64 `json:"createdAt"`
}

// ExpenseShare represents one roommate's portion of an Expense.
// It has no existence independent of its expense.
type ExpenseShare struct {
	// ID is the unique identifier for the share (UUID format).
	ID string `json:"id"`

	// ExpenseID is the owning expense.
	ExpenseID string `json:"expenseId"`

	// UserID identifies the roommate who owes this portion. Only this
	// user may mutate or delete the share.
	UserID string `json:"userId"`

	// UserEmail is the roommate's email, denormalized for notifications.
	UserEmail string `json:"userEmail"`

	// Amount is the portion owed. Never negative.
	Amount float64 `json:"amount"`

	// Paid reports whether this portion has been settled.
	Paid bool `json:"paid"`

	// DatePaid is set when Paid flips to true and cleared when it flips
	// back. Derived, never user-set: see ApplyPaidFlag.
	DatePaid *time.Time `json:"datePaid,omitempty"`
}

// AllSharesPaid reports whether the expense has at least one share and
// every share is paid.
func (e *Expense) AllSharesPaid() bool {
	if len(e.Shares) == 0 {
		return false
	}
	for i := range e.Shares {
		if !e.Shares[i].Paid {
			return false
		}
	}
	return true
}

// RecomputeDatePaid derives the expense-level DatePaid from its shares.
// The timestamp is stamped only on the transition from unpaid to fully
// paid; reapplying the function on an already-paid expense keeps the
// original date instead of advancing it.
func (e *Expense) RecomputeDatePaid(now time.Time) {
	if e.AllSharesPaid() {
		if e.DatePaid == nil {
			t := now
			e.DatePaid = &t
		}
		return
	}
	e.DatePaid = nil
}

// ApplyPaidFlag sets the share's Paid flag and keeps DatePaid consistent
// with it: stamped on the false-to-true transition, cleared on true-to-false.
func (s *ExpenseShare) ApplyPaidFlag(paid bool, now time.Time) {
	s.Paid = paid
	if !paid {
		s.DatePaid = nil
		return
	}
	if s.DatePaid == nil {
		t := now
		s.DatePaid = &t
	}
}

// ShareByUser returns the share belonging to userID, or nil.
func (e *Expense) ShareByUser(userID string) *ExpenseShare {
	for i := range e.Shares {
		if e.Shares[i].UserID == userID {
			return &e.Shares[i]
		}
	}
	return nil
}
