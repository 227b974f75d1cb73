package models

import (
	"testing"
	"time"
)

func TestRecomputeDatePaid(t *testing.T) {
	day1 := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC)

	t.Run("stamps when all shares paid", func(t *testing.T) {
		e := &Expense{Shares: []ExpenseShare{
			{UserID: "a", Paid: true},
			{UserID: "b", Paid: true},
		}}

		e.RecomputeDatePaid(day1)

		if e.DatePaid == nil || !e.DatePaid.Equal(day1) {
			t.Errorf("DatePaid = %v, want %v", e.DatePaid, day1)
		}
	})

	t.Run("does not advance an existing date", func(t *testing.T) {
		e := &Expense{Shares: []ExpenseShare{{UserID: "a", Paid: true}}}

		e.RecomputeDatePaid(day1)
		e.RecomputeDatePaid(day2)

		if e.DatePaid == nil || !e.DatePaid.Equal(day1) {
			t.Errorf("DatePaid = %v, want the original %v", e.DatePaid, day1)
		}
	})

	t.Run("clears when a share is unpaid", func(t *testing.T) {
		e := &Expense{Shares: []ExpenseShare{
			{UserID: "a", Paid: true},
			{UserID: "b", Paid: false},
		}}
		e.DatePaid = &day1

		e.RecomputeDatePaid(day2)

		if e.DatePaid != nil {
			t.Errorf("DatePaid = %v, want nil", e.DatePaid)
		}
	})

	t.Run("no shares is never paid", func(t *testing.T) {
		e := &Expense{}
		e.RecomputeDatePaid(day1)
		if e.DatePaid != nil {
			t.Errorf("DatePaid = %v, want nil", e.DatePaid)
		}
		if e.AllSharesPaid() {
			t.Error("AllSharesPaid() = true for an expense without shares")
		}
	})
}

func TestApplyPaidFlag(t *testing.T) {
	day1 := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC)

	t.Run("stamps on false to true", func(t *testing.T) {
		s := &ExpenseShare{}
		s.ApplyPaidFlag(true, day1)
		if !s.Paid || s.DatePaid == nil || !s.DatePaid.Equal(day1) {
			t.Errorf("got paid=%v datePaid=%v, want true/%v", s.Paid, s.DatePaid, day1)
		}
	})

	t.Run("keeps the original date when already paid", func(t *testing.T) {
		s := &ExpenseShare{}
		s.ApplyPaidFlag(true, day1)
		s.ApplyPaidFlag(true, day2)
		if s.DatePaid == nil || !s.DatePaid.Equal(day1) {
			t.Errorf("DatePaid = %v, want the original %v", s.DatePaid, day1)
		}
	})

	t.Run("clears on true to false", func(t *testing.T) {
		s := &ExpenseShare{}
		s.ApplyPaidFlag(true, day1)
		s.ApplyPaidFlag(false, day2)
		if s.Paid || s.DatePaid != nil {
			t.Errorf("got paid=%v datePaid=%v, want false/nil", s.Paid, s.DatePaid)
		}
	})
}

func TestShareByUser(t *testing.T) {
	e := &Expense{Shares: []ExpenseShare{
		{ID: "s1", UserID: "a"},
		{ID: "s2", UserID: "b"},
	}}

	if got := e.ShareByUser("b"); got == nil || got.ID != "s2" {
		t.Errorf("ShareByUser(b) = %+v, want share s2", got)
	}
	if got := e.ShareByUser("missing"); got != nil {
		t.Errorf("ShareByUser(missing) = %+v, want nil", got)
	}

	// The returned pointer aliases the slice element.
	e.ShareByUser("a").Paid = true
	if !e.Shares[0].Paid {
		t.Error("mutation through ShareByUser did not reach the slice")
	}
}
