// Package reminder implements the daily sweep that warns users about
// unpaid shares on expenses due in exactly seven days.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/colocmate/backend/internal/metrics"
	"github.com/colocmate/backend/internal/models"
	"github.com/colocmate/backend/internal/notify"
)

// leadDays is how far ahead of the due date users are warned.
const leadDays = 7

// ExpenseLister is the slice of the store the sweep reads.
type ExpenseLister interface {
	ListExpenses(ctx context.Context) ([]*models.Expense, error)
}

// Service runs the reminder sweep, on a daily schedule or on demand.
//
// No record is kept of reminders already sent: running the sweep twice
// on the same day notifies every qualifying user twice. Known
// limitation, accepted by design.
type Service struct {
	store    ExpenseLister
	notifier notify.Notifier
	hour     int // local hour of day the scheduled sweep fires
	now      func() time.Time
}

// New creates a reminder Service firing daily at the given local hour.
func New(store ExpenseLister, notifier notify.Notifier, hour int) *Service {
	return &Service{store: store, notifier: notifier, hour: hour, now: time.Now}
}

// Run blocks, executing a sweep every day at the configured hour until
// the context is cancelled. Intended to run on its own goroutine.
func (s *Service) Run(ctx context.Context) {
	for {
		timer := time.NewTimer(time.Until(s.nextFiring()))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			if err := s.Sweep(ctx); err != nil {
				slog.Error("Reminder sweep failed", "error", err)
			}
		}
	}
}

// nextFiring returns the next occurrence of the configured hour.
func (s *Service) nextFiring() time.Time {
	now := s.now()
	next := time.Date(now.Year(), now.Month(), now.Day(), s.hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Sweep scans every expense due in exactly leadDays days, accumulates
// each user's unpaid shares across those expenses, and sends one email
// plus one push notification per user. A delivery failure for one user
// is logged and counted but never stops the remaining users from being
// notified.
func (s *Service) Sweep(ctx context.Context) error {
	metrics.ReminderSweeps.Inc()

	expenses, err := s.store.ListExpenses(ctx)
	if err != nil {
		return fmt.Errorf("failed to load expenses: %w", err)
	}

	today := s.now()
	unpaidAmounts := make(map[string]float64)
	unpaidLabels := make(map[string][]string)
	emails := make(map[string]string)

	for _, expense := range expenses {
		if !sameDay(expense.DueDate.AddDate(0, 0, -leadDays), today) {
			continue
		}
		for _, share := range expense.Shares {
			if share.UserID == "" || share.UserEmail == "" || share.Paid {
				continue
			}
			unpaidAmounts[share.UserID] += share.Amount
			unpaidLabels[share.UserID] = append(unpaidLabels[share.UserID], expense.Label)
			if _, ok := emails[share.UserID]; !ok {
				emails[share.UserID] = share.UserEmail
			}
		}
	}

	for userID, total := range unpaidAmounts {
		email := emails[userID]
		if err := s.notifyUser(userID, email, total, unpaidLabels[userID]); err != nil {
			metrics.ReminderFailures.Inc()
			slog.Error("Failed to send reminder", "user_id", userID, "email", email, "error", err)
			continue
		}
		metrics.RemindersSent.Inc()
		slog.Info("Reminder sent", "user_id", userID, "email", email, "total_unpaid", total)
	}

	return nil
}

func (s *Service) notifyUser(userID, email string, total float64, labels []string) error {
	subject := "Reminder: you have unpaid expenses due soon"
	body := fmt.Sprintf("Hello,\n\n"+
		"You have expenses due in %d days totaling $%.2f.\n"+
		"Pending bills: %s.\n\n"+
		"Please make your payments soon.\n\n"+
		"Thank you.",
		leadDays, total, strings.Join(labels, ", "))

	if err := s.notifier.SendEmail(email, subject, body); err != nil {
		return err
	}
	return s.notifier.SendPushNotification(userID,
		fmt.Sprintf("Expenses due in %d days: $%.2f", leadDays, total))
}

// sameDay reports whether a and b fall on the same calendar date.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
