// Package models defines the core domain models for the colocation backend.
//
// # Models
//
//   - Colocation: a shared-housing listing; expenses are scoped to one
//   - Expense: a shared bill paid upfront by one roommate
//   - ExpenseShare: one roommate's portion of an Expense and its payment status
//
// Users live in an external identity provider; throughout the models they
// are referenced by opaque id strings (the provider's subject claim) and a
// denormalized email for display and notifications.
//
// # Design Principles
//
//  1. Expense owns its Shares: the pair is always loaded and persisted as
//     one aggregate, never a Share on its own.
//  2. Derived payment dates are recomputed by explicit functions
//     (ApplyPaidFlag, RecomputeDatePaid) that the service layer calls after
//     every mutation. Nothing is hidden in storage callbacks.
//  3. Avoid circular references: relationships use ID strings, not pointers.
package models
