package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/colocmate/backend/internal/models"
	"github.com/colocmate/backend/internal/storage"
)

// ColocationInput carries the caller-settable fields of a listing.
type ColocationInput struct {
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// ColocationService manages colocation listings. Mutations are restricted
// to the publisher of the listing.
type ColocationService struct {
	store storage.Store
}

// NewColocationService creates a ColocationService backed by the given store.
func NewColocationService(store storage.Store) *ColocationService {
	return &ColocationService{store: store}
}

// Create publishes a new listing owned by publisherID.
func (s *ColocationService) Create(ctx context.Context, in *ColocationInput, publisherID string) (*models.Colocation, error) {
	if in.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	coloc := &models.Colocation{
		Name:        in.Name,
		Address:     in.Address,
		Description: in.Description,
		Price:       in.Price,
		PublisherID: publisherID,
	}
	if err := s.store.CreateColocation(ctx, coloc); err != nil {
		return nil, err
	}

	slog.Info("Colocation created", "colocation_id", coloc.ID, "publisher_id", publisherID)
	return coloc, nil
}

// Get retrieves one listing.
func (s *ColocationService) Get(ctx context.Context, colocationID string) (*models.Colocation, error) {
	return s.store.GetColocation(ctx, colocationID)
}

// List returns every listing.
func (s *ColocationService) List(ctx context.Context) ([]*models.Colocation, error) {
	return s.store.ListColocations(ctx)
}

// Update rewrites a listing. Only its publisher may do so.
func (s *ColocationService) Update(ctx context.Context, colocationID string, in *ColocationInput, requestingUserID string) (*models.Colocation, error) {
	if in.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	coloc, err := s.store.GetColocation(ctx, colocationID)
	if err != nil {
		return nil, err
	}
	if coloc.PublisherID != requestingUserID {
		return nil, fmt.Errorf("%w: only the publisher may update this colocation", ErrForbidden)
	}

	coloc.Name = in.Name
	coloc.Address = in.Address
	coloc.Description = in.Description
	coloc.Price = in.Price
	if err := s.store.UpdateColocation(ctx, coloc); err != nil {
		return nil, err
	}
	return coloc, nil
}

// Delete removes a listing. Only its publisher may do so. Expenses
// recorded against the colocation are detached, not deleted.
func (s *ColocationService) Delete(ctx context.Context, colocationID, requestingUserID string) error {
	coloc, err := s.store.GetColocation(ctx, colocationID)
	if err != nil {
		return err
	}
	if coloc.PublisherID != requestingUserID {
		return fmt.Errorf("%w: only the publisher may delete this colocation", ErrForbidden)
	}

	if err := s.store.DeleteColocation(ctx, colocationID); err != nil {
		return err
	}

	slog.Info("Colocation deleted", "colocation_id", colocationID, "user_id", requestingUserID)
	return nil
}
