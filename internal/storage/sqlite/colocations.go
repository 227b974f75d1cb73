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

// CreateColocation persists a new colocation listing.
func (s *SQLiteStore) CreateColocation(ctx context.Context, coloc *models.Colocation) error {
	if coloc.ID == "" {
		coloc.ID = uuid.New().String()
	}
	if coloc.CreatedAt == 0 {
		coloc.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO colocations (id, name, address, description, price, publisher_id, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		coloc.ID, coloc.Name, coloc.Address, coloc.Description, coloc.Price, coloc.PublisherID, coloc.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert colocation: %w", err)
	}
	return nil
}

// GetColocation retrieves a colocation by ID.
func (s *SQLiteStore) GetColocation(ctx context.Context, colocationID string) (*models.Colocation, error) {
	coloc := &models.Colocation{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, address, description, price, publisher_id, created_at FROM colocations WHERE id = ?",
		colocationID,
	).Scan(&coloc.ID, &coloc.Name, &coloc.Address, &coloc.Description, &coloc.Price, &coloc.PublisherID, &coloc.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("colocation %s: %w", colocationID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get colocation: %w", err)
	}
	return coloc, nil
}

// ListColocations returns every colocation, newest first.
func (s *SQLiteStore) ListColocations(ctx context.Context) ([]*models.Colocation, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, address, description, price, publisher_id, created_at FROM colocations ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list colocations: %w", err)
	}
	defer rows.Close()

	var colocs []*models.Colocation
	for rows.Next() {
		coloc := &models.Colocation{}
		if err := rows.Scan(&coloc.ID, &coloc.Name, &coloc.Address, &coloc.Description,
			&coloc.Price, &coloc.PublisherID, &coloc.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan colocation: %w", err)
		}
		colocs = append(colocs, coloc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate colocations: %w", err)
	}
	return colocs, nil
}

// UpdateColocation rewrites a colocation row.
func (s *SQLiteStore) UpdateColocation(ctx context.Context, coloc *models.Colocation) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE colocations SET name = ?, address = ?, description = ?, price = ? WHERE id = ?",
		coloc.Name, coloc.Address, coloc.Description, coloc.Price, coloc.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update colocation: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("colocation %s: %w", coloc.ID, storage.ErrNotFound)
	}
	return nil
}

// DeleteColocation removes a colocation; expenses referencing it are
// detached by the foreign key, not deleted.
func (s *SQLiteStore) DeleteColocation(ctx context.Context, colocationID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM colocations WHERE id = ?", colocationID)
	if err != nil {
		return fmt.Errorf("failed to delete colocation: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("colocation %s: %w", colocationID, storage.ErrNotFound)
	}
	return nil
}
