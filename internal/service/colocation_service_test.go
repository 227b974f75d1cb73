package service

import (
	"context"
	"errors"
	"testing"

	"github.com/colocmate/backend/internal/storage"
)

func TestColocationService(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	svc := NewColocationService(store)

	t.Run("create assigns the publisher", func(t *testing.T) {
		coloc, err := svc.Create(ctx, &ColocationInput{Name: "Flat", Price: 1000}, "alice")
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if coloc.ID == "" || coloc.PublisherID != "alice" {
			t.Errorf("coloc = %+v, want generated id and publisher alice", coloc)
		}
	})

	t.Run("negative price is rejected", func(t *testing.T) {
		if _, err := svc.Create(ctx, &ColocationInput{Name: "Flat", Price: -1}, "alice"); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("err = %v, want ErrInvalidInput", err)
		}
	})

	t.Run("only the publisher may update", func(t *testing.T) {
		coloc, err := svc.Create(ctx, &ColocationInput{Name: "Flat", Price: 1000}, "alice")
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		if _, err := svc.Update(ctx, coloc.ID, &ColocationInput{Name: "Taken over"}, "bob"); !errors.Is(err, ErrForbidden) {
			t.Errorf("err = %v, want ErrForbidden", err)
		}

		updated, err := svc.Update(ctx, coloc.ID, &ColocationInput{Name: "Renamed", Price: 1100}, "alice")
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if updated.Name != "Renamed" || updated.Price != 1100 {
			t.Errorf("updated = %+v, want Renamed/1100", updated)
		}
	})

	t.Run("only the publisher may delete", func(t *testing.T) {
		coloc, err := svc.Create(ctx, &ColocationInput{Name: "Flat", Price: 1000}, "alice")
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		if err := svc.Delete(ctx, coloc.ID, "bob"); !errors.Is(err, ErrForbidden) {
			t.Errorf("err = %v, want ErrForbidden", err)
		}
		if err := svc.Delete(ctx, coloc.ID, "alice"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := svc.Get(ctx, coloc.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound after delete", err)
		}
	})
}
