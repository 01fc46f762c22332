package memory

import (
	"context"
	"errors"
	"testing"

	"tradinghub/internal/domain"
	"tradinghub/internal/storage"
)

func TestUserStore_CRUD(t *testing.T) {
	store := NewUserStore()
	ctx := context.Background()

	u := &domain.User{Email: "a@example.com", Name: "A", AssignedStrategies: []string{"btc-fast"}}
	if err := store.Insert(ctx, u); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if u.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set on insert")
	}

	if err := store.Insert(ctx, &domain.User{Email: "a@example.com"}); !errors.Is(err, storage.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}

	got, err := store.GetByEmail(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if len(got.AssignedStrategies) != 1 || got.AssignedStrategies[0] != "btc-fast" {
		t.Errorf("unexpected assigned strategies: %v", got.AssignedStrategies)
	}

	if err := store.Delete(ctx, "a@example.com"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.Delete(ctx, "a@example.com"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestUserStore_ListNewestFirst(t *testing.T) {
	store := NewUserStore()
	ctx := context.Background()

	for _, email := range []string{"first@example.com", "second@example.com"} {
		if err := store.Insert(ctx, &domain.User{Email: email}); err != nil {
			t.Fatalf("Insert %s failed: %v", email, err)
		}
	}

	users, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[0].CreatedAt.Before(users[1].CreatedAt) {
		t.Error("expected newest user first")
	}
}
