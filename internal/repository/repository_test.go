package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/bloggify-frontend/internal/models"
	"github.com/bloggify-frontend/internal/repository"
)

func TestMemorySessionFlagRepository_SetAndGet(t *testing.T) {
	repo := repository.NewMemorySessionFlagRepo()
	ctx := context.Background()

	err := repo.Set(ctx, "sid-1", map[string]string{
		models.FlagToken: "jwt-token",
		models.FlagRole:  models.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	flags, err := repo.Get(ctx, "sid-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if flags[models.FlagToken] != "jwt-token" {
		t.Errorf("Expected token flag, got %q", flags[models.FlagToken])
	}
	if flags[models.FlagRole] != models.RoleAdmin {
		t.Errorf("Expected role flag admin, got %q", flags[models.FlagRole])
	}

	// Returned map must be a copy
	flags[models.FlagToken] = "mutated"
	again, _ := repo.Get(ctx, "sid-1")
	if again[models.FlagToken] != "jwt-token" {
		t.Error("Get should return a copy of the stored flags")
	}
}

func TestMemorySessionFlagRepository_UnknownSession(t *testing.T) {
	repo := repository.NewMemorySessionFlagRepo()

	flags, err := repo.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(flags) != 0 {
		t.Errorf("Expected no flags, got %v", flags)
	}
}

func TestMemorySessionFlagRepository_DeleteRemovesBothFlags(t *testing.T) {
	repo := repository.NewMemorySessionFlagRepo()
	ctx := context.Background()

	repo.Set(ctx, "sid-1", map[string]string{models.FlagToken: "t", models.FlagRole: "user"})
	repo.Set(ctx, "sid-2", map[string]string{models.FlagToken: "other"})

	if err := repo.Delete(ctx, "sid-1", models.FlagToken, models.FlagRole); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	flags, _ := repo.Get(ctx, "sid-1")
	if len(flags) != 0 {
		t.Errorf("Expected both flags removed, got %v", flags)
	}

	other, _ := repo.Get(ctx, "sid-2")
	if other[models.FlagToken] != "other" {
		t.Error("Delete must not touch other sessions")
	}
}

func TestMemorySessionFlagRepository_EmptySetIsNoop(t *testing.T) {
	repo := repository.NewMemorySessionFlagRepo()
	ctx := context.Background()

	if err := repo.Set(ctx, "sid-1", nil); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := repo.Delete(ctx, "sid-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
}

func TestMemorySessionFlagRepository_Prune(t *testing.T) {
	repo := repository.NewMemorySessionFlagRepo()
	ctx := context.Background()

	repo.Set(ctx, "sid-1", map[string]string{models.FlagToken: "t", models.FlagRole: "user"})

	n, err := repo.Prune(ctx, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if n != 0 {
		t.Errorf("Expected fresh session to be kept, pruned %d", n)
	}

	n, _ = repo.Prune(ctx, time.Now().Add(time.Hour))
	if n != 2 {
		t.Errorf("Expected both flags pruned, got %d", n)
	}
	flags, _ := repo.Get(ctx, "sid-1")
	if len(flags) != 0 {
		t.Errorf("Expected pruned session to be empty, got %v", flags)
	}

	// A pruned session can log in again
	repo.Set(ctx, "sid-1", map[string]string{models.FlagToken: "t2"})
	if flags, _ := repo.Get(ctx, "sid-1"); flags[models.FlagToken] != "t2" {
		t.Errorf("Expected new token after prune, got %v", flags)
	}
}
