package accountRepo

import (
	"context"
	"testing"

	"servicelink/models"
	"servicelink/utils"
)

func TestMemoryAccountRepo(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("find by contact is scoped to the role", func(t *testing.T) {
		t.Parallel()
		repo := NewMemoryAccountRepo(SeedAccounts())

		acct, err := repo.FindByContact(ctx, models.RoleClient, "+91987654321", "")
		if err != nil || acct.ID() != "client123" {
			t.Fatalf("expected client123, got %v (%v)", acct, err)
		}
		if _, err := repo.FindByContact(ctx, models.RoleWorker, "+91987654321", ""); !utils.IsNotFound(err) {
			t.Fatalf("expected NotFoundError for the other role, got %v", err)
		}
		byEmail, err := repo.FindByContact(ctx, models.RoleWorker, "", "mike@example.com")
		if err != nil || byEmail.ID() != "worker456" {
			t.Fatalf("expected worker456 by email, got %v (%v)", byEmail, err)
		}
	})

	t.Run("create rejects duplicates", func(t *testing.T) {
		t.Parallel()
		repo := NewMemoryAccountRepo(nil)

		acct := models.NewAccount(models.User{ID: "u1", Role: models.RoleClient})
		if err := repo.Create(ctx, acct); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if err := repo.Create(ctx, acct); err == nil {
			t.Fatal("expected duplicate create to fail")
		}
	})

	t.Run("update cannot change role", func(t *testing.T) {
		t.Parallel()
		repo := NewMemoryAccountRepo(SeedAccounts())

		worker := models.NewAccount(models.User{ID: "client123", Role: models.RoleWorker})
		if err := repo.Update(ctx, worker); err == nil {
			t.Fatal("expected role change to be rejected")
		}
		missing := models.NewAccount(models.User{ID: "ghost", Role: models.RoleClient})
		if err := repo.Update(ctx, missing); !utils.IsNotFound(err) {
			t.Fatalf("expected NotFoundError, got %v", err)
		}
	})
}

func TestSeedWorkerAccount_RatingMatchesReviews(t *testing.T) {
	t.Parallel()

	w := SeedWorkerAccount()
	if len(w.Reviews) == 0 {
		t.Fatal("expected the demo worker to carry the reviews behind its rating")
	}
	if got := models.AverageRating(w.Reviews); got != w.Rating {
		t.Fatalf("expected rating %v to match the reviews, got %v", w.Rating, got)
	}
}
