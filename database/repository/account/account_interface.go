package accountRepo

import (
	"context"

	"servicelink/models"
)

// AccountRepository defines methods for account data access.
type AccountRepository interface {
	// GetByID returns a NotFoundError when no account has the id.
	GetByID(ctx context.Context, id string) (*models.Account, error)
	// FindByContact looks an account up by role and phone, falling back to email.
	FindByContact(ctx context.Context, role models.Role, phone, email string) (*models.Account, error)
	// Create inserts a new account.
	Create(ctx context.Context, account models.Account) error
	// Update replaces an existing account.
	Update(ctx context.Context, account models.Account) error
}
