package accountRepo

import (
	"context"
	"sync"

	"servicelink/models"
	"servicelink/utils"
)

// MemoryAccountRepo keeps accounts in process.
type MemoryAccountRepo struct {
	mu       sync.RWMutex
	accounts map[string]models.Account
}

func NewMemoryAccountRepo(seed []models.Account) *MemoryAccountRepo {
	r := &MemoryAccountRepo{accounts: make(map[string]models.Account, len(seed))}
	for _, a := range seed {
		r.accounts[a.ID()] = a.Clone()
	}
	return r
}

func (r *MemoryAccountRepo) GetByID(ctx context.Context, id string) (*models.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, utils.NewNotFoundError("account", id)
	}
	out := a.Clone()
	return &out, nil
}

func (r *MemoryAccountRepo) FindByContact(ctx context.Context, role models.Role, phone, email string) (*models.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var byEmail *models.Account
	for _, a := range r.accounts {
		if a.Role() != role {
			continue
		}
		base := a.Base()
		if phone != "" && base.Phone == phone {
			out := a.Clone()
			return &out, nil
		}
		if email != "" && byEmail == nil && base.Email == email {
			c := a.Clone()
			byEmail = &c
		}
	}
	if byEmail != nil {
		return byEmail, nil
	}
	return nil, utils.NewNotFoundError("account", contactKey(phone, email))
}

func (r *MemoryAccountRepo) Create(ctx context.Context, account models.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := account.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	id := account.ID()
	if _, exists := r.accounts[id]; exists {
		return utils.NewStateError("account %s already exists", id)
	}
	r.accounts[id] = account.Clone()
	return nil
}

func (r *MemoryAccountRepo) Update(ctx context.Context, account models.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := account.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	id := account.ID()
	existing, ok := r.accounts[id]
	if !ok {
		return utils.NewNotFoundError("account", id)
	}
	if existing.Role() != account.Role() {
		return utils.NewValidationError("role cannot change after creation", "role")
	}
	r.accounts[id] = account.Clone()
	return nil
}

func contactKey(phone, email string) string {
	if phone != "" {
		return phone
	}
	return email
}
