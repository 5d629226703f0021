package auth

import (
	"context"

	"servicelink/models"
	"servicelink/utils"

	"go.uber.org/zap"
)

// signedIn loads the account bound to an authenticated session.
func (s *DefaultAuthService) signedIn(ctx context.Context, sessionID string) (*Session, *models.Account, error) {
	sess, err := s.store.getSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if !sess.Authenticated || sess.AccountID == "" {
		return nil, nil, utils.NewAuthError("not signed in")
	}
	acct, err := s.Accounts.GetByID(ctx, sess.AccountID)
	if err != nil {
		return nil, nil, err
	}
	return sess, acct, nil
}

// CompleteProfile applies the typed update matching the account's role.
func (s *DefaultAuthService) CompleteProfile(ctx context.Context, sessionID string, update models.ProfileUpdate) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, acct, err := s.signedIn(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if (update.Client == nil) == (update.Worker == nil) {
		return nil, utils.NewValidationError("profile update must carry exactly one of client or worker", "client", "worker")
	}

	switch {
	case acct.Client != nil:
		if update.Client == nil {
			return nil, utils.NewValidationError("worker fields sent for a client account", "worker")
		}
		p, err := update.Client.Apply(*acct.Client)
		if err != nil {
			return nil, err
		}
		acct.Client = &p
	case acct.Worker != nil:
		if update.Worker == nil {
			return nil, utils.NewValidationError("client fields sent for a worker account", "client")
		}
		p, err := update.Worker.Apply(*acct.Worker)
		if err != nil {
			return nil, err
		}
		acct.Worker = &p
	}

	if err := s.Accounts.Update(ctx, *acct); err != nil {
		return nil, err
	}
	if acct.Worker != nil && acct.ProfileComplete() {
		if err := s.publishWorker(ctx, *acct.Worker); err != nil {
			return nil, err
		}
	}
	return acct, nil
}

// publishWorker lists a worker in the directory. Reviews, rating and verification are
// owned by the directory copy and survive profile edits.
func (s *DefaultAuthService) publishWorker(ctx context.Context, w models.WorkerProfile) error {
	listed, err := s.Workers.GetByID(ctx, w.ID)
	switch {
	case err == nil:
		w.Reviews = listed.Reviews
		w.Rating = listed.Rating
		w.VerifiedWorker = listed.VerifiedWorker
	case !utils.IsNotFound(err):
		return err
	}
	if err := s.Workers.Upsert(ctx, w); err != nil {
		s.Logger.Error("Failed to publish worker profile", zap.String("workerID", w.ID), zap.Error(err))
		return err
	}
	return nil
}

func (s *DefaultAuthService) mutateAddresses(ctx context.Context, sessionID string, fn func(p *models.ClientProfile) error) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, acct, err := s.signedIn(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if acct.Client == nil {
		return nil, utils.NewValidationError("only client accounts have addresses", "role")
	}
	if err := fn(acct.Client); err != nil {
		return nil, err
	}
	if err := s.Accounts.Update(ctx, *acct); err != nil {
		return nil, err
	}
	return acct, nil
}

func (s *DefaultAuthService) AddAddress(ctx context.Context, sessionID string, addr models.Address) (*models.Account, error) {
	return s.mutateAddresses(ctx, sessionID, func(p *models.ClientProfile) error {
		_, err := p.AddAddress(addr)
		return err
	})
}

func (s *DefaultAuthService) RemoveAddress(ctx context.Context, sessionID, addressID string) (*models.Account, error) {
	return s.mutateAddresses(ctx, sessionID, func(p *models.ClientProfile) error {
		return p.RemoveAddress(addressID)
	})
}

func (s *DefaultAuthService) SetDefaultAddress(ctx context.Context, sessionID, addressID string) (*models.Account, error) {
	return s.mutateAddresses(ctx, sessionID, func(p *models.ClientProfile) error {
		return p.SetDefaultAddress(addressID)
	})
}

func (s *DefaultAuthService) Current(ctx context.Context, sessionID string) (*State, error) {
	sess, err := s.store.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	state := &State{Session: *sess}
	if sess.Authenticated && sess.AccountID != "" {
		acct, err := s.Accounts.GetByID(ctx, sess.AccountID)
		if err != nil && !utils.IsNotFound(err) {
			return nil, err
		}
		if acct != nil {
			state.Account = acct
			state.ProfileComplete = acct.ProfileComplete()
		}
	}
	state.Next = nextRoute(*sess, state.Account)
	return state, nil
}

// VerifyWorker sets the verification flag on the directory listing and the account.
func (s *DefaultAuthService) VerifyWorker(ctx context.Context, workerID string, verified bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	listedErr := s.Workers.SetVerified(ctx, workerID, verified)
	if listedErr != nil && !utils.IsNotFound(listedErr) {
		return listedErr
	}

	acct, err := s.Accounts.GetByID(ctx, workerID)
	switch {
	case err == nil && acct.Worker != nil:
		acct.Worker.VerifiedWorker = verified
		if err := s.Accounts.Update(ctx, *acct); err != nil {
			return err
		}
	case err == nil:
		return utils.NewValidationError("account is not a worker", "id")
	case !utils.IsNotFound(err):
		return err
	case listedErr != nil:
		return utils.NewNotFoundError("worker", workerID)
	}
	s.Logger.Info("Worker verification updated", zap.String("workerID", workerID), zap.Bool("verified", verified))
	return nil
}
