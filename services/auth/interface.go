package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	accountRepo "servicelink/database/repository/account"
	workerRepo "servicelink/database/repository/worker"
	"servicelink/models"
	"servicelink/utils"

	"go.uber.org/zap"
)

// AuthService owns visitor sessions, the OTP challenge and the bound account.
type AuthService interface {
	StartSession(ctx context.Context) (*Session, error)
	SelectRole(ctx context.Context, sessionID, role string) (*Session, error)
	Login(ctx context.Context, sessionID string, creds Credentials) (*Session, error)
	VerifyOTP(ctx context.Context, sessionID, otp string) (*AuthResult, error)
	CompleteProfile(ctx context.Context, sessionID string, update models.ProfileUpdate) (*models.Account, error)
	AddAddress(ctx context.Context, sessionID string, addr models.Address) (*models.Account, error)
	RemoveAddress(ctx context.Context, sessionID, addressID string) (*models.Account, error)
	SetDefaultAddress(ctx context.Context, sessionID, addressID string) (*models.Account, error)
	Current(ctx context.Context, sessionID string) (*State, error)
	Logout(ctx context.Context, sessionID string) error
	// Authenticate resolves a bearer token to its live session and account.
	Authenticate(ctx context.Context, token string) (*Session, *models.Account, error)
	// VerifyWorker is the verification authority's switch for verifiedWorker.
	VerifyWorker(ctx context.Context, workerID string, verified bool) error
}

// Options tune session lifetimes and OTP checking.
type Options struct {
	SessionTTL time.Duration
	OTPTTL     time.Duration
	// StrictOTP compares codes against the dispatched one. Otherwise any well-formed
	// code is accepted.
	StrictOTP bool
}

// DefaultAuthService is the production implementation.
type DefaultAuthService struct {
	Accounts accountRepo.AccountRepository
	Workers  workerRepo.WorkerRepository
	Tokens   *utils.TokenIssuer
	Sender   utils.OTPSender
	Logger   *zap.Logger
	Opts     Options

	store store
	now   func() time.Time
	// mu serializes read-modify-write cycles on sessions.
	mu sync.Mutex
}

func NewDefaultAuthService(
	kv utils.KVStore,
	accounts accountRepo.AccountRepository,
	workers workerRepo.WorkerRepository,
	tokens *utils.TokenIssuer,
	sender utils.OTPSender,
	logger *zap.Logger,
	opts Options,
) (*DefaultAuthService, error) {
	if kv == nil || accounts == nil || workers == nil || tokens == nil || sender == nil {
		return nil, fmt.Errorf("auth service initialization error: one or more dependencies are nil")
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 24 * time.Hour
	}
	if opts.OTPTTL <= 0 {
		opts.OTPTTL = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultAuthService{
		Accounts: accounts,
		Workers:  workers,
		Tokens:   tokens,
		Sender:   sender,
		Logger:   logger,
		Opts:     opts,
		store:    store{kv: kv},
		now:      time.Now,
	}, nil
}

// UseOTPStore keeps pending OTP challenges apart from the session records.
func (s *DefaultAuthService) UseOTPStore(kv utils.KVStore) {
	s.store.otp = kv
}

func (s *DefaultAuthService) save(ctx context.Context, sess *Session) error {
	sess.UpdatedAt = s.now()
	return s.store.saveSession(ctx, *sess, s.Opts.SessionTTL)
}
