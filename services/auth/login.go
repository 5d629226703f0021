package auth

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"servicelink/models"
	"servicelink/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var phonePattern = regexp.MustCompile(`^\+[0-9]{10,15}$`)

func (s *DefaultAuthService) StartSession(ctx context.Context) (*Session, error) {
	now := s.now()
	sess := &Session{ID: uuid.New().String(), Phase: PhaseAnonymous, CreatedAt: now}
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// SelectRole records the role the visitor will authenticate as. Re-selecting before
// verification restarts the challenge.
func (s *DefaultAuthService) SelectRole(ctx context.Context, sessionID, role string) (*Session, error) {
	r, err := models.ParseRole(role)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.store.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Authenticated {
		return nil, utils.NewAuthError("already signed in; log out to switch roles")
	}
	if sess.Phase == PhaseOTPPending {
		if err := s.store.deleteOTP(ctx, sessionID); err != nil {
			return nil, err
		}
	}
	sess.SelectedRole = r
	sess.Phase = PhaseRoleSelected
	sess.Contact = Contact{}
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func validateCredentials(c Credentials) (Contact, error) {
	contact := Contact{Phone: strings.TrimSpace(c.Phone), Email: strings.TrimSpace(strings.ToLower(c.Email))}
	if contact.Phone == "" && contact.Email == "" {
		return Contact{}, utils.NewAuthError("a phone number or email is required")
	}
	if contact.Phone != "" && !phonePattern.MatchString(contact.Phone) {
		return Contact{}, utils.NewValidationError("phone must be + followed by 10 to 15 digits", "phone")
	}
	if contact.Email != "" && !models.ValidEmail(contact.Email) {
		return Contact{}, utils.NewValidationError("invalid email", "email")
	}
	return contact, nil
}

// Login dispatches a one-time code to the given channel and awaits verification.
func (s *DefaultAuthService) Login(ctx context.Context, sessionID string, creds Credentials) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.store.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.SelectedRole == "" {
		return nil, utils.NewAuthError("select a role before logging in")
	}
	if sess.Authenticated {
		return nil, utils.NewAuthError("already signed in")
	}
	if creds.Role != "" && creds.Role != sess.SelectedRole {
		return nil, utils.NewAuthError("credentials role %s does not match selected role %s", creds.Role, sess.SelectedRole)
	}
	contact, err := validateCredentials(creds)
	if err != nil {
		return nil, err
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		return nil, err
	}
	hash, err := utils.HashOTP(code)
	if err != nil {
		return nil, err
	}
	if err := s.store.saveOTP(ctx, sessionID, hash, s.Opts.OTPTTL); err != nil {
		return nil, err
	}
	channel, dest := contact.Channel()
	if err := s.Sender.SendOTP(ctx, channel, dest, code); err != nil {
		s.Logger.Error("Failed to dispatch OTP", zap.String("channel", channel), zap.Error(err))
		return nil, err
	}

	sess.Contact = contact
	sess.Phase = PhaseOTPPending
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// VerifyOTP checks the code and binds the account of the selected role, creating it on
// first sign-in.
func (s *DefaultAuthService) VerifyOTP(ctx context.Context, sessionID, otp string) (*AuthResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.store.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.SelectedRole == "" {
		return nil, utils.NewAuthError("role not selected")
	}
	if sess.Authenticated {
		return nil, utils.NewAuthError("already signed in")
	}
	if sess.Phase != PhaseOTPPending {
		return nil, utils.NewAuthError("no code requested; log in first")
	}
	otp = strings.TrimSpace(otp)
	if !utils.ValidOTPFormat(otp) {
		return nil, utils.NewValidationError("code must be 4 digits", "otp")
	}
	if s.Opts.StrictOTP {
		hash, err := s.store.getOTP(ctx, sessionID)
		if err != nil && !errors.Is(err, utils.ErrKeyNotFound) {
			return nil, err
		}
		if hash == "" || !utils.CompareOTP(hash, otp) {
			return nil, utils.NewAuthError("invalid or expired code")
		}
	}

	acct, err := s.bindAccount(ctx, *sess)
	if err != nil {
		return nil, err
	}
	token, err := s.Tokens.GenerateToken(utils.SessionClaims{
		AccountID: acct.ID(),
		SessionID: sess.ID,
		Role:      string(acct.Role()),
	})
	if err != nil {
		s.Logger.Error("Failed to generate auth token", zap.Error(err))
		return nil, err
	}

	if err := s.store.saveTokenHash(ctx, sessionID, utils.HashToken(token), s.Opts.SessionTTL); err != nil {
		return nil, err
	}
	if err := s.store.deleteOTP(ctx, sessionID); err != nil {
		s.Logger.Warn("Failed to clear OTP", zap.Error(err))
	}
	sess.AccountID = acct.ID()
	sess.Authenticated = true
	sess.Phase = PhaseAuthenticated
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	s.Logger.Info("Session authenticated", zap.String("sessionID", sess.ID), zap.String("accountID", acct.ID()))
	return &AuthResult{Session: *sess, Account: *acct, Token: token}, nil
}

func (s *DefaultAuthService) bindAccount(ctx context.Context, sess Session) (*models.Account, error) {
	acct, err := s.Accounts.FindByContact(ctx, sess.SelectedRole, sess.Contact.Phone, sess.Contact.Email)
	if err == nil {
		return acct, nil
	}
	if !utils.IsNotFound(err) {
		return nil, err
	}
	created := models.NewAccount(models.User{
		ID:        uuid.New().String(),
		Phone:     sess.Contact.Phone,
		Email:     sess.Contact.Email,
		Role:      sess.SelectedRole,
		CreatedAt: s.now(),
		Verified:  true,
	})
	if err := s.Accounts.Create(ctx, created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Logout clears the account binding, authentication and role in one step.
func (s *DefaultAuthService) Logout(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.deleteSession(ctx, sessionID)
}

func (s *DefaultAuthService) Authenticate(ctx context.Context, token string) (*Session, *models.Account, error) {
	claims, err := s.Tokens.ParseToken(token)
	if err != nil {
		return nil, nil, utils.NewAuthError("invalid or expired token")
	}
	sess, err := s.store.getSession(ctx, claims.SessionID)
	if err != nil {
		return nil, nil, err
	}
	if !sess.Authenticated || sess.AccountID != claims.AccountID {
		return nil, nil, utils.NewAuthError("session is no longer active")
	}
	hash, err := s.store.tokenHash(ctx, sess.ID)
	if err != nil && !errors.Is(err, utils.ErrKeyNotFound) {
		return nil, nil, err
	}
	if hash != utils.HashToken(token) {
		return nil, nil, utils.NewAuthError("token has been superseded")
	}
	acct, err := s.Accounts.GetByID(ctx, sess.AccountID)
	if err != nil {
		if utils.IsNotFound(err) {
			return nil, nil, utils.NewAuthError("account no longer exists")
		}
		return nil, nil, err
	}
	return sess, acct, nil
}
