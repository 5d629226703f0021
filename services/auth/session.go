package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"servicelink/models"
	"servicelink/utils"
)

// Phase is the stored part of the login state machine. Profile completeness is derived
// from the bound account.
type Phase string

const (
	PhaseAnonymous     Phase = "anonymous"
	PhaseRoleSelected  Phase = "role_selected"
	PhaseOTPPending    Phase = "otp_pending"
	PhaseAuthenticated Phase = "authenticated"
)

// Contact is the channel an OTP was sent to.
type Contact struct {
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// Channel names the delivery channel, preferring phone.
func (c Contact) Channel() (string, string) {
	if c.Phone != "" {
		return "sms", c.Phone
	}
	return "email", c.Email
}

type Session struct {
	ID            string      `json:"id"`
	Phase         Phase       `json:"phase"`
	SelectedRole  models.Role `json:"selectedRole,omitempty"`
	Contact       Contact     `json:"contact"`
	AccountID     string      `json:"accountId,omitempty"`
	Authenticated bool        `json:"authenticated"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// Credentials start the OTP challenge. Role, when set, must equal the selected role.
type Credentials struct {
	Phone string      `json:"phone"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

// State is what the presentation layer needs to route a session.
type State struct {
	Session         Session         `json:"session"`
	Account         *models.Account `json:"account,omitempty"`
	ProfileComplete bool            `json:"profileComplete"`
	Next            string          `json:"next"`
}

// AuthResult is returned by a successful OTP verification.
type AuthResult struct {
	Session Session        `json:"session"`
	Account models.Account `json:"account"`
	Token   string         `json:"token"`
}

// nextRoute maps a session to the screen it should land on.
func nextRoute(s Session, acct *models.Account) string {
	switch {
	case s.SelectedRole == "":
		return "/role"
	case s.Phase == PhaseRoleSelected:
		return "/login"
	case s.Phase == PhaseOTPPending:
		return "/verify"
	case acct == nil:
		return "/role"
	case !acct.ProfileComplete():
		return fmt.Sprintf("/%s/setup-profile", acct.Role())
	default:
		return fmt.Sprintf("/%s/dashboard", acct.Role())
	}
}

const (
	sessionKeyPrefix = "session:"
	otpKeyPrefix     = "otp:"
	tokenKeyPrefix   = "token:"
)

// store persists sessions and token hashes in kv. OTP hashes go to otp when set.
type store struct {
	kv  utils.KVStore
	otp utils.KVStore
}

func (s store) otpKV() utils.KVStore {
	if s.otp != nil {
		return s.otp
	}
	return s.kv
}

func (s store) getSession(ctx context.Context, id string) (*Session, error) {
	b, err := s.kv.Get(ctx, sessionKeyPrefix+id)
	if errors.Is(err, utils.ErrKeyNotFound) {
		return nil, utils.NewAuthError("session not found or expired")
	}
	if err != nil {
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return nil, fmt.Errorf("failed to parse session: %w", err)
	}
	return &sess, nil
}

func (s store) saveSession(ctx context.Context, sess Session, ttl time.Duration) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return s.kv.Set(ctx, sessionKeyPrefix+sess.ID, b, ttl)
}

func (s store) deleteSession(ctx context.Context, id string) error {
	if err := s.deleteOTP(ctx, id); err != nil {
		return err
	}
	return s.kv.Del(ctx, sessionKeyPrefix+id, tokenKeyPrefix+id)
}

// saveTokenHash records the only token hash accepted for the session.
func (s store) saveTokenHash(ctx context.Context, sessionID, hash string, ttl time.Duration) error {
	return s.kv.Set(ctx, tokenKeyPrefix+sessionID, []byte(hash), ttl)
}

func (s store) tokenHash(ctx context.Context, sessionID string) (string, error) {
	b, err := s.kv.Get(ctx, tokenKeyPrefix+sessionID)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s store) saveOTP(ctx context.Context, sessionID, hash string, ttl time.Duration) error {
	return s.otpKV().Set(ctx, otpKeyPrefix+sessionID, []byte(hash), ttl)
}

func (s store) getOTP(ctx context.Context, sessionID string) (string, error) {
	b, err := s.otpKV().Get(ctx, otpKeyPrefix+sessionID)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s store) deleteOTP(ctx context.Context, sessionID string) error {
	return s.otpKV().Del(ctx, otpKeyPrefix+sessionID)
}
