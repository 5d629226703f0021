package utils

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// OTPLength is the number of digits in a login code.
const OTPLength = 4

// GenerateOTP returns a random numeric code of OTPLength digits.
func GenerateOTP() (string, error) {
	max := big.NewInt(10000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("failed to generate random code: %w", err)
	}
	return fmt.Sprintf("%0*d", OTPLength, n.Int64()), nil
}

// ValidOTPFormat reports whether code is exactly OTPLength ASCII digits.
func ValidOTPFormat(code string) bool {
	if len(code) != OTPLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}

// HashOTP bcrypt-hashes a code for storage.
func HashOTP(code string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.MinCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash code: %w", err)
	}
	return string(h), nil
}

// CompareOTP reports whether code matches a stored hash.
func CompareOTP(hash, code string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil
}

// OTPSender delivers a one-time code over a contact channel.
type OTPSender interface {
	SendOTP(ctx context.Context, channel, destination, code string) error
}

// LogOTPSender logs outgoing codes instead of delivering them.
// Replace with an SMS/email integration in production.
type LogOTPSender struct {
	Logger *zap.Logger
}

func (s LogOTPSender) SendOTP(_ context.Context, channel, destination, code string) error {
	s.Logger.Info("Sending OTP",
		zap.String("channel", channel),
		zap.String("destination", destination),
		zap.String("code", code),
	)
	return nil
}
