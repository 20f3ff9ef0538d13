package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"ritualplanner/internal/cache"
)

const (
	otpKeyPrefix = "recover_otp:"
	// OTPExpiry is how long a password-recovery code stays valid.
	OTPExpiry = 10 * time.Minute
)

// OTPStoreInterface defines the interface for password-recovery code storage.
type OTPStoreInterface interface {
	Issue(ctx context.Context, email string) (string, error)
	Verify(ctx context.Context, email, code string) (bool, error)
	Delete(ctx context.Context, email string) error
}

// OTPStore issues and verifies one-time recovery codes backed by Redis with
// TTL. Re-issuing overwrites the previous code, which doubles as resend.
type OTPStore struct {
	cache *cache.Client
}

var _ OTPStoreInterface = (*OTPStore)(nil)

// NewOTPStore creates a new OTP store.
func NewOTPStore(cache *cache.Client) *OTPStore {
	return &OTPStore{cache: cache}
}

// Issue generates a 6-digit code for the email and stores it with TTL.
func (s *OTPStore) Issue(ctx context.Context, email string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	code := fmt.Sprintf("%06d", n.Int64())

	if err := s.cache.Set(ctx, otpKeyPrefix+email, []byte(code), OTPExpiry); err != nil {
		return "", fmt.Errorf("store otp: %w", err)
	}
	return code, nil
}

// Verify reports whether the code matches the stored one for the email.
// A missing or expired code verifies as false, never as an error.
func (s *OTPStore) Verify(ctx context.Context, email, code string) (bool, error) {
	stored, err := s.cache.Get(ctx, otpKeyPrefix+email)
	if err != nil || stored == nil {
		return false, nil
	}
	return string(stored) == code, nil
}

// Delete removes the stored code once it has been consumed.
func (s *OTPStore) Delete(ctx context.Context, email string) error {
	return s.cache.Delete(ctx, otpKeyPrefix+email)
}
