package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/freelance-directory/internal/domain"
)

var (
	// ErrInvalidSignature means the token was tampered with, malformed or minted for another purpose.
	ErrInvalidSignature = errors.New("token signature invalid")
	// ErrTokenExpired means the signature is valid but older than the allowed max age.
	ErrTokenExpired = errors.New("token expired")
)

// Signer encodes a string payload into a tamper-evident, timestamped token.
// Each purpose derives its own HMAC key from the shared secret.
type Signer struct {
	key     []byte
	purpose string
	now     func() time.Time
}

// SignerOption customises a Signer.
type SignerOption func(*Signer)

// WithClock overrides the time source used for issuing and checking tokens.
func WithClock(now func() time.Time) SignerOption {
	return func(s *Signer) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSigner builds a signer for one token purpose.
func NewSigner(secret string, purpose domain.TokenPurpose, opts ...SignerOption) *Signer {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte("freelance.signer." + string(purpose)))

	s := &Signer{
		key:     mac.Sum(nil),
		purpose: string(purpose),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Encode signs payload together with the current time.
func (s *Signer) Encode(payload string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:  payload,
		Audience: jwt.ClaimStrings{s.purpose},
		IssuedAt: jwt.NewNumericDate(s.now()),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Decode verifies token and returns its payload. The payload is never
// returned unless the signature checks out and the token is at most maxAge old.
// iat has whole-second precision, so the age is measured in whole seconds too:
// a token is never rejected early and may be accepted up to one second late.
func (s *Signer) Decode(token string, maxAge time.Duration) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(s.purpose),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	if claims.IssuedAt == nil {
		return "", ErrInvalidSignature
	}
	if s.now().Truncate(time.Second).Sub(claims.IssuedAt.Time) > maxAge {
		return "", ErrTokenExpired
	}
	return claims.Subject, nil
}
