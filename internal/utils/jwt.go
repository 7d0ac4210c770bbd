package utils

import (
	"errors" // Error construction and wrapping
	"time"   // Token expiry

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// ErrTokenInvalid is returned for any token that fails verification
var ErrTokenInvalid = errors.New("token invalid")

// Claims carried by an access token; Subject is the user's email
type Claims struct {
	jwt.RegisteredClaims // Standard JWT claims
}

// TokenService issues and verifies HS256 access tokens
type TokenService struct {
	secret []byte           // HMAC signing key
	ttl    time.Duration    // Lifetime of an issued token
	now    func() time.Time // Clock, replaceable in tests
}

// NewTokenService creates a token service with the given secret and lifetime
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock returns a copy of the service that reads time from now
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	cp := *s
	cp.now = now
	return &cp
}

// Issue creates a signed token binding subject to an expiry
func (s *TokenService) Issue(subject string) (string, time.Time, error) {
	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,                       // User email
			ExpiresAt: jwt.NewNumericDate(expiresAt), // Expiry
			IssuedAt:  jwt.NewNumericDate(issuedAt),  // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	signed, err := token.SignedString(s.secret)                // Sign the token with the secret
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify parses and validates a token string.
// Every failure (signature, structure, algorithm, expiry, missing subject) collapses into ErrTokenInvalid.
func (s *TokenService) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return s.secret, nil // Return the secret key for validation
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, ErrTokenInvalid
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
