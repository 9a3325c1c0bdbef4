package jwt

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for malformed tokens, bad signatures, and
// tokens signed with an unexpected algorithm.
var ErrInvalidToken = errors.New("invalid token")

// JWTService issues and verifies HS256 bearer tokens. The same key signs
// and verifies (symmetric).
type JWTService struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewJWTService creates a JWT service. The secret is base64-encoded; the
// decoded bytes are used as the raw HMAC key.
func NewJWTService(secretBase64 string, ttl time.Duration) (*JWTService, error) {
	key, err := base64.StdEncoding.DecodeString(secretBase64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode JWT secret: %w", err)
	}
	if len(key) == 0 {
		return nil, errors.New("JWT secret must not be empty")
	}

	return &JWTService{
		key: key,
		ttl: ttl,
		now: time.Now,
	}, nil
}

// GenerateToken issues a signed token with the user's email as subject,
// an issued-at of now and an expiration of now+TTL, plus any extra claims.
// Extra claims cannot override the registered ones.
func (s *JWTService) GenerateToken(email string, extraClaims map[string]interface{}) (string, error) {
	now := s.now()
	claims := jwtlib.MapClaims{
		"sub": email,
		"iat": now.Unix(),
		"exp": now.Add(s.ttl).Unix(),
	}
	for name, value := range extraClaims {
		if _, reserved := claims[name]; !reserved {
			claims[name] = value
		}
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ExtractEmail verifies the token signature and returns the subject claim.
func (s *JWTService) ExtractEmail(tokenStr string) (string, error) {
	claims, err := s.parseClaims(tokenStr)
	if err != nil {
		return "", err
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return "", ErrInvalidToken
	}
	return subject, nil
}

// IsTokenValid reports whether the token belongs to the given email and has
// not expired. An expired but well-signed token is invalid, not an error.
func (s *JWTService) IsTokenValid(tokenStr, email string) bool {
	claims, err := s.parseClaims(tokenStr)
	if err != nil {
		return false
	}

	subject, err := claims.GetSubject()
	if err != nil || subject != email {
		return false
	}

	expiration, err := claims.GetExpirationTime()
	if err != nil || expiration == nil {
		return false
	}
	return s.now().Before(expiration.Time)
}

// parseClaims verifies the signature only. Expiry is checked separately in
// IsTokenValid so that expired tokens are reported as invalid, not as errors.
func (s *JWTService) parseClaims(tokenStr string) (jwtlib.MapClaims, error) {
	token, err := jwtlib.Parse(tokenStr,
		func(t *jwtlib.Token) (interface{}, error) {
			return s.key, nil
		},
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithoutClaimsValidation(),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
