package auth

import (
	"encoding/hex"
	"encoding/json/v2"
	"errors"
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/technozen/technozen-server/internal/id"
)

const (
	tokenIssuer   = "technozen-server"
	tokenAudience = "technozen-client"
)

// ErrMissingEmail is returned when a token is requested without an email claim.
var ErrMissingEmail = errors.New("claims must include an email")

// reservedClaims are set by the service and must not be overridden by
// caller-supplied claims: a caller-controlled "exp" would mint tokens
// with an arbitrary lifetime.
var reservedClaims = map[string]struct{}{
	"iss": {},
	"sub": {},
	"aud": {},
	"exp": {},
	"nbf": {},
	"iat": {},
	"jti": {},
}

// TokenService handles PASETO token generation and verification.
// Tokens carry caller-supplied claims with a fixed expiry; there is
// no refresh mechanism and no revocation list.
type TokenService struct {
	symmetricKey  paseto.V4SymmetricKey
	tokenDuration time.Duration
}

// NewTokenService creates a new token service with the given configuration.
func NewTokenService(keyHex string, tokenDuration time.Duration) (*TokenService, error) {
	if len(keyHex) != keyHexLength {
		return nil, fmt.Errorf("PASETO v4 key must be exactly %d hex characters (%d bytes), got %d", keyHexLength, keyLength, len(keyHex))
	}

	keyBytes, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid hex string for PASETO key: %w", err)
	}

	key, err := paseto.V4SymmetricKeyFromBytes(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to create PASETO symmetric key: %w", err)
	}

	return &TokenService{
		symmetricKey:  key,
		tokenDuration: tokenDuration,
	}, nil
}

// Issue creates a new PASETO v4.local token carrying the given claims.
// The claims must include a non-empty "email"; any other fields are
// carried through opaquely, except the registered claim names (iss, sub,
// aud, exp, nbf, iat, jti), which are always set by the service and
// silently dropped from the input.
func (s *TokenService) Issue(claims map[string]any) (string, error) {
	email, _ := claims["email"].(string)
	if email == "" {
		return "", ErrMissingEmail
	}

	now := time.Now()

	token := paseto.NewToken()
	token.SetIssuer(tokenIssuer)
	token.SetSubject(email)
	token.SetAudience(tokenAudience)
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(now.Add(s.tokenDuration))

	tokenID, err := id.Generate("token")
	if err != nil {
		return "", fmt.Errorf("generate token ID: %w", err)
	}
	token.SetJti(tokenID)

	for k, v := range claims {
		if _, reserved := reservedClaims[k]; reserved {
			continue
		}
		//nolint:errcheck // Token.Set only errors on invalid types, which json bodies cannot produce
		_ = token.Set(k, v)
	}

	return token.V4Encrypt(s.symmetricKey, nil), nil
}

// Verify verifies and parses a PASETO access token.
// Returns the claims if valid, or an error if the token is malformed,
// the signature does not check out, or the expiry has elapsed.
func (s *TokenService) Verify(tokenString string) (*AccessClaims, error) {
	parser := paseto.NewParser()
	parser.AddRule(paseto.ForAudience(tokenAudience))
	parser.AddRule(paseto.IssuedBy(tokenIssuer))
	parser.AddRule(paseto.NotExpired())
	parser.AddRule(paseto.ValidAt(time.Now()))

	token, err := parser.ParseV4Local(s.symmetricKey, tokenString, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	var claims AccessClaims
	if err := json.Unmarshal(token.ClaimsJSON(), &claims); err != nil {
		return nil, fmt.Errorf("parse claims: %w", err)
	}

	if claims.Email == "" {
		return nil, errors.New("token missing email claim")
	}

	return &claims, nil
}

// TokenDuration returns the configured token lifetime.
func (s *TokenService) TokenDuration() time.Duration {
	return s.tokenDuration
}
