package security

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fintrust/auth-service/internal/core/domain"
	"github.com/fintrust/auth-service/internal/core/ports"
)

const defaultTokenTTL = time.Hour

// accessClaims is the wire shape of an access token payload.
type accessClaims struct {
	UserID     string `json:"idUser"`
	IDDocument string `json:"idDocument"`
	RoleID     string `json:"idRole"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}

// JWTProvider signs and verifies HS256 access tokens. The key is read-only
// after construction and safe to share across concurrent verifications.
type JWTProvider struct {
	roles ports.RoleRepository
	key   []byte
	ttl   time.Duration
}

// NewJWTProvider builds a provider signing with secret for ttl-bounded
// tokens. A non-positive ttl falls back to one hour.
func NewJWTProvider(roles ports.RoleRepository, secret string, ttl time.Duration) *JWTProvider {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &JWTProvider{roles: roles, key: []byte(secret), ttl: ttl}
}

// Issue resolves the user's role by id and signs a token carrying the
// identity claims. Every valid user must have a role, so an unresolvable
// role id is a hard failure.
func (p *JWTProvider) Issue(ctx context.Context, user *domain.User) (*domain.Token, error) {
	role, err := p.roles.FindByID(ctx, user.RoleID)
	if err != nil {
		if errors.Is(err, domain.ErrEntityNotFound) {
			return nil, fmt.Errorf("role %s: %w", user.RoleID, err)
		}
		return nil, fmt.Errorf("resolve role: %w", err)
	}

	now := time.Now()
	claims := accessClaims{
		UserID:     user.ID,
		IDDocument: user.IDDocument,
		RoleID:     user.RoleID,
		Role:       role.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.key)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &domain.Token{
		AccessToken: signed,
		ExpiresIn:   int64(p.ttl / time.Second),
	}, nil
}

// Verify parses and cryptographically checks tokenString. Expiry is enforced
// here with no leeway: a token presented at or after its expires-at instant
// yields domain.ErrTokenExpired. Any signature or structure problem yields
// domain.ErrTokenInvalid. No store lookup happens at this step.
func (p *JWTProvider) Verify(tokenString string) (*domain.Claims, error) {
	var claims accessClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return p.key, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	return &domain.Claims{
		UserID:     claims.UserID,
		Email:      claims.Subject,
		IDDocument: claims.IDDocument,
		RoleID:     claims.RoleID,
	}, nil
}
