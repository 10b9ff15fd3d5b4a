package auth

import (
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain/models"
)

// TokenIssuer issues and verifies HS256 access tokens for API sessions.
type TokenIssuer struct {
	secret []byte
	expiry time.Duration
	logger *slog.Logger
}

// NewTokenIssuer creates a token issuer with a shared signing secret.
func NewTokenIssuer(secret string, expiry time.Duration, logger *slog.Logger) (*TokenIssuer, error) {
	if secret == "" {
		return nil, errors.New("JWT secret cannot be empty")
	}

	return &TokenIssuer{
		secret: []byte(secret),
		expiry: expiry,
		logger: logger,
	}, nil
}

// Issue creates a signed token for the given user.
func (t *TokenIssuer) Issue(user *models.User) (string, error) {
	now := time.Now()
	claims := &models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.expiry)),
		},
		Email:   user.Email,
		Name:    user.Name,
		Role:    user.Role,
		Company: user.Company,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", err
	}

	return signed, nil
}

// Verify validates a token string and extracts its claims.
// Returns an error if the token is invalid, expired, or has incorrect claims.
func (t *TokenIssuer) Verify(tokenString string) (*models.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.Claims{}, func(token *jwt.Token) (any, error) {
		// Prevent algorithm confusion attacks, only HS256 is issued here
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	})
	if err != nil {
		t.logger.Debug("token parse failed", "error", err.Error())
		return nil, domain.ErrUnauthorized
	}

	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(*models.Claims)
	if !ok {
		t.logger.Error("failed to extract claims from token")
		return nil, domain.ErrUnauthorized
	}

	if claims.Subject == "" {
		t.logger.Debug("token missing subject claim")
		return nil, domain.ErrUnauthorized
	}

	if !models.ValidRole(claims.Role) {
		t.logger.Warn("token has unknown role", "role", claims.Role, "user_id", claims.Subject)
		return nil, domain.ErrUnauthorized
	}

	return claims, nil
}
