// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"spark/config"
	"spark/internal/domain/entity"
	"spark/internal/domain/service"
	"spark/internal/errors"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// sessionClaims is the JWT claim set for both token kinds. Access tokens carry
// the session email; refresh tokens carry only the subject.
type sessionClaims struct {
	Email string `json:"email,omitempty"`
	Type  string `json:"type"`
	jwt.RegisteredClaims
}

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	accessSecret  string        // Secret key for signing access tokens.
	refreshSecret string        // Secret key for signing refresh tokens.
	accessTTL     time.Duration // Time-to-live for access tokens.
	refreshTTL    time.Duration // Time-to-live for refresh tokens.
}

// NewJWTService is the constructor for jwtService. Missing secrets are a
// startup misconfiguration and abort construction; silently accepting forged
// tokens is never an option.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" || cfg.SecretKey.Refresh == "" {
		return nil, errors.New("jwt secrets must be provided")
	}

	accessTTL := cfg.Token.AccessTTL
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	refreshTTL := cfg.Token.RefreshTTL
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}

	return &jwtService{
		accessSecret:  cfg.SecretKey.Access,
		refreshSecret: cfg.SecretKey.Refresh,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}, nil
}

// IssueAccessToken signs the session claims into a short-lived access token.
func (s *jwtService) IssueAccessToken(session entity.Session) (string, error) {
	return s.sign(session.UserID, session.Email, tokenTypeAccess, s.accessTTL, s.accessSecret)
}

// IssueRefreshToken signs the user id into a longer-lived refresh token.
// The caller owns persisting the token on the user's refresh-token list.
func (s *jwtService) IssueRefreshToken(userID uuid.UUID) (string, error) {
	return s.sign(userID, "", tokenTypeRefresh, s.refreshTTL, s.refreshSecret)
}

// VerifyAccessToken validates an access token and reconstructs the session claims.
func (s *jwtService) VerifyAccessToken(token string) (*entity.Session, error) {
	claims, err := s.parse(token, tokenTypeAccess, s.accessSecret)
	if err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, errors.Wrap(service.ErrInvalidToken, "malformed subject claim")
	}

	return &entity.Session{UserID: userID, Email: claims.Email}, nil
}

// VerifyRefreshToken validates a refresh token and returns the user id it was issued for.
func (s *jwtService) VerifyRefreshToken(token string) (uuid.UUID, error) {
	claims, err := s.parse(token, tokenTypeRefresh, s.refreshSecret)
	if err != nil {
		return uuid.Nil, err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, errors.Wrap(service.ErrInvalidToken, "malformed subject claim")
	}

	return userID, nil
}

// RefreshTokenTTL returns the configured duration for refresh tokens.
func (s *jwtService) RefreshTokenTTL() time.Duration {
	return s.refreshTTL
}

func (s *jwtService) sign(userID uuid.UUID, email, tokenType string, ttl time.Duration, secret string) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Email: email,
		Type:  tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

func (s *jwtService) parse(tokenString, wantType, secret string) (*sessionClaims, error) {
	claims := &sessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.Wrap(service.ErrInvalidToken, "failed to parse token")
	}

	if claims.Type != wantType {
		return nil, errors.Wrap(service.ErrInvalidToken, "unexpected token type")
	}

	return claims, nil
}
