package service

import (
	"errors"
	"time"

	"spark/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrInvalidToken is returned when a token's signature is invalid or the token
// has expired. Callers must distinguish this ("client supplied bad
// credentials") from a missing token ("client omitted credentials"); the two
// map to different HTTP statuses.
var ErrInvalidToken = errors.New("token expired or invalid")

// TokenService defines the interface for issuing and verifying JWTs.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// IssueAccessToken signs the session claims into a short-lived access token.
	IssueAccessToken(session entity.Session) (string, error)

	// IssueRefreshToken signs the user id into a longer-lived refresh token
	// using a separate secret. Persisting the token on the user is the
	// caller's responsibility.
	IssueRefreshToken(userID uuid.UUID) (string, error)

	// VerifyAccessToken validates an access token and reconstructs the session
	// claims. Fails with ErrInvalidToken on a bad signature or expiry.
	VerifyAccessToken(token string) (*entity.Session, error)

	// VerifyRefreshToken validates a refresh token and returns the user id it
	// was issued for. Fails with ErrInvalidToken on a bad signature or expiry.
	VerifyRefreshToken(token string) (uuid.UUID, error)

	// RefreshTokenTTL returns the configured lifetime of refresh tokens.
	RefreshTokenTTL() time.Duration
}
