package ports

import (
	"context"
	"time"

	"github.com/fintrust/auth-service/internal/core/domain"
)

// PasswordHasher performs one-way hashing and constant-time verification of
// passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// TokenProvider creates and verifies signed, time-bounded access tokens.
// Issue resolves the user's role by id to embed the current role name;
// Verify is self-contained and never touches the store.
type TokenProvider interface {
	Issue(ctx context.Context, user *domain.User) (*domain.Token, error)
	Verify(tokenString string) (*domain.Claims, error)
}

// Transactor runs fn inside one atomic unit of work so uniqueness checks and
// the eventual write stay consistent. Implementations that cannot provide
// transactions fall back to plain execution backed by unique constraints.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// LoginAttemptLimiter tracks failed logins per email inside a rolling window.
type LoginAttemptLimiter interface {
	TooManyFailures(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// AuditEventInput is a pending audit-trail entry.
type AuditEventInput struct {
	Email     string
	Action    string
	Outcome   string
	Reason    string
	Timestamp time.Time
}

// AuditRecorder accepts audit events for asynchronous processing. Record must
// never block the calling request.
type AuditRecorder interface {
	Record(event AuditEventInput)
}

// AuditService processes one audit event: persistence plus bookkeeping.
type AuditService interface {
	Process(ctx context.Context, event AuditEventInput) error
}

// AuditRepository persists processed audit events.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuthEvent) error
}
