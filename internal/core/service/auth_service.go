package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/fintrust/auth-service/internal/core/domain"
	"github.com/fintrust/auth-service/internal/core/ports"
)

// AuthService implements the registration and login workflows.
type AuthService struct {
	users   ports.UserRepository
	roles   ports.RoleRepository
	hasher  ports.PasswordHasher
	tokens  ports.TokenProvider
	tx      ports.Transactor
	limiter ports.LoginAttemptLimiter
	audit   ports.AuditRecorder
	log     zerolog.Logger
}

// NewAuthService wires the registration and login workflows. limiter and
// audit may be nil; the corresponding behaviour is then disabled.
func NewAuthService(
	users ports.UserRepository,
	roles ports.RoleRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenProvider,
	tx ports.Transactor,
	limiter ports.LoginAttemptLimiter,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:   users,
		roles:   roles,
		hasher:  hasher,
		tokens:  tokens,
		tx:      tx,
		limiter: limiter,
		audit:   audit,
		log:     log,
	}
}

// Register creates a new user with the default role. The uniqueness checks,
// role resolution, hashing, and save run inside one unit of work; the check
// order email → idDocument → role fixes the error precedence when several
// conditions hold at once. Exactly one store write happens on success, none
// on any failure branch.
func (s *AuthService) Register(ctx context.Context, candidate *domain.User) (*domain.User, error) {
	email := strings.ToLower(candidate.Email)
	s.log.Trace().Str("email", email).Msg("starting user registration")

	var saved *domain.User
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.users.ExistsByEmail(ctx, email)
		if err != nil {
			return fmt.Errorf("check email: %w", err)
		}
		if exists {
			return domain.ErrEmailAlreadyExists
		}

		exists, err = s.users.ExistsByIDDocument(ctx, candidate.IDDocument)
		if err != nil {
			return fmt.Errorf("check id document: %w", err)
		}
		if exists {
			return domain.ErrIDDocumentAlreadyExists
		}

		role, err := s.roles.FindByName(ctx, domain.DefaultRoleName)
		if err != nil {
			if errors.Is(err, domain.ErrEntityNotFound) {
				// Provisioning defect: the default role was never seeded.
				return fmt.Errorf("default role %q: %w", domain.DefaultRoleName, err)
			}
			return fmt.Errorf("resolve default role: %w", err)
		}

		hash, err := s.hasher.Hash(candidate.Password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}

		user := *candidate
		user.Email = email
		user.Password = hash
		user.RoleID = role.ID

		saved, err = s.users.Save(ctx, &user)
		if err != nil {
			return fmt.Errorf("save user: %w", err)
		}
		return nil
	})
	if err != nil {
		s.log.Trace().Str("email", email).Err(err).Msg("registration failed")
		s.record(email, domain.AuditActionRegister, domain.AuditOutcomeFailure, err.Error())
		return nil, err
	}

	s.log.Trace().Str("email", saved.Email).Msg("user registered")
	s.record(saved.Email, domain.AuditActionRegister, domain.AuditOutcomeSuccess, "")
	return saved, nil
}

// Login verifies the credentials and issues an access token. An unknown
// email and a wrong password both yield domain.ErrInvalidCredentials; the
// true cause is only visible in the audit trail.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Token, error) {
	s.log.Trace().Str("email", email).Msg("starting login attempt")

	if s.limiter != nil {
		locked, err := s.limiter.TooManyFailures(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Str("email", email).Msg("lockout check failed, continuing")
		} else if locked {
			s.record(email, domain.AuditActionLogin, domain.AuditOutcomeFailure, "locked out")
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrEntityNotFound) {
			s.loginFailed(ctx, email, "unknown email")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Verify(password, user.Password) {
		s.loginFailed(ctx, email, "password mismatch")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Str("email", email).Msg("lockout reset failed")
		}
	}

	s.log.Trace().Str("email", email).Msg("login successful")
	s.record(email, domain.AuditActionLogin, domain.AuditOutcomeSuccess, "")
	return token, nil
}

func (s *AuthService) loginFailed(ctx context.Context, email, reason string) {
	s.log.Trace().Str("email", email).Msg("login failed")
	if s.limiter != nil {
		if err := s.limiter.RecordFailure(ctx, email); err != nil {
			s.log.Warn().Err(err).Str("email", email).Msg("failed to record login failure")
		}
	}
	s.record(email, domain.AuditActionLogin, domain.AuditOutcomeFailure, reason)
}

func (s *AuthService) record(email, action, outcome, reason string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(ports.AuditEventInput{
		Email:     email,
		Action:    action,
		Outcome:   outcome,
		Reason:    reason,
		Timestamp: time.Now().UTC(),
	})
}
