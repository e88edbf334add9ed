package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/fintrust/auth-service/internal/core/domain"
	"github.com/fintrust/auth-service/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService that persists auth events.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Process persists a single audit event. Processing failures are reported to
// the caller (the dispatcher) and logged there; they never reach a request.
func (s *auditService) Process(ctx context.Context, in ports.AuditEventInput) error {
	event := &domain.AuthEvent{
		Email:     in.Email,
		Action:    in.Action,
		Outcome:   in.Outcome,
		Reason:    in.Reason,
		Timestamp: in.Timestamp,
	}

	if err := s.repo.Insert(ctx, event); err != nil {
		return fmt.Errorf("insert auth event: %w", err)
	}

	s.log.Debug().
		Str("email", in.Email).
		Str("action", in.Action).
		Str("outcome", in.Outcome).
		Msg("auth event recorded")

	return nil
}
