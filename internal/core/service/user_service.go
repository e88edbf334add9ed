package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/fintrust/auth-service/internal/core/domain"
	"github.com/fintrust/auth-service/internal/core/ports"
)

// UserService implements the lookup use cases: single user by id document,
// batch by ids, and role by id.
type UserService struct {
	users ports.UserRepository
	roles ports.RoleRepository
	log   zerolog.Logger
}

func NewUserService(users ports.UserRepository, roles ports.RoleRepository, log zerolog.Logger) *UserService {
	return &UserService{users: users, roles: roles, log: log}
}

// FindByIDDocument returns the user holding idDocument, or
// domain.ErrEntityNotFound. Unlike login, this lookup reports "not found"
// explicitly: it serves trusted callers, not credential checks.
func (s *UserService) FindByIDDocument(ctx context.Context, idDocument string) (*domain.User, error) {
	s.log.Trace().Str("id_document", idDocument).Msg("searching user by id document")

	user, err := s.users.FindByIDDocument(ctx, idDocument)
	if err != nil {
		s.log.Trace().Str("id_document", idDocument).Err(err).Msg("user search failed")
		return nil, err
	}
	return user, nil
}

// FindByIDs returns the users matching ids. Unknown ids are skipped; order
// is not guaranteed.
func (s *UserService) FindByIDs(ctx context.Context, ids []string) ([]domain.User, error) {
	s.log.Trace().Int("count", len(ids)).Msg("searching users by ids")

	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("find users by ids: %w", err)
	}
	return users, nil
}

// FindRoleByID resolves a role, or domain.ErrEntityNotFound.
func (s *UserService) FindRoleByID(ctx context.Context, id string) (*domain.Role, error) {
	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		s.log.Trace().Str("id_role", id).Err(err).Msg("role search failed")
		return nil, err
	}
	return role, nil
}
