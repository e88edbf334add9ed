package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/fintrust/auth-service/internal/core/domain"
	"github.com/fintrust/auth-service/internal/core/ports"
)

// Seeder provisions the fixed role set and one bootstrap user per role.
// Runs are idempotent: existing roles and users are left untouched.
type Seeder struct {
	users  ports.UserRepository
	roles  ports.RoleRepository
	hasher ports.PasswordHasher
	log    zerolog.Logger
}

func New(users ports.UserRepository, roles ports.RoleRepository, hasher ports.PasswordHasher, log zerolog.Logger) *Seeder {
	return &Seeder{users: users, roles: roles, hasher: hasher, log: log}
}

type seedUser struct {
	firstName   string
	email       string
	idDocument  string
	phoneNumber string
	roleName    string
	password    string
}

func (s *Seeder) Run(ctx context.Context) error {
	roleDescriptions := []struct {
		name        string
		description string
	}{
		{domain.RoleAdmin, "Administrator with full access"},
		{domain.RoleAdviser, "Advisor with limited access"},
		{domain.RoleClient, "Client with access to own resources only"},
		{domain.RoleReport, "Role for scheduled reporting jobs"},
	}

	roleIDs := make(map[string]string, len(roleDescriptions))
	for _, r := range roleDescriptions {
		role, err := s.roleIfNotFound(ctx, r.name, r.description)
		if err != nil {
			return fmt.Errorf("seed role %s: %w", r.name, err)
		}
		roleIDs[r.name] = role.ID
	}

	users := []seedUser{
		{"Admin", "admin@test.com", "11111111", "987654321", domain.RoleAdmin, "adminpassword"},
		{"Adviser", "adviser@test.com", "11111112", "987654322", domain.RoleAdviser, "adviserpassword"},
		{"Client", "client@test.com", "11111113", "987654323", domain.RoleClient, "clientpassword"},
		{"Report", "report-service@test.com", "11111114", "987654366", domain.RoleReport, "reportpassword"},
	}

	for _, u := range users {
		if err := s.userIfNotFound(ctx, u, roleIDs[u.roleName]); err != nil {
			return fmt.Errorf("seed user %s: %w", u.email, err)
		}
	}

	return nil
}

func (s *Seeder) roleIfNotFound(ctx context.Context, name, description string) (*domain.Role, error) {
	role, err := s.roles.FindByName(ctx, name)
	if err == nil {
		return role, nil
	}
	if !errors.Is(err, domain.ErrEntityNotFound) {
		return nil, err
	}

	s.log.Trace().Str("role", name).Msg("creating role")
	return s.roles.Save(ctx, &domain.Role{Name: name, Description: description})
}

func (s *Seeder) userIfNotFound(ctx context.Context, u seedUser, roleID string) error {
	_, err := s.users.FindByEmail(ctx, u.email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrEntityNotFound) {
		return err
	}

	hash, err := s.hasher.Hash(u.password)
	if err != nil {
		return err
	}

	s.log.Trace().Str("email", u.email).Msg("creating user")
	_, err = s.users.Save(ctx, &domain.User{
		FirstName:   u.firstName,
		LastName:    "User",
		Email:       u.email,
		IDDocument:  u.idDocument,
		PhoneNumber: u.phoneNumber,
		RoleID:      roleID,
		BaseSalary:  5000,
		Password:    hash,
	})
	return err
}
