package ports

import (
	"context"

	"github.com/fintrust/auth-service/internal/core/domain"
)

// AuthService exposes the registration and login workflows.
type AuthService interface {
	Register(ctx context.Context, candidate *domain.User) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.Token, error)
}

// UserService exposes the lookup use cases consumed by other services.
type UserService interface {
	FindByIDDocument(ctx context.Context, idDocument string) (*domain.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]domain.User, error)
	FindRoleByID(ctx context.Context, id string) (*domain.Role, error)
}
