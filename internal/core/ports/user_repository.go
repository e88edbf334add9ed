package ports

import (
	"context"

	"github.com/fintrust/auth-service/internal/core/domain"
)

// UserRepository is the identity store for User records. Lookup methods
// return domain.ErrEntityNotFound when no record matches.
type UserRepository interface {
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByIDDocument(ctx context.Context, idDocument string) (bool, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByIDDocument(ctx context.Context, idDocument string) (*domain.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]domain.User, error)
}

// RoleRepository is the identity store for Role records.
type RoleRepository interface {
	Save(ctx context.Context, role *domain.Role) (*domain.Role, error)
	FindByID(ctx context.Context, id string) (*domain.Role, error)
	FindByName(ctx context.Context, name string) (*domain.Role, error)
}
