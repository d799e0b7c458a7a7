package ports

import (
	"context"

	"github.com/primetradeai/pricetrack/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}

// TokenService issues and validates signed session tokens. Both sides share
// one signing secret, injected at construction; validation is stateless and
// never reads the user store.
type TokenService interface {
	Issue(user *domain.User) (string, error)
	Validate(token string) (*domain.Claim, error)
}
