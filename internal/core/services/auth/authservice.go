package auth

import (
	"context"

	"gitlab.com/codbbit.net/internal/domain"
)

type IAuthService interface {
	ProviderName() domain.Provider
	Register(ctx context.Context, userName, email, password string) (string, error)
	Login(ctx context.Context, userName, password string) (string, error)
}
