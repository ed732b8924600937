package auth

import (
	"context"
	"encoding/json"

	"github.com/golang-jwt/jwt/v5"

	"gitlab.com/codbbit.net/internal/core/ports/primary"
	"gitlab.com/codbbit.net/internal/core/ports/secondary"
	"gitlab.com/codbbit.net/internal/domain"
	"gitlab.com/codbbit.net/internal/global/logger"
	"gitlab.com/codbbit.net/internal/static/errs"
)

var _ IAuthService = &localAuthService{}

type localAuthService struct {
	userPort    secondary.UserPort
	jwtProvider primary.JWTService
}

func NewLocalAuthService(
	userPort secondary.UserPort,
	jwtProvider primary.JWTService,
) IAuthService {
	return &localAuthService{
		userPort:    userPort,
		jwtProvider: jwtProvider,
	}
}

func (g localAuthService) ProviderName() domain.Provider {
	return domain.ProviderLocal
}

func (g localAuthService) Register(ctx context.Context, userName, email, password string) (string, error) {
	if email == "" {
		return "", errs.EmailRequired
	}
	existing, err := g.userPort.GetByUserName(ctx, userName)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", errs.UserNameTaken
	}

	hash, err := g.jwtProvider.EncryptPassword(ctx, password)
	if err != nil {
		return "", errs.InternalError
	}
	user := &domain.Users{
		UserName:     userName,
		Email:        &email,
		PasswordHash: &hash,
	}
	if err := g.userPort.Create(ctx, user); err != nil {
		return "", errs.FailedToCreateUser
	}

	return g.generateToken(ctx, user)
}

func (g localAuthService) Login(ctx context.Context, userName, password string) (string, error) {
	usr, err := g.userPort.GetByUserName(ctx, userName)
	if err != nil {
		return "", err
	}
	if usr == nil || usr.PasswordHash == nil {
		return "", errs.InvalidCredentials
	}
	valid, err := g.jwtProvider.VerifyPassword(ctx, *usr.PasswordHash, password)
	if err != nil {
		return "", errs.InvalidCredentials
	}
	if !valid {
		return "", errs.InvalidCredentials
	}

	return g.generateToken(ctx, usr)
}

func (g localAuthService) generateToken(ctx context.Context, user *domain.Users) (string, error) {
	authPayload := domain.AuthPayload{
		UserID:     user.ID.String(),
		Username:   user.UserName,
		Permission: []string{"codbbit.submit"},
	}

	data, err := json.Marshal(authPayload)
	if err != nil {
		return "", errs.InternalError
	}
	var claims map[string]interface{}
	if err := json.Unmarshal(data, &claims); err != nil {
		logger.Error("Failed to unmarshal auth payload", "error", err)
		return "", errs.InternalError
	}
	token, err := g.jwtProvider.GenerateTokenHMAC(ctx, jwt.SigningMethodHS256.Name, claims)
	if err != nil {
		return "", errs.GeneratingToken
	}
	return token, nil
}
