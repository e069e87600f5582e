package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"orcamentos/internal/domain/entities"
	"orcamentos/internal/infrastructure/auth"
	"orcamentos/internal/usecase/interfaces"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user is inactive")
	ErrUnauthenticated    = errors.New("unauthenticated")
)

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      entities.User
}

// IAuthUseCase issues and checks session tokens.
type IAuthUseCase interface {
	Login(ctx context.Context, email, password string) (LoginResult, error)
	Authenticate(ctx context.Context, token string) (entities.User, error)
}

type AuthUseCase struct {
	users  interfaces.IUserRepository
	tokens *auth.TokenIssuer
}

var _ IAuthUseCase = (*AuthUseCase)(nil)

func NewAuthUseCase(users interfaces.IUserRepository, tokens *auth.TokenIssuer) *AuthUseCase {
	return &AuthUseCase{users: users, tokens: tokens}
}

// Login checks the password of an existing profile. Inactive profiles are
// rejected even with the right password.
func (u *AuthUseCase) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	user, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		return LoginResult{}, err
	}
	if user.ID == "" || !auth.CheckPassword(user.PasswordHash, password) {
		log.Printf("[auth][usecase] login rejected email=%s", email)
		return LoginResult{}, ErrInvalidCredentials
	}
	if !user.IsActive() {
		log.Printf("[auth][usecase] login rejected inactive user_id=%s", user.ID)
		return LoginResult{}, ErrUserInactive
	}

	token, expiresAt, err := u.tokens.Generate(user.ID, string(user.AccessLevel))
	if err != nil {
		return LoginResult{}, err
	}
	log.Printf("[auth][usecase] login success user_id=%s", user.ID)
	return LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// Authenticate resolves the profile behind a token. The profile is reloaded
// so deactivation and access level changes apply to live sessions.
func (u *AuthUseCase) Authenticate(ctx context.Context, token string) (entities.User, error) {
	claims, err := u.tokens.Validate(token)
	if err != nil {
		return entities.User{}, ErrUnauthenticated
	}
	user, err := u.users.GetByID(ctx, claims.Subject)
	if err != nil {
		return entities.User{}, err
	}
	if user.ID == "" {
		return entities.User{}, ErrUnauthenticated
	}
	if !user.IsActive() {
		return entities.User{}, ErrUserInactive
	}
	return user, nil
}
