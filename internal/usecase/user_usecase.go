package usecase

import (
	"context"
	"errors"
	"log"
	"net/mail"
	"strings"
	"time"

	"orcamentos/internal/domain/entities"
	"orcamentos/internal/infrastructure/auth"
	"orcamentos/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrInvalidUserID         = errors.New("invalid user id")
	ErrInvalidUserInput      = errors.New("invalid user input")
	ErrInvalidEmail          = errors.New("invalid email")
	ErrEmailAlreadyExists    = errors.New("email already registered")
	ErrForbidden             = errors.New("operation not allowed for this user")
	ErrCannotDeleteAdmin     = errors.New("admin users cannot be deleted")
	ErrCannotEditAdmin       = errors.New("admin users can only be edited by themselves")
	ErrCurrentPasswordNeeded = errors.New("current password is required")
	ErrWrongCurrentPassword  = errors.New("current password does not match")
)

type CreateUserInput struct {
	Username    string
	Email       string
	Password    string
	AccessLevel entities.AccessLevel
	Status      entities.UserStatus
}

// UpdateUserInput merges into an existing user: nil fields are kept.
// NewPassword is applied when not empty.
type UpdateUserInput struct {
	Username        *string
	Email           *string
	AccessLevel     *entities.AccessLevel
	Status          *entities.UserStatus
	CurrentPassword string
	NewPassword     string
}

// IUserUseCase manages system users. Every operation receives the caller
// (actor) and enforces the permission rules itself:
//   - only admins manage users; anybody may read or edit their own profile
//   - an admin account is edited only by its owner
//   - an admin account is never deleted

type IUserUseCase interface {
	Create(ctx context.Context, actor entities.User, in CreateUserInput) (entities.User, error)
	Update(ctx context.Context, actor entities.User, id string, in UpdateUserInput) (entities.User, error)
	Delete(ctx context.Context, actor entities.User, id string) error
	GetByID(ctx context.Context, actor entities.User, id string) (entities.User, error)
	List(ctx context.Context, actor entities.User) ([]entities.User, error)
}

type UserUseCase struct {
	repo interfaces.IUserRepository
}

var _ IUserUseCase = (*UserUseCase)(nil)

func NewUserUseCase(repo interfaces.IUserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

func (u *UserUseCase) Create(ctx context.Context, actor entities.User, in CreateUserInput) (entities.User, error) {
	if !actor.IsAdmin() {
		return entities.User{}, ErrForbidden
	}
	return u.create(ctx, in)
}

// create registers a user without permission checks; the seed command uses it
// to bootstrap the first admin.
func (u *UserUseCase) create(ctx context.Context, in CreateUserInput) (entities.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return entities.User{}, ErrInvalidUserInput
	}
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return entities.User{}, err
	}
	level := in.AccessLevel
	if level == "" {
		level = entities.AccessLevelStandard
	}
	status := in.Status
	if status == "" {
		status = entities.UserStatusActive
	}
	if !level.Valid() || !status.Valid() {
		return entities.User{}, ErrInvalidUserInput
	}
	if err := u.ensureEmailFree(ctx, email, ""); err != nil {
		return entities.User{}, err
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return entities.User{}, err
	}

	now := time.Now().UTC()
	created, err := u.repo.Create(ctx, entities.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		AccessLevel:  level,
		Status:       status,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return entities.User{}, err
	}
	log.Printf("[user][usecase] created id=%s access_level=%s", created.ID, created.AccessLevel)
	return created, nil
}

func (u *UserUseCase) Update(ctx context.Context, actor entities.User, id string, in UpdateUserInput) (entities.User, error) {
	target, err := u.find(ctx, id)
	if err != nil {
		return entities.User{}, err
	}
	self := actor.ID == target.ID
	if !self && !actor.IsAdmin() {
		return entities.User{}, ErrForbidden
	}
	if !self && target.IsAdmin() {
		return entities.User{}, ErrCannotEditAdmin
	}
	if !actor.IsAdmin() && (in.AccessLevel != nil || in.Status != nil) {
		return entities.User{}, ErrForbidden
	}

	if in.Username != nil {
		name := strings.TrimSpace(*in.Username)
		if name == "" {
			return entities.User{}, ErrInvalidUserInput
		}
		target.Username = name
	}
	if in.Email != nil {
		email, err := normalizeEmail(*in.Email)
		if err != nil {
			return entities.User{}, err
		}
		if err := u.ensureEmailFree(ctx, email, target.ID); err != nil {
			return entities.User{}, err
		}
		target.Email = email
	}
	if in.AccessLevel != nil {
		if !in.AccessLevel.Valid() {
			return entities.User{}, ErrInvalidUserInput
		}
		target.AccessLevel = *in.AccessLevel
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return entities.User{}, ErrInvalidUserInput
		}
		target.Status = *in.Status
	}
	if in.NewPassword != "" {
		if self {
			if in.CurrentPassword == "" {
				return entities.User{}, ErrCurrentPasswordNeeded
			}
			if !auth.CheckPassword(target.PasswordHash, in.CurrentPassword) {
				return entities.User{}, ErrWrongCurrentPassword
			}
		}
		hash, err := auth.HashPassword(in.NewPassword)
		if err != nil {
			return entities.User{}, err
		}
		target.PasswordHash = hash
	}

	updated, err := u.repo.Update(ctx, target)
	if err != nil {
		return entities.User{}, err
	}
	if updated.ID == "" {
		return entities.User{}, ErrUserNotFound
	}
	log.Printf("[user][usecase] updated id=%s by=%s", updated.ID, actor.ID)
	return updated, nil
}

func (u *UserUseCase) Delete(ctx context.Context, actor entities.User, id string) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	target, err := u.find(ctx, id)
	if err != nil {
		return err
	}
	if target.IsAdmin() {
		return ErrCannotDeleteAdmin
	}
	ok, err := u.repo.Delete(ctx, target.ID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUserNotFound
	}
	log.Printf("[user][usecase] deleted id=%s by=%s", target.ID, actor.ID)
	return nil
}

func (u *UserUseCase) GetByID(ctx context.Context, actor entities.User, id string) (entities.User, error) {
	if !actor.IsAdmin() && actor.ID != strings.TrimSpace(id) {
		return entities.User{}, ErrForbidden
	}
	return u.find(ctx, id)
}

func (u *UserUseCase) List(ctx context.Context, actor entities.User) ([]entities.User, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	return u.repo.List(ctx)
}

func (u *UserUseCase) find(ctx context.Context, id string) (entities.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.User{}, ErrInvalidUserID
	}
	user, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.User{}, err
	}
	if user.ID == "" {
		return entities.User{}, ErrUserNotFound
	}
	return user, nil
}

func (u *UserUseCase) ensureEmailFree(ctx context.Context, email, selfID string) error {
	existing, err := u.repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing.ID != "" && existing.ID != selfID {
		return ErrEmailAlreadyExists
	}
	return nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}
	return email, nil
}
