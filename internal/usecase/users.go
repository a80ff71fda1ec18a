package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	domain "github.com/Eddi3MS/delivery-bd/internal/entity"
	"github.com/Eddi3MS/delivery-bd/internal/logging"
	"github.com/Eddi3MS/delivery-bd/internal/validation"
)

type SignUpInput struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=5"`
}

type SignInInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=5"`
}

type UpdateAccountInput struct {
	Name       *string `json:"name" validate:"omitempty,min=1"`
	Phone      *string `json:"phone" validate:"omitempty,min=1"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Password   *string `json:"password" validate:"omitempty,min=5"`
	ProfilePic *string `json:"profilePic" validate:"omitempty,min=10"`
}

type Users struct {
	repo   UserRepo
	hasher PasswordHasher
	media  MediaStore
}

func NewUsers(repo UserRepo, hasher PasswordHasher, media MediaStore) *Users {
	return &Users{repo: repo, hasher: hasher, media: media}
}

func (uc *Users) SignUp(ctx context.Context, in SignUpInput) (*domain.User, error) {
	if err := validation.Struct(in); err != nil {
		return nil, failWith(ErrInvalidInput, "Invalid params", err)
	}
	return uc.register(ctx, in, domain.RoleUser)
}

// CreateAdmin seeds an administrator. There is no HTTP path to grant the role.
func (uc *Users) CreateAdmin(ctx context.Context, in SignUpInput) (*domain.User, error) {
	if err := validation.Struct(in); err != nil {
		return nil, failWith(ErrInvalidInput, "Invalid params", err)
	}
	return uc.register(ctx, in, domain.RoleAdmin)
}

func (uc *Users) register(ctx context.Context, in SignUpInput, role domain.Role) (*domain.User, error) {
	email := normalizeEmail(in.Email)
	existing, err := uc.repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fail(ErrConflict, "Email already in use")
	}

	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	u := &domain.User{
		Name:         in.Name,
		Email:        email,
		Phone:        in.Phone,
		PasswordHash: hash,
		Role:         role,
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (uc *Users) SignIn(ctx context.Context, in SignInInput) (*domain.User, error) {
	invalid := fail(ErrInvalidInput, "Invalid Params")
	if err := validation.Struct(in); err != nil {
		return nil, invalid
	}
	u, err := uc.repo.FindByEmail(ctx, normalizeEmail(in.Email))
	if errors.Is(err, ErrNotFound) {
		return nil, invalid
	}
	if err != nil {
		return nil, err
	}
	if !uc.hasher.Compare(u.PasswordHash, in.Password) {
		return nil, invalid
	}
	return u, nil
}

// Authenticate loads the user behind a session. A vanished user is unauthorized.
func (uc *Users) Authenticate(ctx context.Context, userID string) (*domain.User, error) {
	if !validation.IsObjectID(userID) {
		return nil, fail(ErrUnauthorized, "Unauthorized.")
	}
	u, err := uc.repo.FindByID(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return nil, fail(ErrUnauthorized, "Unauthorized.")
	}
	return u, err
}

func (uc *Users) UpdateAccount(ctx context.Context, actor Identity, id string, in UpdateAccountInput) (*domain.User, error) {
	if err := validation.Struct(in); err != nil {
		return nil, failWith(ErrInvalidInput, "Wrong data format", err)
	}
	if id != actor.ID {
		return nil, fail(ErrUnauthorized, "Unauthorized")
	}
	current, err := uc.repo.FindByID(ctx, actor.ID)
	if errors.Is(err, ErrNotFound) {
		return nil, fail(ErrUnauthorized, "Unauthorized")
	}
	if err != nil {
		return nil, err
	}

	upd := UserUpdate{Name: in.Name, Phone: in.Phone}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if email != current.Email {
			other, err := uc.repo.FindByEmail(ctx, email)
			if err != nil && !errors.Is(err, ErrNotFound) {
				return nil, err
			}
			if other != nil {
				return nil, fail(ErrConflict, "Email already in use")
			}
		}
		upd.Email = &email
	}
	if in.Password != nil {
		hash, err := uc.hasher.Hash(*in.Password)
		if err != nil {
			return nil, err
		}
		upd.PasswordHash = &hash
	}
	if in.ProfilePic != nil {
		if current.ProfilePic != "" {
			if err := uc.media.Destroy(ctx, current.ProfilePic); err != nil {
				logging.FromCtx(ctx).Warn("destroy profile picture failed",
					slog.String("public_id", current.ProfilePic), slog.Any("err", err))
			}
		}
		publicID, err := uc.media.Upload(ctx, *in.ProfilePic)
		if err != nil {
			return nil, err
		}
		upd.ProfilePic = &publicID
	}

	u, err := uc.repo.UpdateByID(ctx, actor.ID, upd)
	if errors.Is(err, ErrNotFound) {
		return nil, fail(ErrUnauthorized, "Unauthorized")
	}
	return u, err
}

func (uc *Users) Profile(ctx context.Context, actor Identity, id string) (*domain.User, error) {
	if !validation.IsObjectID(id) {
		return nil, fail(ErrInvalidInput, "Invalid query param")
	}
	if id != actor.ID && !actor.IsAdmin() {
		return nil, fail(ErrForbidden, "Not allowed.")
	}
	u, err := uc.repo.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, fail(ErrNotFound, "User not found")
	}
	return u, err
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
