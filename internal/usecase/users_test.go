package usecase_test

import (
	"context"
	"testing"

	"github.com/Eddi3MS/delivery-bd/internal/adapter/memstore"
	domain "github.com/Eddi3MS/delivery-bd/internal/entity"
	"github.com/Eddi3MS/delivery-bd/internal/usecase"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUsers() (*usecase.Users, *memstore.UserRepo, *fakeMedia) {
	repo := memstore.NewUserRepo()
	media := &fakeMedia{}
	return usecase.NewUsers(repo, plainHasher{}, media), repo, media
}

func randomSignUp() usecase.SignUpInput {
	return usecase.SignUpInput{
		Name:     gofakeit.Name(),
		Phone:    gofakeit.Phone(),
		Email:    gofakeit.Email(),
		Password: gofakeit.Password(true, true, true, false, false, 10),
	}
}

func TestUsers_SignUpAndSignIn(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newUsers()
	in := randomSignUp()

	u, err := uc.SignUp(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, u.Role)
	assert.NotEqual(t, in.Password, u.PasswordHash)

	_, err = uc.SignUp(ctx, in)
	assert.ErrorIs(t, err, usecase.ErrConflict)
	assert.Equal(t, "Email already in use", usecase.Message(err))

	got, err := uc.SignIn(ctx, usecase.SignInInput{Email: in.Email, Password: in.Password})
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	for _, bad := range []usecase.SignInInput{
		{Email: in.Email, Password: "wrong-password"},
		{Email: "nobody@example.com", Password: in.Password},
		{Email: "not-an-email", Password: in.Password},
	} {
		_, err = uc.SignIn(ctx, bad)
		assert.ErrorIs(t, err, usecase.ErrInvalidInput)
		assert.Equal(t, "Invalid Params", usecase.Message(err))
	}
}

func TestUsers_SignUpValidation(t *testing.T) {
	uc, _, _ := newUsers()
	in := randomSignUp()
	in.Password = "1234"

	_, err := uc.SignUp(context.Background(), in)
	assert.ErrorIs(t, err, usecase.ErrInvalidInput)
}

func TestUsers_CreateAdmin(t *testing.T) {
	uc, _, _ := newUsers()

	u, err := uc.CreateAdmin(context.Background(), randomSignUp())
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, u.Role)
}

func TestUsers_Authenticate(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newUsers()
	u, err := uc.SignUp(ctx, randomSignUp())
	require.NoError(t, err)

	got, err := uc.Authenticate(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)

	_, err = uc.Authenticate(ctx, "64b7f0c2a1b2c3d4e5f6ffff")
	assert.ErrorIs(t, err, usecase.ErrUnauthorized)
}

func TestUsers_UpdateAccount(t *testing.T) {
	ctx := context.Background()
	uc, _, media := newUsers()
	u, err := uc.SignUp(ctx, randomSignUp())
	require.NoError(t, err)
	me := usecase.Identity{ID: u.ID, Role: u.Role}

	name := "New Name"
	pic := "data:image/png;base64,AAAA"
	updated, err := uc.UpdateAccount(ctx, me, u.ID, usecase.UpdateAccountInput{Name: &name, ProfilePic: &pic})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, u.Email, updated.Email)
	firstPic := updated.ProfilePic
	assert.NotEmpty(t, firstPic)

	// a second picture replaces the first on the media host
	updated, err = uc.UpdateAccount(ctx, me, u.ID, usecase.UpdateAccountInput{ProfilePic: &pic})
	require.NoError(t, err)
	assert.Equal(t, []string{firstPic}, media.destroyed)
	assert.NotEqual(t, firstPic, updated.ProfilePic)

	password := "another-secret"
	_, err = uc.UpdateAccount(ctx, me, u.ID, usecase.UpdateAccountInput{Password: &password})
	require.NoError(t, err)
	_, err = uc.SignIn(ctx, usecase.SignInInput{Email: u.Email, Password: password})
	assert.NoError(t, err)

	_, err = uc.UpdateAccount(ctx, me, "64b7f0c2a1b2c3d4e5f6ffff", usecase.UpdateAccountInput{Name: &name})
	assert.ErrorIs(t, err, usecase.ErrUnauthorized)
	assert.Equal(t, "Unauthorized", usecase.Message(err))

	short := "abc"
	_, err = uc.UpdateAccount(ctx, me, u.ID, usecase.UpdateAccountInput{Password: &short})
	assert.ErrorIs(t, err, usecase.ErrInvalidInput)
}

func TestUsers_UpdateAccountEmailTaken(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newUsers()
	a, err := uc.SignUp(ctx, randomSignUp())
	require.NoError(t, err)
	b, err := uc.SignUp(ctx, randomSignUp())
	require.NoError(t, err)

	_, err = uc.UpdateAccount(ctx, usecase.Identity{ID: a.ID, Role: a.Role}, a.ID, usecase.UpdateAccountInput{Email: &b.Email})
	assert.ErrorIs(t, err, usecase.ErrConflict)
}

func TestUsers_Profile(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newUsers()
	a, err := uc.SignUp(ctx, randomSignUp())
	require.NoError(t, err)
	b, err := uc.SignUp(ctx, randomSignUp())
	require.NoError(t, err)
	asA := usecase.Identity{ID: a.ID, Role: domain.RoleUser}

	got, err := uc.Profile(ctx, asA, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	_, err = uc.Profile(ctx, asA, b.ID)
	assert.ErrorIs(t, err, usecase.ErrForbidden)
	assert.Equal(t, "Not allowed.", usecase.Message(err))

	got, err = uc.Profile(ctx, admin, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	_, err = uc.Profile(ctx, admin, "64b7f0c2a1b2c3d4e5f6ffff")
	assert.ErrorIs(t, err, usecase.ErrNotFound)
	assert.Equal(t, "User not found", usecase.Message(err))

	_, err = uc.Profile(ctx, admin, "zzz")
	assert.ErrorIs(t, err, usecase.ErrInvalidInput)
}
