package memstore

import (
	"context"
	"fmt"
	"slices"
	"sync"

	domain "github.com/Eddi3MS/delivery-bd/internal/entity"
	"github.com/Eddi3MS/delivery-bd/internal/usecase"
)

type UserRepo struct {
	mu    sync.RWMutex
	users []domain.User
}

func NewUserRepo() *UserRepo { return &UserRepo{} }

func (r *UserRepo) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if slices.ContainsFunc(r.users, func(x domain.User) bool { return x.Email == u.Email }) {
		return fmt.Errorf("create user: email %q: %w", u.Email, usecase.ErrConflict)
	}
	u.ID = newID()
	u.CreatedAt = now()
	u.UpdatedAt = u.CreatedAt
	r.users = append(r.users, *u)
	return nil
}

func (r *UserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.ID == id })
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.Email == email })
}

func (r *UserRepo) UpdateByID(_ context.Context, id string, upd usecase.UserUpdate) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := slices.IndexFunc(r.users, func(u domain.User) bool { return u.ID == id })
	if i < 0 {
		return nil, usecase.ErrNotFound
	}
	u := &r.users[i]
	setIf(&u.Name, upd.Name)
	setIf(&u.Email, upd.Email)
	setIf(&u.Phone, upd.Phone)
	setIf(&u.ProfilePic, upd.ProfilePic)
	setIf(&u.PasswordHash, upd.PasswordHash)
	u.UpdatedAt = now()
	out := *u
	return &out, nil
}

func (r *UserRepo) find(match func(domain.User) bool) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := slices.IndexFunc(r.users, match)
	if i < 0 {
		return nil, usecase.ErrNotFound
	}
	u := r.users[i]
	return &u, nil
}

type AddressRepo struct {
	mu        sync.RWMutex
	addresses []domain.SavedAddress
}

func NewAddressRepo() *AddressRepo { return &AddressRepo{} }

func (r *AddressRepo) Create(_ context.Context, a *domain.SavedAddress) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.ID = newID()
	a.CreatedAt = now()
	a.UpdatedAt = a.CreatedAt
	r.addresses = append(r.addresses, *a)
	return nil
}

func (r *AddressRepo) FindByID(_ context.Context, id string) (*domain.SavedAddress, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.index(id)
	if i < 0 {
		return nil, usecase.ErrNotFound
	}
	a := r.addresses[i]
	return &a, nil
}

func (r *AddressRepo) FindByUser(_ context.Context, userID string) ([]domain.SavedAddress, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []domain.SavedAddress{}
	for _, a := range r.addresses {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *AddressRepo) UpdateByID(_ context.Context, id string, upd usecase.AddressUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(id)
	if i < 0 {
		return usecase.ErrNotFound
	}
	a := &r.addresses[i]
	setIf(&a.Street, upd.Street)
	setIf(&a.Number, upd.Number)
	setIf(&a.Complement, upd.Complement)
	setIf(&a.Neighborhood, upd.Neighborhood)
	a.UpdatedAt = now()
	return nil
}

func (r *AddressRepo) DeleteByID(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(id)
	if i < 0 {
		return usecase.ErrNotFound
	}
	r.addresses = slices.Delete(r.addresses, i, i+1)
	return nil
}

func (r *AddressRepo) index(id string) int {
	return slices.IndexFunc(r.addresses, func(a domain.SavedAddress) bool { return a.ID == id })
}
