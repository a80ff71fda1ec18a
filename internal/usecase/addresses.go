package usecase

import (
	"context"
	"errors"

	domain "github.com/Eddi3MS/delivery-bd/internal/entity"
	"github.com/Eddi3MS/delivery-bd/internal/validation"
)

type UpdateAddressInput struct {
	Street       *string `json:"street"`
	Number       *string `json:"number"`
	Complement   *string `json:"complement"`
	Neighborhood *string `json:"neighborhood"`
}

// Addresses is the caller's address book. Entries of other users are
// reported as not found.
type Addresses struct {
	repo AddressRepo
}

func NewAddresses(repo AddressRepo) *Addresses {
	return &Addresses{repo: repo}
}

func (uc *Addresses) List(ctx context.Context, actor Identity) ([]domain.SavedAddress, error) {
	out, err := uc.repo.FindByUser(ctx, actor.ID)
	if out == nil && err == nil {
		out = []domain.SavedAddress{}
	}
	return out, err
}

func (uc *Addresses) Create(ctx context.Context, actor Identity, in AddressInput) (*domain.SavedAddress, error) {
	if err := validation.Struct(in); err != nil {
		return nil, failWith(ErrInvalidInput, "Invalid Params", err)
	}
	a := &domain.SavedAddress{UserID: actor.ID, Address: in.toDomain()}
	if err := uc.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (uc *Addresses) Update(ctx context.Context, actor Identity, id string, in UpdateAddressInput) error {
	if _, err := uc.owned(ctx, actor, id); err != nil {
		return err
	}
	// empty strings leave the field untouched
	upd := AddressUpdate{
		Street:       nonEmpty(in.Street),
		Number:       nonEmpty(in.Number),
		Complement:   nonEmpty(in.Complement),
		Neighborhood: nonEmpty(in.Neighborhood),
	}
	return uc.repo.UpdateByID(ctx, id, upd)
}

func (uc *Addresses) Delete(ctx context.Context, actor Identity, id string) error {
	if _, err := uc.owned(ctx, actor, id); err != nil {
		return err
	}
	return uc.repo.DeleteByID(ctx, id)
}

func (uc *Addresses) owned(ctx context.Context, actor Identity, id string) (*domain.SavedAddress, error) {
	if !validation.IsObjectID(id) {
		return nil, fail(ErrInvalidInput, "Invalid address id")
	}
	a, err := uc.repo.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) || (err == nil && a.UserID != actor.ID) {
		return nil, fail(ErrNotFound, "Address not found")
	}
	return a, err
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
