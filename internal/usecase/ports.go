package usecase

import (
	"context"

	domain "github.com/Eddi3MS/delivery-bd/internal/entity"
	"github.com/shopspring/decimal"
)

// ProductPrice is the slice of a product the integrity check needs.
type ProductPrice struct {
	ID    string
	Price decimal.Decimal
}

// Catalog is the price oracle consulted at order creation.
type Catalog interface {
	FindProductsByIDs(ctx context.Context, ids []string) ([]ProductPrice, error)
}

// OrderUpdate carries the only mutable fields of an order. Nil means unchanged.
type OrderUpdate struct {
	Status  *domain.OrderStatus
	Message *string
}

type OrderRepo interface {
	Create(ctx context.Context, o *domain.Order) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	UpdateByID(ctx context.Context, id string, upd OrderUpdate) error
	DeleteByID(ctx context.Context, id string) error
	FindAll(ctx context.Context) ([]domain.Order, error)
	FindByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
}

type ProductUpdate struct {
	Name        *string
	Image       *string
	Description *string
	Price       *decimal.Decimal
	CategoryID  *string
}

type ProductRepo interface {
	Catalog
	Create(ctx context.Context, p *domain.Product) error
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	UpdateByID(ctx context.Context, id string, upd ProductUpdate) error
	DeleteByID(ctx context.Context, id string) error
	FindAll(ctx context.Context) ([]domain.Product, error)
}

// CategoryPosition assigns a sort weight to one category.
type CategoryPosition struct {
	ID    string `json:"id" validate:"required"`
	Order int    `json:"order"`
}

type CategoryRepo interface {
	Create(ctx context.Context, c *domain.Category) error
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Category, error)
	Rename(ctx context.Context, id, name, slug string) error
	DeleteByID(ctx context.Context, id string) error
	// FindAll returns categories sorted by order, highest first.
	FindAll(ctx context.Context) ([]domain.Category, error)
	Reorder(ctx context.Context, positions []CategoryPosition) error
}

type UserUpdate struct {
	Name         *string
	Email        *string
	Phone        *string
	ProfilePic   *string
	PasswordHash *string
}

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateByID(ctx context.Context, id string, upd UserUpdate) (*domain.User, error)
}

type AddressUpdate struct {
	Street       *string
	Number       *string
	Complement   *string
	Neighborhood *string
}

type AddressRepo interface {
	Create(ctx context.Context, a *domain.SavedAddress) error
	FindByID(ctx context.Context, id string) (*domain.SavedAddress, error)
	FindByUser(ctx context.Context, userID string) ([]domain.SavedAddress, error)
	UpdateByID(ctx context.Context, id string, upd AddressUpdate) error
	DeleteByID(ctx context.Context, id string) error
}

type IdempotencyStore interface {
	TryLock(ctx context.Context, scope, key string) (bool, error)
	Remember(ctx context.Context, scope, key, value string) error
	Recall(ctx context.Context, scope, key string) (string, bool, error)
	Release(ctx context.Context, scope, key string) error
}

type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, ev OrderEvent) error
}

// MediaStore uploads images (data URI or remote URL) and returns their public id.
type MediaStore interface {
	Upload(ctx context.Context, source string) (string, error)
	Destroy(ctx context.Context, publicID string) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}
