package repo

import (
	"fmt"
	"time"

	domain "github.com/Eddi3MS/delivery-bd/internal/entity"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Money is stored as Decimal128 so sums stay exact inside the database.
func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("decimal128 %s: %w", d, err)
	}
	return v, nil
}

func fromDecimal128(v primitive.Decimal128) decimal.Decimal {
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		// NaN and Inf are never written by this service
		return decimal.Zero
	}
	return d
}

type addressDoc struct {
	Street       string `bson:"street"`
	Number       string `bson:"number"`
	Complement   string `bson:"complement,omitempty"`
	Neighborhood string `bson:"neighborhood"`
}

func newAddressDoc(a domain.Address) addressDoc {
	return addressDoc{Street: a.Street, Number: a.Number, Complement: a.Complement, Neighborhood: a.Neighborhood}
}

func (d addressDoc) toDomain() domain.Address {
	return domain.Address{Street: d.Street, Number: d.Number, Complement: d.Complement, Neighborhood: d.Neighborhood}
}

type orderItemDoc struct {
	Product  primitive.ObjectID   `bson:"product"`
	Quantity int                  `bson:"quantity"`
	Price    primitive.Decimal128 `bson:"price"`
}

type orderDoc struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty"`
	Customer  primitive.ObjectID   `bson:"customer"`
	Address   addressDoc           `bson:"address"`
	Items     []orderItemDoc       `bson:"items"`
	Total     primitive.Decimal128 `bson:"total"`
	Status    string               `bson:"status"`
	Message   string               `bson:"message,omitempty"`
	CreatedAt time.Time            `bson:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt"`
}

func newOrderDoc(o *domain.Order) (orderDoc, error) {
	customer, err := primitive.ObjectIDFromHex(o.CustomerID)
	if err != nil {
		return orderDoc{}, fmt.Errorf("customer id %q: %w", o.CustomerID, err)
	}
	total, err := toDecimal128(o.Total)
	if err != nil {
		return orderDoc{}, err
	}
	items := make([]orderItemDoc, 0, len(o.Items))
	for _, it := range o.Items {
		pid, err := primitive.ObjectIDFromHex(it.ProductID)
		if err != nil {
			return orderDoc{}, fmt.Errorf("product id %q: %w", it.ProductID, err)
		}
		price, err := toDecimal128(it.Price)
		if err != nil {
			return orderDoc{}, err
		}
		items = append(items, orderItemDoc{Product: pid, Quantity: it.Quantity, Price: price})
	}
	return orderDoc{
		Customer:  customer,
		Address:   newAddressDoc(o.Address),
		Items:     items,
		Total:     total,
		Status:    string(o.Status),
		Message:   o.Message,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}, nil
}

func (d orderDoc) toDomain() domain.Order {
	items := make([]domain.OrderItem, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, domain.OrderItem{
			ProductID: it.Product.Hex(),
			Quantity:  it.Quantity,
			Price:     fromDecimal128(it.Price),
		})
	}
	return domain.Order{
		ID:         d.ID.Hex(),
		CustomerID: d.Customer.Hex(),
		Address:    d.Address.toDomain(),
		Items:      items,
		Total:      fromDecimal128(d.Total),
		Status:     domain.OrderStatus(d.Status),
		Message:    d.Message,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

type productDoc struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Name        string               `bson:"name"`
	Image       string               `bson:"image"`
	Description string               `bson:"description"`
	Price       primitive.Decimal128 `bson:"price"`
	Category    primitive.ObjectID   `bson:"category"`
	CreatedAt   time.Time            `bson:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt"`
}

func (d productDoc) toDomain() domain.Product {
	return domain.Product{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Image:       d.Image,
		Description: d.Description,
		Price:       fromDecimal128(d.Price),
		CategoryID:  d.Category.Hex(),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type categoryDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Slug      string             `bson:"slug"`
	Order     int                `bson:"order"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d categoryDoc) toDomain() domain.Category {
	return domain.Category{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Slug:      d.Slug,
		Order:     d.Order,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type userDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Name       string             `bson:"name"`
	Email      string             `bson:"email"`
	Phone      string             `bson:"phone"`
	ProfilePic string             `bson:"profilePic"`
	Password   string             `bson:"password"`
	Role       string             `bson:"role"`
	CreatedAt  time.Time          `bson:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt"`
}

func (d userDoc) toDomain() domain.User {
	return domain.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		Phone:        d.Phone,
		ProfilePic:   d.ProfilePic,
		PasswordHash: d.Password,
		Role:         domain.Role(d.Role),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type savedAddressDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	User      primitive.ObjectID `bson:"user"`
	Address   addressDoc         `bson:",inline"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d savedAddressDoc) toDomain() domain.SavedAddress {
	return domain.SavedAddress{
		ID:        d.ID.Hex(),
		UserID:    d.User.Hex(),
		Address:   d.Address.toDomain(),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
