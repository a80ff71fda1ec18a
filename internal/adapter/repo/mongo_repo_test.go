package repo_test

import (
	"context"
	"testing"

	"github.com/Eddi3MS/delivery-bd/internal/adapter/repo"
	domain "github.com/Eddi3MS/delivery-bd/internal/entity"
	"github.com/Eddi3MS/delivery-bd/internal/usecase"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoRepoSuite struct {
	suite.Suite

	container *mongodb.MongoDBContainer
	client    *mongo.Client
	db        *mongo.Database

	orders     *repo.MongoOrderRepo
	products   *repo.MongoProductRepo
	categories *repo.MongoCategoryRepo
	users      *repo.MongoUserRepo
	addresses  *repo.MongoAddressRepo
}

// entry point to run the tests in the suite
func TestMongoRepoSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("starts a MongoDB container")
	}
	suite.Run(t, new(mongoRepoSuite))
}

// before all tests in the suite
func (s *mongoRepoSuite) SetupSuite() {
	ctx := context.Background()

	var err error
	s.container, err = mongodb.Run(ctx, "mongo:7")
	s.Require().NoError(err)

	uri, err := s.container.ConnectionString(ctx)
	s.Require().NoError(err)

	s.client, err = repo.Connect(ctx, uri, 0)
	s.Require().NoError(err)

	s.db = s.client.Database("delivery_test")
	s.Require().NoError(repo.EnsureIndexes(ctx, s.db))

	s.orders = repo.NewMongoOrderRepo(s.db)
	s.products = repo.NewMongoProductRepo(s.db)
	s.categories = repo.NewMongoCategoryRepo(s.db)
	s.users = repo.NewMongoUserRepo(s.db)
	s.addresses = repo.NewMongoAddressRepo(s.db)
}

// after all tests in the suite
func (s *mongoRepoSuite) TearDownSuite() {
	ctx := context.Background()
	if s.client != nil {
		s.NoError(s.client.Disconnect(ctx))
	}
	if s.container != nil {
		s.NoError(s.container.Terminate(ctx))
	}
}

func (s *mongoRepoSuite) TearDownTest() {
	ctx := context.Background()
	for _, col := range []string{"orders", "products", "categories", "users", "addresses"} {
		_, err := s.db.Collection(col).DeleteMany(ctx, map[string]any{})
		s.NoError(err)
	}
}

func randomOrder(customerID string, productIDs ...string) domain.Order {
	o := domain.Order{
		CustomerID: customerID,
		Address: domain.Address{
			Street:       gofakeit.Street(),
			Number:       gofakeit.StreetNumber(),
			Neighborhood: gofakeit.City(),
		},
		Status: domain.StatusPending,
	}
	for _, id := range productIDs {
		price := decimal.NewFromFloat(gofakeit.Price(1, 500)).Round(2)
		o.Items = append(o.Items, domain.OrderItem{ProductID: id, Quantity: gofakeit.IntRange(1, 5), Price: price})
	}
	o.Total = o.ItemsTotal()
	return o
}

func (s *mongoRepoSuite) TestOrders_RoundTrip() {
	ctx := context.Background()
	customer := primitive.NewObjectID().Hex()
	in := randomOrder(customer, primitive.NewObjectID().Hex(), primitive.NewObjectID().Hex())

	s.Require().NoError(s.orders.Create(ctx, &in))
	s.Require().NotEmpty(in.ID)

	got, err := s.orders.FindByID(ctx, in.ID)
	s.Require().NoError(err)
	if diff := cmp.Diff(in, *got, cmpopts.EquateApproxTime(0)); diff != "" {
		s.T().Errorf("order mismatch (-want +got):\n%s", diff)
	}

	shipped := domain.StatusShipped
	msg := "left the store"
	s.Require().NoError(s.orders.UpdateByID(ctx, in.ID, usecase.OrderUpdate{Status: &shipped, Message: &msg}))
	got, err = s.orders.FindByID(ctx, in.ID)
	s.Require().NoError(err)
	s.Equal(shipped, got.Status)
	s.Equal(msg, got.Message)
	s.True(got.Total.Equal(in.Total))

	s.Require().NoError(s.orders.DeleteByID(ctx, in.ID))
	_, err = s.orders.FindByID(ctx, in.ID)
	s.ErrorIs(err, usecase.ErrNotFound)
	s.ErrorIs(s.orders.DeleteByID(ctx, in.ID), usecase.ErrNotFound)
	s.ErrorIs(s.orders.UpdateByID(ctx, in.ID, usecase.OrderUpdate{Status: &shipped}), usecase.ErrNotFound)
}

func (s *mongoRepoSuite) TestOrders_FindByCustomerKeepsInsertionOrder() {
	ctx := context.Background()
	me, them := primitive.NewObjectID().Hex(), primitive.NewObjectID().Hex()
	product := primitive.NewObjectID().Hex()

	var mine []string
	for i := 0; i < 4; i++ {
		o := randomOrder(me, product)
		s.Require().NoError(s.orders.Create(ctx, &o))
		mine = append(mine, o.ID)
		theirs := randomOrder(them, product)
		s.Require().NoError(s.orders.Create(ctx, &theirs))
	}

	got, err := s.orders.FindByCustomer(ctx, me)
	s.Require().NoError(err)
	ids := make([]string, 0, len(got))
	for _, o := range got {
		s.Equal(me, o.CustomerID)
		ids = append(ids, o.ID)
	}
	s.Equal(mine, ids)

	all, err := s.orders.FindAll(ctx)
	s.Require().NoError(err)
	s.Len(all, 8)
}

func (s *mongoRepoSuite) TestCatalog_PricesAndGrouping() {
	ctx := context.Background()
	cat := &domain.Category{Name: "Drinks", Slug: "DRINKS"}
	s.Require().NoError(s.categories.Create(ctx, cat))

	dup := &domain.Category{Name: "drinks", Slug: "DRINKS"}
	s.ErrorIs(s.categories.Create(ctx, dup), usecase.ErrConflict)

	p := &domain.Product{Name: "Soda", Image: "img/1", Description: "cold", Price: decimal.RequireFromString("450.50"), CategoryID: cat.ID}
	s.Require().NoError(s.products.Create(ctx, p))

	prices, err := s.products.FindProductsByIDs(ctx, []string{p.ID, primitive.NewObjectID().Hex()})
	s.Require().NoError(err)
	s.Require().Len(prices, 1)
	s.Equal(p.ID, prices[0].ID)
	s.True(prices[0].Price.Equal(p.Price), "got %s", prices[0].Price)

	newPrice := decimal.NewFromInt(500)
	s.Require().NoError(s.products.UpdateByID(ctx, p.ID, usecase.ProductUpdate{Price: &newPrice}))
	got, err := s.products.FindByID(ctx, p.ID)
	s.Require().NoError(err)
	s.True(got.Price.Equal(newPrice))
	s.Equal("Soda", got.Name)

	other := &domain.Category{Name: "Food", Slug: "FOOD"}
	s.Require().NoError(s.categories.Create(ctx, other))
	s.Require().NoError(s.categories.Reorder(ctx, []usecase.CategoryPosition{{ID: cat.ID, Order: 1}, {ID: other.ID, Order: 9}}))
	list, err := s.categories.FindAll(ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(other.ID, list[0].ID)

	bySlug, err := s.categories.FindBySlug(ctx, "DRINKS")
	s.Require().NoError(err)
	s.Equal(cat.ID, bySlug.ID)
	_, err = s.categories.FindBySlug(ctx, "NOPE")
	s.ErrorIs(err, usecase.ErrNotFound)
}

func (s *mongoRepoSuite) TestUsersAndAddresses() {
	ctx := context.Background()
	u := &domain.User{Name: gofakeit.Name(), Email: gofakeit.Email(), Phone: gofakeit.Phone(), PasswordHash: "hash", Role: domain.RoleUser}
	s.Require().NoError(s.users.Create(ctx, u))

	clone := *u
	s.ErrorIs(s.users.Create(ctx, &clone), usecase.ErrConflict)

	byEmail, err := s.users.FindByEmail(ctx, u.Email)
	s.Require().NoError(err)
	s.Equal(u.ID, byEmail.ID)
	s.Equal("hash", byEmail.PasswordHash)

	name := "Renamed"
	updated, err := s.users.UpdateByID(ctx, u.ID, usecase.UserUpdate{Name: &name})
	s.Require().NoError(err)
	s.Equal("Renamed", updated.Name)
	s.Equal(u.Email, updated.Email)

	_, err = s.users.UpdateByID(ctx, primitive.NewObjectID().Hex(), usecase.UserUpdate{Name: &name})
	s.ErrorIs(err, usecase.ErrNotFound)

	a := &domain.SavedAddress{UserID: u.ID, Address: domain.Address{Street: "Main", Number: "1", Neighborhood: "Center"}}
	s.Require().NoError(s.addresses.Create(ctx, a))
	street := "Second"
	s.Require().NoError(s.addresses.UpdateByID(ctx, a.ID, usecase.AddressUpdate{Street: &street}))

	list, err := s.addresses.FindByUser(ctx, u.ID)
	s.Require().NoError(err)
	require.Len(s.T(), list, 1)
	s.Equal("Second", list[0].Street)
	s.Equal("Center", list[0].Neighborhood)

	s.Require().NoError(s.addresses.DeleteByID(ctx, a.ID))
	s.ErrorIs(s.addresses.DeleteByID(ctx, a.ID), usecase.ErrNotFound)
}
