package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Eddi3MS/delivery-bd/internal/usecase"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	colOrders     = "orders"
	colProducts   = "products"
	colCategories = "categories"
	colUsers      = "users"
	colAddresses  = "addresses"
)

// Connect opens a client and pings the primary before returning.
func Connect(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetConnectTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// EnsureIndexes creates the indexes the repositories rely on. Safe to rerun.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		colUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		colCategories: {
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "order", Value: -1}}},
		},
		colProducts: {
			{Keys: bson.D{{Key: "category", Value: 1}}},
		},
		colOrders: {
			{Keys: bson.D{{Key: "customer", Value: 1}, {Key: "_id", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
		},
		colAddresses: {
			{Keys: bson.D{{Key: "user", Value: 1}}},
		},
	}
	for col, models := range specs {
		if _, err := db.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", col, err)
		}
	}
	return nil
}

// Pinger reports database reachability for the health endpoint.
type Pinger struct{ client *mongo.Client }

func NewPinger(client *mongo.Client) *Pinger { return &Pinger{client: client} }

func (p *Pinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx, readpref.Primary())
}

// oid parses a hex id. Malformed ids cannot exist in the store.
func oid(id string) (primitive.ObjectID, error) {
	v, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, usecase.ErrNotFound
	}
	return v, nil
}

func notFound(op string, err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%s: %w", op, usecase.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func now() time.Time { return time.Now().UTC().Truncate(time.Millisecond) }

// setIf adds field to a $set document when v is non-nil.
func setIf[T any](set bson.D, field string, v *T) bson.D {
	if v == nil {
		return set
	}
	return append(set, bson.E{Key: field, Value: *v})
}
