package repo

import (
	"context"
	"fmt"

	domain "github.com/Eddi3MS/delivery-bd/internal/entity"
	"github.com/Eddi3MS/delivery-bd/internal/usecase"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoOrderRepo struct{ col *mongo.Collection }

func NewMongoOrderRepo(db *mongo.Database) *MongoOrderRepo {
	return &MongoOrderRepo{col: db.Collection(colOrders)}
}

func (r *MongoOrderRepo) Create(ctx context.Context, o *domain.Order) error {
	o.CreatedAt = now()
	o.UpdatedAt = o.CreatedAt
	doc, err := newOrderDoc(o)
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	o.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (r *MongoOrderRepo) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	_id, err := oid(id)
	if err != nil {
		return nil, err
	}
	var doc orderDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": _id}).Decode(&doc); err != nil {
		return nil, notFound("find order", err)
	}
	o := doc.toDomain()
	return &o, nil
}

// UpdateByID sets status and message only. Items, total, address and
// customer are never rewritten after creation.
func (r *MongoOrderRepo) UpdateByID(ctx context.Context, id string, upd usecase.OrderUpdate) error {
	_id, err := oid(id)
	if err != nil {
		return err
	}
	set := bson.D{{Key: "updatedAt", Value: now()}}
	if upd.Status != nil {
		set = append(set, bson.E{Key: "status", Value: string(*upd.Status)})
	}
	set = setIf(set, "message", upd.Message)

	res, err := r.col.UpdateByID(ctx, _id, bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if res.MatchedCount == 0 {
		return usecase.ErrNotFound
	}
	return nil
}

func (r *MongoOrderRepo) DeleteByID(ctx context.Context, id string) error {
	_id, err := oid(id)
	if err != nil {
		return err
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": _id})
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if res.DeletedCount == 0 {
		return usecase.ErrNotFound
	}
	return nil
}

func (r *MongoOrderRepo) FindAll(ctx context.Context) ([]domain.Order, error) {
	return r.find(ctx, bson.M{})
}

// FindByCustomer returns orders oldest first; ObjectIDs grow with insertion time.
func (r *MongoOrderRepo) FindByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	customer, err := primitive.ObjectIDFromHex(customerID)
	if err != nil {
		return []domain.Order{}, nil
	}
	return r.find(ctx, bson.M{"customer": customer})
}

func (r *MongoOrderRepo) find(ctx context.Context, filter bson.M) ([]domain.Order, error) {
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}
	var docs []orderDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	out := make([]domain.Order, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

var _ usecase.OrderRepo = (*MongoOrderRepo)(nil)
