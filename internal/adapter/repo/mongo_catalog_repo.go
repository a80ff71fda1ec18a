package repo

import (
	"context"
	"fmt"

	domain "github.com/Eddi3MS/delivery-bd/internal/entity"
	"github.com/Eddi3MS/delivery-bd/internal/usecase"
	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoProductRepo struct{ col *mongo.Collection }

func NewMongoProductRepo(db *mongo.Database) *MongoProductRepo {
	return &MongoProductRepo{col: db.Collection(colProducts)}
}

// FindProductsByIDs resolves prices with a single $in query.
func (r *MongoProductRepo) FindProductsByIDs(ctx context.Context, ids []string) ([]usecase.ProductPrice, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if v, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, v)
		}
	}
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": oids}},
		options.Find().SetProjection(bson.M{"_id": 1, "price": 1}))
	if err != nil {
		return nil, fmt.Errorf("find product prices: %w", err)
	}
	var docs []productDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode product prices: %w", err)
	}
	return lo.Map(docs, func(d productDoc, _ int) usecase.ProductPrice {
		return usecase.ProductPrice{ID: d.ID.Hex(), Price: fromDecimal128(d.Price)}
	}), nil
}

func (r *MongoProductRepo) Create(ctx context.Context, p *domain.Product) error {
	price, err := toDecimal128(p.Price)
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	category, err := primitive.ObjectIDFromHex(p.CategoryID)
	if err != nil {
		return fmt.Errorf("create product: category id %q: %w", p.CategoryID, err)
	}
	p.CreatedAt = now()
	p.UpdatedAt = p.CreatedAt
	res, err := r.col.InsertOne(ctx, productDoc{
		Name:        p.Name,
		Image:       p.Image,
		Description: p.Description,
		Price:       price,
		Category:    category,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	p.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (r *MongoProductRepo) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	_id, err := oid(id)
	if err != nil {
		return nil, err
	}
	var doc productDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": _id}).Decode(&doc); err != nil {
		return nil, notFound("find product", err)
	}
	p := doc.toDomain()
	return &p, nil
}

func (r *MongoProductRepo) UpdateByID(ctx context.Context, id string, upd usecase.ProductUpdate) error {
	_id, err := oid(id)
	if err != nil {
		return err
	}
	set := bson.D{{Key: "updatedAt", Value: now()}}
	set = setIf(set, "name", upd.Name)
	set = setIf(set, "image", upd.Image)
	set = setIf(set, "description", upd.Description)
	if upd.Price != nil {
		price, err := toDecimal128(*upd.Price)
		if err != nil {
			return fmt.Errorf("update product: %w", err)
		}
		set = append(set, bson.E{Key: "price", Value: price})
	}
	if upd.CategoryID != nil {
		category, err := primitive.ObjectIDFromHex(*upd.CategoryID)
		if err != nil {
			return fmt.Errorf("update product: category id %q: %w", *upd.CategoryID, err)
		}
		set = append(set, bson.E{Key: "category", Value: category})
	}

	res, err := r.col.UpdateByID(ctx, _id, bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return usecase.ErrNotFound
	}
	return nil
}

func (r *MongoProductRepo) DeleteByID(ctx context.Context, id string) error {
	_id, err := oid(id)
	if err != nil {
		return err
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": _id})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return usecase.ErrNotFound
	}
	return nil
}

func (r *MongoProductRepo) FindAll(ctx context.Context) ([]domain.Product, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	var docs []productDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return lo.Map(docs, func(d productDoc, _ int) domain.Product { return d.toDomain() }), nil
}

type MongoCategoryRepo struct{ col *mongo.Collection }

func NewMongoCategoryRepo(db *mongo.Database) *MongoCategoryRepo {
	return &MongoCategoryRepo{col: db.Collection(colCategories)}
}

func (r *MongoCategoryRepo) Create(ctx context.Context, c *domain.Category) error {
	c.CreatedAt = now()
	c.UpdatedAt = c.CreatedAt
	res, err := r.col.InsertOne(ctx, categoryDoc{
		Name:      c.Name,
		Slug:      c.Slug,
		Order:     c.Order,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	})
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("create category: %w", usecase.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	c.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (r *MongoCategoryRepo) FindByID(ctx context.Context, id string) (*domain.Category, error) {
	_id, err := oid(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": _id})
}

func (r *MongoCategoryRepo) FindBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

func (r *MongoCategoryRepo) Rename(ctx context.Context, id, name, slug string) error {
	_id, err := oid(id)
	if err != nil {
		return err
	}
	res, err := r.col.UpdateByID(ctx, _id, bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: name},
		{Key: "slug", Value: slug},
		{Key: "updatedAt", Value: now()},
	}}})
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("rename category: %w", usecase.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("rename category: %w", err)
	}
	if res.MatchedCount == 0 {
		return usecase.ErrNotFound
	}
	return nil
}

func (r *MongoCategoryRepo) DeleteByID(ctx context.Context, id string) error {
	_id, err := oid(id)
	if err != nil {
		return err
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": _id})
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if res.DeletedCount == 0 {
		return usecase.ErrNotFound
	}
	return nil
}

func (r *MongoCategoryRepo) FindAll(ctx context.Context) ([]domain.Category, error) {
	cur, err := r.col.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "order", Value: -1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find categories: %w", err)
	}
	var docs []categoryDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	return lo.Map(docs, func(d categoryDoc, _ int) domain.Category { return d.toDomain() }), nil
}

// Reorder applies all positions in one unordered bulk write.
func (r *MongoCategoryRepo) Reorder(ctx context.Context, positions []usecase.CategoryPosition) error {
	if len(positions) == 0 {
		return nil
	}
	ts := now()
	models := make([]mongo.WriteModel, 0, len(positions))
	for _, p := range positions {
		_id, err := primitive.ObjectIDFromHex(p.ID)
		if err != nil {
			return fmt.Errorf("reorder categories: id %q: %w", p.ID, err)
		}
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": _id}).
			SetUpdate(bson.D{{Key: "$set", Value: bson.D{
				{Key: "order", Value: p.Order},
				{Key: "updatedAt", Value: ts},
			}}}))
	}
	if _, err := r.col.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false)); err != nil {
		return fmt.Errorf("reorder categories: %w", err)
	}
	return nil
}

func (r *MongoCategoryRepo) findOne(ctx context.Context, filter bson.M) (*domain.Category, error) {
	var doc categoryDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, notFound("find category", err)
	}
	c := doc.toDomain()
	return &c, nil
}

var (
	_ usecase.ProductRepo  = (*MongoProductRepo)(nil)
	_ usecase.CategoryRepo = (*MongoCategoryRepo)(nil)
)
