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

type MongoUserRepo struct{ col *mongo.Collection }

func NewMongoUserRepo(db *mongo.Database) *MongoUserRepo {
	return &MongoUserRepo{col: db.Collection(colUsers)}
}

func (r *MongoUserRepo) Create(ctx context.Context, u *domain.User) error {
	u.CreatedAt = now()
	u.UpdatedAt = u.CreatedAt
	res, err := r.col.InsertOne(ctx, userDoc{
		Name:       u.Name,
		Email:      u.Email,
		Phone:      u.Phone,
		ProfilePic: u.ProfilePic,
		Password:   u.PasswordHash,
		Role:       string(u.Role),
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	})
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("create user: %w", usecase.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	u.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (r *MongoUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	_id, err := oid(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": _id})
}

func (r *MongoUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUserRepo) UpdateByID(ctx context.Context, id string, upd usecase.UserUpdate) (*domain.User, error) {
	_id, err := oid(id)
	if err != nil {
		return nil, err
	}
	set := bson.D{{Key: "updatedAt", Value: now()}}
	set = setIf(set, "name", upd.Name)
	set = setIf(set, "email", upd.Email)
	set = setIf(set, "phone", upd.Phone)
	set = setIf(set, "profilePic", upd.ProfilePic)
	set = setIf(set, "password", upd.PasswordHash)

	var doc userDoc
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": _id}, bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if mongo.IsDuplicateKeyError(err) {
		return nil, fmt.Errorf("update user: %w", usecase.ErrConflict)
	}
	if err != nil {
		return nil, notFound("update user", err)
	}
	u := doc.toDomain()
	return &u, nil
}

func (r *MongoUserRepo) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc userDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, notFound("find user", err)
	}
	u := doc.toDomain()
	return &u, nil
}

type MongoAddressRepo struct{ col *mongo.Collection }

func NewMongoAddressRepo(db *mongo.Database) *MongoAddressRepo {
	return &MongoAddressRepo{col: db.Collection(colAddresses)}
}

func (r *MongoAddressRepo) Create(ctx context.Context, a *domain.SavedAddress) error {
	user, err := primitive.ObjectIDFromHex(a.UserID)
	if err != nil {
		return fmt.Errorf("create address: user id %q: %w", a.UserID, err)
	}
	a.CreatedAt = now()
	a.UpdatedAt = a.CreatedAt
	res, err := r.col.InsertOne(ctx, savedAddressDoc{
		User:      user,
		Address:   newAddressDoc(a.Address),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("create address: %w", err)
	}
	a.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (r *MongoAddressRepo) FindByID(ctx context.Context, id string) (*domain.SavedAddress, error) {
	_id, err := oid(id)
	if err != nil {
		return nil, err
	}
	var doc savedAddressDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": _id}).Decode(&doc); err != nil {
		return nil, notFound("find address", err)
	}
	a := doc.toDomain()
	return &a, nil
}

func (r *MongoAddressRepo) FindByUser(ctx context.Context, userID string) ([]domain.SavedAddress, error) {
	user, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return []domain.SavedAddress{}, nil
	}
	cur, err := r.col.Find(ctx, bson.M{"user": user}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find addresses: %w", err)
	}
	var docs []savedAddressDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode addresses: %w", err)
	}
	return lo.Map(docs, func(d savedAddressDoc, _ int) domain.SavedAddress { return d.toDomain() }), nil
}

func (r *MongoAddressRepo) UpdateByID(ctx context.Context, id string, upd usecase.AddressUpdate) error {
	_id, err := oid(id)
	if err != nil {
		return err
	}
	set := bson.D{{Key: "updatedAt", Value: now()}}
	set = setIf(set, "street", upd.Street)
	set = setIf(set, "number", upd.Number)
	set = setIf(set, "complement", upd.Complement)
	set = setIf(set, "neighborhood", upd.Neighborhood)

	res, err := r.col.UpdateByID(ctx, _id, bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return fmt.Errorf("update address: %w", err)
	}
	if res.MatchedCount == 0 {
		return usecase.ErrNotFound
	}
	return nil
}

func (r *MongoAddressRepo) DeleteByID(ctx context.Context, id string) error {
	_id, err := oid(id)
	if err != nil {
		return err
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": _id})
	if err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	if res.DeletedCount == 0 {
		return usecase.ErrNotFound
	}
	return nil
}

var (
	_ usecase.UserRepo    = (*MongoUserRepo)(nil)
	_ usecase.AddressRepo = (*MongoAddressRepo)(nil)
)
