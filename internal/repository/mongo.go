package repository

import (
	"context"
	"errors"
	"time"

	"github.com/umalmyha/customer-records/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const customersCollection = "customers"

type customerDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	FirstName string             `bson:"firstName"`
	LastName  string             `bson:"lastName"`
	Telephone string             `bson:"telephone"`
	Email     string             `bson:"email"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d *customerDocument) customer() *model.Customer {
	return &model.Customer{
		ID:        d.ID.Hex(),
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Telephone: d.Telephone,
		Email:     d.Email,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

type mongoCustomerRepository struct {
	coll *mongo.Collection
}

// NewMongoCustomerRepository builds mongodb customer repository over given database
func NewMongoCustomerRepository(db *mongo.Database) CustomerRepository {
	return &mongoCustomerRepository{coll: db.Collection(customersCollection)}
}

// EnsureMongoIndexes creates unique email index and listing index
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(customersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("customers_email_unique"),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("customers_created_at"),
		},
	})
	return err
}

func (r *mongoCustomerRepository) FindByID(ctx context.Context, id string) (*model.Customer, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *mongoCustomerRepository) FindByEmail(ctx context.Context, email string) (*model.Customer, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *mongoCustomerRepository) FindPage(ctx context.Context, skip, limit int64) ([]*model.Customer, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	return r.find(ctx, bson.M{}, opts)
}

func (r *mongoCustomerRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *mongoCustomerRepository) Search(ctx context.Context, term string) ([]*model.Customer, error) {
	pattern := primitive.Regex{Pattern: term, Options: "i"}
	filter := bson.M{
		"$or": bson.A{
			bson.M{"firstName": bson.M{"$regex": pattern}},
			bson.M{"lastName": bson.M{"$regex": pattern}},
		},
	}
	return r.find(ctx, filter, options.Find())
}

func (r *mongoCustomerRepository) Create(ctx context.Context, c *model.Customer) error {
	doc := customerDocument{
		ID:        primitive.NewObjectID(),
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Telephone: c.Telephone,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}

	if _, err := r.coll.InsertOne(ctx, &doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return err
	}

	c.ID = doc.ID.Hex()
	return nil
}

func (r *mongoCustomerRepository) Update(ctx context.Context, c *model.Customer) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(c.ID)
	if err != nil {
		return false, nil
	}

	upd := bson.M{
		"$set": bson.M{
			"firstName": c.FirstName,
			"lastName":  c.LastName,
			"telephone": c.Telephone,
			"email":     c.Email,
			"updatedAt": c.UpdatedAt,
		},
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, upd)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, ErrDuplicateEmail
		}
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *mongoCustomerRepository) DeleteByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}

	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return err
	}
	return nil
}

func (r *mongoCustomerRepository) findOne(ctx context.Context, filter bson.M) (*model.Customer, error) {
	var doc customerDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return doc.customer(), nil
}

func (r *mongoCustomerRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*model.Customer, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	customers := make([]*model.Customer, 0)
	for cursor.Next(ctx) {
		var doc customerDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		customers = append(customers, doc.customer())
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return customers, nil
}
