package person

import (
	"context"
	"time"

	"go-dernek/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PersonRepository interface {
	Create(ctx context.Context, person *Person) error
	FindByID(ctx context.Context, id string) (*Person, error)
	FindByNationalID(ctx context.Context, nationalID string) (*Person, error)
	List(ctx context.Context, filter map[string]interface{}, search string, page, limit int64) ([]Person, int64, error)
	Update(ctx context.Context, id string, fields bson.M) error
	Delete(ctx context.Context, id string) error
	EnsureIndexes(ctx context.Context) error
}

type PersonRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewPersonRepository(mongodb *database.MongodbDB) PersonRepository {
	return &PersonRepositoryImpl{
		Collection: mongodb.DB.Collection("kisiler"),
	}
}

func (r *PersonRepositoryImpl) Create(ctx context.Context, person *Person) error {
	_, err := r.Collection.InsertOne(ctx, person)
	return err
}

func (r *PersonRepositoryImpl) FindByID(ctx context.Context, id string) (*Person, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var person Person
	if err := r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&person); err != nil {
		return nil, err
	}
	return &person, nil
}

func (r *PersonRepositoryImpl) FindByNationalID(ctx context.Context, nationalID string) (*Person, error) {
	var person Person
	err := r.Collection.FindOne(ctx, bson.M{"tcKimlikNo": nationalID}).Decode(&person)
	if err != nil {
		return nil, err
	}
	return &person, nil
}

func (r *PersonRepositoryImpl) List(ctx context.Context, filter map[string]interface{}, search string, page, limit int64) ([]Person, int64, error) {
	query := bson.M{}
	for k, v := range filter {
		query[k] = v
	}
	if search != "" {
		query["$or"] = bson.A{
			bson.M{"ad": bson.M{"$regex": search, "$options": "i"}},
			bson.M{"soyad": bson.M{"$regex": search, "$options": "i"}},
			bson.M{"tcKimlikNo": bson.M{"$regex": search}},
		}
	}

	total, err := r.Collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "soyad", Value: 1}, {Key: "ad", Value: 1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := r.Collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var people []Person
	if err := cursor.All(ctx, &people); err != nil {
		return nil, 0, err
	}
	return people, total, nil
}

func (r *PersonRepositoryImpl) Update(ctx context.Context, id string, fields bson.M) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	fields["updated_at"] = time.Now()

	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": fields})
	return err
}

func (r *PersonRepositoryImpl) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	return err
}

func (r *PersonRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "tcKimlikNo", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "soyad", Value: 1}, {Key: "ad", Value: 1}}},
	})
	return err
}
