package subscriber

import (
	"context"
	"time"

	"go-dernek/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SubscriberRepository interface {
	Create(ctx context.Context, sub *Subscriber) error
	FindByID(ctx context.Context, id string) (*Subscriber, error)
	List(ctx context.Context, filter map[string]interface{}, page, limit int64) ([]Subscriber, int64, error)
	Update(ctx context.Context, id string, fields bson.M) error
	Delete(ctx context.Context, id string) error
	CountForPerson(ctx context.Context, personID primitive.ObjectID) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

type SubscriberRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewSubscriberRepository(mongodb *database.MongodbDB) SubscriberRepository {
	return &SubscriberRepositoryImpl{
		Collection: mongodb.DB.Collection("aboneler"),
	}
}

func (r *SubscriberRepositoryImpl) Create(ctx context.Context, sub *Subscriber) error {
	_, err := r.Collection.InsertOne(ctx, sub)
	return err
}

func (r *SubscriberRepositoryImpl) FindByID(ctx context.Context, id string) (*Subscriber, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var sub Subscriber
	if err := r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriberRepositoryImpl) List(ctx context.Context, filter map[string]interface{}, page, limit int64) ([]Subscriber, int64, error) {
	query := bson.M{}
	for k, v := range filter {
		query[k] = v
	}

	total, err := r.Collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "aboneNo", Value: 1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := r.Collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var subs []Subscriber
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}

func (r *SubscriberRepositoryImpl) Update(ctx context.Context, id string, fields bson.M) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	fields["updated_at"] = time.Now()

	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": fields})
	return err
}

func (r *SubscriberRepositoryImpl) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	return err
}

func (r *SubscriberRepositoryImpl) CountForPerson(ctx context.Context, personID primitive.ObjectID) (int64, error) {
	return r.Collection.CountDocuments(ctx, bson.M{"kisi_id": personID})
}

func (r *SubscriberRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "aboneTuru", Value: 1}, {Key: "aboneNo", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "kisi_id", Value: 1}}},
	})
	return err
}
