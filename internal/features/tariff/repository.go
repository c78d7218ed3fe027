package tariff

import (
	"context"
	"time"

	"go-dernek/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TariffRepository interface {
	Create(ctx context.Context, tariff *Tariff) error
	FindByID(ctx context.Context, id string) (*Tariff, error)
	List(ctx context.Context, filter map[string]interface{}) ([]Tariff, error)
	Update(ctx context.Context, id string, fields bson.M) error
	Delete(ctx context.Context, id string) error
}

type TariffRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewTariffRepository(mongodb *database.MongodbDB) TariffRepository {
	return &TariffRepositoryImpl{
		Collection: mongodb.DB.Collection("tarifeler"),
	}
}

func (r *TariffRepositoryImpl) Create(ctx context.Context, tariff *Tariff) error {
	_, err := r.Collection.InsertOne(ctx, tariff)
	return err
}

func (r *TariffRepositoryImpl) FindByID(ctx context.Context, id string) (*Tariff, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var tariff Tariff
	if err := r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&tariff); err != nil {
		return nil, err
	}
	return &tariff, nil
}

func (r *TariffRepositoryImpl) List(ctx context.Context, filter map[string]interface{}) ([]Tariff, error) {
	query := bson.M{}
	for k, v := range filter {
		query[k] = v
	}

	cursor, err := r.Collection.Find(ctx, query,
		options.Find().SetSort(bson.D{{Key: "yil", Value: -1}, {Key: "ad", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tariffs []Tariff
	if err := cursor.All(ctx, &tariffs); err != nil {
		return nil, err
	}
	return tariffs, nil
}

func (r *TariffRepositoryImpl) Update(ctx context.Context, id string, fields bson.M) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	fields["updated_at"] = time.Now()

	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": fields})
	return err
}

func (r *TariffRepositoryImpl) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	return err
}
