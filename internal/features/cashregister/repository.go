package cashregister

import (
	"context"
	"time"

	"go-dernek/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RegisterRepository interface {
	Create(ctx context.Context, register *Register) error
	FindByID(ctx context.Context, id string) (*Register, error)
	List(ctx context.Context) ([]Register, error)
	Update(ctx context.Context, id string, fields bson.M) error
	Delete(ctx context.Context, id string) error
}

type RegisterRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewRegisterRepository(mongodb *database.MongodbDB) RegisterRepository {
	return &RegisterRepositoryImpl{
		Collection: mongodb.DB.Collection("kasalar"),
	}
}

func (r *RegisterRepositoryImpl) Create(ctx context.Context, register *Register) error {
	_, err := r.Collection.InsertOne(ctx, register)
	return err
}

func (r *RegisterRepositoryImpl) FindByID(ctx context.Context, id string) (*Register, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var register Register
	if err := r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&register); err != nil {
		return nil, err
	}
	return &register, nil
}

func (r *RegisterRepositoryImpl) List(ctx context.Context) ([]Register, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "ad", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var registers []Register
	if err := cursor.All(ctx, &registers); err != nil {
		return nil, err
	}
	return registers, nil
}

func (r *RegisterRepositoryImpl) Update(ctx context.Context, id string, fields bson.M) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	fields["updated_at"] = time.Now()

	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": fields})
	return err
}

func (r *RegisterRepositoryImpl) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	return err
}
