package payment

import (
	"context"
	"time"

	"go-dernek/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *Payment) error
	FindByID(ctx context.Context, id string) (*Payment, error)
	List(ctx context.Context, filter map[string]interface{}, page, limit int64) ([]Payment, int64, error)
	Update(ctx context.Context, id string, fields bson.M) error
	Delete(ctx context.Context, id string) error
	TotalForDebt(ctx context.Context, debtID primitive.ObjectID) (float64, error)
	CountForDebt(ctx context.Context, debtID primitive.ObjectID) (int64, error)
	TotalForRegister(ctx context.Context, registerID primitive.ObjectID) (float64, error)
	EnsureIndexes(ctx context.Context) error
}

type PaymentRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewPaymentRepository(mongodb *database.MongodbDB) PaymentRepository {
	return &PaymentRepositoryImpl{
		Collection: mongodb.DB.Collection("odemeler"),
	}
}

func (r *PaymentRepositoryImpl) Create(ctx context.Context, payment *Payment) error {
	_, err := r.Collection.InsertOne(ctx, payment)
	return err
}

func (r *PaymentRepositoryImpl) FindByID(ctx context.Context, id string) (*Payment, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var payment Payment
	if err := r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepositoryImpl) List(ctx context.Context, filter map[string]interface{}, page, limit int64) ([]Payment, int64, error) {
	query := bson.M{}
	for k, v := range filter {
		query[k] = v
	}

	total, err := r.Collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "odemeTarihi", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := r.Collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var payments []Payment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

func (r *PaymentRepositoryImpl) Update(ctx context.Context, id string, fields bson.M) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	fields["updated_at"] = time.Now()

	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": fields})
	return err
}

func (r *PaymentRepositoryImpl) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	return err
}

func (r *PaymentRepositoryImpl) sumWhere(ctx context.Context, match bson.M) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$odemeTutari"},
		}}},
	}

	cursor, err := r.Collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}

// TotalForDebt sums the amounts of every payment referencing the debt
func (r *PaymentRepositoryImpl) TotalForDebt(ctx context.Context, debtID primitive.ObjectID) (float64, error) {
	return r.sumWhere(ctx, bson.M{"borc_id": debtID})
}

func (r *PaymentRepositoryImpl) CountForDebt(ctx context.Context, debtID primitive.ObjectID) (int64, error) {
	return r.Collection.CountDocuments(ctx, bson.M{"borc_id": debtID})
}

func (r *PaymentRepositoryImpl) TotalForRegister(ctx context.Context, registerID primitive.ObjectID) (float64, error) {
	return r.sumWhere(ctx, bson.M{"kasa_id": registerID})
}

func (r *PaymentRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "borc_id", Value: 1}}},
		{Keys: bson.D{{Key: "uye_id", Value: 1}, {Key: "odemeTarihi", Value: -1}}},
		{Keys: bson.D{{Key: "kasa_id", Value: 1}}},
	})
	return err
}
