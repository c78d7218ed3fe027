package debt

import (
	"context"
	"time"

	"go-dernek/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type DebtRepository interface {
	Create(ctx context.Context, debt *Debt) error
	CreateMany(ctx context.Context, debts []Debt) (int, error)
	FindByID(ctx context.Context, id string) (*Debt, error)
	List(ctx context.Context, filter map[string]interface{}, page, limit int64) ([]Debt, int64, error)
	Update(ctx context.Context, id string, fields bson.M) error
	UpdateBalance(ctx context.Context, id primitive.ObjectID, kalan float64, odendi bool) error
	Delete(ctx context.Context, id string) error
	ExistsForPeriod(ctx context.Context, memberID, tariffID primitive.ObjectID, year, month int) (bool, error)
	UnpaidCountForMember(ctx context.Context, memberID primitive.ObjectID) (int64, error)
	CountForTariff(ctx context.Context, tariffID primitive.ObjectID) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

type DebtRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewDebtRepository(mongodb *database.MongodbDB) DebtRepository {
	return &DebtRepositoryImpl{
		Collection: mongodb.DB.Collection("borclar"),
	}
}

func (r *DebtRepositoryImpl) Create(ctx context.Context, debt *Debt) error {
	_, err := r.Collection.InsertOne(ctx, debt)
	return err
}

func (r *DebtRepositoryImpl) CreateMany(ctx context.Context, debts []Debt) (int, error) {
	if len(debts) == 0 {
		return 0, nil
	}
	docs := make([]interface{}, 0, len(debts))
	for _, d := range debts {
		docs = append(docs, d)
	}
	res, err := r.Collection.InsertMany(ctx, docs)
	if err != nil {
		return 0, err
	}
	return len(res.InsertedIDs), nil
}

func (r *DebtRepositoryImpl) FindByID(ctx context.Context, id string) (*Debt, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var debt Debt
	if err := r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&debt); err != nil {
		return nil, err
	}
	return &debt, nil
}

func (r *DebtRepositoryImpl) List(ctx context.Context, filter map[string]interface{}, page, limit int64) ([]Debt, int64, error) {
	query := bson.M{}
	for k, v := range filter {
		query[k] = v
	}

	total, err := r.Collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "yil", Value: -1}, {Key: "ay", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := r.Collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var debts []Debt
	if err := cursor.All(ctx, &debts); err != nil {
		return nil, 0, err
	}
	return debts, total, nil
}

func (r *DebtRepositoryImpl) Update(ctx context.Context, id string, fields bson.M) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	fields["updated_at"] = time.Now()

	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": fields})
	return err
}

func (r *DebtRepositoryImpl) UpdateBalance(ctx context.Context, id primitive.ObjectID, kalan float64, odendi bool) error {
	_, err := r.Collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"kalan":      kalan,
		"odendi":     odendi,
		"updated_at": time.Now(),
	}})
	return err
}

func (r *DebtRepositoryImpl) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	return err
}

func (r *DebtRepositoryImpl) ExistsForPeriod(ctx context.Context, memberID, tariffID primitive.ObjectID, year, month int) (bool, error) {
	count, err := r.Collection.CountDocuments(ctx, bson.M{
		"uye_id":    memberID,
		"tarife_id": tariffID,
		"yil":       year,
		"ay":        month,
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *DebtRepositoryImpl) UnpaidCountForMember(ctx context.Context, memberID primitive.ObjectID) (int64, error) {
	return r.Collection.CountDocuments(ctx, bson.M{"uye_id": memberID, "odendi": false})
}

func (r *DebtRepositoryImpl) CountForTariff(ctx context.Context, tariffID primitive.ObjectID) (int64, error) {
	return r.Collection.CountDocuments(ctx, bson.M{"tarife_id": tariffID})
}

func (r *DebtRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "uye_id", Value: 1}, {Key: "yil", Value: -1}, {Key: "ay", Value: -1}}},
		{Keys: bson.D{{Key: "odendi", Value: 1}}},
	})
	return err
}
