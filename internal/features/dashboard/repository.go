package dashboard

import (
	"context"
	"time"

	"go-dernek/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type DashboardRepository interface {
	MemberCounts(ctx context.Context) (active int64, passive int64, err error)
	SubscriberCount(ctx context.Context) (int64, error)
	OpenDebtStats(ctx context.Context) (count int64, outstanding float64, err error)
	CollectedTotal(ctx context.Context) (float64, error)
	CollectedByMonth(ctx context.Context, since time.Time) ([]MonthlyCollection, error)
}

// DashboardRepositoryImpl reads across collections; it owns no data of
// its own.
type DashboardRepositoryImpl struct {
	members     *mongo.Collection
	subscribers *mongo.Collection
	debts       *mongo.Collection
	payments    *mongo.Collection
}

func NewDashboardRepository(mongodb *database.MongodbDB) DashboardRepository {
	return &DashboardRepositoryImpl{
		members:     mongodb.DB.Collection("uyeler"),
		subscribers: mongodb.DB.Collection("aboneler"),
		debts:       mongodb.DB.Collection("borclar"),
		payments:    mongodb.DB.Collection("odemeler"),
	}
}

func (r *DashboardRepositoryImpl) MemberCounts(ctx context.Context) (int64, int64, error) {
	active, err := r.members.CountDocuments(ctx, bson.M{"durum": "aktif"})
	if err != nil {
		return 0, 0, err
	}
	passive, err := r.members.CountDocuments(ctx, bson.M{"durum": "pasif"})
	if err != nil {
		return 0, 0, err
	}
	return active, passive, nil
}

func (r *DashboardRepositoryImpl) SubscriberCount(ctx context.Context) (int64, error) {
	return r.subscribers.CountDocuments(ctx, bson.M{"durum": "aktif"})
}

func (r *DashboardRepositoryImpl) OpenDebtStats(ctx context.Context) (int64, float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"odendi": false}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"count": bson.M{"$sum": 1},
			"kalan": bson.M{"$sum": "$kalan"},
		}}},
	}

	cursor, err := r.debts.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Count int64   `bson:"count"`
		Kalan float64 `bson:"kalan"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, 0, err
	}
	if len(results) == 0 {
		return 0, 0, nil
	}
	return results[0].Count, results[0].Kalan, nil
}

func (r *DashboardRepositoryImpl) CollectedTotal(ctx context.Context) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":    nil,
			"toplam": bson.M{"$sum": "$odemeTutari"},
		}}},
	}

	cursor, err := r.payments.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Toplam float64 `bson:"toplam"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Toplam, nil
}

func (r *DashboardRepositoryImpl) CollectedByMonth(ctx context.Context, since time.Time) ([]MonthlyCollection, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"odemeTarihi": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"yil": bson.M{"$year": "$odemeTarihi"},
				"ay":  bson.M{"$month": "$odemeTarihi"},
			},
			"toplam": bson.M{"$sum": "$odemeTutari"},
		}}},
		{{Key: "$project", Value: bson.M{
			"_id":    0,
			"yil":    "$_id.yil",
			"ay":     "$_id.ay",
			"toplam": 1,
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "yil", Value: 1}, {Key: "ay", Value: 1}}}},
	}

	cursor, err := r.payments.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var months []MonthlyCollection
	if err := cursor.All(ctx, &months); err != nil {
		return nil, err
	}
	return months, nil
}
