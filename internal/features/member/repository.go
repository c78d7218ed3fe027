package member

import (
	"context"
	"fmt"
	"time"

	"go-dernek/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MemberRepository interface {
	Create(ctx context.Context, member *Member) error
	FindByID(ctx context.Context, id string) (*Member, error)
	List(ctx context.Context, filter map[string]interface{}, page, limit int64) ([]Member, int64, error)
	Update(ctx context.Context, id string, fields bson.M) error
	Delete(ctx context.Context, id string) error
	ExistsForPersonOrg(ctx context.Context, personID, orgID primitive.ObjectID) (bool, error)
	CountForPerson(ctx context.Context, personID primitive.ObjectID) (int64, error)
	CountForOrganization(ctx context.Context, orgID primitive.ObjectID) (int64, error)
	CountByStatus(ctx context.Context, status Status) (int64, error)
	ActiveIDs(ctx context.Context) ([]primitive.ObjectID, error)
	NextMemberNo(ctx context.Context) (string, error)
	MemberDoc(ctx context.Context, memberID primitive.ObjectID) (map[string]interface{}, error)
	EnsureIndexes(ctx context.Context) error
}

type MemberRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewMemberRepository(mongodb *database.MongodbDB) MemberRepository {
	return &MemberRepositoryImpl{
		Collection: mongodb.DB.Collection("uyeler"),
	}
}

func (r *MemberRepositoryImpl) Create(ctx context.Context, member *Member) error {
	_, err := r.Collection.InsertOne(ctx, member)
	return err
}

func (r *MemberRepositoryImpl) FindByID(ctx context.Context, id string) (*Member, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var member Member
	if err := r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&member); err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *MemberRepositoryImpl) List(ctx context.Context, filter map[string]interface{}, page, limit int64) ([]Member, int64, error) {
	query := bson.M{}
	for k, v := range filter {
		query[k] = v
	}

	total, err := r.Collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "uyeNo", Value: 1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := r.Collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var members []Member
	if err := cursor.All(ctx, &members); err != nil {
		return nil, 0, err
	}
	return members, total, nil
}

func (r *MemberRepositoryImpl) Update(ctx context.Context, id string, fields bson.M) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	fields["updated_at"] = time.Now()

	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": fields})
	return err
}

func (r *MemberRepositoryImpl) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	return err
}

func (r *MemberRepositoryImpl) ExistsForPersonOrg(ctx context.Context, personID, orgID primitive.ObjectID) (bool, error) {
	count, err := r.Collection.CountDocuments(ctx, bson.M{"kisi_id": personID, "organizasyon_id": orgID})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *MemberRepositoryImpl) CountForPerson(ctx context.Context, personID primitive.ObjectID) (int64, error) {
	return r.Collection.CountDocuments(ctx, bson.M{"kisi_id": personID})
}

func (r *MemberRepositoryImpl) CountForOrganization(ctx context.Context, orgID primitive.ObjectID) (int64, error) {
	return r.Collection.CountDocuments(ctx, bson.M{"organizasyon_id": orgID})
}

func (r *MemberRepositoryImpl) CountByStatus(ctx context.Context, status Status) (int64, error) {
	return r.Collection.CountDocuments(ctx, bson.M{"durum": status})
}

func (r *MemberRepositoryImpl) ActiveIDs(ctx context.Context) ([]primitive.ObjectID, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{"durum": StatusActive},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	return ids, nil
}

// NextMemberNo derives the next sequential number from the current
// maximum. Concurrent creates can collide; the unique index rejects
// the loser and the service retries.
func (r *MemberRepositoryImpl) NextMemberNo(ctx context.Context) (string, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "uyeNo", Value: -1}})

	var last Member
	err := r.Collection.FindOne(ctx, bson.M{}, opts).Decode(&last)
	if err == mongo.ErrNoDocuments {
		return "U-00001", nil
	}
	if err != nil {
		return "", err
	}

	var n int
	if _, err := fmt.Sscanf(last.MemberNo, "U-%05d", &n); err != nil {
		return "", err
	}
	return fmt.Sprintf("U-%05d", n+1), nil
}

// MemberDoc flattens a member into plain scalar fields so pricing
// scripts can read them.
func (r *MemberRepositoryImpl) MemberDoc(ctx context.Context, memberID primitive.ObjectID) (map[string]interface{}, error) {
	var member Member
	if err := r.Collection.FindOne(ctx, bson.M{"_id": memberID}).Decode(&member); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"id":         member.ID.Hex(),
		"uyeNo":      member.MemberNo,
		"durum":      string(member.Status),
		"girisYili":  member.JoinDate.Year(),
		"uyelikYili": time.Now().Year() - member.JoinDate.Year(),
	}, nil
}

func (r *MemberRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "kisi_id", Value: 1}, {Key: "organizasyon_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "uyeNo", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "durum", Value: 1}}},
	})
	return err
}
