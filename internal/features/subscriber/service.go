package subscriber

import (
	"context"
	"errors"
	"fmt"
	"time"

	common_models "go-dernek/internal/common/models"
	"go-dernek/internal/features/audit"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrSubscriberNotFound = errors.New("subscriber not found")
	ErrDuplicateNo        = errors.New("subscription number already in use")
	ErrInvalidType        = errors.New("invalid subscription type")
)

// PersonSource verifies the person exists; wired in main.
type PersonSource interface {
	Exists(ctx context.Context, personID string) (bool, error)
}

type SubscriberService interface {
	CreateSubscriber(ctx context.Context, sub *Subscriber) (*Subscriber, error)
	GetSubscriberByID(ctx context.Context, id string) (*Subscriber, error)
	ListSubscribers(ctx context.Context, filter map[string]interface{}, page, limit int64) ([]Subscriber, int64, error)
	CloseSubscription(ctx context.Context, id string) (*Subscriber, error)
	DeleteSubscriber(ctx context.Context, id string) error
	CountForPerson(ctx context.Context, personID primitive.ObjectID) (int64, error)
}

type SubscriberServiceImpl struct {
	Repo         SubscriberRepository
	People       PersonSource
	AuditService audit.AuditService
}

func NewSubscriberService(repo SubscriberRepository, people PersonSource, auditService audit.AuditService) SubscriberService {
	return &SubscriberServiceImpl{
		Repo:         repo,
		People:       people,
		AuditService: auditService,
	}
}

func (s *SubscriberServiceImpl) CreateSubscriber(ctx context.Context, sub *Subscriber) (*Subscriber, error) {
	if sub.PersonID.IsZero() {
		return nil, fmt.Errorf("kisi_id is required")
	}
	if !sub.Type.Valid() {
		return nil, ErrInvalidType
	}
	if sub.SubscriptionNo == "" {
		return nil, fmt.Errorf("aboneNo is required")
	}

	ok, err := s.People.Exists(ctx, sub.PersonID.Hex())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("person not found")
	}

	now := time.Now()
	sub.ID = primitive.NewObjectID()
	sub.Status = StatusActive
	if sub.StartDate.IsZero() {
		sub.StartDate = now
	}
	sub.CreatedAt = now
	sub.UpdatedAt = now

	if err := s.Repo.Create(ctx, sub); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateNo
		}
		return nil, err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionCreate, "aboneler", sub.ID.Hex(), map[string]common_models.Change{
		"aboneNo":   {New: sub.SubscriptionNo},
		"aboneTuru": {New: sub.Type},
	})

	return sub, nil
}

func (s *SubscriberServiceImpl) GetSubscriberByID(ctx context.Context, id string) (*Subscriber, error) {
	sub, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrSubscriberNotFound
	}
	return sub, nil
}

func (s *SubscriberServiceImpl) ListSubscribers(ctx context.Context, filter map[string]interface{}, page, limit int64) ([]Subscriber, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return s.Repo.List(ctx, filter, page, limit)
}

func (s *SubscriberServiceImpl) CloseSubscription(ctx context.Context, id string) (*Subscriber, error) {
	existing, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrSubscriberNotFound
	}
	if existing.Status == StatusClosed {
		return existing, nil
	}

	if err := s.Repo.Update(ctx, id, bson.M{"durum": StatusClosed}); err != nil {
		return nil, err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionUpdate, "aboneler", id, map[string]common_models.Change{
		"durum": {Old: existing.Status, New: StatusClosed},
	})

	return s.Repo.FindByID(ctx, id)
}

func (s *SubscriberServiceImpl) DeleteSubscriber(ctx context.Context, id string) error {
	sub, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return ErrSubscriberNotFound
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionDelete, "aboneler", id, map[string]common_models.Change{
		"aboneNo": {Old: sub.SubscriptionNo},
	})
	return nil
}

func (s *SubscriberServiceImpl) CountForPerson(ctx context.Context, personID primitive.ObjectID) (int64, error) {
	return s.Repo.CountForPerson(ctx, personID)
}
