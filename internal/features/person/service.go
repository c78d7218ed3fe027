package person

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
	"go.uber.org/zap"
)

var (
	ErrPersonNotFound   = errors.New("person not found")
	ErrDuplicateID      = errors.New("national id already registered")
	ErrPersonReferenced = errors.New("person is referenced by members or subscribers")
)

// ReferenceSource reports whether records in another collection still
// point at a person. Member and subscriber services satisfy this;
// wired in main.
type ReferenceSource interface {
	CountForPerson(ctx context.Context, personID primitive.ObjectID) (int64, error)
}

type PersonService interface {
	CreatePerson(ctx context.Context, person *Person) (*Person, error)
	GetPersonByID(ctx context.Context, id string) (*Person, error)
	ListPeople(ctx context.Context, filter map[string]interface{}, search string, page, limit int64) ([]Person, int64, error)
	UpdatePerson(ctx context.Context, id string, fields map[string]interface{}) (*Person, error)
	DeletePerson(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
}

type PersonServiceImpl struct {
	Repo         PersonRepository
	References   []ReferenceSource
	AuditService audit.AuditService
	Logger       *zap.Logger
}

func NewPersonService(
	repo PersonRepository,
	references []ReferenceSource,
	auditService audit.AuditService,
	logger *zap.Logger,
) PersonService {
	return &PersonServiceImpl{
		Repo:         repo,
		References:   references,
		AuditService: auditService,
		Logger:       logger,
	}
}

func (s *PersonServiceImpl) CreatePerson(ctx context.Context, person *Person) (*Person, error) {
	if person.FirstName == "" || person.LastName == "" {
		return nil, fmt.Errorf("ad and soyad are required")
	}
	if person.NationalID == "" {
		return nil, fmt.Errorf("tcKimlikNo is required")
	}

	if existing, err := s.Repo.FindByNationalID(ctx, person.NationalID); err == nil && existing != nil {
		return nil, ErrDuplicateID
	}

	now := time.Now()
	person.ID = primitive.NewObjectID()
	person.CreatedAt = now
	person.UpdatedAt = now

	if err := s.Repo.Create(ctx, person); err != nil {
		// the unique index backstops the lookup above
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateID
		}
		return nil, err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionCreate, "kisiler", person.ID.Hex(), map[string]common_models.Change{
		"ad":         {New: person.FirstName},
		"soyad":      {New: person.LastName},
		"tcKimlikNo": {New: person.NationalID},
	})

	return person, nil
}

func (s *PersonServiceImpl) GetPersonByID(ctx context.Context, id string) (*Person, error) {
	person, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrPersonNotFound
	}
	return person, nil
}

func (s *PersonServiceImpl) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *PersonServiceImpl) ListPeople(ctx context.Context, filter map[string]interface{}, search string, page, limit int64) ([]Person, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return s.Repo.List(ctx, filter, search, page, limit)
}

var updatableFields = map[string]bool{
	"ad":          true,
	"soyad":       true,
	"telefon":     true,
	"email":       true,
	"adres":       true,
	"dogumTarihi": true,
}

func (s *PersonServiceImpl) UpdatePerson(ctx context.Context, id string, fields map[string]interface{}) (*Person, error) {
	existing, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrPersonNotFound
	}

	set := bson.M{}
	changes := map[string]common_models.Change{}
	for k, v := range fields {
		if !updatableFields[k] {
			continue
		}
		set[k] = v
		changes[k] = common_models.Change{New: v}
	}
	if len(set) == 0 {
		return existing, nil
	}

	if err := s.Repo.Update(ctx, id, set); err != nil {
		return nil, err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionUpdate, "kisiler", id, changes)

	return s.Repo.FindByID(ctx, id)
}

func (s *PersonServiceImpl) DeletePerson(ctx context.Context, id string) error {
	person, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return ErrPersonNotFound
	}

	for _, ref := range s.References {
		count, err := ref.CountForPerson(ctx, person.ID)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrPersonReferenced
		}
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionDelete, "kisiler", id, map[string]common_models.Change{
		"tcKimlikNo": {Old: person.NationalID},
	})

	s.Logger.Info("person deleted", zap.String("id", id))
	return nil
}
