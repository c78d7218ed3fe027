package organization

import (
	"context"
	"errors"
	"fmt"
	"time"

	common_models "go-dernek/internal/common/models"
	"go-dernek/internal/features/audit"
	"go-dernek/pkg/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrOrgNotFound    = errors.New("organization not found")
	ErrOrgHasChildren = errors.New("organization has child units")
	ErrDuplicateSlug  = errors.New("organization slug already exists")
)

// MemberSource counts members attached to a unit; wired in main.
type MemberSource interface {
	CountForOrganization(ctx context.Context, orgID primitive.ObjectID) (int64, error)
}

type OrganizationService interface {
	CreateOrganization(ctx context.Context, org *Organization) (*Organization, error)
	GetOrganizationByID(ctx context.Context, id string) (*Organization, error)
	ListOrganizations(ctx context.Context) ([]Organization, error)
	UpdateOrganization(ctx context.Context, id string, name, description *string) (*Organization, error)
	DeleteOrganization(ctx context.Context, id string) error
}

type OrganizationServiceImpl struct {
	Repo         OrganizationRepository
	Members      MemberSource
	AuditService audit.AuditService
}

func NewOrganizationService(repo OrganizationRepository, members MemberSource, auditService audit.AuditService) OrganizationService {
	return &OrganizationServiceImpl{
		Repo:         repo,
		Members:      members,
		AuditService: auditService,
	}
}

func (s *OrganizationServiceImpl) CreateOrganization(ctx context.Context, org *Organization) (*Organization, error) {
	if org.Name == "" {
		return nil, fmt.Errorf("ad is required")
	}
	if !org.ParentID.IsZero() {
		if _, err := s.Repo.FindByID(ctx, org.ParentID.Hex()); err != nil {
			return nil, fmt.Errorf("parent organization not found")
		}
	}

	now := time.Now()
	org.ID = primitive.NewObjectID()
	org.Slug = utils.Slugify(org.Name)
	org.CreatedAt = now
	org.UpdatedAt = now

	if err := s.Repo.Create(ctx, org); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateSlug
		}
		return nil, err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionCreate, "organizasyonlar", org.ID.Hex(), map[string]common_models.Change{
		"ad": {New: org.Name},
	})

	return org, nil
}

func (s *OrganizationServiceImpl) GetOrganizationByID(ctx context.Context, id string) (*Organization, error) {
	org, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrOrgNotFound
	}
	return org, nil
}

func (s *OrganizationServiceImpl) ListOrganizations(ctx context.Context) ([]Organization, error) {
	return s.Repo.List(ctx)
}

func (s *OrganizationServiceImpl) UpdateOrganization(ctx context.Context, id string, name, description *string) (*Organization, error) {
	existing, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrOrgNotFound
	}

	fields := bson.M{}
	changes := map[string]common_models.Change{}
	if name != nil && *name != "" {
		fields["ad"] = *name
		fields["slug"] = utils.Slugify(*name)
		changes["ad"] = common_models.Change{Old: existing.Name, New: *name}
	}
	if description != nil {
		fields["aciklama"] = *description
	}
	if len(fields) == 0 {
		return existing, nil
	}

	if err := s.Repo.Update(ctx, id, fields); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateSlug
		}
		return nil, err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionUpdate, "organizasyonlar", id, changes)

	return s.Repo.FindByID(ctx, id)
}

func (s *OrganizationServiceImpl) DeleteOrganization(ctx context.Context, id string) error {
	org, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return ErrOrgNotFound
	}

	children, err := s.Repo.CountChildren(ctx, org.ID)
	if err != nil {
		return err
	}
	if children > 0 {
		return ErrOrgHasChildren
	}

	if s.Members != nil {
		count, err := s.Members.CountForOrganization(ctx, org.ID)
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("organization has %d members", count)
		}
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionDelete, "organizasyonlar", id, map[string]common_models.Change{
		"ad": {Old: org.Name},
	})
	return nil
}
