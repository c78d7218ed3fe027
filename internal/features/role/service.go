package role

import (
	"context"
	"errors"
	"fmt"
	"time"

	common_models "go-dernek/internal/common/models"
	"go-dernek/internal/features/audit"
	"go-dernek/internal/features/permission"
	"go-dernek/pkg/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var (
	ErrRoleNotFound  = errors.New("role not found")
	ErrSystemRole    = errors.New("system roles cannot be deleted")
	ErrDuplicateSlug = errors.New("role slug already exists")
)

// HolderSource lists the users carrying a role, so their cached
// decisions can be dropped when the role changes; wired in main.
type HolderSource interface {
	IDsWithRole(ctx context.Context, roleID primitive.ObjectID) ([]string, error)
}

// CacheInvalidator drops cached permission decisions. Satisfied by
// the permission service.
type CacheInvalidator interface {
	InvalidateUser(userID string)
}

type RoleService interface {
	CreateRole(ctx context.Context, role *Role) (*Role, error)
	GetRoleByID(ctx context.Context, id string) (*Role, error)
	ListRoles(ctx context.Context) ([]Role, error)
	UpdateRole(ctx context.Context, id string, name *string, isAdmin *bool, permissions []permission.Entry) (*Role, error)
	DeleteRole(ctx context.Context, id string) error
}

type RoleServiceImpl struct {
	Repo         RoleRepository
	Holders      HolderSource
	Cache        CacheInvalidator
	AuditService audit.AuditService
	Logger       *zap.Logger
}

func NewRoleService(
	repo RoleRepository,
	holders HolderSource,
	cache CacheInvalidator,
	auditService audit.AuditService,
	logger *zap.Logger,
) RoleService {
	return &RoleServiceImpl{
		Repo:         repo,
		Holders:      holders,
		Cache:        cache,
		AuditService: auditService,
		Logger:       logger,
	}
}

func (s *RoleServiceImpl) CreateRole(ctx context.Context, role *Role) (*Role, error) {
	if role.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	now := time.Now()
	role.ID = primitive.NewObjectID()
	role.Slug = utils.Slugify(role.Name)
	role.SystemRole = false
	role.CreatedAt = now
	role.UpdatedAt = now

	if err := s.Repo.Create(ctx, role); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateSlug
		}
		return nil, err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionCreate, "roles", role.ID.Hex(), map[string]common_models.Change{
		"name": {New: role.Name},
	})

	return role, nil
}

func (s *RoleServiceImpl) GetRoleByID(ctx context.Context, id string) (*Role, error) {
	role, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrRoleNotFound
	}
	return role, nil
}

func (s *RoleServiceImpl) ListRoles(ctx context.Context) ([]Role, error) {
	return s.Repo.List(ctx)
}

func (s *RoleServiceImpl) UpdateRole(ctx context.Context, id string, name *string, isAdmin *bool, permissions []permission.Entry) (*Role, error) {
	existing, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrRoleNotFound
	}

	fields := bson.M{}
	changes := map[string]common_models.Change{}
	if name != nil && *name != "" {
		fields["name"] = *name
		fields["slug"] = utils.Slugify(*name)
		changes["name"] = common_models.Change{Old: existing.Name, New: *name}
	}
	if isAdmin != nil {
		fields["isAdmin"] = *isAdmin
		changes["isAdmin"] = common_models.Change{Old: existing.IsAdmin, New: *isAdmin}
	}
	if permissions != nil {
		fields["izinler"] = permissions
		changes["izinler"] = common_models.Change{New: permissions}
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

	s.invalidateHolders(ctx, existing.ID)

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionUpdate, "roles", id, changes)

	return s.Repo.FindByID(ctx, id)
}

func (s *RoleServiceImpl) DeleteRole(ctx context.Context, id string) error {
	role, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return ErrRoleNotFound
	}
	if role.SystemRole {
		return ErrSystemRole
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateHolders(ctx, role.ID)

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionDelete, "roles", id, map[string]common_models.Change{
		"name": {Old: role.Name},
	})
	return nil
}

// every holder's cached decisions are stale once the role mutates
func (s *RoleServiceImpl) invalidateHolders(ctx context.Context, roleID primitive.ObjectID) {
	holders, err := s.Holders.IDsWithRole(ctx, roleID)
	if err != nil {
		s.Logger.Warn("failed to list role holders for cache invalidation",
			zap.String("role_id", roleID.Hex()),
			zap.Error(err))
		return
	}
	for _, userID := range holders {
		s.Cache.InvalidateUser(userID)
	}
}
