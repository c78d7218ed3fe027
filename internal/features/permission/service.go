package permission

import (
	"context"

	"go-dernek/internal/config"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// SubjectData is what the user store hands the permission service:
// the subject snapshot with role references not yet populated.
type SubjectData struct {
	Subject
	RoleIDs []primitive.ObjectID
}

// UserSource loads the permission-relevant slice of a user.
// Implemented by the user repository; adapted in main to avoid a
// permission -> user import edge.
type UserSource interface {
	FindSubjectData(ctx context.Context, userID string) (*SubjectData, error)
}

// RoleSource loads role snapshots by id. Implemented by the role
// repository.
type RoleSource interface {
	FindSnapshots(ctx context.Context, ids []primitive.ObjectID) ([]Role, error)
}

type PermissionService interface {
	// HasPermission answers a code check through the cache
	HasPermission(ctx context.Context, userID string, kod string) (bool, error)
	// HasModulePermission answers a hierarchy-aware module/action check
	HasModulePermission(ctx context.Context, userID string, modul string, islem string) (bool, error)
	IsAdmin(ctx context.Context, userID string) (bool, error)
	// EffectiveCodes flattens a user's grants for the UI guard
	EffectiveCodes(ctx context.Context, userID string) ([]string, error)
	// InvalidateUser must be called after any role/permission change
	InvalidateUser(userID string)
}

type PermissionServiceImpl struct {
	Users     UserSource
	Roles     RoleSource
	Evaluator *Evaluator
	Cache     *Cache
	Logger    *zap.Logger
}

func NewPermissionService(users UserSource, roles RoleSource, cfg *config.Config, logger *zap.Logger) PermissionService {
	return &PermissionServiceImpl{
		Users:     users,
		Roles:     roles,
		Evaluator: NewEvaluator(cfg.AdminEmail),
		Cache:     NewCache(),
		Logger:    logger,
	}
}

// loadSubject builds the in-memory snapshot the evaluator works on
func (s *PermissionServiceImpl) loadSubject(ctx context.Context, userID string) (*Subject, error) {
	if userID == "" {
		return nil, nil
	}

	data, err := s.Users.FindSubjectData(ctx, userID)
	if err != nil {
		return nil, err
	}

	subject := data.Subject
	if len(data.RoleIDs) > 0 {
		roles, err := s.Roles.FindSnapshots(ctx, data.RoleIDs)
		if err != nil {
			return nil, err
		}
		subject.Roles = roles
	}
	return &subject, nil
}

func (s *PermissionServiceImpl) HasPermission(ctx context.Context, userID string, kod string) (bool, error) {
	subject, err := s.loadSubject(ctx, userID)
	if err != nil {
		return false, err
	}
	return s.Cache.Check(subject, kod, s.Evaluator.HasPermission), nil
}

func (s *PermissionServiceImpl) HasModulePermission(ctx context.Context, userID string, modul string, islem string) (bool, error) {
	subject, err := s.loadSubject(ctx, userID)
	if err != nil {
		return false, err
	}
	return s.Evaluator.HasModulePermission(subject, modul, islem), nil
}

func (s *PermissionServiceImpl) IsAdmin(ctx context.Context, userID string) (bool, error) {
	subject, err := s.loadSubject(ctx, userID)
	if err != nil {
		return false, err
	}
	if subject == nil {
		return false, nil
	}
	return s.Evaluator.isSuperAdmin(subject), nil
}

func (s *PermissionServiceImpl) EffectiveCodes(ctx context.Context, userID string) ([]string, error) {
	subject, err := s.loadSubject(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.Evaluator.Codes(subject), nil
}

func (s *PermissionServiceImpl) InvalidateUser(userID string) {
	s.Cache.InvalidateUser(userID)
	s.Logger.Debug("permission cache invalidated", zap.String("user_id", userID))
}
