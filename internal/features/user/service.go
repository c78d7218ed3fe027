package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	common_models "go-dernek/internal/common/models"
	"go-dernek/internal/features/audit"
	"go-dernek/internal/features/permission"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrWeakPassword   = errors.New("password must be at least 8 characters")
)

// CacheInvalidator drops cached permission decisions after grants
// change. Satisfied by the permission service.
type CacheInvalidator interface {
	InvalidateUser(userID string)
}

type UserService interface {
	CreateUser(ctx context.Context, user *User, password string) (*User, error)
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	ListUsers(ctx context.Context, page, limit int64) ([]User, int64, error)
	UpdateUser(ctx context.Context, id string, name *string, active *bool) (*User, error)
	SetRoles(ctx context.Context, id string, roleIDs []primitive.ObjectID) (*User, error)
	SetPermissions(ctx context.Context, id string, entries []permission.Entry) (*User, error)
	ChangePassword(ctx context.Context, id string, password string) error
	DeleteUser(ctx context.Context, id string) error
	CheckPassword(user *User, password string) bool
}

type UserServiceImpl struct {
	Repo         UserRepository
	Cache        CacheInvalidator
	AuditService audit.AuditService
	Logger       *zap.Logger
}

func NewUserService(
	repo UserRepository,
	cache CacheInvalidator,
	auditService audit.AuditService,
	logger *zap.Logger,
) UserService {
	return &UserServiceImpl{
		Repo:         repo,
		Cache:        cache,
		AuditService: auditService,
		Logger:       logger,
	}
}

func (s *UserServiceImpl) CreateUser(ctx context.Context, user *User, password string) (*User, error) {
	if user.Email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if len(password) < 8 {
		return nil, ErrWeakPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user.ID = primitive.NewObjectID()
	user.Password = string(hashed)
	user.Active = true
	user.CreatedAt = now
	user.UpdatedAt = now

	if err := s.Repo.Create(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionCreate, "users", user.ID.Hex(), map[string]common_models.Change{
		"email": {New: user.Email},
	})

	s.Logger.Info("user created", zap.String("email", user.Email))
	return user, nil
}

func (s *UserServiceImpl) GetUserByID(ctx context.Context, id string) (*User, error) {
	user, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserServiceImpl) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	user, err := s.Repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserServiceImpl) ListUsers(ctx context.Context, page, limit int64) ([]User, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return s.Repo.List(ctx, page, limit)
}

func (s *UserServiceImpl) UpdateUser(ctx context.Context, id string, name *string, active *bool) (*User, error) {
	existing, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	fields := bson.M{}
	changes := map[string]common_models.Change{}
	if name != nil && *name != "" {
		fields["name"] = *name
		changes["name"] = common_models.Change{Old: existing.Name, New: *name}
	}
	if active != nil {
		fields["aktif"] = *active
		changes["aktif"] = common_models.Change{Old: existing.Active, New: *active}
	}
	if len(fields) == 0 {
		return existing, nil
	}

	if err := s.Repo.Update(ctx, id, fields); err != nil {
		return nil, err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionUpdate, "users", id, changes)

	return s.Repo.FindByID(ctx, id)
}

func (s *UserServiceImpl) SetRoles(ctx context.Context, id string, roleIDs []primitive.ObjectID) (*User, error) {
	existing, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if err := s.Repo.Update(ctx, id, bson.M{"roller": roleIDs}); err != nil {
		return nil, err
	}

	// stale grants must not outlive the assignment
	s.Cache.InvalidateUser(id)

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionUpdate, "users", id, map[string]common_models.Change{
		"roller": {Old: existing.RoleIDs, New: roleIDs},
	})

	return s.Repo.FindByID(ctx, id)
}

func (s *UserServiceImpl) SetPermissions(ctx context.Context, id string, entries []permission.Entry) (*User, error) {
	if _, err := s.Repo.FindByID(ctx, id); err != nil {
		return nil, ErrUserNotFound
	}

	if err := s.Repo.Update(ctx, id, bson.M{"izinler": entries}); err != nil {
		return nil, err
	}

	s.Cache.InvalidateUser(id)

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionUpdate, "users", id, map[string]common_models.Change{
		"izinler": {New: entries},
	})

	return s.Repo.FindByID(ctx, id)
}

func (s *UserServiceImpl) ChangePassword(ctx context.Context, id string, password string) error {
	if len(password) < 8 {
		return ErrWeakPassword
	}
	if _, err := s.Repo.FindByID(ctx, id); err != nil {
		return ErrUserNotFound
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.Repo.Update(ctx, id, bson.M{"password": string(hashed)})
}

func (s *UserServiceImpl) DeleteUser(ctx context.Context, id string) error {
	user, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return ErrUserNotFound
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}

	s.Cache.InvalidateUser(id)

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionDelete, "users", id, map[string]common_models.Change{
		"email": {Old: user.Email},
	})
	return nil
}

func (s *UserServiceImpl) CheckPassword(user *User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil
}
