package auth

import (
	"context"
	"errors"

	common_models "go-dernek/internal/common/models"
	"go-dernek/internal/features/audit"
	"go-dernek/internal/features/permission"
	"go-dernek/internal/features/user"
	"go-dernek/pkg/utils"

	"go.uber.org/zap"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// Profile is the /me payload: the account plus the flattened
// permission codes the UI guards on.
type Profile struct {
	User  *user.User `json:"user"`
	Codes []string   `json:"izinKodlari"`
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *user.User, error)
	Me(ctx context.Context, userID string) (*Profile, error)
}

type AuthServiceImpl struct {
	Users        user.UserService
	Permissions  permission.PermissionService
	AuditService audit.AuditService
	Logger       *zap.Logger
}

func NewAuthService(
	users user.UserService,
	permissions permission.PermissionService,
	auditService audit.AuditService,
	logger *zap.Logger,
) AuthService {
	return &AuthServiceImpl{
		Users:        users,
		Permissions:  permissions,
		AuditService: auditService,
		Logger:       logger,
	}
}

func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (string, *user.User, error) {
	account, err := s.Users.GetUserByEmail(ctx, email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if !account.Active {
		return "", nil, ErrInvalidCredentials
	}
	if !s.Users.CheckPassword(account, password) {
		s.Logger.Warn("failed login attempt", zap.String("email", email))
		return "", nil, ErrInvalidCredentials
	}

	var roles []string
	if account.LegacyRole != "" {
		roles = append(roles, account.LegacyRole)
	}
	for _, id := range account.RoleIDs {
		roles = append(roles, id.Hex())
	}

	token, err := utils.GenerateToken(account.ID, account.Email, roles)
	if err != nil {
		return "", nil, err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionLogin, "users", account.ID.Hex(), nil)

	return token, account, nil
}

func (s *AuthServiceImpl) Me(ctx context.Context, userID string) (*Profile, error) {
	account, err := s.Users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	codes, err := s.Permissions.EffectiveCodes(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Profile{User: account, Codes: codes}, nil
}
