package auth

import (
	"context"
	"errors"
	"testing"

	common_models "go-dernek/internal/common/models"
	"go-dernek/internal/features/permission"
	"go-dernek/internal/features/user"
	"go-dernek/pkg/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// accounts keyed by email; passwords kept in the clear for comparison
type fakeUsers struct {
	accounts  map[string]*user.User
	passwords map[string]string
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{
		accounts:  make(map[string]*user.User),
		passwords: make(map[string]string),
	}
}

func (f *fakeUsers) add(u *user.User, password string) {
	f.accounts[u.Email] = u
	f.passwords[u.Email] = password
}

func (f *fakeUsers) GetUserByEmail(_ context.Context, email string) (*user.User, error) {
	u, ok := f.accounts[email]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) GetUserByID(_ context.Context, id string) (*user.User, error) {
	for _, u := range f.accounts {
		if u.ID.Hex() == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUsers) CheckPassword(u *user.User, password string) bool {
	return f.passwords[u.Email] == password
}

func (f *fakeUsers) CreateUser(context.Context, *user.User, string) (*user.User, error) {
	return nil, nil
}

func (f *fakeUsers) ListUsers(context.Context, int64, int64) ([]user.User, int64, error) {
	return nil, 0, nil
}

func (f *fakeUsers) UpdateUser(context.Context, string, *string, *bool) (*user.User, error) {
	return nil, nil
}

func (f *fakeUsers) SetRoles(context.Context, string, []primitive.ObjectID) (*user.User, error) {
	return nil, nil
}

func (f *fakeUsers) SetPermissions(context.Context, string, []permission.Entry) (*user.User, error) {
	return nil, nil
}

func (f *fakeUsers) ChangePassword(context.Context, string, string) error { return nil }
func (f *fakeUsers) DeleteUser(context.Context, string) error             { return nil }

type fakePermissions struct {
	codes []string
}

func (f *fakePermissions) EffectiveCodes(context.Context, string) ([]string, error) {
	return f.codes, nil
}

func (f *fakePermissions) HasPermission(context.Context, string, string) (bool, error) {
	return false, nil
}

func (f *fakePermissions) HasModulePermission(context.Context, string, string, string) (bool, error) {
	return false, nil
}

func (f *fakePermissions) IsAdmin(context.Context, string) (bool, error) { return false, nil }
func (f *fakePermissions) InvalidateUser(string)                         {}

type fakeAudit struct{}

func (fakeAudit) LogChange(context.Context, common_models.AuditAction, string, string, map[string]common_models.Change) error {
	return nil
}

func (fakeAudit) ListLogs(context.Context, map[string]interface{}, int64, int64) ([]common_models.AuditLog, error) {
	return nil, nil
}

type authFixture struct {
	users   *fakeUsers
	perms   *fakePermissions
	service AuthService
}

func newAuthFixture() *authFixture {
	users := newFakeUsers()
	perms := &fakePermissions{}
	svc := NewAuthService(users, perms, fakeAudit{}, zap.NewNop())
	return &authFixture{users: users, perms: perms, service: svc}
}

func TestLoginIssuesValidToken(t *testing.T) {
	fix := newAuthFixture()
	roleID := primitive.NewObjectID()
	account := &user.User{
		ID:      primitive.NewObjectID(),
		Name:    "Muhasebe",
		Email:   "muhasebe@example.com",
		RoleIDs: []primitive.ObjectID{roleID},
		Active:  true,
	}
	fix.users.add(account, "gizli-sifre")

	token, loggedIn, err := fix.service.Login(context.Background(), "muhasebe@example.com", "gizli-sifre")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if loggedIn.Email != account.Email {
		t.Errorf("logged in email = %q, want %q", loggedIn.Email, account.Email)
	}

	claims, err := utils.ValidateToken(token)
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if claims.UserID != account.ID.Hex() {
		t.Errorf("token user id = %q, want %q", claims.UserID, account.ID.Hex())
	}
	if claims.Email != account.Email {
		t.Errorf("token email = %q, want %q", claims.Email, account.Email)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != roleID.Hex() {
		t.Errorf("token roles = %v, want [%s]", claims.Roles, roleID.Hex())
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	fix := newAuthFixture()
	account := &user.User{
		ID:     primitive.NewObjectID(),
		Email:  "uye@example.com",
		Active: true,
	}
	fix.users.add(account, "dogru-sifre")

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown email", "yok@example.com", "dogru-sifre"},
		{"wrong password", "uye@example.com", "yanlis"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := fix.service.Login(context.Background(), tc.email, tc.password)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("err = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestLoginRejectsInactiveAccount(t *testing.T) {
	fix := newAuthFixture()
	account := &user.User{
		ID:     primitive.NewObjectID(),
		Email:  "pasif@example.com",
		Active: false,
	}
	fix.users.add(account, "sifre")

	_, _, err := fix.service.Login(context.Background(), "pasif@example.com", "sifre")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestMeReturnsEffectiveCodes(t *testing.T) {
	fix := newAuthFixture()
	fix.perms.codes = []string{"borclar_goruntuleme", "odemeler_ekleme"}
	account := &user.User{
		ID:     primitive.NewObjectID(),
		Email:  "uye@example.com",
		Active: true,
	}
	fix.users.add(account, "sifre")

	profile, err := fix.service.Me(context.Background(), account.ID.Hex())
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if profile.User.Email != account.Email {
		t.Errorf("profile email = %q, want %q", profile.User.Email, account.Email)
	}
	if len(profile.Codes) != 2 {
		t.Errorf("codes = %v, want two entries", profile.Codes)
	}
}
