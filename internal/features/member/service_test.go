package member

import (
	"context"
	"errors"
	"fmt"
	"testing"

	common_models "go-dernek/internal/common/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// in-memory member store
type fakeMemberRepo struct {
	members map[string]*Member

	// when > 0, the next Create calls fail with a duplicate key error
	duplicateFailures int
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: make(map[string]*Member)}
}

func duplicateKeyErr() error {
	return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
}

func (f *fakeMemberRepo) Create(_ context.Context, m *Member) error {
	if f.duplicateFailures > 0 {
		f.duplicateFailures--
		return duplicateKeyErr()
	}
	for _, existing := range f.members {
		if existing.MemberNo == m.MemberNo {
			return duplicateKeyErr()
		}
	}
	cp := *m
	f.members[m.ID.Hex()] = &cp
	return nil
}

func (f *fakeMemberRepo) FindByID(_ context.Context, id string) (*Member, error) {
	m, ok := f.members[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMemberRepo) List(_ context.Context, _ map[string]interface{}, _, _ int64) ([]Member, int64, error) {
	var out []Member
	for _, m := range f.members {
		out = append(out, *m)
	}
	return out, int64(len(out)), nil
}

func (f *fakeMemberRepo) Update(_ context.Context, id string, fields bson.M) error {
	m, ok := f.members[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	if v, ok := fields["durum"]; ok {
		m.Status = v.(Status)
	}
	return nil
}

func (f *fakeMemberRepo) Delete(_ context.Context, id string) error {
	delete(f.members, id)
	return nil
}

func (f *fakeMemberRepo) ExistsForPersonOrg(_ context.Context, personID, orgID primitive.ObjectID) (bool, error) {
	for _, m := range f.members {
		if m.PersonID == personID && m.OrganizationID == orgID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeMemberRepo) CountForPerson(_ context.Context, personID primitive.ObjectID) (int64, error) {
	var n int64
	for _, m := range f.members {
		if m.PersonID == personID {
			n++
		}
	}
	return n, nil
}

func (f *fakeMemberRepo) CountForOrganization(_ context.Context, orgID primitive.ObjectID) (int64, error) {
	var n int64
	for _, m := range f.members {
		if m.OrganizationID == orgID {
			n++
		}
	}
	return n, nil
}

func (f *fakeMemberRepo) CountByStatus(_ context.Context, status Status) (int64, error) {
	var n int64
	for _, m := range f.members {
		if m.Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakeMemberRepo) ActiveIDs(_ context.Context) ([]primitive.ObjectID, error) {
	var ids []primitive.ObjectID
	for _, m := range f.members {
		if m.Status == StatusActive {
			ids = append(ids, m.ID)
		}
	}
	return ids, nil
}

func (f *fakeMemberRepo) NextMemberNo(_ context.Context) (string, error) {
	max := 0
	for _, m := range f.members {
		var n int
		if _, err := fmt.Sscanf(m.MemberNo, "U-%05d", &n); err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("U-%05d", max+1), nil
}

func (f *fakeMemberRepo) MemberDoc(_ context.Context, memberID primitive.ObjectID) (map[string]interface{}, error) {
	m, ok := f.members[memberID.Hex()]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return map[string]interface{}{"uyeNo": m.MemberNo, "durum": string(m.Status)}, nil
}

func (f *fakeMemberRepo) EnsureIndexes(_ context.Context) error { return nil }

type fakePeople struct {
	known map[string]bool
}

func (f *fakePeople) Exists(_ context.Context, personID string) (bool, error) {
	return f.known[personID], nil
}

type fakeDebts struct {
	unpaid int64
}

func (f *fakeDebts) UnpaidCountForMember(_ context.Context, _ primitive.ObjectID) (int64, error) {
	return f.unpaid, nil
}

type fakeAudit struct{}

func (fakeAudit) LogChange(context.Context, common_models.AuditAction, string, string, map[string]common_models.Change) error {
	return nil
}

func (fakeAudit) ListLogs(context.Context, map[string]interface{}, int64, int64) ([]common_models.AuditLog, error) {
	return nil, nil
}

type memberFixture struct {
	repo    *fakeMemberRepo
	people  *fakePeople
	debts   *fakeDebts
	service MemberService
}

func newMemberFixture() *memberFixture {
	repo := newFakeMemberRepo()
	people := &fakePeople{known: make(map[string]bool)}
	debts := &fakeDebts{}
	svc := NewMemberService(repo, people, debts, fakeAudit{}, zap.NewNop())
	return &memberFixture{repo: repo, people: people, debts: debts, service: svc}
}

func (fx *memberFixture) knownPerson() primitive.ObjectID {
	id := primitive.NewObjectID()
	fx.people.known[id.Hex()] = true
	return id
}

func TestCreateMemberAssignsSequentialNo(t *testing.T) {
	fx := newMemberFixture()
	org := primitive.NewObjectID()

	first, err := fx.service.CreateMember(context.Background(), &Member{
		PersonID:       fx.knownPerson(),
		OrganizationID: org,
	})
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	if first.MemberNo != "U-00001" {
		t.Errorf("first member no = %q, want U-00001", first.MemberNo)
	}
	if first.Status != StatusActive {
		t.Errorf("default status = %q, want aktif", first.Status)
	}

	second, err := fx.service.CreateMember(context.Background(), &Member{
		PersonID:       fx.knownPerson(),
		OrganizationID: org,
	})
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if second.MemberNo != "U-00002" {
		t.Errorf("second member no = %q, want U-00002", second.MemberNo)
	}
}

func TestCreateMemberUnknownPerson(t *testing.T) {
	fx := newMemberFixture()

	_, err := fx.service.CreateMember(context.Background(), &Member{
		PersonID:       primitive.NewObjectID(),
		OrganizationID: primitive.NewObjectID(),
	})
	if err == nil {
		t.Fatal("expected error for unknown person")
	}
}

func TestCreateMemberDuplicateMembership(t *testing.T) {
	fx := newMemberFixture()
	person := fx.knownPerson()
	org := primitive.NewObjectID()

	if _, err := fx.service.CreateMember(context.Background(), &Member{
		PersonID:       person,
		OrganizationID: org,
	}); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := fx.service.CreateMember(context.Background(), &Member{
		PersonID:       person,
		OrganizationID: org,
	})
	if !errors.Is(err, ErrAlreadyMember) {
		t.Errorf("err = %v, want ErrAlreadyMember", err)
	}
}

func TestCreateMemberRetriesCollidingNo(t *testing.T) {
	fx := newMemberFixture()
	fx.repo.duplicateFailures = 2

	member, err := fx.service.CreateMember(context.Background(), &Member{
		PersonID:       fx.knownPerson(),
		OrganizationID: primitive.NewObjectID(),
	})
	if err != nil {
		t.Fatalf("create after collisions: %v", err)
	}
	if member.MemberNo == "" {
		t.Error("member no not assigned after retry")
	}
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	fx := newMemberFixture()

	_, err := fx.service.UpdateStatus(context.Background(), primitive.NewObjectID().Hex(), Status("bilinmeyen"))
	if !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("err = %v, want ErrInvalidStatus", err)
	}
}

func TestDeleteMemberGuardedByUnpaidDebts(t *testing.T) {
	fx := newMemberFixture()

	member, err := fx.service.CreateMember(context.Background(), &Member{
		PersonID:       fx.knownPerson(),
		OrganizationID: primitive.NewObjectID(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	fx.debts.unpaid = 1
	if err := fx.service.DeleteMember(context.Background(), member.ID.Hex()); !errors.Is(err, ErrMemberHasDebts) {
		t.Errorf("err = %v, want ErrMemberHasDebts", err)
	}

	fx.debts.unpaid = 0
	if err := fx.service.DeleteMember(context.Background(), member.ID.Hex()); err != nil {
		t.Errorf("delete with no unpaid debts: %v", err)
	}
	if _, err := fx.service.GetMemberByID(context.Background(), member.ID.Hex()); !errors.Is(err, ErrMemberNotFound) {
		t.Error("member still present after delete")
	}
}
