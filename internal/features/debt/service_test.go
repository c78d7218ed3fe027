package debt

import (
	"context"
	"errors"
	"testing"

	common_models "go-dernek/internal/common/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// in-memory debt store
type fakeDebtRepo struct {
	debts map[string]*Debt
}

func newFakeDebtRepo() *fakeDebtRepo {
	return &fakeDebtRepo{debts: make(map[string]*Debt)}
}

func (f *fakeDebtRepo) Create(_ context.Context, d *Debt) error {
	cp := *d
	f.debts[d.ID.Hex()] = &cp
	return nil
}

func (f *fakeDebtRepo) CreateMany(_ context.Context, debts []Debt) (int, error) {
	for i := range debts {
		cp := debts[i]
		f.debts[cp.ID.Hex()] = &cp
	}
	return len(debts), nil
}

func (f *fakeDebtRepo) FindByID(_ context.Context, id string) (*Debt, error) {
	d, ok := f.debts[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDebtRepo) List(_ context.Context, _ map[string]interface{}, _, _ int64) ([]Debt, int64, error) {
	var out []Debt
	for _, d := range f.debts {
		out = append(out, *d)
	}
	return out, int64(len(out)), nil
}

func (f *fakeDebtRepo) Update(_ context.Context, id string, fields bson.M) error {
	d, ok := f.debts[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	if v, ok := fields["borcTutari"]; ok {
		d.Amount = v.(float64)
	}
	if v, ok := fields["aciklama"]; ok {
		d.Description = v.(string)
	}
	return nil
}

func (f *fakeDebtRepo) UpdateBalance(_ context.Context, id primitive.ObjectID, kalan float64, odendi bool) error {
	d, ok := f.debts[id.Hex()]
	if !ok {
		return mongo.ErrNoDocuments
	}
	d.Remaining = kalan
	d.Paid = odendi
	return nil
}

func (f *fakeDebtRepo) Delete(_ context.Context, id string) error {
	delete(f.debts, id)
	return nil
}

func (f *fakeDebtRepo) ExistsForPeriod(_ context.Context, memberID, tariffID primitive.ObjectID, year, month int) (bool, error) {
	for _, d := range f.debts {
		if d.MemberID == memberID && d.TariffID == tariffID && d.Year == year && d.Month == month {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeDebtRepo) UnpaidCountForMember(_ context.Context, memberID primitive.ObjectID) (int64, error) {
	var n int64
	for _, d := range f.debts {
		if d.MemberID == memberID && !d.Paid {
			n++
		}
	}
	return n, nil
}

func (f *fakeDebtRepo) CountForTariff(_ context.Context, tariffID primitive.ObjectID) (int64, error) {
	var n int64
	for _, d := range f.debts {
		if d.TariffID == tariffID {
			n++
		}
	}
	return n, nil
}

func (f *fakeDebtRepo) EnsureIndexes(_ context.Context) error { return nil }

// payment totals per debt id
type fakePayments struct {
	totals map[string]float64
	counts map[string]int64
}

func newFakePayments() *fakePayments {
	return &fakePayments{
		totals: make(map[string]float64),
		counts: make(map[string]int64),
	}
}

func (f *fakePayments) record(debtID primitive.ObjectID, amount float64) {
	f.totals[debtID.Hex()] += amount
	f.counts[debtID.Hex()]++
}

func (f *fakePayments) clear(debtID primitive.ObjectID) {
	delete(f.totals, debtID.Hex())
	delete(f.counts, debtID.Hex())
}

func (f *fakePayments) TotalForDebt(_ context.Context, debtID primitive.ObjectID) (float64, error) {
	return f.totals[debtID.Hex()], nil
}

func (f *fakePayments) CountForDebt(_ context.Context, debtID primitive.ObjectID) (int64, error) {
	return f.counts[debtID.Hex()], nil
}

type fakeMembers struct {
	active []primitive.ObjectID
}

func (f *fakeMembers) ActiveMemberIDs(_ context.Context) ([]primitive.ObjectID, error) {
	return f.active, nil
}

type fakeTariffs struct {
	amount float64
}

func (f *fakeTariffs) AmountForMember(_ context.Context, _, _ primitive.ObjectID) (float64, error) {
	return f.amount, nil
}

type fakeAudit struct{}

func (fakeAudit) LogChange(context.Context, common_models.AuditAction, string, string, map[string]common_models.Change) error {
	return nil
}

func (fakeAudit) ListLogs(context.Context, map[string]interface{}, int64, int64) ([]common_models.AuditLog, error) {
	return nil, nil
}

type debtFixture struct {
	repo     *fakeDebtRepo
	payments *fakePayments
	members  *fakeMembers
	tariffs  *fakeTariffs
	service  DebtService
}

func newDebtFixture() *debtFixture {
	repo := newFakeDebtRepo()
	payments := newFakePayments()
	members := &fakeMembers{}
	tariffs := &fakeTariffs{amount: 100}
	svc := NewDebtService(repo, payments, members, tariffs, fakeAudit{}, zap.NewNop())
	return &debtFixture{repo: repo, payments: payments, members: members, tariffs: tariffs, service: svc}
}

func TestDeleteDebtBlockedByPayments(t *testing.T) {
	fix := newDebtFixture()

	created, err := fix.service.CreateDebt(context.Background(), &Debt{
		MemberID: primitive.NewObjectID(),
		Amount:   100,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	fix.payments.record(created.ID, 40)
	if err := fix.service.DeleteDebt(context.Background(), created.ID.Hex()); !errors.Is(err, ErrDebtHasPayments) {
		t.Errorf("delete with payments: err = %v, want ErrDebtHasPayments", err)
	}
	if _, err := fix.service.GetDebtByID(context.Background(), created.ID.Hex()); err != nil {
		t.Fatalf("debt disappeared despite blocked delete: %v", err)
	}

	fix.payments.clear(created.ID)
	if err := fix.service.DeleteDebt(context.Background(), created.ID.Hex()); err != nil {
		t.Errorf("delete without payments: %v", err)
	}
	if _, err := fix.service.GetDebtByID(context.Background(), created.ID.Hex()); !errors.Is(err, ErrDebtNotFound) {
		t.Error("debt still present after delete")
	}
}

func TestDeleteDebtUnknownID(t *testing.T) {
	fix := newDebtFixture()

	err := fix.service.DeleteDebt(context.Background(), primitive.NewObjectID().Hex())
	if !errors.Is(err, ErrDebtNotFound) {
		t.Errorf("err = %v, want ErrDebtNotFound", err)
	}
}

func TestIssueForPeriodSkipsExistingDebts(t *testing.T) {
	fix := newDebtFixture()
	tariffID := primitive.NewObjectID()
	first := primitive.NewObjectID()
	second := primitive.NewObjectID()
	fix.members.active = []primitive.ObjectID{first, second}

	issued, err := fix.service.IssueForPeriod(context.Background(), tariffID.Hex(), 2026, 8)
	if err != nil {
		t.Fatalf("first issue: %v", err)
	}
	if issued != 2 {
		t.Errorf("first issue = %d, want 2", issued)
	}

	issued, err = fix.service.IssueForPeriod(context.Background(), tariffID.Hex(), 2026, 8)
	if err != nil {
		t.Fatalf("second issue: %v", err)
	}
	if issued != 0 {
		t.Errorf("re-issue for same period = %d, want 0", issued)
	}
}
