package payment

import (
	"context"
	"testing"
	"time"

	common_models "go-dernek/internal/common/models"
	"go-dernek/internal/features/debt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// in-memory payment store
type fakePaymentRepo struct {
	payments map[string]*Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[string]*Payment)}
}

func (f *fakePaymentRepo) Create(_ context.Context, p *Payment) error {
	cp := *p
	f.payments[p.ID.Hex()] = &cp
	return nil
}

func (f *fakePaymentRepo) FindByID(_ context.Context, id string) (*Payment, error) {
	p, ok := f.payments[id]
	if !ok {
		return nil, ErrPaymentNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePaymentRepo) List(_ context.Context, _ map[string]interface{}, _, _ int64) ([]Payment, int64, error) {
	var out []Payment
	for _, p := range f.payments {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (f *fakePaymentRepo) Update(_ context.Context, id string, fields bson.M) error {
	p, ok := f.payments[id]
	if !ok {
		return ErrPaymentNotFound
	}
	if v, ok := fields["odemeTutari"]; ok {
		p.Amount = v.(float64)
	}
	if v, ok := fields["odemeTuru"]; ok {
		p.Method = v.(Method)
	}
	return nil
}

func (f *fakePaymentRepo) Delete(_ context.Context, id string) error {
	delete(f.payments, id)
	return nil
}

func (f *fakePaymentRepo) TotalForDebt(_ context.Context, debtID primitive.ObjectID) (float64, error) {
	var total float64
	for _, p := range f.payments {
		if p.DebtID == debtID {
			total += p.Amount
		}
	}
	return total, nil
}

func (f *fakePaymentRepo) CountForDebt(_ context.Context, debtID primitive.ObjectID) (int64, error) {
	var n int64
	for _, p := range f.payments {
		if p.DebtID == debtID {
			n++
		}
	}
	return n, nil
}

func (f *fakePaymentRepo) TotalForRegister(_ context.Context, _ primitive.ObjectID) (float64, error) {
	return 0, nil
}

func (f *fakePaymentRepo) EnsureIndexes(_ context.Context) error { return nil }

// fakeDebtService recomputes balances against the fake payment store
type fakeDebtService struct {
	debts    map[string]*debt.Debt
	payments *fakePaymentRepo
}

func (f *fakeDebtService) GetDebtByID(_ context.Context, id string) (*debt.Debt, error) {
	d, ok := f.debts[id]
	if !ok {
		return nil, debt.ErrDebtNotFound
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDebtService) Recompute(ctx context.Context, id string) (*debt.Debt, error) {
	d, ok := f.debts[id]
	if !ok {
		return nil, debt.ErrDebtNotFound
	}
	total, _ := f.payments.TotalForDebt(ctx, d.ID)
	d.Remaining, d.Paid = debt.ComputeBalance(d.Amount, total)
	cp := *d
	return &cp, nil
}

func (f *fakeDebtService) CreateDebt(context.Context, *debt.Debt) (*debt.Debt, error) {
	return nil, nil
}
func (f *fakeDebtService) ListDebts(context.Context, map[string]interface{}, int64, int64) ([]debt.Debt, int64, error) {
	return nil, 0, nil
}
func (f *fakeDebtService) UpdateDebt(context.Context, string, *float64, *string) (*debt.Debt, error) {
	return nil, nil
}
func (f *fakeDebtService) DeleteDebt(context.Context, string) error { return nil }
func (f *fakeDebtService) IssueForPeriod(context.Context, string, int, int) (int, error) {
	return 0, nil
}

type fakeAudit struct{}

func (fakeAudit) LogChange(context.Context, common_models.AuditAction, string, string, map[string]common_models.Change) error {
	return nil
}
func (fakeAudit) ListLogs(context.Context, map[string]interface{}, int64, int64) ([]common_models.AuditLog, error) {
	return nil, nil
}

type fakeEvents struct {
	published []string
}

func (f *fakeEvents) Publish(event string, _ interface{}) {
	f.published = append(f.published, event)
}

func newTestService(face float64) (PaymentService, *fakeDebtService, *fakeEvents, primitive.ObjectID) {
	repo := newFakePaymentRepo()
	debtID := primitive.NewObjectID()
	kalan, odendi := debt.ComputeBalance(face, 0)
	debts := &fakeDebtService{
		debts: map[string]*debt.Debt{
			debtID.Hex(): {
				ID:        debtID,
				MemberID:  primitive.NewObjectID(),
				Amount:    face,
				Remaining: kalan,
				Paid:      odendi,
			},
		},
		payments: repo,
	}
	events := &fakeEvents{}
	svc := NewPaymentService(repo, debts, fakeAudit{}, events, zap.NewNop())
	return svc, debts, events, debtID
}

func TestCreatePaymentRecomputesDebt(t *testing.T) {
	svc, _, events, debtID := newTestService(100.00)
	ctx := context.Background()

	first, err := svc.CreatePayment(ctx, &Payment{
		DebtID:     debtID,
		RegisterID: primitive.NewObjectID(),
		Amount:     40.00,
		Method:     MethodCash,
	})
	if err != nil {
		t.Fatalf("first payment: %v", err)
	}
	if first.Debt.Remaining != 60.00 || first.Debt.Paid {
		t.Errorf("after 40: kalan=%v odendi=%v, want 60 false", first.Debt.Remaining, first.Debt.Paid)
	}

	second, err := svc.CreatePayment(ctx, &Payment{
		DebtID:     debtID,
		RegisterID: primitive.NewObjectID(),
		Amount:     60.00,
		Method:     MethodTransfer,
	})
	if err != nil {
		t.Fatalf("second payment: %v", err)
	}
	if second.Debt.Remaining != 0.00 || !second.Debt.Paid {
		t.Errorf("after 100: kalan=%v odendi=%v, want 0 true", second.Debt.Remaining, second.Debt.Paid)
	}

	if len(events.published) != 2 || events.published[0] != "odeme_alindi" {
		t.Errorf("events = %v, want two odeme_alindi", events.published)
	}
}

func TestCreatePaymentRoundsAmount(t *testing.T) {
	svc, _, _, debtID := newTestService(10.00)

	res, err := svc.CreatePayment(context.Background(), &Payment{
		DebtID:     debtID,
		RegisterID: primitive.NewObjectID(),
		Amount:     3.335,
		Method:     MethodCash,
	})
	if err != nil {
		t.Fatalf("payment: %v", err)
	}
	if res.Payment.Amount != 3.34 {
		t.Errorf("stored amount = %v, want 3.34", res.Payment.Amount)
	}
	if res.Debt.Remaining != 6.66 {
		t.Errorf("kalan = %v, want 6.66", res.Debt.Remaining)
	}
}

func TestCreatePaymentRejectsOverpayment(t *testing.T) {
	svc, _, _, debtID := newTestService(50.00)
	ctx := context.Background()

	if _, err := svc.CreatePayment(ctx, &Payment{
		DebtID:     debtID,
		RegisterID: primitive.NewObjectID(),
		Amount:     50.02,
		Method:     MethodCash,
	}); err != ErrPaymentExceedsBalance {
		t.Errorf("overpayment error = %v, want ErrPaymentExceedsBalance", err)
	}

	// exactly the remaining balance is fine
	if _, err := svc.CreatePayment(ctx, &Payment{
		DebtID:     debtID,
		RegisterID: primitive.NewObjectID(),
		Amount:     50.00,
		Method:     MethodCash,
	}); err != nil {
		t.Errorf("exact payment rejected: %v", err)
	}
}

func TestCreatePaymentUnknownDebt(t *testing.T) {
	svc, _, _, _ := newTestService(50.00)

	_, err := svc.CreatePayment(context.Background(), &Payment{
		DebtID:     primitive.NewObjectID(),
		RegisterID: primitive.NewObjectID(),
		Amount:     10.00,
		Method:     MethodCash,
	})
	if err != debt.ErrDebtNotFound {
		t.Errorf("error = %v, want ErrDebtNotFound", err)
	}
}

func TestUpdatePaymentDelta(t *testing.T) {
	svc, _, _, debtID := newTestService(100.00)
	ctx := context.Background()

	created, err := svc.CreatePayment(ctx, &Payment{
		DebtID:     debtID,
		RegisterID: primitive.NewObjectID(),
		Amount:     40.00,
		Method:     MethodCash,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	id := created.Payment.ID.Hex()

	// increasing past the face amount is rejected before reconciliation
	tooMuch := 101.00
	if _, err := svc.UpdatePayment(ctx, id, &tooMuch, nil, nil); err != ErrPaymentExceedsBalance {
		t.Errorf("oversized edit error = %v, want ErrPaymentExceedsBalance", err)
	}

	// a valid increase consumes the outstanding balance
	newAmount := 100.00
	res, err := svc.UpdatePayment(ctx, id, &newAmount, nil, nil)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if res.Debt.Remaining != 0.00 || !res.Debt.Paid {
		t.Errorf("after edit: kalan=%v odendi=%v, want 0 true", res.Debt.Remaining, res.Debt.Paid)
	}

	// a decrease reopens the debt
	smaller := 25.00
	res, err = svc.UpdatePayment(ctx, id, &smaller, nil, nil)
	if err != nil {
		t.Fatalf("decrease: %v", err)
	}
	if res.Debt.Remaining != 75.00 || res.Debt.Paid {
		t.Errorf("after decrease: kalan=%v odendi=%v, want 75 false", res.Debt.Remaining, res.Debt.Paid)
	}
}

func TestDeletePaymentRestoresBalance(t *testing.T) {
	svc, _, _, debtID := newTestService(100.00)
	ctx := context.Background()

	created, err := svc.CreatePayment(ctx, &Payment{
		DebtID:     debtID,
		RegisterID: primitive.NewObjectID(),
		Amount:     100.00,
		Method:     MethodCard,
		PaidAt:     time.Now(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.DeletePayment(ctx, created.Payment.ID.Hex())
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if updated.Remaining != 100.00 || updated.Paid {
		t.Errorf("after delete: kalan=%v odendi=%v, want 100 false", updated.Remaining, updated.Paid)
	}
}

func TestPaymentMethodValidation(t *testing.T) {
	svc, _, _, debtID := newTestService(100.00)

	_, err := svc.CreatePayment(context.Background(), &Payment{
		DebtID:     debtID,
		RegisterID: primitive.NewObjectID(),
		Amount:     10.00,
		Method:     Method("cek"),
	})
	if err != ErrInvalidMethod {
		t.Errorf("error = %v, want ErrInvalidMethod", err)
	}
}
