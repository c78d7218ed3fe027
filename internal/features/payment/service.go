package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	common_models "go-dernek/internal/common/models"
	"go-dernek/internal/features/audit"
	"go-dernek/internal/features/debt"
	"go-dernek/pkg/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var (
	ErrPaymentNotFound       = errors.New("payment not found")
	ErrPaymentExceedsBalance = errors.New("payment exceeds remaining balance")
	ErrInvalidMethod         = errors.New("invalid payment method")
)

// EventPublisher pushes domain events to connected clients.
// Implemented by the websocket hub; adapted in main.
type EventPublisher interface {
	Publish(event string, payload interface{})
}

// PaymentResult is what write endpoints return: the payment together
// with the debt balance it produced.
type PaymentResult struct {
	Payment *Payment   `json:"odeme"`
	Debt    *debt.Debt `json:"borc"`
}

type PaymentService interface {
	CreatePayment(ctx context.Context, payment *Payment) (*PaymentResult, error)
	GetPaymentByID(ctx context.Context, id string) (*Payment, error)
	ListPayments(ctx context.Context, filter map[string]interface{}, page, limit int64) ([]Payment, int64, error)
	UpdatePayment(ctx context.Context, id string, amount *float64, method *Method, paidAt *time.Time) (*PaymentResult, error)
	DeletePayment(ctx context.Context, id string) (*debt.Debt, error)
	AttachReceipt(ctx context.Context, id string, receipt *ReceiptMeta) (*Payment, error)
}

type PaymentServiceImpl struct {
	Repo         PaymentRepository
	DebtService  debt.DebtService
	AuditService audit.AuditService
	Events       EventPublisher
	Logger       *zap.Logger
}

func NewPaymentService(
	repo PaymentRepository,
	debtService debt.DebtService,
	auditService audit.AuditService,
	events EventPublisher,
	logger *zap.Logger,
) PaymentService {
	return &PaymentServiceImpl{
		Repo:         repo,
		DebtService:  debtService,
		AuditService: auditService,
		Events:       events,
		Logger:       logger,
	}
}

func (s *PaymentServiceImpl) CreatePayment(ctx context.Context, payment *Payment) (*PaymentResult, error) {
	if payment.DebtID.IsZero() {
		return nil, fmt.Errorf("borc_id is required")
	}
	if !payment.Method.Valid() {
		return nil, ErrInvalidMethod
	}

	d, err := s.DebtService.GetDebtByID(ctx, payment.DebtID.Hex())
	if err != nil {
		return nil, err
	}

	payment.Amount = utils.Round2(payment.Amount)
	if payment.Amount <= 0 {
		return nil, fmt.Errorf("odemeTutari must be positive")
	}
	// validation happens here, before reconciliation ever runs
	if payment.Amount > d.Remaining+debt.PaidTolerance {
		return nil, ErrPaymentExceedsBalance
	}

	now := time.Now()
	payment.ID = primitive.NewObjectID()
	payment.MemberID = d.MemberID
	if payment.PaidAt.IsZero() {
		payment.PaidAt = now
	}
	payment.CreatedAt = now
	payment.UpdatedAt = now

	if err := s.Repo.Create(ctx, payment); err != nil {
		return nil, err
	}

	// the payment is persisted first; the recompute sums what is stored
	updated, err := s.DebtService.Recompute(ctx, payment.DebtID.Hex())
	if err != nil {
		return nil, err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionPayment, "odemeler", payment.ID.Hex(), map[string]common_models.Change{
		"odemeTutari": {New: payment.Amount},
		"kalan":       {Old: d.Remaining, New: updated.Remaining},
	})

	s.Events.Publish("odeme_alindi", PaymentResult{Payment: payment, Debt: updated})
	s.Logger.Info("payment recorded",
		zap.String("borc_id", payment.DebtID.Hex()),
		zap.Float64("odemeTutari", payment.Amount),
		zap.Float64("kalan", updated.Remaining))

	return &PaymentResult{Payment: payment, Debt: updated}, nil
}

func (s *PaymentServiceImpl) GetPaymentByID(ctx context.Context, id string) (*Payment, error) {
	payment, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrPaymentNotFound
	}
	return payment, nil
}

func (s *PaymentServiceImpl) ListPayments(ctx context.Context, filter map[string]interface{}, page, limit int64) ([]Payment, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return s.Repo.List(ctx, filter, page, limit)
}

func (s *PaymentServiceImpl) UpdatePayment(ctx context.Context, id string, amount *float64, method *Method, paidAt *time.Time) (*PaymentResult, error) {
	existing, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrPaymentNotFound
	}

	d, err := s.DebtService.GetDebtByID(ctx, existing.DebtID.Hex())
	if err != nil {
		return nil, err
	}

	fields := bson.M{}
	changes := map[string]common_models.Change{}

	if amount != nil {
		rounded := utils.Round2(*amount)
		if rounded <= 0 {
			return nil, fmt.Errorf("odemeTutari must be positive")
		}
		// an increase may only consume what is still outstanding
		if rounded-existing.Amount > d.Remaining+debt.PaidTolerance {
			return nil, ErrPaymentExceedsBalance
		}
		fields["odemeTutari"] = rounded
		changes["odemeTutari"] = common_models.Change{Old: existing.Amount, New: rounded}
	}
	if method != nil {
		if !method.Valid() {
			return nil, ErrInvalidMethod
		}
		fields["odemeTuru"] = *method
		changes["odemeTuru"] = common_models.Change{Old: existing.Method, New: *method}
	}
	if paidAt != nil {
		fields["odemeTarihi"] = *paidAt
	}

	if len(fields) == 0 {
		return &PaymentResult{Payment: existing, Debt: d}, nil
	}

	if err := s.Repo.Update(ctx, id, fields); err != nil {
		return nil, err
	}

	updated, err := s.DebtService.Recompute(ctx, existing.DebtID.Hex())
	if err != nil {
		return nil, err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionUpdate, "odemeler", id, changes)

	payment, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &PaymentResult{Payment: payment, Debt: updated}, nil
}

func (s *PaymentServiceImpl) DeletePayment(ctx context.Context, id string) (*debt.Debt, error) {
	existing, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrPaymentNotFound
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return nil, err
	}

	updated, err := s.DebtService.Recompute(ctx, existing.DebtID.Hex())
	if err != nil {
		return nil, err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionDelete, "odemeler", id, map[string]common_models.Change{
		"odemeTutari": {Old: existing.Amount},
		"kalan":       {New: updated.Remaining},
	})

	s.Events.Publish("odeme_silindi", PaymentResult{Payment: existing, Debt: updated})

	return updated, nil
}

func (s *PaymentServiceImpl) AttachReceipt(ctx context.Context, id string, receipt *ReceiptMeta) (*Payment, error) {
	if _, err := s.Repo.FindByID(ctx, id); err != nil {
		return nil, ErrPaymentNotFound
	}

	if err := s.Repo.Update(ctx, id, bson.M{"makbuz": receipt}); err != nil {
		return nil, err
	}
	return s.Repo.FindByID(ctx, id)
}
