package debt

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
	"go.uber.org/zap"
)

var (
	ErrDebtNotFound    = errors.New("debt not found")
	ErrDebtHasPayments = errors.New("debt has payments and cannot be deleted")
)

// PaymentSource exposes the payment aggregates the reconciler needs.
// Implemented by the payment repository; adapted in main to keep the
// debt -> payment dependency one-way.
type PaymentSource interface {
	TotalForDebt(ctx context.Context, debtID primitive.ObjectID) (float64, error)
	CountForDebt(ctx context.Context, debtID primitive.ObjectID) (int64, error)
}

// MemberSource lists the members bulk issuing targets
type MemberSource interface {
	ActiveMemberIDs(ctx context.Context) ([]primitive.ObjectID, error)
}

// TariffSource resolves the dues amount a tariff yields for a member
type TariffSource interface {
	AmountForMember(ctx context.Context, tariffID primitive.ObjectID, memberID primitive.ObjectID) (float64, error)
}

type DebtService interface {
	CreateDebt(ctx context.Context, debt *Debt) (*Debt, error)
	GetDebtByID(ctx context.Context, id string) (*Debt, error)
	ListDebts(ctx context.Context, filter map[string]interface{}, page, limit int64) ([]Debt, int64, error)
	UpdateDebt(ctx context.Context, id string, amount *float64, description *string) (*Debt, error)
	DeleteDebt(ctx context.Context, id string) error
	// Recompute re-derives kalan/odendi from the persisted payment set
	Recompute(ctx context.Context, debtID string) (*Debt, error)
	// IssueForPeriod creates one debt per active member from a tariff
	IssueForPeriod(ctx context.Context, tariffID string, year, month int) (int, error)
}

type DebtServiceImpl struct {
	Repo         DebtRepository
	Payments     PaymentSource
	Members      MemberSource
	Tariffs      TariffSource
	AuditService audit.AuditService
	Logger       *zap.Logger
}

func NewDebtService(
	repo DebtRepository,
	payments PaymentSource,
	members MemberSource,
	tariffs TariffSource,
	auditService audit.AuditService,
	logger *zap.Logger,
) DebtService {
	return &DebtServiceImpl{
		Repo:         repo,
		Payments:     payments,
		Members:      members,
		Tariffs:      tariffs,
		AuditService: auditService,
		Logger:       logger,
	}
}

func (s *DebtServiceImpl) CreateDebt(ctx context.Context, debt *Debt) (*Debt, error) {
	if debt.MemberID.IsZero() {
		return nil, fmt.Errorf("uye_id is required")
	}
	if debt.Amount <= 0 {
		return nil, fmt.Errorf("borcTutari must be positive")
	}

	now := time.Now()
	debt.ID = primitive.NewObjectID()
	debt.Amount = utils.Round2(debt.Amount)
	debt.Remaining, debt.Paid = ComputeBalance(debt.Amount, 0)
	debt.CreatedAt = now
	debt.UpdatedAt = now

	if err := s.Repo.Create(ctx, debt); err != nil {
		return nil, err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionCreate, "borclar", debt.ID.Hex(), map[string]common_models.Change{
		"borcTutari": {New: debt.Amount},
	})

	return debt, nil
}

func (s *DebtServiceImpl) GetDebtByID(ctx context.Context, id string) (*Debt, error) {
	debt, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrDebtNotFound
	}
	return debt, nil
}

func (s *DebtServiceImpl) ListDebts(ctx context.Context, filter map[string]interface{}, page, limit int64) ([]Debt, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return s.Repo.List(ctx, filter, page, limit)
}

func (s *DebtServiceImpl) UpdateDebt(ctx context.Context, id string, amount *float64, description *string) (*Debt, error) {
	existing, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrDebtNotFound
	}

	fields := bson.M{}
	changes := map[string]common_models.Change{}

	if description != nil {
		fields["aciklama"] = *description
		changes["aciklama"] = common_models.Change{Old: existing.Description, New: *description}
	}
	if amount != nil {
		rounded := utils.Round2(*amount)
		if rounded <= 0 {
			return nil, fmt.Errorf("borcTutari must be positive")
		}
		fields["borcTutari"] = rounded
		changes["borcTutari"] = common_models.Change{Old: existing.Amount, New: rounded}
	}

	if len(fields) == 0 {
		return existing, nil
	}

	if err := s.Repo.Update(ctx, id, fields); err != nil {
		return nil, err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionUpdate, "borclar", id, changes)

	// a face amount change moves the balance too
	if amount != nil {
		return s.Recompute(ctx, id)
	}
	return s.Repo.FindByID(ctx, id)
}

func (s *DebtServiceImpl) DeleteDebt(ctx context.Context, id string) error {
	debt, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return ErrDebtNotFound
	}

	count, err := s.Payments.CountForDebt(ctx, debt.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDebtHasPayments
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionDelete, "borclar", id, map[string]common_models.Change{
		"borcTutari": {Old: debt.Amount},
	})
	return nil
}

// Recompute sums the persisted payments for the debt and stores the
// resulting balance. The read-sum-write sequence is not serialized:
// concurrent payments against the same debt can interleave here and the
// last write wins.
func (s *DebtServiceImpl) Recompute(ctx context.Context, debtID string) (*Debt, error) {
	debt, err := s.Repo.FindByID(ctx, debtID)
	if err != nil {
		return nil, ErrDebtNotFound
	}

	total, err := s.Payments.TotalForDebt(ctx, debt.ID)
	if err != nil {
		return nil, err
	}

	kalan, odendi := ComputeBalance(debt.Amount, total)
	if err := s.Repo.UpdateBalance(ctx, debt.ID, kalan, odendi); err != nil {
		return nil, err
	}

	debt.Remaining = kalan
	debt.Paid = odendi
	return debt, nil
}

func (s *DebtServiceImpl) IssueForPeriod(ctx context.Context, tariffID string, year, month int) (int, error) {
	tariffOID, err := primitive.ObjectIDFromHex(tariffID)
	if err != nil {
		return 0, fmt.Errorf("invalid tariff id: %w", err)
	}
	if month < 1 || month > 12 {
		return 0, fmt.Errorf("invalid month %d", month)
	}

	memberIDs, err := s.Members.ActiveMemberIDs(ctx)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	var debts []Debt
	for _, memberID := range memberIDs {
		exists, err := s.Repo.ExistsForPeriod(ctx, memberID, tariffOID, year, month)
		if err != nil {
			return 0, err
		}
		if exists {
			continue
		}

		amount, err := s.Tariffs.AmountForMember(ctx, tariffOID, memberID)
		if err != nil {
			s.Logger.Warn("tariff amount failed, member skipped",
				zap.String("uye_id", memberID.Hex()),
				zap.Error(err))
			continue
		}

		amount = utils.Round2(amount)
		kalan, odendi := ComputeBalance(amount, 0)
		debts = append(debts, Debt{
			ID:        primitive.NewObjectID(),
			MemberID:  memberID,
			TariffID:  tariffOID,
			Amount:    amount,
			Remaining: kalan,
			Paid:      odendi,
			Year:      year,
			Month:     month,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	created, err := s.Repo.CreateMany(ctx, debts)
	if err != nil {
		return 0, err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionIssue, "borclar", tariffID, map[string]common_models.Change{
		"issued": {New: created},
		"period": {New: fmt.Sprintf("%d-%02d", year, month)},
	})

	s.Logger.Info("dues issued",
		zap.String("tarife_id", tariffID),
		zap.Int("yil", year),
		zap.Int("ay", month),
		zap.Int("count", created))

	return created, nil
}
