package tariff

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
	ErrTariffNotFound = errors.New("tariff not found")
	ErrTariffInUse    = errors.New("tariff has issued debts")
	ErrInvalidType    = errors.New("invalid tariff type")
	ErrBadFormula     = errors.New("formula is invalid")
)

// MemberDocSource resolves a member into the document map formulas
// consume; wired in main.
type MemberDocSource interface {
	MemberDoc(ctx context.Context, memberID primitive.ObjectID) (map[string]interface{}, error)
}

// DebtCounter reports how many debts a tariff has issued; wired in
// main. Tariffs with issued debts cannot be deleted.
type DebtCounter interface {
	CountForTariff(ctx context.Context, tariffID primitive.ObjectID) (int64, error)
}

type TariffService interface {
	CreateTariff(ctx context.Context, tariff *Tariff) (*Tariff, error)
	GetTariffByID(ctx context.Context, id string) (*Tariff, error)
	ListTariffs(ctx context.Context, filter map[string]interface{}) ([]Tariff, error)
	UpdateTariff(ctx context.Context, id string, amount *float64, formula *string, active *bool) (*Tariff, error)
	DeleteTariff(ctx context.Context, id string) error
	Evaluate(ctx context.Context, tariffID string, memberID string) (float64, error)
	AmountForMember(ctx context.Context, tariffID, memberID primitive.ObjectID) (float64, error)
}

type TariffServiceImpl struct {
	Repo         TariffRepository
	Members      MemberDocSource
	Debts        DebtCounter
	AuditService audit.AuditService
	Logger       *zap.Logger
}

func NewTariffService(
	repo TariffRepository,
	members MemberDocSource,
	debts DebtCounter,
	auditService audit.AuditService,
	logger *zap.Logger,
) TariffService {
	return &TariffServiceImpl{
		Repo:         repo,
		Members:      members,
		Debts:        debts,
		AuditService: auditService,
		Logger:       logger,
	}
}

func (s *TariffServiceImpl) CreateTariff(ctx context.Context, tariff *Tariff) (*Tariff, error) {
	if tariff.Name == "" {
		return nil, fmt.Errorf("ad is required")
	}
	if !tariff.Type.Valid() {
		return nil, ErrInvalidType
	}
	if tariff.Amount < 0 {
		return nil, fmt.Errorf("tutar cannot be negative")
	}
	if err := s.checkFormula(ctx, tariff.Formula, tariff.Amount); err != nil {
		return nil, err
	}

	now := time.Now()
	tariff.ID = primitive.NewObjectID()
	tariff.Amount = utils.Round2(tariff.Amount)
	tariff.Active = true
	if tariff.Year == 0 {
		tariff.Year = now.Year()
	}
	tariff.CreatedAt = now
	tariff.UpdatedAt = now

	if err := s.Repo.Create(ctx, tariff); err != nil {
		return nil, err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionCreate, "tarifeler", tariff.ID.Hex(), map[string]common_models.Change{
		"ad":    {New: tariff.Name},
		"tutar": {New: tariff.Amount},
	})

	return tariff, nil
}

// checkFormula compiles a script so syntax errors are rejected at
// write time. Runtime behaviour still depends on the member document,
// so AmountForMember keeps a flat-amount fallback.
func (s *TariffServiceImpl) checkFormula(_ context.Context, formula string, base float64) error {
	if formula == "" {
		return nil
	}
	if err := CompileFormula(formula, base); err != nil {
		return fmt.Errorf("%w: %v", ErrBadFormula, err)
	}
	return nil
}

func (s *TariffServiceImpl) GetTariffByID(ctx context.Context, id string) (*Tariff, error) {
	tariff, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrTariffNotFound
	}
	return tariff, nil
}

func (s *TariffServiceImpl) ListTariffs(ctx context.Context, filter map[string]interface{}) ([]Tariff, error) {
	return s.Repo.List(ctx, filter)
}

func (s *TariffServiceImpl) UpdateTariff(ctx context.Context, id string, amount *float64, formula *string, active *bool) (*Tariff, error) {
	existing, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrTariffNotFound
	}

	fields := bson.M{}
	changes := map[string]common_models.Change{}
	if amount != nil {
		if *amount < 0 {
			return nil, fmt.Errorf("tutar cannot be negative")
		}
		rounded := utils.Round2(*amount)
		fields["tutar"] = rounded
		changes["tutar"] = common_models.Change{Old: existing.Amount, New: rounded}
	}
	if formula != nil {
		base := existing.Amount
		if amount != nil {
			base = *amount
		}
		if err := s.checkFormula(ctx, *formula, base); err != nil {
			return nil, err
		}
		fields["formul"] = *formula
		changes["formul"] = common_models.Change{Old: existing.Formula, New: *formula}
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

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionUpdate, "tarifeler", id, changes)

	return s.Repo.FindByID(ctx, id)
}

func (s *TariffServiceImpl) DeleteTariff(ctx context.Context, id string) error {
	tariff, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return ErrTariffNotFound
	}

	if s.Debts != nil {
		count, err := s.Debts.CountForTariff(ctx, tariff.ID)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrTariffInUse
		}
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionDelete, "tarifeler", id, map[string]common_models.Change{
		"ad": {Old: tariff.Name},
	})
	return nil
}

func (s *TariffServiceImpl) Evaluate(ctx context.Context, tariffID string, memberID string) (float64, error) {
	tid, err := primitive.ObjectIDFromHex(tariffID)
	if err != nil {
		return 0, fmt.Errorf("invalid tariff id")
	}
	mid, err := primitive.ObjectIDFromHex(memberID)
	if err != nil {
		return 0, fmt.Errorf("invalid member id")
	}
	return s.AmountForMember(ctx, tid, mid)
}

func (s *TariffServiceImpl) AmountForMember(ctx context.Context, tariffID, memberID primitive.ObjectID) (float64, error) {
	tariff, err := s.Repo.FindByID(ctx, tariffID.Hex())
	if err != nil {
		return 0, ErrTariffNotFound
	}

	if tariff.Formula == "" {
		return utils.Round2(tariff.Amount), nil
	}

	doc, err := s.Members.MemberDoc(ctx, memberID)
	if err != nil {
		return 0, err
	}

	amount, err := EvaluateFormula(ctx, tariff.Formula, tariff.Amount, doc)
	if err != nil {
		s.Logger.Warn("tariff formula failed, falling back to flat amount",
			zap.String("tarife_id", tariffID.Hex()),
			zap.String("uye_id", memberID.Hex()),
			zap.Error(err))
		return utils.Round2(tariff.Amount), nil
	}
	return amount, nil
}
