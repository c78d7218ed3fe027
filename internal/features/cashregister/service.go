package cashregister

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
)

var (
	ErrRegisterNotFound = errors.New("register not found")
	ErrRegisterInUse    = errors.New("register has payments")
	ErrInvalidType      = errors.New("invalid register type")
)

// PaymentTotals exposes the payment aggregate the balance is derived
// from; wired in main.
type PaymentTotals interface {
	TotalForRegister(ctx context.Context, registerID primitive.ObjectID) (float64, error)
}

type RegisterService interface {
	CreateRegister(ctx context.Context, register *Register) (*Register, error)
	GetRegisterByID(ctx context.Context, id string) (*Register, error)
	ListRegisters(ctx context.Context) ([]Register, error)
	UpdateRegister(ctx context.Context, id string, name, description *string, active *bool) (*Register, error)
	DeleteRegister(ctx context.Context, id string) error
	Balance(ctx context.Context, id string) (*RegisterBalance, error)
	Balances(ctx context.Context) ([]RegisterBalance, error)
}

type RegisterServiceImpl struct {
	Repo         RegisterRepository
	Payments     PaymentTotals
	AuditService audit.AuditService
}

func NewRegisterService(repo RegisterRepository, payments PaymentTotals, auditService audit.AuditService) RegisterService {
	return &RegisterServiceImpl{
		Repo:         repo,
		Payments:     payments,
		AuditService: auditService,
	}
}

func (s *RegisterServiceImpl) CreateRegister(ctx context.Context, register *Register) (*Register, error) {
	if register.Name == "" {
		return nil, fmt.Errorf("ad is required")
	}
	if !register.Type.Valid() {
		return nil, ErrInvalidType
	}

	now := time.Now()
	register.ID = primitive.NewObjectID()
	register.Active = true
	register.CreatedAt = now
	register.UpdatedAt = now

	if err := s.Repo.Create(ctx, register); err != nil {
		return nil, err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionCreate, "kasalar", register.ID.Hex(), map[string]common_models.Change{
		"ad":  {New: register.Name},
		"tur": {New: register.Type},
	})

	return register, nil
}

func (s *RegisterServiceImpl) GetRegisterByID(ctx context.Context, id string) (*Register, error) {
	register, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrRegisterNotFound
	}
	return register, nil
}

func (s *RegisterServiceImpl) ListRegisters(ctx context.Context) ([]Register, error) {
	return s.Repo.List(ctx)
}

func (s *RegisterServiceImpl) UpdateRegister(ctx context.Context, id string, name, description *string, active *bool) (*Register, error) {
	existing, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrRegisterNotFound
	}

	fields := bson.M{}
	changes := map[string]common_models.Change{}
	if name != nil && *name != "" {
		fields["ad"] = *name
		changes["ad"] = common_models.Change{Old: existing.Name, New: *name}
	}
	if description != nil {
		fields["aciklama"] = *description
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

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionUpdate, "kasalar", id, changes)

	return s.Repo.FindByID(ctx, id)
}

func (s *RegisterServiceImpl) DeleteRegister(ctx context.Context, id string) error {
	register, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return ErrRegisterNotFound
	}

	total, err := s.Payments.TotalForRegister(ctx, register.ID)
	if err != nil {
		return err
	}
	if total > 0 {
		return ErrRegisterInUse
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionDelete, "kasalar", id, map[string]common_models.Change{
		"ad": {Old: register.Name},
	})
	return nil
}

func (s *RegisterServiceImpl) Balance(ctx context.Context, id string) (*RegisterBalance, error) {
	register, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrRegisterNotFound
	}

	total, err := s.Payments.TotalForRegister(ctx, register.ID)
	if err != nil {
		return nil, err
	}

	return &RegisterBalance{Register: *register, Balance: utils.Round2(total)}, nil
}

func (s *RegisterServiceImpl) Balances(ctx context.Context) ([]RegisterBalance, error) {
	registers, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}

	balances := make([]RegisterBalance, 0, len(registers))
	for _, register := range registers {
		total, err := s.Payments.TotalForRegister(ctx, register.ID)
		if err != nil {
			return nil, err
		}
		balances = append(balances, RegisterBalance{Register: register, Balance: utils.Round2(total)})
	}
	return balances, nil
}
