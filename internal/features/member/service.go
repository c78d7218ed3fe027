package member

import (
	"context"
	"errors"
	"fmt"
	"time"

	common_models "go-dernek/internal/common/models"
	"go-dernek/internal/features/audit"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var (
	ErrMemberNotFound  = errors.New("member not found")
	ErrAlreadyMember   = errors.New("person is already a member of this organization")
	ErrInvalidStatus   = errors.New("invalid member status")
	ErrMemberHasDebts  = errors.New("member has unpaid debts")
	memberNoRetryLimit = 3
)

// PersonSource verifies the person exists before a membership is
// created; wired in main.
type PersonSource interface {
	Exists(ctx context.Context, personID string) (bool, error)
}

// DebtSource counts open debts for the delete guard; wired in main.
type DebtSource interface {
	UnpaidCountForMember(ctx context.Context, memberID primitive.ObjectID) (int64, error)
}

type MemberService interface {
	CreateMember(ctx context.Context, member *Member) (*Member, error)
	GetMemberByID(ctx context.Context, id string) (*Member, error)
	ListMembers(ctx context.Context, filter map[string]interface{}, page, limit int64) ([]Member, int64, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Member, error)
	DeleteMember(ctx context.Context, id string) error
	ActiveMemberIDs(ctx context.Context) ([]primitive.ObjectID, error)
	CountForPerson(ctx context.Context, personID primitive.ObjectID) (int64, error)
	CountForOrganization(ctx context.Context, orgID primitive.ObjectID) (int64, error)
}

type MemberServiceImpl struct {
	Repo         MemberRepository
	People       PersonSource
	Debts        DebtSource
	AuditService audit.AuditService
	Logger       *zap.Logger
}

func NewMemberService(
	repo MemberRepository,
	people PersonSource,
	debts DebtSource,
	auditService audit.AuditService,
	logger *zap.Logger,
) MemberService {
	return &MemberServiceImpl{
		Repo:         repo,
		People:       people,
		Debts:        debts,
		AuditService: auditService,
		Logger:       logger,
	}
}

func (s *MemberServiceImpl) CreateMember(ctx context.Context, member *Member) (*Member, error) {
	if member.PersonID.IsZero() || member.OrganizationID.IsZero() {
		return nil, fmt.Errorf("kisi_id and organizasyon_id are required")
	}

	ok, err := s.People.Exists(ctx, member.PersonID.Hex())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("person not found")
	}

	exists, err := s.Repo.ExistsForPersonOrg(ctx, member.PersonID, member.OrganizationID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyMember
	}

	now := time.Now()
	member.ID = primitive.NewObjectID()
	if member.Status == "" {
		member.Status = StatusActive
	}
	if !member.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if member.JoinDate.IsZero() {
		member.JoinDate = now
	}
	member.CreatedAt = now
	member.UpdatedAt = now

	for attempt := 0; ; attempt++ {
		no, err := s.Repo.NextMemberNo(ctx)
		if err != nil {
			return nil, err
		}
		member.MemberNo = no

		err = s.Repo.Create(ctx, member)
		if err == nil {
			break
		}
		if mongo.IsDuplicateKeyError(err) && attempt < memberNoRetryLimit {
			continue
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrAlreadyMember
		}
		return nil, err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionCreate, "uyeler", member.ID.Hex(), map[string]common_models.Change{
		"uyeNo":   {New: member.MemberNo},
		"kisi_id": {New: member.PersonID.Hex()},
	})

	s.Logger.Info("member created",
		zap.String("uyeNo", member.MemberNo),
		zap.String("kisi_id", member.PersonID.Hex()))

	return member, nil
}

func (s *MemberServiceImpl) GetMemberByID(ctx context.Context, id string) (*Member, error) {
	member, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrMemberNotFound
	}
	return member, nil
}

func (s *MemberServiceImpl) ListMembers(ctx context.Context, filter map[string]interface{}, page, limit int64) ([]Member, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return s.Repo.List(ctx, filter, page, limit)
}

func (s *MemberServiceImpl) UpdateStatus(ctx context.Context, id string, status Status) (*Member, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	existing, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrMemberNotFound
	}
	if existing.Status == status {
		return existing, nil
	}

	if err := s.Repo.Update(ctx, id, bson.M{"durum": status}); err != nil {
		return nil, err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionUpdate, "uyeler", id, map[string]common_models.Change{
		"durum": {Old: existing.Status, New: status},
	})

	return s.Repo.FindByID(ctx, id)
}

func (s *MemberServiceImpl) DeleteMember(ctx context.Context, id string) error {
	member, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return ErrMemberNotFound
	}

	if s.Debts != nil {
		unpaid, err := s.Debts.UnpaidCountForMember(ctx, member.ID)
		if err != nil {
			return err
		}
		if unpaid > 0 {
			return ErrMemberHasDebts
		}
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionDelete, "uyeler", id, map[string]common_models.Change{
		"uyeNo": {Old: member.MemberNo},
	})
	return nil
}

func (s *MemberServiceImpl) ActiveMemberIDs(ctx context.Context) ([]primitive.ObjectID, error) {
	return s.Repo.ActiveIDs(ctx)
}

func (s *MemberServiceImpl) CountForPerson(ctx context.Context, personID primitive.ObjectID) (int64, error) {
	return s.Repo.CountForPerson(ctx, personID)
}

func (s *MemberServiceImpl) CountForOrganization(ctx context.Context, orgID primitive.ObjectID) (int64, error) {
	return s.Repo.CountForOrganization(ctx, orgID)
}
