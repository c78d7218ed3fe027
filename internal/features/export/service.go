package export

import (
	"context"
	"errors"
	"fmt"

	common_models "go-dernek/internal/common/models"
	"go-dernek/internal/config"
	"go-dernek/internal/features/audit"
	"go-dernek/internal/features/debt"
	"go-dernek/internal/features/member"
	"go-dernek/internal/features/payment"

	"go.uber.org/zap"
)

var ErrNoReportDB = errors.New("reporting database is not configured")

// SyncResult reports how many rows reached the reporting database.
type SyncResult struct {
	Debts    int `json:"borclar"`
	Payments int `json:"odemeler"`
}

type ExportService interface {
	MembersExcel(ctx context.Context) ([]byte, string, error)
	DebtsExcel(ctx context.Context, filter map[string]interface{}) ([]byte, string, error)
	PaymentsExcel(ctx context.Context, filter map[string]interface{}) ([]byte, string, error)
	SyncToPostgres(ctx context.Context) (*SyncResult, error)
}

type ExportServiceImpl struct {
	Debts        debt.DebtService
	Payments     payment.PaymentService
	Members      member.MemberService
	AuditService audit.AuditService
	Config       *config.Config
	Logger       *zap.Logger
}

func NewExportService(
	debts debt.DebtService,
	payments payment.PaymentService,
	members member.MemberService,
	auditService audit.AuditService,
	cfg *config.Config,
	logger *zap.Logger,
) ExportService {
	return &ExportServiceImpl{
		Debts:        debts,
		Payments:     payments,
		Members:      members,
		AuditService: auditService,
		Config:       cfg,
		Logger:       logger,
	}
}

const exportPageSize = 10000

func (s *ExportServiceImpl) MembersExcel(ctx context.Context) ([]byte, string, error) {
	members, _, err := s.Members.ListMembers(ctx, map[string]interface{}{}, 1, exportPageSize)
	if err != nil {
		return nil, "", err
	}

	rows := make([]map[string]any, 0, len(members))
	for _, m := range members {
		rows = append(rows, map[string]any{
			"uyeNo":       m.MemberNo,
			"kisi_id":     m.PersonID,
			"durum":       string(m.Status),
			"girisTarihi": m.JoinDate,
		})
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionExport, "uyeler", "excel", nil)

	return BuildWorkbook(rows, []string{"uyeNo", "kisi_id", "durum", "girisTarihi"}, "uyeler")
}

func (s *ExportServiceImpl) DebtsExcel(ctx context.Context, filter map[string]interface{}) ([]byte, string, error) {
	debts, _, err := s.Debts.ListDebts(ctx, filter, 1, exportPageSize)
	if err != nil {
		return nil, "", err
	}

	rows := make([]map[string]any, 0, len(debts))
	for _, d := range debts {
		rows = append(rows, map[string]any{
			"uye_id":     d.MemberID,
			"donem":      formatPeriod(d.Year, d.Month),
			"borcTutari": d.Amount,
			"kalan":      d.Remaining,
			"odendi":     d.Paid,
			"aciklama":   d.Description,
		})
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionExport, "borclar", "excel", nil)

	return BuildWorkbook(rows, []string{"uye_id", "donem", "borcTutari", "kalan", "odendi", "aciklama"}, "borclar")
}

func (s *ExportServiceImpl) PaymentsExcel(ctx context.Context, filter map[string]interface{}) ([]byte, string, error) {
	payments, _, err := s.Payments.ListPayments(ctx, filter, 1, exportPageSize)
	if err != nil {
		return nil, "", err
	}

	rows := make([]map[string]any, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, map[string]any{
			"borc_id":     p.DebtID,
			"uye_id":      p.MemberID,
			"kasa_id":     p.RegisterID,
			"odemeTutari": p.Amount,
			"odemeTuru":   string(p.Method),
			"odemeTarihi": p.PaidAt,
		})
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionExport, "odemeler", "excel", nil)

	return BuildWorkbook(rows, []string{"borc_id", "uye_id", "kasa_id", "odemeTutari", "odemeTuru", "odemeTarihi"}, "odemeler")
}

func (s *ExportServiceImpl) SyncToPostgres(ctx context.Context) (*SyncResult, error) {
	if s.Config.ReportDB == "" {
		return nil, ErrNoReportDB
	}

	sink := newPgSink(s.Config.ReportDB)
	db, err := sink.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	result := &SyncResult{}

	for page := int64(1); ; page++ {
		debts, _, err := s.Debts.ListDebts(ctx, map[string]interface{}{}, page, exportPageSize)
		if err != nil {
			return result, fmt.Errorf("failed to fetch debts on page %d: %w", page, err)
		}
		if len(debts) == 0 {
			break
		}
		n, err := sink.upsertDebts(ctx, db, debts)
		result.Debts += n
		if err != nil {
			return result, err
		}
		if len(debts) < exportPageSize {
			break
		}
	}

	for page := int64(1); ; page++ {
		payments, _, err := s.Payments.ListPayments(ctx, map[string]interface{}{}, page, exportPageSize)
		if err != nil {
			return result, fmt.Errorf("failed to fetch payments on page %d: %w", page, err)
		}
		if len(payments) == 0 {
			break
		}
		n, err := sink.upsertPayments(ctx, db, payments)
		result.Payments += n
		if err != nil {
			return result, err
		}
		if len(payments) < exportPageSize {
			break
		}
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionExport, "export", "postgres", map[string]common_models.Change{
		"borclar":  {New: result.Debts},
		"odemeler": {New: result.Payments},
	})

	s.Logger.Info("reporting export completed",
		zap.Int("borclar", result.Debts),
		zap.Int("odemeler", result.Payments))

	return result, nil
}
