package schedule

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	common_models "go-dernek/internal/common/models"
	"go-dernek/internal/features/audit"
	"go-dernek/internal/features/debt"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var (
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrInvalidCron      = errors.New("invalid cron expression")
)

// EventPublisher pushes issuing results to connected clients; wired in
// main.
type EventPublisher interface {
	Publish(event string, payload interface{})
}

type ScheduleService interface {
	CreateSchedule(ctx context.Context, schedule *Schedule) (*Schedule, error)
	GetScheduleByID(ctx context.Context, id string) (*Schedule, error)
	ListSchedules(ctx context.Context) ([]Schedule, error)
	UpdateSchedule(ctx context.Context, id string, cronExpr *string, enabled *bool) (*Schedule, error)
	DeleteSchedule(ctx context.Context, id string) error
	RunNow(ctx context.Context, id string) (int, error)
	InitializeScheduler(ctx context.Context) error
	StopScheduler() error
}

type ScheduleServiceImpl struct {
	Repo         ScheduleRepository
	Debts        debt.DebtService
	AuditService audit.AuditService
	Events       EventPublisher
	Logger       *zap.Logger

	scheduler  *cron.Cron
	jobEntries map[string]cron.EntryID
	mu         sync.Mutex
}

func NewScheduleService(
	repo ScheduleRepository,
	debts debt.DebtService,
	auditService audit.AuditService,
	events EventPublisher,
	logger *zap.Logger,
) ScheduleService {
	return &ScheduleServiceImpl{
		Repo:         repo,
		Debts:        debts,
		AuditService: auditService,
		Events:       events,
		Logger:       logger,
		jobEntries:   make(map[string]cron.EntryID),
	}
}

func (s *ScheduleServiceImpl) CreateSchedule(ctx context.Context, schedule *Schedule) (*Schedule, error) {
	if schedule.Name == "" {
		return nil, fmt.Errorf("ad is required")
	}
	if schedule.TariffID.IsZero() {
		return nil, fmt.Errorf("tarife_id is required")
	}

	parsed, err := cron.ParseStandard(schedule.Cron)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCron, err)
	}

	now := time.Now()
	schedule.ID = primitive.NewObjectID()
	schedule.Enabled = true
	next := parsed.Next(now)
	schedule.NextRun = &next
	schedule.CreatedAt = now
	schedule.UpdatedAt = now

	if err := s.Repo.Create(ctx, schedule); err != nil {
		return nil, err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionSchedule, "zamanlamalar", schedule.ID.Hex(), map[string]common_models.Change{
		"ad":   {New: schedule.Name},
		"cron": {New: schedule.Cron},
	})

	s.registerJob(schedule)

	return schedule, nil
}

func (s *ScheduleServiceImpl) GetScheduleByID(ctx context.Context, id string) (*Schedule, error) {
	schedule, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrScheduleNotFound
	}
	return schedule, nil
}

func (s *ScheduleServiceImpl) ListSchedules(ctx context.Context) ([]Schedule, error) {
	return s.Repo.List(ctx)
}

func (s *ScheduleServiceImpl) UpdateSchedule(ctx context.Context, id string, cronExpr *string, enabled *bool) (*Schedule, error) {
	existing, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrScheduleNotFound
	}

	fields := bson.M{}
	changes := map[string]common_models.Change{}
	if cronExpr != nil {
		parsed, err := cron.ParseStandard(*cronExpr)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCron, err)
		}
		next := parsed.Next(time.Now())
		fields["cron"] = *cronExpr
		fields["sonrakiCalisma"] = next
		changes["cron"] = common_models.Change{Old: existing.Cron, New: *cronExpr}
	}
	if enabled != nil {
		fields["aktif"] = *enabled
		changes["aktif"] = common_models.Change{Old: existing.Enabled, New: *enabled}
	}
	if len(fields) == 0 {
		return existing, nil
	}

	if err := s.Repo.Update(ctx, id, fields); err != nil {
		return nil, err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionSchedule, "zamanlamalar", id, changes)

	updated, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.unregisterJob(id)
	if updated.Enabled {
		s.registerJob(updated)
	}

	return updated, nil
}

func (s *ScheduleServiceImpl) DeleteSchedule(ctx context.Context, id string) error {
	schedule, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return ErrScheduleNotFound
	}

	s.unregisterJob(id)

	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionDelete, "zamanlamalar", id, map[string]common_models.Change{
		"ad": {Old: schedule.Name},
	})
	return nil
}

// RunNow issues the schedule's tariff for the current period without
// waiting for the next cron fire.
func (s *ScheduleServiceImpl) RunNow(ctx context.Context, id string) (int, error) {
	schedule, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return 0, ErrScheduleNotFound
	}
	return s.runSchedule(ctx, schedule)
}

func (s *ScheduleServiceImpl) runSchedule(ctx context.Context, schedule *Schedule) (int, error) {
	now := time.Now()
	issued, err := s.Debts.IssueForPeriod(ctx, schedule.TariffID.Hex(), now.Year(), int(now.Month()))
	if err != nil {
		s.Logger.Error("scheduled issuing failed",
			zap.String("schedule_id", schedule.ID.Hex()),
			zap.Error(err))
		return 0, err
	}

	_ = s.Repo.Update(ctx, schedule.ID.Hex(), bson.M{"sonCalisma": now})

	s.Events.Publish("borc_olusturuldu", map[string]interface{}{
		"zamanlama_id": schedule.ID.Hex(),
		"tarife_id":    schedule.TariffID.Hex(),
		"adet":         issued,
	})

	s.Logger.Info("scheduled issuing completed",
		zap.String("schedule_id", schedule.ID.Hex()),
		zap.Int("issued", issued))

	return issued, nil
}

func (s *ScheduleServiceImpl) InitializeScheduler(ctx context.Context) error {
	s.mu.Lock()
	s.scheduler = cron.New()
	s.mu.Unlock()

	schedules, err := s.Repo.FindEnabled(ctx)
	if err != nil {
		return fmt.Errorf("failed to load enabled schedules: %w", err)
	}

	for i := range schedules {
		s.registerJob(&schedules[i])
	}

	s.scheduler.Start()
	s.Logger.Info("scheduler started", zap.Int("schedules", len(schedules)))
	return nil
}

func (s *ScheduleServiceImpl) StopScheduler() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scheduler != nil {
		ctx := s.scheduler.Stop()
		<-ctx.Done()
	}
	return nil
}

func (s *ScheduleServiceImpl) registerJob(schedule *Schedule) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scheduler == nil {
		return
	}

	scheduleID := schedule.ID.Hex()
	entryID, err := s.scheduler.AddFunc(schedule.Cron, func() {
		ctx := context.Background()
		// re-read so a disable between fires is honored
		latest, err := s.Repo.FindByID(ctx, scheduleID)
		if err != nil || !latest.Enabled {
			return
		}
		_, _ = s.runSchedule(ctx, latest)
	})
	if err != nil {
		s.Logger.Error("failed to register schedule",
			zap.String("schedule_id", scheduleID),
			zap.Error(err))
		return
	}
	s.jobEntries[scheduleID] = entryID
}

func (s *ScheduleServiceImpl) unregisterJob(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entryID, ok := s.jobEntries[id]; ok && s.scheduler != nil {
		s.scheduler.Remove(entryID)
		delete(s.jobEntries, id)
	}
}
