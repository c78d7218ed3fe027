package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	common_models "go-dernek/internal/common/models"
	"go-dernek/internal/features/debt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// in-memory schedule store
type fakeScheduleRepo struct {
	schedules map[string]*Schedule
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{schedules: make(map[string]*Schedule)}
}

func (f *fakeScheduleRepo) Create(_ context.Context, s *Schedule) error {
	cp := *s
	f.schedules[s.ID.Hex()] = &cp
	return nil
}

func (f *fakeScheduleRepo) FindByID(_ context.Context, id string) (*Schedule, error) {
	s, ok := f.schedules[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *s
	return &cp, nil
}

func (f *fakeScheduleRepo) List(_ context.Context) ([]Schedule, error) {
	var out []Schedule
	for _, s := range f.schedules {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeScheduleRepo) FindEnabled(_ context.Context) ([]Schedule, error) {
	var out []Schedule
	for _, s := range f.schedules {
		if s.Enabled {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) Update(_ context.Context, id string, fields bson.M) error {
	s, ok := f.schedules[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	if v, ok := fields["cron"]; ok {
		s.Cron = v.(string)
	}
	if v, ok := fields["aktif"]; ok {
		s.Enabled = v.(bool)
	}
	if v, ok := fields["sonCalisma"]; ok {
		t := v.(time.Time)
		s.LastRun = &t
	}
	if v, ok := fields["sonrakiCalisma"]; ok {
		t := v.(time.Time)
		s.NextRun = &t
	}
	return nil
}

func (f *fakeScheduleRepo) Delete(_ context.Context, id string) error {
	delete(f.schedules, id)
	return nil
}

// records issuing calls instead of touching debts
type fakeIssuer struct {
	tariffID string
	year     int
	month    int
	issued   int
}

func (f *fakeIssuer) IssueForPeriod(_ context.Context, tariffID string, year, month int) (int, error) {
	f.tariffID = tariffID
	f.year = year
	f.month = month
	return f.issued, nil
}

func (f *fakeIssuer) CreateDebt(context.Context, *debt.Debt) (*debt.Debt, error) { return nil, nil }
func (f *fakeIssuer) GetDebtByID(context.Context, string) (*debt.Debt, error)    { return nil, nil }
func (f *fakeIssuer) ListDebts(context.Context, map[string]interface{}, int64, int64) ([]debt.Debt, int64, error) {
	return nil, 0, nil
}
func (f *fakeIssuer) UpdateDebt(context.Context, string, *float64, *string) (*debt.Debt, error) {
	return nil, nil
}
func (f *fakeIssuer) DeleteDebt(context.Context, string) error               { return nil }
func (f *fakeIssuer) Recompute(context.Context, string) (*debt.Debt, error) { return nil, nil }

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

type scheduleFixture struct {
	repo    *fakeScheduleRepo
	issuer  *fakeIssuer
	events  *fakeEvents
	service ScheduleService
}

func newScheduleFixture() *scheduleFixture {
	repo := newFakeScheduleRepo()
	issuer := &fakeIssuer{}
	events := &fakeEvents{}
	svc := NewScheduleService(repo, issuer, fakeAudit{}, events, zap.NewNop())
	return &scheduleFixture{repo: repo, issuer: issuer, events: events, service: svc}
}

func TestCreateScheduleValidatesCron(t *testing.T) {
	fix := newScheduleFixture()

	tests := []struct {
		name    string
		cron    string
		wantErr bool
	}{
		{"monthly first day", "0 0 1 * *", false},
		{"every five minutes", "*/5 * * * *", false},
		{"descriptor", "@monthly", false},
		{"too few fields", "0 0 1", true},
		{"garbage", "not a cron", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := fix.service.CreateSchedule(context.Background(), &Schedule{
				Name:     "Aidat " + tc.name,
				TariffID: primitive.NewObjectID(),
				Cron:     tc.cron,
			})
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidCron) {
					t.Errorf("err = %v, want ErrInvalidCron", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestCreateScheduleComputesNextRun(t *testing.T) {
	fix := newScheduleFixture()

	created, err := fix.service.CreateSchedule(context.Background(), &Schedule{
		Name:     "Aylik Aidat",
		TariffID: primitive.NewObjectID(),
		Cron:     "0 0 1 * *",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.NextRun == nil {
		t.Fatal("next run not computed")
	}
	if !created.NextRun.After(time.Now()) {
		t.Errorf("next run %v is not in the future", created.NextRun)
	}
	if !created.Enabled {
		t.Error("new schedule should start enabled")
	}
}

func TestRunNowIssuesCurrentPeriod(t *testing.T) {
	fix := newScheduleFixture()
	fix.issuer.issued = 7

	tariffID := primitive.NewObjectID()
	created, err := fix.service.CreateSchedule(context.Background(), &Schedule{
		Name:     "Aylik Aidat",
		TariffID: tariffID,
		Cron:     "0 0 1 * *",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	issued, err := fix.service.RunNow(context.Background(), created.ID.Hex())
	if err != nil {
		t.Fatalf("run now: %v", err)
	}
	if issued != 7 {
		t.Errorf("issued = %d, want 7", issued)
	}
	if fix.issuer.tariffID != tariffID.Hex() {
		t.Errorf("issued tariff = %s, want %s", fix.issuer.tariffID, tariffID.Hex())
	}

	now := time.Now()
	if fix.issuer.year != now.Year() || fix.issuer.month != int(now.Month()) {
		t.Errorf("issued period = %d-%d, want %d-%d", fix.issuer.year, fix.issuer.month, now.Year(), now.Month())
	}

	stored, err := fix.service.GetScheduleByID(context.Background(), created.ID.Hex())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.LastRun == nil {
		t.Error("last run not recorded")
	}

	if len(fix.events.published) == 0 || fix.events.published[len(fix.events.published)-1] != "borc_olusturuldu" {
		t.Errorf("published events = %v, want borc_olusturuldu", fix.events.published)
	}
}

func TestUpdateScheduleRejectsBrokenCron(t *testing.T) {
	fix := newScheduleFixture()

	created, err := fix.service.CreateSchedule(context.Background(), &Schedule{
		Name:     "Aylik Aidat",
		TariffID: primitive.NewObjectID(),
		Cron:     "0 0 1 * *",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	bad := "every tuesday"
	if _, err := fix.service.UpdateSchedule(context.Background(), created.ID.Hex(), &bad, nil); !errors.Is(err, ErrInvalidCron) {
		t.Errorf("err = %v, want ErrInvalidCron", err)
	}

	disabled := false
	updated, err := fix.service.UpdateSchedule(context.Background(), created.ID.Hex(), nil, &disabled)
	if err != nil {
		t.Fatalf("disable: %v", err)
	}
	if updated.Enabled {
		t.Error("schedule still enabled after disable")
	}
}

func TestRunNowUnknownSchedule(t *testing.T) {
	fix := newScheduleFixture()

	_, err := fix.service.RunNow(context.Background(), primitive.NewObjectID().Hex())
	if !errors.Is(err, ErrScheduleNotFound) {
		t.Errorf("err = %v, want ErrScheduleNotFound", err)
	}
}
