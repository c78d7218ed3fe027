package dashboard

import (
	"context"
	"time"

	"go-dernek/pkg/utils"
)

type DashboardService interface {
	Summary(ctx context.Context) (*Summary, error)
	CollectedByMonth(ctx context.Context, months int) ([]MonthlyCollection, error)
}

type DashboardServiceImpl struct {
	Repo DashboardRepository
}

func NewDashboardService(repo DashboardRepository) DashboardService {
	return &DashboardServiceImpl{Repo: repo}
}

func (s *DashboardServiceImpl) Summary(ctx context.Context) (*Summary, error) {
	active, passive, err := s.Repo.MemberCounts(ctx)
	if err != nil {
		return nil, err
	}

	subscribers, err := s.Repo.SubscriberCount(ctx)
	if err != nil {
		return nil, err
	}

	openDebts, outstanding, err := s.Repo.OpenDebtStats(ctx)
	if err != nil {
		return nil, err
	}

	collected, err := s.Repo.CollectedTotal(ctx)
	if err != nil {
		return nil, err
	}

	return &Summary{
		ActiveMembers:    active,
		PassiveMembers:   passive,
		Subscribers:      subscribers,
		OpenDebts:        openDebts,
		OutstandingTotal: utils.Round2(outstanding),
		CollectedTotal:   utils.Round2(collected),
	}, nil
}

func (s *DashboardServiceImpl) CollectedByMonth(ctx context.Context, months int) ([]MonthlyCollection, error) {
	if months < 1 || months > 36 {
		months = 12
	}
	since := time.Now().AddDate(0, -months, 0)
	return s.Repo.CollectedByMonth(ctx, since)
}
