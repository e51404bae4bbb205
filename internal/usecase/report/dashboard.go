package report

import (
	"context"
	"math"
	"time"

	"github.com/ldagroup/timetracking/internal/domain/attendance"
	"github.com/ldagroup/timetracking/internal/domain/costing"
	domain "github.com/ldagroup/timetracking/internal/domain/report"
	"github.com/ldagroup/timetracking/internal/timezone"
)

const dashboardWindow = 7 * 24 * time.Hour

type Dashboard struct {
	repo   domain.Repository
	engine *attendance.Engine
	zone   *timezone.Zone
	clock  timezone.Clock
}

func NewDashboard(
	repo domain.Repository,
	engine *attendance.Engine,
	zone *timezone.Zone,
	clock timezone.Clock,
) *Dashboard {
	return &Dashboard{
		repo:   repo,
		engine: engine,
		zone:   zone,
		clock:  clock,
	}
}

func (uc *Dashboard) Execute(ctx context.Context) (*domain.DashboardStats, error) {
	now := uc.clock.Now()

	workers, err := uc.repo.CountActiveWorkers(ctx)
	if err != nil {
		return nil, err
	}
	jobs, err := uc.repo.CountOpenJobs(ctx)
	if err != nil {
		return nil, err
	}
	active, err := uc.repo.CountActiveJobs(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := uc.repo.ListCompletedEntriesSince(ctx, now.Add(-dashboardWindow))
	if err != nil {
		return nil, err
	}

	materials, err := uc.repo.ListMaterialsPurchasedSince(ctx, uc.zone.StartOfMonth(now).UTC())
	if err != nil {
		return nil, err
	}

	alerts, err := uc.engine.Scan(ctx, now)
	if err != nil {
		return nil, err
	}

	return &domain.DashboardStats{
		TotalWorkers:                workers,
		TotalJobs:                   jobs,
		ActiveJobs:                  active,
		TotalHoursThisWeek:          costing.TotalHours(entries),
		TotalMaterialsCostThisMonth: math.Round(costing.MaterialsCost(materials)*100) / 100,
		AttendanceAlerts:            alerts,
	}, nil
}

// ======================================================
// ATTENDANCE
// ======================================================

type AttendanceAlerts struct {
	engine *attendance.Engine
	clock  timezone.Clock
}

func NewAttendanceAlerts(engine *attendance.Engine, clock timezone.Clock) *AttendanceAlerts {
	return &AttendanceAlerts{engine: engine, clock: clock}
}

// Execute also returns the evaluation instant used for the scan.
func (uc *AttendanceAlerts) Execute(ctx context.Context) ([]attendance.Alert, time.Time, error) {
	now := uc.clock.Now()
	alerts, err := uc.engine.Scan(ctx, now)
	return alerts, now, err
}
