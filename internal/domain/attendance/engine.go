package attendance

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/ldagroup/timetracking/internal/models"
	"github.com/ldagroup/timetracking/internal/timezone"
)

const (
	DefaultWindowDays = 7

	startHour = 9
	endHour   = 17
)

// Engine scans a trailing window of days for attendance exceptions.
type Engine struct {
	repo Repository
	zone *timezone.Zone
	days int
}

func NewEngine(repo Repository, zone *timezone.Zone) *Engine {
	return &Engine{
		repo: repo,
		zone: zone,
		days: DefaultWindowDays,
	}
}

// Scan returns the alerts for every eligible worker, most recent day first.
// Only a failure to list the workers is returned; a failure while reading
// one worker's entries drops that worker and the scan carries on.
func (e *Engine) Scan(ctx context.Context, now time.Time) ([]Alert, error) {
	workers, err := e.repo.ListEligibleWorkers(ctx)
	if err != nil {
		return nil, err
	}

	eligible := make([]models.Worker, 0, len(workers))
	for _, w := range workers {
		if w.Role == models.RoleAdmin {
			continue
		}
		eligible = append(eligible, w)
	}

	alerts := []Alert{}
	for _, w := range eligible {
		workerAlerts, err := e.scanWorker(ctx, w, now)
		if err != nil {
			log.Printf("attendance: skipping worker %s: %v", w.ID, err)
			continue
		}
		alerts = append(alerts, workerAlerts...)
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Day.After(alerts[j].Day)
	})

	return alerts, nil
}

func (e *Engine) scanWorker(ctx context.Context, w models.Worker, now time.Time) ([]Alert, error) {
	ref := workerRef{id: w.ID, name: w.Name, email: w.Email}
	localNow := e.zone.ToLocal(now)
	today := e.zone.StartOfDay(now)

	var out []Alert
	for i := 0; i < e.days; i++ {
		dayStart := today.AddDate(0, 0, -i)
		dayEnd := dayStart.AddDate(0, 0, 1)
		y, m, d := dayStart.Date()
		nineAM := e.zone.LocalDate(y, m, d, startHour, 0, 0)
		fivePM := e.zone.LocalDate(y, m, d, endHour, 0, 0)
		isToday := i == 0

		if dayStart.After(localNow) {
			continue
		}
		if isToday && localNow.Before(nineAM) {
			continue
		}

		entries, err := e.repo.ListWorkerEntries(ctx, w.ID, dayStart, dayEnd)
		if err != nil {
			return nil, err
		}

		if len(entries) == 0 {
			if isWeekday(dayStart) && !isToday {
				out = append(out, noClockIn(ref, dayStart))
			}
			continue
		}

		for _, entry := range entries {
			if entry.ClockIn.After(nineAM) {
				out = append(out, lateClockIn(ref, dayStart, e.zone.ToLocal(entry.ClockIn)))
			}
			if entry.ClockOut != nil && entry.ClockOut.After(fivePM) {
				out = append(out, lateClockOut(ref, dayStart, e.zone.ToLocal(*entry.ClockOut)))
			}
		}
	}

	return out, nil
}

func isWeekday(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}
