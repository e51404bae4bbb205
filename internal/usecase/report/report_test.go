package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ldagroup/timetracking/internal/domain/attendance"
	domain "github.com/ldagroup/timetracking/internal/domain/report"
	"github.com/ldagroup/timetracking/internal/domain/timeentry"
	"github.com/ldagroup/timetracking/internal/httperr"
	"github.com/ldagroup/timetracking/internal/models"
	"github.com/ldagroup/timetracking/internal/timezone"
)

type fakeRepo struct {
	workers   []models.Worker
	jobs      []models.Job
	entries   []models.TimeEntry
	materials []models.Material

	sinceEntries   time.Time
	sinceMaterials time.Time
	lastFilter     domain.MaterialFilter
}

func (f *fakeRepo) ListEligibleWorkers(context.Context) ([]models.Worker, error) {
	out := []models.Worker{}
	for _, w := range f.workers {
		if w.Active && !w.Archived && w.Role != models.RoleAdmin {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListWorkerEntries(_ context.Context, workerID string, from, to time.Time) ([]models.TimeEntry, error) {
	out := []models.TimeEntry{}
	for _, e := range f.entries {
		if e.WorkerID == workerID && !e.ClockIn.Before(from) && e.ClockIn.Before(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeRepo) CountActiveWorkers(context.Context) (int64, error) {
	var n int64
	for _, w := range f.workers {
		if w.Active && !w.Archived {
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) CountOpenJobs(context.Context) (int64, error) {
	var n int64
	for _, j := range f.jobs {
		if j.Status != models.JobStatusCancelled && !j.Archived {
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) CountActiveJobs(context.Context) (int64, error) {
	var n int64
	for _, j := range f.jobs {
		if j.Status == models.JobStatusActive && !j.Archived {
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) ListCompletedEntriesSince(_ context.Context, since time.Time) ([]models.TimeEntry, error) {
	f.sinceEntries = since
	out := []models.TimeEntry{}
	for _, e := range f.entries {
		if !e.ClockIn.Before(since) && e.DurationMinutes != nil {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListMaterialsPurchasedSince(_ context.Context, since time.Time) ([]models.Material, error) {
	f.sinceMaterials = since
	out := []models.Material{}
	for _, m := range f.materials {
		if !m.PurchaseDate.Before(since) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetJob(_ context.Context, id string) (*models.Job, error) {
	for _, j := range f.jobs {
		if j.ID == id {
			return &j, nil
		}
	}
	return nil, httperr.ErrNotFound("job_not_found")
}

func (f *fakeRepo) ListJobEntries(_ context.Context, jobID string) ([]models.TimeEntry, error) {
	out := []models.TimeEntry{}
	for _, e := range f.entries {
		if e.JobID == jobID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListJobMaterials(_ context.Context, jobID string) ([]models.Material, error) {
	out := []models.Material{}
	for _, m := range f.materials {
		if m.JobID == jobID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListWorkersByIDs(_ context.Context, ids []string) ([]models.Worker, error) {
	out := []models.Worker{}
	for _, w := range f.workers {
		for _, id := range ids {
			if w.ID == id {
				out = append(out, w)
			}
		}
	}
	return out, nil
}

func (f *fakeRepo) ListJobsByIDs(_ context.Context, ids []string) ([]models.Job, error) {
	out := []models.Job{}
	for _, j := range f.jobs {
		for _, id := range ids {
			if j.ID == id {
				out = append(out, j)
			}
		}
	}
	return out, nil
}

func (f *fakeRepo) ListEntries(_ context.Context, flt timeentry.Filter) ([]models.TimeEntry, error) {
	out := []models.TimeEntry{}
	for _, e := range f.entries {
		if flt.JobID != "" && e.JobID != flt.JobID {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeRepo) ListMaterials(_ context.Context, flt domain.MaterialFilter) ([]models.Material, error) {
	f.lastFilter = flt
	out := []models.Material{}
	for _, m := range f.materials {
		if !m.Archived {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAllJobs(context.Context) ([]models.Job, error) {
	return f.jobs, nil
}

func (f *fakeRepo) WorkerHasEntriesOnJob(_ context.Context, workerID, jobID string) (bool, error) {
	for _, e := range f.entries {
		if e.WorkerID == workerID && e.JobID == jobID {
			return true, nil
		}
	}
	return false, nil
}

var (
	london = timezone.NewZone(timezone.DefaultTimezone)
	// Wednesday 8 May 2024, 18:00 BST
	now = time.Date(2024, 5, 8, 17, 0, 0, 0, time.UTC)
)

func ptr[T any](v T) *T { return &v }

func seed() *fakeRepo {
	in := time.Date(2024, 5, 8, 7, 0, 0, 0, time.UTC) // 08:00 BST
	out := in.Add(8 * time.Hour)
	old := time.Date(2024, 4, 20, 7, 0, 0, 0, time.UTC)

	return &fakeRepo{
		workers: []models.Worker{
			{ID: "w1", Name: "Sam", HourlyRate: 20, Active: true, Role: models.RoleWorker},
			{ID: "boss", Name: "Boss", Active: true, Role: models.RoleAdmin},
		},
		jobs: []models.Job{
			{ID: "j1", Name: "Roof", Client: "Acme", QuotedCost: 1000, Status: models.JobStatusActive},
			{ID: "j2", Name: "Old", Status: models.JobStatusCompleted},
			{ID: "j3", Name: "Dropped", Status: models.JobStatusCancelled},
		},
		entries: []models.TimeEntry{
			{ID: "e1", WorkerID: "w1", JobID: "j1", ClockIn: in, ClockOut: &out, DurationMinutes: ptr(480)},
			{ID: "e2", WorkerID: "w1", JobID: "j1", ClockIn: old, DurationMinutes: ptr(60)},
		},
		materials: []models.Material{
			{ID: "m1", JobID: "j1", Name: "Tiles", Cost: 2.5, Quantity: 40, PurchaseDate: time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)},
			{ID: "m2", JobID: "j2", Name: "Felt", Cost: 30, Quantity: 2, PurchaseDate: time.Date(2024, 4, 29, 9, 0, 0, 0, time.UTC)},
		},
	}
}

func TestDashboard(t *testing.T) {
	repo := seed()
	uc := NewDashboard(repo, attendance.NewEngine(repo, london), london, timezone.FixedClock{T: now})

	stats, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 2, stats.TotalWorkers)
	assert.EqualValues(t, 2, stats.TotalJobs)
	assert.EqualValues(t, 1, stats.ActiveJobs)
	assert.Equal(t, 8.0, stats.TotalHoursThisWeek)
	assert.Equal(t, 100.0, stats.TotalMaterialsCostThisMonth)

	assert.Equal(t, now.Add(-7*24*time.Hour), repo.sinceEntries)
	// month start is local midnight, 23:00 UTC on 30 April during BST
	assert.Equal(t, time.Date(2024, 4, 30, 23, 0, 0, 0, time.UTC), repo.sinceMaterials)

	for _, a := range stats.AttendanceAlerts {
		assert.Equal(t, "w1", a.WorkerID)
	}
	assert.NotEmpty(t, stats.AttendanceAlerts)
}

func TestJobCostReport(t *testing.T) {
	uc := NewJobCostReport(seed())

	r, err := uc.Execute(context.Background(), "j1")
	require.NoError(t, err)
	assert.Equal(t, 9.0, r.TotalHours)
	assert.Equal(t, 180.0, r.LaborCost)
	assert.Equal(t, 100.0, r.MaterialsCost)
	assert.Equal(t, 280.0, r.TotalCost)
	assert.Equal(t, 720.0, r.CostVariance)
	assert.Equal(t, "Sam", r.TimeEntries[0].WorkerName)

	_, err = uc.Execute(context.Background(), "missing")
	assert.True(t, httperr.IsBusiness(err, "job_not_found"))
}

func TestMaterialsReport(t *testing.T) {
	repo := seed()
	uc := NewMaterialsReport(repo)
	ctx := context.Background()

	rows, err := uc.Execute(ctx, MaterialsQuery{})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, "m1", rows[0].ID)

	rows, err = uc.Execute(ctx, MaterialsQuery{WorkerID: "w1"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Roof", rows[0].JobName)

	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	_, err = uc.Execute(ctx, MaterialsQuery{From: &from})
	require.NoError(t, err)
	assert.Nil(t, repo.lastFilter.From, "a single bound is ignored")

	to := from.AddDate(0, 0, -1)
	_, err = uc.Execute(ctx, MaterialsQuery{From: &from, To: &to})
	assert.True(t, httperr.IsBusiness(err, "invalid_interval"))
}

func TestTimeEntriesReport(t *testing.T) {
	rows, err := NewTimeEntriesReport(seed()).Execute(context.Background(), timeentry.Filter{JobID: "j1"})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Roof", rows[0].JobName)
	assert.Equal(t, 160.0, rows[0].LaborCost)
}

func TestAttendanceAlerts(t *testing.T) {
	repo := seed()
	alerts, at, err := NewAttendanceAlerts(attendance.NewEngine(repo, london), timezone.FixedClock{T: now}).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, now, at)
	assert.NotEmpty(t, alerts)
}
