package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ldagroup/timetracking/internal/db"
	"github.com/ldagroup/timetracking/internal/domain/report"
	"github.com/ldagroup/timetracking/internal/domain/timeentry"
	"github.com/ldagroup/timetracking/internal/httperr"
	"github.com/ldagroup/timetracking/internal/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	gdb, err := db.Open(sqlite.Open("file:" + name + "?mode=memory&cache=shared"))
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return gdb
}

func seedRefs(t *testing.T, gdb *gorm.DB) (models.Worker, models.Job) {
	t.Helper()
	w := models.Worker{Name: "Sam", Email: "sam@example.com", Role: models.RoleWorker, HourlyRate: 18, Active: true}
	j := models.Job{Name: "Roof", Client: "Acme", QuotedCost: 1000}
	require.NoError(t, gdb.Create(&w).Error)
	require.NoError(t, gdb.Create(&j).Error)
	return w, j
}

var t0 = time.Date(2024, 5, 8, 7, 0, 0, 0, time.UTC)

func TestTimeEntryOneOpenEntryPerWorker(t *testing.T) {
	gdb := testDB(t)
	w, j := seedRefs(t, gdb)
	repo := NewTimeEntryGormRepository(gdb)
	ctx := context.Background()

	first := timeentry.Open(w.ID, j.ID, t0, &models.GPSLocation{Latitude: 51.5, Longitude: -0.12}, "")
	require.NoError(t, repo.CreateOpenEntry(ctx, first))
	assert.NotEmpty(t, first.ID)

	err := repo.CreateOpenEntry(ctx, timeentry.Open(w.ID, j.ID, t0.Add(time.Minute), nil, ""))
	assert.True(t, httperr.IsBusiness(err, "already_clocked_in"), "got %v", err)

	active, err := repo.GetActiveEntry(ctx, w.ID)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, first.ID, active.ID)
	require.NotNil(t, active.GPSLocationIn)
	assert.Equal(t, 51.5, active.GPSLocationIn.Latitude)
	assert.Nil(t, active.GPSLocationOut)

	require.NoError(t, timeentry.Close(active, t0.Add(8*time.Hour), nil, "done"))
	ok, err := repo.CloseEntry(ctx, active)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.CloseEntry(ctx, active)
	require.NoError(t, err)
	assert.False(t, ok, "closing twice matches nothing")

	stored, err := repo.GetEntry(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.DurationMinutes)
	assert.Equal(t, 480, *stored.DurationMinutes)
	assert.Equal(t, "done", stored.Notes)

	none, err := repo.GetActiveEntry(ctx, w.ID)
	require.NoError(t, err)
	assert.Nil(t, none)

	require.NoError(t, repo.CreateOpenEntry(ctx, timeentry.Open(w.ID, j.ID, t0.Add(9*time.Hour), nil, "")))

	// reopening the first entry would leave two open entries
	require.NoError(t, timeentry.ApplyPatch(stored, timeentry.Patch{ClockOut: &time.Time{}}))
	err = repo.SaveEntry(ctx, stored)
	assert.True(t, httperr.IsKind(err, httperr.KindConflict), "got %v", err)
}

func TestTimeEntryQueries(t *testing.T) {
	gdb := testDB(t)
	w, j := seedRefs(t, gdb)
	repo := NewTimeEntryGormRepository(gdb)
	ctx := context.Background()

	_, err := repo.GetWorker(ctx, "missing")
	assert.True(t, httperr.IsBusiness(err, "worker_not_found"))
	_, err = repo.GetJob(ctx, "missing")
	assert.True(t, httperr.IsBusiness(err, "job_not_found"))
	_, err = repo.GetEntry(ctx, "missing")
	assert.True(t, httperr.IsBusiness(err, "time_entry_not_found"))

	for i := 0; i < 3; i++ {
		e := timeentry.Open(w.ID, j.ID, t0.AddDate(0, 0, i), nil, "")
		require.NoError(t, timeentry.Close(e, e.ClockIn.Add(time.Hour), nil, ""))
		require.NoError(t, gdb.Create(e).Error)
	}

	from := t0.AddDate(0, 0, 1)
	to := t0.AddDate(0, 0, 2)
	entries, err := repo.ListEntries(ctx, timeentry.Filter{WorkerID: w.ID, From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, entries[0].ClockIn.After(entries[1].ClockIn))

	ok, err := repo.ArchiveEntry(ctx, entries[0].ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.DeleteEntry(ctx, entries[1].ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.DeleteEntry(ctx, entries[1].ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReportRepository(t *testing.T) {
	gdb := testDB(t)
	w, j := seedRefs(t, gdb)
	repo := NewReportGormRepository(gdb)
	ctx := context.Background()

	admin := models.Worker{Name: "Boss", Role: models.RoleAdmin, Active: true}
	idle := models.Worker{Name: "Idle", Role: models.RoleWorker, Active: false}
	require.NoError(t, gdb.Create(&admin).Error)
	require.NoError(t, gdb.Create(&idle).Error)

	cancelled := models.Job{Name: "Dropped", Client: "Other", Status: models.JobStatusCancelled}
	require.NoError(t, gdb.Create(&cancelled).Error)

	e := timeentry.Open(w.ID, j.ID, t0, nil, "")
	require.NoError(t, timeentry.Close(e, t0.Add(90*time.Minute), nil, ""))
	require.NoError(t, gdb.Create(e).Error)
	require.NoError(t, gdb.Create(timeentry.Open(w.ID, j.ID, t0.Add(3*time.Hour), nil, "")).Error)

	materials := []models.Material{
		{JobID: j.ID, Name: "Tiles", Cost: 2.5, Quantity: 40, Supplier: "Jewson Ltd", PurchaseDate: t0},
		{JobID: j.ID, Name: "Old", Cost: 1, Quantity: 1, Supplier: "Jewson Ltd", PurchaseDate: t0.AddDate(0, -1, 0)},
		{JobID: cancelled.ID, Name: "Felt", Cost: 30, Quantity: 2, Supplier: "Travis", PurchaseDate: t0},
	}
	require.NoError(t, gdb.Create(&materials).Error)
	archived := models.Material{JobID: j.ID, Name: "Gone", Cost: 5, Quantity: 1, PurchaseDate: t0}
	require.NoError(t, gdb.Create(&archived).Error)
	require.NoError(t, gdb.Model(&archived).Update("archived", true).Error)

	eligible, err := repo.ListEligibleWorkers(ctx)
	require.NoError(t, err)
	require.Len(t, eligible, 1)
	assert.Equal(t, w.ID, eligible[0].ID)

	n, err := repo.CountActiveWorkers(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
	n, err = repo.CountOpenJobs(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	n, err = repo.CountActiveJobs(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	day, err := repo.ListWorkerEntries(ctx, w.ID, t0.Add(-time.Hour), t0.Add(3*time.Hour))
	require.NoError(t, err)
	assert.Len(t, day, 1, "upper bound is exclusive")

	done, err := repo.ListCompletedEntriesSince(ctx, t0.Add(-time.Hour))
	require.NoError(t, err)
	assert.Len(t, done, 1)

	month, err := repo.ListMaterialsPurchasedSince(ctx, t0.AddDate(0, 0, -7))
	require.NoError(t, err)
	assert.Len(t, month, 3, "archived purchases still count")

	jobMats, err := repo.ListJobMaterials(ctx, j.ID)
	require.NoError(t, err)
	assert.Len(t, jobMats, 3)

	supplier, err := repo.ListMaterials(ctx, report.MaterialFilter{Supplier: "jewson"})
	require.NoError(t, err)
	assert.Len(t, supplier, 2)

	from, to := t0.AddDate(0, 0, -1), t0.AddDate(0, 0, 1)
	ranged, err := repo.ListMaterials(ctx, report.MaterialFilter{From: &from, To: &to})
	require.NoError(t, err)
	assert.Len(t, ranged, 2)

	workers, err := repo.ListWorkersByIDs(ctx, []string{w.ID, "ghost"})
	require.NoError(t, err)
	assert.Len(t, workers, 1)
	empty, err := repo.ListJobsByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	has, err := repo.WorkerHasEntriesOnJob(ctx, w.ID, j.ID)
	require.NoError(t, err)
	assert.True(t, has)
	has, err = repo.WorkerHasEntriesOnJob(ctx, w.ID, cancelled.ID)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestQuoteRepository(t *testing.T) {
	gdb := testDB(t)
	repo := NewQuoteGormRepository(gdb)
	ctx := context.Background()

	q := &models.Quote{
		QuoteNumber:    "Q-20240508-AAAAAA",
		Client:         models.QuoteClient{Name: "Jo"},
		EstimatedHours: decimal.NewFromInt(10),
		HourlyRate:     decimal.NewFromInt(25),
		Materials: []models.QuoteItem{
			{ID: "i1", Description: "Cable", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(50), Total: decimal.NewFromInt(100)},
		},
		Status:      models.QuoteStatusDraft,
		TotalAmount: decimal.RequireFromString("420.00"),
		ValidUntil:  t0.AddDate(0, 0, 30),
	}
	require.NoError(t, repo.CreateQuote(ctx, q))

	dup := *q
	dup.ID = ""
	err := repo.CreateQuote(ctx, &dup)
	assert.True(t, httperr.IsBusiness(err, "quote_number_taken"), "got %v", err)

	photo := &models.QuotePhoto{QuoteID: q.ID, Filename: "a.jpg", StorageKey: "quotes/a.webp"}
	require.NoError(t, repo.AddPhoto(ctx, photo))

	got, err := repo.GetQuote(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jo", got.Client.Name)
	require.Len(t, got.Materials, 1)
	assert.True(t, decimal.NewFromInt(100).Equal(got.Materials[0].Total))
	assert.True(t, decimal.RequireFromString("420").Equal(got.TotalAmount))
	require.Len(t, got.Photos, 1)

	_, err = repo.GetPhoto(ctx, "other", photo.ID)
	assert.True(t, httperr.IsBusiness(err, "photo_not_found"))

	got.Status = models.QuoteStatusAccepted
	require.NoError(t, repo.SaveQuote(ctx, got))

	job := &models.Job{Name: "From quote", QuotedCost: 420}
	require.NoError(t, repo.ConvertQuote(ctx, got, job))
	assert.NotEmpty(t, job.ID)

	accepted, err := repo.ListQuotes(ctx, models.QuoteStatusAccepted)
	require.NoError(t, err)
	require.Len(t, accepted, 1)
	assert.Equal(t, job.ID, accepted[0].ConvertedJobID)

	ok, err := repo.DeleteQuote(ctx, q.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	_, err = repo.GetQuote(ctx, q.ID)
	assert.True(t, httperr.IsBusiness(err, "quote_not_found"))
	var photos int64
	require.NoError(t, gdb.Model(&models.QuotePhoto{}).Count(&photos).Error)
	assert.Zero(t, photos)
}

func TestFindAdminByEmail(t *testing.T) {
	gdb := testDB(t)
	repo := NewWorkerGormRepository(gdb)
	ctx := context.Background()

	admin := models.Worker{Name: "Kim", Email: "Kim@Example.com", Role: models.RoleAdmin, Active: true, PasswordHash: "x"}
	worker := models.Worker{Name: "Bob", Email: "bob@example.com", Role: models.RoleWorker, Active: true}
	require.NoError(t, gdb.Create(&admin).Error)
	require.NoError(t, gdb.Create(&worker).Error)

	got, err := repo.FindAdminByEmail(ctx, "kim@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, admin.ID, got.ID)

	none, err := repo.FindAdminByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.Nil(t, none)
}
