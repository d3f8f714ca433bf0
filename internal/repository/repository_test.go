package repository_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"corrlog/config"
	"corrlog/internal/model"
	"corrlog/internal/repository"
	"corrlog/pkg/database"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

func setupRepo(t *testing.T) *repository.Repository {
	t.Helper()
	repo, _ := setupRepoDB(t)
	return repo
}

// setupRepoDB 同时返回底层连接，便于写入应用层无法产生的旧数据
func setupRepoDB(t *testing.T) (*repository.Repository, *gorm.DB) {
	t.Helper()
	cfg := &config.DatabaseConfig{
		Path:          filepath.Join(t.TempDir(), "ledger.db"),
		BusyTimeoutMS: 1000,
		MaxOpenConns:  1,
	}
	db, err := database.NewDB(cfg, "warn", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, database.EnsureSchema(context.Background(), db, zap.NewNop()))
	return repository.NewRepository(db), db
}

func mustDate(t *testing.T, s string) model.Date {
	t.Helper()
	d, err := model.ParseDate(s)
	require.NoError(t, err)
	return d
}

func addOfficer(t *testing.T, repo *repository.Repository, last string) *model.DutyOfficer {
	t.Helper()
	o := &model.DutyOfficer{Rank: "ст. л-т", FirstName: "Иван", LastName: last, Patronymic: "Сергеевич"}
	require.NoError(t, repo.Officer.Create(context.Background(), o))
	return o
}

func addRecord(t *testing.T, repo *repository.Repository, date, typ, urgency string, in, out int, officerID int64) *model.Correspondence {
	t.Helper()
	rec := &model.Correspondence{
		Date:        mustDate(t, date),
		CorrType:    typ,
		Urgency:     urgency,
		Incoming:    in,
		Outgoing:    out,
		Period:      model.Periods[0],
		DutyOfficer: officerID,
	}
	require.NoError(t, repo.Correspondence.Create(context.Background(), rec))
	return rec
}

// ═══════════════════════════════════════════════════════════
// Officer
// ═══════════════════════════════════════════════════════════

func TestOfficerRepo_CreateAndList(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	first := addOfficer(t, repo, "Петров")
	second := addOfficer(t, repo, "Сидоров")
	assert.NotZero(t, first.ID)
	assert.Greater(t, second.ID, first.ID)

	officers, err := repo.Officer.List(ctx)
	require.NoError(t, err)
	require.Len(t, officers, 2)
	assert.Equal(t, first.ID, officers[0].ID)
	assert.Equal(t, "Сергеевич", officers[0].Patronymic)
	assert.Equal(t, "Сидоров", officers[1].LastName)
}

func TestOfficerRepo_ListEmpty(t *testing.T) {
	repo := setupRepo(t)

	officers, err := repo.Officer.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, officers)
}

func TestOfficerRepo_Delete(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	o := addOfficer(t, repo, "Петров")

	affected, err := repo.Officer.Delete(ctx, o.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	// 不存在的 id：不报错，影响 0 行
	affected, err = repo.Officer.Delete(ctx, o.ID+100)
	require.NoError(t, err)
	assert.EqualValues(t, 0, affected)

	officers, err := repo.Officer.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, officers)
}

func TestOfficerRepo_CountRecords(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	o := addOfficer(t, repo, "Петров")
	other := addOfficer(t, repo, "Сидоров")

	addRecord(t, repo, "2024-03-01", model.CorrTypes[0], model.UrgencyLevels[0], 1, 2, o.ID)
	addRecord(t, repo, "2024-03-02", model.CorrTypes[1], model.UrgencyLevels[1], 3, 4, o.ID)

	n, err := repo.Officer.CountRecords(ctx, o.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = repo.Officer.CountRecords(ctx, other.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

// ═══════════════════════════════════════════════════════════
// Correspondence
// ═══════════════════════════════════════════════════════════

func TestCorrespondenceRepo_RoundTrip(t *testing.T) {
	repo := setupRepo(t)
	o := addOfficer(t, repo, "Петров")
	rec := addRecord(t, repo, "2024-03-05", model.CorrTypes[2], model.UrgencyLevels[12], 7, 0, o.ID)
	assert.NotZero(t, rec.ID)

	day := mustDate(t, "2024-03-05")
	rows, err := repo.Correspondence.SearchByDateRange(context.Background(), day, day)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	got := rows[0]
	assert.Equal(t, "2024-03-05", got.Date.String())
	assert.Equal(t, model.CorrTypes[2], got.CorrType)
	assert.Equal(t, model.UrgencyLevels[12], got.Urgency)
	assert.Equal(t, 7, got.Incoming)
	assert.Equal(t, 0, got.Outgoing)
	assert.Equal(t, model.Periods[0], got.Period)
	assert.Equal(t, "ст. л-т", got.Rank)
	assert.Equal(t, "Иван", got.FirstName)
	assert.Equal(t, "Петров", got.LastName)
	assert.Equal(t, "Сергеевич", got.Patronymic)
}

func TestCorrespondenceRepo_SearchInclusiveBounds(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	o := addOfficer(t, repo, "Петров")

	addRecord(t, repo, "2024-02-29", model.CorrTypes[0], model.UrgencyLevels[0], 1, 0, o.ID)
	addRecord(t, repo, "2024-03-01", model.CorrTypes[0], model.UrgencyLevels[0], 2, 0, o.ID)
	addRecord(t, repo, "2024-03-10", model.CorrTypes[0], model.UrgencyLevels[0], 3, 0, o.ID)
	addRecord(t, repo, "2024-03-11", model.CorrTypes[0], model.UrgencyLevels[0], 4, 0, o.ID)

	rows, err := repo.Correspondence.SearchByDateRange(ctx, mustDate(t, "2024-03-01"), mustDate(t, "2024-03-10"))
	require.NoError(t, err)

	var incoming []int
	for _, r := range rows {
		incoming = append(incoming, r.Incoming)
	}
	assert.ElementsMatch(t, []int{2, 3}, incoming)
}

func TestCorrespondenceRepo_SearchEmpty(t *testing.T) {
	repo := setupRepo(t)
	o := addOfficer(t, repo, "Петров")
	addRecord(t, repo, "2024-03-01", model.CorrTypes[0], model.UrgencyLevels[0], 1, 0, o.ID)

	rows, err := repo.Correspondence.SearchByDateRange(context.Background(), mustDate(t, "2025-01-01"), mustDate(t, "2025-01-31"))
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)

	totals, err := repo.Correspondence.AggregateByTypeAndUrgency(context.Background(), mustDate(t, "2025-01-01"), mustDate(t, "2025-01-31"))
	require.NoError(t, err)
	assert.Empty(t, totals)
}

func TestCorrespondenceRepo_AggregateMatchesSearch(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	a := addOfficer(t, repo, "Петров")
	b := addOfficer(t, repo, "Сидоров")

	phone, telegraph := model.CorrTypes[0], model.CorrTypes[1]
	routine, secret := model.UrgencyLevels[0], model.UrgencyLevels[2]

	addRecord(t, repo, "2024-03-01", phone, routine, 5, 1, a.ID)
	addRecord(t, repo, "2024-03-02", phone, routine, 2, 3, b.ID)
	addRecord(t, repo, "2024-03-02", phone, secret, 1, 1, a.ID)
	addRecord(t, repo, "2024-03-03", telegraph, routine, 0, 9, b.ID)
	addRecord(t, repo, "2024-04-01", telegraph, secret, 100, 100, a.ID) // 区间外

	start, end := mustDate(t, "2024-03-01"), mustDate(t, "2024-03-31")

	rows, err := repo.Correspondence.SearchByDateRange(ctx, start, end)
	require.NoError(t, err)
	totals, err := repo.Correspondence.AggregateByTypeAndUrgency(ctx, start, end)
	require.NoError(t, err)

	type key struct{ typ, urgency string }
	want := map[key][2]int64{}
	for _, r := range rows {
		k := key{r.CorrType, r.Urgency}
		sums := want[k]
		sums[0] += int64(r.Incoming)
		sums[1] += int64(r.Outgoing)
		want[k] = sums
	}

	got := map[key][2]int64{}
	for _, tot := range totals {
		got[key{tot.CorrType, tot.Urgency}] = [2]int64{tot.IncomingSum, tot.OutgoingSum}
	}

	assert.Equal(t, want, got)
	assert.Len(t, totals, 3, "区间外的 (telegraph, secret) 分组不应出现")
	assert.Equal(t, [2]int64{7, 4}, got[key{phone, routine}])
}

func TestCorrespondenceRepo_OrphanedRecordsExcluded(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	kept := addOfficer(t, repo, "Петров")
	gone := addOfficer(t, repo, "Сидоров")

	addRecord(t, repo, "2024-03-01", model.CorrTypes[0], model.UrgencyLevels[0], 1, 1, kept.ID)
	addRecord(t, repo, "2024-03-01", model.CorrTypes[0], model.UrgencyLevels[0], 10, 10, gone.ID)

	_, err := repo.Officer.Delete(ctx, gone.ID)
	require.NoError(t, err)

	day := mustDate(t, "2024-03-01")
	rows, err := repo.Correspondence.SearchByDateRange(ctx, day, day)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Петров", rows[0].LastName)

	totals, err := repo.Correspondence.AggregateByTypeAndUrgency(ctx, day, day)
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.EqualValues(t, 1, totals[0].IncomingSum)
}

func TestCorrespondenceRepo_LegacyCountsReadAsZero(t *testing.T) {
	repo, db := setupRepoDB(t)
	ctx := context.Background()
	o := addOfficer(t, repo, "Петров")

	// 旧版程序写入的数据：计数为空或为文本
	require.NoError(t, db.Exec(
		"INSERT INTO correspondence (date, corr_type, urgency, incoming, outgoing, period, duty_dus_id) VALUES "+
			"('2024-03-10', ?, ?, NULL, 'abc', ?, ?), "+
			"('2024-03-11', ?, ?, '4', NULL, ?, ?)",
		model.CorrTypes[0], model.UrgencyLevels[0], model.Periods[0], o.ID,
		model.CorrTypes[0], model.UrgencyLevels[0], model.Periods[0], o.ID,
	).Error)
	addRecord(t, repo, "2024-03-12", model.CorrTypes[0], model.UrgencyLevels[0], 3, 2, o.ID)

	start, end := mustDate(t, "2024-03-01"), mustDate(t, "2024-03-31")

	rows, err := repo.Correspondence.SearchByDateRange(ctx, start, end)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	incoming := map[string]int{}
	outgoing := map[string]int{}
	for _, r := range rows {
		incoming[r.Date.String()] = r.Incoming
		outgoing[r.Date.String()] = r.Outgoing
	}
	assert.Equal(t, map[string]int{"2024-03-10": 0, "2024-03-11": 4, "2024-03-12": 3}, incoming)
	assert.Equal(t, map[string]int{"2024-03-10": 0, "2024-03-11": 0, "2024-03-12": 2}, outgoing)

	totals, err := repo.Correspondence.AggregateByTypeAndUrgency(ctx, start, end)
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.EqualValues(t, 7, totals[0].IncomingSum)
	assert.EqualValues(t, 2, totals[0].OutgoingSum)
}
