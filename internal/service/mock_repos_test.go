package service

import (
	"context"
	"errors"
	"io"
	"sort"

	"gorm.io/gorm"

	"corrlog/internal/model"
	"corrlog/internal/report"
	"corrlog/internal/repository"
)

var errMockStorage = errors.New("database is locked")

// ── Mock OfficerRepository ──

type mockOfficerRepo struct {
	officers map[int64]*model.DutyOfficer
	records  map[int64]int64 // officerID -> 记录数
	nextID   int64
	deleted  []int64
	failWith error
}

func newMockOfficerRepo() *mockOfficerRepo {
	return &mockOfficerRepo{
		officers: make(map[int64]*model.DutyOfficer),
		records:  make(map[int64]int64),
	}
}

func (m *mockOfficerRepo) Create(_ context.Context, officer *model.DutyOfficer) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.nextID++
	officer.ID = m.nextID
	cp := *officer
	m.officers[officer.ID] = &cp
	return nil
}

func (m *mockOfficerRepo) GetByID(_ context.Context, id int64) (*model.DutyOfficer, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	if o, ok := m.officers[id]; ok {
		return o, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOfficerRepo) List(_ context.Context) ([]model.DutyOfficer, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	result := make([]model.DutyOfficer, 0, len(m.officers))
	for _, o := range m.officers {
		result = append(result, *o)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockOfficerRepo) Delete(_ context.Context, id int64) (int64, error) {
	if m.failWith != nil {
		return 0, m.failWith
	}
	if _, ok := m.officers[id]; !ok {
		return 0, nil
	}
	delete(m.officers, id)
	m.deleted = append(m.deleted, id)
	return 1, nil
}

func (m *mockOfficerRepo) CountRecords(_ context.Context, officerID int64) (int64, error) {
	if m.failWith != nil {
		return 0, m.failWith
	}
	return m.records[officerID], nil
}

// ── Mock CorrespondenceRepository ──

type mockCorrespondenceRepo struct {
	created     []model.Correspondence
	rows        []model.SearchRow
	totals      []model.CategoryTotal
	searchCalls int
	failWith    error
}

func newMockCorrespondenceRepo() *mockCorrespondenceRepo {
	return &mockCorrespondenceRepo{}
}

func (m *mockCorrespondenceRepo) Create(_ context.Context, rec *model.Correspondence) error {
	if m.failWith != nil {
		return m.failWith
	}
	rec.ID = int64(len(m.created) + 1)
	m.created = append(m.created, *rec)
	return nil
}

func (m *mockCorrespondenceRepo) SearchByDateRange(_ context.Context, start, end model.Date) ([]model.SearchRow, error) {
	m.searchCalls++
	if m.failWith != nil {
		return nil, m.failWith
	}
	result := make([]model.SearchRow, 0)
	for _, r := range m.rows {
		if !r.Date.Before(start.Time) && !r.Date.After(end) {
			result = append(result, r)
		}
	}
	return result, nil
}

func (m *mockCorrespondenceRepo) AggregateByTypeAndUrgency(_ context.Context, _, _ model.Date) ([]model.CategoryTotal, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	result := make([]model.CategoryTotal, len(m.totals))
	copy(result, m.totals)
	return result, nil
}

// ── Mock DocumentRenderer ──

type mockRenderer struct {
	doc      *report.Document
	failWith error
}

func (m *mockRenderer) Render(w io.Writer, doc *report.Document) error {
	m.doc = doc
	if _, err := io.WriteString(w, "%PDF-1.3\n"); err != nil {
		return err
	}
	return m.failWith
}

// ── 测试辅助 ──

func newMockRepository() (*repository.Repository, *mockOfficerRepo, *mockCorrespondenceRepo) {
	officers := newMockOfficerRepo()
	records := newMockCorrespondenceRepo()
	return &repository.Repository{Officer: officers, Correspondence: records}, officers, records
}
