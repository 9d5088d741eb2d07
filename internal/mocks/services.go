package mocks

import (
	"context"
	"io"

	"github.com/staff-directory-api/internal/models"
	"github.com/staff-directory-api/internal/service"
)

// MockStaffService is a mock implementation of StaffService. Unset funcs
// return zero values.
type MockStaffService struct {
	AddStaffFunc      func(ctx context.Context, form models.StaffForm) (*models.StaffRecord, error)
	EditStaffFunc     func(ctx context.Context, id string, patch models.StaffPatch) (*models.StaffRecord, error)
	DeleteStaffFunc   func(ctx context.Context, id string) (*models.StaffRecord, error)
	MarkAbsentFunc    func(ctx context.Context, id string, req models.AbsenceRequest) (*models.StaffRecord, error)
	MarkAvailableFunc func(ctx context.Context, id string) (*models.StaffRecord, error)
	ImportStaffFunc   func(ctx context.Context, drafts []models.Draft) (*models.ImportResult, error)
	GetStaffFunc      func(ctx context.Context, id string) (*models.StaffRecord, error)
	QueryFunc         func(ctx context.Context, spec models.QuerySpec) ([]models.StaffRecord, error)
	StatisticsFunc    func(ctx context.Context) (*models.Statistics, error)
	SeedFunc          func(ctx context.Context, records []models.StaffRecord) (int, error)
	Queries           []models.QuerySpec
}

// Verify interface compliance
var _ service.StaffService = (*MockStaffService)(nil)

func NewMockStaffService() *MockStaffService {
	return &MockStaffService{}
}

func (m *MockStaffService) AddStaff(ctx context.Context, form models.StaffForm) (*models.StaffRecord, error) {
	if m.AddStaffFunc != nil {
		return m.AddStaffFunc(ctx, form)
	}
	return nil, nil
}

func (m *MockStaffService) EditStaff(ctx context.Context, id string, patch models.StaffPatch) (*models.StaffRecord, error) {
	if m.EditStaffFunc != nil {
		return m.EditStaffFunc(ctx, id, patch)
	}
	return nil, nil
}

func (m *MockStaffService) DeleteStaff(ctx context.Context, id string) (*models.StaffRecord, error) {
	if m.DeleteStaffFunc != nil {
		return m.DeleteStaffFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockStaffService) MarkAbsent(ctx context.Context, id string, req models.AbsenceRequest) (*models.StaffRecord, error) {
	if m.MarkAbsentFunc != nil {
		return m.MarkAbsentFunc(ctx, id, req)
	}
	return nil, nil
}

func (m *MockStaffService) MarkAvailable(ctx context.Context, id string) (*models.StaffRecord, error) {
	if m.MarkAvailableFunc != nil {
		return m.MarkAvailableFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockStaffService) ImportStaff(ctx context.Context, drafts []models.Draft) (*models.ImportResult, error) {
	if m.ImportStaffFunc != nil {
		return m.ImportStaffFunc(ctx, drafts)
	}
	return &models.ImportResult{}, nil
}

func (m *MockStaffService) GetStaff(ctx context.Context, id string) (*models.StaffRecord, error) {
	if m.GetStaffFunc != nil {
		return m.GetStaffFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockStaffService) Query(ctx context.Context, spec models.QuerySpec) ([]models.StaffRecord, error) {
	m.Queries = append(m.Queries, spec)
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, spec)
	}
	return []models.StaffRecord{}, nil
}

func (m *MockStaffService) Statistics(ctx context.Context) (*models.Statistics, error) {
	if m.StatisticsFunc != nil {
		return m.StatisticsFunc(ctx)
	}
	return &models.Statistics{}, nil
}

func (m *MockStaffService) Seed(ctx context.Context, records []models.StaffRecord) (int, error) {
	if m.SeedFunc != nil {
		return m.SeedFunc(ctx, records)
	}
	return len(records), nil
}

// MockImportService is a mock implementation of ImportService
type MockImportService struct {
	ExtractFunc    func(ctx context.Context, artifact models.Artifact) (*models.ImportSession, error)
	GetSessionFunc func(ctx context.Context, id string) (*models.ImportSession, error)
	CommitFunc     func(ctx context.Context, id string, req models.CommitRequest) (*models.ImportResult, error)
	DiscardFunc    func(ctx context.Context, id string) (*models.ImportSession, error)
	Artifacts      []models.Artifact
}

// Verify interface compliance
var _ service.ImportService = (*MockImportService)(nil)

func NewMockImportService() *MockImportService {
	return &MockImportService{}
}

func (m *MockImportService) Extract(ctx context.Context, artifact models.Artifact) (*models.ImportSession, error) {
	m.Artifacts = append(m.Artifacts, artifact)
	if m.ExtractFunc != nil {
		return m.ExtractFunc(ctx, artifact)
	}
	return &models.ImportSession{ID: "test-session-id", Format: artifact.Format, Status: models.SessionPending}, nil
}

func (m *MockImportService) GetSession(ctx context.Context, id string) (*models.ImportSession, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx, id)
	}
	return &models.ImportSession{ID: id, Status: models.SessionPending}, nil
}

func (m *MockImportService) Commit(ctx context.Context, id string, req models.CommitRequest) (*models.ImportResult, error) {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx, id, req)
	}
	return &models.ImportResult{SessionID: id}, nil
}

func (m *MockImportService) Discard(ctx context.Context, id string) (*models.ImportSession, error) {
	if m.DiscardFunc != nil {
		return m.DiscardFunc(ctx, id)
	}
	return &models.ImportSession{ID: id, Status: models.SessionDiscarded}, nil
}

// MockExportService is a mock implementation of ExportService
type MockExportService struct {
	RowsFunc   func(ctx context.Context, spec models.QuerySpec) ([]models.ExportRow, error)
	StreamFunc func(ctx context.Context, w io.Writer, spec models.QuerySpec, format string) error
}

// Verify interface compliance
var _ service.ExportService = (*MockExportService)(nil)

func NewMockExportService() *MockExportService {
	return &MockExportService{}
}

func (m *MockExportService) Rows(ctx context.Context, spec models.QuerySpec) ([]models.ExportRow, error) {
	if m.RowsFunc != nil {
		return m.RowsFunc(ctx, spec)
	}
	return []models.ExportRow{}, nil
}

func (m *MockExportService) Stream(ctx context.Context, w io.Writer, spec models.QuerySpec, format string) error {
	if m.StreamFunc != nil {
		return m.StreamFunc(ctx, w, spec, format)
	}
	return nil
}
