package mocks

import (
	"context"

	"github.com/staff-directory-api/internal/models"
	"github.com/staff-directory-api/internal/repository"
)

// MockStaffRepository wraps a real in-memory roster and lets tests override
// individual operations to inject failures
type MockStaffRepository struct {
	repository.StaffRepository

	CreateFunc  func(ctx context.Context, rec *models.StaffRecord) error
	UpdateFunc  func(ctx context.Context, rec *models.StaffRecord) error
	ListFunc    func(ctx context.Context) ([]models.StaffRecord, error)
	CreateCalls int
	UpdateCalls int
}

// Verify interface compliance
var _ repository.StaffRepository = (*MockStaffRepository)(nil)

func NewMockStaffRepository() *MockStaffRepository {
	return &MockStaffRepository{StaffRepository: repository.NewStaffRepo()}
}

func (m *MockStaffRepository) Create(ctx context.Context, rec *models.StaffRecord) error {
	m.CreateCalls++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, rec)
	}
	return m.StaffRepository.Create(ctx, rec)
}

func (m *MockStaffRepository) Update(ctx context.Context, rec *models.StaffRecord) error {
	m.UpdateCalls++
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, rec)
	}
	return m.StaffRepository.Update(ctx, rec)
}

func (m *MockStaffRepository) List(ctx context.Context) ([]models.StaffRecord, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return m.StaffRepository.List(ctx)
}
