package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"rentacar-backend/internal/domain"
)

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendMaintenanceNotice(ctx context.Context, plate string, reasons []string, today time.Time) error {
	args := m.Called(ctx, plate, reasons, today)
	return args.Error(0)
}
func (m *MockEmailService) SendMaintenanceReminder(ctx context.Context, plates []string, today time.Time) error {
	args := m.Called(ctx, plates, today)
	return args.Error(0)
}

// MockLedgerRepo
type MockLedgerRepo struct {
	mock.Mock
}

func (m *MockLedgerRepo) Record(ctx context.Context, entry *domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockLedgerRepo) ListByPlate(ctx context.Context, plate string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, plate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}
func (m *MockLedgerRepo) IncomeBetween(ctx context.Context, from, to time.Time) (float64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(float64), args.Error(1)
}

// MockVehicleRepo
type MockVehicleRepo struct {
	mock.Mock
}

func (m *MockVehicleRepo) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}
func (m *MockVehicleRepo) GetByPlate(ctx context.Context, plate string) (*domain.Vehicle, error) {
	args := m.Called(ctx, plate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) List(ctx context.Context) ([]*domain.Vehicle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) ListByCategory(ctx context.Context, category domain.Category) ([]*domain.Vehicle, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) ListByState(ctx context.Context, state domain.VehicleState) ([]*domain.Vehicle, error) {
	args := m.Called(ctx, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Vehicle), args.Error(1)
}
