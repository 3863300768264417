package repository

import (
	"context"
	"statushub/internal/core/domain"
	"statushub/internal/core/port"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockStatusRepository struct {
	mock.Mock
}

func NewMockStatusRepository() *MockStatusRepository {
	return &MockStatusRepository{}
}

func (m *MockStatusRepository) Create(ctx context.Context, status domain.Status) error {
	args := m.Called(ctx, status)
	return args.Error(0)
}

func (m *MockStatusRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Status, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.Status), args.Error(1)
}

func (m *MockStatusRepository) FindVisibleByID(ctx context.Context, viewerID, id uuid.UUID) (*domain.Status, error) {
	args := m.Called(ctx, viewerID, id)
	return args.Get(0).(*domain.Status), args.Error(1)
}

func (m *MockStatusRepository) FindActiveByOwner(ctx context.Context, viewerID, ownerID uuid.UUID, now time.Time) ([]domain.Status, error) {
	args := m.Called(ctx, viewerID, ownerID, now)
	return args.Get(0).([]domain.Status), args.Error(1)
}

func (m *MockStatusRepository) FindActiveVisible(ctx context.Context, viewerID uuid.UUID, now time.Time) ([]domain.Status, error) {
	args := m.Called(ctx, viewerID, now)
	return args.Get(0).([]domain.Status), args.Error(1)
}

func (m *MockStatusRepository) FindActiveByOwners(ctx context.Context, viewerID uuid.UUID, ownerIDs []uuid.UUID, now time.Time) ([]domain.Status, error) {
	args := m.Called(ctx, viewerID, ownerIDs, now)
	return args.Get(0).([]domain.Status), args.Error(1)
}

func (m *MockStatusRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStatusRepository) ArchiveExpired(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockStatusRepository) FindOlderThan(ctx context.Context, cutoff time.Time) ([]domain.Status, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]domain.Status), args.Error(1)
}

func (m *MockStatusRepository) DeleteBatch(ctx context.Context, ids []uuid.UUID) (int, error) {
	args := m.Called(ctx, ids)
	return args.Int(0), args.Error(1)
}

type MockStatusViewRepository struct {
	mock.Mock
}

func NewMockStatusViewRepository() *MockStatusViewRepository {
	return &MockStatusViewRepository{}
}

func (m *MockStatusViewRepository) Upsert(ctx context.Context, statusID, viewerID uuid.UUID, viewedAt time.Time) error {
	args := m.Called(ctx, statusID, viewerID, viewedAt)
	return args.Error(0)
}

func (m *MockStatusViewRepository) Exists(ctx context.Context, statusID, viewerID uuid.UUID) (bool, error) {
	args := m.Called(ctx, statusID, viewerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStatusViewRepository) CountByStatus(ctx context.Context, statusID uuid.UUID) (int, error) {
	args := m.Called(ctx, statusID)
	return args.Int(0), args.Error(1)
}

type MockVisibilityExceptionRepository struct {
	mock.Mock
}

func NewMockVisibilityExceptionRepository() *MockVisibilityExceptionRepository {
	return &MockVisibilityExceptionRepository{}
}

func (m *MockVisibilityExceptionRepository) CreateMany(ctx context.Context, statusID uuid.UUID, allowedUserIDs []uuid.UUID) (int, error) {
	args := m.Called(ctx, statusID, allowedUserIDs)
	return args.Int(0), args.Error(1)
}

func (m *MockVisibilityExceptionRepository) DeleteByStatusID(ctx context.Context, statusID uuid.UUID) error {
	args := m.Called(ctx, statusID)
	return args.Error(0)
}

type MockConnectionRepository struct {
	mock.Mock
}

func NewMockConnectionRepository() *MockConnectionRepository {
	return &MockConnectionRepository{}
}

func (m *MockConnectionRepository) FindAcceptedIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

type MockProfileRepository struct {
	mock.Mock
}

func NewMockProfileRepository() *MockProfileRepository {
	return &MockProfileRepository{}
}

func (m *MockProfileRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Profile, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(map[uuid.UUID]domain.Profile), args.Error(1)
}

type MockUnitOfWork struct {
	mock.Mock
	statusRepo     *MockStatusRepository
	viewRepo       *MockStatusViewRepository
	exceptionRepo  *MockVisibilityExceptionRepository
	connectionRepo *MockConnectionRepository
	profileRepo    *MockProfileRepository
}

func NewMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{
		statusRepo:     &MockStatusRepository{},
		viewRepo:       &MockStatusViewRepository{},
		exceptionRepo:  &MockVisibilityExceptionRepository{},
		connectionRepo: &MockConnectionRepository{},
		profileRepo:    &MockProfileRepository{},
	}
}

func (m *MockUnitOfWork) StatusRepo() port.StatusRepository {
	return m.statusRepo
}

func (m *MockUnitOfWork) ViewRepo() port.StatusViewRepository {
	return m.viewRepo
}

func (m *MockUnitOfWork) ExceptionRepo() port.VisibilityExceptionRepository {
	return m.exceptionRepo
}

func (m *MockUnitOfWork) ConnectionRepo() port.ConnectionRepository {
	return m.connectionRepo
}

func (m *MockUnitOfWork) ProfileRepo() port.ProfileRepository {
	return m.profileRepo
}

func (m *MockUnitOfWork) Execute(ctx context.Context, fn func(uow port.UnitOfWork) error) error {
	args := m.Called(ctx, fn)

	if err := fn(m); err != nil {
		return err
	}

	return args.Error(0)
}

func (m *MockUnitOfWork) GetStatusRepoMock() *MockStatusRepository {
	return m.statusRepo
}

func (m *MockUnitOfWork) GetViewRepoMock() *MockStatusViewRepository {
	return m.viewRepo
}

func (m *MockUnitOfWork) GetExceptionRepoMock() *MockVisibilityExceptionRepository {
	return m.exceptionRepo
}

func (m *MockUnitOfWork) GetConnectionRepoMock() *MockConnectionRepository {
	return m.connectionRepo
}

func (m *MockUnitOfWork) GetProfileRepoMock() *MockProfileRepository {
	return m.profileRepo
}
