package lifecycle_test

import (
	"context"
	"time"

	"jobcore/backend/internal/clients"
	"jobcore/backend/internal/models"
	"jobcore/backend/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) SaveVacancy(ctx context.Context, v *models.Vacancy) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockStorage) SaveVacancies(ctx context.Context, vacancies []*models.Vacancy) error {
	args := m.Called(ctx, vacancies)
	return args.Error(0)
}

func (m *MockStorage) DeleteVacancy(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStorage) GetVacancyByID(ctx context.Context, id string) (*models.Vacancy, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vacancy), args.Error(1)
}

func (m *MockStorage) ListVacanciesAwaitingActivation(ctx context.Context) ([]*models.Vacancy, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Vacancy), args.Error(1)
}

func (m *MockStorage) ListActiveVacancies(ctx context.Context) ([]*models.Vacancy, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Vacancy), args.Error(1)
}

func (m *MockStorage) ListFilteredVacancies(ctx context.Context, filter storage.VacancyFilter, page, size int) ([]models.Vacancy, int64, error) {
	args := m.Called(ctx, filter, page, size)
	return args.Get(0).([]models.Vacancy), args.Get(1).(int64), args.Error(2)
}

func (m *MockStorage) ListCompanyVacancies(ctx context.Context, companyID string, page, size int) ([]models.Vacancy, int64, error) {
	args := m.Called(ctx, companyID, page, size)
	return args.Get(0).([]models.Vacancy), args.Get(1).(int64), args.Error(2)
}

func (m *MockStorage) CountCompanyVacancies(ctx context.Context, companyIDs []string) (map[string]int64, error) {
	args := m.Called(ctx, companyIDs)
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockStorage) GetApplicationByID(ctx context.Context, id string) (*models.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

func (m *MockStorage) FindApplicationByVacancyAndCandidate(ctx context.Context, vacancyID, candidateID string) (*models.Application, error) {
	args := m.Called(ctx, vacancyID, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

func (m *MockStorage) SaveApplication(ctx context.Context, a *models.Application) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockStorage) AppendApplicationHistory(ctx context.Context, h *models.ApplicationHistory) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockStorage) ListApplicationsByVacancy(ctx context.Context, vacancyID string, status models.SystemStatus, candidateIDs []string, page, size int) ([]models.Application, int64, error) {
	args := m.Called(ctx, vacancyID, status, candidateIDs, page, size)
	return args.Get(0).([]models.Application), args.Get(1).(int64), args.Error(2)
}

func (m *MockStorage) ListApplicationsByCandidate(ctx context.Context, candidateID string, page, size int) ([]models.Application, int64, error) {
	args := m.Called(ctx, candidateID, page, size)
	return args.Get(0).([]models.Application), args.Get(1).(int64), args.Error(2)
}

func (m *MockStorage) SaveReport(ctx context.Context, r *models.Report) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockStorage) GetReportByID(ctx context.Context, id string) (*models.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Report), args.Error(1)
}

func (m *MockStorage) FindActiveReport(ctx context.Context, userID, vacancyID string) (*models.Report, error) {
	args := m.Called(ctx, userID, vacancyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Report), args.Error(1)
}

func (m *MockStorage) CountUserReportsSince(ctx context.Context, userID string, since time.Time) (int64, error) {
	args := m.Called(ctx, userID, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) FindOldestUserReportSince(ctx context.Context, userID string, since time.Time) (*models.Report, error) {
	args := m.Called(ctx, userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Report), args.Error(1)
}

func (m *MockStorage) ListReportsByStatus(ctx context.Context, status models.SystemStatus, page, size int) ([]models.Report, int64, error) {
	args := m.Called(ctx, status, page, size)
	return args.Get(0).([]models.Report), args.Get(1).(int64), args.Error(2)
}

func (m *MockStorage) ListReportsByUser(ctx context.Context, userID string, page, size int) ([]models.Report, int64, error) {
	args := m.Called(ctx, userID, page, size)
	return args.Get(0).([]models.Report), args.Get(1).(int64), args.Error(2)
}

func (m *MockStorage) SaveCategory(ctx context.Context, c *models.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockStorage) GetCategoryByID(ctx context.Context, id string) (*models.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockStorage) ListCategories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockStorage) PublishNotification(ctx context.Context, event models.NotificationEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockUserDirectory struct {
	mock.Mock
}

func (m *MockUserDirectory) IsApproved(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserDirectory) IsRecruiterInCompany(ctx context.Context, recruiterID, companyID string) (bool, error) {
	args := m.Called(ctx, recruiterID, companyID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserDirectory) CompanyPreviews(ctx context.Context, companyIDs []string) (map[string]clients.CompanyPreview, error) {
	args := m.Called(ctx, companyIDs)
	return args.Get(0).(map[string]clients.CompanyPreview), args.Error(1)
}

func (m *MockUserDirectory) DisplayNames(ctx context.Context, userIDs []string, requesterEmail string) (map[string]string, error) {
	args := m.Called(ctx, userIDs, requesterEmail)
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockUserDirectory) FilteredCandidates(ctx context.Context, filter clients.CandidateFilter) (map[string]clients.CandidateInfo, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(map[string]clients.CandidateInfo), args.Error(1)
}

type MockCVService struct {
	mock.Mock
}

func (m *MockCVService) GetCV(ctx context.Context, cvID string) (*clients.CVDescriptor, error) {
	args := m.Called(ctx, cvID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.CVDescriptor), args.Error(1)
}
