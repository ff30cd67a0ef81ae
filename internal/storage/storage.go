package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"jobcore/backend/internal/apperr"
	"jobcore/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// VacancyFilter narrows the public vacancy listing. Zero values mean "any".
type VacancyFilter struct {
	TextSearch    string
	ContractType  models.ContractType
	WorkMode      models.WorkMode
	PositionLevel models.PositionLevel
	Workload      models.Workload
	SalaryFrom    *int
	SalaryTo      *int
	// UploadedAt restricts results to vacancies created on that calendar day.
	UploadedAt *time.Time
}

type Storage interface {
	SaveVacancy(ctx context.Context, v *models.Vacancy) error
	SaveVacancies(ctx context.Context, vacancies []*models.Vacancy) error
	DeleteVacancy(ctx context.Context, id string) error
	GetVacancyByID(ctx context.Context, id string) (*models.Vacancy, error)
	ListVacanciesAwaitingActivation(ctx context.Context) ([]*models.Vacancy, error)
	ListActiveVacancies(ctx context.Context) ([]*models.Vacancy, error)
	ListFilteredVacancies(ctx context.Context, filter VacancyFilter, page, size int) ([]models.Vacancy, int64, error)
	ListCompanyVacancies(ctx context.Context, companyID string, page, size int) ([]models.Vacancy, int64, error)
	CountCompanyVacancies(ctx context.Context, companyIDs []string) (map[string]int64, error)

	GetApplicationByID(ctx context.Context, id string) (*models.Application, error)
	FindApplicationByVacancyAndCandidate(ctx context.Context, vacancyID, candidateID string) (*models.Application, error)
	SaveApplication(ctx context.Context, a *models.Application) error
	AppendApplicationHistory(ctx context.Context, h *models.ApplicationHistory) error
	ListApplicationsByVacancy(ctx context.Context, vacancyID string, status models.SystemStatus, candidateIDs []string, page, size int) ([]models.Application, int64, error)
	ListApplicationsByCandidate(ctx context.Context, candidateID string, page, size int) ([]models.Application, int64, error)

	SaveReport(ctx context.Context, r *models.Report) error
	GetReportByID(ctx context.Context, id string) (*models.Report, error)
	FindActiveReport(ctx context.Context, userID, vacancyID string) (*models.Report, error)
	CountUserReportsSince(ctx context.Context, userID string, since time.Time) (int64, error)
	FindOldestUserReportSince(ctx context.Context, userID string, since time.Time) (*models.Report, error)
	ListReportsByStatus(ctx context.Context, status models.SystemStatus, page, size int) ([]models.Report, int64, error)
	ListReportsByUser(ctx context.Context, userID string, page, size int) ([]models.Report, int64, error)

	SaveCategory(ctx context.Context, c *models.Category) error
	GetCategoryByID(ctx context.Context, id string) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)

	PublishNotification(ctx context.Context, event models.NotificationEvent) error
}

// Service is the gorm/redis implementation of Storage. Postgres holds the
// relational rows, Redis carries the notification pub/sub channel.
type Service struct {
	DB      *gorm.DB
	Redis   *redis.Client
	Channel string
	Log     *zap.Logger
}

func NewService(db *gorm.DB, rdb *redis.Client, channel string, log *zap.Logger) *Service {
	return &Service{DB: db, Redis: rdb, Channel: channel, Log: log}
}

// notResolvedReportsSelect derives the unresolved-report count alongside the
// vacancy row itself, so lifecycle decisions see a consistent snapshot.
const notResolvedReportsSelect = `vacancies.*, ` +
	`(SELECT count(*) FROM reports r WHERE r.vacancy_id = vacancies.id AND r.status <> 'RESOLVED') AS not_resolved_reports`

func (s *Service) SaveVacancy(ctx context.Context, v *models.Vacancy) error {
	return s.DB.WithContext(ctx).Save(v).Error
}

func (s *Service) SaveVacancies(ctx context.Context, vacancies []*models.Vacancy) error {
	if len(vacancies) == 0 {
		return nil
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, v := range vacancies {
			if err := tx.Save(v).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Service) DeleteVacancy(ctx context.Context, id string) error {
	result := s.DB.WithContext(ctx).Delete(&models.Vacancy{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.New(apperr.CodeNotFound, "vacancy not found")
	}
	return nil
}

func (s *Service) GetVacancyByID(ctx context.Context, id string) (*models.Vacancy, error) {
	var v models.Vacancy
	err := s.DB.WithContext(ctx).
		Select(notResolvedReportsSelect).
		Preload("Category").
		Where("vacancies.id = ?", id).
		First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.CodeNotFound, "vacancy not found")
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ListVacanciesAwaitingActivation returns the activation sweep's candidate
// set: disabled vacancies still waiting for approval.
func (s *Service) ListVacanciesAwaitingActivation(ctx context.Context) ([]*models.Vacancy, error) {
	var vacancies []*models.Vacancy
	err := s.DB.WithContext(ctx).
		Select(notResolvedReportsSelect).
		Where("waiting_for_approval = ? AND status = ?", true, models.VacancyDisabled).
		Find(&vacancies).Error
	if err != nil {
		return nil, err
	}
	return vacancies, nil
}

// ListActiveVacancies returns the demotion sweep's candidate set: enabled
// vacancies no longer waiting for approval.
func (s *Service) ListActiveVacancies(ctx context.Context) ([]*models.Vacancy, error) {
	var vacancies []*models.Vacancy
	err := s.DB.WithContext(ctx).
		Select(notResolvedReportsSelect).
		Where("waiting_for_approval = ? AND status = ?", false, models.VacancyEnabled).
		Find(&vacancies).Error
	if err != nil {
		return nil, err
	}
	return vacancies, nil
}

func (s *Service) ListFilteredVacancies(ctx context.Context, filter VacancyFilter, page, size int) ([]models.Vacancy, int64, error) {
	query := s.DB.WithContext(ctx).Model(&models.Vacancy{}).
		Where("status = ?", models.VacancyEnabled)

	if filter.TextSearch != "" {
		pattern := "%" + filter.TextSearch + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if filter.ContractType != "" {
		query = query.Where("contract_type = ?", filter.ContractType)
	}
	if filter.WorkMode != "" {
		query = query.Where("work_mode = ?", filter.WorkMode)
	}
	if filter.PositionLevel != "" {
		query = query.Where("position_level = ?", filter.PositionLevel)
	}
	if filter.Workload != "" {
		query = query.Where("workload = ?", filter.Workload)
	}
	if filter.SalaryFrom != nil {
		query = query.Where("salary_to >= ?", *filter.SalaryFrom)
	}
	if filter.SalaryTo != nil {
		query = query.Where("salary_from <= ?", *filter.SalaryTo)
	}
	if filter.UploadedAt != nil {
		dayStart := filter.UploadedAt.Truncate(24 * time.Hour)
		query = query.Where("created_at >= ? AND created_at < ?", dayStart, dayStart.Add(24*time.Hour))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var vacancies []models.Vacancy
	err := query.
		Preload("Category").
		Order("created_at DESC").
		Limit(size).Offset(page * size).
		Find(&vacancies).Error
	if err != nil {
		return nil, 0, err
	}
	return vacancies, total, nil
}

func (s *Service) ListCompanyVacancies(ctx context.Context, companyID string, page, size int) ([]models.Vacancy, int64, error) {
	query := s.DB.WithContext(ctx).Model(&models.Vacancy{}).
		Where("company_id = ?", companyID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var vacancies []models.Vacancy
	err := query.
		Preload("Category").
		Order("created_at DESC").
		Limit(size).Offset(page * size).
		Find(&vacancies).Error
	if err != nil {
		return nil, 0, err
	}
	return vacancies, total, nil
}

func (s *Service) CountCompanyVacancies(ctx context.Context, companyIDs []string) (map[string]int64, error) {
	type companyCount struct {
		CompanyID string
		Count     int64
	}
	var rows []companyCount
	err := s.DB.WithContext(ctx).Model(&models.Vacancy{}).
		Select("company_id, count(*) AS count").
		Where("company_id IN ?", companyIDs).
		Group("company_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(companyIDs))
	for _, id := range companyIDs {
		counts[id] = 0
	}
	for _, row := range rows {
		counts[row.CompanyID] = row.Count
	}
	return counts, nil
}

// PublishNotification emits the event as JSON on the Redis notification channel.
func (s *Service) PublishNotification(ctx context.Context, event models.NotificationEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if err := s.Redis.Publish(ctx, s.Channel, payload).Err(); err != nil {
		s.Log.Error("failed to publish notification",
			zap.String("target_user_id", event.TargetUserID),
			zap.String("entity_type", event.EntityType),
			zap.Error(err))
		return err
	}
	return nil
}
