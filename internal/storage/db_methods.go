package storage

import (
	"context"
	"errors"
	"time"

	"jobcore/backend/internal/apperr"
	"jobcore/backend/internal/models"

	"gorm.io/gorm"
)

func (s *Service) GetApplicationByID(ctx context.Context, id string) (*models.Application, error) {
	var a models.Application
	err := s.DB.WithContext(ctx).
		Preload("Vacancy").
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("changed_at ASC")
		}).
		Where("id = ?", id).
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.CodeNotFound, "application not found")
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// FindApplicationByVacancyAndCandidate returns nil without an error when the
// candidate has no prior application for the vacancy.
func (s *Service) FindApplicationByVacancyAndCandidate(ctx context.Context, vacancyID, candidateID string) (*models.Application, error) {
	var a models.Application
	err := s.DB.WithContext(ctx).
		Where("vacancy_id = ? AND candidate_id = ?", vacancyID, candidateID).
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Service) SaveApplication(ctx context.Context, a *models.Application) error {
	return s.DB.WithContext(ctx).Omit("Vacancy", "History").Save(a).Error
}

func (s *Service) AppendApplicationHistory(ctx context.Context, h *models.ApplicationHistory) error {
	return s.DB.WithContext(ctx).Create(h).Error
}

func (s *Service) ListApplicationsByVacancy(ctx context.Context, vacancyID string, status models.SystemStatus, candidateIDs []string, page, size int) ([]models.Application, int64, error) {
	query := s.DB.WithContext(ctx).Model(&models.Application{}).
		Where("vacancy_id = ?", vacancyID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if candidateIDs != nil {
		query = query.Where("candidate_id IN ?", candidateIDs)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var applications []models.Application
	err := query.
		Order("applied_at DESC").
		Limit(size).Offset(page * size).
		Find(&applications).Error
	if err != nil {
		return nil, 0, err
	}
	return applications, total, nil
}

func (s *Service) ListApplicationsByCandidate(ctx context.Context, candidateID string, page, size int) ([]models.Application, int64, error) {
	query := s.DB.WithContext(ctx).Model(&models.Application{}).
		Where("candidate_id = ?", candidateID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var applications []models.Application
	err := query.
		Preload("Vacancy").
		Order("applied_at DESC").
		Limit(size).Offset(page * size).
		Find(&applications).Error
	if err != nil {
		return nil, 0, err
	}
	return applications, total, nil
}

func (s *Service) SaveReport(ctx context.Context, r *models.Report) error {
	return s.DB.WithContext(ctx).Omit("Vacancy").Save(r).Error
}

func (s *Service) GetReportByID(ctx context.Context, id string) (*models.Report, error) {
	var r models.Report
	err := s.DB.WithContext(ctx).
		Preload("Vacancy").
		Where("id = ?", id).
		First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.CodeNotFound, "report not found")
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// FindActiveReport looks up an unresolved (status NEW) report the user already
// filed against the vacancy. Returns nil without an error when none exists.
func (s *Service) FindActiveReport(ctx context.Context, userID, vacancyID string) (*models.Report, error) {
	var r models.Report
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND vacancy_id = ? AND status = ?", userID, vacancyID, models.StatusNew).
		First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Service) CountUserReportsSince(ctx context.Context, userID string, since time.Time) (int64, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&models.Report{}).
		Where("user_id = ? AND created_at > ?", userID, since).
		Count(&count).Error
	return count, err
}

func (s *Service) FindOldestUserReportSince(ctx context.Context, userID string, since time.Time) (*models.Report, error) {
	var r models.Report
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND created_at > ?", userID, since).
		Order("created_at ASC").
		First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Service) ListReportsByStatus(ctx context.Context, status models.SystemStatus, page, size int) ([]models.Report, int64, error) {
	query := s.DB.WithContext(ctx).Model(&models.Report{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []models.Report
	err := query.
		Preload("Vacancy").
		Order("created_at DESC").
		Limit(size).Offset(page * size).
		Find(&reports).Error
	if err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func (s *Service) ListReportsByUser(ctx context.Context, userID string, page, size int) ([]models.Report, int64, error) {
	query := s.DB.WithContext(ctx).Model(&models.Report{}).
		Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []models.Report
	err := query.
		Preload("Vacancy").
		Order("created_at DESC").
		Limit(size).Offset(page * size).
		Find(&reports).Error
	if err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func (s *Service) SaveCategory(ctx context.Context, c *models.Category) error {
	return s.DB.WithContext(ctx).Save(c).Error
}

func (s *Service) GetCategoryByID(ctx context.Context, id string) (*models.Category, error) {
	var c models.Category
	err := s.DB.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.CodeNotFound, "category not found")
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.DB.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
