// Package vacancy covers recruiter-facing vacancy management and the public
// listing surface. Lifecycle transitions after creation belong to the
// lifecycle poller, not to this service.
package vacancy

import (
	"context"
	"time"

	"jobcore/backend/internal/apperr"
	"jobcore/backend/internal/clients"
	"jobcore/backend/internal/identity"
	"jobcore/backend/internal/models"
	"jobcore/backend/internal/storage"

	"go.uber.org/zap"
)

type Service struct {
	storage storage.Storage
	users   clients.UserDirectory
	log     *zap.Logger
}

func NewService(s storage.Storage, users clients.UserDirectory, log *zap.Logger) *Service {
	return &Service{storage: s, users: users, log: log}
}

// CreateRequest carries the recruiter-supplied fields of a new posting.
type CreateRequest struct {
	CompanyID              string
	CategoryID             string
	Title                  string
	Description            string
	RequirementsMustHave   string
	RequirementsNiceToHave string
	ContractType           models.ContractType
	WorkMode               models.WorkMode
	PositionLevel          models.PositionLevel
	Workload               models.Workload
	Location               string
	SalaryFrom             *int
	SalaryTo               *int
	Tags                   []string
}

// Create persists a new vacancy in DISABLED status waiting for approval.
// The poller promotes it once the activation delay elapses without report
// overload.
func (s *Service) Create(ctx context.Context, actor identity.Actor, req CreateRequest) (*models.Vacancy, error) {
	if err := s.checkMembership(ctx, actor, req.CompanyID); err != nil {
		return nil, err
	}
	if _, err := s.storage.GetCategoryByID(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	v := &models.Vacancy{
		CompanyID:              req.CompanyID,
		RecruiterID:            actor.Subject,
		CategoryID:             req.CategoryID,
		Title:                  req.Title,
		Description:            req.Description,
		RequirementsMustHave:   req.RequirementsMustHave,
		RequirementsNiceToHave: req.RequirementsNiceToHave,
		ContractType:           req.ContractType,
		WorkMode:               req.WorkMode,
		PositionLevel:          req.PositionLevel,
		Workload:               req.Workload,
		Location:               req.Location,
		SalaryFrom:             req.SalaryFrom,
		SalaryTo:               req.SalaryTo,
		Tags:                   req.Tags,
		Status:                 models.VacancyDisabled,
		WaitingForApproval:     true,
		LastStatusChangeAt:     now,
	}
	if err := s.storage.SaveVacancy(ctx, v); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to create vacancy", err)
	}

	s.log.Info("vacancy created",
		zap.String("vacancy_id", v.ID),
		zap.String("recruiter_id", actor.Subject))

	_ = s.storage.PublishNotification(ctx, models.InAppNotification(
		"", actor.Subject, v.ID, "VACANCY_CREATED",
		map[string]string{
			"vacancyTitle": v.Title,
			"createdAt":    now.Format(time.RFC3339),
		}))

	return v, nil
}

// UpdateRequest carries the mutable descriptive fields. Nil pointers leave
// the current value untouched.
type UpdateRequest struct {
	CompanyID              string
	Title                  *string
	Description            *string
	RequirementsMustHave   *string
	RequirementsNiceToHave *string
	ContractType           *models.ContractType
	WorkMode               *models.WorkMode
	PositionLevel          *models.PositionLevel
	Workload               *models.Workload
	Location               *string
	SalaryFrom             *int
	SalaryTo               *int
	Tags                   []string
}

func (s *Service) Update(ctx context.Context, actor identity.Actor, vacancyID string, req UpdateRequest) (*models.Vacancy, error) {
	v, err := s.checkOwnership(ctx, actor, req.CompanyID, vacancyID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		v.Title = *req.Title
	}
	if req.Description != nil {
		v.Description = *req.Description
	}
	if req.RequirementsMustHave != nil {
		v.RequirementsMustHave = *req.RequirementsMustHave
	}
	if req.RequirementsNiceToHave != nil {
		v.RequirementsNiceToHave = *req.RequirementsNiceToHave
	}
	if req.ContractType != nil {
		v.ContractType = *req.ContractType
	}
	if req.WorkMode != nil {
		v.WorkMode = *req.WorkMode
	}
	if req.PositionLevel != nil {
		v.PositionLevel = *req.PositionLevel
	}
	if req.Workload != nil {
		v.Workload = *req.Workload
	}
	if req.Location != nil {
		v.Location = *req.Location
	}
	if req.SalaryFrom != nil {
		v.SalaryFrom = req.SalaryFrom
	}
	if req.SalaryTo != nil {
		v.SalaryTo = req.SalaryTo
	}
	if req.Tags != nil {
		v.Tags = req.Tags
	}

	if err := s.storage.SaveVacancy(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) Delete(ctx context.Context, actor identity.Actor, vacancyID, companyID string) error {
	if _, err := s.checkOwnership(ctx, actor, companyID, vacancyID); err != nil {
		return err
	}
	if err := s.storage.DeleteVacancy(ctx, vacancyID); err != nil {
		return err
	}
	s.log.Info("vacancy deleted",
		zap.String("vacancy_id", vacancyID),
		zap.String("recruiter_id", actor.Subject))
	return nil
}

func (s *Service) Get(ctx context.Context, vacancyID string) (*models.Vacancy, error) {
	return s.storage.GetVacancyByID(ctx, vacancyID)
}

// VacancyRow is one row of the public listing with the company card attached.
type VacancyRow struct {
	Vacancy models.Vacancy         `json:"vacancy"`
	Company clients.CompanyPreview `json:"company"`
}

// List returns enabled vacancies matching the filter.
func (s *Service) List(ctx context.Context, filter storage.VacancyFilter, page, size int) (models.Page[VacancyRow], error) {
	var empty models.Page[VacancyRow]

	vacancies, total, err := s.storage.ListFilteredVacancies(ctx, filter, page, size)
	if err != nil {
		return empty, err
	}
	return s.withCompanyPreviews(ctx, vacancies, total, page, size)
}

// CompanyVacancies returns all of one company's vacancies regardless of status.
func (s *Service) CompanyVacancies(ctx context.Context, companyID string, page, size int) (models.Page[VacancyRow], error) {
	var empty models.Page[VacancyRow]

	vacancies, total, err := s.storage.ListCompanyVacancies(ctx, companyID, page, size)
	if err != nil {
		return empty, err
	}
	return s.withCompanyPreviews(ctx, vacancies, total, page, size)
}

// CountForCompanies returns the vacancy count per company, zero included.
func (s *Service) CountForCompanies(ctx context.Context, companyIDs []string) (map[string]int64, error) {
	return s.storage.CountCompanyVacancies(ctx, companyIDs)
}

func (s *Service) withCompanyPreviews(ctx context.Context, vacancies []models.Vacancy, total int64, page, size int) (models.Page[VacancyRow], error) {
	companyIDs := make([]string, 0, len(vacancies))
	seen := map[string]bool{}
	for _, v := range vacancies {
		if !seen[v.CompanyID] {
			seen[v.CompanyID] = true
			companyIDs = append(companyIDs, v.CompanyID)
		}
	}

	previews, err := s.users.CompanyPreviews(ctx, companyIDs)
	if err != nil {
		s.log.Warn("failed to load company previews", zap.Error(err))
		previews = map[string]clients.CompanyPreview{}
	}

	rows := make([]VacancyRow, 0, len(vacancies))
	for _, v := range vacancies {
		rows = append(rows, VacancyRow{Vacancy: v, Company: previews[v.CompanyID]})
	}
	return models.NewPage(rows, total, page, size), nil
}

func (s *Service) checkMembership(ctx context.Context, actor identity.Actor, companyID string) error {
	member, err := s.users.IsRecruiterInCompany(ctx, actor.Subject, companyID)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, "failed to resolve company membership", err)
	}
	if !member {
		return apperr.New(apperr.CodeForbidden, "recruiter does not belong to company")
	}
	return nil
}

func (s *Service) checkOwnership(ctx context.Context, actor identity.Actor, companyID, vacancyID string) (*models.Vacancy, error) {
	if err := s.checkMembership(ctx, actor, companyID); err != nil {
		return nil, err
	}
	v, err := s.storage.GetVacancyByID(ctx, vacancyID)
	if err != nil {
		return nil, err
	}
	if v.RecruiterID != actor.Subject {
		return nil, apperr.New(apperr.CodeForbidden, "recruiter does not own the vacancy")
	}
	return v, nil
}
