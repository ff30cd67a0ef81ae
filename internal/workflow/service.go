// Package workflow guards every application-status mutation against illegal
// transitions and appends an audit record for each change.
package workflow

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
	cvs     clients.CVService
	log     *zap.Logger
}

func NewService(s storage.Storage, users clients.UserDirectory, cvs clients.CVService, log *zap.Logger) *Service {
	return &Service{storage: s, users: users, cvs: cvs, log: log}
}

// ApplyRequest is a candidate's submission against one vacancy.
type ApplyRequest struct {
	VacancyID   string
	CVID        string
	CoverLetter string
}

// Apply submits or re-submits an application. The candidate must be approved
// in the directory, the CV must resolve, and the vacancy must not be archived.
// A prior application in NO_MORE_INTERESTS blocks the candidate; VIEWED,
// IN_PROGRESS or ACCEPTED means already applied; REJECTED or NEW is reset to a
// fresh NEW submission with a history row attributed to "system".
func (s *Service) Apply(ctx context.Context, actor identity.Actor, req ApplyRequest) (*models.Application, error) {
	approved, err := s.users.IsApproved(ctx, actor.Subject)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to resolve candidate approval", err)
	}
	if !approved {
		return nil, apperr.New(apperr.CodeValidation, "user is not approved")
	}

	cv, err := s.cvs.GetCV(ctx, req.CVID)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to resolve cv", err)
	}
	if cv == nil {
		return nil, apperr.New(apperr.CodeValidation, "cv is not found or not readable")
	}

	vacancy, err := s.storage.GetVacancyByID(ctx, req.VacancyID)
	if err != nil {
		return nil, err
	}
	if vacancy.Status == models.VacancyArchived {
		return nil, apperr.New(apperr.CodeState, "vacancy is archived")
	}

	existing, err := s.storage.FindApplicationByVacancyAndCandidate(ctx, req.VacancyID, actor.Subject)
	if err != nil {
		return nil, err
	}

	var application *models.Application
	now := time.Now().UTC()

	if existing != nil {
		switch existing.Status {
		case models.StatusNoMoreInterests:
			s.log.Info("application blocked on re-apply",
				zap.String("vacancy_id", req.VacancyID),
				zap.String("candidate_id", actor.Subject))
			return nil, apperr.New(apperr.CodeValidation, "company is no longer interested in the candidate")

		case models.StatusViewed, models.StatusInProgress, models.StatusAccepted:
			return nil, apperr.New(apperr.CodeConflict, "candidate already applied to vacancy").
				WithDetails(map[string]any{
					"status":     existing.Status,
					"applied_at": existing.AppliedAt,
				})

		case models.StatusRejected, models.StatusNew:
			previous := existing.Status
			existing.CVID = req.CVID
			existing.CoverLetter = req.CoverLetter
			existing.Status = models.StatusNew
			existing.AppliedAt = now

			if err := s.storage.SaveApplication(ctx, existing); err != nil {
				return nil, err
			}
			if err := s.appendHistory(ctx, existing.ID, previous, models.StatusNew, models.HistoryActorSystem); err != nil {
				return nil, err
			}
			application = existing

		default:
			return nil, apperr.New(apperr.CodeState, "application status does not permit re-applying").
				WithDetails(map[string]any{"status": existing.Status})
		}
	} else {
		application = &models.Application{
			VacancyID:   req.VacancyID,
			CandidateID: actor.Subject,
			CVID:        req.CVID,
			Status:      models.StatusNew,
			CoverLetter: req.CoverLetter,
			AppliedAt:   now,
		}
		if err := s.storage.SaveApplication(ctx, application); err != nil {
			return nil, err
		}
		if err := s.appendHistory(ctx, application.ID, models.StatusNew, models.StatusNew, models.HistoryActorSystem); err != nil {
			return nil, err
		}
	}

	// Fire-and-forget: broker failures are logged by storage.
	_ = s.storage.PublishNotification(ctx, models.InAppNotification(
		"", actor.Subject, application.ID, "APPLICATION_SUBMITTED",
		map[string]string{
			"vacancyTitle": vacancy.Title,
			"submittedAt":  now.Format(time.RFC3339),
		}))

	return application, nil
}

// ChangeStatus moves an application along the transition table. A NEW
// application cannot be changed directly; reading the detail view as the
// recruiter promotes it to VIEWED first. Accepting an application archives
// the parent vacancy.
func (s *Service) ChangeStatus(ctx context.Context, actor identity.Actor, applicationID string, target models.SystemStatus) error {
	application, err := s.storage.GetApplicationByID(ctx, applicationID)
	if err != nil {
		return err
	}

	if application.Status == models.StatusNew {
		return apperr.New(apperr.CodeState, "recruiter can't change the status of a new application")
	}
	if !TransitionAllowed(application.Status, target) {
		return apperr.New(apperr.CodeState, "status transition is not allowed").
			WithDetails(map[string]any{
				"from":    application.Status,
				"to":      target,
				"allowed": AllowedTargets(application.Status),
			})
	}

	previous := application.Status
	application.Status = target
	if err := s.storage.SaveApplication(ctx, application); err != nil {
		return err
	}
	if err := s.appendHistory(ctx, application.ID, previous, target, actor.Subject); err != nil {
		return err
	}

	now := time.Now().UTC()
	if target == models.StatusAccepted {
		vacancy := application.Vacancy
		vacancy.Status = models.VacancyArchived
		if err := s.storage.SaveVacancy(ctx, vacancy); err != nil {
			return err
		}
		_ = s.storage.PublishNotification(ctx, models.InAppNotification(
			actor.Subject, application.CandidateID, application.ID, "APPLICATION_APPROVED",
			map[string]string{
				"vacancyTitle": vacancy.Title,
				"approvedAt":   now.Format(time.RFC3339),
			}))
		return nil
	}

	_ = s.storage.PublishNotification(ctx, models.InAppNotification(
		actor.Subject, application.CandidateID, application.ID, "APPLICATION_STATUS_CHANGED",
		map[string]string{
			"vacancyTitle": application.Vacancy.Title,
			"oldStatus":    string(previous),
			"newStatus":    string(target),
			"changedAt":    now.Format(time.RFC3339),
		}))
	return nil
}

// Details returns the application with its history. When the caller is the
// vacancy's recruiter and the application is still NEW, reading the detail
// view promotes it to VIEWED.
func (s *Service) Details(ctx context.Context, actor identity.Actor, applicationID string) (*models.Application, error) {
	application, err := s.storage.GetApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	if application.Vacancy != nil &&
		application.Vacancy.RecruiterID == actor.Subject &&
		application.Status == models.StatusNew {

		application.Status = models.StatusViewed
		if err := s.storage.SaveApplication(ctx, application); err != nil {
			return nil, err
		}
		if err := s.appendHistory(ctx, application.ID, models.StatusNew, models.StatusViewed, actor.Subject); err != nil {
			return nil, err
		}
	}

	return application, nil
}

// ApplicationSummary is one row of a recruiter's application listing.
type ApplicationSummary struct {
	Application models.Application    `json:"application"`
	Candidate   clients.CandidateInfo `json:"candidate"`
}

// ApplicationsForVacancy lists a vacancy's applications for its recruiter,
// optionally filtered by status and by candidate attributes resolved through
// the directory.
func (s *Service) ApplicationsForVacancy(ctx context.Context, actor identity.Actor, vacancyID string, status models.SystemStatus, filter clients.CandidateFilter, page, size int) (models.Page[ApplicationSummary], error) {
	var empty models.Page[ApplicationSummary]

	vacancy, err := s.storage.GetVacancyByID(ctx, vacancyID)
	if err != nil {
		return empty, err
	}
	if vacancy.RecruiterID != actor.Subject {
		return empty, apperr.New(apperr.CodeForbidden, "recruiter does not own the vacancy")
	}

	var candidateIDs []string
	candidates := map[string]clients.CandidateInfo{}
	if filter != (clients.CandidateFilter{}) {
		candidates, err = s.users.FilteredCandidates(ctx, filter)
		if err != nil {
			return empty, apperr.Wrap(apperr.CodeInternal, "failed to filter candidates", err)
		}
		candidateIDs = make([]string, 0, len(candidates))
		for id := range candidates {
			candidateIDs = append(candidateIDs, id)
		}
	}

	applications, total, err := s.storage.ListApplicationsByVacancy(ctx, vacancyID, status, candidateIDs, page, size)
	if err != nil {
		return empty, err
	}

	items := make([]ApplicationSummary, 0, len(applications))
	for _, a := range applications {
		items = append(items, ApplicationSummary{
			Application: a,
			Candidate:   candidates[a.CandidateID],
		})
	}
	return models.NewPage(items, total, page, size), nil
}

// CandidateApplication is one row of a candidate's own application listing,
// with the company preview attached.
type CandidateApplication struct {
	Application models.Application     `json:"application"`
	Company     clients.CompanyPreview `json:"company"`
}

func (s *Service) MyApplications(ctx context.Context, actor identity.Actor, page, size int) (models.Page[CandidateApplication], error) {
	var empty models.Page[CandidateApplication]

	applications, total, err := s.storage.ListApplicationsByCandidate(ctx, actor.Subject, page, size)
	if err != nil {
		return empty, err
	}

	companyIDs := make([]string, 0, len(applications))
	seen := map[string]bool{}
	for _, a := range applications {
		if a.Vacancy != nil && !seen[a.Vacancy.CompanyID] {
			seen[a.Vacancy.CompanyID] = true
			companyIDs = append(companyIDs, a.Vacancy.CompanyID)
		}
	}

	previews, err := s.users.CompanyPreviews(ctx, companyIDs)
	if err != nil {
		return empty, apperr.Wrap(apperr.CodeInternal, "failed to load company previews", err)
	}

	items := make([]CandidateApplication, 0, len(applications))
	for _, a := range applications {
		row := CandidateApplication{Application: a}
		if a.Vacancy != nil {
			row.Company = previews[a.Vacancy.CompanyID]
		}
		items = append(items, row)
	}
	return models.NewPage(items, total, page, size), nil
}

// OpenForChat reports whether the application is in a status that allows the
// chat service to open a conversation.
func (s *Service) OpenForChat(ctx context.Context, applicationID string) (bool, error) {
	application, err := s.storage.GetApplicationByID(ctx, applicationID)
	if err != nil {
		return false, err
	}
	return application.Status == models.StatusInProgress, nil
}

func (s *Service) appendHistory(ctx context.Context, applicationID string, from, to models.SystemStatus, changedBy string) error {
	s.log.Info("application status changed",
		zap.String("application_id", applicationID),
		zap.String("old_status", string(from)),
		zap.String("new_status", string(to)),
		zap.String("changed_by", changedBy))

	return s.storage.AppendApplicationHistory(ctx, &models.ApplicationHistory{
		ApplicationID: applicationID,
		OldStatus:     from,
		NewStatus:     to,
		ChangedBy:     changedBy,
		ChangedAt:     time.Now().UTC(),
	})
}
