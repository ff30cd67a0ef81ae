// Package report handles abuse reports against vacancies: submission with a
// per-user trailing-window rate limit and duplicate detection, and resolution
// by a moderating authority.
package report

import (
	"context"
	"time"

	"jobcore/backend/internal/apperr"
	"jobcore/backend/internal/clients"
	"jobcore/backend/internal/config"
	"jobcore/backend/internal/identity"
	"jobcore/backend/internal/models"
	"jobcore/backend/internal/storage"

	"go.uber.org/zap"
)

type Service struct {
	storage      storage.Storage
	users        clients.UserDirectory
	maxPerWindow int64
	log          *zap.Logger
}

func NewService(s storage.Storage, users clients.UserDirectory, maxPerWindow int64, log *zap.Logger) *Service {
	return &Service{storage: s, users: users, maxPerWindow: maxPerWindow, log: log}
}

// RateLimitInfo is the payload of a rate-limit rejection: the configured
// maximum and the time at which the oldest in-window report ages out.
type RateLimitInfo struct {
	MaxReports int64     `json:"max_reports"`
	ResetAt    time.Time `json:"reset_at"`
}

// DuplicateReportInfo is the payload of a duplicate rejection: when and why
// the user already reported the vacancy.
type DuplicateReportInfo struct {
	Reason     models.ReportReason `json:"reason"`
	ReportedAt time.Time           `json:"reported_at"`
}

// SubmitRequest is a user's abuse complaint against a vacancy.
type SubmitRequest struct {
	VacancyID string
	Reason    models.ReportReason
	Comment   string
}

// Submit files a report. The reporting user must be approved, the vacancy
// must be enabled, the user must not hold an unresolved report against the
// same vacancy, and the count of the user's reports within the trailing
// window must be below the configured maximum.
func (s *Service) Submit(ctx context.Context, actor identity.Actor, req SubmitRequest) (*models.Report, error) {
	approved, err := s.users.IsApproved(ctx, actor.Subject)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to resolve user approval", err)
	}
	if !approved {
		s.log.Info("report rejected, user not approved", zap.String("user_id", actor.Subject))
		return nil, apperr.New(apperr.CodeValidation, "user is not approved")
	}

	if !models.ValidReportReason(req.Reason) {
		return nil, apperr.New(apperr.CodeValidation, "unknown report reason")
	}

	vacancy, err := s.storage.GetVacancyByID(ctx, req.VacancyID)
	if err != nil {
		return nil, err
	}
	if vacancy.Status != models.VacancyEnabled {
		return nil, apperr.New(apperr.CodeState, "vacancy is not active")
	}

	prior, err := s.storage.FindActiveReport(ctx, actor.Subject, vacancy.ID)
	if err != nil {
		return nil, err
	}
	if prior != nil {
		s.log.Info("duplicate report rejected",
			zap.String("user_id", actor.Subject),
			zap.String("vacancy_id", vacancy.ID))
		return nil, apperr.New(apperr.CodeConflict, "vacancy already reported by user").
			WithDetails(DuplicateReportInfo{Reason: prior.Reason, ReportedAt: prior.CreatedAt})
	}

	windowStart := time.Now().UTC().Add(-config.ReportWindow)
	count, err := s.storage.CountUserReportsSince(ctx, actor.Subject, windowStart)
	if err != nil {
		return nil, err
	}
	if count >= s.maxPerWindow {
		info := RateLimitInfo{MaxReports: s.maxPerWindow}
		oldest, err := s.storage.FindOldestUserReportSince(ctx, actor.Subject, windowStart)
		if err != nil {
			return nil, err
		}
		if oldest != nil {
			info.ResetAt = oldest.CreatedAt.Add(config.ReportWindow)
		}
		s.log.Info("report rate limit reached",
			zap.String("user_id", actor.Subject),
			zap.Int64("max_reports", s.maxPerWindow))
		return nil, apperr.New(apperr.CodeRateLimit, "user has reached the maximum number of reports").
			WithDetails(info)
	}

	newReport := &models.Report{
		VacancyID: vacancy.ID,
		UserID:    actor.Subject,
		Reason:    req.Reason,
		Status:    models.StatusNew,
		Comment:   req.Comment,
	}
	if err := s.storage.SaveReport(ctx, newReport); err != nil {
		return nil, err
	}

	_ = s.storage.PublishNotification(ctx, models.InAppNotification(
		"", vacancy.RecruiterID, vacancy.ID, "VACANCY_REPORTED",
		map[string]string{
			"vacancyTitle": vacancy.Title,
			"reason":       string(req.Reason),
		}))

	return newReport, nil
}

// Resolve updates a report's status. Setting the status it already has is
// rejected so resolution stays an actual state change.
func (s *Service) Resolve(ctx context.Context, reportID string, newStatus models.SystemStatus) error {
	r, err := s.storage.GetReportByID(ctx, reportID)
	if err != nil {
		return err
	}
	if r.Status == newStatus {
		return apperr.New(apperr.CodeState, "report already has the requested status").
			WithDetails(map[string]any{"status": r.Status})
	}

	r.Status = newStatus
	return s.storage.SaveReport(ctx, r)
}

// ReportRow is one row of the moderation listing, with the reporting user's
// display name resolved through the directory.
type ReportRow struct {
	Report      models.Report `json:"report"`
	DisplayName string        `json:"display_name,omitempty"`
}

// Reports lists reports filtered by status for moderators.
func (s *Service) Reports(ctx context.Context, actor identity.Actor, status models.SystemStatus, page, size int) (models.Page[ReportRow], error) {
	var empty models.Page[ReportRow]

	reports, total, err := s.storage.ListReportsByStatus(ctx, status, page, size)
	if err != nil {
		return empty, err
	}

	userIDs := make([]string, 0, len(reports))
	seen := map[string]bool{}
	for _, r := range reports {
		if !seen[r.UserID] {
			seen[r.UserID] = true
			userIDs = append(userIDs, r.UserID)
		}
	}

	names, err := s.users.DisplayNames(ctx, userIDs, actor.Email)
	if err != nil {
		s.log.Warn("failed to resolve display names", zap.Error(err))
		names = map[string]string{}
	}

	rows := make([]ReportRow, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, ReportRow{Report: r, DisplayName: names[r.UserID]})
	}
	return models.NewPage(rows, total, page, size), nil
}

// MyReports lists the reports the acting user has filed.
func (s *Service) MyReports(ctx context.Context, actor identity.Actor, page, size int) (models.Page[models.Report], error) {
	reports, total, err := s.storage.ListReportsByUser(ctx, actor.Subject, page, size)
	if err != nil {
		return models.Page[models.Report]{}, err
	}
	return models.NewPage(reports, total, page, size), nil
}

// Report returns a single report with its vacancy.
func (s *Service) Report(ctx context.Context, reportID string) (*models.Report, error) {
	return s.storage.GetReportByID(ctx, reportID)
}
