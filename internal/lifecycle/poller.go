// Package lifecycle reconciles vacancy status against elapsed time and
// unresolved-report volume. Two independent sweeps run on a fixed interval:
// activation of freshly created vacancies and demotion/expiry of active ones.
package lifecycle

import (
	"context"
	"time"

	"jobcore/backend/internal/config"
	"jobcore/backend/internal/models"
	"jobcore/backend/internal/storage"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type Poller struct {
	storage        storage.Storage
	maxReportCount int64
	ttl            time.Duration
	log            *zap.Logger

	cron *cron.Cron
}

func NewPoller(s storage.Storage, maxReportCount int64, ttl time.Duration, log *zap.Logger) *Poller {
	return &Poller{
		storage:        s,
		maxReportCount: maxReportCount,
		ttl:            ttl,
		log:            log,
	}
}

// Start schedules both sweeps on the given cron spec and begins polling.
func (p *Poller) Start(spec string) error {
	p.cron = cron.New()
	if _, err := p.cron.AddFunc(spec, func() {
		ctx := context.Background()
		if err := p.SweepActivation(ctx); err != nil {
			p.log.Error("activation sweep failed", zap.Error(err))
		}
		if err := p.SweepDemotion(ctx); err != nil {
			p.log.Error("demotion sweep failed", zap.Error(err))
		}
	}); err != nil {
		return err
	}
	p.cron.Start()
	return nil
}

// Stop halts polling and waits for a running pass to finish.
func (p *Poller) Stop() {
	if p.cron != nil {
		<-p.cron.Stop().Done()
	}
}

// SweepActivation promotes vacancies that are DISABLED and waiting for
// approval to ENABLED once the activation delay has elapsed, unless their
// unresolved-report count has reached the threshold.
func (p *Poller) SweepActivation(ctx context.Context) error {
	vacancies, err := p.storage.ListVacanciesAwaitingActivation(ctx)
	if err != nil {
		return err
	}
	if len(vacancies) == 0 {
		p.log.Debug("activation sweep: no vacancies waiting")
		return nil
	}

	now := time.Now().UTC()
	var changed []*models.Vacancy
	for _, v := range vacancies {
		if v.NotResolvedReports >= p.maxReportCount {
			p.log.Info("activation skipped, report overload",
				zap.String("vacancy_id", v.ID),
				zap.Int64("not_resolved_reports", v.NotResolvedReports))
			continue
		}
		if v.LastStatusChangeAt.Add(config.ActivationDelay).Before(now) {
			v.Status = models.VacancyEnabled
			v.WaitingForApproval = false
			changed = append(changed, v)
			p.log.Info("vacancy enabled", zap.String("vacancy_id", v.ID))
		}
	}

	if len(changed) == 0 {
		return nil
	}
	return p.storage.SaveVacancies(ctx, changed)
}

// SweepDemotion pulls active vacancies that exceed the report threshold
// (TEMP_DISABLED) or their time-to-live (TIME_EXPIRED). Both conditions are
// checked per row; when both hold, expiry is evaluated second and wins.
func (p *Poller) SweepDemotion(ctx context.Context) error {
	vacancies, err := p.storage.ListActiveVacancies(ctx)
	if err != nil {
		return err
	}
	if len(vacancies) == 0 {
		p.log.Debug("demotion sweep: no active vacancies")
		return nil
	}

	now := time.Now().UTC()
	var changed []*models.Vacancy
	for _, v := range vacancies {
		flagged := false

		if v.NotResolvedReports >= p.maxReportCount {
			v.Status = models.VacancyTempDisabled
			v.WaitingForApproval = true
			flagged = true
			p.log.Info("vacancy temporarily disabled, report overload",
				zap.String("vacancy_id", v.ID),
				zap.Int64("not_resolved_reports", v.NotResolvedReports))
		}

		if v.LastStatusChangeAt.Add(p.ttl).Before(now) {
			v.Status = models.VacancyTimeExpired
			v.WaitingForApproval = true
			flagged = true
			p.log.Info("vacancy expired", zap.String("vacancy_id", v.ID))
		}

		if flagged {
			changed = append(changed, v)
		}
	}

	if len(changed) == 0 {
		return nil
	}
	return p.storage.SaveVacancies(ctx, changed)
}
