package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HistoryActorSystem is recorded as the changing actor for automatic
// transitions (initial submission, re-application reset).
const HistoryActorSystem = "system"

// Application is a candidate's submission against one vacancy.
// Its status is mutated only through validated workflow transitions.
type Application struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	VacancyID string   `gorm:"type:uuid;not null;index:idx_vacancy_candidate,unique" json:"vacancy_id"`
	Vacancy   *Vacancy `gorm:"foreignKey:VacancyID;constraint:OnDelete:CASCADE" json:"vacancy,omitempty"`

	// CandidateID is the directory subject of the applying candidate.
	CandidateID string `gorm:"not null;index:idx_vacancy_candidate,unique" json:"candidate_id"`
	// CVID references the submitted document in the CV service.
	CVID string `gorm:"type:uuid;not null" json:"cv_id"`

	Status      SystemStatus `gorm:"not null" json:"status"`
	CoverLetter string       `gorm:"type:text" json:"cover_letter,omitempty"`
	AppliedAt   time.Time    `gorm:"not null" json:"applied_at"`

	History []ApplicationHistory `gorm:"constraint:OnDelete:CASCADE" json:"history,omitempty"`
}

func (a *Application) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return
}

// ApplicationHistory is an immutable record of one status change.
// Rows are appended once per transition and never updated or deleted on their own.
type ApplicationHistory struct {
	ID            string       `gorm:"type:uuid;primaryKey" json:"id"`
	ApplicationID string       `gorm:"type:uuid;not null;index" json:"application_id"`
	OldStatus     SystemStatus `gorm:"not null" json:"old_status"`
	NewStatus     SystemStatus `gorm:"not null" json:"new_status"`
	// ChangedBy is the acting user's subject, or "system" for automatic transitions.
	ChangedBy string    `gorm:"not null" json:"changed_by"`
	ChangedAt time.Time `gorm:"not null" json:"changed_at"`
}

func (h *ApplicationHistory) BeforeCreate(tx *gorm.DB) (err error) {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	return
}
