package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Vacancy represents a job posting created by a recruiter.
// It is subject to an approval/expiry lifecycle driven by the lifecycle poller.
type Vacancy struct {
	// ID is the unique identifier of the vacancy (UUID).
	ID string `gorm:"type:uuid;primaryKey" json:"id"`
	// CompanyID is the owning company in the external directory.
	CompanyID string `gorm:"type:uuid;not null;index" json:"company_id"`
	// RecruiterID is the directory subject of the recruiter who created the posting.
	RecruiterID string `gorm:"not null;index" json:"recruiter_id"`
	// CategoryID references the vacancy's classification.
	CategoryID string    `gorm:"type:uuid;not null" json:"category_id"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	Title                  string `gorm:"not null;size:100" json:"title"`
	Description            string `gorm:"type:text;not null" json:"description"`
	RequirementsMustHave   string `gorm:"type:text" json:"requirements_must_have"`
	RequirementsNiceToHave string `gorm:"type:text" json:"requirements_nice_to_have"`

	ContractType  ContractType  `gorm:"size:50" json:"contract_type"`
	WorkMode      WorkMode      `gorm:"size:50" json:"work_mode"`
	PositionLevel PositionLevel `gorm:"size:50" json:"position_level"`
	Workload      Workload      `gorm:"size:50" json:"workload"`

	Location   string         `json:"location"`
	SalaryFrom *int           `json:"salary_from,omitempty"`
	SalaryTo   *int           `json:"salary_to,omitempty"`
	Tags       pq.StringArray `gorm:"type:text[]" json:"tags,omitempty"`

	Status VacancyStatus `gorm:"size:50;not null;index" json:"status"`
	// WaitingForApproval marks vacancies the poller still has to act on.
	WaitingForApproval bool `gorm:"not null" json:"waiting_for_approval"`

	// NotResolvedReports is derived by a subquery over the reports table
	// (count of reports whose status is not RESOLVED). Never written.
	NotResolvedReports int64 `gorm:"->;-:migration" json:"not_resolved_reports"`

	// LastStatusChangeAt anchors both the activation delay and the expiry window.
	LastStatusChangeAt time.Time `gorm:"not null" json:"last_status_change_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Reports []Report `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (v *Vacancy) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return
}

// Category is a simple named classification for vacancies.
type Category struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null;size:50;uniqueIndex" json:"name"`
	Description string    `gorm:"type:text;not null" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}
