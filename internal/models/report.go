package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Report is an abuse complaint filed by a user against a vacancy.
type Report struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	VacancyID string   `gorm:"type:uuid;not null;index" json:"vacancy_id"`
	Vacancy   *Vacancy `gorm:"foreignKey:VacancyID" json:"vacancy,omitempty"`

	// UserID is the directory subject of the reporting user.
	UserID string       `gorm:"not null;index" json:"user_id"`
	Reason ReportReason `gorm:"not null" json:"reason"`
	Status SystemStatus `gorm:"not null;index" json:"status"`

	Comment   string    `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.Status == "" {
		r.Status = StatusNew
	}
	return
}
