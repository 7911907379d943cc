package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Professional struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EstablishmentID uuid.UUID `gorm:"type:uuid;index;not null" json:"establishment_id"`

	Name       string  `gorm:"size:100;not null" json:"name"`
	Email      string  `gorm:"size:100" json:"email"`
	Phone      string  `gorm:"size:20;not null" json:"phone"`
	Specialty  string  `gorm:"size:100" json:"specialty"`
	Commission float64 `gorm:"type:decimal(5,2);default:0" json:"commission"`

	WorkSchedules []WorkSchedule `gorm:"foreignKey:ProfessionalID" json:"work_schedules"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Professional) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
