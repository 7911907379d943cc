package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClientHistory struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID uuid.UUID `gorm:"type:uuid;index;not null" json:"client_id"`

	Type        string `gorm:"size:20;not null" json:"type"`
	Title       string `gorm:"size:100" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`

	CreatedBy uuid.UUID `gorm:"type:uuid" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (h *ClientHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}
