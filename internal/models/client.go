package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cliente do salão, sem login próprio, vinculado ao estabelecimento
type Client struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EstablishmentID uuid.UUID `gorm:"type:uuid;index;not null" json:"establishment_id"`

	Name        string     `gorm:"size:100;not null" json:"name"`
	Email       string     `gorm:"size:100" json:"email"`
	Phone       string     `gorm:"size:20;not null" json:"phone"`
	BirthDate   *time.Time `json:"birth_date"`
	Address     string     `gorm:"size:255" json:"address"`
	Notes       string     `gorm:"type:text" json:"notes"`
	Preferences string     `gorm:"type:text" json:"preferences"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
