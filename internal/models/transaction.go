package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TransactionIncome  = "INCOME"
	TransactionExpense = "EXPENSE"
)

type Transaction struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	EstablishmentID uuid.UUID `gorm:"type:uuid;index;not null" json:"establishment_id"`

	Type          string  `gorm:"size:10;not null" json:"type"`
	Amount        float64 `gorm:"type:decimal(10,2);not null" json:"amount"`
	Description   string  `gorm:"size:255" json:"description"`
	PaymentMethod *string `gorm:"size:50" json:"payment_method"`

	// Índice único: no máximo uma transação gerada por agendamento
	AppointmentID *uuid.UUID   `gorm:"type:uuid;uniqueIndex" json:"appointment_id"`
	Appointment   *Appointment `json:"appointment,omitempty"`

	ClientID *uuid.UUID `gorm:"type:uuid;index" json:"client_id"`
	Client   *Client    `json:"client,omitempty"`

	ProfessionalID *uuid.UUID    `gorm:"type:uuid;index" json:"professional_id"`
	Professional   *Professional `json:"professional,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
