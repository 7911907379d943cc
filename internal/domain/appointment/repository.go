package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/beautyflow/beautyflow-api/internal/models"
)

type ListFilter struct {
	StartDate      *time.Time
	EndDate        *time.Time
	ProfessionalID *uuid.UUID
	Status         string
}

// Repository é o contrato de persistência dos fluxos de agendamento.
// Todas as leituras são filtradas pelo estabelecimento; um id de outro
// tenant se comporta como inexistente. CreateAppointment e SaveAppointment
// executam a checagem de conflito e a escrita na MESMA transação, com lock,
// e devolvem httperr.ErrBusiness("time_conflict") quando o horário está
// ocupado.
type Repository interface {
	GetClient(
		ctx context.Context,
		establishmentID uuid.UUID,
		id uuid.UUID,
	) (*models.Client, error)

	GetService(
		ctx context.Context,
		establishmentID uuid.UUID,
		id uuid.UUID,
	) (*models.Service, error)

	GetProfessional(
		ctx context.Context,
		establishmentID uuid.UUID,
		id uuid.UUID,
	) (*models.Professional, error)

	GetAppointment(
		ctx context.Context,
		establishmentID uuid.UUID,
		id uuid.UUID,
	) (*models.Appointment, error)

	ListAppointments(
		ctx context.Context,
		establishmentID uuid.UUID,
		filter ListFilter,
	) ([]models.Appointment, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	SaveAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		establishmentID uuid.UUID,
		id uuid.UUID,
	) (bool, error)

	CreateTransaction(
		ctx context.Context,
		t *models.Transaction,
	) error
}
