package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/beautyflow/beautyflow-api/internal/audit"
	domain "github.com/beautyflow/beautyflow-api/internal/domain/appointment"
	"github.com/beautyflow/beautyflow-api/internal/httperr"
)

type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	establishmentID uuid.UUID,
	userID uuid.UUID,
	appointmentID uuid.UUID,
) error {

	deleted, err := uc.repo.DeleteAppointment(ctx, establishmentID, appointmentID)
	if err != nil {
		return err
	}
	if !deleted {
		return httperr.ErrBusiness("appointment_not_found")
	}

	uc.audit.Dispatch(audit.Event{
		EstablishmentID: establishmentID,
		UserID:          &userID,
		Action:          "appointment_deleted",
		Entity:          "appointment",
		EntityID:        &appointmentID,
	})

	return nil
}
