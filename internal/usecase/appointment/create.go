package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/beautyflow/beautyflow-api/internal/audit"
	domain "github.com/beautyflow/beautyflow-api/internal/domain/appointment"
	"github.com/beautyflow/beautyflow-api/internal/httperr"
	"github.com/beautyflow/beautyflow-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	EstablishmentID uuid.UUID
	UserID          uuid.UUID

	ClientID       uuid.UUID
	ServiceID      uuid.UUID
	ProfessionalID *uuid.UUID

	StartTime time.Time
	Notes     string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	service, err := uc.repo.GetService(ctx, in.EstablishmentID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	client, err := uc.repo.GetClient(ctx, in.EstablishmentID, in.ClientID)
	if err != nil {
		return nil, httperr.ErrBusiness("client_not_found")
	}

	if in.ProfessionalID != nil {
		if _, err := uc.repo.GetProfessional(ctx, in.EstablishmentID, *in.ProfessionalID); err != nil {
			return nil, httperr.ErrBusiness("professional_not_found")
		}
	}

	end := domain.EndFor(in.StartTime, service.DurationMin)

	ap := &models.Appointment{
		EstablishmentID: in.EstablishmentID,
		ClientID:        client.ID,
		ServiceID:       service.ID,
		ProfessionalID:  in.ProfessionalID,
		StartTime:       in.StartTime,
		EndTime:         end,
		Status:          string(domain.InitialStatus()),
		Notes:           in.Notes,
		Price:           service.Price,
	}

	// Checagem de conflito + insert na mesma transação (repo)
	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		EstablishmentID: in.EstablishmentID,
		UserID:          &in.UserID,
		Action:          "appointment_created",
		Entity:          "appointment",
		EntityID:        &ap.ID,
	})

	return uc.repo.GetAppointment(ctx, in.EstablishmentID, ap.ID)
}
