package appointment

import (
	"context"
	"fmt"
	"log"
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

// Patch parcial. ProfessionalSet distingue "não enviado" de "remover
// profissional" (ProfessionalID nil com ProfessionalSet true).
type UpdateAppointmentInput struct {
	ClientID  *uuid.UUID
	ServiceID *uuid.UUID

	ProfessionalID  *uuid.UUID
	ProfessionalSet bool

	StartTime *time.Time
	Status    *domain.Status
	Notes     *string
}

// ======================================================
// USE CASE
// ======================================================

type UpdateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	establishmentID uuid.UUID,
	userID uuid.UUID,
	appointmentID uuid.UUID,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, establishmentID, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	previous := domain.Status(ap.Status)
	service := &ap.Service

	if in.ClientID != nil {
		client, err := uc.repo.GetClient(ctx, establishmentID, *in.ClientID)
		if err != nil {
			return nil, httperr.ErrBusiness("client_not_found")
		}
		ap.ClientID = client.ID
	}

	serviceChanged := false
	if in.ServiceID != nil && *in.ServiceID != ap.ServiceID {
		service, err = uc.repo.GetService(ctx, establishmentID, *in.ServiceID)
		if err != nil {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		ap.ServiceID = service.ID
		serviceChanged = true
	}

	if in.ProfessionalSet {
		if in.ProfessionalID == nil {
			ap.ProfessionalID = nil
		} else {
			professional, err := uc.repo.GetProfessional(ctx, establishmentID, *in.ProfessionalID)
			if err != nil {
				return nil, httperr.ErrBusiness("professional_not_found")
			}
			ap.ProfessionalID = &professional.ID
		}
	}

	// endTime acompanha startTime e a duração do serviço vigente
	if in.StartTime != nil {
		ap.StartTime = *in.StartTime
	}
	if in.StartTime != nil || serviceChanged {
		ap.EndTime = domain.EndFor(ap.StartTime, service.DurationMin)
	}

	synthesize := false
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, httperr.ErrBusiness("invalid_status")
		}
		synthesize = domain.ShouldSynthesizeTransaction(
			previous,
			*in.Status,
			ap.Transaction != nil,
		)
		domain.ApplyStatus(ap, *in.Status, time.Now().UTC())
	}

	if in.Notes != nil {
		ap.Notes = *in.Notes
	}

	// Relações preloaded ficam obsoletas após os reponteiros acima;
	// o repo persiste só as colunas e reconfere o conflito com lock.
	if err := uc.repo.SaveAppointment(ctx, ap); err != nil {
		return nil, err
	}

	updated, err := uc.repo.GetAppointment(ctx, establishmentID, appointmentID)
	if err != nil {
		return nil, err
	}

	// Receita derivada: melhor esforço. A conclusão do agendamento nunca
	// falha por causa da contabilidade.
	if synthesize {
		if err := uc.synthesizeTransaction(ctx, updated); err != nil {
			log.Printf("failed to synthesize transaction for appointment %s: %v", updated.ID, err)
		} else {
			updated, err = uc.repo.GetAppointment(ctx, establishmentID, appointmentID)
			if err != nil {
				return nil, err
			}
		}
	}

	uc.audit.Dispatch(audit.Event{
		EstablishmentID: establishmentID,
		UserID:          &userID,
		Action:          "appointment_updated",
		Entity:          "appointment",
		EntityID:        &updated.ID,
	})

	return updated, nil
}

func (uc *UpdateAppointment) synthesizeTransaction(
	ctx context.Context,
	ap *models.Appointment,
) error {

	t := &models.Transaction{
		EstablishmentID: ap.EstablishmentID,
		Type:            models.TransactionIncome,
		Amount:          domain.SynthesizedAmount(ap),
		Description: fmt.Sprintf(
			"Serviço: %s - Cliente: %s",
			ap.Service.Name,
			ap.Client.Name,
		),
		AppointmentID:  &ap.ID,
		ClientID:       &ap.ClientID,
		ProfessionalID: ap.ProfessionalID,
	}

	if err := uc.repo.CreateTransaction(ctx, t); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		EstablishmentID: ap.EstablishmentID,
		Action:          "transaction_synthesized",
		Entity:          "transaction",
		EntityID:        &t.ID,
	})

	return nil
}
