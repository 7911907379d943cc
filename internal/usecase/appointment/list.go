package appointment

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/beautyflow/beautyflow-api/internal/domain/appointment"
	"github.com/beautyflow/beautyflow-api/internal/models"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	establishmentID uuid.UUID,
	filter domain.ListFilter,
) ([]models.Appointment, error) {

	return uc.repo.ListAppointments(ctx, establishmentID, filter)
}
