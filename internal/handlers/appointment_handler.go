package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domain "github.com/beautyflow/beautyflow-api/internal/domain/appointment"
	"github.com/beautyflow/beautyflow-api/internal/httperr"
	uc "github.com/beautyflow/beautyflow-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create *uc.CreateAppointment
	update *uc.UpdateAppointment
	get    *uc.GetAppointment
	list   *uc.ListAppointments
	delete *uc.DeleteAppointment
}

func NewAppointmentHandler(
	create *uc.CreateAppointment,
	update *uc.UpdateAppointment,
	get *uc.GetAppointment,
	list *uc.ListAppointments,
	delete_ *uc.DeleteAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		create: create,
		update: update,
		get:    get,
		list:   list,
		delete: delete_,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientID       string    `json:"client_id" binding:"required,uuid"`
	ServiceID      string    `json:"service_id" binding:"required,uuid"`
	ProfessionalID *string   `json:"professional_id" binding:"omitempty,uuid"`
	StartTime      time.Time `json:"start_time" binding:"required"`
	Notes          string    `json:"notes"`
}

// professional_id vazio ("") remove o profissional do agendamento.
type UpdateAppointmentRequest struct {
	ClientID       *string    `json:"client_id" binding:"omitempty,uuid"`
	ServiceID      *string    `json:"service_id" binding:"omitempty,uuid"`
	ProfessionalID *string    `json:"professional_id"`
	StartTime      *time.Time `json:"start_time"`
	Status         *string    `json:"status" binding:"omitempty,oneof=PENDING CONFIRMED IN_PROGRESS COMPLETED CANCELLED NO_SHOW"`
	Notes          *string    `json:"notes"`
}

// ======================================================
// ERROR MAPPING
// ======================================================

func writeAppointmentError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "time_conflict"):
		httperr.BadRequest(c, "time_conflict", "Horário já ocupado para este profissional.")
	case httperr.IsBusiness(err, "appointment_not_found"):
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
	case httperr.IsBusiness(err, "service_not_found"):
		httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
	case httperr.IsBusiness(err, "client_not_found"):
		httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
	case httperr.IsBusiness(err, "professional_not_found"):
		httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
	case httperr.IsBusiness(err, "invalid_status"):
		httperr.BadRequest(c, "invalid_status", "Status inválido.")
	default:
		httperr.Internal(c, "appointment_error", "Erro ao processar agendamento.")
	}
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	estID := establishmentID(c)
	userID := currentUserID(c)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	in := uc.CreateAppointmentInput{
		EstablishmentID: estID,
		UserID:          userID,
		ClientID:        uuid.MustParse(req.ClientID),
		ServiceID:       uuid.MustParse(req.ServiceID),
		StartTime:       req.StartTime.UTC(),
		Notes:           req.Notes,
	}
	if req.ProfessionalID != nil {
		pid := uuid.MustParse(*req.ProfessionalID)
		in.ProfessionalID = &pid
	}

	ap, err := h.create.Execute(c.Request.Context(), in)
	if err != nil {
		writeAppointmentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"appointment": ap})
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	estID := establishmentID(c)

	var filter domain.ListFilter

	if v := queryParam(c, "start_date", "startDate"); v != "" {
		t, err := parseTimeParam(v)
		if err != nil {
			httperr.BadRequest(c, "invalid_start_date", "Data inicial inválida.")
			return
		}
		filter.StartDate = &t
	}
	if v := queryParam(c, "end_date", "endDate"); v != "" {
		t, err := parseTimeParam(v)
		if err != nil {
			httperr.BadRequest(c, "invalid_end_date", "Data final inválida.")
			return
		}
		filter.EndDate = &t
	}
	if v := queryParam(c, "professional_id", "professionalId"); v != "" {
		pid, err := uuid.Parse(v)
		if err != nil {
			httperr.BadRequest(c, "invalid_professional_id", "Profissional inválido.")
			return
		}
		filter.ProfessionalID = &pid
	}
	filter.Status = c.Query("status")

	aps, err := h.list.Execute(c.Request.Context(), estID, filter)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointments": aps})
}

// ======================================================
// GET
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	estID := establishmentID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return
	}

	ap, err := h.get.Execute(c.Request.Context(), estID, id)
	if err != nil {
		writeAppointmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointment": ap})
}

// ======================================================
// UPDATE (dispara a síntese de transação ao concluir)
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	estID := establishmentID(c)
	userID := currentUserID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var in uc.UpdateAppointmentInput

	if req.ClientID != nil {
		cid := uuid.MustParse(*req.ClientID)
		in.ClientID = &cid
	}
	if req.ServiceID != nil {
		sid := uuid.MustParse(*req.ServiceID)
		in.ServiceID = &sid
	}
	if req.ProfessionalID != nil {
		in.ProfessionalSet = true
		if *req.ProfessionalID != "" {
			pid, err := uuid.Parse(*req.ProfessionalID)
			if err != nil {
				httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
				return
			}
			in.ProfessionalID = &pid
		}
	}
	if req.StartTime != nil {
		t := req.StartTime.UTC()
		in.StartTime = &t
	}
	if req.Status != nil {
		s := domain.Status(*req.Status)
		in.Status = &s
	}
	in.Notes = req.Notes

	ap, err := h.update.Execute(c.Request.Context(), estID, userID, id, in)
	if err != nil {
		writeAppointmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointment": ap})
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	estID := establishmentID(c)
	userID := currentUserID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return
	}

	if err := h.delete.Execute(c.Request.Context(), estID, userID, id); err != nil {
		writeAppointmentError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
