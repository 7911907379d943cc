package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/beautyflow/beautyflow-api/internal/httperr"
	"github.com/beautyflow/beautyflow-api/internal/models"
)

type ProfessionalHandler struct {
	db *gorm.DB
}

func NewProfessionalHandler(db *gorm.DB) *ProfessionalHandler {
	return &ProfessionalHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateProfessionalRequest struct {
	Name       string  `json:"name" binding:"required,min=2"`
	Email      string  `json:"email" binding:"omitempty,email"`
	Phone      string  `json:"phone" binding:"required,min=10"`
	Specialty  string  `json:"specialty"`
	Commission float64 `json:"commission" binding:"gte=0,lte=100"`
}

type UpdateProfessionalRequest struct {
	Name       *string  `json:"name" binding:"omitempty,min=2"`
	Email      *string  `json:"email" binding:"omitempty,email"`
	Phone      *string  `json:"phone" binding:"omitempty,min=10"`
	Specialty  *string  `json:"specialty"`
	Commission *float64 `json:"commission" binding:"omitempty,gte=0,lte=100"`
}

type ScheduleEntry struct {
	Weekday   int    `json:"weekday" binding:"gte=0,lte=6"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Active    bool   `json:"active"`
}

type UpdateSchedulesRequest struct {
	Schedules []ScheduleEntry `json:"schedules" binding:"required,dive"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *ProfessionalHandler) List(c *gin.Context) {
	estID := establishmentID(c)

	var professionals []models.Professional
	if err := h.db.
		Preload("WorkSchedules").
		Where("establishment_id = ?", estID).
		Order("created_at DESC").
		Find(&professionals).Error; err != nil {
		httperr.Internal(c, "failed_to_list_professionals", "Erro ao listar profissionais.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"professionals": professionals})
}

func (h *ProfessionalHandler) Create(c *gin.Context) {
	estID := establishmentID(c)

	var req CreateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	professional := models.Professional{
		EstablishmentID: estID,
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Specialty:       req.Specialty,
		Commission:      req.Commission,
	}

	if err := h.db.Create(&professional).Error; err != nil {
		httperr.Internal(c, "failed_to_create_professional", "Erro ao criar profissional.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"professional": professional})
}

func (h *ProfessionalHandler) Get(c *gin.Context) {
	estID := establishmentID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
		return
	}

	var professional models.Professional
	if err := h.db.
		Preload("WorkSchedules").
		Where("id = ? AND establishment_id = ?", id, estID).
		First(&professional).Error; err != nil {
		httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"professional": professional})
}

func (h *ProfessionalHandler) Update(c *gin.Context) {
	estID := establishmentID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
		return
	}

	var req UpdateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var professional models.Professional
	if err := h.db.
		Where("id = ? AND establishment_id = ?", id, estID).
		First(&professional).Error; err != nil {
		httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
		return
	}

	if req.Name != nil {
		professional.Name = *req.Name
	}
	if req.Email != nil {
		professional.Email = *req.Email
	}
	if req.Phone != nil {
		professional.Phone = *req.Phone
	}
	if req.Specialty != nil {
		professional.Specialty = *req.Specialty
	}
	if req.Commission != nil {
		professional.Commission = *req.Commission
	}

	if err := h.db.Save(&professional).Error; err != nil {
		httperr.Internal(c, "failed_to_update_professional", "Erro ao atualizar profissional.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"professional": professional})
}

func (h *ProfessionalHandler) Delete(c *gin.Context) {
	estID := establishmentID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
		return
	}

	res := h.db.
		Where("id = ? AND establishment_id = ?", id, estID).
		Delete(&models.Professional{})

	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_professional", "Erro ao remover profissional.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
		return
	}

	c.Status(http.StatusNoContent)
}

// UpdateSchedules substitui a semana inteira de expediente de uma vez.
func (h *ProfessionalHandler) UpdateSchedules(c *gin.Context) {
	estID := establishmentID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
		return
	}

	var req UpdateSchedulesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var professional models.Professional
	if err := h.db.
		Where("id = ? AND establishment_id = ?", id, estID).
		First(&professional).Error; err != nil {
		httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("professional_id = ?", professional.ID).
			Delete(&models.WorkSchedule{}).Error; err != nil {
			return err
		}

		for _, entry := range req.Schedules {
			ws := models.WorkSchedule{
				ProfessionalID: professional.ID,
				Weekday:        entry.Weekday,
				StartTime:      entry.StartTime,
				EndTime:        entry.EndTime,
				Active:         entry.Active,
			}
			if err := tx.Create(&ws).Error; err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		httperr.Internal(c, "failed_to_update_schedules", "Erro ao atualizar expediente.")
		return
	}

	var schedules []models.WorkSchedule
	h.db.
		Where("professional_id = ?", professional.ID).
		Order("weekday ASC").
		Find(&schedules)

	c.JSON(http.StatusOK, gin.H{"work_schedules": schedules})
}
