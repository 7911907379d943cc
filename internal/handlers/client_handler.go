package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/beautyflow/beautyflow-api/internal/httperr"
	"github.com/beautyflow/beautyflow-api/internal/models"
)

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateClientRequest struct {
	Name        string  `json:"name" binding:"required,min=2"`
	Email       string  `json:"email" binding:"omitempty,email"`
	Phone       string  `json:"phone" binding:"required,min=10"`
	BirthDate   *string `json:"birth_date"`
	Address     string  `json:"address"`
	Notes       string  `json:"notes"`
	Preferences string  `json:"preferences"`
}

type UpdateClientRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Phone       *string `json:"phone" binding:"omitempty,min=10"`
	BirthDate   *string `json:"birth_date"`
	Address     *string `json:"address"`
	Notes       *string `json:"notes"`
	Preferences *string `json:"preferences"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *ClientHandler) List(c *gin.Context) {
	estID := establishmentID(c)

	var clients []models.Client
	if err := h.db.
		Where("establishment_id = ?", estID).
		Order("created_at DESC").
		Find(&clients).Error; err != nil {
		httperr.Internal(c, "failed_to_list_clients", "Erro ao listar clientes.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"clients": clients})
}

func (h *ClientHandler) Create(c *gin.Context) {
	estID := establishmentID(c)

	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	client := models.Client{
		EstablishmentID: estID,
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Address:         req.Address,
		Notes:           req.Notes,
		Preferences:     req.Preferences,
	}

	if req.BirthDate != nil && *req.BirthDate != "" {
		bd, err := parseTimeParam(*req.BirthDate)
		if err != nil {
			httperr.BadRequest(c, "invalid_birth_date", "Data de nascimento inválida.")
			return
		}
		client.BirthDate = &bd
	}

	if err := h.db.Create(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_create_client", "Erro ao criar cliente.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"client": client})
}

func (h *ClientHandler) Get(c *gin.Context) {
	estID := establishmentID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
		return
	}

	var client models.Client
	if err := h.db.
		Where("id = ? AND establishment_id = ?", id, estID).
		First(&client).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
		return
	}

	var appointments []models.Appointment
	h.db.
		Preload("Service").
		Preload("Professional").
		Where("client_id = ?", client.ID).
		Order("start_time DESC").
		Limit(10).
		Find(&appointments)

	var history []models.ClientHistory
	h.db.
		Where("client_id = ?", client.ID).
		Order("created_at DESC").
		Find(&history)

	c.JSON(http.StatusOK, gin.H{
		"client":       client,
		"appointments": appointments,
		"history":      history,
	})
}

func (h *ClientHandler) Update(c *gin.Context) {
	estID := establishmentID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
		return
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var client models.Client
	if err := h.db.
		Where("id = ? AND establishment_id = ?", id, estID).
		First(&client).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
		return
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Email != nil {
		client.Email = *req.Email
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.BirthDate != nil {
		if *req.BirthDate == "" {
			client.BirthDate = nil
		} else {
			bd, err := parseTimeParam(*req.BirthDate)
			if err != nil {
				httperr.BadRequest(c, "invalid_birth_date", "Data de nascimento inválida.")
				return
			}
			client.BirthDate = &bd
		}
	}
	if req.Address != nil {
		client.Address = *req.Address
	}
	if req.Notes != nil {
		client.Notes = *req.Notes
	}
	if req.Preferences != nil {
		client.Preferences = *req.Preferences
	}

	if err := h.db.Save(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_update_client", "Erro ao atualizar cliente.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"client": client})
}

func (h *ClientHandler) Delete(c *gin.Context) {
	estID := establishmentID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
		return
	}

	res := h.db.
		Where("id = ? AND establishment_id = ?", id, estID).
		Delete(&models.Client{})

	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_client", "Erro ao remover cliente.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
		return
	}

	c.Status(http.StatusNoContent)
}
