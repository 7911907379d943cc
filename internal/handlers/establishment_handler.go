package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/beautyflow/beautyflow-api/internal/httperr"
	"github.com/beautyflow/beautyflow-api/internal/models"
)

type EstablishmentHandler struct {
	db *gorm.DB
}

func NewEstablishmentHandler(db *gorm.DB) *EstablishmentHandler {
	return &EstablishmentHandler{db: db}
}

type UpdateEstablishmentRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=2"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Address *string `json:"address"`
}

func (h *EstablishmentHandler) Get(c *gin.Context) {
	estID := establishmentID(c)

	var establishment models.Establishment
	if err := h.db.First(&establishment, "id = ?", estID).Error; err != nil {
		httperr.NotFound(c, "establishment_not_found", "Estabelecimento não encontrado.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"establishment": establishment})
}

func (h *EstablishmentHandler) Update(c *gin.Context) {
	estID := establishmentID(c)

	var req UpdateEstablishmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var establishment models.Establishment
	if err := h.db.First(&establishment, "id = ?", estID).Error; err != nil {
		httperr.NotFound(c, "establishment_not_found", "Estabelecimento não encontrado.")
		return
	}

	if req.Name != nil {
		establishment.Name = *req.Name
	}
	if req.Phone != nil {
		establishment.Phone = *req.Phone
	}
	if req.Email != nil {
		establishment.Email = *req.Email
	}
	if req.Address != nil {
		establishment.Address = *req.Address
	}

	if err := h.db.Save(&establishment).Error; err != nil {
		httperr.Internal(c, "failed_to_update_establishment", "Erro ao atualizar estabelecimento.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"establishment": establishment})
}
