package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/beautyflow/beautyflow-api/internal/httperr"
	"github.com/beautyflow/beautyflow-api/internal/models"
)

// Histórico de atendimento do cliente (anotações, reclamações, elogios).
type ClientHistoryHandler struct {
	db *gorm.DB
}

func NewClientHistoryHandler(db *gorm.DB) *ClientHistoryHandler {
	return &ClientHistoryHandler{db: db}
}

type CreateHistoryRequest struct {
	Type        string `json:"type" binding:"required,oneof=NOTE COMPLAINT PRAISE WARNING"`
	Title       string `json:"title"`
	Description string `json:"description" binding:"required,min=1"`
}

type UpdateHistoryRequest struct {
	Type        *string `json:"type" binding:"omitempty,oneof=NOTE COMPLAINT PRAISE WARNING"`
	Title       *string `json:"title"`
	Description *string `json:"description" binding:"omitempty,min=1"`
}

// findClient devolve o cliente apenas se ele pertencer ao tenant.
func (h *ClientHistoryHandler) findClient(c *gin.Context) (*models.Client, bool) {
	estID := establishmentID(c)

	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
		return nil, false
	}

	var client models.Client
	if err := h.db.
		Where("id = ? AND establishment_id = ?", clientID, estID).
		First(&client).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
		return nil, false
	}
	return &client, true
}

func (h *ClientHistoryHandler) List(c *gin.Context) {
	client, ok := h.findClient(c)
	if !ok {
		return
	}

	var history []models.ClientHistory
	if err := h.db.
		Where("client_id = ?", client.ID).
		Order("created_at DESC").
		Find(&history).Error; err != nil {
		httperr.Internal(c, "failed_to_list_history", "Erro ao listar histórico.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": history})
}

func (h *ClientHistoryHandler) Create(c *gin.Context) {
	client, ok := h.findClient(c)
	if !ok {
		return
	}

	var req CreateHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	entry := models.ClientHistory{
		ClientID:    client.ID,
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		CreatedBy:   currentUserID(c),
	}

	if err := h.db.Create(&entry).Error; err != nil {
		httperr.Internal(c, "failed_to_create_history", "Erro ao criar histórico.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"history": entry})
}

func (h *ClientHistoryHandler) Update(c *gin.Context) {
	client, ok := h.findClient(c)
	if !ok {
		return
	}

	historyID, err := uuid.Parse(c.Param("historyId"))
	if err != nil {
		httperr.NotFound(c, "history_not_found", "Histórico não encontrado.")
		return
	}

	var req UpdateHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var entry models.ClientHistory
	if err := h.db.
		Where("id = ? AND client_id = ?", historyID, client.ID).
		First(&entry).Error; err != nil {
		httperr.NotFound(c, "history_not_found", "Histórico não encontrado.")
		return
	}

	if req.Type != nil {
		entry.Type = *req.Type
	}
	if req.Title != nil {
		entry.Title = *req.Title
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}

	if err := h.db.Save(&entry).Error; err != nil {
		httperr.Internal(c, "failed_to_update_history", "Erro ao atualizar histórico.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": entry})
}

func (h *ClientHistoryHandler) Delete(c *gin.Context) {
	client, ok := h.findClient(c)
	if !ok {
		return
	}

	historyID, err := uuid.Parse(c.Param("historyId"))
	if err != nil {
		httperr.NotFound(c, "history_not_found", "Histórico não encontrado.")
		return
	}

	res := h.db.
		Where("id = ? AND client_id = ?", historyID, client.ID).
		Delete(&models.ClientHistory{})

	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_history", "Erro ao remover histórico.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "history_not_found", "Histórico não encontrado.")
		return
	}

	c.Status(http.StatusNoContent)
}
