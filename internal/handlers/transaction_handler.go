package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/beautyflow/beautyflow-api/internal/cache"
	"github.com/beautyflow/beautyflow-api/internal/httperr"
	"github.com/beautyflow/beautyflow-api/internal/models"
)

type TransactionHandler struct {
	db    *gorm.DB
	cache *cache.SummaryCache
}

func NewTransactionHandler(db *gorm.DB, summaryCache *cache.SummaryCache) *TransactionHandler {
	return &TransactionHandler{
		db:    db,
		cache: summaryCache,
	}
}

// ======================================================
// REQUESTS / RESPONSES
// ======================================================

type CreateTransactionRequest struct {
	Type           string  `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Amount         float64 `json:"amount" binding:"required,gte=0"`
	Description    string  `json:"description"`
	PaymentMethod  *string `json:"payment_method"`
	AppointmentID  *string `json:"appointment_id" binding:"omitempty,uuid"`
	ClientID       *string `json:"client_id" binding:"omitempty,uuid"`
	ProfessionalID *string `json:"professional_id" binding:"omitempty,uuid"`
}

type UpdateTransactionRequest struct {
	Type           *string  `json:"type" binding:"omitempty,oneof=INCOME EXPENSE"`
	Amount         *float64 `json:"amount" binding:"omitempty,gte=0"`
	Description    *string  `json:"description"`
	PaymentMethod  *string  `json:"payment_method"`
	ProfessionalID *string  `json:"professional_id" binding:"omitempty,uuid"`
}

type TransactionSummary struct {
	TotalIncome          float64  `json:"total_income"`
	TotalExpense         float64  `json:"total_expense"`
	Balance              float64  `json:"balance"`
	ProfessionalEarnings *float64 `json:"professional_earnings"`
}

type transactionListResponse struct {
	Transactions []models.Transaction `json:"transactions"`
	Summary      TransactionSummary   `json:"summary"`
}

// ======================================================
// LIST + SUMMARY
// ======================================================

func (h *TransactionHandler) List(c *gin.Context) {
	estID := establishmentID(c)

	startStr := queryParam(c, "start_date", "startDate")
	endStr := queryParam(c, "end_date", "endDate")
	typeStr := c.Query("type")
	profStr := queryParam(c, "professional_id", "professionalId")

	unfiltered := startStr == "" && endStr == "" && typeStr == "" && profStr == ""

	// A visão sem filtros é a chamada do dashboard; vale cachear.
	if unfiltered {
		var cached transactionListResponse
		if h.cache.Get(c.Request.Context(), estID, &cached) {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	q := h.db.
		Preload("Client").
		Preload("Professional").
		Preload("Appointment").
		Preload("Appointment.Service").
		Where("establishment_id = ?", estID)

	if startStr != "" {
		t, err := parseTimeParam(startStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_start_date", "Data inicial inválida.")
			return
		}
		q = q.Where("created_at >= ?", t)
	}
	if endStr != "" {
		t, err := parseTimeParam(endStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_end_date", "Data final inválida.")
			return
		}
		q = q.Where("created_at <= ?", t)
	}
	if typeStr != "" {
		q = q.Where("type = ?", typeStr)
	}

	var profID *uuid.UUID
	if profStr != "" {
		pid, err := uuid.Parse(profStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_professional_id", "Profissional inválido.")
			return
		}
		profID = &pid
		q = q.Where("professional_id = ?", pid)
	}

	var transactions []models.Transaction
	if err := q.Order("created_at DESC").Find(&transactions).Error; err != nil {
		httperr.Internal(c, "failed_to_list_transactions", "Erro ao listar transações.")
		return
	}

	resp := transactionListResponse{
		Transactions: transactions,
		Summary:      summarize(transactions, profID),
	}

	if unfiltered {
		h.cache.Set(c.Request.Context(), estID, resp)
	}

	c.JSON(http.StatusOK, resp)
}

func summarize(transactions []models.Transaction, profID *uuid.UUID) TransactionSummary {
	var s TransactionSummary

	for _, t := range transactions {
		switch t.Type {
		case models.TransactionIncome:
			s.TotalIncome += t.Amount
		case models.TransactionExpense:
			s.TotalExpense += t.Amount
		}
	}
	s.Balance = s.TotalIncome - s.TotalExpense

	if profID != nil {
		var earnings float64
		for _, t := range transactions {
			if t.Type == models.TransactionIncome &&
				t.ProfessionalID != nil && *t.ProfessionalID == *profID {
				earnings += t.Amount
			}
		}
		s.ProfessionalEarnings = &earnings
	}

	return s
}

// ======================================================
// CREATE
// ======================================================

func (h *TransactionHandler) Create(c *gin.Context) {
	estID := establishmentID(c)

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	transaction := models.Transaction{
		EstablishmentID: estID,
		Type:            req.Type,
		Amount:          req.Amount,
		Description:     req.Description,
		PaymentMethod:   req.PaymentMethod,
	}

	if req.AppointmentID != nil {
		id := uuid.MustParse(*req.AppointmentID)
		transaction.AppointmentID = &id
	}
	if req.ClientID != nil {
		id := uuid.MustParse(*req.ClientID)
		transaction.ClientID = &id
	}
	if req.ProfessionalID != nil {
		id := uuid.MustParse(*req.ProfessionalID)
		transaction.ProfessionalID = &id
	}

	if err := h.db.Create(&transaction).Error; err != nil {
		httperr.Internal(c, "failed_to_create_transaction", "Erro ao criar transação.")
		return
	}

	h.cache.Invalidate(c.Request.Context(), estID)

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// ======================================================
// UPDATE
// ======================================================

func (h *TransactionHandler) Update(c *gin.Context) {
	estID := establishmentID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.NotFound(c, "transaction_not_found", "Transação não encontrada.")
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var transaction models.Transaction
	if err := h.db.
		Where("id = ? AND establishment_id = ?", id, estID).
		First(&transaction).Error; err != nil {
		httperr.NotFound(c, "transaction_not_found", "Transação não encontrada.")
		return
	}

	if req.Type != nil {
		transaction.Type = *req.Type
	}
	if req.Amount != nil {
		transaction.Amount = *req.Amount
	}
	if req.Description != nil {
		transaction.Description = *req.Description
	}
	if req.PaymentMethod != nil {
		transaction.PaymentMethod = req.PaymentMethod
	}
	if req.ProfessionalID != nil {
		pid := uuid.MustParse(*req.ProfessionalID)
		transaction.ProfessionalID = &pid
	}

	if err := h.db.Save(&transaction).Error; err != nil {
		httperr.Internal(c, "failed_to_update_transaction", "Erro ao atualizar transação.")
		return
	}

	h.cache.Invalidate(c.Request.Context(), estID)

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// ======================================================
// DELETE
// ======================================================

func (h *TransactionHandler) Delete(c *gin.Context) {
	estID := establishmentID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.NotFound(c, "transaction_not_found", "Transação não encontrada.")
		return
	}

	res := h.db.
		Where("id = ? AND establishment_id = ?", id, estID).
		Delete(&models.Transaction{})

	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_transaction", "Erro ao remover transação.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "transaction_not_found", "Transação não encontrada.")
		return
	}

	h.cache.Invalidate(c.Request.Context(), estID)

	c.Status(http.StatusNoContent)
}
