package appointment

import (
	"time"

	"github.com/beautyflow/beautyflow-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// ApplyStatus grava o novo status e carimba os marcos de conclusão e
// cancelamento. As transições são deliberadamente permissivas: qualquer
// status do conjunto fechado pode sobrescrever qualquer outro.
func ApplyStatus(ap *models.Appointment, next Status, now time.Time) {
	ap.Status = string(next)

	switch next {
	case StatusCompleted:
		if ap.CompletedAt == nil {
			ap.CompletedAt = &now
		}
	case StatusCancelled, StatusNoShow:
		if ap.CancelledAt == nil {
			ap.CancelledAt = &now
		}
	}
}

// ShouldSynthesizeTransaction decide se a conclusão deve gerar a receita:
// só na primeira entrada em COMPLETED e só se nenhuma transação já estiver
// vinculada ao agendamento.
func ShouldSynthesizeTransaction(previous, next Status, hasTransaction bool) bool {
	return next == StatusCompleted &&
		previous != StatusCompleted &&
		!hasTransaction
}

// SynthesizedAmount congela o valor da receita: preço do agendamento,
// com fallback para o preço atual do serviço.
func SynthesizedAmount(ap *models.Appointment) float64 {
	if ap.Price > 0 {
		return ap.Price
	}
	return ap.Service.Price
}
