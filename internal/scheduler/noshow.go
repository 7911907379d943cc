package scheduler

import (
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/beautyflow/beautyflow-api/internal/audit"
	domain "github.com/beautyflow/beautyflow-api/internal/domain/appointment"
	"github.com/beautyflow/beautyflow-api/internal/models"
)

// Janela de tolerância antes de marcar falta automaticamente.
const noShowGrace = 24 * time.Hour

// NoShowSweeper marca como NO_SHOW agendamentos PENDING/CONFIRMED cujo
// horário terminou há mais de 24h e ninguém atualizou. Nunca gera
// transação: só a conclusão explícita gera receita.
type NoShowSweeper struct {
	db    *gorm.DB
	audit *audit.Logger
	cron  *cron.Cron
}

func NewNoShowSweeper(db *gorm.DB, auditLogger *audit.Logger) *NoShowSweeper {
	return &NoShowSweeper{
		db:    db,
		audit: auditLogger,
		cron:  cron.New(),
	}
}

func (s *NoShowSweeper) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.Sweep); err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("no-show sweeper scheduled: %s", spec)
	return nil
}

func (s *NoShowSweeper) Stop() {
	s.cron.Stop()
}

func (s *NoShowSweeper) Sweep() {
	now := time.Now().UTC()
	cutoff := now.Add(-noShowGrace)

	type candidate struct {
		ID              uuid.UUID
		EstablishmentID uuid.UUID
	}

	var swept []candidate
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Model(&models.Appointment{}).
			Select("id", "establishment_id").
			Where(
				"status IN ? AND end_time < ?",
				[]string{string(domain.StatusPending), string(domain.StatusConfirmed)},
				cutoff,
			).
			Find(&swept).Error; err != nil {
			return err
		}

		if len(swept) == 0 {
			return nil
		}

		ids := make([]uuid.UUID, len(swept))
		for i, c := range swept {
			ids[i] = c.ID
		}

		return tx.
			Model(&models.Appointment{}).
			Where("id IN ?", ids).
			Updates(map[string]any{
				"status":       string(domain.StatusNoShow),
				"cancelled_at": now,
			}).Error
	})
	if err != nil {
		log.Printf("no-show sweep failed: %v", err)
		return
	}
	if len(swept) == 0 {
		return
	}

	// Um registro de auditoria por estabelecimento afetado
	perEstablishment := map[uuid.UUID]int{}
	for _, c := range swept {
		perEstablishment[c.EstablishmentID]++
	}
	for estID, count := range perEstablishment {
		if err := s.audit.Log(
			estID,
			nil,
			"appointments_swept_no_show",
			"appointment",
			nil,
			map[string]int{"count": count},
		); err != nil {
			log.Printf("no-show sweep audit failed: %v", err)
		}
	}

	log.Printf("no-show sweep: %d appointments flagged", len(swept))
}
