package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/beautyflow/beautyflow-api/internal/domain/appointment"
	"github.com/beautyflow/beautyflow-api/internal/httperr"
	"github.com/beautyflow/beautyflow-api/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Lookups (sempre escopados pelo estabelecimento)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetClient(
	ctx context.Context,
	establishmentID uuid.UUID,
	id uuid.UUID,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ? AND establishment_id = ?", id, establishmentID).
		First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	establishmentID uuid.UUID,
	id uuid.UUID,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND establishment_id = ?", id, establishmentID).
		First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *AppointmentGormRepository) GetProfessional(
	ctx context.Context,
	establishmentID uuid.UUID,
	id uuid.UUID,
) (*models.Professional, error) {

	var professional models.Professional
	if err := r.db.WithContext(ctx).
		Where("id = ? AND establishment_id = ?", id, establishmentID).
		First(&professional).Error; err != nil {
		return nil, err
	}
	return &professional, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	establishmentID uuid.UUID,
	id uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Preload("Professional").
		Preload("Transaction").
		Where("id = ? AND establishment_id = ?", id, establishmentID).
		First(&ap).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	establishmentID uuid.UUID,
	filter domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Preload("Professional").
		Where("establishment_id = ?", establishmentID)

	if filter.StartDate != nil {
		q = q.Where("start_time >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		q = q.Where("start_time <= ?", *filter.EndDate)
	}
	if filter.ProfessionalID != nil {
		q = q.Where("professional_id = ?", *filter.ProfessionalID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var aps []models.Appointment
	if err := q.Order("start_time ASC").Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

// assertNoTimeConflict roda dentro da transação de escrita, com lock nas
// linhas candidatas, para que duas reservas concorrentes não passem ambas
// pela checagem. Intervalos semiabertos: encostado não conflita. Um
// agendamento que não ocupa horário (cancelado, falta) não disputa o slot:
// editar um cancelado cujo horário já foi reocupado nunca conflita.
func assertNoTimeConflict(
	tx *gorm.DB,
	ap *models.Appointment,
	excludeID uuid.UUID,
) error {

	if ap.ProfessionalID == nil || !domain.Status(ap.Status).BlocksSlot() {
		return nil
	}

	q := tx.
		Model(&models.Appointment{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"establishment_id = ? AND professional_id = ? AND status NOT IN ? AND start_time < ? AND end_time > ?",
			ap.EstablishmentID,
			*ap.ProfessionalID,
			domain.NonBlockingStatuses(),
			ap.EndTime,
			ap.StartTime,
		)

	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return httperr.ErrBusiness("time_conflict")
	}
	return nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := assertNoTimeConflict(tx, ap, uuid.Nil); err != nil {
			return err
		}
		return tx.Create(ap).Error
	})
}

func (r *AppointmentGormRepository) SaveAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := assertNoTimeConflict(tx, ap, ap.ID); err != nil {
			return err
		}
		return tx.Omit("Client", "Service", "Professional", "Transaction").
			Save(ap).Error
	})
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	establishmentID uuid.UUID,
	id uuid.UUID,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Where("id = ? AND establishment_id = ?", id, establishmentID).
		Delete(&models.Appointment{})

	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// --------------------------------------------------
// Transaction (ledger)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateTransaction(
	ctx context.Context,
	t *models.Transaction,
) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
