package appointment

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	domain "github.com/beautyflow/beautyflow-api/internal/domain/appointment"
	"github.com/beautyflow/beautyflow-api/internal/httperr"
	"github.com/beautyflow/beautyflow-api/internal/models"
)

// ======================================================
// FAKE REPOSITORY
// ======================================================

// fakeRepo reproduz em memória o contrato do repositório: leituras
// filtradas por estabelecimento e checagem de conflito na escrita.
type fakeRepo struct {
	clients       map[uuid.UUID]models.Client
	services      map[uuid.UUID]models.Service
	professionals map[uuid.UUID]models.Professional
	appointments  map[uuid.UUID]models.Appointment
	transactions  map[uuid.UUID]models.Transaction

	txErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		clients:       map[uuid.UUID]models.Client{},
		services:      map[uuid.UUID]models.Service{},
		professionals: map[uuid.UUID]models.Professional{},
		appointments:  map[uuid.UUID]models.Appointment{},
		transactions:  map[uuid.UUID]models.Transaction{},
	}
}

func (r *fakeRepo) GetClient(_ context.Context, est, id uuid.UUID) (*models.Client, error) {
	c, ok := r.clients[id]
	if !ok || c.EstablishmentID != est {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (r *fakeRepo) GetService(_ context.Context, est, id uuid.UUID) (*models.Service, error) {
	s, ok := r.services[id]
	if !ok || s.EstablishmentID != est {
		return nil, gorm.ErrRecordNotFound
	}
	return &s, nil
}

func (r *fakeRepo) GetProfessional(_ context.Context, est, id uuid.UUID) (*models.Professional, error) {
	p, ok := r.professionals[id]
	if !ok || p.EstablishmentID != est {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r *fakeRepo) GetAppointment(_ context.Context, est, id uuid.UUID) (*models.Appointment, error) {
	ap, ok := r.appointments[id]
	if !ok || ap.EstablishmentID != est {
		return nil, gorm.ErrRecordNotFound
	}

	ap.Client = r.clients[ap.ClientID]
	ap.Service = r.services[ap.ServiceID]
	if ap.ProfessionalID != nil {
		if p, ok := r.professionals[*ap.ProfessionalID]; ok {
			ap.Professional = &p
		}
	}
	ap.Transaction = nil
	for _, t := range r.transactions {
		if t.AppointmentID != nil && *t.AppointmentID == ap.ID {
			tx := t
			ap.Transaction = &tx
			break
		}
	}

	return &ap, nil
}

func (r *fakeRepo) ListAppointments(_ context.Context, est uuid.UUID, filter domain.ListFilter) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.EstablishmentID != est {
			continue
		}
		if filter.StartDate != nil && ap.StartTime.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && ap.StartTime.After(*filter.EndDate) {
			continue
		}
		if filter.ProfessionalID != nil &&
			(ap.ProfessionalID == nil || *ap.ProfessionalID != *filter.ProfessionalID) {
			continue
		}
		if filter.Status != "" && ap.Status != filter.Status {
			continue
		}
		out = append(out, ap)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out, nil
}

func (r *fakeRepo) hasConflict(ap *models.Appointment, excludeID uuid.UUID) bool {
	if ap.ProfessionalID == nil || !domain.Status(ap.Status).BlocksSlot() {
		return false
	}
	for _, other := range r.appointments {
		if other.ID == excludeID ||
			other.EstablishmentID != ap.EstablishmentID ||
			other.ProfessionalID == nil ||
			*other.ProfessionalID != *ap.ProfessionalID {
			continue
		}
		if !domain.Status(other.Status).BlocksSlot() {
			continue
		}
		if domain.Overlaps(ap.StartTime, ap.EndTime, other.StartTime, other.EndTime) {
			return true
		}
	}
	return false
}

func (r *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	if r.hasConflict(ap, uuid.Nil) {
		return httperr.ErrBusiness("time_conflict")
	}
	if ap.ID == uuid.Nil {
		ap.ID = uuid.New()
	}
	r.appointments[ap.ID] = *ap
	return nil
}

func (r *fakeRepo) SaveAppointment(_ context.Context, ap *models.Appointment) error {
	if _, ok := r.appointments[ap.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	if r.hasConflict(ap, ap.ID) {
		return httperr.ErrBusiness("time_conflict")
	}
	stored := *ap
	stored.Client = models.Client{}
	stored.Service = models.Service{}
	stored.Professional = nil
	stored.Transaction = nil
	r.appointments[ap.ID] = stored
	return nil
}

func (r *fakeRepo) DeleteAppointment(_ context.Context, est, id uuid.UUID) (bool, error) {
	ap, ok := r.appointments[id]
	if !ok || ap.EstablishmentID != est {
		return false, nil
	}
	delete(r.appointments, id)
	return true, nil
}

func (r *fakeRepo) CreateTransaction(_ context.Context, t *models.Transaction) error {
	if r.txErr != nil {
		return r.txErr
	}
	if t.AppointmentID != nil {
		for _, existing := range r.transactions {
			if existing.AppointmentID != nil && *existing.AppointmentID == *t.AppointmentID {
				return errors.New("duplicate key value violates unique constraint")
			}
		}
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	r.transactions[t.ID] = *t
	return nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// ======================================================
// FIXTURE
// ======================================================

type fixture struct {
	repo *fakeRepo

	est      uuid.UUID
	otherEst uuid.UUID
	userID   uuid.UUID

	client       models.Client
	service      models.Service
	professional models.Professional
}

func newFixture() *fixture {
	f := &fixture{
		repo:     newFakeRepo(),
		est:      uuid.New(),
		otherEst: uuid.New(),
		userID:   uuid.New(),
	}

	f.client = models.Client{ID: uuid.New(), EstablishmentID: f.est, Name: "Ana Souza", Phone: "11 99999-0001"}
	f.service = models.Service{ID: uuid.New(), EstablishmentID: f.est, Name: "Corte Feminino", DurationMin: 60, Price: 80, Active: true}
	f.professional = models.Professional{ID: uuid.New(), EstablishmentID: f.est, Name: "Maria Silva", Phone: "11 99999-0002"}

	f.repo.clients[f.client.ID] = f.client
	f.repo.services[f.service.ID] = f.service
	f.repo.professionals[f.professional.ID] = f.professional

	return f
}

func (f *fixture) addAppointment(t *testing.T, start time.Time, status domain.Status, professionalID *uuid.UUID) uuid.UUID {
	t.Helper()

	ap := models.Appointment{
		ID:              uuid.New(),
		EstablishmentID: f.est,
		ClientID:        f.client.ID,
		ServiceID:       f.service.ID,
		ProfessionalID:  professionalID,
		StartTime:       start,
		EndTime:         domain.EndFor(start, f.service.DurationMin),
		Status:          string(status),
		Price:           f.service.Price,
	}
	f.repo.appointments[ap.ID] = ap
	return ap.ID
}

func slot(hour, min int) time.Time {
	return time.Date(2026, 3, 10, hour, min, 0, 0, time.UTC)
}

func statusPtr(s domain.Status) *domain.Status { return &s }

// ======================================================
// CREATE
// ======================================================

func TestCreateAppointmentSuccess(t *testing.T) {
	f := newFixture()
	uc := NewCreateAppointment(f.repo, nil)

	ap, err := uc.Execute(context.Background(), CreateAppointmentInput{
		EstablishmentID: f.est,
		UserID:          f.userID,
		ClientID:        f.client.ID,
		ServiceID:       f.service.ID,
		ProfessionalID:  &f.professional.ID,
		StartTime:       slot(9, 0),
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), ap.Status)
	assert.Equal(t, slot(9, 0), ap.StartTime)
	assert.Equal(t, slot(10, 0), ap.EndTime)
	assert.Equal(t, f.service.Price, ap.Price)
	assert.Equal(t, "Corte Feminino", ap.Service.Name)
}

func TestCreateAppointmentConflict(t *testing.T) {
	f := newFixture()
	f.addAppointment(t, slot(9, 0), domain.StatusConfirmed, &f.professional.ID)

	uc := NewCreateAppointment(f.repo, nil)
	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		EstablishmentID: f.est,
		UserID:          f.userID,
		ClientID:        f.client.ID,
		ServiceID:       f.service.ID,
		ProfessionalID:  &f.professional.ID,
		StartTime:       slot(9, 30),
	})

	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "time_conflict"))
}

func TestCreateAppointmentBackToBackAllowed(t *testing.T) {
	f := newFixture()
	f.addAppointment(t, slot(9, 0), domain.StatusConfirmed, &f.professional.ID)

	uc := NewCreateAppointment(f.repo, nil)
	ap, err := uc.Execute(context.Background(), CreateAppointmentInput{
		EstablishmentID: f.est,
		UserID:          f.userID,
		ClientID:        f.client.ID,
		ServiceID:       f.service.ID,
		ProfessionalID:  &f.professional.ID,
		StartTime:       slot(10, 0),
	})

	require.NoError(t, err)
	assert.Equal(t, slot(10, 0), ap.StartTime)
}

func TestCreateAppointmentCancelledFreesSlot(t *testing.T) {
	f := newFixture()
	f.addAppointment(t, slot(9, 0), domain.StatusCancelled, &f.professional.ID)
	f.addAppointment(t, slot(9, 0), domain.StatusNoShow, &f.professional.ID)

	uc := NewCreateAppointment(f.repo, nil)
	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		EstablishmentID: f.est,
		UserID:          f.userID,
		ClientID:        f.client.ID,
		ServiceID:       f.service.ID,
		ProfessionalID:  &f.professional.ID,
		StartTime:       slot(9, 0),
	})

	require.NoError(t, err)
}

func TestCreateAppointmentWithoutProfessionalNeverConflicts(t *testing.T) {
	f := newFixture()
	f.addAppointment(t, slot(9, 0), domain.StatusConfirmed, nil)

	uc := NewCreateAppointment(f.repo, nil)
	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		EstablishmentID: f.est,
		UserID:          f.userID,
		ClientID:        f.client.ID,
		ServiceID:       f.service.ID,
		StartTime:       slot(9, 0),
	})

	require.NoError(t, err)
}

func TestCreateAppointmentForeignTenantEntities(t *testing.T) {
	f := newFixture()

	foreignService := models.Service{ID: uuid.New(), EstablishmentID: f.otherEst, Name: "Alheio", DurationMin: 30, Price: 50}
	f.repo.services[foreignService.ID] = foreignService

	uc := NewCreateAppointment(f.repo, nil)
	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		EstablishmentID: f.est,
		UserID:          f.userID,
		ClientID:        f.client.ID,
		ServiceID:       foreignService.ID,
		StartTime:       slot(9, 0),
	})

	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
}

// ======================================================
// UPDATE
// ======================================================

func TestUpdateAppointmentCompleteSynthesizesIncome(t *testing.T) {
	f := newFixture()
	apID := f.addAppointment(t, slot(9, 0), domain.StatusConfirmed, &f.professional.ID)

	uc := NewUpdateAppointment(f.repo, nil)
	updated, err := uc.Execute(context.Background(), f.est, f.userID, apID, UpdateAppointmentInput{
		Status: statusPtr(domain.StatusCompleted),
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), updated.Status)
	assert.NotNil(t, updated.CompletedAt)

	require.Len(t, f.repo.transactions, 1)
	for _, tx := range f.repo.transactions {
		assert.Equal(t, models.TransactionIncome, tx.Type)
		assert.Equal(t, f.service.Price, tx.Amount)
		require.NotNil(t, tx.AppointmentID)
		assert.Equal(t, apID, *tx.AppointmentID)
		require.NotNil(t, tx.ClientID)
		assert.Equal(t, f.client.ID, *tx.ClientID)
		require.NotNil(t, tx.ProfessionalID)
		assert.Equal(t, f.professional.ID, *tx.ProfessionalID)
		assert.Contains(t, tx.Description, "Corte Feminino")
		assert.Contains(t, tx.Description, "Ana Souza")
	}

	require.NotNil(t, updated.Transaction)
}

func TestUpdateAppointmentRepeatCompletionDoesNotDuplicate(t *testing.T) {
	f := newFixture()
	apID := f.addAppointment(t, slot(9, 0), domain.StatusConfirmed, &f.professional.ID)

	uc := NewUpdateAppointment(f.repo, nil)

	_, err := uc.Execute(context.Background(), f.est, f.userID, apID, UpdateAppointmentInput{
		Status: statusPtr(domain.StatusCompleted),
	})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), f.est, f.userID, apID, UpdateAppointmentInput{
		Status: statusPtr(domain.StatusCompleted),
	})
	require.NoError(t, err)

	assert.Len(t, f.repo.transactions, 1)
}

func TestUpdateAppointmentReopenAndCompleteAgainDoesNotDuplicate(t *testing.T) {
	f := newFixture()
	apID := f.addAppointment(t, slot(9, 0), domain.StatusConfirmed, &f.professional.ID)

	uc := NewUpdateAppointment(f.repo, nil)

	_, err := uc.Execute(context.Background(), f.est, f.userID, apID, UpdateAppointmentInput{
		Status: statusPtr(domain.StatusCompleted),
	})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), f.est, f.userID, apID, UpdateAppointmentInput{
		Status: statusPtr(domain.StatusInProgress),
	})
	require.NoError(t, err)

	// A transação vinculada continua existindo, então completar de novo
	// não gera uma segunda receita.
	_, err = uc.Execute(context.Background(), f.est, f.userID, apID, UpdateAppointmentInput{
		Status: statusPtr(domain.StatusCompleted),
	})
	require.NoError(t, err)

	assert.Len(t, f.repo.transactions, 1)
}

func TestUpdateAppointmentSynthesisFailureDoesNotFailCompletion(t *testing.T) {
	f := newFixture()
	apID := f.addAppointment(t, slot(9, 0), domain.StatusConfirmed, &f.professional.ID)
	f.repo.txErr = errors.New("connection refused")

	uc := NewUpdateAppointment(f.repo, nil)
	updated, err := uc.Execute(context.Background(), f.est, f.userID, apID, UpdateAppointmentInput{
		Status: statusPtr(domain.StatusCompleted),
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), updated.Status)
	assert.Empty(t, f.repo.transactions)
}

func TestUpdateAppointmentRescheduleRecomputesEnd(t *testing.T) {
	f := newFixture()
	apID := f.addAppointment(t, slot(9, 0), domain.StatusPending, &f.professional.ID)

	newStart := slot(14, 0)
	uc := NewUpdateAppointment(f.repo, nil)
	updated, err := uc.Execute(context.Background(), f.est, f.userID, apID, UpdateAppointmentInput{
		StartTime: &newStart,
	})

	require.NoError(t, err)
	assert.Equal(t, slot(14, 0), updated.StartTime)
	assert.Equal(t, slot(15, 0), updated.EndTime)
}

func TestUpdateAppointmentRescheduleIntoConflict(t *testing.T) {
	f := newFixture()
	f.addAppointment(t, slot(9, 0), domain.StatusConfirmed, &f.professional.ID)
	apID := f.addAppointment(t, slot(14, 0), domain.StatusPending, &f.professional.ID)

	newStart := slot(9, 30)
	uc := NewUpdateAppointment(f.repo, nil)
	_, err := uc.Execute(context.Background(), f.est, f.userID, apID, UpdateAppointmentInput{
		StartTime: &newStart,
	})

	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "time_conflict"))
}

func TestUpdateCancelledAppointmentAfterSlotRebooked(t *testing.T) {
	f := newFixture()

	// Cancelado às 9h liberou o horário, que foi reocupado em seguida.
	cancelledID := f.addAppointment(t, slot(9, 0), domain.StatusCancelled, &f.professional.ID)
	f.addAppointment(t, slot(9, 0), domain.StatusConfirmed, &f.professional.ID)

	uc := NewUpdateAppointment(f.repo, nil)

	// Editar observações do cancelado não disputa o slot
	notes := "cliente remarcou por telefone"
	updated, err := uc.Execute(context.Background(), f.est, f.userID, cancelledID, UpdateAppointmentInput{
		Notes: &notes,
	})
	require.NoError(t, err)
	assert.Equal(t, notes, updated.Notes)

	// Reclassificar a falta também não
	updated, err = uc.Execute(context.Background(), f.est, f.userID, cancelledID, UpdateAppointmentInput{
		Status: statusPtr(domain.StatusNoShow),
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusNoShow), updated.Status)
}

func TestUpdateReactivateIntoOccupiedSlotConflicts(t *testing.T) {
	f := newFixture()

	cancelledID := f.addAppointment(t, slot(9, 0), domain.StatusCancelled, &f.professional.ID)
	f.addAppointment(t, slot(9, 0), domain.StatusConfirmed, &f.professional.ID)

	// Reativar de volta para um status que ocupa horário volta a disputar o slot
	uc := NewUpdateAppointment(f.repo, nil)
	_, err := uc.Execute(context.Background(), f.est, f.userID, cancelledID, UpdateAppointmentInput{
		Status: statusPtr(domain.StatusConfirmed),
	})

	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "time_conflict"))
}

func TestUpdateAppointmentClearProfessional(t *testing.T) {
	f := newFixture()
	apID := f.addAppointment(t, slot(9, 0), domain.StatusPending, &f.professional.ID)

	uc := NewUpdateAppointment(f.repo, nil)
	updated, err := uc.Execute(context.Background(), f.est, f.userID, apID, UpdateAppointmentInput{
		ProfessionalSet: true,
		ProfessionalID:  nil,
	})

	require.NoError(t, err)
	assert.Nil(t, updated.ProfessionalID)
}

func TestUpdateAppointmentInvalidStatus(t *testing.T) {
	f := newFixture()
	apID := f.addAppointment(t, slot(9, 0), domain.StatusPending, &f.professional.ID)

	uc := NewUpdateAppointment(f.repo, nil)
	_, err := uc.Execute(context.Background(), f.est, f.userID, apID, UpdateAppointmentInput{
		Status: statusPtr(domain.Status("DONE")),
	})

	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
}

func TestUpdateAppointmentForeignTenant(t *testing.T) {
	f := newFixture()
	apID := f.addAppointment(t, slot(9, 0), domain.StatusPending, &f.professional.ID)

	uc := NewUpdateAppointment(f.repo, nil)
	_, err := uc.Execute(context.Background(), f.otherEst, f.userID, apID, UpdateAppointmentInput{
		Status: statusPtr(domain.StatusCompleted),
	})

	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
	assert.Empty(t, f.repo.transactions)
}

// ======================================================
// GET / LIST / DELETE
// ======================================================

func TestGetAppointmentForeignTenant(t *testing.T) {
	f := newFixture()
	apID := f.addAppointment(t, slot(9, 0), domain.StatusPending, nil)

	uc := NewGetAppointment(f.repo)

	_, err := uc.Execute(context.Background(), f.otherEst, apID)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))

	ap, err := uc.Execute(context.Background(), f.est, apID)
	require.NoError(t, err)
	assert.Equal(t, apID, ap.ID)
}

func TestListAppointmentsFilters(t *testing.T) {
	f := newFixture()
	f.addAppointment(t, slot(9, 0), domain.StatusConfirmed, &f.professional.ID)
	f.addAppointment(t, slot(11, 0), domain.StatusPending, nil)
	f.addAppointment(t, slot(15, 0), domain.StatusCancelled, &f.professional.ID)

	uc := NewListAppointments(f.repo)

	all, err := uc.Execute(context.Background(), f.est, domain.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].StartTime.Before(all[1].StartTime))

	byProfessional, err := uc.Execute(context.Background(), f.est, domain.ListFilter{
		ProfessionalID: &f.professional.ID,
	})
	require.NoError(t, err)
	assert.Len(t, byProfessional, 2)

	byStatus, err := uc.Execute(context.Background(), f.est, domain.ListFilter{
		Status: string(domain.StatusCancelled),
	})
	require.NoError(t, err)
	assert.Len(t, byStatus, 1)

	none, err := uc.Execute(context.Background(), f.otherEst, domain.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDeleteAppointment(t *testing.T) {
	f := newFixture()
	apID := f.addAppointment(t, slot(9, 0), domain.StatusPending, nil)

	uc := NewDeleteAppointment(f.repo, nil)

	err := uc.Execute(context.Background(), f.otherEst, f.userID, apID)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))

	err = uc.Execute(context.Background(), f.est, f.userID, apID)
	require.NoError(t, err)

	err = uc.Execute(context.Background(), f.est, f.userID, apID)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}
