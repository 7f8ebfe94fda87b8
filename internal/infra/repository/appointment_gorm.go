package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/JeanLimaa/minimal-agendefacil-backend/internal/domain/appointment"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/httperr"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Unit of work
// --------------------------------------------------

// InTransaction entrega um repositório ligado à transação. O handle é
// explícito: nada de estado ambiente escondido em goroutine-local.
func (r *AppointmentGormRepository) InTransaction(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx})
	})
}

const pgUniqueViolation = "23505"

// isUniqueViolation detecta corrida de chave duplicada no Postgres.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// --------------------------------------------------
// Company
// --------------------------------------------------

func (r *AppointmentGormRepository) GetCompanyByID(
	ctx context.Context,
	id uint,
) (*models.Company, error) {

	var company models.Company
	if err := r.db.WithContext(ctx).First(&company, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("company_not_found", "Empresa não encontrada.")
		}
		return nil, err
	}
	return &company, nil
}

func (r *AppointmentGormRepository) GetWorkingHour(
	ctx context.Context,
	companyID uint,
	dayOfWeek int,
) (*models.CompanyWorkingHour, error) {

	var wh models.CompanyWorkingHour
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND day_of_week = ?", companyID, dayOfWeek).
		First(&wh).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &wh, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *AppointmentGormRepository) ListActiveServices(
	ctx context.Context,
	companyID uint,
	ids []uint,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("id IN ? AND company_id = ? AND is_active = ?", ids, companyID, true).
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *AppointmentGormRepository) FindServiceByName(
	ctx context.Context,
	companyID uint,
	name string,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND name = ?", companyID, name).
		First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &service, nil
}

func (r *AppointmentGormRepository) CreateService(
	ctx context.Context,
	service *models.Service,
) error {
	if err := r.db.WithContext(ctx).Create(service).Error; err != nil {
		if isUniqueViolation(err) {
			return httperr.ErrConflict("service_already_exists", "Já existe um serviço com este nome.")
		}
		return err
	}
	return nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *AppointmentGormRepository) GetClientByID(
	ctx context.Context,
	id uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

func (r *AppointmentGormRepository) FindClientByPhone(
	ctx context.Context,
	companyID uint,
	phone string,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND phone = ?", companyID, phone).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

func (r *AppointmentGormRepository) FindClientByName(
	ctx context.Context,
	companyID uint,
	name string,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND name = ?", companyID, name).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

func (r *AppointmentGormRepository) CreateClient(
	ctx context.Context,
	client *models.Client,
) error {
	if err := r.db.WithContext(ctx).Create(client).Error; err != nil {
		if isUniqueViolation(err) {
			return httperr.ErrConflict("client_phone_taken", "Já existe um cliente com este telefone.")
		}
		return err
	}
	return nil
}

func (r *AppointmentGormRepository) UpdateClient(
	ctx context.Context,
	client *models.Client,
) error {
	if err := r.db.WithContext(ctx).Save(client).Error; err != nil {
		if isUniqueViolation(err) {
			return httperr.ErrConflict("client_phone_taken", "Já existe um cliente com este telefone.")
		}
		return err
	}
	return nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	id uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.Appointment{}, id).Error
}

// AssertNoScheduleConflict aplica a regra de sobreposição em duas
// fases, porque o fim do atendimento não é coluna armazenada:
//
//  1. agendamentos ativos que começam dentro de [start, end) conflitam
//     sempre;
//  2. agendamentos ativos que começam antes de start conflitam se
//     date + duration ultrapassa start (atendimento em andamento).
//
// O advisory lock por empresa serializa check-then-insert concorrentes
// mesmo sob read committed.
func (r *AppointmentGormRepository) AssertNoScheduleConflict(
	ctx context.Context,
	companyID uint,
	start time.Time,
	end time.Time,
) error {

	if err := r.db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(?)", int64(companyID)).Error; err != nil {
		return err
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"company_id = ? AND status IN ? AND date >= ? AND date < ?",
			companyID, domain.ActiveStatuses, start, end,
		).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return httperr.ErrConflict(
			"schedule_conflict",
			"Já existe um agendamento ou bloqueio para este intervalo.",
		)
	}

	var earlier []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("date", "duration_min").
		Where(
			"company_id = ? AND status IN ? AND date < ?",
			companyID, domain.ActiveStatuses, start,
		).
		Find(&earlier).Error; err != nil {
		return err
	}

	for i := range earlier {
		if earlier[i].End().After(start) {
			return httperr.ErrConflict(
				"schedule_conflict",
				"Já existe um agendamento ou bloqueio para este intervalo.",
			)
		}
	}

	return nil
}

// --------------------------------------------------
// Appointment service links
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointmentServices(
	ctx context.Context,
	appointmentID uint,
	serviceIDs []uint,
) error {

	links := make([]models.AppointmentService, 0, len(serviceIDs))
	for _, serviceID := range serviceIDs {
		links = append(links, models.AppointmentService{
			AppointmentID: appointmentID,
			ServiceID:     serviceID,
		})
	}

	return r.db.WithContext(ctx).Create(&links).Error
}

// ReplaceAppointmentServices troca os vínculos por completo:
// delete-all seguido de re-insert, dentro da transação do chamador.
func (r *AppointmentGormRepository) ReplaceAppointmentServices(
	ctx context.Context,
	appointmentID uint,
	serviceIDs []uint,
) error {

	if err := r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		Delete(&models.AppointmentService{}).Error; err != nil {
		return err
	}

	return r.CreateAppointmentServices(ctx, appointmentID, serviceIDs)
}

// --------------------------------------------------
// Appointment (read)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointmentByID(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Services.Service").
		First(&ap, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) GetAppointmentWithClient(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		First(&ap, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListPendingAppointments(
	ctx context.Context,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Company").
		Joins("JOIN clients ON clients.id = appointments.client_id").
		Where("appointments.status = ? AND clients.name <> ?",
			string(domain.StatusPending), domain.BlockClientName).
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsByCompany(
	ctx context.Context,
	companyID uint,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Services.Service").
		Joins("JOIN clients ON clients.id = appointments.client_id").
		Where("appointments.company_id = ? AND clients.name <> ?",
			companyID, domain.BlockClientName).
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsByClient(
	ctx context.Context,
	clientID uint,
	companyID uint,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Company").
		Preload("Services.Service").
		Where("client_id = ? AND company_id = ?", clientID, companyID).
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *AppointmentGormRepository) ListBlocksByCompany(
	ctx context.Context,
	companyID uint,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Joins("JOIN clients ON clients.id = appointments.client_id").
		Where("appointments.company_id = ? AND clients.name = ?",
			companyID, domain.BlockClientName).
		Order("appointments.date DESC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

// ListActiveAppointmentsBetween devolve agendamentos ativos que tocam
// [start, end): os que começam dentro do intervalo e os que começaram
// antes mas ainda estão em andamento (mesmo esquema em duas fases do
// AssertNoScheduleConflict).
func (r *AppointmentGormRepository) ListActiveAppointmentsBetween(
	ctx context.Context,
	companyID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "date", "duration_min", "status").
		Where(
			"company_id = ? AND status IN ? AND date >= ? AND date < ?",
			companyID, domain.ActiveStatuses, start, end,
		).
		Order("date ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	var earlier []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "date", "duration_min", "status").
		Where(
			"company_id = ? AND status IN ? AND date < ?",
			companyID, domain.ActiveStatuses, start,
		).
		Order("date ASC").
		Find(&earlier).Error; err != nil {
		return nil, err
	}

	result := make([]models.Appointment, 0, len(aps)+len(earlier))
	for i := range earlier {
		if earlier[i].End().After(start) {
			result = append(result, earlier[i])
		}
	}
	result = append(result, aps...)

	return result, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
