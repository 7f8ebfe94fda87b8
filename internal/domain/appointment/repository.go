package appointment

import (
	"context"
	"time"

	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/models"
)

type Repository interface {
	// InTransaction executa fn contra um Repository ligado à transação.
	// Tudo que fn fizer através dele comita ou desfaz em bloco.
	InTransaction(ctx context.Context, fn func(Repository) error) error

	// -------- Company --------
	GetCompanyByID(
		ctx context.Context,
		id uint,
	) (*models.Company, error)

	GetWorkingHour(
		ctx context.Context,
		companyID uint,
		dayOfWeek int,
	) (*models.CompanyWorkingHour, error)

	// -------- Service --------
	ListActiveServices(
		ctx context.Context,
		companyID uint,
		ids []uint,
	) ([]models.Service, error)

	FindServiceByName(
		ctx context.Context,
		companyID uint,
		name string,
	) (*models.Service, error)

	CreateService(
		ctx context.Context,
		service *models.Service,
	) error

	// -------- Client --------
	GetClientByID(
		ctx context.Context,
		id uint,
	) (*models.Client, error)

	FindClientByPhone(
		ctx context.Context,
		companyID uint,
		phone string,
	) (*models.Client, error)

	FindClientByName(
		ctx context.Context,
		companyID uint,
		name string,
	) (*models.Client, error)

	CreateClient(
		ctx context.Context,
		client *models.Client,
	) error

	UpdateClient(
		ctx context.Context,
		client *models.Client,
	) error

	// -------- Appointment (create / conflict) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		id uint,
	) error

	// AssertNoScheduleConflict falha com schedule_conflict se algum
	// agendamento ativo da empresa sobrepõe [start, end). Deve rodar
	// dentro da mesma transação que o insert subsequente.
	AssertNoScheduleConflict(
		ctx context.Context,
		companyID uint,
		start time.Time,
		end time.Time,
	) error

	// -------- Appointment service links --------
	CreateAppointmentServices(
		ctx context.Context,
		appointmentID uint,
		serviceIDs []uint,
	) error

	ReplaceAppointmentServices(
		ctx context.Context,
		appointmentID uint,
		serviceIDs []uint,
	) error

	// -------- Appointment (read) --------
	GetAppointmentByID(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	GetAppointmentWithClient(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	ListPendingAppointments(
		ctx context.Context,
	) ([]models.Appointment, error)

	ListAppointmentsByCompany(
		ctx context.Context,
		companyID uint,
	) ([]models.Appointment, error)

	ListAppointmentsByClient(
		ctx context.Context,
		clientID uint,
		companyID uint,
	) ([]models.Appointment, error)

	ListBlocksByCompany(
		ctx context.Context,
		companyID uint,
	) ([]models.Appointment, error)

	ListActiveAppointmentsBetween(
		ctx context.Context,
		companyID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
