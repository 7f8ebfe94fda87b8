package appointment

import (
	"context"

	"go.uber.org/zap"

	domain "github.com/JeanLimaa/minimal-agendefacil-backend/internal/domain/appointment"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/dto"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/httperr"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/models"
)

// ListAppointments reúne as consultas de leitura. Bloqueios nunca
// aparecem nas listagens de agendamentos reais e vice-versa.
type ListAppointments struct {
	repo domain.Repository
	log  *zap.Logger
}

func NewListAppointments(repo domain.Repository, log *zap.Logger) *ListAppointments {
	return &ListAppointments{repo: repo, log: log}
}

func (uc *ListAppointments) ListPending(ctx context.Context) ([]models.Appointment, error) {
	return uc.repo.ListPendingAppointments(ctx)
}

func (uc *ListAppointments) ListByCompany(
	ctx context.Context,
	companyID uint,
) ([]dto.AppointmentListDTO, error) {

	aps, err := uc.repo.ListAppointmentsByCompany(ctx, companyID)
	if err != nil {
		uc.log.Error("error finding appointments by company",
			zap.Uint("company_id", companyID),
			zap.Error(err),
		)
		return nil, err
	}

	return dto.FromAppointments(aps), nil
}

func (uc *ListAppointments) ListByClient(
	ctx context.Context,
	clientID uint,
	companyID uint,
) ([]dto.AppointmentListDTO, error) {

	client, err := uc.repo.GetClientByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil || client.CompanyID != companyID {
		return nil, httperr.ErrNotFound(
			"client_not_found",
			"Cliente não encontrado ou não pertence à empresa.",
		)
	}

	aps, err := uc.repo.ListAppointmentsByClient(ctx, clientID, companyID)
	if err != nil {
		return nil, err
	}

	return dto.FromAppointments(aps), nil
}

func (uc *ListAppointments) FindByID(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ap == nil {
		return nil, httperr.ErrNotFound("appointment_not_found", "Agendamento não encontrado.")
	}
	return ap, nil
}

func (uc *ListAppointments) ListBlocksByCompany(
	ctx context.Context,
	companyID uint,
) ([]models.Appointment, error) {
	return uc.repo.ListBlocksByCompany(ctx, companyID)
}
