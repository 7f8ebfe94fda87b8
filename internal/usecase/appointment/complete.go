package appointment

import (
	"context"

	"go.uber.org/zap"

	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/audit"
	domain "github.com/JeanLimaa/minimal-agendefacil-backend/internal/domain/appointment"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/httperr"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/models"
)

type CompleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewCompleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:  repo,
		audit: audit,
		log:   log,
	}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	id uint,
	companyID uint,
) (*models.Appointment, error) {

	ap, err := uc.loadOwned(ctx, id, companyID, "completion")
	if err != nil {
		return nil, err
	}

	if err := domain.Complete(ap); err != nil {
		uc.log.Warn("cannot complete appointment - not pending",
			zap.Uint("appointment_id", id),
			zap.String("current_status", ap.Status),
		)
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		uc.log.Error("error marking appointment as completed",
			zap.Uint("appointment_id", id),
			zap.Uint("company_id", companyID),
			zap.Error(err),
		)
		return nil, httperr.ErrInternal("appointment_complete_failed", "Erro ao concluir agendamento.")
	}

	uc.audit.Dispatch(audit.Event{
		CompanyID: companyID,
		Action:    "appointment_completed",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	return ap, nil
}

// loadOwned carrega o agendamento e garante que pertence à empresa
// do solicitante. Compartilhado com o cancelamento.
func (uc *CompleteAppointment) loadOwned(
	ctx context.Context,
	id uint,
	companyID uint,
	action string,
) (*models.Appointment, error) {
	return loadOwnedAppointment(ctx, uc.repo, uc.log, id, companyID, action)
}

func loadOwnedAppointment(
	ctx context.Context,
	repo domain.Repository,
	log *zap.Logger,
	id uint,
	companyID uint,
	action string,
) (*models.Appointment, error) {

	ap, err := repo.GetAppointmentByID(ctx, id)
	if err != nil {
		log.Error("error loading appointment",
			zap.Uint("appointment_id", id),
			zap.String("action", action),
			zap.Error(err),
		)
		return nil, httperr.ErrInternal("appointment_load_failed", "Erro ao carregar agendamento.")
	}

	if ap == nil {
		log.Warn("appointment not found",
			zap.Uint("appointment_id", id),
			zap.String("action", action),
		)
		return nil, httperr.ErrNotFound("appointment_not_found", "Agendamento não encontrado.")
	}

	if ap.CompanyID != companyID {
		log.Warn("unauthorized appointment access attempt",
			zap.Uint("appointment_id", id),
			zap.Uint("request_company_id", companyID),
			zap.Uint("appointment_company_id", ap.CompanyID),
			zap.String("action", action),
		)
		return nil, httperr.ErrUnauthorized(
			"unauthorized",
			"Acesso não autorizado. Este agendamento não pertence à empresa.",
		)
	}

	return ap, nil
}
