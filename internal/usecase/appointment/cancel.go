package appointment

import (
	"context"

	"go.uber.org/zap"

	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/audit"
	domain "github.com/JeanLimaa/minimal-agendefacil-backend/internal/domain/appointment"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/httperr"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/models"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
		log:   log,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	id uint,
	companyID uint,
) (*models.Appointment, error) {

	ap, err := loadOwnedAppointment(ctx, uc.repo, uc.log, id, companyID, "cancellation")
	if err != nil {
		return nil, err
	}

	if err := domain.Cancel(ap); err != nil {
		uc.log.Warn("cannot cancel appointment - not pending",
			zap.Uint("appointment_id", id),
			zap.String("current_status", ap.Status),
		)
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		uc.log.Error("error marking appointment as canceled",
			zap.Uint("appointment_id", id),
			zap.Uint("company_id", companyID),
			zap.Error(err),
		)
		return nil, httperr.ErrInternal("appointment_cancel_failed", "Erro ao cancelar agendamento.")
	}

	uc.audit.Dispatch(audit.Event{
		CompanyID: companyID,
		Action:    "appointment_cancelled",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	return ap, nil
}
