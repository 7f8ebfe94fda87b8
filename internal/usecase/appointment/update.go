package appointment

import (
	"context"

	"go.uber.org/zap"

	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/audit"
	domain "github.com/JeanLimaa/minimal-agendefacil-backend/internal/domain/appointment"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/httperr"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/models"
)

type UpdateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		audit: audit,
		log:   log,
	}
}

// Execute refaz a cotação contra o cliente/empresa do agendamento
// existente e substitui os campos mutáveis e os vínculos de serviço.
// Status nunca muda por aqui; isso é papel das transições guardadas.
func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	id uint,
	req domain.AdminBooking,
	role string,
) (*models.Appointment, error) {

	if err := validateServiceIDs(req.ServiceIDs); err != nil {
		return nil, err
	}

	var updated *models.Appointment

	err := uc.repo.InTransaction(ctx, func(tx domain.Repository) error {
		ap, err := tx.GetAppointmentByID(ctx, id)
		if err != nil {
			return err
		}
		if ap == nil {
			return httperr.ErrNotFound("appointment_not_found", "Agendamento não encontrado.")
		}

		prepared, err := prepareAppointment(
			ctx, tx,
			ap.CompanyID, ap.ClientID,
			req.Date, req.ServiceIDs, req.Discount,
			role,
		)
		if err != nil {
			return err
		}

		ap.Date = prepared.Date
		ap.DurationMin = prepared.DurationMin
		ap.SubTotalPrice = prepared.SubTotalPrice
		ap.Discount = prepared.Discount
		ap.TotalPrice = prepared.TotalPrice
		ap.Notes = prepared.Notes
		ap.Services = nil

		if err := tx.UpdateAppointment(ctx, ap); err != nil {
			return err
		}

		if err := tx.ReplaceAppointmentServices(ctx, ap.ID, req.ServiceIDs); err != nil {
			return err
		}

		updated = ap
		return nil
	})

	if err != nil {
		if _, ok := httperr.AsBusiness(err); ok {
			return nil, err
		}
		uc.log.Error("error updating appointment",
			zap.Uint("appointment_id", id),
			zap.String("role", role),
			zap.Error(err),
		)
		return nil, httperr.ErrInternal("appointment_update_failed", "Erro ao atualizar agendamento.")
	}

	uc.audit.Dispatch(audit.Event{
		CompanyID: updated.CompanyID,
		Action:    "appointment_updated",
		Entity:    "appointment",
		EntityID:  &updated.ID,
	})

	return updated, nil
}
