package appointment

import (
	"context"

	"go.uber.org/zap"

	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/audit"
	domain "github.com/JeanLimaa/minimal-agendefacil-backend/internal/domain/appointment"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/httperr"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/models"
)

type DeleteBlock struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewDeleteBlock(
	repo domain.Repository,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *DeleteBlock {
	return &DeleteBlock{
		repo:  repo,
		audit: audit,
		log:   log,
	}
}

func (uc *DeleteBlock) Execute(
	ctx context.Context,
	id uint,
	companyID uint,
) (*models.Appointment, error) {

	block, err := uc.repo.GetAppointmentWithClient(ctx, id)
	if err != nil {
		uc.log.Error("error loading block",
			zap.Uint("block_id", id),
			zap.Uint("company_id", companyID),
			zap.Error(err),
		)
		return nil, httperr.ErrInternal("block_delete_failed", "Erro ao excluir bloqueio.")
	}

	if block == nil {
		return nil, httperr.ErrNotFound("block_not_found", "Bloqueio não encontrado.")
	}

	if !domain.IsBlock(block) {
		uc.log.Warn("attempted to delete non-block appointment as block",
			zap.Uint("appointment_id", id),
		)
		return nil, httperr.ErrUnauthorized("not_a_block", "Este agendamento não é um bloqueio.")
	}

	if block.CompanyID != companyID {
		uc.log.Warn("unauthorized block deletion attempt",
			zap.Uint("block_id", id),
			zap.Uint("request_company_id", companyID),
			zap.Uint("block_company_id", block.CompanyID),
		)
		return nil, httperr.ErrUnauthorized("unauthorized", "Acesso não autorizado.")
	}

	if err := uc.repo.DeleteAppointment(ctx, id); err != nil {
		uc.log.Error("error deleting block",
			zap.Uint("block_id", id),
			zap.Uint("company_id", companyID),
			zap.Error(err),
		)
		return nil, httperr.ErrInternal("block_delete_failed", "Erro ao excluir bloqueio.")
	}

	uc.audit.Dispatch(audit.Event{
		CompanyID: companyID,
		Action:    "block_deleted",
		Entity:    "appointment",
		EntityID:  &block.ID,
	})

	return block, nil
}
