package appointment

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/audit"
	domain "github.com/JeanLimaa/minimal-agendefacil-backend/internal/domain/appointment"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/httperr"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/models"
)

type CreateBlock struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewCreateBlock(
	repo domain.Repository,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *CreateBlock {
	return &CreateBlock{
		repo:  repo,
		audit: audit,
		log:   log,
	}
}

// Execute reserva [start, end) com um pseudo-agendamento CONFIRMED
// apontando para o cliente sentinela da empresa.
func (uc *CreateBlock) Execute(
	ctx context.Context,
	companyID uint,
	start time.Time,
	end time.Time,
	notes string,
) (*models.Appointment, error) {

	uc.log.Info("creating block appointment",
		zap.Uint("company_id", companyID),
		zap.Time("start", start),
		zap.Time("end", end),
	)

	created, err := uc.create(ctx, companyID, start, end, notes)
	if err != nil {
		if _, ok := httperr.AsBusiness(err); ok {
			return nil, err
		}
		uc.log.Error("error creating block appointment",
			zap.Uint("company_id", companyID),
			zap.Error(err),
		)
		return nil, httperr.ErrInternal("block_create_failed", "Erro ao criar bloqueio.")
	}

	uc.audit.Dispatch(audit.Event{
		CompanyID: companyID,
		Action:    "block_created",
		Entity:    "appointment",
		EntityID:  &created.ID,
	})

	return created, nil
}

func (uc *CreateBlock) create(
	ctx context.Context,
	companyID uint,
	start time.Time,
	end time.Time,
	notes string,
) (*models.Appointment, error) {

	if _, err := uc.repo.GetCompanyByID(ctx, companyID); err != nil {
		return nil, err
	}

	duration := int(end.Sub(start).Minutes())
	if duration <= 0 {
		return nil, httperr.ErrValidation(
			"invalid_range",
			"Data de término deve ser posterior à data de início.",
		)
	}

	// Sentinelas ficam fora da transação principal: uma violação de
	// unicidade dentro dela abortaria o bloco inteiro no Postgres.
	blockClient, err := uc.ensureBlockClient(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if _, err := uc.ensureBlockService(ctx, companyID); err != nil {
		return nil, err
	}

	if notes == "" {
		notes = domain.BlockDefaultNotes
	}

	var created *models.Appointment

	err = uc.repo.InTransaction(ctx, func(tx domain.Repository) error {
		if err := tx.AssertNoScheduleConflict(ctx, companyID, start, end); err != nil {
			return err
		}

		ap := &models.Appointment{
			CompanyID:     companyID,
			ClientID:      blockClient.ID,
			Date:          start,
			DurationMin:   duration,
			SubTotalPrice: 0,
			Discount:      0,
			TotalPrice:    0,
			Status:        string(domain.StatusConfirmed),
			Notes:         notes,
		}

		if err := tx.CreateAppointment(ctx, ap); err != nil {
			return err
		}

		created = ap
		return nil
	})

	if err != nil {
		return nil, err
	}
	return created, nil
}

// ensureBlockClient busca ou cria o cliente sentinela. Duas primeiras
// criações concorrentes colidem na unique (company, phone); quem
// perde a corrida relê.
func (uc *CreateBlock) ensureBlockClient(
	ctx context.Context,
	companyID uint,
) (*models.Client, error) {

	client, err := uc.repo.FindClientByName(ctx, companyID, domain.BlockClientName)
	if err != nil {
		return nil, err
	}
	if client != nil {
		return client, nil
	}

	client = &models.Client{
		CompanyID: companyID,
		Name:      domain.BlockClientName,
		Phone:     domain.BlockClientPhone,
		Email:     domain.BlockClientEmail,
		IsBlocked: true,
	}

	if err := uc.repo.CreateClient(ctx, client); err != nil {
		if httperr.IsKind(err, httperr.KindConflict) {
			return uc.repo.FindClientByName(ctx, companyID, domain.BlockClientName)
		}
		return nil, err
	}

	return client, nil
}

func (uc *CreateBlock) ensureBlockService(
	ctx context.Context,
	companyID uint,
) (*models.Service, error) {

	service, err := uc.repo.FindServiceByName(ctx, companyID, domain.BlockServiceName)
	if err != nil {
		return nil, err
	}
	if service != nil {
		return service, nil
	}

	service = &models.Service{
		CompanyID:   companyID,
		Name:        domain.BlockServiceName,
		Description: domain.BlockServiceDescription,
		DurationMin: 0,
		Price:       0,
		// não deve aparecer para clientes
		IsActive: false,
	}

	if err := uc.repo.CreateService(ctx, service); err != nil {
		if httperr.IsKind(err, httperr.KindConflict) {
			return uc.repo.FindServiceByName(ctx, companyID, domain.BlockServiceName)
		}
		return nil, err
	}

	return service, nil
}
