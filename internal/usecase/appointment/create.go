package appointment

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/audit"
	domain "github.com/JeanLimaa/minimal-agendefacil-backend/internal/domain/appointment"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/httperr"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/models"
)

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
		log:   log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute cria o agendamento e seus vínculos de serviço como uma
// unidade atômica: resolve o cliente, calcula o preço, verifica
// conflito de horário e grava tudo na mesma transação.
func (uc *CreateAppointment) Execute(
	ctx context.Context,
	req domain.BookingRequest,
	role string,
) (*models.Appointment, error) {

	uc.log.Info("creating new appointment",
		zap.String("role", role),
		zap.Uints("service_ids", serviceIDsOf(req)),
	)

	created, err := uc.create(ctx, req, role)
	if err != nil {
		if _, ok := httperr.AsBusiness(err); ok {
			uc.log.Warn("error creating appointment",
				zap.String("role", role),
				zap.Error(err),
			)
			return nil, err
		}

		uc.log.Error("error creating appointment",
			zap.String("role", role),
			zap.Uints("service_ids", serviceIDsOf(req)),
			zap.Error(err),
		)
		return nil, httperr.ErrInternal("appointment_create_failed", "Erro ao criar agendamento.")
	}

	uc.audit.Dispatch(audit.Event{
		CompanyID: created.CompanyID,
		Action:    "appointment_created",
		Entity:    "appointment",
		EntityID:  &created.ID,
	})

	return created, nil
}

func (uc *CreateAppointment) create(
	ctx context.Context,
	req domain.BookingRequest,
	role string,
) (*models.Appointment, error) {

	if err := validateServiceIDs(serviceIDsOf(req)); err != nil {
		return nil, err
	}

	var created *models.Appointment

	err := uc.repo.InTransaction(ctx, func(tx domain.Repository) error {

		var (
			clientID  uint
			companyID uint
			date      time.Time
			ids       []uint
			discount  float64
		)

		switch r := req.(type) {
		case domain.AdminBooking:
			client, err := tx.GetClientByID(ctx, r.ClientID)
			if err != nil {
				return err
			}
			if client == nil {
				return httperr.ErrNotFound("client_not_found", "Cliente não encontrado.")
			}

			clientID = client.ID
			companyID = client.CompanyID
			date = r.Date
			ids = r.ServiceIDs
			discount = r.Discount

		case domain.ClientBooking:
			client, err := upsertClient(ctx, tx, r)
			if err != nil {
				return err
			}

			clientID = client.ID
			companyID = r.CompanyID
			date = r.Date
			ids = r.ServiceIDs
			// agendamento iniciado pelo cliente nunca tem desconto
			discount = 0
			role = domain.RoleClient

		default:
			return httperr.ErrInternal("malformed_request", "Dados inválidos para criação de agendamento.")
		}

		ap, err := prepareAppointment(ctx, tx, companyID, clientID, date, ids, discount, role)
		if err != nil {
			return err
		}

		if err := tx.AssertNoScheduleConflict(ctx, companyID, ap.Date, ap.End()); err != nil {
			return err
		}

		if err := tx.CreateAppointment(ctx, ap); err != nil {
			return err
		}

		if err := tx.CreateAppointmentServices(ctx, ap.ID, ids); err != nil {
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

// ======================================================
// HELPERS
// ======================================================

// upsertClient resolve o cliente do agendamento público: busca por
// telefone dentro da empresa; se existir, atualiza nome/email; senão
// cria.
func upsertClient(
	ctx context.Context,
	tx domain.Repository,
	r domain.ClientBooking,
) (*models.Client, error) {

	// o nome do cliente sentinela é reservado; um cliente real com esse
	// nome seria classificado como bloqueio em todas as listagens
	if r.ClientName == domain.BlockClientName {
		return nil, httperr.ErrValidation("reserved_client_name", "Nome de cliente reservado.")
	}

	existing, err := tx.FindClientByPhone(ctx, r.CompanyID, r.ClientPhone)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		existing.Name = r.ClientName
		existing.Email = r.ClientEmail
		if err := tx.UpdateClient(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	client := &models.Client{
		CompanyID: r.CompanyID,
		Name:      r.ClientName,
		Phone:     r.ClientPhone,
		Email:     r.ClientEmail,
	}
	if err := tx.CreateClient(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// prepareAppointment monta a linha do agendamento a partir da cotação.
func prepareAppointment(
	ctx context.Context,
	tx domain.Repository,
	companyID uint,
	clientID uint,
	date time.Time,
	serviceIDs []uint,
	discount float64,
	role string,
) (*models.Appointment, error) {

	services, err := tx.ListActiveServices(ctx, companyID, serviceIDs)
	if err != nil {
		return nil, err
	}

	quote, err := domain.BuildQuote(serviceIDs, services, discount, role)
	if err != nil {
		return nil, err
	}

	var notes string
	if quote.Discount > 0 {
		notes = fmt.Sprintf(
			"Subtotal: %s, Desconto: %s",
			formatAmount(quote.SubTotal),
			formatAmount(quote.Discount),
		)
	}

	return &models.Appointment{
		CompanyID:     companyID,
		ClientID:      clientID,
		Date:          date,
		DurationMin:   quote.DurationMin,
		SubTotalPrice: quote.SubTotal,
		Discount:      quote.Discount,
		TotalPrice:    quote.Total,
		Status:        string(domain.InitialStatus()),
		Notes:         notes,
	}, nil
}

func validateServiceIDs(ids []uint) error {
	if len(ids) == 0 {
		return httperr.ErrValidation("missing_services", "Informe ao menos um serviço.")
	}

	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return httperr.ErrValidation("duplicate_services", "Serviços duplicados no agendamento.")
		}
		seen[id] = struct{}{}
	}
	return nil
}

func serviceIDsOf(req domain.BookingRequest) []uint {
	switch r := req.(type) {
	case domain.AdminBooking:
		return r.ServiceIDs
	case domain.ClientBooking:
		return r.ServiceIDs
	}
	return nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
