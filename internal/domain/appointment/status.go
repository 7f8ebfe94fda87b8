package appointment

import "github.com/JeanLimaa/minimal-agendefacil-backend/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

// ActiveStatuses contam para verificação de conflito de horário.
var ActiveStatuses = []string{string(StatusPending), string(StatusConfirmed)}

var statusTranslation = map[Status]string{
	StatusPending:   "Pendente",
	StatusConfirmed: "Confirmado",
	StatusCancelled: "Cancelado",
	StatusCompleted: "Concluído",
}

// Translate devolve o rótulo pt-BR exibido nas listagens.
func Translate(s Status) string {
	if label, ok := statusTranslation[s]; ok {
		return label
	}
	return string(s)
}

// ===============================
// Validations
// ===============================

// CanComplete define se um agendamento pode ser marcado como atendido.
// Apenas PENDING transita; CONFIRMED é o estado fixo dos bloqueios.
func CanComplete(current Status) error {
	if current != StatusPending {
		return httperr.ErrValidation(
			"invalid_state",
			"Agendamento não pode ser marcado como atendido, pois não está pendente.",
		)
	}
	return nil
}

// CanCancel define se um agendamento pode ser cancelado.
func CanCancel(current Status) error {
	if current != StatusPending {
		return httperr.ErrValidation(
			"invalid_state",
			"Agendamento não pode ser cancelado, pois não está pendente.",
		)
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}

// ===============================
// Roles
// ===============================

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
	RoleClient   = "client"
)

// CanApplyDiscount: somente atores administrativos aplicam desconto.
func CanApplyDiscount(role string) bool {
	return role != "" && role != RoleClient
}
