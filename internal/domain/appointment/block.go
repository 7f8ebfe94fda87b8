package appointment

import "github.com/JeanLimaa/minimal-agendefacil-backend/internal/models"

// Bloqueios são agendamentos comuns apontando para um cliente e um
// serviço sentinela, criados uma única vez por empresa.
const (
	BlockClientName  = "Bloqueio"
	BlockClientPhone = "0000000000"
	BlockClientEmail = "bloqueio@sistema.com"

	BlockServiceName        = "__BLOCK__"
	BlockServiceDescription = "Serviço reservado para bloqueio de horários"

	BlockDefaultNotes = "Bloqueio de agenda"
)

// IsBlock identifica um bloqueio pelo cliente sentinela.
func IsBlock(ap *models.Appointment) bool {
	return ap != nil && ap.Client.Name == BlockClientName
}
