package appointment

import (
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/currency"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/httperr"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/models"
)

// Quote é o resultado do cálculo de preço de um agendamento.
type Quote struct {
	SubTotal    float64
	Discount    float64
	Total       float64
	DurationMin int
}

// BuildQuote soma preço e duração dos serviços buscados e aplica o
// desconto. O chamador busca os serviços ativos da empresa filtrados
// pelos IDs pedidos; aqui só validamos que a busca cobriu o pedido.
//
// Desconto só vale para atores administrativos; agendamento iniciado
// pelo cliente tem desconto forçado a zero, mesmo que o transporte
// deixe passar um valor.
func BuildQuote(
	requestedIDs []uint,
	services []models.Service,
	discount float64,
	role string,
) (*Quote, error) {

	if len(services) == 0 {
		return nil, httperr.ErrNotFound("no_valid_services", "Nenhum serviço válido encontrado.")
	}

	if len(services) != len(requestedIDs) {
		return nil, httperr.ErrValidation(
			"services_mismatch",
			"Alguns serviços não foram encontrados ou não estão ativos.",
		)
	}

	var subTotal float64
	var durationMin int
	for _, s := range services {
		subTotal += s.Price
		durationMin += s.DurationMin
	}
	subTotal = currency.Round(subTotal)

	if !CanApplyDiscount(role) {
		discount = 0
	}

	if discount < 0 {
		return nil, httperr.ErrValidation("negative_discount", "Desconto não pode ser negativo.")
	}
	// comparação em centavos: ruído binário de float não pode rejeitar
	// um desconto igual ao subtotal
	if currency.ToCents(discount) > currency.ToCents(subTotal) {
		return nil, httperr.ErrValidation(
			"discount_exceeds_subtotal",
			"Desconto não pode ser maior que o valor total.",
		)
	}
	discount = currency.Round(discount)

	return &Quote{
		SubTotal:    subTotal,
		Discount:    discount,
		Total:       currency.Round(subTotal - discount),
		DurationMin: durationMin,
	}, nil
}
