package appointment

import "time"

// BookingRequest é a variante selada das duas formas de agendamento.
// O tipo é resolvido uma única vez na borda HTTP; o orquestrador faz
// switch exaustivo, de modo que "forma errada para o tipo declarado"
// não existe por construção.
type BookingRequest interface {
	bookingRequest()
}

// ClientBooking é o agendamento iniciado pelo próprio cliente na
// página pública. O cliente é resolvido por telefone dentro da
// empresa (upsert) e o desconto é sempre zero.
type ClientBooking struct {
	CompanyID   uint
	ClientName  string
	ClientPhone string
	ClientEmail string
	Date        time.Time
	ServiceIDs  []uint
}

// AdminBooking é o agendamento criado pelo painel administrativo.
// A empresa é resolvida a partir do cliente informado.
type AdminBooking struct {
	ClientID   uint
	Date       time.Time
	ServiceIDs []uint
	Discount   float64
}

func (ClientBooking) bookingRequest() {}
func (AdminBooking) bookingRequest()  {}
