package timeutil

import (
	"fmt"
	"regexp"

	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/httperr"
)

// Formato aceito: HH:mm, 00:00 a 23:59.
var timeRegex = regexp.MustCompile(`^([0-1]\d|2[0-3]):([0-5]\d)$`)

func IsValidTimeFormat(t string) bool {
	return t != "" && timeRegex.MatchString(t)
}

// ParseTimeToMinutes converte "HH:mm" em minutos desde 00:00.
func ParseTimeToMinutes(t string) (int, error) {
	if t == "" {
		return 0, httperr.ErrValidation("invalid_time", "Horário inválido.")
	}

	if !timeRegex.MatchString(t) {
		return 0, httperr.ErrValidation(
			"invalid_time_format",
			fmt.Sprintf("Horário deve estar no formato HH:mm (00:00 a 23:59). Recebido: %s", t),
		)
	}

	var hours, minutes int
	fmt.Sscanf(t, "%d:%d", &hours, &minutes)

	return hours*60 + minutes, nil
}

// ValidateTimeRange exige início estritamente anterior ao fim.
func ValidateTimeRange(startTime, endTime string) error {
	if startTime == "" || endTime == "" {
		return httperr.ErrValidation("missing_time_range", "Horário de início e fim são obrigatórios.")
	}

	startMinutes, err := ParseTimeToMinutes(startTime)
	if err != nil {
		return err
	}

	endMinutes, err := ParseTimeToMinutes(endTime)
	if err != nil {
		return err
	}

	if startMinutes >= endMinutes {
		return httperr.ErrValidation(
			"invalid_time_range",
			fmt.Sprintf("Horário de início (%s) deve ser anterior ao horário de término (%s).", startTime, endTime),
		)
	}

	return nil
}

// ValidateDayOfWeek aceita 0 (domingo) a 6 (sábado).
func ValidateDayOfWeek(dayOfWeek int) error {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return httperr.ErrValidation(
			"invalid_day_of_week",
			fmt.Sprintf("Dia da semana deve ser um número entre 0 (domingo) e 6 (sábado). Recebido: %d", dayOfWeek),
		)
	}
	return nil
}

// IsTimeWithinRange é inclusivo nas duas pontas e retorna false para
// qualquer entrada malformada.
func IsTimeWithinRange(t, startTime, endTime string) bool {
	if !IsValidTimeFormat(t) || !IsValidTimeFormat(startTime) || !IsValidTimeFormat(endTime) {
		return false
	}

	tm, _ := ParseTimeToMinutes(t)
	start, _ := ParseTimeToMinutes(startTime)
	end, _ := ParseTimeToMinutes(endTime)

	return tm >= start && tm <= end
}
