package handlers

import "time"

// Datas e horários são tratados como locais ingênuos: o que o cliente
// envia é o que fica gravado.

func parseDate(dateStr string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", dateStr, time.Local)
}

func parseDateTime(dateStr, timeStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02 15:04",
		dateStr+" "+timeStr,
		time.Local,
	)
}
