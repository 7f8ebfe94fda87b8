package currency

import "math"

// Round arredonda um valor monetário para 2 casas decimais.
func Round(value float64) float64 {
	return math.Round(value*100) / 100
}

// ToCents converte um valor decimal para centavos.
func ToCents(value float64) int64 {
	return int64(math.Round(value * 100))
}
