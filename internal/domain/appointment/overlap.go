package appointment

import "time"

// Overlaps aplica a regra de sobreposição de intervalos semiabertos
// [start, end): extremos que apenas se tocam não conflitam, permitindo
// atendimentos de costas um para o outro.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
