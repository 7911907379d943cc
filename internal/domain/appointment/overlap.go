package appointment

import "time"

// Overlaps aplica o teste de sobreposição de intervalos semiabertos
// [aStart, aEnd) x [bStart, bEnd): há conflito sse aStart < bEnd && aEnd > bStart.
// Agendamentos encostados (aEnd == bStart) não conflitam.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// EndFor deriva o fim do agendamento a partir da duração do serviço.
func EndFor(start time.Time, durationMin int) time.Time {
	return start.Add(time.Duration(durationMin) * time.Minute)
}
