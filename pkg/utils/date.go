package utils

import "time"

// DateLayout é o formato dd.mm.aaaa usado nos comandos e nos cabeçalhos dos relatórios
const DateLayout = "02.01.2006"

// ParseDate interpreta dd.mm.aaaa no fuso informado; string vazia devolve a data zero
func ParseDate(dateStr string, loc *time.Location) (*time.Time, error) {
	var date time.Time

	if dateStr != "" {
		incomingDate, err := time.ParseInLocation(DateLayout, dateStr, loc)
		if err != nil {
			return nil, err
		}

		date = incomingDate
	}

	return &date, nil
}

var weekdayLabels = [...]string{
	time.Sunday:    "domingo",
	time.Monday:    "segunda-feira",
	time.Tuesday:   "terça-feira",
	time.Wednesday: "quarta-feira",
	time.Thursday:  "quinta-feira",
	time.Friday:    "sexta-feira",
	time.Saturday:  "sábado",
}

// WeekdayLabel devolve o nome do dia da semana usado nos cabeçalhos dos relatórios
func WeekdayLabel(t time.Time) string {
	return weekdayLabels[t.Weekday()]
}

// StartOfDay zera o horário mantendo o fuso de t
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay devolve o último segundo do dia de t
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, t.Location())
}
