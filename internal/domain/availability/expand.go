package availability

import (
	"time"

	"github.com/teambition/rrule-go"

	"github.com/VidaPlenaApps/clinic-scheduler/internal/models"
)

// Occurrence é uma ocorrência datada de disponibilidade, já com
// eventuais exceções aplicadas.
type Occurrence struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`

	BlockID     *uint `json:"block_id"`
	ExceptionID *uint `json:"exception_id"`

	Cancelled bool `json:"cancelled"`
}

// índice: time.Weekday (0=domingo) → rrule.Weekday
var rruleWeekdays = []rrule.Weekday{
	rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA,
}

// Expand materializa os blocos semanais dentro de [from, to] na zona
// dada e aplica as exceções: exceção com origem sobrescreve (ou cancela)
// a ocorrência do bloco naquela data; exceção sem origem vira slot avulso.
func Expand(
	blocks []models.AvailabilityBlock,
	exceptions []models.AvailabilityException,
	from time.Time,
	to time.Time,
	loc *time.Location,
) ([]Occurrence, error) {

	type exKey struct {
		date    string
		blockID uint
	}

	overrides := make(map[exKey]*models.AvailabilityException)
	var standalone []*models.AvailabilityException

	for i := range exceptions {
		ex := &exceptions[i]
		if ex.OriginalAvailabilityID == nil {
			standalone = append(standalone, ex)
			continue
		}
		overrides[exKey{ex.SpecificDate, *ex.OriginalAvailabilityID}] = ex
	}

	var out []Occurrence

	for i := range blocks {
		block := &blocks[i]
		if !block.Active || !block.Recurring {
			continue
		}

		r, err := rrule.NewRRule(rrule.ROption{
			Freq:      rrule.WEEKLY,
			Dtstart:   from.In(loc),
			Byweekday: []rrule.Weekday{rruleWeekdays[block.Weekday%7]},
		})
		if err != nil {
			return nil, err
		}

		for _, day := range r.Between(from, to, true) {
			date := day.In(loc).Format("2006-01-02")

			occ := Occurrence{
				Date:      date,
				StartTime: block.StartTime,
				EndTime:   block.EndTime,
				BlockID:   &block.ID,
			}

			if ex, ok := overrides[exKey{date, block.ID}]; ok {
				occ.ExceptionID = &ex.ID
				if ex.Cancelled {
					occ.Cancelled = true
				} else {
					occ.StartTime = ex.StartTime
					occ.EndTime = ex.EndTime
				}
			}

			out = append(out, occ)
		}
	}

	fromDate := from.In(loc).Format("2006-01-02")
	toDate := to.In(loc).Format("2006-01-02")

	for _, ex := range standalone {
		if ex.Cancelled || ex.SpecificDate < fromDate || ex.SpecificDate > toDate {
			continue
		}
		out = append(out, Occurrence{
			Date:        ex.SpecificDate,
			StartTime:   ex.StartTime,
			EndTime:     ex.EndTime,
			ExceptionID: &ex.ID,
		})
	}

	return out, nil
}

// Window é uma janela aberta de atendimento em uma data específica.
type Window struct {
	StartTime string
	EndTime   string
}

// WindowsForDate reduz blocos+exceções à disponibilidade efetiva de um
// dia: bloco recorrente do weekday ajustado pela exceção da data, mais
// slots avulsos da data.
func WindowsForDate(
	blocks []models.AvailabilityBlock,
	exceptions []models.AvailabilityException,
	date time.Time,
) []Window {

	dateStr := date.Format("2006-01-02")
	weekday := int(date.Weekday())

	var windows []Window

	for i := range blocks {
		block := &blocks[i]
		if !block.Active || !block.Recurring || block.Weekday != weekday {
			continue
		}

		start, end := block.StartTime, block.EndTime
		skip := false

		for j := range exceptions {
			ex := &exceptions[j]
			if ex.OriginalAvailabilityID == nil ||
				*ex.OriginalAvailabilityID != block.ID ||
				ex.SpecificDate != dateStr {
				continue
			}
			if ex.Cancelled {
				skip = true
			} else {
				start, end = ex.StartTime, ex.EndTime
			}
			break
		}

		if !skip && start != "" && end != "" {
			windows = append(windows, Window{StartTime: start, EndTime: end})
		}
	}

	for j := range exceptions {
		ex := &exceptions[j]
		if ex.OriginalAvailabilityID != nil || ex.Cancelled || ex.SpecificDate != dateStr {
			continue
		}
		windows = append(windows, Window{StartTime: ex.StartTime, EndTime: ex.EndTime})
	}

	return windows
}
