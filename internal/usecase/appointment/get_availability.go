package appointment

import (
	"context"
	"sort"
	"time"

	domain "github.com/VidaPlenaApps/clinic-scheduler/internal/domain/appointment"
	availdomain "github.com/VidaPlenaApps/clinic-scheduler/internal/domain/availability"
	"github.com/VidaPlenaApps/clinic-scheduler/internal/httperr"
	"github.com/VidaPlenaApps/clinic-scheduler/internal/timezone"
)

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

// Execute devolve os slots livres de um dia: janelas efetivas
// (blocos + exceções) fatiadas pela duração do tipo de sessão,
// descontando as sessões já agendadas.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	sessionType, err := uc.repo.GetSessionType(ctx, in.ClinicID, in.SessionTypeID)
	if err != nil {
		return nil, httperr.ErrBusiness("session_type_not_found")
	}

	blocks, err := uc.repo.ListAvailabilityBlocks(ctx, in.ClinicianID)
	if err != nil {
		return nil, err
	}

	date := in.Date.Format("2006-01-02")

	exceptions, err := uc.repo.ListExceptionsForDate(ctx, in.ClinicianID, date)
	if err != nil {
		return nil, err
	}

	windows := availdomain.WindowsForDate(blocks, exceptions, in.Date)
	if len(windows) == 0 {
		return []domain.TimeSlot{}, nil
	}

	loc := in.Date.Location()
	tz := loc.String()

	dayStart := time.Date(in.Date.Year(), in.Date.Month(), in.Date.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.Add(24 * time.Hour)

	appointments, err := uc.repo.ListAppointmentsForDay(
		ctx,
		in.ClinicianID,
		dayStart,
		dayEnd,
	)
	if err != nil {
		return nil, err
	}

	slotDuration := time.Duration(sessionType.DurationMin) * time.Minute
	slots := []domain.TimeSlot{}

	for _, w := range windows {
		winStart, err := timezone.CreateDateTime(date, w.StartTime, tz)
		if err != nil {
			continue
		}
		winEnd, err := timezone.CreateDateTime(date, w.EndTime, tz)
		if err != nil {
			continue
		}

		for cur := winStart; !cur.Add(slotDuration).After(winEnd); cur = cur.Add(slotDuration) {

			slotStart := cur
			slotEnd := cur.Add(slotDuration)

			conflict := false
			for _, ap := range appointments {
				if slotStart.Before(ap.EndTime) && slotEnd.After(ap.StartTime) {
					conflict = true
					break
				}
			}

			if !conflict {
				slots = append(slots, domain.TimeSlot{
					Start: slotStart.Format("15:04"),
					End:   slotEnd.Format("15:04"),
				})
			}
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Start < slots[j].Start
	})

	return slots, nil
}
