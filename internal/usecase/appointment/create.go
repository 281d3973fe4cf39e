package appointment

import (
	"context"
	"time"

	"github.com/VidaPlenaApps/clinic-scheduler/internal/audit"
	domain "github.com/VidaPlenaApps/clinic-scheduler/internal/domain/appointment"
	availdomain "github.com/VidaPlenaApps/clinic-scheduler/internal/domain/availability"
	"github.com/VidaPlenaApps/clinic-scheduler/internal/httperr"
	"github.com/VidaPlenaApps/clinic-scheduler/internal/models"
	"github.com/VidaPlenaApps/clinic-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClinicID    uint
	ClinicianID uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	SessionTypeID uint

	Date  string
	Time  string
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Clínica
	// --------------------------------------------------
	clinic, err := uc.repo.GetClinicByID(ctx, in.ClinicID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Data / hora na zona da clínica
	// --------------------------------------------------
	start, err := timezone.CreateDateTime(in.Date, in.Time, clinic.Timezone)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	// --------------------------------------------------
	// 3. Antecedência mínima
	// --------------------------------------------------
	minAdvance := clinic.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = 120
	}

	now := timezone.NowIn(clinic.Timezone)
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	// --------------------------------------------------
	// 4. Tipo de sessão
	// --------------------------------------------------
	sessionType, err := uc.repo.GetSessionType(
		ctx,
		in.ClinicID,
		in.SessionTypeID,
	)
	if err != nil {
		return nil, httperr.ErrBusiness("session_type_not_found")
	}

	end := start.Add(time.Duration(sessionType.DurationMin) * time.Minute)

	// --------------------------------------------------
	// 5. Disponibilidade efetiva (blocos + exceções)
	// --------------------------------------------------
	ok, err := uc.isWithinAvailability(ctx, in.ClinicianID, clinic.Timezone, start, end)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httperr.ErrBusiness("outside_availability")
	}

	// --------------------------------------------------
	// 6. Cliente (get or create)
	// --------------------------------------------------
	client, err := uc.repo.GetOrCreateClient(
		ctx,
		in.ClinicID,
		in.ClientName,
		in.ClientPhone,
		in.ClientEmail,
	)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 7. Conflito de horário
	// --------------------------------------------------
	if err := uc.repo.AssertNoTimeConflict(
		ctx,
		in.ClinicianID,
		start,
		end,
	); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 8. Criação da sessão
	// --------------------------------------------------
	ap := &models.Appointment{
		ClinicID:      in.ClinicID,
		ClinicianID:   in.ClinicianID,
		ClientID:      client.ID,
		SessionTypeID: sessionType.ID,
		StartTime:     start,
		EndTime:       end,
		Status:        string(domain.StatusScheduled),
		Notes:         in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 9. Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		ClinicID: in.ClinicID,
		UserID:   &in.ClinicianID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

// isWithinAvailability valida a janela contra a disponibilidade efetiva
// do dia: bloco recorrente do weekday ajustado pela exceção da data,
// mais slots avulsos.
func (uc *CreateAppointment) isWithinAvailability(
	ctx context.Context,
	clinicianID uint,
	tz string,
	start time.Time,
	end time.Time,
) (bool, error) {

	blocks, err := uc.repo.ListAvailabilityBlocks(ctx, clinicianID)
	if err != nil {
		return false, err
	}

	date := start.Format("2006-01-02")

	exceptions, err := uc.repo.ListExceptionsForDate(ctx, clinicianID, date)
	if err != nil {
		return false, err
	}

	windows := availdomain.WindowsForDate(blocks, exceptions, start)

	for _, w := range windows {
		winStart, err := timezone.CreateDateTime(date, w.StartTime, tz)
		if err != nil {
			continue
		}
		winEnd, err := timezone.CreateDateTime(date, w.EndTime, tz)
		if err != nil {
			continue
		}

		if !start.Before(winStart) && !end.After(winEnd) {
			return true, nil
		}
	}

	return false, nil
}
