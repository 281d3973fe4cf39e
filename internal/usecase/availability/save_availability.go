package availability

import (
	"context"

	"github.com/VidaPlenaApps/clinic-scheduler/internal/audit"
	domain "github.com/VidaPlenaApps/clinic-scheduler/internal/domain/availability"
	"github.com/VidaPlenaApps/clinic-scheduler/internal/httperr"
	"github.com/VidaPlenaApps/clinic-scheduler/internal/models"
	"github.com/VidaPlenaApps/clinic-scheduler/internal/notify"
	"github.com/VidaPlenaApps/clinic-scheduler/internal/timezone"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type SaveAvailabilityInput struct {
	ClinicID    uint
	ClinicianID uint

	Date      string // 2006-01-02
	StartTime string // HH:MM
	EndTime   string // HH:MM

	// zona do clínico, usada para validar o horário de parede
	Timezone string

	Block domain.BlockRef
	Scope domain.EditScope
}

type SaveAvailabilityResult struct {
	Mode string `json:"mode"`

	// horário cai em transição de horário de verão; quem decide
	// bloquear ou só avisar é o chamador
	DSTWarning bool `json:"dst_warning"`
}

// ======================================================
// USE CASE
// ======================================================

// AuditSink é satisfeito por *audit.Dispatcher.
type AuditSink interface {
	Dispatch(ev audit.Event)
}

type SaveAvailability struct {
	repo     domain.Repository
	notifier notify.Notifier
	audit    AuditSink
}

func NewSaveAvailability(
	repo domain.Repository,
	notifier notify.Notifier,
	audit AuditSink,
) *SaveAvailability {
	return &SaveAvailability{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *SaveAvailability) Execute(
	ctx context.Context,
	in SaveAvailabilityInput,
) (*SaveAvailabilityResult, error) {

	// --------------------------------------------------
	// 1. Pré-condições: sem data ou sem clínico → no-op
	// --------------------------------------------------
	if in.ClinicianID == 0 || in.Date == "" {
		return nil, httperr.ErrBusiness("missing_context")
	}

	// --------------------------------------------------
	// 2. Horário de parede na zona do clínico
	// --------------------------------------------------
	tz := timezone.EnsureIANA(in.Timezone)

	start, err := timezone.CreateDateTime(in.Date, in.StartTime, tz)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_start_time")
	}

	end, err := timezone.CreateDateTime(in.Date, in.EndTime, tz)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_end_time")
	}

	if !end.After(start) {
		return nil, httperr.ErrBusiness("end_before_start")
	}

	result := &SaveAvailabilityResult{
		DSTWarning: timezone.IsDSTTransition(in.Date, in.StartTime, tz) ||
			timezone.IsDSTTransition(in.Date, in.EndTime, tz),
	}

	// --------------------------------------------------
	// 3. Modo resolvido uma única vez
	// --------------------------------------------------
	mode := domain.ResolveEditMode(in.Block)
	result.Mode = mode.String()

	switch mode {
	case domain.ModeRecurringBase:
		err = uc.saveRecurringBase(ctx, in)

	case domain.ModeException:
		err = uc.upsertException(ctx, in, optionalID(in.Block.OriginalID))

	case domain.ModeStandalone, domain.ModeNewStandalone:
		// slot avulso: upsert por (clínico, data, origem nula)
		err = uc.upsertException(ctx, in, nil)
	}

	// --------------------------------------------------
	// 4. Notificação + auditoria
	// --------------------------------------------------
	if err != nil {
		uc.notifier.Notify(notify.SeverityError, "Não foi possível salvar a disponibilidade.")
		return nil, err
	}

	uc.notifier.Notify(notify.SeveritySuccess, "Disponibilidade atualizada.")

	uc.audit.Dispatch(audit.Event{
		ClinicID: in.ClinicID,
		UserID:   &in.ClinicianID,
		Action:   "availability_updated",
		Entity:   "availability",
		Metadata: map[string]any{
			"mode":  result.Mode,
			"date":  in.Date,
			"start": in.StartTime,
			"end":   in.EndTime,
		},
	})

	return result, nil
}

// saveRecurringBase decide entre "só esta ocorrência" e "toda a série".
func (uc *SaveAvailability) saveRecurringBase(
	ctx context.Context,
	in SaveAvailabilityInput,
) error {

	// a edição referencia um bloco que precisa existir e ser do clínico
	block, err := uc.repo.GetBlock(ctx, in.ClinicianID, in.Block.ID)
	if err != nil || block == nil {
		return httperr.ErrBusiness("block_not_found")
	}

	if in.Scope == domain.ScopeSeries {
		// série inteira: só o bloco base muda; exceções de outras
		// datas ficam como estão (não são regeneradas)
		return uc.repo.UpdateBlockTimes(
			ctx,
			in.ClinicianID,
			in.Block.ID,
			in.StartTime,
			in.EndTime,
		)
	}

	return uc.upsertException(ctx, in, optionalID(in.Block.ID))
}

// upsertException procura pela tripla exata (clínico, data, origem) e
// atualiza a linha existente ou cria uma nova; origem nula é chave
// distinta, então slot avulso nunca colide com exceção de bloco.
func (uc *SaveAvailability) upsertException(
	ctx context.Context,
	in SaveAvailabilityInput,
	originalID *uint,
) error {

	existing, err := uc.repo.FindException(ctx, in.ClinicianID, in.Date, originalID)
	if err != nil {
		return err
	}

	if existing != nil {
		existing.StartTime = in.StartTime
		existing.EndTime = in.EndTime
		existing.Cancelled = false
		return uc.repo.UpdateException(ctx, existing)
	}

	ex := &models.AvailabilityException{
		ClinicianID:            in.ClinicianID,
		SpecificDate:           in.Date,
		OriginalAvailabilityID: originalID,
		StartTime:              in.StartTime,
		EndTime:                in.EndTime,
		Cancelled:              false,
	}

	return uc.repo.CreateException(ctx, ex)
}

func optionalID(id uint) *uint {
	if id == 0 {
		return nil
	}
	return &id
}
