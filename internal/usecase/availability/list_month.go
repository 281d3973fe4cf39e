package availability

import (
	"context"
	"time"

	domain "github.com/VidaPlenaApps/clinic-scheduler/internal/domain/availability"
	"github.com/VidaPlenaApps/clinic-scheduler/internal/timezone"
)

type ListMonth struct {
	repo domain.Repository
}

func NewListMonth(repo domain.Repository) *ListMonth {
	return &ListMonth{repo: repo}
}

// Execute materializa o calendário de disponibilidade de um mês:
// blocos semanais expandidos na zona do clínico, exceções aplicadas.
func (uc *ListMonth) Execute(
	ctx context.Context,
	clinicianID uint,
	year int,
	month int,
	tz string,
) ([]domain.Occurrence, error) {

	loc := timezone.Location(tz)

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	to := from.AddDate(0, 1, -1)

	blocks, err := uc.repo.ListBlocks(ctx, clinicianID)
	if err != nil {
		return nil, err
	}

	exceptions, err := uc.repo.ListExceptionsBetween(
		ctx,
		clinicianID,
		from.Format("2006-01-02"),
		to.Format("2006-01-02"),
	)
	if err != nil {
		return nil, err
	}

	return domain.Expand(blocks, exceptions, from, to, loc)
}
