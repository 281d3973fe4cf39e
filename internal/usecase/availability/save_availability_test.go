package availability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VidaPlenaApps/clinic-scheduler/internal/audit"
	domain "github.com/VidaPlenaApps/clinic-scheduler/internal/domain/availability"
	"github.com/VidaPlenaApps/clinic-scheduler/internal/httperr"
	"github.com/VidaPlenaApps/clinic-scheduler/internal/models"
	"github.com/VidaPlenaApps/clinic-scheduler/internal/notify"
)

// ======================================================
// FAKES
// ======================================================

type fakeRepo struct {
	blocks     map[uint]*models.AvailabilityBlock
	exceptions []*models.AvailabilityException

	nextID           uint
	blockTimeUpdates int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		blocks: map[uint]*models.AvailabilityBlock{},
		nextID: 1,
	}
}

func sameOrigin(a, b *uint) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (r *fakeRepo) FindException(
	_ context.Context,
	clinicianID uint,
	date string,
	originalID *uint,
) (*models.AvailabilityException, error) {

	for _, ex := range r.exceptions {
		if ex.ClinicianID == clinicianID &&
			ex.SpecificDate == date &&
			sameOrigin(ex.OriginalAvailabilityID, originalID) &&
			!ex.Cancelled {
			return ex, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) CreateException(_ context.Context, ex *models.AvailabilityException) error {
	ex.ID = r.nextID
	r.nextID++
	r.exceptions = append(r.exceptions, ex)
	return nil
}

func (r *fakeRepo) UpdateException(_ context.Context, ex *models.AvailabilityException) error {
	return nil
}

func (r *fakeRepo) GetBlock(_ context.Context, clinicianID, blockID uint) (*models.AvailabilityBlock, error) {
	return r.blocks[blockID], nil
}

func (r *fakeRepo) UpdateBlockTimes(_ context.Context, clinicianID, blockID uint, start, end string) error {
	r.blockTimeUpdates++
	b := r.blocks[blockID]
	b.StartTime = start
	b.EndTime = end
	return nil
}

func (r *fakeRepo) ListBlocks(_ context.Context, clinicianID uint) ([]models.AvailabilityBlock, error) {
	var out []models.AvailabilityBlock
	for _, b := range r.blocks {
		out = append(out, *b)
	}
	return out, nil
}

func (r *fakeRepo) ListExceptionsBetween(_ context.Context, clinicianID uint, from, to string) ([]models.AvailabilityException, error) {
	var out []models.AvailabilityException
	for _, ex := range r.exceptions {
		if ex.SpecificDate >= from && ex.SpecificDate <= to {
			out = append(out, *ex)
		}
	}
	return out, nil
}

// failingRepo simula banco indisponível nas escritas.
type failingRepo struct {
	*fakeRepo
}

var errStorage = errors.New("storage unavailable")

func (r *failingRepo) CreateException(_ context.Context, _ *models.AvailabilityException) error {
	return errStorage
}

func (r *failingRepo) UpdateBlockTimes(_ context.Context, _, _ uint, _, _ string) error {
	return errStorage
}

type fakeNotifier struct {
	last notify.Severity
	msgs []string
}

func (n *fakeNotifier) Notify(severity notify.Severity, message string) {
	n.last = severity
	n.msgs = append(n.msgs, message)
}

type fakeAudit struct {
	events []audit.Event
}

func (a *fakeAudit) Dispatch(ev audit.Event) {
	a.events = append(a.events, ev)
}

// ======================================================
// HELPERS
// ======================================================

func newUC(repo *fakeRepo) (*SaveAvailability, *fakeNotifier, *fakeAudit) {
	notifier := &fakeNotifier{}
	sink := &fakeAudit{}
	return NewSaveAvailability(repo, notifier, sink), notifier, sink
}

func mondayBlock(repo *fakeRepo) *models.AvailabilityBlock {
	b := &models.AvailabilityBlock{
		ID:          1,
		ClinicianID: 10,
		Weekday:     1, // segunda
		StartTime:   "09:00",
		EndTime:     "10:00",
		Recurring:   true,
		Active:      true,
	}
	repo.blocks[b.ID] = b
	return b
}

func baseInput(block *models.AvailabilityBlock) SaveAvailabilityInput {
	return SaveAvailabilityInput{
		ClinicID:    1,
		ClinicianID: 10,
		Date:        "2025-05-05", // uma segunda-feira
		StartTime:   "09:30",
		EndTime:     "10:30",
		Timezone:    "America/Chicago",
		Block: domain.BlockRef{
			ID:          block.ID,
			IsRecurring: true,
		},
		Scope: domain.ScopeOccurrence,
	}
}

// ======================================================
// TESTS
// ======================================================

func TestOccurrenceEditCreatesSingleException(t *testing.T) {
	repo := newFakeRepo()
	block := mondayBlock(repo)
	uc, notifier, sink := newUC(repo)

	result, err := uc.Execute(context.Background(), baseInput(block))
	require.NoError(t, err)

	assert.Equal(t, "recurring_base", result.Mode)
	require.Len(t, repo.exceptions, 1)

	ex := repo.exceptions[0]
	require.NotNil(t, ex.OriginalAvailabilityID)
	assert.Equal(t, block.ID, *ex.OriginalAvailabilityID)
	assert.Equal(t, "2025-05-05", ex.SpecificDate)
	assert.Equal(t, "09:30", ex.StartTime)
	assert.Equal(t, "10:30", ex.EndTime)
	assert.False(t, ex.Cancelled)

	// o bloco base continua intacto para as outras segundas
	assert.Equal(t, "09:00", block.StartTime)
	assert.Equal(t, "10:00", block.EndTime)
	assert.Zero(t, repo.blockTimeUpdates)

	assert.Equal(t, notify.SeveritySuccess, notifier.last)
	require.Len(t, sink.events, 1)
	assert.Equal(t, "availability_updated", sink.events[0].Action)
}

func TestOccurrenceEditUpdatesExistingException(t *testing.T) {
	repo := newFakeRepo()
	block := mondayBlock(repo)
	uc, _, _ := newUC(repo)

	_, err := uc.Execute(context.Background(), baseInput(block))
	require.NoError(t, err)

	in := baseInput(block)
	in.StartTime = "11:00"
	in.EndTime = "12:00"

	_, err = uc.Execute(context.Background(), in)
	require.NoError(t, err)

	// segunda gravação atualiza a mesma linha, nunca duplica
	require.Len(t, repo.exceptions, 1)
	assert.Equal(t, "11:00", repo.exceptions[0].StartTime)
	assert.Equal(t, "12:00", repo.exceptions[0].EndTime)
}

func TestSeriesEditUpdatesOnlyBaseBlock(t *testing.T) {
	repo := newFakeRepo()
	block := mondayBlock(repo)
	uc, _, _ := newUC(repo)

	// exceção pré-existente em outra data
	preexisting := &models.AvailabilityException{
		ClinicianID:            10,
		SpecificDate:           "2025-05-12",
		OriginalAvailabilityID: &block.ID,
		StartTime:              "14:00",
		EndTime:                "15:00",
	}
	require.NoError(t, repo.CreateException(context.Background(), preexisting))

	in := baseInput(block)
	in.Scope = domain.ScopeSeries

	result, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "recurring_base", result.Mode)

	assert.Equal(t, "09:30", block.StartTime)
	assert.Equal(t, "10:30", block.EndTime)
	assert.Equal(t, 1, repo.blockTimeUpdates)

	// exceções de outras datas não são regeneradas
	require.Len(t, repo.exceptions, 1)
	assert.Equal(t, "14:00", repo.exceptions[0].StartTime)
}

func TestNewStandaloneIsUpsert(t *testing.T) {
	repo := newFakeRepo()
	uc, _, _ := newUC(repo)

	in := SaveAvailabilityInput{
		ClinicID:    1,
		ClinicianID: 10,
		Date:        "2025-05-06",
		StartTime:   "08:00",
		EndTime:     "09:00",
		Timezone:    "America/Chicago",
		Block:       domain.BlockRef{}, // nenhuma flag: slot novo
	}

	result, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "new_standalone", result.Mode)

	in.StartTime = "08:30"
	_, err = uc.Execute(context.Background(), in)
	require.NoError(t, err)

	// segunda chamada atualiza, não duplica
	require.Len(t, repo.exceptions, 1)
	assert.Nil(t, repo.exceptions[0].OriginalAvailabilityID)
	assert.Equal(t, "08:30", repo.exceptions[0].StartTime)
}

func TestStandaloneDoesNotCollideWithRecurringException(t *testing.T) {
	repo := newFakeRepo()
	block := mondayBlock(repo)
	uc, _, _ := newUC(repo)

	// exceção do bloco recorrente na data
	_, err := uc.Execute(context.Background(), baseInput(block))
	require.NoError(t, err)

	// slot avulso na MESMA data: origem nula é chave distinta
	in := baseInput(block)
	in.Block = domain.BlockRef{}
	in.StartTime = "18:00"
	in.EndTime = "19:00"

	_, err = uc.Execute(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, repo.exceptions, 2)
	assert.NotNil(t, repo.exceptions[0].OriginalAvailabilityID)
	assert.Nil(t, repo.exceptions[1].OriginalAvailabilityID)
}

func TestMissingContextIsNoOp(t *testing.T) {
	repo := newFakeRepo()
	block := mondayBlock(repo)
	uc, notifier, _ := newUC(repo)

	noDate := baseInput(block)
	noDate.Date = ""
	_, err := uc.Execute(context.Background(), noDate)
	assert.True(t, httperr.IsBusiness(err, "missing_context"))

	noClinician := baseInput(block)
	noClinician.ClinicianID = 0
	_, err = uc.Execute(context.Background(), noClinician)
	assert.True(t, httperr.IsBusiness(err, "missing_context"))

	assert.Empty(t, repo.exceptions)
	assert.Empty(t, notifier.msgs)
}

func TestInvalidTimesRejected(t *testing.T) {
	repo := newFakeRepo()
	block := mondayBlock(repo)
	uc, _, _ := newUC(repo)

	in := baseInput(block)
	in.StartTime = "09:30:00"
	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "invalid_start_time"))

	in = baseInput(block)
	in.EndTime = "xx:yy"
	_, err = uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "invalid_end_time"))

	in = baseInput(block)
	in.StartTime = "10:30"
	in.EndTime = "09:30"
	_, err = uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "end_before_start"))

	assert.Empty(t, repo.exceptions)
}

func TestDSTWarningFlag(t *testing.T) {
	repo := newFakeRepo()
	uc, _, _ := newUC(repo)

	in := SaveAvailabilityInput{
		ClinicID:    1,
		ClinicianID: 10,
		Date:        "2025-03-09", // spring forward em Chicago
		StartTime:   "02:30",
		EndTime:     "04:00",
		Timezone:    "America/Chicago",
		Block:       domain.BlockRef{},
	}

	result, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, result.DSTWarning)

	in.Date = "2025-05-06"
	in.StartTime = "09:00"
	in.EndTime = "10:00"

	result, err = uc.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.False(t, result.DSTWarning)
}

func TestPersistenceFailureNotifiesAndSkipsAudit(t *testing.T) {
	base := newFakeRepo()
	block := mondayBlock(base)
	repo := &failingRepo{fakeRepo: base}

	notifier := &fakeNotifier{}
	sink := &fakeAudit{}
	uc := NewSaveAvailability(repo, notifier, sink)

	// ocorrência: CreateException falha
	_, err := uc.Execute(context.Background(), baseInput(block))
	require.ErrorIs(t, err, errStorage)

	assert.Equal(t, notify.SeverityError, notifier.last)
	assert.Empty(t, sink.events)
	assert.Empty(t, base.exceptions)

	// série: UpdateBlockTimes falha, igualmente sem auditoria
	in := baseInput(block)
	in.Scope = domain.ScopeSeries

	_, err = uc.Execute(context.Background(), in)
	require.ErrorIs(t, err, errStorage)

	assert.Equal(t, notify.SeverityError, notifier.last)
	assert.Empty(t, sink.events)

	// o bloco base segue como estava: a UI pode tentar de novo
	assert.Equal(t, "09:00", block.StartTime)
	assert.Equal(t, "10:00", block.EndTime)
}

func TestRecurringEditUnknownBlockRejected(t *testing.T) {
	repo := newFakeRepo()
	uc, _, sink := newUC(repo)

	in := SaveAvailabilityInput{
		ClinicID:    1,
		ClinicianID: 10,
		Date:        "2025-05-05",
		StartTime:   "09:30",
		EndTime:     "10:30",
		Timezone:    "America/Chicago",
		Block: domain.BlockRef{
			ID:          99, // não existe
			IsRecurring: true,
		},
		Scope: domain.ScopeSeries,
	}

	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "block_not_found"))

	assert.Zero(t, repo.blockTimeUpdates)
	assert.Empty(t, repo.exceptions)
	assert.Empty(t, sink.events)
}

func TestExceptionModeUpdatesMatchedRow(t *testing.T) {
	repo := newFakeRepo()
	block := mondayBlock(repo)
	uc, _, _ := newUC(repo)

	_, err := uc.Execute(context.Background(), baseInput(block))
	require.NoError(t, err)

	// a UI reabre a ocorrência já como exceção
	in := baseInput(block)
	in.Block = domain.BlockRef{
		ID:          repo.exceptions[0].ID,
		IsException: true,
		OriginalID:  block.ID,
	}
	in.StartTime = "13:00"
	in.EndTime = "14:00"

	result, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "exception", result.Mode)

	require.Len(t, repo.exceptions, 1)
	assert.Equal(t, "13:00", repo.exceptions[0].StartTime)
}
