package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VidaPlenaApps/clinic-scheduler/internal/models"
)

func chicagoRange(t *testing.T) (time.Time, time.Time, *time.Location) {
	t.Helper()
	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	from := time.Date(2025, 5, 1, 0, 0, 0, 0, loc)
	to := time.Date(2025, 5, 31, 0, 0, 0, 0, loc)
	return from, to, loc
}

func TestExpandWeeklyBlock(t *testing.T) {
	from, to, loc := chicagoRange(t)

	blocks := []models.AvailabilityBlock{{
		ID:          1,
		ClinicianID: 10,
		Weekday:     1, // segundas
		StartTime:   "09:00",
		EndTime:     "10:00",
		Recurring:   true,
		Active:      true,
	}}

	occs, err := Expand(blocks, nil, from, to, loc)
	require.NoError(t, err)

	// maio de 2025 tem 4 segundas: 5, 12, 19, 26
	require.Len(t, occs, 4)
	assert.Equal(t, "2025-05-05", occs[0].Date)
	assert.Equal(t, "2025-05-26", occs[3].Date)

	for _, occ := range occs {
		assert.Equal(t, "09:00", occ.StartTime)
		assert.Equal(t, "10:00", occ.EndTime)
		assert.False(t, occ.Cancelled)
	}
}

func TestExpandAppliesExceptions(t *testing.T) {
	from, to, loc := chicagoRange(t)

	blockID := uint(1)
	blocks := []models.AvailabilityBlock{{
		ID:          blockID,
		ClinicianID: 10,
		Weekday:     1,
		StartTime:   "09:00",
		EndTime:     "10:00",
		Recurring:   true,
		Active:      true,
	}}

	exceptions := []models.AvailabilityException{
		{
			ID:                     7,
			ClinicianID:            10,
			SpecificDate:           "2025-05-05",
			OriginalAvailabilityID: &blockID,
			StartTime:              "09:30",
			EndTime:                "10:30",
		},
		{
			ID:                     8,
			ClinicianID:            10,
			SpecificDate:           "2025-05-19",
			OriginalAvailabilityID: &blockID,
			Cancelled:              true,
		},
		{
			ID:           9,
			ClinicianID:  10,
			SpecificDate: "2025-05-14",
			StartTime:    "15:00",
			EndTime:      "16:00",
		},
	}

	occs, err := Expand(blocks, exceptions, from, to, loc)
	require.NoError(t, err)

	byDate := map[string]Occurrence{}
	for _, occ := range occs {
		byDate[occ.Date] = occ
	}

	// dia 5: horário da exceção, bloco de origem preservado
	edited := byDate["2025-05-05"]
	assert.Equal(t, "09:30", edited.StartTime)
	assert.Equal(t, "10:30", edited.EndTime)
	require.NotNil(t, edited.BlockID)
	require.NotNil(t, edited.ExceptionID)

	// dia 19: ocorrência cancelada
	assert.True(t, byDate["2025-05-19"].Cancelled)

	// dia 12: intocado
	assert.Equal(t, "09:00", byDate["2025-05-12"].StartTime)

	// dia 14 (quarta): slot avulso, sem bloco de origem
	standalone := byDate["2025-05-14"]
	assert.Nil(t, standalone.BlockID)
	assert.Equal(t, "15:00", standalone.StartTime)
}

func TestExpandSkipsInactiveBlocks(t *testing.T) {
	from, to, loc := chicagoRange(t)

	blocks := []models.AvailabilityBlock{{
		ID:        1,
		Weekday:   1,
		StartTime: "09:00",
		EndTime:   "10:00",
		Recurring: true,
		Active:    false,
	}}

	occs, err := Expand(blocks, nil, from, to, loc)
	require.NoError(t, err)
	assert.Empty(t, occs)
}

func TestWindowsForDate(t *testing.T) {
	loc, _ := time.LoadLocation("America/Chicago")
	monday := time.Date(2025, 5, 5, 0, 0, 0, 0, loc)

	blockID := uint(1)
	blocks := []models.AvailabilityBlock{
		{ID: blockID, Weekday: 1, StartTime: "09:00", EndTime: "10:00", Recurring: true, Active: true},
		{ID: 2, Weekday: 2, StartTime: "11:00", EndTime: "12:00", Recurring: true, Active: true},
	}

	t.Run("sem exceção usa o bloco", func(t *testing.T) {
		windows := WindowsForDate(blocks, nil, monday)
		require.Len(t, windows, 1)
		assert.Equal(t, Window{StartTime: "09:00", EndTime: "10:00"}, windows[0])
	})

	t.Run("exceção sobrescreve o horário", func(t *testing.T) {
		exceptions := []models.AvailabilityException{{
			ClinicianID:            10,
			SpecificDate:           "2025-05-05",
			OriginalAvailabilityID: &blockID,
			StartTime:              "09:30",
			EndTime:                "10:30",
		}}

		windows := WindowsForDate(blocks, exceptions, monday)
		require.Len(t, windows, 1)
		assert.Equal(t, Window{StartTime: "09:30", EndTime: "10:30"}, windows[0])
	})

	t.Run("exceção cancelada remove a janela", func(t *testing.T) {
		exceptions := []models.AvailabilityException{{
			SpecificDate:           "2025-05-05",
			OriginalAvailabilityID: &blockID,
			Cancelled:              true,
		}}

		windows := WindowsForDate(blocks, exceptions, monday)
		assert.Empty(t, windows)
	})

	t.Run("slot avulso entra junto", func(t *testing.T) {
		exceptions := []models.AvailabilityException{{
			SpecificDate: "2025-05-05",
			StartTime:    "18:00",
			EndTime:      "19:00",
		}}

		windows := WindowsForDate(blocks, exceptions, monday)
		require.Len(t, windows, 2)
		assert.Equal(t, Window{StartTime: "18:00", EndTime: "19:00"}, windows[1])
	})
}
