package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureIANA(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"canonical is identity", "America/Chicago", "America/Chicago"},
		{"canonical sao paulo", "America/Sao_Paulo", "America/Sao_Paulo"},
		{"utc", "UTC", "UTC"},
		{"display annotation stripped", "America/Chicago (GMT-05:00)", "America/Chicago"},
		{"annotation before zone", "(GMT-03:00) America/Sao_Paulo", "America/Sao_Paulo"},
		{"legacy abbreviation", "EST", "America/New_York"},
		{"legacy abbreviation lowercase", "pst", "America/Los_Angeles"},
		{"space instead of underscore", "America/Sao Paulo", "America/Sao_Paulo"},
		{"garbage falls back", "Planet/Mars", DefaultTimezone},
		{"empty falls back", "", DefaultTimezone},
		{"whitespace falls back", "   ", DefaultTimezone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EnsureIANA(tt.input))
		})
	}
}

func TestCreateDateTime(t *testing.T) {
	got, err := CreateDateTime("2025-05-05", "09:30", "America/Chicago")
	require.NoError(t, err)

	loc, _ := time.LoadLocation("America/Chicago")
	want := time.Date(2025, 5, 5, 9, 30, 0, 0, loc)
	assert.True(t, got.Equal(want))
}

func TestCreateDateTimeRejectsMalformedTime(t *testing.T) {
	bad := []string{
		"09:30:00", // três partes
		"0930",
		"ab:cd",
		"24:00",
		"12:60",
		"-1:15",
		"",
	}

	for _, hm := range bad {
		t.Run(hm, func(t *testing.T) {
			got, err := CreateDateTime("2025-05-05", hm, "America/Chicago")
			assert.Error(t, err)
			assert.True(t, got.IsZero())
		})
	}
}

func TestCreateDateTimeRejectsMalformedDate(t *testing.T) {
	_, err := CreateDateTime("05/05/2025", "09:30", "America/Chicago")
	assert.Error(t, err)
}

func TestIsDSTTransition(t *testing.T) {
	// 2025-03-09 02:30 não existe em Chicago (spring forward)
	assert.True(t, IsDSTTransition("2025-03-09", "02:30", "America/Chicago"))

	// horário comum, longe de qualquer transição
	assert.False(t, IsDSTTransition("2025-05-01", "12:00", "America/Chicago"))

	// fall back: 2025-11-02 01:30 é ambíguo em Chicago
	assert.True(t, IsDSTTransition("2025-11-02", "01:30", "America/Chicago"))

	// entrada irresolúvel nunca lança e conta como "não é DST"
	assert.False(t, IsDSTTransition("not-a-date", "02:30", "America/Chicago"))
	assert.False(t, IsDSTTransition("2025-03-09", "zz:zz", "America/Chicago"))
}

func TestConvertToZoneKeepsInstant(t *testing.T) {
	utc := time.Date(2025, 5, 5, 14, 30, 0, 0, time.UTC)

	inChicago := ConvertToZone(utc, "America/Chicago")
	assert.True(t, utc.Equal(inChicago))
	assert.Equal(t, "America/Chicago", inChicago.Location().String())

	// projeção é idempotente sobre o instante: A→B == B direto
	viaTokyo := ConvertToZone(ConvertToZone(utc, "Asia/Tokyo"), "America/Chicago")
	assert.True(t, viaTokyo.Equal(inChicago))
	assert.Equal(t, inChicago.Location().String(), viaTokyo.Location().String())
}

func TestFormatZoneDisplay(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"America/Chicago", "Chicago"},
		{"America/Sao_Paulo", "Sao Paulo"},
		{"America/Argentina/Buenos_Aires", "Buenos Aires"},
		{"Central Time (US & Canada)", "Central Time"},
		{"UTC", "UTC"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatZoneDisplay(tt.input))
		})
	}
}

func TestLocationNeverNil(t *testing.T) {
	assert.NotNil(t, Location("Planet/Mars"))
	assert.NotNil(t, Location(""))
	assert.Equal(t, DefaultTimezone, Location("garbage").String())
}
