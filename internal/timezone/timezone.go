package timezone

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultTimezone é usado quando nenhuma zona válida pode ser resolvida.
// Pode ser trocado no boot via SetDefault (config DEFAULT_TIMEZONE).
const DefaultTimezone = "America/Sao_Paulo"

var (
	defaultZone = DefaultTimezone
	log         = zap.NewNop()
)

// SetDefault troca a zona de fallback. Chamar apenas no boot.
func SetDefault(tz string) {
	if IsValid(tz) {
		defaultZone = tz
	}
}

// SetLogger injeta o logger do serviço. Chamar apenas no boot.
func SetLogger(l *zap.Logger) {
	if l != nil {
		log = l
	}
}

// Abreviações legadas que ainda chegam de perfis antigos.
var legacyZones = map[string]string{
	"EST": "America/New_York",
	"EDT": "America/New_York",
	"CST": "America/Chicago",
	"CDT": "America/Chicago",
	"MST": "America/Denver",
	"MDT": "America/Denver",
	"PST": "America/Los_Angeles",
	"PDT": "America/Los_Angeles",
	"BRT": "America/Sao_Paulo",
	"UTC": "UTC",
	"GMT": "UTC",
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// EnsureIANA normaliza uma zona possivelmente inválida ou em formato de
// exibição ("America/Chicago (GMT-05:00)") para um identificador IANA.
// Nunca retorna zona inválida: entrada irrecuperável degrada para o default.
func EnsureIANA(tz string) string {
	raw := strings.TrimSpace(tz)
	if raw == "" {
		return defaultZone
	}

	cleaned := strings.TrimSpace(stripParens(raw))

	// abreviações primeiro: o banco tz tem zonas legadas chamadas
	// "EST"/"MST" que passariam no IsValid mas não são o que o
	// usuário quis dizer
	if mapped, ok := legacyZones[strings.ToUpper(cleaned)]; ok {
		return mapped
	}

	if IsValid(cleaned) {
		return cleaned
	}

	// formulários antigos mandam "America/Sao Paulo"
	underscored := strings.ReplaceAll(cleaned, " ", "_")
	if IsValid(underscored) {
		return underscored
	}

	log.Warn("unresolvable timezone, using default",
		zap.String("input", tz),
		zap.String("default", defaultZone),
	)
	return defaultZone
}

// Location resolve a *time.Location de uma zona já passada por EnsureIANA.
func Location(tz string) *time.Location {
	if loc, err := time.LoadLocation(EnsureIANA(tz)); err == nil {
		return loc
	}

	loc, _ := time.LoadLocation(defaultZone)
	return loc
}

func Now() time.Time {
	return time.Now().In(Location(defaultZone))
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// CreateDateTime combina data civil "2006-01-02" e hora "HH:MM",
// interpretadas na zona dada, em um instante absoluto.
func CreateDateTime(date, hm, tz string) (time.Time, error) {
	loc := Location(tz)

	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}

	parts := strings.Split(hm, ":")
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("invalid time %q", hm)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return time.Time{}, fmt.Errorf("invalid hour in %q", hm)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return time.Time{}, fmt.Errorf("invalid minute in %q", hm)
	}

	return time.Date(
		day.Year(), day.Month(), day.Day(),
		hour, minute, 0, 0,
		loc,
	), nil
}

// IsDSTTransition detecta se um horário de parede cai dentro de uma
// transição de horário de verão (hora pulada ou repetida): compara o
// offset UTC uma hora antes e uma hora depois do instante candidato.
// Entrada irresolúvel conta como "não é problema de DST" e retorna false.
func IsDSTTransition(date, hm, tz string) bool {
	t, err := CreateDateTime(date, hm, tz)
	if err != nil {
		log.Debug("dst check skipped",
			zap.String("date", date),
			zap.String("time", hm),
			zap.Error(err),
		)
		return false
	}

	_, before := t.Add(-time.Hour).Zone()
	_, after := t.Add(time.Hour).Zone()

	return before != after
}

// ConvertToZone reprojeta o instante na zona alvo sem alterá-lo.
func ConvertToZone(t time.Time, tz string) time.Time {
	return t.In(Location(tz))
}

// FormatZoneDisplay gera um rótulo humano para a zona: remove anotações
// entre parênteses ou usa o último segmento do caminho IANA.
func FormatZoneDisplay(tz string) string {
	trimmed := strings.TrimSpace(tz)
	if trimmed == "" {
		return ""
	}

	if strings.Contains(trimmed, "(") {
		if label := strings.TrimSpace(stripParens(trimmed)); label != "" {
			return label
		}
	}

	seg := trimmed
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		seg = trimmed[idx+1:]
	}

	return strings.ReplaceAll(seg, "_", " ")
}

func stripParens(s string) string {
	var b strings.Builder
	depth := 0

	for _, r := range s {
		switch {
		case r == '(':
			depth++
		case r == ')':
			if depth > 0 {
				depth--
			}
		case depth == 0:
			b.WriteRune(r)
		}
	}

	return b.String()
}
