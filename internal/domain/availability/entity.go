package availability

// EditMode é a variante resolvida UMA vez no início da edição,
// substituindo as combinações soltas de flags booleanas.
type EditMode int

const (
	// ModeRecurringBase: editando o bloco recorrente em si;
	// o escopo decide entre "só esta ocorrência" e "toda a série".
	ModeRecurringBase EditMode = iota

	// ModeException: editando uma exceção já existente de uma data.
	ModeException

	// ModeStandalone: editando um slot avulso já existente.
	ModeStandalone

	// ModeNewStandalone: criando um slot avulso (upsert por clínico+data).
	ModeNewStandalone
)

func (m EditMode) String() string {
	switch m {
	case ModeRecurringBase:
		return "recurring_base"
	case ModeException:
		return "exception"
	case ModeStandalone:
		return "standalone"
	case ModeNewStandalone:
		return "new_standalone"
	}
	return "unknown"
}

// EditScope só se aplica a ModeRecurringBase.
type EditScope string

const (
	ScopeOccurrence EditScope = "occurrence"
	ScopeSeries     EditScope = "series"
)

// BlockRef descreve o bloco sendo editado, como chega da UI.
type BlockRef struct {
	ID           uint
	IsRecurring  bool
	IsException  bool
	IsStandalone bool

	// id do bloco recorrente de origem quando a edição parte
	// de uma exceção; zero quando não há origem
	OriginalID uint
}

// ResolveEditMode classifica a edição a partir das flags do bloco.
// A precedência segue o fluxo original: exceção ganha de recorrente.
func ResolveEditMode(ref BlockRef) EditMode {
	switch {
	case ref.IsException:
		return ModeException
	case ref.IsRecurring:
		return ModeRecurringBase
	case ref.IsStandalone:
		return ModeStandalone
	default:
		return ModeNewStandalone
	}
}
