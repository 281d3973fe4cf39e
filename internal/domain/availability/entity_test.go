package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveEditMode(t *testing.T) {
	tests := []struct {
		name string
		ref  BlockRef
		want EditMode
	}{
		{
			"recorrente sem exceção",
			BlockRef{ID: 1, IsRecurring: true},
			ModeRecurringBase,
		},
		{
			"exceção ganha de recorrente",
			BlockRef{ID: 2, IsRecurring: true, IsException: true},
			ModeException,
		},
		{
			"exceção pura",
			BlockRef{ID: 3, IsException: true},
			ModeException,
		},
		{
			"slot avulso existente",
			BlockRef{ID: 4, IsStandalone: true},
			ModeStandalone,
		},
		{
			"nenhuma flag: slot novo",
			BlockRef{},
			ModeNewStandalone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveEditMode(tt.ref))
		})
	}
}

func TestEditModeString(t *testing.T) {
	assert.Equal(t, "recurring_base", ModeRecurringBase.String())
	assert.Equal(t, "exception", ModeException.String())
	assert.Equal(t, "standalone", ModeStandalone.String())
	assert.Equal(t, "new_standalone", ModeNewStandalone.String())
}
