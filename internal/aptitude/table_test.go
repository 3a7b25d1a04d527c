package aptitude

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	require.NoError(t, Validate())
}

func TestPairs_ReturnsCopy(t *testing.T) {
	p := Pairs()
	require.Len(t, p, 16)
	p[0].Descriptor = "mutated"
	assert.Equal(t, "天灵根 (火)", Pairs()[0].Descriptor)

	pk := Peaks()
	require.Len(t, pk, 9)
	pk[0] = "x"
	assert.Equal(t, "逍遥峰", Peaks()[0])
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name         string
		descriptor   string
		constitution string
		wantKey      string
	}{
		{"notable constitution wins", "天灵根 (火)", "纯阳之体", "纯阳之体"},
		{"plain body uses root lore", "真灵根 (金、木、水)", "凡体 (良)", "真灵根"},
		{"wind root", "变异灵根 (风)", "凡体", "风"},
		{"wind loses to constitution", "变异灵根 (风)", "通玉凤髓之体", "通玉凤髓之体"},
		{"unmeasured", Unmeasured, DefaultConstitution, Unmeasured},
		{"unknown root falls back", "不存在灵根", "凡体", "凡体"},
		{"empty descriptor", "", "", Unmeasured},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want, ok := Lore(tt.wantKey)
			require.True(t, ok)
			assert.Equal(t, want, Describe(tt.descriptor, tt.constitution))
		})
	}
}
