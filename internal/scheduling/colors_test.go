package scheduling

import (
	"regexp"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

var hexColor = regexp.MustCompile(`^#[0-9a-f]{6}$`)

func TestPaletteProducesDistinctHexColors(t *testing.T) {
	colors := Palette(8)
	assert.Len(t, colors, 8)
	for _, color := range colors {
		assert.Regexp(t, hexColor, color)
	}
	assert.Len(t, lo.Uniq(colors), 8)
}

func TestPaletteIsDeterministic(t *testing.T) {
	assert.Equal(t, Palette(5), Palette(5))
}

func TestPaletteEmpty(t *testing.T) {
	assert.Empty(t, Palette(0))
}
