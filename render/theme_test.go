package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveThemeDeterministic(t *testing.T) {
	a := ResolveTheme("#1a3c6e", "#5a6270", TemplateBaseline)
	b := ResolveTheme("#1a3c6e", "#5a6270", TemplateBaseline)
	require.Equal(t, a, b)
}

func TestResolveThemeMalformedHexFallsBack(t *testing.T) {
	got := ResolveTheme("not-a-color", "", TemplateBaseline)
	assert.Equal(t, defaultPrimary, got.Primary)
	assert.Equal(t, defaultSecondary, got.Secondary)
}

func TestResolveThemeTemplateOverridesSubsetOnly(t *testing.T) {
	base := ResolveTheme("#336699", "#5a6270", TemplateBaseline)
	classic := ResolveTheme("#336699", "#5a6270", TemplateClassic)

	// Overridden tokens change, untouched tokens keep the baseline.
	assert.Equal(t, RGB{40, 40, 40}, classic.Header)
	assert.Equal(t, RGB{40, 40, 40}, classic.TotalsCardBg)
	assert.Equal(t, base.ZebraBg, classic.ZebraBg)
	assert.Equal(t, base.Border, classic.Border)
	assert.Equal(t, base.Primary, classic.Primary)
}

func TestParseTemplateUnknownIsBaseline(t *testing.T) {
	assert.Equal(t, TemplateBaseline, ParseTemplate(""))
	assert.Equal(t, TemplateBaseline, ParseTemplate("glitter"))
	assert.Equal(t, TemplateClassic, ParseTemplate("classic"))
	assert.Equal(t, TemplateCompact, ParseTemplate("compact"))
	assert.Equal(t, TemplateVibrant, ParseTemplate("vibrant"))
}

func TestAdjustClamps(t *testing.T) {
	assert.Equal(t, RGB{255, 255, 255}, adjust(RGB{10, 120, 250}, 1))
	assert.Equal(t, RGB{0, 0, 0}, adjust(RGB{10, 120, 250}, -1))
	assert.Equal(t, RGB{10, 120, 250}, adjust(RGB{10, 120, 250}, 0))
}

func TestAdjustMovesTowardWhiteAndBlack(t *testing.T) {
	c := RGB{100, 150, 200}
	lighter := adjust(c, 0.5)
	darker := adjust(c, -0.5)

	assert.True(t, lighter.R > c.R && lighter.G > c.G && lighter.B > c.B)
	assert.True(t, darker.R < c.R && darker.G < c.G && darker.B < c.B)
}

func TestParseHex(t *testing.T) {
	assert.Equal(t, RGB{26, 60, 110}, parseHex("#1a3c6e", RGB{}))
	assert.Equal(t, RGB{26, 60, 110}, parseHex("1a3c6e", RGB{}))
	assert.Equal(t, RGB{1, 2, 3}, parseHex("zzz", RGB{1, 2, 3}))
	assert.Equal(t, RGB{1, 2, 3}, parseHex("", RGB{1, 2, 3}))
}
