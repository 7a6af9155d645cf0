package render

import "strconv"

// RGB is a color in the 0-255 channel space used by the PDF backend.
type RGB struct {
	R, G, B int
}

// Theme is the resolved token set for one render. It is built once by
// ResolveTheme and read-only afterwards; every layout decision that needs
// a color reads from it.
type Theme struct {
	Primary   RGB
	Secondary RGB
	Header    RGB
	Accent    RGB
	Border    RGB
	Muted     RGB

	TableHeaderBg  RGB
	ZebraBg        RGB
	TotalsCardBg   RGB
	TotalsCardText RGB
	NotesBg        RGB
}

// Template names a known token override set. Unknown identifiers resolve
// to TemplateBaseline, which applies no overrides.
type Template int

const (
	TemplateBaseline Template = iota
	TemplateClassic
	TemplateCompact
	TemplateVibrant
)

// ParseTemplate maps a stored identifier to a Template. Anything
// unrecognized (including "") is the baseline.
func ParseTemplate(s string) Template {
	switch s {
	case "classic":
		return TemplateClassic
	case "compact":
		return TemplateCompact
	case "vibrant":
		return TemplateVibrant
	default:
		return TemplateBaseline
	}
}

// themeOverride holds the subset of tokens a template replaces. Nil
// fields keep the baseline value.
type themeOverride struct {
	Header         *RGB
	Accent         *RGB
	TableHeaderBg  *RGB
	ZebraBg        *RGB
	TotalsCardBg   *RGB
	TotalsCardText *RGB
	NotesBg        *RGB
}

var templateOverrides = map[Template]themeOverride{
	TemplateClassic: {
		Header:        &RGB{40, 40, 40},
		Accent:        &RGB{40, 40, 40},
		TableHeaderBg: &RGB{230, 230, 230},
		TotalsCardBg:  &RGB{40, 40, 40},
	},
	TemplateCompact: {
		ZebraBg:       &RGB{250, 250, 250},
		TableHeaderBg: &RGB{244, 244, 244},
		NotesBg:       &RGB{252, 252, 252},
	},
	TemplateVibrant: {
		Header:         &RGB{255, 255, 255},
		TotalsCardText: &RGB{255, 255, 255},
	},
}

// adjust moves each channel toward white (amount > 0) or black
// (amount < 0). amount is in [-1, 1]; results clamp to [0, 255].
func adjust(c RGB, amount float64) RGB {
	mix := func(ch int) int {
		var v float64
		if amount >= 0 {
			v = float64(ch) + (255-float64(ch))*amount
		} else {
			v = float64(ch) * (1 + amount)
		}
		if v < 0 {
			v = 0
		}
		if v > 255 {
			v = 255
		}
		return int(v + 0.5)
	}
	return RGB{mix(c.R), mix(c.G), mix(c.B)}
}

// parseHex reads "#rrggbb" (a leading '#' is optional) and falls back to
// def on any malformed input.
func parseHex(s string, def RGB) RGB {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 {
		return def
	}
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return def
	}
	return RGB{int(n >> 16 & 0xff), int(n >> 8 & 0xff), int(n & 0xff)}
}

var (
	defaultPrimary   = RGB{26, 60, 110}
	defaultSecondary = RGB{90, 98, 112}
)

// ResolveTheme derives the full token set from the brand colors and an
// optional template. It is a pure function: identical inputs always yield
// identical tokens.
func ResolveTheme(primaryHex, secondaryHex string, tpl Template) Theme {
	primary := parseHex(primaryHex, defaultPrimary)
	secondary := parseHex(secondaryHex, defaultSecondary)

	t := Theme{
		Primary:   primary,
		Secondary: secondary,
		Header:    adjust(primary, -0.2),
		Accent:    primary,
		Border:    adjust(secondary, 0.6),
		Muted:     adjust(secondary, 0.25),

		TableHeaderBg:  adjust(primary, 0.88),
		ZebraBg:        adjust(primary, 0.95),
		TotalsCardBg:   primary,
		TotalsCardText: RGB{255, 255, 255},
		NotesBg:        adjust(secondary, 0.92),
	}

	if ov, ok := templateOverrides[tpl]; ok {
		if ov.Header != nil {
			t.Header = *ov.Header
		}
		if ov.Accent != nil {
			t.Accent = *ov.Accent
		}
		if ov.TableHeaderBg != nil {
			t.TableHeaderBg = *ov.TableHeaderBg
		}
		if ov.ZebraBg != nil {
			t.ZebraBg = *ov.ZebraBg
		}
		if ov.TotalsCardBg != nil {
			t.TotalsCardBg = *ov.TotalsCardBg
		}
		if ov.TotalsCardText != nil {
			t.TotalsCardText = *ov.TotalsCardText
		}
		if ov.NotesBg != nil {
			t.NotesBg = *ov.NotesBg
		}
	}
	return t
}
