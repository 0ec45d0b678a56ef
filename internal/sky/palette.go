package sky

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"

	skymath "github.com/Faultbox/midgard-sky/pkg/math"
	"github.com/Faultbox/midgard-sky/pkg/sky/composite"
)

// Palette holds the sky colors for day, twilight and night. Intermediate
// sun elevations blend between them in CIE L*a*b*.
type Palette struct {
	Day      colorful.Color
	Twilight colorful.Color
	Night    colorful.Color

	DayHaze      colorful.Color
	TwilightHaze colorful.Color
	NightHaze    colorful.Color

	DayClouds      colorful.Color
	TwilightClouds colorful.Color
	NightClouds    colorful.Color
}

// PaletteHex is the textual form of a Palette, as stored in config files.
type PaletteHex struct {
	Day            string `yaml:"day"`
	Twilight       string `yaml:"twilight"`
	Night          string `yaml:"night"`
	DayHaze        string `yaml:"day_haze"`
	TwilightHaze   string `yaml:"twilight_haze"`
	NightHaze      string `yaml:"night_haze"`
	DayClouds      string `yaml:"day_clouds"`
	TwilightClouds string `yaml:"twilight_clouds"`
	NightClouds    string `yaml:"night_clouds"`
}

// DefaultPaletteHex returns the default palette in hex form.
func DefaultPaletteHex() PaletteHex {
	return PaletteHex{
		Day:            "#5f9ee6",
		Twilight:       "#e0805a",
		Night:          "#060a1a",
		DayHaze:        "#c8dcf0",
		TwilightHaze:   "#f0a070",
		NightHaze:      "#141a2a",
		DayClouds:      "#ffffff",
		TwilightClouds: "#ffb48c",
		NightClouds:    "#2a2e3a",
	}
}

// DefaultPalette returns a temperate clear-weather palette.
func DefaultPalette() Palette {
	p, err := DefaultPaletteHex().Parse()
	if err != nil {
		panic(err)
	}
	return p
}

// Parse converts hex strings such as "#5f9ee6" into a Palette. Empty fields
// fall back to the default palette.
func (h PaletteHex) Parse() (Palette, error) {
	def := DefaultPaletteHex()
	var p Palette
	fields := []struct {
		name string
		hex  string
		def  string
		dst  *colorful.Color
	}{
		{"day", h.Day, def.Day, &p.Day},
		{"twilight", h.Twilight, def.Twilight, &p.Twilight},
		{"night", h.Night, def.Night, &p.Night},
		{"day_haze", h.DayHaze, def.DayHaze, &p.DayHaze},
		{"twilight_haze", h.TwilightHaze, def.TwilightHaze, &p.TwilightHaze},
		{"night_haze", h.NightHaze, def.NightHaze, &p.NightHaze},
		{"day_clouds", h.DayClouds, def.DayClouds, &p.DayClouds},
		{"twilight_clouds", h.TwilightClouds, def.TwilightClouds, &p.TwilightClouds},
		{"night_clouds", h.NightClouds, def.NightClouds, &p.NightClouds},
	}
	for _, f := range fields {
		s := f.hex
		if s == "" {
			s = f.def
		}
		c, err := colorful.Hex(s)
		if err != nil {
			return Palette{}, fmt.Errorf("%w: palette %s: %v", ErrInvalidConfig, f.name, err)
		}
		*f.dst = c
	}
	return p, nil
}

// Daylight returns how far the sun is into the day for its elevation in
// radians: 0 at night (below -12°), 1 in full day (above 10°).
func Daylight(sunElevation float32) float32 {
	return skymath.Smoothstep(skymath.DegToRad(-12), skymath.DegToRad(10), sunElevation)
}

// Twilight returns the strength of the sunrise/sunset tint, peaking with the
// sun on the horizon.
func Twilight(sunElevation float32) float32 {
	deg := skymath.RadToDeg(sunElevation)
	if deg < 0 {
		return skymath.Smoothstep(-12, 0, deg)
	}
	return 1 - skymath.Smoothstep(0, 12, deg)
}

// Tones are the palette colors resolved for one sun elevation.
type Tones struct {
	Clear  composite.Color
	Haze   composite.Color
	Clouds composite.Color
}

// At resolves the palette for a sun elevation in radians.
func (p Palette) At(sunElevation float32) Tones {
	return Tones{
		Clear:  toColor(blend(p.Night, p.Twilight, p.Day, sunElevation)),
		Haze:   toColor(blend(p.NightHaze, p.TwilightHaze, p.DayHaze, sunElevation)),
		Clouds: toColor(blend(p.NightClouds, p.TwilightClouds, p.DayClouds, sunElevation)),
	}
}

func blend(night, twilight, day colorful.Color, sunElevation float32) colorful.Color {
	base := night.BlendLab(day, float64(Daylight(sunElevation)))
	return base.BlendLab(twilight, float64(Twilight(sunElevation))).Clamped()
}

func toColor(c colorful.Color) composite.Color {
	return composite.RGB(float32(c.R), float32(c.G), float32(c.B))
}
