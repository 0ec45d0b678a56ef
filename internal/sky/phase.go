package sky

import (
	"fmt"
	"strings"

	skymath "github.com/Faultbox/midgard-sky/pkg/math"
)

// LunarPhase selects the moon's phase angle.
type LunarPhase int

const (
	PhaseFull LunarPhase = iota
	PhaseWaningGibbous
	PhaseThirdQuarter
	PhaseWaningCrescent
	PhaseNew
	PhaseWaxingCrescent
	PhaseFirstQuarter
	PhaseWaxingGibbous
	PhaseCustom
)

var phaseNames = [...]string{
	PhaseFull:           "full",
	PhaseWaningGibbous:  "waning-gibbous",
	PhaseThirdQuarter:   "third-quarter",
	PhaseWaningCrescent: "waning-crescent",
	PhaseNew:            "new",
	PhaseWaxingCrescent: "waxing-crescent",
	PhaseFirstQuarter:   "first-quarter",
	PhaseWaxingGibbous:  "waxing-gibbous",
	PhaseCustom:         "custom",
}

func (p LunarPhase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("LunarPhase(%d)", int(p))
	}
	return phaseNames[p]
}

// Angle returns the sun-moon elongation for a named phase: 0 new, π full,
// below π waxing. Custom has no fixed angle and returns 0.
func (p LunarPhase) Angle() float32 {
	switch p {
	case PhaseFull:
		return skymath.Pi
	case PhaseWaningGibbous:
		return skymath.Pi * 5 / 4
	case PhaseThirdQuarter:
		return skymath.Pi * 3 / 2
	case PhaseWaningCrescent:
		return skymath.Pi * 7 / 4
	case PhaseWaxingCrescent:
		return skymath.Pi / 4
	case PhaseFirstQuarter:
		return skymath.Pi / 2
	case PhaseWaxingGibbous:
		return skymath.Pi * 3 / 4
	default:
		return 0
	}
}

// Next cycles through the named phases in calendar order, skipping Custom.
func (p LunarPhase) Next() LunarPhase {
	if p == PhaseCustom {
		return PhaseFull
	}
	return (p + 1) % PhaseCustom
}

// ParseLunarPhase parses a phase name as produced by String.
func ParseLunarPhase(s string) (LunarPhase, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.ReplaceAll(name, "_", "-")
	name = strings.ReplaceAll(name, " ", "-")
	for i, n := range phaseNames {
		if n == name {
			return LunarPhase(i), nil
		}
	}
	return 0, fmt.Errorf("unknown lunar phase %q", s)
}
