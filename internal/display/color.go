// Package display turns raw scores into the strings and colors shown in the
// leaderboard table.
package display

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// NeutralColor is the background for cells without a score.
const NeutralColor = "#e0e1e2"

// PaletteSize is the number of gradient steps, one per hundredth of a score.
const PaletteSize = 101

// The warp a*i^b is fit through (0, 0), (60, 50) and (100, 100) so that
// differences near the top of the score range get more distinct hues.
const (
	warpScale    = 0.2270617
	warpExponent = 1.321928
)

var (
	gradientStart = mustHex("#ff0000")
	gradientEnd   = mustHex("#008000")
)

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// palette maps floor(100*score) to a color.
var palette = buildPalette()

func buildPalette() [PaletteSize]colorful.Color {
	h0, s0, l0 := gradientStart.Hsl()
	h1, s1, l1 := gradientEnd.Hsl()

	var gradient [PaletteSize]colorful.Color
	steps := float64(PaletteSize - 1)
	for i := range gradient {
		f := float64(i) / steps
		gradient[i] = colorful.Hsl(h0+(h1-h0)*f, s0+(s1-s0)*f, l0+(l1-l0)*f)
	}

	var warped [PaletteSize]colorful.Color
	for i := range warped {
		warped[i] = gradient[int(warpScale*math.Pow(float64(i), warpExponent))]
	}
	return warped
}

// Step returns the palette index for a ceiled score, clamped to the palette.
func Step(value float64) int {
	step := int(math.Floor(100 * value))
	if step < 0 {
		return 0
	}
	if step >= PaletteSize {
		return PaletteSize - 1
	}
	return step
}

// PaletteColor returns the gradient color for a ceiled score.
func PaletteColor(value float64) colorful.Color {
	return palette[Step(value)]
}

// RGB255 returns the gradient color for a ceiled score as rounded 0-255
// components.
func RGB255(value float64) (r, g, b uint8) {
	c := PaletteColor(value)
	return uint8(math.RoundToEven(c.R * 255)), uint8(math.RoundToEven(c.G * 255)), uint8(math.RoundToEven(c.B * 255))
}

// Normalize maps value linearly so that min lands on 0.1 and max on 1.0.
func Normalize(value, min, max float64) float64 {
	slope := -0.9 / (min - max)
	intercept := 0.1 - slope*min
	return slope*value + intercept
}

// Alpha returns the opacity for value within the benchmark's [min, max]
// range. A degenerate range is fully opaque.
func Alpha(value, min, max float64) float64 {
	if min == max {
		return 1.0
	}
	return Normalize(value, min, max)
}

// RepresentativeColor returns the CSS background declaration for a cell. It
// carries a solid rgb fallback followed by the rgba variant whose alpha
// reflects where value sits between the benchmark's min and max.
func RepresentativeColor(value *float64, min, max float64) string {
	if value == nil {
		return "background-color: " + NeutralColor
	}
	c := PaletteColor(*value)
	r, g, b := c.R*255, c.G*255, c.B*255
	alpha := Alpha(*value, min, max)

	return fmt.Sprintf("background-color: rgb(%d, %d, %d); background-color: rgba(%s, %s, %s, %s);",
		int(math.RoundToEven(r)), int(math.RoundToEven(g)), int(math.RoundToEven(b)),
		formatComponent(r), formatComponent(g), formatComponent(b), formatComponent(alpha))
}

// formatComponent prints the shortest decimal for v, keeping one fractional
// digit on whole numbers (255.0, 1.0).
func formatComponent(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
