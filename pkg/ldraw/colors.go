package ldraw

import (
	"strconv"
	"strings"
)

const colorPrefix = "0 !COLOUR "

// Color is one entry of the LDConfig color table, with material
// properties derived from its declared flags.
type Color struct {
	Code string
	Name string

	R, G, B   float32
	Opacity   float32
	Metallic  float32
	Roughness float32

	// Properties holds the raw key/value pairs of the !COLOUR line.
	Properties map[string]string
}

// ColorTable maps LDraw color codes to their definitions.
type ColorTable map[string]*Color

// ParseColorTable reads every "0 !COLOUR" line of an LDConfig document
// into a table keyed by color code.
func ParseColorTable(doc *Document) (ColorTable, error) {
	lines, err := doc.Lines()
	if err != nil {
		return nil, err
	}

	table := make(ColorTable)
	for _, line := range lines {
		if !strings.HasPrefix(line, colorPrefix) {
			continue
		}
		props := parseColorProperties(line)
		code, ok := props["CODE"]
		if !ok {
			continue
		}
		table[code] = newColor(code, props)
	}
	return table, nil
}

// parseColorProperties splits the meta content into key/value pairs.
// Value-less flag keywords shift the pairing; a dummy value keeps the
// field count even, matching how the format is read in practice.
func parseColorProperties(line string) map[string]string {
	fields := strings.Fields(strings.TrimPrefix(line, "0 !"))
	if len(fields)%2 == 1 {
		fields = append(fields, "dummy")
	}
	props := make(map[string]string, len(fields)/2)
	for i := 0; i+1 < len(fields); i += 2 {
		props[fields[i]] = fields[i+1]
	}
	return props
}

func newColor(code string, props map[string]string) *Color {
	c := &Color{
		Code:       code,
		Name:       props["COLOUR"],
		Opacity:    1.0,
		Metallic:   0.0,
		Roughness:  0.2,
		Properties: props,
	}
	c.R, c.G, c.B = parseHexColor(props["VALUE"])

	if alpha, ok := props["ALPHA"]; ok {
		if a, err := strconv.ParseFloat(alpha, 32); err == nil {
			c.Opacity = 1.0 - float32(a)/255.0
			c.Roughness = 0.03
		}
	}
	if _, ok := props["METAL"]; ok {
		c.Metallic = 1.0
		c.Roughness = 0.03
	}
	if _, ok := props["CHROME"]; ok {
		c.Metallic = 1.0
		c.Roughness = 0.03
	}
	if _, ok := props["MATTE_METALLIC"]; ok {
		c.Metallic = 1.0
		c.Roughness = 0.3
	}
	return c
}

// parseHexColor reads a "#RRGGBB" value into normalized components.
// Malformed values come back as neutral grey rather than failing.
func parseHexColor(s string) (r, g, b float32) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return 0.5, 0.5, 0.5
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0.5, 0.5, 0.5
	}
	r = float32((v>>16)&0xFF) / 255.0
	g = float32((v>>8)&0xFF) / 255.0
	b = float32(v&0xFF) / 255.0
	return r, g, b
}
