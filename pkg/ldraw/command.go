package ldraw

import (
	"strconv"
	"strings"

	"github.com/Faultbox/brickmesh/pkg/math"
)

// CommandKind identifies the parsed variant of a single LDraw line.
type CommandKind int

const (
	// CmdMeta is a type-0 line without further core behavior.
	CmdMeta CommandKind = iota
	// CmdWinding is a "0 BFC CERTIFY CW|CCW" directive.
	CmdWinding
	// CmdInvertNext is a "0 BFC INVERTNEXT" directive.
	CmdInvertNext
	// CmdReference is a type-1 sub-file placement.
	CmdReference
	// CmdPrimitive is a type-3 triangle or type-4 quad.
	CmdPrimitive
	// CmdIgnored covers line types 2 and 5, unknown tags and primitives
	// whose coordinate fields failed to parse.
	CmdIgnored
)

// Command is one classified LDraw line.
type Command struct {
	Kind CommandKind
	Tag  string // first whitespace-delimited token, "" for blank lines
	Raw  string

	// Reference fields (Kind == CmdReference)
	ColorCode string
	Transform math.Mat4
	Name      string

	// Primitive fields (Kind == CmdPrimitive)
	VertexCount int
	Coords      []math.Vec3

	// Winding directive value (Kind == CmdWinding)
	Winding Winding
}

// Classify parses a raw line into a Command. It never fails: lines it
// cannot make sense of come back as CmdIgnored so that one malformed
// line cannot take down an import.
func Classify(line string) Command {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{Kind: CmdIgnored, Raw: line}
	}

	cmd := Command{Raw: line, Tag: fields[0]}

	switch fields[0] {
	case "0":
		return classifyMeta(cmd, fields)

	case "1":
		if len(fields) < 2 {
			cmd.Kind = CmdIgnored
			return cmd
		}
		cmd.Kind = CmdReference
		cmd.ColorCode = fields[1]
		cmd.Transform = ParseTransform(fields)
		// The referenced name is the untokenized remainder after the
		// 14th field; embedded whitespace is part of the name.
		cmd.Name = restAfterFields(line, 14)
		return cmd

	case "3", "4":
		count := int(fields[0][0] - '0')
		coords, ok := parseCoords(fields, count)
		if !ok {
			// Dropped primitive: legacy files carry the odd
			// unparsable line and the importer must shrug it off.
			cmd.Kind = CmdIgnored
			return cmd
		}
		cmd.Kind = CmdPrimitive
		cmd.ColorCode = fields[1]
		cmd.VertexCount = count
		cmd.Coords = coords
		return cmd

	default:
		cmd.Kind = CmdIgnored
		return cmd
	}
}

// classifyMeta picks the recognized sub-phrases out of a type-0 line.
func classifyMeta(cmd Command, fields []string) Command {
	if len(fields) >= 2 && fields[1] == "BFC" {
		for _, f := range fields[2:] {
			switch f {
			case "INVERTNEXT":
				cmd.Kind = CmdInvertNext
				return cmd
			case "CCW":
				cmd.Kind = CmdWinding
				cmd.Winding = CCW
				return cmd
			case "CW":
				cmd.Kind = CmdWinding
				cmd.Winding = CW
				return cmd
			}
		}
	}
	cmd.Kind = CmdMeta
	return cmd
}

// ParseTransform reads the 12 numeric fields of a type-1 line
// (x y z a b c d e f g h i) into an affine matrix. Any parse failure
// yields the identity transform, never an error.
func ParseTransform(fields []string) math.Mat4 {
	if len(fields) < 14 {
		return math.Identity()
	}
	var d [12]float32
	for i := 0; i < 12; i++ {
		f, err := strconv.ParseFloat(fields[2+i], 32)
		if err != nil {
			return math.Identity()
		}
		d[i] = float32(f)
	}
	return math.FromAffine(
		d[0], d[1], d[2],
		d[3], d[4], d[5],
		d[6], d[7], d[8],
		d[9], d[10], d[11],
	)
}

// parseCoords reads count coordinate triplets following the color code.
// Returns ok=false if any field is missing or fails to parse.
func parseCoords(fields []string, count int) ([]math.Vec3, bool) {
	need := 2 + count*3
	if len(fields) < need {
		return nil, false
	}
	coords := make([]math.Vec3, 0, count)
	for i := 0; i < count; i++ {
		var p [3]float32
		for j := 0; j < 3; j++ {
			f, err := strconv.ParseFloat(fields[2+i*3+j], 32)
			if err != nil {
				return nil, false
			}
			p[j] = float32(f)
		}
		coords = append(coords, math.V3(p[0], p[1], p[2]))
	}
	return coords, true
}

// restAfterFields returns the raw remainder of s after skipping n
// whitespace-delimited fields, with leading whitespace trimmed.
func restAfterFields(s string, n int) string {
	i := 0
	for f := 0; f < n; f++ {
		for i < len(s) && isSpace(s[i]) {
			i++
		}
		for i < len(s) && !isSpace(s[i]) {
			i++
		}
	}
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return strings.TrimRight(s[i:], " \t\r")
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}
