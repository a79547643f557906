package ldraw

import (
	"testing"

	"github.com/Faultbox/brickmesh/pkg/math"
)

func TestClassifyReference(t *testing.T) {
	line := "1 4 10 0 -20 1 0 0 0 1 0 0 0 1 3001.dat"
	cmd := Classify(line)

	if cmd.Kind != CmdReference {
		t.Fatalf("kind: got %v, want CmdReference", cmd.Kind)
	}
	if cmd.ColorCode != "4" {
		t.Errorf("color: got %q, want 4", cmd.ColorCode)
	}
	if cmd.Name != "3001.dat" {
		t.Errorf("name: got %q, want 3001.dat", cmd.Name)
	}

	p := cmd.Transform.TransformPoint(math.V3(0, 0, 0))
	if p != (math.Vec3{X: 10, Y: 0, Z: -20}) {
		t.Errorf("translation: got %v, want (10, 0, -20)", p)
	}
}

func TestClassifyReferenceNameWithSpaces(t *testing.T) {
	line := "1 16 0 0 0 1 0 0 0 1 0 0 0 1 my  part v2.ldr"
	cmd := Classify(line)

	if cmd.Kind != CmdReference {
		t.Fatalf("kind: got %v, want CmdReference", cmd.Kind)
	}
	// Everything after the 14th field is the name, embedded whitespace included.
	if cmd.Name != "my  part v2.ldr" {
		t.Errorf("name: got %q, want %q", cmd.Name, "my  part v2.ldr")
	}
}

func TestClassifyReferenceMalformedTransform(t *testing.T) {
	line := "1 16 0 0 0 1 NaNx 0 0 1 0 0 0 1 3001.dat"
	cmd := Classify(line)

	if cmd.Kind != CmdReference {
		t.Fatalf("kind: got %v, want CmdReference", cmd.Kind)
	}
	if cmd.Transform != math.Identity() {
		t.Errorf("malformed transform should fall back to identity, got %v", cmd.Transform)
	}
	if cmd.Name != "3001.dat" {
		t.Errorf("name: got %q, want 3001.dat", cmd.Name)
	}
}

func TestClassifyTriangle(t *testing.T) {
	cmd := Classify("3 16 0 0 0 1 0 0 0 1 0")

	if cmd.Kind != CmdPrimitive {
		t.Fatalf("kind: got %v, want CmdPrimitive", cmd.Kind)
	}
	if cmd.VertexCount != 3 {
		t.Errorf("vertex count: got %d, want 3", cmd.VertexCount)
	}
	if len(cmd.Coords) != 3 {
		t.Fatalf("coords: got %d, want 3", len(cmd.Coords))
	}
	if cmd.Coords[1] != (math.Vec3{X: 1, Y: 0, Z: 0}) {
		t.Errorf("coord 1: got %v", cmd.Coords[1])
	}
}

func TestClassifyQuad(t *testing.T) {
	cmd := Classify("4 16 0 0 0 1 0 0 1 0 1 0 0 1")

	if cmd.Kind != CmdPrimitive || cmd.VertexCount != 4 {
		t.Fatalf("got kind=%v count=%d, want quad primitive", cmd.Kind, cmd.VertexCount)
	}
}

func TestClassifyMalformedPrimitiveDropped(t *testing.T) {
	cases := []string{
		"3 16 0 0 0 1 zz 0 0 1 0", // bad float
		"4 16 0 0 0 1 0 0",        // short
		"3",                       // no fields at all
	}
	for _, line := range cases {
		if cmd := Classify(line); cmd.Kind != CmdIgnored {
			t.Errorf("%q: got %v, want CmdIgnored", line, cmd.Kind)
		}
	}
}

func TestClassifyMeta(t *testing.T) {
	cases := map[string]CommandKind{
		"0 this is a comment":         CmdMeta,
		"0 FILE body.ldr":             CmdMeta,
		"0 BFC CERTIFY CCW":           CmdWinding,
		"0 BFC CERTIFY CW":            CmdWinding,
		"0 BFC INVERTNEXT":            CmdInvertNext,
		"0 BFC NOCERTIFY":             CmdMeta,
		"2 24 0 0 0 1 0 0":            CmdIgnored,
		"5 24 0 0 0 1 0 0 2 2 2 3 3 3": CmdIgnored,
	}
	for line, want := range cases {
		if cmd := Classify(line); cmd.Kind != want {
			t.Errorf("%q: got %v, want %v", line, cmd.Kind, want)
		}
	}

	if cmd := Classify("0 BFC CERTIFY CCW"); cmd.Winding != CCW {
		t.Errorf("CCW certification: got %v", cmd.Winding)
	}
	if cmd := Classify("0 BFC CERTIFY CW"); cmd.Winding != CW {
		t.Errorf("CW certification: got %v", cmd.Winding)
	}
}

func TestWindingFlip(t *testing.T) {
	if CW.Flip(false) != CW || CCW.Flip(false) != CCW {
		t.Error("Flip(false) must be a no-op")
	}
	if CW.Flip(true) != CCW || CCW.Flip(true) != CW {
		t.Error("Flip(true) must invert")
	}
	// Involution: flipping twice restores the original polarity.
	for _, w := range []Winding{CW, CCW} {
		if w.Flip(true).Flip(true) != w {
			t.Errorf("%v: double flip should restore", w)
		}
	}
}
