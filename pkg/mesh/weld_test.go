package mesh

import (
	"testing"

	"github.com/Faultbox/brickmesh/pkg/math"
)

// quadMesh builds one flat unit quad on the XZ plane.
func quadMesh(reversed bool) *Mesh {
	m := New()
	a := m.AddVertex(math.V3(0, 0, 0))
	b := m.AddVertex(math.V3(1, 0, 0))
	c := m.AddVertex(math.V3(1, 0, 1))
	d := m.AddVertex(math.V3(0, 0, 1))
	m.AddQuad(a, b, c, d, reversed)
	return m
}

// twoTriangles builds two triangles sharing an edge by position only:
// every face gets its own vertices, as the geometry accumulator does.
func twoTriangles(tilt float32) *Mesh {
	m := New()
	a := m.AddVertex(math.V3(0, 0, 0))
	b := m.AddVertex(math.V3(1, 0, 0))
	c := m.AddVertex(math.V3(0, 0, 1))
	m.AddTriangle(a, b, c, false)

	d := m.AddVertex(math.V3(1, 0, 0))
	e := m.AddVertex(math.V3(0, 0, 1))
	f := m.AddVertex(math.V3(1, tilt, 1))
	m.AddTriangle(e, d, f, false)
	return m
}

func TestTrianglesSplitsQuads(t *testing.T) {
	m := quadMesh(false)
	tris := m.Triangles()
	if len(tris) != 2 {
		t.Fatalf("got %d triangles, want 2", len(tris))
	}
	if tris[0] != [3]int{0, 1, 2} || tris[1] != [3]int{0, 2, 3} {
		t.Errorf("fan split wrong: %v", tris)
	}
}

func TestComputeNormalsReversedTriangle(t *testing.T) {
	up := New()
	up.AddVertex(math.V3(0, 0, 0))
	up.AddVertex(math.V3(0, 0, 1))
	up.AddVertex(math.V3(1, 0, 0))
	up.AddTriangle(0, 1, 2, false)
	up.ComputeNormals()

	down := New()
	down.AddVertex(math.V3(0, 0, 0))
	down.AddVertex(math.V3(0, 0, 1))
	down.AddVertex(math.V3(1, 0, 0))
	down.AddTriangle(0, 1, 2, true)
	down.ComputeNormals()

	// Same index order, opposite facing tag, opposite normals.
	if up.Normals[0].Dot(down.Normals[0]) >= 0 {
		t.Errorf("reversed triangle should flip normal: up=%v down=%v",
			up.Normals[0], down.Normals[0])
	}
}

func TestSplitDisjoint(t *testing.T) {
	m := New()
	// Piece one: triangle at origin.
	m.AddVertex(math.V3(0, 0, 0))
	m.AddVertex(math.V3(1, 0, 0))
	m.AddVertex(math.V3(0, 0, 1))
	m.AddTriangle(0, 1, 2, false)
	// Piece two: triangle far away.
	m.AddVertex(math.V3(100, 0, 0))
	m.AddVertex(math.V3(101, 0, 0))
	m.AddVertex(math.V3(100, 0, 1))
	m.AddTriangle(3, 4, 5, false)

	pieces := SplitDisjoint(m)
	if len(pieces) != 2 {
		t.Fatalf("got %d pieces, want 2", len(pieces))
	}
	for i, p := range pieces {
		if len(p.Vertices) != 3 || len(p.Faces) != 1 {
			t.Errorf("piece %d: %d vertices, %d faces", i, len(p.Vertices), len(p.Faces))
		}
	}
}

func TestSplitDisjointCoincidentPositionsConnect(t *testing.T) {
	// Faces never share indices, only positions; they must still end
	// up in one component.
	m := twoTriangles(0)
	pieces := SplitDisjoint(m)
	if len(pieces) != 1 {
		t.Fatalf("coincident triangles should form one piece, got %d", len(pieces))
	}
}

func TestWeldMergesCoplanar(t *testing.T) {
	m := twoTriangles(0)
	w := Weld(m, math.DegToRad(60))

	// The two shared corners merge: 6 raw vertices become 4.
	if len(w.Vertices) != 4 {
		t.Errorf("welded vertices: got %d, want 4", len(w.Vertices))
	}
	if len(w.Faces) != 2 {
		t.Errorf("faces: got %d, want 2", len(w.Faces))
	}
	if len(w.Normals) != len(w.Vertices) {
		t.Errorf("normals not recomputed: %d for %d vertices", len(w.Normals), len(w.Vertices))
	}
}

func TestWeldKeepsSharpCrease(t *testing.T) {
	// Second triangle folded up 90 degrees; 60-degree tolerance must
	// not merge across the crease.
	m := twoTriangles(5)
	w := Weld(m, math.DegToRad(60))

	if len(w.Vertices) != 6 {
		t.Errorf("crease vertices: got %d, want 6 (unmerged)", len(w.Vertices))
	}
}

func TestDoubleWeldEmptyMesh(t *testing.T) {
	m := New()
	out := DoubleWeld(m, math.DegToRad(60))
	if !out.IsEmpty() {
		t.Error("empty mesh should stay empty")
	}
}

func TestDoubleWeld(t *testing.T) {
	m := twoTriangles(0)
	// A third, detached triangle.
	a := m.AddVertex(math.V3(50, 0, 0))
	b := m.AddVertex(math.V3(51, 0, 0))
	c := m.AddVertex(math.V3(50, 0, 1))
	m.AddTriangle(a, b, c, false)

	out := DoubleWeld(m, math.DegToRad(60))
	if len(out.Faces) != 3 {
		t.Errorf("faces: got %d, want 3", len(out.Faces))
	}
	// 4 welded + 3 detached vertices.
	if len(out.Vertices) != 7 {
		t.Errorf("vertices: got %d, want 7", len(out.Vertices))
	}
}

func TestBounds(t *testing.T) {
	m := quadMesh(false)
	min, max := m.Bounds()
	if min != (math.Vec3{}) || max != (math.Vec3{X: 1, Y: 0, Z: 1}) {
		t.Errorf("bounds: got %v..%v", min, max)
	}
}

func TestAppendOffsetsIndices(t *testing.T) {
	a := quadMesh(false)
	b := quadMesh(false)
	a.Append(b)

	if len(a.Vertices) != 8 || len(a.Faces) != 2 {
		t.Fatalf("append: %d vertices, %d faces", len(a.Vertices), len(a.Faces))
	}
	if a.Faces[1].V[0] != 4 {
		t.Errorf("second face should reference offset vertices, got %d", a.Faces[1].V[0])
	}
}
