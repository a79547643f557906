// Package mesh provides a triangle/quad mesh accumulator and the
// welding heuristics used to shade coarse, normal-less geometry.
package mesh

import (
	"github.com/Faultbox/brickmesh/pkg/math"
)

// Face references 3 or 4 vertices by index. Reversed tags the face as
// built under flipped winding polarity; triangles keep their parse
// order and carry the tag instead, quads are reordered at emission.
type Face struct {
	V        [4]int
	N        int
	Reversed bool
}

// Indices returns the face's vertex indices.
func (f Face) Indices() []int {
	return f.V[:f.N]
}

// Mesh is a mutable accumulator of vertices and faces. Normals are
// empty until ComputeNormals or a weld pass fills them, one per vertex.
type Mesh struct {
	Vertices []math.Vec3
	Normals  []math.Vec3
	Faces    []Face
}

// New returns an empty mesh.
func New() *Mesh {
	return &Mesh{}
}

// IsEmpty reports whether the mesh has no vertices or no faces.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0 || len(m.Faces) == 0
}

// AddVertex appends a vertex and returns its index.
func (m *Mesh) AddVertex(v math.Vec3) int {
	m.Vertices = append(m.Vertices, v)
	return len(m.Vertices) - 1
}

// AddTriangle appends a triangle face.
func (m *Mesh) AddTriangle(a, b, c int, reversed bool) {
	m.Faces = append(m.Faces, Face{V: [4]int{a, b, c, 0}, N: 3, Reversed: reversed})
}

// AddQuad appends a quad face.
func (m *Mesh) AddQuad(a, b, c, d int, reversed bool) {
	m.Faces = append(m.Faces, Face{V: [4]int{a, b, c, d}, N: 4, Reversed: reversed})
}

// Append merges other into m, offsetting face indices.
func (m *Mesh) Append(other *Mesh) {
	base := len(m.Vertices)
	m.Vertices = append(m.Vertices, other.Vertices...)
	m.Normals = append(m.Normals, other.Normals...)
	for _, f := range other.Faces {
		for i := 0; i < f.N; i++ {
			f.V[i] += base
		}
		m.Faces = append(m.Faces, f)
	}
}

// FaceNormal returns the unit normal of face i, derived from its first
// three vertices. A Reversed triangle faces the other way. Degenerate
// faces yield the zero vector.
func (m *Mesh) FaceNormal(i int) math.Vec3 {
	f := m.Faces[i]
	v0 := m.Vertices[f.V[0]]
	e1 := m.Vertices[f.V[1]].Sub(v0)
	e2 := m.Vertices[f.V[2]].Sub(v0)
	n := e1.Cross(e2)
	if n.Length() < 1e-5 {
		return math.Vec3{}
	}
	if f.N == 3 && f.Reversed {
		n = n.Neg()
	}
	return n.Normalize()
}

// ComputeNormals fills per-vertex normals by averaging the normals of
// adjacent faces, area-weighted.
func (m *Mesh) ComputeNormals() {
	m.Normals = make([]math.Vec3, len(m.Vertices))
	for _, f := range m.Faces {
		v0 := m.Vertices[f.V[0]]
		e1 := m.Vertices[f.V[1]].Sub(v0)
		e2 := m.Vertices[f.V[2]].Sub(v0)
		n := e1.Cross(e2)
		if f.N == 3 && f.Reversed {
			n = n.Neg()
		}
		for j := 0; j < f.N; j++ {
			m.Normals[f.V[j]] = m.Normals[f.V[j]].Add(n)
		}
	}
	for i := range m.Normals {
		m.Normals[i] = m.Normals[i].Normalize()
	}
}

// Bounds returns the axis-aligned bounding box of the mesh.
func (m *Mesh) Bounds() (min, max math.Vec3) {
	if len(m.Vertices) == 0 {
		return math.Vec3{}, math.Vec3{}
	}
	min = m.Vertices[0]
	max = m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		if v.X < min.X {
			min.X = v.X
		}
		if v.Y < min.Y {
			min.Y = v.Y
		}
		if v.Z < min.Z {
			min.Z = v.Z
		}
		if v.X > max.X {
			max.X = v.X
		}
		if v.Y > max.Y {
			max.Y = v.Y
		}
		if v.Z > max.Z {
			max.Z = v.Z
		}
	}
	return min, max
}

// Triangles returns the face list with quads split into two triangles,
// for consumers that only handle triangle lists.
func (m *Mesh) Triangles() [][3]int {
	tris := make([][3]int, 0, len(m.Faces))
	for _, f := range m.Faces {
		tris = append(tris, [3]int{f.V[0], f.V[1], f.V[2]})
		if f.N == 4 {
			tris = append(tris, [3]int{f.V[0], f.V[2], f.V[3]})
		}
	}
	return tris
}
