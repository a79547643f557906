package mesh

import (
	"github.com/Faultbox/brickmesh/pkg/math"
)

// weldEpsilon quantizes vertex positions for coincidence grouping.
const weldEpsilon float32 = 0.001

// Welder is a pluggable post-accumulation weld pass. tol is the
// angular tolerance in radians.
type Welder func(m *Mesh, tol float32) *Mesh

// DoubleWeld is the default weld heuristic for coarse, normal-less
// authored geometry: split the raw mesh into disjoint connected pieces,
// weld each piece at the tolerance, reassemble, then weld the whole
// again at the same tolerance. It trades topological correctness for
// smooth shading; fine adjacent detail may over-weld.
func DoubleWeld(m *Mesh, tol float32) *Mesh {
	if m.IsEmpty() {
		return m
	}
	out := New()
	for _, piece := range SplitDisjoint(m) {
		out.Append(Weld(piece, tol))
	}
	return Weld(out, tol)
}

// SplitDisjoint partitions the mesh into connected components.
// Vertices occupying the same position are treated as connected even
// when no face shares their indices, since accumulated primitives never
// reuse indices across faces.
func SplitDisjoint(m *Mesh) []*Mesh {
	uf := newUnionFind(len(m.Vertices))

	for _, group := range coincidentGroups(m) {
		for _, idx := range group[1:] {
			uf.union(group[0], idx)
		}
	}
	for _, f := range m.Faces {
		for i := 1; i < f.N; i++ {
			uf.union(f.V[0], f.V[i])
		}
	}

	// Group faces by the component of their first vertex.
	componentFaces := make(map[int][]Face)
	var order []int
	for _, f := range m.Faces {
		root := uf.find(f.V[0])
		if _, seen := componentFaces[root]; !seen {
			order = append(order, root)
		}
		componentFaces[root] = append(componentFaces[root], f)
	}

	pieces := make([]*Mesh, 0, len(order))
	for _, root := range order {
		piece := New()
		remap := make(map[int]int)
		for _, f := range componentFaces[root] {
			nf := Face{N: f.N, Reversed: f.Reversed}
			for i := 0; i < f.N; i++ {
				idx, ok := remap[f.V[i]]
				if !ok {
					idx = piece.AddVertex(m.Vertices[f.V[i]])
					remap[f.V[i]] = idx
				}
				nf.V[i] = idx
			}
			piece.Faces = append(piece.Faces, nf)
		}
		pieces = append(pieces, piece)
	}
	return pieces
}

// Weld merges coincident vertices whose surrounding face normals agree
// within the angular tolerance, then recomputes per-vertex normals.
// Coincident vertices across a sharp crease stay separate so the crease
// keeps distinct shading.
func Weld(m *Mesh, tol float32) *Mesh {
	if m.IsEmpty() {
		out := New()
		out.Vertices = append(out.Vertices, m.Vertices...)
		out.Faces = append(out.Faces, m.Faces...)
		out.ComputeNormals()
		return out
	}

	// Per-vertex normal from adjacent faces, used to compare creases.
	vertexNormals := make([]math.Vec3, len(m.Vertices))
	for i := range m.Faces {
		n := m.FaceNormal(i)
		for j := 0; j < m.Faces[i].N; j++ {
			v := m.Faces[i].V[j]
			vertexNormals[v] = vertexNormals[v].Add(n)
		}
	}
	for i := range vertexNormals {
		vertexNormals[i] = vertexNormals[i].Normalize()
	}

	out := New()
	remap := make([]int, len(m.Vertices))
	for i := range remap {
		remap[i] = -1
	}

	for _, group := range coincidentGroups(m) {
		// Greedy clustering inside one coincidence group: a vertex
		// joins the first cluster whose normal it agrees with.
		type cluster struct {
			index  int
			normal math.Vec3
		}
		var clusters []cluster
		for _, v := range group {
			placed := false
			for _, c := range clusters {
				if vertexNormals[v].AngleTo(c.normal) <= tol {
					remap[v] = c.index
					placed = true
					break
				}
			}
			if !placed {
				idx := out.AddVertex(m.Vertices[v])
				clusters = append(clusters, cluster{index: idx, normal: vertexNormals[v]})
				remap[v] = idx
			}
		}
	}

	for _, f := range m.Faces {
		nf := Face{N: f.N, Reversed: f.Reversed}
		for i := 0; i < f.N; i++ {
			nf.V[i] = remap[f.V[i]]
		}
		out.Faces = append(out.Faces, nf)
	}
	out.ComputeNormals()
	return out
}

// coincidentGroups buckets vertex indices by quantized position, in
// first-seen order.
func coincidentGroups(m *Mesh) [][]int {
	type key [3]int32
	buckets := make(map[key][]int)
	var order []key
	for i, v := range m.Vertices {
		k := key{
			int32(v.X / weldEpsilon),
			int32(v.Y / weldEpsilon),
			int32(v.Z / weldEpsilon),
		}
		if _, seen := buckets[k]; !seen {
			order = append(order, k)
		}
		buckets[k] = append(buckets[k], i)
	}
	groups := make([][]int, 0, len(order))
	for _, k := range order {
		groups = append(groups, buckets[k])
	}
	return groups
}

type unionFind struct {
	parent []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (uf *unionFind) find(i int) int {
	for uf.parent[i] != i {
		uf.parent[i] = uf.parent[uf.parent[i]]
		i = uf.parent[i]
	}
	return i
}

func (uf *unionFind) union(a, b int) {
	ra, rb := uf.find(a), uf.find(b)
	if ra != rb {
		uf.parent[rb] = ra
	}
}
