// Package scene collects the flattened output of an import: mesh
// definitions, placed instances and materials resolved from LDraw
// color codes. It implements the importer's sink contract and feeds
// the viewer and the exporters.
package scene

import (
	"fmt"

	"github.com/Faultbox/brickmesh/pkg/ldraw"
	"github.com/Faultbox/brickmesh/pkg/math"
	"github.com/Faultbox/brickmesh/pkg/mesh"
)

// Material is a render material derived from an LDConfig color.
type Material struct {
	Code      string
	Name      string
	R, G, B   float32
	Opacity   float32
	Metallic  float32
	Roughness float32
}

// Definition is a built, named mesh instanced possibly many times.
type Definition struct {
	Name string
	Mesh *mesh.Mesh
}

// Instance is one placement of a definition.
type Instance struct {
	Definition string
	Transform  math.Mat4
	ColorCode  string
}

// Option configures a Scene.
type Option func(*Scene)

// WithRedraw installs a fire-and-forget hook invoked after each
// placement, e.g. to refresh an interactive view during import.
func WithRedraw(fn func()) Option {
	return func(s *Scene) { s.onRedraw = fn }
}

// Scene is an in-memory scene sink.
type Scene struct {
	colors ldraw.ColorTable

	defs     map[string]*Definition
	defOrder []string

	materials map[string]*Material

	Instances []Instance

	onRedraw func()
}

// New creates an empty scene. colors may be nil, in which case every
// code resolves to the fallback material.
func New(colors ldraw.ColorTable, opts ...Option) *Scene {
	s := &Scene{
		colors:    colors,
		defs:      make(map[string]*Definition),
		materials: make(map[string]*Material),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HasDefinition reports whether a definition exists under name.
func (s *Scene) HasDefinition(name string) bool {
	_, ok := s.defs[name]
	return ok
}

// CreateDefinition registers a built mesh under name.
func (s *Scene) CreateDefinition(name string, m *mesh.Mesh) error {
	if _, dup := s.defs[name]; dup {
		return fmt.Errorf("definition %s already exists", name)
	}
	s.defs[name] = &Definition{Name: name, Mesh: m}
	s.defOrder = append(s.defOrder, name)
	return nil
}

// PlaceInstance records one placement of an existing definition.
func (s *Scene) PlaceInstance(name string, transform math.Mat4, colorCode string) error {
	if _, ok := s.defs[name]; !ok {
		return fmt.Errorf("no definition for %s", name)
	}
	s.Instances = append(s.Instances, Instance{
		Definition: name,
		Transform:  transform,
		ColorCode:  colorCode,
	})
	return nil
}

// EnsureMaterial resolves a color code once and memoizes the result.
func (s *Scene) EnsureMaterial(code string) {
	if _, ok := s.materials[code]; ok {
		return
	}
	s.materials[code] = s.makeMaterial(code)
}

// MaterialFor returns the material for a code, resolving it on demand.
func (s *Scene) MaterialFor(code string) *Material {
	s.EnsureMaterial(code)
	return s.materials[code]
}

// Redraw fires the redraw hook, if any.
func (s *Scene) Redraw() {
	if s.onRedraw != nil {
		s.onRedraw()
	}
}

// Definitions returns all definitions in creation order.
func (s *Scene) Definitions() []*Definition {
	out := make([]*Definition, 0, len(s.defOrder))
	for _, name := range s.defOrder {
		out = append(out, s.defs[name])
	}
	return out
}

// Definition returns a definition by name, or nil.
func (s *Scene) Definition(name string) *Definition {
	return s.defs[name]
}

// Materials returns the memoized materials keyed by color code.
func (s *Scene) Materials() map[string]*Material {
	return s.materials
}

// Bounds returns the axis-aligned bounds of every placed instance.
func (s *Scene) Bounds() (min, max math.Vec3) {
	first := true
	for _, inst := range s.Instances {
		def := s.defs[inst.Definition]
		for _, v := range def.Mesh.Vertices {
			p := inst.Transform.TransformPoint(v)
			if first {
				min, max = p, p
				first = false
				continue
			}
			if p.X < min.X {
				min.X = p.X
			}
			if p.Y < min.Y {
				min.Y = p.Y
			}
			if p.Z < min.Z {
				min.Z = p.Z
			}
			if p.X > max.X {
				max.X = p.X
			}
			if p.Y > max.Y {
				max.Y = p.Y
			}
			if p.Z > max.Z {
				max.Z = p.Z
			}
		}
	}
	return min, max
}

// VertexCount returns total vertices across placed instances.
func (s *Scene) VertexCount() int {
	total := 0
	for _, inst := range s.Instances {
		total += len(s.defs[inst.Definition].Mesh.Vertices)
	}
	return total
}

// FaceCount returns total faces across placed instances.
func (s *Scene) FaceCount() int {
	total := 0
	for _, inst := range s.Instances {
		total += len(s.defs[inst.Definition].Mesh.Faces)
	}
	return total
}

// fallbackMaterial stands in for codes absent from the color table.
var fallbackMaterial = Material{
	Name: "Unknown", R: 0.5, G: 0.5, B: 0.5, Opacity: 1.0, Roughness: 0.2,
}

func (s *Scene) makeMaterial(code string) *Material {
	c, ok := s.colors[code]
	if !ok {
		m := fallbackMaterial
		m.Code = code
		return &m
	}
	return &Material{
		Code:      c.Code,
		Name:      c.Name,
		R:         c.R,
		G:         c.G,
		B:         c.B,
		Opacity:   c.Opacity,
		Metallic:  c.Metallic,
		Roughness: c.Roughness,
	}
}
