// Package importer turns a hierarchical LDraw model into a flattened
// scene of positioned mesh instances. One Importer owns all state for
// a single import run: the document store, the geometry definition
// cache and the sink handle. Importers are not reusable across
// unrelated model imports; create a fresh one per run.
package importer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/brickmesh/pkg/ldraw"
	"github.com/Faultbox/brickmesh/pkg/math"
	"github.com/Faultbox/brickmesh/pkg/mesh"
)

// Sink receives the flattened scene. Implementations own instance
// placement, definition storage and material creation; the importer
// never retains what it hands over.
type Sink interface {
	// HasDefinition reports whether a mesh definition exists under name.
	HasDefinition(name string) bool
	// CreateDefinition registers a built mesh definition.
	CreateDefinition(name string, m *mesh.Mesh) error
	// PlaceInstance places one instance of a definition with a composed
	// transform and a color code.
	PlaceInstance(name string, transform math.Mat4, colorCode string) error
	// EnsureMaterial resolves a color code to a material, memoized by
	// the sink.
	EnsureMaterial(colorCode string)
	// Redraw is a fire-and-forget progress hook, called after each
	// processed reference. It must not block.
	Redraw()
}

// Option configures an Importer.
type Option func(*Importer)

// WithWelder swaps the post-accumulation weld pass.
func WithWelder(w mesh.Welder) Option {
	return func(imp *Importer) { imp.weld = w }
}

// WithWeldTolerance sets the weld angular tolerance in radians.
func WithWeldTolerance(tol float32) Option {
	return func(imp *Importer) { imp.weldTol = tol }
}

// WithLogger sets the diagnostic logger.
func WithLogger(log *zap.Logger) Option {
	return func(imp *Importer) { imp.log = log }
}

// Importer is the import context for one run.
type Importer struct {
	store *ldraw.Store
	sink  Sink
	log   *zap.Logger

	weld    mesh.Welder
	weldTol float32

	// defs caches built definitions by cleaned name, at most one build
	// per name.
	defs map[string]*mesh.Mesh
	// visiting marks documents on the current recursion path so a
	// self-referencing document fails with ErrCyclicReference instead
	// of recursing unboundedly.
	visiting map[string]bool
}

// New creates an importer over a prepared document store.
func New(store *ldraw.Store, sink Sink, opts ...Option) *Importer {
	imp := &Importer{
		store:    store,
		sink:     sink,
		log:      zap.NewNop(),
		weld:     mesh.DoubleWeld,
		weldTol:  math.DegToRad(60),
		defs:     make(map[string]*mesh.Mesh),
		visiting: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(imp)
	}
	return imp
}

// ImportModel resolves the named model document, splits it if it is a
// multi-document container, and traverses it depth-first. Unresolved
// or cyclic references are logged and skipped; only I/O failures abort
// the import.
func (imp *Importer) ImportModel(name string) error {
	doc, err := imp.store.Resolve(name)
	if err != nil {
		return fmt.Errorf("model %s: %w", name, err)
	}

	if doc.IsContainer() {
		entry, err := imp.store.SplitContainer(doc)
		if err != nil {
			return fmt.Errorf("model %s: %w", name, err)
		}
		doc, err = imp.store.Resolve(entry)
		if err != nil {
			return fmt.Errorf("model %s entry: %w", name, err)
		}
		imp.log.Info("split container",
			zap.String("model", name),
			zap.String("entry", entry),
		)
	}

	imp.visiting[doc.Qualified] = true
	defer delete(imp.visiting, doc.Qualified)

	stack := ldraw.Stack{ldraw.RootOrientation()}
	return imp.loadAssembly(doc, stack)
}
