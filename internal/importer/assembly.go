package importer

import (
	"go.uber.org/zap"

	"github.com/Faultbox/brickmesh/pkg/ldraw"
)

// loadAssembly walks a structural document's references in line order,
// depth-first. For each reference it either recurses into a
// sub-assembly or materializes a leaf definition and emits a placement.
// The incoming stack is this call's own scoped state; sibling descents
// never see each other's changes. Assemblies carry no winding of their
// own: effective direction is recomputed at each descent from the
// child's resting direction, so it only matters where a leaf builds.
func (imp *Importer) loadAssembly(doc *ldraw.Document, stack ldraw.Stack) error {
	cmds, err := doc.Commands()
	if err != nil {
		return err
	}

	invertNext := false
	for _, cmd := range cmds {
		switch cmd.Kind {
		case ldraw.CmdInvertNext:
			invertNext = true

		case ldraw.CmdReference:
			// The one-shot flag is consumed by this reference no
			// matter how its resolution turns out.
			inverted := invertNext
			invertNext = false

			imp.sink.EnsureMaterial(cmd.ColorCode)

			child, err := imp.store.Resolve(cmd.Name)
			if err != nil {
				imp.log.Warn("skipping unresolved reference",
					zap.String("part", cmd.Name),
					zap.String("in", doc.Name),
					zap.Error(err),
				)
				continue
			}
			if imp.visiting[child.Qualified] {
				imp.log.Warn("skipping reference",
					zap.String("part", cmd.Name),
					zap.String("in", doc.Name),
					zap.Error(ldraw.ErrCyclicReference),
				)
				continue
			}

			childStack := stack.Push(cmd.Transform)

			leaf, err := child.HasGeometry()
			if err != nil {
				return err
			}

			if leaf {
				resting, err := child.RestingWinding()
				if err != nil {
					return err
				}
				if err := imp.placeLeaf(child, cmd, childStack, resting.Flip(inverted)); err != nil {
					return err
				}
			} else {
				// An inversion aimed at a sub-assembly is consumed but
				// inert: the assembly itself emits no primitives.
				imp.visiting[child.Qualified] = true
				err := imp.loadAssembly(child, childStack)
				delete(imp.visiting, child.Qualified)
				if err != nil {
					return err
				}
			}
			imp.sink.Redraw()

		default:
			// Winding certifications apply document-wide and are
			// already folded into the resting direction; everything
			// else has no assembly-level effect.
		}
	}
	return nil
}

// placeLeaf materializes the referenced leaf's definition (at most once
// per cleaned name) and emits one instance for it.
func (imp *Importer) placeLeaf(child *ldraw.Document, cmd ldraw.Command, stack ldraw.Stack, winding ldraw.Winding) error {
	name := ldraw.CleanName(cmd.Name)

	if err := imp.materialize(child, name, winding); err != nil {
		return err
	}
	if !imp.sink.HasDefinition(name) {
		// Empty definition: its leaf produced no geometry, so the
		// instance has nothing to resolve against.
		imp.log.Warn("no definition for part, skipping placement",
			zap.String("part", cmd.Name),
		)
		return nil
	}

	if err := imp.sink.PlaceInstance(name, stack.Compose(), cmd.ColorCode); err != nil {
		imp.log.Warn("failed to place instance",
			zap.String("part", cmd.Name),
			zap.Error(err),
		)
	}
	return nil
}

// materialize builds and registers the definition for a leaf document
// unless it already exists in both the cache and the sink.
func (imp *Importer) materialize(doc *ldraw.Document, name string, winding ldraw.Winding) error {
	if _, built := imp.defs[name]; built && imp.sink.HasDefinition(name) {
		return nil
	}
	if imp.sink.HasDefinition(name) {
		imp.log.Debug("definition already present", zap.String("part", name))
		return nil
	}
	if _, built := imp.defs[name]; built {
		// Built before but never registered: the leaf welded down to
		// nothing. Do not rebuild.
		return nil
	}

	m, err := imp.buildDefinition(doc, winding)
	if err != nil {
		return err
	}
	imp.defs[name] = m

	if m.IsEmpty() {
		imp.log.Debug("empty definition", zap.String("part", name))
		return nil
	}
	return imp.sink.CreateDefinition(name, m)
}
