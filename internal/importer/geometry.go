package importer

import (
	"go.uber.org/zap"

	"github.com/Faultbox/brickmesh/pkg/ldraw"
	"github.com/Faultbox/brickmesh/pkg/math"
	"github.com/Faultbox/brickmesh/pkg/mesh"
)

// buildDefinition accumulates a leaf document's subtree into one mesh
// and runs the weld pass over it. Color codes are irrelevant here;
// only geometry and winding matter.
func (imp *Importer) buildDefinition(doc *ldraw.Document, winding ldraw.Winding) (*mesh.Mesh, error) {
	acc := mesh.New()

	imp.visiting[doc.Qualified] = true
	err := imp.loadGeometry(doc, acc, ldraw.Stack{math.Identity()}, winding)
	delete(imp.visiting, doc.Qualified)
	if err != nil {
		return nil, err
	}

	if acc.IsEmpty() {
		return acc, nil
	}
	acc.ComputeNormals()
	return imp.weld(acc, imp.weldTol), nil
}

// loadGeometry recursively flattens a geometry subtree into acc.
// Nested references contribute to the same accumulator; no separate
// definitions are created for intermediate geometry-only documents.
func (imp *Importer) loadGeometry(doc *ldraw.Document, acc *mesh.Mesh, stack ldraw.Stack, winding ldraw.Winding) error {
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
			inverted := invertNext
			invertNext = false

			child, err := imp.store.Resolve(cmd.Name)
			if err != nil {
				imp.log.Warn("skipping unresolved geometry reference",
					zap.String("part", cmd.Name),
					zap.String("in", doc.Name),
					zap.Error(err),
				)
				continue
			}
			if imp.visiting[child.Qualified] {
				imp.log.Warn("skipping geometry reference",
					zap.String("part", cmd.Name),
					zap.String("in", doc.Name),
					zap.Error(ldraw.ErrCyclicReference),
				)
				continue
			}

			resting, err := child.RestingWinding()
			if err != nil {
				return err
			}

			imp.visiting[child.Qualified] = true
			err = imp.loadGeometry(child, acc, stack.Push(cmd.Transform), resting.Flip(inverted))
			delete(imp.visiting, child.Qualified)
			if err != nil {
				return err
			}

		case ldraw.CmdPrimitive:
			addPrimitive(acc, cmd, stack, winding)
		}
	}
	return nil
}

// addPrimitive appends one triangle or quad, transforming each
// coordinate by the stack (innermost transform first). Under flipped
// polarity a quad's last three indices are emitted in reversed order;
// a triangle keeps its order and carries the facing tag instead.
func addPrimitive(acc *mesh.Mesh, cmd ldraw.Command, stack ldraw.Stack, winding ldraw.Winding) {
	idx := make([]int, 0, 4)
	for _, c := range cmd.Coords {
		idx = append(idx, acc.AddVertex(stack.ApplyPoint(c)))
	}

	flipped := winding.Reversed()
	switch cmd.VertexCount {
	case 3:
		acc.AddTriangle(idx[0], idx[1], idx[2], flipped)
	case 4:
		if flipped {
			acc.AddQuad(idx[0], idx[3], idx[2], idx[1], false)
		} else {
			acc.AddQuad(idx[0], idx[1], idx[2], idx[3], false)
		}
	}
}
