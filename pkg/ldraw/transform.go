package ldraw

import "github.com/Faultbox/brickmesh/pkg/math"

// Stack is an ordered list of transforms accumulated while descending a
// reference tree. The first entry is the outermost (root orientation)
// transform, the last the innermost reference. A point is transformed
// by the innermost entry first, then outward.
type Stack []math.Mat4

// Push returns a new stack with m appended as the innermost transform.
// The receiver is never mutated, so sibling descents cannot see each
// other's entries.
func (s Stack) Push(m math.Mat4) Stack {
	out := make(Stack, len(s), len(s)+1)
	copy(out, s)
	return append(out, m)
}

// Compose collapses the stack into a single matrix:
// Root * T1 * ... * Tn.
func (s Stack) Compose() math.Mat4 {
	m := math.Identity()
	for _, t := range s {
		m = m.Mul(t)
	}
	return m
}

// ApplyPoint transforms p by each stack entry, innermost first.
func (s Stack) ApplyPoint(p math.Vec3) math.Vec3 {
	for i := len(s) - 1; i >= 0; i-- {
		p = s[i].TransformPoint(p)
	}
	return p
}

// RootOrientation is the fixed transform pushed once, outermost, before
// traversal begins. LDraw models are Y-down; rotating -90 degrees about
// X maps the format's up axis onto the target scene's up axis.
func RootOrientation() math.Mat4 {
	return math.RotateX(math.DegToRad(-90))
}
