package ldraw

// Winding is the vertex ordering convention declared by a document's
// BFC certification. It decides outward face orientation for the
// geometry built from that document.
type Winding int

const (
	// CW is the default winding of an uncertified document.
	CW Winding = iota
	// CCW is declared by a "BFC CERTIFY CCW" meta line.
	CCW
)

// String returns "CW" or "CCW".
func (w Winding) String() string {
	if w == CCW {
		return "CCW"
	}
	return "CW"
}

// Opposite returns the flipped winding.
func (w Winding) Opposite() Winding {
	if w == CCW {
		return CW
	}
	return CCW
}

// Flip returns w.Opposite() when invert is set, otherwise w.
// The invert flag is the one-shot INVERTNEXT state: it applies to a
// single descent and never accumulates past one boolean.
func (w Winding) Flip(invert bool) Winding {
	if invert {
		return w.Opposite()
	}
	return w
}

// Reversed reports whether faces built under this winding emit their
// vertices in reversed order relative to parse order.
func (w Winding) Reversed() bool {
	return w == CCW
}
