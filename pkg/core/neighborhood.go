package core

// Offset is a stencil displacement relative to the center cell.
type Offset struct {
	DX, DY int
}

// Neighborhood is an immutable stencil of offsets around a cell plus the
// reduction folded over those cells during a sweep.
type Neighborhood struct {
	offsets []Offset
	reducer Reducer

	radius int
	radial bool

	minDX, maxDX int
	minDY, maxDY int
}

// Radial builds the Chebyshev-disc stencil of the given radius, excluding the
// center. Radius 1 with the Count reducer is the classic Moore neighborhood.
func Radial(r int, red Reducer) Neighborhood {
	if r < 1 {
		r = 1
	}
	offsets := make([]Offset, 0, (2*r+1)*(2*r+1)-1)
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			offsets = append(offsets, Offset{DX: dx, DY: dy})
		}
	}
	n := NewNeighborhood(offsets, red)
	n.radius = r
	n.radial = true
	return n
}

// NewNeighborhood builds a stencil from arbitrary offsets. Duplicate offsets
// are folded twice; callers are expected not to supply them.
func NewNeighborhood(offsets []Offset, red Reducer) Neighborhood {
	n := Neighborhood{
		offsets: append([]Offset(nil), offsets...),
		reducer: red,
	}
	for i, o := range n.offsets {
		if i == 0 {
			n.minDX, n.maxDX = o.DX, o.DX
			n.minDY, n.maxDY = o.DY, o.DY
			continue
		}
		if o.DX < n.minDX {
			n.minDX = o.DX
		}
		if o.DX > n.maxDX {
			n.maxDX = o.DX
		}
		if o.DY < n.minDY {
			n.minDY = o.DY
		}
		if o.DY > n.maxDY {
			n.maxDY = o.DY
		}
	}
	return n
}

// Offsets returns the stencil offsets. The slice is shared; treat it as
// read-only.
func (n Neighborhood) Offsets() []Offset { return n.offsets }

// Len returns the stencil size.
func (n Neighborhood) Len() int { return len(n.offsets) }

// Reducer returns the reduction kernel.
func (n Neighborhood) Reducer() Reducer { return n.reducer }

// RadialRadius reports the radius when the stencil is a full Chebyshev disc
// minus the center, the shape eligible for moving-window reduction.
func (n Neighborhood) RadialRadius() (int, bool) { return n.radius, n.radial }

// Bounds returns the offset extents (minDX, maxDX, minDY, maxDY).
func (n Neighborhood) Bounds() (int, int, int, int) {
	return n.minDX, n.maxDX, n.minDY, n.maxDY
}

// Reduce folds the stencil around (x, y) on g under the overflow policy.
// This is the reference reduction; the buffered sweep paths must agree with
// it exactly.
func (n Neighborhood) Reduce(g *Grid, x, y int, of Overflow) float64 {
	acc := n.reducer.Zero
	for _, o := range n.offsets {
		if v, ok := g.Read(x+o.DX, y+o.DY, of); ok {
			acc = n.reducer.Add(acc, v)
		}
	}
	return acc
}
