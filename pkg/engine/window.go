package engine

import "gridca/pkg/core"

// rowWindow is the sliding set of stencil-height row buffers used by
// neighborhood sweeps. Each buffer holds one source row widened by the
// stencil's horizontal extent, with the overflow policy resolved once per
// row advance instead of once per neighbor read.
type rowWindow struct {
	g  *core.Grid
	of core.Overflow

	minDX, maxDX int
	minDY, maxDY int
	bw           int

	rows    [][]float64
	present [][]bool
	y       int
}

func newRowWindow(g *core.Grid, of core.Overflow, hood *core.Neighborhood) *rowWindow {
	minDX, maxDX, minDY, maxDY := hood.Bounds()
	w := &rowWindow{
		g:     g,
		of:    of,
		minDX: minDX,
		maxDX: maxDX,
		minDY: minDY,
		maxDY: maxDY,
		bw:    g.W + (maxDX - minDX),
	}
	n := maxDY - minDY + 1
	w.rows = make([][]float64, n)
	w.present = make([][]bool, n)
	for i := range w.rows {
		w.rows[i] = make([]float64, w.bw)
		w.present[i] = make([]bool, w.bw)
	}
	return w
}

func (w *rowWindow) fillRow(vals []float64, pres []bool, ry int) {
	for bx := 0; bx < w.bw; bx++ {
		v, ok := w.g.Read(bx+w.minDX, ry, w.of)
		vals[bx] = v
		pres[bx] = ok
	}
}

// load fills every buffer for center row y.
func (w *rowWindow) load(y int) {
	for i := range w.rows {
		w.fillRow(w.rows[i], w.present[i], y+w.minDY+i)
	}
	w.y = y
}

// advance shifts the window down one row, reloading only the incoming row.
func (w *rowWindow) advance() {
	bottomVals := w.rows[0]
	bottomPres := w.present[0]
	copy(w.rows, w.rows[1:])
	copy(w.present, w.present[1:])
	n := len(w.rows) - 1
	w.rows[n] = bottomVals
	w.present[n] = bottomPres
	w.y++
	w.fillRow(bottomVals, bottomPres, w.y+w.maxDY)
}

// at reads the buffered value for offset (dx, dy) around column x.
func (w *rowWindow) at(dx, dy, x int) (float64, bool) {
	bx := x + dx - w.minDX
	return w.rows[dy-w.minDY][bx], w.present[dy-w.minDY][bx]
}

// reduceAt folds the full stencil around column x. This is the generic path
// for arbitrary stencils and non-invertible reducers.
func (w *rowWindow) reduceAt(hood *core.Neighborhood, x int) float64 {
	red := hood.Reducer()
	acc := red.Zero
	for _, o := range hood.Offsets() {
		if v, ok := w.at(o.DX, o.DY, x); ok {
			acc = red.Add(acc, v)
		}
	}
	return acc
}

// movingWindow maintains a running rectangular reduction for radial stencils
// whose reducer declared an inverse: advancing one column adds the incoming
// buffer column and removes the outgoing one.
type movingWindow struct {
	w   *rowWindow
	red core.Reducer
	r   int
	acc float64
}

func newMovingWindow(w *rowWindow, red core.Reducer, radius int) *movingWindow {
	return &movingWindow{w: w, red: red, r: radius}
}

// start computes the full rectangle reduction at column 0.
func (m *movingWindow) start() {
	m.acc = m.red.Zero
	for bx := 0; bx <= 2*m.r; bx++ {
		m.addColumn(bx)
	}
}

// step advances the rectangle from column x-1 to column x.
func (m *movingWindow) step(x int) {
	m.removeColumn(x - 1)
	m.addColumn(x + 2*m.r)
}

func (m *movingWindow) addColumn(bx int) {
	for i, row := range m.w.rows {
		if m.w.present[i][bx] {
			m.acc = m.red.Add(m.acc, row[bx])
		}
	}
}

func (m *movingWindow) removeColumn(bx int) {
	for i, row := range m.w.rows {
		if m.w.present[i][bx] {
			m.acc = m.red.Remove(m.acc, row[bx])
		}
	}
}

// at returns the stencil reduction for column x: the rectangle minus the
// center cell, which is always present in bounds.
func (m *movingWindow) at(x, y int) float64 {
	return m.red.Remove(m.acc, m.w.g.At(x, y))
}
