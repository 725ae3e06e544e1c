package core

import "math"

// Reducer folds neighborhood cell values into a single result. Zero is the
// fold seed and Add folds one more present cell into the accumulator. Absent
// cells (Skip overflow) are never folded.
//
// A reducer with a non-nil Remove declares that Add is associative with an
// inverse, which lets the sweep maintain a moving-window accumulator instead
// of re-reducing the stencil for every cell. Remove must undo Add exactly.
type Reducer struct {
	Zero   float64
	Add    func(acc, v float64) float64
	Remove func(acc, v float64) float64
}

// Invertible reports whether the reducer opted into moving-window updates.
func (r Reducer) Invertible() bool { return r.Remove != nil }

// Sum adds the raw cell values.
var Sum = Reducer{
	Zero:   0,
	Add:    func(acc, v float64) float64 { return acc + v },
	Remove: func(acc, v float64) float64 { return acc - v },
}

// Count counts cells with a nonzero value.
var Count = Reducer{
	Zero: 0,
	Add: func(acc, v float64) float64 {
		if v != 0 {
			return acc + 1
		}
		return acc
	},
	Remove: func(acc, v float64) float64 {
		if v != 0 {
			return acc - 1
		}
		return acc
	},
}

// Max keeps the largest cell value. It has no inverse, so sweeps fall back to
// per-cell reduction.
var Max = Reducer{
	Zero: math.Inf(-1),
	Add: func(acc, v float64) float64 {
		if v > acc {
			return v
		}
		return acc
	},
}
