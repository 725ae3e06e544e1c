package core

import "testing"

func TestReadWrapAndSkip(t *testing.T) {
	g := NewGrid(4, 3)
	g.Set(0, 0, 7)
	g.Set(3, 2, 9)

	if v, ok := g.Read(4, 3, Wrap); !ok || v != 7 {
		t.Fatalf("wrapped read = (%g, %v), want (7, true)", v, ok)
	}
	if v, ok := g.Read(-1, -1, Wrap); !ok || v != 9 {
		t.Fatalf("negative wrapped read = (%g, %v), want (9, true)", v, ok)
	}
	if _, ok := g.Read(4, 0, Skip); ok {
		t.Fatal("out-of-bounds read under Skip should report absence")
	}
	if v, ok := g.Read(3, 2, Skip); !ok || v != 9 {
		t.Fatalf("in-bounds read under Skip = (%g, %v), want (9, true)", v, ok)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := NewGrid(3, 3)
	g.Fill(5)
	c := g.Clone()
	c.Set(1, 1, 0)

	if g.At(1, 1) != 5 {
		t.Fatal("mutating a clone leaked into the original")
	}
	if g.Equal(c) {
		t.Fatal("grids should differ after the clone mutation")
	}
	c.Set(1, 1, 5)
	if !g.Equal(c) {
		t.Fatal("grids should be equal again")
	}
}

func TestNewGridClampsDegenerateShapes(t *testing.T) {
	g := NewGrid(0, -2)
	if g.W != 1 || g.H != 1 {
		t.Fatalf("degenerate grid clamped to %dx%d, want 1x1", g.W, g.H)
	}
}

func TestMaskDefaultsActive(t *testing.T) {
	m := NewMask(3, 2)
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			if !m.Active(x, y) {
				t.Fatalf("fresh mask cell (%d,%d) should be active", x, y)
			}
		}
	}
	m.Set(2, 1, false)
	if m.Active(2, 1) {
		t.Fatal("cell stayed active after Set(false)")
	}
	if !m.ActiveIndex(0) {
		t.Fatal("linear index lookup disagrees with coordinates")
	}
}
