package sink

import (
	"bytes"
	"image/gif"
	"strings"
	"testing"

	"gridca/pkg/core"
)

func TestBaseBookkeeping(t *testing.T) {
	m := NewMemory()

	if m.Running() {
		t.Fatal("fresh sink must not be running")
	}
	if !m.SetRunning(true) {
		t.Fatal("first transition to running must be accepted")
	}
	if m.SetRunning(true) {
		t.Fatal("repeated transition to the same state must be rejected")
	}
	if !m.SetRunning(false) {
		t.Fatal("transition back must be accepted")
	}

	g := core.NewGrid(2, 2)
	g.Fill(3)
	m.PushFrame(g, 1.5)
	if m.Len() != 1 {
		t.Fatalf("Len = %d, want 1", m.Len())
	}
	if m.At(0).At(0, 0) != 3 {
		t.Fatal("stored frame lost its values")
	}
	if m.TimeAt(0) != 1.5 {
		t.Fatalf("TimeAt = %g, want 1.5", m.TimeAt(0))
	}

	m.Reset()
	if m.Len() != 0 {
		t.Fatal("Reset must discard stored frames")
	}

	m.SetFPS(24)
	if m.FPS() != 24 {
		t.Fatalf("FPS = %g, want 24", m.FPS())
	}
	if m.Async() {
		t.Fatal("memory sink must be synchronous")
	}
}

func TestTerminalRendersBlocks(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf, 0.5, false)

	g := core.NewGrid(2, 1)
	g.Set(0, 0, 1)
	term.PushFrame(g, 0)

	out := buf.String()
	if !strings.HasPrefix(out, "██  \n") {
		t.Fatalf("rendered %q, want leading block row", out)
	}
	if !strings.Contains(out, "t=0") {
		t.Fatalf("rendered %q, want time footer", out)
	}
	if term.Len() != 1 {
		t.Fatal("terminal sink must also store the frame")
	}
}

func TestGIFEncodesStoredFrames(t *testing.T) {
	var buf bytes.Buffer
	s := NewGIF(&buf, nil, 2)

	a := core.NewGrid(4, 3)
	b := core.NewGrid(4, 3)
	b.Fill(1)
	s.PushFrame(a, 0)
	s.PushFrame(b, 1)

	if err := s.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	decoded, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}
	if len(decoded.Image) != 2 {
		t.Fatalf("decoded %d frames, want 2", len(decoded.Image))
	}
	bounds := decoded.Image[0].Bounds()
	if bounds.Dx() != 4 || bounds.Dy() != 3 {
		t.Fatalf("frame bounds %v, want 4x3", bounds)
	}
	if decoded.Image[0].Pix[0] == decoded.Image[1].Pix[0] {
		t.Fatal("zero and one cells must map to different palette entries")
	}
}

func TestRecorderRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	rec, err := NewRecorder(&buf)
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}

	a := core.NewGrid(3, 2)
	a.Set(1, 1, 4)
	b := core.NewGrid(3, 2)
	b.Set(2, 0, 7)
	rec.PushFrame(a, 0)
	rec.PushFrame(b, 0.5)

	if err := rec.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	grids, times, err := ReadRecording(&buf)
	if err != nil {
		t.Fatalf("ReadRecording: %v", err)
	}
	if len(grids) != 2 || len(times) != 2 {
		t.Fatalf("decoded %d grids / %d times, want 2 / 2", len(grids), len(times))
	}
	if !grids[0].Equal(a) || !grids[1].Equal(b) {
		t.Fatal("decoded frames differ from the recorded ones")
	}
	if times[1] != 0.5 {
		t.Fatalf("decoded time %g, want 0.5", times[1])
	}
}
