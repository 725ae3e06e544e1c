package sink

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/klauspost/compress/zstd"

	"gridca/pkg/core"
)

// Recorder streams frames as zstd-compressed JSON lines while also keeping
// the in-memory history, so a recorded run stays resumable.
type Recorder struct {
	Base

	enc *zstd.Encoder
	w   *bufio.Writer
	err error
}

type recordedFrame struct {
	Frame int       `json:"frame"`
	T     float64   `json:"t"`
	W     int       `json:"w"`
	H     int       `json:"h"`
	Cells []float64 `json:"cells"`
}

// NewRecorder returns a recorder writing compressed frames to w.
func NewRecorder(w io.Writer) (*Recorder, error) {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, err
	}
	return &Recorder{enc: enc, w: bufio.NewWriter(enc)}, nil
}

// PushFrame stores the frame and appends it to the compressed log. Encoding
// failures are kept and reported by Finalize.
func (r *Recorder) PushFrame(g *core.Grid, t float64) {
	frame := r.Len()
	r.Base.PushFrame(g, t)
	if r.err != nil {
		return
	}
	b, err := json.Marshal(recordedFrame{
		Frame: frame,
		T:     t,
		W:     g.W,
		H:     g.H,
		Cells: g.Cells(),
	})
	if err != nil {
		r.err = err
		return
	}
	if _, err := r.w.Write(b); err != nil {
		r.err = err
		return
	}
	r.err = r.w.WriteByte('\n')
}

// Finalize flushes and closes the compressed stream.
func (r *Recorder) Finalize() error {
	if r.err != nil {
		return r.err
	}
	if err := r.w.Flush(); err != nil {
		return err
	}
	return r.enc.Close()
}

// ReadRecording decodes a compressed frame log produced by a Recorder.
func ReadRecording(rd io.Reader) ([]*core.Grid, []float64, error) {
	dec, err := zstd.NewReader(rd)
	if err != nil {
		return nil, nil, err
	}
	defer dec.Close()

	var (
		grids []*core.Grid
		times []float64
	)
	scan := bufio.NewScanner(dec)
	scan.Buffer(make([]byte, 0, 1<<16), 1<<26)
	for scan.Scan() {
		var f recordedFrame
		if err := json.Unmarshal(scan.Bytes(), &f); err != nil {
			return nil, nil, err
		}
		grids = append(grids, core.NewGridFrom(f.W, f.H, f.Cells))
		times = append(times, f.T)
	}
	if err := scan.Err(); err != nil {
		return nil, nil, err
	}
	return grids, times, nil
}
