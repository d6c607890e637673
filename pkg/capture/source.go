// Package capture supplies snapshot pairs of time-domain and frequency-domain
// byte buffers to the feature engine.
package capture

// Frame is one snapshot: a time-domain buffer and the frequency-domain buffer
// derived from it at the same instant.
type Frame struct {
	Index  int    // Position of the frame in its source
	Offset int    // Sample offset of the first time-domain sample
	Time   []byte // Time-domain samples centered at 128
	Freq   []byte // Frequency-domain bin magnitudes
}

// Source yields frames on demand. Snapshot returns false once the source is
// exhausted.
type Source interface {
	Snapshot() (Frame, bool)
}

// SliceSource serves pre-built frames in order
type SliceSource struct {
	frames []Frame
	pos    int
}

// NewSliceSource creates a source over frames
func NewSliceSource(frames ...Frame) *SliceSource {
	return &SliceSource{frames: frames}
}

// Snapshot returns the next frame
func (s *SliceSource) Snapshot() (Frame, bool) {
	if s.pos >= len(s.frames) {
		return Frame{}, false
	}
	f := s.frames[s.pos]
	s.pos++
	return f, true
}

// ReadAll drains src into a slice
func ReadAll(src Source) []Frame {
	var frames []Frame
	for {
		f, ok := src.Snapshot()
		if !ok {
			return frames
		}
		frames = append(frames, f)
	}
}
