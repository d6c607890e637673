package capture

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"go.uber.org/zap"

	"github.com/voiceshape/voiceshape/pkg/dsp"
	"github.com/voiceshape/voiceshape/pkg/dsp/analysis"
)

// ErrInvalidWAV is returned for input that is not a readable WAV file
var ErrInvalidWAV = errors.New("capture: invalid WAV file")

// Option configures a WAVSource
type Option func(*WAVSource)

// WithFrameSize sets the number of time-domain samples per frame. The
// analyser FFT size is twice the frame size so both buffers share a length.
func WithFrameSize(n int) Option {
	return func(s *WAVSource) {
		if n > 0 {
			s.frameSize = n
		}
	}
}

// WithLogger sets the logger used while decoding
func WithLogger(logger *zap.Logger) Option {
	return func(s *WAVSource) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WAVSource serves fixed-size frames from a decoded WAV file. Samples are
// mixed down to mono and converted to unsigned 8-bit.
type WAVSource struct {
	samples    []byte
	sampleRate float64
	frameSize  int
	analyser   *analysis.ByteAnalyser
	pos        int
	index      int
	logger     *zap.Logger
}

// OpenWAV decodes the WAV file at path
func OpenWAV(path string, opts ...Option) (*WAVSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("capture: open %q: %w", path, err)
	}
	defer f.Close()

	src, err := NewWAVSource(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("capture: decode %q: %w", path, err)
	}
	return src, nil
}

// NewWAVSource decodes a WAV stream
func NewWAVSource(r io.ReadSeeker, opts ...Option) (*WAVSource, error) {
	s := &WAVSource{
		frameSize: dsp.DefaultFrameSize,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		return nil, ErrInvalidWAV
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("capture: read PCM buffer: %w", err)
	}
	if buf.Format == nil || buf.Format.NumChannels <= 0 || buf.Format.SampleRate <= 0 {
		return nil, ErrInvalidWAV
	}

	bitDepth := buf.SourceBitDepth
	if bitDepth == 0 {
		bitDepth = int(decoder.BitDepth)
	}

	s.samples = MixDown(buf.Data, buf.Format.NumChannels, bitDepth)
	s.sampleRate = float64(buf.Format.SampleRate)
	s.analyser = analysis.NewByteAnalyser(s.frameSize * 2)

	s.logger.Debug("decoded wav",
		zap.Int("samples", len(s.samples)),
		zap.Int("channels", buf.Format.NumChannels),
		zap.Int("bit_depth", bitDepth),
		zap.Float64("sample_rate", s.sampleRate),
		zap.Int("frame_size", s.frameSize))

	return s, nil
}

// MixDown averages interleaved PCM channels into one unsigned 8-bit buffer
func MixDown(data []int, channels, bitDepth int) []byte {
	if channels <= 0 {
		return nil
	}

	n := len(data) / channels
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		sum := 0
		for c := 0; c < channels; c++ {
			sum += data[i*channels+c]
		}
		out[i] = dsp.FromPCM(sum/channels, bitDepth)
	}
	return out
}

// SampleRate returns the file sample rate in Hz
func (s *WAVSource) SampleRate() float64 {
	return s.sampleRate
}

// FrameSize returns the number of samples per frame
func (s *WAVSource) FrameSize() int {
	return s.frameSize
}

// Samples returns the whole decoded 8-bit buffer
func (s *WAVSource) Samples() []byte {
	return s.samples
}

// Snapshot returns the next frame. The final partial frame is padded with
// centered samples.
func (s *WAVSource) Snapshot() (Frame, bool) {
	if s.pos >= len(s.samples) {
		return Frame{}, false
	}

	timeData := dsp.Silence(s.frameSize)
	copy(timeData, s.samples[s.pos:])

	f := Frame{
		Index:  s.index,
		Offset: s.pos,
		Time:   timeData,
		Freq:   s.analyser.Analyse(timeData),
	}

	s.pos += s.frameSize
	s.index++
	return f, true
}

// WriteWAV encodes an unsigned 8-bit mono buffer as a WAV stream
func WriteWAV(w io.WriteSeeker, samples []byte, sampleRate int) error {
	enc := wav.NewEncoder(w, sampleRate, 8, 1, 1)

	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 8,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("capture: write wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("capture: close wav: %w", err)
	}
	return nil
}
