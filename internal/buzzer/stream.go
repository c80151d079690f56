package buzzer

import (
	"encoding/binary"
	"time"
)

// Stream adapts a Generator to io.Reader for an ebiten/v2/audio.Player,
// duplicating the mono square wave to stereo frames.
type Stream struct {
	gen   *Generator
	muted *bool
}

// NewStream wraps gen; if muted is non-nil, *muted true silences output
// without pausing generation.
func NewStream(gen *Generator, muted *bool) *Stream {
	return &Stream{gen: gen, muted: muted}
}

// Read implements io.Reader, filling p with interleaved 16-bit stereo
// little-endian PCM frames (4 bytes/frame).
func (s *Stream) Read(p []byte) (int, error) {
	if len(p) < 4 {
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}
	if s.muted != nil && *s.muted {
		for i := range p {
			p[i] = 0
		}
		time.Sleep(5 * time.Millisecond)
		return len(p), nil
	}

	maxFrames := len(p) / 4
	want := s.gen.Available()
	if want > maxFrames {
		want = maxFrames
	}
	if want <= 0 {
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}

	samples := s.gen.PullMono(want)
	i := 0
	for _, v := range samples {
		if i+3 >= len(p) {
			break
		}
		binary.LittleEndian.PutUint16(p[i:], uint16(v))
		binary.LittleEndian.PutUint16(p[i+2:], uint16(v))
		i += 4
	}
	return i, nil
}
