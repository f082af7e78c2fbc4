// Package playback holds a computed frame sequence and a looping cursor over
// it.
package playback

import (
	"errors"
	"fmt"
	"iter"
	"time"
)

// ErrFrameOutOfRange reports an index outside [0, Len).
var ErrFrameOutOfRange = errors.New("frame index out of range")

// Sequence is an ordered, append-only list of frames with a cursor. Frames are
// never modified once appended.
type Sequence[F any] struct {
	frames []F
	cursor int
}

// NewSequence wraps the provided frames. The slice is owned by the sequence
// afterwards.
func NewSequence[F any](frames []F) *Sequence[F] {
	return &Sequence[F]{frames: frames}
}

// Len returns the number of frames.
func (s *Sequence[F]) Len() int { return len(s.frames) }

// At returns the frame at index i.
func (s *Sequence[F]) At(i int) (F, error) {
	if i < 0 || i >= len(s.frames) {
		var zero F
		return zero, fmt.Errorf("%w: %d not in [0,%d)", ErrFrameOutOfRange, i, len(s.frames))
	}
	return s.frames[i], nil
}

// Cursor returns the current playback position.
func (s *Sequence[F]) Cursor() int { return s.cursor }

// Current returns the frame under the cursor.
func (s *Sequence[F]) Current() (F, error) { return s.At(s.cursor) }

// Advance moves the cursor forward one frame, looping to 0 after the last
// frame, and returns the new position.
func (s *Sequence[F]) Advance() int {
	if len(s.frames) == 0 {
		return 0
	}
	s.cursor = (s.cursor + 1) % len(s.frames)
	return s.cursor
}

// Seek moves the cursor to index i.
func (s *Sequence[F]) Seek(i int) error {
	if i < 0 || i >= len(s.frames) {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrFrameOutOfRange, i, len(s.frames))
	}
	s.cursor = i
	return nil
}

// All iterates over the frames in order.
func (s *Sequence[F]) All() iter.Seq2[int, F] {
	return func(yield func(int, F) bool) {
		for i, f := range s.frames {
			if !yield(i, f) {
				return
			}
		}
	}
}

const (
	minInterval = 60 * time.Millisecond
	maxInterval = 1200 * time.Millisecond
)

// EffectiveInterval shortens the base playback interval for stronger wind and
// a higher ignition threshold, clamped to [60ms, 1200ms].
func EffectiveInterval(base time.Duration, windSpeed, ignitionThreshold float64) time.Duration {
	windFactor := 1 + windSpeed/15
	ignFactor := 1 + ignitionThreshold*1.5
	ms := float64(base.Milliseconds()) / (windFactor * ignFactor)
	d := time.Duration(ms) * time.Millisecond
	if d < minInterval {
		return minInterval
	}
	if d > maxInterval {
		return maxInterval
	}
	return d
}
