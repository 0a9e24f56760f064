// Package audio plays match cues as short square-wave tones through the
// system speaker.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"

	"github.com/vovakirdan/tui-pong/internal/pong"
)

const (
	sampleRate = beep.SampleRate(44100)
	volume     = 0.2
)

// note is one tone in a cue; freq 0 is a rest.
type note struct {
	freq float64
	dur  time.Duration
}

var cueNotes = map[pong.Cue][]note{
	pong.CueWallHit:   {{440, 30 * time.Millisecond}},
	pong.CuePaddleHit: {{880, 50 * time.Millisecond}},
	pong.CueMiss:      {{660, 100 * time.Millisecond}, {440, 100 * time.Millisecond}, {330, 150 * time.Millisecond}},
	pong.CueWin:       {{523, 120 * time.Millisecond}, {0, 40 * time.Millisecond}, {659, 120 * time.Millisecond}, {0, 40 * time.Millisecond}, {784, 250 * time.Millisecond}},
}

// Speaker is a pong.CueSink backed by the system audio device.
// The zero value is silent until Open succeeds.
type Speaker struct {
	mu    sync.Mutex
	ready bool
	play  func(beep.Streamer)
}

// Open initializes the speaker. On error the returned Speaker is still
// usable and stays silent.
func Open() (*Speaker, error) {
	s := &Speaker{}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/30)); err != nil {
		return s, err
	}
	s.ready = true
	s.play = func(st beep.Streamer) { speaker.Play(st) }
	return s, nil
}

// Play queues the tone sequence for c on the mixer. It never blocks on
// playback.
func (s *Speaker) Play(c pong.Cue) {
	st := Sound(c)
	if st == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready || s.play == nil {
		return
	}
	s.play(st)
}

// Close shuts down the audio device.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready {
		speaker.Close()
		s.ready = false
	}
}

// Sound returns the streamer for c, or nil for an unknown cue.
func Sound(c pong.Cue) beep.Streamer {
	notes, ok := cueNotes[c]
	if !ok {
		return nil
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		if n.freq == 0 {
			parts = append(parts, beep.Silence(sampleRate.N(n.dur)))
			continue
		}
		parts = append(parts, squareWave(n.freq, n.dur))
	}
	return beep.Seq(parts...)
}

// squareWave generates a square wave tone for the given duration.
func squareWave(freq float64, duration time.Duration) beep.Streamer {
	remaining := sampleRate.N(duration)
	phase := 0.0
	phaseStep := freq / float64(sampleRate)

	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		if remaining <= 0 {
			return 0, false
		}
		for n = 0; n < len(samples) && remaining > 0; n++ {
			val := volume
			if math.Mod(phase, 1.0) > 0.5 {
				val = -val
			}
			samples[n][0] = val
			samples[n][1] = val
			phase += phaseStep
			remaining--
		}
		return n, true
	})
}
