// Package audio plays the paddle contact sounds.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"

	"github.com/vladimirvolkov/pong/internal/match"
)

// Sink receives paddle contact notifications.
type Sink interface {
	PaddleHit(side match.Side)
	Close()
}

// Nop is a Sink that plays nothing.
type Nop struct{}

func (Nop) PaddleHit(match.Side) {}
func (Nop) Close()               {}

// Speaker plays sounds through the system audio device.
type Speaker struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	volume float64
	closed bool
}

// NewSpeaker opens the audio device. Callers fall back to Nop on error.
func NewSpeaker(volume float64) (*Speaker, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(50*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	s := &Speaker{mixer: &beep.Mixer{}, volume: volume}
	speaker.Play(s.mixer)
	return s, nil
}

func (s *Speaker) PaddleHit(side match.Side) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	speaker.Lock()
	s.mixer.Add(PaddleBlip(int(side), s.volume))
	speaker.Unlock()
}

func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	speaker.Clear()
	speaker.Close()
}

// Open returns a Speaker when enabled and the device is usable, Nop otherwise.
func Open(enabled bool, volume float64, log zerolog.Logger) Sink {
	if !enabled {
		return Nop{}
	}
	s, err := NewSpeaker(volume)
	if err != nil {
		log.Warn().Err(err).Msg("audio unavailable, continuing silently")
		return Nop{}
	}
	return s
}
