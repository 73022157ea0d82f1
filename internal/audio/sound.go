package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

const SampleRate = beep.SampleRate(44100)

// Paddle blip shape
const (
	blipDuration = 60 * time.Millisecond
	blipAttack   = 3 * time.Millisecond
	blipRelease  = 40 * time.Millisecond
)

// Blip pitch per paddle, left a fourth below right.
var blipFreq = [2]float64{330.0, 440.0}

// envelope fades the wrapped stream in and out linearly.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) *envelope {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if left := e.total - e.position; left < e.release {
			vol = math.Max(0, float64(left)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// PaddleBlip builds the contact sound for one paddle: a short sine tone
// with a fast attack and a fading tail.
func PaddleBlip(side int, volume float64) beep.Streamer {
	n := SampleRate.N(blipDuration)
	tone, err := generators.SineTone(SampleRate, blipFreq[side&1])
	if err != nil {
		return generators.Silence(n)
	}
	shaped := newEnvelope(beep.Take(n, tone), blipDuration, blipAttack, blipRelease, SampleRate)
	return withVolume(shaped, volume)
}
