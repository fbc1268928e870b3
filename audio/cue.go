package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/spellcast/vmath"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a raw wave for a fixed number of samples
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *vmath.FastRand
}

func newOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate, rng *vmath.FastRand) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rng,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack and release to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

func newEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := total - att - rel
	if sus < 0 {
		sus = 0
	}
	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = math.Max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s at a linear gain; zero or less is silent
// math.Log2(0) is -Inf, so zero volume uses the Silent flag instead
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// partial is one oscillator layer of a cue
type partial struct {
	freq float64 // Ignored for noise
	wave WaveType
	gain float64
}

// shot is a one-shot cue recipe
type shot struct {
	duration time.Duration
	attack   time.Duration
	release  time.Duration
	partials []partial
}

// drone is a looping swept tone for sustained casts
type drone struct {
	minHz, maxHz float64
	cycle        time.Duration
	gain         float64
}

// Sound names usable in the spell catalog
var shots = map[string]shot{
	"chime":  {400 * time.Millisecond, 5 * time.Millisecond, 350 * time.Millisecond, []partial{{880, WaveSine, 0.7}, {1760, WaveSine, 0.3}}},
	"whoosh": {250 * time.Millisecond, 30 * time.Millisecond, 200 * time.Millisecond, []partial{{0, WaveNoise, 1}}},
	"crack":  {150 * time.Millisecond, 2 * time.Millisecond, 120 * time.Millisecond, []partial{{0, WaveNoise, 0.6}, {90, WaveSquare, 0.4}}},
	"boom":   {600 * time.Millisecond, 5 * time.Millisecond, 550 * time.Millisecond, []partial{{55, WaveSine, 0.7}, {0, WaveNoise, 0.3}}},
	"zap":    {200 * time.Millisecond, 2 * time.Millisecond, 150 * time.Millisecond, []partial{{660, WaveSaw, 0.6}, {1320, WaveSquare, 0.2}}},
	"blast":  {300 * time.Millisecond, 2 * time.Millisecond, 250 * time.Millisecond, []partial{{70, WaveSaw, 0.5}, {0, WaveNoise, 0.5}}},
	"sizzle": {120 * time.Millisecond, 5 * time.Millisecond, 100 * time.Millisecond, []partial{{0, WaveNoise, 1}}},
	"throw":  {200 * time.Millisecond, 20 * time.Millisecond, 150 * time.Millisecond, []partial{{0, WaveNoise, 0.8}}},
}

var drones = map[string]drone{
	"hum":  {minHz: 160, maxHz: 220, cycle: 2 * time.Second, gain: 0.15},
	"roar": {minHz: 60, maxHz: 140, cycle: time.Second, gain: 0.25},
}

// KnownSound reports whether name is a one-shot or looping cue
func KnownSound(name string) bool {
	_, ok := shots[name]
	_, loop := drones[name]
	return ok || loop
}

// Shot builds the one-shot cue name at volume; nil when name is not a one-shot
func Shot(name string, volume float64, rate beep.SampleRate, rng *vmath.FastRand) beep.Streamer {
	s, ok := shots[name]
	if !ok {
		return nil
	}
	layers := make([]beep.Streamer, 0, len(s.partials))
	for _, p := range s.partials {
		osc := newOscillator(p.freq, s.duration, p.wave, rate, rng)
		layers = append(layers, newVolume(newEnvelope(osc, s.duration, s.attack, s.release, rate), p.gain))
	}
	return newVolume(beep.Mix(layers...), volume)
}

// Drone builds the looping cue name at volume; nil when name is not a drone
func Drone(name string, volume float64, rate beep.SampleRate) beep.Streamer {
	d, ok := drones[name]
	if !ok {
		return nil
	}
	return newVolume(&droneGenerator{spec: d, rate: rate, samples: rate.N(d.cycle)}, volume)
}

// droneGenerator sweeps between minHz and maxHz once per cycle, forever
type droneGenerator struct {
	spec    drone
	rate    beep.SampleRate
	pos     int
	samples int
	phase   float64
}

func (g *droneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		cyclePos := 0.0
		if g.samples > 0 {
			cyclePos = float64(g.pos%g.samples) / float64(g.samples)
		}
		freq := g.spec.minHz + (g.spec.maxHz-g.spec.minHz)*math.Sin(cyclePos*math.Pi)
		amplitude := g.spec.gain * (0.5 + 0.5*math.Sin(cyclePos*math.Pi*2))
		sample := amplitude * math.Sin(2*math.Pi*g.phase)

		samples[i][0] = sample
		samples[i][1] = sample

		// Accumulated phase, not freq*t, so the sweep stays continuous
		g.phase += freq / float64(g.rate)
		g.phase -= math.Floor(g.phase)
		g.pos++
	}
	return len(samples), true
}

func (g *droneGenerator) Err() error { return nil }
