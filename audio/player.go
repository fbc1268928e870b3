// Package audio plays procedurally generated cues for cast lifecycle events.
// The Player is an event handler: cast starts trigger one-shot or looping
// cues, session ends stop loops, hits and throws play one-shots. Without an
// initialized speaker every call is a silent no-op apart from bookkeeping.
package audio

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/spellcast/config"
	"github.com/lixenwraith/spellcast/event"
	"github.com/lixenwraith/spellcast/status"
	"github.com/lixenwraith/spellcast/vmath"
)

const (
	sampleRate            = beep.SampleRate(48000)
	speakerBufferDuration = 100 * time.Millisecond
	throwCue              = "throw"
)

// Player mixes cast cues into the speaker
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	loops       map[uuid.UUID]*beep.Ctrl
	rng         *vmath.FastRand
	master      float64
	enabled     bool
	initialized bool

	cueStat   *atomic.Int64
	loopStat  *atomic.Int64
	readyStat *atomic.Bool
}

// NewPlayer creates a player; reg may be nil
func NewPlayer(cfg config.Audio, reg *status.Registry) *Player {
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &Player{
		mixer:     &beep.Mixer{},
		loops:     make(map[uuid.UUID]*beep.Ctrl),
		rng:       vmath.NewFastRand(uint64(time.Now().UnixNano())),
		master:    cfg.Volume,
		enabled:   cfg.Enabled,
		cueStat:   reg.Ints.Get(status.AudioCues),
		loopStat:  reg.Ints.Get(status.AudioLoops),
		readyStat: reg.Bools.Get(status.AudioReady),
	}
}

// Initialize opens the speaker; a disabled player stays silent and returns nil
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized || !p.enabled {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(speakerBufferDuration)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	p.readyStat.Store(true)
	return nil
}

// Cleanup silences every cue; beep has no speaker close, clearing the mixer
// leaves nothing streaming
func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for id, ctrl := range p.loops {
		p.pause(ctrl)
		delete(p.loops, id)
	}
	p.loopStat.Store(0)

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
	p.readyStat.Store(false)
}

// EventTypes lists the cast events that produce sound
func (p *Player) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventCastStarted,
		event.EventCastEnded,
		event.EventSpellHit,
		event.EventBodyReleased,
	}
}

// HandleEvent maps cast events to cues
func (p *Player) HandleEvent(ev event.Event) {
	switch pl := ev.Payload.(type) {
	case *event.CastStartedPayload:
		if pl.Loop {
			p.StartLoop(pl.Session, pl.Sound, pl.Volume)
		} else {
			p.Play(pl.Sound, pl.Volume)
		}
	case *event.CastEndedPayload:
		p.StopLoop(pl.Session)
	case *event.SpellHitPayload:
		p.Play(pl.Sound, pl.Volume)
	case *event.BodyReleasedPayload:
		if pl.Restored && pl.Velocity.Len() > 0 {
			p.Play(throwCue, 1)
		}
	}
}

// Play mixes a one-shot cue; unknown names are ignored
func (p *Player) Play(name string, volume float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled || name == "" {
		return
	}
	s := Shot(name, volume*p.master, sampleRate, p.rng)
	if s == nil {
		return
	}
	p.cueStat.Add(1)
	p.add(s)
}

// StartLoop starts a looping cue owned by session; one loop per session
// A one-shot name falls back to playing once
func (p *Player) StartLoop(session uuid.UUID, name string, volume float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled || name == "" {
		return
	}
	if ctrl, ok := p.loops[session]; ok && !ctrl.Paused {
		return
	}

	s := Drone(name, volume*p.master, sampleRate)
	if s == nil {
		if shot := Shot(name, volume*p.master, sampleRate, p.rng); shot != nil {
			p.cueStat.Add(1)
			p.add(shot)
		}
		return
	}
	ctrl := &beep.Ctrl{Streamer: s, Paused: false}
	p.loops[session] = ctrl
	p.cueStat.Add(1)
	p.loopStat.Store(int64(len(p.loops)))
	p.add(ctrl)
}

// StopLoop silences the loop owned by session, if any
func (p *Player) StopLoop(session uuid.UUID) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ctrl, ok := p.loops[session]
	if !ok {
		return
	}
	p.pause(ctrl)
	delete(p.loops, session)
	p.loopStat.Store(int64(len(p.loops)))
}

// Looping returns the number of running loops
func (p *Player) Looping() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.loops)
}

// Caller holds p.mu
func (p *Player) add(s beep.Streamer) {
	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Caller holds p.mu
func (p *Player) pause(ctrl *beep.Ctrl) {
	if !p.initialized {
		ctrl.Paused = true
		return
	}
	speaker.Lock()
	ctrl.Paused = true
	// Paused ctrls stay in the mixer; drop the streamer so it drains
	ctrl.Streamer = nil
	speaker.Unlock()
}
