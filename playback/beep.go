// Package playback plays aspen audio commands through beep.
//
// The aspen core emits [aspen.AudioCommand] values with no effect on the
// simulation; this adapter owns all playback state — the speaker, the
// sample registry, per-channel control chains, fades — which is exactly
// the contract the command stream assumes.
package playback

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/phanxgames/aspen"
)

const defaultSampleRate = beep.SampleRate(48000)

// channelState is the live control chain for one exclusive channel.
type channelState struct {
	ctrl *beep.Ctrl
	vol  *effects.Volume
	fade *fader
}

// Player consumes audio command lists and drives the beep speaker.
type Player struct {
	mu          sync.Mutex
	sampleRate  beep.SampleRate
	mixer       *beep.Mixer
	masterCtrl  *beep.Ctrl
	masterVol   *effects.Volume
	sounds      map[uint32]*beep.Buffer
	channels    map[int]*channelState
	initialized bool
}

// NewPlayer creates a player at the default 48 kHz sample rate.
func NewPlayer() *Player {
	return &Player{
		sampleRate: defaultSampleRate,
		mixer:      &beep.Mixer{},
		sounds:     make(map[uint32]*beep.Buffer),
		channels:   make(map[int]*channelState),
	}
}

// SampleRate returns the rate registered buffers must be decoded at.
func (p *Player) SampleRate() beep.SampleRate {
	return p.sampleRate
}

// Init opens the speaker and starts the mixer. Safe to call more than once.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(p.sampleRate, p.sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}
	p.masterVol = &effects.Volume{Streamer: p.mixer, Base: 2}
	p.masterCtrl = &beep.Ctrl{Streamer: p.masterVol}
	speaker.Play(p.masterCtrl)
	p.initialized = true
	return nil
}

// Close stops all playback. The speaker itself stays open (beep has no
// close), but the mixer is emptied so nothing audible remains.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	p.channels = make(map[int]*channelState)
	speaker.Unlock()
}

// RegisterSound binds a decoded sample buffer to a sound id. Decoding is
// the host's responsibility; buffers must match the player's sample rate.
func (p *Player) RegisterSound(id uint32, buf *beep.Buffer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sounds[id] = buf
}

// Consume applies one frame's worth of commands in order. Unknown sound
// ids are skipped silently, matching the core's no-fault error model.
func (p *Player) Consume(cmds []aspen.AudioCommand) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}

	for i := range cmds {
		cmd := &cmds[i]
		switch cmd.Kind {
		case aspen.AudioPlay:
			p.play(cmd)
		case aspen.AudioStop:
			p.stop(cmd.Channel, cmd.FadeDuration)
		case aspen.AudioSetVolume:
			p.setVolume(cmd.Channel, cmd.Volume)
		case aspen.AudioStopAll:
			p.stopAll()
		case aspen.AudioSetMasterVolume:
			p.setMasterVolume(cmd.Volume)
		case aspen.AudioPauseAll:
			p.setPaused(true)
		case aspen.AudioResumeAll:
			p.setPaused(false)
		}
	}
}

// play builds the streamer chain for a play command:
// sample -> loop -> pitch resample -> pan -> fade -> volume [-> ctrl].
func (p *Player) play(cmd *aspen.AudioCommand) {
	buf, ok := p.sounds[cmd.SoundID]
	if !ok {
		return
	}

	var s beep.Streamer = buf.Streamer(0, buf.Len())
	if cmd.Loop {
		s = beep.Loop(-1, buf.Streamer(0, buf.Len()))
	}
	if cmd.Pitch != 1 {
		s = beep.ResampleRatio(4, cmd.Pitch, s)
	}
	if cmd.Pan != 0 {
		s = &effects.Pan{Streamer: s, Pan: cmd.Pan}
	}

	fade := newFader(p.sampleRate, s)
	if cmd.FadeDuration > 0 {
		fade.fadeIn(cmd.FadeDuration)
	}

	vol := &effects.Volume{Streamer: fade, Base: 2, Volume: volumeGain(cmd.Volume), Silent: cmd.Volume == 0}

	if cmd.Channel == aspen.ChannelSFX {
		// Unlimited overlap: fire and forget.
		speaker.Lock()
		p.mixer.Add(vol)
		speaker.Unlock()
		return
	}

	// Exclusive channel. The core emits a stop ahead of every exclusive
	// play, so the slot is already silenced; replace it outright.
	ctrl := &beep.Ctrl{Streamer: vol}
	speaker.Lock()
	p.mixer.Add(ctrl)
	speaker.Unlock()
	p.channels[cmd.Channel] = &channelState{ctrl: ctrl, vol: vol, fade: fade}
}

func (p *Player) stop(channel int, fadeOut float64) {
	st, ok := p.channels[channel]
	if !ok {
		return
	}
	speaker.Lock()
	if fadeOut > 0 {
		// The fader silences itself and then reports drained, at which
		// point the mixer drops the streamer.
		st.fade.fadeOutAndStop(fadeOut)
	} else {
		st.ctrl.Streamer = nil
	}
	speaker.Unlock()
	delete(p.channels, channel)
}

func (p *Player) setVolume(channel int, volume float64) {
	st, ok := p.channels[channel]
	if !ok {
		return
	}
	speaker.Lock()
	st.vol.Volume = volumeGain(volume)
	st.vol.Silent = volume == 0
	speaker.Unlock()
}

func (p *Player) stopAll() {
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.channels = make(map[int]*channelState)
}

func (p *Player) setMasterVolume(volume float64) {
	speaker.Lock()
	p.masterVol.Volume = volumeGain(volume)
	p.masterVol.Silent = volume == 0
	speaker.Unlock()
}

func (p *Player) setPaused(paused bool) {
	speaker.Lock()
	p.masterCtrl.Paused = paused
	speaker.Unlock()
}

// volumeGain converts a linear [0,1] volume to beep's exponential Volume
// field (base 2): 1.0 -> 0 (unity), 0.5 -> -1, and so on.
func volumeGain(v float64) float64 {
	if v <= 0 {
		return 0 // Silent flag carries the actual muting
	}
	return math.Log2(v)
}
