package aspen

// AudioCommandKind identifies an audio intent.
type AudioCommandKind uint8

const (
	AudioPlay            AudioCommandKind = iota // start SoundID on Channel
	AudioStop                                    // stop whatever occupies Channel
	AudioSetVolume                               // set Channel volume
	AudioStopAll                                 // stop every channel
	AudioSetMasterVolume                         // scale all output
	AudioPauseAll                                // suspend playback
	AudioResumeAll                               // resume playback
)

// Well-known channels. Channel 0 is unlimited-overlap SFX; channels >= 1
// are exclusive — starting a new sound implicitly stops the previous
// occupant, encoded as command ordering rather than engine state.
const (
	ChannelSFX     = 0
	ChannelMusic   = 1
	ChannelAmbient = 2
)

// AudioCommand is a plain-data audio intent. The consuming backend owns all
// playback state; commands have no effect on the simulation.
type AudioCommand struct {
	Kind         AudioCommandKind
	SoundID      uint32
	Channel      int
	Volume       float64 // [0, 1]
	Pitch        float64 // playback rate multiplier, >= 0.1
	Pan          float64 // [-1, 1], 0 = center
	Loop         bool
	FadeDuration float64 // seconds, >= 0
}

// PlayOptions carries the tunable parameters for a play command. Values are
// clamped at the call site so malformed host input never reaches the
// command stream.
type PlayOptions struct {
	Volume       float64
	Pitch        float64
	Pan          float64
	Loop         bool
	FadeDuration float64
}

// DefaultPlayOptions returns full volume, neutral pitch, centered pan.
func DefaultPlayOptions() PlayOptions {
	return PlayOptions{Volume: 1, Pitch: 1}
}

// AudioSystem buffers audio intents for one frame. Every mutating call
// appends at least one command; the buffer is cleared at the start of each
// frame and drained exactly once at the end, so each command reaches the
// backend at most once and never carries over.
type AudioSystem struct {
	commands   []AudioCommand
	consumeBuf []AudioCommand
}

// NewAudioSystem creates an empty audio command queue.
func NewAudioSystem() *AudioSystem {
	return &AudioSystem{commands: make([]AudioCommand, 0, 32)}
}

func clampOptions(opt PlayOptions) PlayOptions {
	opt.Volume = clampFloat(opt.Volume, 0, 1)
	if opt.Pitch < 0.1 {
		opt.Pitch = 0.1
	}
	opt.Pan = clampFloat(opt.Pan, -1, 1)
	if opt.FadeDuration < 0 {
		opt.FadeDuration = 0
	}
	return opt
}

// Play starts a one-shot sound on the SFX channel with default options.
func (a *AudioSystem) Play(soundID uint32) {
	a.PlayOn(ChannelSFX, soundID, DefaultPlayOptions())
}

// PlayWith starts a one-shot sound on the SFX channel.
func (a *AudioSystem) PlayWith(soundID uint32, opt PlayOptions) {
	a.PlayOn(ChannelSFX, soundID, opt)
}

// PlayOn starts a sound on the given channel. On exclusive channels
// (channel >= 1) a stop for the previous occupant is appended first, so the
// backend needs no knowledge of what was playing.
func (a *AudioSystem) PlayOn(channel int, soundID uint32, opt PlayOptions) {
	if channel < 0 {
		channel = 0
	}
	opt = clampOptions(opt)
	if channel != ChannelSFX {
		a.commands = append(a.commands, AudioCommand{Kind: AudioStop, Channel: channel})
	}
	a.commands = append(a.commands, AudioCommand{
		Kind:         AudioPlay,
		SoundID:      soundID,
		Channel:      channel,
		Volume:       opt.Volume,
		Pitch:        opt.Pitch,
		Pan:          opt.Pan,
		Loop:         opt.Loop,
		FadeDuration: opt.FadeDuration,
	})
}

// PlayMusic starts looping music on the music channel, fading in over
// fadeIn seconds.
func (a *AudioSystem) PlayMusic(soundID uint32, fadeIn float64) {
	opt := DefaultPlayOptions()
	opt.Loop = true
	opt.FadeDuration = fadeIn
	a.PlayOn(ChannelMusic, soundID, opt)
}

// StopMusic stops the music channel, fading out over fadeOut seconds.
func (a *AudioSystem) StopMusic(fadeOut float64) {
	a.stopChannel(ChannelMusic, fadeOut)
}

// SetMusicVolume sets the music channel volume.
func (a *AudioSystem) SetMusicVolume(volume float64) {
	a.SetVolume(ChannelMusic, volume)
}

// PlayAmbient starts a looping ambient bed on the ambient channel.
func (a *AudioSystem) PlayAmbient(soundID uint32, fadeIn float64) {
	opt := DefaultPlayOptions()
	opt.Loop = true
	opt.FadeDuration = fadeIn
	a.PlayOn(ChannelAmbient, soundID, opt)
}

// StopAmbient stops the ambient channel, fading out over fadeOut seconds.
func (a *AudioSystem) StopAmbient(fadeOut float64) {
	a.stopChannel(ChannelAmbient, fadeOut)
}

// Stop immediately stops the given channel.
func (a *AudioSystem) Stop(channel int) {
	a.stopChannel(channel, 0)
}

func (a *AudioSystem) stopChannel(channel int, fade float64) {
	if channel < 0 {
		channel = 0
	}
	if fade < 0 {
		fade = 0
	}
	a.commands = append(a.commands, AudioCommand{Kind: AudioStop, Channel: channel, FadeDuration: fade})
}

// SetVolume sets the given channel's volume, clamped to [0, 1].
func (a *AudioSystem) SetVolume(channel int, volume float64) {
	if channel < 0 {
		channel = 0
	}
	a.commands = append(a.commands, AudioCommand{
		Kind:    AudioSetVolume,
		Channel: channel,
		Volume:  clampFloat(volume, 0, 1),
	})
}

// StopAll stops every channel.
func (a *AudioSystem) StopAll() {
	a.commands = append(a.commands, AudioCommand{Kind: AudioStopAll})
}

// SetMasterVolume scales all output, clamped to [0, 1].
func (a *AudioSystem) SetMasterVolume(volume float64) {
	a.commands = append(a.commands, AudioCommand{
		Kind:   AudioSetMasterVolume,
		Volume: clampFloat(volume, 0, 1),
	})
}

// PauseAll suspends playback on every channel.
func (a *AudioSystem) PauseAll() {
	a.commands = append(a.commands, AudioCommand{Kind: AudioPauseAll})
}

// ResumeAll resumes playback suspended by PauseAll.
func (a *AudioSystem) ResumeAll() {
	a.commands = append(a.commands, AudioCommand{Kind: AudioResumeAll})
}

// --- Frame boundary ---

// BeginFrame clears the buffer. The game loop calls this once per host
// frame before any fixed updates run.
func (a *AudioSystem) BeginFrame() {
	a.commands = a.commands[:0]
}

// HasCommands reports whether any commands are buffered. Fast path for
// hosts that skip audio work on silent frames.
func (a *AudioSystem) HasCommands() bool {
	return len(a.commands) > 0
}

// ConsumeCommands returns the buffered commands and clears the buffer.
// The returned slice is a frozen snapshot valid until the next call; the
// live buffer and the snapshot are swapped rather than copied.
func (a *AudioSystem) ConsumeCommands() []AudioCommand {
	out := a.commands
	a.commands, a.consumeBuf = a.consumeBuf[:0], a.commands
	return out
}
