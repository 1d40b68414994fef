package aspen

import "testing"

// --- Buffering ---

func TestAudioCommandsBufferUntilConsumed(t *testing.T) {
	a := NewAudioSystem()
	if a.HasCommands() {
		t.Error("new system should be empty")
	}

	a.Play(1)
	a.Play(2)
	if !a.HasCommands() {
		t.Error("HasCommands should be true after Play")
	}

	cmds := a.ConsumeCommands()
	if len(cmds) != 2 {
		t.Fatalf("len(cmds) = %d, want 2", len(cmds))
	}
	if a.HasCommands() {
		t.Error("consume should clear the buffer")
	}
	if len(a.ConsumeCommands()) != 0 {
		t.Error("second consume should be empty")
	}
}

func TestBeginFrameClearsBuffer(t *testing.T) {
	a := NewAudioSystem()
	a.Play(1)
	a.BeginFrame()
	if a.HasCommands() {
		t.Error("BeginFrame should discard buffered commands")
	}
}

func TestConsumedSnapshotSurvivesNewCommands(t *testing.T) {
	// The returned slice is valid until the next ConsumeCommands call, even
	// while new commands are queued.
	a := NewAudioSystem()
	a.Play(1)
	snapshot := a.ConsumeCommands()

	a.Play(2)
	a.Play(3)
	if len(snapshot) != 1 || snapshot[0].SoundID != 1 {
		t.Error("snapshot mutated by post-consume commands")
	}
}

// --- Play options ---

func TestPlayDefaults(t *testing.T) {
	a := NewAudioSystem()
	a.Play(7)
	cmd := a.ConsumeCommands()[0]
	if cmd.Kind != AudioPlay || cmd.SoundID != 7 || cmd.Channel != ChannelSFX {
		t.Errorf("cmd = %+v", cmd)
	}
	if cmd.Volume != 1 || cmd.Pitch != 1 || cmd.Pan != 0 || cmd.Loop {
		t.Errorf("defaults wrong: %+v", cmd)
	}
}

func TestPlayWithClampsOptions(t *testing.T) {
	a := NewAudioSystem()
	a.PlayWith(1, PlayOptions{Volume: 2.5, Pitch: 0.01, Pan: -3, FadeDuration: -1})
	cmd := a.ConsumeCommands()[0]
	if cmd.Volume != 1 {
		t.Errorf("Volume = %v, want 1", cmd.Volume)
	}
	if cmd.Pitch != 0.1 {
		t.Errorf("Pitch = %v, want 0.1 floor", cmd.Pitch)
	}
	if cmd.Pan != -1 {
		t.Errorf("Pan = %v, want -1", cmd.Pan)
	}
	if cmd.FadeDuration != 0 {
		t.Errorf("FadeDuration = %v, want 0", cmd.FadeDuration)
	}
}

func TestSetVolumeClamps(t *testing.T) {
	a := NewAudioSystem()
	a.SetVolume(ChannelMusic, 7)
	a.SetMasterVolume(-1)
	cmds := a.ConsumeCommands()
	if cmds[0].Volume != 1 {
		t.Errorf("channel volume = %v, want 1", cmds[0].Volume)
	}
	if cmds[1].Volume != 0 {
		t.Errorf("master volume = %v, want 0", cmds[1].Volume)
	}
}

// --- Exclusive channels ---

func TestExclusiveChannelEmitsStopBeforePlay(t *testing.T) {
	a := NewAudioSystem()
	a.PlayOn(ChannelMusic, 5, DefaultPlayOptions())

	cmds := a.ConsumeCommands()
	if len(cmds) != 2 {
		t.Fatalf("len(cmds) = %d, want 2 (stop + play)", len(cmds))
	}
	if cmds[0].Kind != AudioStop || cmds[0].Channel != ChannelMusic {
		t.Errorf("first command = %+v, want stop on music channel", cmds[0])
	}
	if cmds[1].Kind != AudioPlay || cmds[1].SoundID != 5 {
		t.Errorf("second command = %+v, want play", cmds[1])
	}
}

func TestSFXChannelEmitsNoStop(t *testing.T) {
	a := NewAudioSystem()
	a.Play(1)
	cmds := a.ConsumeCommands()
	if len(cmds) != 1 {
		t.Fatalf("len(cmds) = %d, want 1 (no implicit stop on SFX)", len(cmds))
	}
}

func TestPlayMusicLoopsAndFades(t *testing.T) {
	a := NewAudioSystem()
	a.PlayMusic(9, 1.5)
	cmds := a.ConsumeCommands()
	play := cmds[1]
	if !play.Loop {
		t.Error("music should loop")
	}
	if play.FadeDuration != 1.5 {
		t.Errorf("FadeDuration = %v, want 1.5", play.FadeDuration)
	}
	if play.Channel != ChannelMusic {
		t.Errorf("Channel = %d, want music", play.Channel)
	}
}

func TestStopMusicCarriesFade(t *testing.T) {
	a := NewAudioSystem()
	a.StopMusic(2)
	cmd := a.ConsumeCommands()[0]
	if cmd.Kind != AudioStop || cmd.Channel != ChannelMusic || cmd.FadeDuration != 2 {
		t.Errorf("cmd = %+v", cmd)
	}
}

func TestNegativeChannelCoercedToSFX(t *testing.T) {
	a := NewAudioSystem()
	a.PlayOn(-3, 1, DefaultPlayOptions())
	cmds := a.ConsumeCommands()
	if len(cmds) != 1 || cmds[0].Channel != ChannelSFX {
		t.Errorf("negative channel should coerce to SFX, got %+v", cmds)
	}
}

// --- Global controls ---

func TestGlobalControlCommands(t *testing.T) {
	a := NewAudioSystem()
	a.StopAll()
	a.PauseAll()
	a.ResumeAll()
	cmds := a.ConsumeCommands()
	want := []AudioCommandKind{AudioStopAll, AudioPauseAll, AudioResumeAll}
	if len(cmds) != len(want) {
		t.Fatalf("len(cmds) = %d, want %d", len(cmds), len(want))
	}
	for i, k := range want {
		if cmds[i].Kind != k {
			t.Errorf("cmds[%d].Kind = %d, want %d", i, cmds[i].Kind, k)
		}
	}
}
