package playback

import "github.com/gopxl/beep"

// fader applies a linear gain ramp to a wrapped streamer. It sits in the
// chain of every played sound so fade-ins at play time and fade-outs at
// stop time reuse one mechanism. When a fade-out completes the fader
// reports drained, which lets the mixer drop the whole chain.
//
// Mutate only under speaker.Lock; Stream runs on the speaker goroutine.
type fader struct {
	streamer beep.Streamer
	rate     beep.SampleRate

	gain    float64 // current gain, [0,1]
	step    float64 // per-sample gain delta, 0 when idle
	target  float64
	stopped bool // drained after the next fade-out completes
}

func newFader(rate beep.SampleRate, s beep.Streamer) *fader {
	return &fader{streamer: s, rate: rate, gain: 1, target: 1}
}

// fadeIn ramps gain from zero to unity over the given duration in seconds.
func (f *fader) fadeIn(duration float64) {
	f.gain = 0
	f.target = 1
	f.step = 1 / (duration * float64(f.rate))
}

// fadeOutAndStop ramps gain to zero and marks the fader drained once the
// ramp lands.
func (f *fader) fadeOutAndStop(duration float64) {
	f.target = 0
	f.step = -f.gain / (duration * float64(f.rate))
	f.stopped = true
}

func (f *fader) Stream(samples [][2]float64) (n int, ok bool) {
	if f.stopped && f.gain <= 0 {
		return 0, false
	}
	n, ok = f.streamer.Stream(samples)
	for i := range samples[:n] {
		if f.step != 0 {
			f.gain += f.step
			if (f.step > 0 && f.gain >= f.target) || (f.step < 0 && f.gain <= f.target) {
				f.gain = f.target
				f.step = 0
			}
		}
		samples[i][0] *= f.gain
		samples[i][1] *= f.gain
	}
	if f.stopped && f.gain <= 0 {
		// Report what was produced this call; the next call drains.
		return n, n > 0
	}
	return n, ok
}

func (f *fader) Err() error {
	return f.streamer.Err()
}
