package vocoder

import (
	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

// Play renders a sample vector through the default audio output and blocks
// until playback finishes.
func Play(vec []float64, sr int) error {
	if err := speaker.Init(beep.SampleRate(sr), sr/10); err != nil {
		return err
	}
	done := make(chan struct{})
	speaker.Play(beep.Seq(&sliceStreamer{samples: vec}, beep.Callback(func() {
		close(done)
	})))
	<-done
	return nil
}
