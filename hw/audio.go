package hw

import (
	"errors"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"dsfront/emu/log"
)

const (
	AudioSampleRate = 48000
	AudioFormat     = sdl.AUDIO_S16LSB
	AudioChannels   = 1
	AudioBufferSize = 1024

	// Samples beyond this amount of queued audio are dropped, to bound the
	// latency when emulation runs faster than real time.
	maxQueuedBytes = AudioSampleRate / 10 * 2
)

// AudioDevice is the SDL audio output of a session. It's opened and closed
// by the execution thread, which also queues samples. The SDL audio subsystem
// must have been initialized by the window.
type AudioDevice struct {
	id      sdl.AudioDeviceID
	enabled bool
}

func NewAudioDevice(enabled bool) *AudioDevice {
	return &AudioDevice{enabled: enabled}
}

func (*AudioDevice) Name() string { return "audio device" }

func (a *AudioDevice) Open() error {
	if !a.enabled {
		log.ModSound.WarnZ("Audio disabled").End()
		return nil
	}

	spec := &sdl.AudioSpec{
		Freq:     AudioSampleRate,
		Format:   AudioFormat,
		Channels: AudioChannels,
		Samples:  AudioBufferSize,
	}
	var actual sdl.AudioSpec
	id, err := sdl.OpenAudioDevice("", false, spec, &actual, 0)
	if err != nil {
		return err
	}
	if actual.Freq != spec.Freq || actual.Format != spec.Format || actual.Channels != spec.Channels {
		sdl.CloseAudioDevice(id)
		return errors.New("audio device doesn't support 48kHz mono 16-bit output")
	}
	a.id = id
	sdl.PauseAudioDevice(a.id, false)

	log.ModSound.InfoZ("Audio enabled").
		Int("rate", int(actual.Freq)).
		Int("buffer", int(actual.Samples)).
		End()
	return nil
}

// Queue plays mono samples at AudioSampleRate.
func (a *AudioDevice) Queue(samples []int16) {
	if a.id == 0 || len(samples) == 0 {
		return
	}
	if sdl.GetQueuedAudioSize(a.id) > maxQueuedBytes {
		return
	}

	// QueueAudio copies the data.
	buf := unsafe.Slice((*byte)(unsafe.Pointer(&samples[0])), len(samples)*2)
	if err := sdl.QueueAudio(a.id, buf); err != nil {
		log.ModSound.DebugZ("failed to queue audio buffer").Error("err", err).End()
	}
}

func (a *AudioDevice) Close() error {
	if a.id == 0 {
		return nil
	}
	sdl.CloseAudioDevice(a.id)
	a.id = 0
	return nil
}
