package components

import (
	"stairwell/internal/audio"
	"stairwell/internal/engine"
)

// AudioSource plays one loaded sound from its object's position. It
// implements player.SoundSink with PlayStep.
type AudioSource struct {
	engine.BaseComponent

	AudioPath   string
	Volume      float32
	Spatial     bool
	PitchJitter float32

	sourceID uint64
	loaded   bool
}

func NewAudioSource(path string) *AudioSource {
	return &AudioSource{
		AudioPath:   path,
		Volume:      1.0,
		PitchJitter: 0.1,
	}
}

func (a *AudioSource) Start() {
	if a.AudioPath != "" {
		a.Load(a.AudioPath)
	}
}

func (a *AudioSource) Update(deltaTime float32) {
	if !a.loaded {
		return
	}
	if g := a.GetGameObject(); g != nil {
		audio.SetSourcePosition(a.sourceID, g.WorldPosition())
	}
}

// Load loads an audio file, replacing the current one.
func (a *AudioSource) Load(path string) bool {
	if a.loaded {
		a.Unload()
	}

	id, ok := audio.LoadSound(path)
	if !ok {
		return false
	}

	a.sourceID = id
	a.loaded = true
	a.AudioPath = path
	audio.Configure(a.sourceID, a.Volume, a.Spatial, a.PitchJitter)
	return true
}

func (a *AudioSource) Unload() {
	if a.loaded {
		audio.UnloadSource(a.sourceID)
		a.loaded = false
	}
}

// Play starts playback from the beginning.
func (a *AudioSource) Play() {
	if a.loaded {
		audio.Play(a.sourceID)
	}
}

// PlayStep plays one footstep. Missing sounds are silent.
func (a *AudioSource) PlayStep() {
	a.Play()
}
