package components

import (
	"stairwell/internal/audio"
	"stairwell/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// AudioListener moves the audio listener with its object, usually the camera.
type AudioListener struct {
	engine.BaseComponent
}

func NewAudioListener() *AudioListener {
	return &AudioListener{}
}

func (a *AudioListener) Update(deltaTime float32) {
	g := a.GetGameObject()
	if g == nil {
		return
	}

	_, up, back := g.Basis()
	audio.SetListener(g.WorldPosition(), rl.Vector3Negate(back), up)
	audio.Update()
}
