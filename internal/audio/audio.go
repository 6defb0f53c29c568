package audio

import (
	"math/rand/v2"
	"sync"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/sirupsen/logrus"
)

// Listener is where the player hears from.
type Listener struct {
	Position rl.Vector3
	Forward  rl.Vector3
	Right    rl.Vector3
}

// Source is one loaded sound.
type Source struct {
	ID          uint64
	Path        string
	Position    rl.Vector3
	Sound       rl.Sound
	Volume      float32
	MaxDistance float32
	Spatial     bool
	// PitchJitter varies each one-shot's pitch by up to this fraction.
	PitchJitter float32
	playing     bool
}

// Manager owns every loaded sound.
type Manager struct {
	mu       sync.Mutex
	listener Listener
	sources  map[uint64]*Source
	nextID   uint64
	master   float32
	rand     *rand.Rand
	log      logrus.FieldLogger
}

var globalManager *Manager

// Init opens the audio device.
func Init(log logrus.FieldLogger) {
	rl.InitAudioDevice()
	globalManager = &Manager{
		sources: make(map[uint64]*Source),
		master:  1,
		rand:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		log:     log,
	}
	rl.SetMasterVolume(1)
}

// Close unloads every sound and shuts the device.
func Close() {
	if globalManager == nil {
		return
	}
	globalManager.mu.Lock()
	for _, src := range globalManager.sources {
		rl.UnloadSound(src.Sound)
	}
	globalManager.sources = nil
	globalManager.mu.Unlock()
	globalManager = nil
	rl.CloseAudioDevice()
}

// SetMasterVolume scales everything, 0..1.
func SetMasterVolume(v float32) {
	if globalManager == nil {
		return
	}
	globalManager.mu.Lock()
	defer globalManager.mu.Unlock()

	globalManager.master = rl.Clamp(v, 0, 1)
	rl.SetMasterVolume(globalManager.master)
}

// SetListener updates the listener position and orientation
func SetListener(pos, forward, up rl.Vector3) {
	if globalManager == nil {
		return
	}
	globalManager.mu.Lock()
	defer globalManager.mu.Unlock()

	globalManager.listener = NewListener(pos, forward, up)
}

// NewListener normalizes forward, defaulting to -Z, and derives right.
func NewListener(pos, forward, up rl.Vector3) Listener {
	l := Listener{Position: pos}

	if fwdLen := rl.Vector3Length(forward); fwdLen > 0.001 {
		l.Forward = rl.Vector3Scale(forward, 1.0/fwdLen)
	} else {
		l.Forward = rl.Vector3{Z: -1}
	}

	right := rl.Vector3CrossProduct(l.Forward, up)
	if rightLen := rl.Vector3Length(right); rightLen > 0.001 {
		l.Right = rl.Vector3Scale(right, 1.0/rightLen)
	} else {
		l.Right = rl.Vector3{X: 1}
	}
	return l
}

// LoadSound loads audio from a file and returns a source ID
func LoadSound(path string) (uint64, bool) {
	if globalManager == nil {
		return 0, false
	}

	sound := rl.LoadSound(path)
	if !rl.IsSoundValid(sound) {
		if globalManager.log != nil {
			globalManager.log.WithField("path", path).Warn("audio: could not load sound")
		}
		return 0, false
	}

	globalManager.mu.Lock()
	defer globalManager.mu.Unlock()

	id := globalManager.nextID
	globalManager.nextID++

	globalManager.sources[id] = &Source{
		ID:          id,
		Path:        path,
		Sound:       sound,
		Volume:      1.0,
		MaxDistance: 50.0,
	}
	return id, true
}

// Play starts a source from the beginning, retriggering if it is already
// playing.
func Play(id uint64) {
	if globalManager == nil {
		return
	}
	globalManager.mu.Lock()
	defer globalManager.mu.Unlock()

	src, ok := globalManager.sources[id]
	if !ok {
		return
	}
	volume, pan := Mix(globalManager.listener, *src)
	rl.SetSoundVolume(src.Sound, volume)
	rl.SetSoundPan(src.Sound, pan)
	rl.SetSoundPitch(src.Sound, Pitch(src.PitchJitter, globalManager.rand.Float32()))
	rl.PlaySound(src.Sound)
	src.playing = true
}

// Configure applies per-source settings.
func Configure(id uint64, volume float32, spatial bool, pitchJitter float32) {
	if globalManager == nil {
		return
	}
	globalManager.mu.Lock()
	defer globalManager.mu.Unlock()

	if src, ok := globalManager.sources[id]; ok {
		src.Volume = volume
		src.Spatial = spatial
		src.PitchJitter = pitchJitter
	}
}

// SetSourcePosition updates a source's position
func SetSourcePosition(id uint64, pos rl.Vector3) {
	if globalManager == nil {
		return
	}
	globalManager.mu.Lock()
	defer globalManager.mu.Unlock()

	if src, ok := globalManager.sources[id]; ok {
		src.Position = pos
	}
}

// UnloadSource removes a source
func UnloadSource(id uint64) {
	if globalManager == nil {
		return
	}
	globalManager.mu.Lock()
	defer globalManager.mu.Unlock()

	if src, ok := globalManager.sources[id]; ok {
		rl.UnloadSound(src.Sound)
		delete(globalManager.sources, id)
	}
}

// Update re-mixes playing sources against the current listener.
func Update() {
	if globalManager == nil {
		return
	}
	globalManager.mu.Lock()
	defer globalManager.mu.Unlock()

	for _, src := range globalManager.sources {
		if !src.playing {
			continue
		}
		if !rl.IsSoundPlaying(src.Sound) {
			src.playing = false
			continue
		}
		volume, pan := Mix(globalManager.listener, *src)
		rl.SetSoundVolume(src.Sound, volume)
		rl.SetSoundPan(src.Sound, pan)
	}
}

// Mix returns the volume and pan for a source as heard by l. Pan runs from
// 0 (left) to 1 (right). Sources behind the listener lose up to 30% volume.
func Mix(l Listener, src Source) (volume, pan float32) {
	if !src.Spatial {
		return src.Volume, 0.5
	}

	toSource := rl.Vector3Subtract(src.Position, l.Position)
	distance := rl.Vector3Length(toSource)

	if distance < src.MaxDistance {
		volume = src.Volume * (1.0 - distance/src.MaxDistance)
	}

	pan = 0.5
	if distance > 0.001 {
		direction := rl.Vector3Scale(toSource, 1.0/distance)
		pan = rl.Clamp(0.5+rl.Vector3DotProduct(direction, l.Right)*0.5, 0, 1)

		if frontDot := rl.Vector3DotProduct(direction, l.Forward); frontDot < 0 {
			volume *= 0.7 + 0.3*math32.Abs(frontDot)
		}
	}
	return volume, pan
}

// Pitch maps a uniform sample in [0, 1) to a pitch within jitter of 1.
func Pitch(jitter, sample float32) float32 {
	if jitter <= 0 {
		return 1
	}
	return 1 + jitter*(2*sample-1)
}
