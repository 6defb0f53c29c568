package components

import (
	"stairwell/internal/engine"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/sirupsen/logrus"
)

// Keyframe is one value of a track at a point in the clip.
type Keyframe struct {
	Time  float32
	Value float32
}

// Track interpolates linearly between its keys and hands each sample to Apply.
// Keys must be sorted by time.
type Track struct {
	Keys  []Keyframe
	Apply func(v float32)
}

// Sample returns the track value at t, holding the first and last keys.
func (tr Track) Sample(t float32) float32 {
	if len(tr.Keys) == 0 {
		return 0
	}
	if t <= tr.Keys[0].Time {
		return tr.Keys[0].Value
	}
	for i := 1; i < len(tr.Keys); i++ {
		a, b := tr.Keys[i-1], tr.Keys[i]
		if t > b.Time {
			continue
		}
		span := b.Time - a.Time
		if span <= 0 {
			return b.Value
		}
		return a.Value + (b.Value-a.Value)*(t-a.Time)/span
	}
	return tr.Keys[len(tr.Keys)-1].Value
}

// Clip is a named animation of Length seconds.
type Clip struct {
	Name   string
	Length float32
	Tracks []Track
}

// AnimationPlayer plays one clip at a time, advanced by Update. It implements
// player.AnimationSink.
type AnimationPlayer struct {
	engine.BaseComponent

	// Finished fires with the clip name when a clip plays to its end.
	Finished engine.EventWithArg[string]

	clips   *orderedmap.OrderedMap[string, *Clip]
	current *Clip
	time    float32
	log     logrus.FieldLogger
}

func NewAnimationPlayer(log logrus.FieldLogger) *AnimationPlayer {
	return &AnimationPlayer{
		clips: orderedmap.NewOrderedMap[string, *Clip](),
		log:   log,
	}
}

// Add registers a clip, replacing any clip with the same name.
func (a *AnimationPlayer) Add(c Clip) {
	a.clips.Set(c.Name, &c)
}

// Clip returns the registered clip called name.
func (a *AnimationPlayer) Clip(name string) (*Clip, bool) {
	return a.clips.Get(name)
}

// Play starts name from the beginning. Unknown names are logged and ignored.
func (a *AnimationPlayer) Play(name string) {
	c, ok := a.clips.Get(name)
	if !ok {
		if a.log != nil {
			a.log.WithField("clip", name).Warn("animation: no such clip")
		}
		return
	}
	a.current = c
	a.time = 0
	a.apply()
}

// Current returns the playing clip's name, or "" when idle.
func (a *AnimationPlayer) Current() string {
	if a.current == nil {
		return ""
	}
	return a.current.Name
}

// Position is the time into the current clip.
func (a *AnimationPlayer) Position() float32 {
	return a.time
}

func (a *AnimationPlayer) Update(deltaTime float32) {
	if a.current == nil {
		return
	}
	c := a.current
	a.time = min(a.time+deltaTime, c.Length)
	a.apply()
	if a.time < c.Length {
		return
	}
	a.current = nil
	a.Finished.Invoke(c.Name)
}

// apply samples every track of the current clip.
func (a *AnimationPlayer) apply() {
	for _, tr := range a.current.Tracks {
		if tr.Apply != nil {
			tr.Apply(tr.Sample(a.time))
		}
	}
}
