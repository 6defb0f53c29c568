package engine

// Clock turns variable frame times into a whole number of fixed physics steps.
type Clock struct {
	Step     float32 // seconds per physics step
	MaxSteps int     // cap per frame so a long hitch cannot spiral

	acc float32
}

func NewClock(hz int) *Clock {
	return &Clock{
		Step:     1 / float32(hz),
		MaxSteps: 8,
	}
}

// Advance adds frame seconds and returns how many steps are due. Time beyond
// MaxSteps is dropped.
func (c *Clock) Advance(frame float32) int {
	if frame <= 0 || c.Step <= 0 {
		return 0
	}
	c.acc += frame
	n := 0
	for c.acc >= c.Step && n < c.MaxSteps {
		c.acc -= c.Step
		n++
	}
	if n == c.MaxSteps && c.acc >= c.Step {
		c.acc = 0
	}
	return n
}
