package world

import (
	"errors"
	"fmt"
)

// ErrInvalidLayout wraps every problem Layout.Validate reports.
var ErrInvalidLayout = errors.New("invalid layout")

// MaxStepRise is the tallest stair a character body climbs without help.
const MaxStepRise = 0.4

// Layout sizes the stairwell. The tower is square with an open shaft down the
// middle. Each storey has a ring of landings on three sides and a flight of
// stairs on the east side leading down to the next storey.
type Layout struct {
	Floors      int
	FloorHeight float32
	ShaftHalf   float32 // half-width of the open shaft
	OuterHalf   float32 // half-width of the tower, inside the walls
	Steps       int     // stairs per flight
	Thickness   float32 // of slabs, treads and walls
}

func DefaultLayout(floors int, floorHeight float32) Layout {
	return Layout{
		Floors:      floors,
		FloorHeight: floorHeight,
		ShaftHalf:   2,
		OuterHalf:   5,
		Steps:       10,
		Thickness:   0.2,
	}
}

// Rise is the height of one stair.
func (l Layout) Rise() float32 {
	return l.FloorHeight / float32(l.Steps)
}

// Tread is the depth of one stair. A flight spans the shaft's width.
func (l Layout) Tread() float32 {
	return 2 * l.ShaftHalf / float32(l.Steps)
}

// Top is the walking surface height of storey i.
func (l Layout) Top(i int) float32 {
	return -float32(i) * l.FloorHeight
}

func (l Layout) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidLayout}, args...)...))
	}

	if l.Floors < 1 {
		invalid("need at least one floor, got %d", l.Floors)
	}
	if l.FloorHeight <= 0 {
		invalid("floor height must be positive, got %v", l.FloorHeight)
	}
	if l.ShaftHalf <= 0 || l.OuterHalf <= l.ShaftHalf {
		invalid("need 0 < shaft < outer, got %v and %v", l.ShaftHalf, l.OuterHalf)
	}
	if l.Thickness <= 0 {
		invalid("thickness must be positive, got %v", l.Thickness)
	}
	if l.Steps < 1 {
		invalid("need at least one step, got %d", l.Steps)
	} else if l.FloorHeight > 0 && l.Rise() > MaxStepRise {
		invalid("stairs rise %v each, more than %v", l.Rise(), MaxStepRise)
	}
	return errors.Join(errs...)
}
