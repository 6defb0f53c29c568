package player

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// MaxDeathTint is how far a full death tint darkens each channel.
const MaxDeathTint float32 = 90.0 / 255.0

// DeathTintColor maps a tint amount in [0, 1] to a screen brightness. Zero is
// exactly the alive brightness; anything else darkens the damage colour
// evenly on all three channels. Alpha is kept from damage.
func DeathTintColor(amount float32, alive, damage rl.Color) rl.Color {
	amount = rl.Clamp(amount, 0, 1)
	if amount == 0 {
		return alive
	}
	s := rl.Lerp(0, MaxDeathTint, amount)
	n := rl.ColorNormalize(damage)
	return rl.Color{
		R: unitToByte(n.X - s),
		G: unitToByte(n.Y - s),
		B: unitToByte(n.Z - s),
		A: damage.A,
	}
}

func unitToByte(v float32) uint8 {
	return uint8(math32.Round(rl.Clamp(v, 0, 1) * 255))
}
