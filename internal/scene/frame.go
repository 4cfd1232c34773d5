package scene

import (
	"time"

	"github.com/chewxy/math32"
)

// DefaultRPM is the box spin rate in revolutions per minute.
const DefaultRPM = 10

// RotationDelta is the angle in radians covered in dtMillis milliseconds at rpm revolutions
// per minute. Being proportional to elapsed time keeps the spin speed independent of frame rate.
func RotationDelta(rpm, dtMillis float32) float32 {
	return (rpm / 60) * math32.Pi * 2 * (dtMillis / 1000)
}

// Frame runs once per rendered frame with the time elapsed since the previous one.
// Without a box it does nothing.
func Frame(sc *Context, dt time.Duration) {
	if sc == nil || sc.Box == nil {
		return
	}
	rpm := sc.opts.RPM
	if rpm == 0 {
		rpm = DefaultRPM
	}
	dtMillis := float32(dt.Microseconds()) / 1000
	sc.Box.Rotation.Y += RotationDelta(rpm, dtMillis)
}
