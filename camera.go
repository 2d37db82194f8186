package forcegraph

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// OrbitView is a camera pose: an orbit around LookAt at the given distance,
// yaw (around Y), and pitch (elevation).
type OrbitView struct {
	Distance float64
	Yaw      float64 // radians around the Y axis
	Pitch    float64 // radians of elevation, clamped near ±π/2
	LookAt   Vec3
}

// flyAnim holds active fly-to tweens for the six orbit parameters.
type flyAnim struct {
	tweens [6]*gween.Tween
	fields [6]*float64
	done   bool
}

func (a *flyAnim) update(dt float32) {
	allDone := true
	for i, tw := range a.tweens {
		val, finished := tw.Update(dt)
		*a.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	a.done = allDone
}

// maxPitch keeps the camera off the poles so the orbit basis never
// degenerates.
const maxPitch = math.Pi/2 - 0.01

// OrbitCamera is the interactive view into the graph: a position orbiting a
// look-at point, with animated fly-to transitions. It is per-frame
// arithmetic glue — the animation engine never touches it.
type OrbitCamera struct {
	View OrbitView

	// MinDistance and MaxDistance clamp dolly movement.
	MinDistance float64
	MaxDistance float64

	fly *flyAnim
}

// NewOrbitCamera creates a camera orbiting the origin at the given distance.
func NewOrbitCamera(distance float64) *OrbitCamera {
	return &OrbitCamera{
		View:        OrbitView{Distance: distance},
		MinDistance: 1,
		MaxDistance: distance * 10,
	}
}

// Position returns the camera's world-space position for the current view.
func (c *OrbitCamera) Position() Vec3 {
	v := c.View
	cp := math.Cos(v.Pitch)
	return Vec3{
		X: v.LookAt.X + v.Distance*cp*math.Sin(v.Yaw),
		Y: v.LookAt.Y + v.Distance*math.Sin(v.Pitch),
		Z: v.LookAt.Z + v.Distance*cp*math.Cos(v.Yaw),
	}
}

// Orbit rotates the view by the given yaw and pitch deltas, clamping pitch
// so the camera never crosses the poles. Cancels any fly-to in progress.
func (c *OrbitCamera) Orbit(dYaw, dPitch float64) {
	c.fly = nil
	c.View.Yaw += dYaw
	c.View.Pitch = math.Max(-maxPitch, math.Min(maxPitch, c.View.Pitch+dPitch))
}

// Dolly scales the orbit distance by factor (>1 moves away, <1 moves in),
// clamped to [MinDistance, MaxDistance]. Cancels any fly-to in progress.
func (c *OrbitCamera) Dolly(factor float64) {
	c.fly = nil
	c.View.Distance = math.Max(c.MinDistance, math.Min(c.MaxDistance, c.View.Distance*factor))
}

// Pan translates the look-at point by delta in world space.
func (c *OrbitCamera) Pan(delta Vec3) {
	c.View.LookAt = c.View.LookAt.Add(delta)
}

// FlyTo animates the camera to the target view over duration seconds using
// the easing function. A zero duration snaps immediately.
func (c *OrbitCamera) FlyTo(to OrbitView, duration float32, easeFn ease.TweenFunc) {
	if duration <= 0 {
		c.fly = nil
		c.View = to
		return
	}
	v := &c.View
	a := &flyAnim{
		fields: [6]*float64{&v.Distance, &v.Yaw, &v.Pitch, &v.LookAt.X, &v.LookAt.Y, &v.LookAt.Z},
	}
	from := [6]float64{v.Distance, v.Yaw, v.Pitch, v.LookAt.X, v.LookAt.Y, v.LookAt.Z}
	dest := [6]float64{to.Distance, to.Yaw, to.Pitch, to.LookAt.X, to.LookAt.Y, to.LookAt.Z}
	for i := range a.tweens {
		a.tweens[i] = gween.New(float32(from[i]), float32(dest[i]), duration, easeFn)
	}
	c.fly = a
}

// Update advances any fly-to animation. Called once per frame by the host.
func (c *OrbitCamera) Update(dt float32) {
	if c.fly == nil {
		return
	}
	c.fly.update(dt)
	if c.fly.done {
		c.fly = nil
	}
}

// IsFlying reports whether a fly-to transition is in progress.
func (c *OrbitCamera) IsFlying() bool {
	return c.fly != nil
}
