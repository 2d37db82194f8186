package forcegraph

import (
	"errors"
	"math"
)

// Built-in animation behaviors. All three scale their effect by the blend
// factor so they ramp in on start and fade out on stop instead of snapping.

func init() {
	RegisterBuiltinAnimations(Animations)
}

// RegisterBuiltinAnimations installs pulse, spin, and glow into m. The
// package-level Animations manager gets them automatically; call this for
// independently constructed managers.
func RegisterBuiltinAnimations(m *AnimationManager) {
	m.Register("pulse", AnimationType{
		Init:   pulseInit,
		Update: pulseUpdate,
		Defaults: Options{
			"amplitude": 0.25,
			"frequency": 1.0,
		},
	})
	m.Register("spin", AnimationType{
		Update: spinUpdate,
		Defaults: Options{
			"speed": math.Pi / 2,
			"axis":  "y",
		},
	})
	m.Register("glow", AnimationType{
		Init:   glowInit,
		Update: glowUpdate,
		Defaults: Options{
			"intensity": 1.0,
			"frequency": 1.0,
			"color":     Color{R: 1, G: 0.85, B: 0.3},
		},
	})
}

// --- pulse ---

// pulseState tracks the oscillation phase and the baseline scale captured
// at init, so repeated ticks multiply the baseline rather than compounding.
type pulseState struct {
	phase float64
	base  Vec3
}

func pulseInit(obj *Object, opts Options) any {
	return &pulseState{base: obj.Scale}
}

func pulseUpdate(obj *Object, state any, dt float64, opts Options, blend float64) (any, error) {
	s := state.(*pulseState)
	s.phase += dt * opts.Float("frequency", 1) * 2 * math.Pi
	factor := 1 + blend*opts.Float("amplitude", 0.25)*math.Sin(s.phase)
	obj.Scale = Vec3{X: s.base.X * factor, Y: s.base.Y * factor, Z: s.base.Z * factor}
	return s, nil
}

// --- spin ---

// spin is stateless: it adds a per-tick rotation delta about the configured
// axis. Restoration on stop rewinds the accumulated rotation.
func spinUpdate(obj *Object, state any, dt float64, opts Options, blend float64) (any, error) {
	delta := dt * opts.Float("speed", math.Pi/2) * blend
	switch opts.String("axis", "y") {
	case "x":
		obj.Rotation.X += delta
	case "z":
		obj.Rotation.Z += delta
	default:
		obj.Rotation.Y += delta
	}
	return state, nil
}

// --- glow ---

var errGlowNoMaterial = errors.New("glow requires an object with a material")

type glowState struct {
	phase float64
	base  Color // emissive color before the glow took over
}

func glowInit(obj *Object, opts Options) any {
	s := &glowState{}
	if obj.Material != nil {
		s.base = obj.Material.Emissive
	}
	return s
}

func glowUpdate(obj *Object, state any, dt float64, opts Options, blend float64) (any, error) {
	if obj.Material == nil {
		return state, errGlowNoMaterial
	}
	s := state.(*glowState)
	s.phase += dt * opts.Float("frequency", 1) * 2 * math.Pi

	// Sinusoidal breathing between 0 and full intensity.
	wave := 0.5 + 0.5*math.Sin(s.phase)
	obj.Material.EmissiveIntensity = blend * opts.Float("intensity", 1) * wave
	obj.Material.Emissive = s.base.Lerp(opts.Color("color", Color{R: 1, G: 0.85, B: 0.3}), blend)
	return s, nil
}
