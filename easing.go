package forcegraph

import "github.com/tanema/gween/ease"

// EasingFunc maps normalized time t in [0, 1] to normalized progress.
// Output may overshoot [0, 1] for easings like outBack or outElastic.
type EasingFunc func(t float64) float64

// easings maps the names accepted in animation options to gween easing
// functions. Names follow the lowerCamel convention of the web easing
// vocabulary ("inQuad", "outCubic", ...).
var easings = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"inQuad":       ease.InQuad,
	"outQuad":      ease.OutQuad,
	"inOutQuad":    ease.InOutQuad,
	"inCubic":      ease.InCubic,
	"outCubic":     ease.OutCubic,
	"inOutCubic":   ease.InOutCubic,
	"inQuart":      ease.InQuart,
	"outQuart":     ease.OutQuart,
	"inOutQuart":   ease.InOutQuart,
	"inQuint":      ease.InQuint,
	"outQuint":     ease.OutQuint,
	"inOutQuint":   ease.InOutQuint,
	"inSine":       ease.InSine,
	"outSine":      ease.OutSine,
	"inOutSine":    ease.InOutSine,
	"inExpo":       ease.InExpo,
	"outExpo":      ease.OutExpo,
	"inOutExpo":    ease.InOutExpo,
	"inCirc":       ease.InCirc,
	"outCirc":      ease.OutCirc,
	"inOutCirc":    ease.InOutCirc,
	"inBack":       ease.InBack,
	"outBack":      ease.OutBack,
	"inOutBack":    ease.InOutBack,
	"inBounce":     ease.InBounce,
	"outBounce":    ease.OutBounce,
	"inOutBounce":  ease.InOutBounce,
	"inElastic":    ease.InElastic,
	"outElastic":   ease.OutElastic,
	"inOutElastic": ease.InOutElastic,
}

// Easing resolves a named easing to a normalized function. Unknown names
// resolve to linear; the second return reports whether the name was known.
func Easing(name string) (EasingFunc, bool) {
	fn, ok := easings[name]
	if !ok {
		fn = ease.Linear
	}
	return normalizeEase(fn), ok
}

// RegisterEasing makes fn available under the given name in animation
// options. Registering an existing name replaces it.
func RegisterEasing(name string, fn ease.TweenFunc) {
	if name == "" || fn == nil {
		return
	}
	easings[name] = fn
}

// normalizeEase adapts gween's (t, begin, change, duration) signature to a
// single normalized parameter. Input is clamped so easings never see time
// outside their domain; output is intentionally not clamped (back/elastic
// overshoot is part of the effect).
func normalizeEase(fn ease.TweenFunc) EasingFunc {
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		return float64(fn(float32(t), 0, 1, 1))
	}
}
