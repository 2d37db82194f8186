package forcegraph

import (
	"errors"
	"fmt"
	"weak"

	"github.com/tanema/gween/ease"
)

// Options carries animation configuration as loose key/value pairs so
// animation types defined outside this package can declare their own knobs.
// The manager itself only reads "loop", "duration", "easing", and
// "transitionDuration".
type Options map[string]any

// Float returns the option under key as a float64, or fallback if the key
// is absent or not numeric.
func (o Options) Float(key string, fallback float64) float64 {
	switch v := o[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	}
	return fallback
}

// Bool returns the option under key as a bool, or fallback.
func (o Options) Bool(key string, fallback bool) bool {
	if v, ok := o[key].(bool); ok {
		return v
	}
	return fallback
}

// String returns the option under key as a string, or fallback.
func (o Options) String(key string, fallback string) string {
	if v, ok := o[key].(string); ok {
		return v
	}
	return fallback
}

// Color returns the option under key as a Color, or fallback.
func (o Options) Color(key string, fallback Color) Color {
	if v, ok := o[key].(Color); ok {
		return v
	}
	return fallback
}

func (o Options) clone() Options {
	out := make(Options, len(o))
	for k, v := range o {
		out[k] = v
	}
	return out
}

// merge copies every entry of over into o, overwriting existing keys.
func (o Options) merge(over Options) {
	for k, v := range over {
		o[k] = v
	}
}

// InitFunc produces the initial per-instance state for an animation.
// The returned value is owned by the animation's Update/Cleanup functions;
// the manager never inspects it.
type InitFunc func(obj *Object, opts Options) any

// UpdateFunc advances one animation instance by dt seconds and returns the
// next state. blend is the transition factor in [0, 1]: animations scale
// their visual effect by it so starts and stops fade instead of snapping.
// Returning an error (or panicking) removes the instance without cleanup
// or restoration.
type UpdateFunc func(obj *Object, state any, dt float64, opts Options, blend float64) (any, error)

// CleanupFunc tears down side effects when an instance is removed normally.
type CleanupFunc func(obj *Object, state any, opts Options)

// AnimationType describes a named animation behavior. Update is mandatory;
// Init, Cleanup, and Defaults are optional.
type AnimationType struct {
	Init     InitFunc
	Update   UpdateFunc
	Cleanup  CleanupFunc
	Defaults Options
}

// snapshot captures the pre-animation object properties reapplied when an
// animation fully stops.
type snapshot struct {
	position Vec3
	rotation Vec3
	scale    Vec3

	hasMaterial       bool
	color             Color
	emissive          Color
	emissiveIntensity float64
	opacity           float64
}

func takeSnapshot(obj *Object) snapshot {
	s := snapshot{
		position: obj.Position,
		rotation: obj.Rotation,
		scale:    obj.Scale,
	}
	if m := obj.Material; m != nil {
		s.hasMaterial = true
		s.color = m.Color
		s.emissive = m.Emissive
		s.emissiveIntensity = m.EmissiveIntensity
		s.opacity = m.Opacity
	}
	return s
}

func (s snapshot) restore(obj *Object) {
	obj.Position = s.position
	obj.Rotation = s.rotation
	obj.Scale = s.scale
	if s.hasMaterial && obj.Material != nil {
		obj.Material.Color = s.color
		obj.Material.Emissive = s.emissive
		obj.Material.EmissiveIntensity = s.emissiveIntensity
		obj.Material.Opacity = s.opacity
	}
}

// instance is one running (or fading) occurrence of a named animation on one
// target object.
type instance struct {
	id    int
	name  string
	state any
	opts  Options
	ease  EasingFunc

	start     float64 // manager clock at Start
	stopping  bool
	stopStart float64 // manager clock when stopping began
	blend     float64 // transition progress in [0, 1]

	snap snapshot
}

// objectEntry holds the instance list for one weakly-referenced target.
// Instances are appended in registration order and iterated back-to-front
// so in-place removal during Tick neither skips nor reprocesses elements.
type objectEntry struct {
	target    weak.Pointer[Object]
	instances []*instance
}

func (e *objectEntry) remove(i int) {
	e.instances = append(e.instances[:i], e.instances[i+1:]...)
}

// AnimationManager drives per-frame animations on scene objects: a registry
// of named behaviors, per-object instance lists, transition blending, and
// restoration of pre-animation state. Objects are held through weak pointers
// so tracking an animation never extends a target's lifetime.
//
// All methods must be called from the goroutine driving Tick.
type AnimationManager struct {
	types   map[string]AnimationType
	objects map[weak.Pointer[Object]]*objectEntry
	nextID  int
	clock   float64
}

// NewAnimationManager creates an empty manager. Most callers use the
// package-level Animations instance, which the built-in behaviors register
// into; independent managers are for hosts that want isolated registries.
func NewAnimationManager() *AnimationManager {
	return &AnimationManager{
		types:   make(map[string]AnimationType),
		objects: make(map[weak.Pointer[Object]]*objectEntry),
	}
}

// Animations is the default process-wide manager.
var Animations = NewAnimationManager()

// managerDefaults are the base option values every instance starts from,
// overridden by type defaults and then call-site options.
var managerDefaults = Options{
	"loop":               true,
	"duration":           1.0,
	"easing":             "linear",
	"transitionDuration": 0.2,
}

// Register installs an animation type under name, replacing any prior
// registration. Instances already running under that name look the type up
// fresh each tick, so they pick up the new behavior immediately.
func (m *AnimationManager) Register(name string, t AnimationType) error {
	if name == "" {
		return errors.New("forcegraph: animation type name must not be empty")
	}
	if t.Update == nil {
		return fmt.Errorf("forcegraph: animation type %q has no update function", name)
	}
	m.types[name] = t
	return nil
}

// Unregister removes the animation type under name and reports whether one
// existed. Running instances are not stopped: their next tick finds no type
// and force-removes them without cleanup or restoration.
func (m *AnimationManager) Unregister(name string) bool {
	if _, ok := m.types[name]; !ok {
		return false
	}
	delete(m.types, name)
	return true
}

// Start begins the named animation on obj and returns its instance id, or
// -1 (with a logged warning) when obj is nil or the type is unregistered.
//
// If a non-stopping instance of the same type is already running on obj,
// Start merges opts into its resolved options and returns the existing id:
// no new instance, no re-init, and no reset of its transition progress or
// start time.
func (m *AnimationManager) Start(obj *Object, name string, opts Options) int {
	if obj == nil {
		warnf("start %q: no target object", name)
		return -1
	}
	t, ok := m.types[name]
	if !ok {
		warnf("start %q: animation type not registered", name)
		return -1
	}

	key := weak.Make(obj)
	entry := m.objects[key]
	if entry != nil {
		for _, in := range entry.instances {
			if in.name == name && !in.stopping {
				in.opts.merge(opts)
				if _, changed := opts["easing"]; changed {
					in.ease = resolveEasing(in.opts)
				}
				return in.id
			}
		}
	}

	resolved := managerDefaults.clone()
	resolved.merge(t.Defaults)
	resolved.merge(opts)

	in := &instance{
		id:    m.nextID,
		name:  name,
		opts:  resolved,
		ease:  resolveEasing(resolved),
		start: m.clock,
	}
	m.nextID++
	if t.Init != nil {
		in.state = t.Init(obj, resolved)
	}
	in.snap = takeSnapshot(obj)

	if entry == nil {
		entry = &objectEntry{target: key}
		m.objects[key] = entry
	}
	entry.instances = append(entry.instances, in)
	debugf("start %q on %q -> id %d", name, obj.Name, in.id)
	return in.id
}

// resolveEasing turns the "easing" option into a callable. Accepts a
// registered name, an EasingFunc, or a raw gween ease.TweenFunc; anything
// else (or an unknown name) falls back to linear with a warning.
func resolveEasing(opts Options) EasingFunc {
	switch v := opts["easing"].(type) {
	case EasingFunc:
		return v
	case func(t float64) float64:
		return v
	case ease.TweenFunc:
		return normalizeEase(v)
	case string:
		fn, ok := Easing(v)
		if !ok {
			warnf("unknown easing %q, using linear", v)
		}
		return fn
	}
	fn, _ := Easing("linear")
	return fn
}

// Stop stops instances of the named animation on obj. An empty name stops
// every non-stopping instance on obj. When immediate is true the instances
// are cleaned up, restored, and removed synchronously; otherwise they fade
// out over their transitionDuration.
func (m *AnimationManager) Stop(obj *Object, name string, immediate bool) {
	m.stop(obj, name, -1, immediate)
}

// StopID stops the single instance with the given id on obj.
func (m *AnimationManager) StopID(obj *Object, id int, immediate bool) {
	m.stop(obj, "", id, immediate)
}

func (m *AnimationManager) stop(obj *Object, name string, id int, immediate bool) {
	if obj == nil {
		return
	}
	key := weak.Make(obj)
	entry := m.objects[key]
	if entry == nil {
		return
	}
	for i := len(entry.instances) - 1; i >= 0; i-- {
		in := entry.instances[i]
		if name != "" && in.name != name {
			continue
		}
		if id >= 0 && in.id != id {
			continue
		}
		if in.stopping {
			continue
		}
		if immediate {
			m.finish(obj, entry, i)
		} else {
			in.stopping = true
			in.stopStart = m.clock
		}
	}
	if len(entry.instances) == 0 {
		delete(m.objects, key)
	}
}

// StopAll stops every instance on every tracked object.
func (m *AnimationManager) StopAll(immediate bool) {
	for key, entry := range m.objects {
		obj := entry.target.Value()
		if obj == nil {
			delete(m.objects, key)
			continue
		}
		m.stop(obj, "", -1, immediate)
	}
}

// finish runs cleanup, restores the pre-animation snapshot, and removes the
// instance at index i. This is the normal removal path; error faults bypass
// it entirely.
func (m *AnimationManager) finish(obj *Object, entry *objectEntry, i int) {
	in := entry.instances[i]
	if t, ok := m.types[in.name]; ok && t.Cleanup != nil {
		if err := safeCleanup(t.Cleanup, obj, in.state, in.opts); err != nil {
			warnf("animation %q cleanup failed on %q: %v", in.name, obj.Name, err)
		}
	}
	in.snap.restore(obj)
	entry.remove(i)
	debugf("finished %q id %d on %q", in.name, in.id, obj.Name)
}

// Toggle starts the named animation when no non-stopping instance of it
// exists on obj, and stops it otherwise. Reports true when it started one.
func (m *AnimationManager) Toggle(obj *Object, name string, opts Options, immediate bool) bool {
	if m.IsAnimating(obj, name) {
		m.Stop(obj, name, immediate)
		return false
	}
	m.Start(obj, name, opts)
	return true
}

// IsAnimating reports whether obj has a non-stopping instance of the named
// animation. An empty name matches any animation.
func (m *AnimationManager) IsAnimating(obj *Object, name string) bool {
	if obj == nil {
		return false
	}
	entry := m.objects[weak.Make(obj)]
	if entry == nil {
		return false
	}
	for _, in := range entry.instances {
		if in.stopping {
			continue
		}
		if name == "" || in.name == name {
			return true
		}
	}
	return false
}

// AnimationState is an observational snapshot of one running instance.
type AnimationState struct {
	ID         int
	Name       string
	Elapsed    float64 // seconds since Start
	Transition float64 // blend factor in [0, 1]
	Stopping   bool
	Options    Options
}

// States returns a snapshot of every instance currently tracked on obj, in
// registration order.
func (m *AnimationManager) States(obj *Object) []AnimationState {
	if obj == nil {
		return nil
	}
	entry := m.objects[weak.Make(obj)]
	if entry == nil {
		return nil
	}
	out := make([]AnimationState, 0, len(entry.instances))
	for _, in := range entry.instances {
		out = append(out, AnimationState{
			ID:         in.id,
			Name:       in.name,
			Elapsed:    m.clock - in.start,
			Transition: in.blend,
			Stopping:   in.stopping,
			Options:    in.opts.clone(),
		})
	}
	return out
}

// Tick advances every tracked animation by dt seconds. It is the single
// per-frame entry point; nothing called from it may propagate a panic to
// the host render loop. Instances whose update faults are removed without
// cleanup or restoration so one broken animation cannot stall the scene.
func (m *AnimationManager) Tick(dt float64) {
	m.clock += dt

	for key, entry := range m.objects {
		obj := entry.target.Value()
		if obj == nil {
			// Target was collected; drop its instances outright.
			delete(m.objects, key)
			continue
		}

		for i := len(entry.instances) - 1; i >= 0; i-- {
			in := entry.instances[i]

			t, ok := m.types[in.name]
			if !ok {
				// Type unregistered mid-flight: force-remove without
				// cleanup or restoration (see Unregister).
				warnf("animation %q no longer registered, removing instance %d", in.name, in.id)
				entry.remove(i)
				continue
			}

			td := in.opts.Float("transitionDuration", 0.2)

			if !in.stopping {
				if td <= 0 {
					in.blend = 1
				} else {
					in.blend = min(1, in.blend+dt/td)
				}
			} else {
				stopProgress := 1.0
				if td > 0 {
					stopProgress = min(1, (m.clock-in.stopStart)/td)
				}
				if stopProgress >= 1 {
					m.finish(obj, entry, i)
					continue
				}
				in.blend = 1 - stopProgress
			}

			if !in.stopping && !in.opts.Bool("loop", true) {
				if m.clock-in.start >= in.opts.Float("duration", 1) {
					in.stopping = true
					in.stopStart = m.clock
				}
			}

			state, err := safeUpdate(t.Update, obj, in.state, dt, in.opts, in.ease(in.blend))
			if err != nil {
				warnf("animation %q update failed on %q: %v", in.name, obj.Name, err)
				entry.remove(i)
				continue
			}
			in.state = state
		}

		if len(entry.instances) == 0 {
			delete(m.objects, key)
		}
	}
}

// safeUpdate invokes an update function behind a panic boundary. A panic in
// user animation code becomes an error and removes only that instance.
func safeUpdate(fn UpdateFunc, obj *Object, state any, dt float64, opts Options, blend float64) (next any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(obj, state, dt, opts, blend)
}

// safeCleanup invokes a cleanup function behind a panic boundary.
func safeCleanup(fn CleanupFunc, obj *Object, state any, opts Options) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	fn(obj, state, opts)
	return nil
}

// AnimationStats summarizes manager state for diagnostics.
type AnimationStats struct {
	Objects   int
	Instances int
	Types     int
	PerType   map[string]int
}

// Stats returns counts of tracked objects, instances, and registered types,
// plus a per-type instance breakdown. Purely observational.
func (m *AnimationManager) Stats() AnimationStats {
	stats := AnimationStats{
		Objects: len(m.objects),
		Types:   len(m.types),
		PerType: make(map[string]int),
	}
	for _, entry := range m.objects {
		stats.Instances += len(entry.instances)
		for _, in := range entry.instances {
			stats.PerType[in.name]++
		}
	}
	return stats
}
