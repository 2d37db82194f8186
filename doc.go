// Package forcegraph is the interaction core of a 3D force-directed graph
// renderer: per-frame animation scheduling with transition blending and
// state restoration, plus pooled, cache-backed creation of per-node scene
// objects.
//
// The package deliberately stops at the library boundary — force-layout
// physics, GPU rendering, and pointer hit testing belong to the host, which
// drives the core through two calls per frame and two calls per node:
//
//	graph := forcegraph.NewGraph()
//	graph.SetData(data)            // as nodes enter/leave the rendered set
//	graph.Tick(dt)                 // once per rendered frame
//
// # Animations
//
// Named animation behaviors are registered on an [AnimationManager] and
// started per object. Starts and stops blend smoothly over a configurable
// transition, and stopping an animation restores the object's captured
// pre-animation transform and material state:
//
//	id := forcegraph.Animations.Start(obj, "pulse", forcegraph.Options{
//		"amplitude": 0.4,
//	})
//	// later:
//	forcegraph.Animations.Stop(obj, "pulse", false) // graceful fade-out
//
// Built-in behaviors: pulse (scale oscillation), spin (axis rotation), and
// glow (emissive breathing). Custom behaviors register with
// [AnimationManager.Register]; easing names resolve through [Easing] (backed
// by [gween]).
//
// # Node objects
//
// An [ObjectFactory] maps each node's declared object type to a creator,
// pools released objects per type for reuse, and memoizes shared geometry
// and materials by key so equal-sized nodes share one geometry instance.
// Built-in types: cube, cone, cylinder.
//
// A runnable host using Ebitengine lives in examples/basic.
//
// [gween]: https://github.com/tanema/gween
package forcegraph
