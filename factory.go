package forcegraph

import (
	"errors"
	"fmt"
)

// ObjectCreator builds a new scene object for a graph node. Creators receive
// the factory so they can construct geometry and materials through its
// shared caches. Returning nil (or an error, or panicking) yields no object;
// the caller falls back to its default representation.
type ObjectCreator func(node *GraphNode, f *ObjectFactory) (*Object, error)

// activeObject pairs a handed-out object with the type whose pool it
// returns to on release.
type activeObject struct {
	object   *Object
	typeName string
}

// ObjectFactory manages per-node visual representations: a registry of
// named creators, a reuse pool per type, an active-object table keyed by
// node identity, and shared geometry/material caches.
//
// Pooling contract: an object handed out by CreateObject is tracked until
// ReleaseObject; releasing hides it and parks it in its type's pool, and a
// later CreateObject of the same type reissues it without invoking the
// creator. Callers must not retain references to a released object until it
// is reissued.
type ObjectFactory struct {
	creators map[string]ObjectCreator
	pools    map[string][]*Object
	active   map[any]activeObject

	geometries map[string]*Geometry
	materials  map[string]*Material
}

// NewObjectFactory creates an empty factory. Most callers use the
// package-level Factory instance, which the built-in object types register
// into.
func NewObjectFactory() *ObjectFactory {
	return &ObjectFactory{
		creators:   make(map[string]ObjectCreator),
		pools:      make(map[string][]*Object),
		active:     make(map[any]activeObject),
		geometries: make(map[string]*Geometry),
		materials:  make(map[string]*Material),
	}
}

// Factory is the default process-wide object factory.
var Factory = NewObjectFactory()

// RegisterType installs a creator under name, replacing any prior
// registration, and ensures the type has a (possibly empty) pool.
func (f *ObjectFactory) RegisterType(name string, creator ObjectCreator) error {
	if name == "" {
		return errors.New("forcegraph: object type name must not be empty")
	}
	if creator == nil {
		return fmt.Errorf("forcegraph: object type %q has no creator function", name)
	}
	f.creators[name] = creator
	if _, ok := f.pools[name]; !ok {
		f.pools[name] = []*Object{}
	}
	return nil
}

// UnregisterType removes the creator under name and disposes every pooled
// instance of that type. Reports whether the type was registered. Shared
// cached geometries/materials are untouched (see DisposeCache).
func (f *ObjectFactory) UnregisterType(name string) bool {
	if _, ok := f.creators[name]; !ok {
		return false
	}
	delete(f.creators, name)
	for _, obj := range f.pools[name] {
		f.disposeObject(obj)
	}
	delete(f.pools, name)
	return true
}

// CreateObject returns a visual representation for node, keyed by the
// node's declared object type. A node with no declared type yields nil
// without a warning — the caller is expected to fall back to a default
// representation. An unregistered type, or a faulting creator, yields nil
// with a logged warning.
//
// Pooled instances of the type are reissued (made visible) before the
// creator is consulted. On success the object is recorded in the active
// table under the node's identity until ReleaseObject.
func (f *ObjectFactory) CreateObject(node *GraphNode) *Object {
	if node == nil || node.ObjectType == "" {
		return nil
	}
	creator, ok := f.creators[node.ObjectType]
	if !ok {
		warnf("object type %q not registered", node.ObjectType)
		return nil
	}

	var obj *Object
	if pool := f.pools[node.ObjectType]; len(pool) > 0 {
		obj = pool[len(pool)-1]
		f.pools[node.ObjectType] = pool[:len(pool)-1]
		obj.Visible = true
	} else {
		var err error
		obj, err = safeCreate(creator, node, f)
		if err != nil {
			warnf("object type %q creator failed: %v", node.ObjectType, err)
			return nil
		}
		if obj == nil {
			return nil
		}
	}

	f.active[nodeKey(node)] = activeObject{object: obj, typeName: node.ObjectType}
	return obj
}

// safeCreate invokes a creator behind a panic boundary so a faulting
// creator produces "no object" rather than unwinding the host.
func safeCreate(creator ObjectCreator, node *GraphNode, f *ObjectFactory) (obj *Object, err error) {
	defer func() {
		if r := recover(); r != nil {
			obj = nil
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return creator(node, f)
}

// nodeKey is the active-table identity for a node: its explicit ID when
// present, otherwise the node reference itself.
func nodeKey(node *GraphNode) any {
	if node.ID != nil {
		return node.ID
	}
	return node
}

// ReleaseObject returns the object tracked under nodeID to its type's pool,
// hidden, for reuse by a future CreateObject of the same type. No-op when
// nodeID is not tracked.
func (f *ObjectFactory) ReleaseObject(nodeID any) {
	a, ok := f.active[nodeID]
	if !ok {
		return
	}
	a.object.Visible = false
	f.pools[a.typeName] = append(f.pools[a.typeName], a.object)
	delete(f.active, nodeID)
}

// ActiveObject returns the object currently issued for nodeID, or nil.
func (f *ObjectFactory) ActiveObject(nodeID any) *Object {
	return f.active[nodeID].object
}

// GetGeometry returns the cached geometry under key, invoking create at
// most once per key for the cache's lifetime. Cached geometries are shared
// across objects and must never be mutated.
func (f *ObjectFactory) GetGeometry(key string, create func() *Geometry) *Geometry {
	if g, ok := f.geometries[key]; ok {
		return g
	}
	g := create()
	f.geometries[key] = g
	return g
}

// GetMaterial returns the cached material under key, invoking create at
// most once per key. Cached materials are shared prototypes; objects whose
// material will be animated should carry a Clone.
func (f *ObjectFactory) GetMaterial(key string, create func() *Material) *Material {
	if m, ok := f.materials[key]; ok {
		return m
	}
	m := create()
	f.materials[key] = m
	return m
}

// disposeObject frees an object's graphics resources, skipping any resource
// that is also present in a shared cache — cache-owned resources are only
// freed by DisposeCache, never through pool teardown.
func (f *ObjectFactory) disposeObject(obj *Object) {
	if obj.Geometry != nil && !f.isCachedGeometry(obj.Geometry) {
		obj.Geometry.Dispose()
	}
	if obj.Material != nil && !f.isCachedMaterial(obj.Material) {
		obj.Material.Dispose()
	}
}

func (f *ObjectFactory) isCachedGeometry(g *Geometry) bool {
	for _, cached := range f.geometries {
		if cached == g {
			return true
		}
	}
	return false
}

func (f *ObjectFactory) isCachedMaterial(m *Material) bool {
	for _, cached := range f.materials {
		if cached == m {
			return true
		}
	}
	return false
}

// ClearPools disposes every pooled object of every type, leaving the pools
// empty but the types registered and the caches intact.
func (f *ObjectFactory) ClearPools() {
	for name, pool := range f.pools {
		for _, obj := range pool {
			f.disposeObject(obj)
		}
		f.pools[name] = f.pools[name][:0]
	}
}

// Clear disposes all pooled and active objects and empties the active
// table. Registered types and the shared caches survive.
func (f *ObjectFactory) Clear() {
	f.ClearPools()
	for id, a := range f.active {
		f.disposeObject(a.object)
		delete(f.active, id)
	}
}

// DisposeCache disposes every cached geometry and material and empties both
// caches. Call only when no live object still references a cached resource.
func (f *ObjectFactory) DisposeCache() {
	for key, g := range f.geometries {
		g.Dispose()
		delete(f.geometries, key)
	}
	for key, m := range f.materials {
		m.Dispose()
		delete(f.materials, key)
	}
}

// Dispose tears the factory down completely: all objects, all caches, all
// registered types.
func (f *ObjectFactory) Dispose() {
	f.Clear()
	f.DisposeCache()
	for name := range f.creators {
		delete(f.creators, name)
	}
	for name := range f.pools {
		delete(f.pools, name)
	}
}

// Accessor returns a per-node object lookup that delegates to CreateObject
// and falls back to the given function when no typed object is produced.
// A nil fallback yields nil, letting the caller apply its own default
// representation.
func (f *ObjectFactory) Accessor(fallback func(node *GraphNode) *Object) func(node *GraphNode) *Object {
	return func(node *GraphNode) *Object {
		if obj := f.CreateObject(node); obj != nil {
			return obj
		}
		if fallback != nil {
			return fallback(node)
		}
		return nil
	}
}
