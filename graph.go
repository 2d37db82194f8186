package forcegraph

import (
	"encoding/json"
	"fmt"
)

// GraphNode is one data node of the rendered graph. The force-layout host
// owns the Position; the factory reads ID, ObjectType, Val, and Color.
type GraphNode struct {
	// ID is the node's identity. Any comparable JSON-representable value
	// works; nodes without an ID are identified by reference.
	ID any `json:"id"`

	Name string `json:"name"`

	// ObjectType names the registered object type that renders this node.
	// Empty means "use the host's default representation".
	ObjectType string `json:"objectType"`

	// Val sizes the node's visual representation (volume scales linearly).
	Val float64 `json:"val"`

	// Color is a CSS hex color ("#rrggbb"); empty uses the default palette.
	Color string `json:"color"`

	Group int `json:"group"`

	// Position is written by the layout host each frame and copied onto
	// the node's scene object by Graph.Tick.
	Position Vec3 `json:"-"`
}

// GraphLink connects two nodes by their IDs.
type GraphLink struct {
	Source any     `json:"source"`
	Target any     `json:"target"`
	Value  float64 `json:"value"`
}

// GraphData is the node/link set a Graph renders.
type GraphData struct {
	Nodes []*GraphNode `json:"nodes"`
	Links []*GraphLink `json:"links"`
}

// LoadGraphJSON parses a JSON document of the form
// {"nodes": [...], "links": [...]}. Numeric node IDs arrive as float64
// (JSON numbers); link endpoints referencing unknown IDs are kept but
// warned about.
func LoadGraphJSON(data []byte) (*GraphData, error) {
	var gd GraphData
	if err := json.Unmarshal(data, &gd); err != nil {
		return nil, fmt.Errorf("forcegraph: failed to parse graph JSON: %w", err)
	}
	known := make(map[any]bool, len(gd.Nodes))
	for _, n := range gd.Nodes {
		if n.ID == nil {
			continue
		}
		if known[n.ID] {
			warnf("graph JSON: duplicate node id %v", n.ID)
		}
		known[n.ID] = true
	}
	for _, l := range gd.Links {
		if l.Source != nil && !known[l.Source] {
			warnf("graph JSON: link source %v has no matching node", l.Source)
		}
		if l.Target != nil && !known[l.Target] {
			warnf("graph JSON: link target %v has no matching node", l.Target)
		}
	}
	return &gd, nil
}

// Graph is the thin host wiring: it keeps the current node set in sync with
// factory-issued scene objects and fans the per-frame tick out to the
// animation manager and camera. Layout physics and rendering stay with the
// external host.
type Graph struct {
	Factory    *ObjectFactory
	Animations *AnimationManager
	Camera     *OrbitCamera

	// DefaultObject builds the representation for nodes without a declared
	// object type (or whose type produced nothing). Defaults to a cached
	// sphere with a per-node material.
	DefaultObject func(node *GraphNode) *Object

	data    *GraphData
	objects map[any]*Object
	typed   map[any]bool // node keys whose object came from the factory
}

// NewGraph creates a graph wired to the package-level Factory and
// Animations instances.
func NewGraph() *Graph {
	g := &Graph{
		Factory:    Factory,
		Animations: Animations,
		Camera:     NewOrbitCamera(170),
		objects:    make(map[any]*Object),
		typed:      make(map[any]bool),
	}
	g.DefaultObject = g.defaultNodeObject
	return g
}

// defaultNodeObject renders a node as a sphere, sharing geometry through
// the factory cache like the built-in types do.
func (g *Graph) defaultNodeObject(node *GraphNode) *Object {
	size := nodeSize(node)
	geo := g.Factory.GetGeometry(fmt.Sprintf("sphere-%.2f", size/2), func() *Geometry {
		return NewSphereGeometry(size / 2)
	})
	obj := NewObject("node")
	obj.Geometry = geo
	obj.Material = nodeMaterial(node, g.Factory)
	return obj
}

// SetData replaces the rendered node set. Objects for departed nodes are
// released back to their pools (typed objects) or dropped (default
// representations), with any running animations hard-stopped first so the
// objects return to the pool restored. Objects for new nodes are created
// through the factory with DefaultObject as fallback.
func (g *Graph) SetData(data *GraphData) {
	if data == nil {
		data = &GraphData{}
	}

	keep := make(map[any]bool, len(data.Nodes))
	for _, node := range data.Nodes {
		keep[nodeKey(node)] = true
	}

	for key, obj := range g.objects {
		if keep[key] {
			continue
		}
		g.Animations.Stop(obj, "", true)
		if g.typed[key] {
			g.Factory.ReleaseObject(key)
		}
		delete(g.objects, key)
		delete(g.typed, key)
	}

	accessor := g.Factory.Accessor(g.DefaultObject)
	for _, node := range data.Nodes {
		key := nodeKey(node)
		if _, ok := g.objects[key]; ok {
			continue
		}
		obj := accessor(node)
		if obj == nil {
			continue
		}
		g.objects[key] = obj
		if g.Factory.ActiveObject(key) == obj {
			g.typed[key] = true
		}
	}

	g.data = data
}

// Data returns the current node/link set.
func (g *Graph) Data() *GraphData {
	return g.data
}

// Object returns the scene object rendered for the given node key, or nil.
func (g *Graph) Object(nodeID any) *Object {
	return g.objects[nodeID]
}

// Tick advances the graph by dt seconds: layout positions are copied onto
// scene objects, then animations and the camera update. Called once per
// rendered frame by the host loop.
func (g *Graph) Tick(dt float64) {
	if g.data != nil {
		for _, node := range g.data.Nodes {
			if obj := g.objects[nodeKey(node)]; obj != nil {
				obj.Position = node.Position
			}
		}
	}
	g.Animations.Tick(dt)
	g.Camera.Update(float32(dt))
}
