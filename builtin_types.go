package forcegraph

import (
	"fmt"
	"math"
)

// Built-in node object types. Each creator shares geometry through the
// factory cache under a size-derived key (nodes of equal derived size reuse
// one geometry instance) and clones its material from a color-keyed cached
// prototype, so animations can mutate the clone without corrupting sharers.

func init() {
	RegisterBuiltinTypes(Factory)
}

// RegisterBuiltinTypes installs cube, cone, and cylinder into f. The
// package-level Factory gets them automatically.
func RegisterBuiltinTypes(f *ObjectFactory) {
	f.RegisterType("cube", cubeCreator)
	f.RegisterType("cone", coneCreator)
	f.RegisterType("cylinder", cylinderCreator)
}

// defaultNodeColor matches the d3 categorical default used for untinted
// graph nodes.
var defaultNodeColor = Color{R: 0x1f / 255.0, G: 0x77 / 255.0, B: 0xb4 / 255.0}

// nodeSize derives an edge length from the node's value so visual volume
// grows linearly with Val.
func nodeSize(node *GraphNode) float64 {
	val := node.Val
	if val <= 0 {
		val = 1
	}
	return 4 * math.Cbrt(val)
}

func nodeColor(node *GraphNode) Color {
	if c, ok := ParseHexColor(node.Color); ok {
		return c
	}
	return defaultNodeColor
}

// nodeMaterial returns a per-object material for node, cloned from the
// color-keyed cached prototype.
func nodeMaterial(node *GraphNode, f *ObjectFactory) *Material {
	c := nodeColor(node)
	key := fmt.Sprintf("lambert-%.3f-%.3f-%.3f", c.R, c.G, c.B)
	proto := f.GetMaterial(key, func() *Material {
		m := NewMaterial(c)
		m.Transparent = true
		m.Opacity = 0.75
		return m
	})
	return proto.Clone()
}

func cubeCreator(node *GraphNode, f *ObjectFactory) (*Object, error) {
	size := nodeSize(node)
	geo := f.GetGeometry(fmt.Sprintf("box-%.2f", size), func() *Geometry {
		return NewBoxGeometry(size)
	})
	obj := NewObject("cube")
	obj.Geometry = geo
	obj.Material = nodeMaterial(node, f)
	return obj, nil
}

func coneCreator(node *GraphNode, f *ObjectFactory) (*Object, error) {
	size := nodeSize(node)
	geo := f.GetGeometry(fmt.Sprintf("cone-%.2f", size), func() *Geometry {
		return NewConeGeometry(size/2, size)
	})
	obj := NewObject("cone")
	obj.Geometry = geo
	obj.Material = nodeMaterial(node, f)
	return obj, nil
}

func cylinderCreator(node *GraphNode, f *ObjectFactory) (*Object, error) {
	size := nodeSize(node)
	geo := f.GetGeometry(fmt.Sprintf("cylinder-%.2f", size), func() *Geometry {
		return NewCylinderGeometry(size/2, size)
	})
	obj := NewObject("cylinder")
	obj.Geometry = geo
	obj.Material = nodeMaterial(node, f)
	return obj, nil
}
