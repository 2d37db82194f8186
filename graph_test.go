package forcegraph

import "testing"

// newTestGraph builds a Graph with isolated factory/manager instances so
// tests don't share the package-level defaults.
func newTestGraph() *Graph {
	g := NewGraph()
	g.Factory = NewObjectFactory()
	RegisterBuiltinTypes(g.Factory)
	g.Animations = NewAnimationManager()
	RegisterBuiltinAnimations(g.Animations)
	return g
}

func TestLoadGraphJSON(t *testing.T) {
	data := []byte(`{
		"nodes": [
			{"id": "a", "objectType": "cube", "val": 2, "color": "#ff0000"},
			{"id": "b"}
		],
		"links": [
			{"source": "a", "target": "b", "value": 1.5}
		]
	}`)

	gd, err := LoadGraphJSON(data)
	if err != nil {
		t.Fatalf("LoadGraphJSON: %v", err)
	}
	if len(gd.Nodes) != 2 || len(gd.Links) != 1 {
		t.Fatalf("nodes=%d links=%d", len(gd.Nodes), len(gd.Links))
	}
	if gd.Nodes[0].ObjectType != "cube" || gd.Nodes[0].Val != 2 {
		t.Errorf("node[0] = %+v", gd.Nodes[0])
	}
	if gd.Links[0].Source != "a" || gd.Links[0].Value != 1.5 {
		t.Errorf("link[0] = %+v", gd.Links[0])
	}
}

func TestLoadGraphJSONMalformed(t *testing.T) {
	if _, err := LoadGraphJSON([]byte("{nodes")); err == nil {
		t.Error("expected an error for malformed JSON")
	}
}

func TestSetDataCreatesObjects(t *testing.T) {
	g := newTestGraph()
	g.SetData(&GraphData{Nodes: []*GraphNode{
		{ID: "typed", ObjectType: "cube"},
		{ID: "plain"},
	}})

	typed := g.Object("typed")
	if typed == nil || typed.Geometry.Kind != GeometryBox {
		t.Errorf("typed node object = %+v, want a cube", typed)
	}
	plain := g.Object("plain")
	if plain == nil || plain.Geometry.Kind != GeometrySphere {
		t.Errorf("untyped node object = %+v, want the default sphere", plain)
	}
}

func TestSetDataReleasesDepartedNodes(t *testing.T) {
	g := newTestGraph()
	g.SetData(&GraphData{Nodes: []*GraphNode{{ID: 1, ObjectType: "cube"}}})
	obj := g.Object(1)
	if obj == nil {
		t.Fatal("expected an object for node 1")
	}
	g.Animations.Start(obj, "spin", nil)

	g.SetData(&GraphData{})
	if g.Object(1) != nil {
		t.Error("departed node should lose its object")
	}
	if obj.Visible {
		t.Error("released object should be hidden")
	}
	if g.Animations.IsAnimating(obj, "") {
		t.Error("animations on a departed node's object should be stopped")
	}

	// The released object is pooled and reissued for the next cube node.
	g.SetData(&GraphData{Nodes: []*GraphNode{{ID: 2, ObjectType: "cube"}}})
	if g.Object(2) != obj {
		t.Error("pool should reissue the released object")
	}
	if !obj.Visible {
		t.Error("reissued object should be visible")
	}
}

func TestTickCopiesLayoutPositions(t *testing.T) {
	g := newTestGraph()
	node := &GraphNode{ID: 1, ObjectType: "cube"}
	g.SetData(&GraphData{Nodes: []*GraphNode{node}})

	node.Position = Vec3{1, 2, 3}
	g.Tick(0.016)

	if got := g.Object(1).Position; got != (Vec3{1, 2, 3}) {
		t.Errorf("object position = %+v, want the layout position", got)
	}
}

func TestTickDrivesAnimations(t *testing.T) {
	g := newTestGraph()
	g.SetData(&GraphData{Nodes: []*GraphNode{{ID: 1, ObjectType: "cube"}}})
	obj := g.Object(1)

	g.Animations.Start(obj, "pulse", Options{"transitionDuration": 0})
	before := obj.Scale
	g.Tick(0.1)
	if obj.Scale == before {
		t.Error("Tick should advance animations")
	}
}

func TestSetDataNilResets(t *testing.T) {
	g := newTestGraph()
	g.SetData(&GraphData{Nodes: []*GraphNode{{ID: 1, ObjectType: "cube"}}})
	g.SetData(nil)
	if g.Object(1) != nil {
		t.Error("nil data should clear the node set")
	}
	if len(g.Data().Nodes) != 0 {
		t.Error("Data should report an empty set")
	}
}
