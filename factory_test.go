package forcegraph

import "testing"

// countingCreator returns a creator that builds bare objects and counts
// invocations.
func countingCreator(count *int) ObjectCreator {
	return func(node *GraphNode, f *ObjectFactory) (*Object, error) {
		*count++
		return NewObject("counted"), nil
	}
}

func TestRegisterTypeValidation(t *testing.T) {
	f := NewObjectFactory()

	if err := f.RegisterType("", countingCreator(new(int))); err == nil {
		t.Error("expected error for empty name")
	}
	if err := f.RegisterType("cube", nil); err == nil {
		t.Error("expected error for nil creator")
	}
	if err := f.RegisterType("cube", countingCreator(new(int))); err != nil {
		t.Errorf("valid registration failed: %v", err)
	}
}

func TestCreateObjectWithoutDeclaredType(t *testing.T) {
	f := NewObjectFactory()

	if obj := f.CreateObject(nil); obj != nil {
		t.Error("nil node should yield nil")
	}
	if obj := f.CreateObject(&GraphNode{ID: 1}); obj != nil {
		t.Error("node without declared type should yield nil")
	}
}

func TestCreateObjectUnknownType(t *testing.T) {
	f := NewObjectFactory()
	if obj := f.CreateObject(&GraphNode{ID: 1, ObjectType: "dodecahedron"}); obj != nil {
		t.Error("unregistered type should yield nil")
	}
}

func TestCreateObjectTracksActive(t *testing.T) {
	f := NewObjectFactory()
	f.RegisterType("box", countingCreator(new(int)))

	node := &GraphNode{ID: "n1", ObjectType: "box"}
	obj := f.CreateObject(node)
	if obj == nil {
		t.Fatal("expected an object")
	}
	if got := f.ActiveObject("n1"); got != obj {
		t.Error("object should be tracked under the node's ID")
	}
}

func TestPoolReuse(t *testing.T) {
	f := NewObjectFactory()
	calls := 0
	f.RegisterType("box", countingCreator(&calls))

	node := &GraphNode{ID: 1, ObjectType: "box"}
	first := f.CreateObject(node)
	if first == nil || calls != 1 {
		t.Fatalf("first create: obj=%v calls=%d", first, calls)
	}

	f.ReleaseObject(1)
	if first.Visible {
		t.Error("released object should be hidden")
	}
	if f.ActiveObject(1) != nil {
		t.Error("released object should leave the active table")
	}

	second := f.CreateObject(&GraphNode{ID: 2, ObjectType: "box"})
	if second != first {
		t.Error("create after release should reissue the pooled instance")
	}
	if !second.Visible {
		t.Error("reissued object should be visible again")
	}
	if calls != 1 {
		t.Errorf("creator called %d times, want 1 (pool hit skips the creator)", calls)
	}
}

func TestCreatorPanicYieldsNoObject(t *testing.T) {
	f := NewObjectFactory()
	f.RegisterType("cursed", func(node *GraphNode, f *ObjectFactory) (*Object, error) {
		panic("nope")
	})

	node := &GraphNode{ID: 1, ObjectType: "cursed"}
	if obj := f.CreateObject(node); obj != nil {
		t.Error("panicking creator should yield nil")
	}
	if f.ActiveObject(1) != nil {
		t.Error("no object should be tracked after a creator fault")
	}
}

func TestReleaseUntrackedIsNoOp(t *testing.T) {
	f := NewObjectFactory()
	f.ReleaseObject("ghost") // must not panic
}

func TestNodeWithoutIDIsKeyedByReference(t *testing.T) {
	f := NewObjectFactory()
	f.RegisterType("box", countingCreator(new(int)))

	node := &GraphNode{ObjectType: "box"}
	obj := f.CreateObject(node)
	if obj == nil {
		t.Fatal("expected an object")
	}
	if f.ActiveObject(node) != obj {
		t.Error("ID-less node should be tracked by reference")
	}
}

func TestGeometryCacheMemoizes(t *testing.T) {
	f := NewObjectFactory()
	calls := 0
	create := func() *Geometry {
		calls++
		return NewBoxGeometry(2)
	}

	a := f.GetGeometry("box-2", create)
	b := f.GetGeometry("box-2", create)
	if a != b {
		t.Error("same key must return the identical cached instance")
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}

	c := f.GetGeometry("box-3", func() *Geometry {
		calls++
		return NewBoxGeometry(3)
	})
	if c == a {
		t.Error("different keys must yield distinct resources")
	}
	if calls != 2 {
		t.Errorf("create called %d times, want 2", calls)
	}
}

func TestMaterialCacheMemoizes(t *testing.T) {
	f := NewObjectFactory()
	calls := 0
	create := func() *Material {
		calls++
		return NewMaterial(ColorWhite)
	}

	a := f.GetMaterial("white", create)
	b := f.GetMaterial("white", create)
	if a != b || calls != 1 {
		t.Errorf("material cache miss: same=%v calls=%d", a == b, calls)
	}
}

func TestUnregisterTypeDisposesPoolNotCache(t *testing.T) {
	f := NewObjectFactory()
	f.RegisterType("box", func(node *GraphNode, f *ObjectFactory) (*Object, error) {
		obj := NewObject("box")
		obj.Geometry = f.GetGeometry("shared", func() *Geometry { return NewBoxGeometry(1) })
		obj.Material = NewMaterial(ColorWhite) // owned, not cached
		return obj, nil
	})

	node := &GraphNode{ID: 1, ObjectType: "box"}
	obj := f.CreateObject(node)
	f.ReleaseObject(1)

	if !f.UnregisterType("box") {
		t.Fatal("UnregisterType should report the type existed")
	}
	if f.UnregisterType("box") {
		t.Error("second UnregisterType should report false")
	}

	if !obj.Material.IsDisposed() {
		t.Error("owned material of a disposed pooled object should be freed")
	}
	if obj.Geometry.IsDisposed() {
		t.Error("cache-shared geometry must survive pool teardown")
	}
}

func TestDisposeCacheFreesSharedResources(t *testing.T) {
	f := NewObjectFactory()
	g := f.GetGeometry("shared", func() *Geometry { return NewBoxGeometry(1) })
	m := f.GetMaterial("shared", func() *Material { return NewMaterial(ColorWhite) })

	f.DisposeCache()
	if !g.IsDisposed() || !m.IsDisposed() {
		t.Error("DisposeCache must free cached resources")
	}

	calls := 0
	f.GetGeometry("shared", func() *Geometry {
		calls++
		return NewBoxGeometry(1)
	})
	if calls != 1 {
		t.Error("cache should be empty after DisposeCache")
	}
}

func TestClearPoolsKeepsTypesAndCaches(t *testing.T) {
	f := NewObjectFactory()
	calls := 0
	f.RegisterType("box", countingCreator(&calls))
	g := f.GetGeometry("shared", func() *Geometry { return NewBoxGeometry(1) })

	f.CreateObject(&GraphNode{ID: 1, ObjectType: "box"})
	f.ReleaseObject(1)
	f.ClearPools()

	if g.IsDisposed() {
		t.Error("ClearPools must not touch the shared cache")
	}

	// Pool is gone, so the next create invokes the creator again.
	f.CreateObject(&GraphNode{ID: 2, ObjectType: "box"})
	if calls != 2 {
		t.Errorf("creator calls = %d, want 2 after ClearPools", calls)
	}
}

func TestDisposeTearsEverythingDown(t *testing.T) {
	f := NewObjectFactory()
	f.RegisterType("box", countingCreator(new(int)))
	f.CreateObject(&GraphNode{ID: 1, ObjectType: "box"})
	f.GetGeometry("shared", func() *Geometry { return NewBoxGeometry(1) })

	f.Dispose()

	if f.ActiveObject(1) != nil {
		t.Error("active table should be empty after Dispose")
	}
	if obj := f.CreateObject(&GraphNode{ID: 2, ObjectType: "box"}); obj != nil {
		t.Error("types should be unregistered after Dispose")
	}
}

func TestAccessorFallback(t *testing.T) {
	f := NewObjectFactory()
	f.RegisterType("box", countingCreator(new(int)))

	fallbackObj := NewObject("default")
	accessor := f.Accessor(func(node *GraphNode) *Object { return fallbackObj })

	if obj := accessor(&GraphNode{ID: 1, ObjectType: "box"}); obj == nil || obj == fallbackObj {
		t.Error("typed node should come from the factory, not the fallback")
	}
	if obj := accessor(&GraphNode{ID: 2}); obj != fallbackObj {
		t.Error("untyped node should use the fallback")
	}

	bare := f.Accessor(nil)
	if obj := bare(&GraphNode{ID: 3}); obj != nil {
		t.Error("nil fallback should yield nil for untyped nodes")
	}
}
