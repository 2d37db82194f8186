package forcegraph

// --- ID counter ---

// objectIDCounter is a plain counter (no atomic — the core is driven from a
// single render-loop goroutine).
var objectIDCounter uint32

func nextObjectID() uint32 {
	objectIDCounter++
	return objectIDCounter
}

// --- Geometry ---

// GeometryKind identifies the primitive shape a Geometry describes.
type GeometryKind uint8

const (
	GeometryBox GeometryKind = iota
	GeometryCone
	GeometryCylinder
	GeometrySphere
)

// Geometry describes an immutable primitive shape. Geometries are cheap to
// describe but stand in for expensive GPU-side buffers, so they are shared
// through the factory's geometry cache and must never be mutated after
// construction (all sharers would observe the change).
type Geometry struct {
	Kind GeometryKind

	// Box dimensions.
	Width, Height, Depth float64

	// Cone / cylinder / sphere dimensions.
	Radius float64

	disposed bool
}

// NewBoxGeometry creates a cube geometry with the given edge length.
func NewBoxGeometry(size float64) *Geometry {
	return &Geometry{Kind: GeometryBox, Width: size, Height: size, Depth: size}
}

// NewConeGeometry creates a cone geometry with the given base radius and height.
func NewConeGeometry(radius, height float64) *Geometry {
	return &Geometry{Kind: GeometryCone, Radius: radius, Height: height}
}

// NewCylinderGeometry creates a cylinder geometry with the given radius and height.
func NewCylinderGeometry(radius, height float64) *Geometry {
	return &Geometry{Kind: GeometryCylinder, Radius: radius, Height: height}
}

// NewSphereGeometry creates a sphere geometry with the given radius.
func NewSphereGeometry(radius float64) *Geometry {
	return &Geometry{Kind: GeometrySphere, Radius: radius}
}

// Dispose releases the geometry's underlying resources. Using a disposed
// geometry is a caller error.
func (g *Geometry) Dispose() {
	g.disposed = true
}

// IsDisposed reports whether Dispose has been called.
func (g *Geometry) IsDisposed() bool {
	return g.disposed
}

// --- Material ---

// Material holds the surface properties the animation engine reads, writes,
// and restores: base color, opacity, and emissive glow. Materials obtained
// from the factory's material cache are shared prototypes; objects that will
// be animated carry their own Clone.
type Material struct {
	Color             Color
	Opacity           float64
	Transparent       bool
	Emissive          Color
	EmissiveIntensity float64

	disposed bool
}

// NewMaterial creates an opaque material with the given base color and no
// emissive glow.
func NewMaterial(c Color) *Material {
	return &Material{Color: c, Opacity: 1}
}

// Clone returns an independent copy of the material. The copy is never
// disposed even if the original is.
func (m *Material) Clone() *Material {
	clone := *m
	clone.disposed = false
	return &clone
}

// Dispose releases the material's underlying resources.
func (m *Material) Dispose() {
	m.disposed = true
}

// IsDisposed reports whether Dispose has been called.
func (m *Material) IsDisposed() bool {
	return m.disposed
}

// --- Object ---

// Object is the scene representation the animation engine mutates: a flat
// struct with transform vectors and an optional material, mirroring what a
// 3D render library exposes per scene node. A single struct is used for all
// object types to avoid interface dispatch on the per-frame path.
type Object struct {
	ID   uint32
	Name string

	Position Vec3
	Rotation Vec3 // Euler angles in radians
	Scale    Vec3

	Visible bool

	Geometry *Geometry
	Material *Material
}

// NewObject creates a visible object with identity scale at the origin.
func NewObject(name string) *Object {
	return &Object{
		ID:      nextObjectID(),
		Name:    name,
		Scale:   Vec3One,
		Visible: true,
	}
}
