package sink

import (
	"encoding/json"
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/roomml/roomml/pkg/geom"
	"github.com/roomml/roomml/pkg/scene"
)

// DefaultMeshCells is the marching cubes resolution along the longest axis
// of each part.
const DefaultMeshCells = 100

// PartKind names the kind of solid a mesh was built from.
type PartKind string

const (
	PartFloor     PartKind = "floor"
	PartCeiling   PartKind = "ceiling"
	PartWall      PartKind = "wall"
	PartFurniture PartKind = "furniture"
)

// Mesh is a flat triangle list for one part, ready for a GPU buffer.
type Mesh struct {
	Part     string    `json:"part"`
	Kind     PartKind  `json:"kind"`
	Room     string    `json:"room"`
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...]
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// MeshOption configures mesh rendering via [RenderMesh] and [Meshes].
type MeshOption func(*meshRenderer)

type meshRenderer struct {
	cells int
	kinds map[PartKind]bool
}

// WithMeshCells sets the marching cubes resolution. Values below 1 fall back
// to [DefaultMeshCells].
func WithMeshCells(n int) MeshOption { return func(r *meshRenderer) { r.cells = n } }

// WithMeshParts restricts meshing to the given kinds of part.
func WithMeshParts(kinds ...PartKind) MeshOption {
	return func(r *meshRenderer) {
		r.kinds = make(map[PartKind]bool, len(kinds))
		for _, k := range kinds {
			r.kinds[k] = true
		}
	}
}

type meshOutput struct {
	Cells  int    `json:"cells"`
	Meshes []Mesh `json:"meshes"`
}

// RenderMesh meshes every part of the scene and returns the result as JSON.
func RenderMesh(s *scene.Scene, opts ...MeshOption) ([]byte, error) {
	r := newMeshRenderer(opts...)
	meshes, err := r.meshes(s)
	if err != nil {
		return nil, err
	}
	return json.Marshal(meshOutput{Cells: r.cells, Meshes: meshes})
}

// Meshes meshes every part of the scene.
func Meshes(s *scene.Scene, opts ...MeshOption) ([]Mesh, error) {
	r := newMeshRenderer(opts...)
	return r.meshes(s)
}

func newMeshRenderer(opts ...MeshOption) meshRenderer {
	r := meshRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	if r.cells < 1 {
		r.cells = DefaultMeshCells
	}
	return r
}

func (r *meshRenderer) wants(k PartKind) bool { return r.kinds == nil || r.kinds[k] }

func (r *meshRenderer) meshes(s *scene.Scene) ([]Mesh, error) {
	var out []Mesh
	add := func(room string, kind PartKind, part string, solid sdf.SDF3) {
		m := r.toMesh(solid)
		m.Room, m.Kind, m.Part = room, kind, part
		out = append(out, m)
	}

	for _, room := range s.Rooms {
		if r.wants(PartFloor) {
			solid, err := boxSolid(room.Floor)
			if err != nil {
				return nil, fmt.Errorf("room %s floor: %w", room.ID, err)
			}
			add(room.ID, PartFloor, room.ID+"/floor", solid)
		}
		if r.wants(PartCeiling) {
			solid, err := boxSolid(room.Ceiling)
			if err != nil {
				return nil, fmt.Errorf("room %s ceiling: %w", room.ID, err)
			}
			add(room.ID, PartCeiling, room.ID+"/ceiling", solid)
		}
		if r.wants(PartWall) {
			for _, w := range room.Walls {
				solid, err := WallSolid(w)
				if err != nil {
					return nil, fmt.Errorf("room %s %s wall: %w", room.ID, w.Label, err)
				}
				add(room.ID, PartWall, room.ID+"/wall-"+string(w.Side), solid)
			}
		}
		if r.wants(PartFurniture) {
			for _, f := range room.Furniture {
				solid, err := boxSolid(f.Box)
				if err != nil {
					return nil, fmt.Errorf("furniture %s: %w", f.ID, err)
				}
				add(room.ID, PartFurniture, f.ID, solid)
			}
		}
	}
	return out, nil
}

func (r *meshRenderer) toMesh(s sdf.SDF3) Mesh {
	triangles := render.ToTriangles(s, render.NewMarchingCubesUniform(r.cells))

	n := len(triangles) * 3
	m := Mesh{
		Vertices: make([]float32, 0, n*3),
		Normals:  make([]float32, 0, n*3),
		Indices:  make([]uint32, 0, n),
	}
	for i, tri := range triangles {
		nv := tri.Normal()
		for j := 0; j < 3; j++ {
			v := tri[j]
			m.Vertices = append(m.Vertices, float32(v.X), float32(v.Y), float32(v.Z))
			m.Normals = append(m.Normals, float32(nv.X), float32(nv.Y), float32(nv.Z))
			m.Indices = append(m.Indices, uint32(i*3+j))
		}
	}
	return m
}

// WallSolid returns the wall as a signed distance field: its box minus one
// box per opening. Holes are extended slightly through the wall thickness so
// the cut leaves no skin on either face.
func WallSolid(w scene.Wall) (sdf.SDF3, error) {
	solid, err := boxSolid(w.Box)
	if err != nil {
		return nil, err
	}
	for _, h := range w.Holes {
		cut := h.Box
		if w.Side.RunsAlongX() {
			cut.Z -= holeSlack
			cut.D += 2 * holeSlack
		} else {
			cut.X -= holeSlack
			cut.W += 2 * holeSlack
		}
		hole, err := boxSolid(cut)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", h.ID, err)
		}
		solid = sdf.Difference3D(solid, hole)
	}
	return solid, nil
}

const holeSlack = 0.01

// boxSolid returns a box occupying b. sdf.Box3D is centred on the origin,
// so it is translated to the box centre.
func boxSolid(b geom.AABB) (sdf.SDF3, error) {
	s, err := sdf.Box3D(v3.Vec{X: b.W, Y: b.H, Z: b.D}, 0)
	if err != nil {
		return nil, err
	}
	m := sdf.Translate3d(v3.Vec{X: b.X + b.W/2, Y: b.Y + b.H/2, Z: b.Z + b.D/2})
	return sdf.Transform3D(s, m), nil
}
