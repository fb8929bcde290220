// Package scene is a file-backed host scene used to drive the analysis engine.
//
// A scene file lists objects with stable ids, transforms, modes and either
// explicit polygon data or a generated primitive. The Scene serves mesh
// snapshots to the engine and turns file reloads into host change events.
// Objects that disappear on reload are tombstoned so that snapshots requested
// for them report a stale reference rather than an unknown object.
package scene

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"sync"

	"github.com/golang/geo/r3"
	"go.trai.ch/mesha/internal/core/domain"
	"go.trai.ch/mesha/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Object types.
const (
	TypeMesh  = "mesh"
	TypeEmpty = "empty"
)

type object struct {
	info     domain.ObjectInfo
	snapshot *domain.Snapshot
	geometry uint64
}

// Scene implements ports.Scene on a YAML file.
type Scene struct {
	path   string
	mesher ports.ShapeMesher

	mu         sync.RWMutex
	objects    []*object
	byKey      map[domain.ObjectKey]*object
	tombstones map[domain.ObjectKey]struct{}
}

var _ ports.Scene = (*Scene)(nil)

// Open loads the scene at path.
func Open(path string, mesher ports.ShapeMesher) (*Scene, error) {
	s := &Scene{
		path:       path,
		mesher:     mesher,
		tombstones: make(map[domain.ObjectKey]struct{}),
	}
	objects, err := s.read()
	if err != nil {
		return nil, err
	}
	s.replace(objects)
	return s, nil
}

// Path returns the scene file.
func (s *Scene) Path() string {
	return s.path
}

// Objects lists the scene objects in declaration order.
func (s *Scene) Objects() []domain.ObjectInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.ObjectInfo, len(s.objects))
	for i, o := range s.objects {
		out[i] = o.info
	}
	return out
}

// Snapshot returns the current mesh of key. The snapshot is shared and must
// not be modified.
func (s *Scene) Snapshot(ctx context.Context, key domain.ObjectKey) (*domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, gone := s.tombstones[key]; gone {
		return nil, zerr.With(zerr.Wrap(domain.ErrStaleReference, "object was deleted"), "object", key.String())
	}
	o, ok := s.byKey[key]
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidObject, "object is not in the scene"), "object", key.String())
	}
	if !o.info.Mesh {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidObject, "object has no mesh"), "object", o.info.Name)
	}
	return o.snapshot, nil
}

// Reload re-reads the scene file and returns the changes since the previous
// load. On error the previous state is kept.
func (s *Scene) Reload() ([]domain.ChangeEvent, error) {
	objects, err := s.read()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	events := diff(s.objects, objects)
	for _, ev := range events {
		if ev.Kind == domain.ChangeDeleted {
			s.tombstones[ev.Object] = struct{}{}
		}
	}
	s.replace(objects)
	return events, nil
}

// replace installs objects. Callers hold the write lock or own s exclusively.
func (s *Scene) replace(objects []*object) {
	s.objects = objects
	s.byKey = make(map[domain.ObjectKey]*object, len(objects))
	for _, o := range objects {
		s.byKey[o.info.Key] = o
		delete(s.tombstones, o.info.Key)
	}
}

// diff lists the events that turn before into after, in declaration order.
func diff(before, after []*object) []domain.ChangeEvent {
	next := make(map[domain.ObjectKey]*object, len(after))
	for _, o := range after {
		next[o.info.Key] = o
	}

	var events []domain.ChangeEvent
	for _, old := range before {
		key := old.info.Key
		cur, ok := next[key]
		if !ok {
			events = append(events, domain.ChangeEvent{Object: key, Kind: domain.ChangeDeleted})
			continue
		}
		if old.geometry != cur.geometry || old.info.Mesh != cur.info.Mesh {
			events = append(events, domain.ChangeEvent{Object: key, Kind: domain.ChangeGeometry})
		}
		if old.snapshot.Transform != cur.snapshot.Transform {
			events = append(events, domain.ChangeEvent{
				Object:    key,
				Kind:      domain.ChangeTransform,
				Transform: cur.snapshot.Transform,
			})
		}
		if old.info.Mode != cur.info.Mode {
			events = append(events, domain.ChangeEvent{Object: key, Kind: domain.ChangeMode, Mode: cur.info.Mode})
		}
	}
	return events
}

func (s *Scene) read() ([]*object, error) {
	// #nosec G304 -- path is provided by the user
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(zerr.Wrap(domain.ErrSceneReadFailed, "scene file does not exist"), "path", s.path)
		}
		return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrSceneReadFailed, "cannot load scene"), "path", s.path), "cause", err.Error())
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrSceneParseFailed, "cannot load scene"), "path", s.path), "cause", err.Error())
	}
	if file.Version != "" && file.Version != "1" {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnsupportedVersion, "invalid scene"), "version", file.Version)
	}

	objects := make([]*object, 0, len(file.Objects))
	names := make(map[string]struct{}, len(file.Objects))
	keys := make(map[domain.ObjectKey]struct{}, len(file.Objects))
	for i := range file.Objects {
		dto := &file.Objects[i]
		o, err := s.buildObject(dto)
		if err != nil {
			return nil, zerr.With(zerr.With(err, "object", dto.Name), "path", s.path)
		}
		if _, dup := names[o.info.Name]; dup {
			return nil, zerr.With(zerr.Wrap(domain.ErrDuplicateObject, "object name is used twice"), "object", o.info.Name)
		}
		if _, dup := keys[o.info.Key]; dup {
			return nil, zerr.With(zerr.Wrap(domain.ErrDuplicateObject, "object id is used twice"), "id", o.info.Key.String())
		}
		names[o.info.Name] = struct{}{}
		keys[o.info.Key] = struct{}{}
		objects = append(objects, o)
	}
	return objects, nil
}

func (s *Scene) buildObject(dto *ObjectDTO) (*object, error) {
	if dto.Name == "" {
		return nil, zerr.Wrap(domain.ErrInvalidScene, "object needs a name")
	}

	key := domain.ObjectKeyForName(dto.Name)
	if dto.ID != "" {
		parsed, err := domain.ParseObjectKey(dto.ID)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidScene, "invalid object id"), "id", dto.ID)
		}
		key = parsed
	}

	mode, err := parseMode(dto.Mode)
	if err != nil {
		return nil, err
	}
	transform, err := dto.Transform.Matrix4()
	if err != nil {
		return nil, err
	}

	o := &object{info: domain.ObjectInfo{Key: key, Name: dto.Name, Mode: mode}}
	switch dto.Type {
	case TypeEmpty:
		if dto.Mesh != nil || dto.Primitive != nil {
			return nil, zerr.Wrap(domain.ErrInvalidScene, "empty objects carry no mesh")
		}
		o.snapshot = &domain.Snapshot{Transform: transform}
		return o, nil
	case "", TypeMesh:
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidScene, "unknown object type"), "type", dto.Type)
	}

	topo, err := s.topology(dto)
	if err != nil {
		return nil, err
	}
	snapshot, err := Build(topo)
	if err != nil {
		return nil, err
	}
	snapshot.Transform = transform
	o.geometry = geometryHash(snapshot)
	snapshot.Revision = revision(o.geometry, transform)

	o.info.Mesh = true
	o.snapshot = snapshot
	return o, nil
}

func (s *Scene) topology(dto *ObjectDTO) (*Topology, error) {
	switch {
	case dto.Mesh != nil && dto.Primitive != nil:
		return nil, zerr.Wrap(domain.ErrInvalidScene, "mesh and primitive are exclusive")
	case dto.Mesh != nil:
		return meshTopology(dto.Mesh)
	case dto.Primitive != nil:
		shape, err := parseShape(dto.Primitive)
		if err != nil {
			return nil, err
		}
		mesh, err := s.mesher.Mesh(shape)
		if err != nil {
			return nil, err
		}
		return &Topology{Positions: mesh.Positions, Faces: mesh.Faces}, nil
	default:
		return &Topology{}, nil
	}
}

func meshTopology(dto *MeshDTO) (*Topology, error) {
	t := &Topology{Faces: dto.Faces, Positions: make([]r3.Vector, len(dto.Vertices))}
	for i, v := range dto.Vertices {
		if len(v) != 3 {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidScene, "vertex needs 3 coordinates"), "vertex", i)
		}
		t.Positions[i] = r3.Vector{X: v[0], Y: v[1], Z: v[2]}
	}

	var err error
	if t.Loose, err = pairs("edges", dto.Edges); err != nil {
		return nil, err
	}
	if t.Sharp, err = pairs("sharp", dto.Sharp); err != nil {
		return nil, err
	}
	if t.Seams, err = pairs("seams", dto.Seams); err != nil {
		return nil, err
	}
	return t, nil
}

func pairs(field string, in [][]int) ([][2]int, error) {
	out := make([][2]int, len(in))
	for i, p := range in {
		if len(p) != 2 {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidScene, "edge needs 2 vertices"), "field", field)
		}
		out[i] = [2]int{p[0], p[1]}
	}
	return out, nil
}

func parseShape(dto *PrimitiveDTO) (domain.Shape, error) {
	set := 0
	shape := domain.Shape{Cells: dto.Cells}
	if dto.Box != nil {
		set++
		size, err := vec3("box", dto.Box, 0)
		if err != nil {
			return domain.Shape{}, err
		}
		shape.Kind = domain.ShapeBox
		shape.Size = r3.Vector{X: size[0], Y: size[1], Z: size[2]}
	}
	if dto.Cylinder != nil {
		set++
		shape.Kind = domain.ShapeCylinder
		shape.Height = dto.Cylinder.Height
		shape.Radius = dto.Cylinder.Radius
	}
	if dto.Sphere != nil {
		set++
		shape.Kind = domain.ShapeSphere
		shape.Radius = dto.Sphere.Radius
	}
	if set != 1 {
		return domain.Shape{}, zerr.With(zerr.Wrap(domain.ErrInvalidScene, "primitive needs exactly one shape"), "shapes", set)
	}
	return shape, nil
}

func parseMode(s string) (domain.ObjectMode, error) {
	switch s {
	case "", "object":
		return domain.ModeObject, nil
	case "edit":
		return domain.ModeEdit, nil
	default:
		return 0, zerr.With(zerr.Wrap(domain.ErrInvalidScene, "unknown mode"), "mode", s)
	}
}

// Loader implements ports.SceneLoader.
type Loader struct {
	mesher ports.ShapeMesher
}

// NewLoader creates a Loader generating primitives with mesher.
func NewLoader(mesher ports.ShapeMesher) *Loader {
	return &Loader{mesher: mesher}
}

// Load opens the scene at path.
func (l *Loader) Load(path string) (ports.Scene, error) {
	return Open(path, l.mesher)
}

