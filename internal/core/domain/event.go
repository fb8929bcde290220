package domain

import "github.com/go-gl/mathgl/mgl64"

// ObjectMode is the host's interaction mode for an object.
type ObjectMode uint8

const (
	// ModeObject is the default mode; mesh data is committed.
	ModeObject ObjectMode = iota
	// ModeEdit is an in-place edit session.
	ModeEdit
)

func (m ObjectMode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "object"
}

// ChangeKind classifies a host change notification.
type ChangeKind uint8

const (
	// ChangeGeometry reports that mesh data changed.
	ChangeGeometry ChangeKind = iota
	// ChangeTransform reports that the object's world matrix may have changed.
	ChangeTransform
	// ChangeMode reports an interaction mode update.
	ChangeMode
	// ChangeDeleted reports that the object no longer exists.
	ChangeDeleted
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeGeometry:
		return "geometry"
	case ChangeTransform:
		return "transform"
	case ChangeMode:
		return "mode"
	case ChangeDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// ChangeEvent is a host notification about one object.
// Transform is set for ChangeTransform and Mode for ChangeMode.
type ChangeEvent struct {
	Object    ObjectKey
	Kind      ChangeKind
	Transform mgl64.Mat4
	Mode      ObjectMode
}
