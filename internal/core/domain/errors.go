package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidObject is returned when the queried object is absent or is not a polygon mesh.
	ErrInvalidObject = zerr.New("invalid object")

	// ErrStaleReference is returned when an object existed at query time but was deleted before
	// its snapshot could be taken.
	ErrStaleReference = zerr.New("stale object reference")

	// ErrUnknownFeature is returned when a feature is not present in the classifier registry.
	ErrUnknownFeature = zerr.New("unknown feature")

	// ErrInvalidCapacity is returned when the analysis cache is configured with fewer than one object.
	ErrInvalidCapacity = zerr.New("cache capacity must be at least 1")

	// ErrInvalidThreshold is returned when the planarity threshold is outside [0, 90] degrees.
	ErrInvalidThreshold = zerr.New("planarity threshold must be between 0 and 90 degrees")

	// ErrInvalidEpsilon is returned when a numeric tolerance is negative or not a number.
	ErrInvalidEpsilon = zerr.New("epsilon must be a non-negative number")

	// ErrInvalidQuadSplit is returned when the quad split rule is not recognized.
	ErrInvalidQuadSplit = zerr.New("invalid quad split, expected 'fixed' or 'shortest'")

	// ErrInvalidDisplay is returned when a display setting is outside its allowed range.
	ErrInvalidDisplay = zerr.New("display setting out of range")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrUnsupportedVersion is returned when a config or scene file declares an unknown version.
	ErrUnsupportedVersion = zerr.New("unsupported file version")

	// ErrSceneReadFailed is returned when the scene file cannot be read.
	ErrSceneReadFailed = zerr.New("failed to read scene file")

	// ErrSceneParseFailed is returned when the scene file cannot be parsed.
	ErrSceneParseFailed = zerr.New("failed to parse scene file")

	// ErrInvalidScene is returned when a scene object definition is inconsistent.
	ErrInvalidScene = zerr.New("invalid scene object")

	// ErrDuplicateObject is returned when two scene objects share a name or id.
	ErrDuplicateObject = zerr.New("duplicate scene object")

	// ErrPrimitiveFailed is returned when a primitive mesh cannot be generated.
	ErrPrimitiveFailed = zerr.New("failed to generate primitive mesh")

	// ErrObjectNotFound is returned when a named object is not present in the scene.
	ErrObjectNotFound = zerr.New("object not found")

	// ErrInvalidOutputMode is returned when the watch output mode is not recognized.
	ErrInvalidOutputMode = zerr.New("invalid output mode, expected 'auto', 'tui' or 'linear'")

	// ErrInvalidFormat is returned when the report format is not recognized.
	ErrInvalidFormat = zerr.New("invalid report format, expected 'text' or 'json'")

	// ErrNoObjects is returned when a scene contains no mesh objects to analyze.
	ErrNoObjects = zerr.New("no mesh objects to analyze")
)
