package domain

import "time"

// ObjectInfo describes an object known to the host.
type ObjectInfo struct {
	Key  ObjectKey
	Name string
	// Mesh is false for objects that carry no polygon data.
	Mesh bool
	Mode ObjectMode
}

// CacheStats is a point-in-time copy of the analysis cache counters.
type CacheStats struct {
	Hits      uint64
	Misses    uint64
	Stale     uint64
	Revived   uint64
	Evictions uint64
	Objects   int
}

// HitRatio returns hits over lookups, or zero before the first lookup.
func (s CacheStats) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// ObjectReport holds the results of one object in an analysis round.
type ObjectReport struct {
	Key     ObjectKey
	Name    string
	Results []FeatureResult
}

// Report is the outcome of one analysis round over a scene.
type Report struct {
	Round    int
	Objects  []ObjectReport
	Stats    CacheStats
	Duration time.Duration
}
