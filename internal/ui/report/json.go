package report

import (
	"encoding/json"
	"io"

	"go.trai.ch/mesha/internal/core/domain"
)

// Report is the JSON form of an analysis round.
type Report struct {
	Round      int      `json:"round"`
	DurationMS float64  `json:"duration_ms"`
	Objects    []Object `json:"objects"`
	Stats      Stats    `json:"stats"`
}

// Object is the JSON form of one analyzed object.
type Object struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Features []Feature `json:"features"`
}

// Feature is the JSON form of one feature result.
type Feature struct {
	Name       domain.FeatureID `json:"name"`
	Kind       string           `json:"kind"`
	Primitive  string           `json:"primitive"`
	Count      int              `json:"count"`
	Primitives int              `json:"primitives"`
	Indices    []int            `json:"indices"`
	Color      domain.Color     `json:"color"`
}

// Stats is the JSON form of the cache counters.
type Stats struct {
	Hits      uint64  `json:"hits"`
	Misses    uint64  `json:"misses"`
	Stale     uint64  `json:"stale"`
	Revived   uint64  `json:"revived"`
	Evictions uint64  `json:"evictions"`
	Objects   int     `json:"objects"`
	HitRatio  float64 `json:"hit_ratio"`
}

// FromDomain converts a report to its JSON form.
func FromDomain(rep *domain.Report) Report {
	out := Report{
		Round:      rep.Round,
		DurationMS: float64(rep.Duration.Microseconds()) / 1000,
		Objects:    make([]Object, 0, len(rep.Objects)),
		Stats: Stats{
			Hits:      rep.Stats.Hits,
			Misses:    rep.Stats.Misses,
			Stale:     rep.Stats.Stale,
			Revived:   rep.Stats.Revived,
			Evictions: rep.Stats.Evictions,
			Objects:   rep.Stats.Objects,
			HitRatio:  rep.Stats.HitRatio(),
		},
	}
	for _, obj := range rep.Objects {
		o := Object{
			ID:       obj.Key.String(),
			Name:     obj.Name,
			Features: make([]Feature, 0, len(obj.Results)),
		}
		for _, r := range obj.Results {
			indices := r.Indices
			if indices == nil {
				indices = []int{}
			}
			o.Features = append(o.Features, Feature{
				Name:       r.Feature,
				Kind:       r.Kind.String(),
				Primitive:  r.Primitive.String(),
				Count:      r.Len(),
				Primitives: r.Primitives(),
				Indices:    indices,
				Color:      r.Color,
			})
		}
		out.Objects = append(out.Objects, o)
	}
	return out
}

// WriteJSON writes rep as indented JSON followed by a newline.
func WriteJSON(w io.Writer, rep *domain.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(FromDomain(rep))
}
