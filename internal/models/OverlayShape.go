package models

import (
	"slices"

	"github.com/paulmach/orb"
)

// OverlayShape is a line-string geometry kept for map display.
// FeatureIndex is the position of the source feature in the document.
type OverlayShape struct {
	FeatureIndex int                `json:"feature_index" example:"0"`
	Path         orb.LineString     `json:"path" swaggertype:"array,number"`
	Properties   *FeatureProperties `json:"properties,omitempty"`
	Tags         []string           `json:"tags,omitempty" example:"lit,path:pedestrian"`
	LengthMeters float64            `json:"length_m" example:"1234.5"`
	Bounds       Bounds             `json:"bounds"`
}

// FeatureProperties are the route metadata a feature may carry. Keys missing from the
// document decode as zero.
type FeatureProperties struct {
	LengthMile float64 `json:"length_mile" example:"1.2"`
	LengthM    float64 `json:"length_m" example:"1931"`
	Count      int     `json:"count" example:"3"`
}

type Bounds struct {
	MinLon float64 `json:"min_lon"`
	MinLat float64 `json:"min_lat"`
	MaxLon float64 `json:"max_lon"`
	MaxLat float64 `json:"max_lat"`
}

func BoundsOf(b orb.Bound) Bounds {
	return Bounds{
		MinLon: b.Min.Lon(),
		MinLat: b.Min.Lat(),
		MaxLon: b.Max.Lon(),
		MaxLat: b.Max.Lat(),
	}
}

func (s OverlayShape) HasTag(tag string) bool {
	_, found := slices.BinarySearch(s.Tags, tag)
	return found
}

// FilterByTag returns the shapes carrying tag, in their original order.
func FilterByTag(shapes []OverlayShape, tag string) []OverlayShape {
	out := make([]OverlayShape, 0, len(shapes))
	for _, s := range shapes {
		if s.HasTag(tag) {
			out = append(out, s)
		}
	}
	return out
}

// ExtractTags derives walkability tags from OSM-style feature properties.
// The result is sorted and nil when nothing matches.
func ExtractTags(props map[string]any) []string {
	str := func(key string) string {
		v, _ := props[key].(string)
		return v
	}

	var tags []string

	switch str("highway") {
	case "footway", "path", "pedestrian":
		tags = append(tags, "path:pedestrian")
	case "residential":
		tags = append(tags, "path:residential")
	case "steps":
		tags = append(tags, "path:steps")
	}

	if str("lit") == "yes" {
		tags = append(tags, "lit")
	}

	switch str("surface") {
	case "asphalt", "concrete":
		tags = append(tags, "surface:paved")
	case "gravel", "dirt", "ground", "sand", "grass":
		tags = append(tags, "surface:unpaved")
	}

	slices.Sort(tags)
	return tags
}
