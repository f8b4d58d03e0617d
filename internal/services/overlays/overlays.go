package overlays

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"

	"blueprint/internal/metrics"
	"blueprint/internal/models"
	"blueprint/internal/repositories"
	"blueprint/pkg/logger"
)

// ErrInvalidDocument means the bytes are not a GeoJSON document at all. Callers must not
// treat it as an empty overlay set.
var ErrInvalidDocument = errors.New("invalid geojson document")

// Loader turns GeoJSON documents into line-string overlays. It keeps no state between calls.
type Loader struct {
	m *metrics.Metrics
	l *logger.Logger
}

func NewLoader(m *metrics.Metrics, l *logger.Logger) *Loader {
	return &Loader{m: m, l: l}
}

// Load reads src and decodes it with LoadFeatures.
func (ld *Loader) Load(ctx context.Context, src repositories.GeoSource) ([]models.OverlayShape, error) {
	data, err := src.Read(ctx)
	if err != nil {
		ld.m.ObserveOverlayLoad(metrics.LoadSourceError)
		return nil, errors.Wrapf(err, "read %s", src.Name())
	}

	shapes, err := ld.LoadFeatures(data)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", src.Name())
	}

	ld.l.Info("loaded overlays", map[string]any{
		"source": src.Name(),
		"shapes": len(shapes),
	})

	return shapes, nil
}

// LoadFeatures decodes a FeatureCollection, a single Feature or a bare geometry and returns one
// overlay per line string, in document order. Points and polygons are dropped.
func (ld *Loader) LoadFeatures(data []byte) ([]models.OverlayShape, error) {
	features, err := ld.decodeDocument(data)
	if err != nil {
		ld.m.ObserveOverlayLoad(metrics.LoadInvalidDocument)
		ld.l.Error(err, map[string]any{"bytes": len(data)})
		return nil, err
	}

	shapes := make([]models.OverlayShape, 0, len(features))
	for i, f := range features {
		lines := ld.lineStrings(f.Geometry, i)
		if len(lines) == 0 {
			continue
		}

		props := ld.properties(f.Properties, i)
		tags := models.ExtractTags(f.Properties)

		for _, ls := range lines {
			shapes = append(shapes, models.OverlayShape{
				FeatureIndex: i,
				Path:         ls,
				Properties:   props,
				Tags:         tags,
				LengthMeters: geo.LengthHaversine(ls),
				Bounds:       models.BoundsOf(ls.Bound()),
			})
		}
	}

	ld.m.ObserveOverlayLoad(metrics.LoadOK)

	return shapes, nil
}

func (ld *Loader) decodeDocument(data []byte) ([]*geojson.Feature, error) {
	var head struct {
		Type     string            `json:"type"`
		Features []json.RawMessage `json:"features"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, errors.Wrap(ErrInvalidDocument, err.Error())
	}

	switch head.Type {
	case "FeatureCollection":
		features := make([]*geojson.Feature, 0, len(head.Features))
		for i, raw := range head.Features {
			f, err := ld.decodeFeature(raw, i)
			if err != nil {
				return nil, err
			}
			features = append(features, f)
		}
		return features, nil
	case "Feature":
		f, err := ld.decodeFeature(data, 0)
		if err != nil {
			return nil, err
		}
		return []*geojson.Feature{f}, nil
	case "Point", "MultiPoint", "LineString", "MultiLineString", "Polygon", "MultiPolygon", "GeometryCollection":
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, errors.Wrap(ErrInvalidDocument, err.Error())
		}
		return []*geojson.Feature{geojson.NewFeature(g.Geometry())}, nil
	}

	return nil, errors.Wrapf(ErrInvalidDocument, "unsupported type %q", head.Type)
}

// decodeFeature strips a properties member that is not an object before handing the feature
// to orb, so a bad properties value costs the properties and not the geometry.
func (ld *Loader) decodeFeature(raw json.RawMessage, featureIndex int) (*geojson.Feature, error) {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(raw, &members); err != nil {
		return nil, errors.Wrapf(ErrInvalidDocument, "feature %d: %s", featureIndex, err.Error())
	}
	if members == nil {
		return nil, errors.Wrapf(ErrInvalidDocument, "feature %d is null", featureIndex)
	}

	if props, ok := members["properties"]; ok && !isObjectOrNull(props) {
		ld.warnProperties(featureIndex, errors.Errorf("properties must be an object, got %s", bytes.TrimSpace(props)))
		delete(members, "properties")

		var err error
		if raw, err = json.Marshal(members); err != nil {
			return nil, errors.Wrap(ErrInvalidDocument, err.Error())
		}
	}

	f, err := geojson.UnmarshalFeature(raw)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidDocument, "feature %d: %s", featureIndex, err.Error())
	}
	return f, nil
}

func isObjectOrNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && (trimmed[0] == '{' || bytes.Equal(trimmed, []byte("null")))
}

// lineStrings classifies each sub-geometry on its own, so a collection may contribute
// several lines or none. Lines without points are skipped.
func (ld *Loader) lineStrings(g orb.Geometry, featureIndex int) []orb.LineString {
	switch g := g.(type) {
	case nil:
		return nil
	case orb.LineString:
		if len(g) == 0 {
			return nil
		}
		return []orb.LineString{g}
	case orb.MultiLineString:
		out := make([]orb.LineString, 0, len(g))
		for _, ls := range g {
			if len(ls) > 0 {
				out = append(out, ls)
			}
		}
		return out
	case orb.Collection:
		var out []orb.LineString
		for _, sub := range g {
			out = append(out, ld.lineStrings(sub, featureIndex)...)
		}
		return out
	}

	ld.m.DiscardedGeometry(g.GeoJSONType())
	ld.l.Debug("discarding non line-string geometry", map[string]any{
		"feature": featureIndex,
		"type":    g.GeoJSONType(),
	})
	return nil
}

type rawProperties struct {
	LengthMile *float64 `json:"length_mile"`
	LengthM    *float64 `json:"length_m"`
	Count      *int     `json:"count"`
}

// properties never fails the load: a wrong-typed value makes the properties absent and is
// reported as a warning.
func (ld *Loader) properties(p geojson.Properties, featureIndex int) *models.FeatureProperties {
	if len(p) == 0 {
		return nil
	}

	raw, err := json.Marshal(p)
	if err != nil {
		ld.warnProperties(featureIndex, err)
		return nil
	}

	var rp rawProperties
	if err := json.Unmarshal(raw, &rp); err != nil {
		ld.warnProperties(featureIndex, err)
		return nil
	}

	if rp.LengthMile == nil && rp.LengthM == nil && rp.Count == nil {
		return nil
	}

	props := &models.FeatureProperties{}
	if rp.LengthMile != nil {
		props.LengthMile = *rp.LengthMile
	}
	if rp.LengthM != nil {
		props.LengthM = *rp.LengthM
	}
	if rp.Count != nil {
		props.Count = *rp.Count
	}
	return props
}

func (ld *Loader) warnProperties(featureIndex int, err error) {
	ld.l.Warning("ignoring malformed feature properties", map[string]any{
		"feature": featureIndex,
		"err":     err.Error(),
	})
}
