package geom

import (
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb/geojson"
)

// FromGeoJSON parses GeoJSON data and returns the contained geometries in
// document order. The data may be a FeatureCollection, a single Feature, or
// a bare Geometry object.
func FromGeoJSON(data []byte) ([]Geometry, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("parse GeoJSON: %w", err)
	}

	switch probe.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, fmt.Errorf("parse GeoJSON feature collection: %w", err)
		}
		out := make([]Geometry, 0, len(fc.Features))
		for _, f := range fc.Features {
			if g := FromOrb(f.Geometry); g != nil {
				out = append(out, g)
			}
		}
		return out, nil

	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, fmt.Errorf("parse GeoJSON feature: %w", err)
		}
		if g := FromOrb(f.Geometry); g != nil {
			return []Geometry{g}, nil
		}
		return nil, nil

	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, fmt.Errorf("parse GeoJSON geometry: %w", err)
		}
		if converted := FromOrb(g.Geometry()); converted != nil {
			return []Geometry{converted}, nil
		}
		return nil, nil
	}
}
