package geom

import "github.com/paulmach/orb"

// FromOrb converts an orb geometry into the writer's geometry model. The orb
// types are strictly 2D, so every converted coordinate has no Z ordinate.
// Multi geometries and orb.Collection become a Collection; an orb.Bound
// becomes its polygon. Unknown orb types convert to nil.
func FromOrb(g orb.Geometry) Geometry {
	switch g := g.(type) {
	case orb.Point:
		return Point{Coordinate: NewCoordinate(g[0], g[1])}
	case orb.LineString:
		return LineString{Coordinates: coordsFromOrb(g)}
	case orb.Ring:
		return ringFromOrb(g)
	case orb.Polygon:
		return polygonFromOrb(g)
	case orb.MultiPoint:
		c := Collection{Geometries: make([]Geometry, 0, len(g))}
		for _, p := range g {
			c.Geometries = append(c.Geometries, Point{Coordinate: NewCoordinate(p[0], p[1])})
		}
		return c
	case orb.MultiLineString:
		c := Collection{Geometries: make([]Geometry, 0, len(g))}
		for _, ls := range g {
			c.Geometries = append(c.Geometries, LineString{Coordinates: coordsFromOrb(ls)})
		}
		return c
	case orb.MultiPolygon:
		c := Collection{Geometries: make([]Geometry, 0, len(g))}
		for _, p := range g {
			c.Geometries = append(c.Geometries, polygonFromOrb(p))
		}
		return c
	case orb.Collection:
		c := Collection{Geometries: make([]Geometry, 0, len(g))}
		for _, child := range g {
			if converted := FromOrb(child); converted != nil {
				c.Geometries = append(c.Geometries, converted)
			}
		}
		return c
	case orb.Bound:
		return polygonFromOrb(g.ToPolygon())
	}
	return nil
}

func polygonFromOrb(p orb.Polygon) Polygon {
	out := Polygon{}
	if len(p) == 0 {
		return out
	}
	out.Exterior = ringFromOrb(p[0])
	for _, r := range p[1:] {
		out.Interior = append(out.Interior, ringFromOrb(r))
	}
	return out
}

func ringFromOrb(r orb.Ring) LinearRing {
	return LinearRing{Coordinates: coordsFromOrb(orb.LineString(r))}
}

func coordsFromOrb(ls orb.LineString) []Coordinate {
	coords := make([]Coordinate, 0, len(ls))
	for _, p := range ls {
		coords = append(coords, NewCoordinate(p[0], p[1]))
	}
	return coords
}
