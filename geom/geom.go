// Package geom defines the geometry model consumed by the KML writer:
// coordinates with an optional Z ordinate, and a small tagged union of
// geometry variants (point, line string, linear ring, polygon, collection).
package geom

import "math"

// Kind identifies a geometry variant.
type Kind uint8

const (
	KindPoint Kind = iota + 1
	KindLineString
	KindLinearRing
	KindPolygon
	KindCollection
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "Point"
	case KindLineString:
		return "LineString"
	case KindLinearRing:
		return "LinearRing"
	case KindPolygon:
		return "Polygon"
	case KindCollection:
		return "Collection"
	}
	return "Unknown"
}

// Geometry is the union of all geometry variants. Implementations report
// their variant through an explicit kind tag, so consumers dispatch with a
// switch instead of ordered type assertions.
type Geometry interface {
	Kind() Kind
}

// Coordinate is a single position. Z is optional: a missing Z ordinate is
// represented by NaN.
type Coordinate struct {
	X float64
	Y float64
	Z float64
}

// NewCoordinate returns a 2D coordinate with no Z ordinate.
func NewCoordinate(x, y float64) Coordinate {
	return Coordinate{X: x, Y: y, Z: math.NaN()}
}

// NewCoordinateZ returns a 3D coordinate.
func NewCoordinateZ(x, y, z float64) Coordinate {
	return Coordinate{X: x, Y: y, Z: z}
}

// HasZ reports whether the coordinate carries a Z ordinate.
func (c Coordinate) HasZ() bool {
	return !math.IsNaN(c.Z)
}

// Point is a single position.
type Point struct {
	Coordinate Coordinate
}

func (Point) Kind() Kind { return KindPoint }

// LineString is an ordered sequence of positions.
type LineString struct {
	Coordinates []Coordinate
}

func (LineString) Kind() Kind { return KindLineString }

// LinearRing is a closed line used as a polygon boundary.
type LinearRing struct {
	Coordinates []Coordinate
}

func (LinearRing) Kind() Kind { return KindLinearRing }

// Polygon is an exterior ring plus zero or more interior (hole) rings.
type Polygon struct {
	Exterior LinearRing
	Interior []LinearRing
}

func (Polygon) Kind() Kind { return KindPolygon }

// Collection is an ordered sequence of child geometries. Heterogeneous and
// homogeneous multi-geometries are both represented this way.
type Collection struct {
	Geometries []Geometry
}

func (Collection) Kind() Kind { return KindCollection }
