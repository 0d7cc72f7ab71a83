package kml

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/geowrite/kml/geom"
)

func testRing() geom.LinearRing {
	return geom.LinearRing{Coordinates: []geom.Coordinate{
		geom.NewCoordinate(0, 0),
		geom.NewCoordinate(1, 0),
		geom.NewCoordinate(1, 1),
	}}
}

func TestWriteLinearRing(t *testing.T) {
	out, err := NewWriter().Write(testRing())
	require.NoError(t, err)
	require.Equal(t, "<LinearRing>\n  <coordinates>0,0 1,0 1,1</coordinates>\n</LinearRing>\n", out)
}

func TestWriteLinearRingZOverride(t *testing.T) {
	out, err := NewWriter(WithZ(5)).Write(testRing())
	require.NoError(t, err)
	require.Equal(t, "<LinearRing>\n  <coordinates>0,0,5 1,0,5 1,1,5</coordinates>\n</LinearRing>\n", out)
}

func TestWritePoint(t *testing.T) {
	p := geom.Point{Coordinate: geom.NewCoordinate(1.5, 2.5)}

	out, err := NewWriter().Write(p)
	require.NoError(t, err)
	require.Equal(t, "<Point>\n  <coordinates>1.5,2.5</coordinates>\n</Point>\n", out)
}

func TestWritePointWithOwnZ(t *testing.T) {
	p := geom.Point{Coordinate: geom.NewCoordinateZ(1, 2, 3)}

	out, err := NewWriter().Write(p)
	require.NoError(t, err)
	require.Contains(t, out, "<coordinates>1,2,3</coordinates>")
}

func TestWriteLineString(t *testing.T) {
	ls := geom.LineString{Coordinates: []geom.Coordinate{
		geom.NewCoordinate(0, 0),
		geom.NewCoordinate(2, 2),
		geom.NewCoordinate(4, 0),
	}}

	out, err := NewWriter().Write(ls)
	require.NoError(t, err)
	require.Equal(t, "<LineString>\n  <coordinates>0,0 2,2 4,0</coordinates>\n</LineString>\n", out)
}

func TestWritePolygonWithHole(t *testing.T) {
	p := geom.Polygon{
		Exterior: geom.LinearRing{Coordinates: []geom.Coordinate{
			geom.NewCoordinate(0, 0),
			geom.NewCoordinate(10, 0),
			geom.NewCoordinate(10, 10),
			geom.NewCoordinate(0, 0),
		}},
		Interior: []geom.LinearRing{{Coordinates: []geom.Coordinate{
			geom.NewCoordinate(1, 1),
			geom.NewCoordinate(2, 1),
			geom.NewCoordinate(2, 2),
			geom.NewCoordinate(1, 1),
		}}},
	}

	out, err := NewWriter().Write(p)
	require.NoError(t, err)

	expected := "<Polygon>\n" +
		"  <outerBoundaryIs>\n" +
		"  <LinearRing>\n" +
		"    <coordinates>0,0 10,0 10,10 0,0</coordinates>\n" +
		"  </LinearRing>\n" +
		"  </outerBoundaryIs>\n" +
		"  <innerBoundaryIs>\n" +
		"  <LinearRing>\n" +
		"    <coordinates>1,1 2,1 2,2 1,1</coordinates>\n" +
		"  </LinearRing>\n" +
		"  </innerBoundaryIs>\n" +
		"</Polygon>\n"
	require.Equal(t, expected, out)
}

func TestWritePolygonHoleCountAndOrder(t *testing.T) {
	hole := func(x float64) geom.LinearRing {
		return geom.LinearRing{Coordinates: []geom.Coordinate{
			geom.NewCoordinate(x, 0),
			geom.NewCoordinate(x+1, 0),
			geom.NewCoordinate(x, 1),
			geom.NewCoordinate(x, 0),
		}}
	}
	p := geom.Polygon{
		Exterior: testRing(),
		Interior: []geom.LinearRing{hole(100), hole(200)},
	}

	out, err := NewWriter().Write(p)
	require.NoError(t, err)

	require.Equal(t, 2, strings.Count(out, "<innerBoundaryIs>"))
	require.Equal(t, 2, strings.Count(out, "</innerBoundaryIs>"))
	require.Equal(t, 1, strings.Count(out, "<outerBoundaryIs>"))
	require.Less(t, strings.Index(out, "100,0"), strings.Index(out, "200,0"))
}

func TestWriteCollection(t *testing.T) {
	c := geom.Collection{Geometries: []geom.Geometry{
		geom.Point{Coordinate: geom.NewCoordinate(1, 2)},
		geom.LineString{Coordinates: []geom.Coordinate{
			geom.NewCoordinate(0, 0),
			geom.NewCoordinate(1, 1),
		}},
	}}

	out, err := NewWriter().Write(c)
	require.NoError(t, err)

	expected := "<MultiGeometry>\n" +
		"  <Point>\n" +
		"    <coordinates>1,2</coordinates>\n" +
		"  </Point>\n" +
		"  <LineString>\n" +
		"    <coordinates>0,0 1,1</coordinates>\n" +
		"  </LineString>\n" +
		"</MultiGeometry>\n"
	require.Equal(t, expected, out)
}

func TestLineWrapping(t *testing.T) {
	tests := []struct {
		name       string
		vertices   int
		maxPerLine int
		wantLines  int
	}{
		{"single vertex", 1, 1, 1},
		{"exactly one line", 5, 5, 1},
		{"one over", 6, 5, 2},
		{"uneven split", 7, 3, 3},
		{"even split no trailing wrap", 10, 5, 2},
		{"non-positive coerced to one", 3, 0, 3},
		{"negative coerced to one", 3, -4, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coords := make([]geom.Coordinate, tt.vertices)
			for i := range coords {
				coords[i] = geom.NewCoordinate(float64(i), float64(i))
			}
			ls := geom.LineString{Coordinates: coords}

			out, err := NewWriter(WithMaxCoordinatesPerLine(tt.maxPerLine)).Write(ls)
			require.NoError(t, err)

			// Every line is newline terminated; two lines belong to the
			// LineString tags, the rest to the coordinates block.
			require.Equal(t, tt.wantLines, strings.Count(out, "\n")-2)
			require.Equal(t, tt.vertices, strings.Count(out, ","))
		})
	}
}

func TestLineWrapIndentation(t *testing.T) {
	ls := geom.LineString{Coordinates: []geom.Coordinate{
		geom.NewCoordinate(0, 0),
		geom.NewCoordinate(1, 1),
		geom.NewCoordinate(2, 2),
	}}

	out, err := NewWriter(WithMaxCoordinatesPerLine(2)).Write(ls)
	require.NoError(t, err)
	require.Equal(t, "<LineString>\n  <coordinates>0,0 1,1\n    2,2</coordinates>\n</LineString>\n", out)
}

func TestZPresence(t *testing.T) {
	ring := testRing()

	out, err := NewWriter().Write(ring)
	require.NoError(t, err)
	for _, tuple := range coordinateTuples(t, out) {
		require.Equal(t, 1, strings.Count(tuple, ","), "tuple %q should have two ordinates", tuple)
	}

	out, err = NewWriter(WithZ(7)).Write(ring)
	require.NoError(t, err)
	for _, tuple := range coordinateTuples(t, out) {
		require.Equal(t, 2, strings.Count(tuple, ","), "tuple %q should have three ordinates", tuple)
		require.True(t, strings.HasSuffix(tuple, ",7"))
	}
}

func TestZOverrideWinsOverOwnZ(t *testing.T) {
	p := geom.Point{Coordinate: geom.NewCoordinateZ(1, 2, 99)}

	out, err := NewWriter(WithZ(5)).Write(p)
	require.NoError(t, err)
	require.Contains(t, out, "<coordinates>1,2,5</coordinates>")
}

// coordinateTuples extracts the whitespace separated tuples of the first
// coordinates block in a fragment.
func coordinateTuples(t *testing.T, out string) []string {
	t.Helper()

	open := strings.Index(out, "<coordinates>")
	closing := strings.Index(out, "</coordinates>")
	require.GreaterOrEqual(t, open, 0)
	require.Greater(t, closing, open)

	return strings.Fields(out[open+len("<coordinates>") : closing])
}

func TestExtrudeAndAltitudeMode(t *testing.T) {
	p := geom.Point{Coordinate: geom.NewCoordinate(1, 2)}

	out, err := NewWriter(WithExtrude(true), WithAltitudeMode("absolute")).Write(p)
	require.NoError(t, err)

	expected := "<Point>\n" +
		"    <extrude>1</extrude>\n" +
		"    <altitudeMode>absolute</altitudeMode>\n" +
		"  <coordinates>1,2</coordinates>\n" +
		"</Point>\n"
	require.Equal(t, expected, out)
}

func TestExtrudeRepeatedOnNestedTags(t *testing.T) {
	p := geom.Polygon{
		Exterior: testRing(),
		Interior: []geom.LinearRing{testRing()},
	}

	out, err := NewWriter(WithExtrude(true)).Write(p)
	require.NoError(t, err)
	// Polygon tag plus both ring tags carry the sub-element.
	require.Equal(t, 3, strings.Count(out, "<extrude>1</extrude>"))
}

func TestCollectionTagCarriesNoExtrude(t *testing.T) {
	c := geom.Collection{Geometries: []geom.Geometry{
		geom.Point{Coordinate: geom.NewCoordinate(1, 2)},
	}}

	out, err := NewWriter(WithExtrude(true)).Write(c)
	require.NoError(t, err)

	require.NotContains(t, out, "<MultiGeometry>\n    <extrude>")
	require.Equal(t, 1, strings.Count(out, "<extrude>1</extrude>"))
	require.Contains(t, out, "  <Point>\n    <extrude>1</extrude>")
}

func TestPrecision(t *testing.T) {
	p := geom.Point{Coordinate: geom.NewCoordinate(1.0/3, 2.0/3)}

	out, err := NewWriter(WithPrecision(2)).Write(p)
	require.NoError(t, err)
	require.Contains(t, out, "<coordinates>0.33,0.67</coordinates>")

	out, err = NewWriter(WithPrecision(0)).Write(p)
	require.NoError(t, err)
	require.Contains(t, out, "<coordinates>0,1</coordinates>")
}

func TestLinePrefix(t *testing.T) {
	p := geom.Point{Coordinate: geom.NewCoordinate(1, 2)}

	out, err := NewWriter(WithLinePrefix("> ")).Write(p)
	require.NoError(t, err)

	for _, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
		require.True(t, strings.HasPrefix(line, "> "), "line %q missing prefix", line)
	}
}

type bogusGeometry struct{}

func (bogusGeometry) Kind() geom.Kind { return geom.Kind(99) }

func TestUnsupportedKindSkipped(t *testing.T) {
	out, err := NewWriter().Write(bogusGeometry{})
	require.NoError(t, err)
	require.Empty(t, out)

	out, err = NewWriter().Write(nil)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestUnsupportedKindStrict(t *testing.T) {
	_, err := NewWriter(WithStrictKinds()).Write(bogusGeometry{})
	require.ErrorIs(t, err, ErrUnsupportedKind)

	_, err = NewWriter(WithStrictKinds()).Write(nil)
	require.ErrorIs(t, err, ErrUnsupportedKind)
}

func TestUnsupportedKindInsideCollection(t *testing.T) {
	c := geom.Collection{Geometries: []geom.Geometry{
		geom.Point{Coordinate: geom.NewCoordinate(1, 2)},
		bogusGeometry{},
	}}

	out, err := NewWriter().Write(c)
	require.NoError(t, err)
	require.Contains(t, out, "<Point>")

	_, err = NewWriter(WithStrictKinds()).Write(c)
	require.ErrorIs(t, err, ErrUnsupportedKind)
}

type failingSink struct{ err error }

func (s failingSink) Write(p []byte) (int, error) { return 0, s.err }

func TestWriteTo(t *testing.T) {
	p := geom.Point{Coordinate: geom.NewCoordinate(1, 2)}
	w := NewWriter()

	var buf strings.Builder
	require.NoError(t, w.WriteTo(&buf, p))

	direct, err := w.Write(p)
	require.NoError(t, err)
	require.Equal(t, direct, buf.String())

	sinkErr := errors.New("sink closed")
	require.ErrorIs(t, w.WriteTo(failingSink{err: sinkErr}, p), sinkErr)
}

func TestMarshalZ(t *testing.T) {
	out, err := MarshalZ(geom.Point{Coordinate: geom.NewCoordinate(1, 2)}, 10)
	require.NoError(t, err)
	require.Contains(t, out, "<coordinates>1,2,10</coordinates>")
}

func TestWriterReuse(t *testing.T) {
	w := NewWriter(WithPrecision(1))
	first, err := w.Write(testRing())
	require.NoError(t, err)

	second, err := w.Write(testRing())
	require.NoError(t, err)
	require.Equal(t, first, second)
}
