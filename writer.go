// Package kml writes geometries as indented KML fragments. The output can be
// substituted wherever the KML Geometry abstract element is accepted; no
// surrounding document or Placemark elements are produced.
//
// A line prefix, a maximum number of coordinates per line, a decimal
// precision cap, a forced Z ordinate, and the extrude and altitudeMode
// sub-elements can all be configured through Options.
package kml

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/geowrite/kml/geom"
)

const (
	indentSize          = 2
	coordinateSeparator = ","
	tupleSeparator      = " "
)

// ErrUnsupportedKind is returned by strict writers for geometries outside the
// supported variants.
var ErrUnsupportedKind = errors.New("kml: unsupported geometry kind")

// Writer renders geometries as KML fragments. Its configuration is fixed at
// construction, so a single instance can serve any number of writes and is
// safe for concurrent use.
type Writer struct {
	linePrefix       string
	altitudeMode     string
	maxCoordsPerLine int
	precision        int     // negative when no cap is set
	z                float64 // NaN when no override is set
	extrude          bool
	strict           bool
}

// NewWriter returns a writer configured with the given options.
func NewWriter(opts ...Option) *Writer {
	w := &Writer{
		maxCoordsPerLine: 5,
		precision:        -1,
		z:                math.NaN(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Marshal writes a geometry as a KML fragment using a writer configured with
// the given options.
func Marshal(g geom.Geometry, opts ...Option) (string, error) {
	return NewWriter(opts...).Write(g)
}

// MarshalZ writes a geometry as a KML fragment with every coordinate's Z
// ordinate forced to z.
func MarshalZ(g geom.Geometry, z float64) (string, error) {
	return NewWriter(WithZ(z)).Write(g)
}

// Write renders a geometry and returns the assembled fragment.
func (w *Writer) Write(g geom.Geometry) (string, error) {
	var buf strings.Builder
	if err := w.writeGeometry(g, 0, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteTo renders a geometry and flushes the assembled fragment to out in a
// single write. A failed flush aborts the call and the buffered text is
// discarded.
func (w *Writer) WriteTo(out io.Writer, g geom.Geometry) error {
	s, err := w.Write(g)
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, s)
	return err
}

// writeGeometry dispatches on the geometry variant and drives the top-level
// recursion. Unsupported variants are skipped without output unless the
// writer is strict.
func (w *Writer) writeGeometry(g geom.Geometry, level int, buf *strings.Builder) error {
	// The attribute slot on opening tags is a reserved extension point;
	// every current call site leaves it empty.
	const attributes = ""

	switch g := g.(type) {
	case geom.Point:
		w.writePoint(g, attributes, level, buf)
	case geom.LinearRing:
		w.writeLinearRing(g, attributes, level, buf)
	case geom.LineString:
		w.writeLineString(g, attributes, level, buf)
	case geom.Polygon:
		w.writePolygon(g, attributes, level, buf)
	case geom.Collection:
		return w.writeCollection(g, level, buf)
	case nil:
		if w.strict {
			return fmt.Errorf("%w: nil geometry", ErrUnsupportedKind)
		}
	default:
		if w.strict {
			return fmt.Errorf("%w: %s", ErrUnsupportedKind, g.Kind())
		}
	}
	return nil
}

// startLine begins a physical output line: optional line prefix, two spaces
// of indentation per nesting level, then text.
func (w *Writer) startLine(buf *strings.Builder, level int, text string) {
	buf.WriteString(w.linePrefix)
	buf.WriteString(strings.Repeat(" ", indentSize*level))
	buf.WriteString(text)
}

// geometryTag composes an opening tag. The extrude and altitudeMode
// sub-elements, when configured, follow every opening tag this composer
// produces, nested rings and collection children included.
func (w *Writer) geometryTag(name, attributes string) string {
	var buf strings.Builder
	buf.WriteByte('<')
	buf.WriteString(name)
	if attributes != "" {
		buf.WriteByte(' ')
		buf.WriteString(attributes)
	}
	buf.WriteByte('>')

	if w.extrude {
		buf.WriteString("\n    <extrude>1</extrude>")
	}
	if w.altitudeMode != "" {
		buf.WriteString("\n    <altitudeMode>" + w.altitudeMode + "</altitudeMode>")
	}
	return buf.String()
}

func (w *Writer) writePoint(p geom.Point, attributes string, level int, buf *strings.Builder) {
	w.startLine(buf, level, w.geometryTag("Point", attributes)+"\n")
	w.writeCoordinates([]geom.Coordinate{p.Coordinate}, level+1, buf)
	w.startLine(buf, level, "</Point>\n")
}

func (w *Writer) writeLineString(ls geom.LineString, attributes string, level int, buf *strings.Builder) {
	w.startLine(buf, level, w.geometryTag("LineString", attributes)+"\n")
	w.writeCoordinates(ls.Coordinates, level+1, buf)
	w.startLine(buf, level, "</LineString>\n")
}

func (w *Writer) writeLinearRing(lr geom.LinearRing, attributes string, level int, buf *strings.Builder) {
	w.startLine(buf, level, w.geometryTag("LinearRing", attributes)+"\n")
	w.writeCoordinates(lr.Coordinates, level+1, buf)
	w.startLine(buf, level, "</LinearRing>\n")
}

func (w *Writer) writePolygon(p geom.Polygon, attributes string, level int, buf *strings.Builder) {
	w.startLine(buf, level, w.geometryTag("Polygon", attributes)+"\n")

	w.startLine(buf, level, "  <outerBoundaryIs>\n")
	w.writeLinearRing(p.Exterior, "", level+1, buf)
	w.startLine(buf, level, "  </outerBoundaryIs>\n")

	for _, ring := range p.Interior {
		w.startLine(buf, level, "  <innerBoundaryIs>\n")
		w.writeLinearRing(ring, "", level+1, buf)
		w.startLine(buf, level, "  </innerBoundaryIs>\n")
	}

	w.startLine(buf, level, "</Polygon>\n")
}

func (w *Writer) writeCollection(c geom.Collection, level int, buf *strings.Builder) error {
	w.startLine(buf, level, "<MultiGeometry>\n")
	for _, child := range c.Geometries {
		if err := w.writeGeometry(child, level+1, buf); err != nil {
			return err
		}
	}
	w.startLine(buf, level, "</MultiGeometry>\n")
	return nil
}

// writeCoordinates emits a <coordinates> block for a vertex sequence.
// Tuples are separated by single spaces; after every maxCoordsPerLine-th
// tuple the sequence continues on a new physical line, indented two spaces
// past the block, unless that tuple is the last one.
func (w *Writer) writeCoordinates(coords []geom.Coordinate, level int, buf *strings.Builder) {
	w.startLine(buf, level, "<coordinates>")

	maxPerLine := w.maxCoordsPerLine
	if maxPerLine < 1 {
		maxPerLine = 1
	}

	for i, c := range coords {
		switch {
		case i == 0:
		case i%maxPerLine == 0:
			buf.WriteByte('\n')
			w.startLine(buf, level, "  ")
		default:
			buf.WriteString(tupleSeparator)
		}
		w.writeCoordinate(c, buf)
	}

	buf.WriteString("</coordinates>\n")
}

// writeCoordinate emits one "x,y" or "x,y,z" tuple. A configured Z override
// wins over the coordinate's own Z; if the resolved Z is absent the tuple
// stays two-dimensional.
func (w *Writer) writeCoordinate(c geom.Coordinate, buf *strings.Builder) {
	buf.WriteString(w.formatOrdinate(c.X))
	buf.WriteString(coordinateSeparator)
	buf.WriteString(w.formatOrdinate(c.Y))

	z := c.Z
	if !math.IsNaN(w.z) {
		z = w.z
	}
	if !math.IsNaN(z) {
		buf.WriteString(coordinateSeparator)
		buf.WriteString(w.formatOrdinate(z))
	}
}
