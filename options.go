package kml

// An Option configures a Writer at construction time.
type Option func(*Writer)

// WithLinePrefix sets a string prepended to every emitted text line.
func WithLinePrefix(prefix string) Option {
	return func(w *Writer) { w.linePrefix = prefix }
}

// WithMaxCoordinatesPerLine sets how many coordinate tuples are written per
// physical line inside a <coordinates> block. Values below 1 are coerced
// to 1.
func WithMaxCoordinatesPerLine(n int) Option {
	return func(w *Writer) {
		if n <= 0 {
			n = 1
		}
		w.maxCoordsPerLine = n
	}
}

// WithZ sets a Z ordinate emitted for every coordinate, overriding any Z
// value present in the geometry itself.
func WithZ(z float64) Option {
	return func(w *Writer) { w.z = z }
}

// WithExtrude toggles the <extrude>1</extrude> sub-element written after
// geometry opening tags.
func WithExtrude(extrude bool) Option {
	return func(w *Writer) { w.extrude = extrude }
}

// WithAltitudeMode sets the value of the <altitudeMode> sub-element written
// after geometry opening tags. An empty mode disables the sub-element.
func WithAltitudeMode(mode string) Option {
	return func(w *Writer) { w.altitudeMode = mode }
}

// WithPrecision caps the number of decimal places written for ordinate
// values. Useful for limiting output size. Negative values are ignored.
func WithPrecision(precision int) Option {
	return func(w *Writer) {
		if precision >= 0 {
			w.precision = precision
		}
	}
}

// WithStrictKinds makes writes fail with ErrUnsupportedKind when a geometry
// variant is not supported, instead of skipping it without output.
func WithStrictKinds() Option {
	return func(w *Writer) { w.strict = true }
}
