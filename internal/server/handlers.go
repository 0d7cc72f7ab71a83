// Package server handles HTTP conversion requests and middleware.
package server

import (
	"encoding/json"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/geowrite/kml/geom"
)

// Request bodies beyond this size are truncated, which fails GeoJSON parsing.
const maxBodyBytes = 8 << 20

// HandleConvert converts a GeoJSON request body (FeatureCollection, Feature,
// or bare Geometry) into KML fragments, one per contained geometry. The
// writer profile is selected with the "profile" query parameter.
func (s *ServerContext) HandleConvert(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writer, ok := s.writer(r.URL.Query().Get("profile"))
	if !ok {
		http.Error(w, "unknown writer profile", http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	geometries, err := geom.FromGeoJSON(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var buf strings.Builder
	for _, g := range geometries {
		if err := writer.WriteTo(&buf, g); err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
	}

	w.Header().Set("Content-Type", "application/vnd.google-earth.kml+xml")
	_, _ = io.WriteString(w, buf.String())
}

// HandleProfiles serves the names of the configured writer profiles.
func (s *ServerContext) HandleProfiles(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(s.writers))
	for name := range s.writers {
		names = append(names, name)
	}
	sort.Strings(names)

	w.Header().Set("Content-Type", "application/json")
	// Ignoring error as we cannot handle client disconnects
	_ = json.NewEncoder(w).Encode(struct {
		Default  string   `json:"default,omitempty"`
		Profiles []string `json:"profiles"`
	}{
		Default:  s.Config.Default,
		Profiles: names,
	})
}

// HandleHealth reports service liveness.
func (s *ServerContext) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok\n")
}
