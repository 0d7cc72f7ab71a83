package server

import (
	"fmt"

	"github.com/geowrite/kml"
	"github.com/geowrite/kml/internal/config"

	"github.com/rs/zerolog/log"
)

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Config        *config.Config
	writers       map[string]*kml.Writer
	defaultWriter *kml.Writer
}

// NewServerContext initializes the context, building one writer per
// configured profile up front so handlers never construct writers per
// request.
func NewServerContext(cfg *config.Config) (*ServerContext, error) {
	log.Info().
		Int("profiles", len(cfg.Profiles)).
		Str("default", cfg.Default).
		Msg("Initializing server context")

	writers := make(map[string]*kml.Writer, len(cfg.Profiles))
	for name, profile := range cfg.Profiles {
		writers[name] = kml.NewWriter(profile.Options()...)
		log.Debug().Str("profile", name).Msg("Writer profile registered")
	}

	defaultProfile, err := cfg.Profile("")
	if err != nil {
		return nil, fmt.Errorf("resolve default profile: %w", err)
	}

	return &ServerContext{
		Config:        cfg,
		writers:       writers,
		defaultWriter: kml.NewWriter(defaultProfile.Options()...),
	}, nil
}

// writer selects the writer for a profile name. An empty name selects the
// default writer.
func (s *ServerContext) writer(name string) (*kml.Writer, bool) {
	if name == "" {
		return s.defaultWriter, true
	}
	w, ok := s.writers[name]
	return w, ok
}
