package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/geowrite/kml/internal/config"
	"github.com/geowrite/kml/internal/logger"
	"github.com/geowrite/kml/internal/server"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config" env:"CONFIG_FILE"    description:"Path to writer profiles file" default:"profiles.yaml"`
	Addr       string `short:"a" long:"addr"   env:"LISTEN_ADDRESS" description:"Address to listen on"         default:"0.0.0.0"`
	Port       int    `short:"p" long:"port"   env:"LISTEN_PORT"    description:"Port to listen on"            default:"8080"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	// Setup Logging
	opts.Logger.Setup()

	// Load Config
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	srvCtx, err := server.NewServerContext(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize server context")
	}

	// Routes
	mux := http.NewServeMux()
	mux.HandleFunc("/convert", srvCtx.HandleConvert)
	mux.HandleFunc("/profiles", srvCtx.HandleProfiles)
	mux.HandleFunc("/healthz", srvCtx.HandleHealth)

	handler := server.RequestLogger(mux)

	listenAddr := fmt.Sprintf("%s:%d", opts.Addr, opts.Port)
	log.Info().
		Str("addr", listenAddr).
		Int("profiles", len(cfg.Profiles)).
		Msg("Conversion server started")

	if err := http.ListenAndServe(listenAddr, handler); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
