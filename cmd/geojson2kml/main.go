package main

import (
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/geowrite/kml"
	"github.com/geowrite/kml/geom"
	"github.com/geowrite/kml/internal/config"
	"github.com/geowrite/kml/internal/logger"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/xml"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	Input      string `short:"i" long:"in"      description:"Input file path or http(s) URL (GeoJSON). Reads from stdin if empty"`
	Output     string `short:"o" long:"out"     description:"Output file path. Writes to stdout if empty"`
	ConfigFile string `short:"c" long:"config"  env:"CONFIG_FILE" description:"Path to writer profiles file"`
	Profile    string `short:"P" long:"profile" env:"KML_PROFILE" description:"Writer profile name from the profiles file"`

	Z            *float64 `short:"z" long:"z"             description:"Force this Z ordinate on every coordinate"`
	Precision    *int     `short:"p" long:"precision"     description:"Maximum decimal places for ordinate values"`
	MaxPerLine   *int     `short:"m" long:"max-coords"    description:"Maximum coordinate tuples per output line"`
	LinePrefix   string   `long:"line-prefix"             description:"String prepended to every output line"`
	AltitudeMode string   `short:"a" long:"altitude-mode" description:"Value for the <altitudeMode> sub-element"`
	Extrude      bool     `short:"e" long:"extrude"       description:"Write <extrude>1</extrude> after geometry tags"`
	Strict       bool     `short:"s" long:"strict"        description:"Fail on unsupported geometry kinds"`
	Minify       bool     `short:"M" long:"minify"        description:"Minify the XML output"`
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

	opts.Logger.Setup()

	inputData, err := readInput(opts.Input)
	if err != nil {
		log.Fatal().Err(err).Str("input", opts.Input).Msg("Failed to read input")
	}

	geometries, err := geom.FromGeoJSON(inputData)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse GeoJSON")
	}

	writer := kml.NewWriter(writerOptions(&opts)...)

	var buf strings.Builder
	for _, g := range geometries {
		if err := writer.WriteTo(&buf, g); err != nil {
			log.Fatal().Err(err).Msg("Failed to write geometry")
		}
	}
	output := buf.String()

	if opts.Minify {
		m := minify.New()
		m.AddFunc("text/xml", xml.Minify)

		output, err = m.String("text/xml", output)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to minify output")
		}
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, []byte(output), 0644); err != nil {
			log.Fatal().Err(err).Str("path", opts.Output).Msg("Failed to write output file")
		}
	} else {
		fmt.Print(output)
	}

	log.Info().
		Int("geometries", len(geometries)).
		Int("bytes", len(output)).
		Str("output", opts.Output).
		Msg("Conversion finished")
}

// writerOptions merges the profile selected from the configuration file with
// command line overrides. Flags win over the profile.
func writerOptions(opts *Options) []kml.Option {
	var writerOpts []kml.Option

	if opts.ConfigFile != "" {
		cfg, err := config.Load(opts.ConfigFile)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}
		profile, err := cfg.Profile(opts.Profile)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to resolve writer profile")
		}
		writerOpts = profile.Options()
	} else if opts.Profile != "" {
		log.Fatal().Msg("--profile requires --config")
	}

	if opts.LinePrefix != "" {
		writerOpts = append(writerOpts, kml.WithLinePrefix(opts.LinePrefix))
	}
	if opts.MaxPerLine != nil {
		writerOpts = append(writerOpts, kml.WithMaxCoordinatesPerLine(*opts.MaxPerLine))
	}
	if opts.Precision != nil {
		writerOpts = append(writerOpts, kml.WithPrecision(*opts.Precision))
	}
	if opts.Z != nil {
		writerOpts = append(writerOpts, kml.WithZ(*opts.Z))
	}
	if opts.Extrude {
		writerOpts = append(writerOpts, kml.WithExtrude(true))
	}
	if opts.AltitudeMode != "" {
		writerOpts = append(writerOpts, kml.WithAltitudeMode(opts.AltitudeMode))
	}
	if opts.Strict {
		writerOpts = append(writerOpts, kml.WithStrictKinds())
	}

	return writerOpts
}

// readInput loads GeoJSON from a file path, an http(s) URL, or stdin when the
// input is empty.
func readInput(input string) ([]byte, error) {
	switch {
	case input == "":
		return io.ReadAll(os.Stdin)

	case strings.HasPrefix(input, "http://"), strings.HasPrefix(input, "https://"):
		client := &http.Client{
			Transport: &http.Transport{
				TLSNextProto: make(map[string]func(string, *tls.Conn) http.RoundTripper),
			},
			Timeout: 15 * time.Second,
		}

		resp, err := client.Get(input)
		if err != nil {
			return nil, err
		}
		defer func() {
			if closeErr := resp.Body.Close(); closeErr != nil {
				log.Error().Err(closeErr).Msg("Failed to close response body")
			}
		}()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %s", resp.Status)
		}
		return io.ReadAll(resp.Body)

	default:
		return os.ReadFile(input)
	}
}
