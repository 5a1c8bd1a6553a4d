// Command rivergen builds one synthetic river from a YAML
// configuration file and exports it.
package main

import (
	"flag"

	"github.com/charmbracelet/log"

	"github.com/vesselsim/rivergen/internal/config"
	"github.com/vesselsim/rivergen/internal/export"
	"github.com/vesselsim/rivergen/internal/geo"
	"github.com/vesselsim/rivergen/internal/river"
)

func main() {
	configPath := flag.String("config", "configs/example.yaml", "path to the generation config file")
	seed := flag.Int64("seed", config.SeedUnset, "override the config seed (negative draws a fresh one)")
	exporter := flag.String("exporter", "", "override the configured exporter")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
	log.SetPrefix("[rivergen] ")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("failed to load configuration", "path", *configPath, "error", err)
	}
	if *seed >= 0 {
		cfg.Seed = *seed
	}
	if *exporter != "" {
		cfg.Exporter = *exporter
	}

	r, err := river.Build(cfg)
	if err != nil {
		log.Fatal("failed to build river", "error", err)
	}

	if err := geo.ShiftToZone(r, cfg.StartAtUTM); err != nil {
		log.Fatal("failed to shift river", "zone", cfg.StartAtUTM, "error", err)
	}

	dir, err := export.Run(r, cfg.Exporter, cfg.SavePath)
	if err != nil {
		log.Fatal("failed to export river", "error", err)
	}

	log.Info("done",
		"dir", dir,
		"seed", r.Seed,
		"segments", len(r.Segments),
		"stations", r.StationCount(),
		"points", r.PointCount(),
	)
}
