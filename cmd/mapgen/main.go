package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/OCharnyshevich/mapgen/internal/config"
	"github.com/OCharnyshevich/mapgen/internal/mapgen"
	"github.com/OCharnyshevich/mapgen/internal/render"
	"github.com/OCharnyshevich/mapgen/internal/ruleset"
	"github.com/OCharnyshevich/mapgen/internal/storage"
)

func main() {
	cfg := config.DefaultConfig()

	var (
		configPath = flag.String("config", "", "JSON config file; explicit flags take precedence")
		outDir     = flag.String("out", "", "output directory for config.json, report.json, map.lz4 and map.png")
		ascii      = flag.Bool("ascii", false, "print the map to the terminal")
		pngMode    = flag.String("png-mode", "terrain", "png coloring: terrain or continents")
		pngScale   = flag.Int("png-scale", 8, "png pixels per tile")
		debug      = flag.Bool("debug", false, "enable debug logging")
	)

	flag.IntVar(&cfg.Width, "width", cfg.Width, "map width in tiles")
	flag.IntVar(&cfg.Height, "height", cfg.Height, "map height in tiles")
	flag.BoolVar(&cfg.Autosize, "autosize", cfg.Autosize, "derive width and height from -size or the player count")
	flag.IntVar(&cfg.Size, "size", cfg.Size, "map size in thousands of tiles for -autosize (0 = from players)")
	flag.IntVar(&cfg.TilesPerPlayer, "tiles-per-player", cfg.TilesPerPlayer, "land tiles per player for -autosize -size 0")
	flag.BoolVar(&cfg.WrapX, "wrap-x", cfg.WrapX, "wrap east-west")
	flag.BoolVar(&cfg.WrapY, "wrap-y", cfg.WrapY, "wrap north-south")
	flag.IntVar(&cfg.LandPercent, "landpercent", cfg.LandPercent, "percentage of land tiles")
	flag.IntVar(&cfg.Wetness, "wetness", cfg.Wetness, "wetness 0-100")
	flag.IntVar(&cfg.Temperature, "temperature", cfg.Temperature, "temperature 0-100")
	flag.IntVar(&cfg.Steepness, "steepness", cfg.Steepness, "steepness 0-100")
	flag.IntVar(&cfg.Rivers, "rivers", cfg.Rivers, "river amount 0-100")
	flag.IntVar(&cfg.Riches, "riches", cfg.Riches, "resources per thousand tiles")
	flag.IntVar(&cfg.Huts, "huts", cfg.Huts, "huts per thousand tiles")
	flag.BoolVar(&cfg.SeparatePoles, "separate-poles", cfg.SeparatePoles, "keep polar land apart from continents")
	flag.BoolVar(&cfg.AllTemperate, "all-temperate", cfg.AllTemperate, "same climate everywhere, no poles")
	flag.BoolVar(&cfg.TinyIsles, "tiny-isles", cfg.TinyIsles, "keep one-tile islands")
	flag.BoolVar(&cfg.Lakes, "lakes", cfg.Lakes, "turn small enclosed water into lakes")
	flag.StringVar(&cfg.Generator, "generator", cfg.Generator,
		"generator: 1-5 or "+strings.Join(mapgen.GeneratorNames(), ", "))
	flag.IntVar(&cfg.Players, "players", cfg.Players, "number of start positions")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 = random)")
	flag.StringVar(&cfg.Ruleset, "ruleset", cfg.Ruleset, "ruleset file or getter URL (default built-in classic)")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if *configPath != "" {
		explicit := make(map[string]bool)
		flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
		fromFile := config.DefaultConfig()
		if err := storage.ReadConfig(*configPath, fromFile); err != nil {
			log.Error("load config", "path", *configPath, "error", err)
			os.Exit(1)
		}
		config.Merge(cfg, fromFile, explicit)
		log.Info("loaded config from file", "path", *configPath)
	}

	mode, err := render.ParseMode(*pngMode)
	if err != nil {
		log.Error("parse flags", "error", err)
		os.Exit(1)
	}

	settings, err := cfg.Settings()
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	rs, err := ruleset.Open(cfg.Ruleset)
	if err != nil {
		log.Error("load ruleset", "error", err)
		os.Exit(1)
	}

	m, err := mapgen.Generate(settings, rs, log)
	if err != nil {
		log.Error("generate map", "error", err)
		os.Exit(1)
	}

	if *ascii {
		fmt.Print(render.ASCII(m, true))
	}

	if *outDir == "" {
		return
	}
	st, err := storage.New(*outDir, log)
	if err != nil {
		log.Error("open output directory", "error", err)
		os.Exit(1)
	}
	// Record the seed actually used so the config reproduces this map.
	cfg.Seed = m.Seed
	steps := []struct {
		what string
		run  func() error
	}{
		{"save config", func() error { return st.SaveConfig(cfg) }},
		{"save report", func() error { return st.SaveReport(m, rs) }},
		{"save snapshot", func() error { return st.SaveSnapshot(m) }},
		{"save png", func() error { return render.SavePNG(st.Path("map.png"), m, mode, *pngScale) }},
	}
	for _, s := range steps {
		if err := s.run(); err != nil {
			log.Error(s.what, "error", err)
			os.Exit(1)
		}
	}
	log.Info("wrote output", "dir", st.Dir())
}
