package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/OCharnyshevich/mapgen/internal/ruleset"
)

func main() {
	var (
		src  = flag.String("src", "", "ruleset source: http(s) URL, git::, s3::, gcs:: or local path")
		out  = flag.String("o", "./rulesets", "output dir path")
		name = flag.String("name", "ruleset.json", "output file name")
	)
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *src == "" {
		log.Error("source url required")
		os.Exit(1)
	}
	if *out == "" || *name == "" {
		log.Error("output path required")
		os.Exit(1)
	}

	path := filepath.Join(*out, *name)
	if err := os.RemoveAll(path); err != nil {
		log.Error("remove previous download", "path", path, "error", err)
		os.Exit(1)
	}

	log.Info("start downloading ruleset", "src", *src, "path", path)
	rs, err := ruleset.Fetch(*src, path)
	if err != nil {
		log.Error("fetch ruleset", "error", err)
		os.Exit(1)
	}
	log.Info("done downloading ruleset", "name", rs.Name(), "path", path)
}
