package ruleset

import (
	"fmt"
	"os"
	"path/filepath"

	getter "github.com/hashicorp/go-getter"
)

// Fetch downloads a ruleset file from any go-getter source (http URL,
// git::, s3::, gcs::, local path) to dst and loads it. dst is left in
// place so callers can keep the downloaded copy.
func Fetch(src, dst string) (*Ruleset, error) {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return nil, fmt.Errorf("create directory: %w", err)
	}
	if err := getter.GetFile(dst, src); err != nil {
		return nil, fmt.Errorf("fetch ruleset %s: %w", src, err)
	}
	return LoadFile(dst)
}

// Open resolves a ruleset reference: "" is the classic ruleset, an
// existing file is read directly, anything else is fetched into a
// temporary directory.
func Open(src string) (*Ruleset, error) {
	if src == "" {
		return Classic(), nil
	}
	if st, err := os.Stat(src); err == nil && !st.IsDir() {
		return LoadFile(src)
	}

	dir, err := os.MkdirTemp("", "ruleset-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)
	return Fetch(src, filepath.Join(dir, "ruleset.json"))
}
