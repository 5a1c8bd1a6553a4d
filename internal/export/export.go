// Package export writes built rivers to disk. Each run gets its own
// directory named by a random hex string under the configured save
// path; the exporter chosen in the configuration decides the file
// format inside it.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vesselsim/rivergen/internal/river"
)

// Exporter writes one river into an existing directory.
type Exporter interface {
	Name() string
	Export(r *river.River, dir string) error
}

var registry = map[string]func() Exporter{
	"whitespace": func() Exporter { return &Whitespace{} },
	"ucd":        func() Exporter { return &UCD{} },
}

// New returns the exporter registered under name.
func New(name string) (Exporter, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("no exporter named %q, registered: %v", name, Names())
	}
	return factory(), nil
}

// Names lists the registered exporter names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run exports a river with the named exporter into a fresh run
// directory under savePath and returns the directory. A segment
// report is written alongside the exporter's own files.
func Run(r *river.River, name, savePath string) (string, error) {
	exporter, err := New(name)
	if err != nil {
		return "", err
	}

	runDir := filepath.Join(savePath, runID())
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create run directory: %w", err)
	}

	if err := exporter.Export(r, runDir); err != nil {
		return "", fmt.Errorf("exporter %s failed: %w", exporter.Name(), err)
	}
	if err := writeReport(r, runDir); err != nil {
		return "", err
	}

	log.Info("river exported", "exporter", exporter.Name(), "dir", runDir, "points", r.PointCount())
	return runDir, nil
}

func runID() string {
	id := uuid.New()
	return fmt.Sprintf("%x", id[:])
}

// writeReport records the seed and the sampled segment parameters so a
// run can be reproduced from its output directory alone.
func writeReport(r *river.River, dir string) error {
	f, err := os.Create(filepath.Join(dir, "segments.txt"))
	if err != nil {
		return fmt.Errorf("failed to create segment report: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "seed: %d\n", r.Seed); err != nil {
		return fmt.Errorf("failed to write segment report: %w", err)
	}
	for i, d := range r.Descriptors() {
		if _, err := fmt.Fprintf(f, "segment %d: %s\n", i, d); err != nil {
			return fmt.Errorf("failed to write segment report: %w", err)
		}
	}
	return nil
}
