package export

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/vesselsim/rivergen/internal/field"
	"github.com/vesselsim/rivergen/internal/grid"
	"github.com/vesselsim/rivergen/internal/river"
)

// Whitespace writes the original two-file layout: coords.txt with one
// "x y" line per grid point and metrics.txt with the matching
// "0 cy cx depth 0 0 speed" line, where (cx, cy) are the current
// vector components.
type Whitespace struct{}

func (Whitespace) Name() string { return "whitespace" }

func (w Whitespace) Export(r *river.River, dir string) error {
	coords, err := os.Create(filepath.Join(dir, "coords.txt"))
	if err != nil {
		return fmt.Errorf("failed to create coords file: %w", err)
	}
	defer coords.Close()

	metrics, err := os.Create(filepath.Join(dir, "metrics.txt"))
	if err != nil {
		return fmt.Errorf("failed to create metrics file: %w", err)
	}
	defer metrics.Close()

	cw := bufio.NewWriter(coords)
	mw := bufio.NewWriter(metrics)

	var werr error
	r.Visit(func(p grid.Point, v field.Values) {
		if werr != nil {
			return
		}
		if _, err := fmt.Fprintf(cw, "%g %g\n", p.Pos.X, p.Pos.Y); err != nil {
			werr = err
			return
		}
		cx := v.CurrentVel * math.Cos(v.CurrentDir)
		cy := v.CurrentVel * math.Sin(v.CurrentDir)
		if _, err := fmt.Fprintf(mw, "0 %g %g %g 0 0 %g\n", cy, cx, v.Depth, v.CurrentVel); err != nil {
			werr = err
		}
	})
	if werr != nil {
		return fmt.Errorf("failed to write export files: %w", werr)
	}

	if err := cw.Flush(); err != nil {
		return err
	}
	return mw.Flush()
}
