package export

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vesselsim/rivergen/internal/river"
)

// UCD writes an AVS/UCD mesh (river.inp): every grid point becomes a
// node carrying depth, current direction and current speed, and each
// segment's grid is stitched into quad cells. Cells never span segment
// boundaries, so the mesh stays valid even when segment ends coincide.
type UCD struct{}

func (UCD) Name() string { return "ucd" }

func (u UCD) Export(r *river.River, dir string) error {
	f, err := os.Create(filepath.Join(dir, "river.inp"))
	if err != nil {
		return fmt.Errorf("failed to create ucd file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	nodes := r.PointCount()
	cells := 0
	for _, s := range r.Segments {
		if len(s.Points) > 1 {
			cells += (len(s.Points) - 1) * (len(s.Points[0]) - 1)
		}
	}

	// Header: nodes, cells, node data components, cell data, model data.
	if _, err := fmt.Fprintf(w, "%d %d 3 0 0\n", nodes, cells); err != nil {
		return err
	}

	// Node list, 1-based ids, z fixed at 0.
	id := 1
	for _, s := range r.Segments {
		for _, row := range s.Points {
			for _, p := range row {
				if _, err := fmt.Fprintf(w, "%d %g %g 0\n", id, p.Pos.X, p.Pos.Y); err != nil {
					return err
				}
				id++
			}
		}
	}

	// Quad cells per segment, material id 1.
	cellID := 1
	base := 1
	for _, s := range r.Segments {
		rows := len(s.Points)
		if rows > 0 {
			cols := len(s.Points[0])
			for i := 0; i < rows-1; i++ {
				for k := 0; k < cols-1; k++ {
					n0 := base + i*cols + k
					n1 := n0 + 1
					n2 := n0 + cols + 1
					n3 := n0 + cols
					if _, err := fmt.Fprintf(w, "%d 1 quad %d %d %d %d\n", cellID, n0, n1, n2, n3); err != nil {
						return err
					}
					cellID++
				}
			}
			base += rows * cols
		}
	}

	// Node data: three scalar components.
	if _, err := fmt.Fprint(w, "3 1 1 1\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprint(w, "depth, m\ncurrent_dir, rad\ncurrent_vel, m/s\n"); err != nil {
		return err
	}

	id = 1
	for _, s := range r.Segments {
		for _, row := range s.Fields {
			for _, v := range row {
				if _, err := fmt.Fprintf(w, "%d %g %g %g\n", id, v.Depth, v.CurrentDir, v.CurrentVel); err != nil {
					return err
				}
				id++
			}
		}
	}

	return w.Flush()
}
