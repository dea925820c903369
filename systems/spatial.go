package systems

import "image"

// SpatialGrid buckets rectangles by cell for broad-phase queries. Entries are
// indices into a slice owned by the caller. The field does not wrap here:
// bodies may hang over the edges by half their size and are clamped into
// the border cells.
type SpatialGrid struct {
	cellSize int
	cols     int
	rows     int
	cells    [][]int

	// per-entry query stamps to report each entry once
	seen  []uint32
	epoch uint32
}

// NewSpatialGrid creates a grid covering the given field size.
func NewSpatialGrid(width, height, cellSize float64) *SpatialGrid {
	cs := int(cellSize)
	if cs < 1 {
		cs = 1
	}
	cols := int(width)/cs + 1
	rows := int(height)/cs + 1

	cells := make([][]int, cols*rows)
	for i := range cells {
		cells[i] = make([]int, 0, 4)
	}

	return &SpatialGrid{
		cellSize: cs,
		cols:     cols,
		rows:     rows,
		cells:    cells,
	}
}

// Clear removes all entries from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds entry idx to every cell r touches.
func (g *SpatialGrid) Insert(idx int, r image.Rectangle) {
	for idx >= len(g.seen) {
		g.seen = append(g.seen, 0)
	}
	c0, r0, c1, r1 := g.cellRange(r)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			i := row*g.cols + col
			g.cells[i] = append(g.cells[i], idx)
		}
	}
}

// QueryRectInto appends every entry sharing a cell with r to dst, each once,
// and returns the updated slice. Reuse dst across calls to avoid allocations.
func (g *SpatialGrid) QueryRectInto(dst []int, r image.Rectangle) []int {
	g.epoch++
	if g.epoch == 0 {
		clear(g.seen)
		g.epoch = 1
	}
	c0, r0, c1, r1 := g.cellRange(r)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			for _, idx := range g.cells[row*g.cols+col] {
				if g.seen[idx] == g.epoch {
					continue
				}
				g.seen[idx] = g.epoch
				dst = append(dst, idx)
			}
		}
	}
	return dst
}

// cellRange returns the inclusive cell span of r, clamped to the grid.
func (g *SpatialGrid) cellRange(r image.Rectangle) (c0, r0, c1, r1 int) {
	c0, r0 = g.cell(r.Min.X, r.Min.Y)
	c1, r1 = g.cell(r.Max.X-1, r.Max.Y-1)
	return c0, r0, c1, r1
}

func (g *SpatialGrid) cell(x, y int) (col, row int) {
	col = floorDiv(x, g.cellSize)
	row = floorDiv(y, g.cellSize)

	// Clamp to valid range
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}
	return col, row
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}
