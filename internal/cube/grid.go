package cube

// Grid is the N×N facelet storage of one face.
//
// Cells are only mutated through lines and spin, so a rotation touches exactly
// the rows and columns of its physical layer (plus a whole face for the outer
// layers).
type Grid struct {
	size  int
	cells [][]Color
}

func newGrid(size int, color Color) *Grid {
	g := &Grid{size: size, cells: make([][]Color, size)}
	for i := range g.cells {
		g.cells[i] = make([]Color, size)
		for j := range g.cells[i] {
			g.cells[i][j] = color
		}
	}
	return g
}

// At returns the color at row, col.
func (g *Grid) At(row, col int) Color {
	return g.cells[row][col]
}

func (g *Grid) appendTo(dst []Color) []Color {
	for _, row := range g.cells {
		dst = append(dst, row...)
	}
	return dst
}

func (g *Grid) uniform() bool {
	if g.size == 0 {
		return true
	}
	first := g.cells[0][0]
	for _, row := range g.cells {
		for _, c := range row {
			if c != first {
				return false
			}
		}
	}
	return true
}

func (g *Grid) clone() *Grid {
	clone := &Grid{size: g.size, cells: make([][]Color, g.size)}
	for i, row := range g.cells {
		clone.cells[i] = append([]Color(nil), row...)
	}
	return clone
}

func (g *Grid) equal(other *Grid) bool {
	for i, row := range g.cells {
		for j, c := range row {
			if other.cells[i][j] != c {
				return false
			}
		}
	}
	return true
}

// spin turns the whole face 90 degrees: transpose, then mirror each row
// (clockwise) or each column (counter-clockwise).
func (g *Grid) spin(clockwise bool) {
	n := g.size
	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			g.cells[i][j], g.cells[j][i] = g.cells[j][i], g.cells[i][j]
		}
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n/2; j++ {
			if clockwise {
				g.cells[i][j], g.cells[i][n-j-1] = g.cells[i][n-j-1], g.cells[i][j]
			} else {
				g.cells[j][i], g.cells[n-j-1][i] = g.cells[n-j-1][i], g.cells[j][i]
			}
		}
	}
}

type lineKind int

const (
	row lineKind = iota
	column
)

// line is one row or column of a grid.
type line struct {
	grid  *Grid
	kind  lineKind
	index int
}

func (l line) cell(k int) *Color {
	if l.kind == row {
		return &l.grid.cells[l.index][k]
	}
	return &l.grid.cells[k][l.index]
}

// swapLines exchanges cell k of a with cell k of b, or with cell N-1-k when
// reversed.
func swapLines(a, b line, reversed bool) {
	n := a.grid.size
	for k := 0; k < n; k++ {
		j := k
		if reversed {
			j = n - k - 1
		}
		pa, pb := a.cell(k), b.cell(j)
		*pa, *pb = *pb, *pa
	}
}
