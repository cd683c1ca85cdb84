// Package cube provides an N×N×N layered cube model and its rotation engine.
//
// The model carries no locking of its own. Callers serialize access with the
// scheduler in the root package; rotations of distinct physical layers of the
// same axis touch disjoint cells and may run in parallel.
package cube

import "strings"

// Color represents a facelet color.
type Color byte

const (
	White  Color = 0 // Up face when solved
	Orange Color = 1 // Left face when solved
	Green  Color = 2 // Front face when solved
	Red    Color = 3 // Right face when solved
	Blue   Color = 4 // Back face when solved
	Yellow Color = 5 // Down face when solved
)

// String returns the color as a single digit.
func (c Color) String() string {
	if c > Yellow {
		return "?"
	}
	return string('0' + byte(c))
}

// Letter returns the conventional color initial.
func (c Color) Letter() string {
	switch c {
	case White:
		return "W"
	case Orange:
		return "O"
	case Green:
		return "G"
	case Red:
		return "R"
	case Blue:
		return "B"
	case Yellow:
		return "Y"
	default:
		return "?"
	}
}

// Face identifies one of the six faces.
type Face int

const (
	Up    Face = 0
	Left  Face = 1
	Front Face = 2
	Right Face = 3
	Back  Face = 4
	Down  Face = 5
)

// NumFaces is the number of faces of the cube.
const NumFaces = 6

func (f Face) String() string {
	switch f {
	case Up:
		return "U"
	case Left:
		return "L"
	case Front:
		return "F"
	case Right:
		return "R"
	case Back:
		return "B"
	case Down:
		return "D"
	default:
		return "?"
	}
}

// Cube holds the six grids of an N×N×N cube.
type Cube struct {
	size  int
	faces [NumFaces]*Grid
}

// New creates a solved cube of the given size: face i is filled with color i.
func New(size int) *Cube {
	c := &Cube{size: size}
	for f := Face(0); f < NumFaces; f++ {
		c.faces[f] = newGrid(size, Color(f))
	}
	return c
}

// Size returns N.
func (c *Cube) Size() int {
	return c.size
}

// Face returns the grid of face f. The grid is read-only for callers.
func (c *Cube) Face(f Face) *Grid {
	return c.faces[f]
}

// AppendColors appends all facelets to dst, faces 0..5, each row-major.
func (c *Cube) AppendColors(dst []Color) []Color {
	for _, g := range c.faces {
		dst = g.appendTo(dst)
	}
	return dst
}

// Counts returns how many facelets carry each color.
func (c *Cube) Counts() [NumFaces]int {
	var counts [NumFaces]int
	for _, g := range c.faces {
		for _, row := range g.cells {
			for _, col := range row {
				if int(col) < NumFaces {
					counts[col]++
				}
			}
		}
	}
	return counts
}

// IsSolved returns true if every face is a single color.
func (c *Cube) IsSolved() bool {
	for _, g := range c.faces {
		if !g.uniform() {
			return false
		}
	}
	return true
}

// Clone creates a deep copy of the cube.
func (c *Cube) Clone() *Cube {
	clone := &Cube{size: c.size}
	for f, g := range c.faces {
		clone.faces[f] = g.clone()
	}
	return clone
}

// Equal reports whether both cubes have the same facelets.
func (c *Cube) Equal(other *Cube) bool {
	if c.size != other.size {
		return false
	}
	for f := range c.faces {
		if !c.faces[f].equal(other.faces[f]) {
			return false
		}
	}
	return true
}

// String returns a text net of the cube in color initials:
//
//	  U
//	L F R B
//	  D
func (c *Cube) String() string {
	var sb strings.Builder
	pad := strings.Repeat(" ", c.size*2)

	writeRow := func(f Face, row int) {
		for col := 0; col < c.size; col++ {
			sb.WriteString(c.Face(f).At(row, col).Letter())
			sb.WriteByte(' ')
		}
	}

	for row := 0; row < c.size; row++ {
		sb.WriteString(pad)
		writeRow(Up, row)
		sb.WriteByte('\n')
	}
	for row := 0; row < c.size; row++ {
		for _, f := range []Face{Left, Front, Right, Back} {
			writeRow(f, row)
		}
		sb.WriteByte('\n')
	}
	for row := 0; row < c.size; row++ {
		sb.WriteString(pad)
		writeRow(Down, row)
		sb.WriteByte('\n')
	}

	return sb.String()
}
