package cube

// Axis is one of the three rotation directions. Each axis owns a low and a
// high end face and N physical layers counted from the low face.
type Axis int

// NumAxes is the number of rotation axes.
const NumAxes = 3

// axisEnds maps an axis to its low and high end faces.
var axisEnds = [NumAxes][2]Face{
	{Up, Down},
	{Left, Right},
	{Front, Back},
}

// Axis returns the axis the face turns around.
func (f Face) Axis() Axis {
	switch f {
	case Up, Down:
		return 0
	case Left, Right:
		return 1
	default:
		return 2
	}
}

// IsLow reports whether the face is the low end of its axis.
func (f Face) IsLow() bool {
	return axisEnds[f.Axis()][0] == f
}

// Opposite returns the face on the other end of the same axis.
func (f Face) Opposite() Face {
	ends := axisEnds[f.Axis()]
	if ends[0] == f {
		return ends[1]
	}
	return ends[0]
}

// Locate maps a (face, layer) request of a size-N cube to the axis and the
// physical layer it turns. High faces count layers from the far end.
func Locate(face Face, layer, size int) (Axis, int) {
	if face.IsLow() {
		return face.Axis(), layer
	}
	return face.Axis(), size - layer - 1
}

// lineRef names a row or column of a belt face at the requested layer or at
// its reflection N-1-layer.
type lineRef struct {
	face      Face
	kind      lineKind
	reflected bool
}

// exchange swaps two belt lines. Three chained exchanges per face cycle the
// four belt lines of the turned layer.
type exchange struct {
	a, b     lineRef
	reversed bool
}

// belts lists, for each named face, the exchanges performed when one of its
// layers turns clockwise as seen from that face. The reversal flags follow
// how each pair of faces meets on the cube.
var belts = [NumFaces][3]exchange{
	Up: {
		{lineRef{Back, row, false}, lineRef{Left, row, false}, false},
		{lineRef{Left, row, false}, lineRef{Front, row, false}, false},
		{lineRef{Front, row, false}, lineRef{Right, row, false}, false},
	},
	Left: {
		{lineRef{Up, column, false}, lineRef{Back, column, true}, true},
		{lineRef{Back, column, true}, lineRef{Down, column, false}, true},
		{lineRef{Down, column, false}, lineRef{Front, column, false}, false},
	},
	Front: {
		{lineRef{Up, row, true}, lineRef{Left, column, true}, true},
		{lineRef{Left, column, true}, lineRef{Down, row, false}, false},
		{lineRef{Down, row, false}, lineRef{Right, column, false}, true},
	},
	Right: {
		{lineRef{Up, column, true}, lineRef{Front, column, true}, false},
		{lineRef{Front, column, true}, lineRef{Down, column, true}, false},
		{lineRef{Down, column, true}, lineRef{Back, column, false}, true},
	},
	Back: {
		{lineRef{Up, row, false}, lineRef{Right, column, true}, false},
		{lineRef{Right, column, true}, lineRef{Down, row, true}, true},
		{lineRef{Down, row, true}, lineRef{Left, column, false}, false},
	},
	Down: {
		{lineRef{Front, row, true}, lineRef{Left, row, true}, false},
		{lineRef{Left, row, true}, lineRef{Back, row, true}, false},
		{lineRef{Back, row, true}, lineRef{Right, row, true}, false},
	},
}

func (c *Cube) line(ref lineRef, layer int) line {
	index := layer
	if ref.reflected {
		index = c.size - layer - 1
	}
	return line{grid: c.faces[ref.face], kind: ref.kind, index: index}
}

// Rotate turns the given layer of face 90 degrees clockwise as seen from that
// face. Layer 0 also spins the face itself; layer N-1 spins the opposite face
// counter-clockwise.
//
// Rotate does no locking. Concurrent calls are safe only when they resolve to
// the same axis and different physical layers.
func (c *Cube) Rotate(face Face, layer int) {
	if layer == 0 {
		c.faces[face].spin(true)
	}
	if layer == c.size-1 {
		c.faces[face.Opposite()].spin(false)
	}

	for _, ex := range belts[face] {
		swapLines(c.line(ex.a, layer), c.line(ex.b, layer), ex.reversed)
	}
}
