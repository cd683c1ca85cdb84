package concurrentcube

import "strings"

// Snapshot is an immutable copy of the cube surface: faces 0..5, each N×N,
// row-major.
type Snapshot struct {
	size   int
	colors []Color
}

// Size returns N.
func (s Snapshot) Size() int {
	return s.size
}

// At returns the color at row, col of face.
func (s Snapshot) At(face, row, col int) Color {
	return s.colors[(face*s.size+row)*s.size+col]
}

// Colors returns a copy of all facelets in snapshot order.
func (s Snapshot) Colors() []Color {
	return append([]Color(nil), s.colors...)
}

// Counts returns how many facelets carry each color.
func (s Snapshot) Counts() [NumFaces]int {
	var counts [NumFaces]int
	for _, c := range s.colors {
		if int(c) < NumFaces {
			counts[c]++
		}
	}
	return counts
}

// IsConserved reports whether every color appears exactly N² times.
func (s Snapshot) IsConserved() bool {
	for _, n := range s.Counts() {
		if n != s.size*s.size {
			return false
		}
	}
	return true
}

// IsSolved reports whether face i holds only color i, the initial state.
func (s Snapshot) IsSolved() bool {
	per := s.size * s.size
	for i, c := range s.colors {
		if int(c) != i/per {
			return false
		}
	}
	return true
}

// Equal reports whether two snapshots hold the same facelets.
func (s Snapshot) Equal(other Snapshot) bool {
	if s.size != other.size || len(s.colors) != len(other.colors) {
		return false
	}
	for i := range s.colors {
		if s.colors[i] != other.colors[i] {
			return false
		}
	}
	return true
}

// String returns one digit per facelet in snapshot order.
func (s Snapshot) String() string {
	var sb strings.Builder
	sb.Grow(len(s.colors))
	for _, c := range s.colors {
		sb.WriteString(c.String())
	}
	return sb.String()
}
