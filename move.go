package concurrentcube

import (
	"strconv"
	"strings"

	"github.com/SeamusWaldron/concurrentcube/internal/cube"
)

// Move is a single rotation request: turn Layer of Face 90 degrees clockwise
// as seen from Face.
type Move struct {
	Face  int // 0..5
	Layer int // 0..N-1
}

// Notation returns the move as "face:layer", e.g. "1:3".
func (m Move) Notation() string {
	return strconv.Itoa(m.Face) + ":" + strconv.Itoa(m.Layer)
}

// String returns the notation string (alias for Notation).
func (m Move) String() string {
	return m.Notation()
}

// Inverse returns the move that undoes m on a cube of the given size: the
// same physical layer turned from the opposite face.
func (m Move) Inverse(size int) Move {
	return Move{Face: Opposite(m.Face), Layer: size - m.Layer - 1}
}

// Axis returns the axis the move turns around.
func (m Move) Axis() int {
	return int(cube.Face(m.Face).Axis())
}

// ParseMove parses "face:layer" notation.
// Examples: 0:0, 1:3, 5:12
// Returns ErrInvalidNotation if the face is outside 0..5 or the layer is
// negative.
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	faceText, layerText, ok := strings.Cut(s, ":")
	if !ok {
		return Move{}, ErrInvalidNotation
	}

	face, err := strconv.Atoi(faceText)
	if err != nil || face < 0 || face >= NumFaces {
		return Move{}, ErrInvalidNotation
	}

	layer, err := strconv.Atoi(layerText)
	if err != nil || layer < 0 {
		return Move{}, ErrInvalidNotation
	}

	return Move{Face: face, Layer: layer}, nil
}

// ParseMoves parses a sequence of moves separated by spaces or commas.
// Example: "1:3 0:0, 4:1"
// The first invalid token fails the whole sequence with ErrInvalidNotation.
func ParseMoves(s string) ([]Move, error) {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	moves := make([]Move, 0, len(parts))

	for _, part := range parts {
		move, err := ParseMove(part)
		if err != nil {
			return nil, err
		}
		moves = append(moves, move)
	}

	return moves, nil
}

// FormatMoves formats a slice of moves as a space-separated notation string.
func FormatMoves(moves []Move) string {
	if len(moves) == 0 {
		return ""
	}

	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}

	return strings.Join(parts, " ")
}
