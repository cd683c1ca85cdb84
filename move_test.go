package concurrentcube

import (
	"errors"
	"math/rand"
	"testing"
)

func TestParseMove(t *testing.T) {
	tests := []struct {
		input string
		want  Move
	}{
		{"0:0", Move{0, 0}},
		{"1:3", Move{1, 3}},
		{" 5:12 ", Move{5, 12}},
	}

	for _, tt := range tests {
		got, err := ParseMove(tt.input)
		if err != nil {
			t.Errorf("ParseMove(%q) error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMove(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseMoveInvalid(t *testing.T) {
	for _, input := range []string{"", "0", "6:0", "-1:0", "0:-1", "a:1", "1:b", "1:2:3"} {
		if _, err := ParseMove(input); !errors.Is(err, ErrInvalidNotation) {
			t.Errorf("ParseMove(%q): expected ErrInvalidNotation, got %v", input, err)
		}
	}
}

func TestParseMoves(t *testing.T) {
	moves, err := ParseMoves("1:3 0:0,4:1\t3:2\n5:0, 2:3")
	if err != nil {
		t.Fatalf("ParseMoves error: %v", err)
	}

	want := []Move{{1, 3}, {0, 0}, {4, 1}, {3, 2}, {5, 0}, {2, 3}}
	if len(moves) != len(want) {
		t.Fatalf("got %d moves, want %d", len(moves), len(want))
	}
	for i := range want {
		if moves[i] != want[i] {
			t.Errorf("move %d: got %v, want %v", i, moves[i], want[i])
		}
	}

	if got := FormatMoves(moves); got != "1:3 0:0 4:1 3:2 5:0 2:3" {
		t.Errorf("FormatMoves = %q", got)
	}

	if _, err := ParseMoves("0:0 7:1"); !errors.Is(err, ErrInvalidNotation) {
		t.Errorf("expected ErrInvalidNotation, got %v", err)
	}

	empty, err := ParseMoves("  ")
	if err != nil || len(empty) != 0 {
		t.Errorf("ParseMoves of blank input = %v, %v", empty, err)
	}
}

func TestMoveInverse(t *testing.T) {
	tests := []struct {
		move Move
		size int
		want Move
	}{
		{Move{0, 0}, 3, Move{5, 2}},
		{Move{1, 1}, 3, Move{3, 1}},
		{Move{4, 3}, 4, Move{2, 0}},
	}

	for _, tt := range tests {
		if got := tt.move.Inverse(tt.size); got != tt.want {
			t.Errorf("%v.Inverse(%d) = %v, want %v", tt.move, tt.size, got, tt.want)
		}
		if got := tt.move.Inverse(tt.size).Inverse(tt.size); got != tt.move {
			t.Errorf("double inverse of %v = %v", tt.move, got)
		}
	}
}

func TestMoveAxis(t *testing.T) {
	want := []int{0, 1, 2, 1, 2, 0}
	for face, axis := range want {
		if got := (Move{Face: face}).Axis(); got != axis {
			t.Errorf("face %d: axis %d, want %d", face, got, axis)
		}
	}
}

func TestRandomMovesInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	moves := RandomMoves(rng, 4, 500)
	if len(moves) != 500 {
		t.Fatalf("got %d moves", len(moves))
	}
	for _, m := range moves {
		if m.Face < 0 || m.Face >= NumFaces || m.Layer < 0 || m.Layer >= 4 {
			t.Errorf("move out of range: %v", m)
		}
	}
	if RandomMoves(rng, 0, 5) != nil {
		t.Error("expected no moves for an empty cube")
	}
}
