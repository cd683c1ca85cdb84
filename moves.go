package concurrentcube

import "math/rand"

// RandomMoves returns count moves with uniformly chosen faces and layers for
// a cube of the given size.
//
// Example:
//
//	rng := rand.New(rand.NewSource(1))
//	cube.Apply(ctx, concurrentcube.RandomMoves(rng, cube.Size(), 20)...)
func RandomMoves(rng *rand.Rand, size, count int) []Move {
	if size <= 0 {
		return nil
	}
	moves := make([]Move, count)
	for i := range moves {
		moves[i] = Move{Face: rng.Intn(NumFaces), Layer: rng.Intn(size)}
	}
	return moves
}

// InverseMoves returns the sequence that undoes moves on a cube of the given
// size: each move inverted, in reverse order.
func InverseMoves(moves []Move, size int) []Move {
	inv := make([]Move, len(moves))
	for i, m := range moves {
		inv[len(moves)-1-i] = m.Inverse(size)
	}
	return inv
}

// QuarterTurns returns m repeated n times. Four quarter turns of any move
// restore the cube.
func QuarterTurns(m Move, n int) []Move {
	moves := make([]Move, n)
	for i := range moves {
		moves[i] = m
	}
	return moves
}
