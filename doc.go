// Package concurrentcube provides an N×N×N layered cube (a generalized
// Rubik's cube) that many goroutines can rotate and inspect at the same time.
//
// # Features
//
//   - Rotations of any layer of any face, for any size N
//   - Consistent snapshots that never observe a half-applied rotation
//   - Parallel rotations of distinct layers of the same axis
//   - Fair admission: no axis and no reader is starved
//   - Context cancellation that never corrupts the scheduler
//
// # Quick Start
//
//	cube := concurrentcube.New(4,
//	    concurrentcube.WithBeforeRotation(func(face, layer int) {
//	        fmt.Println("rotating", face, layer)
//	    }),
//	)
//
//	ctx := context.Background()
//	if err := cube.Rotate(ctx, 1, 3); err != nil {
//	    log.Fatal(err)
//	}
//
//	snap, err := cube.Show(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(snap)
//
// # Faces and Layers
//
// Faces are numbered 0 to 5 (up, left, front, right, back, down). Faces 0/5,
// 1/3 and 2/4 are opposite and share an axis. Layer 0 of a face is the layer
// touching that face; layer N-1 touches the opposite face. Rotate turns the
// layer 90 degrees clockwise as seen from the named face.
//
// # Admission
//
// Every request belongs to one of four categories: one per axis and one for
// snapshots. Requests of one category run together, requests of different
// categories never overlap. Rotations of the same axis additionally lock
// their physical layer, so two rotations of the same layer are serialized
// while rotations of different layers run in parallel.
//
// Once any request is queued, new requests queue too, even when they belong
// to the running category. When the running category drains, the next
// category with waiters is chosen round-robin and its whole queue is let
// through.
//
// # Cancellation
//
// A request whose context is cancelled while it is queued stays queued until
// admitted, then skips its work and returns an error matching both
// ErrCancelled and the context error.
package concurrentcube
