package concurrentcube

import (
	"context"
	"log/slog"

	"github.com/SeamusWaldron/concurrentcube/internal/cube"
	"github.com/SeamusWaldron/concurrentcube/internal/layers"
	"github.com/SeamusWaldron/concurrentcube/internal/sched"
)

// Color represents a facelet color, 0 to 5. On a new cube face i is filled
// with color i.
type Color = cube.Color

// Category is a class of requests that may run together: one per axis plus
// one for snapshots.
type Category = sched.Category

// Request categories.
const (
	CategoryAxis0   = sched.Axis0
	CategoryAxis1   = sched.Axis1
	CategoryAxis2   = sched.Axis2
	CategoryShowing = sched.Showing
	CategoryNone    = sched.None
)

// Stats is a point-in-time view of the admission scheduler.
type Stats = sched.Stats

// NumFaces is the number of faces of the cube.
const NumFaces = cube.NumFaces

// Cube is a size-N layered cube safe for concurrent use.
type Cube struct {
	size   int
	state  *cube.Cube
	sched  *sched.Scheduler
	layers *layers.Set
	hooks  Hooks
	log    *slog.Logger
}

// New creates a solved cube of the given size: face i is filled with color i.
func New(size int, opts ...Option) *Cube {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return &Cube{
		size:   size,
		state:  cube.New(size),
		sched:  sched.New(cfg.logger),
		layers: layers.New(cube.NumAxes, size),
		hooks:  cfg.hooks,
		log:    cfg.logger,
	}
}

// Size returns N.
func (c *Cube) Size() int {
	return c.size
}

// Locate maps a rotation request to the axis it turns around and the
// physical layer it moves, counted from the axis's low face (0, 1 or 2).
// Requests naming opposite faces map to the same physical layer when their
// layers add up to size-1.
func Locate(face, layer, size int) (axis, plane int) {
	a, p := cube.Locate(cube.Face(face), layer, size)
	return int(a), p
}

// Opposite returns the face opposite to face.
func Opposite(face int) int {
	return int(cube.Face(face).Opposite())
}

// Rotate turns the given layer of face 90 degrees clockwise as seen from that
// face. face must be in 0..5 and layer in 0..N-1.
//
// Rotate blocks while requests of another category run or wait. If ctx is
// cancelled before the rotation runs, the cube is left untouched and the
// returned error matches ErrCancelled and ctx.Err().
func (c *Cube) Rotate(ctx context.Context, face, layer int) error {
	f := cube.Face(face)
	axis, plane := cube.Locate(f, layer, c.size)
	category := sched.AxisCategory(int(axis))

	c.sched.Enter(category)
	defer c.sched.Leave(category)

	if err := ctx.Err(); err != nil {
		return c.skip(category, err, slog.Int("face", face), slog.Int("layer", layer))
	}

	if err := c.layers.Lock(ctx, int(axis), plane); err != nil {
		return c.skip(category, err, slog.Int("face", face), slog.Int("layer", layer))
	}
	defer c.layers.Unlock(int(axis), plane)

	// The lock may be granted even though ctx finished while waiting.
	if err := ctx.Err(); err != nil {
		return c.skip(category, err, slog.Int("face", face), slog.Int("layer", layer))
	}

	c.hooks.beforeRotation(face, layer)
	c.state.Rotate(f, layer)
	c.hooks.afterRotation(face, layer)
	return nil
}

// Show returns a snapshot of all facelets. The snapshot never contains a
// partially applied rotation.
func (c *Cube) Show(ctx context.Context) (Snapshot, error) {
	c.sched.Enter(sched.Showing)
	defer c.sched.Leave(sched.Showing)

	if err := ctx.Err(); err != nil {
		return Snapshot{}, c.skip(sched.Showing, err)
	}

	c.hooks.beforeShowing()
	colors := c.state.AppendColors(make([]Color, 0, NumFaces*c.size*c.size))
	c.hooks.afterShowing()

	return Snapshot{size: c.size, colors: colors}, nil
}

// Apply rotates the moves one after another, stopping at the first error.
func (c *Cube) Apply(ctx context.Context, moves ...Move) error {
	for _, m := range moves {
		if err := c.Rotate(ctx, m.Face, m.Layer); err != nil {
			return err
		}
	}
	return nil
}

// Stats returns the current state of the admission scheduler.
func (c *Cube) Stats() Stats {
	return c.sched.Stats()
}

func (c *Cube) skip(category sched.Category, err error, attrs ...any) error {
	sched.RecordCancelled(category)
	c.log.Debug("request cancelled after admission",
		append([]any{slog.String("category", category.String()), slog.Any("error", err)}, attrs...)...)
	return cancelled(err)
}
