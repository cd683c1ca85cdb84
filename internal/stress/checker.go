// Package stress drives randomized concurrent workloads against a cube and
// checks that admission never lets conflicting work overlap.
package stress

import (
	"sync/atomic"

	"github.com/SeamusWaldron/concurrentcube"
)

const numAxes = 3

// Violations counts overlaps the checker observed. All zero means the run
// was clean.
type Violations struct {
	AxisOverlap        int64 // rotations on two axes in flight together
	LayerOverlap       int64 // two rotations of one physical layer in flight together
	RotateWhileShowing int64
	ShowWhileRotating  int64
}

// Total returns the sum of all counters.
func (v Violations) Total() int64 {
	return v.AxisOverlap + v.LayerOverlap + v.RotateWhileShowing + v.ShowWhileRotating
}

// Checker is a hook set that tracks which rotations and snapshots are in
// flight and counts every forbidden overlap. It is safe for concurrent use.
type Checker struct {
	size    int
	axes    [numAxes]atomic.Int64
	planes  [numAxes][]atomic.Int64
	showing atomic.Int64

	rotations atomic.Int64
	shows     atomic.Int64

	axisOverlap        atomic.Int64
	layerOverlap       atomic.Int64
	rotateWhileShowing atomic.Int64
	showWhileRotating  atomic.Int64
}

// NewChecker creates a checker for a cube of the given size.
func NewChecker(size int) *Checker {
	c := &Checker{size: size}
	for a := range c.planes {
		c.planes[a] = make([]atomic.Int64, size)
	}
	return c
}

// Hooks returns the hook set to install on the cube.
func (c *Checker) Hooks() concurrentcube.Hooks {
	return concurrentcube.Hooks{
		BeforeRotation: c.beforeRotation,
		AfterRotation:  c.afterRotation,
		BeforeShowing:  c.beforeShowing,
		AfterShowing:   c.afterShowing,
	}
}

func (c *Checker) beforeRotation(face, layer int) {
	axis, plane := concurrentcube.Locate(face, layer, c.size)

	c.axes[axis].Add(1)
	for other := range c.axes {
		if other != axis && c.axes[other].Load() > 0 {
			c.axisOverlap.Add(1)
		}
	}
	if c.planes[axis][plane].Add(1) > 1 {
		c.layerOverlap.Add(1)
	}
	if c.showing.Load() > 0 {
		c.rotateWhileShowing.Add(1)
	}
}

func (c *Checker) afterRotation(face, layer int) {
	axis, plane := concurrentcube.Locate(face, layer, c.size)
	c.planes[axis][plane].Add(-1)
	c.axes[axis].Add(-1)
	c.rotations.Add(1)
}

func (c *Checker) beforeShowing() {
	c.showing.Add(1)
	for a := range c.axes {
		if c.axes[a].Load() > 0 {
			c.showWhileRotating.Add(1)
		}
	}
}

func (c *Checker) afterShowing() {
	c.showing.Add(-1)
	c.shows.Add(1)
}

// Rotations returns the number of rotations that completed.
func (c *Checker) Rotations() int64 {
	return c.rotations.Load()
}

// Shows returns the number of snapshots that completed.
func (c *Checker) Shows() int64 {
	return c.shows.Load()
}

// Violations returns the overlaps counted so far.
func (c *Checker) Violations() Violations {
	return Violations{
		AxisOverlap:        c.axisOverlap.Load(),
		LayerOverlap:       c.layerOverlap.Load(),
		RotateWhileShowing: c.rotateWhileShowing.Load(),
		ShowWhileRotating:  c.showWhileRotating.Load(),
	}
}
