// Package sched implements group mutual exclusion between the rotation axes
// and snapshot readers of a cube.
//
// Requests belong to one of four categories. Any number of requests of the
// active category run together; requests of other categories queue. When the
// active category drains, the next category with waiters is picked round-robin
// and its whole queue is admitted as one batch.
package sched

import "fmt"

// Category is a class of mutually compatible requests.
type Category int

const (
	Axis0   Category = 0
	Axis1   Category = 1
	Axis2   Category = 2
	Showing Category = 3

	// None marks an idle scheduler.
	None Category = -1
)

// NumCategories is the number of request categories.
const NumCategories = 4

// AxisCategory returns the category of rotations around axis.
func AxisCategory(axis int) Category {
	return Category(axis)
}

// String returns the metric label of the category.
func (c Category) String() string {
	switch c {
	case Axis0:
		return "axis0"
	case Axis1:
		return "axis1"
	case Axis2:
		return "axis2"
	case Showing:
		return "showing"
	case None:
		return "none"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// IsAxis reports whether the category is a rotation axis.
func (c Category) IsAxis() bool {
	return c >= Axis0 && c <= Axis2
}
