package concurrentcube

// Hooks are callbacks invoked around every rotation and snapshot. Nil fields
// are skipped.
//
// Hooks run synchronously on the calling goroutine and must not call back
// into the same Cube.
type Hooks struct {
	BeforeRotation func(face, layer int)
	AfterRotation  func(face, layer int)
	BeforeShowing  func()
	AfterShowing   func()
}

// Chain returns hooks that call each of the given hook sets in order.
func Chain(hooks ...Hooks) Hooks {
	return Hooks{
		BeforeRotation: func(face, layer int) {
			for _, h := range hooks {
				h.beforeRotation(face, layer)
			}
		},
		AfterRotation: func(face, layer int) {
			for _, h := range hooks {
				h.afterRotation(face, layer)
			}
		},
		BeforeShowing: func() {
			for _, h := range hooks {
				h.beforeShowing()
			}
		},
		AfterShowing: func() {
			for _, h := range hooks {
				h.afterShowing()
			}
		},
	}
}

func (h Hooks) beforeRotation(face, layer int) {
	if h.BeforeRotation != nil {
		h.BeforeRotation(face, layer)
	}
}

func (h Hooks) afterRotation(face, layer int) {
	if h.AfterRotation != nil {
		h.AfterRotation(face, layer)
	}
}

func (h Hooks) beforeShowing() {
	if h.BeforeShowing != nil {
		h.BeforeShowing()
	}
}

func (h Hooks) afterShowing() {
	if h.AfterShowing != nil {
		h.AfterShowing()
	}
}
