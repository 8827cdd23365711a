// Package display owns the scaled framebuffer, its XOR-sprite draw primitive,
// and the sinks that present it to the user.
package display

// Display is a sink the run loop presents each frame to.
type Display interface {
	// Running reports whether presentation can continue. It goes false when
	// the window is closed or the user requests a quit.
	Running() bool
	// Present copies the framebuffer's physical pixels to the output.
	Present(fb *Framebuffer) error
	// Close releases the display resources.
	Close() error
}

// Null is a Display that discards frames; it backs trace runs and tests.
type Null struct {
	Frames int // Count of frames presented.

	closed bool
}

var _ Display = (*Null)(nil)

func (nl *Null) Running() bool {
	return !nl.closed
}

func (nl *Null) Present(fb *Framebuffer) error {
	nl.Frames++
	return nil
}

func (nl *Null) Close() error {
	nl.closed = true
	return nil
}
