package display

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

const REFRESH_RATE = 60 // Window refresh cadence, frames per second.

// Window is an ebiten-backed Display. The ebiten run loop owns the OS window
// on its own goroutine; Present hands it pixels under the mutex and then
// blocks until the next frame is drawn, which paces the caller to the
// refresh rate.
type Window struct {
	mu      sync.RWMutex
	pix     []uint8
	width   int
	height  int
	running bool
	frame   chan struct{}
	done    chan struct{}
}

var _ Display = (*Window)(nil)
var _ ebiten.Game = (*Window)(nil)

// NewWindow opens a window sized for the physical framebuffer and starts the
// presentation loop.
func NewWindow(title string, width, height int) (w *Window) {
	w = &Window{
		width:   width,
		height:  height,
		pix:     make([]uint8, width*height*4),
		running: true,
		frame:   make(chan struct{}, 1),
		done:    make(chan struct{}),
	}

	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(title)
	ebiten.SetTPS(REFRESH_RATE)

	go func() {
		// RunGame blocks until the window closes, escape is pressed, or
		// Close is called.
		_ = ebiten.RunGame(w)
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		close(w.done)
	}()

	return
}

// Update implements ebiten.Game.
func (w *Window) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) || ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}

	w.mu.RLock()
	running := w.running
	w.mu.RUnlock()
	if !running {
		return ebiten.Termination
	}

	return nil
}

// Draw implements ebiten.Game.
func (w *Window) Draw(screen *ebiten.Image) {
	w.mu.RLock()
	screen.WritePixels(w.pix)
	w.mu.RUnlock()

	select {
	case w.frame <- struct{}{}:
	default:
	}
}

// Layout implements ebiten.Game.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return w.width, w.height
}

// Running reports whether the window is still open and not quitting.
func (w *Window) Running() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.running
}

// Present copies the framebuffer to the window and waits for it to reach the
// screen, so one presentation happens per displayed frame.
func (w *Window) Present(fb *Framebuffer) (err error) {
	if fb.Width != w.width || fb.Height != w.height {
		err = ErrSizeMismatch
		return
	}

	w.mu.Lock()
	copy(w.pix, fb.Pixels())
	w.mu.Unlock()

	select {
	case <-w.frame:
	case <-w.done:
	}

	return
}

// Close asks the run loop to terminate and waits for the window to go away.
func (w *Window) Close() error {
	w.mu.Lock()
	w.running = false
	w.mu.Unlock()
	<-w.done

	return nil
}
