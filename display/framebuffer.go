package display

import (
	"fmt"
	"iter"
	"maps"
	"strings"
)

const (
	LOGICAL_WIDTH  = 64 // Logical display width in pixels.
	LOGICAL_HEIGHT = 32 // Logical display height in pixels.
	SCALE          = 10 // Physical pixels per logical pixel, in each direction.
)

var _display_defines = map[string]string{
	"LOGICAL_WIDTH":  fmt.Sprintf("%v", LOGICAL_WIDTH),
	"LOGICAL_HEIGHT": fmt.Sprintf("%v", LOGICAL_HEIGHT),
	"SCALE":          fmt.Sprintf("%v", SCALE),
}

// RGBA values for the two pixel states.
var (
	pixelOn  = [4]uint8{0xFF, 0xFF, 0xFF, 0xFF} // white
	pixelOff = [4]uint8{0x00, 0x00, 0x00, 0xFF} // black
)

// Framebuffer is a monochrome pixel grid that pretends to be SCALE times
// smaller than it is: a 64x32 logical screen materialized as a 640x320
// physical RGBA buffer. Flipping the logical pixel at (0, 0) flips all
// physical pixels from (0, 0) through (9, 9), so every sub-pixel of a
// logical cell always holds the same value.
type Framebuffer struct {
	Width  int // Physical buffer width.
	Height int // Physical buffer height.

	logicalWidth  int
	logicalHeight int
	pix           []uint8 // Physical RGBA pixels, row-major.
}

// NewFramebuffer creates a blank framebuffer from logical dimensions.
func NewFramebuffer(logicalWidth, logicalHeight int) (fb *Framebuffer) {
	fb = &Framebuffer{
		Width:         logicalWidth * SCALE,
		Height:        logicalHeight * SCALE,
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	fb.pix = make([]uint8, fb.Width*fb.Height*4)
	for n := 3; n < len(fb.pix); n += 4 {
		fb.pix[n] = 0xFF // opaque
	}

	return
}

// Defines for the display
func (fb *Framebuffer) Defines() iter.Seq2[string, string] {
	return maps.All(_display_defines)
}

// Pixels returns the physical RGBA buffer, ready for a display sink.
func (fb *Framebuffer) Pixels() []uint8 {
	return fb.pix
}

// wrap folds logical coordinates onto the grid. A sprite drawn near an edge
// wraps around to the opposite edge instead of indexing outside the buffer.
func (fb *Framebuffer) wrap(x, y int) (int, int) {
	x %= fb.logicalWidth
	if x < 0 {
		x += fb.logicalWidth
	}
	y %= fb.logicalHeight
	if y < 0 {
		y += fb.logicalHeight
	}

	return x, y
}

// Get reports the state of logical pixel (x, y). Reading one representative
// physical pixel is enough, since all sub-pixels of a cell are equal.
func (fb *Framebuffer) Get(x, y int) bool {
	x, y = fb.wrap(x, y)
	offset := (y*SCALE*fb.Width + x*SCALE) * 4

	return fb.pix[offset] == pixelOn[0]
}

// Set writes every physical sub-pixel of logical cell (x, y) to value.
func (fb *Framebuffer) Set(x, y int, value bool) {
	x, y = fb.wrap(x, y)
	color := pixelOff
	if value {
		color = pixelOn
	}

	for dy := range SCALE {
		row := ((y*SCALE+dy)*fb.Width + x*SCALE) * 4
		for dx := range SCALE {
			copy(fb.pix[row+dx*4:row+dx*4+4], color[:])
		}
	}
}

// Xor flips logical cell (x, y) when bit is set; a clear bit leaves the cell
// untouched. It reports a collision: true only when the flip turned a lit
// pixel off.
func (fb *Framebuffer) Xor(x, y int, bit bool) (collision bool) {
	if !bit {
		return
	}

	was := fb.Get(x, y)
	fb.Set(x, y, !was)
	collision = was
	return
}

// DrawSprite XOR-blits a sprite onto the framebuffer at logical position
// (x, y). Each byte of the sprite is one row, its bits one column each,
// most significant bit leftmost. For example, these 3 bytes draw a "0":
//
//	00111100
//	00100100
//	00111100
//
// It reports whether any pixel went from set to unset during the draw; the
// flag is the OR across every flipped bit, not just the last one.
func (fb *Framebuffer) DrawSprite(x, y int, sprite []uint8) (collision bool) {
	for dy, row := range sprite {
		for dx := range 8 {
			bit := (row>>(7-dx))&1 != 0
			if fb.Xor(x+dx, y+dy, bit) {
				collision = true
			}
		}
	}

	return
}

// String renders the logical grid as rows of 0 (off) and 1 (on).
func (fb *Framebuffer) String() string {
	rows := make([]string, 0, fb.logicalHeight)
	row := make([]string, fb.logicalWidth)
	for y := range fb.logicalHeight {
		for x := range fb.logicalWidth {
			row[x] = "0"
			if fb.Get(x, y) {
				row[x] = "1"
			}
		}
		rows = append(rows, strings.Join(row, " "))
	}

	return strings.Join(rows, "\n")
}
