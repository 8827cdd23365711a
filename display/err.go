package display

import (
	"errors"

	"github.com/ezrec/chip8/translate"
)

var f = translate.From

var (
	// Display errors
	ErrSizeMismatch = errors.New(f("framebuffer does not match display size"))
)
