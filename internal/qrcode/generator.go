package qrcode

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	goqrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/colornames"
)

const (
	DefaultFillColor = "red"
	DefaultBackColor = "white"
	DefaultSize      = 10

	MinSize = 1
	MaxSize = 40
)

var (
	ErrInvalidColor = errors.New("invalid color")
	ErrInvalidSize  = errors.New("invalid size")

	// ErrContentTooLong is returned when a URL exceeds QR code capacity at the generator's recovery level.
	ErrContentTooLong = errors.New("url too long for a qr code")
)

// Style controls how a QR code image is rendered.
type Style struct {
	FillColor string
	BackColor string
	// Size is the width in pixels of a single module.
	Size int
}

// DefaultStyle returns the style used when a request does not specify one.
func DefaultStyle() Style {
	return Style{
		FillColor: DefaultFillColor,
		BackColor: DefaultBackColor,
		Size:      DefaultSize,
	}
}

// Generator renders URLs as PNG QR codes.
type Generator struct {
	level goqrcode.RecoveryLevel
}

// NewGenerator creates a generator using medium error correction.
func NewGenerator() *Generator {
	return &Generator{level: goqrcode.Medium}
}

// PNG renders u using the given style.
func (g *Generator) PNG(u URL, style Style) ([]byte, error) {
	if style.Size < MinSize || style.Size > MaxSize {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidSize, style.Size, MinSize, MaxSize)
	}

	fill, err := ParseColor(style.FillColor)
	if err != nil {
		return nil, err
	}

	back, err := ParseColor(style.BackColor)
	if err != nil {
		return nil, err
	}

	code, err := goqrcode.New(string(u), g.level)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrContentTooLong, err.Error())
	}

	code.ForegroundColor = fill
	code.BackgroundColor = back

	// A negative size makes every module -size pixels wide.
	return code.PNG(-style.Size)
}

// ParseColor accepts SVG color names ("red", "navy") and hex triplets ("#ff0000", "#f00").
func ParseColor(s string) (color.Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))

	if c, ok := colornames.Map[name]; ok {
		return c, nil
	}

	hex, ok := strings.CutPrefix(name, "#")
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}

	if len(hex) != 6 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	r, g, b := uint8(v>>16), uint8(v>>8), uint8(v)

	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}
