// Package swatch synthesizes the reference swatch image that is matched
// against the photograph: one solid cell per palette color, stacked
// edge-to-edge along the configured axis.
package swatch

import (
	"image"
	"image/color"

	"github.com/mehmetbozoklu/findingpalette/pkg/palette"
)

// Layout describes how palette colors are assembled into a swatch.
type Layout struct {
	// Vertical stacks cells top-to-bottom; otherwise left-to-right.
	Vertical bool
	// Reverse flips the cell sequence before assembly (lighter-to-darker
	// instead of darker-to-lighter).
	Reverse bool
	// CellWidth and CellHeight are the cell dimensions in the vertical
	// orientation. The horizontal orientation swaps their roles.
	CellWidth  int
	CellHeight int
}

// Dims returns the pixel dimensions of a swatch with cellCount cells.
// Vertical: CellWidth x CellHeight*cellCount. Horizontal: the cells
// rotate, giving CellHeight*cellCount x CellWidth.
func (l Layout) Dims(cellCount int) (w, h int) {
	if l.Vertical {
		return l.CellWidth, l.CellHeight * cellCount
	}
	return l.CellHeight * cellCount, l.CellWidth
}

// Synthesize renders one solid cell per color and concatenates them
// along the stacking axis with no gaps. The output depends only on the
// color sequence and the layout; its dimensions always equal
// Dims(len(colors)).
func (l Layout) Synthesize(colors []palette.Color) *image.NRGBA {
	w, h := l.Dims(len(colors))
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	if len(colors) == 0 {
		return img
	}

	cells := colors
	if l.Reverse {
		cells = make([]palette.Color, len(colors))
		for i, c := range colors {
			cells[len(colors)-1-i] = c
		}
	}

	for i, c := range cells {
		fill(img, l.cellRect(i), toNRGBA(c))
	}
	return img
}

// cellRect returns the pixel rectangle of cell i in the stacking order.
func (l Layout) cellRect(i int) image.Rectangle {
	if l.Vertical {
		return image.Rect(0, i*l.CellHeight, l.CellWidth, (i+1)*l.CellHeight)
	}
	return image.Rect(i*l.CellHeight, 0, (i+1)*l.CellHeight, l.CellWidth)
}

func toNRGBA(c palette.Color) color.NRGBA {
	return color.NRGBA{R: clamp8(c[0]), G: clamp8(c[1]), B: clamp8(c[2]), A: 255}
}

func clamp8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

func fill(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := img.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			img.Pix[i+0] = c.R
			img.Pix[i+1] = c.G
			img.Pix[i+2] = c.B
			img.Pix[i+3] = c.A
			i += 4
		}
	}
}
