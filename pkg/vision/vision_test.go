package vision

import (
	"image"
	"image/color"
	"testing"
)

func TestSmoothRejectsEvenKernel(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))

	if _, err := Smooth(img, 4); err == nil {
		t.Error("Expected error for even kernel size")
	}
	if _, err := Smooth(img, 0); err == nil {
		t.Error("Expected error for zero kernel size")
	}
}

func TestQuantizeRejectsBadInput(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))

	if _, _, _, err := Quantize(img, 1); err == nil {
		t.Error("Expected error for fewer than 2 clusters")
	}

	tiny := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	if _, _, _, err := Quantize(tiny, 4); err == nil {
		t.Error("Expected error when pixels < clusters")
	}
}

func TestCorrelateRejectsOversizedTemplate(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	tmpl := image.NewNRGBA(image.Rect(0, 0, 20, 5))

	if _, err := Correlate(src, tmpl); err == nil {
		t.Error("Expected error for template larger than source")
	}
}

func TestSmoothPreservesDimensions(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 50, 40))

	out, err := Smooth(img, DefaultKernel)
	if err != nil {
		t.Fatalf("Smooth failed: %v", err)
	}

	if out.Bounds().Dx() != 50 || out.Bounds().Dy() != 40 {
		t.Errorf("Expected 50x40, got %v", out.Bounds())
	}
}

func TestQuantizeTwoColors(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			if x < 10 {
				img.SetNRGBA(x, y, color.NRGBA{20, 20, 20, 255})
			} else {
				img.SetNRGBA(x, y, color.NRGBA{220, 220, 220, 255})
			}
		}
	}

	centers, labels, _, err := Quantize(img, 2)
	if err != nil {
		t.Fatalf("Quantize failed: %v", err)
	}

	if len(centers) != 2 {
		t.Fatalf("Expected 2 centers, got %d", len(centers))
	}
	if len(labels) != 400 {
		t.Fatalf("Expected 400 labels, got %d", len(labels))
	}

	lo, hi := centers[0], centers[1]
	if lo[0] > hi[0] {
		lo, hi = hi, lo
	}
	if lo[0] < 15 || lo[0] > 25 {
		t.Errorf("Dark center off: %v", lo)
	}
	if hi[0] < 215 || hi[0] > 225 {
		t.Errorf("Bright center off: %v", hi)
	}
}

func TestCorrelateFindsEmbeddedPatch(t *testing.T) {
	// Lightly textured background so every window has variance.
	src := image.NewNRGBA(image.Rect(0, 0, 30, 25))
	for y := 0; y < 25; y++ {
		for x := 0; x < 30; x++ {
			src.SetNRGBA(x, y, color.NRGBA{uint8(40 + (x*7+y*3)%5), 40, 40, 255})
		}
	}
	// Distinct gradient patch at (12, 8).
	tmpl := image.NewNRGBA(image.Rect(0, 0, 6, 5))
	for y := 0; y < 5; y++ {
		for x := 0; x < 6; x++ {
			c := color.NRGBA{uint8(100 + 20*x), uint8(80 + 30*y), 200, 255}
			tmpl.SetNRGBA(x, y, c)
			src.SetNRGBA(12+x, 8+y, c)
		}
	}

	surface, err := Correlate(src, tmpl)
	if err != nil {
		t.Fatalf("Correlate failed: %v", err)
	}

	if surface.Width != 25 || surface.Height != 21 {
		t.Fatalf("Expected 25x21 surface, got %dx%d", surface.Width, surface.Height)
	}

	best := image.Point{}
	var bestScore float32 = -2
	for y := 0; y < surface.Height; y++ {
		for x := 0; x < surface.Width; x++ {
			if v := surface.At(x, y); v > bestScore {
				bestScore = v
				best = image.Pt(x, y)
			}
		}
	}

	if best != image.Pt(12, 8) {
		t.Errorf("Expected peak at (12,8), got %v", best)
	}
	if bestScore < 0.99 {
		t.Errorf("Expected near-perfect score at the patch, got %f", bestScore)
	}
}
