// Package findingpalette locates a repeating palette swatch pattern
// inside a photograph of a product package.
//
// The pipeline derives a representative color palette from the image
// itself via K-means quantization, synthesizes a reference swatch image
// from that palette in a configurable layout, and searches the image
// for regions whose local color pattern correlates strongly with the
// synthesized swatch. Adjacent matches are collapsed into a minimal set
// of detections.
//
// Basic usage:
//
//	package main
//
//	import (
//		"fmt"
//		"log"
//
//		"github.com/mehmetbozoklu/findingpalette"
//	)
//
//	func main() {
//		finder := findingpalette.New()
//
//		result, img, err := finder.ProcessFile("package.jpg")
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		fmt.Printf("palette of %d colors, %d occurrences\n",
//			len(result.Colors), len(result.Detections))
//
//		annotated := finder.Annotate(img, result.Detections)
//		if err := finder.SaveImage(annotated, "annotated.png", "png", 90); err != nil {
//			log.Fatal(err)
//		}
//	}
//
// The package consists of five component packages:
//
// 1. Palette (pkg/palette): orders cluster centers and drops the background color
// 2. Swatch (pkg/swatch): assembles the ordered colors into the reference image
// 3. Detection (pkg/detection): collapses correlation candidates into detections
// 4. Vision (pkg/vision): OpenCV-backed smoothing, quantization and correlation
// 5. Processing (pkg/processing): image I/O, downsampling and overlays
//
// Processing is strictly sequential: each image is fully analyzed
// before the next begins, and no state beyond the configuration is
// shared between images.
package findingpalette

import (
	"fmt"
	"image"

	"github.com/mehmetbozoklu/findingpalette/pkg/detection"
	"github.com/mehmetbozoklu/findingpalette/pkg/palette"
	"github.com/mehmetbozoklu/findingpalette/pkg/processing"
	"github.com/mehmetbozoklu/findingpalette/pkg/swatch"
	"github.com/mehmetbozoklu/findingpalette/pkg/vision"
)

// Version of the findingpalette library
const Version = "1.0.0"

// Config holds the analysis parameters of a Finder.
type Config struct {
	// Clusters is the K-means cluster count; the brightest cluster is
	// dropped as background, so the swatch has Clusters-1 cells.
	Clusters int
	// SampleSize is the square edge images are downsampled to before
	// quantization.
	SampleSize int
	// CellWidth and CellHeight are the swatch cell dimensions.
	CellWidth  int
	CellHeight int
	// Threshold is the minimum correlation score for a match, in [0,1].
	Threshold float64
	// Vertical stacks swatch cells top-to-bottom; Reverse flips the
	// cell order.
	Vertical bool
	Reverse  bool
	// SmoothingKernel is the Gaussian kernel size applied before
	// quantization and correlation. Must be odd.
	SmoothingKernel int
}

// DefaultConfig returns the standard analysis parameters.
func DefaultConfig() Config {
	return Config{
		Clusters:        6,
		SampleSize:      120,
		CellWidth:       128,
		CellHeight:      139,
		Threshold:       0.99,
		Vertical:        true,
		Reverse:         true,
		SmoothingKernel: vision.DefaultKernel,
	}
}

// Finder runs the palette-location pipeline on single images.
type Finder struct {
	config    Config
	processor *processing.Processor
	locator   *detection.Locator
	layout    swatch.Layout
}

// New creates a Finder with the default configuration.
func New() *Finder {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a Finder with custom configuration.
func NewWithConfig(config Config) *Finder {
	return &Finder{
		config:    config,
		processor: processing.NewProcessor(),
		locator:   detection.NewLocator(config.Vertical, config.Reverse),
		layout: swatch.Layout{
			Vertical:   config.Vertical,
			Reverse:    config.Reverse,
			CellWidth:  config.CellWidth,
			CellHeight: config.CellHeight,
		},
	}
}

// Result holds everything one image's analysis produced.
type Result struct {
	// Colors is the ordered palette rendered into the swatch.
	Colors []palette.Color
	// ClusterSizes is the per-cluster pixel count of the quantization
	// sample, indexed by label.
	ClusterSizes []int
	// Compactness is the K-means objective value, for diagnostics.
	Compactness float64
	// Model is the synthesized swatch image that was matched.
	Model *image.NRGBA
	// Detections are the de-duplicated palette occurrences. Empty means
	// the palette pattern was not found above the threshold.
	Detections []detection.Detection
}

// SwatchDims returns the pixel dimensions of the synthesized swatch.
func (f *Finder) SwatchDims() (w, h int) {
	return f.layout.Dims(f.config.Clusters - 1)
}

// ValidateImage checks that an image is large enough to contain the
// swatch at least once.
func (f *Finder) ValidateImage(img image.Image) error {
	w, h := f.SwatchDims()
	bounds := img.Bounds()
	if bounds.Dx() < w || bounds.Dy() < h {
		return fmt.Errorf("image %dx%d smaller than swatch %dx%d",
			bounds.Dx(), bounds.Dy(), w, h)
	}
	return nil
}

// FindPalette runs the full pipeline on one image: smooth, downsample,
// quantize, order the palette, synthesize the swatch, correlate it
// against the smoothed image and collapse the matches into detections.
func (f *Finder) FindPalette(img image.Image) (Result, error) {
	if err := f.ValidateImage(img); err != nil {
		return Result{}, err
	}

	smoothed, err := vision.Smooth(img, f.config.SmoothingKernel)
	if err != nil {
		return Result{}, fmt.Errorf("smoothing failed: %w", err)
	}

	sample := f.processor.Downsample(smoothed, f.config.SampleSize)
	centers, labels, compactness, err := vision.Quantize(sample, f.config.Clusters)
	if err != nil {
		return Result{}, fmt.Errorf("quantization failed: %w", err)
	}

	colors := palette.Extract(centers)
	model := f.layout.Synthesize(colors)

	surface, err := vision.Correlate(smoothed, model)
	if err != nil {
		return Result{}, fmt.Errorf("correlation failed: %w", err)
	}

	w, h := f.layout.Dims(len(colors))
	detections := f.locator.Locate(surface, f.config.Threshold, w, h)

	return Result{
		Colors:       colors,
		ClusterSizes: palette.CountLabels(labels),
		Compactness:  compactness,
		Model:        model,
		Detections:   detections,
	}, nil
}

// ProcessFile loads an image from a file path or URL and analyzes it.
// The loaded image is returned alongside the result so callers can
// annotate or display it.
func (f *Finder) ProcessFile(source string) (Result, image.Image, error) {
	img, err := f.processor.LoadImageSmart(source)
	if err != nil {
		return Result{}, nil, fmt.Errorf("failed to load image: %w", err)
	}

	result, err := f.FindPalette(img)
	if err != nil {
		return Result{}, img, err
	}
	return result, img, nil
}

// Annotate returns a copy of img with a bounding box around every
// detection.
func (f *Finder) Annotate(img image.Image, detections []detection.Detection) *image.NRGBA {
	return f.processor.DrawDetections(img, detections)
}

// SaveImage saves an image in the given format (jpg, png or webp).
func (f *Finder) SaveImage(img image.Image, path, format string, quality int) error {
	return f.processor.SaveImage(img, path, format, quality, false)
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
