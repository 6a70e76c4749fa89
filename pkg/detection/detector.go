// Package detection collapses a correlation-score surface into a
// minimal set of non-overlapping palette detections.
package detection

import "image"

// DefaultGate is the cross-axis pixel distance below which two
// candidates are considered the same physical occurrence.
const DefaultGate = 7

// ScoreSurface is a row-major grid of correlation scores, one per
// possible alignment of the swatch against the source image. Its
// dimensions are sourceDims - swatchDims + 1 per axis.
type ScoreSurface struct {
	Width  int
	Height int
	Scores []float32
}

// NewScoreSurface allocates a zeroed surface of the given dimensions.
func NewScoreSurface(width, height int) *ScoreSurface {
	return &ScoreSurface{
		Width:  width,
		Height: height,
		Scores: make([]float32, width*height),
	}
}

// At returns the score at column x, row y.
func (s *ScoreSurface) At(x, y int) float32 {
	return s.Scores[y*s.Width+x]
}

// Set stores a score at column x, row y.
func (s *ScoreSurface) Set(x, y int, v float32) {
	s.Scores[y*s.Width+x] = v
}

// Candidates scans the surface in row-major order and returns every
// position whose score is at least threshold, in scan order.
func (s *ScoreSurface) Candidates(threshold float32) []image.Point {
	var pts []image.Point
	for y := 0; y < s.Height; y++ {
		row := s.Scores[y*s.Width : (y+1)*s.Width]
		for x, v := range row {
			if v >= threshold {
				pts = append(pts, image.Point{X: x, Y: y})
			}
		}
	}
	return pts
}

// Detection is one retained palette occurrence in source-image pixel
// coordinates. Bounds is Point extended by the swatch dimensions.
type Detection struct {
	Point  image.Point
	Bounds image.Rectangle
}

// Locator deduplicates above-threshold candidates. Correlation produces
// a cluster of adjacent high scores around each true occurrence; a
// fixed distance gate along the axis orthogonal to the stacking axis
// collapses each cluster to one representative.
type Locator struct {
	// Vertical selects which coordinate distinguishes occurrences: the
	// x-coordinate for a vertically stacked swatch, y otherwise.
	Vertical bool
	// Reverse processes candidates in reverse scan order, so the kept
	// representative of each cluster is the spatially last candidate.
	Reverse bool
	// Gate is the deduplication distance in pixels.
	Gate int
}

// NewLocator returns a Locator with the default gate.
func NewLocator(vertical, reverse bool) *Locator {
	return &Locator{Vertical: vertical, Reverse: reverse, Gate: DefaultGate}
}

// Locate extracts all candidates scoring at least threshold and
// collapses them into detections. The first candidate is always kept;
// each later candidate is kept only if its distinguishing coordinate
// differs from the last kept one by more than Gate pixels. An empty
// result means the pattern is not present above the threshold.
func (l *Locator) Locate(surface *ScoreSurface, threshold float64, swatchW, swatchH int) []Detection {
	candidates := surface.Candidates(float32(threshold))
	if l.Reverse {
		for i, j := 0, len(candidates)-1; i < j; i, j = i+1, j-1 {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		}
	}

	var detections []Detection
	last := 0
	for i, pt := range candidates {
		primary := pt.X
		if !l.Vertical {
			primary = pt.Y
		}
		if i == 0 || abs(primary-last) > l.Gate {
			detections = append(detections, Detection{
				Point:  pt,
				Bounds: image.Rect(pt.X, pt.Y, pt.X+swatchW, pt.Y+swatchH),
			})
			last = primary
		}
	}
	return detections
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
