// Package vision wraps the OpenCV primitives the pipeline calls into:
// Gaussian smoothing, K-means color quantization and normalized
// cross-correlation. All gocv Mats are created and closed inside this
// package; callers only see image.Image and plain slices.
package vision

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/mehmetbozoklu/findingpalette/pkg/detection"
)

// DefaultKernel is the Gaussian kernel size used when smoothing images
// before quantization and correlation.
const DefaultKernel = 19

// Smooth applies a Gaussian blur with a square kernel of the given
// size. Sigma is derived from the kernel size. The kernel must be odd
// and positive.
func Smooth(img image.Image, kernel int) (image.Image, error) {
	if kernel < 1 || kernel%2 == 0 {
		return nil, fmt.Errorf("smoothing kernel must be odd and positive, got %d", kernel)
	}

	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image: %w", err)
	}
	defer mat.Close()

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(mat, &blurred, image.Pt(kernel, kernel), 0, 0, gocv.BorderDefault)

	out, err := blurred.ToImage()
	if err != nil {
		return nil, fmt.Errorf("failed to convert result: %w", err)
	}
	return out, nil
}

// Quantize clusters the pixels of img into k colors. It returns the
// cluster centers as float-valued color tuples in R,G,B order, the
// per-pixel labels in row-major order, and the clustering compactness.
// The caller is expected to have downsampled img already; every pixel
// becomes one sample.
func Quantize(img image.Image, k int) (centers [][3]float32, labels []int, compactness float64, err error) {
	if k < 2 {
		return nil, nil, 0, fmt.Errorf("cluster count must be at least 2, got %d", k)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	n := w * h
	if n < k {
		return nil, nil, 0, fmt.Errorf("image has %d pixels, need at least %d", n, k)
	}

	// One row per pixel, one column per channel, as k-means input.
	samples := gocv.NewMatWithSize(n, 3, gocv.MatTypeCV32F)
	defer samples.Close()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			idx := y*w + x
			samples.SetFloatAt(idx, 0, float32(r>>8))
			samples.SetFloatAt(idx, 1, float32(g>>8))
			samples.SetFloatAt(idx, 2, float32(b>>8))
		}
	}

	labelsMat := gocv.NewMat()
	defer labelsMat.Close()
	centersMat := gocv.NewMat()
	defer centersMat.Close()

	criteria := gocv.NewTermCriteria(gocv.Count+gocv.EPS, 10, 1.0)
	compactness = gocv.KMeans(samples, k, &labelsMat, criteria, 10, gocv.KMeansRandomCenters, &centersMat)

	centers = make([][3]float32, centersMat.Rows())
	for i := range centers {
		centers[i][0] = centersMat.GetFloatAt(i, 0)
		centers[i][1] = centersMat.GetFloatAt(i, 1)
		centers[i][2] = centersMat.GetFloatAt(i, 2)
	}

	labels = make([]int, labelsMat.Rows())
	for i := range labels {
		labels[i] = int(labelsMat.GetIntAt(i, 0))
	}

	return centers, labels, compactness, nil
}

// Correlate slides tmpl over src and scores every alignment with the
// normalized correlation coefficient. The returned surface has
// dimensions srcDims - tmplDims + 1 per axis.
func Correlate(src, tmpl image.Image) (*detection.ScoreSurface, error) {
	sb, tb := src.Bounds(), tmpl.Bounds()
	if tb.Dx() > sb.Dx() || tb.Dy() > sb.Dy() {
		return nil, fmt.Errorf("template %dx%d larger than source %dx%d",
			tb.Dx(), tb.Dy(), sb.Dx(), sb.Dy())
	}

	srcMat, err := gocv.ImageToMatRGB(src)
	if err != nil {
		return nil, fmt.Errorf("failed to convert source: %w", err)
	}
	defer srcMat.Close()

	tmplMat, err := gocv.ImageToMatRGB(tmpl)
	if err != nil {
		return nil, fmt.Errorf("failed to convert template: %w", err)
	}
	defer tmplMat.Close()

	result := gocv.NewMat()
	defer result.Close()
	mask := gocv.NewMat()
	defer mask.Close()
	gocv.MatchTemplate(srcMat, tmplMat, &result, gocv.TmCcoeffNormed, mask)

	surface := detection.NewScoreSurface(result.Cols(), result.Rows())
	for y := 0; y < result.Rows(); y++ {
		for x := 0; x < result.Cols(); x++ {
			surface.Set(x, y, result.GetFloatAt(y, x))
		}
	}
	return surface, nil
}
