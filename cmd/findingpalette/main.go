// Command findingpalette scans a directory of product photographs,
// derives each image's color palette and searches the image for the
// matching swatch pattern. Every image is shown in a window together
// with the synthesized palette; a key press advances to the next image.
//
// Usage:
//
//	findingpalette [/your/image/files/path/]
//
// The optional positional argument overrides the source path from the
// settings file. Settings are read from settings.txt in the working
// directory; a missing or malformed file is reported and the built-in
// defaults are used instead.
package main

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"os"

	"gocv.io/x/gocv"

	"github.com/mehmetbozoklu/findingpalette"
	"github.com/mehmetbozoklu/findingpalette/internal/config"
	"github.com/mehmetbozoklu/findingpalette/internal/utils"
)

func main() {
	cfg := loadSettings(config.DefaultFile)

	if len(os.Args) > 1 {
		cfg.SourcePath = os.Args[1]
		log.Printf("path\t: %s (command line)", cfg.SourcePath)
	}

	fcfg := findingpalette.DefaultConfig()
	fcfg.Clusters = cfg.Clusters
	fcfg.SampleSize = cfg.SampleSize
	fcfg.CellWidth = cfg.CellWidth
	fcfg.CellHeight = cfg.CellHeight
	fcfg.Threshold = cfg.Threshold
	fcfg.Vertical = cfg.Vertical
	fcfg.Reverse = cfg.Reverse
	finder := findingpalette.NewWithConfig(fcfg)

	if !utils.DirExists(cfg.SourcePath) {
		log.Fatalf("source path is not a directory: %s", cfg.SourcePath)
	}
	files, err := utils.ListImageFiles(cfg.SourcePath)
	if err != nil {
		log.Fatalf("failed to list images in %s: %v", cfg.SourcePath, err)
	}
	if len(files) == 0 {
		log.Printf("no images found in %s", cfg.SourcePath)
	}

	for _, path := range files {
		log.Println(path)

		result, img, err := finder.ProcessFile(path)
		if err != nil {
			log.Fatalf("could not read the image %s: %v", path, err)
		}

		log.Printf("cluster sizes: %v (compactness %.1f)", result.ClusterSizes, result.Compactness)
		if len(result.Detections) == 0 {
			log.Println("Palette not found!")
		}

		if err := show(cfg, finder, path, img, result); err != nil {
			log.Fatalf("display failed for %s: %v", path, err)
		}
	}
}

// loadSettings reads the settings file, echoing every value the way
// the run will use it. Any load error falls back to the defaults.
func loadSettings(path string) *config.Config {
	cfg, err := config.LoadFromFile(path)
	if err != nil {
		log.Printf("Error reading the settings file: %v", err)
		cfg = config.Default()
	}

	log.Printf("n_c\t: %d", cfg.Clusters)
	log.Printf("rs\t: %d", cfg.SampleSize)
	log.Printf("win_w\t: %d", cfg.WindowWidth)
	log.Printf("win_h\t: %d", cfg.WindowHeight)
	log.Printf("color_w\t: %d", cfg.CellWidth)
	log.Printf("color_h\t: %d", cfg.CellHeight)
	log.Printf("path\t: %s", cfg.SourcePath)
	log.Printf("thr\t: %g", cfg.Threshold)
	log.Printf("ver\t: %t", cfg.Vertical)
	log.Printf("rev\t: %t", cfg.Reverse)
	return cfg
}

// show displays the synthesized palette and the annotated image in two
// windows and blocks until a key is pressed.
func show(cfg *config.Config, finder *findingpalette.Finder, path string, img image.Image, result findingpalette.Result) error {
	modelMat, err := gocv.ImageToMatRGB(result.Model)
	if err != nil {
		return fmt.Errorf("failed to convert model: %w", err)
	}
	defer modelMat.Close()

	annotated := finder.Annotate(img, result.Detections)
	imageMat, err := gocv.ImageToMatRGB(annotated)
	if err != nil {
		return fmt.Errorf("failed to convert image: %w", err)
	}
	defer imageMat.Close()

	_, swatchH := finder.SwatchDims()
	blue := color.RGBA{B: 255}
	for _, det := range result.Detections {
		label := fmt.Sprintf("Palette: %d, %d", det.Bounds.Max.X, det.Bounds.Max.Y)
		origin := image.Pt(det.Point.X, det.Point.Y+swatchH+70)
		gocv.PutText(&imageMat, label, origin, gocv.FontHersheySimplex, 2, blue, 2)
	}

	paletteWin := gocv.NewWindow("palette")
	defer paletteWin.Close()
	paletteWin.ResizeWindow(result.Model.Bounds().Dx(), result.Model.Bounds().Dy())
	paletteWin.IMShow(modelMat)

	imageWin := gocv.NewWindow(path)
	defer imageWin.Close()
	imageWin.ResizeWindow(cfg.WindowWidth, cfg.WindowHeight)
	imageWin.IMShow(imageMat)

	// Block until the user advances to the next image.
	imageWin.WaitKey(0)
	return nil
}
