// Package config models the run settings: cluster count, sampling
// size, swatch geometry, layout flags and similarity threshold.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultFile is the settings file the CLI looks for.
const DefaultFile = "settings.txt"

// Config holds one run's parameters. It is loaded once at startup and
// never mutated.
type Config struct {
	// Clusters is the K-means cluster count. One cluster is reserved
	// for the background color, so at least 2 are required.
	Clusters int
	// SampleSize is the square edge the image is downsampled to before
	// quantization.
	SampleSize int
	// WindowWidth and WindowHeight size the source display window.
	WindowWidth  int
	WindowHeight int
	// CellWidth and CellHeight are the swatch cell dimensions.
	CellWidth  int
	CellHeight int
	// SourcePath is the directory of images to process.
	SourcePath string
	// Threshold is the minimum correlation score for a match, in [0,1].
	Threshold float64
	// Vertical stacks swatch cells top-to-bottom instead of
	// left-to-right.
	Vertical bool
	// Reverse flips the swatch cell order (darker-to-lighter depth).
	Reverse bool
}

// Default returns the built-in configuration used when no settings
// file can be read.
func Default() *Config {
	return &Config{
		Clusters:     6,
		SampleSize:   120,
		WindowWidth:  512,
		WindowHeight: 512,
		CellWidth:    128,
		CellHeight:   139,
		SourcePath:   "../dataset/",
		Threshold:    0.99,
		Vertical:     true,
		Reverse:      true,
	}
}

// Colors is the number of swatch cells: one per cluster minus the
// background cluster.
func (c *Config) Colors() int {
	return c.Clusters - 1
}

// LoadFromFile loads the plain-text settings file: one value per line,
// in the order clusters, sample size, window width, window height,
// cell width, cell height, source path, threshold, vertical flag,
// reverse flag. Any missing or malformed value fails the whole load.
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}
	return Parse(string(data))
}

// Parse parses settings-file content. See LoadFromFile for the format.
func Parse(content string) (*Config, error) {
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	if len(lines) < 10 {
		return nil, fmt.Errorf("settings file has %d lines, expected 10", len(lines))
	}

	c := &Config{}
	var err error
	if c.Clusters, err = parseInt(lines[0], "cluster count"); err != nil {
		return nil, err
	}
	if c.SampleSize, err = parseInt(lines[1], "sample size"); err != nil {
		return nil, err
	}
	if c.WindowWidth, err = parseInt(lines[2], "window width"); err != nil {
		return nil, err
	}
	if c.WindowHeight, err = parseInt(lines[3], "window height"); err != nil {
		return nil, err
	}
	if c.CellWidth, err = parseInt(lines[4], "cell width"); err != nil {
		return nil, err
	}
	if c.CellHeight, err = parseInt(lines[5], "cell height"); err != nil {
		return nil, err
	}
	c.SourcePath = strings.TrimSpace(lines[6])
	if c.SourcePath == "" {
		return nil, fmt.Errorf("source path is empty")
	}
	if c.Threshold, err = parseFloat(lines[7], "threshold"); err != nil {
		return nil, err
	}
	if c.Vertical, err = parseFlag(lines[8], "vertical flag"); err != nil {
		return nil, err
	}
	if c.Reverse, err = parseFlag(lines[9], "reverse flag"); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Clusters < 2 {
		return fmt.Errorf("cluster count must be at least 2, got %d", c.Clusters)
	}
	if c.SampleSize < 1 {
		return fmt.Errorf("sample size must be positive, got %d", c.SampleSize)
	}
	if c.WindowWidth < 1 || c.WindowHeight < 1 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.WindowWidth, c.WindowHeight)
	}
	if c.CellWidth < 1 || c.CellHeight < 1 {
		return fmt.Errorf("cell size must be positive, got %dx%d", c.CellWidth, c.CellHeight)
	}
	if c.Threshold < 0 || c.Threshold > 1 {
		return fmt.Errorf("threshold must be between 0 and 1, got %g", c.Threshold)
	}
	return nil
}

func parseInt(line, name string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, strings.TrimSpace(line), err)
	}
	return v, nil
}

func parseFloat(line, name string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, strings.TrimSpace(line), err)
	}
	return v, nil
}

// parseFlag reads a 1/0 flag: 1 is true, any other integer is false.
func parseFlag(line, name string) (bool, error) {
	v, err := parseInt(line, name)
	if err != nil {
		return false, err
	}
	return v == 1, nil
}
