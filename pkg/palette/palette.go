// Package palette turns K-means cluster centers into the ordered color
// sequence rendered into a reference swatch.
package palette

import "sort"

// Color is a 3-component intensity tuple. Channel order follows the
// sampling path that produced the cluster centers (R, G, B here).
type Color [3]float32

// Extract orders cluster centers and drops the background color.
//
// Every channel column is sorted independently in ascending order: row i
// of the result holds the i-th smallest value of each channel, which
// need not come from a single original cluster. The result approximates
// a dark-to-light gradient rather than a reordering of the centers.
// The last row — the brightest value per channel — is treated as the
// background color and is never rendered, so Extract returns
// len(centers)-1 colors.
func Extract(centers [][3]float32) []Color {
	if len(centers) < 2 {
		return nil
	}

	sorted := SortChannels(centers)

	colors := make([]Color, len(sorted)-1)
	for i := range colors {
		colors[i] = Color(sorted[i])
	}
	return colors
}

// SortChannels sorts every channel column independently in ascending
// order, returning a new slice. The input is not modified.
func SortChannels(centers [][3]float32) [][3]float32 {
	n := len(centers)
	column := make([]float32, n)
	sorted := make([][3]float32, n)

	for ch := 0; ch < 3; ch++ {
		for i, c := range centers {
			column[i] = c[ch]
		}
		sort.Slice(column, func(i, j int) bool { return column[i] < column[j] })
		for i, v := range column {
			sorted[i][ch] = v
		}
	}
	return sorted
}

// CountLabels builds a histogram of cluster assignments: index k holds
// the number of samples labeled k. Labels below the maximum that never
// occur report 0. Negative labels are ignored.
func CountLabels(labels []int) []int {
	max := -1
	for _, l := range labels {
		if l > max {
			max = l
		}
	}
	if max < 0 {
		return nil
	}

	counts := make([]int, max+1)
	for _, l := range labels {
		if l >= 0 {
			counts[l]++
		}
	}
	return counts
}
